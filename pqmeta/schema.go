package pqmeta

import (
	"context"
	"strconv"

	"github.com/apache/arrow-go/v18/parquet/schema"
)

// SchemaRow is one row of the schema(uri) row shape: one per node in the
// file's Parquet schema tree (the root struct, every group, every leaf),
// walked pre-order depth-first the way the original extension's thrift
// schema-element dump does.
type SchemaRow struct {
	Filename       string
	Name           string
	TypeName       *string
	TypeLength     *string
	RepetitionType *string
	NumChildren    *int32
	ConvertedType  *string
	Scale          *int32
	Precision      *int32
	FieldID        *int32
	LogicalType    *string
}

// Schema returns the flattened schema element list for uri.
func Schema(ctx context.Context, uri string) ([]SchemaRow, error) {
	pf, closeFn, err := openFooter(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	root := pf.MetaData().Schema.Root()

	var rows []SchemaRow
	walkSchemaNode(uri, root, &rows)
	return rows, nil
}

func walkSchemaNode(uri string, node schema.Node, rows *[]SchemaRow) {
	row := SchemaRow{
		Filename:       uri,
		Name:           node.Name(),
		RepetitionType: strPtr(node.RepetitionType().String()),
	}
	if id := node.FieldID(); id >= 0 {
		row.FieldID = int32Ptr(id)
	}

	switch n := node.(type) {
	case *schema.GroupNode:
		children := int32(n.NumFields())
		row.NumChildren = &children
		*rows = append(*rows, row)
		for i := 0; i < n.NumFields(); i++ {
			walkSchemaNode(uri, n.Field(i), rows)
		}
	case *schema.PrimitiveNode:
		row.TypeName = strPtr(n.PhysicalType().String())
		if n.TypeLength() > 0 {
			row.TypeLength = strPtr(strconv.Itoa(n.TypeLength()))
		}
		if ct := n.ConvertedType(); ct != schema.ConvertedTypes.None {
			row.ConvertedType = strPtr(ct.String())
		}
		if n.DecimalMetadata().IsSet {
			row.Scale = int32Ptr(n.DecimalMetadata().Scale)
			row.Precision = int32Ptr(n.DecimalMetadata().Precision)
		}
		if lt := n.LogicalType(); lt != nil {
			row.LogicalType = strPtr(lt.String())
		}
		*rows = append(*rows, row)
	default:
		*rows = append(*rows, row)
	}
}

func int32Ptr(v int32) *int32 { return &v }
