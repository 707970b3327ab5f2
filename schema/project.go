package schema

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/dbparquet/pgparquet/rowtype"
)

// MatchBy selects how COPY FROM projects Parquet columns onto the target
// descriptor's attributes.
type MatchBy int

const (
	// MatchByPosition zips descriptor attributes to Arrow columns by
	// ordinal position, ignoring names. This is the option table's default.
	MatchByPosition MatchBy = iota
	// MatchByName looks each attribute up by (case-sensitive) column name;
	// this is the Schema Mapper's own default projection algorithm.
	MatchByName
)

// ColumnMapping pairs a descriptor attribute with the Arrow schema index
// that supplies its values.
type ColumnMapping struct {
	Attr        rowtype.Attribute
	ArrowIndex  int
	NeedsCast   bool
	CastTo      arrow.DataType
}

// Project resolves which Arrow column feeds each descriptor attribute and
// what (if any) cast is required, per MatchBy. Unmatched Arrow columns are
// silently ignored (an Open Question resolved in SPEC_FULL.md §12); a
// descriptor attribute with no matching column is an error. Generated
// columns are excluded from the projection entirely (desc.ImportAttributes
// rather than desc.Attributes): Postgres computes their values itself and
// COPY FROM never supplies them, even when the file being read has a
// column under that name (COPY TO writes generated columns out).
func Project(arrowSchema *arrow.Schema, desc *rowtype.TupleDescriptor, matchBy MatchBy, mode CastMode) ([]ColumnMapping, error) {
	imported := &rowtype.TupleDescriptor{Attributes: desc.ImportAttributes()}
	switch matchBy {
	case MatchByName:
		return projectByName(arrowSchema, imported, mode)
	default:
		return projectByPosition(arrowSchema, imported, mode)
	}
}

func projectByName(arrowSchema *arrow.Schema, desc *rowtype.TupleDescriptor, mode CastMode) ([]ColumnMapping, error) {
	castTargets, err := VerifyOrCoerce(arrowSchema, desc, mode)
	if err != nil {
		return nil, err
	}

	mappings := make([]ColumnMapping, 0, len(desc.Attributes))
	for i, attr := range desc.Attributes {
		idx := arrowSchema.FieldIndices(attr.Name)
		if len(idx) == 0 {
			return nil, fmt.Errorf("column %q is not found in parquet file", attr.Name)
		}
		mappings = append(mappings, ColumnMapping{
			Attr:       attr,
			ArrowIndex: idx[0],
			NeedsCast:  castTargets[i] != nil,
			CastTo:     castTargets[i],
		})
	}
	return mappings, nil
}

func projectByPosition(arrowSchema *arrow.Schema, desc *rowtype.TupleDescriptor, mode CastMode) ([]ColumnMapping, error) {
	if len(desc.Attributes) > len(arrowSchema.Fields()) {
		return nil, fmt.Errorf("descriptor has %d attributes but file has only %d columns", len(desc.Attributes), len(arrowSchema.Fields()))
	}

	mappings := make([]ColumnMapping, 0, len(desc.Attributes))
	for i, attr := range desc.Attributes {
		fromField := arrowSchema.Field(i)

		toField, err := buildField(attr, newFieldIDAssigner(FieldIDMode{Kind: FieldIDNone}))
		if err != nil {
			return nil, err
		}

		if arrow.TypeEqual(fromField.Type, toField.Type) {
			mappings = append(mappings, ColumnMapping{Attr: attr, ArrowIndex: i})
			continue
		}

		if err := isCoercible(fromField.Type, toField.Type, attr, mode); err != nil {
			return nil, err
		}
		mappings = append(mappings, ColumnMapping{Attr: attr, ArrowIndex: i, NeedsCast: true, CastTo: toField.Type})
	}
	return mappings, nil
}
