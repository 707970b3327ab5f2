// Package schema implements the Schema Mapper: bidirectional translation
// between rowtype.TupleDescriptor and Arrow/Parquet schemas, field-ID
// assignment, and cast-mode coercion checking.
package schema

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/dbparquet/pgparquet/rowtype"
)

const adjustedToUTCKey = "adjusted_to_utc"

// BuildArrowSchema walks desc pre-order — exactly as original_source's
// schema_parser.rs does (struct/map/list/primitive, each consuming one
// field ID before recursing into children) — and returns the Arrow schema
// COPY TO writes, with PARQUET:field_id and logical annotations attached
// per field.
func BuildArrowSchema(desc *rowtype.TupleDescriptor, mode FieldIDMode) (*arrow.Schema, error) {
	assigner := newFieldIDAssigner(mode)

	fields := make([]arrow.Field, 0, len(desc.Attributes))
	for _, attr := range desc.Attributes {
		f, err := buildField(attr, assigner)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return arrow.NewSchema(fields, nil), nil
}

func buildField(attr rowtype.Attribute, assigner *fieldIDAssigner) (arrow.Field, error) {
	switch attr.Kind {
	case rowtype.KindComposite:
		return buildStructField(attr, assigner)
	case rowtype.KindArray:
		return buildListField(attr, assigner)
	case rowtype.KindMap:
		return buildMapField(attr, assigner)
	default:
		return buildPrimitiveField(attr, assigner)
	}
}

func buildStructField(attr rowtype.Attribute, assigner *fieldIDAssigner) (arrow.Field, error) {
	meta := fieldMetadata(assigner, attr.Name)

	assigner.enter(attr.Name)
	defer assigner.leave()

	if attr.Composite == nil {
		return arrow.Field{}, fmt.Errorf("composite attribute %q missing nested descriptor", attr.Name)
	}

	children := make([]arrow.Field, 0, len(attr.Composite.Attributes))
	for _, child := range attr.Composite.Attributes {
		cf, err := buildField(child, assigner)
		if err != nil {
			return arrow.Field{}, err
		}
		children = append(children, cf)
	}

	return arrow.Field{
		Name:     attr.Name,
		Type:     arrow.StructOf(children...),
		Nullable: true,
		Metadata: meta,
	}, nil
}

func buildListField(attr rowtype.Attribute, assigner *fieldIDAssigner) (arrow.Field, error) {
	meta := fieldMetadata(assigner, attr.Name)

	assigner.enter(attr.Name)
	defer assigner.leave()

	if attr.Element == nil {
		return arrow.Field{}, fmt.Errorf("array attribute %q missing element", attr.Name)
	}

	elemField, err := buildField(*attr.Element, assigner)
	if err != nil {
		return arrow.Field{}, err
	}

	return arrow.Field{
		Name:     attr.Name,
		Type:     arrow.ListOf(elemField.Type),
		Nullable: true,
		Metadata: meta,
	}, nil
}

func buildMapField(attr rowtype.Attribute, assigner *fieldIDAssigner) (arrow.Field, error) {
	meta := fieldMetadata(assigner, attr.Name)

	assigner.enter(attr.Name)
	defer assigner.leave()

	if attr.Key == nil || attr.Value == nil {
		return arrow.Field{}, fmt.Errorf("map attribute %q missing key/value", attr.Name)
	}

	assigner.enter("entries")
	keyField, err := buildField(*attr.Key, assigner)
	if err != nil {
		assigner.leave()
		return arrow.Field{}, err
	}
	keyField.Nullable = false

	valField, err := buildField(*attr.Value, assigner)
	if err != nil {
		assigner.leave()
		return arrow.Field{}, err
	}
	valField.Nullable = true
	assigner.leave()

	mapType := arrow.MapOf(keyField.Type, valField.Type)
	mapType.KeysSorted = false

	return arrow.Field{
		Name:     attr.Name,
		Type:     mapType,
		Nullable: true,
		Metadata: meta,
	}, nil
}

func buildPrimitiveField(attr rowtype.Attribute, assigner *fieldIDAssigner) (arrow.Field, error) {
	meta := fieldMetadata(assigner, attr.Name)

	dt, extraMeta, err := arrowTypeForKind(attr)
	if err != nil {
		return arrow.Field{}, err
	}
	for k, v := range extraMeta {
		meta = mergeMetadata(meta, k, v)
	}

	return arrow.Field{
		Name:     attr.Name,
		Type:     dt,
		Nullable: true,
		Metadata: meta,
	}, nil
}

// arrowTypeForKind returns the Arrow physical type for a scalar attribute,
// matching the Logical Type Set table: decimal precision>38 falls back to
// Utf8, time-with-timezone carries adjusted_to_utc=true metadata, and
// timestamp-with-timezone uses the "+00:00" fixed zone.
func arrowTypeForKind(attr rowtype.Attribute) (arrow.DataType, map[string]string, error) {
	switch attr.Kind {
	case rowtype.KindBool:
		return arrow.FixedWidthTypes.Boolean, nil, nil
	case rowtype.KindInt16:
		return arrow.PrimitiveTypes.Int16, nil, nil
	case rowtype.KindInt32:
		return arrow.PrimitiveTypes.Int32, nil, nil
	case rowtype.KindInt64:
		return arrow.PrimitiveTypes.Int64, nil, nil
	case rowtype.KindFloat32:
		return arrow.PrimitiveTypes.Float32, nil, nil
	case rowtype.KindFloat64:
		return arrow.PrimitiveTypes.Float64, nil, nil
	case rowtype.KindDecimal:
		if attr.TypeMod.Precision <= 0 || attr.TypeMod.Precision > 38 {
			return arrow.BinaryTypes.String, nil, nil
		}
		return &arrow.Decimal128Type{Precision: attr.TypeMod.Precision, Scale: attr.TypeMod.Scale}, nil, nil
	case rowtype.KindDate:
		return arrow.FixedWidthTypes.Date32, nil, nil
	case rowtype.KindTime:
		return arrow.FixedWidthTypes.Time64us, nil, nil
	case rowtype.KindTimeTZ:
		return arrow.FixedWidthTypes.Time64us, map[string]string{adjustedToUTCKey: "true"}, nil
	case rowtype.KindTimestamp:
		return &arrow.TimestampType{Unit: arrow.Microsecond}, nil, nil
	case rowtype.KindTimestampTZ:
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "+00:00"}, nil, nil
	case rowtype.KindInterval:
		return arrow.FixedWidthTypes.MonthDayNanoInterval, nil, nil
	case rowtype.KindUUID:
		return &arrow.FixedSizeBinaryType{ByteWidth: 16}, map[string]string{"logical_type": "uuid"}, nil
	case rowtype.KindText:
		return arrow.BinaryTypes.String, nil, nil
	case rowtype.KindBytea:
		return arrow.BinaryTypes.Binary, nil, nil
	case rowtype.KindGeometry, rowtype.KindGeography:
		return arrow.BinaryTypes.Binary, map[string]string{"logical_type": string(attr.Kind.String())}, nil
	case rowtype.KindJSON:
		return arrow.BinaryTypes.String, map[string]string{"logical_type": "json"}, nil
	case rowtype.KindOID:
		return arrow.PrimitiveTypes.Uint32, nil, nil
	default:
		return nil, nil, fmt.Errorf("unhandled scalar kind %q for attribute %q", attr.Kind, attr.Name)
	}
}

func fieldMetadata(assigner *fieldIDAssigner, name string) arrow.Metadata {
	key, value, ok := assigner.next(name)
	if !ok {
		return arrow.Metadata{}
	}
	return arrow.NewMetadata([]string{key}, []string{value})
}

func mergeMetadata(m arrow.Metadata, key, value string) arrow.Metadata {
	keys := append(append([]string{}, m.Keys()...), key)
	values := append(append([]string{}, m.Values()...), value)
	return arrow.NewMetadata(keys, values)
}
