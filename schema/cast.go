package schema

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute"

	"github.com/dbparquet/pgparquet/rowtype"
)

// CastMode controls how permissive VerifyOrCoerce is when an incoming
// Arrow schema doesn't match the target descriptor exactly.
type CastMode int

const (
	// StrictMatch only allows casts Postgres itself performs implicitly.
	StrictMatch CastMode = iota
	// RelaxedMatch additionally allows casts requiring an explicit cast,
	// with their usual runtime checks (e.g. overflow) still enforced.
	RelaxedMatch
)

// CoercionErrorKind distinguishes why two types failed to match, mirroring
// original_source's CoercionError enum.
type CoercionErrorKind int

const (
	NoStrictCoercionPath CoercionErrorKind = iota
	NoCoercionPath
	MapEntriesNullable
)

// SchemaMismatchError reports that an Arrow schema could not be matched (or
// coerced, depending on CastMode) to a TupleDescriptor.
type SchemaMismatchError struct {
	Column string
	From   arrow.DataType
	To     arrow.DataType
	Kind   CoercionErrorKind
}

func (e *SchemaMismatchError) Error() string {
	switch e.Kind {
	case MapEntriesNullable:
		return fmt.Sprintf("entries field in map type cannot be nullable for column %q", e.Column)
	case NoStrictCoercionPath:
		return fmt.Sprintf("type mismatch for column %q: table has %q, file has %q (try cast_mode=relaxed)", e.Column, e.To, e.From)
	default:
		return fmt.Sprintf("type mismatch for column %q: table has %q, file has %q", e.Column, e.To, e.From)
	}
}

// VerifyOrCoerce compares arrowSchema against desc and returns one cast
// target per descriptor attribute (nil meaning "no cast needed"), matching
// original_source's ensure_arrow_schema_match_tupledesc_schema + is_coercible.
// Columns are matched by name; a descriptor attribute absent from
// arrowSchema is an error.
func VerifyOrCoerce(arrowSchema *arrow.Schema, desc *rowtype.TupleDescriptor, mode CastMode) ([]arrow.DataType, error) {
	castTo := make([]arrow.DataType, 0, len(desc.Attributes))

	for _, attr := range desc.Attributes {
		idx := arrowSchema.FieldIndices(attr.Name)
		if len(idx) == 0 {
			return nil, fmt.Errorf("column %q is not found in parquet file", attr.Name)
		}
		fromField := arrowSchema.Field(idx[0])

		toField, err := buildField(attr, newFieldIDAssigner(FieldIDMode{Kind: FieldIDNone}))
		if err != nil {
			return nil, err
		}

		if arrow.TypeEqual(fromField.Type, toField.Type) {
			castTo = append(castTo, nil)
			continue
		}

		if err := isCoercible(fromField.Type, toField.Type, attr, mode); err != nil {
			return nil, err
		}
		castTo = append(castTo, toField.Type)
	}

	return castTo, nil
}

// isCoercible recurses the same way original_source's is_coercible does:
// struct fields must pairwise match by name, list elements recurse on
// their element type, map entries must be non-nullable on both sides, and
// everything else falls through to the arrow-cast castability check plus
// a Postgres-shaped implicit/explicit coercion table.
func isCoercible(from, to arrow.DataType, attr rowtype.Attribute, mode CastMode) error {
	switch f := from.(type) {
	case *arrow.StructType:
		t, ok := to.(*arrow.StructType)
		if !ok || f.NumFields() != t.NumFields() {
			return &SchemaMismatchError{Column: attr.Name, From: from, To: to, Kind: NoCoercionPath}
		}
		if attr.Composite == nil {
			return &SchemaMismatchError{Column: attr.Name, From: from, To: to, Kind: NoCoercionPath}
		}
		for i := 0; i < f.NumFields(); i++ {
			ff, tf := f.Field(i), t.Field(i)
			if ff.Name != tf.Name {
				return &SchemaMismatchError{Column: attr.Name, From: from, To: to, Kind: NoCoercionPath}
			}
			if err := isCoercible(ff.Type, tf.Type, attr.Composite.Attributes[i], mode); err != nil {
				return err
			}
		}
		return nil

	case *arrow.ListType:
		t, ok := to.(*arrow.ListType)
		if !ok || attr.Element == nil {
			return &SchemaMismatchError{Column: attr.Name, From: from, To: to, Kind: NoCoercionPath}
		}
		return isCoercible(f.Elem(), t.Elem(), *attr.Element, mode)

	case *arrow.MapType:
		t, ok := to.(*arrow.MapType)
		if !ok || attr.Key == nil || attr.Value == nil {
			return &SchemaMismatchError{Column: attr.Name, From: from, To: to, Kind: NoCoercionPath}
		}
		if f.ValueField().Nullable {
			return &SchemaMismatchError{Column: attr.Name, From: from, To: to, Kind: MapEntriesNullable}
		}
		fromEntries := f.ValueType().(*arrow.StructType)
		toEntries := t.ValueType().(*arrow.StructType)
		return isCoercible(fromEntries.Field(1).Type, toEntries.Field(1).Type, *attr.Value, mode)

	default:
		if !canCastTypes(from, to) {
			return &SchemaMismatchError{Column: attr.Name, From: from, To: to, Kind: NoCoercionPath}
		}
		if !pgCoercionAllowed(from, to, mode) {
			if mode == StrictMatch && pgCoercionAllowed(from, to, RelaxedMatch) {
				return &SchemaMismatchError{Column: attr.Name, From: from, To: to, Kind: NoStrictCoercionPath}
			}
			return &SchemaMismatchError{Column: attr.Name, From: from, To: to, Kind: NoCoercionPath}
		}
		return nil
	}
}

// canCastTypes reports whether arrow's compute kernels can cast between the
// two physical types at all, independent of whether the cast is meaningful
// at the database's type-system level.
func canCastTypes(from, to arrow.DataType) bool {
	return compute.CanCast(from, to)
}

// pgCoercionAllowed generalizes can_pg_coerce_types + pg_type_for_arrow_primitive_type:
// a small table of scalar-kind pairs that the database would allow
// implicitly (StrictMatch) or only via an explicit cast (RelaxedMatch).
// Grounded on original_source's coercion tables, flattened onto Arrow's
// physical type IDs since the Go side never materializes Postgres OIDs.
func pgCoercionAllowed(from, to arrow.DataType, mode CastMode) bool {
	fromClass, fromOK := scalarClass(from)
	toClass, toOK := scalarClass(to)
	if !fromOK || !toOK {
		return false
	}
	if fromClass == toClass {
		return true
	}
	pairs := implicitPairs
	if mode == RelaxedMatch {
		pairs = relaxedPairs
	}
	return pairs[coercionPair{fromClass, toClass}]
}

type scalarKindClass int

const (
	classNone scalarKindClass = iota
	classBool
	classInt16
	classInt32
	classInt64
	classFloat32
	classFloat64
	classDecimal
	classDate
	classTime
	classTimestamp
	classTimestampTZ
	classText
	classBytea
)

func scalarClass(dt arrow.DataType) (scalarKindClass, bool) {
	switch t := dt.(type) {
	case *arrow.BooleanType:
		return classBool, true
	case *arrow.Int16Type:
		return classInt16, true
	case *arrow.Int32Type:
		return classInt32, true
	case *arrow.Int64Type:
		return classInt64, true
	case *arrow.Float32Type:
		return classFloat32, true
	case *arrow.Float64Type:
		return classFloat64, true
	case *arrow.Decimal128Type:
		return classDecimal, true
	case *arrow.Date32Type:
		return classDate, true
	case *arrow.Time64Type:
		return classTime, true
	case *arrow.TimestampType:
		if t.TimeZone == "" {
			return classTimestamp, true
		}
		return classTimestampTZ, true
	case *arrow.StringType:
		return classText, true
	case *arrow.BinaryType:
		return classBytea, true
	default:
		return classNone, false
	}
}

type coercionPair struct {
	from, to scalarKindClass
}

// implicitPairs is the StrictMatch table: casts the database performs
// without the caller asking for one (widening numerics, text->text).
// Casts from text to other scalars are only in relaxedPairs.
var implicitPairs = map[coercionPair]bool{
	{classInt16, classInt32}:   true,
	{classInt16, classInt64}:   true,
	{classInt32, classInt64}:   true,
	{classInt16, classFloat32}: true,
	{classInt16, classFloat64}: true,
	{classInt32, classFloat64}: true,
	{classFloat32, classFloat64}: true,
	{classInt16, classDecimal}: true,
	{classInt32, classDecimal}: true,
	{classInt64, classDecimal}: true,
	{classText, classText}:     true,
}

// relaxedPairs is the superset StrictMatch lacks: narrowing numerics and
// text<->scalar casts that need an explicit CAST in SQL.
var relaxedPairs = map[coercionPair]bool{
	{classInt32, classInt16}:     true,
	{classInt64, classInt32}:     true,
	{classInt64, classInt16}:     true,
	{classFloat64, classFloat32}: true,
	{classDecimal, classInt64}:   true,
	{classDecimal, classFloat64}: true,
	{classText, classInt64}:      true,
	{classText, classInt32}:      true,
	{classText, classFloat64}:    true,
	{classText, classDate}:       true,
	{classText, classTimestamp}:  true,
	{classDate, classTimestamp}:  true,
	{classTimestamp, classDate}:  true,
}

func init() {
	// Both tables are symmetric for the reflexive case, so we merge implicit
	// into relaxed: anything implicit is also relaxed.
	for k := range implicitPairs {
		relaxedPairs[k] = true
	}
}
