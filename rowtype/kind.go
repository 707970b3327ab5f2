// Package rowtype holds the Go representation of the database's type
// descriptor: the closed logical-kind enum, attribute/typmod structures, and
// the composite/array/map recursion used by every downstream package.
package rowtype

// Kind is the closed set of logical types the engine understands. Every
// database scalar or structural type maps onto exactly one Kind before
// reaching the Schema Mapper.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindDecimal
	KindDate
	KindTime
	KindTimeTZ
	KindTimestamp
	KindTimestampTZ
	KindInterval
	KindUUID
	KindText
	KindBytea
	KindGeometry
	KindGeography
	KindJSON
	KindOID
	KindComposite
	KindArray
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindDecimal:
		return "decimal"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindTimeTZ:
		return "time-tz"
	case KindTimestamp:
		return "timestamp"
	case KindTimestampTZ:
		return "timestamp-tz"
	case KindInterval:
		return "interval"
	case KindUUID:
		return "uuid"
	case KindText:
		return "text"
	case KindBytea:
		return "bytea"
	case KindGeometry:
		return "geometry"
	case KindGeography:
		return "geography"
	case KindJSON:
		return "json"
	case KindOID:
		return "oid"
	case KindComposite:
		return "composite"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// IsStructural reports whether values of this kind recurse into child
// attributes rather than holding a scalar datum directly.
func (k Kind) IsStructural() bool {
	return k == KindComposite || k == KindArray || k == KindMap
}

// FallsBackToText reports whether this kind is KindText, the kind enums and
// unrecognized types are mapped onto and serialized as Utf8/String.
// Over-precision decimals keep KindDecimal and report false here.
func (k Kind) FallsBackToText() bool {
	return k == KindText
}
