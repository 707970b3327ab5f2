package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParquetFieldIDKey is the Arrow field-metadata key Parquet's field-id
// extension convention uses, matching parquet-arrow's PARQUET_FIELD_ID_META_KEY.
const ParquetFieldIDKey = "PARQUET:field_id"

// FieldIDModeKind selects how PARQUET:field_id metadata is assigned while
// building an Arrow schema from a TupleDescriptor.
type FieldIDModeKind int

const (
	// FieldIDNone omits field-id metadata entirely.
	FieldIDNone FieldIDModeKind = iota
	// FieldIDAuto assigns pre-order depth-first increasing IDs starting at 0.
	FieldIDAuto
	// FieldIDExplicit sources IDs from a caller-supplied dotted-path mapping.
	FieldIDExplicit
)

// FieldIDMode bundles the mode selector with the mapping Explicit mode
// consults. Mirrors original_source's FieldIds enum (None/Auto/Explicit).
type FieldIDMode struct {
	Kind    FieldIDModeKind
	Mapping FieldIDMapping
}

// ParseFieldIDMode parses the option string COPY TO/FROM accepts for
// field_ids: "none", "auto", or a JSON object literal for an explicit
// mapping.
func ParseFieldIDMode(s string) (FieldIDMode, error) {
	switch s {
	case "", "none":
		return FieldIDMode{Kind: FieldIDNone}, nil
	case "auto":
		return FieldIDMode{Kind: FieldIDAuto}, nil
	default:
		mapping, err := ParseFieldIDMapping(s)
		if err != nil {
			return FieldIDMode{}, fmt.Errorf("invalid field_ids option: %w", err)
		}
		return FieldIDMode{Kind: FieldIDExplicit, Mapping: mapping}, nil
	}
}

// FieldIDMapping is a recursive dotted-path mapping from attribute name to
// either a field ID (leaf) or a nested mapping (struct/list/map descent).
// Grounded on original_source's field_ids.rs FieldIdMapping, whose Rust enum
// (untagged FieldId | FieldIdMapping) is represented here as a raw
// map[string]any decoded from JSON, since Go JSON decoding into `any`
// already distinguishes a number from an object.
type FieldIDMapping map[string]any

// ParseFieldIDMapping decodes a JSON object string into a FieldIDMapping.
func ParseFieldIDMapping(jsonStr string) (FieldIDMapping, error) {
	var m FieldIDMapping
	if err := json.Unmarshal([]byte(jsonStr), &m); err != nil {
		return nil, fmt.Errorf("invalid JSON string for field_ids: %w", err)
	}
	return m, nil
}

// FieldID looks up the field ID for a dotted path (e.g. "address.city").
// A path with no entry in the mapping reports ok=false; callers must treat
// that as "leave field-id metadata unset for this leaf", not as an error.
func (m FieldIDMapping) FieldID(path []string) (id int32, ok bool) {
	if len(path) == 0 {
		return 0, false
	}
	v, present := m[path[0]]
	if !present {
		return 0, false
	}
	if len(path) == 1 {
		switch n := v.(type) {
		case float64:
			return int32(n), true
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return 0, false
			}
			return int32(i), true
		default:
			return 0, false
		}
	}
	nested, ok := v.(map[string]any)
	if !ok {
		return 0, false
	}
	return FieldIDMapping(nested).FieldID(path[1:])
}

// fieldIDAssigner hands out field IDs according to a FieldIDMode, tracking
// a running pre-order counter for Auto mode and a path stack for Explicit
// mode lookups.
type fieldIDAssigner struct {
	mode    FieldIDMode
	counter int32
	path    []string
}

func newFieldIDAssigner(mode FieldIDMode) *fieldIDAssigner {
	return &fieldIDAssigner{mode: mode}
}

// next returns the metadata key/value pair to attach for the field named
// name, and whether any metadata should be attached at all.
func (a *fieldIDAssigner) next(name string) (key, value string, ok bool) {
	a.path = append(a.path, name)
	defer func() { a.path = a.path[:len(a.path)-1] }()

	switch a.mode.Kind {
	case FieldIDNone:
		return "", "", false
	case FieldIDAuto:
		id := a.counter
		a.counter++
		return ParquetFieldIDKey, strconv.Itoa(int(id)), true
	case FieldIDExplicit:
		id, found := a.mode.Mapping.FieldID(a.path)
		if !found {
			return "", "", false
		}
		return ParquetFieldIDKey, strconv.Itoa(int(id)), true
	default:
		return "", "", false
	}
}

// enter/leave let struct/list/map recursion push and pop a path segment
// that isn't itself a leaf field: the struct/list/map attribute's own name,
// and for maps an extra "entries" segment, so a map's key and value are
// looked up under "<map>.entries.<child name>".
func (a *fieldIDAssigner) enter(name string) { a.path = append(a.path, name) }
func (a *fieldIDAssigner) leave()            { a.path = a.path[:len(a.path)-1] }

func joinPath(path []string) string { return strings.Join(path, ".") }
