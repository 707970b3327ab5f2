package convert

import (
	"encoding/json"

	"github.com/spf13/cast"
)

// ToText converts an arbitrary row value to its text serialization, the
// path enums, domains, and any other type the Schema Mapper didn't
// recognize fall back to. Structured values (maps/slices not otherwise
// handled by a dedicated codec) are JSON-encoded; everything else goes
// through spf13/cast, matching the teacher's own fallback-to-string
// behavior in appendToBuilder's *array.StringBuilder case.
func ToText(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case map[string]any, []any:
		b, err := json.Marshal(s)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return cast.ToStringE(v)
	}
}
