package rowgroup

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dbparquet/pgparquet/convert"
)

// estimateSize returns a rough per-value byte footprint, used only for the
// collect policy's projected-column-size ceiling check. It does not need to
// match Arrow's actual buffer layout exactly, only to trip the i32 ceiling
// before an array genuinely would overflow it.
func estimateSize(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case int16:
		return 2
	case int32:
		return 4
	case int64:
		return 8
	case float32:
		return 4
	case float64:
		return 8
	case string:
		return int64(len(x))
	case []byte:
		return int64(len(x))
	case time.Time:
		return 8
	case uuid.UUID:
		return 16
	case decimal.Decimal:
		return 16
	case convert.Interval:
		return 16
	case []any:
		var sum int64
		for _, e := range x {
			sum += estimateSize(e)
		}
		return sum
	case []convert.MapEntry:
		var sum int64
		for _, e := range x {
			sum += estimateSize(e.Key) + estimateSize(e.Value)
		}
		return sum
	default:
		return 16
	}
}
