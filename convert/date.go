package convert

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/dbparquet/pgparquet/pgtype"
)

// dateCodec's row value is the wall-clock time.Time for the date; pgtype
// handles the epoch shift to/from Arrow's Date32.
type dateCodec struct{}

func (dateCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	bb := b.(*array.Date32Builder)
	for _, v := range values {
		if v == nil {
			bb.AppendNull()
			continue
		}
		t, ok := v.(time.Time)
		if !ok {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: errNotATime}
		}
		pgDays := pgtype.DateFromTime(t)
		bb.Append(arrow.Date32(pgtype.DateToArrowDays(pgDays)))
	}
	return nil
}

func (dateCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.Date32)
	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			continue
		}
		pgDays := pgtype.ArrowDaysToDate(int32(a.Value(i)))
		out[i] = pgtype.DateToTime(pgDays)
	}
	return out, nil
}
