package convert

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/dbparquet/pgparquet/pgtype"
)

// timeCodec handles both time (withTZ=false) and time-with-timezone
// (withTZ=true); both share Time64(µs) physical storage, differing only in
// whether the encode side applies the UTC-normalizing offset subtraction.
type timeCodec struct {
	withTZ bool
}

func (c timeCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	bb := b.(*array.Time64Builder)
	for _, v := range values {
		if v == nil {
			bb.AppendNull()
			continue
		}
		if c.withTZ {
			tz, ok := v.(TimeTZ)
			if !ok {
				return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: errNotATimeTZ}
			}
			bb.Append(arrow.Time64(pgtype.TimeTZToArrowMicros(tz.Micros, tz.OffsetSeconds)))
			continue
		}
		t, ok := v.(TimeOfDay)
		if !ok {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: errNotATimeOfDay}
		}
		bb.Append(arrow.Time64(pgtype.TimeToArrowMicros(int64(t))))
	}
	return nil
}

func (c timeCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.Time64)
	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			continue
		}
		if c.withTZ {
			micros, offset := pgtype.ArrowMicrosToTimeTZ(int64(a.Value(i)))
			out[i] = TimeTZ{Micros: micros, OffsetSeconds: offset}
			continue
		}
		out[i] = TimeOfDay(pgtype.ArrowMicrosToTime(int64(a.Value(i))))
	}
	return out, nil
}
