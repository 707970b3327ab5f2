package convert

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/dbparquet/pgparquet/pgtype"
)

// timestampCodec handles both timestamp and timestamp-with-timezone; the
// row value is always a time.Time already normalized to UTC by the row
// source for the withTZ case (spec §3: the source zone offset is discarded
// after normalization, so there is nothing left for this codec to shift).
type timestampCodec struct {
	withTZ bool
}

func (c timestampCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	bb := b.(*array.TimestampBuilder)
	for _, v := range values {
		if v == nil {
			bb.AppendNull()
			continue
		}
		t, ok := v.(time.Time)
		if !ok {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: errNotATimestamp}
		}
		if c.withTZ {
			t = t.UTC()
		}
		pgMicros := pgtype.TimestampFromTime(t)
		arrowMicros := pgtype.TimestampToArrowMicros(pgMicros)
		bb.Append(arrow.Timestamp(arrowMicros))
	}
	return nil
}

func (c timestampCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.Timestamp)
	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			continue
		}
		pgMicros := pgtype.ArrowMicrosToTimestamp(int64(a.Value(i)))
		t := pgtype.TimestampToTime(pgMicros)
		if c.withTZ {
			t = t.UTC()
		}
		out[i] = t
	}
	return out, nil
}
