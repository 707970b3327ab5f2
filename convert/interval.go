package convert

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/dbparquet/pgparquet/pgtype"
)

type intervalCodec struct{}

func (intervalCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	bb := b.(*array.MonthDayNanoIntervalBuilder)
	for _, v := range values {
		if v == nil {
			bb.AppendNull()
			continue
		}
		iv, ok := v.(Interval)
		if !ok {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: errNotAnInterval}
		}
		mdn, err := pgtype.IntervalToMonthDayNano(int64(iv.Months), int64(iv.Days), iv.Micros)
		if err != nil {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: err}
		}
		bb.Append(arrow.MonthDayNanoInterval{Months: mdn.Months, Days: mdn.Days, Nanoseconds: mdn.Nanos})
	}
	return nil
}

func (intervalCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.MonthDayNanoInterval)
	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			continue
		}
		v := a.Value(i)
		mdn := pgtype.MonthDayNano{Months: v.Months, Days: v.Days, Nanos: v.Nanoseconds}
		months, days, micros := pgtype.MonthDayNanoToInterval(mdn)
		out[i] = Interval{Months: int32(months), Days: int32(days), Micros: micros}
	}
	return out, nil
}
