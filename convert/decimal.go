package convert

import (
	"errors"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/shopspring/decimal"

	"github.com/dbparquet/pgparquet/pgtype"
)

var (
	errUnsupportedDecimalValue = errors.New("value cannot be interpreted as a decimal")
	errUnexpectedBuilder       = errors.New("unexpected arrow builder/array type for decimal column")
)

// decimalCodec handles both representations the Schema Mapper picks for
// numeric: Decimal128 when precision <= 38, Utf8 text otherwise. Which one
// applies is read off the builder/array type actually in play rather than
// re-deriving it from typmod, since schema.BuildArrowSchema already made
// that call.
type decimalCodec struct{}

func toDecimal(v any) (decimal.Decimal, error) {
	switch d := v.(type) {
	case decimal.Decimal:
		return d, nil
	case string:
		return decimal.NewFromString(d)
	case float64:
		return decimal.NewFromFloat(d), nil
	case int64:
		return decimal.NewFromInt(d), nil
	default:
		return decimal.Decimal{}, errUnsupportedDecimalValue
	}
}

func (c decimalCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	switch bb := b.(type) {
	case *array.Decimal128Builder:
		for _, v := range values {
			if v == nil {
				bb.AppendNull()
				continue
			}
			d, err := toDecimal(v)
			if err != nil {
				return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: err}
			}
			num, err := pgtype.DecimalToInt128(d, ctx.Attr.TypeMod.Precision, ctx.Attr.TypeMod.Scale)
			if err != nil {
				return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: err}
			}
			bb.Append(num)
		}
	case *array.StringBuilder:
		for _, v := range values {
			if v == nil {
				bb.AppendNull()
				continue
			}
			d, err := toDecimal(v)
			if err != nil {
				return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: err}
			}
			bb.Append(pgtype.DecimalToText(d))
		}
	default:
		return &CodecError{Attr: ctx.Attr.Name, Cause: errUnexpectedBuilder}
	}
	return nil
}

func (c decimalCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	switch a := arr.(type) {
	case *array.Decimal128:
		out := make([]any, a.Len())
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				continue
			}
			out[i] = pgtype.Int128ToDecimal(a.Value(i), ctx.Attr.TypeMod.Scale)
		}
		return out, nil
	case *array.String:
		out := make([]any, a.Len())
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				continue
			}
			d, err := pgtype.TextToDecimal(a.Value(i))
			if err != nil {
				return nil, &CodecError{Attr: ctx.Attr.Name, Value: a.Value(i), Cause: err}
			}
			out[i] = d
		}
		return out, nil
	default:
		return nil, &CodecError{Attr: ctx.Attr.Name, Cause: errUnexpectedBuilder}
	}
}
