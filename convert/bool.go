package convert

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/spf13/cast"
)

type boolCodec struct{}

func (boolCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	bb := b.(*array.BooleanBuilder)
	for _, v := range values {
		if v == nil {
			bb.AppendNull()
			continue
		}
		bv, ok := v.(bool)
		if !ok {
			var err error
			bv, err = cast.ToBoolE(v)
			if err != nil {
				return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: err}
			}
		}
		bb.Append(bv)
	}
	return nil
}

func (boolCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.Boolean)
	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			continue
		}
		out[i] = a.Value(i)
	}
	return out, nil
}
