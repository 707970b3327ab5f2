package convert

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/spf13/cast"
)

type oidCodec struct{}

func (oidCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	bb := b.(*array.Uint32Builder)
	for _, v := range values {
		if v == nil {
			bb.AppendNull()
			continue
		}
		n, err := cast.ToUint32E(v)
		if err != nil {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: errNotOID}
		}
		bb.Append(n)
	}
	return nil
}

func (oidCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.Uint32)
	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if !a.IsNull(i) {
			out[i] = a.Value(i)
		}
	}
	return out, nil
}
