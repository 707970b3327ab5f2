package convert

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

type byteaCodec struct{}

func (byteaCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	bb := b.(*array.BinaryBuilder)
	for _, v := range values {
		if v == nil {
			bb.AppendNull()
			continue
		}
		buf, ok := v.([]byte)
		if !ok {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: errNotBytes}
		}
		bb.Append(buf)
	}
	return nil
}

func (byteaCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.Binary)
	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			continue
		}
		buf := make([]byte, len(a.Value(i)))
		copy(buf, a.Value(i))
		out[i] = buf
	}
	return out, nil
}
