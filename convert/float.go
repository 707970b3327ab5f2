package convert

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/spf13/cast"
)

type floatCodec struct {
	bits int
}

func (c floatCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	if c.bits == 32 {
		bb := b.(*array.Float32Builder)
		for _, v := range values {
			if v == nil {
				bb.AppendNull()
				continue
			}
			f, err := cast.ToFloat32E(v)
			if err != nil {
				return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: err}
			}
			bb.Append(f)
		}
		return nil
	}
	bb := b.(*array.Float64Builder)
	for _, v := range values {
		if v == nil {
			bb.AppendNull()
			continue
		}
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: err}
		}
		bb.Append(f)
	}
	return nil
}

func (c floatCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	if c.bits == 32 {
		a := arr.(*array.Float32)
		out := make([]any, a.Len())
		for i := 0; i < a.Len(); i++ {
			if !a.IsNull(i) {
				out[i] = a.Value(i)
			}
		}
		return out, nil
	}
	a := arr.(*array.Float64)
	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if !a.IsNull(i) {
			out[i] = a.Value(i)
		}
	}
	return out, nil
}
