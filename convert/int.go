package convert

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/spf13/cast"
)

// intCodec serves int16/int32/int64: bits selects which Arrow builder/array
// type is expected, matching registry's per-kind singletons.
type intCodec struct {
	bits int
}

func (c intCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	switch c.bits {
	case 16:
		bb := b.(*array.Int16Builder)
		for _, v := range values {
			if v == nil {
				bb.AppendNull()
				continue
			}
			n, err := cast.ToInt16E(v)
			if err != nil {
				return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: err}
			}
			bb.Append(n)
		}
	case 32:
		bb := b.(*array.Int32Builder)
		for _, v := range values {
			if v == nil {
				bb.AppendNull()
				continue
			}
			n, err := cast.ToInt32E(v)
			if err != nil {
				return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: err}
			}
			bb.Append(n)
		}
	default:
		bb := b.(*array.Int64Builder)
		for _, v := range values {
			if v == nil {
				bb.AppendNull()
				continue
			}
			n, err := cast.ToInt64E(v)
			if err != nil {
				return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: err}
			}
			bb.Append(n)
		}
	}
	return nil
}

func (c intCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	switch c.bits {
	case 16:
		a := arr.(*array.Int16)
		out := make([]any, a.Len())
		for i := 0; i < a.Len(); i++ {
			if !a.IsNull(i) {
				out[i] = a.Value(i)
			}
		}
		return out, nil
	case 32:
		a := arr.(*array.Int32)
		out := make([]any, a.Len())
		for i := 0; i < a.Len(); i++ {
			if !a.IsNull(i) {
				out[i] = a.Value(i)
			}
		}
		return out, nil
	default:
		a := arr.(*array.Int64)
		out := make([]any, a.Len())
		for i := 0; i < a.Len(); i++ {
			if !a.IsNull(i) {
				out[i] = a.Value(i)
			}
		}
		return out, nil
	}
}
