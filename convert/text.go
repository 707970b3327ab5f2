package convert

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// textCodec backs text/varchar/char/enum and any unrecognized type — all of
// which the Schema Mapper maps onto Utf8 (spec §3's "fallback" row).
type textCodec struct{}

func (textCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	bb := b.(*array.StringBuilder)
	for _, v := range values {
		if v == nil {
			bb.AppendNull()
			continue
		}
		s, err := ToText(v)
		if err != nil {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: err}
		}
		bb.Append(s)
	}
	return nil
}

func (textCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.String)
	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if !a.IsNull(i) {
			out[i] = a.Value(i)
		}
	}
	return out, nil
}
