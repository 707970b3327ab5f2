package convert

import (
	"encoding/json"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// jsonCodec serves both json and jsonb: both store their canonical text
// form in a Utf8 column; re-marshaling a non-string row value (e.g. a
// decoded map[string]any from an upstream driver) keeps the column
// consistent regardless of how the row source chose to hand it over.
type jsonCodec struct{}

func (jsonCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	bb := b.(*array.StringBuilder)
	for _, v := range values {
		if v == nil {
			bb.AppendNull()
			continue
		}
		if s, ok := v.(string); ok {
			bb.Append(s)
			continue
		}
		buf, err := json.Marshal(v)
		if err != nil {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: err}
		}
		bb.Append(string(buf))
	}
	return nil
}

func (jsonCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.String)
	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if !a.IsNull(i) {
			out[i] = a.Value(i)
		}
	}
	return out, nil
}
