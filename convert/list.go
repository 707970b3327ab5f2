package convert

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/dbparquet/pgparquet/rowtype"
)

// encodeList implements the array-of-T combinator: a nil row is a null
// list; otherwise the row's []any element slice is appended through the
// already-compiled element encoder into the list builder's shared value
// builder. A non-nil but empty slice produces a valid zero-length list,
// distinct from a null one.
func encodeList(elemAttr rowtype.Attribute, elemFn encodeFunc, values []any, ctx *AttrContext, b array.Builder) error {
	lb := b.(*array.ListBuilder)
	vb := lb.ValueBuilder()

	elemCtx := &AttrContext{Field: ctx.Field, Attr: elemAttr, Mem: ctx.Mem, Geo: ctx.Geo}

	for _, v := range values {
		if v == nil {
			lb.AppendNull()
			continue
		}
		elems, ok := v.([]any)
		if !ok {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: errNotASlice}
		}
		lb.Append(true)
		if err := elemFn(elems, elemCtx, vb); err != nil {
			return err
		}
	}
	return nil
}

// decodeList is encodeList's dual: reads each list-offset range, slices
// the underlying values array, and applies the element decoder to it.
func decodeList(elemAttr rowtype.Attribute, elemFn decodeFunc, arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.List)
	values := a.ListValues()

	elemCtx := &AttrContext{Field: ctx.Field, Attr: elemAttr}

	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			continue
		}
		start, end := a.ValueOffsets(i)
		sliced := array.NewSlice(values, start, end)
		elems, err := elemFn(sliced, elemCtx)
		sliced.Release()
		if err != nil {
			return nil, err
		}
		out[i] = elems
	}
	return out, nil
}
