package convert

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/dbparquet/pgparquet/rowtype"
)

// encodeMap implements the map combinator: each row's value is a
// []MapEntry (key always non-null, value may be null), appended into the
// map builder's key/item builders through the entries list. A nil row
// produces a null map, not an empty one — the "all outer entries null ->
// typed null list, no inner encode" edge case list.go shares this logic
// with via the embedded ListBuilder.
func encodeMap(keyAttr rowtype.Attribute, keyFn encodeFunc, valAttr rowtype.Attribute, valFn encodeFunc, values []any, ctx *AttrContext, b array.Builder) error {
	mb := b.(*array.MapBuilder)
	kb := mb.KeyBuilder()
	vb := mb.ItemBuilder()

	keyCtx := &AttrContext{Field: ctx.Field, Attr: keyAttr, Mem: ctx.Mem}
	valCtx := &AttrContext{Field: ctx.Field, Attr: valAttr, Mem: ctx.Mem, Geo: ctx.Geo}

	for _, v := range values {
		if v == nil {
			mb.AppendNull()
			continue
		}
		entries, ok := v.([]MapEntry)
		if !ok {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: errNotAMap}
		}
		mb.Append(true)

		keys := make([]any, len(entries))
		vals := make([]any, len(entries))
		for i, e := range entries {
			keys[i] = e.Key
			vals[i] = e.Value
		}
		if err := keyFn(keys, keyCtx, kb); err != nil {
			return err
		}
		if err := valFn(vals, valCtx, vb); err != nil {
			return err
		}
	}
	return nil
}

// decodeMap is encodeMap's dual.
func decodeMap(keyAttr rowtype.Attribute, keyFn decodeFunc, valAttr rowtype.Attribute, valFn decodeFunc, arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.Map)

	keyCtx := &AttrContext{Field: ctx.Field, Attr: keyAttr}
	valCtx := &AttrContext{Field: ctx.Field, Attr: valAttr}

	keys, err := keyFn(a.Keys(), keyCtx)
	if err != nil {
		return nil, err
	}
	vals, err := valFn(a.Items(), valCtx)
	if err != nil {
		return nil, err
	}

	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			continue
		}
		start, end := a.ValueOffsets(i)
		entries := make([]MapEntry, 0, end-start)
		for j := start; j < end; j++ {
			entries = append(entries, MapEntry{Key: keys[j], Value: vals[j]})
		}
		out[i] = entries
	}
	return out, nil
}
