package convert

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/dbparquet/pgparquet/rowtype"
)

// encodeStruct implements the composite combinator: each row's value is a
// []any in field order; a nil row appends a null struct slot (but still
// pushes a null into every child builder, since Arrow's StructBuilder
// requires child builders to stay in lockstep with the parent's length).
func encodeStruct(children []rowtype.Attribute, childFns []encodeFunc, values []any, ctx *AttrContext, b array.Builder) error {
	sb := b.(*array.StructBuilder)

	childValues := make([][]any, len(children))
	for i := range children {
		childValues[i] = make([]any, 0, len(values))
	}

	for _, v := range values {
		if v == nil {
			sb.AppendNull()
			for c := range children {
				childValues[c] = append(childValues[c], nil)
			}
			continue
		}
		tuple, ok := v.([]any)
		if !ok || len(tuple) != len(children) {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: errNotAComposite}
		}
		sb.Append(true)
		for c := range children {
			childValues[c] = append(childValues[c], tuple[c])
		}
	}

	for c, child := range children {
		childCtx := &AttrContext{Field: ctx.Field, Attr: child, Mem: ctx.Mem, Geo: ctx.Geo}
		if err := childFns[c](childValues[c], childCtx, sb.FieldBuilder(c)); err != nil {
			return err
		}
	}
	return nil
}

// decodeStruct is encodeStruct's dual: decodes every child column in full,
// then reassembles each row's []any tuple (or nil, for a null struct slot).
func decodeStruct(children []rowtype.Attribute, childFns []decodeFunc, arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.Struct)

	childOut := make([][]any, len(children))
	for c, child := range children {
		childCtx := &AttrContext{Field: ctx.Field, Attr: child}
		vals, err := childFns[c](a.Field(c), childCtx)
		if err != nil {
			return nil, err
		}
		childOut[c] = vals
	}

	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			continue
		}
		tuple := make([]any, len(children))
		for c := range children {
			tuple[c] = childOut[c][i]
		}
		out[i] = tuple
	}
	return out, nil
}
