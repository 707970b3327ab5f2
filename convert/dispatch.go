package convert

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/dbparquet/pgparquet/rowtype"
)

// encodeFunc and decodeFunc are the compiled, per-attribute closures
// compileEncoder/compileDecoder produce. The Kind switch that picks a
// codec or structural combinator runs exactly once, while building these
// closures; every row afterwards runs through the closure directly with no
// further dispatch (the spec's "once per column, not per row" rule).
type encodeFunc func(values []any, ctx *AttrContext, b array.Builder) error
type decodeFunc func(arr arrow.Array, ctx *AttrContext) ([]any, error)

// compileEncoder resolves, once, the encode strategy for an attribute:
// a scalar Codec for leaf kinds, or a closure recursing into compiled
// child encoders for composite/array/map.
func compileEncoder(attr rowtype.Attribute) (encodeFunc, error) {
	switch attr.Kind {
	case rowtype.KindComposite:
		if attr.Composite == nil {
			return nil, fmt.Errorf("composite attribute %q missing nested descriptor", attr.Name)
		}
		childFns := make([]encodeFunc, len(attr.Composite.Attributes))
		for i, child := range attr.Composite.Attributes {
			fn, err := compileEncoder(child)
			if err != nil {
				return nil, err
			}
			childFns[i] = fn
		}
		children := attr.Composite.Attributes
		return func(values []any, ctx *AttrContext, b array.Builder) error {
			return encodeStruct(children, childFns, values, ctx, b)
		}, nil

	case rowtype.KindArray:
		if attr.Element == nil {
			return nil, fmt.Errorf("array attribute %q missing element", attr.Name)
		}
		elemAttr := *attr.Element
		elemFn, err := compileEncoder(elemAttr)
		if err != nil {
			return nil, err
		}
		return func(values []any, ctx *AttrContext, b array.Builder) error {
			return encodeList(elemAttr, elemFn, values, ctx, b)
		}, nil

	case rowtype.KindMap:
		if attr.Key == nil || attr.Value == nil {
			return nil, fmt.Errorf("map attribute %q missing key/value", attr.Name)
		}
		keyAttr, valAttr := *attr.Key, *attr.Value
		keyFn, err := compileEncoder(keyAttr)
		if err != nil {
			return nil, err
		}
		valFn, err := compileEncoder(valAttr)
		if err != nil {
			return nil, err
		}
		return func(values []any, ctx *AttrContext, b array.Builder) error {
			return encodeMap(keyAttr, keyFn, valAttr, valFn, values, ctx, b)
		}, nil

	default:
		codec, err := ForKind(attr.Kind)
		if err != nil {
			return nil, err
		}
		return codec.Encode, nil
	}
}

// compileDecoder is compileEncoder's dual.
func compileDecoder(attr rowtype.Attribute) (decodeFunc, error) {
	switch attr.Kind {
	case rowtype.KindComposite:
		if attr.Composite == nil {
			return nil, fmt.Errorf("composite attribute %q missing nested descriptor", attr.Name)
		}
		childFns := make([]decodeFunc, len(attr.Composite.Attributes))
		for i, child := range attr.Composite.Attributes {
			fn, err := compileDecoder(child)
			if err != nil {
				return nil, err
			}
			childFns[i] = fn
		}
		children := attr.Composite.Attributes
		return func(arr arrow.Array, ctx *AttrContext) ([]any, error) {
			return decodeStruct(children, childFns, arr, ctx)
		}, nil

	case rowtype.KindArray:
		if attr.Element == nil {
			return nil, fmt.Errorf("array attribute %q missing element", attr.Name)
		}
		elemAttr := *attr.Element
		elemFn, err := compileDecoder(elemAttr)
		if err != nil {
			return nil, err
		}
		return func(arr arrow.Array, ctx *AttrContext) ([]any, error) {
			return decodeList(elemAttr, elemFn, arr, ctx)
		}, nil

	case rowtype.KindMap:
		if attr.Key == nil || attr.Value == nil {
			return nil, fmt.Errorf("map attribute %q missing key/value", attr.Name)
		}
		keyAttr, valAttr := *attr.Key, *attr.Value
		keyFn, err := compileDecoder(keyAttr)
		if err != nil {
			return nil, err
		}
		valFn, err := compileDecoder(valAttr)
		if err != nil {
			return nil, err
		}
		return func(arr arrow.Array, ctx *AttrContext) ([]any, error) {
			return decodeMap(keyAttr, keyFn, valAttr, valFn, arr, ctx)
		}, nil

	default:
		codec, err := ForKind(attr.Kind)
		if err != nil {
			return nil, err
		}
		return codec.Decode, nil
	}
}

// EncodeColumn builds one Arrow array for a whole column's worth of row
// values, allocating the builder and compiling the codec chain exactly
// once.
func EncodeColumn(attr rowtype.Attribute, field *arrow.Field, values []any, mem memory.Allocator, geo *GeoParquetMeta) (arrow.Array, error) {
	fn, err := compileEncoder(attr)
	if err != nil {
		return nil, err
	}
	b := newBuilder(mem, field.Type)
	defer b.Release()

	ctx := &AttrContext{Field: field, Attr: attr, Mem: mem, Geo: geo}
	if err := fn(values, ctx, b); err != nil {
		return nil, err
	}
	return b.NewArray(), nil
}

// DecodeColumn is EncodeColumn's dual: reads one Arrow column's worth of
// values back into row datums.
func DecodeColumn(attr rowtype.Attribute, field *arrow.Field, arr arrow.Array) ([]any, error) {
	fn, err := compileDecoder(attr)
	if err != nil {
		return nil, err
	}
	ctx := &AttrContext{Field: field, Attr: attr}
	return fn(arr, ctx)
}
