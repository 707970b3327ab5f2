package convert

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/google/uuid"

	"github.com/dbparquet/pgparquet/pgtype"
)

type uuidCodec struct{}

func (uuidCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	bb := b.(*array.FixedSizeBinaryBuilder)
	for _, v := range values {
		if v == nil {
			bb.AppendNull()
			continue
		}
		switch u := v.(type) {
		case uuid.UUID:
			bb.Append(pgtype.UUIDBytes(u))
		case string:
			parsed, err := pgtype.ParseUUIDText(u)
			if err != nil {
				return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: err}
			}
			bb.Append(pgtype.UUIDBytes(parsed))
		case []byte:
			bb.Append(u)
		default:
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: errNotAUUID}
		}
	}
	return nil
}

func (uuidCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.FixedSizeBinary)
	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			continue
		}
		u, err := pgtype.BytesToUUID(a.Value(i))
		if err != nil {
			return nil, &CodecError{Attr: ctx.Attr.Name, Cause: err}
		}
		out[i] = u
	}
	return out, nil
}
