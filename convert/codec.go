// Package convert implements the Row→Column Encoders (C3) and Column→Row
// Decoders (C4): one codec per logical kind, dispatched once per column
// rather than once per row, plus list/struct/map structural combinators.
package convert

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/dbparquet/pgparquet/rowtype"
)

// AttrContext carries everything a codec needs beyond the raw values: the
// target Arrow field (for precision/scale/timezone metadata already baked
// into its type), the originating attribute, and — geometry/geography only
// — the accumulating GeoParquet metadata the encoder mutates as rows are
// seen.
type AttrContext struct {
	Field *arrow.Field
	Attr  rowtype.Attribute
	Mem   memory.Allocator
	Geo   *GeoParquetMeta
}

// GeoParquetMeta accumulates the bounding box and CRS GeoParquet's file
// metadata needs, updated in place by the geometry encoder as each row is
// seen so the row-group writer can stamp it into file-level metadata once
// the last batch has been encoded.
type GeoParquetMeta struct {
	CRS       string
	HasBounds bool
	MinX, MinY, MaxX, MaxY float64
}

// Observe folds a WKB-derived bounding box into the running one.
func (g *GeoParquetMeta) Observe(minX, minY, maxX, maxY float64) {
	if !g.HasBounds {
		g.MinX, g.MinY, g.MaxX, g.MaxY = minX, minY, maxX, maxY
		g.HasBounds = true
		return
	}
	if minX < g.MinX {
		g.MinX = minX
	}
	if minY < g.MinY {
		g.MinY = minY
	}
	if maxX > g.MaxX {
		g.MaxX = maxX
	}
	if maxY > g.MaxY {
		g.MaxY = maxY
	}
}

// Encoder builds an Arrow array from a column's worth of row values.
type Encoder interface {
	Encode(values []any, ctx *AttrContext, b array.Builder) error
}

// Decoder reads a column's worth of row values back out of an Arrow array.
type Decoder interface {
	Decode(arr arrow.Array, ctx *AttrContext) ([]any, error)
}

// Codec implements both directions; nearly every logical kind's encoder and
// decoder share enough bookkeeping (null handling, precision/scale lookup)
// that keeping them on one type avoids duplicating that bookkeeping.
type Codec interface {
	Encoder
	Decoder
}

// registry maps each scalar Kind to its singleton Codec. Structural kinds
// (composite/array/map) are handled by the dedicated combinators in
// struct.go/list.go/map.go, not through this table.
var registry = map[rowtype.Kind]Codec{
	rowtype.KindBool:        boolCodec{},
	rowtype.KindInt16:       intCodec{bits: 16},
	rowtype.KindInt32:       intCodec{bits: 32},
	rowtype.KindInt64:       intCodec{bits: 64},
	rowtype.KindFloat32:     floatCodec{bits: 32},
	rowtype.KindFloat64:     floatCodec{bits: 64},
	rowtype.KindDecimal:     decimalCodec{},
	rowtype.KindDate:        dateCodec{},
	rowtype.KindTime:        timeCodec{withTZ: false},
	rowtype.KindTimeTZ:      timeCodec{withTZ: true},
	rowtype.KindTimestamp:   timestampCodec{withTZ: false},
	rowtype.KindTimestampTZ: timestampCodec{withTZ: true},
	rowtype.KindInterval:    intervalCodec{},
	rowtype.KindUUID:        uuidCodec{},
	rowtype.KindText:        textCodec{},
	rowtype.KindBytea:       byteaCodec{},
	rowtype.KindJSON:        jsonCodec{},
	rowtype.KindOID:         oidCodec{},
	rowtype.KindGeometry:    geometryCodec{},
	rowtype.KindGeography:   geometryCodec{},
}

// ForKind resolves the codec for a column's logical kind once per column;
// callers must not re-dispatch per row (spec's dispatch-once-per-column
// requirement).
func ForKind(kind rowtype.Kind) (Codec, error) {
	c, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("no scalar codec registered for kind %q", kind)
	}
	return c, nil
}

// newBuilder allocates the Arrow builder for a field's type, the entry
// point list/struct combinators use to build a child column before
// recursing.
func newBuilder(mem memory.Allocator, dt arrow.DataType) array.Builder {
	return array.NewBuilder(mem, dt)
}
