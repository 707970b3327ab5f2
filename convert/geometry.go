package convert

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// geometryCodec serves both geometry and geography: both are raw WKB bytes
// passed through untouched (the database's own ST_AsBinary/ST_GeomFromWKB
// do the real conversion work, matching original_source's type_compat/geometry.rs
// Geometry wrapper, which is itself just a Vec<u8> passthrough). The only
// extra work here is accumulating GeoParquet's per-column bounding box,
// a feature the original leaves to its Rust geoparquet crate and that we
// reimplement directly since nothing in the example pack ships one.
type geometryCodec struct{}

var errMalformedWKB = errors.New("malformed WKB: truncated geometry")

func (geometryCodec) Encode(values []any, ctx *AttrContext, b array.Builder) error {
	bb := b.(*array.BinaryBuilder)
	for _, v := range values {
		if v == nil {
			bb.AppendNull()
			continue
		}
		wkb, ok := v.([]byte)
		if !ok {
			return &CodecError{Attr: ctx.Attr.Name, Value: v, Cause: errNotBytes}
		}
		bb.Append(wkb)

		if ctx.Geo != nil {
			if minX, minY, maxX, maxY, err := wkbBoundingBox(wkb); err == nil {
				ctx.Geo.Observe(minX, minY, maxX, maxY)
			}
		}
	}
	return nil
}

func (geometryCodec) Decode(arr arrow.Array, ctx *AttrContext) ([]any, error) {
	a := arr.(*array.Binary)
	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			continue
		}
		buf := make([]byte, len(a.Value(i)))
		copy(buf, a.Value(i))
		out[i] = buf
	}
	return out, nil
}

const (
	wkbTypeMask   = 0x0000ffff
	wkbSRIDFlag   = 0x20000000
	wkbZFlag      = 0x80000000
	wkbMFlag      = 0x40000000
	wkbPoint      = 1
	wkbLineString = 2
	wkbPolygon    = 3
	wkbMultiPoint = 4
	wkbMultiLine  = 5
	wkbMultiPoly  = 6
	wkbCollection = 7
)

// wkbBoundingBox walks a well-known-binary geometry and returns its 2D
// bounding box, ignoring any Z/M coordinates. Supports the seven base WKB
// geometry types plus the EWKB SRID-flag extension; unrecognized variants
// return an error and the caller simply skips the bbox update for that row.
func wkbBoundingBox(wkb []byte) (minX, minY, maxX, maxY float64, err error) {
	r := &wkbReader{buf: wkb}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	if err := r.scan(&minX, &minY, &maxX, &maxY); err != nil {
		return 0, 0, 0, 0, err
	}
	return minX, minY, maxX, maxY, nil
}

type wkbReader struct {
	buf []byte
	pos int
}

func (r *wkbReader) scan(minX, minY, maxX, maxY *float64) error {
	if r.pos+5 > len(r.buf) {
		return errMalformedWKB
	}
	byteOrder := r.buf[r.pos]
	r.pos++

	var order binary.ByteOrder = binary.LittleEndian
	if byteOrder == 0 {
		order = binary.BigEndian
	}

	typeWord := order.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4

	hasZ := typeWord&wkbZFlag != 0
	hasM := typeWord&wkbMFlag != 0
	hasSRID := typeWord&wkbSRIDFlag != 0
	geomType := typeWord & wkbTypeMask

	if hasSRID {
		if r.pos+4 > len(r.buf) {
			return errMalformedWKB
		}
		r.pos += 4
	}

	dims := 2
	if hasZ {
		dims++
	}
	if hasM {
		dims++
	}

	switch geomType {
	case wkbPoint:
		return r.readPoint(order, dims, minX, minY, maxX, maxY)
	case wkbLineString:
		return r.readPoints(order, dims, minX, minY, maxX, maxY)
	case wkbPolygon:
		return r.readRings(order, dims, minX, minY, maxX, maxY)
	case wkbMultiPoint, wkbMultiLine:
		return r.readMulti(order, minX, minY, maxX, maxY)
	case wkbMultiPoly:
		return r.readMulti(order, minX, minY, maxX, maxY)
	case wkbCollection:
		return r.readMulti(order, minX, minY, maxX, maxY)
	default:
		return errMalformedWKB
	}
}

func (r *wkbReader) readPoint(order binary.ByteOrder, dims int, minX, minY, maxX, maxY *float64) error {
	need := dims * 8
	if r.pos+need > len(r.buf) {
		return errMalformedWKB
	}
	x := math.Float64frombits(order.Uint64(r.buf[r.pos : r.pos+8]))
	y := math.Float64frombits(order.Uint64(r.buf[r.pos+8 : r.pos+16]))
	r.pos += need

	if x < *minX {
		*minX = x
	}
	if x > *maxX {
		*maxX = x
	}
	if y < *minY {
		*minY = y
	}
	if y > *maxY {
		*maxY = y
	}
	return nil
}

func (r *wkbReader) readPoints(order binary.ByteOrder, dims int, minX, minY, maxX, maxY *float64) error {
	if r.pos+4 > len(r.buf) {
		return errMalformedWKB
	}
	n := order.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	for i := uint32(0); i < n; i++ {
		if err := r.readPoint(order, dims, minX, minY, maxX, maxY); err != nil {
			return err
		}
	}
	return nil
}

func (r *wkbReader) readRings(order binary.ByteOrder, dims int, minX, minY, maxX, maxY *float64) error {
	if r.pos+4 > len(r.buf) {
		return errMalformedWKB
	}
	n := order.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	for i := uint32(0); i < n; i++ {
		if err := r.readPoints(order, dims, minX, minY, maxX, maxY); err != nil {
			return err
		}
	}
	return nil
}

// readMulti reads a count-prefixed sequence of nested WKB sub-geometries,
// each carrying its own byte-order/type header (used by MultiPoint,
// MultiLineString, MultiPolygon, and GeometryCollection).
func (r *wkbReader) readMulti(order binary.ByteOrder, minX, minY, maxX, maxY *float64) error {
	if r.pos+4 > len(r.buf) {
		return errMalformedWKB
	}
	n := order.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	for i := uint32(0); i < n; i++ {
		if err := r.scan(minX, minY, maxX, maxY); err != nil {
			return err
		}
	}
	return nil
}
