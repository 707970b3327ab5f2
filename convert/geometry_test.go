package convert

import (
	"encoding/binary"
	"math"
	"testing"
)

func encodeWKBPoint(x, y float64) []byte {
	buf := make([]byte, 21)
	buf[0] = 1 // little endian
	binary.LittleEndian.PutUint32(buf[1:5], 1 /* wkbPoint */)
	binary.LittleEndian.PutUint64(buf[5:13], math.Float64bits(x))
	binary.LittleEndian.PutUint64(buf[13:21], math.Float64bits(y))
	return buf
}

func TestWKBBoundingBoxPoint(t *testing.T) {
	wkb := encodeWKBPoint(12.5, -3.25)
	minX, minY, maxX, maxY, err := wkbBoundingBox(wkb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minX != 12.5 || maxX != 12.5 || minY != -3.25 || maxY != -3.25 {
		t.Fatalf("expected degenerate bbox at the point, got (%v,%v,%v,%v)", minX, minY, maxX, maxY)
	}
}

func TestGeoParquetMetaObserveExpandsBounds(t *testing.T) {
	g := &GeoParquetMeta{}
	g.Observe(0, 0, 1, 1)
	g.Observe(-1, -1, 0.5, 0.5)
	if g.MinX != -1 || g.MinY != -1 || g.MaxX != 1 || g.MaxY != 1 {
		t.Fatalf("unexpected bounds after observe: %+v", g)
	}
}

func TestWKBBoundingBoxMalformedErrors(t *testing.T) {
	if _, _, _, _, err := wkbBoundingBox([]byte{1, 2}); err == nil {
		t.Fatal("expected error for truncated WKB")
	}
}
