package pgtype

import (
	"encoding/binary"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPackNumericBinaryZero(t *testing.T) {
	buf := PackNumericBinary(decimal.Zero, 2)
	if len(buf) != 8 {
		t.Fatalf("expected 8-byte header-only encoding for zero, got %d bytes", len(buf))
	}
	ndigits := binary.BigEndian.Uint16(buf[0:2])
	if ndigits != 0 {
		t.Fatalf("expected ndigits=0 for zero, got %d", ndigits)
	}
	dscale := binary.BigEndian.Uint16(buf[6:8])
	if dscale != 2 {
		t.Fatalf("expected dscale=2, got %d", dscale)
	}
}

func TestPackNumericBinaryPositive(t *testing.T) {
	d := decimal.RequireFromString("123.45")
	buf := PackNumericBinary(d, 2)
	sign := binary.BigEndian.Uint16(buf[4:6])
	if sign != numericPositive {
		t.Fatalf("expected positive sign word, got %#x", sign)
	}
	weight := int16(binary.BigEndian.Uint16(buf[2:4]))
	if weight != 0 {
		t.Fatalf("expected weight=0 for a value < 10000, got %d", weight)
	}
}

func TestPackNumericBinaryNegative(t *testing.T) {
	d := decimal.RequireFromString("-7.5")
	buf := PackNumericBinary(d, 1)
	sign := binary.BigEndian.Uint16(buf[4:6])
	if sign != numericNegative {
		t.Fatalf("expected negative sign word, got %#x", sign)
	}
}
