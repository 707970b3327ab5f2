package pgtype

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Postgres numeric binary sign words.
const (
	numericPositive = 0x0000
	numericNegative = 0x4000
)

// PackNumericBinary encodes d in the database's NUMERIC binary wire
// format: int16 ndigits, int16 weight, uint16 sign, uint16 dscale,
// followed by ndigits base-10000 digit groups (each an int16 in
// [0, 9999]), grouped outward from the decimal point. dscale is the
// column's declared scale (display scale), independent of how many
// fractional digits d actually carries.
//
// This mirrors the well-known NUMERIC wire layout; it does not attempt
// Postgres's own trailing-zero-group trimming beyond stripping leading
// all-zero digit groups, so a byte-for-byte comparison against a real
// backend's output may differ in ndigits for values with a long run of
// trailing zero digit groups while still decoding to the same number.
func PackNumericBinary(d decimal.Decimal, dscale int32) []byte {
	if dscale < 0 {
		dscale = 0
	}
	if d.IsZero() {
		buf := make([]byte, 8)
		binary.BigEndian.PutUint16(buf[6:8], uint16(dscale))
		return buf
	}

	neg := d.Sign() < 0
	s := d.Abs().StringFixed(dscale)
	intPart, fracPart, _ := strings.Cut(s, ".")

	for len(intPart)%4 != 0 {
		intPart = "0" + intPart
	}
	for len(fracPart)%4 != 0 {
		fracPart = fracPart + "0"
	}

	intGroups := len(intPart) / 4
	fracGroups := len(fracPart) / 4
	digits := make([]int16, 0, intGroups+fracGroups)
	for i := 0; i < intGroups; i++ {
		n, _ := strconv.Atoi(intPart[i*4 : i*4+4])
		digits = append(digits, int16(n))
	}
	for i := 0; i < fracGroups; i++ {
		n, _ := strconv.Atoi(fracPart[i*4 : i*4+4])
		digits = append(digits, int16(n))
	}

	weight := int16(intGroups - 1)
	for len(digits) > 1 && weight >= 0 && digits[0] == 0 {
		digits = digits[1:]
		weight--
	}

	sign := uint16(numericPositive)
	if neg {
		sign = numericNegative
	}

	buf := make([]byte, 8+2*len(digits))
	binary.BigEndian.PutUint16(buf[0:2], uint16(len(digits)))
	binary.BigEndian.PutUint16(buf[2:4], uint16(weight))
	binary.BigEndian.PutUint16(buf[4:6], sign)
	binary.BigEndian.PutUint16(buf[6:8], uint16(dscale))
	for i, dg := range digits {
		binary.BigEndian.PutUint16(buf[8+2*i:8+2*i+2], uint16(dg))
	}
	return buf
}
