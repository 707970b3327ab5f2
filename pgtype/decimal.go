package pgtype

import (
	"strings"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/shopspring/decimal"
)

// MaxDecimal128Precision is the largest precision Arrow's Decimal128 can
// represent; numerics beyond this fall back to their canonical decimal
// string, never lose precision, but give up typed-numeric comparison.
const MaxDecimal128Precision = 38

// DecimalToInt128 packs a canonical decimal value into a signed 128-bit
// integer scaled to `scale` fractional digits, returning ErrDecimalOverflow
// when precision exceeds MaxDecimal128Precision and the caller has not
// requested the text-fallback path.
func DecimalToInt128(d decimal.Decimal, precision, scale int32) (decimal128.Num, error) {
	if precision > MaxDecimal128Precision {
		return decimal128.Num{}, &CoercionError{Kind: KindDecimal, Value: d.String(), Cause: ErrDecimalOverflow}
	}

	scaled := d.StringFixed(scale)
	num, err := decimal128.FromString(scaled, precision, scale)
	if err != nil {
		return decimal128.Num{}, &CoercionError{Kind: KindDecimal, Value: d.String(), Cause: err}
	}
	return num, nil
}

// Int128ToDecimal is the inverse of DecimalToInt128: it divides the unscaled
// integer by 10^scale and formats sign + fraction as a decimal.Decimal.
func Int128ToDecimal(num decimal128.Num, scale int32) decimal.Decimal {
	return decimal.NewFromBigInt(num.BigInt(), -scale)
}

// DecimalToText is the >38-precision fallback: the canonical decimal string
// round-trips exactly, with no precision loss, via string equality.
func DecimalToText(d decimal.Decimal) string {
	return d.String()
}

// TextToDecimal parses the canonical decimal string produced by DecimalToText.
func TextToDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, &CoercionError{Kind: KindDecimal, Value: s, Cause: err}
	}
	return d, nil
}

// ShouldWriteAsText reports whether a numeric(precision, scale) column must
// fall back to text rather than Decimal128.
func ShouldWriteAsText(precision int32) bool {
	return precision <= 0 || precision > MaxDecimal128Precision
}

// PackNumericTypmod and UnpackNumericTypmod mirror the database's own typmod
// packing for the numeric type: ((precision<<16)|scale) + VARHDRSZ. Callers
// that only have the raw typmod integer (as a real COPY hook would) use these
// instead of re-deriving the bit math at each call site.
const numericVarHdrSz = 4

func PackNumericTypmod(precision, scale int32) int32 {
	return ((precision << 16) | (scale & 0xffff)) + numericVarHdrSz
}

func UnpackNumericTypmod(typmod int32) (precision, scale int32) {
	if typmod < numericVarHdrSz {
		return 0, 0
	}
	raw := typmod - numericVarHdrSz
	precision = raw >> 16
	scale = raw & 0xffff
	// scale is stored as a signed 16-bit quantity; sign-extend if needed.
	if scale > 0x7fff {
		scale -= 0x10000
	}
	return precision, scale
}
