package rowtype

import "github.com/dbparquet/pgparquet/pgtype"

// TypeMod carries the type-specific parameters a bare Kind doesn't encode:
// decimal precision/scale, char(n)/varchar(n) length, and the
// with-timezone flag for time/timestamp.
type TypeMod struct {
	Precision    int32
	Scale        int32
	Length       int32
	WithTimeZone bool
}

// PackNumericTypmod and UnpackNumericTypmod mirror the database's own
// numeric typmod bit packing so callers holding only the raw typmod integer
// (as a real COPY hook would) can recover precision/scale without
// reimplementing the bit math at each call site.
func PackNumericTypmod(precision, scale int32) int32 {
	return pgtype.PackNumericTypmod(precision, scale)
}

func UnpackNumericTypmod(typmod int32) (precision, scale int32) {
	return pgtype.UnpackNumericTypmod(typmod)
}
