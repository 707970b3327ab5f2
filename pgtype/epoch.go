package pgtype

import "time"

// pgEpoch is the database's in-storage epoch (2000-01-01); arrowEpoch is the
// Unix epoch Arrow's Date32/Timestamp types are measured from. The constant
// shift between them, in days, is baked into every date/timestamp coercion.
var (
	pgEpoch    = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	arrowEpoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
)

// EpochShiftDays is pgEpoch - arrowEpoch expressed in days: 10957.
const EpochShiftDays = 10957

// DateToArrowDays converts a date (stored as days since pgEpoch) to Arrow's
// Date32 representation (days since the Unix epoch).
func DateToArrowDays(daysSincePgEpoch int32) int32 {
	return daysSincePgEpoch + EpochShiftDays
}

// ArrowDaysToDate is the inverse of DateToArrowDays.
func ArrowDaysToDate(arrowDays int32) int32 {
	return arrowDays - EpochShiftDays
}

// DateFromTime converts a wall-clock date into days-since-pgEpoch, the form
// DateToArrowDays expects. Used at the row-producer boundary when the source
// value arrives as a time.Time rather than a raw integer.
func DateFromTime(t time.Time) int32 {
	days := int32(t.Sub(pgEpoch).Truncate(24 * time.Hour).Hours() / 24)
	return days
}

// DateToTime is the inverse of DateFromTime.
func DateToTime(daysSincePgEpoch int32) time.Time {
	return pgEpoch.AddDate(0, 0, int(daysSincePgEpoch))
}

// TimestampToArrowMicros shifts a timestamp stored as microseconds since
// pgEpoch to Arrow's microseconds-since-Unix-epoch representation.
func TimestampToArrowMicros(microsSincePgEpoch int64) int64 {
	return microsSincePgEpoch + int64(EpochShiftDays)*86400*1_000_000
}

// ArrowMicrosToTimestamp is the inverse of TimestampToArrowMicros.
func ArrowMicrosToTimestamp(arrowMicros int64) int64 {
	return arrowMicros - int64(EpochShiftDays)*86400*1_000_000
}

// TimestampFromTime converts a wall-clock timestamp into microseconds since
// pgEpoch, the form TimestampToArrowMicros expects.
func TimestampFromTime(t time.Time) int64 {
	return t.Sub(pgEpoch).Microseconds()
}

// TimestampToTime is the inverse of TimestampFromTime.
func TimestampToTime(microsSincePgEpoch int64) time.Time {
	return pgEpoch.Add(time.Duration(microsSincePgEpoch) * time.Microsecond)
}

// TimestampTZToArrowMicros applies the identical epoch shift once the
// caller has already normalized the value to UTC; the source zone offset
// carries no further meaning after normalization.
func TimestampTZToArrowMicros(utcMicrosSincePgEpoch int64) int64 {
	return TimestampToArrowMicros(utcMicrosSincePgEpoch)
}

// ArrowMicrosToTimestampTZ is the inverse of TimestampTZToArrowMicros.
func ArrowMicrosToTimestampTZ(arrowMicros int64) int64 {
	return ArrowMicrosToTimestamp(arrowMicros)
}
