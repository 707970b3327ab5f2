package pgtype

import "math"

// MonthDayNano mirrors Arrow's arrow.MonthDayNanoInterval layout: months,
// days, and nanoseconds are independent components. Nanos may exceed a full
// day; no field is normalized against another.
type MonthDayNano struct {
	Months int32
	Days   int32
	Nanos  int64
}

// IntervalToMonthDayNano packs an interval's three components. months and
// days are the database's own interval fields and are int32-width, so they
// are range-checked and fail with IntervalOverflow if either exceeds
// 2^31-1. The time component has no such limit: it packs into Arrow's
// int64 nanos slot and is allowed to exceed a day (spec §4's "nanos may
// exceed a day, not normalized" rule) — a plain multi-hour interval is the
// common case this must not reject.
func IntervalToMonthDayNano(months, days int64, micros int64) (MonthDayNano, error) {
	if months > math.MaxInt32 || months < math.MinInt32 {
		return MonthDayNano{}, &CoercionError{Kind: KindInterval, Value: months, Cause: ErrIntervalOverflow}
	}
	if days > math.MaxInt32 || days < math.MinInt32 {
		return MonthDayNano{}, &CoercionError{Kind: KindInterval, Value: days, Cause: ErrIntervalOverflow}
	}
	nanos := micros * 1000
	return MonthDayNano{Months: int32(months), Days: int32(days), Nanos: nanos}, nil
}

// MonthDayNanoToInterval is the inverse of IntervalToMonthDayNano, returning
// the interval's months, days, and microseconds components.
func MonthDayNanoToInterval(v MonthDayNano) (months, days, micros int64) {
	return int64(v.Months), int64(v.Days), v.Nanos / 1000
}
