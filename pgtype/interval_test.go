package pgtype

import (
	"errors"
	"math"
	"testing"
)

func TestIntervalRoundTrip(t *testing.T) {
	mdn, err := IntervalToMonthDayNano(14, 3, 1_500_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	months, days, micros := MonthDayNanoToInterval(mdn)
	if months != 14 || days != 3 || micros != 1_500_000 {
		t.Fatalf("round trip mismatch: %d %d %d", months, days, micros)
	}
}

func TestIntervalNanosNotNormalized(t *testing.T) {
	// more than a day's worth of micros; must not be folded into days.
	overADayMicros := int64(90 * 3600 * 1_000_000)
	mdn, err := IntervalToMonthDayNano(0, 0, overADayMicros)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mdn.Days != 0 {
		t.Fatalf("expected days to remain 0, got %d", mdn.Days)
	}
	if mdn.Nanos != overADayMicros*1000 {
		t.Fatalf("expected nanos preserved verbatim, got %d", mdn.Nanos)
	}
}

func TestIntervalOverflow(t *testing.T) {
	_, err := IntervalToMonthDayNano(int64(math.MaxInt32)+1, 0, 0)
	if err == nil {
		t.Fatal("expected overflow error")
	}
	var ce *CoercionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CoercionError, got %T", err)
	}
	if !errors.Is(ce.Cause, ErrIntervalOverflow) {
		t.Fatalf("expected ErrIntervalOverflow cause, got %v", ce.Cause)
	}
}
