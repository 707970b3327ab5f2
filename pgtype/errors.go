// Package pgtype is a stateless library of scalar conversions between the
// database's wire-level types and their Arrow/Parquet counterparts: epoch
// shifts for dates and timestamps, UTC normalization for time-with-timezone,
// decimal<->int128 packing, interval month/day/nanos packing, and UUID byte
// ordering. Every function here is total on valid input.
package pgtype

import "fmt"

// Kind identifies which conversion failed, carried in CoercionError.Kind so
// callers can branch on it without string-matching an error message.
type Kind int

const (
	KindDate Kind = iota
	KindTimestamp
	KindTime
	KindInterval
	KindDecimal
	KindUUID
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindTimestamp:
		return "timestamp"
	case KindTime:
		return "time"
	case KindInterval:
		return "interval"
	case KindDecimal:
		return "decimal"
	case KindUUID:
		return "uuid"
	default:
		return "unknown"
	}
}

// CoercionError wraps a conversion failure with enough context to build a
// path-qualified engine error without pgtype importing the engine package.
type CoercionError struct {
	Kind  Kind
	Value any
	Cause error
}

func (e *CoercionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pgtype: %s conversion failed for %v: %v", e.Kind, e.Value, e.Cause)
	}
	return fmt.Sprintf("pgtype: %s conversion failed for %v", e.Kind, e.Value)
}

func (e *CoercionError) Unwrap() error { return e.Cause }

// ErrIntervalOverflow and ErrDecimalOverflow are sentinels so callers can use
// errors.Is against the Cause of a CoercionError.
var (
	ErrIntervalOverflow = fmt.Errorf("interval component exceeds int32 range")
	ErrDecimalOverflow  = fmt.Errorf("decimal precision exceeds 38 without text fallback")
)
