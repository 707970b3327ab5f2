package convert

import (
	"errors"
	"fmt"
)

var (
	errNotATime      = errors.New("value is not a time.Time")
	errNotATimeOfDay = errors.New("value is not a convert.TimeOfDay")
	errNotATimeTZ    = errors.New("value is not a convert.TimeTZ")
	errNotATimestamp = errors.New("value is not a time.Time")
	errNotAnInterval = errors.New("value is not a convert.Interval")
	errNotAUUID      = errors.New("value is not a uuid.UUID or string")
	errNotBytes      = errors.New("value is not a []byte")
	errNotOID        = errors.New("value is not a uint32-compatible oid")
	errNotASlice     = errors.New("value is not a []any slice")
	errNotAComposite = errors.New("value is not a []any tuple of field values")
	errNotAMap       = errors.New("value is not a []convert.MapEntry")
)

// CodecError reports an encode/decode failure for a single attribute,
// identifying the offending value so the caller (rowgroup/pqreader) can
// abort the whole batch per spec's "single-row decode failure aborts the
// batch" rule without losing diagnostic context.
type CodecError struct {
	Attr  string
	Value any
	Cause error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("attribute %q: %v (value: %v)", e.Attr, e.Cause, e.Value)
}

func (e *CodecError) Unwrap() error { return e.Cause }
