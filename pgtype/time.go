package pgtype

// TimeToArrowMicros and its inverse carry time-of-day values verbatim:
// microseconds since midnight, no epoch shift applies.
func TimeToArrowMicros(microsSinceMidnight int64) int64 { return microsSinceMidnight }

func ArrowMicrosToTime(arrowMicros int64) int64 { return arrowMicros }

// TimeTZToArrowMicros subtracts the zone offset (given in seconds, scaled to
// microseconds) from a time-with-timezone value to land on wall-clock-in-UTC.
// It does not touch field metadata; the "adjusted_to_utc" marker is set by
// the schema builder. The source offset is discarded; it is not recoverable
// on decode.
func TimeTZToArrowMicros(microsSinceMidnight int64, offsetSeconds int32) int64 {
	return microsSinceMidnight - int64(offsetSeconds)*1_000_000
}

// ArrowMicrosToTimeTZ rehydrates a time-with-timezone value at offset 0
// (UTC), since the original offset was discarded on encode.
func ArrowMicrosToTimeTZ(arrowMicros int64) (microsSinceMidnight int64, offsetSeconds int32) {
	return arrowMicros, 0
}
