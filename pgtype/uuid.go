package pgtype

import "github.com/google/uuid"

// UUIDBytes returns the 16 raw big-endian bytes of a UUID, the form Arrow's
// FixedSizeBinary(16) and Parquet's UUID logical type expect.
func UUIDBytes(u uuid.UUID) []byte {
	b := make([]byte, 16)
	copy(b, u[:])
	return b
}

// BytesToUUID is the inverse of UUIDBytes; it errors unless given exactly 16
// bytes.
func BytesToUUID(b []byte) (uuid.UUID, error) {
	if len(b) != 16 {
		return uuid.UUID{}, &CoercionError{Kind: KindUUID, Value: len(b)}
	}
	var u uuid.UUID
	copy(u[:], b)
	return u, nil
}

// ParseUUIDText parses a UUID's canonical text form, used when a scalar
// arrives as a string rather than raw bytes (e.g. from a fallback text
// encoder or CSV-shaped row source).
func ParseUUIDText(s string) (uuid.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, &CoercionError{Kind: KindUUID, Value: s, Cause: err}
	}
	return u, nil
}

// ConvertSQLServerUUID fixes up the little-endian-vs-big-endian mismatch a
// Microsoft SQL Server UNIQUEIDENTIFIER source produces relative to the
// database's own UUID byte order. Unused by the Postgres-only core path, but
// kept as a pure utility since the byte-order swap is a recurring need
// whenever a non-Postgres row source is bridged in (grounded on the teacher's
// own ConvertSQLServerUUID).
func ConvertSQLServerUUID(raw []byte) []byte {
	if len(raw) != 16 {
		return raw
	}
	out := make([]byte, 16)
	out[0], out[1], out[2], out[3] = raw[3], raw[2], raw[1], raw[0]
	out[4], out[5] = raw[5], raw[4]
	out[6], out[7] = raw[7], raw[6]
	copy(out[8:], raw[8:16])
	return out
}
