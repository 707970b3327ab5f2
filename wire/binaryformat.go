package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dbparquet/pgparquet/convert"
	"github.com/dbparquet/pgparquet/pgtype"
	"github.com/dbparquet/pgparquet/rowtype"
)

// BinaryFormat encodes one decoded scalar value into the database's
// binary output form for the attribute cell it will occupy in a
// RowWriter.WriteRow call, dispatched once per attribute the same way
// convert resolves its Encoder/Decoder — a *rowtype.Attribute carries
// enough to pick the right byte layout without a per-row type switch
// outside this single call site.
func BinaryFormat(attr rowtype.Attribute, v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	switch attr.Kind {
	case rowtype.KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("wire: expected bool for %q, got %T", attr.Name, v)
		}
		if b {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case rowtype.KindInt16:
		n, ok := v.(int16)
		if !ok {
			return nil, fmt.Errorf("wire: expected int16 for %q, got %T", attr.Name, v)
		}
		buf := make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(n))
		return buf, nil
	case rowtype.KindInt32, rowtype.KindDate:
		n, ok := v.(int32)
		if !ok {
			return nil, fmt.Errorf("wire: expected int32 for %q, got %T", attr.Name, v)
		}
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(n))
		return buf, nil
	case rowtype.KindInt64:
		n, ok := v.(int64)
		if !ok {
			return nil, fmt.Errorf("wire: expected int64 for %q, got %T", attr.Name, v)
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(n))
		return buf, nil
	case rowtype.KindOID:
		n, ok := v.(uint32)
		if !ok {
			return nil, fmt.Errorf("wire: expected uint32 for %q, got %T", attr.Name, v)
		}
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, n)
		return buf, nil
	case rowtype.KindFloat32:
		f, ok := v.(float32)
		if !ok {
			return nil, fmt.Errorf("wire: expected float32 for %q, got %T", attr.Name, v)
		}
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, math.Float32bits(f))
		return buf, nil
	case rowtype.KindFloat64:
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("wire: expected float64 for %q, got %T", attr.Name, v)
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, math.Float64bits(f))
		return buf, nil
	case rowtype.KindTime:
		tod, ok := v.(convert.TimeOfDay)
		if !ok {
			return nil, fmt.Errorf("wire: expected convert.TimeOfDay for %q, got %T", attr.Name, v)
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(int64(tod)))
		return buf, nil
	case rowtype.KindTimeTZ:
		tz, ok := v.(convert.TimeTZ)
		if !ok {
			return nil, fmt.Errorf("wire: expected convert.TimeTZ for %q, got %T", attr.Name, v)
		}
		buf := make([]byte, 12)
		binary.BigEndian.PutUint64(buf[0:8], uint64(tz.Micros))
		// Postgres's on-wire zone offset is seconds WEST of UTC; row values
		// carry seconds EAST, so the sign flips here.
		binary.BigEndian.PutUint32(buf[8:12], uint32(-tz.OffsetSeconds))
		return buf, nil
	case rowtype.KindTimestamp, rowtype.KindTimestampTZ:
		t, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("wire: expected time.Time for %q, got %T", attr.Name, v)
		}
		micros := pgtype.TimestampFromTime(t)
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(micros))
		return buf, nil
	case rowtype.KindInterval:
		iv, ok := v.(convert.Interval)
		if !ok {
			return nil, fmt.Errorf("wire: expected convert.Interval for %q, got %T", attr.Name, v)
		}
		buf := make([]byte, 16)
		binary.BigEndian.PutUint64(buf[0:8], uint64(iv.Micros))
		binary.BigEndian.PutUint32(buf[8:12], uint32(iv.Days))
		binary.BigEndian.PutUint32(buf[12:16], uint32(iv.Months))
		return buf, nil
	case rowtype.KindUUID:
		u, ok := v.(uuid.UUID)
		if !ok {
			return nil, fmt.Errorf("wire: expected uuid.UUID for %q, got %T", attr.Name, v)
		}
		return pgtype.UUIDBytes(u), nil
	case rowtype.KindDecimal:
		d, ok := v.(decimal.Decimal)
		if !ok {
			return nil, fmt.Errorf("wire: expected decimal.Decimal for %q, got %T", attr.Name, v)
		}
		return pgtype.PackNumericBinary(d, attr.TypeMod.Scale), nil
	case rowtype.KindText, rowtype.KindJSON:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("wire: expected string for %q, got %T", attr.Name, v)
		}
		return []byte(s), nil
	case rowtype.KindBytea, rowtype.KindGeometry, rowtype.KindGeography:
		b, ok := v.([]byte)
		if !ok {
			return nil, fmt.Errorf("wire: expected []byte for %q, got %T", attr.Name, v)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("wire: unsupported scalar kind %v for binary output", attr.Kind)
	}
}
