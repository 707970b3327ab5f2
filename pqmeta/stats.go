package pqmeta

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/metadata"
	"github.com/apache/arrow-go/v18/parquet/schema"
	"github.com/shopspring/decimal"

	"github.com/dbparquet/pgparquet/pgtype"
)

// columnStatistics fetches the per-column-chunk statistics, reporting
// ok=false when the chunk carries no statistics at all (an empty row
// group, or a writer that opted out).
func columnStatistics(colMeta *metadata.ColumnChunkMetaData) (metadata.TypedStatistics, bool) {
	stats, err := colMeta.Statistics()
	if err != nil || stats == nil {
		return nil, false
	}
	return stats, true
}

// statValueToPgString renders a raw statistics min/max value (as arrow-go's
// Statistics.Min()/Max() returns it: a Go primitive or a parquet.ByteArray /
// parquet.FixedLenByteArray) into the Postgres-shaped text the original
// extension's column_stats/metadata UDFs produce, using descr's logical and
// converted type to pick the right interpretation (date, numeric,
// timestamp, time, or plain scalar).
func statValueToPgString(val any, descr *schema.Column) string {
	isString := isStringColumn(descr)
	isDate := isConvertedType(descr, schema.ConvertedTypes.Date)
	isNumeric := isConvertedType(descr, schema.ConvertedTypes.Decimal)
	isTimestamp, isTimestampTZ := timestampKind(descr)
	isTime, isTimeTZ := timeKind(descr)

	switch v := val.(type) {
	case bool:
		return strconv.FormatBool(v)
	case int32:
		switch {
		case isDate:
			return pgtype.DateToTime(pgtype.ArrowDaysToDate(v)).Format("2006-01-02")
		case isNumeric:
			return formatNumeric(big.NewInt(int64(v)), descr.TypeScale())
		default:
			return strconv.FormatInt(int64(v), 10)
		}
	case int64:
		switch {
		case isTimestampTZ:
			return pgtype.TimestampToTime(pgtype.ArrowMicrosToTimestampTZ(v)).UTC().Format("2006-01-02 15:04:05.999999-07")
		case isTimestamp:
			return pgtype.TimestampToTime(pgtype.ArrowMicrosToTimestamp(v)).Format("2006-01-02 15:04:05.999999")
		case isNumeric:
			return formatNumeric(big.NewInt(v), descr.TypeScale())
		case isTimeTZ:
			micros, _ := pgtype.ArrowMicrosToTimeTZ(v)
			return formatMicrosOfDay(micros) + "+00"
		case isTime:
			return formatMicrosOfDay(pgtype.ArrowMicrosToTime(v))
		default:
			return strconv.FormatInt(v, 10)
		}
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case parquet.ByteArray:
		if isString {
			return string(v)
		}
		return hexEncode(v)
	case parquet.FixedLenByteArray:
		if isString {
			return string(v)
		}
		if isNumeric {
			return formatNumeric(bigIntFromTwosComplement(v), descr.TypeScale())
		}
		return hexEncode(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func isStringColumn(descr *schema.Column) bool {
	return isConvertedType(descr, schema.ConvertedTypes.UTF8) || logicalTypeName(descr) == "String"
}

func isConvertedType(descr *schema.Column, ct schema.ConvertedType) bool {
	return descr.ConvertedType() == ct
}

// logicalTypeName renders descr's logical type via its Stringer, tolerating
// a nil/None logical type by returning "".
func logicalTypeName(descr *schema.Column) string {
	lt := descr.LogicalType()
	if lt == nil {
		return ""
	}
	return lt.String()
}

// timestampKind reports whether descr is a (non-tz, tz) TIMESTAMP column,
// inferred from the legacy converted-type pair used when the writer didn't
// attach a full LogicalType (is_adjusted_to_utc is only observable on the
// LogicalType, so unadjusted TIMESTAMP_MICROS/MILLIS is the only case this
// distinguishes without it).
func timestampKind(descr *schema.Column) (isTimestamp, isTimestampTZ bool) {
	ct := descr.ConvertedType()
	isTimestamp = ct == schema.ConvertedTypes.TimestampMicros || ct == schema.ConvertedTypes.TimestampMillis
	isTimestampTZ = strings.Contains(logicalTypeName(descr), "adjusted") || strings.Contains(logicalTypeName(descr), "UTC")
	if isTimestampTZ {
		isTimestamp = false
	}
	return isTimestamp, isTimestampTZ
}

func timeKind(descr *schema.Column) (isTime, isTimeTZ bool) {
	ct := descr.ConvertedType()
	isTime = ct == schema.ConvertedTypes.TimeMicros || ct == schema.ConvertedTypes.TimeMillis
	isTimeTZ = isTime && (strings.Contains(logicalTypeName(descr), "adjusted") || strings.Contains(logicalTypeName(descr), "UTC"))
	if isTimeTZ {
		isTime = false
	}
	return isTime, isTimeTZ
}

func formatMicrosOfDay(micros int64) string {
	h := micros / 3_600_000_000
	micros -= h * 3_600_000_000
	m := micros / 60_000_000
	micros -= m * 60_000_000
	s := micros / 1_000_000
	frac := micros - s*1_000_000
	return fmt.Sprintf("%02d:%02d:%02d.%06d", h, m, s, frac)
}

// bigIntFromTwosComplement interprets b as a big-endian two's-complement
// signed integer, the encoding Parquet's DECIMAL fixed_len_byte_array
// physical representation uses.
func bigIntFromTwosComplement(b []byte) *big.Int {
	n := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		full := new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8))
		n.Sub(n, full)
	}
	return n
}

func formatNumeric(unscaled *big.Int, scale int32) string {
	return decimal.NewFromBigInt(unscaled, -scale).String()
}

func hexEncode(b []byte) string {
	var sb strings.Builder
	sb.WriteString(`\x`)
	for _, c := range b {
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}
