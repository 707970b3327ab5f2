package pqmeta

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/metadata"
	"github.com/apache/arrow-go/v18/parquet/schema"
)

// ColumnStatsRow is one row of the column_stats(uri) row shape: min/max/
// null/distinct aggregated across every row group, keyed by the Parquet
// field ID rather than column position (unassigned field IDs are
// excluded, matching the original extension's behavior).
type ColumnStatsRow struct {
	FieldID            int32
	StatsMin           *string
	StatsMax           *string
	StatsNullCount     *int64
	StatsDistinctCount *int64
}

// ColumnStats aggregates min/max/null-count/distinct-count across all row
// groups, grouped by field ID.
func ColumnStats(ctx context.Context, uri string) ([]ColumnStatsRow, error) {
	pf, closeFn, err := openFooter(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	sc := pf.MetaData().Schema

	type accum struct {
		descr      *schema.Column
		stats      []metadata.TypedStatistics
		nullCount  *int64
		distinctOk bool
	}
	byField := make(map[int32]*accum)
	var order []int32

	for g := 0; g < pf.NumRowGroups(); g++ {
		rgMeta := pf.RowGroup(g).MetaData()
		for c := 0; c < rgMeta.NumColumns(); c++ {
			colMeta, err := rgMeta.ColumnChunk(c)
			if err != nil {
				return nil, fmt.Errorf("pqmeta: reading column chunk %d of row group %d in %s: %w", c, g, uri, err)
			}
			descr := sc.Column(c)
			fieldID := descr.SchemaNode().FieldID()
			if fieldID < 0 {
				continue
			}

			a, ok := byField[fieldID]
			if !ok {
				a = &accum{descr: descr}
				byField[fieldID] = a
				order = append(order, fieldID)
			}
			if stats, ok := columnStatistics(colMeta); ok {
				a.stats = append(a.stats, stats)
			}
		}
	}

	rows := make([]ColumnStatsRow, 0, len(order))
	for _, fieldID := range order {
		a := byField[fieldID]
		rows = append(rows, ColumnStatsRow{
			FieldID:            fieldID,
			StatsMin:           aggregateMin(a.stats, a.descr),
			StatsMax:           aggregateMax(a.stats, a.descr),
			StatsNullCount:     aggregateNullCount(a.stats),
			StatsDistinctCount: aggregateDistinctCount(a.stats),
		})
	}
	return rows, nil
}

func aggregateNullCount(stats []metadata.TypedStatistics) *int64 {
	var sum int64
	var found bool
	for _, s := range stats {
		if s.HasNullCount() {
			sum += s.NullCount()
			found = true
		}
	}
	if !found {
		return nil
	}
	return &sum
}

func aggregateDistinctCount(stats []metadata.TypedStatistics) *int64 {
	var sum int64
	var found bool
	for _, s := range stats {
		if s.HasDistinctCount() {
			sum += s.DistinctCount()
			found = true
		}
	}
	if !found {
		return nil
	}
	return &sum
}

// aggregateMin picks the lexically/numerically smallest Min() across every
// row group's statistics for this field and renders it through the same
// Postgres-shaped formatter the per-column-chunk metadata() rows use, so
// both UDFs agree on a field's value text.
func aggregateMin(stats []metadata.TypedStatistics, descr *schema.Column) *string {
	var best any
	for _, s := range stats {
		if !s.HasMinMax() {
			continue
		}
		v := s.Min()
		if best == nil || compareStatValues(v, best) < 0 {
			best = v
		}
	}
	if best == nil {
		return nil
	}
	return strPtr(statValueToPgString(best, descr))
}

func aggregateMax(stats []metadata.TypedStatistics, descr *schema.Column) *string {
	var best any
	for _, s := range stats {
		if !s.HasMinMax() {
			continue
		}
		v := s.Max()
		if best == nil || compareStatValues(v, best) > 0 {
			best = v
		}
	}
	if best == nil {
		return nil
	}
	return strPtr(statValueToPgString(best, descr))
}

// compareStatValues orders two raw statistics values of the same
// underlying physical type, returning <0, 0, >0 the way bytes.Compare does.
// Both values come from the same column, so b is asserted to a's type
// (a mismatched pair panics); a type not listed below compares as equal (0).
func compareStatValues(a, b any) int {
	switch av := a.(type) {
	case bool:
		bv := b.(bool)
		if av == bv {
			return 0
		}
		if !av {
			return -1
		}
		return 1
	case int32:
		bv := b.(int32)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case int64:
		bv := b.(int64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case float32:
		bv := b.(float32)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case parquet.ByteArray:
		return compareBytes([]byte(av), []byte(b.(parquet.ByteArray)))
	case parquet.FixedLenByteArray:
		return compareBytes([]byte(av), []byte(b.(parquet.FixedLenByteArray)))
	default:
		return 0
	}
}

func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return len(a) - len(b)
}
