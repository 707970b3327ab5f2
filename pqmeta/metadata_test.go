package pqmeta

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dbparquet/pgparquet/rowgroup"
	"github.com/dbparquet/pgparquet/rowtype"
	"github.com/dbparquet/pgparquet/schema"
	"github.com/dbparquet/pgparquet/store"
)

func writeTestFile(t *testing.T, opts rowgroup.CopyToOptions, rows [][]any, desc *rowtype.TupleDescriptor) string {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "meta.parquet")

	acc, err := rowgroup.NewAccumulator(ctx, desc, path, store.Local{}, opts)
	if err != nil {
		t.Fatalf("NewAccumulator: %v", err)
	}
	for _, r := range rows {
		if err := acc.Collect(ctx, r); err != nil {
			t.Fatalf("Collect: %v", err)
		}
	}
	if err := acc.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func testDescriptor() *rowtype.TupleDescriptor {
	return &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
		{Name: "id", Kind: rowtype.KindInt64},
		{Name: "name", Kind: rowtype.KindText},
	}}
}

func TestMetadataRowsCoverEveryRowGroupAndColumn(t *testing.T) {
	opts := rowgroup.DefaultCopyToOptions()
	opts.RowGroupSize = 2
	path := writeTestFile(t, opts, [][]any{
		{int64(1), "alice"},
		{int64(2), "bob"},
		{int64(3), "carol"},
	}, testDescriptor())

	rows, err := Metadata(context.Background(), path)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	// 2 row groups (sizes 2, 1) x 2 columns = 4 rows.
	if len(rows) != 4 {
		t.Fatalf("expected 4 metadata rows, got %d: %+v", len(rows), rows)
	}
	for _, r := range rows {
		if r.Filename != path {
			t.Errorf("row filename = %q, want %q", r.Filename, path)
		}
		if r.NumValues == 0 {
			t.Errorf("row %+v has zero NumValues", r)
		}
	}
}

func TestFileMetadataReportsRowGroupCount(t *testing.T) {
	opts := rowgroup.DefaultCopyToOptions()
	opts.RowGroupSize = 1
	path := writeTestFile(t, opts, [][]any{
		{int64(1), "alice"},
		{int64(2), "bob"},
	}, testDescriptor())

	row, err := FileMetadata(context.Background(), path)
	if err != nil {
		t.Fatalf("FileMetadata: %v", err)
	}
	if row.NumRows != 2 {
		t.Errorf("NumRows = %d, want 2", row.NumRows)
	}
	if row.NumRowGroups != 2 {
		t.Errorf("NumRowGroups = %d, want 2", row.NumRowGroups)
	}
}

func TestSchemaWalksRootAndLeaves(t *testing.T) {
	path := writeTestFile(t, rowgroup.DefaultCopyToOptions(), [][]any{
		{int64(1), "alice"},
	}, testDescriptor())

	rows, err := Schema(context.Background(), path)
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	// root struct + id leaf + name leaf = 3 nodes at minimum.
	if len(rows) < 3 {
		t.Fatalf("expected at least 3 schema rows, got %d: %+v", len(rows), rows)
	}
	var sawID, sawName bool
	for _, r := range rows {
		switch r.Name {
		case "id":
			sawID = true
		case "name":
			sawName = true
		}
	}
	if !sawID || !sawName {
		t.Errorf("schema rows missing expected leaves: %+v", rows)
	}
}

func TestColumnStatsAggregatesAcrossRowGroups(t *testing.T) {
	fieldIDs, err := schema.ParseFieldIDMode("auto")
	if err != nil {
		t.Fatalf("ParseFieldIDMode: %v", err)
	}
	opts := rowgroup.DefaultCopyToOptions()
	opts.RowGroupSize = 1
	opts.FieldIDs = fieldIDs
	path := writeTestFile(t, opts, [][]any{
		{int64(5), "zeta"},
		{int64(1), "alpha"},
	}, testDescriptor())

	rows, err := ColumnStats(context.Background(), path)
	if err != nil {
		t.Fatalf("ColumnStats: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("expected at least one column_stats row with auto field ids")
	}
}

func TestKVMetadataEmptyByDefault(t *testing.T) {
	path := writeTestFile(t, rowgroup.DefaultCopyToOptions(), [][]any{
		{int64(1), "alice"},
	}, testDescriptor())

	rows, err := KVMetadata(context.Background(), path)
	if err != nil {
		t.Fatalf("KVMetadata: %v", err)
	}
	// no GeoParquet columns in this fixture; empty or nil is acceptable.
	if len(rows) != 0 {
		t.Fatalf("expected no key-value metadata, got %v", rows)
	}
}
