package engine

import (
	"context"
	"testing"

	"github.com/dbparquet/pgparquet/pqreader"
	"github.com/dbparquet/pgparquet/rowgroup"
	"github.com/dbparquet/pgparquet/rowtype"
	"github.com/dbparquet/pgparquet/store"
)

// TestRowgroupAndPqreaderRoundTripOverMemStore exercises the accumulator
// and streaming reader directly against an in-memory store.MemStore —
// the end-to-end round trip with no filesystem or network involved,
// standing in for the cloud-credential scenarios this package's tests
// can't otherwise cover.
func TestRowgroupAndPqreaderRoundTripOverMemStore(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemStore()
	desc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
		{Name: "a", Kind: rowtype.KindInt32},
		{Name: "b", Kind: rowtype.KindText},
	}}
	const uri = "mem://bucket/data.parquet"

	acc, err := rowgroup.NewAccumulator(ctx, desc, uri, mem, rowgroup.DefaultCopyToOptions())
	if err != nil {
		t.Fatalf("NewAccumulator: %v", err)
	}
	rows := [][]any{
		{int32(1), "alice"},
		{int32(2), nil},
		{nil, "carol"},
	}
	for _, r := range rows {
		if err := acc.Collect(ctx, r); err != nil {
			t.Fatalf("Collect: %v", err)
		}
	}
	if err := acc.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rr, err := mem.OpenRange(ctx, uri)
	if err != nil {
		t.Fatalf("OpenRange: %v", err)
	}
	defer rr.Close()

	reader, err := pqreader.Open(ctx, rr, desc, pqreader.DefaultOptions())
	if err != nil {
		t.Fatalf("pqreader.Open: %v", err)
	}
	defer reader.Close()

	var got [][]any
	for {
		row, ok, err := reader.Next(ctx)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, row)
	}

	if len(got) != len(rows) {
		t.Fatalf("got %d rows, want %d", len(got), len(rows))
	}
	for i, row := range got {
		if row[0] != rows[i][0] {
			t.Errorf("row %d col a = %v, want %v", i, row[0], rows[i][0])
		}
		if row[1] != rows[i][1] {
			t.Errorf("row %d col b = %v, want %v", i, row[1], rows[i][1])
		}
	}
}
