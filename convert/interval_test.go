package convert

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/dbparquet/pgparquet/rowtype"
	"github.com/dbparquet/pgparquet/schema"
)

func TestIntervalRoundTrip(t *testing.T) {
	attr := rowtype.Attribute{Name: "duration", Kind: rowtype.KindInterval}
	desc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{attr}}
	s, err := schema.BuildArrowSchema(desc, schema.FieldIDMode{Kind: schema.FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	field := s.Field(0)

	want := Interval{Months: 3, Days: 10, Micros: 5_500_000}
	mem := memory.NewGoAllocator()
	arr, err := EncodeColumn(attr, &field, []any{want}, mem, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer arr.Release()

	out, err := DecodeColumn(attr, &field, arr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out[0].(Interval)
	if got != want {
		t.Fatalf("interval round trip mismatch: got %+v want %+v", got, want)
	}
}
