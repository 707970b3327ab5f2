package convert

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/shopspring/decimal"

	"github.com/dbparquet/pgparquet/rowtype"
	"github.com/dbparquet/pgparquet/schema"
)

func TestDecimalRoundTripWithinPrecision(t *testing.T) {
	attr := rowtype.Attribute{Name: "amount", Kind: rowtype.KindDecimal, TypeMod: rowtype.TypeMod{Precision: 10, Scale: 2}}
	desc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{attr}}
	s, err := schema.BuildArrowSchema(desc, schema.FieldIDMode{Kind: schema.FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	field := s.Field(0)

	want := decimal.RequireFromString("123.45")
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
	got := out[0].(decimal.Decimal)
	if !got.Equal(want) {
		t.Fatalf("decimal round trip mismatch: got %s want %s", got, want)
	}
}

func TestDecimalOverPrecisionRoundTripsAsText(t *testing.T) {
	attr := rowtype.Attribute{Name: "amount", Kind: rowtype.KindDecimal, TypeMod: rowtype.TypeMod{Precision: 50, Scale: 4}}
	desc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{attr}}
	s, err := schema.BuildArrowSchema(desc, schema.FieldIDMode{Kind: schema.FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	field := s.Field(0)

	want := decimal.RequireFromString("123456789012345678901234567890123456789.1234")
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
	got := out[0].(decimal.Decimal)
	if got.String() != want.String() {
		t.Fatalf("text-fallback decimal mismatch: got %s want %s", got.String(), want.String())
	}
}
