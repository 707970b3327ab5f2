package convert

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/uuid"

	"github.com/dbparquet/pgparquet/rowtype"
	"github.com/dbparquet/pgparquet/schema"
)

func TestIntRoundTrip(t *testing.T) {
	attr := rowtype.Attribute{Name: "id", Kind: rowtype.KindInt64}
	desc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{attr}}
	s, err := schema.BuildArrowSchema(desc, schema.FieldIDMode{Kind: schema.FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	field := s.Field(0)

	mem := memory.NewGoAllocator()
	arr, err := EncodeColumn(attr, &field, []any{int64(1), nil, int64(3)}, mem, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer arr.Release()

	out, err := DecodeColumn(attr, &field, arr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != int64(1) || out[1] != nil || out[2] != int64(3) {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestUUIDRoundTrip(t *testing.T) {
	attr := rowtype.Attribute{Name: "id", Kind: rowtype.KindUUID}
	desc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{attr}}
	s, err := schema.BuildArrowSchema(desc, schema.FieldIDMode{Kind: schema.FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	field := s.Field(0)

	u := uuid.New()
	mem := memory.NewGoAllocator()
	arr, err := EncodeColumn(attr, &field, []any{u}, mem, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer arr.Release()

	out, err := DecodeColumn(attr, &field, arr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].(uuid.UUID) != u {
		t.Fatalf("uuid round trip mismatch: %v != %v", out[0], u)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	attr := rowtype.Attribute{Name: "created_at", Kind: rowtype.KindTimestamp}
	desc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{attr}}
	s, err := schema.BuildArrowSchema(desc, schema.FieldIDMode{Kind: schema.FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	field := s.Field(0)

	want := time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)
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
	got := out[0].(time.Time)
	if !got.Equal(want) {
		t.Fatalf("timestamp round trip mismatch: got %v want %v", got, want)
	}
}

func TestListOfIntRoundTrip(t *testing.T) {
	attr := rowtype.Attribute{
		Name:    "tags",
		Kind:    rowtype.KindArray,
		Element: &rowtype.Attribute{Name: "item", Kind: rowtype.KindInt32},
	}
	desc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{attr}}
	s, err := schema.BuildArrowSchema(desc, schema.FieldIDMode{Kind: schema.FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	field := s.Field(0)

	mem := memory.NewGoAllocator()
	rows := []any{
		[]any{int32(1), int32(2)},
		nil,
		[]any{},
	}
	arr, err := EncodeColumn(attr, &field, rows, mem, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer arr.Release()

	out, err := DecodeColumn(attr, &field, arr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(out))
	}
	got0 := out[0].([]any)
	if len(got0) != 2 || got0[0] != int32(1) || got0[1] != int32(2) {
		t.Fatalf("row 0 mismatch: %+v", got0)
	}
	if out[1] != nil {
		t.Fatalf("row 1 should be nil (null list), got %+v", out[1])
	}
	got2 := out[2].([]any)
	if len(got2) != 0 {
		t.Fatalf("row 2 should be empty non-null list, got %+v", got2)
	}
}

func TestStructRoundTrip(t *testing.T) {
	attr := rowtype.Attribute{
		Name: "address",
		Kind: rowtype.KindComposite,
		Composite: &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
			{Name: "city", Kind: rowtype.KindText},
			{Name: "zip", Kind: rowtype.KindInt32},
		}},
	}
	desc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{attr}}
	s, err := schema.BuildArrowSchema(desc, schema.FieldIDMode{Kind: schema.FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	field := s.Field(0)

	mem := memory.NewGoAllocator()
	rows := []any{
		[]any{"Springfield", int32(12345)},
		nil,
	}
	arr, err := EncodeColumn(attr, &field, rows, mem, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer arr.Release()

	out, err := DecodeColumn(attr, &field, arr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tuple := out[0].([]any)
	if tuple[0] != "Springfield" || tuple[1] != int32(12345) {
		t.Fatalf("struct round trip mismatch: %+v", tuple)
	}
	if out[1] != nil {
		t.Fatalf("expected null struct row, got %+v", out[1])
	}
}

func TestMapRoundTrip(t *testing.T) {
	attr := rowtype.Attribute{
		Name:  "attrs",
		Kind:  rowtype.KindMap,
		Key:   &rowtype.Attribute{Name: "key", Kind: rowtype.KindText},
		Value: &rowtype.Attribute{Name: "val", Kind: rowtype.KindText},
	}
	desc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{attr}}
	s, err := schema.BuildArrowSchema(desc, schema.FieldIDMode{Kind: schema.FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	field := s.Field(0)

	mem := memory.NewGoAllocator()
	rows := []any{
		[]MapEntry{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}},
		nil,
	}
	arr, err := EncodeColumn(attr, &field, rows, mem, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer arr.Release()

	out, err := DecodeColumn(attr, &field, arr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries := out[0].([]MapEntry)
	if len(entries) != 2 || entries[0].Key != "a" || entries[0].Value != "1" {
		t.Fatalf("map round trip mismatch: %+v", entries)
	}
	if out[1] != nil {
		t.Fatalf("expected null map row, got %+v", out[1])
	}
}
