package schema

import (
	"errors"
	"testing"

	"github.com/dbparquet/pgparquet/rowtype"
)

func TestVerifyOrCoerceExactMatchNeedsNoCast(t *testing.T) {
	desc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
		{Name: "id", Kind: rowtype.KindInt64},
	}}
	s, err := BuildArrowSchema(desc, FieldIDMode{Kind: FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	casts, err := VerifyOrCoerce(s, desc, StrictMatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if casts[0] != nil {
		t.Fatalf("expected no cast needed, got %v", casts[0])
	}
}

func TestVerifyOrCoerceRelaxedAllowsNarrowing(t *testing.T) {
	fileDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{{Name: "id", Kind: rowtype.KindInt64}}}
	tableDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{{Name: "id", Kind: rowtype.KindInt32}}}

	s, err := BuildArrowSchema(fileDesc, FieldIDMode{Kind: FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := VerifyOrCoerce(s, tableDesc, StrictMatch); err == nil {
		t.Fatal("expected strict mode to reject int64->int32 narrowing")
	}

	casts, err := VerifyOrCoerce(s, tableDesc, RelaxedMatch)
	if err != nil {
		t.Fatalf("expected relaxed mode to allow narrowing, got %v", err)
	}
	if casts[0] == nil {
		t.Fatal("expected a cast target for the narrowing column")
	}
}

func TestVerifyOrCoerceMissingColumnErrors(t *testing.T) {
	fileDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{{Name: "other", Kind: rowtype.KindInt64}}}
	tableDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{{Name: "id", Kind: rowtype.KindInt64}}}

	s, err := BuildArrowSchema(fileDesc, FieldIDMode{Kind: FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := VerifyOrCoerce(s, tableDesc, StrictMatch); err == nil {
		t.Fatal("expected missing-column error")
	}
}

func TestVerifyOrCoerceStructFieldNameMismatch(t *testing.T) {
	fileDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
		{Name: "addr", Kind: rowtype.KindComposite, Composite: &rowtype.TupleDescriptor{
			Attributes: []rowtype.Attribute{{Name: "town", Kind: rowtype.KindText}},
		}},
	}}
	tableDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
		{Name: "addr", Kind: rowtype.KindComposite, Composite: &rowtype.TupleDescriptor{
			Attributes: []rowtype.Attribute{{Name: "city", Kind: rowtype.KindText}},
		}},
	}}

	s, err := BuildArrowSchema(fileDesc, FieldIDMode{Kind: FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var mismatch *SchemaMismatchError
	_, err = VerifyOrCoerce(s, tableDesc, RelaxedMatch)
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected SchemaMismatchError, got %v", err)
	}
	if mismatch.Kind != NoCoercionPath {
		t.Fatalf("expected NoCoercionPath, got %v", mismatch.Kind)
	}
}
