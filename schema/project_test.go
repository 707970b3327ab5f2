package schema

import (
	"testing"

	"github.com/dbparquet/pgparquet/rowtype"
)

func TestProjectByNameIgnoresExtraColumns(t *testing.T) {
	fileDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
		{Name: "extra", Kind: rowtype.KindText},
		{Name: "id", Kind: rowtype.KindInt64},
	}}
	tableDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
		{Name: "id", Kind: rowtype.KindInt64},
	}}

	s, err := BuildArrowSchema(fileDesc, FieldIDMode{Kind: FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mappings, err := Project(s, tableDesc, MatchByName, StrictMatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mappings) != 1 {
		t.Fatalf("expected 1 mapping, got %d", len(mappings))
	}
	if mappings[0].ArrowIndex != 1 {
		t.Fatalf("expected id to map to arrow column 1, got %d", mappings[0].ArrowIndex)
	}
	if mappings[0].NeedsCast {
		t.Fatal("expected exact-match column to need no cast")
	}
}

func TestProjectByPositionZipsRegardlessOfNames(t *testing.T) {
	fileDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
		{Name: "col_a", Kind: rowtype.KindInt64},
		{Name: "col_b", Kind: rowtype.KindText},
	}}
	tableDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
		{Name: "id", Kind: rowtype.KindInt64},
		{Name: "label", Kind: rowtype.KindText},
	}}

	s, err := BuildArrowSchema(fileDesc, FieldIDMode{Kind: FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mappings, err := Project(s, tableDesc, MatchByPosition, StrictMatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mappings[0].ArrowIndex != 0 || mappings[1].ArrowIndex != 1 {
		t.Fatalf("expected positional mapping, got %+v", mappings)
	}
}

func TestProjectByNameExcludesGeneratedColumns(t *testing.T) {
	fileDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
		{Name: "id", Kind: rowtype.KindInt64},
		{Name: "total", Kind: rowtype.KindInt64},
	}}
	tableDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
		{Name: "id", Kind: rowtype.KindInt64},
		{Name: "total", Kind: rowtype.KindInt64, Generated: true},
	}}

	s, err := BuildArrowSchema(fileDesc, FieldIDMode{Kind: FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mappings, err := Project(s, tableDesc, MatchByName, StrictMatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mappings) != 1 || mappings[0].Attr.Name != "id" {
		t.Fatalf("expected only the non-generated id column to be projected, got %+v", mappings)
	}
}

func TestProjectByPositionExcludesGeneratedColumns(t *testing.T) {
	fileDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
		{Name: "col_a", Kind: rowtype.KindInt64},
	}}
	tableDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{
		{Name: "id", Kind: rowtype.KindInt64},
		{Name: "computed", Kind: rowtype.KindInt64, Generated: true},
	}}

	s, err := BuildArrowSchema(fileDesc, FieldIDMode{Kind: FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mappings, err := Project(s, tableDesc, MatchByPosition, StrictMatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mappings) != 1 || mappings[0].Attr.Name != "id" {
		t.Fatalf("expected the generated column to be dropped before positional zip, got %+v", mappings)
	}
}

func TestProjectByNameMissingAttributeErrors(t *testing.T) {
	fileDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{{Name: "other", Kind: rowtype.KindInt64}}}
	tableDesc := &rowtype.TupleDescriptor{Attributes: []rowtype.Attribute{{Name: "id", Kind: rowtype.KindInt64}}}

	s, err := BuildArrowSchema(fileDesc, FieldIDMode{Kind: FieldIDNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Project(s, tableDesc, MatchByName, StrictMatch); err == nil {
		t.Fatal("expected error for missing target column")
	}
}
