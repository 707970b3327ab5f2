package store

import (
	"context"
	"io"
	"testing"
)

func TestMemStoreCreateAndOpenRange(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	wc, err := m.Create(ctx, "mem://b/k")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := wc.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := wc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rr, err := m.OpenRange(ctx, "mem://b/k")
	if err != nil {
		t.Fatalf("OpenRange: %v", err)
	}
	defer rr.Close()

	if rr.Size() != 5 {
		t.Errorf("Size() = %d, want 5", rr.Size())
	}
	buf := make([]byte, 5)
	if _, err := rr.ReadAt(buf, 0); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if string(buf) != "hello" {
		t.Errorf("ReadAt = %q, want %q", buf, "hello")
	}
}

func TestMemStoreOpenRangeMissingObject(t *testing.T) {
	m := NewMemStore()
	if _, err := m.OpenRange(context.Background(), "mem://b/missing"); err == nil {
		t.Fatal("expected an error for a missing object")
	}
}

func TestMemStoreReadAtPastEndReturnsEOF(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()
	wc, _ := m.Create(ctx, "mem://b/k")
	wc.Write([]byte("ab"))
	wc.Close()

	rr, err := m.OpenRange(ctx, "mem://b/k")
	if err != nil {
		t.Fatalf("OpenRange: %v", err)
	}
	defer rr.Close()

	buf := make([]byte, 4)
	n, err := rr.ReadAt(buf, 0)
	if n != 2 || err != io.EOF {
		t.Errorf("ReadAt = (%d, %v), want (2, io.EOF)", n, err)
	}
}

func TestMemStoreListMatchesGlob(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()
	for _, uri := range []string{"mem://b/data_0.parquet", "mem://b/data_1.parquet", "mem://b/other.txt"} {
		wc, _ := m.Create(ctx, uri)
		wc.Close()
	}

	matches, err := m.List(ctx, "mem://b/data_*.parquet")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("List returned %d matches, want 2: %v", len(matches), matches)
	}
}
