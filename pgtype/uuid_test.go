package pgtype

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDBytesRoundTrip(t *testing.T) {
	u := uuid.New()
	b := UUIDBytes(u)
	got, err := BytesToUUID(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != u {
		t.Fatalf("round trip mismatch: want %s got %s", u, got)
	}
}

func TestBytesToUUIDWrongLength(t *testing.T) {
	_, err := BytesToUUID([]byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected error for wrong-length input")
	}
}

func TestParseUUIDText(t *testing.T) {
	u := uuid.New()
	got, err := ParseUUIDText(u.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != u {
		t.Fatalf("want %s got %s", u, got)
	}
	if _, err := ParseUUIDText("not-a-uuid"); err == nil {
		t.Fatal("expected error for malformed uuid text")
	}
}

func TestConvertSQLServerUUID(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	got := ConvertSQLServerUUID(raw)
	want := []byte{0x04, 0x03, 0x02, 0x01, 0x06, 0x05, 0x08, 0x07, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: want %x got %x", i, want[i], got[i])
		}
	}
}
