package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorIsMatchesOnKindOnly(t *testing.T) {
	wrapped := newError(KindNoCoercionPath, []string{"a", "b"}, fmt.Errorf("boom"))
	if !errors.Is(wrapped, ErrNoCoercionPath) {
		t.Errorf("expected errors.Is to match on Kind regardless of Path/Cause")
	}
	if errors.Is(wrapped, ErrIo) {
		t.Errorf("did not expect a KindNoCoercionPath error to match ErrIo")
	}
}

func TestErrorUnwrapExposesCause(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	wrapped := newError(KindIo, nil, cause)
	if !errors.Is(wrapped, cause) {
		t.Errorf("expected errors.Is(wrapped, cause) via Unwrap")
	}
}

func TestErrorStringIncludesKindAndPath(t *testing.T) {
	err := newError(KindCoercion, []string{"attrs", "tags"}, fmt.Errorf("bad value"))
	msg := err.Error()
	if msg == "" {
		t.Fatal("expected a non-empty error string")
	}
	if !strings.Contains(msg, KindCoercion.String()) {
		t.Errorf("error string %q does not mention kind %q", msg, KindCoercion.String())
	}
	if !strings.Contains(msg, "attrs") || !strings.Contains(msg, "tags") {
		t.Errorf("error string %q does not mention path [attrs tags]", msg)
	}
}

func TestErrorKindStringCoversAllKinds(t *testing.T) {
	kinds := []ErrorKind{
		KindSchemaMismatch, KindNoCoercionPath, KindNoStrictCoercionPath,
		KindMapEntriesNullable, KindCoercion, KindInvalidOption,
		KindUriUnsupported, KindPermissionDenied, KindIo, KindCancelled,
	}
	for _, k := range kinds {
		if k.String() == "unknown" {
			t.Errorf("ErrorKind %d has no String() case", k)
		}
	}
}
