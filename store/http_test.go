package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func TestHTTPOpenRangeAndReadAt(t *testing.T) {
	body := []byte("parquet file contents for range reads")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
			return
		}
		rangeHeader := strings.TrimPrefix(r.Header.Get("Range"), "bytes=")
		if rangeHeader == "" {
			w.Write(body)
			return
		}
		start, end, ok := strings.Cut(rangeHeader, "-")
		if !ok {
			http.Error(w, "bad range", http.StatusBadRequest)
			return
		}
		s, _ := strconv.Atoi(start)
		e, _ := strconv.Atoi(end)
		w.WriteHeader(http.StatusPartialContent)
		w.Write(body[s : e+1])
	}))
	defer srv.Close()

	rr, err := HTTP{}.OpenRange(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("OpenRange: %v", err)
	}
	defer rr.Close()

	if rr.Size() != int64(len(body)) {
		t.Errorf("Size() = %d, want %d", rr.Size(), len(body))
	}

	buf := make([]byte, 8)
	if _, err := rr.ReadAt(buf, 9); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if string(buf) != string(body[9:17]) {
		t.Errorf("ReadAt = %q, want %q", buf, body[9:17])
	}
}

func TestHTTPCreateAndListUnsupported(t *testing.T) {
	if _, err := (HTTP{}).Create(context.Background(), "https://example.com/x"); err == nil {
		t.Fatal("expected ErrUriUnsupported from Create")
	}
	if _, err := (HTTP{}).List(context.Background(), "https://example.com/x"); err == nil {
		t.Fatal("expected ErrUriUnsupported from List")
	}
}
