package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// HTTP implements Store for generic http(s):// URIs, read-only: Create
// and List both return ErrUriUnsupported, matching spec.md §4.7's "list
// rejects HTTP" rule and the absence of a generic write protocol.
type HTTP struct{}

func (HTTP) Create(ctx context.Context, uri string) (io.WriteCloser, error) {
	return nil, fmt.Errorf("store: write to http(s) uri %q: %w", uri, ErrUriUnsupported)
}

func (HTTP) List(ctx context.Context, uri string) ([]string, error) {
	return nil, fmt.Errorf("store: list http(s) uri %q: %w", uri, ErrUriUnsupported)
}

type httpRangeReader struct {
	uri  string
	size int64
}

func (r *httpRangeReader) Size() int64 { return r.size }

func (r *httpRangeReader) Close() error { return nil }

func (r *httpRangeReader) ReadAt(p []byte, off int64) (int, error) {
	req, err := http.NewRequest(http.MethodGet, r.uri, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", off, off+int64(len(p))-1))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusPartialContent && resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("store: http range read %s: unexpected status %s", r.uri, resp.Status)
	}
	return io.ReadFull(resp.Body, p)
}

func (HTTP) OpenRange(ctx context.Context, uri string) (RangeReader, error) {
	resp, err := http.Head(uri)
	if err != nil {
		return nil, fmt.Errorf("store: http HEAD %s: %w", uri, err)
	}
	resp.Body.Close()
	size, _ := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
	return &httpRangeReader{uri: uri, size: size}, nil
}
