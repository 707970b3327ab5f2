package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local implements Store over the server process's own filesystem,
// grounded on the teacher's file.go directory-creation/overwrite
// behavior in GetIo's default case: ensure the parent directory exists,
// remove any existing file at the target path, then open fresh.
type Local struct{}

func (Local) Create(ctx context.Context, uri string) (io.WriteCloser, error) {
	path := localPath(uri)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: creating directory %s: %w", dir, err)
	}
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("store: removing existing file %s: %w", path, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}
	return f, nil
}

type localRangeReader struct {
	*os.File
	size int64
}

func (r *localRangeReader) Size() int64 { return r.size }

func (Local) OpenRange(ctx context.Context, uri string) (RangeReader, error) {
	path := localPath(uri)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("store: stat %s: %w", path, err)
	}
	return &localRangeReader{File: f, size: info.Size()}, nil
}

func (Local) List(ctx context.Context, uri string) ([]string, error) {
	pattern := localPath(uri)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("store: globbing %s: %w", pattern, err)
	}
	return matches, nil
}

func localPath(uri string) string {
	const prefix = "file://"
	if len(uri) >= len(prefix) && uri[:len(prefix)] == prefix {
		return uri[len(prefix):]
	}
	return uri
}
