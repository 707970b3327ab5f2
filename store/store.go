// Package store abstracts the object-store/filesystem/program backends
// COPY TO/FROM can target: local files, S3, Azure Blob, read-only HTTP,
// and the COPY ... PROGRAM pipe bridge.
package store

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Scheme is the classified backend a URI resolves to.
type Scheme int

const (
	SchemeLocal Scheme = iota
	SchemeS3
	SchemeAzure
	SchemeHTTP
	SchemeProgram
)

func (s Scheme) String() string {
	switch s {
	case SchemeLocal:
		return "local"
	case SchemeS3:
		return "s3"
	case SchemeAzure:
		return "azure"
	case SchemeHTTP:
		return "http"
	case SchemeProgram:
		return "program"
	default:
		return "unknown"
	}
}

// ErrUriUnsupported is returned for operations a scheme cannot support,
// e.g. List on an HTTP URI.
var ErrUriUnsupported = fmt.Errorf("store: operation unsupported for this scheme")

// Classify implements the scheme table: file:// and bare paths are Local;
// s3:// and virtual-hosted *.s3.amazonaws.com are S3; az://, azure:// and
// *.blob.core.windows.net are Azure; http(s):// is HTTP.
func Classify(raw string) (Scheme, error) {
	if !strings.Contains(raw, "://") {
		return SchemeLocal, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return SchemeLocal, fmt.Errorf("store: parsing uri %q: %w", raw, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "", "file":
		return SchemeLocal, nil
	case "s3":
		return SchemeS3, nil
	case "az", "azure":
		return SchemeAzure, nil
	case "http", "https":
		host := strings.ToLower(u.Hostname())
		if strings.Contains(host, "blob.core.windows.net") {
			return SchemeAzure, nil
		}
		if strings.HasSuffix(host, ".s3.amazonaws.com") || strings.Contains(host, ".s3.") {
			return SchemeS3, nil
		}
		return SchemeHTTP, nil
	default:
		return SchemeLocal, fmt.Errorf("store: unrecognized scheme %q in uri %q", u.Scheme, raw)
	}
}

// RangeReader is a seekable, closeable random-access handle used by
// pqreader to read a Parquet file's footer and row groups without
// buffering the whole object in memory.
type RangeReader interface {
	io.ReaderAt
	io.Closer
	// Size returns the object's total byte length.
	Size() int64
}

// Store is the per-scheme backend interface. Create opens (and
// truncates/overwrites) an object for writing; OpenRange opens one for
// random-access reads; List expands a glob-style prefix into concrete
// object keys.
type Store interface {
	Create(ctx context.Context, uri string) (io.WriteCloser, error)
	OpenRange(ctx context.Context, uri string) (RangeReader, error)
	List(ctx context.Context, uri string) ([]string, error)
}

// For resolves uri's classified scheme to a Store implementation.
func For(uri string) (Store, error) {
	scheme, err := Classify(uri)
	if err != nil {
		return nil, err
	}
	switch scheme {
	case SchemeLocal:
		return Local{}, nil
	case SchemeS3:
		return NewS3(), nil
	case SchemeAzure:
		return NewAzure(), nil
	case SchemeHTTP:
		return HTTP{}, nil
	default:
		return nil, fmt.Errorf("store: no backend for scheme %v", scheme)
	}
}
