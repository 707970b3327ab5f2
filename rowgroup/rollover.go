package rowgroup

import (
	"fmt"
	"strings"
)

// splitStemExt splits a URI's trailing path segment into its dot-free
// stem and the remainder (everything from the first dot onward,
// preserving compression suffixes like ".parquet.snappy").
func splitStemExt(uri string) (dir, stem, ext string) {
	dir = ""
	base := uri
	if idx := strings.LastIndexByte(uri, '/'); idx >= 0 {
		dir = uri[:idx+1]
		base = uri[idx+1:]
	}
	dot := strings.IndexByte(base, '.')
	if dot < 0 {
		return dir, base, ""
	}
	return dir, base[:dot], base[dot:]
}

// rolloverURI computes the n-th rolled-over object key for uri:
// <stem>_<n><ext>, preserving the directory and any dot-suffixes.
func rolloverURI(uri string, n int) string {
	dir, stem, ext := splitStemExt(uri)
	return fmt.Sprintf("%s%s_%d%s", dir, stem, n, ext)
}
