package engine

import (
	"strings"

	"github.com/dbparquet/pgparquet/rowgroup"
)

// compressionSuffixes maps a URI's trailing dot-suffix to the codec COPY
// TO should infer when compression wasn't set explicitly.
var compressionSuffixes = map[string]rowgroup.Compression{
	".snappy": rowgroup.CompressionSnappy,
	".gz":     rowgroup.CompressionGzip,
	".br":     rowgroup.CompressionBrotli,
	".lz4":    rowgroup.CompressionLZ4,
	".zst":    rowgroup.CompressionZstd,
}

// IsParquetTarget reports whether a COPY command whose target is uri
// (with the given format option, "" if unset) should be handled by this
// engine rather than deferred to the host's default bulk-load path:
// either an explicit format=parquet option, or a .parquet path suffix
// optionally followed by one recognized compression suffix.
func IsParquetTarget(uri, formatOption string) bool {
	if strings.EqualFold(formatOption, "parquet") {
		return true
	}
	return hasParquetSuffix(uri)
}

func hasParquetSuffix(uri string) bool {
	base := strings.ToLower(uri)
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	idx := strings.Index(base, ".parquet")
	if idx < 0 {
		return false
	}
	rest := base[idx+len(".parquet"):]
	if rest == "" {
		return true
	}
	_, ok := compressionSuffixes[rest]
	return ok
}

// compressionFromExtension infers the compression codec from uri's
// trailing suffix (".../x.parquet.gz" -> CompressionGzip), returning
// CompressionUnset when no recognized suffix is present so the caller
// falls back to its own default.
func compressionFromExtension(uri string) rowgroup.Compression {
	base := strings.ToLower(uri)
	for suffix, c := range compressionSuffixes {
		if strings.HasSuffix(base, suffix) {
			return c
		}
	}
	return rowgroup.CompressionUnset
}
