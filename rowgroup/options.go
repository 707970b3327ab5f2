// Package rowgroup implements the row-group accumulator and Parquet
// writer: collect policy, byte/row flush thresholds, and file rollover.
package rowgroup

import (
	"fmt"

	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"

	"github.com/dbparquet/pgparquet/schema"
)

// Compression mirrors the codec set COPY TO accepts.
type Compression int

const (
	CompressionUnset Compression = iota
	CompressionUncompressed
	CompressionSnappy
	CompressionGzip
	CompressionBrotli
	CompressionLZ4
	CompressionLZ4Raw
	CompressionZstd
)

func (c Compression) parquetCodec() compress.Compression {
	switch c {
	case CompressionUncompressed:
		return compress.Codecs.Uncompressed
	case CompressionGzip:
		return compress.Codecs.Gzip
	case CompressionBrotli:
		return compress.Codecs.Brotli
	case CompressionLZ4:
		return compress.Codecs.Lz4
	case CompressionLZ4Raw:
		return compress.Codecs.Lz4Raw
	case CompressionZstd:
		return compress.Codecs.Zstd
	default:
		return compress.Codecs.Snappy
	}
}

// hasLevels reports whether compression_level is meaningful for c.
func (c Compression) hasLevels() bool {
	switch c {
	case CompressionGzip, CompressionBrotli, CompressionZstd:
		return true
	default:
		return false
	}
}

const (
	defaultRowGroupSize      = 122_880
	defaultRowGroupSizeBytes = 128 << 20
	minFileSizeBytes         = 1 << 20 // 1 MiB
)

// CopyToOptions mirrors COPY TO's option table: row-group sizing, file
// rollover, compression, Parquet version and field-ID assignment.
type CopyToOptions struct {
	RowGroupSize      int64
	RowGroupSizeBytes int64
	// FileSizeBytes is the rollover threshold; zero means no rollover
	// (single output file).
	FileSizeBytes    int64
	Compression      Compression
	CompressionLevel *int
	ParquetVersion   parquet.Version
	FieldIDs         schema.FieldIDMode
}

// DefaultCopyToOptions returns the table's documented defaults. Compression
// is left CompressionUnset so callers can infer it from the URI extension
// before falling back to snappy.
func DefaultCopyToOptions() CopyToOptions {
	return CopyToOptions{
		RowGroupSize:      defaultRowGroupSize,
		RowGroupSizeBytes: defaultRowGroupSizeBytes,
		Compression:       CompressionUnset,
		ParquetVersion:    parquet.V2_LATEST,
		FieldIDs:          schema.FieldIDMode{Kind: schema.FieldIDNone},
	}
}

// Validate runs the pre-flight checks COPY TO must perform before any file
// is touched: rollover threshold floor and compression-level range.
func (o CopyToOptions) Validate() error {
	if o.FileSizeBytes != 0 && o.FileSizeBytes < minFileSizeBytes {
		return fmt.Errorf("rowgroup: file_size_bytes must be >= %d, got %d", minFileSizeBytes, o.FileSizeBytes)
	}
	if o.CompressionLevel != nil {
		c := o.resolvedCompression()
		if !c.hasLevels() {
			return fmt.Errorf("rowgroup: compression_level is not valid for codec %v", c)
		}
		lvl := *o.CompressionLevel
		switch c {
		case CompressionGzip:
			if lvl < 0 || lvl > 10 {
				return fmt.Errorf("rowgroup: gzip compression_level must be in 0..=10, got %d", lvl)
			}
		case CompressionBrotli:
			if lvl < 0 || lvl > 11 {
				return fmt.Errorf("rowgroup: brotli compression_level must be in 0..=11, got %d", lvl)
			}
		case CompressionZstd:
			if lvl < 1 || lvl > 22 {
				return fmt.Errorf("rowgroup: zstd compression_level must be in 1..=22, got %d", lvl)
			}
		}
	}
	return nil
}

func (o CopyToOptions) resolvedCompression() Compression {
	if o.Compression == CompressionUnset {
		return CompressionSnappy
	}
	return o.Compression
}
