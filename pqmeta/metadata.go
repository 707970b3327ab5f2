// Package pqmeta implements the read-only metadata introspection surface:
// per-(row-group, column) statistics, file-level summary, raw key-value
// metadata, flattened schema elements, and per-field aggregated column
// statistics. Every entry point opens a store.RangeReader over the URI and
// walks arrow-go's low-level Parquet footer (parquet/file, parquet/metadata)
// directly — none of this needs the Arrow conversion layer pqreader uses,
// since it never materializes row data.
package pqmeta

import (
	"context"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"

	"github.com/dbparquet/pgparquet/store"
)

// MetadataRow is one row of the metadata(uri) row shape: one per
// (row-group, column) pair in the file, matching the row-group/column
// statistics table the original extension exposes under the same name.
type MetadataRow struct {
	Filename              string
	RowGroupID            int64
	RowGroupNumRows       int64
	RowGroupNumColumns    int64
	RowGroupBytes         int64
	ColumnID              int64
	FileOffset            int64
	NumValues             int64
	PathInSchema          string
	TypeName              string
	StatsNullCount        *int64
	StatsDistinctCount    *int64
	StatsMin              *string
	StatsMax              *string
	Compression           string
	Encodings             string
	IndexPageOffset       *int64
	DictionaryPageOffset  *int64
	DataPageOffset        int64
	TotalCompressedSize   int64
	TotalUncompressedSize int64
}

// FileMetadataRow is one row of the file_metadata(uri) row shape: exactly
// one row per file.
type FileMetadataRow struct {
	Filename      string
	CreatedBy     *string
	NumRows       int64
	NumRowGroups  int64
	FormatVersion string
}

// KVMetadataRow is one row of the kv_metadata(uri) row shape: one per raw
// key-value pair recorded in the file's footer (GeoParquet's
// "geo" key among them, when geometry columns are present).
type KVMetadataRow struct {
	Filename string
	Key      []byte
	Value    []byte // nil means the pair's value side is SQL NULL
}

// openFooter opens uri through the store abstraction and parses its
// Parquet footer, returning a close function that releases both the
// parsed reader and the underlying range reader.
func openFooter(ctx context.Context, uri string) (*file.Reader, func() error, error) {
	st, err := store.For(uri)
	if err != nil {
		return nil, nil, err
	}
	rr, err := st.OpenRange(ctx, uri)
	if err != nil {
		return nil, nil, fmt.Errorf("pqmeta: opening %s: %w", uri, err)
	}
	pf, err := file.NewParquetReader(rr)
	if err != nil {
		rr.Close()
		return nil, nil, fmt.Errorf("pqmeta: reading footer of %s: %w", uri, err)
	}
	return pf, func() error {
		closeErr := pf.Close()
		if rangeErr := rr.Close(); closeErr == nil {
			closeErr = rangeErr
		}
		return closeErr
	}, nil
}

// Metadata returns one row per (row-group, column) pair in uri.
func Metadata(ctx context.Context, uri string) ([]MetadataRow, error) {
	pf, closeFn, err := openFooter(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	sc := pf.MetaData().Schema

	var rows []MetadataRow
	for g := 0; g < pf.NumRowGroups(); g++ {
		rgMeta := pf.RowGroup(g).MetaData()
		numCols := rgMeta.NumColumns()

		for c := 0; c < numCols; c++ {
			colMeta, err := rgMeta.ColumnChunk(c)
			if err != nil {
				return nil, fmt.Errorf("pqmeta: reading column chunk %d of row group %d in %s: %w", c, g, uri, err)
			}

			row := MetadataRow{
				Filename:              uri,
				RowGroupID:            int64(g),
				RowGroupNumRows:       rgMeta.NumRows(),
				RowGroupNumColumns:    int64(numCols),
				RowGroupBytes:         rgMeta.TotalByteSize(),
				ColumnID:              int64(c),
				FileOffset:            colMeta.FileOffset(),
				NumValues:             colMeta.NumValues(),
				PathInSchema:          strings.Join(colMeta.PathInSchema(), "."),
				TypeName:              colMeta.Type().String(),
				Compression:           colMeta.Compression().String(),
				Encodings:             joinEncodings(colMeta.Encodings()),
				DataPageOffset:        colMeta.DataPageOffset(),
				TotalCompressedSize:   colMeta.TotalCompressedSize(),
				TotalUncompressedSize: colMeta.TotalUncompressedSize(),
			}

			if off := colMeta.DictionaryPageOffset(); off > 0 {
				row.DictionaryPageOffset = int64Ptr(off)
			}
			if off := colMeta.IndexPageOffset(); off > 0 {
				row.IndexPageOffset = int64Ptr(off)
			}

			descr := sc.Column(c)
			if stats, ok := columnStatistics(colMeta); ok {
				if stats.HasMinMax() {
					row.StatsMin = strPtr(statValueToPgString(stats.Min(), descr))
					row.StatsMax = strPtr(statValueToPgString(stats.Max(), descr))
				}
				if stats.HasNullCount() {
					row.StatsNullCount = int64Ptr(stats.NullCount())
				}
				if stats.HasDistinctCount() {
					row.StatsDistinctCount = int64Ptr(stats.DistinctCount())
				}
			}

			rows = append(rows, row)
		}
	}
	return rows, nil
}

// FileMetadata returns the single summary row for uri.
func FileMetadata(ctx context.Context, uri string) (FileMetadataRow, error) {
	pf, closeFn, err := openFooter(ctx, uri)
	if err != nil {
		return FileMetadataRow{}, err
	}
	defer closeFn()

	meta := pf.MetaData()
	row := FileMetadataRow{
		Filename:      uri,
		NumRows:       meta.NumRows(),
		NumRowGroups:  int64(pf.NumRowGroups()),
		FormatVersion: meta.Version().String(),
	}
	if createdBy := meta.CreatedBy(); createdBy != "" {
		row.CreatedBy = strPtr(createdBy)
	}
	return row, nil
}

// KVMetadata returns every raw key-value pair recorded in uri's footer.
func KVMetadata(ctx context.Context, uri string) ([]KVMetadataRow, error) {
	pf, closeFn, err := openFooter(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	kv := pf.MetaData().KeyValueMetadata()
	if kv == nil {
		return nil, nil
	}

	rows := make([]KVMetadataRow, 0, kv.Len())
	for i := 0; i < kv.Len(); i++ {
		key, value := kv.Key(i), kv.Value(i)
		row := KVMetadataRow{Filename: uri, Key: []byte(key)}
		if value != nil {
			row.Value = []byte(*value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func joinEncodings(encodings []parquet.Encoding) string {
	parts := make([]string, len(encodings))
	for i, e := range encodings {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}

func strPtr(s string) *string   { return &s }
func int64Ptr(v int64) *int64   { return &v }
