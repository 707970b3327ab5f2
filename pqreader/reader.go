// Package pqreader implements the streaming Parquet reader: it opens a
// record-batch stream sized to row_group_size, applies the Schema
// Mapper's projection/coercion once, and decodes each batch into rows
// through convert.DecodeColumn.
package pqreader

import (
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/dbparquet/pgparquet/convert"
	"github.com/dbparquet/pgparquet/rowtype"
	"github.com/dbparquet/pgparquet/schema"
)

// ErrCancelled is returned when the context passed to Next is done between
// batches; the in-flight pqarrow record reader is dropped rather than
// reused.
var ErrCancelled = fmt.Errorf("pqreader: cancelled")

// Options configures how the Parquet file's schema is projected onto the
// target descriptor.
type Options struct {
	MatchBy      schema.MatchBy
	CastMode     schema.CastMode
	RowGroupSize int64
}

func DefaultOptions() Options {
	return Options{MatchBy: schema.MatchByPosition, CastMode: schema.StrictMatch, RowGroupSize: 122_880}
}

// Reader streams rows out of a Parquet file in descriptor-attribute order,
// decoding each column exactly once per batch (never per row) via
// convert.DecodeColumn.
type Reader struct {
	pf       *file.Reader
	fr       *pqarrow.FileReader
	mappings []schema.ColumnMapping
	mem      memory.Allocator

	rr      pqarrow.RecordReader
	rows    [][]any // current batch, row-major, in descriptor order
	cursor  int
	drained bool
}

// Open opens a Parquet file over ra (an io.ReaderAt — a local os.File or a
// store.RangeReader over a remote object) and computes the column
// projection against desc once, up front.
func Open(ctx context.Context, ra io.ReaderAt, desc *rowtype.TupleDescriptor, opts Options) (*Reader, error) {
	pf, err := file.NewParquetReader(ra)
	if err != nil {
		return nil, fmt.Errorf("pqreader: opening file: %w", err)
	}

	mem := memory.NewGoAllocator()
	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{BatchSize: opts.RowGroupSize}, mem)
	if err != nil {
		pf.Close()
		return nil, fmt.Errorf("pqreader: wrapping arrow reader: %w", err)
	}

	arrowSchema, err := fr.Schema()
	if err != nil {
		pf.Close()
		return nil, fmt.Errorf("pqreader: reading schema: %w", err)
	}

	mappings, err := schema.Project(arrowSchema, desc, opts.MatchBy, opts.CastMode)
	if err != nil {
		pf.Close()
		return nil, err
	}

	colIndices := make([]int, len(mappings))
	for i, m := range mappings {
		colIndices[i] = m.ArrowIndex
	}

	rr, err := fr.GetRecordReader(ctx, colIndices, nil)
	if err != nil {
		pf.Close()
		return nil, fmt.Errorf("pqreader: creating record reader: %w", err)
	}

	return &Reader{pf: pf, fr: fr, mappings: mappings, mem: mem, rr: rr}, nil
}

// Next returns the next row in descriptor-attribute order. It returns
// ok=false, err=nil at end of file, and ErrCancelled if ctx is done while
// waiting for the next batch — the in-flight record reader is released,
// not reused.
func (r *Reader) Next(ctx context.Context) (row []any, ok bool, err error) {
	for r.cursor >= len(r.rows) {
		if r.drained {
			return nil, false, nil
		}
		select {
		case <-ctx.Done():
			r.rr.Release()
			r.drained = true
			return nil, false, ErrCancelled
		default:
		}

		if !r.rr.Next() {
			r.drained = true
			r.rr.Release()
			if err := r.rr.Err(); err != nil {
				return nil, false, fmt.Errorf("pqreader: reading batch: %w", err)
			}
			return nil, false, nil
		}
		rec := r.rr.Record()

		batch, err := r.decodeBatch(rec)
		if err != nil {
			// A single-row decode failure aborts the whole batch; partial
			// results already decoded from it are discarded.
			r.drained = true
			return nil, false, err
		}
		r.rows = batch
		r.cursor = 0
	}
	row = r.rows[r.cursor]
	r.cursor++
	return row, true, nil
}

// decodeBatch decodes every projected column of rec exactly once (one
// convert.DecodeColumn call per attribute) and transposes the resulting
// column-major slices into row-major tuples in descriptor-attribute order.
func (r *Reader) decodeBatch(rec arrow.Record) ([][]any, error) {
	numRows := int(rec.NumRows())
	columns := make([][]any, len(r.mappings))

	for i, m := range r.mappings {
		col := rec.Column(i)
		field := rec.Schema().Field(i)

		if m.NeedsCast {
			casted, err := compute.CastArray(context.Background(), col, compute.SafeCastOptions(m.CastTo))
			if err != nil {
				return nil, fmt.Errorf("pqreader: casting column %q: %w", m.Attr.Name, err)
			}
			defer casted.Release()
			col = casted
			field.Type = m.CastTo
		}

		decoded, err := convert.DecodeColumn(m.Attr, &field, col)
		if err != nil {
			return nil, fmt.Errorf("pqreader: decoding column %q: %w", m.Attr.Name, err)
		}
		columns[i] = decoded
	}

	rows := make([][]any, numRows)
	for rIdx := 0; rIdx < numRows; rIdx++ {
		row := make([]any, len(columns))
		for c, col := range columns {
			row[c] = col[rIdx]
		}
		rows[rIdx] = row
	}
	return rows, nil
}

// Close releases the underlying Parquet file.
func (r *Reader) Close() error {
	if !r.drained && r.rr != nil {
		r.rr.Release()
	}
	return r.pf.Close()
}
