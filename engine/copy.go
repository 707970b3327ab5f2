// Package engine wires the Schema Mapper, row-group accumulator, and
// streaming reader into the two entry points the embedding database's
// bulk-load command path calls: CopyTo, when the command's target is a
// Parquet URI, and CopyFrom, when its source is one.
package engine

import (
	"context"
	"errors"

	"github.com/dbparquet/pgparquet/pqreader"
	"github.com/dbparquet/pgparquet/rowgroup"
	"github.com/dbparquet/pgparquet/rowtype"
	"github.com/dbparquet/pgparquet/store"
)

// RowSource supplies the tuples CopyTo writes. The host's COPY TO
// implementation adapts its own tuple-producing side onto this
// interface, one attribute-value row at a time in descriptor order.
type RowSource interface {
	Next(ctx context.Context) (row []any, ok bool, err error)
}

// RowSink receives the tuples CopyFrom decodes. The host's COPY FROM
// implementation adapts its own tuple-consuming side onto this
// interface.
type RowSink interface {
	Write(ctx context.Context, row []any) error
}

// CopyTo streams every row rows.Next produces into a Parquet file (or
// rollover sequence of files) at uri, through the row-group accumulator
// and Schema Mapper. Option validation runs entirely before any store
// handle is opened, matching "Fatal, before any I/O".
func CopyTo(ctx context.Context, desc *rowtype.TupleDescriptor, rows RowSource, uri string, opts CopyToOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if opts.RowGroup.Compression == rowgroup.CompressionUnset {
		opts.RowGroup.Compression = compressionFromExtension(uri)
	}

	inv := invocationFromContext(ctx)
	inv.Writers.push(&WriterContext{URI: uri, Desc: desc})
	defer inv.Writers.pop()
	ctx = withInvocation(ctx, inv)

	if opts.Roles != nil {
		if err := opts.Roles.CanWrite(ctx, uri); err != nil {
			return newError(KindPermissionDenied, nil, err)
		}
	}

	st, err := store.For(uri)
	if err != nil {
		return classifyStoreError(err)
	}

	acc, err := rowgroup.NewAccumulator(ctx, desc, uri, st, opts.RowGroup)
	if err != nil {
		return classifyRowgroupError(err)
	}

	for {
		select {
		case <-ctx.Done():
			acc.Close(ctx)
			return newError(KindCancelled, nil, ctx.Err())
		default:
		}

		row, ok, err := rows.Next(ctx)
		if err != nil {
			acc.Close(ctx)
			return newError(KindIo, nil, err)
		}
		if !ok {
			break
		}
		if err := acc.Collect(ctx, row); err != nil {
			acc.Close(ctx)
			return classifyRowgroupError(err)
		}
	}

	if err := acc.Close(ctx); err != nil {
		return classifyRowgroupError(err)
	}
	return nil
}

// CopyFrom opens the Parquet file at uri, projects its schema onto desc
// via the Schema Mapper, and hands every decoded row to rows.Write in
// descriptor-attribute order.
func CopyFrom(ctx context.Context, desc *rowtype.TupleDescriptor, rows RowSink, uri string, opts CopyFromOptions) error {
	if opts.Roles != nil {
		if err := opts.Roles.CanRead(ctx, uri); err != nil {
			return newError(KindPermissionDenied, nil, err)
		}
	}

	st, err := store.For(uri)
	if err != nil {
		return classifyStoreError(err)
	}

	rr, err := st.OpenRange(ctx, uri)
	if err != nil {
		return newError(KindIo, nil, err)
	}
	defer rr.Close()

	reader, err := pqreader.Open(ctx, rr, desc, opts.Reader)
	if err != nil {
		return classifyPqreaderError(err)
	}
	defer reader.Close()

	for {
		row, ok, err := reader.Next(ctx)
		if err != nil {
			if errors.Is(err, pqreader.ErrCancelled) {
				return newError(KindCancelled, nil, err)
			}
			return classifyPqreaderError(err)
		}
		if !ok {
			return nil
		}
		if err := rows.Write(ctx, row); err != nil {
			return newError(KindIo, nil, err)
		}
	}
}
