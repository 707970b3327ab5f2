package engine

import (
	"context"

	"github.com/dbparquet/pgparquet/pqreader"
	"github.com/dbparquet/pgparquet/rowgroup"
)

// RoleChecker stands in for the embedding database's permission system:
// the `parquet_object_store_read`/`parquet_object_store_write` role
// membership gate is represented here as an interface the host
// implements and supplies through CopyToOptions/CopyFromOptions, rather
// than this package reaching into an actual role catalog.
type RoleChecker interface {
	CanRead(ctx context.Context, uri string) error
	CanWrite(ctx context.Context, uri string) error
}

// CopyToOptions configures one CopyTo invocation: row-group sizing and
// compression (rowgroup.CopyToOptions), the format option the host
// parsed off the COPY command, and the permission gate.
type CopyToOptions struct {
	RowGroup rowgroup.CopyToOptions
	Format   string
	Roles    RoleChecker
}

// DefaultCopyToOptions returns the option table's documented defaults,
// matching rowgroup.DefaultCopyToOptions.
func DefaultCopyToOptions() CopyToOptions {
	return CopyToOptions{RowGroup: rowgroup.DefaultCopyToOptions()}
}

func (o CopyToOptions) validate() error {
	if err := o.RowGroup.Validate(); err != nil {
		return newError(KindInvalidOption, nil, err)
	}
	return nil
}

// CopyFromOptions configures one CopyFrom invocation: the Schema
// Mapper's projection/coercion behavior (pqreader.Options), the format
// option, and the permission gate.
type CopyFromOptions struct {
	Reader pqreader.Options
	Format string
	Roles  RoleChecker
}

// DefaultCopyFromOptions returns the option table's documented defaults,
// matching pqreader.DefaultOptions.
func DefaultCopyFromOptions() CopyFromOptions {
	return CopyFromOptions{Reader: pqreader.DefaultOptions()}
}
