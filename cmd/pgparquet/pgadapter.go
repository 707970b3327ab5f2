package cmd

import (
	"context"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/dbparquet/pgparquet/rowtype"
)

// pgKinds maps a Postgres type name, as reported by the driver's type map,
// onto the engine's closed Kind enum. Anything not listed here falls back
// to KindText, matching Kind.FallsBackToText's "unrecognized types" case.
var pgKinds = map[string]rowtype.Kind{
	"bool":        rowtype.KindBool,
	"int2":        rowtype.KindInt16,
	"int4":        rowtype.KindInt32,
	"int8":        rowtype.KindInt64,
	"float4":      rowtype.KindFloat32,
	"float8":      rowtype.KindFloat64,
	"numeric":     rowtype.KindDecimal,
	"date":        rowtype.KindDate,
	"time":        rowtype.KindTime,
	"timetz":      rowtype.KindTimeTZ,
	"timestamp":   rowtype.KindTimestamp,
	"timestamptz": rowtype.KindTimestampTZ,
	"interval":    rowtype.KindInterval,
	"uuid":        rowtype.KindUUID,
	"bytea":       rowtype.KindBytea,
	"json":        rowtype.KindJSON,
	"jsonb":       rowtype.KindJSON,
	"oid":         rowtype.KindOID,
	"text":        rowtype.KindText,
	"varchar":     rowtype.KindText,
	"bpchar":      rowtype.KindText,
	"name":        rowtype.KindText,
}

// pgPool wraps a connection pool the way database.PGDataReader wraps one
// in the teacher, registering the shopspring decimal codec on every new
// connection so numeric columns decode straight into decimal.Decimal
// values the convert package's decimalCodec already accepts.
type pgPool struct {
	pool *pgxpool.Pool
}

func newPGPool(ctx context.Context, connString string) (*pgPool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres connection string: %w", err)
	}
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	return &pgPool{pool: pool}, nil
}

func (p *pgPool) Close() {
	p.pool.Close()
}

// describe runs sql with a LIMIT 0 wrapper purely to read back field
// descriptions, the same two-step the teacher's CreateDataStream uses to
// learn column types before any row is fetched.
func (p *pgPool) describe(ctx context.Context, sql string) (*rowtype.TupleDescriptor, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	colQuery := "SELECT * FROM (" + sql + ") pgparquet_describe LIMIT 0"
	rows, err := conn.Query(ctx, colQuery)
	if err != nil {
		return nil, fmt.Errorf("describing query columns: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	typeMap := conn.Conn().TypeMap()
	attrs := make([]rowtype.Attribute, len(fields))
	for i, f := range fields {
		kind := rowtype.KindText
		if t, ok := typeMap.TypeForOID(f.DataTypeOID); ok {
			if k, ok := pgKinds[t.Name]; ok {
				kind = k
			}
		}
		attrs[i] = rowtype.Attribute{Name: f.Name, Kind: kind, Nullable: true}
		log.Debug().Str("column", f.Name).Str("kind", kind.String()).Msg("described column")
	}
	return &rowtype.TupleDescriptor{Attributes: attrs}, nil
}

// pgRowSource adapts a pgx.Rows result set onto engine.RowSource, the
// harness's stand-in for the Postgres tuple slot the real extension reads
// COPY TO's source rows from.
type pgRowSource struct {
	pool *pgxpool.Pool
	sql  string
	rows pgx.Rows
}

func newPGRowSource(ctx context.Context, pool *pgxpool.Pool, sql string) (*pgRowSource, error) {
	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return &pgRowSource{pool: pool, sql: sql, rows: rows}, nil
}

func (s *pgRowSource) Next(ctx context.Context) ([]any, bool, error) {
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return nil, false, fmt.Errorf("reading query results: %w", err)
		}
		return nil, false, nil
	}
	values, err := s.rows.Values()
	if err != nil {
		return nil, false, fmt.Errorf("scanning row values: %w", err)
	}
	return values, true, nil
}

func (s *pgRowSource) Close() {
	s.rows.Close()
}

// pgRowSink adapts engine.RowSink onto pgx's CopyFrom, batching rows into
// the Postgres binary COPY protocol instead of issuing one INSERT per row.
type pgRowSink struct {
	pool  *pgxpool.Pool
	table string
	cols  []string
	rows  [][]any
}

func newPGRowSink(pool *pgxpool.Pool, table string, desc *rowtype.TupleDescriptor) *pgRowSink {
	// Generated columns are never part of the COPY FROM column list: rows
	// out of pqreader (via schema.Project) already omit them, and Postgres
	// itself rejects an explicit value for a generated column.
	imported := desc.ImportAttributes()
	cols := make([]string, len(imported))
	for i, a := range imported {
		cols[i] = a.Name
	}
	return &pgRowSink{pool: pool, table: table, cols: cols}
}

func (s *pgRowSink) Write(ctx context.Context, row []any) error {
	s.rows = append(s.rows, row)
	return nil
}

// Flush runs the accumulated rows through a single CopyFrom call. Called
// once after CopyFrom returns rather than per-row, since pgx.CopyFrom needs
// the full row set (or an iterator) up front.
func (s *pgRowSink) Flush(ctx context.Context) (int64, error) {
	n, err := s.pool.CopyFrom(
		ctx,
		pgx.Identifier{s.table},
		s.cols,
		pgx.CopyFromRows(s.rows),
	)
	if err != nil {
		return n, fmt.Errorf("copying rows into %s: %w", s.table, err)
	}
	return n, nil
}
