package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dbparquet/pgparquet/engine"
	"github.com/dbparquet/pgparquet/rowgroup"
)

var copyToCfgFile string

var copyToCmd = &cobra.Command{
	Use:   "copy-to",
	Short: "copy-to streams a Postgres table (or query) into a Parquet file",
	Run: func(cmd *cobra.Command, args []string) {
		applyLogFlags(cmd)
		if err := runCopyTo(cmd.Context(), cmd, copyToCfgFile); err != nil {
			log.Error().Err(err).Msg("copy-to failed")
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	copyToCmd.Flags().StringVarP(&copyToCfgFile, "config", "f", "", "config file")
	copyToCmd.MarkFlagRequired("config")
}

func parseCompression(s string) rowgroup.Compression {
	switch strings.ToLower(s) {
	case "uncompressed":
		return rowgroup.CompressionUncompressed
	case "snappy":
		return rowgroup.CompressionSnappy
	case "gzip":
		return rowgroup.CompressionGzip
	case "brotli":
		return rowgroup.CompressionBrotli
	case "lz4":
		return rowgroup.CompressionLZ4
	case "lz4raw":
		return rowgroup.CompressionLZ4Raw
	case "zstd":
		return rowgroup.CompressionZstd
	default:
		return rowgroup.CompressionUnset
	}
}

func runCopyTo(ctx context.Context, cmd *cobra.Command, cfgPath string) error {
	sc, err := loadStreamConfig(cfgPath)
	if err != nil {
		return err
	}

	pool, err := newPGPool(ctx, sc.Conn)
	if err != nil {
		return err
	}
	defer pool.Close()

	desc, err := pool.describe(ctx, sc.SQL)
	if err != nil {
		return err
	}

	src, err := newPGRowSource(ctx, pool.pool, sc.SQL)
	if err != nil {
		return err
	}
	defer src.Close()

	if !engine.IsParquetTarget(sc.URI, sc.Format) {
		return fmt.Errorf("uri %q does not look like a parquet target; set format: parquet explicitly", sc.URI)
	}

	opts := engine.DefaultCopyToOptions()
	if sc.Compression != "" {
		opts.RowGroup.Compression = parseCompression(sc.Compression)
	}
	if sc.RowGroupSize > 0 {
		opts.RowGroup.RowGroupSize = sc.RowGroupSize
	}
	if sc.RowGroupSizeBytes > 0 {
		opts.RowGroup.RowGroupSizeBytes = sc.RowGroupSizeBytes
	}
	if sc.FileSizeBytes > 0 {
		opts.RowGroup.FileSizeBytes = sc.FileSizeBytes
	}

	var bar *progressbar.ProgressBar
	if showProgress(cmd) {
		bar = newProgressBar()
	}

	rows := &progressSource{RowSource: src, bar: bar}
	log.Debug().Str("uri", sc.URI).Int("columns", len(desc.Attributes)).Msg("starting copy-to")
	return engine.CopyTo(ctx, desc, rows, sc.URI, opts)
}

func newProgressBar() *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		-1,
		progressbar.OptionSetDescription("Writing parquet"),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(false),
	)
}

// progressSource wraps a RowSource so each fetched row ticks the progress
// bar, matching the teacher's NewProgressBar usage in file/file.go.
type progressSource struct {
	engine.RowSource
	bar *progressbar.ProgressBar
}

func (p *progressSource) Next(ctx context.Context) ([]any, bool, error) {
	row, ok, err := p.RowSource.Next(ctx)
	if ok && p.bar != nil {
		p.bar.Add(1)
	}
	return row, ok, err
}
