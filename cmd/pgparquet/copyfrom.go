package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dbparquet/pgparquet/engine"
	"github.com/dbparquet/pgparquet/schema"
)

var copyFromCfgFile string

var copyFromCmd = &cobra.Command{
	Use:   "copy-from",
	Short: "copy-from streams a Parquet file into a Postgres table",
	Run: func(cmd *cobra.Command, args []string) {
		applyLogFlags(cmd)
		if err := runCopyFrom(cmd.Context(), copyFromCfgFile); err != nil {
			log.Error().Err(err).Msg("copy-from failed")
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	copyFromCmd.Flags().StringVarP(&copyFromCfgFile, "config", "f", "", "config file")
	copyFromCmd.MarkFlagRequired("config")
}

func parseCastMode(s string) schema.CastMode {
	if strings.EqualFold(s, "relaxed") {
		return schema.RelaxedMatch
	}
	return schema.StrictMatch
}

func parseMatchBy(s string) schema.MatchBy {
	if strings.EqualFold(s, "name") {
		return schema.MatchByName
	}
	return schema.MatchByPosition
}

func runCopyFrom(ctx context.Context, cfgPath string) error {
	sc, err := loadStreamConfig(cfgPath)
	if err != nil {
		return err
	}

	pool, err := newPGPool(ctx, sc.Conn)
	if err != nil {
		return err
	}
	defer pool.Close()

	if sc.Table == "" {
		return fmt.Errorf("copy-from requires table, not an arbitrary sql query")
	}

	desc, err := pool.describe(ctx, "SELECT * FROM "+sc.Table)
	if err != nil {
		return err
	}

	opts := engine.DefaultCopyFromOptions()
	opts.Reader.CastMode = parseCastMode(sc.CastMode)
	opts.Reader.MatchBy = parseMatchBy(sc.MatchBy)
	if sc.RowGroupSize > 0 {
		opts.Reader.RowGroupSize = sc.RowGroupSize
	}

	sink := newPGRowSink(pool.pool, sc.Table, desc)
	log.Debug().Str("uri", sc.URI).Str("table", sc.Table).Msg("starting copy-from")
	if err := engine.CopyFrom(ctx, desc, sink, sc.URI, opts); err != nil {
		return err
	}

	n, err := sink.Flush(ctx)
	if err != nil {
		return err
	}
	log.Info().Int64("rows", n).Msg("copy-from complete")
	return nil
}
