// Package cmd wires the engine, store, and pqmeta packages into a small
// cobra CLI: copy-to moves a Postgres table into a Parquet file, copy-from
// moves a Parquet file into a Postgres table, and inspect prints the
// metadata introspection tables without touching Postgres at all.
package cmd

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pgparquet",
	Short: "pgparquet moves rows between Postgres and Parquet files",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(copyToCmd)
	rootCmd.AddCommand(copyFromCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "disable progress bar but keep info logging")
	rootCmd.PersistentFlags().BoolP("silent", "s", false, "disable all logging and progress bar")
	rootCmd.PersistentFlags().Bool("console", false, "output as human readable text instead of json")
	rootCmd.PersistentFlags().String("log-level", "", "set the log level, any value that zerolog accepts. This overrides the --debug flag")
}

// Execute runs the CLI with ctx as the root command's context, the same
// shape the embedding database's background worker would use to thread a
// cancellable context down into CopyTo/CopyFrom.
func Execute(ctx context.Context) error {
	rootCmd.SetContext(ctx)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	return rootCmd.Execute()
}

func applyLogFlags(cmd *cobra.Command) {
	debug, _ := cmd.Flags().GetBool("debug")
	quiet, _ := cmd.Flags().GetBool("quiet")
	silent, _ := cmd.Flags().GetBool("silent")
	logLevel, _ := cmd.Flags().GetString("log-level")

	switch {
	case silent:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case logLevel != "":
		lvl, err := zerolog.ParseLevel(logLevel)
		if err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
	case debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case quiet:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func showProgress(cmd *cobra.Command) bool {
	quiet, _ := cmd.Flags().GetBool("quiet")
	silent, _ := cmd.Flags().GetBool("silent")
	return !quiet && !silent
}
