package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbparquet/pgparquet/pqmeta"
)

var inspectTable string

var inspectCmd = &cobra.Command{
	Use:   "inspect [uri]",
	Short: "inspect prints a Parquet file's metadata, file_metadata, schema, or column_stats table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		applyLogFlags(cmd)
		if err := runInspect(cmd.Context(), args[0], inspectTable, cmd); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectTable, "table", "t", "file_metadata",
		"which introspection table to print: metadata, file_metadata, schema, column_stats, kv_metadata")
}

func runInspect(ctx context.Context, uri, table string, cmd *cobra.Command) error {
	var payload any
	var err error

	switch table {
	case "metadata":
		payload, err = pqmeta.Metadata(ctx, uri)
	case "file_metadata":
		payload, err = pqmeta.FileMetadata(ctx, uri)
	case "schema":
		payload, err = pqmeta.Schema(ctx, uri)
	case "column_stats":
		payload, err = pqmeta.ColumnStats(ctx, uri)
	case "kv_metadata":
		payload, err = pqmeta.KVMetadata(ctx, uri)
	default:
		return fmt.Errorf("unknown inspect table %q", table)
	}
	if err != nil {
		return err
	}

	console, _ := cmd.Flags().GetBool("console")
	if console {
		fmt.Printf("%+v\n", payload)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
