// Package cli wires the engine's entry points into a cobra command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all subcommands.
type RootOptions struct {
	Format string // "text" | "json"
}

// validFormats defines the allowed output formats.
var validFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the incident ETL CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "calfire-etl",
		Short: "CAL FIRE incident reconciliation engine",
		Long: "Fetches wildfire incident snapshots from the CAL FIRE feed, normalizes\n" +
			"them, derives KPIs, and reconciles them idempotently into the\n" +
			"spreadsheet-backed incident store.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewKPIsCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}
