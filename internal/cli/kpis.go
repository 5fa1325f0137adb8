package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberwatch/calfire-incident-etl/internal/domain"
)

// NewKPIsCommand creates the "kpis" subcommand: print the per-year
// aggregate KPIs recomputed from the store's current contents.
func NewKPIsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "kpis",
		Short: "Print yearly incident counts and acres burned with YoY deltas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}

			stats, err := a.engine.YearOverYear(cmd.Context())
			if err != nil {
				return err
			}
			return printKPIs(cmd, opts.Format, stats)
		},
	}
}

func printKPIs(cmd *cobra.Command, format string, stats []domain.YearStats) error {
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-6s %10s %14s %10s %10s\n", "year", "incidents", "acres", "inc_yoy%", "acres_yoy%")
	for _, s := range stats {
		fmt.Fprintf(out, "%-6d %10d %14.1f %10s %10s\n",
			s.Year, s.Incidents, s.AcresBurned, formatPct(s.IncidentsYoYPct), formatPct(s.AcresYoYPct))
	}
	return nil
}

func formatPct(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%+.1f", *v)
}
