package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberwatch/calfire-incident-etl/internal/adapter/calfire"
	"github.com/emberwatch/calfire-incident-etl/internal/config"
	"github.com/emberwatch/calfire-incident-etl/internal/domain"
	"github.com/emberwatch/calfire-incident-etl/internal/observability"
)

// validateReport is the dry-run outcome: what the feed currently yields and
// what normalization would do with it, without touching the store.
type validateReport struct {
	RecordsSeen      int      `json:"records_seen"`
	RecordsOK        int      `json:"records_ok"`
	RecordsSkipped   int      `json:"records_skipped"`
	UnverifiedCounty int      `json:"unverified_county"`
	DefaultedAcres   int      `json:"defaulted_acres"`
	Problems         []string `json:"problems,omitempty"`
}

// NewValidateCommand creates the "validate" subcommand: fetch and normalize
// the current snapshot and report data-quality findings. Nothing is read
// from or written to the store, so it is safe against production config.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Dry-run the feed: fetch, normalize, and report data quality",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFeedOnly()
			if err != nil {
				return err
			}

			logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
			counties, err := loadCounties(cfg)
			if err != nil {
				return err
			}

			fetcher := calfire.NewClient(cfg.FeedURL, cfg.FetchTimeout, logger)
			snapshot, err := fetcher.FetchSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			report := validateReport{RecordsSeen: len(snapshot)}
			for _, raw := range snapshot {
				rec, err := domain.NormalizeIncident(raw, counties)
				if err != nil {
					report.RecordsSkipped++
					report.Problems = append(report.Problems, err.Error())
					continue
				}
				report.RecordsOK++
				if rec.CountyUnverified {
					report.UnverifiedCounty++
				}
				if rec.AcresDefaulted {
					report.DefaultedAcres++
				}
			}

			if err := printReport(cmd, opts.Format, report); err != nil {
				return err
			}
			if report.RecordsSkipped > 0 {
				return fmt.Errorf("%d of %d records failed normalization", report.RecordsSkipped, report.RecordsSeen)
			}
			return nil
		},
	}
}

func printReport(cmd *cobra.Command, format string, report validateReport) error {
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "feed snapshot: %d records\n", report.RecordsSeen)
	fmt.Fprintf(out, "  normalized:        %d\n", report.RecordsOK)
	fmt.Fprintf(out, "  skipped:           %d\n", report.RecordsSkipped)
	fmt.Fprintf(out, "  unverified county: %d\n", report.UnverifiedCounty)
	fmt.Fprintf(out, "  defaulted acres:   %d\n", report.DefaultedAcres)
	for _, p := range report.Problems {
		fmt.Fprintf(out, "  problem: %s\n", p)
	}
	return nil
}
