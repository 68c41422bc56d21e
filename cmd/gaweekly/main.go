package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AngelCh415/ga4-weekly-sheets/internal/config"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/ingest"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/metrics"
)

type options struct {
	configPath string
	overrides  map[string]*string
	noSummary  bool
}

func newRootCmd(run func(ctx context.Context, cfg config.Config, log *slog.Logger) (ingest.Runner, error)) *cobra.Command {
	opts := &options{overrides: map[string]*string{}}

	cmd := &cobra.Command{
		Use:   "gaweekly",
		Short: "Copy GA4 campaign sessions into a Google Sheet with a weekly summary",
		Long: `gaweekly runs one GA4 report (date, yearWeek, source, medium, campaign x
sessions, activeUsers, eventCount, conversions), writes every row to the detail
sheet and a YouTube/Reels weekly summary to the summary sheet. Both sheets are
cleared before writing.

Settings come from --config (YAML), then the environment, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			log := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
			if err := cfg.Validate(time.Now()); err != nil {
				return err
			}
			runner, err := run(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			res, err := runner.Run(cmd.Context(), nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[OK] %d rows written to '%s' (from %s)\n", res.Rows, res.Sheet, res.Start.Format(config.DateLayout))
			if res.SummarySheet != "" {
				fmt.Fprintf(out, "[OK] %d summary rows written to '%s'\n", res.SummaryRows, res.SummarySheet)
			}
			fmt.Fprintf(out, "[OK] spreadsheet: %s\n", res.SpreadsheetID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file")
	f.BoolVar(&opts.noSummary, "no-summary", false, "skip the weekly summary sheet")
	for _, fl := range []struct{ name, usage string }{
		{"property", "GA4 property id"},
		{"spreadsheet", "destination spreadsheet id"},
		{"sheet", "detail sheet name"},
		{"summary-sheet", "weekly summary sheet name"},
		{"credentials", "service account JSON key file"},
		{"campaign", "exact sessionCampaignName filter"},
		{"source", "exact sessionSource filter"},
		{"medium", "exact sessionMedium filter"},
		{"start", "start date (YYYY-MM-DD)"},
		{"end", "end date (YYYY-MM-DD), defaults to today"},
	} {
		opts.overrides[fl.name] = f.String(fl.name, "", fl.usage)
	}
	return cmd
}

func (o *options) resolve() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	targets := map[string]*string{
		"property":      &cfg.PropertyID,
		"spreadsheet":   &cfg.SpreadsheetID,
		"sheet":         &cfg.SheetName,
		"summary-sheet": &cfg.SummarySheet,
		"credentials":   &cfg.CredentialsFile,
		"campaign":      &cfg.FilterCampaign,
		"source":        &cfg.FilterSource,
		"medium":        &cfg.FilterMedium,
		"start":         &cfg.StartDate,
		"end":           &cfg.EndDate,
	}
	for name, v := range o.overrides {
		if *v != "" {
			*targets[name] = *v
		}
	}
	if o.noSummary {
		cfg.WriteSummary = false
	}
	return cfg, nil
}

func googleRunner(_ context.Context, cfg config.Config, log *slog.Logger) (ingest.Runner, error) {
	return ingest.NewGoogleRunner(cfg, log, metrics.NewRecorder(prometheus.NewRegistry())), nil
}

// report prints the one-line failure diagnostic.
func report(w io.Writer, err error) {
	if ingest.IsRemote(err) {
		fmt.Fprintln(w, "[FAIL] google api error:", err)
		return
	}
	fmt.Fprintln(w, "[FAIL] error:", err)
}

func main() {
	if err := newRootCmd(googleRunner).ExecuteContext(context.Background()); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}
