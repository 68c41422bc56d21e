package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AngelCh415/ga4-weekly-sheets/internal/config"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/metrics"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/sheets"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/transform"
)

// ErrBadRange is returned when the requested window starts after it ends.
var ErrBadRange = errors.New("start date is after end date")

// Runner executes one pipeline run; since overrides the start date.
type Runner interface {
	Run(ctx context.Context, since *time.Time) (Result, error)
}

type ETL struct {
	f   Fetcher
	p   sheets.Publisher
	log *slog.Logger
	cfg config.Config
	rec *metrics.Recorder
	now func() time.Time
}

func NewETL(f Fetcher, p sheets.Publisher, log *slog.Logger, cfg config.Config, rec *metrics.Recorder) *ETL {
	return &ETL{f: f, p: p, log: log, cfg: cfg, rec: rec, now: time.Now}
}

type Result struct {
	Rows          int       `json:"rows"`
	SummaryRows   int       `json:"summary_rows"`
	SpreadsheetID string    `json:"spreadsheet"`
	Sheet         string    `json:"sheet"`
	SummarySheet  string    `json:"summary_sheet,omitempty"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}

// Run fetches the report, writes the detail sheet and, when enabled, the
// weekly summary sheet. since overrides the configured start date.
func (e *ETL) Run(ctx context.Context, since *time.Time) (res Result, err error) {
	began := time.Now()
	defer func() { e.rec.Run(began, err) }()

	start, end, err := e.cfg.DateRange(e.now())
	if err != nil {
		return Result{}, err
	}
	if since != nil {
		start = *since
	}
	if start.After(end) {
		return Result{}, fmt.Errorf("%w: %s > %s", ErrBadRange, start.Format(config.DateLayout), end.Format(config.DateLayout))
	}

	q := QueryFromConfig(e.cfg, start, end)
	raw, err := e.f.FetchRows(ctx, q)
	if err != nil {
		return Result{}, err
	}
	e.rec.Fetched(len(raw))
	e.log.Info("fetch complete",
		slog.Int("rows", len(raw)),
		slog.String("start", start.Format(config.DateLayout)),
		slog.String("end", end.Format(config.DateLayout)))

	rows := transform.Rows(raw)
	res = Result{
		Rows:          len(rows),
		SpreadsheetID: e.cfg.SpreadsheetID,
		Sheet:         e.cfg.SheetName,
		Start:         start,
		End:           end,
	}

	if err := e.publish(ctx, e.cfg.SheetName, metrics.DetailRows(rows)); err != nil {
		return Result{}, err
	}

	if name := e.cfg.SummarySheetName(); name != "" {
		summary := metrics.WeeklySummary(rows)
		if err := e.publish(ctx, name, summary); err != nil {
			return Result{}, err
		}
		res.SummarySheet = name
		res.SummaryRows = len(summary) - 1
	}

	e.log.Info("run complete",
		slog.Int("rows", res.Rows),
		slog.Int("summary_rows", res.SummaryRows),
		slog.String("spreadsheet", res.SpreadsheetID),
		slog.Duration("took", time.Since(began)))
	return res, nil
}

func (e *ETL) publish(ctx context.Context, sheet string, rows [][]any) error {
	if err := sheets.Publish(ctx, e.p, sheet, rows); err != nil {
		return err
	}
	e.rec.Written(sheet, len(rows)-1)
	e.log.Info("sheet written", slog.String("sheet", sheet), slog.Int("rows", len(rows)-1))
	return nil
}
