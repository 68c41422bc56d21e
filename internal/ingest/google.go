package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/AngelCh415/ga4-weekly-sheets/internal/auth"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/config"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/metrics"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/sheets"
)

type GoogleRunner struct {
	cfg config.Config
	log *slog.Logger
	rec *metrics.Recorder
}

func NewGoogleRunner(cfg config.Config, log *slog.Logger, rec *metrics.Recorder) *GoogleRunner {
	return &GoogleRunner{cfg: cfg, log: log, rec: rec}
}

func (g *GoogleRunner) Run(ctx context.Context, since *time.Time) (Result, error) {
	creds, err := auth.FromFile(ctx, g.cfg.CredentialsFile)
	if err != nil {
		return Result{}, err
	}
	hc := NewHTTPClient(ctx, creds.TokenSource, g.cfg.HTTPTimeout)

	ga, err := NewGA4(ctx, hc, g.log)
	if err != nil {
		return Result{}, err
	}
	sc, err := sheets.New(ctx, hc, g.cfg.SpreadsheetID)
	if err != nil {
		return Result{}, err
	}
	return NewETL(ga, sc, g.log, g.cfg, g.rec).Run(ctx, since)
}
