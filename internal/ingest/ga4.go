package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/AngelCh415/ga4-weekly-sheets/internal/models"
)

type Fetcher interface {
	FetchRows(ctx context.Context, q Query) ([]models.RawRow, error)
}

type GA4 struct {
	svc *analyticsdata.Service
	log *slog.Logger
}

func NewGA4(ctx context.Context, hc *http.Client, log *slog.Logger, opts ...option.ClientOption) (*GA4, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(hc)}, opts...)
	svc, err := analyticsdata.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("analytics data client: %w", err)
	}
	return &GA4{svc: svc, log: log}, nil
}

func (g *GA4) FetchRows(ctx context.Context, q Query) ([]models.RawRow, error) {
	resp, err := g.svc.Properties.RunReport("properties/"+q.PropertyID, q.Request()).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("run report: %w", err)
	}
	rows := make([]models.RawRow, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		raw := models.RawRow{
			Dimensions: make([]string, 0, len(r.DimensionValues)),
			Metrics:    make([]string, 0, len(r.MetricValues)),
		}
		for _, d := range r.DimensionValues {
			raw.Dimensions = append(raw.Dimensions, d.Value)
		}
		for _, m := range r.MetricValues {
			raw.Metrics = append(raw.Metrics, m.Value)
		}
		rows = append(rows, raw)
	}
	if resp.RowCount > int64(len(rows)) {
		g.log.Warn("report truncated by row limit",
			slog.Int64("row_count", resp.RowCount), slog.Int("returned", len(rows)), slog.Int64("limit", q.Limit))
	}
	return rows, nil
}

// IsRemote reports whether err came back from a Google API.
func IsRemote(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr)
}
