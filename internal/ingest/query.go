package ingest

import (
	"time"

	analyticsdata "google.golang.org/api/analyticsdata/v1beta"

	"github.com/AngelCh415/ga4-weekly-sheets/internal/config"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/models"
)

type Query struct {
	PropertyID string
	Start      time.Time
	End        time.Time
	Dimensions []string
	Metrics    []string
	Limit      int64

	// Exact-match filters; empty values are ignored.
	Campaign string
	Source   string
	Medium   string
}

func QueryFromConfig(cfg config.Config, start, end time.Time) Query {
	return Query{
		PropertyID: cfg.PropertyID,
		Start:      start,
		End:        end,
		Dimensions: models.Dimensions,
		Metrics:    models.Metrics,
		Limit:      cfg.RowLimit,
		Campaign:   cfg.FilterCampaign,
		Source:     cfg.FilterSource,
		Medium:     cfg.FilterMedium,
	}
}

func (q Query) Request() *analyticsdata.RunReportRequest {
	req := &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{{
			StartDate: q.Start.Format(config.DateLayout),
			EndDate:   q.End.Format(config.DateLayout),
		}},
		DimensionFilter: q.Filter(),
		Limit:           q.Limit,
		OrderBys: []*analyticsdata.OrderBy{{
			Dimension: &analyticsdata.DimensionOrderBy{DimensionName: "date"},
		}},
	}
	for _, d := range q.Dimensions {
		req.Dimensions = append(req.Dimensions, &analyticsdata.Dimension{Name: d})
	}
	for _, m := range q.Metrics {
		req.Metrics = append(req.Metrics, &analyticsdata.Metric{Name: m})
	}
	return req
}

// Filter ANDs the configured exact-match filters, or returns nil when
// none are set.
func (q Query) Filter() *analyticsdata.FilterExpression {
	fields := []struct{ name, value string }{
		{"sessionCampaignName", q.Campaign},
		{"sessionSource", q.Source},
		{"sessionMedium", q.Medium},
	}
	var exprs []*analyticsdata.FilterExpression
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		exprs = append(exprs, &analyticsdata.FilterExpression{
			Filter: &analyticsdata.Filter{
				FieldName: f.name,
				StringFilter: &analyticsdata.StringFilter{
					MatchType: "EXACT",
					Value:     f.value,
				},
			},
		})
	}
	if len(exprs) == 0 {
		return nil
	}
	return &analyticsdata.FilterExpression{
		AndGroup: &analyticsdata.FilterExpressionList{Expressions: exprs},
	}
}
