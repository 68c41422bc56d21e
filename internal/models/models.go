package models

import (
	"math"

	"github.com/shopspring/decimal"
)

// Fixed GA4 dimension/metric layout of a report row.
var (
	Dimensions = []string{"date", "yearWeek", "sessionSource", "sessionMedium", "sessionCampaignName"}
	Metrics    = []string{"sessions", "activeUsers", "eventCount", "conversions"}
)

var (
	DetailHeader = []any{
		"date", "weekRange", "sessionSource", "sessionMedium", "mediaType", "sessionCampaignName",
		"sessions", "activeUsers", "eventCount", "conversions",
	}
	SummaryHeader = []any{
		"weekRange", "mediaType", "campaignNames", "sessions", "activeUsers", "eventCount", "conversions",
	}
)

type RawRow struct {
	Dimensions []string
	Metrics    []string
}

// Dim returns the i-th dimension value or "" when the row is short.
func (r RawRow) Dim(i int) string {
	if i < 0 || i >= len(r.Dimensions) {
		return ""
	}
	return r.Dimensions[i]
}

type Row struct {
	Date        string
	WeekRange   string
	Source      string
	Medium      string
	MediaType   string
	Campaign    string
	Sessions    decimal.Decimal
	ActiveUsers decimal.Decimal
	EventCount  decimal.Decimal
	Conversions decimal.Decimal
}

func (r Row) Values() []any {
	return []any{
		r.Date, r.WeekRange, r.Source, r.Medium, r.MediaType, r.Campaign,
		Cell(r.Sessions), Cell(r.ActiveUsers), Cell(r.EventCount), Cell(r.Conversions),
	}
}

type WeekKey struct {
	WeekRange string
	MediaType string
}

type WeeklyAgg struct {
	Key         WeekKey
	Campaigns   map[string]struct{}
	Sessions    decimal.Decimal
	ActiveUsers decimal.Decimal
	EventCount  decimal.Decimal
	Conversions decimal.Decimal
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// Cell converts a metric into a sheet value. Integers that fit in int64
// stay integers; fractional values and anything larger become float64.
func Cell(d decimal.Decimal) any {
	if d.Exponent() >= 0 && d.Cmp(minInt64) >= 0 && d.Cmp(maxInt64) <= 0 {
		return d.IntPart()
	}
	return d.InexactFloat64()
}
