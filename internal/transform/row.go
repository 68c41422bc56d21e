package transform

import (
	"github.com/shopspring/decimal"

	"github.com/AngelCh415/ga4-weekly-sheets/internal/models"
)

// Row reshapes one report record. Missing trailing values are treated as
// empty, which coerces metrics to zero.
func Row(r models.RawRow) models.Row {
	medium := r.Dim(3)
	return models.Row{
		Date:        r.Dim(0),
		WeekRange:   WeekRange(r.Dim(1)),
		Source:      r.Dim(2),
		Medium:      medium,
		MediaType:   MediaType(medium),
		Campaign:    r.Dim(4),
		Sessions:    metric(r, 0),
		ActiveUsers: metric(r, 1),
		EventCount:  metric(r, 2),
		Conversions: metric(r, 3),
	}
}

func Rows(raw []models.RawRow) []models.Row {
	out := make([]models.Row, 0, len(raw))
	for _, r := range raw {
		out = append(out, Row(r))
	}
	return out
}

func metric(r models.RawRow, i int) decimal.Decimal {
	if i >= len(r.Metrics) {
		return decimal.Zero
	}
	return ToNumber(r.Metrics[i])
}
