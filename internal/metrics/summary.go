package metrics

import (
	"sort"
	"strings"

	"github.com/AngelCh415/ga4-weekly-sheets/internal/models"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/store"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/transform"
)

// SummaryMediaTypes lists the channels that make it into the weekly
// summary, in output order. Other channels only appear on the detail sheet.
var SummaryMediaTypes = []string{transform.YouTube, transform.Reels}

func mediaRank(m string) int {
	for i, v := range SummaryMediaTypes {
		if v == m {
			return i
		}
	}
	return -1
}

func Aggregate(rows []models.Row) *store.WeeklyStore {
	st := store.NewWeeklyStore(func(r models.Row) bool { return mediaRank(r.MediaType) >= 0 })
	for _, r := range rows {
		st.Add(r)
	}
	return st
}

func Sorted(st *store.WeeklyStore) []models.WeeklyAgg {
	aggs := st.All()
	sort.Slice(aggs, func(i, j int) bool {
		if aggs[i].Key.WeekRange != aggs[j].Key.WeekRange {
			return aggs[i].Key.WeekRange < aggs[j].Key.WeekRange
		}
		return mediaRank(aggs[i].Key.MediaType) < mediaRank(aggs[j].Key.MediaType)
	})
	return aggs
}

// WeeklySummary builds the summary sheet: a header row followed by one row
// per (week range, media type) bucket.
func WeeklySummary(rows []models.Row) [][]any {
	aggs := Sorted(Aggregate(rows))
	out := make([][]any, 0, len(aggs)+1)
	out = append(out, models.SummaryHeader)
	for _, a := range aggs {
		out = append(out, []any{
			a.Key.WeekRange,
			a.Key.MediaType,
			campaignNames(a.Campaigns),
			models.Cell(a.Sessions),
			models.Cell(a.ActiveUsers),
			models.Cell(a.EventCount),
			models.Cell(a.Conversions),
		})
	}
	return out
}

func DetailRows(rows []models.Row) [][]any {
	out := make([][]any, 0, len(rows)+1)
	out = append(out, models.DetailHeader)
	for _, r := range rows {
		out = append(out, r.Values())
	}
	return out
}

func campaignNames(set map[string]struct{}) string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
