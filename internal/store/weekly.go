package store

import (
	"github.com/AngelCh415/ga4-weekly-sheets/internal/models"
)

// WeeklyStore folds transformed rows into one aggregate per
// (week range, media type) key. It is not safe for concurrent use; a run
// owns its store.
type WeeklyStore struct {
	agg    map[models.WeekKey]*models.WeeklyAgg
	accept func(models.Row) bool
}

// NewWeeklyStore returns a store that only folds rows accepted by f.
// A nil f accepts every row.
func NewWeeklyStore(f func(models.Row) bool) *WeeklyStore {
	return &WeeklyStore{
		agg:    make(map[models.WeekKey]*models.WeeklyAgg),
		accept: f,
	}
}

func (s *WeeklyStore) Add(r models.Row) bool {
	if s.accept != nil && !s.accept(r) {
		return false
	}
	k := models.WeekKey{WeekRange: r.WeekRange, MediaType: r.MediaType}
	agg, ok := s.agg[k]
	if !ok {
		agg = &models.WeeklyAgg{Key: k, Campaigns: make(map[string]struct{})}
		s.agg[k] = agg
	}
	agg.Campaigns[r.Campaign] = struct{}{}
	agg.Sessions = agg.Sessions.Add(r.Sessions)
	agg.ActiveUsers = agg.ActiveUsers.Add(r.ActiveUsers)
	agg.EventCount = agg.EventCount.Add(r.EventCount)
	agg.Conversions = agg.Conversions.Add(r.Conversions)
	return true
}

func (s *WeeklyStore) Len() int { return len(s.agg) }

// All returns copies of every bucket in unspecified order.
func (s *WeeklyStore) All() []models.WeeklyAgg {
	out := make([]models.WeeklyAgg, 0, len(s.agg))
	for _, v := range s.agg {
		out = append(out, clone(v))
	}
	return out
}

func (s *WeeklyStore) Get(k models.WeekKey) (models.WeeklyAgg, bool) {
	v, ok := s.agg[k]
	if !ok {
		return models.WeeklyAgg{}, false
	}
	return clone(v), true
}

func clone(v *models.WeeklyAgg) models.WeeklyAgg {
	c := *v
	c.Campaigns = make(map[string]struct{}, len(v.Campaigns))
	for name := range v.Campaigns {
		c.Campaigns[name] = struct{}{}
	}
	return c
}
