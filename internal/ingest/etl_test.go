package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/ga4-weekly-sheets/internal/config"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/metrics"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/models"
)

type fakeFetcher struct {
	rows []models.RawRow
	err  error
	got  Query
}

func (f *fakeFetcher) FetchRows(_ context.Context, q Query) ([]models.RawRow, error) {
	f.got = q
	return f.rows, f.err
}

type fakePublisher struct {
	sheets map[string][][]any
	calls  []string
	err    error
}

func newFakePublisher(existing ...string) *fakePublisher {
	p := &fakePublisher{sheets: map[string][][]any{}}
	for _, s := range existing {
		p.sheets[s] = [][]any{{"stale"}}
	}
	return p
}

func (p *fakePublisher) SheetExists(_ context.Context, name string) (bool, error) {
	p.calls = append(p.calls, "exists "+name)
	_, ok := p.sheets[name]
	return ok, p.err
}

func (p *fakePublisher) CreateSheet(_ context.Context, name string) error {
	p.calls = append(p.calls, "create "+name)
	p.sheets[name] = nil
	return nil
}

func (p *fakePublisher) ClearRange(_ context.Context, name, _ string) error {
	p.calls = append(p.calls, "clear "+name)
	p.sheets[name] = nil
	return nil
}

func (p *fakePublisher) WriteRows(_ context.Context, name, anchor string, rows [][]any) error {
	p.calls = append(p.calls, "write "+name+"!"+anchor)
	p.sheets[name] = rows
	return nil
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.PropertyID = "464149233"
	cfg.SpreadsheetID = "spreadsheet"
	cfg.CredentialsFile = "sa.json"
	cfg.SheetName = "Detail"
	cfg.SummarySheet = "Weekly"
	return cfg
}

func newTestETL(f Fetcher, p *fakePublisher, cfg config.Config) *ETL {
	e := NewETL(f, p, discard(), cfg, metrics.NewRecorder(prometheus.NewRegistry()))
	e.now = func() time.Time { return time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC) }
	return e
}

func TestETLRunEndToEnd(t *testing.T) {
	f := &fakeFetcher{rows: []models.RawRow{
		{Dimensions: []string{"20250910", "202537", "youtube", "paid_youtube", "bx"}, Metrics: []string{"10", "5", "20", "1"}},
		{Dimensions: []string{"20250911", "202537", "instagram", "paid_reels", "bx"}, Metrics: []string{"3", "2", "9", "0"}},
		{Dimensions: []string{"20250911", "202537", "google", "organic", "(organic)"}, Metrics: []string{"7", "7", "7", "0"}},
	}}
	p := newFakePublisher("Detail")

	res, err := newTestETL(f, p, testConfig()).Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "2025-07-01", f.got.Start.Format(config.DateLayout))
	assert.Equal(t, "2025-09-20", f.got.End.Format(config.DateLayout))

	assert.Equal(t, []string{
		"exists Detail", "clear Detail", "write Detail!A1",
		"exists Weekly", "create Weekly", "write Weekly!A1",
	}, p.calls)

	detail := p.sheets["Detail"]
	require.Len(t, detail, 4)
	assert.Equal(t, models.DetailHeader, detail[0])
	assert.Equal(t, "Organic", detail[3][4])

	assert.Equal(t, [][]any{
		models.SummaryHeader,
		{"09.08~09.14", "YouTube", "bx", int64(10), int64(5), int64(20), int64(1)},
		{"09.08~09.14", "Reels", "bx", int64(3), int64(2), int64(9), int64(0)},
	}, p.sheets["Weekly"])

	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 2, res.SummaryRows)
	assert.Equal(t, "spreadsheet", res.SpreadsheetID)
	assert.Equal(t, "Weekly", res.SummarySheet)
}

func TestETLRunSince(t *testing.T) {
	f := &fakeFetcher{}
	since := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	res, err := newTestETL(f, newFakePublisher(), testConfig()).Run(context.Background(), &since)
	require.NoError(t, err)
	assert.Equal(t, since, f.got.Start)
	assert.Equal(t, 0, res.Rows)
}

func TestETLRunSinceAfterEnd(t *testing.T) {
	f := &fakeFetcher{}
	p := newFakePublisher()
	since := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	_, err := newTestETL(f, p, testConfig()).Run(context.Background(), &since)
	assert.ErrorIs(t, err, ErrBadRange)
	assert.True(t, f.got.Start.IsZero(), "fetcher must not be called")
	assert.Empty(t, p.calls)
}

func TestETLRunWithoutSummary(t *testing.T) {
	cfg := testConfig()
	cfg.WriteSummary = false
	p := newFakePublisher()

	res, err := newTestETL(&fakeFetcher{}, p, cfg).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"exists Detail", "create Detail", "write Detail!A1"}, p.calls)
	assert.Equal(t, [][]any{models.DetailHeader}, p.sheets["Detail"])
	assert.Empty(t, res.SummarySheet)
}

func TestETLRunFetchError(t *testing.T) {
	boom := errors.New("boom")
	p := newFakePublisher()

	_, err := newTestETL(&fakeFetcher{err: boom}, p, testConfig()).Run(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, p.calls)
}

func TestETLRunPublishError(t *testing.T) {
	p := newFakePublisher()
	p.err = errors.New("sheets down")

	_, err := newTestETL(&fakeFetcher{}, p, testConfig()).Run(context.Background(), nil)
	assert.ErrorContains(t, err, "sheets down")
}
