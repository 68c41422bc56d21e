package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Recorder struct {
	runs     *prometheus.CounterVec
	fetched  prometheus.Counter
	written  *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gaweekly",
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"status"}),
		fetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gaweekly",
			Name:      "rows_fetched_total",
			Help:      "Report rows returned by the analytics API.",
		}),
		written: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gaweekly",
			Name:      "rows_written_total",
			Help:      "Data rows written per sheet, header excluded.",
		}, []string{"sheet"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gaweekly",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a pipeline run.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(r.runs, r.fetched, r.written, r.duration)
	}
	return r
}

func (r *Recorder) Fetched(n int) { r.fetched.Add(float64(n)) }

func (r *Recorder) Written(sheet string, n int) {
	r.written.WithLabelValues(sheet).Add(float64(n))
}

func (r *Recorder) Run(start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.runs.WithLabelValues(status).Inc()
	r.duration.Observe(time.Since(start).Seconds())
}
