package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelCh415/ga4-weekly-sheets/internal/config"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/ingest"
	"github.com/AngelCh415/ga4-weekly-sheets/internal/utils"
)

func NewRouter(log *slog.Logger, run ingest.Runner, g prometheus.Gatherer) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	// one run at a time: concurrent runs would clear and write the same sheets
	var running sync.Mutex
	mux.Post("/ingest/run", func(w http.ResponseWriter, r *http.Request) {
		var since *time.Time
		if q := r.URL.Query().Get("since"); q != "" {
			t, err := time.Parse(config.DateLayout, q)
			if err != nil {
				http.Error(w, "bad since (YYYY-MM-DD)", 400)
				return
			}
			since = &t
		}
		if !running.TryLock() {
			http.Error(w, "run already in progress", http.StatusConflict)
			return
		}
		res, err := func() (ingest.Result, error) {
			defer running.Unlock()
			return run.Run(r.Context(), since)
		}()
		if err != nil {
			log.Error("run failed", slog.String("rid", utils.RID(r.Context())), slog.Bool("remote", ingest.IsRemote(err)), slog.String("err", err.Error()))
			code := 500
			switch {
			case ingest.IsRemote(err):
				code = 502
			case errors.Is(err, ingest.ErrBadRange):
				code = 400
			}
			http.Error(w, err.Error(), code)
			return
		}
		writeJSON(w, res)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
