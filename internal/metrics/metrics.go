package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts viewer events. Each instance owns its registry so tests and
// multiple viewers do not collide.
type Metrics struct {
	Registry     *prometheus.Registry
	ModelLoads   *prometheus.CounterVec
	LoadDuration prometheus.Histogram
	Transitions  *prometheus.CounterVec
	Frames       *prometheus.CounterVec
}

// New creates and registers the viewer metrics.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ModelLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "viewer_model_loads_total",
			Help: "Model assignments by source (asset or fallback).",
		}, []string{"source"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "viewer_model_load_duration_seconds",
			Help:    "Time from load start to model assignment.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "viewer_presentation_transitions_total",
			Help: "Presentation mode transitions by target mode.",
		}, []string{"mode"}),
		Frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "viewer_frames_total",
			Help: "Frames presented by mode.",
		}, []string{"mode"}),
	}
	m.Registry.MustRegister(m.ModelLoads, m.LoadDuration, m.Transitions, m.Frames)
	return m
}

// Handler serves /metrics and /healthz.
func (m *Metrics) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	return r
}

// Serve listens on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: m.Handler(), ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
