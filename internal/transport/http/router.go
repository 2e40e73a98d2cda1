// Package http wires the area handlers into the service's router.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	caregiverhandler "appeal/internal/caregiver/handler"
	childhandler "appeal/internal/child/handler"
	encounterhandler "appeal/internal/encounter/handler"
	milestonehandler "appeal/internal/milestone/handler"
	"appeal/internal/platform/metrics"
	"appeal/internal/platform/middleware"
)

// Handlers groups the per-area handlers the router mounts.
type Handlers struct {
	Registry    *childhandler.Handler
	Milestones  *milestonehandler.Handler
	Encounters  *encounterhandler.Handler
	Projections *caregiverhandler.Handler
}

// NewRouter builds the full middleware stack and mounts every area.
func NewRouter(h Handlers, logger *slog.Logger, m *metrics.Metrics) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Latency(m))
	r.Use(middleware.Locale)
	r.Use(middleware.Actor)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.Registry.Register(r)
	h.Milestones.Register(r)
	h.Encounters.Register(r)
	h.Projections.Register(r)
	return r
}
