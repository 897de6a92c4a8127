// Package server exposes the address resolution engine over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/SophiaPhilean/UFOTRAC/internal/metrics"
	"github.com/SophiaPhilean/UFOTRAC/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server routes resolution requests to the resolver and serves the
// operational endpoints.
type Server struct {
	log      *slog.Logger
	resolver *service.Resolver
	metrics  *metrics.Metrics
}

// New creates a Server around the given resolver.
func New(log *slog.Logger, resolver *service.Resolver, appMetrics *metrics.Metrics) *Server {
	return &Server{log: log, resolver: resolver, metrics: appMetrics}
}

// Router builds the chi router with the resolution endpoint plus health
// and metrics.
func (s *Server) Router(reg *prometheus.Registry) http.Handler {
	router := chi.NewRouter()

	router.Post("/api/v1/resolve", s.handleResolve)
	router.Get("/healthz", s.handleHealth)
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return router
}

func (s *Server) handleHealth(writer http.ResponseWriter, req *http.Request) {
	writer.WriteHeader(http.StatusOK)
	if _, err := writer.Write([]byte("OK")); err != nil {
		s.log.ErrorContext(req.Context(), "failed to write reply", "error", err)
	}
}
