// Package http serves the dashboard page, its JSON API and the operational
// endpoints.
package http

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/market-prices-dashboard/internal/dashboard"
	"github.com/couchcryptid/market-prices-dashboard/internal/domain"
	"github.com/couchcryptid/market-prices-dashboard/internal/geo"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// QueryService runs a dashboard query.
type QueryService interface {
	Query(ctx context.Context, c domain.Criteria) (dashboard.Result, error)
	Options(ctx context.Context) (dashboard.OptionLists, error)
	CountInvalid()
}

// CountyIndex lists county centroids.
type CountyIndex interface {
	Counties() []geo.County
	Nearest(lat, lon float64) (geo.County, float64, bool)
}

// Server exposes the dashboard, its API, and health, readiness and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	service    QueryService
	counties   CountyIndex
	page       *template.Template
	logger     *slog.Logger
}

// NewServer creates an HTTP server with all dashboard and operational routes.
func NewServer(addr string, service QueryService, counties CountyIndex, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	// WriteTimeout covers the first request, which may fetch the whole price table.
	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service:  service,
		counties: counties,
		page:     pageTemplate,
		logger:   logger,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("GET /api/prices", s.handlePrices)
	mux.HandleFunc("GET /api/counties", s.handleCounties)
	mux.HandleFunc("GET /api/counties/nearest", s.handleNearest)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
