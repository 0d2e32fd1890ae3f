// Package server exposes the analytics engine over HTTP: dataset summaries,
// feature importance, purchase predictions, nearest-neighbor lookups, the
// record browser, and per-customer profiles.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"purchase-insight/internal/cfg"
	"purchase-insight/internal/dataset"
	"purchase-insight/internal/metrics"
)

// Server serves the insight API for one loaded dataset.
type Server struct {
	ds       *dataset.Dataset
	settings cfg.Settings
	metrics  *metrics.Metrics
	srv      *http.Server
}

// New wires the router and returns a server ready to Start. The metrics
// argument may be nil, in which case no counters are recorded.
func New(ds *dataset.Dataset, settings cfg.Settings, m *metrics.Metrics) *Server {
	s := &Server{
		ds:       ds,
		settings: settings,
		metrics:  m,
	}

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", settings.ListenPort),
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Router builds the chi router with all API routes. Exposed separately so
// tests can drive the handlers through httptest without binding a port.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/importance", s.handleImportance)
		r.Post("/predict", s.handlePredict)
		r.Post("/similar", s.handleSimilar)
		r.Get("/records", s.handleRecords)
		r.Get("/profile/{id}", s.handleProfile)
		r.Get("/segments", s.handleSegments)
	})
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Start begins serving HTTP requests. It blocks until the server stops.
func (s *Server) Start() error {
	log.Info().Str("addr", s.srv.Addr).Int("records", s.ds.Len()).Msg("starting insight server")
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
