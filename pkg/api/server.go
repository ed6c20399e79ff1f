// Package api serves the assembled inventory table over HTTP: the raw
// flattened blob for tooling that wants the wire form, and parsed JSON
// views for everything else.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/smbtab/smbtab/pkg/store"
)

// Server holds the API server state
type Server struct {
	store   store.TableStore
	config  ServerConfig
	metrics *Metrics
	sugar   *zap.SugaredLogger
}

// NewServer creates a new API server
func NewServer(st store.TableStore, config ServerConfig, metrics *Metrics, logger *zap.Logger) *Server {
	return &Server{
		store:   st,
		config:  config,
		metrics: metrics,
		sugar:   logger.Sugar(),
	}
}

// Router builds the chi router with all routes configured.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if s.config.APIKey != "" {
			r.Use(apiKeyMiddleware(s.config.APIKey, s.metrics))
		}

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		// Table views
		r.Get("/table", s.metrics.InstrumentHandler("GET", "/api/v1/table", s.handleTable))
		r.Get("/records", s.metrics.InstrumentHandler("GET", "/api/v1/records", s.handleListRecords))
		r.Get("/records/{handle}", s.metrics.InstrumentHandler("GET", "/api/v1/records/{handle}", s.handleGetRecord))
		r.Get("/stats", s.metrics.InstrumentHandler("GET", "/api/v1/stats", s.handleStats))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(st store.TableStore, config ServerConfig, logger *zap.Logger) error {
	metrics := NewMetrics()
	server := NewServer(st, config, metrics, logger)

	addr := fmt.Sprintf(":%d", config.Port)
	server.sugar.Infow("serving inventory table", "addr", addr)

	return http.ListenAndServe(addr, server.Router())
}
