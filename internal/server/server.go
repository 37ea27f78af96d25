// Package server provides the HTTP server and routing for the evaluation
// engines.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/fincore/engines/internal/cache"
	financialhandlers "github.com/fincore/engines/internal/financial/handlers"
	riskhandlers "github.com/fincore/engines/internal/risk/handlers"
)

// Config holds server configuration
type Config struct {
	Log      zerolog.Logger
	Port     int
	DevMode  bool
	Cache    cache.Cache
	CacheTTL time.Duration
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	allowedOrigins := []string{"https://*", "http://*"}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s := &Server{
		router: router,
		log:    cfg.Log.With().Str("component", "server").Logger(),
	}

	financialHandler := financialhandlers.NewHandler(cfg.Cache, cfg.CacheTTL, cfg.Log)
	riskHandler := riskhandlers.NewHandler(cfg.Log)
	systemHandlers := NewSystemHandlers(cfg.Log)

	router.Route("/api/v1/financial", financialHandler.Routes)
	router.Route("/api/v1/risk", riskHandler.Routes)
	router.Get("/api/system/health", systemHandlers.HandleHealth)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router exposes the chi router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins listening. It blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}
