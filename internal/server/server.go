// Package server provides the HTTP server and routing for the analyzer.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/perfscope/perfscope/internal/config"
	"github.com/perfscope/perfscope/internal/modules/catalog"
	"github.com/perfscope/perfscope/internal/modules/charts"
	"github.com/perfscope/perfscope/internal/modules/comparison"
	"github.com/perfscope/perfscope/internal/modules/historical"
	"github.com/perfscope/perfscope/pkg/embedded"
)

// Config holds server configuration.
type Config struct {
	Port              int
	Log               zerolog.Logger
	Config            *config.Config
	DevMode           bool
	HistoricalService *historical.Service
	ComparisonService *comparison.Service
	ChartsService     *charts.Service
}

// Server represents the HTTP server.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	cfg    *config.Config

	historicalService *historical.Service
	comparisonService *comparison.Service
	chartsService     *charts.Service
	systemHandlers    *SystemHandlers
}

// New creates a new HTTP server.
func New(cfg Config) *Server {
	s := &Server{
		router:            chi.NewRouter(),
		log:               cfg.Log.With().Str("component", "server").Logger(),
		cfg:               cfg.Config,
		historicalService: cfg.HistoricalService,
		comparisonService: cfg.ComparisonService,
		chartsService:     cfg.ChartsService,
		systemHandlers:    NewSystemHandlers(cfg.Log),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware.
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	// Multi-ticker requests fan out to the provider; give them room.
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.systemHandlers.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleStatus)
		})

		historical.NewHandler(s.historicalService, s.log).RegisterRoutes(r)
		comparison.NewHandler(s.comparisonService, s.log).RegisterRoutes(r)
		charts.NewHandler(s.chartsService, s.historicalService, s.comparisonService, s.log).RegisterRoutes(r)
		catalog.NewHandler(s.log).RegisterRoutes(r)
	})

	// Embedded frontend: the chart-rendering pages
	frontend, err := fs.Sub(embedded.Files, "frontend")
	if err != nil {
		s.log.Error().Err(err).Msg("Embedded frontend unavailable")
		return
	}
	s.router.Handle("/*", http.FileServer(http.FS(frontend)))
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
