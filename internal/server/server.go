// Package server exposes the pipeline and the map store over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/storage"
)

const (
	defaultAddr    = ":8080"
	requestTimeout = 60 * time.Second
	maxBodyBytes   = 1 << 20
)

// Config holds server configuration.
type Config struct {
	Addr            string
	AllowAllOrigins bool // allow all CORS origins (dev mode)
}

// Server serves the mind map API.
type Server struct {
	cfg        Config
	runner     *pipeline.Runner
	store      storage.Store
	logger     *log.Logger
	gatherer   prometheus.Gatherer
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. A nil gatherer leaves /metrics unmounted.
func New(cfg Config, runner *pipeline.Runner, store storage.Store, logger *log.Logger, gatherer prometheus.Gatherer) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:      cfg,
		runner:   runner,
		store:    store,
		logger:   logger,
		gatherer: gatherer,
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Cache"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
		corsOpts.AllowCredentials = false
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Post("/outline", s.handleOutline)

		r.Route("/maps", func(r chi.Router) {
			r.Post("/", s.handleCreateMap)
			r.Get("/{id}", s.handleGetMap)
			r.Put("/{id}", s.handlePutMap)
			r.Delete("/{id}", s.handleDeleteMap)
			r.Get("/{id}/layout", s.handleMapLayout)
			r.Get("/{id}/render", s.handleMapRender)
		})
	})

	return r
}

// requestLogger logs one line per request through the server's logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.cfg.Addr }

// Start listens until the server is shut down. It returns nil after a
// graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("listening", "addr", s.cfg.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Run starts the server and shuts it down when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return ctx.Err()
	}
}
