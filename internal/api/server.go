package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"phoneaddr/internal/config"
	"phoneaddr/internal/logging"
	"phoneaddr/internal/record"
	"phoneaddr/internal/store"
)

// Server represents the HTTP API server
type Server struct {
	router  *http.ServeMux
	server  *http.Server
	addr    string
	prefix  string
	name    string
	logger  *logging.Logger
	records *record.Service
	kv      store.KV
}

// NewServer creates a new HTTP server instance. The store handle is
// injected here once at startup and shared by every request.
func NewServer(cfg *config.Config, records *record.Service, kv store.KV, logger *logging.Logger) *Server {
	s := &Server{
		addr:    cfg.Addr(),
		prefix:  cfg.API.Prefix,
		name:    cfg.Service.Name,
		logger:  logger,
		records: records,
		kv:      kv,
		router:  http.NewServeMux(),
	}

	s.registerRoutes()

	handler := s.applyMiddleware(s.router)
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", map[string]interface{}{
		"addr":   s.addr,
		"prefix": s.prefix,
	})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", nil)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully", nil)
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last one wraps first)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	return handler
}
