// Package server hosts the streamable HTTP MCP endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bobmcallan/youtube138-mcp/internal/common"
	"github.com/bobmcallan/youtube138-mcp/internal/config"
)

// shutdownTimeout bounds graceful shutdown once the context is cancelled.
const shutdownTimeout = 10 * time.Second

// Server manages the HTTP server and routes.
type Server struct {
	mcpHandler http.Handler
	router     *http.ServeMux
	server     *http.Server
	logger     *common.Logger
}

// New creates an HTTP server exposing mcpHandler at /mcp.
func New(cfg *config.Config, mcpHandler http.Handler, logger *common.Logger) *Server {
	s := &Server{
		mcpHandler: mcpHandler,
		logger:     logger,
	}

	s.router = s.setupRoutes()

	// WriteTimeout must outlast the upstream call timeout.
	writeTimeout := time.Duration(cfg.API.TimeoutSeconds)*time.Second + 30*time.Second
	s.server = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info().Str("address", s.server.Addr).Msg("HTTP server starting")

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
