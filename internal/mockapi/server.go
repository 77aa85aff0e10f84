// Package mockapi is an in-memory replica of the remote storefront backend.
// It exists for local development and integration tests; it is not the
// production API.
package mockapi

import (
	"context"
	"log"
	"net/http"
	"time"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	data       *state
}

// New builds a Server. With seedData set, demo fixtures are loaded so the
// storefront has something to show.
func New(addr string, logger *log.Logger, seedData bool) (*Server, error) {
	data := newState()
	if seedData {
		if err := data.seed(); err != nil {
			return nil, err
		}
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           buildRouter(logger, data),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		data:       data,
	}, nil
}

// Handler exposes the router, mainly for tests driving the API through
// httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
