// Package httpd serves the assistant over HTTP: a chat endpoint, a tool
// listing, and a tool call endpoint. Tool failures travel as JSON payloads
// with a 200 status; only transport-level problems produce non-200 codes.
package httpd

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"draftdesk/internal/assistant"
	"draftdesk/internal/protocol"
	"draftdesk/internal/tools"
)

// ServerOptions configures a Server. Assistant and Catalog are required.
type ServerOptions struct {
	Assistant *assistant.Assistant
	Catalog   *tools.Catalog
	Logger    *log.Logger
}

// Server handles the HTTP API.
type Server struct {
	assistant *assistant.Assistant
	catalog   *tools.Catalog
	logger    *log.Logger
}

func NewServer(opts ServerOptions) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Server{
		assistant: opts.Assistant,
		catalog:   opts.Catalog,
		logger:    logger,
	}
}

// Handler returns the API mux for mounting or testing.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(protocol.ChatPath, s.handleChat)
	mux.HandleFunc(protocol.ToolsListPath, s.handleToolsList)
	mux.HandleFunc(protocol.ToolsCallPath, s.handleToolsCall)
	mux.HandleFunc(protocol.HealthPath, s.handleHealth)
	return s.logRequests(mux)
}

// Serve blocks while handling HTTP on listener. Cancel ctx to initiate
// graceful shutdown; in-flight requests are allowed to drain.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(listener) }()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start))
	})
}
