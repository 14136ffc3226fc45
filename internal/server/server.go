// Package server hosts the MCP streamable-HTTP transport alongside
// plain liveness routes.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/damianboh/fmp-mcp-server/internal/common"
	"github.com/damianboh/fmp-mcp-server/internal/config"
)

// Server manages the HTTP server and routes.
type Server struct {
	router *http.ServeMux
	server *http.Server
	logger *common.Logger
}

// New creates an HTTP server exposing the MCP endpoint at /mcp plus
// /health and /version liveness routes.
func New(cfg config.ServerConfig, mcpSrv *mcpserver.MCPServer, logger *common.Logger) *Server {
	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	s := &Server{logger: logger}

	router := http.NewServeMux()
	router.Handle("/mcp", streamable)
	router.Handle("/mcp/", streamable)
	router.HandleFunc("/health", s.handleHealth)
	router.HandleFunc("/version", s.handleVersion)
	s.router = router

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().
		Str("address", s.server.Addr).
		Str("url", fmt.Sprintf("http://%s/mcp", s.server.Addr)).
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
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
	return s.router
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "fmp-mcp-server",
	})
}

// handleVersion handles GET /version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"version": config.GetVersion(),
		"build":   config.Build,
		"commit":  config.GitCommit,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
