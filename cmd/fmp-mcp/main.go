package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/damianboh/fmp-mcp-server/internal/common"
	"github.com/damianboh/fmp-mcp-server/internal/config"
	"github.com/damianboh/fmp-mcp-server/internal/fmp"
	"github.com/damianboh/fmp-mcp-server/internal/mcp"
	"github.com/damianboh/fmp-mcp-server/internal/server"
)

var (
	configFile  = flag.String("config", "fmp-mcp.toml", "Path to config file")
	transport   = flag.String("transport", "", "Transport: stdio, http, or sse (overrides config)")
	serverPort  = flag.Int("port", 0, "Listen port for http/sse transports (overrides config)")
	serverHost  = flag.String("host", "", "Listen host for http/sse transports (overrides config)")
	showVersion = flag.Bool("version", false, "Print version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("fmp-mcp version %s\n", config.GetFullVersion())
		os.Exit(0)
	}

	// .env is optional; real environments set FMP_API_KEY directly
	_ = godotenv.Load()

	cfg, err := config.LoadFromFiles(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	config.ApplyFlagOverrides(cfg, *transport, *serverPort, *serverHost)

	if issues := cfg.Validate(); len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Configuration error: mandatory fields are missing or invalid:")
		fmt.Fprintln(os.Stderr, "")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Values can be set via TOML file, FMP_* environment variables, or CLI flags.")
		fmt.Fprintln(os.Stderr, "")
		os.Exit(1)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)

	apiKey, err := cfg.ResolveAPIKey()
	if err != nil {
		// Validate already reported this; unreachable unless flags raced config
		logger.Error().Str("error", err.Error()).Msg("no usable API key")
		os.Exit(1)
	}
	if apiKey == config.DemoAPIKey {
		logger.Warn().Msg("using the constrained demo credential; expect tight upstream rate limits")
	}

	client := fmp.NewClient(cfg.FMP.BaseURL, apiKey, cfg.FMP.GetTimeout(), logger)
	mcpSrv := mcp.NewServer(cfg.Server.Name, config.GetVersion(), client, logger)

	switch strings.ToLower(cfg.Server.Transport) {
	case "", "stdio":
		logger.Info().Str("transport", "stdio").Msg("serving MCP")
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}

	case "sse":
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info().Str("transport", "sse").Str("address", addr).Msg("serving MCP")
		sseServer := mcpserver.NewSSEServer(mcpSrv)
		if err := sseServer.Start(addr); err != nil {
			fmt.Fprintf(os.Stderr, "sse server error: %v\n", err)
			os.Exit(1)
		}

	case "http":
		runHTTP(cfg, mcpSrv, logger)
	}
}

// runHTTP serves the streamable-HTTP transport with /health and
// /version routes and a graceful shutdown on SIGINT/SIGTERM.
func runHTTP(cfg *config.Config, mcpSrv *mcpserver.MCPServer, logger *common.Logger) {
	srv := server.New(cfg.Server, mcpSrv, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error().Str("error", err.Error()).Msg("server failed")
			os.Exit(1)
		}
	case <-sigChan:
		logger.Info().Msg("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Str("error", err.Error()).Msg("server shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
