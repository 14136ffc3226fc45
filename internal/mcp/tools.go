package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/damianboh/fmp-mcp-server/internal/common"
	"github.com/damianboh/fmp-mcp-server/internal/fmp"
)

// NewServer builds the MCP server with the full tool catalog, the
// static introspection tools, the readme resource, and the routing
// prompt registered. The transport is chosen by the caller; the core
// has no knowledge of stdio vs. HTTP vs. SSE.
func NewServer(name string, version string, client *fmp.Client, logger *common.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	toolCount := RegisterTools(s, client, logger)
	RegisterStatic(s, name, client.BaseURL())

	logger.Info().
		Int("tools", toolCount).
		Str("base_url", client.BaseURL()).
		Msg("MCP server initialized")

	return s
}

// RegisterTools registers every catalog tool on the server, wiring
// each to the generic FMP handler. Returns the number registered.
func RegisterTools(s *server.MCPServer, client *fmp.Client, logger *common.Logger) int {
	catalog := Catalog()
	for _, ct := range catalog {
		tool := BuildTool(ct)
		handler := GenericToolHandler(client, logger, ct)
		s.AddTool(tool, handler)
	}
	return len(catalog)
}

// RegisterStatic registers the zero-network tools, the readme
// resource, and the how_to_use_fmp prompt.
func RegisterStatic(s *server.MCPServer, serviceName, baseURL string) {
	s.AddTool(PingTool(), PingHandler(serviceName, baseURL))
	s.AddTool(GuideTool(), GuideHandler())
	s.AddResource(ReadmeResource(), ReadmeHandler())
	s.AddPrompt(HowToUsePrompt(), HowToUseHandler())
}
