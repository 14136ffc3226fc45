package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/damianboh/fmp-mcp-server/internal/common"
	"github.com/damianboh/fmp-mcp-server/internal/fmp"
)

// textResult creates a plain MCP text result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// envelopeResult renders an fmp.Envelope as the tool result. The
// envelope is always returned as data; IsError mirrors the ok flag so
// MCP clients get the standard error signal without losing the payload.
func envelopeResult(env fmp.Envelope) *mcp.CallToolResult {
	body, err := json.Marshal(env)
	if err != nil {
		return errorResult(fmt.Sprintf("Error encoding result: %v", err))
	}
	result := textResult(string(body))
	result.IsError = !env.OK
	return result
}

// GenericToolHandler creates a handler that routes an MCP tool call to
// the FMP endpoint described by a CatalogTool: assemble query
// parameters (applying defaults, omitting absent optionals), issue one
// GET through the client, and return the envelope.
func GenericToolHandler(client *fmp.Client, logger *common.Logger, ct CatalogTool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := logger.WithCorrelationId(shortID())

		params := url.Values{}
		for _, param := range ct.Params {
			val, ok := argValue(request, param)
			if !ok {
				if param.Required {
					return errorResult(fmt.Sprintf("Error: %s parameter is required", param.Name)), nil
				}
				if param.Default != "" {
					params.Set(param.QueryName(), param.Default)
				}
				// Absent optional without a default: omit the query key entirely
				continue
			}
			params.Set(param.QueryName(), val)
		}

		log.Debug().
			Str("tool", ct.Name).
			Str("endpoint", ct.Path).
			Msg("tool call")

		env := client.Get(ctx, ct.Path, params)
		if !env.OK {
			log.Warn().
				Str("tool", ct.Name).
				Str("kind", string(env.Error.Kind)).
				Str("error", env.Error.Message).
				Msg("tool call failed")
		}

		return envelopeResult(env), nil
	}
}

// argValue extracts a parameter value from the MCP request as its
// outbound string form. The second return is false when the argument
// is absent (or an empty string, which callers never mean as a value).
func argValue(request mcp.CallToolRequest, param CatalogParam) (string, bool) {
	if param.Type == "number" {
		args := request.GetArguments()
		if args == nil {
			return "", false
		}
		v, ok := args[param.Name]
		if !ok || v == nil {
			return "", false
		}
		return formatNumber(v)
	}

	val := request.GetString(param.Name, "")
	if val == "" {
		return "", false
	}
	return val, true
}

// formatNumber renders a JSON number argument without a spurious
// decimal point: JSON unmarshals every number to float64, but FMP
// expects integers for page/limit/year/quarter.
func formatNumber(v interface{}) (string, bool) {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return strconv.FormatInt(int64(n), 10), true
		}
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case int:
		return strconv.Itoa(n), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case json.Number:
		return n.String(), true
	case string:
		if n == "" {
			return "", false
		}
		return n, true
	default:
		return "", false
	}
}

// shortID returns a compact correlation ID for log tracing.
func shortID() string {
	return uuid.NewString()[:8]
}
