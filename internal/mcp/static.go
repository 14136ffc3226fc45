package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/damianboh/fmp-mcp-server/internal/config"
)

// Static introspection tools, the readme resource, and the routing
// prompt. None of these touch the network; they answer from
// compiled-in data so a client can probe the server without spending
// upstream quota.

// PingTool returns the liveness-check tool definition.
func PingTool() mcp.Tool {
	return mcp.NewTool("ping",
		mcp.WithDescription("Health check for this MCP server. Returns service name, version, and the configured FMP base URL. No upstream call."),
	)
}

// PingHandler answers the liveness check from static data.
func PingHandler(serviceName, baseURL string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := json.Marshal(map[string]interface{}{
			"ok":       true,
			"service":  serviceName,
			"version":  config.GetVersion(),
			"base_url": baseURL,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("Error encoding result: %v", err)), nil
		}
		return textResult(string(body)), nil
	}
}

// GuideTool returns the router-hint tool definition.
func GuideTool() mcp.Tool {
	return mcp.NewTool("when_should_i_use_fmp",
		mcp.WithDescription("Guidance tool: returns when this server is appropriate vs. other data sources, plus an intent-to-tool quick map. No upstream call."),
	)
}

// GuideHandler returns the static routing guidance.
func GuideHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := json.Marshal(map[string]interface{}{
			"use_when": []string{
				"You need fundamentals/ratios/statements for a ticker",
				"You need OHLCV daily prices",
				"You need earnings transcripts text",
				"You need macro indicators or economic calendar",
				"You need latest stock news or insider trades",
			},
			"avoid_when": []string{
				"Trading/execution actions",
				"Full SEC filings beyond transcripts",
				"Realtime tick/quote level market data",
			},
			"quick_map": map[string]string{
				"snapshot":   "company_profile",
				"pnl":        "income_statement",
				"balance":    "balance_sheet",
				"cash":       "cash_flow",
				"ratios":     "financial_ratios",
				"prices":     "historical_price_eod_full",
				"transcript": "earnings_call_transcript",
				"macro":      "economic_indicators",
				"calendar":   "economic_calendar",
				"news":       "stock_news_latest / stock_news_search",
				"insiders":   "insider_trading_latest / insider_trading_search",
			},
		})
		if err != nil {
			return errorResult(fmt.Sprintf("Error encoding result: %v", err)), nil
		}
		return textResult(string(body)), nil
	}
}

// readmeURI identifies the server guidance resource.
const readmeURI = "fmp://readme"

// readmeText is the static server guidance exposed as an MCP resource.
const readmeText = `# FMP MCP Server

Use this server when you need real financial data from Financial
Modeling Prep (/stable): company profiles, income statements, balance
sheets, cash flows, financial ratios, full daily OHLCV, earnings call
transcripts, macro indicators, the economic calendar, stock news, or
insider trades. The task usually mentions tickers (AAPL, MSFT, TSLA),
fundamentals/valuation, transcripts, macro/CPI/Fed calendar, or insider
transactions.

Not a fit when you need order execution, brokerage actions, Level II
order books, real-time ticks, or complete SEC filing documents beyond
transcripts.

Authentication: set FMP_API_KEY. Without a key the server refuses to
start unless demo_fallback is enabled, which uses the tightly limited
"demo" credential.

Quick start: try company_profile(symbol="AAPL") then
financial_ratios(symbol="AAPL").
`

// ReadmeResource returns the fmp://readme resource definition.
func ReadmeResource() mcp.Resource {
	return mcp.NewResource(readmeURI, "readme",
		mcp.WithResourceDescription("When to use this server, authentication notes, and a quick start."),
		mcp.WithMIMEType("text/markdown"),
	)
}

// ReadmeHandler serves the static readme text.
func ReadmeHandler() server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      readmeURI,
				MIMEType: "text/markdown",
				Text:     readmeText,
			},
		}, nil
	}
}

// howToUseText is the routing guidance served by the how_to_use_fmp prompt.
const howToUseText = `If the user asks for stock fundamentals, ratios, financial statements,
earnings call transcripts, macro indicators, economic calendars, insider trades,
or daily OHLCV, choose an FMP tool. Map user intent:
- Snapshot/company facts -> company_profile
- Periodized P&L -> income_statement
- Balance sheet items -> balance_sheet
- Cash generation/free cash flow -> cash_flow
- Ratios/valuation/liquidity -> financial_ratios
- Daily price series -> historical_price_eod_full
- Earnings call text -> earnings_call_transcript
- Macro time series -> economic_indicators
- Release schedule -> economic_calendar
- Latest news / ticker-filtered news -> stock_news_latest / stock_news_search
- Insider transactions -> insider_trading_latest / insider_trading_search
Prefer the most specific tool; avoid calling multiple tools unless necessary.`

// HowToUsePrompt returns the how_to_use_fmp prompt definition.
func HowToUsePrompt() mcp.Prompt {
	return mcp.NewPrompt("how_to_use_fmp",
		mcp.WithPromptDescription("Routing guidance for mapping user intent to FMP tools."),
	)
}

// HowToUseHandler serves the static routing guidance.
func HowToUseHandler() server.PromptHandlerFunc {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return mcp.NewGetPromptResult(
			"How to use the FMP tools",
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleAssistant, mcp.NewTextContent(howToUseText)),
			},
		), nil
	}
}
