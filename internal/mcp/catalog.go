package mcp

import (
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// CatalogTool describes one FMP-backed tool: its upstream path and the
// parameters it forwards. The catalog is compiled in; one entry per
// /stable endpoint, nothing dynamic.
type CatalogTool struct {
	Name        string
	Description string
	Path        string
	Params      []CatalogParam
}

// CatalogParam describes one tool parameter.
type CatalogParam struct {
	Name        string
	Query       string // outbound query-parameter name when it differs from Name
	Type        string // "string" or "number"
	Description string
	Required    bool
	Default     string // sent when the caller omits the argument; empty means omit entirely
}

// QueryName returns the outbound query-parameter name for p.
func (p CatalogParam) QueryName() string {
	if p.Query != "" {
		return p.Query
	}
	return p.Name
}

// periodParams is the shared parameter set for the periodized statement tools.
func periodParams() []CatalogParam {
	return []CatalogParam{
		{Name: "symbol", Type: "string", Required: true, Description: "Ticker symbol (e.g. 'AAPL')"},
		{Name: "limit", Type: "number", Default: "5", Description: "Number of periods to return (max 1000)"},
		{Name: "period", Type: "string", Default: "annual", Description: "One of 'annual', 'quarter', or explicit tags like 'Q1'..'Q4', 'FY'"},
	}
}

// dateRangeParams returns optional from/to window parameters.
func dateRangeParams() []CatalogParam {
	return []CatalogParam{
		{Name: "date_from", Query: "from", Type: "string", Description: "Start date YYYY-MM-DD"},
		{Name: "date_to", Query: "to", Type: "string", Description: "End date YYYY-MM-DD"},
	}
}

// pagingParams returns zero-based page plus page-size parameters with defaults.
func pagingParams(defaultLimit string) []CatalogParam {
	return []CatalogParam{
		{Name: "page", Type: "number", Default: "0", Description: "Zero-based page index"},
		{Name: "limit", Type: "number", Default: defaultLimit, Description: "Records per page"},
	}
}

// Catalog returns the full set of FMP-backed tool definitions.
// Static introspection tools (ping, when_should_i_use_fmp) live in
// static.go; they never touch the network and are registered separately.
func Catalog() []CatalogTool {
	return []CatalogTool{
		{
			Name:        "company_profile",
			Description: "Company profile: current snapshot for a single symbol: price, marketCap, beta, sector, identifiers (cik/isin/cusip), IPO and trading flags. For periodized statements use income_statement / balance_sheet / cash_flow instead.",
			Path:        "profile",
			Params: []CatalogParam{
				{Name: "symbol", Type: "string", Required: true, Description: "Ticker symbol (e.g. 'AAPL')"},
			},
		},
		{
			Name:        "income_statement",
			Description: "Income statement: revenue, costs, margins, and EPS per period (annual or quarterly). Use for profitability trends and earnings analysis.",
			Path:        "income-statement",
			Params:      periodParams(),
		},
		{
			Name:        "balance_sheet",
			Description: "Balance sheet statement: assets, liabilities, and equity structure per period. Use for leverage, liquidity, and working-capital inputs.",
			Path:        "balance-sheet-statement",
			Params:      periodParams(),
		},
		{
			Name:        "cash_flow",
			Description: "Cash flow statement: operating, investing, and financing flows plus free cash flow per period.",
			Path:        "cash-flow-statement",
			Params:      periodParams(),
		},
		{
			Name:        "financial_ratios",
			Description: "Financial ratios: ready-made profitability, liquidity, efficiency, valuation, and leverage ratios per period. For raw statement lines use the statement tools.",
			Path:        "ratios",
			Params:      periodParams(),
		},
		{
			Name:        "historical_price_eod_full",
			Description: "Daily OHLCV price series with change, changePercent, and VWAP for a symbol, optionally bounded by a date range. Daily bars only, no intraday ticks.",
			Path:        "historical-price-eod/full",
			Params: append([]CatalogParam{
				{Name: "symbol", Type: "string", Required: true, Description: "Ticker symbol (e.g. 'AAPL')"},
			}, dateRangeParams()...),
		},
		{
			Name:        "earnings_call_transcript",
			Description: "Earnings call transcript: full prepared remarks and Q&A text for a company's earnings call, by fiscal year and quarter.",
			Path:        "earning-call-transcript",
			Params: []CatalogParam{
				{Name: "symbol", Type: "string", Required: true, Description: "Ticker symbol (e.g. 'AAPL')"},
				{Name: "year", Type: "number", Required: true, Description: "Fiscal year (e.g. 2020)"},
				{Name: "quarter", Type: "number", Required: true, Description: "Fiscal quarter number 1..4"},
				{Name: "limit", Type: "number", Description: "Optional number of records"},
			},
		},
		{
			Name:        "economic_indicators",
			Description: "Macro indicator time series: values for indicators like GDP, CPI, unemploymentRate, optionally windowed by date (max 90-day span per request).",
			Path:        "economic-indicators",
			Params: append([]CatalogParam{
				{Name: "name", Type: "string", Required: true, Description: "Indicator name (e.g. 'GDP', 'CPI', 'unemploymentRate')"},
			}, dateRangeParams()...),
		},
		{
			Name:        "economic_calendar",
			Description: "Economic release calendar: scheduled events with country, impact, and actual/estimate/previous values, optionally windowed by date.",
			Path:        "economic-calendar",
			Params:      dateRangeParams(),
		},
		{
			Name:        "stock_news_latest",
			Description: "Latest market and stock news headlines with publisher, snippet, and URL. For ticker-filtered news use stock_news_search.",
			Path:        "news/stock-latest",
			Params:      append(pagingParams("20"), dateRangeParams()...),
		},
		{
			Name:        "stock_news_search",
			Description: "Company-specific news filtered by ticker symbols.",
			Path:        "news/stock",
			Params: append(append([]CatalogParam{
				{Name: "symbols", Type: "string", Required: true, Description: "Comma-separated tickers (e.g. 'AAPL,MSFT')"},
			}, pagingParams("20")...), dateRangeParams()...),
		},
		{
			Name:        "insider_trading_latest",
			Description: "Latest insider trading: recent insider buys/sells across the market with roles, share counts, prices, and SEC form links.",
			Path:        "insider-trading/latest",
			Params: append(pagingParams("100"),
				CatalogParam{Name: "date", Type: "string", Description: "Specific date YYYY-MM-DD to filter"},
			),
		},
		{
			Name:        "insider_trading_search",
			Description: "Search insider trading for a single symbol, optionally filtered by reporting/company CIK or transaction type.",
			Path:        "insider-trading/search",
			Params: []CatalogParam{
				{Name: "symbol", Type: "string", Required: true, Description: "Ticker symbol (e.g. 'AAPL')"},
				{Name: "page", Type: "number", Description: "Zero-based page index"},
				{Name: "limit", Type: "number", Description: "Records per page"},
				{Name: "reporting_cik", Query: "reportingCik", Type: "string", Description: "Filter by the reporting insider's CIK"},
				{Name: "company_cik", Query: "companyCik", Type: "string", Description: "Filter by the company's CIK"},
				{Name: "transaction_type", Query: "transactionType", Type: "string", Description: "Filter by transaction type (e.g. 'P-Purchase', 'S-Sale')"},
			},
		},
	}
}

// ValidateCatalogTool validates a single catalog tool entry.
func ValidateCatalogTool(ct CatalogTool) error {
	if ct.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if ct.Path == "" {
		return fmt.Errorf("tool %q has empty path", ct.Name)
	}
	for _, p := range ct.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %q has a param with empty name", ct.Name)
		}
		if p.Type != "string" && p.Type != "number" {
			return fmt.Errorf("tool %q param %q has unsupported type %q", ct.Name, p.Name, p.Type)
		}
		if p.Required && p.Default != "" {
			return fmt.Errorf("tool %q param %q is required and cannot carry a default", ct.Name, p.Name)
		}
	}
	return nil
}

// BuildTool converts a CatalogTool into an mcp.Tool with the appropriate schema.
func BuildTool(ct CatalogTool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(ct.Description)}
	for _, p := range ct.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(ct.Name, opts...)
}

// buildParamOption maps a CatalogParam to the appropriate mcp-go tool option.
func buildParamOption(p CatalogParam) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	if p.Type == "number" {
		if p.Default != "" {
			if f, err := strconv.ParseFloat(p.Default, 64); err == nil {
				opts = append(opts, mcp.DefaultNumber(f))
			}
		}
		return mcp.WithNumber(p.Name, opts...)
	}

	if p.Default != "" {
		opts = append(opts, mcp.DefaultString(p.Default))
	}
	return mcp.WithString(p.Name, opts...)
}
