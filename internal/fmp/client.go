// Package fmp implements the shared request client for the Financial
// Modeling Prep /stable REST API. Every tool call funnels through
// Client.Get, which issues one outbound GET, injects the API key, and
// normalizes all failures into the Envelope shape.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/damianboh/fmp-mcp-server/internal/common"
)

// maxResponseSize caps the response body to prevent OOM from unexpectedly large responses.
const maxResponseSize = 50 << 20 // 50MB

// maxErrorBodyLen caps how much of an upstream error body is echoed into messages.
const maxErrorBodyLen = 512

// Client issues GET requests against the FMP API. The API key is
// injected at construction time and read-only thereafter; a Client is
// safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates an FMP client for the given base URL and API key.
// The timeout applies to each call as a whole; a timed-out call reports
// as a request-error envelope.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *common.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the configured upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a single GET request to {base_url}/{endpoint} with the
// given query parameters plus the injected apikey. It never returns an
// error: every outcome, including transport failures and malformed
// JSON, is an Envelope. No retries, no caching; one outbound call per
// invocation.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) Envelope {
	query := url.Values{}
	for key, vals := range params {
		for _, v := range vals {
			query.Add(key, v)
		}
	}
	query.Set("apikey", c.apiKey)

	reqURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/") + "?" + query.Encode()

	c.logger.Debug().
		Str("method", "GET").
		Str("endpoint", endpoint).
		Msg("fmp request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Failure(KindUnknownError, "", c.redact(err.Error()))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		// url.Error strings embed the full request URL, apikey included
		msg := c.redact(err.Error())
		c.logger.Error().
			Str("endpoint", endpoint).
			Dur("duration", duration).
			Str("error", msg).
			Msg("fmp request failed")
		return Failure(KindRequestError, "", msg)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Failure(KindRequestError, "", c.redact(fmt.Sprintf("failed to read response: %v", err)))
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("fmp response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strconv.Itoa(resp.StatusCode)
		msg := fmt.Sprintf("FMP returned %s for %s", resp.Status, endpoint)
		if snippet := c.redact(truncate(string(body), maxErrorBodyLen)); snippet != "" {
			msg += ": " + snippet
		}
		return Failure(KindHTTPError, detail, msg)
	}

	if !json.Valid(body) {
		return Failure(KindUnknownError, "", fmt.Sprintf("invalid JSON in response for %s", endpoint))
	}

	return Success(body)
}

// redact strips the API key from a message before it can leak into an
// envelope or a log line.
func (c *Client) redact(msg string) string {
	if c.apiKey == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, c.apiKey, "***")
	if escaped := url.QueryEscape(c.apiKey); escaped != c.apiKey {
		msg = strings.ReplaceAll(msg, escaped, "***")
	}
	return msg
}

// truncate shortens s to at most n bytes.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
