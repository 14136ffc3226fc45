package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/damianboh/fmp-mcp-server/internal/common"
)

// DemoAPIKey is the constrained credential FMP accepts for evaluation.
// Only used when demo_fallback is explicitly enabled.
const DemoAPIKey = "demo"

// Config holds all fmp-mcp configuration.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	FMP     FMPConfig            `toml:"fmp"`
	Logging common.LoggingConfig `toml:"logging"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name      string `toml:"name"`
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	Transport string `toml:"transport"` // stdio, http, sse
}

// FMPConfig holds Financial Modeling Prep API settings.
type FMPConfig struct {
	BaseURL      string `toml:"base_url"`
	APIKey       string `toml:"api_key"`
	Timeout      string `toml:"timeout"`
	DemoFallback bool   `toml:"demo_fallback"`
}

// GetTimeout parses and returns the upstream request timeout.
func (c *FMPConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoadFromFiles loads configuration from TOML files with priority:
// defaults -> file1 -> file2 -> ... -> env. Later files override earlier files.
// Missing files are skipped.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies FMP_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if key := os.Getenv("FMP_API_KEY"); key != "" {
		config.FMP.APIKey = key
	}
	if base := os.Getenv("FMP_BASE_URL"); base != "" {
		config.FMP.BaseURL = base
	}
	if demo := os.Getenv("FMP_DEMO_FALLBACK"); demo != "" {
		if b, err := strconv.ParseBool(demo); err == nil {
			config.FMP.DemoFallback = b
		}
	}
	if host := os.Getenv("FMP_MCP_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("FMP_MCP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if transport := os.Getenv("FMP_MCP_TRANSPORT"); transport != "" {
		config.Server.Transport = transport
	}
	if level := os.Getenv("FMP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, transport string, port int, host string) {
	if transport != "" {
		config.Server.Transport = transport
	}
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// ResolveAPIKey returns the API key to use for upstream requests.
// Policy: a configured key wins; with no key the server fails fast unless
// demo_fallback is enabled, in which case the constrained "demo" credential
// is used. Both behaviors are explicit configuration, never a silent guess.
func (c *Config) ResolveAPIKey() (string, error) {
	if c.FMP.APIKey != "" {
		return c.FMP.APIKey, nil
	}
	if c.FMP.DemoFallback {
		return DemoAPIKey, nil
	}
	return "", fmt.Errorf("no FMP API key configured: set FMP_API_KEY (or [fmp] api_key in TOML), or enable demo_fallback for the constrained demo credential")
}

// Validate checks mandatory configuration and returns a list of issues.
func (c *Config) Validate() []string {
	var issues []string

	if c.FMP.BaseURL == "" {
		issues = append(issues, "fmp.base_url must not be empty")
	}
	if _, err := c.ResolveAPIKey(); err != nil {
		issues = append(issues, err.Error())
	}
	switch strings.ToLower(c.Server.Transport) {
	case "", "stdio", "http", "sse":
	default:
		issues = append(issues, fmt.Sprintf("server.transport %q is not one of stdio, http, sse", c.Server.Transport))
	}
	if transport := strings.ToLower(c.Server.Transport); transport == "http" || transport == "sse" {
		if c.Server.Port <= 0 {
			issues = append(issues, "server.port must be positive for http/sse transports")
		}
	}

	return issues
}
