package config

import "github.com/damianboh/fmp-mcp-server/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      "FMP-MCP",
			Host:      "localhost",
			Port:      8000,
			Transport: "stdio",
		},
		FMP: FMPConfig{
			BaseURL:      "https://financialmodelingprep.com/stable",
			Timeout:      "30s",
			DemoFallback: false,
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/fmp-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}
