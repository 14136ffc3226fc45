package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.FMP.BaseURL != "https://financialmodelingprep.com/stable" {
		t.Errorf("Unexpected default base URL: %s", cfg.FMP.BaseURL)
	}
	if cfg.FMP.DemoFallback {
		t.Error("demo_fallback must default to off")
	}
	if cfg.Server.Transport != "stdio" {
		t.Errorf("Expected default transport stdio, got %s", cfg.Server.Transport)
	}
	if cfg.FMP.GetTimeout() != 30*time.Second {
		t.Errorf("Expected 30s default timeout, got %v", cfg.FMP.GetTimeout())
	}
}

func TestLoadFromFiles_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fmp-mcp.toml")
	content := `
[server]
name = "FMP-Test"
port = 9000
transport = "http"

[fmp]
api_key = "toml-key"
timeout = "5s"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadFromFiles(path)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Name != "FMP-Test" {
		t.Errorf("Expected name FMP-Test, got %s", cfg.Server.Name)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.FMP.APIKey != "toml-key" {
		t.Errorf("Expected api_key toml-key, got %s", cfg.FMP.APIKey)
	}
	if cfg.FMP.GetTimeout() != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", cfg.FMP.GetTimeout())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Logging.Level)
	}
	// Unset fields keep defaults
	if cfg.FMP.BaseURL != "https://financialmodelingprep.com/stable" {
		t.Errorf("Expected default base URL to survive partial TOML, got %s", cfg.FMP.BaseURL)
	}
}

func TestLoadFromFiles_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromFiles(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Missing config file should not be fatal: %v", err)
	}
	if cfg.Server.Name != "FMP-MCP" {
		t.Errorf("Expected default name, got %s", cfg.Server.Name)
	}
}

func TestLoadFromFiles_EnvOverrides(t *testing.T) {
	t.Setenv("FMP_API_KEY", "env-key")
	t.Setenv("FMP_MCP_PORT", "4444")
	t.Setenv("FMP_MCP_TRANSPORT", "http")
	t.Setenv("FMP_LOG_LEVEL", "warn")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.FMP.APIKey != "env-key" {
		t.Errorf("Expected env-key, got %s", cfg.FMP.APIKey)
	}
	if cfg.Server.Port != 4444 {
		t.Errorf("Expected port 4444, got %d", cfg.Server.Port)
	}
	if cfg.Server.Transport != "http" {
		t.Errorf("Expected transport http, got %s", cfg.Server.Transport)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Expected log level warn, got %s", cfg.Logging.Level)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()
	ApplyFlagOverrides(cfg, "sse", 1234, "0.0.0.0")

	if cfg.Server.Transport != "sse" {
		t.Errorf("Expected transport sse, got %s", cfg.Server.Transport)
	}
	if cfg.Server.Port != 1234 {
		t.Errorf("Expected port 1234, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected host 0.0.0.0, got %s", cfg.Server.Host)
	}
}

func TestResolveAPIKey_FailsFastWithoutKey(t *testing.T) {
	cfg := NewDefaultConfig()

	if _, err := cfg.ResolveAPIKey(); err == nil {
		t.Fatal("Expected error with no key and demo_fallback off")
	}
}

func TestResolveAPIKey_DemoFallback(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.FMP.DemoFallback = true

	key, err := cfg.ResolveAPIKey()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key != DemoAPIKey {
		t.Errorf("Expected demo credential, got %q", key)
	}
}

func TestResolveAPIKey_ConfiguredKeyWins(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.FMP.DemoFallback = true
	cfg.FMP.APIKey = "real-key"

	key, err := cfg.ResolveAPIKey()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key != "real-key" {
		t.Errorf("Expected configured key to win over demo fallback, got %q", key)
	}
}

func TestValidate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.FMP.APIKey = "k"

	if issues := cfg.Validate(); len(issues) != 0 {
		t.Errorf("Expected valid config, got issues: %v", issues)
	}

	cfg.Server.Transport = "carrier-pigeon"
	if issues := cfg.Validate(); len(issues) == 0 {
		t.Error("Expected issue for unknown transport")
	}

	cfg.Server.Transport = "http"
	cfg.Server.Port = 0
	if issues := cfg.Validate(); len(issues) == 0 {
		t.Error("Expected issue for http transport without a port")
	}

	cfg = NewDefaultConfig()
	if issues := cfg.Validate(); len(issues) == 0 {
		t.Error("Expected issue for missing API key")
	}
}
