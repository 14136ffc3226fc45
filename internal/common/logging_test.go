package common

import (
	"bytes"
	"os"
	"testing"
	"time"
)

func TestNewLogger_ReturnsNonNil(t *testing.T) {
	logger := NewLogger("info")
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}
}

func TestNewLogger_FluentAPI(t *testing.T) {
	// Must not panic
	logger := NewLogger("error")
	logger.Info().Str("key", "value").Msg("test message")
	logger.Warn().Int("count", 42).Msg("warning")
	logger.Error().Err(nil).Msg("error message")
	logger.Debug().Float64("rate", 3.14).Bool("ok", true).Msg("debug")
}

func TestNewLoggerWithOutput_WritesToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("info", &buf)
	logger.Info().Str("key", "value").Msg("hello")

	if buf.String() == "" {
		t.Error("Expected output to provided writer, got empty string")
	}
}

func TestNewSilentLogger_DiscardsOutput(t *testing.T) {
	logger := NewSilentLogger()
	if logger == nil {
		t.Fatal("NewSilentLogger returned nil")
	}
	// Must not panic
	logger.Info().Str("key", "value").Msg("should be discarded")
	logger.Error().Err(nil).Msg("should be discarded")
}

func TestNewSilentLogger_DoesNotWriteToGlobalWriters(t *testing.T) {
	// Register a global writer first, then verify the silent logger
	// does not leak through it.
	var buf bytes.Buffer
	_ = NewLoggerWithOutput("info", &buf)
	buf.Reset()

	silent := NewSilentLogger()
	silent.Info().Str("key", "value").Msg("this should NOT appear")
	silent.Error().Msg("this should NOT appear either")

	if buf.Len() > 0 {
		t.Errorf("Silent logger wrote %d bytes to global writer: %s", buf.Len(), buf.String())
	}
}

func TestNewLogger_DoesNotWriteToStdout(t *testing.T) {
	// On the stdio transport stdout carries the MCP JSON-RPC stream, so
	// the console writer must route to stderr only.
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	logger := NewLogger("info")
	logger.Info().Str("tool", "test").Msg("this must not go to stdout")
	logger.Error().Msg("neither should this")

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	r.Close()

	if buf.Len() > 0 {
		t.Errorf("Logger wrote %d bytes to stdout (would corrupt MCP stdio): %s", buf.Len(), buf.String())
	}
}

func TestWithCorrelationId_ReturnsNewLogger(t *testing.T) {
	logger := NewLogger("info")
	correlated := logger.WithCorrelationId("test-req-123")

	if correlated == nil {
		t.Fatal("WithCorrelationId returned nil")
	}
	if correlated == logger {
		t.Error("WithCorrelationId should return a new Logger instance, not the same one")
	}
}

func TestWithCorrelationId_FluentAPI(t *testing.T) {
	logger := NewLogger("error")
	correlated := logger.WithCorrelationId("test-req-456")
	// Must not panic
	correlated.Info().Str("tool", "company_profile").Msg("handler start")
	correlated.Info().Dur("elapsed", 0).Msg("handler complete")
}

func TestGetMemoryLogsWithLimit_ReturnsEntries(t *testing.T) {
	logger := NewLogger("info")

	logger.Info().Str("tool", "test1").Msg("first message")
	logger.Warn().Msg("warning message")

	// The memory writer flushes asynchronously
	time.Sleep(200 * time.Millisecond)

	logs, err := logger.GetMemoryLogsWithLimit(10)
	if err != nil {
		t.Fatalf("GetMemoryLogsWithLimit failed: %v", err)
	}
	if len(logs) == 0 {
		t.Error("Expected memory writer to contain log entries, got 0")
	}
}
