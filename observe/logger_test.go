package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// TestLogger_IncludesComponentField verifies the component field is present in output.
func TestLogger_IncludesComponentField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	scoped := logger.WithComponent("httpcache")
	scoped.Info(context.Background(), "test message")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v\nOutput: %s", err, buf.String())
	}

	if v, ok := logEntry["component"].(string); !ok || v != "httpcache" {
		t.Errorf("expected component='httpcache', got %v", logEntry["component"])
	}
	if v, ok := logEntry["msg"].(string); !ok || v != "test message" {
		t.Errorf("expected msg='test message', got %v", logEntry["msg"])
	}
}

// TestLogger_IncludesFields verifies caller-supplied fields appear in output.
func TestLogger_IncludesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "lookup served",
		Field{Key: "cache_id", Value: "GET /api/users"},
		Field{Key: "duration_ms", Value: 1.5},
	)

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if v, ok := logEntry["cache_id"].(string); !ok || v != "GET /api/users" {
		t.Errorf("expected cache_id='GET /api/users', got %v", logEntry["cache_id"])
	}
	if v, ok := logEntry["duration_ms"].(float64); !ok || v != 1.5 {
		t.Errorf("expected duration_ms=1.5, got %v", logEntry["duration_ms"])
	}
}

// TestLogger_LevelFiltering verifies entries below the configured level are dropped.
func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)

	logger.Debug(context.Background(), "dropped")
	logger.Info(context.Background(), "dropped too")

	if buf.Len() != 0 {
		t.Errorf("expected no output below warn level, got: %s", buf.String())
	}

	logger.Warn(context.Background(), "kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected warn entry in output, got: %s", buf.String())
	}
}

// TestLogger_RedactsCredentialFields verifies credential-shaped fields are redacted.
func TestLogger_RedactsCredentialFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "request seen",
		Field{Key: "authorization", Value: "Bearer super-secret"},
		Field{Key: "path", Value: "/api"},
	)

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if v, ok := logEntry["authorization"].(string); !ok || v != "[REDACTED]" {
		t.Errorf("expected authorization to be redacted, got %v", logEntry["authorization"])
	}
	if v, ok := logEntry["path"].(string); !ok || v != "/api" {
		t.Errorf("expected path to pass through, got %v", logEntry["path"])
	}
	if strings.Contains(buf.String(), "super-secret") {
		t.Error("credential value leaked into log output")
	}
}

// TestLogger_ErrorLevel verifies error entries carry the right level.
func TestLogger_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Error(context.Background(), "store unavailable",
		Field{Key: "error", Value: "connection refused"},
	)

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if v, ok := logEntry["level"].(string); !ok || v != "error" {
		t.Errorf("expected level='error', got %v", logEntry["level"])
	}
	if v, ok := logEntry["error"].(string); !ok || v != "connection refused" {
		t.Errorf("expected error field, got %v", logEntry["error"])
	}
}

// TestParseLogLevel verifies level parsing, including the default.
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
