package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		logFunc  func(*Logger, string, map[string]interface{})
		message  string
		fields   map[string]interface{}
		expected string
	}{
		{
			name:     "debug message",
			level:    LevelDebug,
			logFunc:  (*Logger).Debug,
			message:  "loading snapshot",
			fields:   map[string]interface{}{"account_id": "acc-1"},
			expected: "DEBUG: loading snapshot | account_id=acc-1",
		},
		{
			name:     "info message",
			level:    LevelInfo,
			logFunc:  (*Logger).Info,
			message:  "wrapped summary computed",
			fields:   map[string]interface{}{"tracks": 42},
			expected: "INFO: wrapped summary computed | tracks=42",
		},
		{
			name:     "warn message",
			level:    LevelWarn,
			logFunc:  (*Logger).Warn,
			message:  "track sync failed",
			fields:   map[string]interface{}{"status": "partial"},
			expected: "WARN: track sync failed | status=partial",
		},
		{
			name:     "error message",
			level:    LevelError,
			logFunc:  (*Logger).Error,
			message:  "summary persist failed",
			fields:   map[string]interface{}{"error": "disk full"},
			expected: "ERROR: summary persist failed | error=disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(tt.level)
			logger.logger = log.New(&buf, "", 0)

			tt.logFunc(logger, tt.message, tt.fields)

			output := buf.String()
			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got %q", tt.expected, output)
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelWarn)
	logger.logger = log.New(&buf, "", 0)

	// Debug and Info should be filtered out
	logger.Debug("cache probe", nil)
	logger.Info("snapshot loaded", nil)

	output := buf.String()
	if output != "" {
		t.Errorf("Expected no output for filtered levels, got %q", output)
	}

	// Warn and Error should pass through
	logger.Warn("sync degraded", nil)
	logger.Error("upstream fetch failed", nil)

	output = buf.String()
	if !strings.Contains(output, "WARN") || !strings.Contains(output, "ERROR") {
		t.Errorf("Expected WARN and ERROR in output, got %q", output)
	}
}

func TestLogger_NoFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo)
	logger.logger = log.New(&buf, "", 0)

	logger.Info("engine ready", nil)

	output := buf.String()
	if !strings.Contains(output, "INFO: engine ready") {
		t.Errorf("Expected message without fields, got %q", output)
	}
	if strings.Contains(output, "|") {
		t.Errorf("Expected no field separator when no fields provided, got %q", output)
	}
}

func TestLogger_MultipleFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo)
	logger.logger = log.New(&buf, "", 0)

	fields := map[string]interface{}{
		"account_id": "acc-1",
		"handle":     "demo-listener",
		"events":     34,
	}

	logger.Info("account synced", fields)

	output := buf.String()
	if !strings.Contains(output, "account_id=acc-1") {
		t.Error("Expected account_id field in output")
	}
	if !strings.Contains(output, "handle=demo-listener") {
		t.Error("Expected handle field in output")
	}
	if !strings.Contains(output, "events=34") {
		t.Error("Expected events field in output")
	}
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo)
	logger.logger = log.New(&buf, "", 0)

	SetGlobalLogger(logger)

	Info("refresh tick", map[string]interface{}{"accounts": 2})

	output := buf.String()
	if !strings.Contains(output, "INFO: refresh tick") {
		t.Errorf("Expected global logger to work, got %q", output)
	}
}
