package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo, "JSON"))
	logger.Debug("hidden")
	logger.Info("Trip created", "trip_id", "t1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not a single JSON line: %q", buf.String())
	}
	if entry["msg"] != "Trip created" || entry["trip_id"] != "t1" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewHandler_TextWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo, ""))
	logger.Info("Trip created", "trip_id", "t1")

	out := buf.String()
	if !strings.Contains(out, "trip_id=t1") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no ANSI colors for a non-terminal writer: %q", out)
	}
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		env  string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Setenv("LOG_LEVEL", tt.env)
		if got := levelFromEnv(); got != tt.want {
			t.Errorf("levelFromEnv() with %q = %v, want %v", tt.env, got, tt.want)
		}
	}
}
