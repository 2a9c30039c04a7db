package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithFormat_Text(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithFormat("info", "text", &buf)
	log.Info("pipeline started", "rows", 12)

	out := buf.String()
	if !strings.Contains(out, "pipeline started") || !strings.Contains(out, "rows=12") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestNewWithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithFormat("info", "json", &buf)
	log.Info("pipeline started", "rows", 12)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "pipeline started" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["rows"] != 12.0 {
		t.Errorf("rows = %v", entry["rows"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithFormat("warn", "text", &buf)
	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level messages should be dropped: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithFormat("info", "text", &buf).With("component", "pipeline")
	log.Info("done")

	if !strings.Contains(buf.String(), "component=pipeline") {
		t.Errorf("child logger attributes missing: %q", buf.String())
	}
}
