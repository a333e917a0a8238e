package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewHandlerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, slog.LevelWarn)

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be filtered at warn level")
	}

	logger := slog.New(h)
	logger.Info("hidden")
	logger.Warn("shown", "game_id", "g-1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("unexpected info output: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "g-1") {
		t.Errorf("missing warn output: %q", out)
	}
}
