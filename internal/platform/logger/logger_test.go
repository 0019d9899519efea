package logger

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/parkhopper/parkhopper-api/internal/config"
)

func TestSetupLevels(t *testing.T) {
	cases := []struct {
		level   string
		debugOn bool
	}{
		{"debug", true},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"DEBUG", true}, // case-insensitive
		{"bogus", false},
	}

	for _, tc := range cases {
		logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.level})
		if err != nil {
			t.Fatalf("Setup(%q): expected no error, got %v", tc.level, err)
		}
		if logger == nil {
			t.Fatalf("Setup(%q): expected logger", tc.level)
		}

		if got := logger.Enabled(context.Background(), slog.LevelDebug); got != tc.debugOn {
			t.Errorf("Setup(%q): debug enabled = %v, want %v", tc.level, got, tc.debugOn)
		}
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel() // Enable parallel execution
	base := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx := WithLogger(context.Background(), base)
	if got := FromContext(ctx); got != base {
		t.Error("Expected logger stored in context to be returned")
	}

	if got := FromContext(context.Background()); got == nil {
		t.Error("Expected default logger for bare context")
	}
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel() // Enable parallel execution
	base := slog.New(slog.NewTextHandler(os.Stderr, nil))
	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if got := FromContextOrDefault(WithLogger(context.Background(), base), fallback); got != base {
		t.Error("Expected context logger to win over fallback")
	}

	if got := FromContextOrDefault(context.Background(), fallback); got != fallback {
		t.Error("Expected fallback logger for bare context")
	}

	if got := FromContextOrDefault(context.Background(), nil); got == nil {
		t.Error("Expected default logger when fallback is nil")
	}
}
