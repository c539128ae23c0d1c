package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := New("warn", format)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", format, err)
		}
		if logger == nil {
			t.Fatalf("expected logger instance")
		}
		_ = logger.Sync()
	}
}

func TestNewAppliesLevel(t *testing.T) {
	logger, err := New("error", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug to be disabled at error level")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", "json"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
