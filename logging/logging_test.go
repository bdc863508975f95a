package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseLevel(tc.input); got != tc.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestInitLogger(t *testing.T) {
	InitLogger("debug")

	if DefaultLoggingService == nil {
		t.Fatal("InitLogger did not set DefaultLoggingService")
	}
	if DefaultLoggingService.Logger == nil {
		t.Fatal("InitLogger did not set the logger instance")
	}
}

func TestPackageFunctionsBeforeInit(t *testing.T) {
	saved := DefaultLoggingService
	DefaultLoggingService = nil
	defer func() { DefaultLoggingService = saved }()

	// Must not panic without an initialized global logger
	Info("info message", "key", "value")
	Warn("warn message")
	Error("error message")
	Debug("debug message")
}
