// Package observability provides structured logging and telemetry setup.
package observability

import (
	"log/slog"
	"os"
	"strings"

	tlog "go.temporal.io/sdk/log"
)

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger configures the global slog logger with JSON output at the given level.
func InitLogger(level string) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level)}))
	slog.SetDefault(logger)
	return logger
}

// InitStderrLogger is InitLogger for binaries whose stdout carries a protocol (MCP stdio).
func InitStderrLogger(level string) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: ParseLevel(level)}))
	slog.SetDefault(logger)
	return logger
}

// NewTemporalLogger routes Temporal SDK logs through slog.
func NewTemporalLogger(logger *slog.Logger) tlog.Logger {
	return tlog.NewStructuredLogger(logger.With("component", "temporal"))
}

// ForInput returns a logger annotated with the identity of one pipeline input.
func ForInput(logger *slog.Logger, inputID, dataType string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	l := logger.With("input_id", inputID)
	if dataType != "" {
		l = l.With("data_type", dataType)
	}
	return l
}
