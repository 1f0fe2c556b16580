// Package log configures the process-wide slog default.
package log

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// NewHandler builds a slog handler for the given format and level. The tint
// format is meant for local development terminals; json for anything that
// ships logs elsewhere.
func NewHandler(format, level string) slog.Handler {
	lvl := parseLevel(level)
	switch format {
	case "json":
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	case "tint":
		return tint.NewHandler(os.Stdout, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		})
	default:
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
}

// Setup installs the handler as the slog default for the process.
func Setup(format, level string) {
	slog.SetDefault(slog.New(NewHandler(format, level)))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
