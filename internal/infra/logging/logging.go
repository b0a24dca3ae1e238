package logging

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// SetupJSON sets slog's default logger to use JSON output at the given level.
func SetupJSON(level slog.Level) {
	logger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	)
	slog.SetDefault(logger)
}

// SetupText sets slog's default logger to colorized text output, for local
// development.
func SetupText(level slog.Level) {
	logger := slog.New(
		tint.NewHandler(os.Stdout, &tint.Options{Level: level}),
	)
	slog.SetDefault(logger)
}

// Setup picks the handler by format name ("text" or anything else for JSON).
func Setup(format string, level slog.Level) {
	if format == "text" {
		SetupText(level)
		return
	}

	SetupJSON(level)
}
