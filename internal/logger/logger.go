package logger

import (
	"log/slog"
	"os"
)

// New initializes the default logger for the application:
// text format and DEBUG level in development, JSON and INFO in production.
func New(environment string) *slog.Logger {
	var handler slog.Handler
	handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
