package logging

import (
	"log/slog"
	"os"
)

// Init configures the process-wide logger with a JSON handler writing to
// stderr, so log records never mix with command output on stdout. An
// unparseable level falls back to warn. The returned logger is also
// installed as slog's default.
func Init(level string, verbose bool) (logger *slog.Logger) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(level))
	if err != nil {
		lvl = slog.LevelWarn
	}
	if verbose {
		lvl = slog.LevelDebug
	}

	logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
	return logger
}
