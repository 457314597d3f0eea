package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON handler on stdout as the process-wide slog default.
// main swaps in the fan-out handler once the database connection exists.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
