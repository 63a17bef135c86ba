package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Text output to stdout keeps local runs
// readable; structured keys are used everywhere so a JSON handler can be
// swapped in for production collection.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
