// Package logging sets up the process-wide logger. The service writes
// timestamp/level/source/message lines to a logbook file and mirrors them
// to stdout.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Setup opens the log file for appending and returns a text logger writing
// to both the file and stdout. The returned closer releases the file handle
// and should be deferred by the caller.
func Setup(logFile string) (*slog.Logger, func() error, error) {
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", logFile, err)
	}

	handler := slog.NewTextHandler(io.MultiWriter(f, os.Stdout), &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	})

	return slog.New(handler), f.Close, nil
}
