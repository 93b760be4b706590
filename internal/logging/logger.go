// Package logging sets up the local debug log. Operator-facing output goes to
// the console; the debug log is a JSON trace kept in the state directory.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// maxLogSize is the size past which the debug log is dropped on teardown.
const maxLogSize = 1_000_000

// Setup routes the default slog logger to a JSON file at path. When the file
// cannot be opened logging is discarded. The returned function closes the log.
func Setup(path string) func() {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}
	}

	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)
	slog.Debug("start", slog.Time("at", time.Now()), slog.Int("pid", os.Getpid()))

	return func() {
		slog.Debug("stop", slog.Time("at", time.Now()))
		teardown(f)
	}
}

func teardown(f *os.File) {
	info, err := f.Stat()
	_ = f.Close()
	if err == nil && info.Size() > maxLogSize {
		_ = os.Remove(f.Name())
	}
}
