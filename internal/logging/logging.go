package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/micatools/mica/internal/config"
)

// Setup opens the daily log file under directory and returns a logger that
// writes to both stdout and the file. The returned close function releases
// the file handle; call it when the command finishes.
func Setup(level, directory string) (*slog.Logger, func() error, error) {
	if directory == "" {
		directory = "~/.mica/logs/"
	}
	directory = config.ExpandHome(directory)

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	filename := fmt.Sprintf("mica-%s.log", time.Now().Format("2006-01-02"))
	logPath := filepath.Join(directory, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, file), &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	return slog.New(handler), file.Close, nil
}

// parseLevel maps a level name onto slog; unknown names fall back to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
