// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the process-wide slog logger. Records go to a
// size-rotated JSON file so that console output stays free for the user.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const fileName = "lecture2mp3.log"

// Config selects where and how verbosely to log.
type Config struct {
	// Dir holds the log file. Empty disables file logging.
	Dir   string
	Debug bool
}

// Setup installs the default slog logger and returns a cleanup func that
// closes the log file and restores a discarding logger.
func Setup(cfg Config) (func() error, error) {
	if cfg.Dir == "" {
		slog.SetDefault(discard())
		return func() error { return nil }, nil
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		slog.SetDefault(discard())
		return nil, err
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, fileName),
		MaxSize:    1, // MB
		MaxBackups: 3,
		Compress:   true,
	}

	slog.SetDefault(slog.New(newHandler(w, cfg.Debug)))
	slog.Info("logger.initialized", "path", w.Filename, "debug", cfg.Debug)

	return func() error {
		slog.SetDefault(discard())
		return w.Close()
	}, nil
}

// Path returns the log file location for dir.
func Path(dir string) string {
	return filepath.Join(dir, fileName)
}

func newHandler(w io.Writer, debug bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	})
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
