// Package logging builds the structured logger shared by the CLI and the
// example HTTP server. Log files rotate through lumberjack so long-running
// deployments do not grow unbounded.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Option configures logger construction.
type Option func(*config)

type config struct {
	level      slog.Level
	filePath   string
	maxSizeMB  int
	maxBackups int
	console    bool
}

// WithLevel sets the minimum level. Defaults to info.
func WithLevel(level slog.Level) Option {
	return func(cfg *config) {
		cfg.level = level
	}
}

// WithLevelName parses a level name like "debug" or "warn"; unknown names
// keep the default.
func WithLevelName(name string) Option {
	return func(cfg *config) {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "debug":
			cfg.level = slog.LevelDebug
		case "info":
			cfg.level = slog.LevelInfo
		case "warn", "warning":
			cfg.level = slog.LevelWarn
		case "error":
			cfg.level = slog.LevelError
		}
	}
}

// WithFile writes rotating JSON logs to path.
func WithFile(path string) Option {
	return func(cfg *config) {
		cfg.filePath = strings.TrimSpace(path)
	}
}

// WithRotation bounds the rotating file size and backup count.
func WithRotation(maxSizeMB, maxBackups int) Option {
	return func(cfg *config) {
		if maxSizeMB > 0 {
			cfg.maxSizeMB = maxSizeMB
		}
		if maxBackups >= 0 {
			cfg.maxBackups = maxBackups
		}
	}
}

// WithConsole mirrors log output to stderr, useful during development.
func WithConsole(enabled bool) Option {
	return func(cfg *config) {
		cfg.console = enabled
	}
}

// New builds a slog.Logger. Without WithFile it logs to stderr only.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:      slog.LevelInfo,
		maxSizeMB:  20,
		maxBackups: 5,
		console:    true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var writers []io.Writer
	if cfg.filePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.filePath,
			MaxSize:    cfg.maxSizeMB,
			MaxBackups: cfg.maxBackups,
			Compress:   true,
		})
	}
	if cfg.console || len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	handler := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: cfg.level,
	})
	return slog.New(handler)
}
