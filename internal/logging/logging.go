package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

type Options struct {
	Level  slog.Level
	Format Format
	Writer io.Writer // defaults to stderr
	App    string
}

func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var h slog.Handler
	switch opts.Format {
	case FormatJSON:
		h = slog.NewJSONHandler(w, handlerOpts)
	default:
		h = slog.NewTextHandler(w, handlerOpts)
	}

	logger := slog.New(h)
	if app := strings.TrimSpace(opts.App); app != "" {
		logger = logger.With("app", app)
	}
	return logger
}

const (
	EnvLevel  = "BOLITA_LOG_LEVEL"  // debug|info|warn|error
	EnvFormat = "BOLITA_LOG_FORMAT" // text|json
)

// FromEnv resolves logger options. A non-empty level or format (usually a
// flag value) wins over the environment; with neither set the level is
// fallback and the format is text.
func FromEnv(level, format string, fallback slog.Level) Options {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	if format == "" {
		format = os.Getenv(EnvFormat)
	}

	lvl := fallback
	if strings.TrimSpace(level) != "" {
		lvl = ParseLevel(level)
	}
	return Options{
		Level:  lvl,
		Format: ParseFormat(format),
		App:    "bolita",
	}
}
