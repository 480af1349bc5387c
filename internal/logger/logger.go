package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Logging levels
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Environments, each one has its own log format
const (
	EnvDevelopment = "dev"  // colored console output
	EnvProduction  = "prod" // JSON lines
	EnvTest        = "test" // plain text
)

// Logger interface defines the logging contract
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	With(args ...any) Logger
	WithGroup(name string) Logger
}

// New creates logger suitable for the environment
func New(env string, level string) (Logger, error) {
	switch strings.ToLower(env) {
	case EnvDevelopment:
		return NewDevLogger(level)
	case EnvProduction:
		return NewJSONLogger(level)
	case EnvTest:
		return NewTextLogger(level)
	default:
		return nil, fmt.Errorf("unknown environment %q", env)
	}
}

// NewTextLogger creates a new text logger with the specified level
func NewTextLogger(level string) (Logger, error) {
	opts, err := handlerOptions(level)
	if err != nil {
		return nil, err
	}

	return &slogLogger{logger: slog.New(slog.NewTextHandler(os.Stderr, opts))}, nil
}

// NewJSONLogger creates a new JSON logger with the specified level
func NewJSONLogger(level string) (Logger, error) {
	opts, err := handlerOptions(level)
	if err != nil {
		return nil, err
	}

	return &slogLogger{logger: slog.New(slog.NewJSONHandler(os.Stderr, opts))}, nil
}

// NewDevLogger creates a colored console logger with the specified level
func NewDevLogger(level string) (Logger, error) {
	return newTintLogger(os.Stderr, level, false)
}

func newTintLogger(w io.Writer, level string, noColor bool) (Logger, error) {
	l, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:       l,
		AddSource:   true,
		TimeFormat:  time.TimeOnly,
		NoColor:     noColor,
		ReplaceAttr: replace,
	})

	return &slogLogger{logger: slog.New(handler)}, nil
}

// NewNoOpLogger creates a logger that discards all log messages
func NewNoOpLogger() Logger {
	return &slogLogger{logger: slog.New(slog.DiscardHandler)}
}

func handlerOptions(level string) (*slog.HandlerOptions, error) {
	l, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	return &slog.HandlerOptions{
		Level:       l,
		AddSource:   true,
		ReplaceAttr: replace,
	}, nil
}
