package logger

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config represents logger configuration
type Config struct {
	Level       string // debug, info, warn, error, fatal
	Environment string // development, production, test
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Environment == "development" || cfg.Environment == "dev" {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	} else {
		// JSON output for production for better parsing
		log.Logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}
}

// contextKey is the key used to store logger in context
type contextKey string

const ContextKey contextKey = "logger"

// FromContext returns the logger from context or the global logger
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctxLogger := ctx.Value(ContextKey); ctxLogger != nil {
		if logger, ok := ctxLogger.(*zerolog.Logger); ok {
			return logger
		}
	}
	return &log.Logger
}

// WithContext returns a context with the logger attached
func WithContext(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ContextKey, logger)
}
