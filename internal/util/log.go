package util

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const ctxKeyLogger contextKey = "logger"

// LogFromContext returns the request-scoped logger if one was attached,
// the global logger otherwise.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKeyLogger).(*zerolog.Logger); ok {
		return l
	}
	return &log.Logger
}

// WithLogger attaches a logger to ctx.
func WithLogger(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, l)
}

// LogLevelFromString parses lvl, falling back to debug for unknown
// values.
func LogLevelFromString(lvl string) zerolog.Level {
	level, err := zerolog.ParseLevel(lvl)
	if err != nil {
		log.Error().Err(err).Str("level", lvl).Msg("Failed to parse log level, defaulting to debug")
		return zerolog.DebugLevel
	}
	return level
}
