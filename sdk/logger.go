package sdk

import (
	"context"

	"go.uber.org/zap"
)

// Logger is the logging surface used by the Safe facades.
type Logger interface {
	Infof(template string, args ...any)
	Debugf(template string, args ...any)
}

type contextLoggerValueT string

const ContextLoggerValue = contextLoggerValueT("safe-logger")

// LoggerFrom returns the Logger stored in ctx, or a zap production logger when none is set.
func LoggerFrom(ctx context.Context) Logger {
	value := ctx.Value(ContextLoggerValue)
	logger, ok := value.(Logger)
	if !ok {
		logger = zap.Must(zap.NewProduction()).Sugar()
	}

	return logger
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, ContextLoggerValue, logger)
}
