package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request logger, or a no-op logger outside a request.
func FromContext(ctx context.Context) *zap.Logger {
	return FromContextOr(ctx, zap.NewNop())
}

// FromContextOr returns the request logger, falling back to def.
func FromContextOr(ctx context.Context, def *zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return def
}

// With returns a context whose logger carries fields in addition to the ones
// already on the context logger (or def when there is none).
func With(ctx context.Context, def *zap.Logger, fields ...zap.Field) context.Context {
	return ContextWithLogger(ctx, FromContextOr(ctx, def).With(fields...))
}
