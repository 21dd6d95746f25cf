// Package logctx carries a request-scoped logger on the context, so log
// lines written anywhere below the HTTP middleware share one request id.
package logctx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With returns a context carrying log.
func With(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// From returns the logger carried by ctx, or fallback when none is set.
func From(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return log
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
