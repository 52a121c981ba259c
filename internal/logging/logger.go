// Package logging defines the structured-logging contract shared by the
// server components. The concrete implementation wraps slog, but nothing
// outside this package depends on that.
package logging

import "context"

// Logger is a leveled, context-aware logger. Variadic args are key-value
// pairs:
//
//	log.Info(ctx, "secret rotated", "secret_id", id)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given key-value pairs on
	// every record.
	With(args ...any) Logger
}
