package middleware

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/pavelc4/vidgrab-bot/pkg/logger"
)

// Handler processes one update on its own goroutine.
type Handler func(ctx context.Context)

type Middleware func(Handler) Handler

type requestIDKey struct{}

const slowThreshold = 100 * time.Millisecond

// RequestID returns the id assigned by Logger, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func Recover(next Handler) Handler {
	return func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered", "request_id", RequestID(ctx), "error", r, "stack", string(debug.Stack()))
			}
		}()
		next(ctx)
	}
}

// Logger tags the update with a request id and logs how long it took.
func Logger(name string) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context) {
			id := uuid.NewString()
			ctx = context.WithValue(ctx, requestIDKey{}, id)
			start := time.Now()

			defer func() {
				duration := time.Since(start)
				if duration > slowThreshold {
					logger.Info("Handler completed (slow)", "name", name, "request_id", id, "duration", duration)
				} else {
					logger.Debug("Handler completed", "name", name, "request_id", id, "duration", duration)
				}
			}()

			next(ctx)
		}
	}
}

// Chain wraps h so that the first middleware runs outermost.
func Chain(h Handler, middlewares ...Middleware) Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
