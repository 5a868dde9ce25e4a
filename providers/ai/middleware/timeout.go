package middleware

import (
	"context"
	"time"

	"github.com/procurea/scdra/providers/ai"
)

// NewTimeoutMiddleware creates a Middleware that enforces a per-request
// deadline via context.WithTimeout. If the caller supplies a context that
// already has a shorter deadline, that shorter deadline wins as per normal
// context semantics.
func NewTimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}
