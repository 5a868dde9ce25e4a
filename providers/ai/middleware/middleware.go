// Package middleware provides composable wrappers around an ai.Provider's
// SendMessage: per-request timeouts, retries with exponential backoff, and
// structured request/response logging. Middlewares execute outermost-first:
// the first entry passed to Wrap runs first on the way in and last on the way
// out.
package middleware

import (
	"context"
	"net/http"

	"github.com/procurea/scdra/providers/ai"
)

// SendFunc is the function signature wrapped by middleware.
type SendFunc func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)

// Middleware wraps a SendFunc with additional behaviour.
type Middleware func(next SendFunc) SendFunc

// Wrap layers the given middlewares around provider and returns a Provider
// whose SendMessage runs the full chain. Configuration calls (WithAPIKey and
// friends) pass through to the underlying provider.
func Wrap(provider ai.Provider, middlewares ...Middleware) ai.Provider {
	send := provider.SendMessage
	for i := len(middlewares) - 1; i >= 0; i-- {
		send = middlewares[i](send)
	}
	return &wrapped{inner: provider, send: send}
}

type wrapped struct {
	inner ai.Provider
	send  SendFunc
}

func (w *wrapped) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	return w.send(ctx, request)
}

func (w *wrapped) WithAPIKey(apiKey string) ai.Provider {
	w.inner.WithAPIKey(apiKey)
	return w
}

func (w *wrapped) WithBaseURL(baseURL string) ai.Provider {
	w.inner.WithBaseURL(baseURL)
	return w
}

func (w *wrapped) WithHttpClient(httpClient *http.Client) ai.Provider {
	w.inner.WithHttpClient(httpClient)
	return w
}
