package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurea/scdra/providers/ai"
)

type recordingProvider struct {
	lastCtx context.Context
	delay   time.Duration
}

func (p *recordingProvider) SendMessage(ctx context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
	p.lastCtx = ctx
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.delay):
		}
	}
	return &ai.ChatResponse{Content: "ok", FinishReason: "stop"}, nil
}

func (p *recordingProvider) WithAPIKey(string) ai.Provider           { return p }
func (p *recordingProvider) WithBaseURL(string) ai.Provider          { return p }
func (p *recordingProvider) WithHttpClient(*http.Client) ai.Provider { return p }

func TestWrapOrdersMiddlewaresOutermostFirst(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next SendFunc) SendFunc {
			return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
				order = append(order, name)
				return next(ctx, request)
			}
		}
	}

	provider := Wrap(&recordingProvider{}, tag("outer"), tag("inner"))

	_, err := provider.SendMessage(context.Background(), ai.ChatRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestTimeoutMiddlewareSetsDeadline(t *testing.T) {
	inner := &recordingProvider{}
	provider := Wrap(inner, NewTimeoutMiddleware(time.Minute))

	_, err := provider.SendMessage(context.Background(), ai.ChatRequest{})
	require.NoError(t, err)

	deadline, ok := inner.lastCtx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestTimeoutMiddlewareExpires(t *testing.T) {
	inner := &recordingProvider{delay: time.Second}
	provider := Wrap(inner, NewTimeoutMiddleware(5*time.Millisecond))

	_, err := provider.SendMessage(context.Background(), ai.ChatRequest{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	provider := Wrap(&recordingProvider{}, NewLoggingMiddleware(logger, LogLevelVerbose))

	response, err := provider.SendMessage(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: "report"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", response.Content)
}
