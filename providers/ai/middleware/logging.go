package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/procurea/scdra/internal/httpx"
	"github.com/procurea/scdra/providers/ai"
)

// LogLevel controls how much detail the logging middleware emits per request.
type LogLevel int

const (
	// LogLevelMinimal logs only the model name, total duration, and token
	// counts. Use this for lightweight audit trails.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard logs everything in Minimal plus the message count and
	// finish reason. Recommended default.
	LogLevelStandard

	// LogLevelVerbose logs everything in Standard plus the first message
	// content and the full response content, each truncated to 500
	// characters.
	//
	// WARNING: DO NOT use LogLevelVerbose in production. It logs raw prompt
	// and response text, which may contain sensitive data.
	LogLevelVerbose
)

// truncateLen is the maximum content length included in verbose log output.
const truncateLen = 500

// NewLoggingMiddleware creates a Middleware that emits structured slog
// entries before and after every provider call. The logger must not be nil;
// use slog.Default() if you have not configured one.
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			logger.InfoContext(ctx, "llm send",
				buildRequestAttrs(request, level)...,
			)

			start := time.Now()
			response, err := next(ctx, request)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "llm send failed",
					slog.String("model", request.Model),
					slog.Duration("duration", elapsed),
					slog.String("error", err.Error()),
				)
				return nil, err
			}

			logger.InfoContext(ctx, "llm send completed",
				buildResponseAttrs(response, elapsed, level)...,
			)

			return response, nil
		}
	}
}

func buildRequestAttrs(request ai.ChatRequest, level LogLevel) []any {
	attrs := []any{
		slog.String("model", request.Model),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs, slog.Int("message_count", len(request.Messages)))
	}

	if level >= LogLevelVerbose && len(request.Messages) > 0 {
		first := request.Messages[0]
		attrs = append(attrs,
			slog.String("first_message_role", string(first.Role)),
			slog.String("first_message_content", httpx.Truncate(first.Content, truncateLen)),
		)
	}

	return attrs
}

func buildResponseAttrs(response *ai.ChatResponse, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.String("model", response.Model),
		slog.Duration("duration", elapsed),
	}

	if response.Usage != nil {
		attrs = append(attrs,
			slog.Int("prompt_tokens", response.Usage.PromptTokens),
			slog.Int("completion_tokens", response.Usage.CompletionTokens),
			slog.Int("total_tokens", response.Usage.TotalTokens),
		)
	}

	if level >= LogLevelStandard && response.FinishReason != "" {
		attrs = append(attrs, slog.String("finish_reason", response.FinishReason))
	}

	if level >= LogLevelVerbose && response.Content != "" {
		attrs = append(attrs,
			slog.String("response_content", httpx.Truncate(response.Content, truncateLen)),
		)
	}

	return attrs
}
