// Package scripted implements an offline ai.Provider that replays a fixed
// sequence of turns. It backs deterministic tests and the offline demo mode,
// where no model endpoint is available.
package scripted

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/procurea/scdra/providers/ai"
)

// Call names a tool invocation a scripted turn should emit.
type Call struct {
	Name      string
	Arguments string
}

// Turn is one canned assistant response: either text content, tool calls, or
// both.
type Turn struct {
	Content string
	Calls   []Call
}

// Provider replays its turns in order. Once the script is exhausted,
// SendMessage fails; use NewLooping for a provider that never runs out.
type Provider struct {
	mu    sync.Mutex
	turns []Turn
	index int
	loop  bool
}

// New builds a provider that plays turns once, in order.
func New(turns ...Turn) *Provider {
	return &Provider{turns: turns}
}

// NewLooping builds a provider that replays turn forever. Useful for
// exercising iteration budgets against a model that never stops calling
// tools.
func NewLooping(turn Turn) *Provider {
	return &Provider{turns: []Turn{turn}, loop: true}
}

// SendMessage returns the next scripted turn as a ChatResponse. Tool call IDs
// are freshly minted on every turn so transcripts look like real provider
// output.
func (p *Provider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.index >= len(p.turns) {
		if !p.loop {
			return nil, fmt.Errorf("scripted: exhausted after %d turns", len(p.turns))
		}
		p.index = 0
	}
	turn := p.turns[p.index]
	p.index++

	response := &ai.ChatResponse{
		Id:           "scripted-" + shortID(),
		Model:        "scripted",
		Content:      turn.Content,
		FinishReason: "stop",
		Usage:        usageFor(request, turn),
	}
	for _, call := range turn.Calls {
		response.ToolCalls = append(response.ToolCalls, ai.ToolCall{
			ID:   "call_" + shortID(),
			Type: "function",
			Function: ai.ToolCallFunction{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		})
	}
	if len(response.ToolCalls) > 0 {
		response.FinishReason = "tool_calls"
	}
	return response, nil
}

// WithAPIKey is a no-op; scripted providers need no credentials.
func (p *Provider) WithAPIKey(string) ai.Provider { return p }

// WithBaseURL is a no-op; there is no endpoint.
func (p *Provider) WithBaseURL(string) ai.Provider { return p }

// WithHttpClient is a no-op; no HTTP requests are made.
func (p *Provider) WithHttpClient(*http.Client) ai.Provider { return p }

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// usageFor fabricates plausible token accounting proportional to the request
// and response sizes, so run statistics stay meaningful offline.
func usageFor(request ai.ChatRequest, turn Turn) *ai.Usage {
	prompt := len(request.SystemPrompt)
	for _, m := range request.Messages {
		prompt += len(m.Content)
	}
	completion := len(turn.Content)
	for _, c := range turn.Calls {
		completion += len(c.Name) + len(c.Arguments)
	}

	u := &ai.Usage{
		PromptTokens:     prompt/4 + 1,
		CompletionTokens: completion/4 + 1,
	}
	u.TotalTokens = u.PromptTokens + u.CompletionTokens
	return u
}
