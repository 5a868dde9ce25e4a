package agent

import (
	"context"

	"github.com/procurea/scdra/core/conversation"
	"github.com/procurea/scdra/providers/ai"
	"github.com/procurea/scdra/providers/tool"
)

// Step performs one model invocation: it packages the conversation and the
// tool catalog into a request, sends it, and appends the assistant's reply to
// the conversation.
type Step struct {
	provider     ai.Provider
	catalog      *tool.Catalog
	model        string
	systemPrompt string
	temperature  float32
	maxTokens    int
}

// StepOption configures a Step.
type StepOption func(*Step)

// WithModel sets the model identifier sent with each request.
func WithModel(model string) StepOption {
	return func(s *Step) { s.model = model }
}

// WithSystemPrompt overrides the default system prompt.
func WithSystemPrompt(prompt string) StepOption {
	return func(s *Step) { s.systemPrompt = prompt }
}

// WithTemperature sets the sampling temperature. The default of zero keeps
// runs as deterministic as the provider allows.
func WithTemperature(temperature float32) StepOption {
	return func(s *Step) { s.temperature = temperature }
}

// WithMaxTokens caps the response length.
func WithMaxTokens(maxTokens int) StepOption {
	return func(s *Step) { s.maxTokens = maxTokens }
}

// NewStep builds a Step over the given provider and catalog.
func NewStep(provider ai.Provider, catalog *tool.Catalog, options ...StepOption) *Step {
	s := &Step{
		provider:     provider,
		catalog:      catalog,
		systemPrompt: SystemPrompt,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Invoke sends the conversation to the model and appends the assistant reply.
// A provider failure is wrapped in *ExternalServiceError and nothing is
// appended, so the conversation stays consistent.
func (s *Step) Invoke(ctx context.Context, conv *conversation.Conversation) (*ai.ChatResponse, error) {
	request := ai.ChatRequest{
		Model:        s.model,
		Messages:     conv.All(),
		SystemPrompt: s.systemPrompt,
		Tools:        s.catalog.Descriptions(),
		Temperature:  s.temperature,
		MaxTokens:    s.maxTokens,
	}

	response, err := s.provider.SendMessage(ctx, request)
	if err != nil {
		return nil, &ExternalServiceError{Err: err}
	}

	conv.Append(&ai.Message{
		Role:      ai.RoleAssistant,
		Content:   response.Content,
		ToolCalls: response.ToolCalls,
	})

	return response, nil
}
