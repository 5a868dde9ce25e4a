package groq

import (
	"fmt"

	"github.com/procurea/scdra/providers/ai"
)

// convertRequest maps the generic request onto the Groq wire format. The
// system prompt, when present, becomes the leading system message.
func convertRequest(request ai.ChatRequest, defaultModel string) chatCompletionRequest {
	model := request.Model
	if model == "" {
		model = defaultModel
	}

	messages := make([]chatMessage, 0, len(request.Messages)+1)
	if request.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: string(ai.RoleSystem), Content: request.SystemPrompt})
	}
	for _, m := range request.Messages {
		messages = append(messages, chatMessage{
			Role:       string(m.Role),
			Content:    m.Content,
			ToolCalls:  convertToolCallsOut(m.ToolCalls),
			ToolCallID: m.ToolCallID,
			Name:       m.Name,
		})
	}

	tools := make([]toolSpec, 0, len(request.Tools))
	for _, t := range request.Tools {
		tools = append(tools, toolSpec{
			Type: "function",
			Function: toolFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	out := chatCompletionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: request.MaxTokens,
	}
	if len(tools) > 0 {
		out.Tools = tools
	}
	// Temperature zero is meaningful (deterministic sampling), so it is sent
	// explicitly rather than relying on omitempty.
	temperature := request.Temperature
	out.Temperature = &temperature
	return out
}

func convertToolCallsOut(calls []ai.ToolCall) []wireToolCall {
	if len(calls) == 0 {
		return nil
	}
	out := make([]wireToolCall, 0, len(calls))
	for _, c := range calls {
		callType := c.Type
		if callType == "" {
			callType = "function"
		}
		out = append(out, wireToolCall{
			ID:   c.ID,
			Type: callType,
			Function: wireCallFunction{
				Name:      c.Function.Name,
				Arguments: c.Function.Arguments,
			},
		})
	}
	return out
}

// convertResponse maps the wire response back onto the generic shape. Only the
// first choice is used; the agent never requests more than one.
func convertResponse(response *chatCompletionResponse) (*ai.ChatResponse, error) {
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("groq: response contains no choices")
	}
	first := response.Choices[0]

	toolCalls := make([]ai.ToolCall, 0, len(first.Message.ToolCalls))
	for _, c := range first.Message.ToolCalls {
		toolCalls = append(toolCalls, ai.ToolCall{
			ID:   c.ID,
			Type: c.Type,
			Function: ai.ToolCallFunction{
				Name:      c.Function.Name,
				Arguments: c.Function.Arguments,
			},
		})
	}

	out := &ai.ChatResponse{
		Id:           response.ID,
		Model:        response.Model,
		Content:      first.Message.Content,
		FinishReason: first.FinishReason,
	}
	if len(toolCalls) > 0 {
		out.ToolCalls = toolCalls
	}
	if response.Usage != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     response.Usage.PromptTokens,
			CompletionTokens: response.Usage.CompletionTokens,
			TotalTokens:      response.Usage.TotalTokens,
		}
	}
	return out, nil
}
