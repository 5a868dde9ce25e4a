package ai

import (
	"encoding/json"

	"github.com/procurea/scdra/internal/jsonschema"
)

/*
	##### PROVIDER INPUT #####
*/

// ChatRequest represents a request to send a conversation to a model.
type ChatRequest struct {
	Model        string            `json:"model,omitempty"`         // Model name or identifier
	Messages     []Message         `json:"messages"`                // All messages in the conversation except the system prompt
	SystemPrompt string            `json:"system_prompt,omitempty"` // Optional system prompt, prepended by the provider
	Tools        []ToolDescription `json:"tools,omitempty"`         // Tool definitions advertised to the model
	Temperature  float32           `json:"temperature,omitempty"`   // Sampling temperature [0..2]
	MaxTokens    int               `json:"max_tokens,omitempty"`    // Optional cap on response tokens
}

// ToolDescription advertises a callable tool to the model.
type ToolDescription struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// Message represents a single message in a conversation.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content,omitempty"`

	// Tool calling fields
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // For role=assistant requesting tools
	ToolCallID string     `json:"tool_call_id,omitempty"` // For role=tool, links to the call being answered
	Name       string     `json:"name,omitempty"`         // For role=tool, name of the tool that produced this result
}

// HasToolCalls reports whether the message carries at least one tool call.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

/*
	##### PROVIDER OUTPUT #####
*/

// Usage carries the token accounting returned by the provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// ChatResponse represents the completed response from a chat request.
type ChatResponse struct {
	Id           string     `json:"id"`
	Model        string     `json:"model"`
	Content      string     `json:"content"`
	ToolCalls    []ToolCall `json:"tool_calls,omitempty"`
	FinishReason string     `json:"finish_reason,omitempty"`
	Usage        *Usage     `json:"usage,omitempty"`
}

// ToolCall represents a function/tool call request emitted by the model.
type ToolCall struct {
	ID       string           `json:"id,omitempty"` // Unique within the message that produced it
	Type     string           `json:"type"`         // "function"
	Function ToolCallFunction `json:"function"`
}

type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string
}

// ToolResult is the standardized payload written back into the conversation
// for every tool invocation, successful or not. Keeping the shape uniform
// lets the model recognise failures and self-correct on its next turn.
type ToolResult struct {
	Success bool   `json:"success"`           // Whether the tool executed successfully
	Error   string `json:"error,omitempty"`   // Machine-readable error code if success=false
	Message string `json:"message,omitempty"` // Human-readable message or error description
	Data    any    `json:"data,omitempty"`    // Actual result data if success=true
}

// NewToolResultSuccess creates a successful tool result wrapping data.
func NewToolResultSuccess(data any) ToolResult {
	return ToolResult{
		Success: true,
		Data:    data,
	}
}

// NewToolResultError creates a failed tool result. errorType should be a
// machine-readable code (e.g. "tool_not_found", "invalid_arguments");
// message describes what went wrong in plain language.
func NewToolResultError(errorType, message string) ToolResult {
	return ToolResult{
		Success: false,
		Error:   errorType,
		Message: message,
	}
}

// ToJSON converts the ToolResult to a JSON string.
func (tr ToolResult) ToJSON() (string, error) {
	bytes, err := json.Marshal(tr)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

/*
	##### ENUMS #####
*/

// MessageRole represents the role of a message; compatible with string.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Model response
	RoleTool      MessageRole = "tool"      // Tool/function output
)
