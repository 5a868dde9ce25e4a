package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/procurea/scdra/core/conversation"
	"github.com/procurea/scdra/core/parse"
	"github.com/procurea/scdra/providers/ai"
	"github.com/procurea/scdra/providers/tool"
)

// Executor runs the tool calls of the newest assistant message, in order, and
// appends exactly one tool result message per call. Tool-level problems
// (unknown name, invalid arguments, denied approval, execution failure) are
// reported back into the conversation as structured payloads; they never
// fault the run.
type Executor struct {
	catalog *tool.Catalog
	gate    ApprovalGate
	logger  *slog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithApprovalGate replaces the default phrase-based approval gate.
func WithApprovalGate(gate ApprovalGate) ExecutorOption {
	return func(e *Executor) { e.gate = gate }
}

// WithExecutorLogger sets the logger for per-call log entries.
func WithExecutorLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) { e.logger = logger }
}

// NewExecutor builds an Executor over the catalog.
func NewExecutor(catalog *tool.Catalog, options ...ExecutorOption) *Executor {
	e := &Executor{
		catalog: catalog,
		gate:    NewPhraseApprovalGate(),
		logger:  slog.Default(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Execute processes every tool call on the conversation's newest message and
// returns how many results it appended. It is an error to call Execute when
// the newest message is not an assistant message carrying tool calls.
func (e *Executor) Execute(ctx context.Context, conv *conversation.Conversation) (int, error) {
	tail := conv.Tail()
	if tail == nil || tail.Role != ai.RoleAssistant || !tail.HasToolCalls() {
		return 0, fmt.Errorf("agent: executor invoked without pending tool calls")
	}

	for _, call := range tail.ToolCalls {
		result := e.executeOne(ctx, conv, call)

		payload, err := result.ToJSON()
		if err != nil {
			// ToolResult marshals from plain data; reaching this means a tool
			// returned something unencodable.
			payload = fmt.Sprintf(`{"success":false,"error":"tool_execution_failed","message":%q}`, err.Error())
		}

		conv.Append(&ai.Message{
			Role:       ai.RoleTool,
			Content:    payload,
			ToolCallID: call.ID,
			Name:       call.Function.Name,
		})
	}

	return len(tail.ToolCalls), nil
}

func (e *Executor) executeOne(ctx context.Context, conv *conversation.Conversation, call ai.ToolCall) ai.ToolResult {
	name := call.Function.Name

	t, found := e.catalog.Get(name)
	if !found {
		e.logger.WarnContext(ctx, "tool not found", "tool", name)
		return ai.NewToolResultError("tool_not_found",
			fmt.Sprintf("no tool named %q is available; check the advertised tool list", name))
	}

	args, err := parse.ParseArguments(call.Function.Arguments)
	if err != nil {
		e.logger.WarnContext(ctx, "tool arguments unparseable", "tool", name, "error", err)
		return ai.NewToolResultError("invalid_arguments",
			fmt.Sprintf("arguments are not valid JSON: %v", err))
	}

	if schema := t.ToolInfo().Parameters; schema != nil {
		if err := schema.Validate(args); err != nil {
			e.logger.WarnContext(ctx, "tool arguments rejected", "tool", name, "error", err)
			return ai.NewToolResultError("invalid_arguments", err.Error())
		}
	}

	if t.SideEffect() == tool.SideEffectWorldChanging && !e.gate.Approved(conv.All(), call) {
		e.logger.InfoContext(ctx, "world-changing tool denied", "tool", name)
		return ai.NewToolResultError("approval_required",
			fmt.Sprintf("%s changes the world and requires explicit human approval of the drafted plan; none was found", name))
	}

	e.logger.InfoContext(ctx, "tool call", "tool", name)
	output, err := t.Call(ctx, call.Function.Arguments)
	if err != nil {
		e.logger.WarnContext(ctx, "tool call failed", "tool", name, "error", err)
		return ai.NewToolResultError("tool_execution_failed", err.Error())
	}

	return ai.NewToolResultSuccess(jsonRaw(output))
}

// jsonRaw keeps already-encoded tool output from being double-escaped when
// the surrounding ToolResult is marshalled.
type jsonRaw string

func (r jsonRaw) MarshalJSON() ([]byte, error) { return []byte(r), nil }
