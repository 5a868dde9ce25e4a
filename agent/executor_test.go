package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurea/scdra/core/conversation"
	"github.com/procurea/scdra/providers/ai"
	"github.com/procurea/scdra/providers/tool"
	"github.com/procurea/scdra/providers/tool/supplychain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testCatalog() *tool.Catalog {
	toolset := supplychain.New(supplychain.Config{
		Now: func() time.Time { return time.Date(2025, 2, 10, 9, 30, 0, 0, time.UTC) },
	})
	return tool.NewCatalog(toolset.All()...)
}

func assistantWithCalls(calls ...ai.ToolCall) *ai.Message {
	return &ai.Message{Role: ai.RoleAssistant, ToolCalls: calls}
}

func toolCall(id, name, args string) ai.ToolCall {
	return ai.ToolCall{ID: id, Type: "function", Function: ai.ToolCallFunction{Name: name, Arguments: args}}
}

func lastToolResult(t *testing.T, conv *conversation.Conversation) ai.ToolResult {
	t.Helper()
	tail := conv.Tail()
	require.NotNil(t, tail)
	require.Equal(t, ai.RoleTool, tail.Role)

	var result ai.ToolResult
	require.NoError(t, json.Unmarshal([]byte(tail.Content), &result))
	return result
}

func TestExecutorHappyPath(t *testing.T) {
	executor := NewExecutor(testCatalog(), WithExecutorLogger(quietLogger()))
	conv := conversation.New()
	conv.Append(&ai.Message{Role: ai.RoleUser, Content: "report"})
	conv.Append(assistantWithCalls(toolCall("c1", "query_inventory_db", `{"query":"supplier TPA-001"}`)))

	executed, err := executor.Execute(context.Background(), conv)
	require.NoError(t, err)
	assert.Equal(t, 1, executed)

	result := lastToolResult(t, conv)
	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	require.NoError(t, conversation.CheckToolCallInvariant(conv.All()))
}

func TestExecutorUnknownTool(t *testing.T) {
	executor := NewExecutor(testCatalog(), WithExecutorLogger(quietLogger()))
	conv := conversation.New()
	conv.Append(assistantWithCalls(toolCall("c1", "launch_rockets", `{}`)))

	executed, err := executor.Execute(context.Background(), conv)
	require.NoError(t, err)
	assert.Equal(t, 1, executed)

	result := lastToolResult(t, conv)
	assert.False(t, result.Success)
	assert.Equal(t, "tool_not_found", result.Error)
	require.NoError(t, conversation.CheckToolCallInvariant(conv.All()))
}

func TestExecutorValidationError(t *testing.T) {
	executor := NewExecutor(testCatalog(), WithExecutorLogger(quietLogger()))
	conv := conversation.New()
	// Empty region violates the schema's minLength.
	conv.Append(assistantWithCalls(toolCall("c1", "fetch_disruption_alerts", `{"region":"","category":"supplier_failure"}`)))

	_, err := executor.Execute(context.Background(), conv)
	require.NoError(t, err)

	result := lastToolResult(t, conv)
	assert.False(t, result.Success)
	assert.Equal(t, "invalid_arguments", result.Error)
	assert.Contains(t, result.Message, "region")
}

func TestExecutorExecutionFailure(t *testing.T) {
	executor := NewExecutor(testCatalog(), WithExecutorLogger(quietLogger()))
	conv := conversation.New()
	conv.Append(assistantWithCalls(toolCall("c1", "get_supplier_pricing", `{"supplier_id":"NOPE-000","sku":"SKU-MCU2200"}`)))

	_, err := executor.Execute(context.Background(), conv)
	require.NoError(t, err)

	result := lastToolResult(t, conv)
	assert.False(t, result.Success)
	assert.Equal(t, "tool_execution_failed", result.Error)
	assert.Contains(t, result.Message, "no pricing on file")
}

func TestExecutorAnswersEveryCallInOrder(t *testing.T) {
	executor := NewExecutor(testCatalog(), WithExecutorLogger(quietLogger()))
	conv := conversation.New()
	conv.Append(assistantWithCalls(
		toolCall("c1", "query_inventory_db", `{"query":"supplier TPA-001"}`),
		toolCall("c2", "no_such_tool", `{}`),
		toolCall("c3", "load_disruption_history", `{"disruption_type":"supplier_failure"}`),
	))

	executed, err := executor.Execute(context.Background(), conv)
	require.NoError(t, err)
	assert.Equal(t, 3, executed)

	messages := conv.All()
	require.Len(t, messages, 4)
	assert.Equal(t, "c1", messages[1].ToolCallID)
	assert.Equal(t, "c2", messages[2].ToolCallID)
	assert.Equal(t, "c3", messages[3].ToolCallID)
	require.NoError(t, conversation.CheckToolCallInvariant(messages))
}

func TestExecutorDeniesWorldChangingWithoutApproval(t *testing.T) {
	executor := NewExecutor(testCatalog(), WithExecutorLogger(quietLogger()))
	conv := conversation.New()
	conv.Append(&ai.Message{Role: ai.RoleUser, Content: "notify everyone immediately"})
	conv.Append(assistantWithCalls(toolCall("c1", "send_notification",
		`{"channel":"slack","recipients":"#ops","message":"Disruption in progress"}`)))

	_, err := executor.Execute(context.Background(), conv)
	require.NoError(t, err)

	result := lastToolResult(t, conv)
	assert.False(t, result.Success)
	assert.Equal(t, "approval_required", result.Error)
}

func TestExecutorAllowsWorldChangingWithApproval(t *testing.T) {
	executor := NewExecutor(testCatalog(), WithExecutorLogger(quietLogger()))
	conv := conversation.New()
	conv.Append(&ai.Message{Role: ai.RoleUser, Content: "report"})
	conv.Append(assistantWithCalls(toolCall("p1", "draft_response_plan", `{"context":"TPA-001 halt"}`)))
	_, err := executor.Execute(context.Background(), conv)
	require.NoError(t, err)

	conv.Append(&ai.Message{Role: ai.RoleUser, Content: "The plan is approved, go ahead."})
	conv.Append(assistantWithCalls(toolCall("c1", "send_notification",
		`{"channel":"email","recipients":"vp@example.com","message":"Plan underway"}`)))

	_, err = executor.Execute(context.Background(), conv)
	require.NoError(t, err)

	result := lastToolResult(t, conv)
	assert.True(t, result.Success)
}

type alwaysDenyGate struct{}

func (alwaysDenyGate) Approved([]ai.Message, ai.ToolCall) bool { return false }

func TestExecutorCustomGate(t *testing.T) {
	executor := NewExecutor(testCatalog(),
		WithExecutorLogger(quietLogger()),
		WithApprovalGate(alwaysDenyGate{}),
	)
	conv := conversation.New()
	conv.Append(assistantWithCalls(toolCall("p1", "draft_response_plan", `{"context":"x"}`)))
	_, err := executor.Execute(context.Background(), conv)
	require.NoError(t, err)

	conv.Append(&ai.Message{Role: ai.RoleUser, Content: "approved"})
	conv.Append(assistantWithCalls(toolCall("c1", "update_purchase_order",
		`{"po_id":"PO-2024-001","new_supplier":"ALT-003"}`)))
	_, err = executor.Execute(context.Background(), conv)
	require.NoError(t, err)

	result := lastToolResult(t, conv)
	assert.Equal(t, "approval_required", result.Error)
}

func TestExecutorRejectsMisuse(t *testing.T) {
	executor := NewExecutor(testCatalog(), WithExecutorLogger(quietLogger()))

	conv := conversation.New()
	_, err := executor.Execute(context.Background(), conv)
	assert.Error(t, err)

	conv.Append(&ai.Message{Role: ai.RoleAssistant, Content: "no calls here"})
	_, err = executor.Execute(context.Background(), conv)
	assert.Error(t, err)
}
