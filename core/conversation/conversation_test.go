package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurea/scdra/providers/ai"
)

func TestAppendAndTail(t *testing.T) {
	conv := New()
	require.Nil(t, conv.Tail())
	require.Equal(t, 0, conv.Len())

	conv.Append(&ai.Message{Role: ai.RoleUser, Content: "first"})
	conv.Append(&ai.Message{Role: ai.RoleAssistant, Content: "second"})

	tail := conv.Tail()
	require.NotNil(t, tail)
	assert.Equal(t, ai.RoleAssistant, tail.Role)
	assert.Equal(t, "second", tail.Content)
	assert.Equal(t, 2, conv.Len())
}

func TestAppendNilIsNoOp(t *testing.T) {
	conv := New()
	conv.Append(nil)
	assert.Equal(t, 0, conv.Len())
}

func TestAppendStoresCopy(t *testing.T) {
	conv := New()
	msg := &ai.Message{Role: ai.RoleUser, Content: "original"}
	conv.Append(msg)

	msg.Content = "mutated"
	assert.Equal(t, "original", conv.Tail().Content)
}

func TestAllReturnsDefensiveCopy(t *testing.T) {
	conv := New()
	conv.Append(&ai.Message{Role: ai.RoleUser, Content: "keep"})

	all := conv.All()
	all[0].Content = "mutated"

	assert.Equal(t, "keep", conv.All()[0].Content)
}

func TestFilterRole(t *testing.T) {
	conv := New()
	conv.Append(&ai.Message{Role: ai.RoleUser, Content: "u1"})
	conv.Append(&ai.Message{Role: ai.RoleAssistant, Content: "a1"})
	conv.Append(&ai.Message{Role: ai.RoleUser, Content: "u2"})

	users := conv.FilterRole(ai.RoleUser)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].Content)
	assert.Equal(t, "u2", users[1].Content)

	assert.Empty(t, conv.FilterRole(ai.RoleTool))
}

func TestCheckToolCallInvariant(t *testing.T) {
	call := func(id string) ai.ToolCall {
		return ai.ToolCall{ID: id, Type: "function", Function: ai.ToolCallFunction{Name: "query_inventory_db"}}
	}
	result := func(id string) ai.Message {
		return ai.Message{Role: ai.RoleTool, ToolCallID: id, Name: "query_inventory_db", Content: "{}"}
	}

	tests := []struct {
		name     string
		messages []ai.Message
		wantErr  string
	}{
		{
			name: "valid history",
			messages: []ai.Message{
				{Role: ai.RoleUser, Content: "report"},
				{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{call("c1"), call("c2")}},
				result("c1"),
				result("c2"),
				{Role: ai.RoleAssistant, Content: "done"},
			},
		},
		{
			name: "assistant before calls answered",
			messages: []ai.Message{
				{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{call("c1")}},
				{Role: ai.RoleAssistant, Content: "too soon"},
			},
			wantErr: "unanswered",
		},
		{
			name: "duplicate call id",
			messages: []ai.Message{
				{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{call("c1"), call("c1")}},
			},
			wantErr: "duplicate",
		},
		{
			name: "result for unknown call",
			messages: []ai.Message{
				result("ghost"),
			},
			wantErr: "unknown",
		},
		{
			name: "history ends with pending call",
			messages: []ai.Message{
				{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{call("c1")}},
			},
			wantErr: "unanswered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckToolCallInvariant(tt.messages)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
