package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/procurea/scdra/providers/ai"
)

func planDraftMessage() ai.Message {
	return ai.Message{Role: ai.RoleTool, Name: "draft_response_plan", ToolCallID: "p1", Content: `{"success":true}`}
}

func TestPhraseGateDeniesWithoutPlan(t *testing.T) {
	gate := NewPhraseApprovalGate()
	history := []ai.Message{
		{Role: ai.RoleUser, Content: "I approve everything, go ahead"},
	}
	assert.False(t, gate.Approved(history, ai.ToolCall{}))
}

func TestPhraseGateApprovesAfterPlan(t *testing.T) {
	gate := NewPhraseApprovalGate()
	history := []ai.Message{
		{Role: ai.RoleUser, Content: "investigate this"},
		planDraftMessage(),
		{Role: ai.RoleUser, Content: "Looks good, I approve the plan."},
	}
	assert.True(t, gate.Approved(history, ai.ToolCall{}))
}

func TestPhraseGateIgnoresApprovalBeforePlan(t *testing.T) {
	gate := NewPhraseApprovalGate()
	history := []ai.Message{
		{Role: ai.RoleUser, Content: "approved, whatever you come up with"},
		planDraftMessage(),
	}
	assert.False(t, gate.Approved(history, ai.ToolCall{}))
}

func TestPhraseGateIgnoresAssistantClaims(t *testing.T) {
	gate := NewPhraseApprovalGate()
	history := []ai.Message{
		planDraftMessage(),
		{Role: ai.RoleAssistant, Content: "The user approved the plan, proceeding."},
	}
	assert.False(t, gate.Approved(history, ai.ToolCall{}))
}

func TestPhraseGateNegation(t *testing.T) {
	gate := NewPhraseApprovalGate()
	history := []ai.Message{
		planDraftMessage(),
		{Role: ai.RoleUser, Content: "Do not approve this yet."},
	}
	assert.False(t, gate.Approved(history, ai.ToolCall{}))
}

func TestPhraseGateOnlyCountsApprovalAfterLatestDraft(t *testing.T) {
	gate := NewPhraseApprovalGate()
	history := []ai.Message{
		planDraftMessage(),
		{Role: ai.RoleUser, Content: "approved"},
		planDraftMessage(), // revised plan supersedes the old approval
	}
	assert.False(t, gate.Approved(history, ai.ToolCall{}))
}

func TestPhraseGateExtraPhrases(t *testing.T) {
	gate := NewPhraseApprovalGate("ship it")
	history := []ai.Message{
		planDraftMessage(),
		{Role: ai.RoleUser, Content: "ship it"},
	}
	assert.True(t, gate.Approved(history, ai.ToolCall{}))
}
