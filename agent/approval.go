package agent

import (
	"strings"

	"github.com/procurea/scdra/providers/ai"
)

// planDraftTool is the tool whose result marks "a plan now exists". Approval
// only counts when a human gave it after the latest draft.
const planDraftTool = "draft_response_plan"

// ApprovalGate decides whether a world-changing tool call may proceed given
// the conversation so far.
type ApprovalGate interface {
	Approved(history []ai.Message, call ai.ToolCall) bool
}

// PhraseApprovalGate approves execution when a user message after the most
// recent plan draft contains an approval phrase. Without any drafted plan
// there is nothing to approve, so execution is always denied.
//
// This is a mechanical stand-in for a real review UI: it checks the
// transcript, never the model's own claims.
type PhraseApprovalGate struct {
	phrases []string
}

// defaultApprovalPhrases are matched case-insensitively as substrings.
var defaultApprovalPhrases = []string{
	"approve",
	"go ahead",
	"proceed with the plan",
	"execute the plan",
	"yes, proceed",
}

// negations veto a match so "do not approve" never counts as approval.
var negations = []string{
	"do not approve",
	"don't approve",
	"not approved",
	"do not proceed",
	"don't proceed",
}

// NewPhraseApprovalGate builds a gate with the default phrases plus any
// extras.
func NewPhraseApprovalGate(extra ...string) *PhraseApprovalGate {
	return &PhraseApprovalGate{
		phrases: append(append([]string(nil), defaultApprovalPhrases...), extra...),
	}
}

// Approved reports whether a user message after the latest plan draft grants
// approval.
func (g *PhraseApprovalGate) Approved(history []ai.Message, _ ai.ToolCall) bool {
	lastDraft := -1
	for i, m := range history {
		if m.Role == ai.RoleTool && strings.EqualFold(m.Name, planDraftTool) {
			lastDraft = i
		}
	}
	if lastDraft == -1 {
		return false
	}

	for _, m := range history[lastDraft+1:] {
		if m.Role != ai.RoleUser {
			continue
		}
		if g.grants(m.Content) {
			return true
		}
	}
	return false
}

func (g *PhraseApprovalGate) grants(content string) bool {
	text := strings.ToLower(content)
	for _, n := range negations {
		if strings.Contains(text, n) {
			return false
		}
	}
	for _, p := range g.phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
