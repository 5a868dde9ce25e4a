package supplychain

import (
	"context"

	"github.com/procurea/scdra/providers/tool"
)

// PlanStatusDraft is the status every generated plan carries. Plans never
// leave draft state inside the tool layer; promotion happens outside, after
// a human signs off.
const PlanStatusDraft = "draft - pending human approval"

type draftPlanInput struct {
	Context string `json:"context" jsonschema:"description=Summary of the investigation so far: the disruption and the affected orders and the financial exposure and any relevant procedure steps.,minLength=1,required"`
}

// PlanAction is one recommended step in a response plan.
type PlanAction struct {
	Priority int    `json:"priority"`
	Action   string `json:"action"`
	Timeline string `json:"timeline"`
	Owner    string `json:"owner"`
}

// ResponsePlan is a structured draft awaiting human approval.
type ResponsePlan struct {
	PlanID                  string       `json:"plan_id"`
	Status                  string       `json:"status"`
	GeneratedBy             string       `json:"generated_by"`
	GeneratedAt             string       `json:"generated_at"`
	ContextSummary          string       `json:"context_summary"`
	RecommendedActions      []PlanAction `json:"recommended_actions"`
	EstimatedResolutionTime string       `json:"estimated_resolution_time"`
	RequiresHumanApproval   bool         `json:"requires_human_approval"`
}

// contextSummaryLimit keeps the echoed context bounded so transcripts stay
// readable.
const contextSummaryLimit = 500

// DraftResponsePlan produces a structured response plan from the accumulated
// investigation context. The plan is always a draft and always requires
// human approval before any execution tool may run.
func (ts *Toolset) DraftResponsePlan() tool.GenericTool {
	return tool.New("draft_response_plan",
		func(_ context.Context, in draftPlanInput) (ResponsePlan, error) {
			return ResponsePlan{
				PlanID:         "PLAN-" + ts.newID(),
				Status:         PlanStatusDraft,
				GeneratedBy:    "SCDRA agent",
				GeneratedAt:    ts.now().Format("2006-01-02T15:04:05Z07:00"),
				ContextSummary: truncate(in.Context, contextSummaryLimit),
				RecommendedActions: []PlanAction{
					{Priority: 1, Action: "Confirm disruption scope with the affected supplier(s) and validate which open POs are at risk.", Timeline: "within 4 hours", Owner: "Procurement"},
					{Priority: 2, Action: "Activate pre-qualified backup supplier for the affected SKUs and request a binding quote.", Timeline: "within 8 hours", Owner: "Procurement"},
					{Priority: 3, Action: "Issue expedited replacement POs where stock will breach reorder point before recovery.", Timeline: "within 24 hours", Owner: "Procurement"},
					{Priority: 4, Action: "Notify production planning and logistics of revised inbound timelines.", Timeline: "within 24 hours", Owner: "Supply Chain Ops"},
					{Priority: 5, Action: "Escalate financial exposure summary to VP Supply Chain and schedule daily status reviews.", Timeline: "within 48 hours", Owner: "Supply Chain Ops"},
				},
				EstimatedResolutionTime: "5-10 business days",
				RequiresHumanApproval:   true,
			}, nil
		},
		tool.WithDescription("Draft a structured disruption response plan from the investigation context. The plan is a draft and requires explicit human approval before any notification or purchase order change is executed."),
	)
}
