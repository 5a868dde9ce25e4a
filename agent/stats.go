package agent

import "github.com/procurea/scdra/providers/ai"

// RunStats aggregates accounting across a run.
type RunStats struct {
	// Iterations is the number of model invocations performed.
	Iterations int `json:"iterations"`

	// ToolCalls is the number of tool invocations executed, including the
	// ones that produced error payloads.
	ToolCalls int `json:"tool_calls"`

	// Usage sums the token accounting reported by the provider.
	Usage ai.Usage `json:"usage"`
}

func (s *RunStats) addUsage(u *ai.Usage) {
	if u == nil {
		return
	}
	s.Usage.PromptTokens += u.PromptTokens
	s.Usage.CompletionTokens += u.CompletionTokens
	s.Usage.TotalTokens += u.TotalTokens
}
