package agent

import "github.com/procurea/scdra/providers/ai"

// RouteDecision is the router's verdict on the latest assistant message.
type RouteDecision string

const (
	// RouteTools means the message carries tool calls that must be executed.
	RouteTools RouteDecision = "tools"

	// RouteEnd means the message is a plain text answer and the run is done.
	RouteEnd RouteDecision = "end"
)

// Route inspects the newest message and decides the next state. It is a pure
// function of its input: no history scan, no side effects.
func Route(tail *ai.Message) RouteDecision {
	if tail == nil {
		return RouteEnd
	}
	if tail.Role == ai.RoleAssistant && tail.HasToolCalls() {
		return RouteTools
	}
	return RouteEnd
}
