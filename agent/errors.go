package agent

import "fmt"

// ExternalServiceError wraps a failed language model invocation. The runner
// does not retry; callers that want resilience layer the retry middleware
// over the provider instead.
type ExternalServiceError struct {
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("agent: language model call failed: %v", e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// BudgetExceededError reports that the iteration budget ran out before the
// model produced a final answer.
type BudgetExceededError struct {
	Budget int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("agent: iteration budget of %d exhausted before a final answer", e.Budget)
}

// CancelledError reports that the run's context was cancelled. Cancellation
// is only observed between states, so the conversation returned alongside it
// is always consistent: no tool call is left half-answered.
type CancelledError struct {
	State RunState
	Err   error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("agent: run cancelled in state %s: %v", e.State, e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }
