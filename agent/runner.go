// Package agent implements the disruption-response loop: a model step that
// may request tools, an executor that answers every call, a router that
// decides whether to continue, and a runner that drives the cycle under an
// iteration budget.
package agent

import (
	"context"
	"log/slog"

	"github.com/procurea/scdra/core/conversation"
	"github.com/procurea/scdra/providers/ai"
)

// RunState names the runner's position in the loop.
type RunState string

const (
	StateInit  RunState = "init"
	StateAgent RunState = "agent"
	StateTools RunState = "tools"
	StateDone  RunState = "done"
)

// DefaultIterationBudget bounds how many model invocations a run may make.
const DefaultIterationBudget = 25

// Runner drives the agent loop from a disruption report to a final answer.
type Runner struct {
	step     *Step
	executor *Executor
	budget   int
	logger   *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithIterationBudget overrides DefaultIterationBudget. Values below one are
// ignored.
func WithIterationBudget(budget int) RunnerOption {
	return func(r *Runner) {
		if budget >= 1 {
			r.budget = budget
		}
	}
}

// WithRunnerLogger sets the logger for state transitions.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner builds a Runner from a step and an executor.
func NewRunner(step *Step, executor *Executor, options ...RunnerOption) *Runner {
	r := &Runner{
		step:     step,
		executor: executor,
		budget:   DefaultIterationBudget,
		logger:   slog.Default(),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// RunResult is what a run produces, successful or not. On error the
// conversation still holds the partial transcript up to the failure.
type RunResult struct {
	Conversation *conversation.Conversation
	FinalAnswer  string
	Stats        RunStats
}

// Run investigates the disruption report and returns the final answer. The
// returned error is one of *ExternalServiceError, *BudgetExceededError or
// *CancelledError; in every case the RunResult carries the transcript so far.
//
// Cancellation is only observed between states, never mid-execution, so a
// cancelled run never leaves a tool call unanswered.
func (r *Runner) Run(ctx context.Context, report string) (*RunResult, error) {
	conv := conversation.New()
	conv.Append(&ai.Message{Role: ai.RoleUser, Content: report})

	result := &RunResult{Conversation: conv}
	remaining := r.budget
	state := StateAgent

	for state != StateDone {
		if err := ctx.Err(); err != nil {
			r.logger.InfoContext(ctx, "run cancelled", "state", string(state))
			return result, &CancelledError{State: state, Err: err}
		}

		switch state {
		case StateAgent:
			if remaining == 0 {
				r.logger.WarnContext(ctx, "iteration budget exhausted", "budget", r.budget)
				return result, &BudgetExceededError{Budget: r.budget}
			}
			remaining--

			response, err := r.step.Invoke(ctx, conv)
			if err != nil {
				return result, err
			}
			result.Stats.Iterations++
			result.Stats.addUsage(response.Usage)

			if Route(conv.Tail()) == RouteTools {
				r.logger.DebugContext(ctx, "routing to tools", "calls", len(response.ToolCalls))
				state = StateTools
			} else {
				result.FinalAnswer = response.Content
				state = StateDone
			}

		case StateTools:
			executed, err := r.executor.Execute(ctx, conv)
			if err != nil {
				return result, err
			}
			result.Stats.ToolCalls += executed
			state = StateAgent
		}
	}

	r.logger.InfoContext(ctx, "run complete",
		"iterations", result.Stats.Iterations,
		"tool_calls", result.Stats.ToolCalls,
		"total_tokens", result.Stats.Usage.TotalTokens,
	)
	return result, nil
}
