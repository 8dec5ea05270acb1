package agent

import (
	"context"
	"fmt"

	"github.com/entrhq/cua/pkg/browser"
	"github.com/entrhq/cua/pkg/types"
)

// Invoker performs one model invocation against the state.
type Invoker interface {
	Invoke(ctx context.Context, st *State) error
}

// ActionExecutor runs the pending actions of an assistant reply and
// returns the aggregated tool message.
type ActionExecutor interface {
	Execute(ctx context.Context, conn *browser.Connection, assistant *types.Message) (*types.Message, error)
}

// Runner alternates model invocations with action execution until the
// model replies without actions or the context ends.
type Runner struct {
	invoker   Invoker
	executor  ActionExecutor
	maxCycles int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMaxCycles caps the number of model invocations per run. Zero,
// the default, means no cap; the run ends when the model stops asking
// for actions or the context is cancelled.
func WithMaxCycles(n int) RunnerOption {
	return func(r *Runner) {
		r.maxCycles = n
	}
}

// NewRunner creates a run loop over an invoker and an action executor.
func NewRunner(invoker Invoker, executor ActionExecutor, opts ...RunnerOption) *Runner {
	r := &Runner{
		invoker:  invoker,
		executor: executor,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run drives the state to completion. On success the final assistant
// reply is the last conversation message.
func (r *Runner) Run(ctx context.Context, st *State) error {
	step := StepInvokeModel
	cycles := 0

	for step != StepDone {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch step {
		case StepInvokeModel:
			if r.maxCycles > 0 && cycles >= r.maxCycles {
				return fmt.Errorf("run exceeded %d model invocations", r.maxCycles)
			}
			cycles++
			if err := r.invoker.Invoke(ctx, st); err != nil {
				return err
			}
			step = NextAfterModel(st.Last())

		case StepTakeAction:
			agentLog.Debugf("Executing %d pending actions", len(st.Last().Actions))
			result, err := r.executor.Execute(ctx, st.Conn, st.Last())
			if err != nil {
				return err
			}
			if result != nil {
				st.Append(result)
			}
			step = NextAfterAction(st.Last())
		}
	}

	agentLog.Infof("Run finished after %d model invocations", cycles)
	return nil
}
