package agent

import "github.com/entrhq/cua/pkg/types"

// Step identifies the next move of the run loop.
type Step int

const (
	// StepInvokeModel asks the model for its next reply.
	StepInvokeModel Step = iota
	// StepTakeAction executes the pending actions of the latest reply.
	StepTakeAction
	// StepDone ends the run.
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepInvokeModel:
		return "invoke_model"
	case StepTakeAction:
		return "take_action"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// NextAfterModel routes based on the model's latest reply: a reply
// carrying pending actions moves to action execution, anything else
// ends the run with the reply as the final answer.
func NextAfterModel(last *types.Message) Step {
	if last.HasPendingActions() {
		return StepTakeAction
	}
	return StepDone
}

// NextAfterAction routes after action execution: a tool message means
// results are ready for the model, anything else is a terminal no-op.
func NextAfterAction(last *types.Message) Step {
	if last != nil && last.Role == types.RoleTool {
		return StepInvokeModel
	}
	return StepDone
}
