// Package llm defines the model-backend boundary of the computer-use
// agent. A Backend accepts a structured conversation slice plus an
// optional continuation token and returns exactly one assistant
// message, which may carry pending action requests.
package llm

import (
	"context"

	"github.com/entrhq/cua/pkg/types"
)

// Request is one model invocation. Input is either the full
// conversation or, when PreviousResponseID is set, only the latest
// action-result message: the provider reconstructs the prior context
// server-side from the token.
type Request struct {
	Input []*types.Message

	// PreviousResponseID is the continuation token of the assistant
	// message the input follows up on. Empty disables chaining and
	// requires Input to be the full conversation.
	PreviousResponseID string
}

// Backend is a provider capable of driving a computer-use model.
//
// Invoke returns the model's reply as a single assistant message:
// terminal when it carries no actions, otherwise the actions are the
// model's next requested steps. It must never return a nil message
// alongside a nil error.
type Backend interface {
	Invoke(ctx context.Context, req Request) (*types.Message, error)
}
