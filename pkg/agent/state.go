// Package agent contains the control loop of the computer-use agent:
// the turn state threaded through every step, the router deciding
// between model invocation and action execution, and the runner that
// drives one task to completion.
package agent

import (
	"sync"

	"github.com/entrhq/cua/pkg/browser"
	"github.com/entrhq/cua/pkg/types"
)

// LiveViewSink receives the session's human-observable live-view URL.
// It is called at most once per run, before the first action executes,
// so an observer can attach before the agent starts acting.
type LiveViewSink func(liveViewURL string)

// State is the mutable record threaded through every step of one run:
// the conversation, the remote session identity, the live connection,
// and the once-only live-view emission slot. A State, its session, and
// its connection are exclusively owned by one run and never shared.
type State struct {
	// Messages is the conversation, append-only within a turn.
	Messages []*types.Message

	// SessionID is the opaque id of the remote session. May be set
	// before the run to resume an existing session.
	SessionID string

	// Session and Conn are nil until the first model invocation
	// acquires them; afterwards they are reused for the whole run.
	Session *browser.Session
	Conn    *browser.Connection

	mu      sync.Mutex
	emitted bool
}

// NewState creates a turn state over an initial conversation.
func NewState(messages ...*types.Message) *State {
	return &State{Messages: messages}
}

// Append adds one message to the conversation.
func (s *State) Append(msg *types.Message) {
	s.Messages = append(s.Messages, msg)
}

// Last returns the latest conversation message, or nil when empty.
func (s *State) Last() *types.Message {
	return types.LastMessage(s.Messages)
}

// EmitLiveView forwards the live-view URL to the sink exactly once per
// state, no matter how many components reach the session-available
// condition. A nil sink marks the slot consumed without emitting.
func (s *State) EmitLiveView(sink LiveViewSink, liveViewURL string) {
	s.mu.Lock()
	already := s.emitted
	s.emitted = true
	s.mu.Unlock()

	if already || sink == nil {
		return
	}
	sink(liveViewURL)
}
