package agent

import (
	"context"
	"fmt"

	"github.com/entrhq/cua/pkg/browser"
	"github.com/entrhq/cua/pkg/llm"
	"github.com/entrhq/cua/pkg/logging"
	"github.com/entrhq/cua/pkg/types"
)

var agentLog *logging.Logger

func init() {
	agentLog, _ = logging.NewLogger("agent")
}

// SessionSource provides the remote session a run binds to. It is the
// slice of browser.Manager the invoker needs.
type SessionSource interface {
	Acquire(ctx context.Context, sessionID string) (*browser.Session, *browser.Connection, error)
	DisplaySize() (width, height int)
}

// ModelInvoker prepares and performs one model invocation: it binds
// the state to a live session, chooses between continuation-token and
// full-history encoding, and appends the model's reply.
type ModelInvoker struct {
	backend    llm.Backend
	sessions   SessionSource
	continuity bool
	sink       LiveViewSink
}

// InvokerOption configures a ModelInvoker.
type InvokerOption func(*ModelInvoker)

// WithContinuity toggles continuation-token chaining. Disabled, every
// invocation resends the full conversation, for deployments where the
// model provider retains nothing between calls.
func WithContinuity(enabled bool) InvokerOption {
	return func(inv *ModelInvoker) {
		inv.continuity = enabled
	}
}

// WithLiveViewSink sets the receiver for the session's live-view URL.
func WithLiveViewSink(sink LiveViewSink) InvokerOption {
	return func(inv *ModelInvoker) {
		inv.sink = sink
	}
}

// NewModelInvoker creates an invoker over a model backend and a
// session source. Continuity is on by default.
func NewModelInvoker(backend llm.Backend, sessions SessionSource, opts ...InvokerOption) *ModelInvoker {
	inv := &ModelInvoker{
		backend:    backend,
		sessions:   sessions,
		continuity: true,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Invoke performs one model invocation against the state. The reply is
// appended to the conversation on success.
func (inv *ModelInvoker) Invoke(ctx context.Context, st *State) error {
	if len(st.Messages) == 0 {
		return fmt.Errorf("%w: cannot invoke the model on an empty conversation", types.ErrProtocolViolation)
	}

	if err := inv.bindSession(ctx, st); err != nil {
		return err
	}

	// Pin the viewport on every invocation so coordinates the model
	// produces stay valid even if the remote end resized the page.
	width, height := inv.sessions.DisplaySize()
	page := st.Conn.CurrentPage()
	if page == nil {
		return fmt.Errorf("session %s has no current page", st.SessionID)
	}
	if err := page.SetViewportSize(width, height); err != nil {
		return fmt.Errorf("failed to pin viewport to %dx%d: %w", width, height, err)
	}

	st.EmitLiveView(inv.sink, st.Session.LiveViewURL)

	req, err := inv.buildRequest(st)
	if err != nil {
		return err
	}

	reply, err := inv.backend.Invoke(ctx, req)
	if err != nil {
		return fmt.Errorf("model invocation failed: %w", err)
	}
	st.Append(reply)
	return nil
}

// bindSession ensures the state holds a live connection, acquiring one
// on the first invocation and reusing it afterwards.
func (inv *ModelInvoker) bindSession(ctx context.Context, st *State) error {
	if st.Conn != nil {
		return nil
	}
	session, conn, err := inv.sessions.Acquire(ctx, st.SessionID)
	if err != nil {
		return err
	}
	st.Session = session
	st.SessionID = session.ID
	st.Conn = conn
	agentLog.Infof("Bound run to session %s", session.ID)
	return nil
}

// buildRequest chooses the wire encoding for this invocation. With
// continuity on and an action result pending, only the result travels,
// chained to the prior response. Otherwise the full conversation is
// sent, with a fresh screenshot attached on the very first invocation.
func (inv *ModelInvoker) buildRequest(st *State) (llm.Request, error) {
	last := st.Last()
	prevID := inv.continuationToken(st)

	if inv.continuity && last.Role == types.RoleTool {
		if prevID == "" {
			return llm.Request{}, fmt.Errorf("%w: action result has no prior model response to chain to", types.ErrProtocolViolation)
		}
		return llm.Request{
			Input:              []*types.Message{last},
			PreviousResponseID: prevID,
		}, nil
	}

	// Without a continuation token the screenshot is the model's only
	// visual context, so a capture failure fails the invocation.
	if !hasAssistantReply(st.Messages) {
		if err := inv.attachScreenshot(st); err != nil {
			return llm.Request{}, fmt.Errorf("failed to attach initial screenshot: %w", err)
		}
	}
	return llm.Request{
		Input:              st.Messages,
		PreviousResponseID: prevID,
	}, nil
}

// continuationToken resolves the response id this invocation continues
// from: the latest assistant reply's id, which sits second from the
// end when an action result has just been appended.
func (inv *ModelInvoker) continuationToken(st *State) string {
	if !inv.continuity {
		return ""
	}
	for i := len(st.Messages) - 1; i >= 0; i-- {
		if st.Messages[i].Role == types.RoleAssistant {
			return st.Messages[i].ResponseID
		}
	}
	return ""
}

// attachScreenshot grounds the first invocation by appending a capture
// of the current page to the opening message.
func (inv *ModelInvoker) attachScreenshot(st *State) error {
	page := st.Conn.CurrentPage()
	if page == nil {
		return fmt.Errorf("no page available for the initial screenshot")
	}
	dataURL, err := browser.ScreenshotDataURL(page)
	if err != nil {
		return err
	}
	first := st.Messages[0]
	first.Parts = append(first.Parts, types.ImagePart(dataURL))
	return nil
}

func hasAssistantReply(messages []*types.Message) bool {
	for _, m := range messages {
		if m.Role == types.RoleAssistant {
			return true
		}
	}
	return false
}
