package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/entrhq/cua/pkg/types"
)

// DefaultSettleDelay is the pause after each executed action, before
// the post-action screenshot, letting page state stabilize.
const DefaultSettleDelay = time.Second

// FunctionHandler executes one named capability against the current
// connection and returns its text payload.
type FunctionHandler func(ctx context.Context, conn *Connection, arguments string) (string, error)

// Dispatcher executes the pending action requests of one assistant
// message, strictly in order, against the connection's current page.
// Each batch produces exactly one aggregated action-result message
// carrying one correlated output per request.
type Dispatcher struct {
	settle    time.Duration
	functions map[string]FunctionHandler
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSettleDelay overrides the post-action settle delay.
func WithSettleDelay(delay time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.settle = delay
	}
}

// NewDispatcher creates a dispatcher with the built-in function
// registry (go_to_url, get_current_url).
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		settle: DefaultSettleDelay,
		functions: map[string]FunctionHandler{
			"go_to_url":       goToURL,
			"get_current_url": getCurrentURL,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RegisterFunction adds a named capability to the registry.
func (d *Dispatcher) RegisterFunction(name string, handler FunctionHandler) {
	d.functions[name] = handler
}

// Execute runs every pending action of the assistant message in order
// and returns the aggregated action-result message. Actions never run
// concurrently: each completes, settles, and (for computer calls) is
// screenshotted before the next begins, because actions in one batch
// may be causally dependent.
//
// A function call with an unrecognized name fails that call only; its
// error is surfaced as a correlated output so the model can react.
// Driver failures abort the batch and propagate to the caller, which
// owns retry policy.
func (d *Dispatcher) Execute(ctx context.Context, conn *Connection, assistant *types.Message) (*types.Message, error) {
	if !assistant.HasPendingActions() {
		return nil, fmt.Errorf("%w: dispatcher invoked with no pending action requests", types.ErrProtocolViolation)
	}

	batchID := uuid.NewString()
	browserLog.Debugf("batch %s: executing %d actions", batchID, len(assistant.Actions))

	outputs := make([]types.ActionOutput, 0, len(assistant.Actions))

	for _, action := range assistant.Actions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Re-read the current page each step: a prior action may have
		// opened a new surface that replaced it.
		page := conn.CurrentPage()

		switch action.Kind {
		case types.ActionComputerCall:
			out, err := d.executeComputerCall(ctx, page, action)
			if err != nil {
				return nil, fmt.Errorf("batch %s, call %s (%s): %w", batchID, action.CallID, action.Computer.Type, err)
			}
			outputs = append(outputs, out)

		case types.ActionFunctionCall:
			outputs = append(outputs, d.executeFunctionCall(ctx, conn, action))
			if err := d.settleWait(ctx); err != nil {
				return nil, err
			}
		}
	}

	browserLog.Debugf("batch %s: %d outputs", batchID, len(outputs))
	return types.NewToolMessage(outputs), nil
}

// executeComputerCall applies one pointer/keyboard primitive, waits
// the settle delay, then captures the result screenshot.
func (d *Dispatcher) executeComputerCall(ctx context.Context, page Page, action types.ActionRequest) (types.ActionOutput, error) {
	if err := d.applyComputerAction(page, action.Computer); err != nil {
		return types.ActionOutput{}, err
	}

	if err := d.settleWait(ctx); err != nil {
		return types.ActionOutput{}, err
	}

	shot, err := ScreenshotDataURL(page)
	if err != nil {
		return types.ActionOutput{}, err
	}

	return types.ActionOutput{
		CallID:        action.CallID,
		Kind:          types.ActionComputerCall,
		ScreenshotURL: shot,
	}, nil
}

// executeFunctionCall dispatches one named capability. Failures are
// localized: the error text becomes the correlated output and the
// batch continues.
func (d *Dispatcher) executeFunctionCall(ctx context.Context, conn *Connection, action types.ActionRequest) types.ActionOutput {
	out := types.ActionOutput{
		CallID: action.CallID,
		Kind:   types.ActionFunctionCall,
	}

	handler, ok := d.functions[action.Name]
	if !ok {
		browserLog.Warnf("call %s: %v: %s", action.CallID, types.ErrUnrecognizedAction, action.Name)
		out.IsError = true
		out.Text = fmt.Sprintf("unrecognized function: %s", action.Name)
		return out
	}

	result, err := handler(ctx, conn, action.Arguments)
	if err != nil {
		browserLog.Warnf("call %s: function %s failed: %v", action.CallID, action.Name, err)
		out.IsError = true
		out.Text = fmt.Sprintf("function %s failed: %v", action.Name, err)
		return out
	}

	out.Text = result
	return out
}

// applyComputerAction translates one typed primitive into driver
// commands.
func (d *Dispatcher) applyComputerAction(page Page, action types.ComputerAction) error {
	switch action.Type {
	case "click":
		switch action.Button {
		case "back":
			return page.Back()
		case "forward":
			return page.Forward()
		default:
			return page.Click(action.X, action.Y, action.Button)
		}
	case "double_click":
		return page.DoubleClick(action.X, action.Y)
	case "move":
		return page.Move(action.X, action.Y)
	case "drag":
		return page.Drag(action.Path)
	case "keypress":
		return page.Press(action.Keys)
	case "type":
		return page.Type(action.Text)
	case "scroll":
		return page.Scroll(action.X, action.Y, action.ScrollX, action.ScrollY)
	case "wait", "screenshot":
		// The unconditional post-action settle and screenshot already
		// provide the pause and the capture.
		return nil
	default:
		return fmt.Errorf("unsupported computer action type: %s", action.Type)
	}
}

// settleWait pauses for the settle delay, honoring cancellation.
func (d *Dispatcher) settleWait(ctx context.Context) error {
	timer := time.NewTimer(d.settle)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// goToURL navigates the current page and reports the resulting URL.
func goToURL(ctx context.Context, conn *Connection, arguments string) (string, error) {
	var args struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if args.URL == "" {
		return "", fmt.Errorf("url is required")
	}

	page := conn.CurrentPage()
	if err := page.Goto(args.URL); err != nil {
		return "", err
	}

	return urlPayload(conn.CurrentPage().URL())
}

// getCurrentURL reports the current page URL without side effects.
func getCurrentURL(ctx context.Context, conn *Connection, arguments string) (string, error) {
	return urlPayload(conn.CurrentPage().URL())
}

func urlPayload(url string) (string, error) {
	payload, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
