package types

// ActionKind distinguishes the two shapes of model-requested actions.
type ActionKind string

const (
	// ActionComputerCall is a pointer/keyboard primitive (click, type,
	// scroll, drag, keypress, ...) expressed with coordinates/payload.
	ActionComputerCall ActionKind = "computer_call"

	// ActionFunctionCall is a named capability (for example go_to_url)
	// invoked with JSON-encoded arguments.
	ActionFunctionCall ActionKind = "function_call"
)

// ActionRequest is a single action requested by the model. Kind selects
// which fields are meaningful: Computer for ActionComputerCall, Name
// and Arguments for ActionFunctionCall. CallID correlates the request
// with its eventual ActionOutput.
type ActionRequest struct {
	Kind   ActionKind
	CallID string

	// Computer holds the typed primitive for computer calls.
	Computer ComputerAction

	// Name and Arguments describe a function call. Arguments is the
	// raw JSON string as returned by the model.
	Name      string
	Arguments string
}

// ComputerAction is the typed payload of a pointer/keyboard primitive.
// Type selects which coordinate/payload fields apply.
type ComputerAction struct {
	// Type is one of: click, double_click, move, drag, keypress,
	// type, scroll, wait, screenshot.
	Type string

	// X, Y are viewport coordinates for click/double_click/move and
	// the anchor point for scroll.
	X float64
	Y float64

	// Button is the mouse button for click actions: left, right,
	// middle, wheel, back, forward.
	Button string

	// Text is the payload for type actions.
	Text string

	// Keys are the key names for keypress actions, pressed as a chord.
	Keys []string

	// ScrollX, ScrollY are the wheel deltas for scroll actions.
	ScrollX int
	ScrollY int

	// Path is the pointer trajectory for drag actions.
	Path []Point
}

// Point is a viewport coordinate pair.
type Point struct {
	X float64
	Y float64
}

// ActionOutput is the result of one executed action request, tagged
// with the originating call id. Computer calls produce a screenshot
// data URL; function calls produce text (a JSON payload, or an error
// description for unrecognized names).
type ActionOutput struct {
	CallID string
	Kind   ActionKind

	// ScreenshotURL is the post-action screenshot as a data URL,
	// set for computer calls.
	ScreenshotURL string

	// Text is the function result payload, set for function calls.
	Text string

	// IsError marks a localized per-call failure (for example an
	// unrecognized function name) surfaced back to the model.
	IsError bool
}

// NewToolMessage builds the aggregated action-result message for one
// executed batch.
func NewToolMessage(outputs []ActionOutput) *Message {
	return &Message{Role: RoleTool, Outputs: outputs}
}
