package types

import "errors"

// Sentinel errors classifying agent failures. Components wrap them with
// fmt.Errorf("%w: ...") so the message identifies the raising component
// and the state at the time; callers test them with errors.Is.
var (
	// ErrConfiguration marks a fatal startup problem: a missing
	// credential or an unknown provider. Never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrProtocolViolation marks a contract breach between components,
	// such as dispatching with no pending actions or a continuation
	// request with no resolvable response id. Never retried.
	ErrProtocolViolation = errors.New("protocol violation")

	// ErrUnrecognizedAction marks a function call whose name is not in
	// the dispatch registry. Localized to the single call: it surfaces
	// as an error output and does not abort the batch.
	ErrUnrecognizedAction = errors.New("unrecognized action")
)
