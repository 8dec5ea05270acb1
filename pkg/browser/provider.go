// Package browser manages the remotely hosted browser session: the
// session-provider clients, the lazy CDP connection bound to one
// session, and the dispatcher executing model-requested actions
// against the current page.
package browser

import "context"

// Session identifies one remotely hosted browser instance. The control
// endpoint accepts a CDP connection; the live-view endpoint is a
// human-observable URL emitted once per run so an operator can watch
// the agent act.
type Session struct {
	ID          string
	WSEndpoint  string
	LiveViewURL string
}

// CreateOptions size a new session's display. Pointer coordinates
// reported by the model are only valid against this resolution, so the
// viewport is pinned to the same values when the connection is bound.
// Environment names the machine flavor ("web", "ubuntu" or "windows")
// for providers that offer more than a browser.
type CreateOptions struct {
	Width         int
	Height        int
	SolveCaptchas bool
	Environment   string
}

// Provider creates or resumes remote browser sessions. Implementations
// are reachable with a bearer credential; a missing credential is a
// fatal configuration error at construction time, before any session
// exists. Session destruction is the provider's responsibility, not
// the agent's.
type Provider interface {
	// Name identifies the provider in logs and errors.
	Name() string

	// Create starts a new session sized to opts.
	Create(ctx context.Context, opts CreateOptions) (*Session, error)

	// Resume fetches an existing session by its opaque id.
	Resume(ctx context.Context, id string) (*Session, error)
}
