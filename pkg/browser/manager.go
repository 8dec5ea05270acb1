package browser

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/cua/pkg/logging"
)

var browserLog *logging.Logger

func init() {
	browserLog, _ = logging.NewLogger("browser")
}

// Connection is a live driver binding to one session. It owns at most
// one current page at a time; when the remote side opens a new page
// (navigation target or popup) the tracked reference is replaced so
// subsequent commands target the new surface transparently.
type Connection struct {
	browser playwright.Browser

	mu   sync.Mutex
	page Page
}

// NewConnection builds a connection around an already-bound browser
// handle and its current page. The browser handle may be nil in tests.
func NewConnection(b playwright.Browser, page Page) *Connection {
	return &Connection{browser: b, page: page}
}

// CurrentPage returns the page commands should target right now.
func (c *Connection) CurrentPage() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// SetCurrentPage replaces the tracked page reference. Called when the
// remote context reports a newly opened page.
func (c *Connection) SetCurrentPage(page Page) {
	c.mu.Lock()
	c.page = page
	c.mu.Unlock()
}

// Manager lazily acquires a remote session and binds a CDP connection
// to it. Acquisition is driven by the turn state: once a run holds a
// session/connection pair the manager is not consulted again, so each
// run owns exactly one remote browser.
type Manager struct {
	provider      Provider
	width         int
	height        int
	solveCaptchas bool
	environment   string

	mu          sync.Mutex
	pw          *playwright.Playwright
	initialized bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithDisplaySize sets the session screen size and the viewport pinned
// onto the bound page. Defaults to 1024x800.
func WithDisplaySize(width, height int) ManagerOption {
	return func(m *Manager) {
		m.width = width
		m.height = height
	}
}

// WithCaptchaSolving toggles provider-side captcha handling for new
// sessions. Enabled by default.
func WithCaptchaSolving(enabled bool) ManagerOption {
	return func(m *Manager) {
		m.solveCaptchas = enabled
	}
}

// WithEnvironment selects the machine flavor for new sessions on
// providers that offer more than a browser. Defaults to "web".
func WithEnvironment(environment string) ManagerOption {
	return func(m *Manager) {
		m.environment = environment
	}
}

// NewManager creates a session manager on the given provider.
func NewManager(provider Provider, opts ...ManagerOption) *Manager {
	m := &Manager{
		provider:      provider,
		width:         1024,
		height:        800,
		solveCaptchas: true,
		environment:   "web",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DisplaySize returns the fixed resolution sessions are created with.
func (m *Manager) DisplaySize() (width, height int) {
	return m.width, m.height
}

// ensurePlaywright starts the Playwright driver once per manager. Only
// the driver is installed; the browser itself runs remotely.
func (m *Manager) ensurePlaywright() (*playwright.Playwright, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return m.pw, nil
	}

	opts := &playwright.RunOptions{
		SkipInstallBrowsers: true,
		Verbose:             false,
		Stdout:              io.Discard,
		Stderr:              io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return nil, fmt.Errorf("failed to install playwright driver: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	m.pw = pw
	m.initialized = true
	return pw, nil
}

// Acquire resumes the session identified by sessionID, or creates a
// new one when sessionID is empty, and binds a CDP connection to it.
// The current page starts as the first page of the first browsing
// context, and the viewport is pinned to the manager's display size so
// model pointer coordinates stay valid against the remote surface.
func (m *Manager) Acquire(ctx context.Context, sessionID string) (*Session, *Connection, error) {
	var (
		session *Session
		err     error
	)

	if sessionID != "" {
		session, err = m.provider.Resume(ctx, sessionID)
	} else {
		session, err = m.provider.Create(ctx, CreateOptions{
			Width:         m.width,
			Height:        m.height,
			SolveCaptchas: m.solveCaptchas,
			Environment:   m.environment,
		})
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s session: %w", m.provider.Name(), err)
	}

	pw, err := m.ensurePlaywright()
	if err != nil {
		return nil, nil, err
	}

	b, err := pw.Chromium.ConnectOverCDP(keepAliveEndpoint(session.WSEndpoint))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to session %s: %w", session.ID, err)
	}

	contexts := b.Contexts()
	if len(contexts) == 0 || len(contexts[0].Pages()) == 0 {
		return nil, nil, fmt.Errorf("session %s exposes no open page", session.ID)
	}

	conn := NewConnection(b, NewPage(contexts[0].Pages()[0]))

	// Popups and navigation-created targets replace the current page.
	contexts[0].OnPage(func(page playwright.Page) {
		browserLog.Infof("new page opened: %s", page.URL())
		conn.SetCurrentPage(NewPage(page))
	})

	if err := conn.CurrentPage().SetViewportSize(m.width, m.height); err != nil {
		return nil, nil, fmt.Errorf("failed to set viewport: %w", err)
	}

	browserLog.Infof("connected to %s session %s", m.provider.Name(), session.ID)
	return session, conn, nil
}

// keepAliveEndpoint asks the remote side to keep the browser running
// across reconnects.
func keepAliveEndpoint(wsEndpoint string) string {
	if strings.Contains(wsEndpoint, "?") {
		return wsEndpoint + "&keepAlive=true"
	}
	return wsEndpoint + "?keepAlive=true"
}
