package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/entrhq/cua/pkg/types"
)

// DefaultHyperbrowserBaseURL is the Hyperbrowser API base URL.
const DefaultHyperbrowserBaseURL = "https://api.hyperbrowser.ai"

// HyperbrowserClient talks to the Hyperbrowser session API. Requests
// are plain JSON over HTTP with the API key in the x-api-key header.
type HyperbrowserClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// HyperbrowserOption configures a HyperbrowserClient.
type HyperbrowserOption func(*HyperbrowserClient)

// WithHyperbrowserBaseURL overrides the API base URL.
func WithHyperbrowserBaseURL(baseURL string) HyperbrowserOption {
	return func(c *HyperbrowserClient) {
		c.baseURL = baseURL
	}
}

// WithHyperbrowserHTTPClient overrides the HTTP client.
func WithHyperbrowserHTTPClient(client *http.Client) HyperbrowserOption {
	return func(c *HyperbrowserClient) {
		c.httpClient = client
	}
}

// NewHyperbrowserClient creates a Hyperbrowser session client. If
// apiKey is empty it falls back to the HYPERBROWSER_API_KEY environment
// variable; a missing key is a fatal configuration error.
func NewHyperbrowserClient(apiKey string, opts ...HyperbrowserOption) (*HyperbrowserClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("HYPERBROWSER_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: Hyperbrowser API key not provided (set HYPERBROWSER_API_KEY or pass one explicitly)", types.ErrConfiguration)
	}

	c := &HyperbrowserClient{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    DefaultHyperbrowserBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Name identifies the provider.
func (c *HyperbrowserClient) Name() string {
	return "hyperbrowser"
}

// hyperbrowserSession is the wire shape of a session detail.
type hyperbrowserSession struct {
	ID         string `json:"id"`
	WSEndpoint string `json:"wsEndpoint"`
	LiveURL    string `json:"liveUrl"`
}

// Create starts a new session with captcha solving and the given
// screen size.
func (c *HyperbrowserClient) Create(ctx context.Context, opts CreateOptions) (*Session, error) {
	body := map[string]any{
		"solveCaptchas": opts.SolveCaptchas,
		"screen": map[string]int{
			"width":  opts.Width,
			"height": opts.Height,
		},
	}

	var sess hyperbrowserSession
	if err := c.do(ctx, http.MethodPost, "/api/session", body, &sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sessionFromHyperbrowser(sess), nil
}

// Resume fetches an existing session by id.
func (c *HyperbrowserClient) Resume(ctx context.Context, id string) (*Session, error) {
	var sess hyperbrowserSession
	if err := c.do(ctx, http.MethodGet, "/api/session/"+id, nil, &sess); err != nil {
		return nil, fmt.Errorf("resume session %s: %w", id, err)
	}
	return sessionFromHyperbrowser(sess), nil
}

func sessionFromHyperbrowser(sess hyperbrowserSession) *Session {
	return &Session{
		ID:          sess.ID,
		WSEndpoint:  sess.WSEndpoint,
		LiveViewURL: sess.LiveURL,
	}
}

// do sends one JSON request and decodes the JSON reply into out.
func (c *HyperbrowserClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(detail))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
