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

// DefaultScrapybaraBaseURL is the Scrapybara API base URL.
const DefaultScrapybaraBaseURL = "https://api.scrapybara.com/v1"

// Scrapybara instances run at a fixed resolution that the API does not
// allow configuring. The computer tool must advertise the same size.
const (
	ScrapybaraDisplayWidth  = 1024
	ScrapybaraDisplayHeight = 768
)

// ScrapybaraClient talks to the Scrapybara browser-instance API.
type ScrapybaraClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// ScrapybaraOption configures a ScrapybaraClient.
type ScrapybaraOption func(*ScrapybaraClient)

// WithScrapybaraBaseURL overrides the API base URL.
func WithScrapybaraBaseURL(baseURL string) ScrapybaraOption {
	return func(c *ScrapybaraClient) {
		c.baseURL = baseURL
	}
}

// WithScrapybaraHTTPClient overrides the HTTP client.
func WithScrapybaraHTTPClient(client *http.Client) ScrapybaraOption {
	return func(c *ScrapybaraClient) {
		c.httpClient = client
	}
}

// NewScrapybaraClient creates a Scrapybara client. If apiKey is empty
// it falls back to the SCRAPYBARA_API_KEY environment variable; a
// missing key is a fatal configuration error.
func NewScrapybaraClient(apiKey string, opts ...ScrapybaraOption) (*ScrapybaraClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("SCRAPYBARA_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: Scrapybara API key not provided (set SCRAPYBARA_API_KEY or pass one explicitly)", types.ErrConfiguration)
	}

	c := &ScrapybaraClient{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    DefaultScrapybaraBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Name identifies the provider.
func (c *ScrapybaraClient) Name() string {
	return "scrapybara"
}

// scrapybaraInstance is the wire shape of a browser instance.
type scrapybaraInstance struct {
	ID        string `json:"id"`
	CDPURL    string `json:"cdp_url"`
	StreamURL string `json:"stream_url"`
}

// Create starts a new instance. The display size in opts is ignored:
// Scrapybara instances are fixed at 1024x768.
func (c *ScrapybaraClient) Create(ctx context.Context, opts CreateOptions) (*Session, error) {
	body := map[string]any{"instance_type": instanceType(opts.Environment)}

	var inst scrapybaraInstance
	if err := c.do(ctx, http.MethodPost, "/start", body, &inst); err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	return sessionFromScrapybara(inst), nil
}

// Resume fetches an existing browser instance by id.
func (c *ScrapybaraClient) Resume(ctx context.Context, id string) (*Session, error) {
	var inst scrapybaraInstance
	if err := c.do(ctx, http.MethodGet, "/instance/"+id, nil, &inst); err != nil {
		return nil, fmt.Errorf("resume instance %s: %w", id, err)
	}
	return sessionFromScrapybara(inst), nil
}

// instanceType maps the agent environment onto Scrapybara's machine
// flavors. The "web" environment is a bare hosted browser.
func instanceType(environment string) string {
	switch environment {
	case "ubuntu":
		return "ubuntu"
	case "windows":
		return "windows"
	default:
		return "browser"
	}
}

func sessionFromScrapybara(inst scrapybaraInstance) *Session {
	return &Session{
		ID:          inst.ID,
		WSEndpoint:  inst.CDPURL,
		LiveViewURL: inst.StreamURL,
	}
}

func (c *ScrapybaraClient) do(ctx context.Context, method, path string, body, out any) error {
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
