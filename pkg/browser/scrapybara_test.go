package browser

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/cua/pkg/types"
)

func TestNewScrapybaraClientRequiresKey(t *testing.T) {
	t.Setenv("SCRAPYBARA_API_KEY", "")

	_, err := NewScrapybaraClient("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfiguration))
}

func TestScrapybaraCreate(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/start", r.URL.Path)
		assert.Equal(t, "sb-key", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]string{
			"id":         "inst_123",
			"cdp_url":    "wss://instance.scrapybara.com/cdp",
			"stream_url": "https://scrapybara.com/stream/inst_123",
		})
	}))
	defer server.Close()

	client, err := NewScrapybaraClient("sb-key", WithScrapybaraBaseURL(server.URL))
	require.NoError(t, err)

	session, err := client.Create(context.Background(), CreateOptions{Environment: "web"})
	require.NoError(t, err)

	assert.Equal(t, "inst_123", session.ID)
	assert.Equal(t, "wss://instance.scrapybara.com/cdp", session.WSEndpoint)
	assert.Equal(t, "https://scrapybara.com/stream/inst_123", session.LiveViewURL)
	assert.Equal(t, "browser", gotBody["instance_type"])
}

func TestScrapybaraResume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/instance/inst_123", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]string{
			"id":      "inst_123",
			"cdp_url": "wss://instance.scrapybara.com/cdp",
		})
	}))
	defer server.Close()

	client, err := NewScrapybaraClient("sb-key", WithScrapybaraBaseURL(server.URL))
	require.NoError(t, err)

	session, err := client.Resume(context.Background(), "inst_123")
	require.NoError(t, err)
	assert.Equal(t, "inst_123", session.ID)
}

func TestScrapybaraInstanceType(t *testing.T) {
	tests := []struct {
		environment string
		expected    string
	}{
		{"web", "browser"},
		{"ubuntu", "ubuntu"},
		{"windows", "windows"},
		{"", "browser"},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			assert.Equal(t, tt.expected, instanceType(tt.environment))
		})
	}
}
