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

func TestNewHyperbrowserClientRequiresKey(t *testing.T) {
	t.Setenv("HYPERBROWSER_API_KEY", "")

	_, err := NewHyperbrowserClient("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfiguration))
}

func TestNewHyperbrowserClientEnvFallback(t *testing.T) {
	t.Setenv("HYPERBROWSER_API_KEY", "hb-env-key")

	client, err := NewHyperbrowserClient("")
	require.NoError(t, err)
	assert.Equal(t, "hyperbrowser", client.Name())
}

func TestHyperbrowserCreate(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/session", r.URL.Path)
		assert.Equal(t, "hb-key", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"id":         "sess_abc",
			"wsEndpoint": "wss://connect.hyperbrowser.ai/session?token=xyz",
			"liveUrl":    "https://app.hyperbrowser.ai/live/sess_abc",
		})
	}))
	defer server.Close()

	client, err := NewHyperbrowserClient("hb-key", WithHyperbrowserBaseURL(server.URL))
	require.NoError(t, err)

	session, err := client.Create(context.Background(), CreateOptions{
		Width:         1024,
		Height:        800,
		SolveCaptchas: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "sess_abc", session.ID)
	assert.Equal(t, "wss://connect.hyperbrowser.ai/session?token=xyz", session.WSEndpoint)
	assert.Equal(t, "https://app.hyperbrowser.ai/live/sess_abc", session.LiveViewURL)

	assert.Equal(t, true, gotBody["solveCaptchas"])
	screen, ok := gotBody["screen"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1024), screen["width"])
	assert.Equal(t, float64(800), screen["height"])
}

func TestHyperbrowserResume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/session/sess_abc", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]string{
			"id":         "sess_abc",
			"wsEndpoint": "wss://connect.hyperbrowser.ai/session?token=xyz",
			"liveUrl":    "https://app.hyperbrowser.ai/live/sess_abc",
		})
	}))
	defer server.Close()

	client, err := NewHyperbrowserClient("hb-key", WithHyperbrowserBaseURL(server.URL))
	require.NoError(t, err)

	session, err := client.Resume(context.Background(), "sess_abc")
	require.NoError(t, err)
	assert.Equal(t, "sess_abc", session.ID)
}

func TestHyperbrowserCreateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewHyperbrowserClient("bad-key", WithHyperbrowserBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Create(context.Background(), CreateOptions{Width: 1024, Height: 800})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestKeepAliveEndpoint(t *testing.T) {
	assert.Equal(t,
		"wss://host/session?keepAlive=true",
		keepAliveEndpoint("wss://host/session"))
	assert.Equal(t,
		"wss://host/session?token=xyz&keepAlive=true",
		keepAliveEndpoint("wss://host/session?token=xyz"))
}
