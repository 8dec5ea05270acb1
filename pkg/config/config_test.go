package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/cua/pkg/types"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ProviderHyperbrowser, cfg.Provider)
	assert.Equal(t, EnvironmentWeb, cfg.Environment)
	assert.Equal(t, 1024, cfg.DisplayWidth)
	assert.Equal(t, 800, cfg.DisplayHeight)
	assert.True(t, cfg.solveCaptchas())
	assert.True(t, cfg.reasoning())
	assert.False(t, cfg.ZDREnabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "scrapybara ubuntu",
			mutate: func(c *Config) { c.Provider = ProviderScrapybara; c.Environment = EnvironmentUbuntu },
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider = "browserbase" },
			wantErr: true,
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Environment = "macos" },
			wantErr: true,
		},
		{
			name:    "hyperbrowser only hosts web",
			mutate:  func(c *Config) { c.Environment = EnvironmentUbuntu },
			wantErr: true,
		},
		{
			name:    "zero display",
			mutate:  func(c *Config) { c.DisplayWidth = 0 },
			wantErr: true,
		},
		{
			name:    "negative settle delay",
			mutate:  func(c *Config) { c.SettleDelay = -time.Second },
			wantErr: true,
		},
		{
			name:    "negative max cycles",
			mutate:  func(c *Config) { c.MaxCycles = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, types.ErrConfiguration))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cua.yaml")
	content := `
provider: scrapybara
environment: ubuntu
model: computer-use-preview
zdr_enabled: true
max_cycles: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderScrapybara, cfg.Provider)
	assert.Equal(t, EnvironmentUbuntu, cfg.Environment)
	assert.True(t, cfg.ZDREnabled)
	assert.Equal(t, 50, cfg.MaxCycles)

	// File values overlay the defaults.
	assert.Equal(t, 1024, cfg.DisplayWidth)
	assert.Equal(t, 800, cfg.DisplayHeight)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OpenAIAPIKey = "sk-test"
	cfg.HyperbrowserAPIKey = "hb-test"
	cfg.SessionID = "sess_abc"

	stack, err := Build(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, stack.Backend)
	require.NotNil(t, stack.Sessions)
	require.NotNil(t, stack.Runner)

	width, height := stack.Sessions.DisplaySize()
	assert.Equal(t, 1024, width)
	assert.Equal(t, 800, height)

	st := stack.NewRun("find flights")
	assert.Equal(t, "sess_abc", st.SessionID)
	assert.Equal(t, "find flights", st.Last().Text())
}

func TestBuildScrapybaraFixedDisplay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderScrapybara
	cfg.DisplayWidth = 1920
	cfg.DisplayHeight = 1080
	cfg.OpenAIAPIKey = "sk-test"
	cfg.ScrapybaraAPIKey = "sb-test"

	stack, err := Build(cfg, nil)
	require.NoError(t, err)

	width, height := stack.Sessions.DisplaySize()
	assert.Equal(t, 1024, width)
	assert.Equal(t, 768, height)
}

func TestBuildInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "browserbase"

	_, err := Build(cfg, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfiguration))
}
