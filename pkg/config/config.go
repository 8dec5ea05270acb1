// Package config loads the agent configuration and assembles the full
// run stack from it: the model backend, the session manager, the
// action dispatcher and the run loop.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/cua/pkg/types"
)

// Provider names accepted by the configuration.
const (
	ProviderHyperbrowser = "hyperbrowser"
	ProviderScrapybara   = "scrapybara"
)

// Environment names accepted by the configuration.
const (
	EnvironmentWeb     = "web"
	EnvironmentUbuntu  = "ubuntu"
	EnvironmentWindows = "windows"
)

// Config describes one agent deployment. Zero values fall back to the
// defaults in DefaultConfig; CLI flags and environment variables
// override file values.
type Config struct {
	// Provider selects the session host: hyperbrowser or scrapybara.
	Provider string `yaml:"provider"`

	// Environment selects the machine flavor: web, ubuntu or windows.
	// Hyperbrowser supports web only.
	Environment string `yaml:"environment"`

	// Model is the computer-use model name.
	Model string `yaml:"model"`

	// DisplayWidth and DisplayHeight size new sessions. Scrapybara
	// ignores them and always runs at 1024x768.
	DisplayWidth  int `yaml:"display_width"`
	DisplayHeight int `yaml:"display_height"`

	// SessionID resumes an existing session instead of creating one.
	SessionID string `yaml:"session_id"`

	// ZDREnabled disables continuation-token chaining and resends the
	// full conversation on every invocation, for zero-data-retention
	// model deployments.
	ZDREnabled bool `yaml:"zdr_enabled"`

	// SystemPrompt replaces the built-in browser instructions.
	SystemPrompt string `yaml:"system_prompt"`

	// SolveCaptchas asks the provider to handle captchas in new
	// sessions, where supported.
	SolveCaptchas *bool `yaml:"solve_captchas"`

	// Reasoning enables medium-effort reasoning summaries from the
	// model.
	Reasoning *bool `yaml:"reasoning"`

	// SettleDelay is the pause after each action before the follow-up
	// screenshot is captured.
	SettleDelay time.Duration `yaml:"settle_delay"`

	// MaxCycles caps model invocations per run. Zero means no cap.
	MaxCycles int `yaml:"max_cycles"`

	// API credentials. Empty values fall back to the provider's
	// environment variable.
	OpenAIAPIKey       string `yaml:"openai_api_key"`
	HyperbrowserAPIKey string `yaml:"hyperbrowser_api_key"`
	ScrapybaraAPIKey   string `yaml:"scrapybara_api_key"`
}

// DefaultConfig returns the stock configuration: a Hyperbrowser web
// session at 1024x800 with captcha solving and reasoning enabled.
func DefaultConfig() *Config {
	solve := true
	reasoning := true
	return &Config{
		Provider:      ProviderHyperbrowser,
		Environment:   EnvironmentWeb,
		DisplayWidth:  1024,
		DisplayHeight: 800,
		SolveCaptchas: &solve,
		Reasoning:     &reasoning,
	}
}

// LoadFile reads a YAML configuration file over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations the stack cannot be built from.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderHyperbrowser, ProviderScrapybara:
	default:
		return fmt.Errorf("%w: unknown provider %q (must be %q or %q)",
			types.ErrConfiguration, c.Provider, ProviderHyperbrowser, ProviderScrapybara)
	}

	switch c.Environment {
	case EnvironmentWeb, EnvironmentUbuntu, EnvironmentWindows:
	default:
		return fmt.Errorf("%w: unknown environment %q (must be web, ubuntu or windows)",
			types.ErrConfiguration, c.Environment)
	}

	if c.Provider == ProviderHyperbrowser && c.Environment != EnvironmentWeb {
		return fmt.Errorf("%w: hyperbrowser only hosts the web environment", types.ErrConfiguration)
	}

	if c.DisplayWidth <= 0 || c.DisplayHeight <= 0 {
		return fmt.Errorf("%w: display size must be positive, got %dx%d",
			types.ErrConfiguration, c.DisplayWidth, c.DisplayHeight)
	}

	if c.SettleDelay < 0 {
		return fmt.Errorf("%w: settle delay cannot be negative", types.ErrConfiguration)
	}

	if c.MaxCycles < 0 {
		return fmt.Errorf("%w: max cycles cannot be negative", types.ErrConfiguration)
	}

	return nil
}

func (c *Config) solveCaptchas() bool {
	return c.SolveCaptchas == nil || *c.SolveCaptchas
}

func (c *Config) reasoning() bool {
	return c.Reasoning == nil || *c.Reasoning
}
