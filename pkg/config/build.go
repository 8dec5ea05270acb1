package config

import (
	"github.com/openai/openai-go/responses"

	"github.com/entrhq/cua/pkg/agent"
	"github.com/entrhq/cua/pkg/agent/prompts"
	"github.com/entrhq/cua/pkg/browser"
	"github.com/entrhq/cua/pkg/llm/openai"
)

// Stack is the assembled agent: everything needed to run tasks against
// one configured provider and model.
type Stack struct {
	Backend  *openai.Backend
	Sessions *browser.Manager
	Runner   *agent.Runner

	sessionID string
}

// NewRun seeds a turn state for one task. The state binds to the
// configured session id, or to a fresh session when none is set.
func (s *Stack) NewRun(task string) *agent.State {
	st := agent.NewState(prompts.InitialConversation(task)...)
	st.SessionID = s.sessionID
	return st
}

// Build assembles the run stack described by the configuration. The
// sink, which may be nil, receives the session's live-view URL once
// per run.
func Build(cfg *Config, sink agent.LiveViewSink) (*Stack, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	width, height := cfg.DisplayWidth, cfg.DisplayHeight
	if cfg.Provider == ProviderScrapybara {
		width, height = browser.ScrapybaraDisplayWidth, browser.ScrapybaraDisplayHeight
	}

	sessions := browser.NewManager(provider,
		browser.WithDisplaySize(width, height),
		browser.WithCaptchaSolving(cfg.solveCaptchas()),
		browser.WithEnvironment(cfg.Environment),
	)

	backend, err := buildBackend(cfg, width, height)
	if err != nil {
		return nil, err
	}

	invokerOpts := []agent.InvokerOption{
		agent.WithContinuity(!cfg.ZDREnabled),
		agent.WithLiveViewSink(sink),
	}
	invoker := agent.NewModelInvoker(backend, sessions, invokerOpts...)

	dispatcherOpts := []browser.DispatcherOption{}
	if cfg.SettleDelay > 0 {
		dispatcherOpts = append(dispatcherOpts, browser.WithSettleDelay(cfg.SettleDelay))
	}
	dispatcher := browser.NewDispatcher(dispatcherOpts...)

	runner := agent.NewRunner(invoker, dispatcher, agent.WithMaxCycles(cfg.MaxCycles))

	return &Stack{
		Backend:   backend,
		Sessions:  sessions,
		Runner:    runner,
		sessionID: cfg.SessionID,
	}, nil
}

// buildProvider creates the session-provider client named by the
// configuration.
func buildProvider(cfg *Config) (browser.Provider, error) {
	switch cfg.Provider {
	case ProviderScrapybara:
		return browser.NewScrapybaraClient(cfg.ScrapybaraAPIKey)
	default:
		return browser.NewHyperbrowserClient(cfg.HyperbrowserAPIKey)
	}
}

// buildBackend creates the model backend with a computer tool sized to
// the session display plus the named navigation helpers.
func buildBackend(cfg *Config, width, height int) (*openai.Backend, error) {
	env := openai.EnvironmentFor(cfg.Environment)
	tools := []responses.ToolUnionParam{
		openai.ComputerTool(width, height, env),
		openai.GoToURLTool(),
		openai.GetCurrentURLTool(),
	}

	instructions := cfg.SystemPrompt
	if instructions == "" {
		instructions = prompts.BrowserSystemPrompt
	}

	opts := []openai.Option{
		openai.WithInstructions(instructions),
		openai.WithTools(tools),
		openai.WithReasoning(cfg.reasoning()),
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}

	return openai.New(cfg.OpenAIAPIKey, opts...)
}
