// Package openai implements the model backend on the OpenAI Responses
// API, driving the computer-use-preview model with a computer tool and
// optional named function tools.
package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"

	"github.com/entrhq/cua/pkg/llm"
	"github.com/entrhq/cua/pkg/llm/tokenizer"
	"github.com/entrhq/cua/pkg/logging"
	"github.com/entrhq/cua/pkg/types"
)

// DefaultModel is the computer-use model driven by this backend.
const DefaultModel = "computer-use-preview"

var backendLog *logging.Logger

func init() {
	backendLog, _ = logging.NewLogger("openai")
}

// Backend implements llm.Backend on the OpenAI Responses API.
type Backend struct {
	client       openai.Client
	model        string
	instructions string
	tools        []responses.ToolUnionParam
	reasoning    bool
	tokenizer    *tokenizer.Tokenizer
}

// Option configures a Backend.
type Option func(*Backend)

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(b *Backend) {
		b.model = model
	}
}

// WithInstructions sets the system instructions sent with every
// invocation.
func WithInstructions(instructions string) Option {
	return func(b *Backend) {
		b.instructions = instructions
	}
}

// WithTools sets the tool schema advertised to the model. At minimum
// this should include a computer tool sized to the session display.
func WithTools(tools []responses.ToolUnionParam) Option {
	return func(b *Backend) {
		b.tools = tools
	}
}

// WithReasoning enables medium-effort reasoning with concise summaries
// on each invocation.
func WithReasoning(enabled bool) Option {
	return func(b *Backend) {
		b.reasoning = enabled
	}
}

// New creates a Responses-API backend. If apiKey is empty it falls back
// to the OPENAI_API_KEY environment variable; a missing key is a fatal
// configuration error.
func New(apiKey string, opts ...Option) (*Backend, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required (set OPENAI_API_KEY or pass one explicitly)", types.ErrConfiguration)
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}

	b := &Backend{
		client: openai.NewClient(clientOpts...),
		model:  DefaultModel,
	}

	for _, opt := range opts {
		opt(b)
	}

	// Token accounting is best effort; the backend works without it.
	if tok, err := tokenizer.New(b.model); err == nil {
		b.tokenizer = tok
	}

	return b, nil
}

// Invoke sends one request to the Responses API and returns the reply
// as a single assistant message carrying the model's pending actions
// and the response id used for continuation chaining.
func (b *Backend) Invoke(ctx context.Context, req llm.Request) (*types.Message, error) {
	if len(req.Input) == 0 {
		return nil, fmt.Errorf("%w: model invoked with empty input", types.ErrProtocolViolation)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(b.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: buildInput(req.Input),
		},
		Tools:      b.tools,
		Truncation: responses.ResponseNewParamsTruncationAuto,
	}

	if b.instructions != "" {
		params.Instructions = openai.String(b.instructions)
	}
	if req.PreviousResponseID != "" {
		params.PreviousResponseID = openai.String(req.PreviousResponseID)
	}
	if b.reasoning {
		params.Reasoning = shared.ReasoningParam{
			Effort:  shared.ReasoningEffortMedium,
			Summary: shared.ReasoningSummaryConcise,
		}
	}

	if b.tokenizer != nil {
		backendLog.Debugf("invoking %s: %d input messages, ~%d prompt tokens, previous_response_id=%q",
			b.model, len(req.Input), b.tokenizer.CountMessagesTokens(req.Input), req.PreviousResponseID)
	}

	resp, err := b.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("responses request failed: %w", err)
	}

	msg := decodeResponse(resp)
	backendLog.Debugf("model reply %s: %d pending actions", resp.ID, len(msg.Actions))
	return msg, nil
}
