// Package tokenizer provides client-side token accounting for request
// logging, backed by tiktoken encodings.
package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/entrhq/cua/pkg/types"
)

// perMessageOverhead approximates the per-message framing tokens the
// API adds around each input message.
const perMessageOverhead = 4

// Tokenizer counts tokens with the encoding of a given model family.
type Tokenizer struct {
	encoding string
	once     sync.Once
	enc      *tiktoken.Tiktoken
	initErr  error
}

// New creates a tokenizer for the given model. Unknown models fall back
// to the o200k_base encoding used by the current OpenAI family.
func New(model string) (*Tokenizer, error) {
	encoding := "o200k_base"
	if enc, err := tiktoken.EncodingForModel(model); err == nil && enc != nil {
		return &Tokenizer{encoding: "", enc: enc}, nil
	}
	return &Tokenizer{encoding: encoding}, nil
}

// init lazily loads the encoding; first use may download its data.
func (t *Tokenizer) init() error {
	t.once.Do(func() {
		if t.enc != nil {
			return
		}
		enc, err := tiktoken.GetEncoding(t.encoding)
		if err != nil {
			t.initErr = fmt.Errorf("init tiktoken encoding %s: %w", t.encoding, err)
			return
		}
		t.enc = enc
	})
	return t.initErr
}

// CountTokens returns the token count of a text string, or 0 when the
// encoding is unavailable.
func (t *Tokenizer) CountTokens(text string) int {
	if err := t.init(); err != nil {
		return 0
	}
	return len(t.enc.Encode(text, nil, nil))
}

// CountMessagesTokens approximates the prompt tokens of a conversation
// slice. Image parts and screenshots are not counted; the result is a
// lower bound used for logging only.
func (t *Tokenizer) CountMessagesTokens(messages []*types.Message) int {
	total := 0
	for _, msg := range messages {
		total += perMessageOverhead
		total += t.CountTokens(msg.Text())
		for _, out := range msg.Outputs {
			total += t.CountTokens(out.Text)
		}
	}
	return total
}
