package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/cua/pkg/types"
)

func TestCountTokensEmpty(t *testing.T) {
	tok, err := New("computer-use-preview")
	require.NoError(t, err)

	assert.Equal(t, 0, tok.CountTokens(""))
}

func TestCountMessagesTokensOverhead(t *testing.T) {
	tok, err := New("computer-use-preview")
	require.NoError(t, err)

	assert.Equal(t, 0, tok.CountMessagesTokens(nil))

	// Each message carries at least the framing overhead, even when
	// the encoding itself is unavailable.
	messages := []*types.Message{
		types.NewUserMessage(""),
		types.NewToolMessage(nil),
	}
	assert.Equal(t, 2*perMessageOverhead, tok.CountMessagesTokens(messages))
}
