package openai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/cua/pkg/types"
)

func TestNewRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := New("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfiguration))
}

func TestNewEnvFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	backend, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, backend.model)
}

func TestNewOptions(t *testing.T) {
	backend, err := New("sk-test",
		WithModel("computer-use-preview-2025"),
		WithInstructions("be careful"),
		WithReasoning(true),
	)
	require.NoError(t, err)

	assert.Equal(t, "computer-use-preview-2025", backend.model)
	assert.Equal(t, "be careful", backend.instructions)
	assert.True(t, backend.reasoning)
}
