package openai

import (
	"testing"

	"github.com/openai/openai-go/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentFor(t *testing.T) {
	assert.Equal(t, responses.ComputerToolEnvironmentBrowser, EnvironmentFor("web"))
	assert.Equal(t, responses.ComputerToolEnvironmentUbuntu, EnvironmentFor("ubuntu"))
	assert.Equal(t, responses.ComputerToolEnvironmentWindows, EnvironmentFor("windows"))
	assert.Equal(t, responses.ComputerToolEnvironmentBrowser, EnvironmentFor(""))
}

func TestComputerTool(t *testing.T) {
	tool := ComputerTool(1024, 800, responses.ComputerToolEnvironmentBrowser)

	require.NotNil(t, tool.OfComputerUsePreview)
	assert.Equal(t, int64(1024), tool.OfComputerUsePreview.DisplayWidth)
	assert.Equal(t, int64(800), tool.OfComputerUsePreview.DisplayHeight)
	assert.Equal(t, responses.ComputerToolEnvironmentBrowser, tool.OfComputerUsePreview.Environment)
}

func TestFunctionTools(t *testing.T) {
	goTo := GoToURLTool()
	require.NotNil(t, goTo.OfFunction)
	assert.Equal(t, "go_to_url", goTo.OfFunction.Name)

	params, ok := goTo.OfFunction.Parameters["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, params, "url")

	current := GetCurrentURLTool()
	require.NotNil(t, current.OfFunction)
	assert.Equal(t, "get_current_url", current.OfFunction.Name)
}
