package openai

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
)

// EnvironmentFor maps a session environment name to the Responses API
// computer-tool environment. "web" is the browser environment; ubuntu
// and windows pass through. Anything else defaults to browser.
func EnvironmentFor(env string) responses.ComputerToolEnvironment {
	switch env {
	case "ubuntu":
		return responses.ComputerToolEnvironmentUbuntu
	case "windows":
		return responses.ComputerToolEnvironmentWindows
	default:
		return responses.ComputerToolEnvironmentBrowser
	}
}

// ComputerTool builds the computer_use_preview tool sized to the fixed
// display resolution the session was created with. Coordinates in the
// model's pointer actions are only valid against this exact size.
func ComputerTool(width, height int, env responses.ComputerToolEnvironment) responses.ToolUnionParam {
	return responses.ToolUnionParam{
		OfComputerUsePreview: &responses.ComputerToolParam{
			DisplayWidth:  int64(width),
			DisplayHeight: int64(height),
			Environment:   env,
		},
	}
}

// GoToURLTool is the named navigation capability, used from a blank
// page where pointer actions have nothing to click.
func GoToURLTool() responses.ToolUnionParam {
	return responses.ToolUnionParam{
		OfFunction: &responses.FunctionToolParam{
			Name:        "go_to_url",
			Description: openai.String("Navigate to a URL. Can be used when on a blank page to go to a specific URL or search engine."),
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"url": map[string]any{
						"type":        "string",
						"description": "The fully qualified URL to navigate to",
					},
				},
				"required": []string{"url"},
			},
			Strict: openai.Bool(false),
		},
	}
}

// GetCurrentURLTool is the named capability returning the current page
// URL without side effects.
func GetCurrentURLTool() responses.ToolUnionParam {
	return responses.ToolUnionParam{
		OfFunction: &responses.FunctionToolParam{
			Name:        "get_current_url",
			Description: openai.String("Get the current URL"),
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
				"required":   []string{},
			},
			Strict: openai.Bool(false),
		},
	}
}
