package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPendingActions(t *testing.T) {
	tests := []struct {
		name     string
		message  *Message
		expected bool
	}{
		{
			name:     "nil message",
			message:  nil,
			expected: false,
		},
		{
			name:     "assistant without actions",
			message:  &Message{Role: RoleAssistant, Parts: []Part{TextPart("done")}},
			expected: false,
		},
		{
			name: "assistant with computer call",
			message: &Message{
				Role:    RoleAssistant,
				Actions: []ActionRequest{{Kind: ActionComputerCall, CallID: "call_1"}},
			},
			expected: true,
		},
		{
			name: "actions on a non-assistant role are ignored",
			message: &Message{
				Role:    RoleUser,
				Actions: []ActionRequest{{Kind: ActionComputerCall, CallID: "call_1"}},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.message.HasPendingActions())
		})
	}
}

func TestMessageText(t *testing.T) {
	msg := &Message{
		Role: RoleAssistant,
		Parts: []Part{
			TextPart("hello"),
			ImagePart("data:image/png;base64,AAAA"),
			TextPart(" world"),
		},
	}

	assert.Equal(t, "hello world", msg.Text())
}

func TestLastMessage(t *testing.T) {
	assert.Nil(t, LastMessage(nil))

	first := NewUserMessage("go")
	second := NewToolMessage(nil)
	assert.Same(t, second, LastMessage([]*Message{first, second}))
}

func TestNewToolMessage(t *testing.T) {
	outputs := []ActionOutput{
		{CallID: "call_1", Kind: ActionComputerCall, ScreenshotURL: "data:image/png;base64,AAAA"},
		{CallID: "call_2", Kind: ActionFunctionCall, Text: `{"url":"https://example.com"}`},
	}

	msg := NewToolMessage(outputs)

	assert.Equal(t, RoleTool, msg.Role)
	assert.False(t, msg.HasPendingActions())
	assert.Equal(t, outputs, msg.Outputs)
}
