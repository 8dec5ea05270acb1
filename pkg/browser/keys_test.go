package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"ENTER", "Enter"},
		{"Return", "Enter"},
		{"esc", "Escape"},
		{"CTRL", "Control"},
		{"cmd", "Meta"},
		{"WIN", "Meta"},
		{"SPACE", " "},
		{"down", "ArrowDown"},
		{"a", "a"},
		{"A", "A"},
		{"f5", "F5"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeKey(tt.key))
		})
	}
}

func TestChord(t *testing.T) {
	assert.Equal(t, "Control+a", chord([]string{"CTRL", "a"}))
	assert.Equal(t, "Control+Shift+Tab", chord([]string{"ctrl", "shift", "TAB"}))
	assert.Equal(t, "Enter", chord([]string{"ENTER"}))
}
