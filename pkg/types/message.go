// Package types defines the conversation data model shared across the
// agent: messages, content parts, and the action request/output unions
// exchanged with the computer-use model.
package types

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleSystem is the system prompt message.
	RoleSystem Role = "system"

	// RoleUser is a human-authored message.
	RoleUser Role = "user"

	// RoleAssistant is a model reply. Assistant messages may carry
	// pending action requests and a provider response id.
	RoleAssistant Role = "assistant"

	// RoleTool is an aggregated action-result message answering the
	// pending actions of the preceding assistant message.
	RoleTool Role = "tool"
)

// PartType identifies the kind of a message content part.
type PartType string

const (
	// PartText is a plain text content part.
	PartText PartType = "text"

	// PartImage is an image content part referenced by URL
	// (typically a base64 data URL holding a screenshot).
	PartImage PartType = "image"
)

// Part is one ordered content element of a message.
type Part struct {
	Type PartType

	// Text holds the content for PartText parts.
	Text string

	// ImageURL holds the image reference for PartImage parts.
	ImageURL string
}

// TextPart builds a text content part.
func TextPart(text string) Part {
	return Part{Type: PartText, Text: text}
}

// ImagePart builds an image content part from a URL or data URL.
func ImagePart(url string) Part {
	return Part{Type: PartImage, ImageURL: url}
}

// Message is one entry of the conversation. The Role field selects
// which of the optional fields are meaningful:
//
//   - RoleSystem / RoleUser: Parts only
//   - RoleAssistant: Parts, Actions, ResponseID
//   - RoleTool: Outputs only
type Message struct {
	Role  Role
	Parts []Part

	// Actions are the pending action requests of an assistant message.
	// An assistant message with zero actions terminates the run.
	Actions []ActionRequest

	// ResponseID is the provider continuation token attached to an
	// assistant message. Empty when the provider did not return one or
	// continuity is disabled.
	ResponseID string

	// Outputs are the correlated action results of a tool message,
	// one per executed action request, in execution order.
	Outputs []ActionOutput
}

// NewSystemMessage builds a system message with a single text part.
func NewSystemMessage(text string) *Message {
	return &Message{Role: RoleSystem, Parts: []Part{TextPart(text)}}
}

// NewUserMessage builds a user message with a single text part.
func NewUserMessage(text string) *Message {
	return &Message{Role: RoleUser, Parts: []Part{TextPart(text)}}
}

// Text concatenates the message's text parts.
func (m *Message) Text() string {
	var out string
	for _, p := range m.Parts {
		if p.Type == PartText {
			out += p.Text
		}
	}
	return out
}

// HasPendingActions reports whether the message carries at least one
// action request of either kind.
func (m *Message) HasPendingActions() bool {
	return m != nil && m.Role == RoleAssistant && len(m.Actions) > 0
}

// LastMessage returns the final message of the conversation, or nil
// when the conversation is empty.
func LastMessage(messages []*Message) *Message {
	if len(messages) == 0 {
		return nil
	}
	return messages[len(messages)-1]
}
