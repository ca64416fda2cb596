package event

import (
	"encoding/json"
	"fmt"
)

// Known content block discriminants.
const (
	BlockThinking   = "thinking"
	BlockText       = "text"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// ContentBlock is one structured unit of a user or assistant message.
// Like SessionEvent, the set of block types is open: unrecognized types
// (signatures, redacted thinking, ...) are retained raw.
type ContentBlock struct {
	Type string

	Thinking   *ThinkingBlock
	Text       *TextBlock
	ToolUse    *ToolUseBlock
	ToolResult *ToolResultBlock

	Raw json.RawMessage
}

// ThinkingBlock holds internal reasoning text.
type ThinkingBlock struct {
	Thinking  string `json:"thinking,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// TextBlock holds visible text.
type TextBlock struct {
	Text string `json:"text,omitempty"`
}

// ToolUseBlock holds a tool invocation with its structured input.
type ToolUseBlock struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

// ToolResultBlock holds a tool's output.
type ToolResultBlock struct {
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
	IsError   *bool           `json:"is_error,omitempty"`
}

// UnmarshalJSON dispatches on the block "type" field with the same open-set
// policy as SessionEvent.
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	*b = ContentBlock{Type: probe.Type}

	switch probe.Type {
	case BlockThinking:
		b.Thinking = &ThinkingBlock{}
		return json.Unmarshal(data, b.Thinking)
	case BlockText:
		b.Text = &TextBlock{}
		return json.Unmarshal(data, b.Text)
	case BlockToolUse:
		b.ToolUse = &ToolUseBlock{}
		return json.Unmarshal(data, b.ToolUse)
	case BlockToolResult:
		b.ToolResult = &ToolResultBlock{}
		return json.Unmarshal(data, b.ToolResult)
	}

	b.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON re-emits the block with its discriminant; raw blocks verbatim.
func (b ContentBlock) MarshalJSON() ([]byte, error) {
	switch {
	case b.Raw != nil:
		return append([]byte(nil), b.Raw...), nil
	case b.Thinking != nil:
		return marshalTagged(b.Type, b.Thinking)
	case b.Text != nil:
		return marshalTagged(b.Type, b.Text)
	case b.ToolUse != nil:
		return marshalTagged(b.Type, b.ToolUse)
	case b.ToolResult != nil:
		return marshalTagged(b.Type, b.ToolResult)
	}
	return marshalTagged(b.Type, struct{}{})
}

// UserContent is the body of a user message. The wire shape carries no
// discriminator: it is either a plain string or a list of content blocks.
// Candidates are tried in a fixed order (string first, then blocks) and the
// first structural match wins; the two shapes can never both match the same
// input, so the order only decides which error surfaces.
type UserContent struct {
	Text   *string
	Blocks []ContentBlock
}

// UnmarshalJSON resolves the string-or-blocks ambiguity by trial.
func (c *UserContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = UserContent{Text: &s}
		return nil
	}

	var blocks []ContentBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return fmt.Errorf("content is neither a string nor a block list: %w", err)
	}
	*c = UserContent{Blocks: blocks}
	return nil
}

// MarshalJSON writes back whichever shape was decoded.
func (c UserContent) MarshalJSON() ([]byte, error) {
	if c.Text != nil {
		return json.Marshal(*c.Text)
	}
	return json.Marshal(c.Blocks)
}

// AsText returns the plain-string form of the content, if that is the shape
// that arrived on the wire.
func (c UserContent) AsText() (string, bool) {
	if c.Text != nil {
		return *c.Text, true
	}
	return "", false
}
