// Package event models the transcript events returned by the Claude Code
// sessions API. The set of event kinds is open: kinds recognized here decode
// into typed payloads, anything else is retained verbatim so that new API
// event kinds never break decoding.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Known event kind discriminants (the wire "type" field).
const (
	KindSystem          = "system"
	KindUser            = "user"
	KindAssistant       = "assistant"
	KindToolUseSummary  = "tool_use_summary"
	KindToolProgress    = "tool_progress"
	KindResult          = "result"
	KindControlResponse = "control_response"
	KindEnvManagerLog   = "env_manager_log"
)

// MalformedEventError reports a payload that violates the expected shape of a
// known event kind. Unrecognized kinds never produce this error; they decode
// into the raw fallback instead.
type MalformedEventError struct {
	Kind string
	Err  error
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed %s event: %v", e.Kind, e.Err)
}

func (e *MalformedEventError) Unwrap() error { return e.Err }

// SessionEvent is one record in a session transcript. Exactly one payload
// field is set for known kinds; Raw holds the complete original record for
// unrecognized kinds.
type SessionEvent struct {
	Type string

	System          *SystemEvent
	User            *UserEvent
	Assistant       *AssistantEvent
	ToolUseSummary  *ToolUseSummaryEvent
	ToolProgress    *ToolProgressEvent
	Result          *ResultEvent
	ControlResponse *ControlResponseEvent
	EnvManagerLog   *EnvManagerLogEvent

	Raw json.RawMessage
}

// SystemEvent is the session init record.
type SystemEvent struct {
	CreatedAt      string            `json:"created_at,omitempty"`
	UUID           string            `json:"uuid,omitempty"`
	Subtype        string            `json:"subtype,omitempty"`
	SessionID      string            `json:"session_id,omitempty"`
	Model          string            `json:"model,omitempty"`
	CWD            string            `json:"cwd,omitempty"`
	Version        string            `json:"claude_code_version,omitempty"`
	Tools          []string          `json:"tools,omitempty"`
	Agents         []string          `json:"agents,omitempty"`
	Skills         []string          `json:"skills,omitempty"`
	SlashCommands  []string          `json:"slash_commands,omitempty"`
	MCPServers     []json.RawMessage `json:"mcp_servers,omitempty"`
	PermissionMode string            `json:"permissionMode,omitempty"`
	FastModeState  string            `json:"fast_mode_state,omitempty"`
	OutputStyle    string            `json:"output_style,omitempty"`
}

// UserEvent carries a user message. Message is required on the wire.
type UserEvent struct {
	CreatedAt       string       `json:"created_at,omitempty"`
	UUID            string       `json:"uuid,omitempty"`
	SessionID       string       `json:"session_id,omitempty"`
	Message         *UserMessage `json:"message"`
	ParentToolUseID string       `json:"parent_tool_use_id,omitempty"`
	IsReplay        *bool        `json:"isReplay,omitempty"`
}

// UserMessage wraps user content, which is ambiguous on the wire (plain
// string or a list of content blocks).
type UserMessage struct {
	Role    string      `json:"role,omitempty"`
	Content UserContent `json:"content"`
}

// AssistantEvent carries an assistant message. Message is required on the wire.
type AssistantEvent struct {
	CreatedAt string            `json:"created_at,omitempty"`
	UUID      string            `json:"uuid,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
	Message   *AssistantMessage `json:"message"`
}

// AssistantMessage holds the assistant's content blocks.
type AssistantMessage struct {
	Role    string         `json:"role,omitempty"`
	Content []ContentBlock `json:"content"`
}

// ToolUseSummaryEvent summarizes a run of preceding tool calls.
type ToolUseSummaryEvent struct {
	CreatedAt           string   `json:"created_at,omitempty"`
	UUID                string   `json:"uuid,omitempty"`
	SessionID           string   `json:"session_id,omitempty"`
	Summary             string   `json:"summary,omitempty"`
	PrecedingToolUseIDs []string `json:"preceding_tool_use_ids,omitempty"`
}

// ToolProgressEvent reports an in-flight tool invocation.
type ToolProgressEvent struct {
	CreatedAt          string `json:"created_at,omitempty"`
	UUID               string `json:"uuid,omitempty"`
	SessionID          string `json:"session_id,omitempty"`
	ToolName           string `json:"tool_name,omitempty"`
	ToolUseID          string `json:"tool_use_id,omitempty"`
	ParentToolUseID    string `json:"parent_tool_use_id,omitempty"`
	ElapsedTimeSeconds int    `json:"elapsed_time_seconds,omitempty"`
}

// ResultEvent terminates a turn with timing and error information.
type ResultEvent struct {
	CreatedAt     string   `json:"created_at,omitempty"`
	DurationMS    int64    `json:"duration_ms,omitempty"`
	DurationAPIMS int64    `json:"duration_api_ms,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}

// ControlResponseEvent acknowledges a control request.
type ControlResponseEvent struct {
	CreatedAt string           `json:"created_at,omitempty"`
	Response  *ControlResponse `json:"response,omitempty"`
}

// ControlResponse is the body of a control response.
type ControlResponse struct {
	Subtype string `json:"subtype,omitempty"`
}

// EnvManagerLogEvent carries environment manager output.
type EnvManagerLogEvent struct {
	CreatedAt string             `json:"created_at,omitempty"`
	UUID      string             `json:"uuid,omitempty"`
	Data      *EnvManagerLogData `json:"data,omitempty"`
}

// EnvManagerLogData is the structured body of an env manager log line.
type EnvManagerLogData struct {
	Category  string          `json:"category,omitempty"`
	Content   string          `json:"content,omitempty"`
	Level     string          `json:"level,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Extra     json.RawMessage `json:"extra,omitempty"`
}

// UnmarshalJSON dispatches on the "type" field. Known kinds decode strictly
// into their payload shape; a shape violation yields MalformedEventError.
// Any other kind succeeds and retains the full raw record.
func (e *SessionEvent) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	*e = SessionEvent{Type: probe.Type}

	var err error
	switch probe.Type {
	case KindSystem:
		e.System = &SystemEvent{}
		err = json.Unmarshal(data, e.System)
	case KindUser:
		e.User = &UserEvent{}
		err = json.Unmarshal(data, e.User)
		if err == nil && e.User.Message == nil {
			err = errors.New("missing message")
		}
	case KindAssistant:
		e.Assistant = &AssistantEvent{}
		err = json.Unmarshal(data, e.Assistant)
		if err == nil && e.Assistant.Message == nil {
			err = errors.New("missing message")
		}
	case KindToolUseSummary:
		e.ToolUseSummary = &ToolUseSummaryEvent{}
		err = json.Unmarshal(data, e.ToolUseSummary)
	case KindToolProgress:
		e.ToolProgress = &ToolProgressEvent{}
		err = json.Unmarshal(data, e.ToolProgress)
	case KindResult:
		e.Result = &ResultEvent{}
		err = json.Unmarshal(data, e.Result)
	case KindControlResponse:
		e.ControlResponse = &ControlResponseEvent{}
		err = json.Unmarshal(data, e.ControlResponse)
	case KindEnvManagerLog:
		e.EnvManagerLog = &EnvManagerLogEvent{}
		err = json.Unmarshal(data, e.EnvManagerLog)
	default:
		e.Raw = append(json.RawMessage(nil), data...)
		return nil
	}

	if err != nil {
		return &MalformedEventError{Kind: probe.Type, Err: err}
	}
	return nil
}

// MarshalJSON re-emits the event with its discriminant. Unknown events are
// written back byte-for-byte from the retained raw record.
func (e SessionEvent) MarshalJSON() ([]byte, error) {
	switch {
	case e.Raw != nil:
		return append([]byte(nil), e.Raw...), nil
	case e.System != nil:
		return marshalTagged(e.Type, e.System)
	case e.User != nil:
		return marshalTagged(e.Type, e.User)
	case e.Assistant != nil:
		return marshalTagged(e.Type, e.Assistant)
	case e.ToolUseSummary != nil:
		return marshalTagged(e.Type, e.ToolUseSummary)
	case e.ToolProgress != nil:
		return marshalTagged(e.Type, e.ToolProgress)
	case e.Result != nil:
		return marshalTagged(e.Type, e.Result)
	case e.ControlResponse != nil:
		return marshalTagged(e.Type, e.ControlResponse)
	case e.EnvManagerLog != nil:
		return marshalTagged(e.Type, e.EnvManagerLog)
	}
	return marshalTagged(e.Type, struct{}{})
}

// marshalTagged splices a "type" tag into the payload's JSON object.
func marshalTagged(kind string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	tag, err := json.Marshal(struct {
		Type string `json:"type"`
	}{kind})
	if err != nil {
		return nil, err
	}
	if string(body) == "{}" {
		return tag, nil
	}
	out := make([]byte, 0, len(tag)+len(body))
	out = append(out, tag[:len(tag)-1]...)
	out = append(out, ',')
	out = append(out, body[1:]...)
	return out, nil
}

// Kind returns the wire discriminant, including the raw label of
// unrecognized kinds.
func (e *SessionEvent) Kind() string { return e.Type }

// IsUnknown reports whether the event kind was not recognized at decode time.
func (e *SessionEvent) IsUnknown() bool { return e.Raw != nil }

// Timestamp returns the event creation time, or the zero time when the
// record carries none (or an unparseable one).
func (e *SessionEvent) Timestamp() time.Time {
	return parseTimestamp(e.createdAt())
}

func (e *SessionEvent) createdAt() string {
	switch {
	case e.System != nil:
		return e.System.CreatedAt
	case e.User != nil:
		return e.User.CreatedAt
	case e.Assistant != nil:
		return e.Assistant.CreatedAt
	case e.ToolUseSummary != nil:
		return e.ToolUseSummary.CreatedAt
	case e.ToolProgress != nil:
		return e.ToolProgress.CreatedAt
	case e.Result != nil:
		return e.Result.CreatedAt
	case e.ControlResponse != nil:
		return e.ControlResponse.CreatedAt
	case e.EnvManagerLog != nil:
		return e.EnvManagerLog.CreatedAt
	}
	return ""
}

// IsConversational reports whether the event belongs to the human-readable
// dialogue (system, user, assistant, result) as opposed to operational noise.
func (e *SessionEvent) IsConversational() bool {
	if e.IsUnknown() {
		return false
	}
	switch e.Type {
	case KindSystem, KindUser, KindAssistant, KindResult:
		return true
	}
	return false
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
