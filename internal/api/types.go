package api

import (
	"encoding/json"
	"time"
)

// Session is the remote session metadata record.
type Session struct {
	ID               string          `json:"id"`
	Title            string          `json:"title,omitempty"`
	SessionStatus    string          `json:"session_status,omitempty"`
	SessionType      string          `json:"type,omitempty"`
	CreatedAt        string          `json:"created_at,omitempty"`
	UpdatedAt        string          `json:"updated_at,omitempty"`
	EnvironmentID    string          `json:"environment_id,omitempty"`
	SessionContext   *SessionContext `json:"session_context,omitempty"`
	Metadata         json.RawMessage `json:"metadata,omitempty"`
	ActiveMountPaths []string        `json:"active_mount_paths,omitempty"`
}

// CreatedTime parses the session creation timestamp, returning the zero time
// when absent or unparseable.
func (s Session) CreatedTime() time.Time {
	if s.CreatedAt == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, s.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// SessionContext describes the environment the session ran in.
type SessionContext struct {
	Model            string           `json:"model,omitempty"`
	CWD              string           `json:"cwd,omitempty"`
	Sources          []SessionSource  `json:"sources,omitempty"`
	Outcomes         []SessionOutcome `json:"outcomes,omitempty"`
	AllowedTools     []string         `json:"allowed_tools,omitempty"`
	DisallowedTools  []string         `json:"disallowed_tools,omitempty"`
	KnowledgeBaseIDs []string         `json:"knowledge_base_ids,omitempty"`
}

// SessionSource references a repository the session was seeded from.
type SessionSource struct {
	SourceType string `json:"type,omitempty"`
	URL        string `json:"url,omitempty"`
	Revision   string `json:"revision,omitempty"`
}

// SessionOutcome records what the session produced.
type SessionOutcome struct {
	OutcomeType string   `json:"type,omitempty"`
	GitInfo     *GitInfo `json:"git_info,omitempty"`
}

// GitInfo describes a git outcome (pushed branches etc.).
type GitInfo struct {
	GitType  string   `json:"type,omitempty"`
	Repo     string   `json:"repo,omitempty"`
	Branches []string `json:"branches,omitempty"`
}

// SessionsListResponse is the /v1/sessions envelope.
type SessionsListResponse struct {
	Data []Session `json:"data"`
}

// Logline is the compact record shape served by the session_ingress endpoint.
// Fields the client has not mapped yet are captured in Extra and written back
// on marshal, so a round trip loses nothing.
type Logline struct {
	LogType         string          `json:"type,omitempty"`
	Subtype         string          `json:"subtype,omitempty"`
	Content         string          `json:"content,omitempty"`
	Timestamp       string          `json:"timestamp,omitempty"`
	GitBranch       string          `json:"gitBranch,omitempty"`
	SessionID       string          `json:"sessionId,omitempty"`
	CWD             string          `json:"cwd,omitempty"`
	Level           string          `json:"level,omitempty"`
	IsMeta          *bool           `json:"isMeta,omitempty"`
	IsSidechain     *bool           `json:"isSidechain,omitempty"`
	Slug            string          `json:"slug,omitempty"`
	CompactMetadata json.RawMessage `json:"compactMetadata,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var loglineKnownKeys = []string{
	"type", "subtype", "content", "timestamp", "gitBranch", "sessionId",
	"cwd", "level", "isMeta", "isSidechain", "slug", "compactMetadata",
}

type loglineAlias Logline

// UnmarshalJSON decodes the mapped fields and collects everything else into
// Extra.
func (l *Logline) UnmarshalJSON(data []byte) error {
	var known loglineAlias
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, key := range loglineKnownKeys {
		delete(fields, key)
	}
	if len(fields) > 0 {
		known.Extra = fields
	}

	*l = Logline(known)
	return nil
}

// MarshalJSON re-emits mapped fields alongside any captured extras.
func (l Logline) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(loglineAlias(l))
	if err != nil {
		return nil, err
	}
	if len(l.Extra) == 0 {
		return body, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	for key, value := range l.Extra {
		fields[key] = value
	}
	return json.Marshal(fields)
}

// IngressResponse is the session_ingress envelope.
type IngressResponse struct {
	Loglines []Logline `json:"loglines"`
}
