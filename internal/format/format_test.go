package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"remotelog/internal/api"
	"remotelog/internal/event"
)

func sampleSessions() []api.Session {
	return []api.Session{
		{
			ID:            "session_01QJaJSUgfY6khmFTzJaMqph",
			Title:         "Fix pagination bug",
			SessionStatus: "completed",
			CreatedAt:     "2025-06-15T10:00:00.000000Z",
			SessionContext: &api.SessionContext{
				Sources: []api.SessionSource{{SourceType: "github", URL: "https://github.com/acme/widgets", Revision: "main"}},
			},
		},
		{ID: "session_01AAaAAAaaA1aaaAAaAaAaaa", SessionStatus: "running"},
	}
}

func TestWriteSessionsPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSessions(&buf, sampleSessions(), true, "plain"); err != nil {
		t.Fatalf("WriteSessions returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "created\t") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "2025-06-15 10:00:00 UTC") {
		t.Fatalf("timestamp not normalized: %s", lines[1])
	}
	if !strings.Contains(lines[1], "https://github.com/acme/widgets") {
		t.Fatalf("repository missing: %s", lines[1])
	}
	if !strings.Contains(lines[2], "(untitled)") {
		t.Fatalf("untitled placeholder missing: %s", lines[2])
	}
}

func TestWriteSessionsPlainNoHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSessions(&buf, sampleSessions(), false, "plain"); err != nil {
		t.Fatalf("WriteSessions returned error: %v", err)
	}
	if strings.Contains(buf.String(), "session_id") {
		t.Fatalf("header should be omitted:\n%s", buf.String())
	}
}

func TestWriteSessionsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSessions(&buf, sampleSessions(), true, "json"); err != nil {
		t.Fatalf("WriteSessions returned error: %v", err)
	}

	var decoded []api.Session
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].ID != "session_01QJaJSUgfY6khmFTzJaMqph" {
		t.Fatalf("unexpected decoded sessions: %+v", decoded)
	}
}

func TestWriteSessionsJSONL(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSessions(&buf, sampleSessions(), true, "jsonl"); err != nil {
		t.Fatalf("WriteSessions returned error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSONL lines, got %d", len(lines))
	}
	for _, line := range lines {
		var s api.Session
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			t.Fatalf("invalid JSONL line %q: %v", line, err)
		}
	}
}

func TestWriteSessionsUnsupportedFormat(t *testing.T) {
	if err := WriteSessions(&bytes.Buffer{}, nil, true, "yaml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWriteSessionsTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSessions(&buf, nil, true, "table"); err != nil {
		t.Fatalf("WriteSessions returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "(no sessions)") {
		t.Fatalf("empty table placeholder missing:\n%s", buf.String())
	}
}

func TestWriteSessionDetail(t *testing.T) {
	var buf bytes.Buffer
	WriteSessionDetail(&buf, sampleSessions()[0])

	out := buf.String()
	for _, want := range []string{
		"ID: session_01QJaJSUgfY6khmFTzJaMqph",
		"Title: Fix pagination bug",
		"Status: completed",
		"Source: https://github.com/acme/widgets (main)",
		"Resume with: claude --teleport session_01QJaJSUgfY6khmFTzJaMqph",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail output missing %q:\n%s", want, out)
		}
	}
}

func mustEvent(t *testing.T, data string) event.SessionEvent {
	t.Helper()
	var e event.SessionEvent
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return e
}

func TestEventLabel(t *testing.T) {
	cases := []struct {
		data string
		want string
	}{
		{`{"type":"system"}`, "SYSTEM"},
		{`{"type":"user","message":{"content":"x"}}`, "USER"},
		{`{"type":"assistant","message":{"content":[]}}`, "ASSISTANT"},
		{`{"type":"tool_use_summary"}`, "SUMMARY"},
		{`{"type":"tool_progress"}`, "PROGRESS"},
		{`{"type":"result"}`, "RESULT"},
		{`{"type":"control_response"}`, "CONTROL"},
		{`{"type":"env_manager_log"}`, "ENV"},
		{`{"type":"whatever_else"}`, "UNKNOWN"},
	}
	for _, tc := range cases {
		e := mustEvent(t, tc.data)
		if got := EventLabel(&e); got != tc.want {
			t.Fatalf("EventLabel(%s) = %s, want %s", tc.data, got, tc.want)
		}
	}
}

func TestRenderEventLines(t *testing.T) {
	e := mustEvent(t, `{"type":"assistant","message":{"content":[
		{"type":"thinking","thinking":"let me look"},
		{"type":"text","text":"first line\nsecond line"},
		{"type":"tool_use","id":"t1","name":"Bash","input":{"command":"ls"}},
		{"type":"tool_result","tool_use_id":"t1","content":"a.txt"}
	]}}`)

	lines := RenderEventLines(&e)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %v", lines)
	}
	if !strings.HasPrefix(lines[0], "thinking: let me look") {
		t.Fatalf("unexpected thinking line: %s", lines[0])
	}
	if lines[1] != "first line" || lines[2] != "second line" {
		t.Fatalf("text block not split: %v", lines[1:3])
	}
	if !strings.Contains(lines[3], "tool_use: Bash") || !strings.Contains(lines[3], "command") {
		t.Fatalf("unexpected tool_use line: %s", lines[3])
	}
	if !strings.Contains(lines[4], "a.txt") {
		t.Fatalf("unexpected tool_result line: %s", lines[4])
	}
}

func TestRenderEventLinesResultErrors(t *testing.T) {
	e := mustEvent(t, `{"type":"result","duration_ms":4200,"errors":["tool timed out"]}`)
	lines := RenderEventLines(&e)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	if lines[0] != "duration=4s" {
		t.Fatalf("unexpected duration line: %s", lines[0])
	}
	if lines[1] != "error: tool timed out" {
		t.Fatalf("unexpected error line: %s", lines[1])
	}
}

func TestTruncateWideRunes(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Fatalf("short string must pass through, got %q", got)
	}
	got := Truncate(strings.Repeat("x", 300), 20)
	if len(got) != 20 {
		t.Fatalf("expected width 20, got %d (%q)", len(got), got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}

	wide := strings.Repeat("界", 30)
	if w := Truncate(wide, 20); !strings.HasSuffix(w, "...") {
		t.Fatalf("wide string not truncated: %q", w)
	}
}

func TestWriteSessionSummary(t *testing.T) {
	events := []event.SessionEvent{
		mustEvent(t, `{"type":"system","subtype":"init"}`),
		mustEvent(t, `{"type":"user","message":{"content":"please fix the bug"}}`),
		mustEvent(t, `{"type":"assistant","message":{"content":[{"type":"text","text":"on it"}]}}`),
		mustEvent(t, `{"type":"assistant","message":{"content":[{"type":"text","text":"done"}]}}`),
		mustEvent(t, `{"type":"tool_use_summary","summary":"Ran the test suite"}`),
		mustEvent(t, `{"type":"tool_use_summary","summary":"Edited two files"}`),
	}

	var buf bytes.Buffer
	WriteSessionSummary(&buf, events)
	out := buf.String()

	if !strings.Contains(out, "Session Summary (6 events)") {
		t.Fatalf("missing summary header:\n%s", out)
	}
	// Highest count first.
	assistantIdx := strings.Index(out, "assistant")
	systemIdx := strings.Index(out, "system")
	if assistantIdx == -1 || systemIdx == -1 || assistantIdx > systemIdx {
		t.Fatalf("histogram not sorted by count:\n%s", out)
	}
	if !strings.Contains(out, "├─ Ran the test suite") || !strings.Contains(out, "└─ Edited two files") {
		t.Fatalf("tool activity tree missing:\n%s", out)
	}
	if !strings.Contains(out, "- please fix the bug") {
		t.Fatalf("user preview missing:\n%s", out)
	}
}

func TestWriteLoglines(t *testing.T) {
	loglines := []api.Logline{
		{LogType: "progress", Subtype: "tool", Content: "cloning repository", Timestamp: "2025-06-15T10:00:00Z", GitBranch: "main"},
		{Content: strings.Repeat("a", 400)},
	}

	var buf bytes.Buffer
	WriteLoglines(&buf, loglines)
	out := buf.String()

	if !strings.Contains(out, "progress/tool") {
		t.Fatalf("type display missing:\n%s", out)
	}
	if !strings.Contains(out, "cloning repository") {
		t.Fatalf("content missing:\n%s", out)
	}
	if strings.Contains(out, strings.Repeat("a", 250)) {
		t.Fatalf("long content not truncated:\n%s", out)
	}
}
