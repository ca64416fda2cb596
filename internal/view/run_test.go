package view

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"remotelog/internal/event"
)

func mustEvents(t *testing.T, docs ...string) []event.SessionEvent {
	t.Helper()
	events := make([]event.SessionEvent, len(docs))
	for i, doc := range docs {
		if err := json.Unmarshal([]byte(doc), &events[i]); err != nil {
			t.Fatalf("fixture %d: %v", i, err)
		}
	}
	return events
}

func transcript(t *testing.T) []event.SessionEvent {
	return mustEvents(t,
		`{"type":"system","subtype":"init","created_at":"2025-06-15T10:00:00Z","model":"claude-opus-4","cwd":"/w"}`,
		`{"type":"user","created_at":"2025-06-15T10:00:01Z","message":{"content":"run cargo test"}}`,
		`{"type":"tool_progress","created_at":"2025-06-15T10:00:02Z","tool_name":"Bash"}`,
		`{"type":"assistant","created_at":"2025-06-15T10:00:03Z","message":{"content":[{"type":"text","text":"all green"}]}}`,
		`{"type":"shiny_new_kind","created_at":"2025-06-15T10:00:04Z"}`,
	)
}

func TestRunRendersAllEvents(t *testing.T) {
	var buf bytes.Buffer
	err := Run(transcript(t), Options{Out: &buf, ForceNoColor: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Session Transcript (5 events)") {
		t.Fatalf("header missing:\n%s", out)
	}
	for _, want := range []string{"SYSTEM", "USER", "PROGRESS", "ASSISTANT", "UNKNOWN", "run cargo test", "all green"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("colors must be disabled for non-TTY output:\n%s", out)
	}
}

func TestRunConversationOnly(t *testing.T) {
	var buf bytes.Buffer
	err := Run(transcript(t), Options{Out: &buf, ConversationOnly: true, ForceNoColor: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Session Transcript (3 events - conversation only)") {
		t.Fatalf("header missing:\n%s", out)
	}
	if strings.Contains(out, "PROGRESS") || strings.Contains(out, "UNKNOWN") {
		t.Fatalf("non-conversational events leaked:\n%s", out)
	}
}

func TestRunSearch(t *testing.T) {
	var buf bytes.Buffer
	err := Run(transcript(t), Options{Out: &buf, Search: "CARGO", ForceNoColor: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `search: "CARGO"`) {
		t.Fatalf("header missing search label:\n%s", out)
	}
	if !strings.Contains(out, "USER") || strings.Contains(out, "ASSISTANT") {
		t.Fatalf("search filter wrong:\n%s", out)
	}
}

func TestRunKindFilter(t *testing.T) {
	var buf bytes.Buffer
	err := Run(transcript(t), Options{Out: &buf, Kind: "assistant", ForceNoColor: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "(1 events)") {
		t.Fatalf("kind filter wrong:\n%s", buf.String())
	}
}

func TestRunMaxShow(t *testing.T) {
	var buf bytes.Buffer
	err := Run(transcript(t), Options{Out: &buf, MaxShow: 2, ForceNoColor: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "(2 events)") {
		t.Fatalf("display limit not applied:\n%s", out)
	}
	if !strings.Contains(out, "SYSTEM") || !strings.Contains(out, "USER") || strings.Contains(out, "ASSISTANT") {
		t.Fatalf("display limit must keep the earliest events:\n%s", out)
	}
}

func TestRunForceColor(t *testing.T) {
	var buf bytes.Buffer
	err := Run(transcript(t), Options{Out: &buf, ForceColor: true})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("forced colors missing:\n%s", buf.String())
	}
}

func TestWrapLine(t *testing.T) {
	got := wrapLine("aaa bbb ccc ddd", 7)
	if len(got) != 2 || got[0] != "aaa bbb" || got[1] != "ccc ddd" {
		t.Fatalf("unexpected wrap: %v", got)
	}

	long := strings.Repeat("x", 50)
	if got := wrapLine(long, 10); len(got) != 1 || got[0] != long {
		t.Fatalf("unbroken text must not be split: %v", got)
	}

	if got := wrapLine("short", 80); len(got) != 1 {
		t.Fatalf("short line must pass through: %v", got)
	}
}

func TestDetermineWidth(t *testing.T) {
	t.Setenv("COLUMNS", "")
	var buf bytes.Buffer
	if got := determineWidth(&buf, 120); got != 120 {
		t.Fatalf("explicit wrap ignored: %d", got)
	}
	if got := determineWidth(&buf, 0); got != 80 {
		t.Fatalf("expected default width, got %d", got)
	}

	t.Setenv("COLUMNS", "100")
	if got := determineWidth(&buf, 0); got != 100 {
		t.Fatalf("COLUMNS ignored: %d", got)
	}
}
