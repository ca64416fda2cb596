package event

import (
	"encoding/json"
	"testing"
)

func TestUserContentString(t *testing.T) {
	var c UserContent
	if err := json.Unmarshal([]byte(`"hello world"`), &c); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	text, ok := c.AsText()
	if !ok || text != "hello world" {
		t.Fatalf("unexpected content: %q ok=%v", text, ok)
	}

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	if string(out) != `"hello world"` {
		t.Fatalf("string content did not round-trip: %s", out)
	}
}

func TestUserContentBlocks(t *testing.T) {
	data := `[{"type":"text","text":"a"},{"type":"text","text":"b"}]`
	var c UserContent
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if _, ok := c.AsText(); ok {
		t.Fatal("block content reported as string")
	}
	if len(c.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(c.Blocks))
	}

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	var c2 UserContent
	if err := json.Unmarshal(out, &c2); err != nil {
		t.Fatalf("re-unmarshal returned error: %v", err)
	}
	if len(c2.Blocks) != 2 {
		t.Fatalf("blocks did not round-trip: %s", out)
	}
}

func TestUserContentInvalid(t *testing.T) {
	var c UserContent
	if err := json.Unmarshal([]byte(`{"neither":"shape"}`), &c); err == nil {
		t.Fatal("expected error for content that is neither string nor block list")
	}
}

func TestContentBlockUnknownType(t *testing.T) {
	data := `{"type":"server_tool_use","id":"stu_1","extra":{"a":1}}`

	var b ContentBlock
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		t.Fatalf("unknown block type must not fail decoding: %v", err)
	}
	if b.Type != "server_tool_use" {
		t.Fatalf("unexpected block type: %s", b.Type)
	}
	if string(b.Raw) != data {
		t.Fatalf("raw bytes not retained: %s", b.Raw)
	}

	out, err := json.Marshal(&b)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	if string(out) != data {
		t.Fatalf("unknown block did not round-trip: %s", out)
	}
}

func TestContentBlockToolUseInput(t *testing.T) {
	data := `{"type":"tool_use","id":"tu_1","name":"Edit","input":{"file_path":"/tmp/x","old":"a","new":"b"}}`

	var b ContentBlock
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if b.ToolUse == nil {
		t.Fatal("ToolUse payload not set")
	}

	var input map[string]any
	if err := json.Unmarshal(b.ToolUse.Input, &input); err != nil {
		t.Fatalf("input not retained as JSON: %v", err)
	}
	if input["file_path"] != "/tmp/x" {
		t.Fatalf("unexpected input: %v", input)
	}
}

func TestContentBlockToolResultIsError(t *testing.T) {
	var b ContentBlock
	if err := json.Unmarshal([]byte(`{"type":"tool_result","tool_use_id":"tu_2","content":"boom","is_error":true}`), &b); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if b.ToolResult == nil || b.ToolResult.IsError == nil || !*b.ToolResult.IsError {
		t.Fatalf("is_error not decoded: %+v", b.ToolResult)
	}

	out, err := json.Marshal(&b)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	var b2 ContentBlock
	if err := json.Unmarshal(out, &b2); err != nil {
		t.Fatalf("re-unmarshal returned error: %v", err)
	}
	if b2.ToolResult.IsError == nil || !*b2.ToolResult.IsError {
		t.Fatalf("is_error lost in round-trip: %s", out)
	}
}
