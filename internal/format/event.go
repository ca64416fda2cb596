package format

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"remotelog/internal/event"
)

const (
	thinkingPreviewWidth   = 200
	toolInputPreviewWidth  = 120
	toolResultPreviewWidth = 200
)

// EventLabel returns the uppercase display label for an event.
func EventLabel(e *event.SessionEvent) string {
	switch e.Kind() {
	case event.KindSystem:
		return "SYSTEM"
	case event.KindUser:
		return "USER"
	case event.KindAssistant:
		return "ASSISTANT"
	case event.KindToolUseSummary:
		return "SUMMARY"
	case event.KindToolProgress:
		return "PROGRESS"
	case event.KindResult:
		return "RESULT"
	case event.KindControlResponse:
		return "CONTROL"
	case event.KindEnvManagerLog:
		return "ENV"
	}
	return "UNKNOWN"
}

// RenderEventLines returns the formatted body lines for one event. Headers
// (timestamp and label) are the caller's concern.
func RenderEventLines(e *event.SessionEvent) []string {
	switch {
	case e.System != nil:
		return []string{fmt.Sprintf("[%s] model=%s cwd=%s", e.System.Subtype, e.System.Model, e.System.CWD)}
	case e.User != nil:
		if e.User.Message == nil {
			return nil
		}
		if text, ok := e.User.Message.Content.AsText(); ok {
			return splitNonEmpty(text)
		}
		return renderBlocks(e.User.Message.Content.Blocks)
	case e.Assistant != nil:
		if e.Assistant.Message == nil {
			return nil
		}
		return renderBlocks(e.Assistant.Message.Content)
	case e.ToolUseSummary != nil:
		return splitNonEmpty(e.ToolUseSummary.Summary)
	case e.ToolProgress != nil:
		return []string{fmt.Sprintf("%s (%ds)", e.ToolProgress.ToolName, e.ToolProgress.ElapsedTimeSeconds)}
	case e.Result != nil:
		line := fmt.Sprintf("duration=%ds", e.Result.DurationMS/1000)
		lines := []string{line}
		for _, msg := range e.Result.Errors {
			lines = append(lines, "error: "+msg)
		}
		return lines
	case e.ControlResponse != nil:
		if e.ControlResponse.Response == nil {
			return nil
		}
		return []string{"[" + e.ControlResponse.Response.Subtype + "]"}
	case e.EnvManagerLog != nil:
		if e.EnvManagerLog.Data == nil {
			return nil
		}
		level := e.EnvManagerLog.Data.Level
		if level == "" {
			level = "info"
		}
		return []string{fmt.Sprintf("[%s] %s", level, e.EnvManagerLog.Data.Content)}
	}
	return nil
}

func renderBlocks(blocks []event.ContentBlock) []string {
	var lines []string
	for _, b := range blocks {
		switch {
		case b.Thinking != nil:
			if b.Thinking.Thinking != "" {
				lines = append(lines, "thinking: "+Truncate(b.Thinking.Thinking, thinkingPreviewWidth))
			}
		case b.Text != nil:
			lines = append(lines, splitNonEmpty(b.Text.Text)...)
		case b.ToolUse != nil:
			name := b.ToolUse.Name
			if name == "" {
				name = "unknown"
			}
			lines = append(lines, strings.TrimRight(
				fmt.Sprintf("tool_use: %s %s", name, Truncate(string(b.ToolUse.Input), toolInputPreviewWidth)), " "))
		case b.ToolResult != nil:
			lines = append(lines, strings.TrimRight(
				"tool_result: "+Truncate(string(b.ToolResult.Content), toolResultPreviewWidth), " "))
		}
	}
	return lines
}

// Truncate shortens s to the given display width, appending "..." when
// anything was cut. Width is measured with runewidth so wide characters
// never overflow the column.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

func splitNonEmpty(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
