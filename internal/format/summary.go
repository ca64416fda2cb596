package format

import (
	"fmt"
	"io"
	"sort"

	"remotelog/internal/event"
)

const (
	previewUserMessage = 120
	maxUserPreviews    = 10
)

// WriteSessionSummary prints an aggregate overview of a transcript: an
// event-kind histogram, the recorded tool activity, and previews of the
// user messages that drove the session.
func WriteSessionSummary(w io.Writer, events []event.SessionEvent) {
	fmt.Fprintf(w, "Session Summary (%d events)\n\n", len(events))

	counts := map[string]int{}
	for i := range events {
		counts[events[i].Kind()]++
	}
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if counts[kinds[i]] != counts[kinds[j]] {
			return counts[kinds[i]] > counts[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	fmt.Fprintln(w, "Event types:")
	for _, kind := range kinds {
		fmt.Fprintf(w, "  %-20s %d\n", kind, counts[kind])
	}

	var toolLines []string
	for i := range events {
		if s := events[i].ToolUseSummary; s != nil && s.Summary != "" {
			toolLines = append(toolLines, s.Summary)
		}
	}
	if len(toolLines) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tool activity:")
		for i, line := range toolLines {
			prefix := "├─"
			if i == len(toolLines)-1 {
				prefix = "└─"
			}
			fmt.Fprintf(w, "  %s %s\n", prefix, Truncate(line, toolResultPreviewWidth))
		}
	}

	var previews []string
	for i := range events {
		u := events[i].User
		if u == nil || u.Message == nil {
			continue
		}
		if text, ok := u.Message.Content.AsText(); ok && text != "" {
			previews = append(previews, Truncate(escapeNewlines(text), previewUserMessage))
		}
		if len(previews) == maxUserPreviews {
			break
		}
	}
	if len(previews) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "User messages:")
		for _, p := range previews {
			fmt.Fprintf(w, "  - %s\n", p)
		}
	}
}
