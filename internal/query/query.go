// Package query provides pure, order-preserving filters over an in-memory
// event sequence. The remote API has no server-side filtering, so every
// narrowing operation happens here after fetch.
package query

import (
	"strings"

	"remotelog/internal/event"
)

// FilterKind retains events whose kind equals the requested discriminant.
// A discriminant that matches no event yields an empty result, not an error.
func FilterKind(events []event.SessionEvent, kind string) []event.SessionEvent {
	return filter(events, func(e *event.SessionEvent) bool {
		return e.Kind() == kind
	})
}

// FilterConversational retains the dialogue subset: system, user, assistant
// and result events.
func FilterConversational(events []event.SessionEvent) []event.SessionEvent {
	return filter(events, func(e *event.SessionEvent) bool {
		return e.IsConversational()
	})
}

// Search retains events whose searchable text contains the query substring,
// compared case-insensitively. An empty query matches everything.
func Search(events []event.SessionEvent, query string) []event.SessionEvent {
	if query == "" {
		return filter(events, func(*event.SessionEvent) bool { return true })
	}
	needle := strings.ToLower(query)
	return filter(events, func(e *event.SessionEvent) bool {
		for _, text := range e.SearchableText() {
			if strings.Contains(strings.ToLower(text), needle) {
				return true
			}
		}
		return false
	})
}

// Truncate retains the first n events. A negative n means no limit.
func Truncate(events []event.SessionEvent, n int) []event.SessionEvent {
	if n < 0 || n >= len(events) {
		return filter(events, func(*event.SessionEvent) bool { return true })
	}
	return filter(events[:n], func(*event.SessionEvent) bool { return true })
}

// filter copies matching events into a new slice, leaving the source intact.
func filter(events []event.SessionEvent, keep func(*event.SessionEvent) bool) []event.SessionEvent {
	out := make([]event.SessionEvent, 0, len(events))
	for i := range events {
		if keep(&events[i]) {
			out = append(out, events[i])
		}
	}
	return out
}
