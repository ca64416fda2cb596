// Package format renders sessions, events, and loglines for the terminal and
// for machine-readable output. Nothing here talks to the network.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"remotelog/internal/api"
)

// WriteSessions writes the session list to w in the requested format.
func WriteSessions(w io.Writer, sessions []api.Session, includeHeader bool, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeSessionsTable(w, sessions, includeHeader)
	case "plain":
		return writeSessionsPlain(w, sessions, includeHeader)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sessions)
	case "jsonl":
		enc := json.NewEncoder(w)
		for _, s := range sessions {
			if err := enc.Encode(s); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeSessionsTable(w io.Writer, sessions []api.Session, includeHeader bool) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 60},
		{Number: 5, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 50},
	})

	if includeHeader {
		tw.AppendHeader(table.Row{"Created", "Session ID", "Status", "Title", "Repository"})
	}

	for _, s := range sessions {
		tw.AppendRow(table.Row{
			FormatTimestamp(s.CreatedAt),
			s.ID,
			orUnknown(s.SessionStatus),
			orUntitled(s.Title),
			sessionRepo(s),
		})
	}

	if len(sessions) == 0 {
		tw.AppendRow(table.Row{"-", "(no sessions)", "-", "-", "-"})
	}

	_ = tw.Render()
	return nil
}

func writeSessionsPlain(w io.Writer, sessions []api.Session, includeHeader bool) error {
	if includeHeader {
		if _, err := fmt.Fprintln(w, "created\tsession_id\tstatus\ttitle\trepository"); err != nil {
			return err
		}
	}
	for _, s := range sessions {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s",
			FormatTimestamp(s.CreatedAt),
			s.ID,
			orUnknown(s.SessionStatus),
			escapeNewlines(orUntitled(s.Title)),
			sessionRepo(s),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// sessionRepo returns the first source repository URL, if any.
func sessionRepo(s api.Session) string {
	if s.SessionContext == nil || len(s.SessionContext.Sources) == 0 {
		return ""
	}
	return s.SessionContext.Sources[0].URL
}

// FormatTimestamp renders an API timestamp as "2006-01-02 15:04:05 UTC",
// passing unparseable input through untouched.
func FormatTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return parsed.UTC().Format("2006-01-02 15:04:05 UTC")
}

func orUntitled(title string) string {
	if title == "" {
		return "(untitled)"
	}
	return title
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

func escapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", "\\n")
}
