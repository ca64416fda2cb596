package format

import (
	"fmt"
	"io"

	"remotelog/internal/api"
)

// WriteSessionDetail writes the full metadata view of one session.
func WriteSessionDetail(w io.Writer, s api.Session) {
	fmt.Fprintf(w, "\nSession Details\n\n")
	writeKV(w, "ID", s.ID)
	writeKV(w, "Title", orUntitled(s.Title))
	writeKV(w, "Status", orUnknown(s.SessionStatus))
	writeKV(w, "Type", orUnknown(s.SessionType))
	writeKV(w, "Created", FormatTimestamp(s.CreatedAt))
	writeKV(w, "Updated", FormatTimestamp(s.UpdatedAt))

	if ctx := s.SessionContext; ctx != nil {
		writeKV(w, "Model", orUnknown(ctx.Model))
		for _, src := range ctx.Sources {
			writeKV(w, "Source", fmt.Sprintf("%s (%s)", src.URL, src.Revision))
		}
		for _, outcome := range ctx.Outcomes {
			if outcome.GitInfo == nil {
				continue
			}
			writeKV(w, "Repo", outcome.GitInfo.Repo)
			for _, branch := range outcome.GitInfo.Branches {
				writeKV(w, "Branch", branch)
			}
		}
	}

	fmt.Fprintf(w, "\n  Resume with: claude --teleport %s\n\n", s.ID)
}

func writeKV(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s: %s\n", label, value) //nolint:errcheck
}
