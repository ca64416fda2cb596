package format

import (
	"fmt"
	"io"

	"remotelog/internal/api"
)

const loglinePreviewWidth = 200

// WriteLoglines writes the compact session_ingress records, one stanza per
// logline.
func WriteLoglines(w io.Writer, loglines []api.Logline) {
	for _, log := range loglines {
		logType := log.LogType
		if logType == "" {
			logType = "unknown"
		}
		typeDisplay := logType
		if log.Subtype != "" {
			typeDisplay = logType + "/" + log.Subtype
		}

		fmt.Fprintf(w, "%s %s %s\n", FormatTimestamp(log.Timestamp), typeDisplay, log.GitBranch)
		if log.Content != "" {
			fmt.Fprintf(w, "  %s\n", Truncate(log.Content, loglinePreviewWidth))
		}
		fmt.Fprintln(w)
	}
}
