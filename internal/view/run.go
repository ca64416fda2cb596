// Package view renders a fetched session transcript. It applies the local
// query pipeline (kind, conversational, search, display truncation) and
// prints one stanza per surviving event.
package view

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"remotelog/internal/event"
	"remotelog/internal/format"
	"remotelog/internal/query"
)

// Options defines the configurable parameters for rendering a transcript.
type Options struct {
	ConversationOnly bool
	Kind             string
	Search           string
	// MaxShow caps the number of rendered events after filtering. Zero or
	// negative means no display limit.
	MaxShow      int
	Wrap         int
	ForceColor   bool
	ForceNoColor bool
	Out          io.Writer
}

// Run filters and renders the events according to the options.
func Run(events []event.SessionEvent, opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	filtered := events
	if opts.Kind != "" {
		filtered = query.FilterKind(filtered, opts.Kind)
	}
	if opts.ConversationOnly {
		filtered = query.FilterConversational(filtered)
	}
	filtered = query.Search(filtered, opts.Search)
	if opts.MaxShow > 0 {
		filtered = query.Truncate(filtered, opts.MaxShow)
	}

	colorEnabled := resolveColorChoice(opts, out)
	width := determineWidth(out, opts.Wrap)

	labelParts := []string{fmt.Sprintf("%d events", len(filtered))}
	if opts.ConversationOnly {
		labelParts = append(labelParts, "conversation only")
	}
	if opts.Search != "" {
		labelParts = append(labelParts, fmt.Sprintf("search: %q", opts.Search))
	}
	fmt.Fprintf(out, "\nSession Transcript (%s)\n\n", strings.Join(labelParts, " - "))

	for i := range filtered {
		writeEvent(out, &filtered[i], width, colorEnabled)
	}
	return nil
}

func writeEvent(out io.Writer, e *event.SessionEvent, width int, colorEnabled bool) {
	created := ""
	if ts := e.Timestamp(); !ts.IsZero() {
		created = ts.UTC().Format("2006-01-02 15:04:05 UTC")
	}

	label := format.EventLabel(e)
	header := strings.TrimLeft(fmt.Sprintf("%s %s",
		colorize(colorEnabled, ansiTimestamp, created),
		colorize(colorEnabled, kindColor(e.Kind()), label),
	), " ")
	fmt.Fprintln(out, header)

	bodyWidth := width - 2
	if bodyWidth < 20 {
		bodyWidth = 20
	}
	for _, line := range format.RenderEventLines(e) {
		for _, wrapped := range wrapLine(line, bodyWidth) {
			fmt.Fprintf(out, "  %s\n", wrapped)
		}
	}
	fmt.Fprintln(out)
}

const (
	ansiReset     = "\x1b[0m"
	ansiTimestamp = "\x1b[38;5;245m"
	ansiSystem    = "\x1b[1;35m"
	ansiUser      = "\x1b[1;32m"
	ansiAssistant = "\x1b[1;34m"
	ansiSummary   = "\x1b[33m"
	ansiResult    = "\x1b[1;36m"
	ansiDim       = "\x1b[38;5;240m"
)

func colorize(enabled bool, code string, text string) string {
	if !enabled || text == "" {
		return text
	}
	return code + text + ansiReset
}

func kindColor(kind string) string {
	switch kind {
	case event.KindSystem:
		return ansiSystem
	case event.KindUser:
		return ansiUser
	case event.KindAssistant:
		return ansiAssistant
	case event.KindToolUseSummary:
		return ansiSummary
	case event.KindResult:
		return ansiResult
	default:
		return ansiDim
	}
}

func resolveColorChoice(opts Options, out io.Writer) bool {
	if opts.ForceColor {
		return true
	}
	if opts.ForceNoColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func determineWidth(out io.Writer, wrap int) int {
	if wrap > 0 {
		return wrap
	}
	if file, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(file.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if colsStr := os.Getenv("COLUMNS"); colsStr != "" {
		if v, err := strconv.Atoi(colsStr); err == nil && v > 0 {
			return v
		}
	}
	return 80
}

// wrapLine word-wraps a single line to the given width. Lines without
// spaces (long JSON previews) are left intact.
func wrapLine(line string, width int) []string {
	if width <= 0 || len(line) <= width {
		return []string{line}
	}

	words := strings.Fields(line)
	if len(words) <= 1 {
		return []string{line}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	return append(lines, current)
}
