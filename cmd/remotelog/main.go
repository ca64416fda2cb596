package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"remotelog/internal/api"
	"remotelog/internal/auth"
	"remotelog/internal/event"
	"remotelog/internal/export"
	"remotelog/internal/format"
	"remotelog/internal/logging"
	"remotelog/internal/store"
	"remotelog/internal/view"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "remotelog",
	Short: "Browse Claude Code remote session transcripts",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose, cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newReadCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newLoglinesCmd())
	rootCmd.AddCommand(newExportCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "remotelog: %v\n", err)
		if errors.Is(err, auth.ErrNoCredentials) {
			fmt.Fprintln(os.Stderr, "hint: log in with the Claude Code CLI first")
		}
		os.Exit(1)
	}
}

func connect(cmd *cobra.Command) (*api.Client, error) {
	return api.Connect(cmd.Context(), api.Config{Logger: logging.Logger})
}

func newListCmd() *cobra.Command {
	var (
		limit      int
		status     string
		afterStr   string
		beforeStr  string
		formatFlag string
		noHeader   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List remote sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			after, err := parseDateFilter(afterStr, "--after")
			if err != nil {
				return err
			}
			before, err := parseDateFilter(beforeStr, "--before")
			if err != nil {
				return err
			}

			client, err := connect(cmd)
			if err != nil {
				return err
			}

			sessions, err := store.NewDirectory(client).List(cmd.Context(), store.ListOptions{
				Status: status,
				After:  after,
				Before: before,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			includeHeader := !noHeader
			return format.WriteSessions(cmd.OutOrStdout(), sessions, includeHeader, strings.ToLower(formatFlag))
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&limit, "limit", 20, "limit number of sessions returned (0 means no limit)")
	flags.StringVar(&status, "status", "", "only include sessions with the given status")
	flags.StringVar(&afterStr, "after", "", "include sessions created on/after the given date (RFC3339 or YYYY-MM-DD)")
	flags.StringVar(&beforeStr, "before", "", "include sessions created before the given date (RFC3339 or YYYY-MM-DD)")
	flags.StringVar(&formatFlag, "format", "table", "output format: table, plain, json, or jsonl")
	flags.BoolVar(&noHeader, "no-header", false, "omit header row for plain output")

	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show metadata for a single session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.ValidateSessionID(args[0]); err != nil {
				return err
			}
			client, err := connect(cmd)
			if err != nil {
				return err
			}
			session, err := store.NewDirectory(client).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			format.WriteSessionDetail(cmd.OutOrStdout(), session)
			return nil
		},
	}
	return cmd
}

func newReadCmd() *cobra.Command {
	var (
		conversationOnly bool
		kind             string
		maxEvents        int
		search           string
		wrap             int
		forceColor       bool
		forceNoColor     bool
		input            string
	)

	cmd := &cobra.Command{
		Use:   "read [session-id]",
		Short: "Render a session transcript",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if forceColor && forceNoColor {
				return errors.New("--color and --no-color cannot be used together")
			}

			var events []event.SessionEvent
			maxShow := 0
			if input != "" {
				doc, err := export.ReadFile(input)
				if err != nil {
					return err
				}
				events = doc.Events
				if maxEvents == 0 {
					events = nil
				} else if maxEvents > 0 {
					maxShow = maxEvents
				}
			} else {
				if len(args) != 1 {
					return errors.New("a session id is required unless --input is given")
				}
				if err := api.ValidateSessionID(args[0]); err != nil {
					return err
				}
				client, err := connect(cmd)
				if err != nil {
					return err
				}
				events, err = client.FetchEvents(cmd.Context(), args[0], api.FetchOptions{
					MaxEvents: maxEvents,
					Progress:  fetchProgress(cmd),
				})
				if err != nil {
					return err
				}
				clearProgress(cmd)
			}

			return view.Run(events, view.Options{
				ConversationOnly: conversationOnly,
				Kind:             kind,
				Search:           search,
				MaxShow:          maxShow,
				Wrap:             wrap,
				ForceColor:       forceColor,
				ForceNoColor:     forceNoColor,
				Out:              cmd.OutOrStdout(),
			})
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&conversationOnly, "conversation", "c", false, "only show system, user, assistant, and result events")
	flags.StringVar(&kind, "type", "", "only show events of the given type")
	flags.IntVar(&maxEvents, "max", -1, "stop fetching after N events (-1 means no limit)")
	flags.StringVar(&search, "search", "", "only show events whose text matches the given query (case-insensitive)")
	flags.IntVar(&wrap, "wrap", 0, "wrap event bodies at the given column width")
	flags.BoolVar(&forceColor, "color", false, "force-enable ANSI colors even when stdout is not a TTY")
	flags.BoolVar(&forceNoColor, "no-color", false, "disable ANSI colors regardless of terminal detection")
	flags.StringVar(&input, "input", "", "render a previously exported file instead of fetching")

	return cmd
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <session-id>",
		Short: "Summarize a session transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.ValidateSessionID(args[0]); err != nil {
				return err
			}
			client, err := connect(cmd)
			if err != nil {
				return err
			}
			events, err := client.FetchEvents(cmd.Context(), args[0], api.FetchOptions{
				MaxEvents: -1,
				Progress:  fetchProgress(cmd),
			})
			if err != nil {
				return err
			}
			clearProgress(cmd)
			format.WriteSessionSummary(cmd.OutOrStdout(), events)
			return nil
		},
	}
	return cmd
}

func newLoglinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loglines <session-id>",
		Short: "Show ingress loglines for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.ValidateSessionID(args[0]); err != nil {
				return err
			}
			client, err := connect(cmd)
			if err != nil {
				return err
			}
			loglines, err := client.Loglines(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			format.WriteLoglines(cmd.OutOrStdout(), loglines)
			return nil
		},
	}
	return cmd
}

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Export a session and its full transcript to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.ValidateSessionID(args[0]); err != nil {
				return err
			}
			if dir := filepath.Dir(output); dir != "." {
				if _, err := os.Stat(dir); err != nil {
					return fmt.Errorf("output directory %s: %w", dir, err)
				}
			}

			client, err := connect(cmd)
			if err != nil {
				return err
			}
			session, err := client.GetSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			events, err := client.FetchEvents(cmd.Context(), args[0], api.FetchOptions{
				MaxEvents: -1,
				Progress:  fetchProgress(cmd),
			})
			if err != nil {
				return err
			}
			clearProgress(cmd)

			if err := export.WriteFile(output, export.New(session, events)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", len(events), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "session_export.json", "path of the export file")

	return cmd
}

// fetchProgress returns a pagination progress callback that overwrites a
// single stderr line, or nil when stderr is not a terminal.
func fetchProgress(cmd *cobra.Command) func(int) {
	errOut := cmd.ErrOrStderr()
	file, ok := errOut.(*os.File)
	if !ok || !isatty.IsTerminal(file.Fd()) {
		return nil
	}
	return func(fetched int) {
		fmt.Fprintf(file, "\r  Fetched %d events...", fetched)
	}
}

func parseDateFilter(value, flag string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: want RFC3339 or YYYY-MM-DD", flag, value)
	}
	return &t, nil
}

// clearProgress erases the in-place progress line, if one was being drawn.
func clearProgress(cmd *cobra.Command) {
	errOut := cmd.ErrOrStderr()
	if file, ok := errOut.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		fmt.Fprint(file, "\r\x1b[K")
	}
}
