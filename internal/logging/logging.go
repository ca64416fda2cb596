// Package logging provides structured logging using zerolog. Only the CLI
// layer logs; library packages receive a logger explicitly when they need
// debug tracing.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger. It stays disabled until Init runs.
var Logger = zerolog.Nop()

// Init configures the global logger. Verbose enables debug level; output
// defaults to stderr so logs never mix with command output on stdout.
func Init(verbose bool, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	Logger = zerolog.New(console).Level(level).With().Timestamp().Logger()
}
