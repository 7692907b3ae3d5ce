package config

import (
	"io"
	"log/slog"
)

// DefaultMaxLineLength caps the size of a single response line.
const DefaultMaxLineLength = 1024 * 1024 // 1MB

// Options configures an mms client.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	// Never point it at stdout when using the default transport: stdout
	// carries the protocol.
	Logger *slog.Logger

	// Transport overrides the line transport. If set, Stdin, Stdout and
	// SimulatorPath are ignored.
	Transport Transport

	// Stdin is the stream responses are read from. Defaults to os.Stdin.
	Stdin io.Reader

	// Stdout is the stream commands are written to. Defaults to os.Stdout.
	Stdout io.Writer

	// SimulatorPath launches a simulator-compatible peer as a child process
	// instead of using the process's own standard streams.
	SimulatorPath string

	// SimulatorArgs are passed to the process started from SimulatorPath.
	SimulatorArgs []string

	// Env provides additional environment variables for the child process.
	Env map[string]string

	// Cwd sets the working directory for the child process.
	Cwd string

	// Stderr is called with each line the child process writes to stderr.
	Stderr func(string)

	// MaxLineLength caps a single response line. Zero means DefaultMaxLineLength.
	MaxLineLength int

	// UnacknowledgedAnnotations makes wall, color and text commands
	// write-only. The stock simulator does not answer them.
	UnacknowledgedAnnotations bool
}

// LineLimit returns the effective maximum response line length.
func (o *Options) LineLimit() int {
	if o == nil || o.MaxLineLength <= 0 {
		return DefaultMaxLineLength
	}

	return o.MaxLineLength
}
