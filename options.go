package mms

import (
	"io"
	"log/slog"

	"github.com/wagiedev/mms-sdk-go/internal/config"
)

// Options configures a Client.
type Options = config.Options

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// ===== Basic Configuration =====

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMaxLineLength caps the length of a single response line.
func WithMaxLineLength(n int) Option {
	return func(o *Options) {
		o.MaxLineLength = n
	}
}

// WithUnacknowledgedAnnotations makes wall, color and text commands
// write-only, matching simulators that do not answer them.
func WithUnacknowledgedAnnotations() Option {
	return func(o *Options) {
		o.UnacknowledgedAnnotations = true
	}
}

// ===== Transport =====

// WithTransport replaces the line transport entirely.
func WithTransport(transport Transport) Option {
	return func(o *Options) {
		o.Transport = transport
	}
}

// WithStreams reads responses from r and writes commands to w instead of
// the process's standard streams. Streams that implement io.Closer are
// closed by Client.Close.
func WithStreams(r io.Reader, w io.Writer) Option {
	return func(o *Options) {
		o.Stdin = r
		o.Stdout = w
	}
}

// ===== Spawned Simulator =====

// WithSimulator spawns a simulator-compatible peer at path and talks to it
// over its standard streams.
func WithSimulator(path string, args ...string) Option {
	return func(o *Options) {
		o.SimulatorPath = path
		o.SimulatorArgs = args
	}
}

// WithEnv provides additional environment variables for the spawned peer.
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		o.Env = env
	}
}

// WithCwd sets the working directory for the spawned peer.
func WithCwd(cwd string) Option {
	return func(o *Options) {
		o.Cwd = cwd
	}
}

// WithStderr sets a callback for each line the spawned peer writes to stderr.
func WithStderr(fn func(string)) Option {
	return func(o *Options) {
		o.Stderr = fn
	}
}
