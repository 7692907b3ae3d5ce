package subprocess

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/wagiedev/mms-sdk-go/internal/config"
	"github.com/wagiedev/mms-sdk-go/internal/errors"
)

// maxStderrBufferSize is the maximum size for the stderr buffer.
// Stderr reading continues indefinitely (callback receives all lines),
// but the buffer stops growing after this limit to prevent unbounded memory usage.
const maxStderrBufferSize = 1024 * 1024 // 1MB

// exitGracePeriod is how long a failed read waits for the process to exit
// before reporting the plain stream error.
var exitGracePeriod = 2 * time.Second

// closeTimeout bounds how long Close waits for a killed process to be reaped.
var closeTimeout = 5 * time.Second

// ProcessTransport implements Transport by spawning a simulator-compatible
// peer and talking to it over its standard streams.
type ProcessTransport struct {
	log            *slog.Logger
	options        *config.Options
	cmd            *exec.Cmd
	stream         *StreamTransport
	stderrCallback func(string)

	stderrWg  sync.WaitGroup
	stderrMu  sync.Mutex
	stderrBuf strings.Builder

	// done is closed once the process has been reaped; waitErr is set
	// before that.
	done    chan struct{}
	waitErr error

	mu      sync.Mutex // Protects closing
	closing bool
}

// Compile-time verification that ProcessTransport implements the Transport interface.
var _ config.Transport = (*ProcessTransport)(nil)

// NewProcessTransport creates a transport for the peer at options.SimulatorPath.
// The process is not started until Start is called.
func NewProcessTransport(log *slog.Logger, options *config.Options) *ProcessTransport {
	return &ProcessTransport{
		log:            log.With("component", "process_transport"),
		options:        options,
		stderrCallback: options.Stderr,
		done:           make(chan struct{}),
	}
}

// Start spawns the peer process. The process is killed when ctx is done.
func (t *ProcessTransport) Start(ctx context.Context) error {
	path := t.options.SimulatorPath
	if path == "" {
		return &errors.TransportError{Op: "start", Err: stderrors.New("no simulator path configured")}
	}

	t.log.Info("Starting simulator process", "path", path, "args", t.options.SimulatorArgs)

	//nolint:gosec // G204: launching a user-configured peer is the point of this transport
	cmd := exec.CommandContext(ctx, path, t.options.SimulatorArgs...)
	cmd.Dir = t.options.Cwd
	cmd.Env = buildEnvironment(t.options.Env)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &errors.TransportError{Op: "start", Err: fmt.Errorf("stdin pipe: %w", err)}
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &errors.TransportError{Op: "start", Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return &errors.TransportError{Op: "start", Err: fmt.Errorf("stderr pipe: %w", err)}
	}

	if err := cmd.Start(); err != nil {
		t.log.Error("Failed to start simulator process", "error", err)

		return &errors.TransportError{Op: "start", Err: fmt.Errorf("start process: %w", err)}
	}

	t.cmd = cmd
	t.stream = NewStreamTransport(t.log, stdout, stdin, t.options.LineLimit())

	t.stderrWg.Go(func() { t.readStderr(stderr) })

	go t.reap()

	t.log.Info("Simulator process started", "pid", cmd.Process.Pid)

	return nil
}

func (t *ProcessTransport) readStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		t.stderrMu.Lock()

		if t.stderrBuf.Len() < maxStderrBufferSize {
			if t.stderrBuf.Len() > 0 {
				t.stderrBuf.WriteString("\n")
			}

			t.stderrBuf.WriteString(line)
		}

		t.stderrMu.Unlock()

		if t.stderrCallback != nil {
			t.stderrCallback(line)
		}
	}

	if err := scanner.Err(); err != nil {
		t.log.Debug("Stderr scanner error", "error", err)
	}
}

// Stderr returns everything the process has written to stderr so far.
func (t *ProcessTransport) Stderr() string {
	t.stderrMu.Lock()
	defer t.stderrMu.Unlock()

	return t.stderrBuf.String()
}

// SendLine writes one command line to the process.
func (t *ProcessTransport) SendLine(text string) error {
	if t.stream == nil {
		return &errors.TransportError{Op: "write", Err: errors.ErrStreamClosed}
	}

	err := t.stream.SendLine(text)
	if err != nil {
		return t.withExitStatus(err)
	}

	return nil
}

// ReadLine reads one response line from the process. When the process has
// exited with an error, the returned TransportError wraps a ProcessError.
func (t *ProcessTransport) ReadLine() (string, error) {
	if t.stream == nil {
		return "", &errors.TransportError{Op: "read", Err: errors.ErrStreamClosed}
	}

	line, err := t.stream.ReadLine()
	if err != nil {
		return "", t.withExitStatus(err)
	}

	return line, nil
}

// withExitStatus attaches the exit status of a dead process to a stream error.
// A process that is still running after the grace period leaves the stream
// error as is.
func (t *ProcessTransport) withExitStatus(streamErr error) error {
	t.mu.Lock()
	closing := t.closing
	t.mu.Unlock()

	if closing || !peerGone(streamErr) {
		return streamErr
	}

	select {
	case <-t.done:
	case <-time.After(exitGracePeriod):
		t.log.Debug("Stream closed but process still running")

		return streamErr
	}

	if t.waitErr == nil {
		return streamErr
	}

	op := "read"
	if te, ok := stderrors.AsType[*errors.TransportError](streamErr); ok {
		op = te.Op
	}

	return &errors.TransportError{Op: op, Err: t.waitErr}
}

// reap waits for the process and converts a failed exit into a ProcessError.
func (t *ProcessTransport) reap() {
	defer close(t.done)

	// Stderr must be fully read before Wait closes the pipe.
	t.stderrWg.Wait()

	err := t.cmd.Wait()
	if err == nil {
		t.log.Info("Simulator process exited")

		return
	}

	exitCode := -1
	if exitErr, ok := stderrors.AsType[*exec.ExitError](err); ok {
		exitCode = exitErr.ExitCode()
	}

	stderr := strings.TrimSpace(t.Stderr())

	t.log.Error("Simulator process exited with error", "exit_code", exitCode, "stderr", stderr)

	t.waitErr = &errors.ProcessError{ExitCode: exitCode, Stderr: stderr, Err: err}
}

// Close ends the session: stdin is closed, the process is killed and reaped.
// It's safe to call Close multiple times.
func (t *ProcessTransport) Close() error {
	t.mu.Lock()
	if t.closing {
		t.mu.Unlock()

		return nil
	}

	t.closing = true
	t.mu.Unlock()

	if t.cmd == nil || t.cmd.Process == nil {
		return nil
	}

	if t.stream != nil {
		_ = t.stream.Close()
	}

	t.log.Debug("Killing simulator process", "pid", t.cmd.Process.Pid)

	if err := t.cmd.Process.Kill(); err != nil && !stderrors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill simulator process (pid %d): %w", t.cmd.Process.Pid, err)
	}

	// The process was killed on purpose; its exit status is not an error.
	select {
	case <-t.done:
	case <-time.After(closeTimeout):
		// Something outside the process still holds its stderr open.
		t.log.Warn("Simulator process not reaped after kill", "pid", t.cmd.Process.Pid)
	}

	return nil
}

// peerGone reports whether a stream error means the process end of the
// pipes is gone, so waiting for the process cannot block forever.
func peerGone(err error) bool {
	return stderrors.Is(err, errors.ErrStreamClosed) ||
		stderrors.Is(err, io.ErrClosedPipe) ||
		stderrors.Is(err, syscall.EPIPE)
}

// buildEnvironment merges extra variables into the current environment.
func buildEnvironment(extra map[string]string) []string {
	env := os.Environ()

	for _, key := range slices.Sorted(maps.Keys(extra)) {
		env = append(env, key+"="+extra[key])
	}

	return env
}
