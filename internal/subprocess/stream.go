package subprocess

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/wagiedev/mms-sdk-go/internal/config"
	"github.com/wagiedev/mms-sdk-go/internal/errors"
)

// StreamTransport implements Transport over a reader/writer pair.
type StreamTransport struct {
	log     *slog.Logger
	reader  *bufio.Reader
	writer  *bufio.Writer
	closers []io.Closer
	maxLine int
	mu      sync.Mutex // Protects closed
	closed  bool
}

// Compile-time verification that StreamTransport implements the Transport interface.
var _ config.Transport = (*StreamTransport)(nil)

// NewStreamTransport creates a transport reading responses from r and
// writing commands to w. If r or w implement io.Closer they are closed by
// Close. maxLine caps the length of a response line; zero uses the default.
func NewStreamTransport(log *slog.Logger, r io.Reader, w io.Writer, maxLine int) *StreamTransport {
	t := newStreamTransport(log, r, w, maxLine)

	if c, ok := w.(io.Closer); ok {
		t.closers = append(t.closers, c)
	}

	if c, ok := r.(io.Closer); ok {
		t.closers = append(t.closers, c)
	}

	return t
}

// NewStdioTransport creates a transport over os.Stdin and os.Stdout.
// Close flushes but leaves the process's streams open.
func NewStdioTransport(log *slog.Logger, maxLine int) *StreamTransport {
	return newStreamTransport(log, os.Stdin, os.Stdout, maxLine)
}

func newStreamTransport(log *slog.Logger, r io.Reader, w io.Writer, maxLine int) *StreamTransport {
	if maxLine <= 0 {
		maxLine = config.DefaultMaxLineLength
	}

	return &StreamTransport{
		log:     log.With("component", "stream_transport"),
		reader:  bufio.NewReader(r),
		writer:  bufio.NewWriter(w),
		maxLine: maxLine,
	}
}

func (t *StreamTransport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.closed
}

// SendLine writes text and a newline, then flushes.
func (t *StreamTransport) SendLine(text string) error {
	if t.isClosed() {
		return &errors.TransportError{Op: "write", Err: errors.ErrStreamClosed}
	}

	if _, err := t.writer.WriteString(text); err != nil {
		return t.writeFailed(err)
	}

	if err := t.writer.WriteByte('\n'); err != nil {
		return t.writeFailed(err)
	}

	if err := t.writer.Flush(); err != nil {
		return t.writeFailed(err)
	}

	t.log.Debug("Sent line", "line", text)

	return nil
}

func (t *StreamTransport) writeFailed(err error) error {
	t.log.Error("Failed to write line", "error", err)

	return &errors.TransportError{Op: "write", Err: err}
}

// ReadLine blocks until a full line arrives and returns it without its
// terminator. A line that ends at EOF without a newline is an error.
func (t *StreamTransport) ReadLine() (string, error) {
	if t.isClosed() {
		return "", &errors.TransportError{Op: "read", Err: errors.ErrStreamClosed}
	}

	var line []byte

	for {
		chunk, err := t.reader.ReadSlice('\n')

		// The terminator does not count towards the limit.
		if len(line)+len(chunk) > t.maxLine+2 {
			t.log.Error("Response line too long", "limit", t.maxLine)

			return "", &errors.TransportError{Op: "read", Err: errors.ErrLineTooLong}
		}

		line = append(line, chunk...)

		switch {
		case err == nil:
			text := trimTerminator(line)
			if len(text) > t.maxLine {
				return "", &errors.TransportError{Op: "read", Err: errors.ErrLineTooLong}
			}

			t.log.Debug("Received line", "line", text)

			return text, nil

		case stderrors.Is(err, bufio.ErrBufferFull):
			continue

		case stderrors.Is(err, io.EOF):
			if len(line) > 0 {
				t.log.Error("Stream ended mid-line", "partial", string(line))

				return "", &errors.TransportError{
					Op:  "read",
					Err: fmt.Errorf("%w: %w", errors.ErrStreamClosed, io.ErrUnexpectedEOF),
				}
			}

			t.log.Debug("Stream closed by peer")

			return "", &errors.TransportError{
				Op:  "read",
				Err: fmt.Errorf("%w: %w", errors.ErrStreamClosed, io.EOF),
			}

		default:
			t.log.Error("Failed to read line", "error", err)

			return "", &errors.TransportError{Op: "read", Err: err}
		}
	}
}

// Close flushes pending output and closes the owned streams.
func (t *StreamTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}

	t.closed = true

	var errs []error

	if err := t.writer.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush: %w", err))
	}

	for _, c := range t.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return stderrors.Join(errs...)
}

func trimTerminator(line []byte) string {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
	}

	if n > 0 && line[n-1] == '\r' {
		n--
	}

	return string(line[:n])
}
