package errors

import (
	"errors"
	"fmt"
)

// MmsError is the base interface for all SDK errors.
type MmsError interface {
	error
	IsMmsError() bool
}

// Compile-time verification that all error types implement MmsError.
var (
	_ MmsError = (*TransportError)(nil)
	_ MmsError = (*EncodingError)(nil)
	_ MmsError = (*ProtocolError)(nil)
	_ MmsError = (*SimulatorError)(nil)
	_ MmsError = (*ProcessError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrStreamClosed indicates the peer closed its end of the stream.
	ErrStreamClosed = errors.New("stream closed")

	// ErrLineTooLong indicates a response line exceeded the transport limit.
	ErrLineTooLong = errors.New("line too long")

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.New("client closed: clients are single-use, create a new one with NewClient()")

	// ErrRequestInFlight indicates an operation was started while another
	// one was still waiting for its response.
	ErrRequestInFlight = errors.New("request already in flight")

	// ErrBufferReleased indicates a byte buffer was released more than once.
	ErrBufferReleased = errors.New("buffer already released")

	// ErrCrashed indicates the mouse crashed into a wall while moving.
	ErrCrashed = errors.New("mouse crashed")
)

// TransportError indicates the streams to the simulator failed.
// A client that returned a TransportError is unusable.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsMmsError implements MmsError.
func (e *TransportError) IsMmsError() bool { return true }

// EncodingError indicates an argument cannot be serialized into a command line.
// Nothing is sent when this error is returned.
type EncodingError struct {
	Verb     string
	Argument string
	Value    string
	Reason   string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode %s argument %s=%q: %s", e.Verb, e.Argument, e.Value, e.Reason)
}

// IsMmsError implements MmsError.
func (e *EncodingError) IsMmsError() bool { return true }

// ProtocolError indicates a response that does not match the grammar of the
// command it answers. It usually means a client/simulator version mismatch.
type ProtocolError struct {
	Verb     string
	Expected string
	Response string
	Err      error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response to %s: want %s, got %q: %v", e.Verb, e.Expected, e.Response, e.Err)
	}

	return fmt.Sprintf("unexpected response to %s: want %s, got %q", e.Verb, e.Expected, e.Response)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// IsMmsError implements MmsError.
func (e *ProtocolError) IsMmsError() bool { return true }

// SimulatorError indicates the simulator rejected a command.
type SimulatorError struct {
	Verb    string
	Message string
	Err     error
}

func (e *SimulatorError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("simulator rejected %s", e.Verb)
	}

	return fmt.Sprintf("simulator rejected %s: %s", e.Verb, e.Message)
}

func (e *SimulatorError) Unwrap() error {
	return e.Err
}

// IsMmsError implements MmsError.
func (e *SimulatorError) IsMmsError() bool { return true }

// ProcessError indicates a spawned simulator peer exited with an error.
type ProcessError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("simulator process failed (exit %d): %v", e.ExitCode, e.Err)
	}

	return fmt.Sprintf("simulator process failed (exit %d): %s", e.ExitCode, e.Stderr)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// IsMmsError implements MmsError.
func (e *ProcessError) IsMmsError() bool { return true }
