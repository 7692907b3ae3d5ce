package mms

import "github.com/wagiedev/mms-sdk-go/internal/errors"

// Re-export error types from internal package

// TransportError indicates the streams to the simulator failed.
// The client is unusable afterwards.
type TransportError = errors.TransportError

// EncodingError indicates an argument could not be put on the wire.
// Nothing was sent.
type EncodingError = errors.EncodingError

// ProtocolError indicates a response that does not fit the command's grammar.
type ProtocolError = errors.ProtocolError

// SimulatorError indicates the simulator answered with Error or a crash.
type SimulatorError = errors.SimulatorError

// ProcessError indicates a spawned simulator peer exited with an error.
type ProcessError = errors.ProcessError

// MmsError is the base interface for all SDK errors.
type MmsError = errors.MmsError

// Re-export sentinel errors from internal package.
var (
	// ErrStreamClosed indicates the simulator closed its end of the stream.
	ErrStreamClosed = errors.ErrStreamClosed

	// ErrLineTooLong indicates a response line exceeded the configured limit.
	ErrLineTooLong = errors.ErrLineTooLong

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.ErrClientClosed

	// ErrRequestInFlight indicates a call was made while another was waiting
	// for its response.
	ErrRequestInFlight = errors.ErrRequestInFlight

	// ErrBufferReleased indicates a ByteBuffer was released twice.
	ErrBufferReleased = errors.ErrBufferReleased

	// ErrCrashed indicates the mouse crashed into a wall.
	ErrCrashed = errors.ErrCrashed
)
