// Package config provides configuration types for the mms SDK.
package config

// Transport moves single lines between the client and the simulator.
// Implement this to provide custom transports for testing, mocking,
// or alternative communication methods.
//
// The default implementation reads stdin and writes stdout of the current
// process. Custom transports can be injected via Options.Transport.
type Transport interface {
	// SendLine writes text followed by a newline and flushes it.
	SendLine(text string) error

	// ReadLine blocks until a full line is available and returns it
	// without the line terminator.
	ReadLine() (string, error)

	// Close releases the underlying streams. It's safe to call Close
	// multiple times.
	Close() error
}
