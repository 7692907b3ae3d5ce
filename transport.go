package mms

import "github.com/wagiedev/mms-sdk-go/internal/config"

// Transport defines the interface for simulator communication.
// Implement this to provide custom transports for testing, mocking,
// or alternative communication methods.
//
// The default implementation uses the process's stdin and stdout.
// Custom transports can be injected via WithTransport.
type Transport = config.Transport
