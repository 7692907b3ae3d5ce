// Package client implements the mms protocol client.
//
// Each operation owns a complete round trip: it encodes the command, writes
// it, blocks for the single response line and decodes it. There is no
// background reader. A transport failure is stored and returned by every
// later call, since the simulator cannot be reconnected.
package client
