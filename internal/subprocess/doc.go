// Package subprocess provides the line transports that connect a client to
// the simulator.
//
// StreamTransport sends and receives newline-terminated lines over any
// reader/writer pair; NewStdioTransport binds it to the process's own
// standard streams, which is how the simulator normally talks to a robot
// program. ProcessTransport spawns a simulator-compatible peer as a child
// process and talks to it over its stdin/stdout, capturing stderr for error
// reporting.
package subprocess
