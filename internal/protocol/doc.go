// Package protocol implements the mms text protocol: the command vocabulary,
// argument encoding, and response grammar.
//
// Every exchange is one command line followed by exactly one response line:
//
//	wallFront          -> false
//	moveForward 2      -> ack
//	setWall 3 5 n      -> ack
//	setText 0 0 start  -> Error cell out of range
//
// Commands are built by constructor functions that validate their arguments,
// so a Command that exists can always be rendered with Line. Decoders take
// the raw response line and return a typed value or one of the typed errors
// from the internal errors package. A response beginning with the "Error"
// token is never a successful result.
//
// Example usage:
//
//	cmd, err := protocol.NewSetText(0, 0, "start")
//	if err != nil {
//	    return err // EncodingError, nothing was sent
//	}
//	transport.SendLine(cmd.Line())
//	line, _ := transport.ReadLine()
//	return protocol.DecodeAck(cmd.Verb, line)
package protocol
