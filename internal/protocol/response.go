package protocol

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wagiedev/mms-sdk-go/internal/errors"
)

// Response tokens sent by the simulator. Matching is case-sensitive.
const (
	TokenTrue  = "true"
	TokenFalse = "false"
	TokenAck   = "ack"
	TokenCrash = "crash"
	TokenError = "Error"
)

// simulatorError returns the SimulatorError carried by line, if any. The
// token counts when it is the whole line or is followed by anything other
// than a letter or digit, so "Error: x" and "Error\tx" are errors while
// "Errors" is not.
func simulatorError(verb, line string) (*errors.SimulatorError, bool) {
	rest, ok := strings.CutPrefix(line, TokenError)
	if !ok {
		return nil, false
	}

	if r, _ := utf8.DecodeRuneInString(rest); unicode.IsLetter(r) || unicode.IsDigit(r) {
		return nil, false
	}

	message := strings.TrimLeftFunc(rest, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	return &errors.SimulatorError{Verb: verb, Message: strings.TrimSpace(message)}, true
}

// normalize trims surrounding whitespace and checks for an Error response.
func normalize(verb, line string) (string, error) {
	line = strings.TrimSpace(line)

	if simErr, ok := simulatorError(verb, line); ok {
		return "", simErr
	}

	return line, nil
}

// DecodeBool decodes a true/false response.
func DecodeBool(verb, line string) (bool, error) {
	line, err := normalize(verb, line)
	if err != nil {
		return false, err
	}

	switch line {
	case TokenTrue:
		return true, nil
	case TokenFalse:
		return false, nil
	default:
		return false, &errors.ProtocolError{Verb: verb, Expected: "true or false", Response: line}
	}
}

// DecodeInt decodes a decimal integer response.
func DecodeInt(verb, line string) (int, error) {
	line, err := normalize(verb, line)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, &errors.ProtocolError{Verb: verb, Expected: "integer", Response: line, Err: err}
	}

	return n, nil
}

// DecodeAck decodes an acknowledgement.
func DecodeAck(verb, line string) error {
	line, err := normalize(verb, line)
	if err != nil {
		return err
	}

	if line != TokenAck {
		return &errors.ProtocolError{Verb: verb, Expected: TokenAck, Response: line}
	}

	return nil
}

// DecodeMove decodes the answer to a movement. "ack" and "true" mean the
// mouse moved; "crash" and "false" mean it hit a wall.
func DecodeMove(verb, line string) error {
	line, err := normalize(verb, line)
	if err != nil {
		return err
	}

	switch line {
	case TokenAck, TokenTrue:
		return nil
	case TokenCrash, TokenFalse:
		return &errors.SimulatorError{Verb: verb, Message: line, Err: errors.ErrCrashed}
	default:
		return &errors.ProtocolError{Verb: verb, Expected: "ack or crash", Response: line}
	}
}

// DecodePayload returns the raw bytes of an operation-specific payload.
// Only the Error prefix is interpreted.
func DecodePayload(verb, line string) ([]byte, error) {
	line, err := normalize(verb, line)
	if err != nil {
		return nil, err
	}

	// A line starting with the Error token is never a successful payload.
	if line == "" || strings.HasPrefix(line, TokenError) {
		return nil, &errors.ProtocolError{Verb: verb, Expected: "payload", Response: line}
	}

	return []byte(line), nil
}
