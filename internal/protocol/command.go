package protocol

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wagiedev/mms-sdk-go/internal/errors"
)

// Command verbs understood by the simulator.
const (
	VerbMazeWidth     = "mazeWidth"
	VerbMazeHeight    = "mazeHeight"
	VerbWallFront     = "wallFront"
	VerbWallRight     = "wallRight"
	VerbWallLeft      = "wallLeft"
	VerbMoveForward   = "moveForward"
	VerbTurnRight     = "turnRight"
	VerbTurnLeft      = "turnLeft"
	VerbSetWall       = "setWall"
	VerbClearWall     = "clearWall"
	VerbSetColor      = "setColor"
	VerbClearColor    = "clearColor"
	VerbClearAllColor = "clearAllColor"
	VerbSetText       = "setText"
	VerbClearText     = "clearText"
	VerbClearAllText  = "clearAllText"
	VerbWasReset      = "wasReset"
	VerbAckReset      = "ackReset"
	VerbGetStat       = "getStat"
)

// Separator joins the verb and arguments of a command line.
const Separator = " "

// Command is a single outbound instruction.
type Command struct {
	Verb string
	Args []string
}

// Line renders the command as it is written to the simulator, without the
// trailing newline.
func (c Command) Line() string {
	if len(c.Args) == 0 {
		return c.Verb
	}

	return c.Verb + Separator + strings.Join(c.Args, Separator)
}

// String implements fmt.Stringer.
func (c Command) String() string {
	return c.Line()
}

// IsAnnotation reports whether the command only changes what the simulator
// draws (walls, colors, text) without affecting the mouse.
func (c Command) IsAnnotation() bool {
	switch c.Verb {
	case VerbSetWall, VerbClearWall,
		VerbSetColor, VerbClearColor, VerbClearAllColor,
		VerbSetText, VerbClearText, VerbClearAllText:
		return true
	default:
		return false
	}
}

func newCommand(verb string, args ...string) Command {
	return Command{Verb: verb, Args: args}
}

// NewMazeWidth builds the maze width query.
func NewMazeWidth() Command { return newCommand(VerbMazeWidth) }

// NewMazeHeight builds the maze height query.
func NewMazeHeight() Command { return newCommand(VerbMazeHeight) }

// NewWallFront builds the front wall sensor query.
func NewWallFront() Command { return newCommand(VerbWallFront) }

// NewWallRight builds the right wall sensor query.
func NewWallRight() Command { return newCommand(VerbWallRight) }

// NewWallLeft builds the left wall sensor query.
func NewWallLeft() Command { return newCommand(VerbWallLeft) }

// NewMoveForward builds a move command. A nil distance is left off the line
// so the simulator applies its own default of one cell.
func NewMoveForward(distance *uint32) Command {
	if distance == nil {
		return newCommand(VerbMoveForward)
	}

	return newCommand(VerbMoveForward, formatUint(*distance))
}

// NewTurnRight builds a right turn.
func NewTurnRight() Command { return newCommand(VerbTurnRight) }

// NewTurnLeft builds a left turn.
func NewTurnLeft() Command { return newCommand(VerbTurnLeft) }

// NewSetWall marks a wall on the given side of cell (x, y).
func NewSetWall(x, y uint32, d Direction) (Command, error) {
	return newWallCommand(VerbSetWall, x, y, d)
}

// NewClearWall removes the wall mark on the given side of cell (x, y).
func NewClearWall(x, y uint32, d Direction) (Command, error) {
	return newWallCommand(VerbClearWall, x, y, d)
}

func newWallCommand(verb string, x, y uint32, d Direction) (Command, error) {
	if !d.IsValid() {
		return Command{}, &errors.EncodingError{
			Verb:     verb,
			Argument: "direction",
			Value:    strconv.Itoa(int(d)),
			Reason:   "unknown direction",
		}
	}

	return newCommand(verb, formatUint(x), formatUint(y), d.Token()), nil
}

// NewSetColor paints cell (x, y).
func NewSetColor(x, y uint32, c Color) (Command, error) {
	if !c.IsValid() {
		return Command{}, &errors.EncodingError{
			Verb:     VerbSetColor,
			Argument: "color",
			Value:    strconv.Itoa(int(c)),
			Reason:   "unknown color",
		}
	}

	return newCommand(VerbSetColor, formatUint(x), formatUint(y), c.Token()), nil
}

// NewClearColor removes the color of cell (x, y).
func NewClearColor(x, y uint32) Command {
	return newCommand(VerbClearColor, formatUint(x), formatUint(y))
}

// NewClearAllColor removes the color of every cell.
func NewClearAllColor() Command { return newCommand(VerbClearAllColor) }

// NewSetText writes text into cell (x, y).
func NewSetText(x, y uint32, text string) (Command, error) {
	if err := ValidateToken(VerbSetText, "text", text); err != nil {
		return Command{}, err
	}

	return newCommand(VerbSetText, formatUint(x), formatUint(y), text), nil
}

// NewClearText removes the text of cell (x, y).
func NewClearText(x, y uint32) Command {
	return newCommand(VerbClearText, formatUint(x), formatUint(y))
}

// NewClearAllText removes the text of every cell.
func NewClearAllText() Command { return newCommand(VerbClearAllText) }

// NewWasReset builds the reset button query.
func NewWasReset() Command { return newCommand(VerbWasReset) }

// NewAckReset acknowledges a reset so the mouse is moved back to the start.
func NewAckReset() Command { return newCommand(VerbAckReset) }

// NewGetStat builds a statistic query for the named stat.
func NewGetStat(name string) (Command, error) {
	if err := ValidateToken(VerbGetStat, "name", name); err != nil {
		return Command{}, err
	}

	return newCommand(VerbGetStat, name), nil
}

// ValidateToken checks that value can travel as a single argument token:
// non-empty, valid UTF-8, and free of whitespace and control characters.
func ValidateToken(verb, argument, value string) error {
	reason := ""

	switch {
	case value == "":
		reason = "empty value"
	case !utf8.ValidString(value):
		reason = "invalid UTF-8"
	default:
		for _, r := range value {
			if unicode.IsSpace(r) {
				reason = "contains whitespace"

				break
			}

			if unicode.IsControl(r) {
				reason = "contains control character"

				break
			}
		}
	}

	if reason == "" {
		return nil
	}

	return &errors.EncodingError{
		Verb:     verb,
		Argument: argument,
		Value:    value,
		Reason:   reason,
	}
}

func formatUint(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
