package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	mms "github.com/wagiedev/mms-sdk-go"
)

// errQuit is returned by the quit command.
var errQuit = errors.New("quit")

// usageError reports operator input that could not be turned into a call.
type usageError struct {
	usage  string
	reason string
}

func (e *usageError) Error() string {
	return fmt.Sprintf("%s (usage: %s)", e.reason, e.usage)
}

// command is one REPL instruction mapped onto a client operation.
type command struct {
	usage   string
	help    string
	minArgs int
	maxArgs int
	run     func(mouse mms.Client, args []string) (string, error)
}

// commands is keyed by lowercase name. Protocol verbs and short aliases
// both resolve here.
var commands = map[string]*command{}

var aliases = map[string]string{
	"width":   "mazewidth",
	"height":  "mazeheight",
	"front":   "wallfront",
	"left":    "wallleft",
	"right":   "wallright",
	"move":    "moveforward",
	"fwd":     "moveforward",
	"tl":      "turnleft",
	"tr":      "turnright",
	"reset":   "wasreset",
	"stat":    "getstat",
	"exit":    "quit",
	"?":       "help",
	"wall":    "setwall",
	"color":   "setcolor",
	"text":    "settext",
	"unwall":  "clearwall",
	"uncolor": "clearcolor",
	"untext":  "cleartext",
}

func init() {
	register := func(name string, c *command) { commands[name] = c }

	register("mazewidth", &command{usage: "mazeWidth", help: "maze width in cells", run: intResult(mms.Client.MazeWidth)})
	register("mazeheight", &command{usage: "mazeHeight", help: "maze height in cells", run: intResult(mms.Client.MazeHeight)})
	register("wallfront", &command{usage: "wallFront", help: "wall in front of the mouse?", run: boolResult(mms.Client.WallFront)})
	register("wallleft", &command{usage: "wallLeft", help: "wall left of the mouse?", run: boolResult(mms.Client.WallLeft)})
	register("wallright", &command{usage: "wallRight", help: "wall right of the mouse?", run: boolResult(mms.Client.WallRight)})
	register("wasreset", &command{usage: "wasReset", help: "was the reset button pressed?", run: boolResult(mms.Client.WasReset)})
	register("turnleft", &command{usage: "turnLeft", help: "turn 90 degrees left", run: ackResult(mms.Client.TurnLeft)})
	register("turnright", &command{usage: "turnRight", help: "turn 90 degrees right", run: ackResult(mms.Client.TurnRight)})
	register("ackreset", &command{usage: "ackReset", help: "move the mouse back to the start", run: ackResult(mms.Client.AckReset)})
	register("clearallcolor", &command{usage: "clearAllColor", help: "remove every cell color", run: ackResult(mms.Client.ClearAllColor)})
	register("clearalltext", &command{usage: "clearAllText", help: "remove every cell text", run: ackResult(mms.Client.ClearAllText)})

	register("moveforward", &command{
		usage:   "moveForward [cells]",
		help:    "move forward, one cell by default",
		maxArgs: 1,
		run: func(mouse mms.Client, args []string) (string, error) {
			if len(args) == 0 {
				return ack(mouse.MoveForward())
			}

			n, err := parseUint(args[0])
			if err != nil {
				return "", err
			}

			return ack(mouse.MoveForward(n))
		},
	})

	wall := func(op func(mms.Client, uint32, uint32, mms.Direction) error) func(mms.Client, []string) (string, error) {
		return func(mouse mms.Client, args []string) (string, error) {
			x, y, err := parseCell(args)
			if err != nil {
				return "", err
			}

			d, err := mms.ParseDirection(strings.ToLower(args[2]))
			if err != nil {
				return "", err
			}

			return ack(op(mouse, x, y, d))
		}
	}

	register("setwall", &command{usage: "setWall x y n|e|s|w", help: "draw a wall", minArgs: 3, maxArgs: 3, run: wall(mms.Client.SetWall)})
	register("clearwall", &command{usage: "clearWall x y n|e|s|w", help: "erase a wall", minArgs: 3, maxArgs: 3, run: wall(mms.Client.ClearWall)})

	register("setcolor", &command{
		usage:   "setColor x y color",
		help:    "paint a cell (name or letter)",
		minArgs: 3,
		maxArgs: 3,
		run: func(mouse mms.Client, args []string) (string, error) {
			x, y, err := parseCell(args)
			if err != nil {
				return "", err
			}

			c, err := mms.ParseColor(args[2])
			if err != nil {
				return "", err
			}

			return ack(mouse.SetColor(x, y, c))
		},
	})

	register("settext", &command{
		usage:   "setText x y text",
		help:    "write a single word into a cell",
		minArgs: 3,
		maxArgs: 3,
		run: func(mouse mms.Client, args []string) (string, error) {
			x, y, err := parseCell(args)
			if err != nil {
				return "", err
			}

			return ack(mouse.SetText(x, y, args[2]))
		},
	})

	cell := func(op func(mms.Client, uint32, uint32) error) func(mms.Client, []string) (string, error) {
		return func(mouse mms.Client, args []string) (string, error) {
			x, y, err := parseCell(args)
			if err != nil {
				return "", err
			}

			return ack(op(mouse, x, y))
		}
	}

	register("clearcolor", &command{usage: "clearColor x y", help: "remove a cell color", minArgs: 2, maxArgs: 2, run: cell(mms.Client.ClearColor)})
	register("cleartext", &command{usage: "clearText x y", help: "remove a cell text", minArgs: 2, maxArgs: 2, run: cell(mms.Client.ClearText)})

	register("getstat", &command{
		usage:   "getStat name",
		help:    "raw value of a statistic",
		minArgs: 1,
		maxArgs: 1,
		run: func(mouse mms.Client, args []string) (string, error) {
			buf, err := mouse.GetStat(args[0])
			if err != nil {
				return "", err
			}

			defer func() { _ = buf.Release() }()

			return buf.String(), nil
		},
	})

	register("stats", &command{
		usage: "stats",
		help:  "every documented statistic",
		run: func(mouse mms.Client, _ []string) (string, error) {
			var b strings.Builder

			for _, q := range mms.StatQueries() {
				stat, err := mouse.Stat(q)
				if err != nil {
					return "", err
				}

				value := "-"
				if stat.HasValue() {
					value = strconv.FormatFloat(stat.Value, 'f', -1, 64)
				}

				fmt.Fprintf(&b, "%-31s %s\n", q, value)
			}

			return strings.TrimRight(b.String(), "\n"), nil
		},
	})

	register("help", &command{usage: "help", help: "list commands", run: func(mms.Client, []string) (string, error) {
		return helpText(), nil
	}})

	register("quit", &command{usage: "quit", help: "leave the REPL", run: func(mms.Client, []string) (string, error) {
		return "", errQuit
	}})
}

func intResult(op func(mms.Client) (int, error)) func(mms.Client, []string) (string, error) {
	return func(mouse mms.Client, _ []string) (string, error) {
		n, err := op(mouse)
		if err != nil {
			return "", err
		}

		return strconv.Itoa(n), nil
	}
}

func boolResult(op func(mms.Client) (bool, error)) func(mms.Client, []string) (string, error) {
	return func(mouse mms.Client, _ []string) (string, error) {
		v, err := op(mouse)
		if err != nil {
			return "", err
		}

		return strconv.FormatBool(v), nil
	}
}

func ackResult(op func(mms.Client) error) func(mms.Client, []string) (string, error) {
	return func(mouse mms.Client, _ []string) (string, error) {
		return ack(op(mouse))
	}
}

func parseUint(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}

	return uint32(n), nil
}

func parseCell(args []string) (uint32, uint32, error) {
	x, err := parseUint(args[0])
	if err != nil {
		return 0, 0, err
	}

	y, err := parseUint(args[1])
	if err != nil {
		return 0, 0, err
	}

	return x, y, nil
}

// lookup resolves a verb or alias, case-insensitively.
func lookup(name string) (*command, bool) {
	key := strings.ToLower(name)
	if target, ok := aliases[key]; ok {
		key = target
	}

	c, ok := commands[key]

	return c, ok
}

// execute runs one line of operator input against mouse.
func execute(mouse mms.Client, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	c, ok := lookup(fields[0])
	if !ok {
		return "", fmt.Errorf("unknown command %q, try help", fields[0])
	}

	args := fields[1:]
	if len(args) < c.minArgs || len(args) > c.maxArgs {
		return "", &usageError{usage: c.usage, reason: "wrong number of arguments"}
	}

	return c.run(mouse, args)
}

func helpText() string {
	seen := map[*command]bool{}
	lines := make([]string, 0, len(commands))

	for _, c := range commands {
		if seen[c] {
			continue
		}

		seen[c] = true
		lines = append(lines, fmt.Sprintf("  %-24s %s", c.usage, c.help))
	}

	sort.Strings(lines)

	return "Commands:\n" + strings.Join(lines, "\n")
}

func ack(err error) (string, error) {
	if err != nil {
		return "", err
	}

	return "ack", nil
}
