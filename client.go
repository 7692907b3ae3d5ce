package mms

import (
	"context"

	"github.com/wagiedev/mms-sdk-go/internal/client"
)

// Client controls the mouse in a running simulator.
//
// Every method is one complete round trip. Coordinates are not checked
// locally; the simulator answers invalid ones with an error.
//
// Lifecycle: Clients are single-use. After Close(), create a new client with NewClient().
type Client interface {
	// MazeWidth returns the width of the maze in cells.
	MazeWidth() (int, error)

	// MazeHeight returns the height of the maze in cells.
	MazeHeight() (int, error)

	// WallFront reports whether there is a wall in front of the mouse.
	WallFront() (bool, error)

	// WallRight reports whether there is a wall to the right of the mouse.
	WallRight() (bool, error)

	// WallLeft reports whether there is a wall to the left of the mouse.
	WallLeft() (bool, error)

	// MoveForward moves the mouse forward.
	// Optional distance defaults to the simulator's one cell.
	// A crash returns a SimulatorError matching ErrCrashed.
	MoveForward(distance ...uint32) error

	// TurnRight turns the mouse ninety degrees clockwise.
	TurnRight() error

	// TurnLeft turns the mouse ninety degrees counterclockwise.
	TurnLeft() error

	// SetWall draws a wall on side d of cell (x, y).
	SetWall(x, y uint32, d Direction) error

	// ClearWall removes the wall drawn on side d of cell (x, y).
	ClearWall(x, y uint32, d Direction) error

	// SetColor paints cell (x, y).
	SetColor(x, y uint32, c Color) error

	// ClearColor removes the paint from cell (x, y).
	ClearColor(x, y uint32) error

	// ClearAllColor removes the paint from every cell.
	ClearAllColor() error

	// SetText writes text into cell (x, y).
	// Text containing whitespace or control characters returns EncodingError.
	SetText(x, y uint32, text string) error

	// ClearText removes the text from cell (x, y).
	ClearText(x, y uint32) error

	// ClearAllText removes the text from every cell.
	ClearAllText() error

	// WasReset reports whether the reset button has been pressed.
	WasReset() (bool, error)

	// AckReset lets the simulator move the mouse back to the start cell.
	AckReset() error

	// GetStat returns the raw payload of a statistic.
	// The caller owns the buffer and releases it exactly once.
	GetStat(name string) (*ByteBuffer, error)

	// Stat returns a documented statistic decoded into a number.
	Stat(q StatQuery) (Stat, error)

	// SessionID identifies this client in log output.
	SessionID() string

	// Close releases the streams. After Close(), the client cannot be reused.
	// Safe to call multiple times.
	Close() error
}

// Compile-time check that the internal client implements the Client interface.
var _ Client = (*client.Client)(nil)

// NewClient connects to the simulator.
//
// By default the client uses the process's standard streams, which the
// simulator attached when it started the program. With WithSimulator the
// peer is spawned as a child process and killed when ctx is done.
//
//	mouse, err := mms.NewClient(ctx, mms.WithLogger(mms.StderrLogger(slog.LevelInfo)))
func NewClient(ctx context.Context, opts ...Option) (Client, error) {
	c, err := client.New(ctx, applyOptions(opts))
	if err != nil {
		return nil, err
	}

	return c, nil
}
