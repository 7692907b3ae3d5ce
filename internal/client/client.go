package client

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/mms-sdk-go/internal/config"
	"github.com/wagiedev/mms-sdk-go/internal/errors"
	"github.com/wagiedev/mms-sdk-go/internal/protocol"
	"github.com/wagiedev/mms-sdk-go/internal/subprocess"
)

// Client talks to the simulator one round trip at a time.
type Client struct {
	log       *slog.Logger
	transport config.Transport
	options   *config.Options
	sessionID string

	// inFlight is set while a call is between sending its command and
	// decoding its response.
	inFlight atomic.Bool
	closed   atomic.Bool

	// fatalErr is only touched while inFlight is held.
	fatalErr error
}

// New creates a client and connects its transport.
//
// With the default options the client uses the process's stdin and stdout,
// which the simulator has already attached. When options.SimulatorPath is
// set the peer is spawned instead and killed when ctx is done.
func New(ctx context.Context, options *config.Options) (*Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if options == nil {
		options = &config.Options{}
	}

	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sessionID := ulid.Make().String()
	log = log.With("session", sessionID)

	transport, err := newTransport(ctx, log, options)
	if err != nil {
		return nil, err
	}

	c := &Client{
		log:       log.With("component", "client"),
		transport: transport,
		options:   options,
		sessionID: sessionID,
	}

	c.log.Debug("Client ready", "write_only_annotations", options.UnacknowledgedAnnotations)

	return c, nil
}

func newTransport(ctx context.Context, log *slog.Logger, options *config.Options) (config.Transport, error) {
	switch {
	case options.Transport != nil:
		return options.Transport, nil

	case options.SimulatorPath != "":
		transport := subprocess.NewProcessTransport(log, options)
		if err := transport.Start(ctx); err != nil {
			return nil, err
		}

		return transport, nil

	case options.Stdin != nil || options.Stdout != nil:
		var (
			r io.Reader = os.Stdin
			w io.Writer = os.Stdout
		)

		if options.Stdin != nil {
			r = options.Stdin
		}

		if options.Stdout != nil {
			w = options.Stdout
		}

		return subprocess.NewStreamTransport(log, r, w, options.LineLimit()), nil

	default:
		return subprocess.NewStdioTransport(log, options.LineLimit()), nil
	}
}

// SessionID identifies this client in log output.
func (c *Client) SessionID() string {
	return c.sessionID
}

// acquire moves the client from idle to awaiting a response.
func (c *Client) acquire() error {
	if c.closed.Load() {
		return errors.ErrClientClosed
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return errors.ErrRequestInFlight
	}

	if c.fatalErr != nil {
		c.inFlight.Store(false)

		return c.fatalErr
	}

	return nil
}

func (c *Client) release() {
	c.inFlight.Store(false)
}

// fail stores a transport error; the session cannot recover from it.
func (c *Client) fail(cmd protocol.Command, err error) error {
	if _, ok := stderrors.AsType[*errors.TransportError](err); ok && c.fatalErr == nil {
		c.log.Error("Transport failed, session is over", "command", cmd.Verb, "error", err)
		c.fatalErr = err
	}

	return err
}

// roundTrip sends cmd and returns the single response line.
func (c *Client) roundTrip(cmd protocol.Command) (string, error) {
	if err := c.acquire(); err != nil {
		return "", err
	}
	defer c.release()

	if err := c.transport.SendLine(cmd.Line()); err != nil {
		return "", c.fail(cmd, err)
	}

	line, err := c.transport.ReadLine()
	if err != nil {
		return "", c.fail(cmd, err)
	}

	c.log.Debug("Round trip", "command", cmd.Line(), "response", line)

	return line, nil
}

// send writes cmd without waiting for a response.
func (c *Client) send(cmd protocol.Command) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()

	if err := c.transport.SendLine(cmd.Line()); err != nil {
		return c.fail(cmd, err)
	}

	c.log.Debug("Sent without response", "command", cmd.Line())

	return nil
}

// observe logs simulator rejections before handing the error back.
func (c *Client) observe(verb string, err error) error {
	if err == nil {
		return nil
	}

	if simErr, ok := stderrors.AsType[*errors.SimulatorError](err); ok {
		c.log.Warn("Simulator rejected command", "command", verb, "message", simErr.Message)
	} else if _, ok := stderrors.AsType[*errors.ProtocolError](err); ok {
		c.log.Warn("Unexpected response", "command", verb, "error", err)
	}

	return err
}

func (c *Client) queryInt(cmd protocol.Command) (int, error) {
	line, err := c.roundTrip(cmd)
	if err != nil {
		return 0, err
	}

	n, err := protocol.DecodeInt(cmd.Verb, line)

	return n, c.observe(cmd.Verb, err)
}

func (c *Client) queryBool(cmd protocol.Command) (bool, error) {
	line, err := c.roundTrip(cmd)
	if err != nil {
		return false, err
	}

	v, err := protocol.DecodeBool(cmd.Verb, line)

	return v, c.observe(cmd.Verb, err)
}

// expectAck runs a command answered by "ack". In write-only mode
// annotation commands are sent without reading anything back.
func (c *Client) expectAck(cmd protocol.Command) error {
	if c.options.UnacknowledgedAnnotations && cmd.IsAnnotation() {
		return c.send(cmd)
	}

	line, err := c.roundTrip(cmd)
	if err != nil {
		return err
	}

	return c.observe(cmd.Verb, protocol.DecodeAck(cmd.Verb, line))
}

// MazeWidth returns the width of the maze in cells.
func (c *Client) MazeWidth() (int, error) {
	return c.queryInt(protocol.NewMazeWidth())
}

// MazeHeight returns the height of the maze in cells.
func (c *Client) MazeHeight() (int, error) {
	return c.queryInt(protocol.NewMazeHeight())
}

// WallFront reports whether there is a wall in front of the mouse.
func (c *Client) WallFront() (bool, error) {
	return c.queryBool(protocol.NewWallFront())
}

// WallRight reports whether there is a wall to the right of the mouse.
func (c *Client) WallRight() (bool, error) {
	return c.queryBool(protocol.NewWallRight())
}

// WallLeft reports whether there is a wall to the left of the mouse.
func (c *Client) WallLeft() (bool, error) {
	return c.queryBool(protocol.NewWallLeft())
}

// MoveForward moves the mouse forward. With no distance the simulator
// moves one cell; at most one distance may be given.
func (c *Client) MoveForward(distance ...uint32) error {
	var cmd protocol.Command

	switch len(distance) {
	case 0:
		cmd = protocol.NewMoveForward(nil)
	case 1:
		cmd = protocol.NewMoveForward(&distance[0])
	default:
		return &errors.EncodingError{
			Verb:     protocol.VerbMoveForward,
			Argument: "distance",
			Value:    strconv.Itoa(len(distance)) + " values",
			Reason:   "at most one distance",
		}
	}

	line, err := c.roundTrip(cmd)
	if err != nil {
		return err
	}

	return c.observe(cmd.Verb, protocol.DecodeMove(cmd.Verb, line))
}

// TurnRight turns the mouse ninety degrees clockwise.
func (c *Client) TurnRight() error {
	return c.expectAck(protocol.NewTurnRight())
}

// TurnLeft turns the mouse ninety degrees counterclockwise.
func (c *Client) TurnLeft() error {
	return c.expectAck(protocol.NewTurnLeft())
}

// SetWall draws a wall on side d of cell (x, y).
func (c *Client) SetWall(x, y uint32, d protocol.Direction) error {
	cmd, err := protocol.NewSetWall(x, y, d)
	if err != nil {
		return err
	}

	return c.expectAck(cmd)
}

// ClearWall removes the wall drawn on side d of cell (x, y).
func (c *Client) ClearWall(x, y uint32, d protocol.Direction) error {
	cmd, err := protocol.NewClearWall(x, y, d)
	if err != nil {
		return err
	}

	return c.expectAck(cmd)
}

// SetColor paints cell (x, y).
func (c *Client) SetColor(x, y uint32, color protocol.Color) error {
	cmd, err := protocol.NewSetColor(x, y, color)
	if err != nil {
		return err
	}

	return c.expectAck(cmd)
}

// ClearColor removes the paint from cell (x, y).
func (c *Client) ClearColor(x, y uint32) error {
	return c.expectAck(protocol.NewClearColor(x, y))
}

// ClearAllColor removes the paint from every cell.
func (c *Client) ClearAllColor() error {
	return c.expectAck(protocol.NewClearAllColor())
}

// SetText writes text into cell (x, y). The text must be a single token.
func (c *Client) SetText(x, y uint32, text string) error {
	cmd, err := protocol.NewSetText(x, y, text)
	if err != nil {
		return err
	}

	return c.expectAck(cmd)
}

// ClearText removes the text from cell (x, y).
func (c *Client) ClearText(x, y uint32) error {
	return c.expectAck(protocol.NewClearText(x, y))
}

// ClearAllText removes the text from every cell.
func (c *Client) ClearAllText() error {
	return c.expectAck(protocol.NewClearAllText())
}

// WasReset reports whether the reset button has been pressed.
func (c *Client) WasReset() (bool, error) {
	return c.queryBool(protocol.NewWasReset())
}

// AckReset lets the simulator move the mouse back to the start cell.
func (c *Client) AckReset() error {
	return c.expectAck(protocol.NewAckReset())
}

// GetStat returns the raw payload of the named statistic. The caller owns
// the buffer and should Release it when done.
func (c *Client) GetStat(name string) (*protocol.ByteBuffer, error) {
	cmd, err := protocol.NewGetStat(name)
	if err != nil {
		return nil, err
	}

	line, err := c.roundTrip(cmd)
	if err != nil {
		return nil, err
	}

	payload, err := protocol.DecodePayload(cmd.Verb, line)
	if err != nil {
		return nil, c.observe(cmd.Verb, err)
	}

	return protocol.NewByteBuffer(payload), nil
}

// Stat returns a statistic decoded into a number.
func (c *Client) Stat(q protocol.StatQuery) (protocol.Stat, error) {
	buf, err := c.GetStat(string(q))
	if err != nil {
		return protocol.Stat{}, err
	}

	defer func() { _ = buf.Release() }()

	stat, err := protocol.ParseStat(q, buf.Bytes())

	return stat, c.observe(protocol.VerbGetStat, err)
}

// Close releases the transport. After Close every operation returns
// ErrClientClosed. Safe to call multiple times.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.log.Debug("Closing client")

	return c.transport.Close()
}
