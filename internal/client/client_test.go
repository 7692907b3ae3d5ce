package client

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/mms-sdk-go/internal/config"
	"github.com/wagiedev/mms-sdk-go/internal/errors"
	"github.com/wagiedev/mms-sdk-go/internal/protocol"
)

// mockTransport implements config.Transport for testing.
// It records every sent line and replays queued responses in order.
type mockTransport struct {
	mu        sync.Mutex
	sent      []string
	responses []string
	sendErr   error
	readErr   error
	closed    bool
	onRead    func()
}

func newMockTransport(responses ...string) *mockTransport {
	return &mockTransport{responses: responses}
}

func (m *mockTransport) SendLine(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}

	m.sent = append(m.sent, text)

	return nil
}

func (m *mockTransport) ReadLine() (string, error) {
	if m.onRead != nil {
		m.onRead()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.readErr != nil {
		return "", m.readErr
	}

	if len(m.responses) == 0 {
		return "", &errors.TransportError{Op: "read", Err: errors.ErrStreamClosed}
	}

	line := m.responses[0]
	m.responses = m.responses[1:]

	return line, nil
}

func (m *mockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true

	return nil
}

func (m *mockTransport) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.sent...)
}

func newTestClient(t *testing.T, transport config.Transport, mutate ...func(*config.Options)) *Client {
	t.Helper()

	options := &config.Options{Transport: transport}
	for _, m := range mutate {
		m(options)
	}

	c, err := New(context.Background(), options)
	require.NoError(t, err)

	return c
}

func TestNew_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(ctx, &config.Options{Transport: newMockTransport()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNew_SessionID(t *testing.T) {
	a := newTestClient(t, newMockTransport())
	b := newTestClient(t, newMockTransport())

	require.Len(t, a.SessionID(), 26)
	require.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestNew_StreamOptions(t *testing.T) {
	var out bytes.Buffer

	c, err := New(context.Background(), &config.Options{
		Stdin:  strings.NewReader("12\n"),
		Stdout: &out,
	})
	require.NoError(t, err)

	height, err := c.MazeHeight()
	require.NoError(t, err)
	require.Equal(t, 12, height)
	require.Equal(t, "mazeHeight\n", out.String())
}

func TestBoolOperations(t *testing.T) {
	tests := []struct {
		verb string
		call func(*Client) (bool, error)
	}{
		{"wallFront", (*Client).WallFront},
		{"wallRight", (*Client).WallRight},
		{"wallLeft", (*Client).WallLeft},
		{"wasReset", (*Client).WasReset},
	}

	for _, tt := range tests {
		t.Run(tt.verb, func(t *testing.T) {
			transport := newMockTransport("true", "false", "maybe", "Error no mouse")
			c := newTestClient(t, transport)

			got, err := tt.call(c)
			require.NoError(t, err)
			assert.True(t, got)

			got, err = tt.call(c)
			require.NoError(t, err)
			assert.False(t, got)

			_, err = tt.call(c)
			_, ok := stderrors.AsType[*errors.ProtocolError](err)
			assert.True(t, ok, "want ProtocolError, got %v", err)

			_, err = tt.call(c)
			simErr, ok := stderrors.AsType[*errors.SimulatorError](err)
			require.True(t, ok, "want SimulatorError, got %v", err)
			assert.Equal(t, "no mouse", simErr.Message)

			assert.Equal(t, []string{tt.verb, tt.verb, tt.verb, tt.verb}, transport.Sent())
		})
	}
}

func TestMazeWidth(t *testing.T) {
	transport := newMockTransport("16", "sixteen")
	c := newTestClient(t, transport)

	width, err := c.MazeWidth()
	require.NoError(t, err)
	require.Equal(t, 16, width)

	_, err = c.MazeWidth()
	_, ok := stderrors.AsType[*errors.ProtocolError](err)
	require.True(t, ok)

	require.Equal(t, []string{"mazeWidth", "mazeWidth"}, transport.Sent())
}

func TestMoveForward(t *testing.T) {
	transport := newMockTransport("ack", "ack", "crash")
	c := newTestClient(t, transport)

	require.NoError(t, c.MoveForward())
	require.NoError(t, c.MoveForward(3))

	err := c.MoveForward()
	require.ErrorIs(t, err, errors.ErrCrashed)

	require.Equal(t, []string{"moveForward", "moveForward 3", "moveForward"}, transport.Sent())
}

func TestMoveForward_TooManyDistances(t *testing.T) {
	transport := newMockTransport("ack")
	c := newTestClient(t, transport)

	err := c.MoveForward(1, 2)

	_, ok := stderrors.AsType[*errors.EncodingError](err)
	require.True(t, ok)
	require.Empty(t, transport.Sent())
}

func TestTurns(t *testing.T) {
	transport := newMockTransport("ack", "Error stuck")
	c := newTestClient(t, transport)

	require.NoError(t, c.TurnLeft())

	err := c.TurnRight()
	_, ok := stderrors.AsType[*errors.SimulatorError](err)
	require.True(t, ok)

	require.Equal(t, []string{"turnLeft", "turnRight"}, transport.Sent())
}

func TestAnnotations(t *testing.T) {
	transport := newMockTransport("ack", "ack", "ack", "ack", "ack", "ack", "ack", "ack")
	c := newTestClient(t, transport)

	require.NoError(t, c.SetWall(3, 5, protocol.North))
	require.NoError(t, c.ClearWall(3, 5, protocol.East))
	require.NoError(t, c.SetColor(0, 0, protocol.DarkGreen))
	require.NoError(t, c.ClearColor(0, 0))
	require.NoError(t, c.ClearAllColor())
	require.NoError(t, c.SetText(0, 0, "abc"))
	require.NoError(t, c.ClearText(0, 0))
	require.NoError(t, c.ClearAllText())

	require.Equal(t, []string{
		"setWall 3 5 n",
		"clearWall 3 5 e",
		"setColor 0 0 G",
		"clearColor 0 0",
		"clearAllColor",
		"setText 0 0 abc",
		"clearText 0 0",
		"clearAllText",
	}, transport.Sent())
}

func TestSetWall_SimulatorRejects(t *testing.T) {
	transport := newMockTransport("Error invalid coordinate")
	c := newTestClient(t, transport)

	err := c.SetWall(99, 99, protocol.South)

	simErr, ok := stderrors.AsType[*errors.SimulatorError](err)
	require.True(t, ok)
	require.Equal(t, "setWall", simErr.Verb)
	require.Equal(t, "invalid coordinate", simErr.Message)
}

func TestSetText_EncodingErrorSendsNothing(t *testing.T) {
	transport := newMockTransport("ack")
	c := newTestClient(t, transport)

	err := c.SetText(1, 1, "two words")

	_, ok := stderrors.AsType[*errors.EncodingError](err)
	require.True(t, ok)
	require.Empty(t, transport.Sent())

	// The unused response is still there for the next call.
	require.NoError(t, c.ClearAllText())
}

func TestUnacknowledgedAnnotations(t *testing.T) {
	transport := newMockTransport("false")
	c := newTestClient(t, transport, func(o *config.Options) {
		o.UnacknowledgedAnnotations = true
	})

	require.NoError(t, c.SetColor(1, 2, protocol.Red))
	require.NoError(t, c.SetText(1, 2, "42"))
	require.NoError(t, c.ClearAllColor())

	// Only the sensor read consumes a response.
	wall, err := c.WallFront()
	require.NoError(t, err)
	require.False(t, wall)

	require.Equal(t, []string{"setColor 1 2 r", "setText 1 2 42", "clearAllColor", "wallFront"}, transport.Sent())
}

func TestUnacknowledgedAnnotations_MouseCommandsStillReadAck(t *testing.T) {
	transport := newMockTransport("ack", "ack")
	c := newTestClient(t, transport, func(o *config.Options) {
		o.UnacknowledgedAnnotations = true
	})

	require.NoError(t, c.TurnLeft())
	require.NoError(t, c.SetWall(0, 0, protocol.East))
	require.NoError(t, c.AckReset())

	require.Equal(t, []string{"turnLeft", "setWall 0 0 e", "ackReset"}, transport.Sent())
}

func TestAckReset(t *testing.T) {
	transport := newMockTransport("true", "ack")
	c := newTestClient(t, transport)

	reset, err := c.WasReset()
	require.NoError(t, err)
	require.True(t, reset)
	require.NoError(t, c.AckReset())

	require.Equal(t, []string{"wasReset", "ackReset"}, transport.Sent())
}

func TestGetStat(t *testing.T) {
	transport := newMockTransport("1250", "Error unknown stat")
	c := newTestClient(t, transport)

	buf, err := c.GetStat("total-distance")
	require.NoError(t, err)
	require.Equal(t, 4, buf.Len())
	require.Equal(t, []byte("1250"), buf.Bytes())

	require.NoError(t, buf.Release())
	require.ErrorIs(t, buf.Release(), errors.ErrBufferReleased)

	buf, err = c.GetStat("bogus")
	require.Nil(t, buf)

	_, ok := stderrors.AsType[*errors.SimulatorError](err)
	require.True(t, ok)

	require.Equal(t, []string{"getStat total-distance", "getStat bogus"}, transport.Sent())
}

func TestGetStat_ErrorWithSeparatorIsNotAPayload(t *testing.T) {
	for _, response := range []string{"Error\tunknown stat", "Error:unknown stat"} {
		t.Run(response, func(t *testing.T) {
			c := newTestClient(t, newMockTransport(response))

			buf, err := c.GetStat("bogus")
			require.Nil(t, buf)

			simErr, ok := stderrors.AsType[*errors.SimulatorError](err)
			require.True(t, ok, "expected SimulatorError, got %v", err)
			require.Equal(t, "unknown stat", simErr.Message)
		})
	}
}

func TestGetStat_InvalidName(t *testing.T) {
	transport := newMockTransport()
	c := newTestClient(t, transport)

	_, err := c.GetStat("total distance")

	_, ok := stderrors.AsType[*errors.EncodingError](err)
	require.True(t, ok)
	require.Empty(t, transport.Sent())
}

func TestStat(t *testing.T) {
	transport := newMockTransport("17", "88.5", "-1")
	c := newTestClient(t, transport)

	turns, err := c.Stat(protocol.CurrentRunTurns)
	require.NoError(t, err)
	n, ok := turns.Int()
	require.True(t, ok)
	require.Equal(t, 17, n)

	score, err := c.Stat(protocol.Score)
	require.NoError(t, err)
	require.InDelta(t, 88.5, score.Value, 1e-9)

	best, err := c.Stat(protocol.BestRunTurns)
	require.NoError(t, err)
	require.False(t, best.HasValue())
}

func TestTransportFailureIsTerminal(t *testing.T) {
	transport := newMockTransport()
	transport.readErr = &errors.TransportError{Op: "read", Err: io.ErrUnexpectedEOF}

	c := newTestClient(t, transport)

	_, err := c.WallFront()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// Later calls fail with the stored error and never touch the stream.
	transport.readErr = nil
	transport.responses = []string{"ack"}

	err = c.TurnLeft()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Equal(t, []string{"wallFront"}, transport.Sent())
}

func TestSendFailureIsTerminal(t *testing.T) {
	transport := newMockTransport("ack")
	transport.sendErr = &errors.TransportError{Op: "write", Err: io.ErrClosedPipe}

	c := newTestClient(t, transport)

	err := c.TurnLeft()

	transportErr, ok := stderrors.AsType[*errors.TransportError](err)
	require.True(t, ok)
	require.Equal(t, "write", transportErr.Op)

	transport.sendErr = nil
	require.ErrorIs(t, c.ClearAllColor(), io.ErrClosedPipe)
}

func TestProtocolErrorIsNotTerminal(t *testing.T) {
	transport := newMockTransport("garbage", "ack")
	c := newTestClient(t, transport)

	_, err := c.MazeWidth()
	require.Error(t, err)
	require.NoError(t, c.TurnLeft())
}

func TestRequestInFlight(t *testing.T) {
	transport := newMockTransport("false")
	c := newTestClient(t, transport)

	var nested error

	transport.onRead = func() {
		transport.onRead = nil
		nested = c.TurnLeft()
	}

	_, err := c.WallFront()
	require.NoError(t, err)
	require.ErrorIs(t, nested, errors.ErrRequestInFlight)
	require.Equal(t, []string{"wallFront"}, transport.Sent())
}

func TestClose(t *testing.T) {
	transport := newMockTransport("ack")
	c := newTestClient(t, transport)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	require.True(t, transport.closed)

	require.ErrorIs(t, c.TurnLeft(), errors.ErrClientClosed)
	require.Empty(t, transport.Sent())
}

func TestEndToEnd_WallFrontThenMove(t *testing.T) {
	transport := newMockTransport("false", "ack")
	c := newTestClient(t, transport)

	wall, err := c.WallFront()
	require.NoError(t, err)
	require.False(t, wall)

	require.NoError(t, c.MoveForward())

	require.Equal(t, []string{"wallFront", "moveForward"}, transport.Sent())
}
