package mms_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mms "github.com/wagiedev/mms-sdk-go"
	"github.com/wagiedev/mms-sdk-go/mmstest"
)

func TestClient_WallFollowerStep(t *testing.T) {
	sim := mmstest.NewScript(t,
		mmstest.Reply("wallFront", "false"),
		mmstest.Reply("moveForward", "ack"),
	)

	err := mmstest.Run(context.Background(), sim, func(mouse mms.Client) error {
		wall, err := mouse.WallFront()
		if err != nil {
			return err
		}

		assert.False(t, wall)

		return mouse.MoveForward()
	})
	require.NoError(t, err)
}

func TestClient_MazeSize(t *testing.T) {
	sim := mmstest.NewScript(t,
		mmstest.Reply("mazeWidth", "16"),
		mmstest.Reply("mazeHeight", "sixteen"),
	)

	err := mmstest.Run(context.Background(), sim, func(mouse mms.Client) error {
		width, err := mouse.MazeWidth()
		if err != nil {
			return err
		}

		assert.Equal(t, 16, width)

		_, err = mouse.MazeHeight()
		_, ok := stderrors.AsType[*mms.ProtocolError](err)
		assert.True(t, ok, "want ProtocolError, got %v", err)

		return nil
	})
	require.NoError(t, err)
}

func TestClient_Annotations(t *testing.T) {
	sim := mmstest.NewScript(t,
		mmstest.Reply("setWall 3 5 n", "ack"),
		mmstest.Reply("setColor 0 0 G", "ack"),
		mmstest.Reply("setText 0 0 abc", "ack"),
		mmstest.Reply("clearWall 99 99 w", "Error invalid coordinate"),
	)

	err := mmstest.Run(context.Background(), sim, func(mouse mms.Client) error {
		if err := mouse.SetWall(3, 5, mms.North); err != nil {
			return err
		}

		if err := mouse.SetColor(0, 0, mms.DarkGreen); err != nil {
			return err
		}

		// Rejected locally; the script never sees it.
		err := mouse.SetText(0, 0, "a b")
		_, ok := stderrors.AsType[*mms.EncodingError](err)
		assert.True(t, ok, "want EncodingError, got %v", err)

		if err := mouse.SetText(0, 0, "abc"); err != nil {
			return err
		}

		err = mouse.ClearWall(99, 99, mms.West)
		simErr, ok := stderrors.AsType[*mms.SimulatorError](err)
		if assert.True(t, ok, "want SimulatorError, got %v", err) {
			assert.Equal(t, "invalid coordinate", simErr.Message)
		}

		return nil
	})
	require.NoError(t, err)
}

func TestClient_Crash(t *testing.T) {
	sim := mmstest.NewScript(t,
		mmstest.Reply("moveForward 4", "crash"),
		mmstest.Reply("wasReset", "true"),
		mmstest.Reply("ackReset", "ack"),
	)

	err := mmstest.Run(context.Background(), sim, func(mouse mms.Client) error {
		err := mouse.MoveForward(4)
		assert.ErrorIs(t, err, mms.ErrCrashed)

		reset, err := mouse.WasReset()
		if err != nil {
			return err
		}

		assert.True(t, reset)

		return mouse.AckReset()
	})
	require.NoError(t, err)
}

func TestClient_Stats(t *testing.T) {
	sim := mmstest.NewScript(t,
		mmstest.Reply("getStat total-distance", "42"),
		mmstest.Reply("getStat score", "-1"),
	)

	err := mmstest.Run(context.Background(), sim, func(mouse mms.Client) error {
		buf, err := mouse.GetStat(string(mms.TotalDistance))
		if err != nil {
			return err
		}

		assert.Equal(t, "42", buf.String())
		assert.Equal(t, 2, buf.Len())
		assert.NoError(t, buf.Release())
		assert.ErrorIs(t, buf.Release(), mms.ErrBufferReleased)

		score, err := mouse.Stat(mms.Score)
		if err != nil {
			return err
		}

		assert.False(t, score.HasValue())

		return nil
	})
	require.NoError(t, err)
}

func TestClient_SimulatorGoneIsTerminal(t *testing.T) {
	sim := mmstest.NewSimulator(func(string) (string, bool) { return "", false })

	var first error

	err := mmstest.Run(context.Background(), sim, func(mouse mms.Client) error {
		_, first = mouse.WallLeft()

		return nil
	}, mms.WithTransport(&closedTransport{}))
	require.NoError(t, err)

	_, ok := stderrors.AsType[*mms.TransportError](first)
	require.True(t, ok, "want TransportError, got %v", first)
	require.ErrorIs(t, first, mms.ErrStreamClosed)
}

func TestNewClient_WithStreams(t *testing.T) {
	sim := mmstest.NewScript(t, mmstest.Reply("wallRight", "true"))

	err := mmstest.Run(context.Background(), sim, func(mouse mms.Client) error {
		assert.NotEmpty(t, mouse.SessionID())

		wall, err := mouse.WallRight()
		assert.True(t, wall)

		return err
	}, mms.WithLogger(mms.NopLogger()), mms.WithMaxLineLength(64))
	require.NoError(t, err)
}

// closedTransport behaves like a simulator that already exited.
type closedTransport struct{}

func (*closedTransport) SendLine(string) error {
	return &mms.TransportError{Op: "write", Err: mms.ErrStreamClosed}
}

func (*closedTransport) ReadLine() (string, error) {
	return "", &mms.TransportError{Op: "read", Err: mms.ErrStreamClosed}
}

func (*closedTransport) Close() error { return nil }
