// Package mmstest provides a scripted stand-in for the simulator so robot
// code can be tested without running mms.
//
// The fake peer is connected to a real client over in-memory pipes, so every
// byte goes through the same transport and codec as in production:
//
//	sim := mmstest.NewScript(t,
//	    mmstest.Reply("wallFront", "false"),
//	    mmstest.Reply("moveForward", "ack"),
//	)
//	err := mmstest.Run(ctx, sim, func(mouse mms.Client) error {
//	    if wall, err := mouse.WallFront(); err != nil || wall {
//	        return err
//	    }
//	    return mouse.MoveForward()
//	})
package mmstest

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"

	mms "github.com/wagiedev/mms-sdk-go"
)

// Exchange is one expected command and the line sent back for it.
type Exchange struct {
	Command    string
	Response   string
	NoResponse bool
}

// Reply expects command and answers it with response.
func Reply(command, response string) Exchange {
	return Exchange{Command: command, Response: response}
}

// Silent expects command and answers nothing.
func Silent(command string) Exchange {
	return Exchange{Command: command, NoResponse: true}
}

// Simulator is a fake simulator peer.
type Simulator struct {
	// handler returns the response for a command line, and false when the
	// command gets no response.
	handler func(cmd string) (string, bool)

	mu       sync.Mutex
	received []string
}

// NewSimulator returns a peer that answers each command with handler.
// A handler returning false sends nothing back.
func NewSimulator(handler func(cmd string) (string, bool)) *Simulator {
	return &Simulator{handler: handler}
}

// NewScript returns a peer that expects exactly the given exchanges in order.
// Unexpected commands are reported on t and answered with an Error line;
// leftover exchanges are reported when the test ends.
func NewScript(t testing.TB, exchanges ...Exchange) *Simulator {
	t.Helper()

	var (
		mu   sync.Mutex
		next int
	)

	t.Cleanup(func() {
		mu.Lock()
		defer mu.Unlock()

		for _, ex := range exchanges[next:] {
			t.Errorf("mmstest: expected command %q was never sent", ex.Command)
		}
	})

	return NewSimulator(func(cmd string) (string, bool) {
		mu.Lock()
		defer mu.Unlock()

		if next >= len(exchanges) {
			t.Errorf("mmstest: unexpected command %q after script ended", cmd)

			return "Error unexpected command", true
		}

		ex := exchanges[next]
		if cmd != ex.Command {
			t.Errorf("mmstest: command %d: got %q, want %q", next, cmd, ex.Command)

			return "Error unexpected command", true
		}

		next++

		return ex.Response, !ex.NoResponse
	})
}

// Received returns every command line the peer has read.
func (s *Simulator) Received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.received...)
}

// Serve answers commands read from r by writing to w until r is exhausted.
func (s *Simulator) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd := scanner.Text()

		s.mu.Lock()
		s.received = append(s.received, cmd)
		s.mu.Unlock()

		response, ok := s.handler(cmd)
		if !ok {
			continue
		}

		if strings.ContainsAny(response, "\r\n") {
			return fmt.Errorf("mmstest: response to %q spans lines", cmd)
		}

		if _, err := io.WriteString(w, response+"\n"); err != nil {
			if stderrors.Is(err, io.ErrClosedPipe) {
				return nil
			}

			return fmt.Errorf("mmstest: write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil && !stderrors.Is(err, io.ErrClosedPipe) {
		return fmt.Errorf("mmstest: read command: %w", err)
	}

	return nil
}

// Run connects a client to sim over in-memory pipes, calls fn, and closes
// the client. It returns fn's error or the first peer failure.
func Run(ctx context.Context, sim *Simulator, fn func(mms.Client) error, opts ...mms.Option) error {
	clientIn, simOut := io.Pipe()
	simIn, clientOut := io.Pipe()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer simIn.Close()
		defer simOut.Close()

		return sim.Serve(simIn, simOut)
	})

	g.Go(func() error {
		// Closing the client closes both pipe ends it owns, which ends Serve.
		defer clientOut.Close()

		opts = append(opts, mms.WithStreams(clientIn, clientOut))

		return mms.WithClient(gCtx, fn, opts...)
	})

	return g.Wait()
}
