// Package mms provides a Go client for the micromouse simulator (mms).
//
// The simulator starts a robot-control program and talks to it over the
// program's standard input and output, one text line at a time. This package
// turns that protocol into typed calls: every method sends one command line,
// blocks for the single response line and decodes it.
//
// # Basic Usage
//
//	ctx := context.Background()
//	mouse, err := mms.NewClient(ctx,
//	    mms.WithLogger(mms.StderrLogger(slog.LevelDebug)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer mouse.Close()
//
//	for {
//	    left, err := mouse.WallLeft()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if !left {
//	        mouse.TurnLeft()
//	    }
//	    for {
//	        front, err := mouse.WallFront()
//	        if err != nil {
//	            log.Fatal(err)
//	        }
//	        if !front {
//	            break
//	        }
//	        mouse.TurnRight()
//	    }
//	    mouse.MoveForward()
//	}
//
// # Logging
//
// Standard output carries the protocol, so logs must go elsewhere. The
// default logger discards everything; StderrLogger builds a slog logger on
// standard error, which the simulator shows in its log panel.
//
// # Error Handling
//
// Every operation failure is one of four typed errors. A ProcessError from a
// spawned peer arrives wrapped in a TransportError.
//
//	err := mouse.SetWall(3, 5, mms.North)
//	if simErr, ok := errors.AsType[*mms.SimulatorError](err); ok {
//	    // The simulator rejected the command; the session is still usable.
//	    log.Printf("rejected: %s", simErr.Message)
//	}
//	if _, ok := errors.AsType[*mms.TransportError](err); ok {
//	    // The streams are gone; every later call returns the same error.
//	    os.Exit(1)
//	}
//
// EncodingError is returned before anything is sent when an argument cannot
// travel as a single token, and ProtocolError when a response does not match
// the grammar of the command. A crash while moving is a SimulatorError that
// matches ErrCrashed.
//
// # Concurrency
//
// A Client performs one round trip at a time and must not be shared between
// goroutines. Starting a call while another is waiting for its response
// returns ErrRequestInFlight.
package mms
