// Command mms-repl drives a micromouse simulator peer by hand.
//
// The peer is any program that speaks the simulator side of the protocol on
// its standard streams. mms-repl starts it as a child process, then reads
// commands from the terminal and prints each typed result:
//
//	mms-repl [-v] [-write-only] program [args...]
//
// Type help at the prompt for the command list.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mms "github.com/wagiedev/mms-sdk-go"
)

const prompt = "mms> "

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("mms-repl", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "log every round trip to stderr")
	writeOnly := fs.Bool("write-only", false, "do not wait for replies to wall, color and text commands")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: mms-repl [flags] program [args...]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() == 0 {
		fs.Usage()

		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}

	opts := []mms.Option{
		mms.WithSimulator(fs.Arg(0), fs.Args()[1:]...),
		mms.WithLogger(mms.StderrLogger(level)),
		mms.WithStderr(func(line string) {
			fmt.Fprintf(os.Stderr, "[sim] %s\n", line)
		}),
	}

	if *writeOnly {
		opts = append(opts, mms.WithUnacknowledgedAnnotations())
	}

	mouse, err := mms.NewClient(ctx, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	defer func() { _ = mouse.Close() }()

	editor := NewLineEditor()
	defer editor.Close()

	if err := repl(mouse, editor, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

// repl reads commands until input ends, quit is entered or the connection
// to the peer is lost. Operation errors are printed and the loop goes on.
func repl(mouse mms.Client, editor *LineEditor, out, errOut io.Writer) error {
	for {
		line, err := editor.GetLine(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)

				return nil
			}

			return err
		}

		result, err := execute(mouse, line)
		if errors.Is(err, errQuit) {
			return nil
		}

		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)

			if fatal(err) {
				return err
			}

			continue
		}

		if result != "" {
			fmt.Fprintln(out, result)
		}
	}
}

// fatal reports errors after which the client will not recover.
func fatal(err error) bool {
	if errors.Is(err, mms.ErrClientClosed) {
		return true
	}

	_, ok := errors.AsType[*mms.TransportError](err)

	return ok
}
