package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"golang.org/x/term"
)

const (
	// historyFileName is the history file in the user's home directory.
	historyFileName = ".mms_repl_history"

	// historySize is the maximum number of history entries to retain.
	historySize = 500
)

// LineEditor reads operator input. On a terminal it provides Emacs-style
// editing and persistent history; otherwise it reads plain lines so the
// REPL can be driven from a pipe or a script.
type LineEditor struct {
	interactive bool
	rl          *readline.Instance
	scanner     *bufio.Scanner
	out         io.Writer
}

// NewLineEditor picks the readline or plain implementation for stdin.
func NewLineEditor() *LineEditor {
	isInteractive := term.IsTerminal(int(os.Stdin.Fd())) &&
		os.Getenv("INSIDE_EMACS") == ""

	if !isInteractive {
		return newPlainLineEditor(os.Stdin, os.Stdout)
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:            historyPath(),
		HistoryLimit:           historySize,
		DisableAutoSaveHistory: true,
		Prompt:                 "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: readline init failed (%v), using basic input\n", err)

		return newPlainLineEditor(os.Stdin, os.Stdout)
	}

	return &LineEditor{interactive: true, rl: rl, out: os.Stdout}
}

func newPlainLineEditor(in io.Reader, out io.Writer) *LineEditor {
	return &LineEditor{scanner: bufio.NewScanner(in), out: out}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, historyFileName)
}

// GetLine shows prompt and returns the next line. Ctrl-C and Ctrl-D both
// end input with io.EOF.
func (le *LineEditor) GetLine(prompt string) (string, error) {
	if !le.interactive {
		fmt.Fprint(le.out, prompt)

		if !le.scanner.Scan() {
			if err := le.scanner.Err(); err != nil {
				return "", err
			}

			return "", io.EOF
		}

		return le.scanner.Text(), nil
	}

	le.rl.SetPrompt(prompt)

	line, err := le.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}

		return "", err
	}

	if trimmed := strings.TrimSpace(line); trimmed != "" {
		le.rl.SaveToHistory(trimmed)
	}

	return line, nil
}

// Close restores the terminal and saves history.
func (le *LineEditor) Close() {
	if le.rl != nil {
		le.rl.Close()
		le.rl = nil
	}
}
