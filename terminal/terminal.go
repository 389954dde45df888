package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// Terminal holds the terminal instance and provides io abilities
type Terminal struct {
	in   *bufio.Reader
	out  io.Writer
	line *liner.State // line editing, only when stdin is a tty
}

// New creates a Terminal reading from in and writing to out
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// NewStdio wires up the process console, prompting through liner when a person is typing
func NewStdio() *Terminal {
	t := New(os.Stdin, os.Stdout)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.line = liner.NewLiner()
		t.line.SetCtrlCAborts(true)
	}

	return t
}

// Interactive is true when input is being typed
func (t *Terminal) Interactive() bool {
	return t.line != nil
}

// Print sends the passed string to the output
func (t *Terminal) Print(msg string) {
	fmt.Fprint(t.out, msg)
}

// Println prints the string followed by a newline
func (t *Terminal) Println(msg string) {
	fmt.Fprintln(t.out, msg)
}

// ReadLine returns the next input line, the prompt only shows when interactive
func (t *Terminal) ReadLine(prompt string) (string, error) {
	if t.line != nil {
		s, err := t.line.Prompt(prompt)
		if err != nil {
			return "", err
		}
		t.line.AppendHistory(s)
		return s, nil
	}

	s, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || len(s) == 0) {
		return "", err
	}

	return strings.TrimRight(s, "\r\n"), nil
}

// Close gives the tty back
func (t *Terminal) Close() error {
	if t.line == nil {
		return nil
	}
	return t.line.Close()
}
