package object

import (
	"strconv"
	"strings"

	"github.com/navionguy/tinybasic/berrors"
)

// VariableCount is the number of variable slots, A through Z
const VariableCount = 26

// InputPrompt is shown when INPUT needs another line
const InputPrompt = "? "

// Environment holds everything one run of a program changes
type Environment struct {
	vars    [VariableCount]int16 // A..Z
	stack   []int                // line indexes to resume at after RETURN
	halted  bool                 // END has run
	term    Console              // the terminal console object
	pending string               // input read but not yet consumed by INPUT
	nearest bool                 // label search may settle for the next line up
}

// NewEnvironment creates a place to store variables
func NewEnvironment(term Console) *Environment {
	return &Environment{term: term}
}

// Reset zeroes the variables and forgets any GOSUBs, input already buffered is kept
func (e *Environment) Reset() {
	e.vars = [VariableCount]int16{}
	e.stack = nil
	e.halted = false
}

// Terminal gives access to the console
func (e *Environment) Terminal() Console {
	return e.term
}

// Get returns the value in a variable slot
func (e *Environment) Get(slot int) int16 {
	return e.vars[slot]
}

// Set stores a value into a variable slot
func (e *Environment) Set(slot int, v int16) {
	e.vars[slot] = v
}

// Variables returns a copy of all the slots
func (e *Environment) Variables() [VariableCount]int16 {
	return e.vars
}

// Push saves a resume point for RETURN
func (e *Environment) Push(index int) {
	e.stack = append(e.stack, index)
}

// Pop retrieves the most recent resume point, false if there isn't one
func (e *Environment) Pop() (int, bool) {
	if len(e.stack) == 0 {
		return 0, false
	}

	index := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return index, true
}

// StackDepth is how many GOSUBs are waiting on a RETURN
func (e *Environment) StackDepth() int {
	return len(e.stack)
}

// Halt stops the run
func (e *Environment) Halt() {
	e.halted = true
}

// Halted is true once END has executed
func (e *Environment) Halted() bool {
	return e.halted
}

// SetNearest controls whether a jump to a missing label lands on the next line up
func (e *Environment) SetNearest(on bool) {
	e.nearest = on
}

// Nearest reports the label search mode
func (e *Environment) Nearest() bool {
	return e.nearest
}

func isInputSeparator(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == ','
}

func isSign(ch byte) bool {
	return ch == '+' || ch == '-'
}

// ReadInteger pulls the next signed integer out of the input,
// asking the console for more lines as needed.  Values are split
// by whitespace, commas or the sign of the next value.  Anything
// that isn't a number throws away the rest of that line.
func (e *Environment) ReadInteger() (int16, error) {
	for {
		e.pending = strings.TrimLeft(e.pending, " \t\r\n,")
		if len(e.pending) > 0 {
			break
		}

		line, err := e.term.ReadLine(InputPrompt)
		if err != nil {
			return 0, berrors.New(berrors.InvalidInput, 0, 0)
		}
		e.pending = line
	}

	start := 0
	if isSign(e.pending[0]) {
		start = 1
	}

	end := start
	for end < len(e.pending) && e.pending[end] >= '0' && e.pending[end] <= '9' {
		end++
	}

	// a sign straight after the digits starts the next value
	if end == start || (end < len(e.pending) && !isInputSeparator(e.pending[end]) && !isSign(e.pending[end])) {
		e.pending = ""
		return 0, berrors.New(berrors.InvalidInput, 0, 0)
	}

	text := e.pending[:end]
	e.pending = e.pending[end:]

	v, err := strconv.ParseInt(text, 10, 16)
	if err != nil {
		return 0, berrors.New(berrors.Overflow, 0, 0)
	}

	return int16(v), nil
}
