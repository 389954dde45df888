// Package object how the interpretor holds values and state during execution
package object

import (
	"math"

	"github.com/navionguy/tinybasic/berrors"
)

// Console defines how to collect input and display output
type Console interface {
	// Print outputs the passed string
	Print(string)
	// Println prints the string followed by a newline
	Println(string)
	// ReadLine returns the next line of input without its newline,
	// prompt is shown first if the console is interactive
	ReadLine(prompt string) (string, error)
}

// every value the language knows about is a signed 16 bit integer,
// sums and products are worked in int and then range checked

func checked(v int) (int16, error) {
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, berrors.New(berrors.Overflow, 0, 0)
	}
	return int16(v), nil
}

// Add returns l+r or Overflow
func Add(l, r int16) (int16, error) {
	return checked(int(l) + int(r))
}

// Subtract returns l-r or Overflow
func Subtract(l, r int16) (int16, error) {
	return checked(int(l) - int(r))
}

// Multiply returns l*r or Overflow
func Multiply(l, r int16) (int16, error) {
	return checked(int(l) * int(r))
}

// Divide returns l/r truncated toward zero.  A zero divisor
// is caught before anything is attempted.
func Divide(l, r int16) (int16, error) {
	if r == 0 {
		return 0, berrors.New(berrors.DivideByZero, 0, 0)
	}
	// -32768 / -1 is the one quotient that won't fit
	return checked(int(l) / int(r))
}

// Negate flips the sign, -32768 has no positive twin
func Negate(v int16) (int16, error) {
	return checked(-int(v))
}

// Compare applies a relational operator, op is the operator's text
func Compare(l int16, op string, r int16) bool {
	switch op {
	case "=":
		return l == r
	case "<>", "><":
		return l != r
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	}
	return false
}
