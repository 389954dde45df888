package berrors

import (
	"errors"
	"fmt"
)

const (
	None = iota
	InvalidLineNumber
	UnrecognisedCommand
	InvalidVariable
	InvalidAssignment
	InvalidExpression
	MissingRightParenthesis
	InvalidOperator
	ThenExpected
	UnexpectedParameter
	ReturnWithoutGosub // 10
	DivideByZero
	Overflow
	FileNotFound
	BadCommandLine
	InvalidPrintOutput
	IllegalCharacter
	UnterminatedString
	InvalidInput
)

// TextForError returns the error text based on error number
func TextForError(err int) string {
	switch err {
	case None:
		return "Successful"
	case InvalidLineNumber:
		return "Invalid line number"
	case UnrecognisedCommand:
		return "Unrecognised command"
	case InvalidVariable:
		return "Invalid variable"
	case InvalidAssignment:
		return "Invalid assignment"
	case InvalidExpression:
		return "Invalid expression"
	case MissingRightParenthesis:
		return "Missing )"
	case InvalidOperator:
		return "Invalid operator"
	case ThenExpected:
		return "THEN expected"
	case UnexpectedParameter:
		return "Unexpected parameter"
	case ReturnWithoutGosub:
		return "RETURN without GOSUB"
	case DivideByZero:
		return "Divide by zero"
	case Overflow:
		return "Overflow"
	case FileNotFound:
		return "File not found"
	case BadCommandLine:
		return "Bad command line"
	case InvalidPrintOutput:
		return "Invalid PRINT output"
	case IllegalCharacter:
		return "Illegal character"
	case UnterminatedString:
		return "Unterminated string"
	case InvalidInput:
		return "Invalid input"
	}

	return "Unprintable error"
}

// Error is the single outstanding error of a load or a run.
// Line is the source line it was detected on, Label the program
// label in force at the time, zero for either means unknown.
type Error struct {
	Code  int
	Line  int
	Label int
}

// New builds an error for the code
func New(code, line, label int) *Error {
	return &Error{Code: code, Line: line, Label: label}
}

func (e *Error) Error() string {
	msg := TextForError(e.Code)

	if e.Line > 0 {
		msg = fmt.Sprintf("%s in line %d", msg, e.Line)
	}

	if e.Label > 0 {
		msg = fmt.Sprintf("%s, label %d", msg, e.Label)
	}

	return msg
}

// CodeOf digs the error number out of err, None for nil
// and Unprintable errors for anything not from here
func CodeOf(err error) int {
	if err == nil {
		return None
	}

	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}

	return -1
}

// Reporter remembers the last error seen so collaborators
// can ask about it after the fact
type Reporter struct {
	last *Error
}

// Set records err as the current error, nil clears it
func (r *Reporter) Set(err error) {
	if err == nil {
		r.last = nil
		return
	}

	var be *Error
	if errors.As(err, &be) {
		r.last = be
		return
	}

	r.last = &Error{Code: -1}
}

// Code returns the current error number
func (r *Reporter) Code() int {
	if r.last == nil {
		return None
	}
	return r.last.Code
}

// Line returns the source line of the current error
func (r *Reporter) Line() int {
	if r.last == nil {
		return 0
	}
	return r.last.Line
}

// Label returns the program label of the current error
func (r *Reporter) Label() int {
	if r.last == nil {
		return 0
	}
	return r.last.Label
}

// Message renders the current error, empty when there isn't one
func (r *Reporter) Message() string {
	if r.last == nil {
		return ""
	}
	return r.last.Error()
}
