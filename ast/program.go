package ast

import (
	"bytes"
	"fmt"
)

// ProgramLine is one source line, a nil Statement is a blank or comment line
type ProgramLine struct {
	Label     int // 0 when the line has none
	Statement Statement
	Line      int // source line it came from
}

// TokenLiteral returns my token literal
func (pl *ProgramLine) TokenLiteral() string {
	if pl.Statement == nil {
		return ""
	}
	return pl.Statement.TokenLiteral()
}

// String gives the listing form, label right aligned in five columns
func (pl *ProgramLine) String() string {
	var out bytes.Buffer

	if pl.Label > 0 {
		out.WriteString(fmt.Sprintf("%5d ", pl.Label))
	} else {
		out.WriteString("      ")
	}

	if pl.Statement != nil {
		out.WriteString(pl.Statement.String())
	}

	return out.String()
}

//Program holds the root of the AST (Abstract Syntax Tree)
//once the parser hands it over nothing modifies it
type Program struct {
	Lines []*ProgramLine
}

// TokenLiteral returns string representation of the program
func (p *Program) TokenLiteral() string { return "TinyBASIC" }

// String produces the program listing, comment lines are left out
func (p *Program) String() string {
	var out bytes.Buffer

	for _, pl := range p.Lines {
		if pl.Statement == nil {
			continue
		}
		out.WriteString(pl.String())
		out.WriteString("\n")
	}

	return out.String()
}

// Len is the number of lines, comments included
func (p *Program) Len() int { return len(p.Lines) }

// Find returns the index of the line labelled target.  With nearest
// set the first line labelled at or above target will do.
// -1 means no line qualifies.
func (p *Program) Find(target int, nearest bool) int {
	for i, pl := range p.Lines {
		if pl.Label == target {
			return i
		}
		if nearest && pl.Label > target {
			return i
		}
	}
	return -1
}
