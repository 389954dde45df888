package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram(labels ...int) *Program {
	p := &Program{}
	for i, lbl := range labels {
		p.Lines = append(p.Lines, &ProgramLine{Label: lbl, Statement: &EndStatement{}, Line: i + 1})
	}
	return p
}

func Test_ProgramLineString(t *testing.T) {
	tests := []struct {
		pl  *ProgramLine
		exp string
	}{
		{pl: &ProgramLine{Label: 10, Statement: &EndStatement{}}, exp: "   10 END"},
		{pl: &ProgramLine{Label: 32767, Statement: &ReturnStatement{}}, exp: "32767 RETURN"},
		{pl: &ProgramLine{Statement: &EndStatement{}}, exp: "      END"},
		{pl: &ProgramLine{Label: 5}, exp: "    5 "},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, tt.pl.String())
	}

	assert.Equal(t, "", (&ProgramLine{}).TokenLiteral())
}

func Test_ProgramListing(t *testing.T) {
	p := &Program{Lines: []*ProgramLine{
		{Label: 10, Statement: &LetStatement{Variable: 0, Value: valueExp(1)}, Line: 1},
		{Label: 20, Line: 2},
		{Label: 30, Statement: &PrintStatement{Items: []PrintItem{{Value: varExp(0)}}}, Line: 3},
		{Statement: &EndStatement{}, Line: 4},
	}}

	exp := "   10 LET A=1\n   30 PRINT A\n      END\n"

	assert.Equal(t, exp, p.String())
	assert.Equal(t, "TinyBASIC", p.TokenLiteral())
	assert.Equal(t, 4, p.Len())
}

func Test_Find(t *testing.T) {
	p := testProgram(10, 20, 30, 50)

	tests := []struct {
		target  int
		nearest bool
		exp     int
	}{
		{target: 10, exp: 0},
		{target: 30, exp: 2},
		{target: 40, exp: -1},
		{target: 40, nearest: true, exp: 3},
		{target: 5, nearest: true, exp: 0},
		{target: 60, nearest: true, exp: -1},
		{target: 50, nearest: true, exp: 3},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.exp, p.Find(tt.target, tt.nearest), "Find(%d, %t)", tt.target, tt.nearest)
	}
}

func Test_FindRepeatedLabels(t *testing.T) {
	p := testProgram(10, 0, 10, 5)

	assert.Equal(t, 0, p.Find(10, false))
	assert.Equal(t, 3, p.Find(5, false))
	assert.Equal(t, 1, p.Find(0, false))
}
