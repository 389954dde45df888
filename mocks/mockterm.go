package mocks

import (
	"io"
	"strings"
)

// MockTerm captures output and feeds scripted input lines
type MockTerm struct {
	Lines   []string // handed out one per ReadLine, io.EOF once empty
	Prompts []string // every prompt ReadLine was given
	out     strings.Builder
}

// NewMockTerm builds a terminal that will answer with lines
func NewMockTerm(lines ...string) *MockTerm {
	return &MockTerm{Lines: lines}
}

func (mt *MockTerm) Print(msg string) {
	mt.out.WriteString(msg)
}

func (mt *MockTerm) Println(msg string) {
	mt.out.WriteString(msg)
	mt.out.WriteString("\n")
}

func (mt *MockTerm) ReadLine(prompt string) (string, error) {
	mt.Prompts = append(mt.Prompts, prompt)

	if len(mt.Lines) == 0 {
		return "", io.EOF
	}

	line := mt.Lines[0]
	mt.Lines = mt.Lines[1:]
	return line, nil
}

// Output returns everything printed so far
func (mt *MockTerm) Output() string {
	return mt.out.String()
}
