package mocks

import "github.com/navionguy/tinybasic/token"

// MockLexer feeds the parser a canned token stream
type MockLexer struct {
	tokens  []token.Token
	Remarks bool // set when the parser asked for REM tokens
}

// add a token to the array
func (ml *MockLexer) AddToken(tok token.Token) {
	ml.tokens = append(ml.tokens, tok)
}

// return the next token, EOF forever once they run out
func (ml *MockLexer) NextToken() token.Token {
	if len(ml.tokens) == 0 {
		return token.Token{Type: token.EOF, Literal: token.EOF}
	}
	rc := ml.tokens[0]
	ml.tokens = ml.tokens[1:]
	return rc
}

func (ml *MockLexer) ReportRemarks() {
	ml.Remarks = true
}
