package lexer

import (
	"bufio"
	"io"
	"strings"

	"github.com/navionguy/tinybasic/token"
)

//Lexer a lexical analyzer instance
type Lexer struct {
	rdr  *bufio.Reader
	ch   rune // current char under examination
	eof  bool // set once the reader is exhausted, ch is then meaningless
	line int  // line holding ch
	col  int  // column of ch within its line

	remarks bool // hand back REM tokens instead of dropping them
}

//New create a new lexer object reading from rdr
func New(rdr io.Reader) *Lexer {
	l := &Lexer{
		rdr:  bufio.NewReader(rdr),
		line: 1,
	}
	l.readChar()
	return l
}

//NewString is a convenience wrapper for lexing in memory source
func NewString(input string) *Lexer {
	return New(strings.NewReader(input))
}

//ReportRemarks makes REM come back as a token, the comment text is still skipped
func (l *Lexer) ReportRemarks() {
	l.remarks = true
}

//NextToken scans for the next token, once EOF is reached he keeps returning it
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	tok := token.Token{Line: l.line, Col: l.col}

	if l.eof {
		tok.Type = token.EOF
		tok.Literal = token.EOF
		return tok
	}

	switch l.ch {
	case '\n':
		tok.Type, tok.Literal = token.EOL, "\n"
	case '+':
		tok.Type, tok.Literal = token.PLUS, "+"
	case '-':
		tok.Type, tok.Literal = token.MINUS, "-"
	case '*':
		tok.Type, tok.Literal = token.ASTERISK, "*"
	case '/':
		tok.Type, tok.Literal = token.SLASH, "/"
	case '=':
		tok.Type, tok.Literal = token.EQ, "="
	case '(':
		tok.Type, tok.Literal = token.LPAREN, "("
	case ')':
		tok.Type, tok.Literal = token.RPAREN, ")"
	case ',':
		tok.Type, tok.Literal = token.COMMA, ","
	case '<':
		tok.Type, tok.Literal = l.readLessThan()
	case '>':
		tok.Type, tok.Literal = l.readGreaterThan()
	case '"':
		tok.Type, tok.Literal = l.readString()
		return tok
	default:
		if isLetter(l.ch) {
			word := l.readWord()
			tok.Type = token.LookupIdent(word)
			tok.Literal = word

			if tok.Type == token.REM {
				l.skipComment()
				if l.remarks {
					return tok
				}
				return l.NextToken()
			}
			return tok
		} else if isDigit(l.ch) {
			tok.Type = token.NUMBER
			tok.Literal = l.readNumber()
			return tok
		}
		tok.Type, tok.Literal = token.ILLEGAL, string(l.ch)
	}

	l.readChar()
	return tok
}

func (l *Lexer) readChar() {
	if l.eof {
		return
	}

	if l.ch == '\n' {
		l.line++
		l.col = 0
	}

	r, _, err := l.rdr.ReadRune()
	l.col++
	if err != nil {
		l.ch = 0
		l.eof = true
		return
	}
	l.ch = r
}

//peekChar - take a look at, but don't consume the next character
func (l *Lexer) peekChar() rune {
	if l.eof {
		return 0
	}

	r, _, err := l.rdr.ReadRune()
	if err != nil {
		return 0
	}
	l.rdr.UnreadRune()

	return r
}

// letters only, digits end a word
func (l *Lexer) readWord() string {
	var out strings.Builder
	for !l.eof && isLetter(l.ch) {
		out.WriteRune(l.ch)
		l.readChar()
	}
	return out.String()
}

// reads a string of digits, no sign, no decimal point
func (l *Lexer) readNumber() string {
	var out strings.Builder
	for !l.eof && isDigit(l.ch) {
		out.WriteRune(l.ch)
		l.readChar()
	}
	return out.String()
}

// <, <= or <>
func (l *Lexer) readLessThan() (token.TokenType, string) {
	switch l.peekChar() {
	case '=':
		l.readChar()
		return token.LTE, "<="
	case '>':
		l.readChar()
		return token.NOT_EQ, "<>"
	}
	return token.LT, "<"
}

// >, >= or ><
func (l *Lexer) readGreaterThan() (token.TokenType, string) {
	switch l.peekChar() {
	case '=':
		l.readChar()
		return token.GTE, ">="
	case '<':
		l.readChar()
		return token.NOT_EQ, "><"
	}
	return token.GT, ">"
}

// the literal excludes the quotes, a backslash takes the next
// character literally.  Running out of input is ILLEGAL and the
// partial literal keeps its opening quote so the parser can tell.
func (l *Lexer) readString() (token.TokenType, string) {
	var out strings.Builder
	l.readChar()

	for {
		if l.eof {
			return token.ILLEGAL, `"` + out.String()
		}

		switch l.ch {
		case '"':
			l.readChar()
			return token.STRING, out.String()
		case '\\':
			l.readChar()
			if l.eof {
				return token.ILLEGAL, `"` + out.String()
			}
		}

		out.WriteRune(l.ch)
		l.readChar()
	}
}

// soak up everything after a REM, the newline stays for the EOL token
func (l *Lexer) skipComment() {
	for !l.eof && l.ch != '\n' {
		l.readChar()
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.eof && (l.ch == ' ' || l.ch == '\t' || l.ch == '\r') {
		l.readChar()
	}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
