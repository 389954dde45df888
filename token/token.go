package token

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	EOL     = "EOL"

	// Identifiers + literals
	NUMBER   = "NUMBER"   // 0 to 32767, unsigned
	STRING   = "STRING"   // "A string literal"
	VARIABLE = "VARIABLE" // A..Z
	WORD     = "WORD"     // any other run of letters

	// Operators
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"

	EQ     = "="
	NOT_EQ = "<>"
	LT     = "<"
	LTE    = "<="
	GT     = ">"
	GTE    = ">="

	// Delimiters
	COMMA  = ","
	LPAREN = "("
	RPAREN = ")"

	// Keywords
	END    = "END"
	GOSUB  = "GOSUB"
	GOTO   = "GOTO"
	IF     = "IF"
	INPUT  = "INPUT"
	LET    = "LET"
	PRINT  = "PRINT"
	REM    = "REM"
	RETURN = "RETURN"
	THEN   = "THEN"
)

// Token is one lexeme plus the place it started in the source
type Token struct {
	Type    TokenType
	Literal string
	Line    int // 1 based source line
	Col     int // 1 based column of the first character
}

var keywords = map[string]TokenType{
	"END":    END,
	"GOSUB":  GOSUB,
	"GOTO":   GOTO,
	"IF":     IF,
	"INPUT":  INPUT,
	"LET":    LET,
	"PRINT":  PRINT,
	"REM":    REM,
	"RETURN": RETURN,
	"THEN":   THEN,
}

var upper = cases.Upper(language.Und)

// LookupIdent classifies a run of letters.  A single letter is always
// a variable, even when it could start a keyword.
func LookupIdent(ident string) TokenType {
	if len(ident) == 1 {
		return VARIABLE
	}

	if tok, ok := keywords[upper.String(ident)]; ok {
		return tok
	}
	return WORD
}

// IsRelational reports whether the type is one of the six comparison operators
func IsRelational(tt TokenType) bool {
	switch tt {
	case EQ, NOT_EQ, LT, LTE, GT, GTE:
		return true
	}
	return false
}
