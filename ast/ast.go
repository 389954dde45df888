package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/navionguy/tinybasic/token"
)

// Node defines interface for all node types
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement defines the interface for all statement nodes
type Statement interface {
	Node
	statementNode()
}

// Sign is the optional unary sign in front of a factor
type Sign int

const (
	NoSign Sign = iota
	Positive
	Negative
)

func (s Sign) String() string {
	switch s {
	case Positive:
		return "+"
	case Negative:
		return "-"
	}
	return ""
}

// FactorKind says which of the three factor shapes is present
type FactorKind int

const (
	ValueFactor FactorKind = iota
	VariableFactor
	GroupFactor
)

// Factor is a signed literal, variable or parenthesized expression
type Factor struct {
	Token    token.Token // first token of the factor, the sign if there is one
	Sign     Sign
	Kind     FactorKind
	Value    int16       // ValueFactor
	Variable int         // VariableFactor, 0 is A
	Group    *Expression // GroupFactor
}

// TokenLiteral returns my token literal
func (f *Factor) TokenLiteral() string { return f.Token.Literal }

func (f *Factor) String() string {
	var out bytes.Buffer

	out.WriteString(f.Sign.String())

	switch f.Kind {
	case ValueFactor:
		out.WriteString(strconv.Itoa(int(f.Value)))
	case VariableFactor:
		out.WriteString(VariableName(f.Variable))
	case GroupFactor:
		out.WriteString("(")
		if f.Group != nil {
			out.WriteString(f.Group.String())
		}
		out.WriteString(")")
	}

	return out.String()
}

// RightFactor is an operator and the factor to its right
type RightFactor struct {
	Op     token.TokenType // ASTERISK or SLASH
	Factor *Factor
}

// Term is a chain of factors joined by * and /
type Term struct {
	First *Factor
	Rest  []RightFactor
}

// TokenLiteral returns my token literal
func (t *Term) TokenLiteral() string { return t.First.TokenLiteral() }

func (t *Term) String() string {
	var out bytes.Buffer

	out.WriteString(t.First.String())
	for _, rf := range t.Rest {
		out.WriteString(string(rf.Op))
		out.WriteString(rf.Factor.String())
	}

	return out.String()
}

// RightTerm is an operator and the term to its right
type RightTerm struct {
	Op   token.TokenType // PLUS or MINUS
	Term *Term
}

// Expression is a chain of terms joined by + and -
type Expression struct {
	First *Term
	Rest  []RightTerm
}

// TokenLiteral returns my token literal
func (e *Expression) TokenLiteral() string { return e.First.TokenLiteral() }

func (e *Expression) String() string {
	var out bytes.Buffer

	out.WriteString(e.First.String())
	for _, rt := range e.Rest {
		out.WriteString(string(rt.Op))
		out.WriteString(rt.Term.String())
	}

	return out.String()
}

// VariableName turns a variable slot back into its letter
func VariableName(slot int) string {
	if slot < 0 || slot > 25 {
		return "?"
	}
	return string(rune('A' + slot))
}

// LetStatement assigns an expression to a variable
type LetStatement struct {
	Token    token.Token
	Variable int
	Value    *Expression
}

func (ls *LetStatement) statementNode() {}

// TokenLiteral returns my token literal
func (ls *LetStatement) TokenLiteral() string { return strings.ToUpper(ls.Token.Literal) }

func (ls *LetStatement) String() string {
	return "LET " + VariableName(ls.Variable) + "=" + ls.Value.String()
}

// IfStatement runs Then when the comparison holds
type IfStatement struct {
	Token token.Token
	Left  *Expression
	Op    token.TokenType // one of the relational operators
	Right *Expression
	Then  Statement
}

func (is *IfStatement) statementNode() {}

// TokenLiteral returns my token literal
func (is *IfStatement) TokenLiteral() string { return strings.ToUpper(is.Token.Literal) }

func (is *IfStatement) String() string {
	var out bytes.Buffer

	out.WriteString("IF ")
	out.WriteString(is.Left.String())
	out.WriteString(" " + string(is.Op) + " ")
	out.WriteString(is.Right.String())
	out.WriteString(" THEN ")
	if is.Then != nil {
		out.WriteString(is.Then.String())
	}

	return out.String()
}

// GotoStatement transfers control to a computed label
type GotoStatement struct {
	Token token.Token
	Label *Expression
}

func (gt *GotoStatement) statementNode() {}

// TokenLiteral returns my token literal
func (gt *GotoStatement) TokenLiteral() string { return strings.ToUpper(gt.Token.Literal) }

func (gt *GotoStatement) String() string {
	return "GOTO " + gt.Label.String()
}

// GosubStatement saves the next line and jumps to a computed label
type GosubStatement struct {
	Token token.Token
	Label *Expression
}

func (gs *GosubStatement) statementNode() {}

// TokenLiteral returns my token literal
func (gs *GosubStatement) TokenLiteral() string { return strings.ToUpper(gs.Token.Literal) }

func (gs *GosubStatement) String() string {
	return "GOSUB " + gs.Label.String()
}

// ReturnStatement resumes after the most recent GOSUB
type ReturnStatement struct {
	Token token.Token
}

func (rs *ReturnStatement) statementNode() {}

// TokenLiteral returns my token literal
func (rs *ReturnStatement) TokenLiteral() string { return strings.ToUpper(rs.Token.Literal) }

func (rs *ReturnStatement) String() string { return "RETURN" }

// EndStatement stops the program
type EndStatement struct {
	Token token.Token
}

func (es *EndStatement) statementNode() {}

// TokenLiteral returns my token literal
func (es *EndStatement) TokenLiteral() string { return strings.ToUpper(es.Token.Literal) }

func (es *EndStatement) String() string { return "END" }

// PrintItem is either a string literal or an expression, never both
type PrintItem struct {
	Text  string
	Value *Expression
}

// IsString is true for literal text items
func (pi PrintItem) IsString() bool { return pi.Value == nil }

func (pi PrintItem) String() string {
	if pi.IsString() {
		return Quote(pi.Text)
	}
	return pi.Value.String()
}

// Quote wraps text in double quotes, escaping quotes and backslashes so the lexer reads it back unchanged
func Quote(text string) string {
	var out strings.Builder

	out.WriteByte('"')
	for _, ch := range text {
		if ch == '"' || ch == '\\' {
			out.WriteByte('\\')
		}
		out.WriteRune(ch)
	}
	out.WriteByte('"')

	return out.String()
}

// PrintStatement writes its items followed by a newline
type PrintStatement struct {
	Token token.Token
	Items []PrintItem
}

func (ps *PrintStatement) statementNode() {}

// TokenLiteral returns my token literal
func (ps *PrintStatement) TokenLiteral() string { return strings.ToUpper(ps.Token.Literal) }

func (ps *PrintStatement) String() string {
	items := []string{}
	for _, it := range ps.Items {
		items = append(items, it.String())
	}

	return "PRINT " + strings.Join(items, ",")
}

// InputStatement reads integers into its variables
type InputStatement struct {
	Token     token.Token
	Variables []int
}

func (is *InputStatement) statementNode() {}

// TokenLiteral returns my token literal
func (is *InputStatement) TokenLiteral() string { return strings.ToUpper(is.Token.Literal) }

func (is *InputStatement) String() string {
	vars := []string{}
	for _, v := range is.Variables {
		vars = append(vars, VariableName(v))
	}

	return "INPUT " + strings.Join(vars, ",")
}
