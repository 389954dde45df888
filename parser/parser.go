package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/navionguy/tinybasic/ast"
	"github.com/navionguy/tinybasic/berrors"
	"github.com/navionguy/tinybasic/settings"
	"github.com/navionguy/tinybasic/token"
)

// Lexer is where the parser gets its tokens
type Lexer interface {
	NextToken() token.Token
	ReportRemarks()
}

// Parser an instance
//
// curToken is always the next token nobody has claimed yet, each
// parse function starts on its first token and leaves curToken
// on the first token past what it consumed.
type Parser struct {
	l    Lexer
	opts settings.Options

	curToken  token.Token
	lastLabel int // label of the most recent valid line
}

// New create and return a Parser instance
func New(l Lexer, opts settings.Options) *Parser {
	p := &Parser{
		l:    l,
		opts: opts,
	}

	if !opts.Comments {
		l.ReportRemarks()
	}

	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) atEndOfLine() bool {
	return p.curTokenIs(token.EOL) || p.curTokenIs(token.EOF)
}

// builds the error for code, blaming the line tok came from
func (p *Parser) error(code int, tok token.Token) error {
	return berrors.New(code, tok.Line, p.lastLabel)
}

// lexical errors arrive as ILLEGAL tokens, an opening quote means the string never closed
func (p *Parser) illegal(tok token.Token) error {
	if strings.HasPrefix(tok.Literal, `"`) {
		return p.error(berrors.UnterminatedString, tok)
	}
	return p.error(berrors.IllegalCharacter, tok)
}

// ParseProgram reads lines until EOF.  The first error abandons
// the whole load, no partial program is returned.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		pl, err := p.parseProgramLine()
		if err != nil {
			return nil, err
		}
		prog.Lines = append(prog.Lines, pl)
	}

	return prog, nil
}

func (p *Parser) parseProgramLine() (*ast.ProgramLine, error) {
	start := p.curToken
	pl := &ast.ProgramLine{Label: p.defaultLabel(), Line: start.Line}

	if p.curTokenIs(token.NUMBER) {
		lbl, err := strconv.Atoi(p.curToken.Literal)
		if err != nil {
			lbl = -1
		}
		pl.Label = lbl
		p.nextToken()
	}

	if !p.validLabel(pl.Label) {
		return nil, p.error(berrors.InvalidLineNumber, start)
	}
	p.lastLabel = pl.Label

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	pl.Statement = stmt

	if !p.atEndOfLine() {
		return nil, p.error(berrors.UnexpectedParameter, p.curToken)
	}

	if p.curTokenIs(token.EOL) {
		p.nextToken()
	}

	return pl, nil
}

// label a line gets when it doesn't bring its own
func (p *Parser) defaultLabel() int {
	if p.opts.LineNumbers == settings.Implied {
		return p.lastLabel + 1
	}
	return 0
}

func (p *Parser) validLabel(label int) bool {
	if label < 0 || label > p.opts.LineLimit {
		return false
	}

	if p.opts.LineNumbers == settings.Optional {
		return true
	}

	return label > 0 && label > p.lastLabel
}

// parseStatement returns nil, nil for a blank or comment line
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curToken.Type {
	case token.EOL, token.EOF:
		return nil, nil
	case token.LET:
		return p.parseLetStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.GOTO:
		return p.parseGotoStatement()
	case token.GOSUB:
		return p.parseGosubStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.END:
		return p.parseEndStatement()
	case token.PRINT:
		return p.parsePrintStatement()
	case token.INPUT:
		return p.parseInputStatement()
	case token.ILLEGAL:
		return nil, p.illegal(p.curToken)
	}

	return nil, p.error(berrors.UnrecognisedCommand, p.curToken)
}

// LET var = expression
func (p *Parser) parseLetStatement() (ast.Statement, error) {
	stmt := &ast.LetStatement{Token: p.curToken}
	p.nextToken()

	if !p.curTokenIs(token.VARIABLE) {
		return nil, p.error(berrors.InvalidVariable, p.curToken)
	}
	stmt.Variable = variableSlot(p.curToken.Literal)
	p.nextToken()

	if !p.curTokenIs(token.EQ) {
		return nil, p.error(berrors.InvalidAssignment, p.curToken)
	}
	p.nextToken()

	exp, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Value = exp

	return stmt, nil
}

// IF expression relop expression THEN statement
func (p *Parser) parseIfStatement() (ast.Statement, error) {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.nextToken()

	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Left = left

	if !token.IsRelational(p.curToken.Type) {
		return nil, p.error(berrors.InvalidOperator, p.curToken)
	}
	stmt.Op = p.curToken.Type
	p.nextToken()

	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Right = right

	if !p.curTokenIs(token.THEN) {
		return nil, p.error(berrors.ThenExpected, p.curToken)
	}
	p.nextToken()

	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt.Then = then

	return stmt, nil
}

func (p *Parser) parseGotoStatement() (ast.Statement, error) {
	stmt := &ast.GotoStatement{Token: p.curToken}
	p.nextToken()

	exp, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Label = exp

	return stmt, nil
}

func (p *Parser) parseGosubStatement() (ast.Statement, error) {
	stmt := &ast.GosubStatement{Token: p.curToken}
	p.nextToken()

	exp, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Label = exp

	return stmt, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	p.nextToken()
	return stmt, nil
}

func (p *Parser) parseEndStatement() (ast.Statement, error) {
	stmt := &ast.EndStatement{Token: p.curToken}
	p.nextToken()
	return stmt, nil
}

func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	stmt := &ast.PrintStatement{Token: p.curToken}
	p.nextToken()

	items, err := p.parsePrintItems()
	if err != nil {
		return nil, err
	}
	stmt.Items = items

	return stmt, nil
}

func (p *Parser) parseInputStatement() (ast.Statement, error) {
	stmt := &ast.InputStatement{Token: p.curToken}
	p.nextToken()

	vars, err := p.parseVariableList()
	if err != nil {
		return nil, err
	}
	stmt.Variables = vars

	return stmt, nil
}

// parseExpression handles the + and - level
func (p *Parser) parseExpression() (*ast.Expression, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	exp := &ast.Expression{First: first}

	for p.curTokenIs(token.PLUS) || p.curTokenIs(token.MINUS) {
		op := p.curToken.Type
		p.nextToken()

		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		exp.Rest = append(exp.Rest, ast.RightTerm{Op: op, Term: term})
	}

	return exp, nil
}

// parseTerm handles the * and / level
func (p *Parser) parseTerm() (*ast.Term, error) {
	first, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	term := &ast.Term{First: first}

	for p.curTokenIs(token.ASTERISK) || p.curTokenIs(token.SLASH) {
		op := p.curToken.Type
		p.nextToken()

		fac, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		term.Rest = append(term.Rest, ast.RightFactor{Op: op, Factor: fac})
	}

	return term, nil
}

// parseFactor takes an optional sign then a literal, variable or (expression)
func (p *Parser) parseFactor() (*ast.Factor, error) {
	start := p.curToken
	fac := &ast.Factor{Token: start}

	switch p.curToken.Type {
	case token.PLUS:
		fac.Sign = ast.Positive
		p.nextToken()
	case token.MINUS:
		fac.Sign = ast.Negative
		p.nextToken()
	}

	switch p.curToken.Type {
	case token.NUMBER:
		fac.Kind = ast.ValueFactor
		// the magnitude is checked before the sign, so -32768 can't be written
		v, err := strconv.Atoi(p.curToken.Literal)
		if err != nil || v > math.MaxInt16 {
			return nil, p.error(berrors.Overflow, start)
		}
		fac.Value = int16(v)

	case token.VARIABLE:
		fac.Kind = ast.VariableFactor
		fac.Variable = variableSlot(p.curToken.Literal)

	case token.LPAREN:
		p.nextToken()
		grp, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if !p.curTokenIs(token.RPAREN) {
			return nil, p.error(berrors.MissingRightParenthesis, start)
		}
		fac.Kind = ast.GroupFactor
		fac.Group = grp

	case token.ILLEGAL:
		return nil, p.illegal(p.curToken)

	default:
		return nil, p.error(berrors.InvalidExpression, p.curToken)
	}

	p.nextToken()
	return fac, nil
}

// A is slot 0, case doesn't matter
func variableSlot(lit string) int {
	return int(lit[0]&0x1f) - 1
}
