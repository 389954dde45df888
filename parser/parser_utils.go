package parser

import (
	"github.com/navionguy/tinybasic/ast"
	"github.com/navionguy/tinybasic/berrors"
	"github.com/navionguy/tinybasic/token"
)

// parse a comma separated series of print items, there must be at least one
func (p *Parser) parsePrintItems() ([]ast.PrintItem, error) {
	var items []ast.PrintItem

	for {
		item, err := p.parsePrintItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if !p.curTokenIs(token.COMMA) {
			return items, nil
		}
		p.nextToken()
	}
}

// a string literal or anything that can start an expression
func (p *Parser) parsePrintItem() (ast.PrintItem, error) {
	switch p.curToken.Type {
	case token.STRING:
		item := ast.PrintItem{Text: p.curToken.Literal}
		p.nextToken()
		return item, nil
	case token.ILLEGAL:
		return ast.PrintItem{}, p.illegal(p.curToken)
	}

	if !startsFactor(p.curToken.Type) {
		return ast.PrintItem{}, p.error(berrors.InvalidPrintOutput, p.curToken)
	}

	tok := p.curToken
	exp, err := p.parseExpression()
	if err != nil {
		// lexical errors keep their own code, any other failure is the item's
		switch berrors.CodeOf(err) {
		case berrors.IllegalCharacter, berrors.UnterminatedString:
			return ast.PrintItem{}, err
		}
		return ast.PrintItem{}, p.error(berrors.InvalidPrintOutput, tok)
	}

	return ast.PrintItem{Value: exp}, nil
}

// parse a comma separated series of variables
func (p *Parser) parseVariableList() ([]int, error) {
	var vars []int

	for {
		if !p.curTokenIs(token.VARIABLE) {
			return nil, p.error(berrors.InvalidVariable, p.curToken)
		}
		vars = append(vars, variableSlot(p.curToken.Literal))
		p.nextToken()

		if !p.curTokenIs(token.COMMA) {
			return vars, nil
		}
		p.nextToken()
	}
}

func startsFactor(tt token.TokenType) bool {
	switch tt {
	case token.PLUS, token.MINUS, token.NUMBER, token.VARIABLE, token.LPAREN:
		return true
	}
	return false
}
