package evaluator

import (
	"github.com/navionguy/tinybasic/ast"
	"github.com/navionguy/tinybasic/object"
	"github.com/navionguy/tinybasic/token"
)

// chains are worked strictly left to right, every step range checked

func evalExpression(exp *ast.Expression, env *object.Environment) (int16, error) {
	acc, err := evalTerm(exp.First, env)
	if err != nil {
		return 0, err
	}

	for _, rt := range exp.Rest {
		r, err := evalTerm(rt.Term, env)
		if err != nil {
			return 0, err
		}

		if rt.Op == token.MINUS {
			acc, err = object.Subtract(acc, r)
		} else {
			acc, err = object.Add(acc, r)
		}
		if err != nil {
			return 0, err
		}
	}

	return acc, nil
}

func evalTerm(term *ast.Term, env *object.Environment) (int16, error) {
	acc, err := evalFactor(term.First, env)
	if err != nil {
		return 0, err
	}

	for _, rf := range term.Rest {
		r, err := evalFactor(rf.Factor, env)
		if err != nil {
			return 0, err
		}

		if rf.Op == token.SLASH {
			acc, err = object.Divide(acc, r)
		} else {
			acc, err = object.Multiply(acc, r)
		}
		if err != nil {
			return 0, err
		}
	}

	return acc, nil
}

func evalFactor(fac *ast.Factor, env *object.Environment) (int16, error) {
	var v int16

	switch fac.Kind {
	case ast.ValueFactor:
		v = fac.Value
	case ast.VariableFactor:
		v = env.Get(fac.Variable)
	case ast.GroupFactor:
		var err error
		v, err = evalExpression(fac.Group, env)
		if err != nil {
			return 0, err
		}
	}

	if fac.Sign == ast.Negative {
		return object.Negate(v)
	}

	return v, nil
}
