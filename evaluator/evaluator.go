package evaluator

import (
	"strconv"

	"github.com/navionguy/tinybasic/ast"
	"github.com/navionguy/tinybasic/berrors"
	"github.com/navionguy/tinybasic/object"
	"github.com/navionguy/tinybasic/settings"
)

// Configure sets up env's label search to match the policy the program was parsed under
func Configure(env *object.Environment, opts settings.Options) {
	env.SetNearest(opts.LineNumbers != settings.Optional)
}

// Run executes the program from its first line
func Run(prog *ast.Program, env *object.Environment) error {
	return RunFrom(prog, 0, env)
}

// RunFrom starts execution at the line index start.  Variables are
// zeroed first.  The run ends at END, on the first error, or by
// falling off the last line.
func RunFrom(prog *ast.Program, start int, env *object.Environment) error {
	env.Reset()

	for idx := start; idx >= 0 && idx < len(prog.Lines) && !env.Halted(); {
		next, err := evalLine(prog, idx, env)
		if err != nil {
			return err
		}
		idx = next
	}

	return nil
}

// runs one line and returns the index of the line to run next
func evalLine(prog *ast.Program, idx int, env *object.Environment) (int, error) {
	pl := prog.Lines[idx]

	next, err := evalStatement(pl.Statement, prog, idx, env)
	if err != nil {
		return 0, blame(err, pl)
	}

	return next, nil
}

// stamps a bare error code with where it happened
func blame(err error, pl *ast.ProgramLine) error {
	return berrors.New(berrors.CodeOf(err), pl.Line, pl.Label)
}

func evalStatement(stmt ast.Statement, prog *ast.Program, idx int, env *object.Environment) (int, error) {
	switch stmt := stmt.(type) {
	case nil:
		// blank or comment line

	case *ast.LetStatement:
		return idx + 1, evalLetStatement(stmt, env)

	case *ast.IfStatement:
		return evalIfStatement(stmt, prog, idx, env)

	case *ast.GotoStatement:
		return evalGotoStatement(stmt.Label, prog, env)

	case *ast.GosubStatement:
		return evalGosubStatement(stmt, prog, idx, env)

	case *ast.ReturnStatement:
		return evalReturnStatement(env)

	case *ast.EndStatement:
		env.Halt()

	case *ast.PrintStatement:
		return idx + 1, evalPrintStatement(stmt, env)

	case *ast.InputStatement:
		return idx + 1, evalInputStatement(stmt, env)
	}

	return idx + 1, nil
}

func evalLetStatement(let *ast.LetStatement, env *object.Environment) error {
	v, err := evalExpression(let.Value, env)
	if err != nil {
		return err
	}

	env.Set(let.Variable, v)
	return nil
}

// the inner statement decides where control goes when the test passes
func evalIfStatement(stmt *ast.IfStatement, prog *ast.Program, idx int, env *object.Environment) (int, error) {
	l, err := evalExpression(stmt.Left, env)
	if err != nil {
		return 0, err
	}

	r, err := evalExpression(stmt.Right, env)
	if err != nil {
		return 0, err
	}

	if !object.Compare(l, string(stmt.Op), r) {
		return idx + 1, nil
	}

	return evalStatement(stmt.Then, prog, idx, env)
}

func evalGotoStatement(label *ast.Expression, prog *ast.Program, env *object.Environment) (int, error) {
	target, err := evalExpression(label, env)
	if err != nil {
		return 0, err
	}

	next := prog.Find(int(target), env.Nearest())
	if next < 0 {
		return 0, berrors.New(berrors.InvalidLineNumber, 0, 0)
	}

	return next, nil
}

func evalGosubStatement(stmt *ast.GosubStatement, prog *ast.Program, idx int, env *object.Environment) (int, error) {
	next, err := evalGotoStatement(stmt.Label, prog, env)
	if err != nil {
		return 0, err
	}

	env.Push(idx + 1)
	return next, nil
}

func evalReturnStatement(env *object.Environment) (int, error) {
	next, ok := env.Pop()
	if !ok {
		return 0, berrors.New(berrors.ReturnWithoutGosub, 0, 0)
	}

	return next, nil
}

// items are written back to back, the newline only follows if something was written
func evalPrintStatement(stmt *ast.PrintStatement, env *object.Environment) error {
	term := env.Terminal()
	items := 0

	for _, it := range stmt.Items {
		if it.IsString() {
			term.Print(it.Text)
			items++
			continue
		}

		v, err := evalExpression(it.Value, env)
		if err != nil {
			if items > 0 {
				term.Println("")
			}
			return err
		}
		term.Print(strconv.Itoa(int(v)))
		items++
	}

	if items > 0 {
		term.Println("")
	}
	return nil
}

func evalInputStatement(stmt *ast.InputStatement, env *object.Environment) error {
	for _, slot := range stmt.Variables {
		v, err := env.ReadInteger()
		if err != nil {
			return err
		}
		env.Set(slot, v)
	}

	return nil
}
