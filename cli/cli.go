package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/navionguy/tinybasic/ast"
	"github.com/navionguy/tinybasic/berrors"
	"github.com/navionguy/tinybasic/evaluator"
	"github.com/navionguy/tinybasic/lexer"
	"github.com/navionguy/tinybasic/object"
	"github.com/navionguy/tinybasic/parser"
	"github.com/navionguy/tinybasic/settings"
)

// what to do with a program once it loads
const (
	OutputRun = "run" // interpret it
	OutputLst = "lst" // write a listing next to the source
)

// ParseOutput checks an output selection
func ParseOutput(s string) (string, error) {
	switch s {
	case OutputRun, OutputLst:
		return s, nil
	}
	return "", berrors.New(berrors.BadCommandLine, 0, 0)
}

// Load parses the source held in rdr
func Load(rdr io.Reader, opts settings.Options) (*ast.Program, error) {
	return parser.New(lexer.New(rdr), opts).ParseProgram()
}

// LoadFile opens and parses a source file
func LoadFile(path string, opts settings.Options) (*ast.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, berrors.New(berrors.FileNotFound, 0, 0)
	}
	defer f.Close()

	return Load(f, opts)
}

// Execute runs prog in a fresh environment talking to term
func Execute(prog *ast.Program, opts settings.Options, term object.Console) error {
	env := object.NewEnvironment(term)
	evaluator.Configure(env, opts)

	return evaluator.Run(prog, env)
}

// ListingName is where the listing of path goes
func ListingName(path string) string {
	return path + ".lst"
}

// WriteListing saves the listing of prog beside path
func WriteListing(path string, prog *ast.Program) error {
	err := os.WriteFile(ListingName(path), []byte(prog.String()), 0o644)
	if err != nil {
		return berrors.New(berrors.FileNotFound, 0, 0)
	}
	return nil
}

// Start handles one source file start to finish and returns the
// exit status, zero unless an error was reported
func Start(path string, opts settings.Options, output string, term object.Console) int {
	var rp berrors.Reporter

	prog, err := LoadFile(path, opts)
	if err != nil {
		rp.Set(err)
		if rp.Code() == berrors.FileNotFound {
			term.Println(fmt.Sprintf("Error: cannot open file %s", path))
		} else {
			giveError("Parse error", &rp, term)
		}
		return rp.Code()
	}

	switch output {
	case OutputLst:
		err = WriteListing(path, prog)
		rp.Set(err)
		if err != nil {
			giveError("Error", &rp, term)
		}
	default:
		err = Execute(prog, opts, term)
		rp.Set(err)
		if err != nil {
			giveError("Runtime error", &rp, term)
		}
	}

	return rp.Code()
}

func giveError(kind string, rp *berrors.Reporter, term object.Console) {
	term.Println(kind + ": " + rp.Message())
}
