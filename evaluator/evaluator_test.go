package evaluator

import (
	"errors"
	"testing"

	"github.com/navionguy/tinybasic/ast"
	"github.com/navionguy/tinybasic/berrors"
	"github.com/navionguy/tinybasic/lexer"
	"github.com/navionguy/tinybasic/mocks"
	"github.com/navionguy/tinybasic/object"
	"github.com/navionguy/tinybasic/parser"
	"github.com/navionguy/tinybasic/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadProgram(t *testing.T, src string, mode settings.LineNumberMode) *ast.Program {
	opts := settings.Default()
	opts.LineNumbers = mode

	prog, err := parser.New(lexer.NewString(src), opts).ParseProgram()
	require.NoErrorf(t, err, "parsing %q", src)
	return prog
}

func testRun(t *testing.T, src string, mode settings.LineNumberMode, input ...string) (*mocks.MockTerm, *object.Environment, error) {
	prog := loadProgram(t, src, mode)

	mt := mocks.NewMockTerm(input...)
	env := object.NewEnvironment(mt)
	opts := settings.Default()
	opts.LineNumbers = mode
	Configure(env, opts)

	return mt, env, Run(prog, env)
}

func Test_Assignments(t *testing.T) {
	tests := []struct {
		inp string
		exp int16
	}{
		{inp: "LET A=2+3*4", exp: 14},
		{inp: "LET A=(2+3)*4", exp: 20},
		{inp: "LET A=10-4-3", exp: 3},
		{inp: "LET A=100/10/5", exp: 2},
		{inp: "LET A=-7/2", exp: -3},
		{inp: "LET A=7/-2", exp: -3},
		{inp: "LET A=-(3-5)", exp: 2},
		{inp: "LET A=-32767-1", exp: -32768},
		{inp: "LET A=32767", exp: 32767},
		{inp: "LET A=+4--4", exp: 8},
		{inp: "LET B=6\nLET A=B*B-B", exp: 30},
		{inp: "LET A=Z", exp: 0},
	}

	for _, tt := range tests {
		_, env, err := testRun(t, tt.inp, settings.Optional)

		require.NoErrorf(t, err, "running %q", tt.inp)
		assert.Equalf(t, tt.exp, env.Get(0), "running %q", tt.inp)
	}
}

func Test_Print(t *testing.T) {
	tests := []struct {
		inp string
		exp string
	}{
		{inp: `PRINT "Hello"`, exp: "Hello\n"},
		{inp: `PRINT "A=",5,"B=",-5`, exp: "A=5B=-5\n"},
		{inp: `PRINT 1,2,3`, exp: "123\n"},
		{inp: "LET A=3\nPRINT A*A", exp: "9\n"},
		{inp: `PRINT "say \"hi\""`, exp: "say \"hi\"\n"},
	}

	for _, tt := range tests {
		mt, _, err := testRun(t, tt.inp, settings.Optional)

		require.NoError(t, err)
		assert.Equal(t, tt.exp, mt.Output())
	}
}

func Test_MandatoryGoto(t *testing.T) {
	mt, _, err := testRun(t, "10 GOTO 30\n20 PRINT \"Y\"\n30 PRINT \"X\"\n", settings.Mandatory)

	require.NoError(t, err)
	assert.Equal(t, "X\n", mt.Output())
}

func Test_ComputedGoto(t *testing.T) {
	mt, _, err := testRun(t, "10 LET N=3\n20 GOTO N*10+10\n30 PRINT 30\n40 PRINT 40\n", settings.Mandatory)

	require.NoError(t, err)
	assert.Equal(t, "40\n", mt.Output())
}

func Test_LabelSearch(t *testing.T) {
	src := "10 GOTO 25\n20 PRINT 20\n30 PRINT 30\n"

	mt, _, err := testRun(t, src, settings.Mandatory)
	require.NoError(t, err)
	assert.Equal(t, "30\n", mt.Output())

	_, _, err = testRun(t, src, settings.Optional)
	assert.Equal(t, berrors.InvalidLineNumber, berrors.CodeOf(err))

	_, _, err = testRun(t, "10 GOTO 99\n20 END\n", settings.Mandatory)
	assert.Equal(t, berrors.InvalidLineNumber, berrors.CodeOf(err))
}

func Test_GosubReturn(t *testing.T) {
	src := `10 GOSUB 100
20 PRINT "back"
30 GOSUB 100
40 END
100 PRINT "sub"
110 RETURN
`
	mt, env, err := testRun(t, src, settings.Mandatory)

	require.NoError(t, err)
	assert.Equal(t, "sub\nback\nsub\n", mt.Output())
	assert.Equal(t, 0, env.StackDepth())
	assert.True(t, env.Halted())
}

func Test_NestedGosub(t *testing.T) {
	src := `10 GOSUB 100
20 PRINT 3
30 END
100 GOSUB 200
110 PRINT 2
120 RETURN
200 PRINT 1
210 RETURN
`
	mt, _, err := testRun(t, src, settings.Mandatory)

	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", mt.Output())
}

func Test_If(t *testing.T) {
	tests := []struct {
		inp string
		exp string
	}{
		{inp: "10 IF 1=1 THEN PRINT 1\n20 PRINT 2", exp: "1\n2\n"},
		{inp: "10 IF 1<>1 THEN PRINT 1\n20 PRINT 2", exp: "2\n"},
		{inp: "10 IF 2>1 THEN GOTO 30\n20 PRINT 2\n30 PRINT 3", exp: "3\n"},
		{inp: "10 IF 1>=2 THEN GOTO 30\n20 PRINT 2\n30 PRINT 3", exp: "2\n3\n"},
		{inp: "10 IF 1<=1 THEN END\n20 PRINT 2", exp: ""},
		{inp: "10 IF 1=1 THEN IF 2=2 THEN PRINT 22\n20 PRINT 2", exp: "22\n2\n"},
		{inp: "10 IF 1=1 THEN\n20 PRINT 2", exp: "2\n"},
		{inp: "10 IF 1=1 THEN GOSUB 100\n20 END\n100 PRINT 5\n110 RETURN", exp: "5\n"},
	}

	for _, tt := range tests {
		mt, _, err := testRun(t, tt.inp, settings.Mandatory)

		require.NoErrorf(t, err, "running %q", tt.inp)
		assert.Equalf(t, tt.exp, mt.Output(), "running %q", tt.inp)
	}
}

func Test_Loop(t *testing.T) {
	src := "10 LET I=1\n20 PRINT I\n30 LET I=I+1\n40 IF I<=3 THEN GOTO 20\n"

	mt, env, err := testRun(t, src, settings.Mandatory)

	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", mt.Output())
	assert.Equal(t, int16(4), env.Get(8))
}

func Test_End(t *testing.T) {
	mt, env, err := testRun(t, "10 PRINT 1\n20 END\n30 PRINT 2\n", settings.Mandatory)

	require.NoError(t, err)
	assert.Equal(t, "1\n", mt.Output())
	assert.True(t, env.Halted())
}

func Test_Input(t *testing.T) {
	tests := []struct {
		input []string
		exp   string
	}{
		{input: []string{"3, -4"}, exp: "-1\n"},
		{input: []string{"3", "4"}, exp: "7\n"},
		{input: []string{"", "+10 5"}, exp: "15\n"},
		{input: []string{"3-4"}, exp: "-1\n"},
	}

	for _, tt := range tests {
		mt, _, err := testRun(t, "10 INPUT A,B\n20 PRINT A+B\n", settings.Mandatory, tt.input...)

		require.NoErrorf(t, err, "input %v", tt.input)
		assert.Equalf(t, tt.exp, mt.Output(), "input %v", tt.input)
	}
}

func Test_RuntimeErrors(t *testing.T) {
	tests := []struct {
		inp   string
		input []string
		code  int
		line  int
		label int
		out   string
		a     int16
	}{
		{inp: "10 RETURN", code: berrors.ReturnWithoutGosub, line: 1, label: 10},
		{inp: "10 LET A=32767\n20 LET A=A+1", code: berrors.Overflow, line: 2, label: 20, a: 32767},
		{inp: "10 LET A=-32767-1\n20 LET A=A-1", code: berrors.Overflow, line: 2, label: 20, a: -32768},
		{inp: "10 LET A=5\n20 LET A=10/0", code: berrors.DivideByZero, line: 2, label: 20, a: 5},
		{inp: "10 LET A=200*200/10", code: berrors.Overflow, line: 1, label: 10},
		{inp: "10 LET A=-32767-1\n20 LET B=-A", code: berrors.Overflow, line: 2, label: 20, a: -32768},
		{inp: "10 LET A=(-32767-1)/-1", code: berrors.Overflow, line: 1, label: 10},
		{inp: "10 PRINT \"A\",1/0", code: berrors.DivideByZero, line: 1, label: 10, out: "A\n"},
		{inp: "10 PRINT 1/0,\"A\"", code: berrors.DivideByZero, line: 1, label: 10},
		{inp: "10 PRINT 1\n20 GOSUB 1/0", code: berrors.DivideByZero, line: 2, label: 20, out: "1\n"},
		{inp: "10 INPUT A", input: []string{"40000"}, code: berrors.Overflow, line: 1, label: 10},
		{inp: "10 INPUT A", input: []string{"many"}, code: berrors.InvalidInput, line: 1, label: 10},
		{inp: "10 INPUT A", code: berrors.InvalidInput, line: 1, label: 10},
		{inp: "10 INPUT A,B", input: []string{"9"}, code: berrors.InvalidInput, line: 1, label: 10, a: 9},
	}

	for _, tt := range tests {
		mt, env, err := testRun(t, tt.inp, settings.Mandatory, tt.input...)

		var be *berrors.Error
		require.Truef(t, errors.As(err, &be), "running %q", tt.inp)
		assert.Equalf(t, tt.code, be.Code, "running %q gave %s", tt.inp, err)
		assert.Equalf(t, tt.line, be.Line, "running %q", tt.inp)
		assert.Equalf(t, tt.label, be.Label, "running %q", tt.inp)
		assert.Equalf(t, tt.out, mt.Output(), "running %q", tt.inp)
		assert.Equalf(t, tt.a, env.Get(0), "running %q", tt.inp)
	}
}

func Test_ErrorUnlabelledLine(t *testing.T) {
	_, _, err := testRun(t, "LET A=1\nLET A=A/0\n", settings.Optional)

	require.Error(t, err)
	assert.Equal(t, "Divide by zero in line 2", err.Error())
}

func Test_RerunResetsState(t *testing.T) {
	prog := loadProgram(t, "10 PRINT A\n20 LET A=A+1\n30 GOSUB 50\n40 END\n50 END\n", settings.Mandatory)

	mt := mocks.NewMockTerm()
	env := object.NewEnvironment(mt)
	Configure(env, settings.Options{LineNumbers: settings.Mandatory, LineLimit: 32767})

	require.NoError(t, Run(prog, env))
	assert.Equal(t, 1, env.StackDepth())

	require.NoError(t, Run(prog, env))
	assert.Equal(t, "0\n0\n", mt.Output())
	assert.Equal(t, int16(1), env.Get(0))
}

func Test_RunFrom(t *testing.T) {
	prog := loadProgram(t, "10 PRINT 1\n20 PRINT 2\n30 PRINT 3\n", settings.Mandatory)

	mt := mocks.NewMockTerm()
	env := object.NewEnvironment(mt)

	require.NoError(t, RunFrom(prog, 1, env))
	assert.Equal(t, "2\n3\n", mt.Output())

	require.NoError(t, RunFrom(prog, 3, env))
	assert.Equal(t, "2\n3\n", mt.Output())
}

func Test_ProgramSharedBetweenRuns(t *testing.T) {
	prog := loadProgram(t, "10 LET A=A+7\n20 PRINT A\n", settings.Mandatory)
	before := prog.String()

	for i := 0; i < 3; i++ {
		mt := mocks.NewMockTerm()
		require.NoError(t, Run(prog, object.NewEnvironment(mt)))
		assert.Equal(t, "7\n", mt.Output())
	}

	assert.Equal(t, before, prog.String())
}
