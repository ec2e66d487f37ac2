package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse("test.shy", []byte(src))
	require.NoError(t, err)
	return prog
}

func TestParseAssignAndCall(t *testing.T) {
	prog := mustParse(t, "x = 1 + 2 * 3\nprint(x)\n")
	require.Len(t, prog.Body, 2)

	as, ok := prog.Body[0].(*AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "x", as.Name)
	assert.Equal(t, 1, as.Line)

	// 1 + 2*3: multiplication binds tighter.
	add, ok := as.Value.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, TokPlus, add.Op)
	_, ok = add.L.(*IntLit)
	assert.True(t, ok)
	mul, ok := add.R.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, TokStar, mul.Op)

	es, ok := prog.Body[1].(*ExprStmt)
	require.True(t, ok)
	call, ok := es.X.(*CallExpr)
	require.True(t, ok)
	assert.Equal(t, "print", call.Name)
	require.Len(t, call.Args, 1)
}

func TestParseFunc(t *testing.T) {
	src := "def add(a, b):\n    return a + b\n\nx = add(1, 2)\n"
	prog := mustParse(t, src)

	require.Contains(t, prog.Funcs, "add")
	fd := prog.Funcs["add"]
	assert.Equal(t, []string{"a", "b"}, fd.Params)
	assert.Equal(t, 1, fd.Line)
	require.Len(t, fd.Body, 1)
	ret, ok := fd.Body[0].(*ReturnStmt)
	require.True(t, ok)
	assert.NotNil(t, ret.Value)
	assert.Equal(t, 2, ret.Line)

	require.Len(t, prog.Body, 1)
}

func TestParseIfElse(t *testing.T) {
	src := "if x > 1:\n    print(x)\nelse:\n    pass\n"
	prog := mustParse(t, src)
	require.Len(t, prog.Body, 1)
	st, ok := prog.Body[0].(*IfStmt)
	require.True(t, ok)
	require.Len(t, st.Then, 1)
	require.Len(t, st.Else, 1)
	_, ok = st.Else[0].(*PassStmt)
	assert.True(t, ok)
}

func TestParseWhileNested(t *testing.T) {
	src := "while n > 0:\n    if n == 2:\n        print(n)\n    n = n - 1\n"
	prog := mustParse(t, src)
	require.Len(t, prog.Body, 1)
	w, ok := prog.Body[0].(*WhileStmt)
	require.True(t, ok)
	require.Len(t, w.Body, 2)
	inner, ok := w.Body[0].(*IfStmt)
	require.True(t, ok)
	require.Len(t, inner.Then, 1)
}

func TestParseRaiseAndReturnNone(t *testing.T) {
	src := "def f():\n    return\n\nraise \"boom\"\n"
	prog := mustParse(t, src)
	ret := prog.Funcs["f"].Body[0].(*ReturnStmt)
	assert.Nil(t, ret.Value)

	rs, ok := prog.Body[0].(*RaiseStmt)
	require.True(t, ok)
	lit, ok := rs.Value.(*StrLit)
	require.True(t, ok)
	assert.Equal(t, "boom", lit.Value)
}

func TestParseComparisonChainsLeft(t *testing.T) {
	prog := mustParse(t, "x = 1 < 2 == True\n")
	as := prog.Body[0].(*AssignStmt)
	eq, ok := as.Value.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, TokEq, eq.Op)
	lt, ok := eq.L.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, TokLt, lt.Op)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unexpected indent", "    x = 1\n", "unexpected indent"},
		{"missing block", "def f():\nx = 1\n", "expected an indented block"},
		{"nested def", "def f():\n    def g():\n        pass\n", "nested function definitions"},
		{"missing colon", "if x\n    pass\n", "expected ':'"},
		{"empty condition", "while :\n    pass\n", "expected condition"},
		{"redefined", "def f():\n    pass\ndef f():\n    pass\n", "redefined"},
		{"bad call", "print(1 2)\n", "expected ',' or ')'"},
		{"trailing tokens", "x = 1 2\n", "after expression"},
		{"lone else", "else:\n    pass\n", "'else' without matching 'if'"},
		{"return value missing", "x =\n", "expected expression after '='"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test.shy", []byte(tt.src))
			require.Error(t, err)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Contains(t, pe.Msg, tt.msg)
			assert.NotEmpty(t, pe.Src)
		})
	}
}

func TestParseErrorLocation(t *testing.T) {
	_, err := Parse("test.shy", []byte("x = 1\ny = 1 +\n"))
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, "y = 1 +", pe.Src)
}
