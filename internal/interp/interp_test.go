package interp_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shython/internal/interp"
	"shython/internal/script"
)

func run(t *testing.T, src string, opts ...interp.Option) (string, error) {
	t.Helper()
	prog, err := script.Parse("test.shy", []byte(src))
	require.NoError(t, err)

	var out bytes.Buffer
	opts = append([]interp.Option{interp.WithWriter(&out)}, opts...)
	in := interp.New(prog, opts...)
	runErr := in.Run(context.Background())
	return out.String(), runErr
}

func mustRun(t *testing.T, src string, opts ...interp.Option) string {
	t.Helper()
	out, err := run(t, src, opts...)
	require.NoError(t, err)
	return out
}

func TestArithmetic(t *testing.T) {
	out := mustRun(t, "x = 2 + 3 * 4\nprint(x)\nprint(x % 5, x / 2, -x)\n")
	assert.Equal(t, "14\n4 7 -14\n", out)
}

func TestStringOps(t *testing.T) {
	out := mustRun(t, `print("foo" + "bar")`+"\n"+`print("ab" * 3)`+"\n"+`print(2 * "x")`+"\n")
	assert.Equal(t, "foobar\nababab\nxx\n", out)
}

func TestBuiltins(t *testing.T) {
	src := `print(len("héllo"))` + "\n" +
		`print(str(5) + "!")` + "\n" +
		`print(upper("straße"), lower("HI"))` + "\n" +
		`print(None, True, False)` + "\n"
	out := mustRun(t, src)
	assert.Equal(t, "5\n5!\nSTRASSE hi\nNone True False\n", out)
}

func TestComparisons(t *testing.T) {
	out := mustRun(t, `print(1 < 2, "a" < "b", 2 == 2, 2 != 2, None == None)`+"\n")
	assert.Equal(t, "True True True False True\n", out)
}

func TestIfElseAndWhile(t *testing.T) {
	src := `n = 3
while n > 0:
    if n == 2:
        print("two")
    else:
        print(n)
    n = n - 1
`
	out := mustRun(t, src)
	assert.Equal(t, "3\ntwo\n1\n", out)
}

func TestFunctions(t *testing.T) {
	src := `def add(a, b):
    return a + b

def greet(name):
    print("hello " + name)

print(add(1, 2))
greet("world")
`
	out := mustRun(t, src)
	assert.Equal(t, "3\nhello world\n", out)
}

func TestRecursion(t *testing.T) {
	src := `def fib(n):
    if n < 2:
        return n
    return fib(n - 1) + fib(n - 2)

print(fib(10))
`
	out := mustRun(t, src)
	assert.Equal(t, "55\n", out)
}

func TestScoping(t *testing.T) {
	src := `x = 1
def f():
    x = 2
    return x

y = f()
print(x, y)
`
	out := mustRun(t, src)
	assert.Equal(t, "1 2\n", out)
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"division by zero", "x = 1 / 0\n", "division by zero"},
		{"modulo by zero", "x = 1 % 0\n", "modulo by zero"},
		{"undefined name", "print(nope)\n", `name "nope" is not defined`},
		{"undefined function", "nope()\n", `name "nope" is not defined`},
		{"type mismatch", `x = 1 + "s"` + "\n", "unsupported operand types for +"},
		{"bad compare", `x = 1 < "s"` + "\n", "not supported between"},
		{"unary on str", `x = -"s"` + "\n", "bad operand type for unary -"},
		{"arity", "def f(a):\n    pass\nf()\n", "f() takes 1 arguments (0 given)"},
		{"return at top level", "return 1\n", "'return' outside function"},
		{"len of int", "x = len(5)\n", "has no len()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.src)
			require.Error(t, err)
			var rt *interp.RuntimeError
			require.ErrorAs(t, err, &rt)
			assert.Contains(t, rt.Error(), tt.msg)
		})
	}
}

func TestRaiseBacktrace(t *testing.T) {
	src := `def inner():
    raise "boom"

def outer():
    inner()

outer()
`
	_, err := run(t, src)
	require.Error(t, err)
	var rt *interp.RuntimeError
	require.ErrorAs(t, err, &rt)

	want := "runtime error: boom\n" +
		"  at inner (test.shy:2)\n" +
		"  at outer (test.shy:5)\n" +
		"  at <module> (test.shy:7)\n"
	assert.Equal(t, want, rt.Backtrace("test.shy"))
}

func TestRaiseNonString(t *testing.T) {
	_, err := run(t, "raise 42\n")
	require.Error(t, err)
	var rt *interp.RuntimeError
	require.ErrorAs(t, err, &rt)
	assert.Equal(t, "42", rt.Error())
}

func TestMaxDepth(t *testing.T) {
	_, err := run(t, "def f():\n    f()\n\nf()\n", interp.WithMaxDepth(10))
	require.Error(t, err)
	var rt *interp.RuntimeError
	require.ErrorAs(t, err, &rt)
	assert.Contains(t, rt.Error(), "maximum call depth exceeded")
}

func TestMaxSteps(t *testing.T) {
	_, err := run(t, "while True:\n    pass\n", interp.WithMaxSteps(100))
	require.ErrorIs(t, err, interp.ErrMaxSteps)
}

func TestContextCancellation(t *testing.T) {
	prog, err := script.Parse("test.shy", []byte("x = 1\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runErr := interp.New(prog).Run(ctx)
	require.ErrorIs(t, runErr, context.Canceled)
}

func TestStringRepeatLimits(t *testing.T) {
	out := mustRun(t, `print("x" * -3 + "done")`+"\n")
	assert.Equal(t, "done\n", out)

	_, err := run(t, `x = "abc" * 99999999`+"\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "string repetition result too large")
}
