package interp_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shython/internal/interp"
	"shython/internal/script"
	"shython/internal/trace"
)

// recorder captures every event delivered to the hook as a flat string,
// keeping itself armed for all subsequent events.
type recorder struct {
	events []string
}

func (r *recorder) hook(fr trace.Frame, kind trace.Kind, arg any) trace.Func {
	r.events = append(r.events, fmt.Sprintf("%s %s:%d %v", kind, fr.FuncName(), fr.Line(), arg))
	return r.hook
}

func traceRun(t *testing.T, src string, fn trace.Func) (*interp.Interp, error) {
	t.Helper()
	prog, err := script.Parse("test.shy", []byte(src))
	require.NoError(t, err)

	var out bytes.Buffer
	in := interp.New(prog, interp.WithWriter(&out))
	if fn != nil {
		trace.Install(in, fn)
	}
	return in, in.Run(context.Background())
}

func TestEventsForFunctionCall(t *testing.T) {
	src := `def add(a, b):
    return a + b

x = add(1, 2)
`
	rec := &recorder{}
	_, err := traceRun(t, src, rec.hook)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"call <module>:4 None",
		"line <module>:4 None",
		"call add:1 None",
		"line add:2 None",
		"return add:2 3",
		"return <module>:4 None",
	}, rec.events)
}

func TestEventsForException(t *testing.T) {
	src := `def boom():
    raise "bad"

boom()
`
	rec := &recorder{}
	_, err := traceRun(t, src, rec.hook)
	require.Error(t, err)

	// Each unwound frame reports the exception before its return event.
	assert.Equal(t, []string{
		"call <module>:4 None",
		"line <module>:4 None",
		"call boom:1 None",
		"line boom:2 None",
		"exception boom:2 bad",
		"return boom:2 None",
		"exception <module>:4 bad",
		"return <module>:4 None",
	}, rec.events)
}

func TestEventsForWhileLoop(t *testing.T) {
	src := `n = 2
while n > 0:
    n = n - 1
`
	rec := &recorder{}
	_, err := traceRun(t, src, rec.hook)
	require.NoError(t, err)

	// The loop header fires a line event every iteration, including the
	// final failing check.
	assert.Equal(t, []string{
		"call <module>:1 None",
		"line <module>:1 None",
		"line <module>:2 None",
		"line <module>:3 None",
		"line <module>:2 None",
		"line <module>:3 None",
		"line <module>:2 None",
		"return <module>:2 None",
	}, rec.events)
}

func TestBuiltinsFireNoFrameEvents(t *testing.T) {
	rec := &recorder{}
	_, err := traceRun(t, "x = len(str(42))\n", rec.hook)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"call <module>:1 None",
		"line <module>:1 None",
		"return <module>:1 None",
	}, rec.events)
}

func TestNilContinuationStopsFrameTracing(t *testing.T) {
	src := `def f():
    pass

f()
f()
`
	calls := 0
	once := func(fr trace.Frame, kind trace.Kind, arg any) trace.Func {
		calls++
		return nil
	}
	_, err := traceRun(t, src, once)
	require.NoError(t, err)

	// One call event per frame entered, nothing after the hook declines
	// to stay armed: the module frame plus two f frames.
	assert.Equal(t, 3, calls)
}

func TestNeverInstalledProducesNoEvents(t *testing.T) {
	rec := &recorder{}
	in, err := traceRun(t, "x = 1\nprint(x)\n", nil)
	require.NoError(t, err)

	assert.Empty(t, rec.events)
	assert.False(t, trace.Installed(in))
}

func TestLastInstallWins(t *testing.T) {
	prog, err := script.Parse("test.shy", []byte("pass\n"))
	require.NoError(t, err)
	in := interp.New(prog, interp.WithWriter(&bytes.Buffer{}))

	first := &recorder{}
	second := &recorder{}
	trace.Install(in, first.hook)
	trace.Install(in, second.hook)

	require.NoError(t, in.Run(context.Background()))

	assert.Empty(t, first.events, "replaced hook must see nothing")
	assert.Len(t, second.events, 3)
}

func TestUninstallBeforeRun(t *testing.T) {
	prog, err := script.Parse("test.shy", []byte("pass\n"))
	require.NoError(t, err)
	in := interp.New(prog, interp.WithWriter(&bytes.Buffer{}))

	rec := &recorder{}
	trace.Install(in, rec.hook)
	trace.Uninstall(in)

	require.NoError(t, in.Run(context.Background()))
	assert.Empty(t, rec.events)
}

func TestContextCarriedHook(t *testing.T) {
	prog, err := script.Parse("test.shy", []byte("pass\n"))
	require.NoError(t, err)
	in := interp.New(prog, interp.WithWriter(&bytes.Buffer{}))

	rec := &recorder{}
	ctx := trace.WithHook(context.Background(), rec.hook)
	require.NoError(t, in.Run(ctx))

	assert.Equal(t, []string{
		"call <module>:1 None",
		"line <module>:1 None",
		"return <module>:1 None",
	}, rec.events)
}

func TestInstalledHookBeatsContextHook(t *testing.T) {
	prog, err := script.Parse("test.shy", []byte("pass\n"))
	require.NoError(t, err)
	in := interp.New(prog, interp.WithWriter(&bytes.Buffer{}))

	installed := &recorder{}
	fromCtx := &recorder{}
	trace.Install(in, installed.hook)
	require.NoError(t, in.Run(trace.WithHook(context.Background(), fromCtx.hook)))

	assert.Len(t, installed.events, 3)
	assert.Empty(t, fromCtx.events)
}

func TestDispatcherEndToEnd(t *testing.T) {
	prog, err := script.Parse("test.shy", []byte("pass\n"))
	require.NoError(t, err)
	in := interp.New(prog, interp.WithWriter(&bytes.Buffer{}))

	var diag bytes.Buffer
	trace.Install(in, trace.New(trace.Config{Inspect: true, Lines: true, Output: &diag}))
	require.NoError(t, in.Run(context.Background()))

	want := "EVENT:\ntrace.Kind\ncall\n[Attrs Known String]\n" +
		"EVENT:\ntrace.Kind\nline\n[Attrs Known String]\n" +
		"TRACE:shython_line:LINE:\"None\"\n" +
		"EVENT:\ntrace.Kind\nreturn\n[Attrs Known String]\n"
	assert.Equal(t, want, diag.String())
}

func TestRingObservesInterpreterEvents(t *testing.T) {
	src := `def f():
    return 7

x = f()
`
	ring := trace.NewRing(16)
	in, err := traceRun(t, src, nil)
	require.NoError(t, err) // warm-up run without the ring

	trace.Install(in, ring.Trace)
	require.NoError(t, in.Run(context.Background()))

	evs := ring.Snapshot()
	require.Len(t, evs, 6)
	assert.Equal(t, trace.KindCall, evs[0].Kind)
	assert.Equal(t, "<module>", evs[0].Func)
	assert.Equal(t, "f", evs[2].Func)
	assert.Equal(t, trace.KindReturn, evs[4].Kind)
	assert.Equal(t, "7", evs[4].Arg)
}
