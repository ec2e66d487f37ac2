package interp

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"fortio.org/safecast"

	"shython/internal/script"
	"shython/internal/trace"
)

// Interp is a tree-walking interpreter for a parsed script. It owns the
// process-wide trace-hook slot and implements trace.Handle, so the
// tracer can be installed and cleared without hidden global state.
//
// An Interp runs one script on one goroutine; SetTrace must not race
// with Run.
type Interp struct {
	prog    *script.Program
	globals map[string]Value
	out     io.Writer

	hook trace.Func // the installed process-wide trace callback

	maxDepth int
	maxSteps int
	steps    int
}

// Option configures an Interp.
type Option func(*Interp)

// WithWriter sets the output writer for print.
func WithWriter(w io.Writer) Option {
	return func(in *Interp) { in.out = w }
}

// WithMaxDepth caps the call depth (default 64).
func WithMaxDepth(n int) Option {
	return func(in *Interp) { in.maxDepth = n }
}

// WithMaxSteps caps the number of executed statements (0 = unlimited).
func WithMaxSteps(n int) Option {
	return func(in *Interp) { in.maxSteps = n }
}

// New creates an interpreter for prog.
func New(prog *script.Program, opts ...Option) *Interp {
	in := &Interp{
		prog:     prog,
		globals:  make(map[string]Value),
		out:      os.Stdout,
		maxDepth: 64,
	}
	for _, o := range opts {
		o(in)
	}
	return in
}

// SetTrace replaces the active trace callback. nil clears the slot.
// Implements trace.Handle; last registration wins.
func (in *Interp) SetTrace(fn trace.Func) { in.hook = fn }

// TraceFunc returns the active trace callback, or nil.
func (in *Interp) TraceFunc() trace.Func { return in.hook }

// Run executes the script's top-level statements in a fresh "<module>"
// frame. Frames entered before a hook is installed are never traced
// retroactively. When no hook is installed, a hook carried by ctx (see
// trace.WithHook) is adopted for this run.
func (in *Interp) Run(ctx context.Context) error {
	if in.hook == nil {
		in.hook = trace.FromContext(ctx)
	}
	fr := &Frame{fn: "<module>", locals: in.globals}
	if len(in.prog.Body) > 0 {
		fr.line = in.prog.Body[0].StmtLine()
	}
	in.enterFrame(fr)
	c, ret, err := in.execBlock(ctx, fr, in.prog.Body)
	_, err = in.leaveFrame(fr, c, ret, err)
	return err
}

// enterFrame arms per-frame tracing: the process-wide hook receives the
// "call" event and its return value becomes the frame's local trace
// continuation.
func (in *Interp) enterFrame(fr *Frame) {
	if g := in.hook; g != nil {
		fr.local = g(fr, trace.KindCall, None)
	}
}

// leaveFrame fires the frame's unwind events and normalizes the result.
// Script-level errors produce an "exception" event and a backtrace
// entry; every exit, normal or not, produces a "return" event.
func (in *Interp) leaveFrame(fr *Frame, c ctrl, ret Value, err error) (Value, error) {
	if err != nil {
		var rt *RuntimeError
		if errors.As(err, &rt) {
			in.fireException(fr, rt.Value)
			rt.Stack = append(rt.Stack, Loc{Func: fr.fn, Line: fr.line})
		}
		in.fireReturn(fr, None)
		return None, err
	}
	if c != ctrlReturn {
		ret = None
	}
	in.fireReturn(fr, ret)
	return ret, nil
}

func (in *Interp) fireLine(fr *Frame) {
	if fr.local != nil {
		fr.local = fr.local(fr, trace.KindLine, None)
	}
}

func (in *Interp) fireReturn(fr *Frame, v Value) {
	if fr.local != nil {
		fr.local(fr, trace.KindReturn, v)
	}
}

func (in *Interp) fireException(fr *Frame, v Value) {
	if fr.local != nil {
		fr.local = fr.local(fr, trace.KindException, v)
	}
}

// ctrl is the statement-level control-flow result.
type ctrl uint8

const (
	ctrlNone ctrl = iota
	ctrlReturn
)

func (in *Interp) execBlock(ctx context.Context, fr *Frame, stmts []script.Stmt) (ctrl, Value, error) {
	for _, st := range stmts {
		c, v, err := in.execStmt(ctx, fr, st)
		if err != nil {
			return ctrlNone, None, err
		}
		if c == ctrlReturn {
			return c, v, nil
		}
	}
	return ctrlNone, None, nil
}

func (in *Interp) execStmt(ctx context.Context, fr *Frame, st script.Stmt) (ctrl, Value, error) {
	if err := ctx.Err(); err != nil {
		return ctrlNone, None, err
	}
	if in.maxSteps > 0 {
		in.steps++
		if in.steps > in.maxSteps {
			return ctrlNone, None, ErrMaxSteps
		}
	}

	fr.line = st.StmtLine()
	in.fireLine(fr)

	switch st := st.(type) {
	case *script.PassStmt:
		return ctrlNone, None, nil

	case *script.AssignStmt:
		v, err := in.eval(ctx, fr, st.Value)
		if err != nil {
			return ctrlNone, None, err
		}
		fr.locals[st.Name] = v
		return ctrlNone, None, nil

	case *script.ExprStmt:
		if _, err := in.eval(ctx, fr, st.X); err != nil {
			return ctrlNone, None, err
		}
		return ctrlNone, None, nil

	case *script.ReturnStmt:
		if fr.caller == nil {
			return ctrlNone, None, raisef("'return' outside function")
		}
		ret := None
		if st.Value != nil {
			v, err := in.eval(ctx, fr, st.Value)
			if err != nil {
				return ctrlNone, None, err
			}
			ret = v
		}
		return ctrlReturn, ret, nil

	case *script.RaiseStmt:
		v, err := in.eval(ctx, fr, st.Value)
		if err != nil {
			return ctrlNone, None, err
		}
		return ctrlNone, None, &RuntimeError{Value: v}

	case *script.IfStmt:
		cond, err := in.eval(ctx, fr, st.Cond)
		if err != nil {
			return ctrlNone, None, err
		}
		if cond.Truthy() {
			return in.execBlock(ctx, fr, st.Then)
		}
		return in.execBlock(ctx, fr, st.Else)

	case *script.WhileStmt:
		first := true
		for {
			if !first {
				// The loop header is re-executed each iteration and
				// traces like any other statement.
				fr.line = st.StmtLine()
				in.fireLine(fr)
			}
			first = false

			cond, err := in.eval(ctx, fr, st.Cond)
			if err != nil {
				return ctrlNone, None, err
			}
			if !cond.Truthy() {
				return ctrlNone, None, nil
			}
			c, v, err := in.execBlock(ctx, fr, st.Body)
			if err != nil {
				return ctrlNone, None, err
			}
			if c == ctrlReturn {
				return c, v, nil
			}
		}

	default:
		return ctrlNone, None, raisef("unsupported statement at line %d", st.StmtLine())
	}
}

func (in *Interp) eval(ctx context.Context, fr *Frame, e script.Expr) (Value, error) {
	switch e := e.(type) {
	case *script.IntLit:
		return NewInt(e.Value), nil
	case *script.StrLit:
		return NewStr(e.Value), nil
	case *script.BoolLit:
		return NewBool(e.Value), nil
	case *script.NoneLit:
		return None, nil

	case *script.NameExpr:
		if v, ok := fr.locals[e.Name]; ok {
			return v, nil
		}
		if v, ok := in.globals[e.Name]; ok {
			return v, nil
		}
		return None, raisef("name %q is not defined", e.Name)

	case *script.UnaryExpr:
		x, err := in.eval(ctx, fr, e.X)
		if err != nil {
			return None, err
		}
		if x.Kind != KindInt {
			return None, raisef("bad operand type for unary -: %q", x.TypeName())
		}
		return NewInt(-x.I), nil

	case *script.BinaryExpr:
		l, err := in.eval(ctx, fr, e.L)
		if err != nil {
			return None, err
		}
		r, err := in.eval(ctx, fr, e.R)
		if err != nil {
			return None, err
		}
		return evalBinary(e.Op, l, r)

	case *script.CallExpr:
		args := make([]Value, 0, len(e.Args))
		for _, a := range e.Args {
			v, err := in.eval(ctx, fr, a)
			if err != nil {
				return None, err
			}
			args = append(args, v)
		}
		return in.call(ctx, fr, e.Name, args)

	default:
		return None, raisef("unsupported expression")
	}
}

// call invokes a builtin or a user function. Builtins execute inline in
// the caller's frame and fire no call/return events; user functions get
// a fresh traced frame.
func (in *Interp) call(ctx context.Context, caller *Frame, name string, args []Value) (Value, error) {
	if b, ok := builtins[name]; ok {
		return b(in, args)
	}

	fd, ok := in.prog.Funcs[name]
	if !ok {
		return None, raisef("name %q is not defined", name)
	}
	if len(args) != len(fd.Params) {
		return None, raisef("%s() takes %d arguments (%d given)", name, len(fd.Params), len(args))
	}
	if caller.depth+1 > in.maxDepth {
		return None, raisef("maximum call depth exceeded")
	}

	locals := make(map[string]Value, len(fd.Params))
	for i, p := range fd.Params {
		locals[p] = args[i]
	}
	fr := &Frame{
		fn:     name,
		line:   fd.Line,
		locals: locals,
		caller: caller,
		depth:  caller.depth + 1,
	}
	in.enterFrame(fr)
	c, ret, err := in.execBlock(ctx, fr, fd.Body)
	return in.leaveFrame(fr, c, ret, err)
}

func evalBinary(op script.TokKind, l, r Value) (Value, error) {
	switch op {
	case script.TokPlus:
		if l.Kind == KindInt && r.Kind == KindInt {
			return NewInt(l.I + r.I), nil
		}
		if l.Kind == KindStr && r.Kind == KindStr {
			return NewStr(l.S + r.S), nil
		}
	case script.TokMinus:
		if l.Kind == KindInt && r.Kind == KindInt {
			return NewInt(l.I - r.I), nil
		}
	case script.TokStar:
		if l.Kind == KindInt && r.Kind == KindInt {
			return NewInt(l.I * r.I), nil
		}
		if l.Kind == KindStr && r.Kind == KindInt {
			return repeatStr(l.S, r.I)
		}
		if l.Kind == KindInt && r.Kind == KindStr {
			return repeatStr(r.S, l.I)
		}
	case script.TokSlash:
		if l.Kind == KindInt && r.Kind == KindInt {
			if r.I == 0 {
				return None, raisef("division by zero")
			}
			return NewInt(l.I / r.I), nil
		}
	case script.TokPercent:
		if l.Kind == KindInt && r.Kind == KindInt {
			if r.I == 0 {
				return None, raisef("modulo by zero")
			}
			return NewInt(l.I % r.I), nil
		}
	case script.TokEq:
		return NewBool(l.Equal(r)), nil
	case script.TokNe:
		return NewBool(!l.Equal(r)), nil
	case script.TokLt, script.TokLe, script.TokGt, script.TokGe:
		return evalCompare(op, l, r)
	}
	return None, raisef("unsupported operand types for %s: %q and %q",
		opText(op), l.TypeName(), r.TypeName())
}

func evalCompare(op script.TokKind, l, r Value) (Value, error) {
	var cmp int
	switch {
	case l.Kind == KindInt && r.Kind == KindInt:
		switch {
		case l.I < r.I:
			cmp = -1
		case l.I > r.I:
			cmp = 1
		}
	case l.Kind == KindStr && r.Kind == KindStr:
		switch {
		case l.S < r.S:
			cmp = -1
		case l.S > r.S:
			cmp = 1
		}
	default:
		return None, raisef("%s not supported between %q and %q",
			opText(op), l.TypeName(), r.TypeName())
	}

	switch op {
	case script.TokLt:
		return NewBool(cmp < 0), nil
	case script.TokLe:
		return NewBool(cmp <= 0), nil
	case script.TokGt:
		return NewBool(cmp > 0), nil
	default:
		return NewBool(cmp >= 0), nil
	}
}

// maxRepeatLen caps string repetition results.
const maxRepeatLen = 1 << 20

// repeatStr implements "s" * n. Negative counts yield the empty string.
func repeatStr(s string, n64 int64) (Value, error) {
	if n64 <= 0 || s == "" {
		return NewStr(""), nil
	}
	n, err := safecast.Conv[int](n64)
	if err != nil {
		return None, raisef("string repetition count out of range")
	}
	if n > maxRepeatLen/len(s) {
		return None, raisef("string repetition result too large")
	}
	return NewStr(strings.Repeat(s, n)), nil
}

func opText(op script.TokKind) string {
	switch op {
	case script.TokPlus:
		return "+"
	case script.TokMinus:
		return "-"
	case script.TokStar:
		return "*"
	case script.TokSlash:
		return "/"
	case script.TokPercent:
		return "%"
	case script.TokEq:
		return "=="
	case script.TokNe:
		return "!="
	case script.TokLt:
		return "<"
	case script.TokLe:
		return "<="
	case script.TokGt:
		return ">"
	case script.TokGe:
		return ">="
	default:
		return "?"
	}
}
