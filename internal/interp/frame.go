package interp

import "shython/internal/trace"

// Frame is one function activation record. It implements trace.Frame;
// hooks see it as an opaque read-only handle and must not retain it
// past the callback, since the interpreter drops the frame as soon as
// the activation exits.
type Frame struct {
	fn     string
	line   int
	locals map[string]Value
	caller *Frame
	depth  int

	// local is the frame's armed trace continuation, seeded from the
	// process-wide hook at frame entry and replaced by each callback's
	// return value.
	local trace.Func
}

// FuncName returns the name of the function the frame executes. The
// top-level script frame is named "<module>".
func (f *Frame) FuncName() string { return f.fn }

// Line returns the source line the frame is currently executing.
func (f *Frame) Line() int { return f.line }

var _ trace.Frame = (*Frame)(nil)
