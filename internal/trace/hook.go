package trace

// Frame is the interpreter's live activation record as hooks see it: an
// opaque, read-only handle. The interpreter owns the frame and may
// invalidate or reuse it the moment the callback returns, so hooks must
// not retain one (snapshot with Snapshot instead).
type Frame interface {
	// FuncName returns the name of the function the frame executes.
	FuncName() string
	// Line returns the source line the frame is currently at.
	Line() int
}

// Func is a trace callback. It is invoked synchronously, on the thread
// executing the traced code, with the current frame, the event-kind tag
// and an event-specific auxiliary payload.
//
// The return value arms tracing for the frame's subsequent events:
// returning a Func keeps the frame traced (typically the hook returns
// itself), returning nil stops tracing for that frame. The slot owner
// never retries a hook; a hook that fails mid-emit should return nil and
// let the frame go silent.
type Func func(fr Frame, kind Kind, arg any) Func

// Handle owns a trace-hook slot. The interpreter implements Handle for
// its process-wide slot; tests can substitute a local one so that
// install/uninstall never leaks across test cases.
type Handle interface {
	// SetTrace replaces the active callback. nil clears the slot.
	SetTrace(Func)
	// TraceFunc returns the active callback, or nil.
	TraceFunc() Func
}

// Install makes fn the active trace callback on h. Last registration
// wins: installing over an existing callback replaces it wholesale, so
// there is never more than one active callback per slot.
func Install(h Handle, fn Func) {
	h.SetTrace(fn)
}

// Uninstall clears the active trace callback on h. Frames already armed
// keep their per-frame continuation; new frames are not traced.
func Uninstall(h Handle) {
	h.SetTrace(nil)
}

// Installed reports whether h has an active callback.
func Installed(h Handle) bool {
	return h.TraceFunc() != nil
}
