// Package trace implements the shython execution tracer.
//
// The interpreter owns a single process-wide trace-hook slot. Once a
// callback is installed it is invoked synchronously before every traced
// execution step in every frame entered afterwards, including frames of
// library code the host did not author. That blast radius is deliberate:
// the tracer exists to observe everything.
//
// # Hooks
//
// A hook is a Func. It receives the current Frame, the event-kind tag,
// and an auxiliary payload, and returns the Func that should receive the
// frame's subsequent events (nil to stop tracing that frame). The
// interpreter consults the installed hook once per frame entry; the
// returned continuation is then re-consulted per event, so a hook that
// keeps returning itself stays armed for line-level events.
//
// # Capabilities
//
// Two independently toggleable hooks are provided:
//
//   - Inspector: unconditional per-event diagnostic block
//   - LineWriter: TRACE:shython_line records for "line" events
//
// New composes them per Config; Chain fans events out to both. Ring
// keeps an in-memory snapshot history for post-mortem dumps.
//
// # Installation
//
//	in := interp.New(prog)
//	trace.Install(in, trace.New(trace.Config{Inspect: true, Lines: true}))
//
// Installing a second callback replaces the first; uninstalling sets the
// slot to nil. Both are cheap and safe at any point between runs.
package trace
