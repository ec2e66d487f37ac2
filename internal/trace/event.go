package trace

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Event is the scalar snapshot of one dispatched trace event. Hooks
// that keep history (Ring) store Events, never Frames: the interpreter
// may reuse a frame as soon as the callback returns.
type Event struct {
	Seq  uint64    // global dispatch order (monotonic)
	Time time.Time // wall-clock dispatch time
	Kind Kind      // event-kind tag
	Func string    // frame's function name
	Line int       // frame's current source line
	Arg  string    // auxiliary payload, default string conversion
}

var globalSeq atomic.Uint64

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return globalSeq.Add(1)
}

// Snapshot captures the scalar view of a dispatched event so it can
// outlive the callback invocation.
func Snapshot(fr Frame, kind Kind, arg any) Event {
	ev := Event{
		Seq:  NextSeq(),
		Time: time.Now(),
		Kind: kind,
		Arg:  fmt.Sprintf("%v", arg),
	}
	if fr != nil {
		ev.Func = fr.FuncName()
		ev.Line = fr.Line()
	}
	return ev
}
