package trace

import (
	"fmt"
	"io"
	"strings"
)

// Inspector emits the raw event-inspection block: for every event,
// regardless of kind, a four-line record naming the static EVENT label,
// the tag's runtime type, its value, and its attribute set. This is the
// "debug the tracer's own event stream" capability; LineWriter is the
// line-record formatter. They are composed via Config, not hardwired.
type Inspector struct {
	w io.Writer
}

// NewInspector creates an Inspector writing to w. Wrap w in a
// LockedWriter when several threads may be traced at once.
func NewInspector(w io.Writer) *Inspector {
	return &Inspector{w: w}
}

// Trace implements Func. The block is built in memory and written in
// one call so it cannot be torn by another thread's record. A write
// failure stops tracing for the frame.
func (in *Inspector) Trace(fr Frame, kind Kind, arg any) Func {
	var sb strings.Builder
	sb.WriteString("EVENT:\n")
	fmt.Fprintf(&sb, "%T\n", kind)
	sb.WriteString(kind.String())
	sb.WriteByte('\n')
	sb.WriteByte('[')
	sb.WriteString(strings.Join(kind.Attrs(), " "))
	sb.WriteString("]\n")

	if _, err := io.WriteString(in.w, sb.String()); err != nil {
		return nil
	}
	return in.Trace
}
