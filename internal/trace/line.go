package trace

import (
	"fmt"
	"io"
)

// lineRecordFormat is the exact shape of the per-line trace record.
// The quoted value is the event's auxiliary payload under default string
// conversion, not the frame's source line: the original tool printed the
// raw trace argument here and downstream scrapers match the record
// verbatim, so the shape is kept as is.
const lineRecordFormat = "TRACE:shython_line:LINE:\"%v\"\n"

// LineWriter emits exactly one line-formatted record per "line" event
// and nothing for any other kind.
type LineWriter struct {
	w io.Writer
}

// NewLineWriter creates a LineWriter writing to w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// Trace implements Func. Non-line events pass through with the hook
// still armed, so call/return/exception traffic never silences the
// frame's line records. A write failure stops tracing for the frame.
func (lw *LineWriter) Trace(fr Frame, kind Kind, arg any) Func {
	if kind != KindLine {
		return lw.Trace
	}
	if _, err := fmt.Fprintf(lw.w, lineRecordFormat, arg); err != nil {
		return nil
	}
	return lw.Trace
}
