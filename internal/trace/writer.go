package trace

import (
	"io"
	"sync"
)

// LockedWriter serializes writes to the shared output stream. Hooks run
// inline on whichever thread executes traced code; the lock guarantees
// records from different threads interleave at whole-write granularity
// only. Ordering across threads is not guaranteed.
type LockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLockedWriter wraps w. A LockedWriter passed in is returned as is.
func NewLockedWriter(w io.Writer) *LockedWriter {
	if lw, ok := w.(*LockedWriter); ok {
		return lw
	}
	return &LockedWriter{w: w}
}

// Write writes p under the lock.
func (lw *LockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
