package trace

import (
	"fmt"
	"io"
	"sync"
)

// Ring keeps the last N dispatched events in memory (circular buffer)
// for post-mortem dumps. It stores scalar Event snapshots only, never
// Frame handles, so nothing owned by the interpreter outlives the
// callback invocation.
type Ring struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
}

// NewRing creates a Ring with the given capacity (default 256).
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 256
	}
	return &Ring{
		events:   make([]Event, capacity),
		capacity: capacity,
	}
}

// Trace implements Func and records a snapshot of every event.
func (r *Ring) Trace(fr Frame, kind Kind, arg any) Func {
	r.record(Snapshot(fr, kind, arg))
	return r.Trace
}

func (r *Ring) record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[r.head] = ev
	r.head = (r.head + 1) % r.capacity
	if r.head == 0 {
		r.full = true
	}
}

// Len returns the number of stored events.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.full {
		return r.capacity
	}
	return r.head
}

// Snapshot returns a copy of all stored events in dispatch order.
func (r *Ring) Snapshot() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.full {
		out := make([]Event, r.head)
		copy(out, r.events[:r.head])
		return out
	}
	out := make([]Event, r.capacity)
	copy(out, r.events[r.head:])
	copy(out[r.capacity-r.head:], r.events[:r.head])
	return out
}

// Dump writes all stored events to w, one per line.
func (r *Ring) Dump(w io.Writer) error {
	for _, ev := range r.Snapshot() {
		_, err := fmt.Fprintf(w, "%6d %-9s %s:%d arg=%q\n",
			ev.Seq, ev.Kind, ev.Func, ev.Line, ev.Arg)
		if err != nil {
			return err
		}
	}
	return nil
}
