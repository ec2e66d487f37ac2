package interp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMaxSteps reports that execution exceeded the configured step
// budget. It is an interpreter fault, not a script-level error, so no
// exception events fire for it.
var ErrMaxSteps = errors.New("maximum step count exceeded")

// Loc is one backtrace entry.
type Loc struct {
	Func string
	Line int
}

// RuntimeError is a script-level error: a raised value or a failed
// operation, plus the frame stack it unwound through (innermost first).
type RuntimeError struct {
	Value Value
	Stack []Loc
}

// Error returns the error's value under default string conversion.
func (e *RuntimeError) Error() string {
	return e.Value.String()
}

// Backtrace renders the error with its unwound frames, innermost first.
func (e *RuntimeError) Backtrace(path string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "runtime error: %s\n", e.Value)
	for _, loc := range e.Stack {
		fmt.Fprintf(&sb, "  at %s (%s:%d)\n", loc.Func, path, loc.Line)
	}
	return sb.String()
}

// raisef builds a RuntimeError carrying a formatted message string.
func raisef(format string, args ...any) *RuntimeError {
	return &RuntimeError{Value: NewStr(fmt.Sprintf(format, args...))}
}
