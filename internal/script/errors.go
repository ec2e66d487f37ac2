package script

import "fmt"

// ParseError is a syntax error with its source location and, when
// available, the offending source line for caret rendering.
type ParseError struct {
	Path string
	Line int
	Col  int
	Msg  string
	Src  string // the source line the error points into
}

// Error formats the error as path:line:col: message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Msg)
}
