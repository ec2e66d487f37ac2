package trace

// Kind is the event-kind tag carried by every trace event. The set is
// fixed by the interpreter; any other value renders as "unknown".
type Kind uint8

const (
	// KindCall fires when a new frame is entered.
	KindCall Kind = iota + 1
	// KindLine fires before each statement executes.
	KindLine
	// KindReturn fires when the current frame is about to exit.
	KindReturn
	// KindException fires while an error propagates through a frame.
	KindException
)

// String returns the tag's value as the interpreter spells it.
func (k Kind) String() string {
	switch k {
	case KindCall:
		return "call"
	case KindLine:
		return "line"
	case KindReturn:
		return "return"
	case KindException:
		return "exception"
	default:
		return "unknown"
	}
}

// Known reports whether k is one of the interpreter-defined kinds.
func (k Kind) Known() bool {
	return k >= KindCall && k <= KindException
}

// kindAttrs is the enumerated introspection set the Inspector reports
// for a kind value: its method set, in sorted order. The original tool
// dumped the tag's runtime attribute list; the set here is fixed because
// the tag type is fixed.
var kindAttrs = []string{"Attrs", "Known", "String"}

// Attrs returns the inspectable attributes of the kind value. The
// returned slice is shared and must not be modified.
func (k Kind) Attrs() []string {
	return kindAttrs
}
