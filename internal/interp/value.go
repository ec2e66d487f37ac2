package interp

import "strconv"

// ValueKind discriminates the runtime value types.
type ValueKind uint8

const (
	KindNone ValueKind = iota
	KindInt
	KindStr
	KindBool
)

// Value is a dynamically-typed runtime value.
type Value struct {
	Kind ValueKind
	I    int64
	S    string
	B    bool
}

// None is the null value. Its default string conversion is "None".
var None = Value{Kind: KindNone}

// NewInt creates an integer value.
func NewInt(i int64) Value { return Value{Kind: KindInt, I: i} }

// NewStr creates a string value.
func NewStr(s string) Value { return Value{Kind: KindStr, S: s} }

// NewBool creates a boolean value.
func NewBool(b bool) Value { return Value{Kind: KindBool, B: b} }

// String renders the value the way the language spells it.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.I, 10)
	case KindStr:
		return v.S
	case KindBool:
		if v.B {
			return "True"
		}
		return "False"
	default:
		return "None"
	}
}

// TypeName returns the value's type name for error messages.
func (v Value) TypeName() string {
	switch v.Kind {
	case KindInt:
		return "int"
	case KindStr:
		return "str"
	case KindBool:
		return "bool"
	default:
		return "None"
	}
}

// Truthy reports the value's truth under condition evaluation.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindInt:
		return v.I != 0
	case KindStr:
		return v.S != ""
	case KindBool:
		return v.B
	default:
		return false
	}
}

// Equal reports value equality. Values of different kinds are unequal,
// except that bools never equal ints (no implicit numeric coercion).
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.I == o.I
	case KindStr:
		return v.S == o.S
	case KindBool:
		return v.B == o.B
	default:
		return true
	}
}
