package interp

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// builtinFunc runs inline in the caller's frame: builtins create no
// frame and fire no call/return events, matching how the tracer treats
// native functions.
type builtinFunc func(in *Interp, args []Value) (Value, error)

var builtins = map[string]builtinFunc{
	"print": builtinPrint,
	"len":   builtinLen,
	"str":   builtinStr,
	"upper": builtinUpper,
	"lower": builtinLower,
}

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

func builtinPrint(in *Interp, args []Value) (Value, error) {
	for i, a := range args {
		if i > 0 {
			if _, err := fmt.Fprint(in.out, " "); err != nil {
				return None, raisef("print: %v", err)
			}
		}
		if _, err := fmt.Fprint(in.out, a.String()); err != nil {
			return None, raisef("print: %v", err)
		}
	}
	if _, err := fmt.Fprintln(in.out); err != nil {
		return None, raisef("print: %v", err)
	}
	return None, nil
}

func builtinLen(_ *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return None, raisef("len() takes exactly one argument (%d given)", len(args))
	}
	if args[0].Kind != KindStr {
		return None, raisef("object of type %q has no len()", args[0].TypeName())
	}
	return NewInt(int64(utf8.RuneCountInString(args[0].S))), nil
}

func builtinStr(_ *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return None, raisef("str() takes exactly one argument (%d given)", len(args))
	}
	return NewStr(args[0].String()), nil
}

func builtinUpper(_ *Interp, args []Value) (Value, error) {
	return caseBuiltin("upper", upperCaser, args)
}

func builtinLower(_ *Interp, args []Value) (Value, error) {
	return caseBuiltin("lower", lowerCaser, args)
}

func caseBuiltin(name string, c cases.Caser, args []Value) (Value, error) {
	if len(args) != 1 {
		return None, raisef("%s() takes exactly one argument (%d given)", name, len(args))
	}
	if args[0].Kind != KindStr {
		return None, raisef("%s() expects a str, got %q", name, args[0].TypeName())
	}
	return NewStr(c.String(args[0].S)), nil
}
