package script

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Line is one significant source line: its 1-based number, indentation
// width in spaces, and tokens. Blank and comment-only lines never
// appear.
type Line struct {
	Num    int
	Indent int
	Toks   []Token
}

// Lex tokenizes src line by line. Indentation is measured in leading
// spaces; tabs in indentation are rejected so block structure is never
// ambiguous.
func Lex(path string, src []byte) ([]Line, error) {
	raw := strings.Split(string(src), "\n")
	lines := make([]Line, 0, len(raw))

	for i, text := range raw {
		text = strings.TrimSuffix(text, "\r")
		ln, ok, err := lexLine(path, i+1, text)
		if err != nil {
			return nil, err
		}
		if ok {
			lines = append(lines, ln)
		}
	}
	return lines, nil
}

// lexLine tokenizes a single line. ok is false for blank and
// comment-only lines.
func lexLine(path string, num int, text string) (Line, bool, error) {
	rs := []rune(text)
	i := 0
	for i < len(rs) && rs[i] == ' ' {
		i++
	}
	if i < len(rs) && rs[i] == '\t' {
		return Line{}, false, lexErr(path, num, i+1, text, "tab in indentation (use spaces)")
	}
	indent := i

	ln := Line{Num: num, Indent: indent}
	for i < len(rs) {
		ch := rs[i]
		switch {
		case ch == ' ' || ch == '\t':
			i++
			continue
		case ch == '#':
			i = len(rs)
			continue
		case ch == '_' || unicode.IsLetter(ch):
			start := i
			for i < len(rs) && (rs[i] == '_' || unicode.IsLetter(rs[i]) || unicode.IsDigit(rs[i])) {
				i++
			}
			word := string(rs[start:i])
			tok := Token{Kind: TokIdent, Text: word, Line: num, Col: start + 1}
			if kw, ok := keywords[word]; ok {
				tok.Kind = kw
			}
			ln.Toks = append(ln.Toks, tok)
		case unicode.IsDigit(ch):
			start := i
			for i < len(rs) && unicode.IsDigit(rs[i]) {
				i++
			}
			digits := string(rs[start:i])
			v, err := strconv.ParseInt(digits, 10, 64)
			if err != nil {
				return Line{}, false, lexErr(path, num, start+1, text, fmt.Sprintf("integer literal out of range: %s", digits))
			}
			ln.Toks = append(ln.Toks, Token{Kind: TokInt, Int: v, Text: digits, Line: num, Col: start + 1})
		case ch == '"':
			tok, next, err := lexString(path, num, text, rs, i)
			if err != nil {
				return Line{}, false, err
			}
			ln.Toks = append(ln.Toks, tok)
			i = next
		default:
			tok, next, err := lexOperator(path, num, text, rs, i)
			if err != nil {
				return Line{}, false, err
			}
			ln.Toks = append(ln.Toks, tok)
			i = next
		}
	}

	if len(ln.Toks) == 0 {
		return Line{}, false, nil
	}
	return ln, true, nil
}

// lexString scans a double-quoted string literal starting at rs[i].
func lexString(path string, num int, text string, rs []rune, i int) (Token, int, error) {
	start := i
	i++ // opening quote
	var sb strings.Builder
	for i < len(rs) {
		switch rs[i] {
		case '"':
			return Token{Kind: TokStr, Text: sb.String(), Line: num, Col: start + 1}, i + 1, nil
		case '\\':
			i++
			if i >= len(rs) {
				return Token{}, 0, lexErr(path, num, i, text, "unterminated string literal")
			}
			switch rs[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			default:
				return Token{}, 0, lexErr(path, num, i+1, text, fmt.Sprintf("unknown escape: \\%c", rs[i]))
			}
			i++
		default:
			sb.WriteRune(rs[i])
			i++
		}
	}
	return Token{}, 0, lexErr(path, num, start+1, text, "unterminated string literal")
}

var singleOps = map[rune]TokKind{
	'+': TokPlus,
	'-': TokMinus,
	'*': TokStar,
	'/': TokSlash,
	'%': TokPercent,
	'(': TokLParen,
	')': TokRParen,
	',': TokComma,
	':': TokColon,
}

// lexOperator scans an operator or punctuation token starting at rs[i].
func lexOperator(path string, num int, text string, rs []rune, i int) (Token, int, error) {
	col := i + 1
	two := ""
	if i+1 < len(rs) {
		two = string(rs[i : i+2])
	}
	switch two {
	case "==":
		return Token{Kind: TokEq, Text: two, Line: num, Col: col}, i + 2, nil
	case "!=":
		return Token{Kind: TokNe, Text: two, Line: num, Col: col}, i + 2, nil
	case "<=":
		return Token{Kind: TokLe, Text: two, Line: num, Col: col}, i + 2, nil
	case ">=":
		return Token{Kind: TokGe, Text: two, Line: num, Col: col}, i + 2, nil
	}
	switch rs[i] {
	case '<':
		return Token{Kind: TokLt, Text: "<", Line: num, Col: col}, i + 1, nil
	case '>':
		return Token{Kind: TokGt, Text: ">", Line: num, Col: col}, i + 1, nil
	case '=':
		return Token{Kind: TokAssign, Text: "=", Line: num, Col: col}, i + 1, nil
	}
	if kind, ok := singleOps[rs[i]]; ok {
		return Token{Kind: kind, Text: string(rs[i]), Line: num, Col: col}, i + 1, nil
	}
	return Token{}, 0, lexErr(path, num, col, text, fmt.Sprintf("unexpected character %q", rs[i]))
}

func lexErr(path string, line, col int, src, msg string) *ParseError {
	return &ParseError{Path: path, Line: line, Col: col, Msg: msg, Src: src}
}
