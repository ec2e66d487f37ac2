package script

import (
	"fmt"
	"strings"
)

// parser consumes lexed lines and builds the AST. Block structure
// follows indentation: a block's statements all sit at the same column,
// strictly deeper than the header line.
type parser struct {
	path  string
	lines []Line
	raw   []string
	pos   int
}

// Parse lexes and parses a script.
func Parse(path string, src []byte) (*Program, error) {
	lines, err := Lex(path, src)
	if err != nil {
		return nil, err
	}

	p := &parser{
		path:  path,
		lines: lines,
		raw:   strings.Split(strings.ReplaceAll(string(src), "\r\n", "\n"), "\n"),
	}

	prog := &Program{Path: path, Funcs: make(map[string]*FuncDecl)}
	for !p.eof() {
		ln := p.peek()
		if ln.Indent != 0 {
			return nil, p.errTok(ln.Toks[0], "unexpected indent")
		}
		if ln.Toks[0].Kind == TokDef {
			fd, err := p.parseFunc()
			if err != nil {
				return nil, err
			}
			if _, dup := prog.Funcs[fd.Name]; dup {
				return nil, p.lineErr(fd.Line, 1, fmt.Sprintf("function %q redefined", fd.Name))
			}
			prog.Funcs[fd.Name] = fd
			continue
		}
		st, err := p.parseStmt(0)
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, st)
	}
	return prog, nil
}

func (p *parser) eof() bool  { return p.pos >= len(p.lines) }
func (p *parser) peek() Line { return p.lines[p.pos] }
func (p *parser) next() Line {
	ln := p.lines[p.pos]
	p.pos++
	return ln
}

// parseFunc parses "def name(p1, p2):" and its indented body.
func (p *parser) parseFunc() (*FuncDecl, error) {
	ln := p.next()
	toks := ln.Toks

	if len(toks) < 2 || toks[1].Kind != TokIdent {
		return nil, p.errAfter(ln, toks[0], "expected function name after 'def'")
	}
	fd := &FuncDecl{Name: toks[1].Text, Line: ln.Num}

	i := 2
	if i >= len(toks) || toks[i].Kind != TokLParen {
		return nil, p.errAfter(ln, toks[1], "expected '(' after function name")
	}
	i++
	for i < len(toks) && toks[i].Kind != TokRParen {
		if toks[i].Kind != TokIdent {
			return nil, p.errTok(toks[i], fmt.Sprintf("expected parameter name, found %s", toks[i].Kind))
		}
		fd.Params = append(fd.Params, toks[i].Text)
		i++
		if i < len(toks) && toks[i].Kind == TokComma {
			i++
			continue
		}
		break
	}
	if i >= len(toks) || toks[i].Kind != TokRParen {
		return nil, p.errAfter(ln, toks[len(toks)-1], "expected ')'")
	}
	i++
	if i >= len(toks) || toks[i].Kind != TokColon {
		return nil, p.errAfter(ln, toks[len(toks)-1], "expected ':'")
	}
	if i != len(toks)-1 {
		return nil, p.errTok(toks[i+1], "unexpected token after ':'")
	}

	body, err := p.parseBlock(ln)
	if err != nil {
		return nil, err
	}
	fd.Body = body
	return fd, nil
}

// parseBlock parses the indented statements following a header line.
func (p *parser) parseBlock(header Line) ([]Stmt, error) {
	if p.eof() || p.peek().Indent <= header.Indent {
		return nil, p.lineErr(header.Num, header.Indent+1, "expected an indented block")
	}
	indent := p.peek().Indent

	var body []Stmt
	for !p.eof() && p.peek().Indent == indent {
		st, err := p.parseStmt(indent)
		if err != nil {
			return nil, err
		}
		body = append(body, st)
	}
	if !p.eof() && p.peek().Indent > indent {
		ln := p.peek()
		return nil, p.errTok(ln.Toks[0], "unexpected indent")
	}
	return body, nil
}

// parseStmt parses one statement at the given indent.
func (p *parser) parseStmt(indent int) (Stmt, error) {
	ln := p.next()
	toks := ln.Toks

	switch toks[0].Kind {
	case TokDef:
		return nil, p.errTok(toks[0], "nested function definitions are not supported")

	case TokPass:
		if len(toks) != 1 {
			return nil, p.errTok(toks[1], "unexpected token after 'pass'")
		}
		return &PassStmt{Line: ln.Num}, nil

	case TokReturn:
		st := &ReturnStmt{Line: ln.Num}
		if len(toks) > 1 {
			val, err := p.parseExprTokens(ln, toks[1:])
			if err != nil {
				return nil, err
			}
			st.Value = val
		}
		return st, nil

	case TokRaise:
		if len(toks) < 2 {
			return nil, p.errAfter(ln, toks[0], "expected expression after 'raise'")
		}
		val, err := p.parseExprTokens(ln, toks[1:])
		if err != nil {
			return nil, err
		}
		return &RaiseStmt{Value: val, Line: ln.Num}, nil

	case TokIf:
		cond, err := p.parseHeaderCond(ln, "if")
		if err != nil {
			return nil, err
		}
		then, err := p.parseBlock(ln)
		if err != nil {
			return nil, err
		}
		st := &IfStmt{Cond: cond, Then: then, Line: ln.Num}

		if !p.eof() && p.peek().Indent == indent && p.peek().Toks[0].Kind == TokElse {
			elseLn := p.next()
			if len(elseLn.Toks) != 2 || elseLn.Toks[1].Kind != TokColon {
				return nil, p.errAfter(elseLn, elseLn.Toks[0], "expected ':' after 'else'")
			}
			st.Else, err = p.parseBlock(elseLn)
			if err != nil {
				return nil, err
			}
		}
		return st, nil

	case TokElse:
		return nil, p.errTok(toks[0], "'else' without matching 'if'")

	case TokWhile:
		cond, err := p.parseHeaderCond(ln, "while")
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock(ln)
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Cond: cond, Body: body, Line: ln.Num}, nil
	}

	if toks[0].Kind == TokIdent && len(toks) > 1 && toks[1].Kind == TokAssign {
		if len(toks) < 3 {
			return nil, p.errAfter(ln, toks[1], "expected expression after '='")
		}
		val, err := p.parseExprTokens(ln, toks[2:])
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Name: toks[0].Text, Value: val, Line: ln.Num}, nil
	}

	x, err := p.parseExprTokens(ln, toks)
	if err != nil {
		return nil, err
	}
	return &ExprStmt{X: x, Line: ln.Num}, nil
}

// parseHeaderCond parses the condition of "if <expr>:" / "while <expr>:".
func (p *parser) parseHeaderCond(ln Line, kw string) (Expr, error) {
	toks := ln.Toks
	last := toks[len(toks)-1]
	if last.Kind != TokColon {
		return nil, p.errAfter(ln, last, "expected ':'")
	}
	if len(toks) < 3 {
		return nil, p.errAfter(ln, toks[0], fmt.Sprintf("expected condition after '%s'", kw))
	}
	return p.parseExprTokens(ln, toks[1:len(toks)-1])
}

// parseExprTokens parses toks as a complete expression.
func (p *parser) parseExprTokens(ln Line, toks []Token) (Expr, error) {
	ep := &exprParser{p: p, ln: ln, toks: toks}
	x, err := ep.parseExpr()
	if err != nil {
		return nil, err
	}
	if ep.i != len(toks) {
		return nil, p.errTok(toks[ep.i], fmt.Sprintf("unexpected %s after expression", toks[ep.i].Kind))
	}
	return x, nil
}

// exprParser is a precedence-climbing parser over one line's tokens.
type exprParser struct {
	p    *parser
	ln   Line
	toks []Token
	i    int
}

func (ep *exprParser) have() bool { return ep.i < len(ep.toks) }
func (ep *exprParser) peekKind() TokKind {
	if !ep.have() {
		return TokEOF
	}
	return ep.toks[ep.i].Kind
}
func (ep *exprParser) next() Token {
	t := ep.toks[ep.i]
	ep.i++
	return t
}

func (ep *exprParser) parseExpr() (Expr, error) {
	return ep.parseComparison()
}

func (ep *exprParser) parseComparison() (Expr, error) {
	l, err := ep.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		switch ep.peekKind() {
		case TokEq, TokNe, TokLt, TokLe, TokGt, TokGe:
			op := ep.next().Kind
			r, err := ep.parseAdditive()
			if err != nil {
				return nil, err
			}
			l = &BinaryExpr{Op: op, L: l, R: r}
		default:
			return l, nil
		}
	}
}

func (ep *exprParser) parseAdditive() (Expr, error) {
	l, err := ep.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for ep.peekKind() == TokPlus || ep.peekKind() == TokMinus {
		op := ep.next().Kind
		r, err := ep.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		l = &BinaryExpr{Op: op, L: l, R: r}
	}
	return l, nil
}

func (ep *exprParser) parseMultiplicative() (Expr, error) {
	l, err := ep.parseUnary()
	if err != nil {
		return nil, err
	}
	for ep.peekKind() == TokStar || ep.peekKind() == TokSlash || ep.peekKind() == TokPercent {
		op := ep.next().Kind
		r, err := ep.parseUnary()
		if err != nil {
			return nil, err
		}
		l = &BinaryExpr{Op: op, L: l, R: r}
	}
	return l, nil
}

func (ep *exprParser) parseUnary() (Expr, error) {
	if ep.peekKind() == TokMinus {
		ep.next()
		x, err := ep.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: TokMinus, X: x}, nil
	}
	return ep.parsePrimary()
}

func (ep *exprParser) parsePrimary() (Expr, error) {
	if !ep.have() {
		return nil, ep.endErr()
	}
	tok := ep.next()
	switch tok.Kind {
	case TokInt:
		return &IntLit{Value: tok.Int}, nil
	case TokStr:
		return &StrLit{Value: tok.Text}, nil
	case TokTrue:
		return &BoolLit{Value: true}, nil
	case TokFalse:
		return &BoolLit{Value: false}, nil
	case TokNone:
		return &NoneLit{}, nil
	case TokIdent:
		if ep.peekKind() == TokLParen {
			return ep.parseCall(tok)
		}
		return &NameExpr{Name: tok.Text}, nil
	case TokLParen:
		x, err := ep.parseExpr()
		if err != nil {
			return nil, err
		}
		if ep.peekKind() != TokRParen {
			return nil, ep.endOrTokErr("expected ')'")
		}
		ep.next()
		return x, nil
	default:
		return nil, ep.p.errTok(tok, fmt.Sprintf("expected expression, found %s", tok.Kind))
	}
}

// parseCall parses "name(arg, ...)" with name already consumed.
func (ep *exprParser) parseCall(name Token) (Expr, error) {
	ep.next() // (
	call := &CallExpr{Name: name.Text, Line: name.Line}
	if ep.peekKind() == TokRParen {
		ep.next()
		return call, nil
	}
	for {
		arg, err := ep.parseExpr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		switch ep.peekKind() {
		case TokComma:
			ep.next()
		case TokRParen:
			ep.next()
			return call, nil
		default:
			return nil, ep.endOrTokErr("expected ',' or ')' in argument list")
		}
	}
}

func (ep *exprParser) endErr() error {
	last := ep.ln.Toks[len(ep.ln.Toks)-1]
	return ep.p.errAfter(ep.ln, last, "unexpected end of line, expected expression")
}

func (ep *exprParser) endOrTokErr(msg string) error {
	if !ep.have() {
		last := ep.ln.Toks[len(ep.ln.Toks)-1]
		return ep.p.errAfter(ep.ln, last, msg)
	}
	return ep.p.errTok(ep.toks[ep.i], msg)
}

// errTok builds a ParseError pointing at tok.
func (p *parser) errTok(tok Token, msg string) error {
	return p.lineErr(tok.Line, tok.Col, msg)
}

// errAfter points just past tok on its line.
func (p *parser) errAfter(ln Line, tok Token, msg string) error {
	return p.lineErr(ln.Num, tok.Col+len([]rune(tok.Text)), msg)
}

func (p *parser) lineErr(line, col int, msg string) error {
	src := ""
	if line-1 >= 0 && line-1 < len(p.raw) {
		src = p.raw[line-1]
	}
	return &ParseError{Path: p.path, Line: line, Col: col, Msg: msg, Src: src}
}
