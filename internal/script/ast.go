package script

// Program is a parsed script: its function declarations and top-level
// statements.
type Program struct {
	Path  string
	Funcs map[string]*FuncDecl
	Body  []Stmt
}

// FuncDecl is a named function with positional parameters.
type FuncDecl struct {
	Name   string
	Params []string
	Body   []Stmt
	Line   int
}

// Stmt is a statement node. Every statement knows its source line; the
// interpreter reports it on the frame before the statement executes.
type Stmt interface {
	StmtLine() int
}

// AssignStmt binds the value of an expression to a name.
type AssignStmt struct {
	Name  string
	Value Expr
	Line  int
}

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	X    Expr
	Line int
}

// ReturnStmt exits the current function. A nil Value returns None.
type ReturnStmt struct {
	Value Expr
	Line  int
}

// RaiseStmt raises a runtime error carrying the expression's value.
type RaiseStmt struct {
	Value Expr
	Line  int
}

// IfStmt is a two-way conditional. Else may be nil.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	Line int
}

// WhileStmt loops while the condition holds.
type WhileStmt struct {
	Cond Expr
	Body []Stmt
	Line int
}

// PassStmt does nothing.
type PassStmt struct {
	Line int
}

func (s *AssignStmt) StmtLine() int { return s.Line }
func (s *ExprStmt) StmtLine() int   { return s.Line }
func (s *ReturnStmt) StmtLine() int { return s.Line }
func (s *RaiseStmt) StmtLine() int  { return s.Line }
func (s *IfStmt) StmtLine() int     { return s.Line }
func (s *WhileStmt) StmtLine() int  { return s.Line }
func (s *PassStmt) StmtLine() int   { return s.Line }

// Expr is an expression node.
type Expr interface {
	exprNode()
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

// StrLit is a string literal with escapes already decoded.
type StrLit struct {
	Value string
}

// BoolLit is True or False.
type BoolLit struct {
	Value bool
}

// NoneLit is the None literal.
type NoneLit struct{}

// NameExpr reads a variable.
type NameExpr struct {
	Name string
}

// CallExpr calls a user function or a builtin by name.
type CallExpr struct {
	Name string
	Args []Expr
	Line int
}

// UnaryExpr applies a prefix operator (only TokMinus).
type UnaryExpr struct {
	Op TokKind
	X  Expr
}

// BinaryExpr applies an infix operator.
type BinaryExpr struct {
	Op TokKind
	L  Expr
	R  Expr
}

func (*IntLit) exprNode()     {}
func (*StrLit) exprNode()     {}
func (*BoolLit) exprNode()    {}
func (*NoneLit) exprNode()    {}
func (*NameExpr) exprNode()   {}
func (*CallExpr) exprNode()   {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
