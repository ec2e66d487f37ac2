package script

// TokKind identifies a lexical token of the script language.
type TokKind uint8

const (
	TokEOF TokKind = iota
	TokIdent
	TokInt
	TokStr

	// Keywords.
	TokDef
	TokReturn
	TokRaise
	TokIf
	TokElse
	TokWhile
	TokPass
	TokTrue
	TokFalse
	TokNone

	// Operators and punctuation.
	TokAssign  // =
	TokPlus    // +
	TokMinus   // -
	TokStar    // *
	TokSlash   // /
	TokPercent // %
	TokEq      // ==
	TokNe      // !=
	TokLt      // <
	TokLe      // <=
	TokGt      // >
	TokGe      // >=
	TokLParen  // (
	TokRParen  // )
	TokComma   // ,
	TokColon   // :
)

var tokNames = map[TokKind]string{
	TokEOF:     "end of line",
	TokIdent:   "identifier",
	TokInt:     "integer literal",
	TokStr:     "string literal",
	TokDef:     "'def'",
	TokReturn:  "'return'",
	TokRaise:   "'raise'",
	TokIf:      "'if'",
	TokElse:    "'else'",
	TokWhile:   "'while'",
	TokPass:    "'pass'",
	TokTrue:    "'True'",
	TokFalse:   "'False'",
	TokNone:    "'None'",
	TokAssign:  "'='",
	TokPlus:    "'+'",
	TokMinus:   "'-'",
	TokStar:    "'*'",
	TokSlash:   "'/'",
	TokPercent: "'%'",
	TokEq:      "'=='",
	TokNe:      "'!='",
	TokLt:      "'<'",
	TokLe:      "'<='",
	TokGt:      "'>'",
	TokGe:      "'>='",
	TokLParen:  "'('",
	TokRParen:  "')'",
	TokComma:   "','",
	TokColon:   "':'",
}

// String returns a human-readable name for error messages.
func (k TokKind) String() string {
	if s, ok := tokNames[k]; ok {
		return s
	}
	return "unknown token"
}

// IsKeyword reports whether the kind is a language keyword.
func (k TokKind) IsKeyword() bool {
	return k >= TokDef && k <= TokNone
}

var keywords = map[string]TokKind{
	"def":    TokDef,
	"return": TokReturn,
	"raise":  TokRaise,
	"if":     TokIf,
	"else":   TokElse,
	"while":  TokWhile,
	"pass":   TokPass,
	"True":   TokTrue,
	"False":  TokFalse,
	"None":   TokNone,
}

// Token is a single lexical token with its source position.
type Token struct {
	Kind TokKind
	Text string // raw text for identifiers, decoded text for strings
	Int  int64  // value for TokInt
	Line int    // 1-based source line
	Col  int    // 1-based rune column
}
