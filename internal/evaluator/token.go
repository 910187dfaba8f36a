package evaluator

import "fmt"

// TokenKind represents the category of a lexical token.
type TokenKind uint8

const (
	// TokInvalid indicates an erroneous token.
	TokInvalid TokenKind = iota
	// TokEOF marks the end of input.
	TokEOF
	TokInt
	TokFloat
	TokString
	TokName

	TokPlus       // +
	TokMinus      // -
	TokStar       // *
	TokSlash      // /
	TokSlashSlash // //
	TokPercent    // %
	TokStarStar   // **
	TokEq         // ==
	TokNotEq      // !=
	TokLt         // <
	TokGt         // >
	TokLtEq       // <=
	TokGtEq       // >=
	TokCaret      // ^
	TokPipe       // |
	TokAmp        // &
	TokShl        // <<
	TokShr        // >>
	TokTilde      // ~
	TokLParen     // (
	TokRParen     // )
	TokComma      // ,

	TokIf
	TokElse
	TokAnd
	TokOr
	TokNot
	TokIn
	TokIs
	// TokReserved is a Python keyword the evaluator refuses (import, lambda, ...).
	TokReserved
)

var tokenNames = map[TokenKind]string{
	TokInvalid: "invalid", TokEOF: "end of input", TokInt: "int", TokFloat: "float",
	TokString: "string", TokName: "name",
	TokPlus: "+", TokMinus: "-", TokStar: "*", TokSlash: "/", TokSlashSlash: "//",
	TokPercent: "%", TokStarStar: "**", TokEq: "==", TokNotEq: "!=", TokLt: "<",
	TokGt: ">", TokLtEq: "<=", TokGtEq: ">=", TokCaret: "^", TokPipe: "|",
	TokAmp: "&", TokShl: "<<", TokShr: ">>", TokTilde: "~", TokLParen: "(",
	TokRParen: ")", TokComma: ",", TokIf: "if", TokElse: "else", TokAnd: "and",
	TokOr: "or", TokNot: "not", TokIn: "in", TokIs: "is", TokReserved: "keyword",
}

func (k TokenKind) String() string {
	if s, ok := tokenNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

// Token is one lexeme.
type Token struct {
	Kind TokenKind
	Text string // raw text; decoded contents for strings
	Pos  int    // byte offset
}

var keywords = map[string]TokenKind{
	"if":   TokIf,
	"else": TokElse,
	"and":  TokAnd,
	"or":   TokOr,
	"not":  TokNot,
	"in":   TokIn,
	"is":   TokIs,
}

// reserved keywords parse as syntax errors, like statements would.
var reserved = map[string]bool{
	"import": true, "from": true, "lambda": true, "def": true, "class": true,
	"return": true, "yield": true, "await": true, "async": true, "del": true,
	"global": true, "nonlocal": true, "pass": true, "raise": true, "try": true,
	"except": true, "finally": true, "while": true, "for": true, "with": true,
	"as": true, "assert": true, "break": true, "continue": true, "elif": true,
}
