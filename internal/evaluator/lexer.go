package evaluator

import "strings"

// Lexer splits an expression into tokens.
type Lexer struct {
	src string
	pos int
}

// NewLexer returns a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Tokenize returns every token of src, ending with TokEOF.
// The first invalid token stops scanning and is reported as an error.
func Tokenize(src string) ([]Token, error) {
	lx := NewLexer(src)
	var out []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == TokEOF {
			return out, nil
		}
	}
}

// Next returns the next token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() (Token, error) {
	lx.skipSpace()
	if lx.pos >= len(lx.src) {
		return Token{Kind: TokEOF, Pos: lx.pos}, nil
	}

	ch := lx.src[lx.pos]
	switch {
	case isIdentStart(ch):
		return lx.scanName(), nil
	case isDigit(ch), ch == '.' && lx.pos+1 < len(lx.src) && isDigit(lx.src[lx.pos+1]):
		return lx.scanNumber()
	case ch == '\'' || ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperator()
	}
}

func (lx *Lexer) skipSpace() {
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			lx.pos++
		default:
			return
		}
	}
}

func (lx *Lexer) scanName() Token {
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentContinue(lx.src[lx.pos]) {
		lx.pos++
	}
	text := lx.src[start:lx.pos]
	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind, Text: text, Pos: start}
	}
	if reserved[text] {
		return Token{Kind: TokReserved, Text: text, Pos: start}
	}
	return Token{Kind: TokName, Text: text, Pos: start}
}

func (lx *Lexer) scanNumber() (Token, error) {
	start := lx.pos
	src := lx.src

	// 0x / 0o / 0b
	if src[lx.pos] == '0' && lx.pos+1 < len(src) {
		var valid func(byte) bool
		switch src[lx.pos+1] {
		case 'x', 'X':
			valid = isHexDigit
		case 'o', 'O':
			valid = func(c byte) bool { return c >= '0' && c <= '7' }
		case 'b', 'B':
			valid = func(c byte) bool { return c == '0' || c == '1' }
		}
		if valid != nil {
			lx.pos += 2
			digits := lx.pos
			for lx.pos < len(src) && valid(src[lx.pos]) {
				lx.pos++
			}
			if lx.pos == digits {
				return Token{}, lx.syntaxError(start, "invalid integer literal")
			}
			return lx.finishNumber(start, TokInt)
		}
	}

	kind := TokInt
	for lx.pos < len(src) && isDigit(src[lx.pos]) {
		lx.pos++
	}
	intPart := src[start:lx.pos]
	if lx.pos < len(src) && src[lx.pos] == '.' {
		kind = TokFloat
		lx.pos++
		for lx.pos < len(src) && isDigit(src[lx.pos]) {
			lx.pos++
		}
	}
	if lx.pos < len(src) && (src[lx.pos] == 'e' || src[lx.pos] == 'E') {
		kind = TokFloat
		lx.pos++
		if lx.pos < len(src) && (src[lx.pos] == '+' || src[lx.pos] == '-') {
			lx.pos++
		}
		digits := lx.pos
		for lx.pos < len(src) && isDigit(src[lx.pos]) {
			lx.pos++
		}
		if lx.pos == digits {
			return Token{}, lx.syntaxError(start, "invalid decimal literal")
		}
	}
	if kind == TokInt && len(intPart) > 1 && intPart[0] == '0' && strings.Trim(intPart, "0") != "" {
		return Token{}, lx.syntaxError(start, "leading zeros in decimal integer literals are not permitted")
	}
	return lx.finishNumber(start, kind)
}

func (lx *Lexer) finishNumber(start int, kind TokenKind) (Token, error) {
	if lx.pos < len(lx.src) && isIdentContinue(lx.src[lx.pos]) {
		return Token{}, lx.syntaxError(start, "invalid decimal literal")
	}
	return Token{Kind: kind, Text: lx.src[start:lx.pos], Pos: start}, nil
}

func (lx *Lexer) scanString() (Token, error) {
	start := lx.pos
	quote := lx.src[lx.pos]
	lx.pos++
	var b strings.Builder
	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		switch {
		case ch == quote:
			lx.pos++
			return Token{Kind: TokString, Text: b.String(), Pos: start}, nil
		case ch == '\n':
			return Token{}, lx.syntaxError(start, "unterminated string literal")
		case ch == '\\' && lx.pos+1 < len(lx.src):
			lx.pos++
			b.WriteString(unescape(lx.src[lx.pos]))
			lx.pos++
		default:
			b.WriteByte(ch)
			lx.pos++
		}
	}
	return Token{}, lx.syntaxError(start, "unterminated string literal")
}

func unescape(c byte) string {
	switch c {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '0':
		return "\x00"
	case '\\', '\'', '"':
		return string(c)
	default:
		return "\\" + string(c)
	}
}

// operators sorted so that longer spellings are tried first.
var operators = []struct {
	text string
	kind TokenKind
}{
	{"**", TokStarStar}, {"//", TokSlashSlash}, {"==", TokEq}, {"!=", TokNotEq},
	{"<=", TokLtEq}, {">=", TokGtEq}, {"<<", TokShl}, {">>", TokShr},
	{"+", TokPlus}, {"-", TokMinus}, {"*", TokStar}, {"/", TokSlash},
	{"%", TokPercent}, {"<", TokLt}, {">", TokGt}, {"^", TokCaret},
	{"|", TokPipe}, {"&", TokAmp}, {"~", TokTilde}, {"(", TokLParen},
	{")", TokRParen}, {",", TokComma},
}

func (lx *Lexer) scanOperator() (Token, error) {
	rest := lx.src[lx.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op.text) {
			tok := Token{Kind: op.kind, Text: op.text, Pos: lx.pos}
			lx.pos += len(op.text)
			return tok, nil
		}
	}
	return Token{}, lx.syntaxError(lx.pos, "invalid syntax")
}

func (lx *Lexer) syntaxError(pos int, msg string) *Error {
	return newError(KindInvalidExpression, "%s at position %d", msg, pos)
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentContinue(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
