package evaluator

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// maxNesting bounds recursion on inputs like "((((((...".
const maxNesting = 200

type parser struct {
	toks  []Token
	pos   int
	depth int
}

// Parse turns src into a Node. Every failure is an *Error of kind
// KindInvalidExpression.
func Parse(src string) (Node, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	switch tok := p.peek(); tok.Kind {
	case TokEOF:
		return n, nil
	case TokComma:
		return nil, p.errAt(tok, "tuples are not supported")
	default:
		return nil, p.errAt(tok, "invalid syntax")
	}
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != TokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) accept(kind TokenKind) bool {
	if p.peek().Kind == kind {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, p.errAt(tok, "expected %s", kind)
	}
	return p.next(), nil
}

func (p *parser) errAt(tok Token, format string, args ...any) *Error {
	e := newError(KindInvalidExpression, format, args...)
	e.Msg += " at position " + strconv.Itoa(tok.Pos)
	return e
}

// expr := or ["if" or "else" expr]
func (p *parser) expr() (Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		return nil, p.errAt(p.peek(), "too many nested parentheses")
	}

	body, err := p.or()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.Kind != TokIf {
		return body, nil
	}
	p.next()
	test, err := p.or()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokElse); err != nil {
		return nil, err
	}
	orelse, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &Cond{At: tok.Pos, Body: body, Test: test, Else: orelse}, nil
}

func (p *parser) or() (Node, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokOr {
		tok := p.next()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = &BoolOp{At: tok.Pos, Op: TokOr, L: left, R: right}
	}
	return left, nil
}

func (p *parser) and() (Node, error) {
	left, err := p.not()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokAnd {
		tok := p.next()
		right, err := p.not()
		if err != nil {
			return nil, err
		}
		left = &BoolOp{At: tok.Pos, Op: TokAnd, L: left, R: right}
	}
	return left, nil
}

func (p *parser) not() (Node, error) {
	if tok := p.peek(); tok.Kind == TokNot {
		p.next()
		p.depth++
		defer func() { p.depth-- }()
		if p.depth > maxNesting {
			return nil, p.errAt(tok, "too many nested operators")
		}
		x, err := p.not()
		if err != nil {
			return nil, err
		}
		return &Not{At: tok.Pos, X: x}, nil
	}
	return p.comparison()
}

func (p *parser) cmpOp() (CmpOp, bool) {
	switch p.peek().Kind {
	case TokEq:
		p.next()
		return CmpEq, true
	case TokNotEq:
		p.next()
		return CmpNotEq, true
	case TokLt:
		p.next()
		return CmpLt, true
	case TokGt:
		p.next()
		return CmpGt, true
	case TokLtEq:
		p.next()
		return CmpLtEq, true
	case TokGtEq:
		p.next()
		return CmpGtEq, true
	case TokIn:
		p.next()
		return CmpIn, true
	case TokIs:
		p.next()
		if p.accept(TokNot) {
			return CmpIsNot, true
		}
		return CmpIs, true
	case TokNot:
		if p.toks[p.pos+1].Kind == TokIn {
			p.pos += 2
			return CmpNotIn, true
		}
	}
	return 0, false
}

func (p *parser) comparison() (Node, error) {
	first, err := p.bitOr()
	if err != nil {
		return nil, err
	}
	at := p.peek().Pos
	var cmp *Compare
	for {
		op, ok := p.cmpOp()
		if !ok {
			break
		}
		right, err := p.bitOr()
		if err != nil {
			return nil, err
		}
		if cmp == nil {
			cmp = &Compare{At: at, First: first}
		}
		cmp.Ops = append(cmp.Ops, op)
		cmp.Rest = append(cmp.Rest, right)
	}
	if cmp == nil {
		return first, nil
	}
	return cmp, nil
}

// binaryLevel parses a left-associative level of binary operators.
func (p *parser) binaryLevel(operand func() (Node, error), ops ...TokenKind) (Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		matched := false
		for _, op := range ops {
			if tok.Kind == op {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &Binary{At: tok.Pos, Op: tok.Kind, L: left, R: right}
	}
}

func (p *parser) bitOr() (Node, error)  { return p.binaryLevel(p.bitXor, TokPipe) }
func (p *parser) bitXor() (Node, error) { return p.binaryLevel(p.bitAnd, TokCaret) }
func (p *parser) bitAnd() (Node, error) { return p.binaryLevel(p.shift, TokAmp) }
func (p *parser) shift() (Node, error)  { return p.binaryLevel(p.arith, TokShl, TokShr) }
func (p *parser) arith() (Node, error)  { return p.binaryLevel(p.term, TokPlus, TokMinus) }
func (p *parser) term() (Node, error) {
	return p.binaryLevel(p.factor, TokStar, TokSlash, TokSlashSlash, TokPercent)
}

// factor := ("+" | "-" | "~") factor | power
func (p *parser) factor() (Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokPlus, TokMinus, TokTilde:
		p.next()
		p.depth++
		defer func() { p.depth-- }()
		if p.depth > maxNesting {
			return nil, p.errAt(tok, "too many nested operators")
		}
		x, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &Unary{At: tok.Pos, Op: tok.Kind, X: x}, nil
	}
	return p.power()
}

// power := primary ["**" factor]; right-associative and binds tighter
// than a unary minus on its left.
func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.Kind != TokStarStar {
		return base, nil
	}
	p.next()
	exp, err := p.factor()
	if err != nil {
		return nil, err
	}
	return &Binary{At: tok.Pos, Op: TokStarStar, L: base, R: exp}, nil
}

func (p *parser) primary() (Node, error) {
	atom, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokLParen {
		open := p.next()
		name, ok := atom.(*Name)
		if !ok {
			return nil, p.errAt(open, "only named functions can be called")
		}
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		atom = &Call{At: name.At, Func: name.Ident, Args: args}
	}
	return atom, nil
}

func (p *parser) args() ([]Node, error) {
	var args []Node
	if p.accept(TokRParen) {
		return args, nil
	}
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.accept(TokRParen) {
			return args, nil
		}
		if _, err := p.expect(TokComma); err != nil {
			return nil, err
		}
		if p.accept(TokRParen) {
			return args, nil
		}
	}
}

func (p *parser) atom() (Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokInt:
		p.next()
		v, ok := new(big.Int).SetString(tok.Text, 0)
		if !ok {
			return nil, p.errAt(tok, "invalid integer literal")
		}
		return &IntLit{At: tok.Pos, Value: v}, nil
	case TokFloat:
		p.next()
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil && !math.IsInf(f, 0) {
			return nil, p.errAt(tok, "invalid float literal")
		}
		return &FloatLit{At: tok.Pos, Value: f}, nil
	case TokString:
		// adjacent literals concatenate
		var b strings.Builder
		for p.peek().Kind == TokString {
			b.WriteString(p.next().Text)
		}
		return &StrLit{At: tok.Pos, Value: b.String()}, nil
	case TokName:
		p.next()
		return &Name{At: tok.Pos, Ident: tok.Text}, nil
	case TokLParen:
		p.next()
		if p.peek().Kind == TokRParen {
			return nil, p.errAt(tok, "tuples are not supported")
		}
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.peek().Kind == TokComma {
			return nil, p.errAt(p.peek(), "tuples are not supported")
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case TokEOF:
		return nil, p.errAt(tok, "unexpected end of expression")
	case TokReserved:
		return nil, p.errAt(tok, "%q is not supported", tok.Text)
	default:
		return nil, p.errAt(tok, "invalid syntax")
	}
}
