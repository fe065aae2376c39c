// Package evaluator parses and evaluates infix arithmetic over + - * / with
// parentheses and unary signs. Division by zero is reported as
// ErrDivisionByZero; malformed input as *SyntaxError.
package evaluator

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrDivisionByZero is returned when a divisor evaluates to zero.
var ErrDivisionByZero = errors.New("division by zero")

// SyntaxError describes malformed input. Pos is a 0-based byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (char %d)", e.Msg, e.Pos+1)
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNum
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	pos  int
	text string
}

func lex(src string) ([]token, error) {
	var out []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || c == '.':
			start := i
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			if i < len(src) && src[i] == '.' {
				i++
				for i < len(src) && isDigit(src[i]) {
					i++
				}
			}
			if src[start:i] == "." {
				return nil, &SyntaxError{Pos: start, Msg: "Value expected"}
			}
			out = append(out, token{kind: tokNum, pos: start, text: src[start:i]})
		case c == '+' || c == '-' || c == '*' || c == '/':
			out = append(out, token{kind: tokOp, pos: i, text: string(c)})
			i++
		case c == '(':
			out = append(out, token{kind: tokLParen, pos: i, text: "("})
			i++
		case c == ')':
			out = append(out, token{kind: tokRParen, pos: i, text: ")"})
			i++
		default:
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("Unexpected character %q", c)}
		}
	}
	out = append(out, token{kind: tokEOF, pos: len(src)})
	return out, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// binding powers
const (
	bpAdditive       = 60
	bpMultiplicative = 70
	bpUnary          = 80
)

func lbp(t token) (int, bool) {
	if t.kind != tokOp {
		return 0, false
	}
	switch t.text {
	case "+", "-":
		return bpAdditive, true
	case "*", "/":
		return bpMultiplicative, true
	}
	return 0, false
}

// maxDepth bounds nesting of parentheses and unary signs.
const maxDepth = 256

type parser struct {
	toks  []token
	i     int
	depth int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

// Parse builds the expression tree for src.
func Parse(src string) (Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		if t.kind == tokRParen {
			return nil, &SyntaxError{Pos: t.pos, Msg: "Unexpected closing parenthesis"}
		}
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("Unexpected %q", t.text)}
	}
	return n, nil
}

func (p *parser) expr(minBP int) (Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return nil, &SyntaxError{Pos: p.peek().pos, Msg: "Expression nested too deeply"}
	}
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		bp, ok := lbp(op)
		if !ok || bp < minBP {
			break
		}
		p.next()
		right, err := p.expr(bp + 1)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.text[0], L: left, R: right}
	}
	return left, nil
}

func (p *parser) prefix() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("Invalid number %q", t.text)}
		}
		return &Num{Value: v, Text: t.text}, nil
	case tokLParen:
		inner, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, &SyntaxError{Pos: c.pos, Msg: "Parenthesis ) expected"}
		}
		return inner, nil
	case tokOp:
		if t.text == "+" || t.text == "-" {
			x, err := p.expr(bpUnary)
			if err != nil {
				return nil, err
			}
			return &Unary{Op: t.text[0], X: x}, nil
		}
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("Value expected before %q", t.text)}
	case tokRParen:
		return nil, &SyntaxError{Pos: t.pos, Msg: "Value expected before closing parenthesis"}
	}
	return nil, &SyntaxError{Pos: t.pos, Msg: "Unexpected end of expression"}
}

// Evaluate parses and evaluates src.
func Evaluate(src string) (float64, error) {
	n, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return n.Eval()
}

// Arithmetic adapts Evaluate to ports.Evaluator.
type Arithmetic struct{}

func New() *Arithmetic { return &Arithmetic{} }

func (Arithmetic) Evaluate(expr string) (float64, error) { return Evaluate(expr) }
