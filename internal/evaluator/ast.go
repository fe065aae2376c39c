package evaluator

import (
	"fmt"
	"strconv"
)

// Node is a parsed arithmetic expression.
type Node interface {
	Eval() (float64, error)
	String() string
}

// Num is a numeric literal.
type Num struct {
	Value float64
	Text  string
}

func (n *Num) Eval() (float64, error) { return n.Value, nil }

func (n *Num) String() string {
	if n.Text != "" {
		return n.Text
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// Unary is a signed operand: +x or -x.
type Unary struct {
	Op byte
	X  Node
}

func (u *Unary) Eval() (float64, error) {
	v, err := u.X.Eval()
	if err != nil {
		return 0, err
	}
	if u.Op == '-' {
		return -v, nil
	}
	return v, nil
}

func (u *Unary) String() string { return string(u.Op) + wrap(u.X) }

// Binary applies one of + - * / to two operands.
type Binary struct {
	Op   byte
	L, R Node
}

func (b *Binary) Eval() (float64, error) {
	l, err := b.L.Eval()
	if err != nil {
		return 0, err
	}
	r, err := b.R.Eval()
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	}
	return 0, fmt.Errorf("unknown operator %q", b.Op)
}

func (b *Binary) String() string {
	return wrap(b.L) + " " + string(b.Op) + " " + wrap(b.R)
}

func wrap(n Node) string {
	if _, ok := n.(*Binary); ok {
		return "(" + n.String() + ")"
	}
	return n.String()
}
