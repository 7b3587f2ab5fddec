package expr

import (
	"strconv"
	"strings"
)

// Node is a parsed arithmetic expression.
type Node interface {
	Span() Span
	String() string
}

type Number struct {
	Value   float64
	Literal string
	span    Span
}

type Unary struct {
	Op      TokenKind
	Operand Node
	span    Span
}

type Binary struct {
	Op    TokenKind
	Left  Node
	Right Node
	span  Span
}

func (n *Number) Span() Span { return n.span }
func (n *Unary) Span() Span  { return n.span }
func (n *Binary) Span() Span { return n.span }

func (n *Number) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *Unary) String() string {
	return "(" + n.Op.String() + n.Operand.String() + ")"
}

// String renders the tree fully parenthesized, which makes precedence and
// associativity visible in tests.
func (n *Binary) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(n.Left.String())
	sb.WriteByte(' ')
	sb.WriteString(n.Op.String())
	sb.WriteByte(' ')
	sb.WriteString(n.Right.String())
	sb.WriteByte(')')
	return sb.String()
}
