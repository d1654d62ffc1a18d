package ast

import (
	"fmt"

	"github.com/basiclang/basiccomp/internal/token"
)

// IntegerLiteral is a decimal/hex/oct literal in -32768..32767 (or promoted
// by the parser to LongLiteral/DoubleLiteral on overflow, spec.md §4.3).
type IntegerLiteral struct {
	pos
	Value       int32
	HasFileHandle bool // true when this literal came from a "#<digits>" token
}

func (l *IntegerLiteral) expressionNode() {}
func (l *IntegerLiteral) String() string  { return fmt.Sprintf("%d", l.Value) }

type LongLiteral struct {
	pos
	Value int64
}

func (l *LongLiteral) expressionNode() {}
func (l *LongLiteral) String() string  { return fmt.Sprintf("%d", l.Value) }

type SingleLiteral struct {
	pos
	Value float32
}

func (l *SingleLiteral) expressionNode() {}
func (l *SingleLiteral) String() string  { return fmt.Sprintf("%v", l.Value) }

type DoubleLiteral struct {
	pos
	Value float64
}

func (l *DoubleLiteral) expressionNode() {}
func (l *DoubleLiteral) String() string  { return fmt.Sprintf("%v#", l.Value) }

type StringLiteral struct {
	pos
	Value string
}

func (l *StringLiteral) expressionNode() {}
func (l *StringLiteral) String() string  { return fmt.Sprintf("%q", l.Value) }

// FunctionCallOrIndex is syntactically indistinguishable between a
// built-in/user function call and an array element reference until the
// linter resolves Name's binding (spec.md §3, §4.4).
type FunctionCallOrIndex struct {
	pos
	Name Expression // *Identifier or *PropertyChain
	Args []Expression
}

func (c *FunctionCallOrIndex) expressionNode() {}
func (c *FunctionCallOrIndex) String() string {
	return fmt.Sprintf("%s(...)", c.Name.String())
}

// ParenExpr blocks operator-precedence rotation and unary-minus literal
// folding across its boundary (spec.md §4.3).
type ParenExpr struct {
	pos
	Inner Expression
}

func (p *ParenExpr) expressionNode() {}
func (p *ParenExpr) String() string  { return "(" + p.Inner.String() + ")" }

// UnaryExpr is NOT or unary minus.
type UnaryExpr struct {
	pos
	Op      token.TokenType // NOT or MINUS
	Operand Expression
}

func (u *UnaryExpr) expressionNode() {}
func (u *UnaryExpr) String() string {
	sym := "NOT "
	if u.Op == token.MINUS {
		sym = "-"
	}
	return sym + u.Operand.String()
}

// BinaryExpr covers arithmetic, comparison, and the keyword operators
// AND/OR/MOD. Op identifies the operator by token type.
type BinaryExpr struct {
	pos
	Op          token.TokenType
	Left, Right Expression
	// Parenthesized records whether this node's operands were blocked from
	// rotation because one side was written in parentheses; retained for
	// diagnostics and re-printing, not consulted by later stages.
	Parenthesized bool
}

func (b *BinaryExpr) expressionNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %v %s)", b.Left.String(), b.Op, b.Right.String())
}

// Precedence levels, highest first, per spec.md §4.3. Unary binds tightest;
// OR binds loosest. Comparisons are non-associative at the same level.
const (
	PrecLowest = iota
	PrecOr
	PrecAnd
	PrecComparison
	PrecAddSub
	PrecMod
	PrecMulDiv
	PrecUnary
)

// PrecedenceOf returns the binding power of a binary/unary operator token.
func PrecedenceOf(tt token.TokenType) int {
	switch tt {
	case token.OR:
		return PrecOr
	case token.AND:
		return PrecAnd
	case token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE:
		return PrecComparison
	case token.PLUS, token.MINUS:
		return PrecAddSub
	case token.MOD:
		return PrecMod
	case token.ASTERISK, token.SLASH:
		return PrecMulDiv
	case token.NOT:
		return PrecUnary
	default:
		return PrecLowest
	}
}

// IsComparison reports whether tt is one of the non-associative comparison
// operators.
func IsComparison(tt token.TokenType) bool {
	switch tt {
	case token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE:
		return true
	default:
		return false
	}
}
