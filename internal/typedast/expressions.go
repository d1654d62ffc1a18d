package typedast

import (
	"fmt"
	"strings"

	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/token"
)

type IntegerLiteral struct {
	pos
	Value         int32
	HasFileHandle bool
}

func (l *IntegerLiteral) expressionNode()   {}
func (l *IntegerLiteral) ExprType() Type    { return Builtin(names.QInteger) }
func (l *IntegerLiteral) String() string    { return fmt.Sprintf("%d", l.Value) }

type LongLiteral struct {
	pos
	Value int64
}

func (l *LongLiteral) expressionNode() {}
func (l *LongLiteral) ExprType() Type  { return Builtin(names.QLong) }
func (l *LongLiteral) String() string  { return fmt.Sprintf("%d", l.Value) }

type SingleLiteral struct {
	pos
	Value float32
}

func (l *SingleLiteral) expressionNode() {}
func (l *SingleLiteral) ExprType() Type  { return Builtin(names.QSingle) }
func (l *SingleLiteral) String() string  { return fmt.Sprintf("%v", l.Value) }

type DoubleLiteral struct {
	pos
	Value float64
}

func (l *DoubleLiteral) expressionNode() {}
func (l *DoubleLiteral) ExprType() Type  { return Builtin(names.QDouble) }
func (l *DoubleLiteral) String() string  { return fmt.Sprintf("%v#", l.Value) }

type StringLiteral struct {
	pos
	Value string
}

func (l *StringLiteral) expressionNode() {}
func (l *StringLiteral) ExprType() Type  { return Builtin(names.QString) }
func (l *StringLiteral) String() string  { return fmt.Sprintf("%q", l.Value) }

// Variable is a resolved reference to a root-level variable (local,
// parameter, implicit, or DIM SHARED global), spec.md §3's "variable
// reference" once it has been resolved out of the parser's bare Identifier.
type Variable struct {
	pos
	Path names.RootPath
	Type Type
}

func (v *Variable) expressionNode() {}
func (v *Variable) ExprType() Type  { return v.Type }
func (v *Variable) String() string  { return v.Path.Name.String() }

// FieldStep is one resolved hop of a property chain.
type FieldStep struct {
	Name names.BareName
	Type Type
}

// PropertyAccess is a resolved A.B.C chain (spec.md §4.4 "Property path
// resolution"): Base must have record type at each step.
type PropertyAccess struct {
	pos
	Base  Expression
	Steps []FieldStep
}

func (p *PropertyAccess) expressionNode() {}
func (p *PropertyAccess) ExprType() Type {
	if len(p.Steps) == 0 {
		return p.Base.ExprType()
	}
	return p.Steps[len(p.Steps)-1].Type
}
func (p *PropertyAccess) String() string {
	var sb strings.Builder
	sb.WriteString(p.Base.String())
	for _, s := range p.Steps {
		sb.WriteString(".")
		sb.WriteString(s.Name.String())
	}
	return sb.String()
}

// ArrayElement is the linter's disambiguation of a parser FunctionCallOrIndex
// once Name is known to bind to an array variable (spec.md §4.4, "Array
// element vs function call disambiguation").
type ArrayElement struct {
	pos
	Array   Expression // *Variable or *PropertyAccess, resolved to array type
	Indices []Expression
	Type    Type // element type
}

func (a *ArrayElement) expressionNode() {}
func (a *ArrayElement) ExprType() Type  { return a.Type }
func (a *ArrayElement) String() string  { return a.Array.String() + "(...)" }

// CalleeKind distinguishes the three things a FunctionCall can resolve to.
type CalleeKind int

const (
	CalleeBuiltinFunction CalleeKind = iota
	CalleeUserFunction
)

// Argument pairs an evaluated actual argument with whether it is passed by
// reference, the distinction the instruction generator's calling convention
// needs at every call site (spec.md §4.5).
type Argument struct {
	Value Expression
	ByRef bool
}

// FunctionCall is a resolved call to either a built-in or user-defined
// FUNCTION; the BuiltinID field is meaningful only when Kind is
// CalleeBuiltinFunction (the linter looks it up via internal/builtins).
type FunctionCall struct {
	pos
	Kind      CalleeKind
	Name      names.BareName
	BuiltinID int
	Args      []Argument
	Type      Type
}

func (f *FunctionCall) expressionNode() {}
func (f *FunctionCall) ExprType() Type  { return f.Type }
func (f *FunctionCall) String() string  { return f.Name.String() + "(...)" }

type UnaryExpr struct {
	pos
	Op      token.TokenType // NOT or MINUS
	Operand Expression
	Type    Type
}

func (u *UnaryExpr) expressionNode() {}
func (u *UnaryExpr) ExprType() Type  { return u.Type }
func (u *UnaryExpr) String() string {
	sym := "NOT "
	if u.Op == token.MINUS {
		sym = "-"
	}
	return sym + u.Operand.String()
}

type BinaryExpr struct {
	pos
	Op          token.TokenType
	Left, Right Expression
	Type        Type
}

func (b *BinaryExpr) expressionNode() {}
func (b *BinaryExpr) ExprType() Type  { return b.Type }
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %v %s)", b.Left.String(), b.Op, b.Right.String())
}

// Cast makes an implicit widening/narrowing conversion explicit in the
// typed IR, the same way the instruction generator's own Cast(qualifier)
// opcode (spec.md §4.5) is explicit in the instruction stream; inserted by
// the linter wherever an assignment or argument needs one.
type Cast struct {
	pos
	Inner Expression
	To    Type
}

func (c *Cast) expressionNode() {}
func (c *Cast) ExprType() Type  { return c.To }
func (c *Cast) String() string  { return fmt.Sprintf("CAST(%s, %s)", c.Inner.String(), c.To) }
