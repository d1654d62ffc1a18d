package typedast

import "github.com/basiclang/basiccomp/internal/names"

// ArrayBound is one resolved dimension bound; bounds may be dynamic
// expressions (REDIM can size from a variable), matching
// AllocateArrayIntoA's "consumes a set of previously pushed dimension
// lbound/ubound pairs" (spec.md §4.5).
type ArrayBound struct {
	Lower, Upper Expression
}

// DimVar is one variable allocated by a (possibly synthetic, hoisted) DIM.
type DimVar struct {
	Path     names.RootPath
	Type     Type
	IsArray  bool
	Bounds   []ArrayBound
	Preserve bool
}

// DimStatement covers explicit DIM/REDIM and every implicit-variable
// hoisting the linter performs (spec.md §4.4, "Implicit-variable hoisting";
// §8 property 4).
type DimStatement struct {
	pos
	Vars  []DimVar
	Redim bool
}

func (d *DimStatement) statementNode()      {}
func (d *DimStatement) globalStatementNode() {}
func (d *DimStatement) String() string       { return "DIM ..." }

// LValue is the subset of Expression valid as an assignment target or READ
// destination: *Variable, *PropertyAccess, or *ArrayElement.
type LValue = Expression

type AssignmentStatement struct {
	pos
	Target LValue
	Value  Expression
}

func (a *AssignmentStatement) statementNode()      {}
func (a *AssignmentStatement) globalStatementNode() {}
func (a *AssignmentStatement) String() string       { return a.Target.String() + " = " + a.Value.String() }

// CallStatement is a bare SUB call, user-defined or built-in; built-in
// target identity is carried the same way FunctionCall carries it.
type CallStatement struct {
	pos
	Kind      CalleeKind
	Name      names.BareName
	BuiltinID int
	Args      []Argument
}

func (c *CallStatement) statementNode()      {}
func (c *CallStatement) globalStatementNode() {}
func (c *CallStatement) String() string       { return c.Name.String() + "(...)" }

type LabelStatement struct {
	pos
	Name string
}

func (l *LabelStatement) statementNode()      {}
func (l *LabelStatement) globalStatementNode() {}
func (l *LabelStatement) String() string       { return l.Name + ":" }

type GotoStatement struct {
	pos
	Label string
}

func (g *GotoStatement) statementNode()      {}
func (g *GotoStatement) globalStatementNode() {}
func (g *GotoStatement) String() string       { return "GOTO " + g.Label }

type GosubStatement struct {
	pos
	Label string
}

func (g *GosubStatement) statementNode()      {}
func (g *GosubStatement) globalStatementNode() {}
func (g *GosubStatement) String() string       { return "GOSUB " + g.Label }

type ReturnStatement struct {
	pos
}

func (r *ReturnStatement) statementNode()      {}
func (r *ReturnStatement) globalStatementNode() {}
func (r *ReturnStatement) String() string       { return "RETURN" }

type OnErrorKind int

const (
	OnErrorGoToLabel OnErrorKind = iota
	OnErrorGoToZero
	OnErrorResumeNext
)

type OnErrorStatement struct {
	pos
	Kind  OnErrorKind
	Label string
}

func (o *OnErrorStatement) statementNode()      {}
func (o *OnErrorStatement) globalStatementNode() {}
func (o *OnErrorStatement) String() string       { return "ON ERROR ..." }

type ResumeKind int

const (
	ResumeSame ResumeKind = iota
	ResumeNextStmt
	ResumeAtLabel
)

type ResumeStatement struct {
	pos
	Kind  ResumeKind
	Label string
}

func (r *ResumeStatement) statementNode()      {}
func (r *ResumeStatement) globalStatementNode() {}
func (r *ResumeStatement) String() string       { return "RESUME" }

type ExitKind int

const (
	ExitFor ExitKind = iota
	ExitSub
	ExitFunction
)

type ExitStatement struct {
	pos
	Kind ExitKind
}

func (e *ExitStatement) statementNode()      {}
func (e *ExitStatement) globalStatementNode() {}
func (e *ExitStatement) String() string       { return "EXIT ..." }

// PrintItem mirrors internal/ast.PrintItem once Expr has been resolved to
// the typed tree.
type PrintItem struct {
	Expr Expression
	Sep  byte
}

type PrintStatement struct {
	pos
	FileHandle Expression
	Items      []PrintItem
}

func (p *PrintStatement) statementNode()      {}
func (p *PrintStatement) globalStatementNode() {}
func (p *PrintStatement) String() string       { return "PRINT ..." }

// DataStatement is only ever legal at global scope after pass L5 (spec.md
// §4.4 L5: "DATA is illegal inside SUB/FUNCTION"); Values are const-folded
// literal expressions.
type DataStatement struct {
	pos
	Values []Expression
}

func (d *DataStatement) statementNode()      {}
func (d *DataStatement) globalStatementNode() {}
func (d *DataStatement) String() string       { return "DATA ..." }

// ReadStatement targets must be variables of built-in scalar type (spec.md
// §4.4 L5); Targets are LValue expressions, same as AssignmentStatement.
type ReadStatement struct {
	pos
	Targets []LValue
}

func (r *ReadStatement) statementNode()      {}
func (r *ReadStatement) globalStatementNode() {}
func (r *ReadStatement) String() string       { return "READ ..." }
