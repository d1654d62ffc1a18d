// Package typedast is the typed intermediate representation spec.md §3
// calls out for the linter's output: "same shapes but with resolved names
// (always qualified for built-in types; bare only for user-defined types),
// resolved expression types on every node, array references split out from
// function calls, and property paths realized as a chain." internal/ast
// owns the raw syntax tree; internal/linter rewrites it into this package's
// node set during pass L4.
package typedast

import (
	"fmt"

	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/token"
)

// Node is implemented by every typed-IR node.
type Node interface {
	Pos() token.Position
	String() string
}

// Expression is any typed node that produces a value; every one carries its
// resolved ExprType, since the parser's "unresolved" marker (spec.md §3)
// must not survive past the linter.
type Expression interface {
	Node
	expressionNode()
	ExprType() Type
}

// Statement is any typed node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// GlobalStatement is a top-level typed form.
type GlobalStatement interface {
	Node
	globalStatementNode()
}

// pos is embedded by every node to implement Pos(), mirroring internal/ast's
// pattern so external packages (internal/linter) stamp positions via SetPos
// rather than reaching into an unexported field.
type pos struct {
	P token.Position
}

func (p pos) Pos() token.Position     { return p.P }
func (p *pos) SetPos(at token.Position) { p.P = at }

// TypeKind tags the payload of a Type.
type TypeKind byte

const (
	TBuiltin TypeKind = iota
	TFixedString
	TRecord
	TArray
)

// Type is the resolved expression type of spec.md §3: "built-in qualifier,
// fixed-length string (length 1..32767), user-defined record type
// (referenced by bare name), or array-of-T."
type Type struct {
	Kind        TypeKind
	Qualifier   names.Qualifier // meaningful for TBuiltin
	FixedLength int             // meaningful for TFixedString
	RecordName  names.BareName  // meaningful for TRecord and TArray-of-record
	Element     *Type           // meaningful for TArray
}

func Builtin(q names.Qualifier) Type { return Type{Kind: TBuiltin, Qualifier: q} }

func FixedString(n int) Type { return Type{Kind: TFixedString, FixedLength: n} }

func Record(name names.BareName) Type { return Type{Kind: TRecord, RecordName: name} }

func ArrayOf(elem Type) Type { return Type{Kind: TArray, Element: &elem} }

// IsNumeric reports whether values of this type participate in arithmetic.
func (t Type) IsNumeric() bool {
	if t.Kind != TBuiltin {
		return false
	}
	switch t.Qualifier {
	case names.QSingle, names.QDouble, names.QInteger, names.QLong:
		return true
	default:
		return false
	}
}

// IsString reports whether t is either a variable-length or fixed-length
// string type; spec.md §4.4's assignment-compatibility rule treats both
// alike ("fixed-length-string <-> string").
func (t Type) IsString() bool {
	return t.Kind == TFixedString || (t.Kind == TBuiltin && t.Qualifier == names.QString)
}

// Equal is structural equality, used by the linter's user-defined <-> same
// user-defined-only assignment rule and by array element-type checks.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case TBuiltin:
		return t.Qualifier == other.Qualifier
	case TFixedString:
		return true
	case TRecord:
		return t.RecordName.Equal(other.RecordName)
	case TArray:
		return t.Element.Equal(*other.Element)
	default:
		return false
	}
}

func (t Type) String() string {
	switch t.Kind {
	case TBuiltin:
		return t.Qualifier.String()
	case TFixedString:
		return fmt.Sprintf("STRING * %d", t.FixedLength)
	case TRecord:
		return t.RecordName.String()
	case TArray:
		return t.Element.String() + "()"
	default:
		return "?"
	}
}

// FieldDef is one field of a resolved user-defined type.
type FieldDef struct {
	Name names.BareName
	Type Type
}

// UserType is a fully-resolved TYPE ... END TYPE definition, keyed by bare
// name in the linter's type table (spec.md §4.4 pass L1). Fields preserve
// declaration order: "User-defined-type fields are stored in an
// insertion-ordered map (for size computation and binary layout
// determinism)" (spec.md §9).
type UserType struct {
	Name   names.BareName
	Fields []FieldDef
}

func (u *UserType) Field(name names.BareName) (FieldDef, bool) {
	for _, f := range u.Fields {
		if f.Name.Equal(name) {
			return f, true
		}
	}
	return FieldDef{}, false
}

// ParamInfo is one resolved formal parameter, shared by SubprogramInfo and
// the typed Sub/Function implementation nodes.
type ParamInfo struct {
	Name   names.BareName
	Type   Type
	ByVal  bool
}

// SubprogramInfo is the metadata spec.md §3 describes for every FUNCTION and
// SUB: "its name, parameter list with each parameter's expression type, its
// is_static flag." Computed by linter pass L2, consulted again by the
// instruction generator's own metadata-collection pass.
type SubprogramInfo struct {
	Name       names.BareName
	IsFunction bool
	Params     []ParamInfo
	ReturnType Type // zero value for subs
	IsStatic   bool
}

// Program is the linter's published typed program: the typed global
// statement list plus the user-defined-type table and subprogram
// repository (spec.md §3, "Ownership & lifecycle").
type Program struct {
	Statements  []GlobalStatement
	UserTypes   map[string]*UserType
	Subprograms map[string]*SubprogramInfo
}
