// Package linter implements spec.md §4.4: the semantic analyzer and type
// resolver that turns a raw internal/ast syntax tree into an
// internal/typedast typed program, a user-defined-type table, and a global
// constant table. It runs as a sequence of ordered passes (L0-L5), mirroring
// the teacher compiler's internal/semantic/passes package, which splits its
// own analyzer into declaration/type-resolution/validation passes sharing
// one context struct.
package linter

import (
	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/typedast"
	"github.com/basiclang/basiccomp/internal/variant"
)

// constant is a resolved CONST entry: its evaluated value and qualifier.
type constant struct {
	typ   typedast.Type
	value variant.Variant
}

// Linter is the shared pass context: every L0-L5 pass is a method on this
// struct, reading and writing the tables built by earlier passes exactly as
// spec.md §4.4 orders them.
type Linter struct {
	defTypeMap  map[byte]names.Qualifier // letter -> default qualifier, pass L0
	userTypes   map[string]*typedast.UserType
	subprograms map[string]*typedast.SubprogramInfo
	constants   map[string]constant

	errs []*cerrors.CompilerError

	// scope is the active body-conversion scope (pass L4); reassigned per
	// subprogram body and for the global body.
	scope *scope
}

// New returns a Linter ready to run Lint.
func New() *Linter {
	return &Linter{
		userTypes:   make(map[string]*typedast.UserType),
		subprograms: make(map[string]*typedast.SubprogramInfo),
		constants:   make(map[string]constant),
	}
}

// Lint runs passes L0 through L5 over prog and returns the typed program
// plus any diagnostics accumulated along the way (spec.md §4.4).
func Lint(prog *ast.Program) (*typedast.Program, []*cerrors.CompilerError) {
	l := New()

	l.runDefTypePass(prog)   // L0
	l.runTypeDefPass(prog)   // L1
	l.runSubprogramPass(prog) // L2
	l.runConstantPass(prog)  // L3

	typed := l.runBodyConversionPass(prog) // L4
	l.runPostChecks(typed)                 // L5

	typed.UserTypes = l.userTypes
	typed.Subprograms = l.subprograms

	return typed, l.errs
}

func (l *Linter) fail(err *cerrors.CompilerError) {
	if err != nil {
		l.errs = append(l.errs, err)
	}
}

// defaultQualifier returns the DEF-type-map default for an unqualified name
// starting with the given letter (spec.md §4.4 pass L0), falling back to
// single when no DEF<type> statement covers that letter.
func (l *Linter) defaultQualifier(firstLetter byte) names.Qualifier {
	if firstLetter >= 'a' && firstLetter <= 'z' {
		firstLetter -= 'a' - 'A'
	}
	if q, ok := l.defTypeMap[firstLetter]; ok {
		return q
	}
	return names.QSingle
}
