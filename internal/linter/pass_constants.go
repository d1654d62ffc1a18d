package linter

import (
	"fmt"

	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/typedast"
)

// runConstantPass is spec.md §4.4 pass L3: evaluate every top-level
// CONST X = expr using the constant evaluator and record the result.
// Constants are assigned a qualifier by the literal's type; an explicit
// sigil on the name must match, or it is a DuplicateDefinition error.
// Constants cannot refer to variables, functions, or arrays, which
// evalConstant already rejects as InvalidConstant.
func (l *Linter) runConstantPass(prog *ast.Program) {
	for _, g := range prog.Statements {
		cd, ok := asConstDecl(g)
		if !ok {
			continue
		}

		key := cd.Name.Name.Key()
		if _, dup := l.constants[key]; dup {
			l.fail(cerrors.New(cerrors.DuplicateDefinition, cd.Pos(),
				fmt.Sprintf("%q is already defined as a constant", cd.Name.Name.String())))
			continue
		}

		value, err := l.evalConstant(cd.Value)
		if err != nil {
			l.fail(err)
			continue
		}

		qualifier := value.Qualifier()
		if cd.Name.Name.IsQualified() && cd.Name.Name.Qualifier != qualifier {
			l.fail(cerrors.New(cerrors.DuplicateDefinition, cd.Pos(),
				fmt.Sprintf("%q does not agree with its earlier declaration", cd.Name.Name.String())))
			continue
		}

		l.constants[key] = constant{typ: typedast.Builtin(qualifier), value: value}
	}
}

func asConstDecl(g ast.GlobalStatement) (*ast.ConstDecl, bool) {
	if cd, ok := g.(*ast.ConstDecl); ok {
		return cd, true
	}
	if wrapped, ok := g.(ast.StatementAsGlobal); ok {
		if cd, ok := wrapped.Statement.(*ast.ConstDecl); ok {
			return cd, true
		}
	}
	return nil, false
}
