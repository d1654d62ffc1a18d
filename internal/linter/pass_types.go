package linter

import (
	"fmt"

	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/typedast"
)

// runTypeDefPass is spec.md §4.4 pass L1: resolve every TYPE...END TYPE.
// Self-reference and forward reference to a not-yet-resolved user type are
// errors, as is a duplicate type name; fields are kept in declaration order
// since size computation (spec.md §9) depends on it.
func (l *Linter) runTypeDefPass(prog *ast.Program) {
	for _, g := range prog.Statements {
		td, ok := asTypeDef(g)
		if !ok {
			continue
		}
		key := names.NewBareName(td.Name).Key()
		if _, dup := l.userTypes[key]; dup {
			l.fail(cerrors.New(cerrors.DuplicateDefinition, td.Pos(),
				fmt.Sprintf("type %q is already defined", td.Name)))
			continue
		}

		ut := &typedast.UserType{Name: names.NewBareName(td.Name)}
		for _, f := range td.Fields {
			ft, err := l.resolveFieldType(f.Type)
			if err != nil {
				l.fail(err)
				continue
			}
			ut.Fields = append(ut.Fields, typedast.FieldDef{
				Name: names.NewBareName(f.Name.Name.Base.String()),
				Type: ft,
			})
		}
		l.userTypes[key] = ut
	}
}

func asTypeDef(g ast.GlobalStatement) (*ast.TypeDefinition, bool) {
	if td, ok := g.(*ast.TypeDefinition); ok {
		return td, true
	}
	if wrapped, ok := g.(ast.StatementAsGlobal); ok {
		if td, ok := wrapped.Statement.(*ast.TypeDefinition); ok {
			return td, true
		}
	}
	return nil, false
}

// resolveFieldType resolves a TYPE field's AS-clause, including STRING * n
// where n may be a reference to an already-resolved integer constant
// (spec.md §4.4 pass L1). A reference to a not-yet-defined user type
// (self-reference or forward reference) is TypeNotDefined.
func (l *Linter) resolveFieldType(te *ast.TypeExpr) (typedast.Type, *cerrors.CompilerError) {
	if te.UserType != "" {
		key := names.NewBareName(te.UserType).Key()
		if _, ok := l.userTypes[key]; !ok {
			return typedast.Type{}, cerrors.New(cerrors.TypeNotDefined, te.Pos(),
				fmt.Sprintf("type %q is not defined", te.UserType))
		}
		return typedast.Record(names.NewBareName(te.UserType)), nil
	}

	switch te.BuiltinQualifier {
	case "STRING":
		if te.FixedLength == nil {
			return typedast.Builtin(names.QString), nil
		}
		n, err := l.stringLengthFromExpr(te.FixedLength)
		if err != nil {
			return typedast.Type{}, err
		}
		return typedast.FixedString(n), nil
	case "SINGLE":
		return typedast.Builtin(names.QSingle), nil
	case "DOUBLE":
		return typedast.Builtin(names.QDouble), nil
	case "INTEGER":
		return typedast.Builtin(names.QInteger), nil
	case "LONG":
		return typedast.Builtin(names.QLong), nil
	default:
		return typedast.Type{}, cerrors.New(cerrors.TypeNotDefined, te.Pos(),
			fmt.Sprintf("unknown type %q", te.BuiltinQualifier))
	}
}

// stringLengthFromExpr resolves the "n" in STRING * n: either an integer
// literal or a reference to an already-resolved integer constant (spec.md
// §4.4 pass L1), in range 1..32767.
func (l *Linter) stringLengthFromExpr(e ast.Expression) (int, *cerrors.CompilerError) {
	switch v := e.(type) {
	case *ast.IntegerLiteral:
		return l.checkStringLength(int(v.Value), e)
	case *ast.LongLiteral:
		return l.checkStringLength(int(v.Value), e)
	case *ast.Identifier:
		c, ok := l.constants[v.Name.Key()]
		if !ok || c.typ.Kind != typedast.TBuiltin {
			return 0, cerrors.New(cerrors.TypeNotDefined, e.Pos(), "STRING * n requires an integer constant")
		}
		return l.checkStringLength(int(c.value.Integer), e)
	default:
		return 0, cerrors.New(cerrors.TypeNotDefined, e.Pos(), "STRING * n requires an integer literal or constant")
	}
}

func (l *Linter) checkStringLength(n int, e ast.Expression) (int, *cerrors.CompilerError) {
	if n < 1 || n > 32767 {
		return 0, cerrors.New(cerrors.Overflow, e.Pos(), fmt.Sprintf("STRING * %d is out of range 1..32767", n))
	}
	return n, nil
}
