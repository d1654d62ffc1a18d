package linter

import (
	"fmt"

	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/typedast"
)

// runSubprogramPass is spec.md §4.4 pass L2: collect every FUNCTION/SUB
// declaration and implementation into the subprogram repository, keyed by
// case-insensitive name. A DECLARE and its later implementation must agree
// on signature; two implementations (or two DECLAREs) of the same name
// disagree by definition and are a DuplicateDefinition.
func (l *Linter) runSubprogramPass(prog *ast.Program) {
	for _, g := range prog.Statements {
		switch n := g.(type) {
		case *ast.SubDecl:
			l.registerSubprogram(l.paramInfos(n.Params), false, typedast.Type{}, false, n.Name, n.Pos())
		case *ast.FunctionDecl:
			l.registerSubprogram(l.paramInfos(n.Params), true, l.returnType(n.ReturnType), false, n.Name, n.Pos())
		case *ast.SubImplementation:
			l.registerSubprogram(l.paramInfos(n.Params), false, typedast.Type{}, n.IsStatic, n.Name, n.Pos())
		case *ast.FunctionImplementation:
			l.registerSubprogram(l.paramInfos(n.Params), true, l.returnType(n.ReturnType), n.IsStatic, n.Name, n.Pos())
		}
	}
}

func (l *Linter) registerSubprogram(params []typedast.ParamInfo, isFunction bool, ret typedast.Type, isStatic bool, name string, pos token.Position) {
	bare := names.NewBareName(name)
	key := bare.Key()
	existing, ok := l.subprograms[key]
	if !ok {
		l.subprograms[key] = &typedast.SubprogramInfo{
			Name: bare, IsFunction: isFunction, Params: params, ReturnType: ret, IsStatic: isStatic,
		}
		return
	}
	if !signaturesAgree(existing, params, isFunction, ret) {
		l.fail(cerrors.New(cerrors.DuplicateDefinition, pos,
			fmt.Sprintf("%q does not agree with its earlier declaration", name)))
		return
	}
	if isStatic {
		existing.IsStatic = true
	}
}

func signaturesAgree(info *typedast.SubprogramInfo, params []typedast.ParamInfo, isFunction bool, ret typedast.Type) bool {
	if info.IsFunction != isFunction || len(info.Params) != len(params) {
		return false
	}
	if isFunction && !info.ReturnType.Equal(ret) {
		return false
	}
	for i := range params {
		if !info.Params[i].Type.Equal(params[i].Type) || info.Params[i].ByVal != params[i].ByVal {
			return false
		}
	}
	return true
}

func (l *Linter) paramInfos(params []*ast.Parameter) []typedast.ParamInfo {
	out := make([]typedast.ParamInfo, 0, len(params))
	for _, p := range params {
		var t typedast.Type
		if p.Type != nil {
			rt, err := l.resolveFieldType(p.Type)
			if err != nil {
				l.fail(err)
			} else {
				t = rt
			}
		} else {
			t = typedast.Builtin(l.qualifierFromName(p.Name.Name))
		}
		out = append(out, typedast.ParamInfo{
			Name:  names.NewBareName(p.Name.Name.Base.String()),
			Type:  t,
			ByVal: p.Mode == ast.ByVal,
		})
	}
	return out
}

func (l *Linter) returnType(te *ast.TypeExpr) typedast.Type {
	if te == nil {
		return typedast.Builtin(names.QSingle)
	}
	t, err := l.resolveFieldType(te)
	if err != nil {
		l.fail(err)
		return typedast.Builtin(names.QSingle)
	}
	return t
}

// qualifierFromName resolves a compact (sigil) parameter's qualifier, or
// the DEF-type default for an unqualified one.
func (l *Linter) qualifierFromName(n names.Name) names.Qualifier {
	if n.IsQualified() {
		return n.Qualifier
	}
	bare := n.Base.String()
	if bare == "" {
		return names.QSingle
	}
	return l.defaultQualifier(bare[0])
}
