package linter

import (
	"fmt"

	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/builtins"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/typedast"
)

// runBodyConversionPass is spec.md §4.4 pass L4: resolve every name,
// disambiguate array-element references from function calls, check
// assignment and call-argument type compatibility, and hoist both implicit
// variables and DATA statements (DATA to the program's top, implicit
// variables to a synthetic DIM at their first use).
func (l *Linter) runBodyConversionPass(prog *ast.Program) *typedast.Program {
	typed := &typedast.Program{}
	global := newGlobalScope()
	l.scope = global

	var data []typedast.GlobalStatement
	var rest []typedast.GlobalStatement

	for _, g := range prog.Statements {
		switch n := g.(type) {
		case *ast.SubDecl, *ast.FunctionDecl, *ast.TypeDefinition, *ast.DefTypeStatement:
			continue
		case *ast.SubImplementation:
			rest = append(rest, l.convertSub(n))
		case *ast.FunctionImplementation:
			rest = append(rest, l.convertFunction(n))
		case ast.StatementAsGlobal:
			if _, ok := n.Statement.(*ast.ConstDecl); ok {
				continue
			}
			ts, err := l.convertStatement(global, n.Statement)
			if err != nil {
				l.fail(err)
				continue
			}
			if ts == nil {
				continue
			}
			gs, ok := ts.(typedast.GlobalStatement)
			if !ok {
				continue
			}
			if ds, ok := gs.(*typedast.DataStatement); ok {
				data = append(data, ds)
				continue
			}
			rest = append(rest, gs)
		default:
			l.fail(cerrors.New(cerrors.InternalError, g.Pos(), fmt.Sprintf("unexpected global statement %T", g)))
		}
	}

	typed.Statements = append(prependHoistedGlobal(global), append(data, rest...)...)
	return typed
}

func prependHoistedGlobal(s *scope) []typedast.GlobalStatement {
	if len(s.hoisted) == 0 {
		return nil
	}
	d := &typedast.DimStatement{Vars: s.hoisted}
	d.SetPos(s.hoistedPos)
	return []typedast.GlobalStatement{d}
}

func prependHoisted(s *scope, body []typedast.Statement) []typedast.Statement {
	if len(s.hoisted) == 0 {
		return body
	}
	d := &typedast.DimStatement{Vars: s.hoisted}
	d.SetPos(s.hoistedPos)
	return append([]typedast.Statement{d}, body...)
}

// nameForType resolves the root Name a variable of the given declared type
// carries: always sigil-qualified for a built-in (or fixed-length-string)
// type, bare for a user-defined record (spec.md §3's "resolved names").
func nameForType(bare names.BareName, t typedast.Type) names.Name {
	switch t.Kind {
	case typedast.TBuiltin:
		return names.NewQualified(bare, t.Qualifier)
	case typedast.TFixedString:
		return names.NewQualified(bare, names.QString)
	case typedast.TRecord:
		return names.NewBareOnly(bare)
	case typedast.TArray:
		return nameForType(bare, *t.Element)
	default:
		return names.NewBareOnly(bare)
	}
}

func (l *Linter) convertSub(n *ast.SubImplementation) *typedast.SubImplementation {
	info := l.subprograms[names.NewBareName(n.Name).Key()]
	sc := l.scope.child(info)
	params := l.bindParams(sc, n.Params)
	body := prependHoisted(sc, l.convertBody(sc, n.Body))

	isStatic := n.IsStatic
	if info != nil {
		isStatic = info.IsStatic
	}

	out := &typedast.SubImplementation{
		Name: names.NewBareName(n.Name), Params: params, Body: body, IsStatic: isStatic,
	}
	out.SetPos(n.Pos())
	return out
}

func (l *Linter) convertFunction(n *ast.FunctionImplementation) *typedast.FunctionImplementation {
	bare := names.NewBareName(n.Name)
	info := l.subprograms[bare.Key()]
	ret := l.returnType(n.ReturnType)
	isStatic := n.IsStatic
	if info != nil {
		ret = info.ReturnType
		isStatic = info.IsStatic
	}

	sc := l.scope.child(info)
	params := l.bindParams(sc, n.Params)

	// The function's own bare name is an assignable pseudo-variable inside
	// its own body, the "FUNCTION foo ... foo = result" convention.
	sc.declare(names.NewBareOnly(bare).Key(), &varSlot{
		path: names.RootPath{Name: nameForType(bare, ret)}, typ: ret,
	})

	body := prependHoisted(sc, l.convertBody(sc, n.Body))

	out := &typedast.FunctionImplementation{
		Name: bare, Params: params, ReturnType: ret, Body: body, IsStatic: isStatic,
	}
	out.SetPos(n.Pos())
	return out
}

func (l *Linter) bindParams(sc *scope, params []*ast.Parameter) []typedast.Param {
	out := make([]typedast.Param, 0, len(params))
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

		bare := names.NewBareName(p.Name.Name.Base.String())
		path := names.RootPath{Name: nameForType(bare, t)}
		sc.declare(p.Name.Name.Key(), &varSlot{path: path, typ: t})

		out = append(out, typedast.Param{Name: bare, Type: t, ByVal: p.Mode == ast.ByVal})
	}
	return out
}

func (l *Linter) convertBody(s *scope, stmts []ast.Statement) []typedast.Statement {
	out := make([]typedast.Statement, 0, len(stmts))
	for _, st := range stmts {
		ts, err := l.convertStatement(s, st)
		if err != nil {
			l.fail(err)
			continue
		}
		if ts != nil {
			out = append(out, ts)
		}
	}
	return out
}

func (l *Linter) convertStatement(s *scope, st ast.Statement) (typedast.Statement, *cerrors.CompilerError) {
	switch n := st.(type) {
	case *ast.CommentStatement:
		return nil, nil
	case *ast.DimStatement:
		return l.convertDim(s, n)
	case *ast.AssignmentStatement:
		return l.convertAssignment(s, n)
	case *ast.CallStatement:
		return l.convertCallStatement(s, n)
	case *ast.BuiltinSubStatement:
		return l.convertBuiltinSub(s, n)
	case *ast.LabelStatement:
		out := &typedast.LabelStatement{Name: n.Name}
		out.SetPos(n.Pos())
		return out, nil
	case *ast.GotoStatement:
		out := &typedast.GotoStatement{Label: n.Label}
		out.SetPos(n.Pos())
		return out, nil
	case *ast.GosubStatement:
		out := &typedast.GosubStatement{Label: n.Label}
		out.SetPos(n.Pos())
		return out, nil
	case *ast.ReturnStatement:
		out := &typedast.ReturnStatement{}
		out.SetPos(n.Pos())
		return out, nil
	case *ast.OnErrorStatement:
		out := &typedast.OnErrorStatement{Kind: typedast.OnErrorKind(n.Kind), Label: n.Label}
		out.SetPos(n.Pos())
		return out, nil
	case *ast.ResumeStatement:
		out := &typedast.ResumeStatement{Kind: typedast.ResumeKind(n.Kind), Label: n.Label}
		out.SetPos(n.Pos())
		return out, nil
	case *ast.ExitStatement:
		out := &typedast.ExitStatement{Kind: typedast.ExitKind(n.Kind)}
		out.SetPos(n.Pos())
		return out, nil
	case *ast.PrintStatement:
		return l.convertPrint(s, n)
	case *ast.DataStatement:
		return l.convertData(s, n)
	case *ast.ReadStatement:
		return l.convertRead(s, n)
	case *ast.IfStatement:
		return l.convertIf(s, n)
	case *ast.SelectCaseStatement:
		return l.convertSelectCase(s, n)
	case *ast.ForStatement:
		return l.convertFor(s, n)
	case *ast.WhileStatement:
		return l.convertWhile(s, n)
	default:
		return nil, cerrors.New(cerrors.InternalError, st.Pos(), fmt.Sprintf("unhandled statement type %T", st))
	}
}

func (l *Linter) convertDim(s *scope, n *ast.DimStatement) (typedast.Statement, *cerrors.CompilerError) {
	vars := make([]typedast.DimVar, 0, len(n.Vars))
	for _, v := range n.Vars {
		var elemType typedast.Type
		if v.AsType != nil {
			rt, err := l.resolveFieldType(v.AsType)
			if err != nil {
				l.fail(err)
				continue
			}
			elemType = rt
		} else {
			elemType = typedast.Builtin(l.qualifierFromName(v.Identifier.Name))
		}

		declType := elemType
		var bounds []typedast.ArrayBound
		if v.IsArray {
			declType = typedast.ArrayOf(elemType)
			for _, b := range v.Bounds {
				lower, err := l.convertBoundExpr(s, b.Lower, v.Pos())
				if err != nil {
					l.fail(err)
					continue
				}
				upper, err := l.convertBoundExpr(s, b.Upper, v.Pos())
				if err != nil {
					l.fail(err)
					continue
				}
				bounds = append(bounds, typedast.ArrayBound{Lower: lower, Upper: upper})
			}
		}

		bare := names.NewBareName(v.Identifier.Name.Base.String())
		path := names.RootPath{Name: nameForType(bare, declType), Shared: n.Shared}
		s.declare(v.Identifier.Name.Key(), &varSlot{path: path, typ: declType, isArray: v.IsArray})

		vars = append(vars, typedast.DimVar{
			Path: path, Type: declType, IsArray: v.IsArray, Bounds: bounds, Preserve: v.Preserve,
		})
	}

	out := &typedast.DimStatement{Vars: vars, Redim: n.Redim}
	out.SetPos(n.Pos())
	return out, nil
}

func (l *Linter) convertBoundExpr(s *scope, e ast.Expression, at token.Position) (typedast.Expression, *cerrors.CompilerError) {
	if e == nil {
		lit := &typedast.IntegerLiteral{Value: 0}
		lit.SetPos(at)
		return lit, nil
	}
	return l.convertExpression(s, e)
}

func (l *Linter) convertAssignment(s *scope, n *ast.AssignmentStatement) (typedast.Statement, *cerrors.CompilerError) {
	target, err := l.convertExpression(s, n.Target)
	if err != nil {
		return nil, err
	}
	value, err := l.convertExpression(s, n.Value)
	if err != nil {
		return nil, err
	}
	value, err = castIfNeeded(value, target.ExprType(), n.Pos())
	if err != nil {
		return nil, err
	}
	out := &typedast.AssignmentStatement{Target: target, Value: value}
	out.SetPos(n.Pos())
	return out, nil
}

func (l *Linter) convertCallStatement(s *scope, n *ast.CallStatement) (typedast.Statement, *cerrors.CompilerError) {
	bare := names.NewBareName(n.Name.Name.Base.String())
	info, ok := l.subprograms[bare.Key()]
	if !ok || info.IsFunction {
		return nil, cerrors.New(cerrors.TypeNotDefined, n.Pos(), fmt.Sprintf("%q is not a known SUB", n.Name.String()))
	}
	if len(n.Args) != len(info.Params) {
		return nil, cerrors.New(cerrors.ArgumentCountMismatch, n.Pos(),
			fmt.Sprintf("%q expects %d argument(s)", n.Name.String(), len(info.Params)))
	}
	args, err := l.convertUserArgs(s, n.Args, info)
	if err != nil {
		return nil, err
	}
	out := &typedast.CallStatement{Kind: typedast.CalleeUserFunction, Name: info.Name, Args: args}
	out.SetPos(n.Pos())
	return out, nil
}

func (l *Linter) convertUserArgs(s *scope, exprs []ast.Expression, info *typedast.SubprogramInfo) ([]typedast.Argument, *cerrors.CompilerError) {
	out := make([]typedast.Argument, 0, len(exprs))
	for i, e := range exprs {
		v, err := l.convertExpression(s, e)
		if err != nil {
			return nil, err
		}
		byRef := true
		if i < len(info.Params) {
			byRef = !info.Params[i].ByVal
			v, err = castIfNeeded(v, info.Params[i].Type, e.Pos())
			if err != nil {
				return nil, err
			}
		}
		out = append(out, typedast.Argument{Value: v, ByRef: byRef})
	}
	return out, nil
}

func (l *Linter) convertBuiltinSub(s *scope, n *ast.BuiltinSubStatement) (typedast.Statement, *cerrors.CompilerError) {
	sub, sig, ok := builtins.LookupSub(n.Name)
	if !ok {
		return nil, cerrors.New(cerrors.TypeNotDefined, n.Pos(), fmt.Sprintf("%q is not a known built-in", n.Name))
	}
	if !sig.Arity.Check(len(n.Args)) {
		return nil, cerrors.New(cerrors.ArgumentCountMismatch, n.Pos(),
			fmt.Sprintf("%s expects %d-%d argument(s)", sig.Name, sig.Arity.Min, sig.Arity.Max))
	}
	args, err := l.convertBuiltinArgs(s, n.Args, sig.IsByRef)
	if err != nil {
		return nil, err
	}
	out := &typedast.CallStatement{Kind: typedast.CalleeBuiltinFunction, Name: names.NewBareName(sig.Name), BuiltinID: int(sub), Args: args}
	out.SetPos(n.Pos())
	return out, nil
}

func (l *Linter) convertPrint(s *scope, n *ast.PrintStatement) (typedast.Statement, *cerrors.CompilerError) {
	var fh typedast.Expression
	if n.FileHandle != nil {
		v, err := l.convertExpression(s, n.FileHandle)
		if err != nil {
			return nil, err
		}
		fh = v
	}

	items := make([]typedast.PrintItem, 0, len(n.Items))
	for _, it := range n.Items {
		v, err := l.convertExpression(s, it.Expr)
		if err != nil {
			return nil, err
		}
		items = append(items, typedast.PrintItem{Expr: v, Sep: it.Sep})
	}

	out := &typedast.PrintStatement{FileHandle: fh, Items: items}
	out.SetPos(n.Pos())
	return out, nil
}

func (l *Linter) convertData(s *scope, n *ast.DataStatement) (typedast.Statement, *cerrors.CompilerError) {
	if s.inSubprogram() {
		return nil, cerrors.New(cerrors.IllegalInSubFunction, n.Pos(), "DATA is illegal inside a SUB or FUNCTION")
	}
	vals := make([]typedast.Expression, 0, len(n.Values))
	for _, e := range n.Values {
		v, err := l.convertExpression(s, e)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	out := &typedast.DataStatement{Values: vals}
	out.SetPos(n.Pos())
	return out, nil
}

func (l *Linter) convertRead(s *scope, n *ast.ReadStatement) (typedast.Statement, *cerrors.CompilerError) {
	targets := make([]typedast.LValue, 0, len(n.Targets))
	for _, t := range n.Targets {
		v, err := l.convertExpression(s, t)
		if err != nil {
			return nil, err
		}
		targets = append(targets, v)
	}
	out := &typedast.ReadStatement{Targets: targets}
	out.SetPos(n.Pos())
	return out, nil
}

func (l *Linter) convertIf(s *scope, n *ast.IfStatement) (typedast.Statement, *cerrors.CompilerError) {
	branches := make([]typedast.IfBranch, 0, len(n.Branches))
	for _, b := range n.Branches {
		cond, err := l.convertExpression(s, b.Cond)
		if err != nil {
			return nil, err
		}
		branches = append(branches, typedast.IfBranch{Cond: cond, Body: l.convertBody(s, b.Body)})
	}
	var elseBody []typedast.Statement
	if n.Else != nil {
		elseBody = l.convertBody(s, n.Else)
	}
	out := &typedast.IfStatement{Branches: branches, Else: elseBody}
	out.SetPos(n.Pos())
	return out, nil
}

func (l *Linter) convertSelectCase(s *scope, n *ast.SelectCaseStatement) (typedast.Statement, *cerrors.CompilerError) {
	scrutinee, err := l.convertExpression(s, n.Scrutinee)
	if err != nil {
		return nil, err
	}

	cases := make([]typedast.CaseBlock, 0, len(n.Cases))
	for _, c := range n.Cases {
		alts := make([]typedast.CaseAlternative, 0, len(c.Alternatives))
		for _, a := range c.Alternatives {
			alt := typedast.CaseAlternative{Kind: typedast.CaseAlternativeKind(a.Kind), Op: a.Op}
			if a.Value != nil {
				v, err := l.convertExpression(s, a.Value)
				if err != nil {
					return nil, err
				}
				alt.Value = v
			}
			if a.Low != nil {
				v, err := l.convertExpression(s, a.Low)
				if err != nil {
					return nil, err
				}
				alt.Low = v
			}
			if a.High != nil {
				v, err := l.convertExpression(s, a.High)
				if err != nil {
					return nil, err
				}
				alt.High = v
			}
			alts = append(alts, alt)
		}
		cases = append(cases, typedast.CaseBlock{
			Alternatives: alts, Body: l.convertBody(s, c.Body), IsElse: c.IsElse,
		})
	}

	out := &typedast.SelectCaseStatement{Scrutinee: scrutinee, Cases: cases}
	out.SetPos(n.Pos())
	return out, nil
}

func (l *Linter) convertFor(s *scope, n *ast.ForStatement) (typedast.Statement, *cerrors.CompilerError) {
	counterExpr, err := l.convertExpression(s, n.Counter)
	if err != nil {
		return nil, err
	}
	counter, ok := counterExpr.(*typedast.Variable)
	if !ok {
		return nil, cerrors.New(cerrors.VariableRequired, n.Pos(), "FOR counter must be a variable")
	}

	lower, err := l.convertExpression(s, n.Lower)
	if err != nil {
		return nil, err
	}
	lower, err = castIfNeeded(lower, counter.Type, n.Lower.Pos())
	if err != nil {
		return nil, err
	}

	upper, err := l.convertExpression(s, n.Upper)
	if err != nil {
		return nil, err
	}
	upper, err = castIfNeeded(upper, counter.Type, n.Upper.Pos())
	if err != nil {
		return nil, err
	}

	var step typedast.Expression
	if n.Step != nil {
		step, err = l.convertExpression(s, n.Step)
		if err != nil {
			return nil, err
		}
		step, err = castIfNeeded(step, counter.Type, n.Step.Pos())
		if err != nil {
			return nil, err
		}
	}

	body := l.convertBody(s, n.Body)
	out := &typedast.ForStatement{Counter: counter, Lower: lower, Upper: upper, Step: step, Body: body}
	out.SetPos(n.Pos())
	return out, nil
}

func (l *Linter) convertWhile(s *scope, n *ast.WhileStatement) (typedast.Statement, *cerrors.CompilerError) {
	cond, err := l.convertExpression(s, n.Cond)
	if err != nil {
		return nil, err
	}
	body := l.convertBody(s, n.Body)
	out := &typedast.WhileStatement{Cond: cond, Body: body}
	out.SetPos(n.Pos())
	return out, nil
}
