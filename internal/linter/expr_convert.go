package linter

import (
	"fmt"

	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/builtins"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/typedast"
	"github.com/basiclang/basiccomp/internal/variant"
)

// castIfNeeded wraps value in a *typedast.Cast when target differs from its
// own type but both sides are numeric or both are string-like (spec.md
// §4.4's assignment-compatibility rule); same-type values pass through
// unchanged, and any other mismatch is TypeMismatch.
func castIfNeeded(value typedast.Expression, target typedast.Type, at token.Position) (typedast.Expression, *cerrors.CompilerError) {
	from := value.ExprType()
	if from.Equal(target) {
		return value, nil
	}
	if from.IsNumeric() && target.IsNumeric() {
		c := &typedast.Cast{Inner: value, To: target}
		c.SetPos(at)
		return c, nil
	}
	if from.IsString() && target.IsString() {
		return value, nil
	}
	return nil, cerrors.New(cerrors.TypeMismatch, at, fmt.Sprintf("cannot convert %s to %s", from, target))
}

// widerType ranks Integer < Long < Single < Double, the numeric-promotion
// order spec.md §4.4 uses for arithmetic result types.
func widerType(a, b typedast.Type) typedast.Type {
	if rank(a) >= rank(b) {
		return a
	}
	return b
}

func rank(t typedast.Type) int {
	if t.Kind != typedast.TBuiltin {
		return 0
	}
	switch t.Qualifier {
	case names.QInteger:
		return 1
	case names.QLong:
		return 2
	case names.QSingle:
		return 3
	case names.QDouble:
		return 4
	default:
		return 0
	}
}

func (l *Linter) convertExpression(s *scope, e ast.Expression) (typedast.Expression, *cerrors.CompilerError) {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		out := &typedast.IntegerLiteral{Value: n.Value, HasFileHandle: n.HasFileHandle}
		out.SetPos(n.Pos())
		return out, nil
	case *ast.LongLiteral:
		out := &typedast.LongLiteral{Value: n.Value}
		out.SetPos(n.Pos())
		return out, nil
	case *ast.SingleLiteral:
		out := &typedast.SingleLiteral{Value: n.Value}
		out.SetPos(n.Pos())
		return out, nil
	case *ast.DoubleLiteral:
		out := &typedast.DoubleLiteral{Value: n.Value}
		out.SetPos(n.Pos())
		return out, nil
	case *ast.StringLiteral:
		out := &typedast.StringLiteral{Value: n.Value}
		out.SetPos(n.Pos())
		return out, nil
	case *ast.ParenExpr:
		return l.convertExpression(s, n.Inner)
	case *ast.Identifier:
		return l.resolveIdentifier(s, n)
	case *ast.PropertyChain:
		return l.resolvePropertyChain(s, n)
	case *ast.FunctionCallOrIndex:
		return l.resolveCallOrIndex(s, n)
	case *ast.UnaryExpr:
		return l.convertUnary(s, n)
	case *ast.BinaryExpr:
		return l.convertBinary(s, n)
	default:
		return nil, cerrors.New(cerrors.InternalError, e.Pos(), fmt.Sprintf("unhandled expression type %T", e))
	}
}

// resolveIdentifier resolves a bare reference in three steps: the current
// scope, then the constant table, then an implicit scalar hoisted at first
// use. A built-in function or user FUNCTION named without parentheses
// (ERR, INKEY$, a zero-parameter FUNCTION) is not turned into a call here;
// it falls through to an implicit variable like any other unknown name.
// The scope map is
// always keyed by the raw, as-written name (preserving an empty sigil for
// an unqualified reference); only the populated Variable.Path carries the
// qualifier-resolved Name the code generator needs.
func (l *Linter) resolveIdentifier(s *scope, id *ast.Identifier) (typedast.Expression, *cerrors.CompilerError) {
	key := id.Name.Key()

	if slot, ok := s.lookup(key); ok {
		out := &typedast.Variable{Path: slot.path, Type: slot.typ}
		out.SetPos(id.Pos())
		return out, nil
	}

	if c, ok := l.constants[key]; ok {
		return constantLiteral(c, id.Pos()), nil
	}

	qualifier := l.qualifierFromName(id.Name)
	typ := typedast.Builtin(qualifier)
	bare := names.NewBareName(id.Name.Base.String())
	path := names.RootPath{Name: nameForType(bare, typ)}

	slot := &varSlot{path: path, typ: typ}
	s.declare(key, slot)
	s.hoist(typedast.DimVar{Path: path, Type: typ}, id.Pos())

	out := &typedast.Variable{Path: path, Type: typ}
	out.SetPos(id.Pos())
	return out, nil
}

func constantLiteral(c constant, at token.Position) typedast.Expression {
	var out interface {
		typedast.Expression
		SetPos(token.Position)
	}
	switch c.value.Kind {
	case variant.KindInteger:
		out = &typedast.IntegerLiteral{Value: c.value.Integer}
	case variant.KindLong:
		out = &typedast.LongLiteral{Value: c.value.Long}
	case variant.KindSingle:
		out = &typedast.SingleLiteral{Value: c.value.Single}
	case variant.KindDouble:
		out = &typedast.DoubleLiteral{Value: c.value.Double}
	default:
		out = &typedast.StringLiteral{Value: c.value.Str}
	}
	out.SetPos(at)
	return out
}

// resolvePropertyChain resolves A.B.C against the root variable's record
// type, walking one field lookup per step (spec.md §4.4's "property path
// resolution"); only the final step's Name may carry a sigil.
func (l *Linter) resolvePropertyChain(s *scope, pc *ast.PropertyChain) (typedast.Expression, *cerrors.CompilerError) {
	rootID := &ast.Identifier{Name: names.NewBareOnly(pc.Root)}
	rootID.SetPos(pc.Pos())
	base, err := l.resolveIdentifier(s, rootID)
	if err != nil {
		return nil, err
	}

	steps := make([]typedast.FieldStep, 0, len(pc.Steps))
	cur := base.ExprType()
	for _, step := range pc.Steps {
		if cur.Kind != typedast.TRecord {
			return nil, cerrors.New(cerrors.TypeMismatch, pc.Pos(),
				fmt.Sprintf("%q is not a record", cur.String()))
		}
		ut, ok := l.userTypes[cur.RecordName.Key()]
		if !ok {
			return nil, cerrors.New(cerrors.TypeNotDefined, pc.Pos(),
				fmt.Sprintf("type %q is not defined", cur.RecordName.String()))
		}
		field, ok := ut.Field(names.NewBareName(step.Base.String()))
		if !ok {
			return nil, cerrors.New(cerrors.ElementNotDefined, pc.Pos(),
				fmt.Sprintf("%q has no field %q", cur.RecordName.String(), step.Base.String()))
		}
		steps = append(steps, typedast.FieldStep{Name: field.Name, Type: field.Type})
		cur = field.Type
	}

	out := &typedast.PropertyAccess{Base: base, Steps: steps}
	out.SetPos(pc.Pos())
	return out, nil
}

// resolveCallOrIndex disambiguates a FunctionCallOrIndex in spec.md §4.4's
// order: known array variable, then built-in function, then user function,
// then an implicitly auto-dimensioned array.
func (l *Linter) resolveCallOrIndex(s *scope, n *ast.FunctionCallOrIndex) (typedast.Expression, *cerrors.CompilerError) {
	id, ok := n.Name.(*ast.Identifier)
	if !ok {
		return l.resolveCallOrIndexProperty(s, n)
	}
	return l.resolveCallOrIndexIdentifier(s, id, n)
}

func (l *Linter) resolveCallOrIndexIdentifier(s *scope, id *ast.Identifier, n *ast.FunctionCallOrIndex) (typedast.Expression, *cerrors.CompilerError) {
	key := id.Name.Key()

	if slot, ok := s.lookup(key); ok && slot.isArray {
		return l.buildArrayElement(s, n, &typedast.Variable{Path: slot.path, Type: slot.typ})
	}

	if fn, sig, ok := builtins.LookupFunction(id.Name.Base.String()); ok {
		if !sig.Arity.Check(len(n.Args)) {
			return nil, cerrors.New(cerrors.ArgumentCountMismatch, n.Pos(),
				fmt.Sprintf("%s expects %d-%d argument(s)", sig.Name, sig.Arity.Min, sig.Arity.Max))
		}
		args, err := l.convertBuiltinArgs(s, n.Args, sig.IsByRef)
		if err != nil {
			return nil, err
		}
		out := &typedast.FunctionCall{
			Kind: typedast.CalleeBuiltinFunction, Name: names.NewBareName(sig.Name),
			BuiltinID: int(fn), Args: args, Type: typedast.Builtin(sig.ReturnType),
		}
		out.SetPos(n.Pos())
		return out, nil
	}

	bare := names.NewBareName(id.Name.Base.String())
	if info, ok := l.subprograms[bare.Key()]; ok && info.IsFunction {
		if len(n.Args) != len(info.Params) {
			return nil, cerrors.New(cerrors.ArgumentCountMismatch, n.Pos(),
				fmt.Sprintf("%q expects %d argument(s)", info.Name.String(), len(info.Params)))
		}
		args, err := l.convertUserArgs(s, n.Args, info)
		if err != nil {
			return nil, err
		}
		out := &typedast.FunctionCall{
			Kind: typedast.CalleeUserFunction, Name: info.Name, Args: args, Type: info.ReturnType,
		}
		out.SetPos(n.Pos())
		return out, nil
	}

	return l.implicitArray(s, id, n)
}

func (l *Linter) resolveCallOrIndexProperty(s *scope, n *ast.FunctionCallOrIndex) (typedast.Expression, *cerrors.CompilerError) {
	pc := n.Name.(*ast.PropertyChain)
	base, err := l.resolvePropertyChain(s, pc)
	if err != nil {
		return nil, err
	}
	if base.ExprType().Kind != typedast.TArray {
		return nil, cerrors.New(cerrors.TypeMismatch, n.Pos(), "not an array")
	}
	return l.buildArrayElement(s, n, base)
}

// implicitArray auto-dimensions an unDIM'd array referenced by a call-shaped
// expression, QBasic's classic 0..10-per-dimension convention (spec.md
// §4.4's "implicit-variable hoisting", extended to arrays).
func (l *Linter) implicitArray(s *scope, id *ast.Identifier, n *ast.FunctionCallOrIndex) (typedast.Expression, *cerrors.CompilerError) {
	qualifier := l.qualifierFromName(id.Name)
	elemType := typedast.Builtin(qualifier)
	arrType := typedast.ArrayOf(elemType)
	bare := names.NewBareName(id.Name.Base.String())
	path := names.RootPath{Name: nameForType(bare, arrType)}

	bounds := make([]typedast.ArrayBound, len(n.Args))
	for i := range bounds {
		zero := &typedast.IntegerLiteral{Value: 0}
		zero.SetPos(n.Pos())
		ten := &typedast.IntegerLiteral{Value: 10}
		ten.SetPos(n.Pos())
		bounds[i] = typedast.ArrayBound{Lower: zero, Upper: ten}
	}

	slot := &varSlot{path: path, typ: arrType, isArray: true}
	s.declare(id.Name.Key(), slot)
	s.hoist(typedast.DimVar{Path: path, Type: arrType, IsArray: true, Bounds: bounds}, id.Pos())

	return l.buildArrayElement(s, n, &typedast.Variable{Path: path, Type: arrType})
}

func (l *Linter) buildArrayElement(s *scope, n *ast.FunctionCallOrIndex, array typedast.Expression) (typedast.Expression, *cerrors.CompilerError) {
	arrType := array.ExprType()
	if arrType.Kind != typedast.TArray {
		return nil, cerrors.New(cerrors.TypeMismatch, n.Pos(), "not an array")
	}
	indices := make([]typedast.Expression, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := l.convertExpression(s, a)
		if err != nil {
			return nil, err
		}
		indices = append(indices, v)
	}
	out := &typedast.ArrayElement{Array: array, Indices: indices, Type: *arrType.Element}
	out.SetPos(n.Pos())
	return out, nil
}

func (l *Linter) convertBuiltinArgs(s *scope, exprs []ast.Expression, isByRef func(int) bool) ([]typedast.Argument, *cerrors.CompilerError) {
	out := make([]typedast.Argument, 0, len(exprs))
	for i, e := range exprs {
		v, err := l.convertExpression(s, e)
		if err != nil {
			return nil, err
		}
		out = append(out, typedast.Argument{Value: v, ByRef: isByRef(i)})
	}
	return out, nil
}

func (l *Linter) convertUnary(s *scope, n *ast.UnaryExpr) (typedast.Expression, *cerrors.CompilerError) {
	operand, err := l.convertExpression(s, n.Operand)
	if err != nil {
		return nil, err
	}
	if !operand.ExprType().IsNumeric() {
		return nil, cerrors.New(cerrors.TypeMismatch, n.Pos(), "operator requires a numeric operand")
	}
	out := &typedast.UnaryExpr{Op: n.Op, Operand: operand, Type: operand.ExprType()}
	out.SetPos(n.Pos())
	return out, nil
}

func (l *Linter) convertBinary(s *scope, n *ast.BinaryExpr) (typedast.Expression, *cerrors.CompilerError) {
	left, err := l.convertExpression(s, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := l.convertExpression(s, n.Right)
	if err != nil {
		return nil, err
	}

	lt, rt := left.ExprType(), right.ExprType()

	if ast.IsComparison(n.Op) {
		if lt.IsString() != rt.IsString() {
			return nil, cerrors.New(cerrors.TypeMismatch, n.Pos(), "cannot compare string and numeric")
		}
		if !lt.IsString() {
			left, right = promote(left, right)
		}
		out := &typedast.BinaryExpr{Op: n.Op, Left: left, Right: right, Type: typedast.Builtin(names.QInteger)}
		out.SetPos(n.Pos())
		return out, nil
	}

	if n.Op == token.AND || n.Op == token.OR {
		left, err = castIfNeeded(left, typedast.Builtin(names.QLong), n.Pos())
		if err != nil {
			return nil, err
		}
		right, err = castIfNeeded(right, typedast.Builtin(names.QLong), n.Pos())
		if err != nil {
			return nil, err
		}
		out := &typedast.BinaryExpr{Op: n.Op, Left: left, Right: right, Type: typedast.Builtin(names.QInteger)}
		out.SetPos(n.Pos())
		return out, nil
	}

	if lt.IsString() || rt.IsString() {
		if n.Op != token.PLUS || !lt.IsString() || !rt.IsString() {
			return nil, cerrors.New(cerrors.TypeMismatch, n.Pos(), "operator not defined on strings")
		}
		out := &typedast.BinaryExpr{Op: n.Op, Left: left, Right: right, Type: typedast.Builtin(names.QString)}
		out.SetPos(n.Pos())
		return out, nil
	}

	if !lt.IsNumeric() || !rt.IsNumeric() {
		return nil, cerrors.New(cerrors.TypeMismatch, n.Pos(), "operator requires numeric operands")
	}

	result := widerType(lt, rt)
	left, err = castIfNeeded(left, result, n.Pos())
	if err != nil {
		return nil, err
	}
	right, err = castIfNeeded(right, result, n.Pos())
	if err != nil {
		return nil, err
	}

	out := &typedast.BinaryExpr{Op: n.Op, Left: left, Right: right, Type: result}
	out.SetPos(n.Pos())
	return out, nil
}

// promote widens a comparison's two numeric operands to their common type,
// so the generator's Compare opcode never sees mixed representations.
func promote(left, right typedast.Expression) (typedast.Expression, typedast.Expression) {
	result := widerType(left.ExprType(), right.ExprType())
	l, err := castIfNeeded(left, result, left.Pos())
	if err != nil {
		return left, right
	}
	r, err := castIfNeeded(right, result, right.Pos())
	if err != nil {
		return left, right
	}
	return l, r
}
