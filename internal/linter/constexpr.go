package linter

import (
	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/variant"
)

// evalConstant is spec.md §4.4's "Constant evaluator": a small recursive
// evaluator over literal and previously-resolved-constant leaves. Variable,
// property, array, and function-call nodes are InvalidConstant.
func (l *Linter) evalConstant(e ast.Expression) (variant.Variant, *cerrors.CompilerError) {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		return variant.Integer(n.Value), nil
	case *ast.LongLiteral:
		return variant.Long(n.Value), nil
	case *ast.SingleLiteral:
		return variant.Single(n.Value), nil
	case *ast.DoubleLiteral:
		return variant.Double(n.Value), nil
	case *ast.StringLiteral:
		return variant.Str(n.Value), nil
	case *ast.ParenExpr:
		return l.evalConstant(n.Inner)
	case *ast.UnaryExpr:
		return l.evalConstantUnary(n)
	case *ast.BinaryExpr:
		return l.evalConstantBinary(n)
	case *ast.Identifier:
		c, ok := l.constants[n.Name.Key()]
		if !ok {
			return variant.Variant{}, invalidConstant(e.Pos())
		}
		return c.value, nil
	default:
		return variant.Variant{}, invalidConstant(e.Pos())
	}
}

func invalidConstant(pos token.Position) *cerrors.CompilerError {
	return cerrors.New(cerrors.InvalidConstant, pos, "expression is not a valid constant")
}

func (l *Linter) evalConstantUnary(n *ast.UnaryExpr) (variant.Variant, *cerrors.CompilerError) {
	v, err := l.evalConstant(n.Operand)
	if err != nil {
		return variant.Variant{}, err
	}
	switch n.Op {
	case token.MINUS:
		f, ferr := v.AsFloat64()
		if ferr != nil {
			return variant.Variant{}, cerrors.New(cerrors.TypeMismatch, n.Pos(), ferr.Error())
		}
		result, ferr := variant.FitToType(-f)
		if ferr != nil {
			return variant.Variant{}, cerrors.New(cerrors.Overflow, n.Pos(), ferr.Error())
		}
		return result, nil
	case token.NOT:
		f, ferr := v.AsFloat64()
		if ferr != nil {
			return variant.Variant{}, cerrors.New(cerrors.TypeMismatch, n.Pos(), ferr.Error())
		}
		return variant.Integer(int32(^int64(f))), nil
	default:
		return variant.Variant{}, invalidConstant(n.Pos())
	}
}

func (l *Linter) evalConstantBinary(n *ast.BinaryExpr) (variant.Variant, *cerrors.CompilerError) {
	left, err := l.evalConstant(n.Left)
	if err != nil {
		return variant.Variant{}, err
	}
	right, err := l.evalConstant(n.Right)
	if err != nil {
		return variant.Variant{}, err
	}

	if ast.IsComparison(n.Op) {
		cmp, cerr := variant.Compare(left, right)
		if cerr != nil {
			return variant.Variant{}, cerrors.New(cerrors.TypeMismatch, n.Pos(), cerr.Error())
		}
		return variant.Integer(boolToBasic(compareMatches(n.Op, cmp))), nil
	}

	switch n.Op {
	case token.AND:
		r, aerr := variant.And(left, right)
		if aerr != nil {
			return variant.Variant{}, cerrors.New(cerrors.TypeMismatch, n.Pos(), aerr.Error())
		}
		return r, nil
	case token.OR:
		r, oerr := variant.Or(left, right)
		if oerr != nil {
			return variant.Variant{}, cerrors.New(cerrors.TypeMismatch, n.Pos(), oerr.Error())
		}
		return r, nil
	}

	if left.Kind == variant.KindString || right.Kind == variant.KindString {
		if n.Op == token.PLUS && left.Kind == variant.KindString && right.Kind == variant.KindString {
			return variant.Str(left.Str + right.Str), nil
		}
		return variant.Variant{}, cerrors.New(cerrors.TypeMismatch, n.Pos(), "operator not defined on strings")
	}

	lf, _ := left.AsFloat64()
	rf, _ := right.AsFloat64()
	var result float64
	switch n.Op {
	case token.PLUS:
		result = lf + rf
	case token.MINUS:
		result = lf - rf
	case token.ASTERISK:
		result = lf * rf
	case token.SLASH:
		if rf == 0 {
			return variant.Variant{}, cerrors.New(cerrors.DivisionByZero, n.Pos(), "division by zero in constant expression")
		}
		result = lf / rf
	case token.MOD:
		if rf == 0 {
			return variant.Variant{}, cerrors.New(cerrors.DivisionByZero, n.Pos(), "division by zero in constant expression")
		}
		result = float64(int64(lf) % int64(rf))
	default:
		return variant.Variant{}, invalidConstant(n.Pos())
	}

	v, ferr := variant.FitToType(result)
	if ferr != nil {
		return variant.Variant{}, cerrors.New(cerrors.Overflow, n.Pos(), ferr.Error())
	}
	return v, nil
}

func compareMatches(op token.TokenType, cmp int) bool {
	switch op {
	case token.LT:
		return cmp < 0
	case token.LE:
		return cmp <= 0
	case token.EQ:
		return cmp == 0
	case token.GE:
		return cmp >= 0
	case token.GT:
		return cmp > 0
	case token.NE:
		return cmp != 0
	default:
		return false
	}
}

// boolToBasic encodes a boolean as -1 (true) or 0 (false), QBasic's
// convention (spec.md §4.4's constant evaluator: "comparisons (producing
// integer -1 / 0)").
func boolToBasic(b bool) int32 {
	if b {
		return -1
	}
	return 0
}
