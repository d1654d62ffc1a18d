package instrgen

import (
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/typedast"
	"github.com/basiclang/basiccomp/internal/variant"
)

// genExpr lowers an expression so its value ends up in register A.
func (g *generator) genExpr(e typedast.Expression) {
	pos := e.Pos()
	switch n := e.(type) {
	case *typedast.IntegerLiteral:
		g.push(pos, Instruction{Op: OpLoadIntoA, Value: variant.Integer(n.Value)})
	case *typedast.LongLiteral:
		g.push(pos, Instruction{Op: OpLoadIntoA, Value: variant.Long(n.Value)})
	case *typedast.SingleLiteral:
		g.push(pos, Instruction{Op: OpLoadIntoA, Value: variant.Single(n.Value)})
	case *typedast.DoubleLiteral:
		g.push(pos, Instruction{Op: OpLoadIntoA, Value: variant.Double(n.Value)})
	case *typedast.StringLiteral:
		g.push(pos, Instruction{Op: OpLoadIntoA, Value: variant.Str(n.Value)})
	case *typedast.Variable:
		g.genReadPath(n)
	case *typedast.PropertyAccess:
		g.genReadPath(n)
	case *typedast.ArrayElement:
		g.genReadPath(n)
	case *typedast.UnaryExpr:
		g.genExpr(n.Operand)
		if n.Op == token.NOT {
			g.push(pos, Instruction{Op: OpNotA})
		} else {
			g.push(pos, Instruction{Op: OpNegateA})
		}
	case *typedast.BinaryExpr:
		g.genBinary(n)
	case *typedast.Cast:
		g.genExpr(n.Inner)
		g.push(pos, Instruction{Op: OpCast, Qualifier: n.To.Qualifier})
	case *typedast.FunctionCall:
		g.genFunctionCall(n)
	}
}

func (g *generator) genReadPath(e typedast.Expression) {
	g.genVarPath(e)
	g.push(e.Pos(), Instruction{Op: OpCopyVarPathToA})
	g.push(e.Pos(), Instruction{Op: OpPopVarPath})
}

// genVarPath builds the var-path deque for an L-value (spec.md §4.5):
// VarPathName for the root, then one VarPathProperty per property-chain
// hop or one VarPathIndex per array dimension, innermost-first.
func (g *generator) genVarPath(e typedast.Expression) {
	switch n := e.(type) {
	case *typedast.Variable:
		g.push(n.Pos(), Instruction{Op: OpVarPathName, RootPath: n.Path})
	case *typedast.PropertyAccess:
		g.genVarPath(n.Base)
		for _, step := range n.Steps {
			g.push(n.Pos(), Instruction{Op: OpVarPathProperty, Field: step.Name})
		}
	case *typedast.ArrayElement:
		g.genVarPath(n.Array)
		for _, idx := range n.Indices {
			g.genExpr(idx)
			g.push(n.Pos(), Instruction{Op: OpVarPathIndex})
		}
	}
}

// genBinary evaluates Left, stashes it on the value stack so evaluating
// Right cannot clobber it, then brings Left back into A alongside Right in
// B before applying the operator (spec.md §6 arithmetic/comparison set).
func (g *generator) genBinary(n *typedast.BinaryExpr) {
	pos := n.Pos()
	g.genExpr(n.Left)
	g.push(pos, Instruction{Op: OpPushAToValueStack})
	g.genExpr(n.Right)
	g.push(pos, Instruction{Op: OpCopyAToB})
	g.push(pos, Instruction{Op: OpPopValueStackIntoA})
	g.push(pos, Instruction{Op: binaryOpCode(n.Op)})
}

func binaryOpCode(op token.TokenType) OpCode {
	switch op {
	case token.PLUS:
		return OpPlus
	case token.MINUS:
		return OpMinus
	case token.ASTERISK:
		return OpMultiply
	case token.SLASH:
		return OpDivide
	case token.MOD:
		return OpModulo
	case token.LT:
		return OpLess
	case token.LE:
		return OpLessOrEqual
	case token.EQ:
		return OpEqual
	case token.GE:
		return OpGreaterOrEqual
	case token.GT:
		return OpGreater
	case token.NE:
		return OpNotEqual
	case token.AND:
		return OpAnd
	case token.OR:
		return OpOr
	default:
		return OpPlus
	}
}
