package instrgen

import (
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/typedast"
	"github.com/basiclang/basiccomp/internal/variant"
)

func (g *generator) genIf(n *typedast.IfStatement) {
	pos := n.Pos()
	endLabel := g.newLabel("if_end")
	for _, b := range n.Branches {
		nextLabel := g.newLabel("if_next")
		g.genExpr(b.Cond)
		g.emitJumpIfFalse(pos, nextLabel)
		g.visitBody(b.Body)
		g.emitJump(pos, endLabel)
		g.emitLabel(pos, nextLabel)
	}
	g.visitBody(n.Else)
	g.emitLabel(pos, endLabel)
}

func (g *generator) genWhile(n *typedast.WhileStatement) {
	pos := n.Pos()
	topLabel := g.newLabel("while_top")
	endLabel := g.newLabel("while_end")
	g.emitLabel(pos, topLabel)
	g.genExpr(n.Cond)
	g.emitJumpIfFalse(pos, endLabel)
	g.visitBody(n.Body)
	g.emitJump(pos, topLabel)
	g.emitLabel(pos, endLabel)
}

// genFor lowers FOR/NEXT per spec.md §4.5: the counter is cast to its
// declared type once at entry, the upper bound lives in register C and the
// step in register D for the life of the loop, and the comparison
// direction (<= for an ascending step, >= for a descending one) is decided
// by testing the sign of D. EXIT FOR resolves against forExitLabels.
func (g *generator) genFor(n *typedast.ForStatement) {
	pos := n.Pos()
	counterType := n.Counter.ExprType()

	g.genExpr(n.Lower)
	g.push(pos, Instruction{Op: OpCast, Qualifier: counterType.Qualifier})
	g.genVarPath(n.Counter)
	g.push(pos, Instruction{Op: OpCopyAToVarPath})

	g.genExpr(n.Upper)
	g.push(pos, Instruction{Op: OpCopyAToC})

	if n.Step != nil {
		g.genExpr(n.Step)
	} else {
		g.push(pos, Instruction{Op: OpLoadIntoA, Value: variant.Integer(1)})
	}
	g.push(pos, Instruction{Op: OpCopyAToD})

	topLabel := g.newLabel("for_top")
	descLabel := g.newLabel("for_desc")
	bodyLabel := g.newLabel("for_body")
	exitLabel := g.newLabel("for_exit")
	g.forExitLabels = append(g.forExitLabels, exitLabel)

	g.emitLabel(pos, topLabel)

	// ascending-step test: 0 < step
	g.push(pos, Instruction{Op: OpCopyDToB})
	g.push(pos, Instruction{Op: OpLoadIntoA, Value: variant.Integer(0)})
	g.push(pos, Instruction{Op: OpLess})
	g.emitJumpIfFalse(pos, descLabel)

	g.genVarPath(n.Counter)
	g.push(pos, Instruction{Op: OpCopyVarPathToA})
	g.push(pos, Instruction{Op: OpPopVarPath})
	g.push(pos, Instruction{Op: OpCopyCToB})
	g.push(pos, Instruction{Op: OpLessOrEqual})
	g.emitJumpIfFalse(pos, exitLabel)
	g.emitJump(pos, bodyLabel)

	g.emitLabel(pos, descLabel)
	g.genVarPath(n.Counter)
	g.push(pos, Instruction{Op: OpCopyVarPathToA})
	g.push(pos, Instruction{Op: OpPopVarPath})
	g.push(pos, Instruction{Op: OpCopyCToB})
	g.push(pos, Instruction{Op: OpGreaterOrEqual})
	g.emitJumpIfFalse(pos, exitLabel)

	g.emitLabel(pos, bodyLabel)
	g.visitBody(n.Body)

	g.genVarPath(n.Counter)
	g.push(pos, Instruction{Op: OpCopyVarPathToA})
	g.push(pos, Instruction{Op: OpPopVarPath})
	g.push(pos, Instruction{Op: OpCopyDToB})
	g.push(pos, Instruction{Op: OpPlus})
	g.genVarPath(n.Counter)
	g.push(pos, Instruction{Op: OpCopyAToVarPath})

	g.emitJump(pos, topLabel)
	g.emitLabel(pos, exitLabel)

	g.forExitLabels = g.forExitLabels[:len(g.forExitLabels)-1]
}

// genSelectCase lowers SELECT CASE: the scrutinee is evaluated once and
// kept on the value stack for the lifetime of the statement so every CASE
// alternative can restore it into A without re-evaluating a
// possibly-side-effecting expression (spec.md §4.5).
func (g *generator) genSelectCase(n *typedast.SelectCaseStatement) {
	pos := n.Pos()
	g.genExpr(n.Scrutinee)
	g.push(pos, Instruction{Op: OpPushAToValueStack})

	endLabel := g.newLabel("select_end")
	var elseBody []typedast.Statement
	for _, c := range n.Cases {
		if c.IsElse {
			elseBody = c.Body
			continue
		}

		bodyLabel := g.newLabel("case_statements")
		nextCaseLabel := g.newLabel("case_next")
		for _, alt := range c.Alternatives {
			altNext := g.newLabel("case_alt_next")
			g.genCaseCheck(pos, alt)
			g.emitJumpIfFalse(pos, altNext)
			g.emitJump(pos, bodyLabel)
			g.emitLabel(pos, altNext)
		}
		g.emitJump(pos, nextCaseLabel)

		g.emitLabel(pos, bodyLabel)
		g.visitBody(c.Body)
		g.emitJump(pos, endLabel)

		g.emitLabel(pos, nextCaseLabel)
	}

	g.visitBody(elseBody)
	g.emitLabel(pos, endLabel)
	// drop the scrutinee the select statement kept on the value stack
	g.push(pos, Instruction{Op: OpPopValueStackIntoA})
}

// genCaseCheck restores the scrutinee from the value stack, compares it
// against one alternative, and leaves the boolean result in A.
func (g *generator) genCaseCheck(pos token.Position, alt typedast.CaseAlternative) {
	switch alt.Kind {
	case typedast.CaseRange:
		g.genExpr(alt.Low)
		g.push(pos, Instruction{Op: OpCopyAToB})
		g.restoreScrutinee(pos)
		g.push(pos, Instruction{Op: OpGreaterOrEqual})
		g.push(pos, Instruction{Op: OpCopyAToD})

		g.genExpr(alt.High)
		g.push(pos, Instruction{Op: OpCopyAToB})
		g.restoreScrutinee(pos)
		g.push(pos, Instruction{Op: OpLessOrEqual})
		g.push(pos, Instruction{Op: OpCopyDToB})
		g.push(pos, Instruction{Op: OpAnd})
	case typedast.CaseIsOp:
		g.genExpr(alt.Value)
		g.push(pos, Instruction{Op: OpCopyAToB})
		g.restoreScrutinee(pos)
		g.push(pos, Instruction{Op: caseOpCode(alt.Op)})
	default: // typedast.CaseSimple
		g.genExpr(alt.Value)
		g.push(pos, Instruction{Op: OpCopyAToB})
		g.restoreScrutinee(pos)
		g.push(pos, Instruction{Op: OpEqual})
	}
}

func (g *generator) restoreScrutinee(pos token.Position) {
	g.push(pos, Instruction{Op: OpPopValueStackIntoA})
	g.push(pos, Instruction{Op: OpPushAToValueStack})
}

// caseOpCode maps the parser's CASE IS operator byte (parser/control_flow.go
// parseCaseOp: '<', 'l' for <=, '=', 'g' for >=, '>', 'n' for <>) to the
// comparison opcode that tests scrutinee <op> value.
func caseOpCode(op byte) OpCode {
	switch op {
	case '<':
		return OpLess
	case 'l':
		return OpLessOrEqual
	case '=':
		return OpEqual
	case 'g':
		return OpGreaterOrEqual
	case '>':
		return OpGreater
	case 'n':
		return OpNotEqual
	default:
		return OpEqual
	}
}
