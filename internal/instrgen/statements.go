package instrgen

import (
	"github.com/basiclang/basiccomp/internal/builtins"
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/typedast"
)

func (g *generator) visitBody(stmts []typedast.Statement) {
	for _, st := range stmts {
		g.visitStatement(st)
	}
}

func (g *generator) visitStatement(st typedast.Statement) {
	g.markStatementAddress()
	switch n := st.(type) {
	case *typedast.DimStatement:
		g.genDim(n)
	case *typedast.AssignmentStatement:
		g.genAssignment(n)
	case *typedast.CallStatement:
		g.genCallStatement(n)
	case *typedast.LabelStatement:
		g.emitLabel(n.Pos(), normalizeLabel(n.Name))
	case *typedast.GotoStatement:
		g.emitJump(n.Pos(), normalizeLabel(n.Label))
	case *typedast.GosubStatement:
		g.push(n.Pos(), Instruction{Op: OpPushRegisters})
		g.push(n.Pos(), Instruction{Op: OpGoSub, Target: unresolved(normalizeLabel(n.Label))})
	case *typedast.ReturnStatement:
		g.push(n.Pos(), Instruction{Op: OpPopRegisters})
		g.push(n.Pos(), Instruction{Op: OpReturn})
	case *typedast.OnErrorStatement:
		g.genOnError(n)
	case *typedast.ResumeStatement:
		g.genResume(n)
	case *typedast.ExitStatement:
		g.genExit(n)
	case *typedast.PrintStatement:
		g.genPrint(n)
	case *typedast.DataStatement:
		// DATA contributes to the program-wide data queue READ draws
		// from; it has no instruction-stream effect of its own.
	case *typedast.ReadStatement:
		g.genRead(n)
	case *typedast.IfStatement:
		g.genIf(n)
	case *typedast.SelectCaseStatement:
		g.genSelectCase(n)
	case *typedast.ForStatement:
		g.genFor(n)
	case *typedast.WhileStatement:
		g.genWhile(n)
	}
}

// normalizeLabel mirrors internal/linter's label case-folding; GOTO/GOSUB
// targets and the Label opcode must agree on the same spelling regardless
// of how the label was cased at its definition vs. its use sites.
func normalizeLabel(name string) string {
	return "_label_" + upperASCII(name)
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func (g *generator) genDim(n *typedast.DimStatement) {
	for _, v := range n.Vars {
		g.genOneDim(n.Pos(), v, n.Redim)
	}
}

// genOneDim lowers a single DIM/REDIM/hoisted-implicit target. A STATIC
// subprogram guards re-allocation with IsVariableDefined so re-entering the
// procedure does not reset a static variable's value (spec.md §4.5,
// "static subprograms").
func (g *generator) genOneDim(pos token.Position, v typedast.DimVar, redim bool) {
	skipAlloc := ""
	if g.currentInfo != nil && g.currentInfo.IsStatic && !redim {
		doAlloc := g.newLabel("static_dim_alloc")
		skipAlloc = g.newLabel("static_dim_skip")
		g.push(pos, Instruction{Op: OpIsVariableDefined, DimVar: v})
		g.emitJumpIfFalse(pos, doAlloc)
		g.emitJump(pos, skipAlloc)
		g.emitLabel(pos, doAlloc)
	}

	switch {
	case v.IsArray:
		for _, b := range v.Bounds {
			g.genExpr(b.Lower)
			g.push(pos, Instruction{Op: OpPushAToValueStack})
			g.genExpr(b.Upper)
			g.push(pos, Instruction{Op: OpPushAToValueStack})
		}
		elem := v.Type
		if elem.Kind == typedast.TArray {
			elem = *elem.Element
		}
		g.push(pos, Instruction{Op: OpAllocateArrayIntoA, ArrayType: elem})
	case v.Type.Kind == typedast.TFixedString:
		g.push(pos, Instruction{Op: OpAllocateFixedLengthString, Length: v.Type.FixedLength})
	case v.Type.Kind == typedast.TRecord:
		g.push(pos, Instruction{Op: OpAllocateUserDefined, Field: v.Type.RecordName})
	default:
		g.push(pos, Instruction{Op: OpAllocateBuiltIn, Qualifier: v.Type.Qualifier})
	}

	g.push(pos, Instruction{Op: OpVarPathName, RootPath: v.Path})
	g.push(pos, Instruction{Op: OpCopyAToVarPath})

	if skipAlloc != "" {
		g.emitLabel(pos, skipAlloc)
	}
}

func (g *generator) genAssignment(n *typedast.AssignmentStatement) {
	g.genExpr(n.Value)
	g.genStore(n.Pos(), n.Target)
}

func (g *generator) genStore(pos token.Position, target typedast.LValue) {
	g.genVarPath(target)
	g.push(pos, Instruction{Op: OpCopyAToVarPath})
}

func (g *generator) genOnError(n *typedast.OnErrorStatement) {
	switch n.Kind {
	case typedast.OnErrorGoToLabel:
		g.push(n.Pos(), Instruction{Op: OpOnErrorGoTo, Target: unresolved(normalizeLabel(n.Label))})
	case typedast.OnErrorGoToZero:
		g.push(n.Pos(), Instruction{Op: OpOnErrorGoToZero})
	case typedast.OnErrorResumeNext:
		g.push(n.Pos(), Instruction{Op: OpOnErrorResumeNext})
	}
}

func (g *generator) genResume(n *typedast.ResumeStatement) {
	switch n.Kind {
	case typedast.ResumeSame:
		g.push(n.Pos(), Instruction{Op: OpResume})
	case typedast.ResumeNextStmt:
		g.push(n.Pos(), Instruction{Op: OpResumeNext})
	case typedast.ResumeAtLabel:
		g.push(n.Pos(), Instruction{Op: OpResumeLabel, Target: unresolved(normalizeLabel(n.Label))})
	}
}

func (g *generator) genExit(n *typedast.ExitStatement) {
	switch n.Kind {
	case typedast.ExitFor:
		if len(g.forExitLabels) > 0 {
			g.emitJump(n.Pos(), g.forExitLabels[len(g.forExitLabels)-1])
		}
	case typedast.ExitSub, typedast.ExitFunction:
		g.emitJump(n.Pos(), g.exitLabel)
	}
}

func (g *generator) genRead(n *typedast.ReadStatement) {
	id, _, _ := builtins.LookupSub("READ")
	for _, t := range n.Targets {
		g.push(n.Pos(), Instruction{Op: OpBeginCollectArguments})
		g.genVarPath(t)
		g.push(n.Pos(), Instruction{Op: OpPushUnnamedByRef})
		g.push(n.Pos(), Instruction{Op: OpBuiltInSub, BuiltinID: int(id)})
	}
}
