package instrgen

import (
	"github.com/basiclang/basiccomp/internal/builtins"
	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/typedast"
)

// genFunctionCall lowers a FunctionCall expression, leaving its result in A.
func (g *generator) genFunctionCall(n *typedast.FunctionCall) {
	if n.Kind == typedast.CalleeBuiltinFunction {
		g.genBuiltinFunctionCall(n)
		return
	}
	g.genUserFunctionCall(n)
}

func (g *generator) genBuiltinFunctionCall(n *typedast.FunctionCall) {
	pos := n.Pos()
	g.pushUnnamedArgs(pos, n.Args)
	g.push(pos, Instruction{Op: OpPushStack})
	g.push(pos, Instruction{Op: OpBuiltInFunction, BuiltinID: n.BuiltinID})
	g.stashByRefArgs(n.Args)

	sig := builtins.FunctionSig(builtins.Function(n.BuiltinID))
	retName := names.NewQualified(names.NewBareName(sig.Name), sig.ReturnType)
	g.push(pos, Instruction{Op: OpStashFunctionReturnValue, ReturnName: retName})

	g.push(pos, Instruction{Op: OpPopStack})
	g.unstashByRefArgs(n.Args)
	g.push(pos, Instruction{Op: OpUnStashFunctionReturnValue})
}

func (g *generator) genUserFunctionCall(n *typedast.FunctionCall) {
	pos := n.Pos()
	info := g.subprograms[n.Name.Key()]
	g.pushNamedArgs(pos, info, n.Args)
	g.pushStackFor(pos, formatSubprogramLabel(true, n.Name.String()), info)

	index := len(g.instructions)
	g.push(pos, Instruction{Op: OpPushRet, RetIndex: index + 2})
	g.emitJump(pos, formatSubprogramLabel(true, n.Name.String()))

	g.stashByRefArgs(n.Args)
	retName := names.NewQualified(n.Name, n.Type.Qualifier)
	g.push(pos, Instruction{Op: OpStashFunctionReturnValue, ReturnName: retName})

	g.push(pos, Instruction{Op: OpPopStack})
	g.unstashByRefArgsTyped(info, n.Args)
	g.push(pos, Instruction{Op: OpUnStashFunctionReturnValue})
}

// genCallStatement lowers a bare SUB call, built-in or user-defined.
func (g *generator) genCallStatement(n *typedast.CallStatement) {
	if n.Kind == typedast.CalleeBuiltinFunction {
		g.genBuiltinSubCall(n)
		return
	}
	g.genUserSubCall(n)
}

func (g *generator) genBuiltinSubCall(n *typedast.CallStatement) {
	pos := n.Pos()
	g.pushUnnamedArgs(pos, n.Args)
	g.push(pos, Instruction{Op: OpPushStack})
	g.push(pos, Instruction{Op: OpBuiltInSub, BuiltinID: n.BuiltinID})
	g.stashByRefArgs(n.Args)
	g.push(pos, Instruction{Op: OpPopStack})
	g.unstashByRefArgs(n.Args)
}

func (g *generator) genUserSubCall(n *typedast.CallStatement) {
	pos := n.Pos()
	info := g.subprograms[n.Name.Key()]
	g.pushNamedArgs(pos, info, n.Args)
	g.pushStackFor(pos, formatSubprogramLabel(false, n.Name.String()), info)

	index := len(g.instructions)
	g.push(pos, Instruction{Op: OpPushRet, RetIndex: index + 2})
	g.emitJump(pos, formatSubprogramLabel(false, n.Name.String()))

	g.stashByRefArgs(n.Args)
	g.push(pos, Instruction{Op: OpPopStack})
	g.unstashByRefArgsTyped(info, n.Args)
}

func (g *generator) pushUnnamedArgs(pos token.Position, args []typedast.Argument) {
	g.push(pos, Instruction{Op: OpBeginCollectArguments})
	for _, a := range args {
		if a.ByRef {
			g.genVarPath(a.Value)
			g.push(pos, Instruction{Op: OpPushUnnamedByRef})
		} else {
			g.genExpr(a.Value)
			g.push(pos, Instruction{Op: OpPushUnnamedByVal})
		}
	}
}

func (g *generator) pushNamedArgs(pos token.Position, info *typedast.SubprogramInfo, args []typedast.Argument) {
	g.push(pos, Instruction{Op: OpBeginCollectArguments})
	for i, a := range args {
		g.genExpr(a.Value)
		if info != nil && i < len(info.Params) {
			p := info.Params[i]
			g.push(pos, Instruction{Op: OpCast, Qualifier: p.Type.Qualifier})
			g.push(pos, Instruction{Op: OpPushNamed, Param: typedast.Param{Name: p.Name, Type: p.Type, ByVal: !a.ByRef}})
		} else {
			g.push(pos, Instruction{Op: OpPushNamed})
		}
	}
}

func (g *generator) pushStackFor(pos token.Position, label string, info *typedast.SubprogramInfo) {
	if info != nil && info.IsStatic {
		g.push(pos, Instruction{Op: OpPushStaticStack, Subprogram: label})
		return
	}
	g.push(pos, Instruction{Op: OpPushStack})
}

func (g *generator) stashByRefArgs(args []typedast.Argument) {
	for i, a := range args {
		if a.ByRef {
			g.push(a.Value.Pos(), Instruction{Op: OpEnqueueToReturnStack, RetIndex: i})
		}
	}
}

func (g *generator) unstashByRefArgs(args []typedast.Argument) {
	for _, a := range args {
		if !a.ByRef {
			continue
		}
		pos := a.Value.Pos()
		g.push(pos, Instruction{Op: OpDequeueFromReturnStack})
		if t := a.Value.ExprType(); t.Kind == typedast.TFixedString {
			g.push(pos, Instruction{Op: OpFixLength, Length: t.FixedLength})
		}
		g.genStore(pos, a.Value)
	}
}

func (g *generator) unstashByRefArgsTyped(info *typedast.SubprogramInfo, args []typedast.Argument) {
	for i, a := range args {
		if !a.ByRef {
			continue
		}
		pos := a.Value.Pos()
		g.push(pos, Instruction{Op: OpDequeueFromReturnStack})
		if info != nil && i < len(info.Params) && info.Params[i].Type.Kind == typedast.TFixedString {
			g.push(pos, Instruction{Op: OpFixLength, Length: info.Params[i].Type.FixedLength})
		}
		g.genStore(pos, a.Value)
	}
}
