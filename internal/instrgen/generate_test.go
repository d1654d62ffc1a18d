package instrgen

import (
	"testing"

	"github.com/basiclang/basiccomp/internal/builtins"
	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/typedast"
)

func setPos(n interface{ SetPos(token.Position) }, line int) {
	n.SetPos(token.Position{Line: line, Column: 1})
}

// opSequence extracts just the opcodes, including the final synthetic Halt,
// for assertions that shouldn't have to spell out every payload field.
func opSequence(instrs []Instruction) []OpCode {
	ops := make([]OpCode, 0, len(instrs))
	for _, i := range instrs {
		ops = append(ops, i.Op)
	}
	return ops
}

func assertOps(t *testing.T, got []Instruction, want []OpCode) {
	t.Helper()
	gotOps := opSequence(got)
	if len(gotOps) != len(want) {
		t.Fatalf("instruction count = %d, want %d\ngot:  %v\nwant: %v", len(gotOps), len(want), gotOps, want)
	}
	for i := range want {
		if gotOps[i] != want[i] {
			t.Fatalf("instruction %d = %v, want %v\ngot:  %v\nwant: %v", i, gotOps[i], want[i], gotOps, want)
		}
	}
}

// Scenario A (spec.md §8): a simple assignment X = 1 lowers to loading the
// literal into A, addressing the variable's path, and storing A into it,
// followed by the program-ending Halt.
func TestGenerate_SimpleAssignment(t *testing.T) {
	x := &typedast.Variable{Path: names.RootPath{Name: names.NewQualified(names.NewBareName("X"), names.QSingle)}, Type: typedast.Builtin(names.QSingle)}
	lit := &typedast.IntegerLiteral{Value: 1}
	setPos(lit, 1)
	assign := &typedast.AssignmentStatement{Target: x, Value: lit}
	setPos(assign, 1)

	prog := &typedast.Program{
		Statements:  []typedast.GlobalStatement{assign},
		UserTypes:   map[string]*typedast.UserType{},
		Subprograms: map[string]*typedast.SubprogramInfo{},
	}

	result, err := Generate(prog)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	assertOps(t, result.Instructions, []OpCode{
		OpLoadIntoA,
		OpVarPathName,
		OpCopyAToVarPath,
		OpHalt,
	})

	if result.CompilationID == "" {
		t.Fatal("expected a non-empty CompilationID")
	}
}

// Scenario B (spec.md §8): X% = 1 + 2.1 requires a cast on the sum before
// the store, and the binary plus itself stashes the left operand on the
// value stack so evaluating the right operand cannot clobber it.
func TestGenerate_BinaryPlusWithCast(t *testing.T) {
	target := &typedast.Variable{Path: names.RootPath{Name: names.NewQualified(names.NewBareName("X"), names.QInteger)}, Type: typedast.Builtin(names.QInteger)}
	left := &typedast.IntegerLiteral{Value: 1}
	right := &typedast.SingleLiteral{Value: 2.1}
	setPos(left, 1)
	setPos(right, 1)

	sum := &typedast.BinaryExpr{Op: token.PLUS, Left: left, Right: right, Type: typedast.Builtin(names.QSingle)}
	setPos(sum, 1)
	cast := &typedast.Cast{Inner: sum, To: typedast.Builtin(names.QInteger)}
	setPos(cast, 1)

	assign := &typedast.AssignmentStatement{Target: target, Value: cast}
	setPos(assign, 1)

	prog := &typedast.Program{
		Statements:  []typedast.GlobalStatement{assign},
		UserTypes:   map[string]*typedast.UserType{},
		Subprograms: map[string]*typedast.SubprogramInfo{},
	}

	result, err := Generate(prog)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	assertOps(t, result.Instructions, []OpCode{
		OpLoadIntoA,
		OpPushAToValueStack,
		OpLoadIntoA,
		OpCopyAToB,
		OpPopValueStackIntoA,
		OpPlus,
		OpCast,
		OpVarPathName,
		OpCopyAToVarPath,
		OpHalt,
	})
}

// GOTO to a label defined later in the body must resolve to the label's
// own instruction slot, not leave an unresolved label behind.
func TestGenerate_GotoResolvesForward(t *testing.T) {
	goTo := &typedast.GotoStatement{Label: "done"}
	setPos(goTo, 1)
	label := &typedast.LabelStatement{Name: "done"}
	setPos(label, 2)

	prog := &typedast.Program{
		Statements:  []typedast.GlobalStatement{goTo, label},
		UserTypes:   map[string]*typedast.UserType{},
		Subprograms: map[string]*typedast.SubprogramInfo{},
	}

	result, err := Generate(prog)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var jumpIdx, labelIdx = -1, -1
	for i, instr := range result.Instructions {
		switch instr.Op {
		case OpJump:
			jumpIdx = i
		case OpLabel:
			labelIdx = i
		}
	}
	if jumpIdx < 0 || labelIdx < 0 {
		t.Fatalf("expected both a Jump and a Label instruction, got %v", opSequence(result.Instructions))
	}
	target := result.Instructions[jumpIdx].Target
	if !target.Resolved || target.Address != labelIdx {
		t.Fatalf("Jump target = %+v, want resolved address %d", target, labelIdx)
	}
}

// Scenario C (spec.md §8): X% = LEN(A$) calls a built-in function whose
// sole argument is by reference, so the var-path (not the value) is pushed
// and the post-call dequeue/store sequence runs even though LEN itself
// never writes through it.
func TestGenerate_BuiltinByRefArgument(t *testing.T) {
	a := &typedast.Variable{Path: names.RootPath{Name: names.NewQualified(names.NewBareName("A"), names.QString)}, Type: typedast.Builtin(names.QString)}
	x := &typedast.Variable{Path: names.RootPath{Name: names.NewQualified(names.NewBareName("X"), names.QInteger)}, Type: typedast.Builtin(names.QInteger)}

	call := &typedast.FunctionCall{
		Kind:      typedast.CalleeBuiltinFunction,
		Name:      names.NewBareName("LEN"),
		BuiltinID: int(builtins.FuncLen),
		Args:      []typedast.Argument{{Value: a, ByRef: true}},
		Type:      typedast.Builtin(names.QInteger),
	}
	setPos(call, 1)
	assign := &typedast.AssignmentStatement{Target: x, Value: call}
	setPos(assign, 1)

	prog := &typedast.Program{
		Statements:  []typedast.GlobalStatement{assign},
		UserTypes:   map[string]*typedast.UserType{},
		Subprograms: map[string]*typedast.SubprogramInfo{},
	}

	result, err := Generate(prog)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	assertOps(t, result.Instructions, []OpCode{
		OpBeginCollectArguments,
		OpVarPathName,
		OpPushUnnamedByRef,
		OpPushStack,
		OpBuiltInFunction,
		OpEnqueueToReturnStack,
		OpStashFunctionReturnValue,
		OpPopStack,
		OpDequeueFromReturnStack,
		OpVarPathName,
		OpCopyAToVarPath,
		OpUnStashFunctionReturnValue,
		OpVarPathName,
		OpCopyAToVarPath,
		OpHalt,
	})
}

// A GOTO with no matching label anywhere is an internal-error condition
// instrgen must surface as an error, never a panic.
func TestGenerate_UnresolvedLabelIsError(t *testing.T) {
	goTo := &typedast.GotoStatement{Label: "nowhere"}
	setPos(goTo, 1)

	prog := &typedast.Program{
		Statements:  []typedast.GlobalStatement{goTo},
		UserTypes:   map[string]*typedast.UserType{},
		Subprograms: map[string]*typedast.SubprogramInfo{},
	}

	if _, err := Generate(prog); err == nil {
		t.Fatal("expected an error for an unresolved GOTO target")
	}
}
