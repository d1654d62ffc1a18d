package instrgen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/typedast"
)

// render turns an instruction stream into a stable, human-readable listing
// for snapshotting: address, opcode, and whatever payload fields that
// opcode actually uses.
func render(instrs []Instruction) string {
	var b strings.Builder
	for i, in := range instrs {
		fmt.Fprintf(&b, "%03d %s", i, in.Op)
		switch in.Op {
		case OpLoadIntoA:
			fmt.Fprintf(&b, " %v", in.Value)
		case OpVarPathName:
			fmt.Fprintf(&b, " %s", in.RootPath.Name.String())
		case OpJump, OpJumpIfFalse, OpGoSub, OpOnErrorGoTo, OpResumeLabel:
			if in.Target.Resolved {
				fmt.Fprintf(&b, " ->%03d", in.Target.Address)
			} else {
				fmt.Fprintf(&b, " ->%s", in.Target.Label)
			}
		case OpLabel:
			fmt.Fprintf(&b, " %s", in.LabelName)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// TestGenerate_ForLoopWithIfBody snapshots the instruction stream for a
// FOR loop whose body is a single IF statement, exercising the sign-of-step
// test, the loop-exit wiring, and branch-label resolution together.
func TestGenerate_ForLoopWithIfBody(t *testing.T) {
	counter := &typedast.Variable{
		Path: names.RootPath{Name: names.NewQualified(names.NewBareName("I"), names.QInteger)},
		Type: typedast.Builtin(names.QInteger),
	}
	lower := &typedast.IntegerLiteral{Value: 1}
	upper := &typedast.IntegerLiteral{Value: 10}
	step := &typedast.IntegerLiteral{Value: 1}
	for _, e := range []interface{ SetPos(token.Position) }{lower, upper, step, counter} {
		e.SetPos(token.Position{Line: 1, Column: 1})
	}

	flag := &typedast.Variable{
		Path: names.RootPath{Name: names.NewQualified(names.NewBareName("FOUND"), names.QInteger)},
		Type: typedast.Builtin(names.QInteger),
	}
	cond := &typedast.IntegerLiteral{Value: 1}
	setPos(cond, 2)
	assign := &typedast.AssignmentStatement{Target: flag, Value: cond}
	setPos(assign, 2)
	ifStmt := &typedast.IfStatement{Branches: []typedast.IfBranch{{Cond: cond, Body: []typedast.Statement{assign}}}}
	setPos(ifStmt, 2)

	forStmt := &typedast.ForStatement{Counter: counter, Lower: lower, Upper: upper, Step: step, Body: []typedast.Statement{ifStmt}}
	setPos(forStmt, 1)

	prog := &typedast.Program{
		Statements:  []typedast.GlobalStatement{forStmt},
		UserTypes:   map[string]*typedast.UserType{},
		Subprograms: map[string]*typedast.SubprogramInfo{},
	}

	result, err := Generate(prog)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, in := range result.Instructions {
		if !in.Target.Resolved && in.Target.Label != "" {
			t.Fatalf("unresolved label left in stream: %+v", in)
		}
	}

	snaps.MatchSnapshot(t, render(result.Instructions))
}
