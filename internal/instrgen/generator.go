package instrgen

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/token"
	"github.com/basiclang/basiccomp/internal/typedast"
)

// generator is the shared pass context for all three stages, the same
// single-struct-per-compilation-unit shape internal/linter.Linter uses.
type generator struct {
	instructions       []Instruction
	statementAddresses []int

	userTypes   map[string]*typedast.UserType
	subprograms map[string]*typedast.SubprogramInfo

	// currentSubprogram is the ":fun:Name"/":sub:Name" label of the body
	// being emitted, or "" at global scope; currentInfo is the matching
	// metadata, consulted for the IsStatic re-entry guard.
	currentSubprogram string
	currentInfo       *typedast.SubprogramInfo

	// exitLabel is where EXIT SUB/EXIT FUNCTION jumps, set for the
	// duration of the enclosing body; forExitLabels is the stack EXIT FOR
	// jumps to the top of.
	exitLabel     string
	forExitLabels []string

	labelSeq int
}

// Generate runs the three instruction-generator passes of spec.md §4.5 over
// a fully linted, typed program: metadata collection (pass 1, here just a
// reuse of the subprogram repository the linter already published on
// prog.Subprograms -- the Rust original collects this separately only
// because its linter and generator are distinct compilation units), symbolic
// emission (pass 2), and label resolution (pass 3).
func Generate(prog *typedast.Program) (*Result, error) {
	g := &generator{
		userTypes:   prog.UserTypes,
		subprograms: prog.Subprograms,
	}

	globals, functions, subs := splitProgram(prog.Statements)
	globals = moveDataStatementsFirst(globals)

	g.visitGlobalStatements(globals)
	g.visitFunctions(functions)
	g.visitSubs(subs)

	resolved, err := resolveLabels(g.instructions)
	if err != nil {
		return nil, err
	}

	return &Result{
		CompilationID:      uuid.NewString(),
		Instructions:       resolved,
		StatementAddresses: g.statementAddresses,
	}, nil
}

func splitProgram(stmts []typedast.GlobalStatement) (globals []typedast.Statement, functions []*typedast.FunctionImplementation, subs []*typedast.SubImplementation) {
	for _, g := range stmts {
		switch n := g.(type) {
		case *typedast.FunctionImplementation:
			functions = append(functions, n)
		case *typedast.SubImplementation:
			subs = append(subs, n)
		default:
			if st, ok := g.(typedast.Statement); ok {
				globals = append(globals, st)
			}
		}
	}
	return globals, functions, subs
}

// moveDataStatementsFirst mirrors the Rust generator's
// move_data_statements_first: DATA is collected before any other global
// code runs, so that a READ anywhere in the program (including inside a
// subprogram, executed before some later global DATA statement appears
// lexically) still sees every data value already queued.
func moveDataStatementsFirst(stmts []typedast.Statement) []typedast.Statement {
	var data, rest []typedast.Statement
	for _, st := range stmts {
		if _, ok := st.(*typedast.DataStatement); ok {
			data = append(data, st)
		} else {
			rest = append(rest, st)
		}
	}
	return append(data, rest...)
}

// maxPos marks the synthetic HALT instruction that separates global code
// from subprogram bodies, matching the Rust generator's
// Position::new(u32::MAX, u32::MAX) sentinel.
var maxPos = token.Position{Line: 1<<31 - 1, Column: 1<<31 - 1}

func (g *generator) visitGlobalStatements(stmts []typedast.Statement) {
	g.visitBody(stmts)
	g.markStatementAddress()
	g.push(maxPos, Instruction{Op: OpHalt})
}

func (g *generator) visitFunctions(fns []*typedast.FunctionImplementation) {
	for _, f := range fns {
		g.visitFunction(f)
	}
}

func (g *generator) visitFunction(f *typedast.FunctionImplementation) {
	info := g.subprograms[f.Name.Key()]
	label := formatSubprogramLabel(true, f.Name.String())
	g.markCurrentSubprogram(label, info, f.Pos())

	// The function's own name is its result pseudo-variable; give it a
	// default value before the body runs, the same widening-from-zero
	// default every other allocation site gets.
	g.push(f.Pos(), Instruction{Op: OpAllocateBuiltIn, Qualifier: f.ReturnType.Qualifier})

	g.subprogramBody(f.Body, f.Pos())
}

func (g *generator) visitSubs(subs []*typedast.SubImplementation) {
	for _, s := range subs {
		g.visitSub(s)
	}
}

func (g *generator) visitSub(s *typedast.SubImplementation) {
	info := g.subprograms[s.Name.Key()]
	label := formatSubprogramLabel(false, s.Name.String())
	g.markCurrentSubprogram(label, info, s.Pos())
	g.subprogramBody(s.Body, s.Pos())
}

func (g *generator) markCurrentSubprogram(label string, info *typedast.SubprogramInfo, pos token.Position) {
	g.push(pos, Instruction{Op: OpLabel, LabelName: label})
	g.currentSubprogram = label
	g.currentInfo = info
}

func (g *generator) subprogramBody(body []typedast.Statement, pos token.Position) {
	g.exitLabel = g.newLabel("exit")
	g.visitBody(body)
	g.emitLabel(pos, g.exitLabel)
	// PopRet is the last instruction of every subprogram body so RESUME
	// NEXT on the final statement still lands on a valid address.
	g.markStatementAddress()
	g.push(pos, Instruction{Op: OpPopRet})
	g.currentSubprogram = ""
	g.currentInfo = nil
	g.exitLabel = ""
}

func formatSubprogramLabel(isFunction bool, name string) string {
	if isFunction {
		return ":fun:" + name
	}
	return ":sub:" + name
}

func (g *generator) push(pos token.Position, i Instruction) {
	i.Pos = pos
	g.instructions = append(g.instructions, i)
}

func (g *generator) markStatementAddress() {
	g.statementAddresses = append(g.statementAddresses, len(g.instructions))
}

// newLabel returns a fresh symbolic label, unique within the compilation,
// scoped by a human-readable prefix naming the construct it belongs to
// (spec.md §4.5's "_<prefix>_<position>" form, with a monotonic counter in
// place of a source position -- Go has no Rust-style Debug-formatted
// Position, and the counter is simpler while still guaranteeing
// uniqueness).
func (g *generator) newLabel(prefix string) string {
	g.labelSeq++
	return fmt.Sprintf("_%s_%d", prefix, g.labelSeq)
}

func (g *generator) emitLabel(pos token.Position, name string) {
	g.push(pos, Instruction{Op: OpLabel, LabelName: name})
}

func (g *generator) emitJump(pos token.Position, target string) {
	g.push(pos, Instruction{Op: OpJump, Target: unresolved(target)})
}

func (g *generator) emitJumpIfFalse(pos token.Position, target string) {
	g.push(pos, Instruction{Op: OpJumpIfFalse, Target: unresolved(target)})
}

func (g *generator) internalError(pos token.Position, format string, args ...any) error {
	return cerrors.New(cerrors.InternalError, pos, fmt.Sprintf(format, args...))
}
