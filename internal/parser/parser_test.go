package parser

import (
	"testing"

	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/token"
)

func firstStatement(t *testing.T, src string) ast.GlobalStatement {
	t.Helper()
	prog, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prog.Statements) == 0 {
		t.Fatalf("expected at least one statement")
	}
	return prog.Statements[0]
}

func TestParse_SimpleAssignment(t *testing.T) {
	g := firstStatement(t, "X% = 1 + 2\n")
	wrapped, ok := g.(ast.StatementAsGlobal)
	if !ok {
		t.Fatalf("expected StatementAsGlobal, got %T", g)
	}
	assign, ok := wrapped.Statement.(*ast.AssignmentStatement)
	if !ok {
		t.Fatalf("expected *ast.AssignmentStatement, got %T", wrapped.Statement)
	}
	bin, ok := assign.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", assign.Value)
	}
	if bin.Op != token.PLUS {
		t.Fatalf("expected PLUS, got %v", bin.Op)
	}
}

func TestParse_PrecedenceClimbing(t *testing.T) {
	// 1 + 2 * 3 should bind as 1 + (2 * 3): the outer node is PLUS.
	g := firstStatement(t, "X = 1 + 2 * 3\n")
	assign := g.(ast.StatementAsGlobal).Statement.(*ast.AssignmentStatement)
	top, ok := assign.Value.(*ast.BinaryExpr)
	if !ok || top.Op != token.PLUS {
		t.Fatalf("expected top-level PLUS, got %#v", assign.Value)
	}
	right, ok := top.Right.(*ast.BinaryExpr)
	if !ok || right.Op != token.ASTERISK {
		t.Fatalf("expected nested ASTERISK on the right, got %#v", top.Right)
	}
}

func TestParse_UnaryMinusFolding(t *testing.T) {
	g := firstStatement(t, "X = -5\n")
	assign := g.(ast.StatementAsGlobal).Statement.(*ast.AssignmentStatement)
	lit, ok := assign.Value.(*ast.IntegerLiteral)
	if !ok {
		t.Fatalf("expected folded IntegerLiteral, got %#v", assign.Value)
	}
	if lit.Value != -5 {
		t.Fatalf("expected -5, got %d", lit.Value)
	}
}

func TestParse_UnaryMinusDoesNotFoldAcrossParens(t *testing.T) {
	g := firstStatement(t, "X = -(5)\n")
	assign := g.(ast.StatementAsGlobal).Statement.(*ast.AssignmentStatement)
	u, ok := assign.Value.(*ast.UnaryExpr)
	if !ok || u.Op != token.MINUS {
		t.Fatalf("expected an un-folded UnaryExpr, got %#v", assign.Value)
	}
	if _, ok := u.Operand.(*ast.ParenExpr); !ok {
		t.Fatalf("expected ParenExpr operand, got %#v", u.Operand)
	}
}

func TestParse_AndRequiresTrailingWhitespace(t *testing.T) {
	// AND is a complete token here ("AND" can't absorb "-"), but with no
	// space and no parenthesis before its right operand it must not be
	// treated as the binary operator - leaving "AND-1" as trailing,
	// unconsumed tokens and triggering an end-of-statement error.
	_, errs := Parse("X = 1 AND-1\n")
	if len(errs) == 0 {
		t.Fatalf("expected a syntax error when AND is not followed by whitespace or '('")
	}
}

func TestParse_FunctionCallOrIndexAmbiguity(t *testing.T) {
	g := firstStatement(t, "X = LEN(A)\n")
	assign := g.(ast.StatementAsGlobal).Statement.(*ast.AssignmentStatement)
	call, ok := assign.Value.(*ast.FunctionCallOrIndex)
	if !ok {
		t.Fatalf("expected *ast.FunctionCallOrIndex, got %#v", assign.Value)
	}
	if len(call.Args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(call.Args))
	}
}

func TestParse_ColorEncodesPresenceFlags(t *testing.T) {
	g := firstStatement(t, "COLOR , 4\n")
	stmt := g.(ast.StatementAsGlobal).Statement.(*ast.BuiltinSubStatement)
	if stmt.Name != "COLOR" {
		t.Fatalf("expected COLOR, got %s", stmt.Name)
	}
	flags, ok := stmt.Args[0].(*ast.IntegerLiteral)
	if !ok {
		t.Fatalf("expected flags literal, got %#v", stmt.Args[0])
	}
	if flags.Value != 0b010 {
		t.Fatalf("expected flags 0b010 (background only), got %b", flags.Value)
	}
}

func TestParse_IfBlockForm(t *testing.T) {
	src := "IF X > 0 THEN\nY = 1\nELSE\nY = 2\nEND IF\n"
	g := firstStatement(t, src)
	ifs, ok := g.(ast.StatementAsGlobal).Statement.(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected *ast.IfStatement, got %#v", g)
	}
	if len(ifs.Branches) != 1 || len(ifs.Else) != 1 {
		t.Fatalf("unexpected shape: %#v", ifs)
	}
}

func TestParse_ForLoop(t *testing.T) {
	src := "FOR I = 1 TO 10 STEP 2\nPRINT I\nNEXT I\n"
	g := firstStatement(t, src)
	f, ok := g.(ast.StatementAsGlobal).Statement.(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected *ast.ForStatement, got %#v", g)
	}
	if f.Step == nil {
		t.Fatalf("expected explicit STEP to be preserved")
	}
}

func TestParse_SubImplementation(t *testing.T) {
	src := "SUB Greet(name AS STRING)\nPRINT name\nEND SUB\n"
	prog, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	sub, ok := prog.Statements[0].(*ast.SubImplementation)
	if !ok {
		t.Fatalf("expected *ast.SubImplementation, got %#v", prog.Statements[0])
	}
	if sub.Name != "Greet" || len(sub.Params) != 1 {
		t.Fatalf("unexpected sub shape: %#v", sub)
	}
}

func TestParse_TypeDefinition(t *testing.T) {
	src := "TYPE Point\nX AS INTEGER\nY AS INTEGER\nEND TYPE\n"
	prog, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	td, ok := prog.Statements[0].(*ast.TypeDefinition)
	if !ok {
		t.Fatalf("expected *ast.TypeDefinition, got %#v", prog.Statements[0])
	}
	if len(td.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(td.Fields))
	}
}

func TestParse_DimArrayWithBounds(t *testing.T) {
	src := "DIM A(1 TO 10) AS INTEGER\n"
	g := firstStatement(t, src)
	dim := g.(ast.StatementAsGlobal).Statement.(*ast.DimStatement)
	if len(dim.Vars) != 1 || !dim.Vars[0].IsArray {
		t.Fatalf("expected one array var: %#v", dim)
	}
	if dim.Vars[0].Bounds[0].Lower == nil {
		t.Fatalf("expected explicit lower bound")
	}
}

func TestParse_ExitForOutsideLoopIsError(t *testing.T) {
	_, errs := Parse("EXIT FOR\n")
	if len(errs) == 0 {
		t.Fatalf("expected an error for EXIT FOR outside a loop")
	}
}

func TestParse_StringDollarFunction(t *testing.T) {
	g := firstStatement(t, "X = STRING$(5, 65)\n")
	assign := g.(ast.StatementAsGlobal).Statement.(*ast.AssignmentStatement)
	call, ok := assign.Value.(*ast.FunctionCallOrIndex)
	if !ok {
		t.Fatalf("expected *ast.FunctionCallOrIndex, got %#v", assign.Value)
	}
	id, ok := call.Name.(*ast.Identifier)
	if !ok || id.Name.Base.String() != "STRING" {
		t.Fatalf("expected identifier STRING, got %#v", call.Name)
	}
}

func TestParse_PropertyChainAssignment(t *testing.T) {
	src := "TYPE Point\nX AS INTEGER\nEND TYPE\nP.X = 5\n"
	prog, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assign, ok := prog.Statements[1].(ast.StatementAsGlobal).Statement.(*ast.AssignmentStatement)
	if !ok {
		t.Fatalf("expected *ast.AssignmentStatement, got %#v", prog.Statements[1])
	}
	if _, ok := assign.Target.(*ast.PropertyChain); !ok {
		t.Fatalf("expected *ast.PropertyChain target, got %#v", assign.Target)
	}
}
