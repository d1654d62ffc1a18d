package linter

import (
	"testing"

	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/parser"
	"github.com/basiclang/basiccomp/internal/typedast"
)

func lintSource(t *testing.T, src string) (*typedast.Program, []*cerrors.CompilerError) {
	t.Helper()
	prog, perrs := parser.Parse(src)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	return Lint(prog)
}

func TestLint_ImplicitVariableHoisting(t *testing.T) {
	typed, errs := lintSource(t, "X = 1\nY = X + 2\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected lint errors: %v", errs)
	}
	if len(typed.Statements) != 3 {
		t.Fatalf("expected the hoisted DIM plus 2 statements, got %d", len(typed.Statements))
	}
}

func TestLint_TypeMismatchOnAssignment(t *testing.T) {
	_, errs := lintSource(t, "TYPE Card\n  Suit AS STRING\nEND TYPE\n\nDIM C AS Card\nX% = C\n")
	if len(errs) == 0 {
		t.Fatal("expected a type-mismatch diagnostic assigning a record into a numeric variable")
	}
	found := false
	for _, e := range errs {
		if e.Kind == cerrors.TypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a TypeMismatch error, got %v", errs)
	}
}

func TestLint_DuplicateTypeDefinitionRejected(t *testing.T) {
	_, errs := lintSource(t, "TYPE Card\n  Suit AS STRING\nEND TYPE\n\nTYPE Card\n  Rank AS INTEGER\nEND TYPE\n")
	if len(errs) == 0 {
		t.Fatal("expected a duplicate-definition diagnostic for the second TYPE Card")
	}
	found := false
	for _, e := range errs {
		if e.Kind == cerrors.DuplicateDefinition {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a DuplicateDefinition error, got %v", errs)
	}
}

func TestLint_UserTypeFieldAccess(t *testing.T) {
	typed, errs := lintSource(t, "TYPE Card\n  Suit AS STRING\n  Rank AS INTEGER\nEND TYPE\n\nDIM C AS Card\nC.Rank = 5\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected lint errors: %v", errs)
	}
	if _, ok := typed.UserTypes["card"]; !ok {
		t.Fatalf("expected Card registered under its folded key, got %v", typed.UserTypes)
	}
}

func TestLint_ArrayDeclarationAndIndexing(t *testing.T) {
	_, errs := lintSource(t, "DIM A(10) AS INTEGER\nA(3) = 7\nY = A(3)\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected lint errors: %v", errs)
	}
}
