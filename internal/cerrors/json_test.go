package cerrors

import (
	"testing"

	"github.com/basiclang/basiccomp/internal/token"
	"github.com/tidwall/gjson"
)

func TestDiagnosticsJSON(t *testing.T) {
	errs := []*CompilerError{
		New(TypeMismatch, token.Position{Line: 3, Column: 5}, "cannot assign STRING to INTEGER"),
		New(Overflow, token.Position{Line: 10, Column: 1}, "value does not fit"),
	}

	doc, err := DiagnosticsJSON(errs)
	if err != nil {
		t.Fatalf("DiagnosticsJSON: %v", err)
	}

	if DiagnosticCount(doc) != 2 {
		t.Fatalf("DiagnosticCount = %d, want 2", DiagnosticCount(doc))
	}

	kinds := KindsOf(doc)
	if len(kinds) != 2 || kinds[0] != "TypeMismatch" || kinds[1] != "Overflow" {
		t.Fatalf("KindsOf = %v", kinds)
	}

	if gjson.Get(doc, "0.line").Int() != 3 {
		t.Fatalf("expected first diagnostic line 3, got %v", gjson.Get(doc, "0.line"))
	}
}
