package lexer

import (
	"testing"

	"github.com/basiclang/basiccomp/internal/token"
)

func TestNextToken_Basics(t *testing.T) {
	input := "X% = 1 + &H1F\r\n' comment\nREM also a comment\n\"hi\""

	tests := []struct {
		wantType    token.TokenType
		wantLiteral string
	}{
		{token.IDENT, "X"},
		{token.SIGIL_INT, "%"},
		{token.WHITESPACE, " "},
		{token.EQ, "="},
		{token.WHITESPACE, " "},
		{token.DIGITS, "1"},
		{token.WHITESPACE, " "},
		{token.PLUS, "+"},
		{token.WHITESPACE, " "},
		{token.HEXDIGITS, "1F"},
		{token.EOL, "\r\n"},
		{token.COMMENT, "' comment"},
		{token.EOL, "\n"},
		{token.REM, "REM"},
		{token.WHITESPACE, " "},
		{token.IDENT, "also"},
		{token.WHITESPACE, " "},
		{token.IDENT, "a"},
		{token.WHITESPACE, " "},
		{token.IDENT, "comment"},
		{token.EOL, "\n"},
		{token.STRINGBODY, "hi"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.wantType {
			t.Fatalf("token %d: type = %v, want %v (literal %q)", i, tok.Type, tt.wantType, tok.Literal)
		}
		if tok.Literal != tt.wantLiteral {
			t.Fatalf("token %d: literal = %q, want %q", i, tok.Literal, tt.wantLiteral)
		}
	}
}

func TestNextToken_DottedIdentifier(t *testing.T) {
	l := New("A.B.C$")
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "A.B.C" {
		t.Fatalf("got %v %q, want IDENT A.B.C", tok.Type, tok.Literal)
	}
	sigil := l.NextToken()
	if sigil.Type != token.SIGIL_STRING {
		t.Fatalf("got %v, want SIGIL_STRING", sigil.Type)
	}
}

func TestNextToken_ComparisonOperators(t *testing.T) {
	l := New("<= >= <>")
	want := []token.TokenType{token.LE, token.WHITESPACE, token.GE, token.WHITESPACE, token.NE}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d: got %v want %v", i, tok.Type, w)
		}
	}
}

func TestNextToken_UnterminatedString(t *testing.T) {
	l := New("\"abc")
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatal("expected a lexical error for unterminated string")
	}
}
