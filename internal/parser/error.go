package parser

import (
	"fmt"

	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/token"
)

func syntaxErrorAt(pos token.Position, format string, args ...any) *cerrors.CompilerError {
	return cerrors.New(cerrors.SyntaxError, pos, fmt.Sprintf(format, args...))
}

// expected builds the "X expected" fatal diagnostic produced once a
// production has committed to a branch (spec.md §4.2: Incomplete is only
// valid before any tokens are consumed).
func expected(pt PToken, what string) *cerrors.CompilerError {
	return syntaxErrorAt(pt.Tok.Pos, "%s expected, found %q", what, pt.Tok.Literal)
}

func eolExpected(pt PToken) *cerrors.CompilerError {
	return expected(pt, "end-of-statement")
}

func illegalInSubFunction(pos token.Position, construct string) *cerrors.CompilerError {
	return cerrors.New(cerrors.IllegalInSubFunction, pos, fmt.Sprintf("%s is not allowed inside a SUB or FUNCTION", construct))
}

func identifierCannotIncludePeriod(pos token.Position, name string) *cerrors.CompilerError {
	return cerrors.New(cerrors.IdentifierCannotIncludePeriod, pos, fmt.Sprintf("identifier %q cannot include a period here", name))
}

func identifierTooLong(pos token.Position, name string) *cerrors.CompilerError {
	return cerrors.New(cerrors.IdentifierTooLong, pos, fmt.Sprintf("identifier %q exceeds the maximum length", name))
}
