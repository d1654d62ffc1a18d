// Package cerrors implements the closed error-kind set of spec.md §7 and
// renders *CompilerError with source-line and caret context, following the
// teacher compiler's internal/errors package.
package cerrors

import (
	"fmt"
	"strings"

	"github.com/basiclang/basiccomp/internal/token"
)

// Kind is the closed set of spec.md §7 error kinds.
type Kind string

const (
	SyntaxError                 Kind = "SyntaxError"
	IdentifierCannotIncludePeriod Kind = "IdentifierCannotIncludePeriod"
	IdentifierTooLong            Kind = "IdentifierTooLong"
	DuplicateDefinition          Kind = "DuplicateDefinition"
	TypeNotDefined               Kind = "TypeNotDefined"
	TypeMismatch                 Kind = "TypeMismatch"
	ArgumentCountMismatch        Kind = "ArgumentCountMismatch"
	ArgumentTypeMismatch         Kind = "ArgumentTypeMismatch"
	VariableRequired             Kind = "VariableRequired"
	FunctionNeedsArguments       Kind = "FunctionNeedsArguments"
	InvalidConstant              Kind = "InvalidConstant"
	IllegalInSubFunction         Kind = "IllegalInSubFunction"
	Overflow                     Kind = "Overflow"
	DivisionByZero               Kind = "DivisionByZero"
	SubscriptOutOfRange          Kind = "SubscriptOutOfRange"
	OutOfMemory                  Kind = "OutOfMemory"
	BadFileNameOrNumber          Kind = "BadFileNameOrNumber"
	BadFileMode                  Kind = "BadFileMode"
	BadRecordNumber              Kind = "BadRecordNumber"
	ElementNotDefined            Kind = "ElementNotDefined"
	ForLoopZeroStep              Kind = "ForLoopZeroStep"
	OutOfData                    Kind = "OutOfData"
	IllegalFunctionCall          Kind = "IllegalFunctionCall"
	InternalError                Kind = "InternalError"
)

// CompilerError carries a closed Kind, a human message, and the position of
// the syntactic construct responsible, patched to the nearest enclosing
// node if the original error had no position (spec.md §7).
type CompilerError struct {
	Kind    Kind
	Message string
	Pos     token.Position
	Source  string
	File    string
}

func New(kind Kind, pos token.Position, message string) *CompilerError {
	return &CompilerError{Kind: kind, Pos: pos, Message: message}
}

func (e *CompilerError) Error() string {
	return e.Format(false)
}

// WithSource attaches the originating source text and filename so Format
// can render a caret-annotated excerpt.
func (e *CompilerError) WithSource(source, file string) *CompilerError {
	e.Source = source
	e.File = file
	return e
}

// Format renders the error with a source-line excerpt and caret, the same
// layout as the teacher's internal/errors.CompilerError.Format.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s: %s in %s:%d:%d\n", e.Kind, e.Message, e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s: %s at %d:%d\n", e.Kind, e.Message, e.Pos.Line, e.Pos.Column))
	}

	line := e.sourceLine(e.Pos.Line)
	if line == "" {
		return sb.String()
	}

	lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// FormatErrors renders every error in errs, numbering them when there is
// more than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("compilation failed with %d error(s):\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[%d/%d] ", i+1, len(errs)))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
