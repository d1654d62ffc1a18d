// Package ast defines the positioned syntax tree produced by internal/parser
// (spec.md §3, "Parse tree"). Expression and Statement are sum types, not
// class hierarchies: each node variant is its own struct carrying exactly
// its payload, and every node implements Node so that (row, column)
// travels with it for diagnostics.
package ast

import (
	"strings"

	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/token"
)

// Node is implemented by every syntax-tree node.
type Node interface {
	Pos() token.Position
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// GlobalStatement is a top-level form: DEF-type, DIM/REDIM, a TYPE
// definition, a SUB/FUNCTION declaration or implementation, or any regular
// Statement (spec.md §3, "Top-level program").
type GlobalStatement interface {
	Node
	globalStatementNode()
}

// Program is the root node: an ordered list of global statements.
type Program struct {
	Statements []GlobalStatement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// pos is embedded by every node to implement Pos().
type pos struct {
	P token.Position
}

func (p pos) Pos() token.Position { return p.P }

// SetPos lets the parser stamp a node's position after constructing it
// with a plain composite literal, since pos's own field is unexported and
// so cannot be set directly from outside the package.
func (p *pos) SetPos(at token.Position) { p.P = at }

// atPos builds the embeddable pos value for a given position; used
// in-package where a literal with the field set is convenient.
func atPos(at token.Position) pos { return pos{P: at} }

// wrapStatement lets any Statement also satisfy GlobalStatement, since
// spec.md's top-level program is "an ordered list of global statements"
// where a plain Statement is one alternative.
type StatementAsGlobal struct {
	Statement
}

func (StatementAsGlobal) globalStatementNode() {}

func WrapGlobal(s Statement) GlobalStatement {
	return StatementAsGlobal{Statement: s}
}

// Identifier is a bare or sigil-qualified name reference, possibly dotted.
type Identifier struct {
	pos
	Name names.Name // only the trailing dotted component; see PropertyChain
}

func (i *Identifier) expressionNode() {}
func (i *Identifier) String() string  { return i.Name.String() }

// PropertyChain represents A.B.C: a root identifier and one or more bare
// field-access steps, only the last of which may be qualified.
type PropertyChain struct {
	pos
	Root  names.BareName
	Steps []names.Name
}

func (p *PropertyChain) expressionNode() {}
func (p *PropertyChain) String() string {
	var sb strings.Builder
	sb.WriteString(p.Root.String())
	for _, s := range p.Steps {
		sb.WriteString(".")
		sb.WriteString(s.String())
	}
	return sb.String()
}
