package parser

import (
	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/token"
)

// parseProgram parses the whole token stream into a Program, recovering
// from a bad global statement by resynchronizing at the next statement
// boundary rather than aborting the whole parse (spec.md §7: diagnostics
// accumulate).
func (p *Parser) parseProgram() *ast.Program {
	for _, e := range p.c.lex.Errors() {
		p.errs = append(p.errs, syntaxErrorAt(e.Pos, "%s", e.Message))
	}

	prog := &ast.Program{}
	for {
		p.skipSeparators()
		if p.atEOF() {
			return prog
		}

		g, err := p.parseGlobalStatement()
		if err != nil {
			p.fail(err)
			p.resynchronize()
			continue
		}
		if g == nil {
			p.fail(expected(p.cur(), "statement"))
			p.resynchronize()
			continue
		}
		prog.Statements = append(prog.Statements, g)

		// Block constructs (SUB/FUNCTION/TYPE) consume their own
		// terminating END line themselves; a plain wrapped statement still
		// needs the usual statement-end check.
		if _, ok := g.(ast.StatementAsGlobal); ok {
			if end := p.expectStatementEnd(); end != nil {
				p.fail(end)
				p.resynchronize()
			}
		}
	}
}

// parseGlobalStatement parses one top-level form: a DEF-type statement, a
// TYPE definition, a DECLARE, a SUB/FUNCTION implementation, or any plain
// Statement wrapped as a GlobalStatement.
func (p *Parser) parseGlobalStatement() (ast.GlobalStatement, *cerrors.CompilerError) {
	switch p.cur().Tok.Type {
	case token.DEFINT, token.DEFLNG, token.DEFSNG, token.DEFDBL, token.DEFSTR:
		return p.parseDefType()
	case token.TYPE:
		return p.parseTypeDefinition()
	case token.DECLARE:
		return p.parseDeclare()
	case token.SUB:
		return p.parseSubImplementation()
	case token.FUNCTION:
		return p.parseFunctionImplementation()
	}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if stmt == nil {
		return nil, nil
	}
	return ast.WrapGlobal(stmt), nil
}
