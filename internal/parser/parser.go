package parser

import (
	"strings"

	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/lexer"
	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/token"
)

const maxIdentifierLength = 40

// upperLiteral case-folds a raw token literal for keyword-like name
// comparisons (DATA/READ, and multi-word builtin sub names).
func upperLiteral(s string) string { return strings.ToUpper(s) }

// Parser drives the Cursor through the grammar, accumulating diagnostics
// rather than stopping at the first one: a single Fatal result aborts only
// the statement it occurred in, and the driver resynchronizes at the next
// EOL so that a multi-error program still gets a full diagnostic pass
// (spec.md §7, "compilation accumulates errors rather than stopping at the
// first one").
type Parser struct {
	c    *Cursor
	ctx  Context
	errs []*cerrors.CompilerError
}

// New builds a Parser over source.
func New(source string) *Parser {
	return &Parser{c: NewCursor(lexer.New(source))}
}

// Parse runs the full grammar over the token stream and returns the
// resulting Program together with every diagnostic collected along the
// way (lexical errors first, then syntax errors in source order).
func Parse(source string) (*ast.Program, []*cerrors.CompilerError) {
	p := New(source)
	prog := p.parseProgram()
	return prog, p.errs
}

func (p *Parser) fail(err *cerrors.CompilerError) {
	p.errs = append(p.errs, err)
}

// cur/peek are thin wrappers kept close to the teacher's curToken/peekToken
// naming even though Cursor itself is index-based.
func (p *Parser) cur() PToken     { return p.c.Current() }
func (p *Parser) peek(n int) PToken { return p.c.Peek(n) }
func (p *Parser) advance() PToken { return p.c.Advance() }

func (p *Parser) at(tt token.TokenType) bool { return p.cur().Tok.Type == tt }

func (p *Parser) atEOF() bool { return p.at(token.EOF) }

// skipSeparators consumes COLON and EOL tokens between statements.
func (p *Parser) skipSeparators() {
	for p.at(token.COLON) || p.at(token.EOL) {
		p.advance()
	}
}

// expectStatementEnd checks that the current token is COLON, EOL, or EOF,
// the only three things legally allowed to follow a complete statement.
func (p *Parser) expectStatementEnd() *cerrors.CompilerError {
	switch p.cur().Tok.Type {
	case token.COLON, token.EOL, token.EOF:
		return nil
	default:
		return eolExpected(p.cur())
	}
}

// resynchronize advances past tokens until the next statement boundary, so
// one bad statement does not cascade into spurious errors for the rest of
// the program.
func (p *Parser) resynchronize() {
	for !p.at(token.COLON) && !p.at(token.EOL) && !p.atEOF() {
		p.advance()
	}
}

// readIdentToken reads one IDENT token (a possibly-dotted name without a
// trailing sigil) without validating it; parseNameExpr applies the length
// check. The sigil, if any, is read by the caller since its legality
// depends on context (compact-declaration DIM vs AS-clause DIM, etc).
func (p *Parser) readIdentToken() (token.Token, bool) {
	if !p.at(token.IDENT) {
		return token.Token{}, false
	}
	t := p.cur().Tok
	p.advance()
	return t, true
}

// parseQualifier reads an optional trailing sigil token immediately
// following an identifier, with no intervening whitespace (sigils bind
// tightly to their identifier).
func (p *Parser) parseQualifier() names.Qualifier {
	pt := p.cur()
	if pt.LeadingSpace {
		return names.QNone
	}
	switch pt.Tok.Type {
	case token.SIGIL_SINGLE:
		p.advance()
		return names.QSingle
	case token.SIGIL_DOUBLE:
		p.advance()
		return names.QDouble
	case token.SIGIL_STRING:
		p.advance()
		return names.QString
	case token.SIGIL_INT:
		p.advance()
		return names.QInteger
	case token.SIGIL_LONG:
		p.advance()
		return names.QLong
	default:
		return names.QNone
	}
}

// parseNameExpr parses a dotted-or-plain identifier reference into either
// an *ast.Identifier (no dots) or an *ast.PropertyChain (one or more
// dots), applying the trailing-sigil-on-last-component-only rule of
// spec.md §3.
func (p *Parser) parseNameExpr() (ast.Expression, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	tok, ok := p.readIdentToken()
	if !ok {
		return nil, nil
	}
	if len(tok.Literal) > maxIdentifierLength {
		return nil, identifierTooLong(tok.Pos, tok.Literal)
	}

	parts := names.Split(tok.Literal)
	q := p.parseQualifier()

	if len(parts.Steps) == 0 {
		id := &ast.Identifier{Name: names.NewQualified(parts.Root, q)}
		id.SetPos(startPos)
		return id, nil
	}

	steps := make([]names.Name, len(parts.Steps))
	for i, s := range parts.Steps {
		if i == len(parts.Steps)-1 {
			steps[i] = names.NewQualified(s, q)
		} else {
			steps[i] = names.NewBareOnly(s)
		}
	}
	chain := &ast.PropertyChain{Root: parts.Root, Steps: steps}
	chain.SetPos(startPos)
	return chain, nil
}
