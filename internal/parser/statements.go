package parser

import (
	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/builtins"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/token"
)

// parseStatementList parses statements up to (but not including) one of
// the given terminator keywords, consuming separators between them. Used
// by every block construct (IF/FOR/WHILE/SUB/FUNCTION/TYPE bodies).
func (p *Parser) parseStatementList(terminators ...token.TokenType) []ast.Statement {
	var out []ast.Statement
	for {
		p.skipSeparators()
		if p.atEOF() || p.atAny(terminators...) {
			return out
		}
		stmt, err := p.parseStatement()
		if err != nil {
			p.fail(err)
			p.resynchronize()
			continue
		}
		if stmt == nil {
			p.fail(expected(p.cur(), "statement"))
			p.resynchronize()
			continue
		}
		out = append(out, stmt)
		if end := p.expectStatementEnd(); end != nil {
			p.fail(end)
			p.resynchronize()
		}
	}
}

func (p *Parser) atAny(types ...token.TokenType) bool {
	for _, tt := range types {
		if p.at(tt) {
			return true
		}
	}
	return false
}

// parseStatement parses exactly one statement, not including its
// terminating separator. Returns (nil, nil) if the current token cannot
// start a statement at all.
func (p *Parser) parseStatement() (ast.Statement, *cerrors.CompilerError) {
	pt := p.cur()

	// "Label:" recognized positionally: an identifier or digit run
	// immediately followed by COLON, at the start of a statement.
	if (pt.Tok.Type == token.IDENT || pt.Tok.Type == token.DIGITS) && p.peek(1).Tok.Type == token.COLON {
		p.advance()
		p.advance()
		lbl := &ast.LabelStatement{Name: pt.Tok.Literal}
		lbl.SetPos(pt.Tok.Pos)
		return lbl, nil
	}

	switch pt.Tok.Type {
	case token.COMMENT:
		p.advance()
		c := &ast.CommentStatement{Text: pt.Tok.Literal}
		c.SetPos(pt.Tok.Pos)
		return c, nil

	case token.PRINT:
		return p.parsePrint()

	case token.GOTO:
		p.advance()
		lbl, err := p.expectLabelRef()
		if err != nil {
			return nil, err
		}
		g := &ast.GotoStatement{Label: lbl}
		g.SetPos(pt.Tok.Pos)
		return g, nil

	case token.GOSUB:
		p.advance()
		lbl, err := p.expectLabelRef()
		if err != nil {
			return nil, err
		}
		g := &ast.GosubStatement{Label: lbl}
		g.SetPos(pt.Tok.Pos)
		return g, nil

	case token.RETURN:
		p.advance()
		r := &ast.ReturnStatement{}
		r.SetPos(pt.Tok.Pos)
		return r, nil

	case token.ON:
		return p.parseOnError()

	case token.RESUME:
		return p.parseResume()

	case token.EXIT:
		return p.parseExit()

	case token.DIM:
		return p.parseDim(false)

	case token.REDIM:
		return p.parseDim(true)

	case token.CONST:
		return p.parseConst()

	case token.INPUT:
		inputSub, _, _ := builtins.LookupSub("INPUT")
		p.advance()
		return p.parseBuiltinSub(inputSub, pt.Tok)

	case token.IF:
		return p.parseIf()

	case token.SELECT:
		return p.parseSelectCase()

	case token.FOR:
		return p.parseFor()

	case token.WHILE:
		return p.parseWhile()

	case token.IDENT:
		return p.parseAssignmentOrCall()

	default:
		return nil, nil
	}
}

func (p *Parser) expectLabelRef() (string, *cerrors.CompilerError) {
	pt := p.cur()
	if pt.Tok.Type != token.IDENT && pt.Tok.Type != token.DIGITS {
		return "", expected(pt, "label")
	}
	p.advance()
	return pt.Tok.Literal, nil
}

// READ is not a keyword token (spec.md's token set has no RESERVED word
// for it beyond the built-in sub table), so it is dispatched by name like
// any other builtin sub/function identifier inside parseAssignmentOrCall.

// parseAssignmentOrCall handles every statement that begins with a plain
// identifier: an assignment ("X = expr", "A(I) = expr", "Rec.Field =
// expr"), a call to a built-in sub (by table lookup), or a call to a
// user-defined SUB.
func (p *Parser) parseAssignmentOrCall() (ast.Statement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	nameTok := p.cur().Tok

	switch upperLiteral(nameTok.Literal) {
	case "DATA":
		return p.parseData()
	case "READ":
		return p.parseRead()
	case "VIEW":
		if p.peek(1).Tok.Type == token.PRINT {
			p.advance()
			p.advance()
			sub, _, _ := builtins.LookupSub("VIEW PRINT")
			return p.parseBuiltinSub(sub, nameTok)
		}
	case "DEF":
		if p.peek(1).Tok.Type == token.IDENT && upperLiteral(p.peek(1).Tok.Literal) == "SEG" {
			p.advance()
			p.advance()
			sub, _, _ := builtins.LookupSub("DEF SEG")
			return p.parseBuiltinSub(sub, nameTok)
		}
	case "LINE":
		if p.peek(1).Tok.Type == token.INPUT {
			p.advance()
			p.advance()
			sub, _, _ := builtins.LookupSub("LINE INPUT")
			return p.parseBuiltinSub(sub, nameTok)
		}
	}

	if sub, _, ok := builtins.LookupSub(nameTok.Literal); ok {
		p.advance()
		return p.parseBuiltinSub(sub, nameTok)
	}

	target, err := p.parseNameExpr()
	if err != nil {
		return nil, err
	}

	// Bare postfix call args only apply directly after the identifier; if
	// parseNameExpr's caller context needs "(" args it already consumed
	// them as part of a FunctionCallOrIndex via parsePostfix, but
	// parseNameExpr itself never parses "(" - do that here explicitly so
	// "Foo(1, 2)" used as a CALL statement keeps its arg list.
	if p.at(token.LPAREN) {
		switch target.(type) {
		case *ast.Identifier, *ast.PropertyChain:
			p.advance()
			args, aerr := p.parseArgList()
			if aerr != nil {
				return nil, aerr
			}
			if !p.at(token.RPAREN) {
				return nil, expected(p.cur(), "')'")
			}
			p.advance()
			if p.at(token.EQ) {
				return nil, syntaxErrorAt(p.cur().Tok.Pos, "cannot assign to a call expression")
			}
			id, ok := target.(*ast.Identifier)
			if !ok {
				return nil, syntaxErrorAt(startPos, "SUB calls cannot use a dotted name")
			}
			call := &ast.CallStatement{Name: id, Args: args}
			call.SetPos(startPos)
			return call, nil
		}
	}

	if p.at(token.EQ) {
		p.advance()
		value, verr := p.parseExpression()
		if verr != nil {
			return nil, verr
		}
		if value == nil {
			return nil, expected(p.cur(), "expression")
		}
		a := &ast.AssignmentStatement{Target: target, Value: value}
		a.SetPos(startPos)
		return a, nil
	}

	// No parens, no "=": a bare SUB call with space-separated arguments,
	// e.g. "MySub 1, 2".
	id, ok := target.(*ast.Identifier)
	if !ok {
		return nil, eolExpected(p.cur())
	}
	var args []ast.Expression
	if !p.atStatementEnd() {
		args, err = p.parseBareArgList()
		if err != nil {
			return nil, err
		}
	}
	call := &ast.CallStatement{Name: id, Args: args}
	call.SetPos(startPos)
	return call, nil
}

func (p *Parser) atStatementEnd() bool {
	switch p.cur().Tok.Type {
	case token.COLON, token.EOL, token.EOF:
		return true
	default:
		return false
	}
}

// parseBareArgList parses a comma-separated expression list with no
// enclosing parentheses, terminated by a statement boundary - the shape
// every unparenthesized sub call (CALL-less user subs, most built-ins)
// uses.
func (p *Parser) parseBareArgList() ([]ast.Expression, *cerrors.CompilerError) {
	var args []ast.Expression
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if arg == nil {
			return nil, expected(p.cur(), "expression")
		}
		args = append(args, arg)
		if !p.at(token.COMMA) {
			return args, nil
		}
		p.advance()
	}
}
