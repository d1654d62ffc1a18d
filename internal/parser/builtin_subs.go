package parser

import (
	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/builtins"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/token"
)

// parsePrint parses "PRINT [#filehandle,] [expr] [(;|,) expr ...] [;|,]".
func (p *Parser) parsePrint() (ast.Statement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // PRINT

	var fileHandle ast.Expression
	if p.at(token.SIGIL_DOUBLE) && p.peek(1).Tok.Type == token.DIGITS && !p.peek(1).LeadingSpace {
		fh, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fileHandle = fh
		if p.at(token.COMMA) {
			p.advance()
		}
	}

	items, err := p.parsePrintItems()
	if err != nil {
		return nil, err
	}

	s := &ast.PrintStatement{FileHandle: fileHandle, Items: items}
	s.SetPos(startPos)
	return s, nil
}

func (p *Parser) parsePrintItems() ([]ast.PrintItem, *cerrors.CompilerError) {
	var items []ast.PrintItem
	for {
		if p.atStatementEnd() {
			return items, nil
		}
		if p.at(token.SEMICOLON) || p.at(token.COMMA) {
			sep := byte(';')
			if p.at(token.COMMA) {
				sep = ','
			}
			p.advance()
			if len(items) > 0 {
				items[len(items)-1].Sep = sep
			}
			continue
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if expr == nil {
			return nil, expected(p.cur(), "expression")
		}
		sep := byte(0)
		switch {
		case p.at(token.SEMICOLON):
			sep = ';'
			p.advance()
		case p.at(token.COMMA):
			sep = ','
			p.advance()
		}
		items = append(items, ast.PrintItem{Expr: expr, Sep: sep})
	}
}

// parseBuiltinSub dispatches a built-in sub call by its already-resolved
// identity. COLOR, LOCATE, and WIDTH get the presence-flag argument
// encoding spec.md §6 describes (the linter and generator see the
// already-encoded argument list, never the surface syntax); every other
// built-in sub is a plain comma-separated argument list, parenthesized or
// not.
// parseBuiltinSub assumes the caller has already advanced past the name
// token(s) (one for most builtins, two for the space-separated ones like
// "DEF SEG"); nameTok is kept only for its position.
func (p *Parser) parseBuiltinSub(sub builtins.Sub, nameTok token.Token) (ast.Statement, *cerrors.CompilerError) {
	switch sub {
	case builtins.SubColor:
		return p.parseFlaggedBuiltin(nameTok, "COLOR", 2)
	case builtins.SubLocate:
		return p.parseFlaggedBuiltin(nameTok, "LOCATE", 3)
	case builtins.SubWidth:
		// WIDTH gives each value its own presence flag: flag, value, flag,
		// value (no arguments at all for a bare WIDTH).
		stmt, err := p.parseFlaggedBuiltin(nameTok, "WIDTH", 2)
		if err != nil {
			return nil, err
		}
		b := stmt.(*ast.BuiltinSubStatement)
		flags := int(b.Args[0].(*ast.IntegerLiteral).Value)
		var args []ast.Expression
		for i, slot := range b.Args[1:] {
			args = append(args, flagsLiteral(nameTok.Pos, (flags>>uint(i))&1), slot)
		}
		b.Args = args
		return b, nil
	}

	var args []ast.Expression
	var err *cerrors.CompilerError
	if p.at(token.LPAREN) {
		p.advance()
		args, err = p.parseArgList()
		if err != nil {
			return nil, err
		}
		if !p.at(token.RPAREN) {
			return nil, expected(p.cur(), "')'")
		}
		p.advance()
	} else if !p.atStatementEnd() {
		args, err = p.parseBareArgList()
		if err != nil {
			return nil, err
		}
	}

	b := &ast.BuiltinSubStatement{Name: builtins.SubSig(sub).Name, Args: args}
	b.SetPos(nameTok.Pos)
	return b, nil
}

// parseFlaggedBuiltin parses up to maxSlots comma-separated, individually
// optional arguments (a blank slot is written as two adjacent commas, or
// by simply stopping early) and prepends a presence-flags IntegerLiteral:
// bit i of the flags value is set iff slot i was supplied. Omitted slots
// still occupy a position in the encoded argument list as a zero
// placeholder, so the generator's by-position lowering never has to
// special-case a missing argument.
func (p *Parser) parseFlaggedBuiltin(nameTok token.Token, name string, maxSlots int) (ast.Statement, *cerrors.CompilerError) {
	var slots []ast.Expression
	flags := 0

	if !p.atStatementEnd() {
		for i := 0; i < maxSlots; i++ {
			if p.atStatementEnd() {
				break
			}
			if p.at(token.COMMA) {
				slots = append(slots, zeroIntLiteral(nameTok.Pos))
			} else {
				e, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				if e == nil {
					return nil, expected(p.cur(), "expression")
				}
				slots = append(slots, e)
				flags |= 1 << uint(i)
			}
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}

	args := make([]ast.Expression, 0, len(slots)+1)
	args = append(args, flagsLiteral(nameTok.Pos, flags))
	args = append(args, slots...)

	b := &ast.BuiltinSubStatement{Name: name, Args: args}
	b.SetPos(nameTok.Pos)
	return b, nil
}

func zeroIntLiteral(pos token.Position) ast.Expression {
	lit := &ast.IntegerLiteral{Value: 0}
	lit.SetPos(pos)
	return lit
}

func flagsLiteral(pos token.Position, flags int) ast.Expression {
	lit := &ast.IntegerLiteral{Value: int32(flags)}
	lit.SetPos(pos)
	return lit
}
