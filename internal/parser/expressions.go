package parser

import (
	"strconv"
	"strings"

	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/names"
	"github.com/basiclang/basiccomp/internal/token"
)

// parseExpression parses a full expression via precedence climbing, then
// applies the unary-minus literal-folding rewrite described in spec.md
// §4.3: "MINUS immediately in front of a numeric literal, not crossing a
// parenthesis boundary, folds into the literal itself rather than staying
// a UnaryExpr node." Folding happens once per top-level call, bottom-up,
// after the tree is built, rather than threaded through every precedence
// level — simpler to verify, and it only ever touches UnaryExpr(MINUS,
// <literal>) nodes, which parenthesization already prevents from forming.
func (p *Parser) parseExpression() (ast.Expression, *cerrors.CompilerError) {
	e, err := p.parseBinary(ast.PrecLowest)
	if err != nil {
		return nil, err
	}
	return foldUnaryMinus(e), nil
}

// parseBinary implements precedence climbing over PrecedenceOf, honoring
// the whitespace discipline of AND/OR/MOD (they only bind as operators
// when whitespace - or a parenthesis on at least one side - separates them
// from their operands; spec.md §4.3 Scenario E) and treating comparison
// operators as non-associative: a second comparison at the same
// expression can only appear if the first one was parenthesized.
func (p *Parser) parseBinary(minPrec int) (ast.Expression, *cerrors.CompilerError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	sawComparison := false
	for {
		opTok := p.cur()
		if !isBinaryOperator(opTok.Tok.Type) {
			return left, nil
		}
		if isKeywordOperator(opTok.Tok.Type) && !p.keywordOperatorAllowed(opTok) {
			return left, nil
		}
		prec := ast.PrecedenceOf(opTok.Tok.Type)
		if prec < minPrec || prec == ast.PrecLowest {
			return left, nil
		}
		if ast.IsComparison(opTok.Tok.Type) {
			if sawComparison {
				return left, nil
			}
			sawComparison = true
		}

		p.advance()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		bin := &ast.BinaryExpr{Op: opTok.Tok.Type, Left: left, Right: right}
		bin.SetPos(opTok.Tok.Pos)
		left = bin
	}
}

func isBinaryOperator(tt token.TokenType) bool {
	switch tt {
	case token.OR, token.AND, token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE,
		token.PLUS, token.MINUS, token.MOD, token.ASTERISK, token.SLASH:
		return true
	default:
		return false
	}
}

func isKeywordOperator(tt token.TokenType) bool {
	return tt == token.AND || tt == token.OR || tt == token.MOD
}

// keywordOperatorAllowed checks the whitespace-or-parenthesization rule on
// both sides of the operator. Before it: leading whitespace or a closing
// parenthesis ("1AND 2" lexes as DIGITS "1" then AND with no space, and is
// rejected). After it: whitespace or an opening parenthesis ("X AND-1" is
// rejected likewise).
func (p *Parser) keywordOperatorAllowed(opTok PToken) bool {
	before := opTok.LeadingSpace || p.peek(-1).Tok.Type == token.RPAREN
	next := p.peek(1)
	return before && (next.LeadingSpace || next.Tok.Type == token.LPAREN)
}

// parseUnary handles NOT and unary MINUS, which bind tighter than any
// binary operator (spec.md §4.3).
func (p *Parser) parseUnary() (ast.Expression, *cerrors.CompilerError) {
	pt := p.cur()
	if pt.Tok.Type == token.NOT || pt.Tok.Type == token.MINUS {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		u := &ast.UnaryExpr{Op: pt.Tok.Type, Operand: operand}
		u.SetPos(pt.Tok.Pos)
		return u, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression and, if immediately followed by
// "(", a parenthesized argument list: this is FunctionCallOrIndex,
// ambiguous with array indexing until the linter resolves it.
func (p *Parser) parsePostfix() (ast.Expression, *cerrors.CompilerError) {
	prim, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if prim == nil {
		return nil, nil
	}
	if p.at(token.LPAREN) {
		switch prim.(type) {
		case *ast.Identifier, *ast.PropertyChain:
			startPos := prim.Pos()
			p.advance()
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			if !p.at(token.RPAREN) {
				return nil, expected(p.cur(), "')'")
			}
			p.advance()
			call := &ast.FunctionCallOrIndex{Name: prim, Args: args}
			call.SetPos(startPos)
			return call, nil
		}
	}
	return prim, nil
}

// parseArgList parses a comma-separated expression list, possibly empty.
func (p *Parser) parseArgList() ([]ast.Expression, *cerrors.CompilerError) {
	var args []ast.Expression
	if p.at(token.RPAREN) {
		return args, nil
	}
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

// parsePrimary parses a literal, identifier/property-chain reference, or a
// parenthesized expression. Returns (nil, nil) when the current token
// cannot start an expression at all (Incomplete in combinator-kernel
// terms), distinct from a non-nil error.
func (p *Parser) parsePrimary() (ast.Expression, *cerrors.CompilerError) {
	pt := p.cur()
	switch pt.Tok.Type {
	case token.LPAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, expected(p.cur(), "expression")
		}
		if !p.at(token.RPAREN) {
			return nil, expected(p.cur(), "')'")
		}
		p.advance()
		paren := &ast.ParenExpr{Inner: inner}
		paren.SetPos(pt.Tok.Pos)
		return paren, nil

	case token.DIGITS:
		return p.parseNumericLiteral(pt, false)

	case token.SIGIL_DOUBLE:
		// The lexer has no dedicated '#' token: "#1" as a file-handle
		// literal is SIGIL_DOUBLE immediately (no intervening whitespace)
		// followed by DIGITS, recognized here because a bare SIGIL_DOUBLE
		// can never otherwise start an expression (it is only ever a
		// trailing qualifier on an identifier or numeric literal).
		if p.peek(1).Tok.Type != token.DIGITS || p.peek(1).LeadingSpace {
			return nil, nil
		}
		p.advance()
		digitsTok := p.cur()
		lit, err := p.parseNumericLiteral(digitsTok, true)
		if err != nil {
			return nil, err
		}
		return lit, nil

	case token.HEXDIGITS:
		p.advance()
		return p.intLiteralFromRadix(pt.Tok, 16, "&H")

	case token.OCTDIGITS:
		p.advance()
		return p.intLiteralFromRadix(pt.Tok, 8, "&O")

	case token.STRINGBODY:
		p.advance()
		s := &ast.StringLiteral{Value: pt.Tok.Literal}
		s.SetPos(pt.Tok.Pos)
		return s, nil

	case token.TRUE_, token.FALSE_:
		p.advance()
		v := int32(0)
		if pt.Tok.Type == token.TRUE_ {
			v = -1
		}
		lit := &ast.IntegerLiteral{Value: v}
		lit.SetPos(pt.Tok.Pos)
		return lit, nil

	case token.IDENT:
		return p.parseNameExpr()

	case token.STRING:
		// STRING is both the AS-clause type keyword and the prefix of the
		// STRING$(n, c) built-in, so the lexer hands the parser a STRING
		// token here instead of IDENT; treat it as a plain identifier
		// reference when it appears in expression position.
		p.advance()
		q := p.parseQualifier()
		id := &ast.Identifier{Name: names.NewQualified(names.NewBareName(pt.Tok.Literal), q)}
		id.SetPos(pt.Tok.Pos)
		return id, nil

	default:
		return nil, nil
	}
}

// parseNumericLiteral parses a DIGITS token, possibly followed by a "."
// fractional part and/or a trailing type sigil, choosing the narrowest
// literal node that fits (spec.md §4.3: integer literals overflowing
// 32767 promote to LongLiteral, and still further to DoubleLiteral).
func (p *Parser) parseNumericLiteral(pt PToken, fileHandle bool) (ast.Expression, *cerrors.CompilerError) {
	startPos := pt.Tok.Pos
	whole := pt.Tok.Literal
	p.advance()

	isFloat := false
	frac := ""
	if p.at(token.DOT) && !p.cur().LeadingSpace {
		isFloat = true
		p.advance()
		if p.at(token.DIGITS) && !p.cur().LeadingSpace {
			frac = p.cur().Tok.Literal
			p.advance()
		}
	}

	q := p.parseQualifier()
	if fileHandle {
		n, err := strconv.ParseInt(whole, 10, 32)
		if err != nil {
			return nil, syntaxErrorAt(startPos, "invalid file number %q", whole)
		}
		lit := &ast.IntegerLiteral{Value: int32(n), HasFileHandle: true}
		lit.SetPos(startPos)
		return lit, nil
	}

	if isFloat {
		text := whole + "." + frac
		return p.floatLiteral(startPos, text, q)
	}

	switch q {
	case names.QSingle:
		return p.floatLiteral(startPos, whole, q)
	case names.QDouble:
		return p.floatLiteral(startPos, whole, q)
	case names.QLong:
		n, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return nil, syntaxErrorAt(startPos, "invalid integer literal %q", whole)
		}
		lit := &ast.LongLiteral{Value: n}
		lit.SetPos(startPos)
		return lit, nil
	case names.QInteger:
		n, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return nil, syntaxErrorAt(startPos, "invalid integer literal %q", whole)
		}
		lit := &ast.IntegerLiteral{Value: int32(n)}
		lit.SetPos(startPos)
		return lit, nil
	case names.QString:
		return nil, syntaxErrorAt(startPos, "a string sigil cannot qualify a numeric literal")
	}

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return p.floatLiteral(startPos, whole, names.QDouble)
	}
	if n >= -32768 && n <= 32767 {
		lit := &ast.IntegerLiteral{Value: int32(n)}
		lit.SetPos(startPos)
		return lit, nil
	}
	if n >= -2147483648 && n <= 2147483647 {
		lit := &ast.LongLiteral{Value: n}
		lit.SetPos(startPos)
		return lit, nil
	}
	return p.floatLiteral(startPos, whole, names.QDouble)
}

// floatLiteral parses text as a float and wraps it as SingleLiteral unless
// q explicitly requests QDouble.
func (p *Parser) floatLiteral(pos token.Position, text string, q names.Qualifier) (ast.Expression, *cerrors.CompilerError) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, syntaxErrorAt(pos, "invalid numeric literal %q", text)
	}
	if q == names.QDouble {
		lit := &ast.DoubleLiteral{Value: f}
		lit.SetPos(pos)
		return lit, nil
	}
	lit := &ast.SingleLiteral{Value: float32(f)}
	lit.SetPos(pos)
	return lit, nil
}

// intLiteralFromRadix parses &H/&O literals. The lexer's token literal
// holds only the digits after "&H"/"&O"; TrimPrefix leaves such text as is.
func (p *Parser) intLiteralFromRadix(tok token.Token, base int, prefix string) (ast.Expression, *cerrors.CompilerError) {
	digits := strings.TrimPrefix(strings.ToUpper(tok.Literal), prefix)
	n, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return nil, syntaxErrorAt(tok.Pos, "invalid literal %q", tok.Literal)
	}
	if n >= -32768 && n <= 32767 {
		lit := &ast.IntegerLiteral{Value: int32(n)}
		lit.SetPos(tok.Pos)
		return lit, nil
	}
	lit := &ast.LongLiteral{Value: n}
	lit.SetPos(tok.Pos)
	return lit, nil
}

// foldUnaryMinus rewrites UnaryExpr(MINUS, <numeric literal>) into the
// literal itself negated, recursing into UnaryExpr, BinaryExpr and
// FunctionCallOrIndex operands. A ParenExpr is returned unchanged, so a
// minus never folds across a parenthesis (spec.md §4.3).
func foldUnaryMinus(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case *ast.UnaryExpr:
		n.Operand = foldUnaryMinus(n.Operand)
		if n.Op != token.MINUS {
			return n
		}
		switch lit := n.Operand.(type) {
		case *ast.IntegerLiteral:
			neg := &ast.IntegerLiteral{Value: -lit.Value}
			neg.SetPos(n.Pos())
			return neg
		case *ast.LongLiteral:
			neg := &ast.LongLiteral{Value: -lit.Value}
			neg.SetPos(n.Pos())
			return neg
		case *ast.SingleLiteral:
			neg := &ast.SingleLiteral{Value: -lit.Value}
			neg.SetPos(n.Pos())
			return neg
		case *ast.DoubleLiteral:
			neg := &ast.DoubleLiteral{Value: -lit.Value}
			neg.SetPos(n.Pos())
			return neg
		default:
			return n
		}
	case *ast.BinaryExpr:
		n.Left = foldUnaryMinus(n.Left)
		n.Right = foldUnaryMinus(n.Right)
		return n
	case *ast.FunctionCallOrIndex:
		for i, a := range n.Args {
			n.Args[i] = foldUnaryMinus(a)
		}
		return n
	default:
		return e
	}
}
