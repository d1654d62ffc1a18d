package parser

import (
	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/token"
)

// parseConst parses "CONST name = expr" into one ConstDecl. It reads a
// single name = expr pair; a comma-separated list of several constants on
// one CONST line is not accepted.
func (p *Parser) parseConst() (ast.Statement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // CONST
	nameExpr, err := p.parseNameExpr()
	if err != nil {
		return nil, err
	}
	id, ok := nameExpr.(*ast.Identifier)
	if !ok {
		return nil, syntaxErrorAt(startPos, "CONST name cannot be dotted")
	}
	if !p.at(token.EQ) {
		return nil, expected(p.cur(), "'='")
	}
	p.advance()
	val, verr := p.parseExpression()
	if verr != nil {
		return nil, verr
	}
	if val == nil {
		return nil, expected(p.cur(), "constant expression")
	}
	c := &ast.ConstDecl{Name: id, Value: val}
	c.SetPos(startPos)
	return c, nil
}

func (p *Parser) parseData() (ast.Statement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // DATA
	var values []ast.Expression
	for {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, expected(p.cur(), "constant")
		}
		values = append(values, v)
		if !p.at(token.COMMA) {
			break
		}
		p.advance()
	}
	d := &ast.DataStatement{Values: values}
	d.SetPos(startPos)
	return d, nil
}

func (p *Parser) parseRead() (ast.Statement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // READ
	var targets []ast.Expression
	for {
		t, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, expected(p.cur(), "variable")
		}
		targets = append(targets, t)
		if !p.at(token.COMMA) {
			break
		}
		p.advance()
	}
	r := &ast.ReadStatement{Targets: targets}
	r.SetPos(startPos)
	return r, nil
}

// parseTypeExpr parses the AS-clause type annotation: a built-in qualifier
// keyword, STRING * n, or a user-defined type name.
func (p *Parser) parseTypeExpr() (*ast.TypeExpr, *cerrors.CompilerError) {
	pt := p.cur()
	switch pt.Tok.Type {
	case token.STRING:
		p.advance()
		te := &ast.TypeExpr{BuiltinQualifier: "STRING"}
		te.SetPos(pt.Tok.Pos)
		if p.at(token.ASTERISK) {
			p.advance()
			n, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			te.FixedLength = n
		}
		return te, nil
	case token.IDENT:
		switch upperLiteral(pt.Tok.Literal) {
		case "SINGLE", "DOUBLE", "INTEGER", "LONG":
			p.advance()
			te := &ast.TypeExpr{BuiltinQualifier: upperLiteral(pt.Tok.Literal)}
			te.SetPos(pt.Tok.Pos)
			return te, nil
		default:
			p.advance()
			te := &ast.TypeExpr{UserType: pt.Tok.Literal}
			te.SetPos(pt.Tok.Pos)
			return te, nil
		}
	default:
		return nil, expected(pt, "type name")
	}
}

// parseDim parses both DIM and REDIM, selected by redim.
func (p *Parser) parseDim(redim bool) (ast.Statement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // DIM or REDIM

	preserve := false
	if redim && p.at(token.IDENT) && upperLiteral(p.cur().Tok.Literal) == "PRESERVE" {
		preserve = true
		p.advance()
	}

	shared := false
	if !redim && p.at(token.SHARED) {
		shared = true
		p.advance()
	}

	var vars []*ast.DimVar
	for {
		v, err := p.parseDimVar(preserve)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
		if !p.at(token.COMMA) {
			break
		}
		p.advance()
	}

	d := &ast.DimStatement{Vars: vars, Redim: redim, Shared: shared}
	d.SetPos(startPos)
	return d, nil
}

func (p *Parser) parseDimVar(preserve bool) (*ast.DimVar, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	nameExpr, err := p.parseNameExpr()
	if err != nil {
		return nil, err
	}
	id, ok := nameExpr.(*ast.Identifier)
	if !ok {
		return nil, syntaxErrorAt(startPos, "DIM variable name cannot be dotted")
	}

	v := &ast.DimVar{Identifier: id, Preserve: preserve}
	v.SetPos(startPos)

	if p.at(token.LPAREN) {
		p.advance()
		v.IsArray = true
		for {
			bound, berr := p.parseArrayBound()
			if berr != nil {
				return nil, berr
			}
			v.Bounds = append(v.Bounds, bound)
			if !p.at(token.COMMA) {
				break
			}
			p.advance()
		}
		if !p.at(token.RPAREN) {
			return nil, expected(p.cur(), "')'")
		}
		p.advance()
	}

	if p.at(token.AS) {
		p.advance()
		te, terr := p.parseTypeExpr()
		if terr != nil {
			return nil, terr
		}
		v.AsType = te
	}

	return v, nil
}

func (p *Parser) parseArrayBound() (ast.ArrayBound, *cerrors.CompilerError) {
	first, err := p.parseExpression()
	if err != nil {
		return ast.ArrayBound{}, err
	}
	if first == nil {
		return ast.ArrayBound{}, expected(p.cur(), "array bound")
	}
	if p.at(token.TO) {
		p.advance()
		upper, uerr := p.parseExpression()
		if uerr != nil {
			return ast.ArrayBound{}, uerr
		}
		return ast.ArrayBound{Lower: first, Upper: upper}, nil
	}
	return ast.ArrayBound{Upper: first}, nil
}

// parseParamList parses a DECLARE/SUB/FUNCTION formal parameter list
// between parentheses (required even when empty, "()").
func (p *Parser) parseParamList() ([]*ast.Parameter, *cerrors.CompilerError) {
	if !p.at(token.LPAREN) {
		return nil, expected(p.cur(), "'('")
	}
	p.advance()
	var params []*ast.Parameter
	if p.at(token.RPAREN) {
		p.advance()
		return params, nil
	}
	for {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.at(token.COMMA) {
			break
		}
		p.advance()
	}
	if !p.at(token.RPAREN) {
		return nil, expected(p.cur(), "')'")
	}
	p.advance()
	return params, nil
}

func (p *Parser) parseParam() (*ast.Parameter, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	mode := ast.ByRef
	if p.at(token.IDENT) && upperLiteral(p.cur().Tok.Literal) == "BYVAL" {
		mode = ast.ByVal
		p.advance()
	}
	nameExpr, err := p.parseNameExpr()
	if err != nil {
		return nil, err
	}
	id, ok := nameExpr.(*ast.Identifier)
	if !ok {
		return nil, syntaxErrorAt(startPos, "parameter name cannot be dotted")
	}
	param := &ast.Parameter{Name: id, Mode: mode}
	param.SetPos(startPos)
	if p.at(token.LPAREN) {
		p.advance()
		if !p.at(token.RPAREN) {
			return nil, expected(p.cur(), "')'")
		}
		p.advance()
	}
	if p.at(token.AS) {
		p.advance()
		te, terr := p.parseTypeExpr()
		if terr != nil {
			return nil, terr
		}
		param.Type = te
	}
	return param, nil
}

// parseDeclare parses a forward "DECLARE SUB name(...)" or "DECLARE
// FUNCTION name(...) AS type".
func (p *Parser) parseDeclare() (ast.GlobalStatement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // DECLARE
	switch p.cur().Tok.Type {
	case token.SUB:
		p.advance()
		nameTok, ok := p.readIdentToken()
		if !ok {
			return nil, expected(p.cur(), "SUB name")
		}
		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}
		d := &ast.SubDecl{Name: nameTok.Literal, Params: params}
		d.SetPos(startPos)
		return d, nil
	case token.FUNCTION:
		p.advance()
		nameExpr, err := p.parseNameExpr()
		if err != nil {
			return nil, err
		}
		id, ok := nameExpr.(*ast.Identifier)
		if !ok {
			return nil, syntaxErrorAt(startPos, "FUNCTION name cannot be dotted")
		}
		params, perr := p.parseParamList()
		if perr != nil {
			return nil, perr
		}
		var retType *ast.TypeExpr
		if p.at(token.AS) {
			p.advance()
			retType, err = p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
		}
		d := &ast.FunctionDecl{Name: id.Name.Base.String(), Params: params, ReturnType: retType}
		d.SetPos(startPos)
		return d, nil
	default:
		return nil, expected(p.cur(), "SUB or FUNCTION")
	}
}

// parseSubImplementation parses a full "SUB name(...) [STATIC] ... END SUB".
func (p *Parser) parseSubImplementation() (ast.GlobalStatement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // SUB
	nameTok, ok := p.readIdentToken()
	if !ok {
		return nil, expected(p.cur(), "SUB name")
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	isStatic := false
	if p.at(token.STATIC) {
		isStatic = true
		p.advance()
	}
	if end := p.expectStatementEnd(); end != nil {
		return nil, end
	}

	bodyCtx := p.ctx.enterSubOrFunction(false)
	saved := p.ctx
	p.ctx = bodyCtx
	body := p.parseStatementList(token.END)
	p.ctx = saved

	if !p.at(token.END) || p.peek(1).Tok.Type != token.SUB {
		return nil, expected(p.cur(), "END SUB")
	}
	p.advance()
	p.advance()

	s := &ast.SubImplementation{Name: nameTok.Literal, Params: params, Body: body, IsStatic: isStatic}
	s.SetPos(startPos)
	return s, nil
}

// parseFunctionImplementation parses a full "FUNCTION name(...) [AS type]
// [STATIC] ... END FUNCTION".
func (p *Parser) parseFunctionImplementation() (ast.GlobalStatement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // FUNCTION
	nameExpr, err := p.parseNameExpr()
	if err != nil {
		return nil, err
	}
	id, ok := nameExpr.(*ast.Identifier)
	if !ok {
		return nil, syntaxErrorAt(startPos, "FUNCTION name cannot be dotted")
	}
	params, perr := p.parseParamList()
	if perr != nil {
		return nil, perr
	}
	var retType *ast.TypeExpr
	if p.at(token.AS) {
		p.advance()
		retType, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}
	isStatic := false
	if p.at(token.STATIC) {
		isStatic = true
		p.advance()
	}
	if end := p.expectStatementEnd(); end != nil {
		return nil, end
	}

	bodyCtx := p.ctx.enterSubOrFunction(true)
	saved := p.ctx
	p.ctx = bodyCtx
	body := p.parseStatementList(token.END)
	p.ctx = saved

	if !p.at(token.END) || p.peek(1).Tok.Type != token.FUNCTION {
		return nil, expected(p.cur(), "END FUNCTION")
	}
	p.advance()
	p.advance()

	f := &ast.FunctionImplementation{Name: id.Name.Base.String(), Params: params, ReturnType: retType, Body: body, IsStatic: isStatic}
	f.SetPos(startPos)
	return f, nil
}

// parseTypeDefinition parses "TYPE name ... field AS type ... END TYPE".
func (p *Parser) parseTypeDefinition() (ast.GlobalStatement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // TYPE
	nameTok, ok := p.readIdentToken()
	if !ok {
		return nil, expected(p.cur(), "TYPE name")
	}
	if end := p.expectStatementEnd(); end != nil {
		return nil, end
	}
	p.skipSeparators()

	var fields []*ast.FieldDecl
	for !p.at(token.END) && !p.atEOF() {
		fieldStart := p.cur().Tok.Pos
		fNameExpr, ferr := p.parseNameExpr()
		if ferr != nil {
			return nil, ferr
		}
		fid, fok := fNameExpr.(*ast.Identifier)
		if !fok {
			return nil, syntaxErrorAt(fieldStart, "field name cannot be dotted")
		}
		if !p.at(token.AS) {
			return nil, expected(p.cur(), "AS")
		}
		p.advance()
		fType, terr := p.parseTypeExpr()
		if terr != nil {
			return nil, terr
		}
		fd := &ast.FieldDecl{Name: fid, Type: fType}
		fd.SetPos(fieldStart)
		fields = append(fields, fd)
		if end := p.expectStatementEnd(); end != nil {
			return nil, end
		}
		p.skipSeparators()
	}
	if !p.at(token.END) || p.peek(1).Tok.Type != token.TYPE {
		return nil, expected(p.cur(), "END TYPE")
	}
	p.advance()
	p.advance()

	td := &ast.TypeDefinition{Name: nameTok.Literal, Fields: fields}
	td.SetPos(startPos)
	return td, nil
}

// parseDefType parses DEFINT/DEFLNG/DEFSNG/DEFDBL/DEFSTR letter-range lists.
func (p *Parser) parseDefType() (ast.GlobalStatement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	kindTok := p.cur().Tok
	p.advance()

	qualifier := map[token.TokenType]string{
		token.DEFINT: "INT",
		token.DEFLNG: "LNG",
		token.DEFSNG: "SNG",
		token.DEFDBL: "DBL",
		token.DEFSTR: "STR",
	}[kindTok.Type]

	var ranges []ast.LetterRange
	for {
		from, ferr := p.expectSingleLetter()
		if ferr != nil {
			return nil, ferr
		}
		to := from
		if p.at(token.MINUS) {
			p.advance()
			t, terr := p.expectSingleLetter()
			if terr != nil {
				return nil, terr
			}
			to = t
		}
		ranges = append(ranges, ast.LetterRange{From: from, To: to})
		if !p.at(token.COMMA) {
			break
		}
		p.advance()
	}

	d := &ast.DefTypeStatement{Qualifier: qualifier, Ranges: ranges}
	d.SetPos(startPos)
	return d, nil
}

func (p *Parser) expectSingleLetter() (byte, *cerrors.CompilerError) {
	pt := p.cur()
	if pt.Tok.Type != token.IDENT || len(pt.Tok.Literal) != 1 {
		return 0, expected(pt, "a single letter")
	}
	p.advance()
	return upperLiteral(pt.Tok.Literal)[0], nil
}
