package parser

import (
	"github.com/basiclang/basiccomp/internal/ast"
	"github.com/basiclang/basiccomp/internal/cerrors"
	"github.com/basiclang/basiccomp/internal/token"
)

// parseIf parses both the single-line form ("IF c THEN stmt : stmt") and
// the block form ("IF c THEN <EOL> ... [ELSEIF ...] [ELSE ...] END IF").
func (p *Parser) parseIf() (ast.Statement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // IF

	var branches []ast.IfBranch
	cond, body, err := p.parseIfBranchHeader()
	if err != nil {
		return nil, err
	}
	branches = append(branches, ast.IfBranch{Cond: cond, Body: body})

	if p.atStatementEnd() {
		// block form
		for p.at(token.ELSEIF) {
			p.advance()
			c, b, eerr := p.parseIfBranchHeader()
			if eerr != nil {
				return nil, eerr
			}
			branches = append(branches, ast.IfBranch{Cond: c, Body: b})
		}
		var elseBody []ast.Statement
		if p.at(token.ELSE) {
			p.advance()
			if end := p.expectStatementEnd(); end != nil {
				return nil, end
			}
			elseBody = p.parseStatementList(token.END)
		}
		if !p.at(token.END) || p.peek(1).Tok.Type != token.IF {
			return nil, expected(p.cur(), "END IF")
		}
		p.advance()
		p.advance()
		ifs := &ast.IfStatement{Branches: branches, Else: elseBody}
		ifs.SetPos(startPos)
		return ifs, nil
	}

	// single-line form: the single statement already parsed above is the
	// entire THEN body, optionally followed by "ELSE stmt".
	if p.at(token.ELSE) {
		p.advance()
		stmt, serr := p.parseStatement()
		if serr != nil {
			return nil, serr
		}
		if stmt == nil {
			return nil, expected(p.cur(), "statement")
		}
		ifs := &ast.IfStatement{Branches: branches, Else: []ast.Statement{stmt}}
		ifs.SetPos(startPos)
		return ifs, nil
	}
	ifs := &ast.IfStatement{Branches: branches}
	ifs.SetPos(startPos)
	return ifs, nil
}

// parseIfBranchHeader parses "cond THEN" and, for the single-line form,
// the one statement that follows on the same line.
func (p *Parser) parseIfBranchHeader() (ast.Expression, []ast.Statement, *cerrors.CompilerError) {
	cond, err := p.parseExpression()
	if err != nil {
		return nil, nil, err
	}
	if cond == nil {
		return nil, nil, expected(p.cur(), "condition")
	}
	if !p.at(token.THEN) {
		return nil, nil, expected(p.cur(), "THEN")
	}
	p.advance()
	if p.atStatementEnd() {
		return cond, nil, nil
	}
	stmt, serr := p.parseStatement()
	if serr != nil {
		return nil, nil, serr
	}
	if stmt == nil {
		return nil, nil, expected(p.cur(), "statement")
	}
	var body []ast.Statement
	body = append(body, stmt)
	for p.at(token.COLON) {
		p.advance()
		if p.atStatementEnd() {
			break
		}
		more, merr := p.parseStatement()
		if merr != nil {
			return nil, nil, merr
		}
		if more == nil {
			break
		}
		body = append(body, more)
	}
	return cond, body, nil
}

// parseSelectCase parses "SELECT CASE expr ... CASE alt[,alt] ... [CASE
// ELSE ...] END SELECT".
func (p *Parser) parseSelectCase() (ast.Statement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // SELECT
	if !p.at(token.CASE) {
		return nil, expected(p.cur(), "CASE")
	}
	p.advance()
	scrutinee, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if scrutinee == nil {
		return nil, expected(p.cur(), "expression")
	}
	if end := p.expectStatementEnd(); end != nil {
		return nil, end
	}
	p.skipSeparators()

	var cases []ast.CaseBlock
	for p.at(token.CASE) {
		p.advance()
		isElse := false
		var alts []ast.CaseAlternative
		if p.at(token.ELSE) {
			p.advance()
			isElse = true
		} else {
			for {
				alt, aerr := p.parseCaseAlternative()
				if aerr != nil {
					return nil, aerr
				}
				alts = append(alts, alt)
				if !p.at(token.COMMA) {
					break
				}
				p.advance()
			}
		}
		if end := p.expectStatementEnd(); end != nil {
			return nil, end
		}
		body := p.parseStatementList(token.CASE, token.END)
		cases = append(cases, ast.CaseBlock{Alternatives: alts, Body: body, IsElse: isElse})
	}
	if !p.at(token.END) || p.peek(1).Tok.Type != token.SELECT {
		return nil, expected(p.cur(), "END SELECT")
	}
	p.advance()
	p.advance()

	s := &ast.SelectCaseStatement{Scrutinee: scrutinee, Cases: cases}
	s.SetPos(startPos)
	return s, nil
}

func (p *Parser) parseCaseAlternative() (ast.CaseAlternative, *cerrors.CompilerError) {
	if p.at(token.IS) {
		p.advance()
		op, opErr := p.parseCaseOp()
		if opErr != nil {
			return ast.CaseAlternative{}, opErr
		}
		v, verr := p.parseExpression()
		if verr != nil {
			return ast.CaseAlternative{}, verr
		}
		return ast.CaseAlternative{Kind: ast.CaseIsOp, Op: op, Value: v}, nil
	}

	low, err := p.parseExpression()
	if err != nil {
		return ast.CaseAlternative{}, err
	}
	if p.at(token.TO) {
		p.advance()
		high, herr := p.parseExpression()
		if herr != nil {
			return ast.CaseAlternative{}, herr
		}
		return ast.CaseAlternative{Kind: ast.CaseRange, Low: low, High: high}, nil
	}
	return ast.CaseAlternative{Kind: ast.CaseSimple, Value: low}, nil
}

func (p *Parser) parseCaseOp() (byte, *cerrors.CompilerError) {
	pt := p.cur()
	var op byte
	switch pt.Tok.Type {
	case token.LT:
		op = '<'
	case token.LE:
		op = 'l' // <=
	case token.EQ:
		op = '='
	case token.GE:
		op = 'g' // >=
	case token.GT:
		op = '>'
	case token.NE:
		op = 'n' // <>
	default:
		return 0, expected(pt, "a comparison operator")
	}
	p.advance()
	return op, nil
}

// parseFor parses "FOR i = lo TO hi [STEP s] ... NEXT [i]".
func (p *Parser) parseFor() (ast.Statement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // FOR
	nameExpr, err := p.parseNameExpr()
	if err != nil {
		return nil, err
	}
	counter, ok := nameExpr.(*ast.Identifier)
	if !ok {
		return nil, syntaxErrorAt(startPos, "FOR counter cannot be dotted")
	}
	if !p.at(token.EQ) {
		return nil, expected(p.cur(), "'='")
	}
	p.advance()
	lower, lerr := p.parseExpression()
	if lerr != nil {
		return nil, lerr
	}
	if !p.at(token.TO) {
		return nil, expected(p.cur(), "TO")
	}
	p.advance()
	upper, uerr := p.parseExpression()
	if uerr != nil {
		return nil, uerr
	}
	var step ast.Expression
	if p.at(token.STEP) {
		p.advance()
		s, serr := p.parseExpression()
		if serr != nil {
			return nil, serr
		}
		step = s
	}
	if end := p.expectStatementEnd(); end != nil {
		return nil, end
	}

	saved := p.ctx
	p.ctx = p.ctx.enterFor()
	body := p.parseStatementList(token.NEXT)
	p.ctx = saved

	if !p.at(token.NEXT) {
		return nil, expected(p.cur(), "NEXT")
	}
	p.advance()
	if p.at(token.IDENT) {
		p.advance() // optional counter repetition after NEXT
	}

	f := &ast.ForStatement{Counter: counter, Lower: lower, Upper: upper, Step: step, Body: body}
	f.SetPos(startPos)
	return f, nil
}

// parseWhile parses "WHILE cond ... WEND".
func (p *Parser) parseWhile() (ast.Statement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // WHILE
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if cond == nil {
		return nil, expected(p.cur(), "condition")
	}
	if end := p.expectStatementEnd(); end != nil {
		return nil, end
	}

	saved := p.ctx
	p.ctx = p.ctx.enterWhile()
	body := p.parseStatementList(token.WEND)
	p.ctx = saved

	if !p.at(token.WEND) {
		return nil, expected(p.cur(), "WEND")
	}
	p.advance()

	w := &ast.WhileStatement{Cond: cond, Body: body}
	w.SetPos(startPos)
	return w, nil
}

// parseOnError parses "ON ERROR GOTO label" / "ON ERROR GOTO 0" / "ON
// ERROR RESUME NEXT".
func (p *Parser) parseOnError() (ast.Statement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // ON
	if !p.at(token.ERROR) {
		return nil, expected(p.cur(), "ERROR")
	}
	p.advance()

	if p.at(token.RESUME) {
		p.advance()
		if !p.at(token.NEXT) {
			return nil, expected(p.cur(), "NEXT")
		}
		p.advance()
		o := &ast.OnErrorStatement{Kind: ast.OnErrorResumeNext}
		o.SetPos(startPos)
		return o, nil
	}

	if !p.at(token.GOTO) {
		return nil, expected(p.cur(), "GOTO or RESUME")
	}
	p.advance()
	if p.at(token.DIGITS) && p.cur().Tok.Literal == "0" {
		p.advance()
		o := &ast.OnErrorStatement{Kind: ast.OnErrorGoToZero}
		o.SetPos(startPos)
		return o, nil
	}
	lbl, lerr := p.expectLabelRef()
	if lerr != nil {
		return nil, lerr
	}
	o := &ast.OnErrorStatement{Kind: ast.OnErrorGoToLabel, Label: lbl}
	o.SetPos(startPos)
	return o, nil
}

// parseResume parses "RESUME" / "RESUME NEXT" / "RESUME label".
func (p *Parser) parseResume() (ast.Statement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // RESUME
	switch {
	case p.atStatementEnd():
		r := &ast.ResumeStatement{Kind: ast.ResumeSame}
		r.SetPos(startPos)
		return r, nil
	case p.at(token.NEXT):
		p.advance()
		r := &ast.ResumeStatement{Kind: ast.ResumeNextStmt}
		r.SetPos(startPos)
		return r, nil
	default:
		lbl, lerr := p.expectLabelRef()
		if lerr != nil {
			return nil, lerr
		}
		r := &ast.ResumeStatement{Kind: ast.ResumeAtLabel, Label: lbl}
		r.SetPos(startPos)
		return r, nil
	}
}

// parseExit parses "EXIT FOR" / "EXIT SUB" / "EXIT FUNCTION", validating
// against the enclosing construct tracked in p.ctx.
func (p *Parser) parseExit() (ast.Statement, *cerrors.CompilerError) {
	startPos := p.cur().Tok.Pos
	p.advance() // EXIT
	pt := p.cur()
	var kind ast.ExitKind
	switch pt.Tok.Type {
	case token.FOR:
		kind = ast.ExitFor
		if !p.ctx.InForLoop {
			return nil, syntaxErrorAt(startPos, "EXIT FOR outside a FOR loop")
		}
	case token.SUB:
		kind = ast.ExitSub
		if !p.ctx.InSubOrFunction || p.ctx.SubOrFunctionIsFunction {
			return nil, syntaxErrorAt(startPos, "EXIT SUB outside a SUB")
		}
	case token.FUNCTION:
		kind = ast.ExitFunction
		if !p.ctx.InSubOrFunction || !p.ctx.SubOrFunctionIsFunction {
			return nil, syntaxErrorAt(startPos, "EXIT FUNCTION outside a FUNCTION")
		}
	default:
		return nil, expected(pt, "FOR, SUB, or FUNCTION")
	}
	p.advance()
	e := &ast.ExitStatement{Kind: kind}
	e.SetPos(startPos)
	return e, nil
}
