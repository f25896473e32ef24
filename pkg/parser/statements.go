package parser

import "github.com/yaklabco/solfmt/pkg/solast"

func (p *parser) parseBlock(unchecked bool) *solast.Block {
	start := p.pos
	if unchecked {
		p.expectKeyword("unchecked")
	}
	p.expectPunct("{")
	block := &solast.Block{Unchecked: unchecked}
	for !p.atPunct("}") {
		if p.atEOF() {
			p.fail(`"}"`)
		}
		block.Stmts = append(block.Stmts, p.parseStatement())
	}
	p.expectPunct("}")
	block.Span = p.span(start)
	return block
}

func (p *parser) parseStatement() solast.Stmt {
	if p.atPunct("{") {
		return p.parseBlock(false)
	}
	if p.cur().Kind == solast.TokKeyword {
		switch p.text() {
		case "unchecked":
			return p.parseBlock(true)
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "do":
			return p.parseDoWhile()
		case "for":
			return p.parseFor()
		case "try":
			return p.parseTry()
		case "return":
			return p.parseReturn()
		case "emit":
			return p.parseEmit()
		case "revert":
			return p.parseRevert()
		case "break":
			start := p.pos
			p.take()
			p.expectPunct(";")
			return &solast.BreakStmt{Span: p.span(start)}
		case "continue":
			start := p.pos
			p.take()
			p.expectPunct(";")
			return &solast.ContinueStmt{Span: p.span(start)}
		case "assembly":
			return p.parseAssembly()
		}
	}
	return p.parseSimpleStatement(true)
}

func (p *parser) parseIf() *solast.IfStmt {
	start := p.pos
	p.expectKeyword("if")
	p.expectPunct("(")
	stmt := &solast.IfStmt{Cond: p.parseExpr()}
	p.expectPunct(")")
	stmt.Then = p.parseStatement()
	// A dangling else binds to this innermost if.
	if p.eatKeyword("else") {
		stmt.Else = p.parseStatement()
	}
	stmt.Span = p.span(start)
	return stmt
}

func (p *parser) parseWhile() *solast.WhileStmt {
	start := p.pos
	p.expectKeyword("while")
	p.expectPunct("(")
	stmt := &solast.WhileStmt{Cond: p.parseExpr()}
	p.expectPunct(")")
	stmt.Body = p.parseStatement()
	stmt.Span = p.span(start)
	return stmt
}

func (p *parser) parseDoWhile() *solast.DoWhileStmt {
	start := p.pos
	p.expectKeyword("do")
	stmt := &solast.DoWhileStmt{Body: p.parseStatement()}
	p.expectKeyword("while")
	p.expectPunct("(")
	stmt.Cond = p.parseExpr()
	p.expectPunct(")")
	p.expectPunct(";")
	stmt.Span = p.span(start)
	return stmt
}

// parseFor parses a for statement. Init, condition, and post are all
// independently optional: `for (;;) {}` is legal.
func (p *parser) parseFor() *solast.ForStmt {
	start := p.pos
	p.expectKeyword("for")
	p.expectPunct("(")
	stmt := &solast.ForStmt{}

	if !p.atPunct(";") {
		stmt.Init = p.parseSimpleStatement(false)
	}
	p.expectPunct(";")

	if !p.atPunct(";") {
		stmt.Cond = p.parseExpr()
	}
	p.expectPunct(";")

	if !p.atPunct(")") {
		stmt.Post = p.parseExpr()
	}
	p.expectPunct(")")

	stmt.Body = p.parseStatement()
	stmt.Span = p.span(start)
	return stmt
}

func (p *parser) parseTry() *solast.TryStmt {
	start := p.pos
	p.expectKeyword("try")
	stmt := &solast.TryStmt{Expr: p.parseExpr()}

	if p.eatKeyword("returns") {
		stmt.Returns = p.parseParamList(false)
	}
	stmt.Body = p.parseBlock(false)

	for p.atKeyword("catch") {
		stmt.Catches = append(stmt.Catches, p.parseCatch())
	}
	if len(stmt.Catches) == 0 {
		p.fail(`"catch"`)
	}

	// At most one bare catch, and only in last position.
	for i, clause := range stmt.Catches {
		if clause.Params == nil && clause.Ident == solast.NoToken && i != len(stmt.Catches)-1 {
			tok := p.toks[clause.First]
			panic(bailout{err: &ParseError{
				Offset:   tok.StartOffset,
				Expected: "parameterized catch clause",
				Found:    "bare catch before the last clause",
			}})
		}
	}

	stmt.Span = p.span(start)
	return stmt
}

func (p *parser) parseCatch() *solast.CatchClause {
	start := p.pos
	p.expectKeyword("catch")
	clause := &solast.CatchClause{Ident: solast.NoToken}
	if p.cur().Kind == solast.TokIdent {
		clause.Ident = p.take()
	}
	if p.atPunct("(") {
		clause.Params = p.parseParamList(false)
		if clause.Params == nil {
			// catch () {} still counts as parameterized.
			clause.Params = []*solast.Param{}
		}
	}
	clause.Body = p.parseBlock(false)
	clause.Span = p.span(start)
	return clause
}

func (p *parser) parseReturn() *solast.ReturnStmt {
	start := p.pos
	p.expectKeyword("return")
	stmt := &solast.ReturnStmt{}
	if !p.atPunct(";") {
		stmt.Value = p.parseExpr()
	}
	p.expectPunct(";")
	stmt.Span = p.span(start)
	return stmt
}

func (p *parser) parseEmit() *solast.EmitStmt {
	start := p.pos
	p.expectKeyword("emit")
	stmt := &solast.EmitStmt{Call: p.parseExpr()}
	p.expectPunct(";")
	stmt.Span = p.span(start)
	return stmt
}

func (p *parser) parseRevert() *solast.RevertStmt {
	start := p.pos
	p.expectKeyword("revert")
	stmt := &solast.RevertStmt{}
	if !p.atPunct(";") {
		stmt.Call = p.parseExpr()
	}
	p.expectPunct(";")
	stmt.Span = p.span(start)
	return stmt
}

// parseAssembly captures the Yul body as an opaque brace-balanced token run.
// Only the outer brace placement follows host formatting rules.
func (p *parser) parseAssembly() *solast.AssemblyStmt {
	start := p.pos
	p.expectKeyword("assembly")
	stmt := &solast.AssemblyStmt{Dialect: solast.NoToken}

	if p.cur().Kind == solast.TokString {
		stmt.Dialect = p.take()
	}
	if p.eatPunct("(") {
		for !p.atPunct(")") {
			stmt.Flags = append(stmt.Flags, p.expectString())
			if !p.eatPunct(",") {
				break
			}
		}
		p.expectPunct(")")
	}

	stmt.BodyFirst = p.expectPunct("{")
	depth := 1
	for depth > 0 {
		if p.atEOF() {
			p.fail(`"}"`)
		}
		switch {
		case p.atPunct("{"):
			depth++
		case p.atPunct("}"):
			depth--
		}
		if depth == 0 {
			stmt.BodyLast = p.take()
		} else {
			p.take()
		}
	}
	stmt.Span = p.span(start)
	return stmt
}

// parseSimpleStatement parses a variable declaration or expression statement.
// The two are disambiguated by speculative parsing: if the tokens shape up as
// `type [location] name [= value]` (or the tuple-declaration form) it is a
// declaration, otherwise an expression.
func (p *parser) parseSimpleStatement(wantSemi bool) solast.Stmt {
	var decl *solast.VarDeclStmt
	if p.speculate(func() { decl = p.parseVarDecl(wantSemi) }) {
		return decl
	}

	start := p.pos
	stmt := &solast.ExprStmt{E: p.parseExpr()}
	if wantSemi {
		p.expectPunct(";")
	}
	stmt.Span = p.span(start)
	return stmt
}

func (p *parser) parseVarDecl(wantSemi bool) *solast.VarDeclStmt {
	start := p.pos
	stmt := &solast.VarDeclStmt{}

	if p.atPunct("(") {
		// Tuple declaration: empty slots are permitted.
		p.take()
		stmt.Tuple = true
		for !p.atPunct(")") {
			if p.atPunct(",") {
				stmt.Decls = append(stmt.Decls, nil)
				p.take()
				continue
			}
			stmt.Decls = append(stmt.Decls, p.parseSingleVarDecl())
			if !p.eatPunct(",") {
				break
			}
			// `(uint a,)` keeps its trailing empty slot: arity is meaning.
			if p.atPunct(")") {
				stmt.Decls = append(stmt.Decls, nil)
			}
		}
		p.expectPunct(")")
		p.expectPunct("=")
		stmt.Value = p.parseExpr()
	} else {
		stmt.Decls = []*solast.VarDecl{p.parseSingleVarDecl()}
		if p.eatPunct("=") {
			stmt.Value = p.parseExpr()
		}
	}

	if wantSemi {
		p.expectPunct(";")
	}
	stmt.Span = p.span(start)
	return stmt
}

func (p *parser) parseSingleVarDecl() *solast.VarDecl {
	start := p.pos
	decl := &solast.VarDecl{Type: p.parseType(), Location: solast.NoToken}
	for p.cur().Kind == solast.TokKeyword {
		switch p.text() {
		case "memory", "storage", "calldata":
			decl.Location = p.take()
			continue
		}
		break
	}
	decl.Name = p.expectIdent()
	decl.Span = p.span(start)
	return decl
}
