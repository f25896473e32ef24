package parser

import "github.com/yaklabco/solfmt/pkg/solast"

// Binary precedence levels, low to high. Assignment and exponentiation
// associate to the right, everything else to the left. The ternary operator
// sits between assignment and logical-or and is handled separately.
const (
	precAssign  = 1
	precTernary = 2
	precOr      = 3
	precAnd     = 4
	precEq      = 5
	precRel     = 6
	precBitOr   = 7
	precBitXor  = 8
	precBitAnd  = 9
	precShift   = 10
	precAdd     = 11
	precMul     = 12
	precExp     = 13
)

var binPrec = map[string]int{
	"=": precAssign, "|=": precAssign, "^=": precAssign, "&=": precAssign,
	"<<=": precAssign, ">>=": precAssign, ">>>=": precAssign,
	"+=": precAssign, "-=": precAssign, "*=": precAssign, "/=": precAssign, "%=": precAssign,
	"||": precOr,
	"&&": precAnd,
	"==": precEq, "!=": precEq,
	"<": precRel, ">": precRel, "<=": precRel, ">=": precRel,
	"|": precBitOr,
	"^": precBitXor,
	"&": precBitAnd,
	"<<": precShift, ">>": precShift, ">>>": precShift,
	"+": precAdd, "-": precAdd,
	"*": precMul, "/": precMul, "%": precMul,
	"**": precExp,
}

func rightAssoc(prec int) bool {
	return prec == precAssign || prec == precExp
}

func (p *parser) parseExpr() solast.Expr {
	return p.parseBinary(precAssign)
}

func (p *parser) parseBinary(minPrec int) solast.Expr {
	left := p.parseUnary()

	for {
		if p.atPunct("?") && minPrec <= precTernary {
			start := left.FirstTok()
			p.take()
			then := p.parseExpr()
			p.expectPunct(":")
			elseExpr := p.parseBinary(precTernary)
			left = &solast.TernaryExpr{
				Span: solast.Span{First: start, Last: p.pos - 1},
				Cond: left,
				Then: then,
				Else: elseExpr,
			}
			continue
		}

		if p.cur().Kind != solast.TokPunct {
			return left
		}
		prec, isBinOp := binPrec[p.text()]
		if !isBinOp || prec < minPrec {
			return left
		}

		op := p.take()
		nextMin := prec + 1
		if rightAssoc(prec) {
			nextMin = prec
		}
		right := p.parseBinary(nextMin)
		left = &solast.BinaryExpr{
			Span:  solast.Span{First: left.FirstTok(), Last: right.LastTok()},
			Left:  left,
			Op:    op,
			Right: right,
		}
	}
}

var prefixOps = map[string]bool{
	"!": true, "~": true, "-": true, "+": true, "++": true, "--": true,
}

func (p *parser) parseUnary() solast.Expr {
	if p.cur().Kind == solast.TokPunct && prefixOps[p.text()] {
		start := p.pos
		op := p.take()
		operand := p.parseUnary()
		return &solast.UnaryExpr{
			Span:    solast.Span{First: start, Last: operand.LastTok()},
			Op:      op,
			Operand: operand,
			Prefix:  true,
		}
	}
	if p.atKeyword("delete") {
		start := p.pos
		op := p.take()
		operand := p.parseUnary()
		return &solast.UnaryExpr{
			Span:    solast.Span{First: start, Last: operand.LastTok()},
			Op:      op,
			Operand: operand,
			Prefix:  true,
		}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() solast.Expr {
	expr := p.parsePrimary()

	for {
		switch {
		case p.atPunct("("):
			expr = p.parseCall(expr)

		case p.atPunct("{"):
			// Call options `f{value: 1}(...)`. A brace here can also open a
			// block (e.g. the body of a try statement), so commit only if a
			// named-argument list followed by `(` actually parses.
			opts := p.tryCallOptions(expr)
			if opts == nil {
				return expr
			}
			expr = opts

		case p.atPunct("["):
			expr = p.parseIndex(expr)

		case p.atPunct(".") && (p.peekKind(1) == solast.TokIdent || p.peekKind(1) == solast.TokKeyword):
			p.take()
			member := p.take()
			expr = &solast.MemberExpr{
				Span:   solast.Span{First: expr.FirstTok(), Last: member},
				Base:   expr,
				Member: member,
			}

		case p.atPunct("++") || p.atPunct("--"):
			op := p.take()
			expr = &solast.UnaryExpr{
				Span:    solast.Span{First: expr.FirstTok(), Last: op},
				Op:      op,
				Operand: expr,
				Prefix:  false,
			}

		default:
			return expr
		}
	}
}

func (p *parser) parseCall(callee solast.Expr) solast.Expr {
	start := callee.FirstTok()
	p.expectPunct("(")

	// Named-argument call: f({a: 1, b: 2}). Field order is preserved.
	if p.atPunct("{") {
		p.take()
		call := &solast.NamedCallExpr{Callee: callee}
		call.Args = p.parseNamedArgs()
		p.expectPunct("}")
		p.expectPunct(")")
		call.Span = solast.Span{First: start, Last: p.pos - 1}
		return call
	}

	call := &solast.CallExpr{Callee: callee}
	for !p.atPunct(")") {
		call.Args = append(call.Args, p.parseExpr())
		if !p.eatPunct(",") {
			break
		}
	}
	p.expectPunct(")")
	call.Span = solast.Span{First: start, Last: p.pos - 1}
	return call
}

func (p *parser) parseNamedArgs() []*solast.NamedArg {
	var args []*solast.NamedArg
	for !p.atPunct("}") {
		start := p.pos
		arg := &solast.NamedArg{Name: p.expectIdent()}
		p.expectPunct(":")
		arg.Value = p.parseExpr()
		arg.Span = p.span(start)
		args = append(args, arg)
		if !p.eatPunct(",") {
			break
		}
	}
	return args
}

func (p *parser) tryCallOptions(callee solast.Expr) solast.Expr {
	var opts *solast.CallOptionsExpr
	ok := p.speculate(func() {
		start := callee.FirstTok()
		p.expectPunct("{")
		o := &solast.CallOptionsExpr{Callee: callee, Options: p.parseNamedArgs()}
		p.expectPunct("}")
		if !p.atPunct("(") {
			p.fail(`"(" after call options`)
		}
		o.Span = solast.Span{First: start, Last: p.pos - 1}
		opts = o
	})
	if !ok {
		return nil
	}
	return opts
}

func (p *parser) parseIndex(base solast.Expr) solast.Expr {
	start := base.FirstTok()
	p.expectPunct("[")

	var first solast.Expr
	if !p.atPunct(":") && !p.atPunct("]") {
		first = p.parseExpr()
	}

	if p.eatPunct(":") {
		rng := &solast.IndexRangeExpr{Base: base, Start: first}
		if !p.atPunct("]") {
			rng.End = p.parseExpr()
		}
		p.expectPunct("]")
		rng.Span = solast.Span{First: start, Last: p.pos - 1}
		return rng
	}

	p.expectPunct("]")
	return &solast.IndexExpr{
		Span:  solast.Span{First: start, Last: p.pos - 1},
		Base:  base,
		Index: first,
	}
}

func (p *parser) parsePrimary() solast.Expr {
	tok := p.cur()
	start := p.pos

	switch tok.Kind {
	case solast.TokNumber:
		lit := &solast.LiteralExpr{Kind: solast.LitNumber, Tok: p.take(), Unit: solast.NoToken}
		if p.cur().Kind == solast.TokKeyword && unitSuffixes[p.text()] {
			lit.Unit = p.take()
		}
		lit.Span = p.span(start)
		return lit

	case solast.TokString:
		return &solast.LiteralExpr{Span: p.span1(), Kind: solast.LitString, Tok: p.take(), Unit: solast.NoToken}

	case solast.TokHexString:
		return &solast.LiteralExpr{Span: p.span1(), Kind: solast.LitHexString, Tok: p.take(), Unit: solast.NoToken}

	case solast.TokUniString:
		return &solast.LiteralExpr{Span: p.span1(), Kind: solast.LitUnicodeString, Tok: p.take(), Unit: solast.NoToken}

	case solast.TokIdent:
		return &solast.IdentExpr{Span: p.span1(), Tok: p.take()}

	case solast.TokKeyword:
		switch {
		case p.text() == "true" || p.text() == "false":
			return &solast.LiteralExpr{Span: p.span1(), Kind: solast.LitBool, Tok: p.take(), Unit: solast.NoToken}
		case p.text() == "new":
			p.take()
			typ := p.parseType()
			return &solast.NewExpr{Span: p.span(start), Type: typ}
		case p.text() == "type":
			// type(T).max parses as an ordinary call on the keyword.
			return &solast.IdentExpr{Span: p.span1(), Tok: p.take()}
		case p.text() == "payable":
			// payable(x) cast.
			el := &solast.ElementaryType{Span: p.span1(), Tok: p.take()}
			return &solast.ElementaryTypeExpr{Span: el.Span, Type: el}
		case isElementaryType(p.text()):
			el := &solast.ElementaryType{Span: p.span1(), Tok: p.take()}
			return &solast.ElementaryTypeExpr{Span: el.Span, Type: el}
		}

	case solast.TokPunct:
		switch p.text() {
		case "(":
			return p.parseTupleExpr(")", false)
		case "[":
			return p.parseTupleExpr("]", true)
		}
	}

	p.fail("expression")
	return nil
}

// span1 is the span of exactly the current token.
func (p *parser) span1() solast.Span {
	return solast.Span{First: p.pos, Last: p.pos}
}

// parseTupleExpr parses `(a, , b)` or `[a, b]`. Empty slots are only valid in
// the parenthesized form; array literals require every element.
func (p *parser) parseTupleExpr(closer string, array bool) solast.Expr {
	start := p.pos
	p.take()
	tuple := &solast.TupleExpr{Array: array}
	for !p.atPunct(closer) {
		if !array && p.atPunct(",") {
			tuple.Elems = append(tuple.Elems, nil)
			p.take()
			continue
		}
		tuple.Elems = append(tuple.Elems, p.parseExpr())
		if !p.eatPunct(",") {
			break
		}
		if !array && p.atPunct(closer) {
			tuple.Elems = append(tuple.Elems, nil)
		}
	}
	p.expectPunct(closer)
	tuple.Span = p.span(start)
	return tuple
}
