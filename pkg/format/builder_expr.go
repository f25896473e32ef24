package format

import (
	"github.com/yaklabco/solfmt/pkg/solast"
)

func (b *builder) buildExpr(e solast.Expr) Doc {
	switch n := e.(type) {
	case *solast.IdentExpr:
		return Text(b.text(n.Tok))
	case *solast.LiteralExpr:
		return b.buildLiteral(n)
	case *solast.ElementaryTypeExpr:
		return b.typeDoc(n.Type)
	case *solast.BinaryExpr:
		return Group(
			b.buildExpr(n.Left),
			Text(" "+b.text(n.Op)),
			Indent(Line, b.buildExpr(n.Right)),
		)
	case *solast.UnaryExpr:
		return b.buildUnary(n)
	case *solast.TernaryExpr:
		return Group(
			b.buildExpr(n.Cond),
			Indent(
				Line, Concat(Text("? "), b.buildExpr(n.Then)),
				Line, Concat(Text(": "), b.buildExpr(n.Else)),
			),
		)
	case *solast.CallExpr:
		return Concat(b.buildExpr(n.Callee), b.callArgs(n.Args))
	case *solast.NamedCallExpr:
		return Concat(
			b.buildExpr(n.Callee),
			Text("("),
			b.namedArgBraces(n.Args),
			Text(")"),
		)
	case *solast.CallOptionsExpr:
		return Concat(b.buildExpr(n.Callee), b.namedArgBraces(n.Options))
	case *solast.IndexExpr:
		parts := []Doc{b.buildExpr(n.Base), Text("[")}
		if n.Index != nil {
			parts = append(parts, b.buildExpr(n.Index))
		}
		parts = append(parts, Text("]"))
		return Concat(parts...)
	case *solast.IndexRangeExpr:
		parts := []Doc{b.buildExpr(n.Base), Text("[")}
		if n.Start != nil {
			parts = append(parts, b.buildExpr(n.Start))
		}
		parts = append(parts, Text(":"))
		if n.End != nil {
			parts = append(parts, b.buildExpr(n.End))
		}
		parts = append(parts, Text("]"))
		return Concat(parts...)
	case *solast.MemberExpr:
		return Concat(b.buildExpr(n.Base), Text("."+b.text(n.Member)))
	case *solast.TupleExpr:
		return b.buildTuple(n)
	case *solast.NewExpr:
		return Concat(Text("new "), b.typeDoc(n.Type))
	}
	return b.verbatimRange(b.f.NodeRange(e))
}

func (b *builder) buildLiteral(n *solast.LiteralExpr) Doc {
	text := b.text(n.Tok)
	switch n.Kind {
	case solast.LitNumber:
		text = normalizeUnderscores(text, b.cfg.NumberUnderscore)
	case solast.LitString, solast.LitHexString, solast.LitUnicodeString:
		text = normalizeQuotes(text, b.cfg.QuoteStyle)
	}
	if n.Unit != solast.NoToken {
		text += " " + b.text(n.Unit)
	}
	return Text(text)
}

func (b *builder) buildUnary(n *solast.UnaryExpr) Doc {
	op := b.text(n.Op)
	if !n.Prefix {
		return Concat(b.buildExpr(n.Operand), Text(op))
	}
	// Word operators need a separating space, symbol operators hug.
	if op == "delete" {
		op += " "
	}
	return Concat(Text(op), b.buildExpr(n.Operand))
}

// callArgs renders a parenthesized positional argument list that breaks one
// argument per line when it overflows.
func (b *builder) callArgs(args []solast.Expr) Doc {
	if len(args) == 0 {
		return Text("()")
	}
	docs := make([]Doc, len(args))
	for i, a := range args {
		docs[i] = b.buildExpr(a)
	}
	return Group(
		Text("("),
		Indent(SoftLine, Join(Concat(Text(","), Line), docs)),
		SoftLine,
		Text(")"),
	)
}

// namedArgBraces renders a `{name: value, ...}` block, honoring the
// bracket_spacing setting when it stays flat.
func (b *builder) namedArgBraces(args []*solast.NamedArg) Doc {
	if len(args) == 0 {
		return Text("{}")
	}
	docs := make([]Doc, len(args))
	for i, a := range args {
		docs[i] = Concat(Text(b.text(a.Name)+": "), b.buildExpr(a.Value))
	}
	return Group(
		Text("{"),
		Indent(b.bsLine(), Join(Concat(Text(","), Line), docs)),
		b.bsLine(),
		Text("}"),
	)
}

func (b *builder) buildTuple(n *solast.TupleExpr) Doc {
	open, shut := "(", ")"
	if n.Array {
		open, shut = "[", "]"
	}
	if len(n.Elems) == 0 {
		return Text(open + shut)
	}

	elems := make([]Doc, 0, len(n.Elems)*2)
	for i, e := range n.Elems {
		if i > 0 {
			elems = append(elems, Text(","))
			if e != nil {
				elems = append(elems, Line)
			}
		}
		if e != nil {
			elems = append(elems, b.buildExpr(e))
		}
	}
	return Group(
		Text(open),
		Indent(append([]Doc{SoftLine}, elems...)...),
		SoftLine,
		Text(shut),
	)
}
