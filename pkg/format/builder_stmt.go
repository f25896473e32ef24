package format

import (
	"strings"

	"github.com/yaklabco/solfmt/pkg/solast"
)

func (b *builder) buildStmt(s solast.Stmt) Doc {
	switch n := s.(type) {
	case *solast.Block:
		return b.buildBlock(n)
	case *solast.IfStmt:
		return b.buildIf(n)
	case *solast.WhileStmt:
		return Concat(
			b.condHeader("while", n.Cond),
			b.attachBody(n.Body),
		)
	case *solast.DoWhileStmt:
		return b.buildDoWhile(n)
	case *solast.ForStmt:
		return b.buildFor(n)
	case *solast.TryStmt:
		return b.buildTry(n)
	case *solast.ReturnStmt:
		if n.Value == nil {
			return Text("return;")
		}
		return Group(Text("return "), b.buildExpr(n.Value), Text(";"))
	case *solast.EmitStmt:
		return Concat(Text("emit "), b.buildExpr(n.Call), Text(";"))
	case *solast.RevertStmt:
		if n.Call == nil {
			return Text("revert;")
		}
		return Concat(Text("revert "), b.buildExpr(n.Call), Text(";"))
	case *solast.BreakStmt:
		return Text("break;")
	case *solast.ContinueStmt:
		return Text("continue;")
	case *solast.AssemblyStmt:
		return b.buildAssembly(n)
	case *solast.ExprStmt:
		return Group(b.buildExpr(n.E), Text(";"))
	case *solast.VarDeclStmt:
		return b.buildVarDeclStmt(n, true)
	}
	return b.verbatimRange(b.f.NodeRange(s))
}

// blockIsEmpty reports whether a block renders as bare {}.
func (b *builder) blockIsEmpty(blk *solast.Block) bool {
	return len(blk.Stmts) == 0 && !b.hasLeadingComments(blk.LastTok())
}

func (b *builder) hasLeadingComments(tokIdx int) bool {
	for _, tr := range b.f.Tokens[tokIdx].Leading {
		if tr.IsComment() {
			return true
		}
	}
	return false
}

func (b *builder) buildBlock(blk *solast.Block) Doc {
	prefix := ""
	if blk.Unchecked {
		prefix = "unchecked "
	}
	if b.blockIsEmpty(blk) {
		return Text(prefix + "{}")
	}
	return Concat(Text(prefix+"{"), b.blockBody(blk))
}

// blockBody renders everything after the opening brace: the statement list,
// comments parked before the closing brace, and the brace itself.
func (b *builder) blockBody(blk *solast.Block) Doc {
	closeTok := blk.LastTok()
	closing := b.leadingTrivia(closeTok, true)

	stmts := make([]solast.Node, len(blk.Stmts))
	for i, s := range blk.Stmts {
		stmts[i] = s
	}
	body := b.buildList(stmts, b.f.Tokens[closeTok].StartOffset, func(n solast.Node) Doc {
		return b.buildStmt(n.(solast.Stmt))
	})

	inner := body
	if len(closing) > 0 {
		closing = closing[:len(closing)-1]
		if len(inner) > 0 {
			inner = append(inner, HardLine)
		}
		inner = append(inner, closing...)
	}
	return Concat(
		Indent(append([]Doc{HardLine}, inner...)...),
		HardLine,
		Text("}"),
	)
}

// condHeader renders `keyword (cond)` with the condition breaking into an
// indented block when it is too wide.
func (b *builder) condHeader(keyword string, cond solast.Expr) Doc {
	return Group(
		Text(keyword+" ("),
		Indent(SoftLine, b.buildExpr(cond)),
		SoftLine,
		Text(")"),
	)
}

// attachBody places a loop or branch body: blocks share the header line,
// single statements move to an indented line of their own.
func (b *builder) attachBody(s solast.Stmt) Doc {
	if blk, ok := s.(*solast.Block); ok {
		return Concat(Text(" "), b.buildBlock(blk))
	}
	return Indent(HardLine, b.buildStmt(s))
}

func (b *builder) buildIf(n *solast.IfStmt) Doc {
	parts := []Doc{b.condHeader("if", n.Cond), b.attachBody(n.Then)}
	if n.Else == nil {
		return Concat(parts...)
	}

	// `else` hugs the closing brace when the then-branch is a block and
	// drops to its own line otherwise.
	if _, ok := n.Then.(*solast.Block); ok {
		parts = append(parts, Text(" else"))
	} else {
		parts = append(parts, HardLine, Text("else"))
	}

	switch e := n.Else.(type) {
	case *solast.IfStmt:
		parts = append(parts, Text(" "), b.buildIf(e))
	case *solast.Block:
		parts = append(parts, Text(" "), b.buildBlock(e))
	default:
		parts = append(parts, Indent(HardLine, b.buildStmt(e)))
	}
	return Concat(parts...)
}

func (b *builder) buildDoWhile(n *solast.DoWhileStmt) Doc {
	parts := []Doc{Text("do"), b.attachBody(n.Body)}
	if _, ok := n.Body.(*solast.Block); ok {
		parts = append(parts, Text(" "))
	} else {
		parts = append(parts, HardLine)
	}
	parts = append(parts,
		Group(Text("while ("), Indent(SoftLine, b.buildExpr(n.Cond)), SoftLine, Text(");")),
	)
	return Concat(parts...)
}

func (b *builder) buildFor(n *solast.ForStmt) Doc {
	var init, cond, post Doc = Nil, Nil, Nil
	if n.Init != nil {
		switch s := n.Init.(type) {
		case *solast.VarDeclStmt:
			init = b.buildVarDeclStmt(s, false)
		case *solast.ExprStmt:
			init = b.buildExpr(s.E)
		}
	}
	if n.Cond != nil {
		cond = b.buildExpr(n.Cond)
	}
	if n.Post != nil {
		post = b.buildExpr(n.Post)
	}

	header := Group(
		Text("for ("),
		Indent(SoftLine, init, Text(";"), condSep(n.Cond), cond, Text(";"), condSep(n.Post), post),
		SoftLine,
		Text(")"),
	)
	return Concat(header, b.attachBody(n.Body))
}

// condSep puts a space before a present for-clause and nothing before an
// omitted one, so `for (;;)` keeps its compact spelling.
func condSep(e solast.Expr) Doc {
	if e == nil {
		return Nil
	}
	return Line
}

func (b *builder) buildTry(n *solast.TryStmt) Doc {
	parts := []Doc{Text("try "), b.buildExpr(n.Expr)}
	if len(n.Returns) > 0 {
		parts = append(parts, Text(" returns "), b.paramParens(n.Returns))
	}
	parts = append(parts, Text(" "), b.buildBlock(n.Body))
	for _, c := range n.Catches {
		parts = append(parts, Text(" catch"))
		if c.Ident != solast.NoToken {
			parts = append(parts, Text(" "+b.text(c.Ident)))
			parts = append(parts, b.paramParens(c.Params))
		} else if c.Params != nil {
			parts = append(parts, Text(" "), b.paramParens(c.Params))
		}
		parts = append(parts, Text(" "), b.buildBlock(c.Body))
	}
	return Concat(parts...)
}

// buildAssembly reproduces the Yul body with its original relative
// indentation, re-anchored at the current level. The inner dialect is not
// reformatted.
func (b *builder) buildAssembly(n *solast.AssemblyStmt) Doc {
	var head strings.Builder
	head.WriteString("assembly ")
	if n.Dialect != solast.NoToken {
		head.WriteString(b.text(n.Dialect))
		head.WriteByte(' ')
	}
	if len(n.Flags) > 0 {
		head.WriteByte('(')
		for i, flag := range n.Flags {
			if i > 0 {
				head.WriteString(", ")
			}
			head.WriteString(b.text(flag))
		}
		head.WriteString(") ")
	}

	start := b.f.Tokens[n.BodyFirst].StartOffset
	end := b.f.Tokens[n.BodyLast].EndOffset
	lines := strings.Split(string(b.f.Content[start:end]), "\n")

	base := b.lineIndent(b.f.Tokens[n.FirstTok()].StartOffset)
	parts := []Doc{Text(head.String()), Text(strings.TrimRight(lines[0], "\r"))}
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		parts = append(parts, HardLine, Text(stripIndent(line, base)))
	}
	return Concat(parts...)
}

// lineIndent returns the leading whitespace of the line containing offset.
func (b *builder) lineIndent(offset int) string {
	info := b.f.Lines[b.f.LineContaining(offset)]
	text := b.f.Content[info.StartOffset:info.NewlineStart]
	i := 0
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return string(text[:i])
}

func stripIndent(line, base string) string {
	if rest, ok := strings.CutPrefix(line, base); ok {
		return rest
	}
	return strings.TrimLeft(line, " \t")
}

func (b *builder) buildVarDeclStmt(n *solast.VarDeclStmt, semi bool) Doc {
	var parts []Doc
	if n.Tuple {
		elems := make([]Doc, 0, len(n.Decls)*2)
		for i, d := range n.Decls {
			if i > 0 {
				elems = append(elems, Text(","))
				if d != nil {
					elems = append(elems, Line)
				}
			}
			if d != nil {
				elems = append(elems, b.singleVarDecl(d))
			}
		}
		parts = append(parts, Group(
			Text("("),
			Indent(append([]Doc{SoftLine}, elems...)...),
			SoftLine,
			Text(")"),
		))
	} else {
		parts = append(parts, b.singleVarDecl(n.Decls[0]))
	}
	if n.Value != nil {
		parts = append(parts, Text(" ="), Group(Indent(Line, b.buildExpr(n.Value))))
	}
	if semi {
		parts = append(parts, Text(";"))
	}
	return Group(parts...)
}

func (b *builder) singleVarDecl(d *solast.VarDecl) Doc {
	parts := []Doc{b.typeDoc(d.Type)}
	if d.Location != solast.NoToken {
		parts = append(parts, Text(" "+b.text(d.Location)))
	}
	parts = append(parts, Text(" "+b.text(d.Name)))
	return Concat(parts...)
}
