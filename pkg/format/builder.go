package format

import (
	"strings"

	"github.com/yaklabco/solfmt/pkg/config"
	"github.com/yaklabco/solfmt/pkg/solast"
)

// builder lowers the parse tree into layout docs. One builder formats one
// file; the region tracker advances in step with the source-order walk so
// disabled spans are emitted verbatim exactly once.
type builder struct {
	f        *solast.FileSnapshot
	cfg      *config.Config
	disabled []solast.SourceRange
	segments []Segment
	tracker  *regionTracker
}

func newBuilder(f *solast.FileSnapshot, cfg *config.Config, res Resolution) *builder {
	return &builder{
		f:        f,
		cfg:      cfg,
		disabled: res.Disabled,
		segments: res.Segments,
		tracker:  newRegionTracker(res.Disabled),
	}
}

func (b *builder) text(idx int) string {
	return b.f.TokenText(idx)
}

// bsLine separates braces from their content: a space when bracket_spacing
// is on, nothing otherwise, a newline either way once the group breaks.
func (b *builder) bsLine() Doc {
	if b.cfg.BracketSpacing {
		return Line
	}
	return SoftLine
}

// buildFile renders the resolved top-level segment plan: format segments go
// through the declaration builders, verbatim segments reproduce their input
// bytes.
func (b *builder) buildFile() Doc {
	var docs []Doc
	emitted := false
	for _, seg := range b.segments {
		if emitted {
			docs = append(docs, HardLine)
		}
		if seg.Node != nil {
			docs = append(docs, b.leadingTrivia(seg.Node.FirstTok(), emitted)...)
		}
		if seg.Kind == SegmentVerbatim {
			b.tracker.consumeThrough(seg.Span.EndOffset)
			docs = append(docs, b.verbatimRange(seg.Span))
		} else {
			docs = append(docs, b.reattachedComments(seg.Node)...)
			docs = append(docs, b.buildDecl(seg.Node.(solast.Decl)))
			docs = append(docs, b.trailingTrivia(seg.Node.LastTok())...)
		}
		emitted = true
	}
	return Concat(docs...)
}

// buildList formats a run of sibling items, interleaving blank lines,
// comments, and verbatim spans. endOffset bounds the list so trailing
// verbatim ranges inside it are flushed here and not at an outer level.
func (b *builder) buildList(nodes []solast.Node, endOffset int, build func(solast.Node) Doc) []Doc {
	var docs []Doc
	emitted := false

	sep := func() {
		if emitted {
			docs = append(docs, HardLine)
		}
	}

	i := 0
	for i < len(nodes) {
		n := nodes[i]
		r := b.f.NodeRange(n)

		for {
			pre, ok := b.tracker.takeEndingBefore(r.StartOffset)
			if !ok {
				break
			}
			sep()
			docs = append(docs, b.verbatimRange(pre))
			emitted = true
		}

		dis, overlaps := b.tracker.overlapping(r)
		if overlaps && !descendsInto(b.f, n, dis) {
			span := unionSpan(dis, r)
			for i+1 < len(nodes) {
				next := b.f.NodeRange(nodes[i+1])
				if next.StartOffset >= span.EndOffset {
					break
				}
				span = unionSpan(span, next)
				i++
			}
			b.tracker.consumeThrough(span.EndOffset)
			sep()
			docs = append(docs, b.leadingTrivia(n.FirstTok(), emitted)...)
			docs = append(docs, b.verbatimRange(span))
			emitted = true
			i++
			continue
		}

		sep()
		docs = append(docs, b.leadingTrivia(n.FirstTok(), emitted)...)
		docs = append(docs, b.reattachedComments(n)...)
		docs = append(docs, build(n))
		docs = append(docs, b.trailingTrivia(n.LastTok())...)
		emitted = true
		i++
	}

	for {
		post, ok := b.tracker.takeEndingBefore(endOffset)
		if !ok {
			break
		}
		sep()
		docs = append(docs, b.verbatimRange(post))
		emitted = true
	}
	return docs
}

// verbatimRange wraps raw input bytes. The first line sheds its original
// indentation so the renderer can re-anchor it at the current level; every
// other line passes through untouched.
func (b *builder) verbatimRange(r solast.SourceRange) Doc {
	text := string(b.f.Content[r.StartOffset:r.EndOffset])
	return Verbatim(strings.TrimLeft(text, " \t"))
}

// leadingTrivia emits the comments and blank-line markers attached before a
// token. Trivia inside disabled spans is skipped; those bytes already ride
// along in a verbatim range. A blank run collapses to a single blank line.
func (b *builder) leadingTrivia(tokIdx int, emittedBefore bool) []Doc {
	var docs []Doc
	for _, tr := range b.f.Tokens[tokIdx].Leading {
		span := solast.SourceRange{StartOffset: tr.StartOffset, EndOffset: tr.EndOffset}
		if overlapsAny(b.disabled, span) {
			continue
		}
		if tr.Kind == solast.TriviaBlank {
			if emittedBefore || len(docs) > 0 {
				docs = append(docs, HardLine)
			}
			continue
		}
		docs = append(docs, b.commentDoc(tr), HardLine)
	}
	return docs
}

// trailingTrivia emits same-line comments attached after a token.
func (b *builder) trailingTrivia(tokIdx int) []Doc {
	var docs []Doc
	for _, tr := range b.f.Tokens[tokIdx].Trailing {
		span := solast.SourceRange{StartOffset: tr.StartOffset, EndOffset: tr.EndOffset}
		if overlapsAny(b.disabled, span) {
			continue
		}
		docs = append(docs, Text(" "), b.commentDoc(tr))
	}
	return docs
}

// reattachedComments emits the comments bound to tokens no structural
// builder visits, one per line above the item, so reformatting loses no
// comment bytes. Expression interiors, signature headers, and braceless
// branch bodies all land here.
func (b *builder) reattachedComments(n solast.Node) []Doc {
	trs := b.opaqueTrivia(n)
	docs := make([]Doc, 0, len(trs)*2)
	for _, tr := range trs {
		docs = append(docs, b.commentDoc(tr), HardLine)
	}
	return docs
}

// opaqueTrivia scans the node's token range for comments, skipping the
// sub-ranges some walk already covers: list items emit their own leading
// and trailing runs, and brace bodies park closing comments on the brace.
func (b *builder) opaqueTrivia(n solast.Node) []solast.Trivia {
	holes := b.walkedSpans(n, nil)
	first, last := n.FirstTok(), n.LastTok()
	var out []solast.Trivia
	for tok := first; tok <= last; tok++ {
		if tokInSpans(holes, tok) {
			continue
		}
		if tok != first {
			out = b.appendComments(out, b.f.Tokens[tok].Leading)
		}
		if tok != last {
			out = b.appendComments(out, b.f.Tokens[tok].Trailing)
		}
	}
	return out
}

func (b *builder) appendComments(out []solast.Trivia, trs []solast.Trivia) []solast.Trivia {
	for _, tr := range trs {
		if !tr.IsComment() {
			continue
		}
		span := solast.SourceRange{StartOffset: tr.StartOffset, EndOffset: tr.EndOffset}
		if overlapsAny(b.disabled, span) {
			continue
		}
		out = append(out, tr)
	}
	return out
}

type tokSpan struct {
	first, last int
}

func tokInSpans(spans []tokSpan, tok int) bool {
	for _, s := range spans {
		if tok >= s.first && tok <= s.last {
			return true
		}
	}
	return false
}

// walkedSpans lists the token ranges whose trivia the nested walks of node
// n already emit. Everything outside them is opaque to the builders.
func (b *builder) walkedSpans(n solast.Node, spans []tokSpan) []tokSpan {
	switch d := n.(type) {
	case *solast.ContractDef:
		for _, m := range d.Members {
			spans = append(spans, tokSpan{m.FirstTok(), m.LastTok()})
		}
		spans = append(spans, tokSpan{d.LastTok(), d.LastTok()})
	case *solast.FunctionDef:
		if d.Body != nil {
			spans = b.walkedSpans(d.Body, spans)
		}
	case *solast.Block:
		for _, s := range d.Stmts {
			spans = append(spans, tokSpan{s.FirstTok(), s.LastTok()})
		}
		spans = append(spans, tokSpan{d.LastTok(), d.LastTok()})
	case *solast.IfStmt:
		spans = b.walkedSpans(d.Then, spans)
		if d.Else != nil {
			spans = b.walkedSpans(d.Else, spans)
		}
	case *solast.WhileStmt:
		spans = b.walkedSpans(d.Body, spans)
	case *solast.DoWhileStmt:
		spans = b.walkedSpans(d.Body, spans)
	case *solast.ForStmt:
		spans = b.walkedSpans(d.Body, spans)
	case *solast.TryStmt:
		spans = b.walkedSpans(d.Body, spans)
		for _, c := range d.Catches {
			spans = b.walkedSpans(c.Body, spans)
		}
	case *solast.StructDef:
		for _, fld := range d.Fields {
			spans = append(spans, tokSpan{fld.FirstTok(), fld.LastTok()})
		}
		spans = append(spans, tokSpan{d.LastTok(), d.LastTok()})
	case *solast.EnumDef:
		for _, m := range d.Members {
			spans = append(spans, tokSpan{m, b.enumMemberEnd(m)})
		}
		spans = append(spans, tokSpan{d.LastTok(), d.LastTok()})
	case *solast.AssemblyStmt:
		// The Yul body passes through with its comment bytes intact.
		spans = append(spans, tokSpan{d.BodyFirst, d.BodyLast})
	}
	return spans
}

// enumMemberEnd extends a member to its separating comma so trailing
// comments stay with the member.
func (b *builder) enumMemberEnd(m int) int {
	if m+1 < len(b.f.Tokens) && b.f.TokenText(m+1) == "," {
		return m + 1
	}
	return m
}

func (b *builder) commentDoc(tr solast.Trivia) Doc {
	text := string(tr.Text(b.f.Content))
	if strings.ContainsRune(text, '\n') {
		return Verbatim(text)
	}
	return Text(text)
}

func (b *builder) buildDecl(d solast.Decl) Doc {
	switch n := d.(type) {
	case *solast.PragmaDirective:
		return b.buildPragma(n)
	case *solast.ImportDirective:
		return b.buildImport(n)
	case *solast.ContractDef:
		return b.buildContract(n)
	case *solast.UsingFor:
		return b.buildUsingFor(n)
	case *solast.StateVarDecl:
		return b.buildStateVar(n)
	case *solast.FunctionDef:
		return b.buildFunction(n)
	case *solast.StructDef:
		return b.buildStruct(n)
	case *solast.EnumDef:
		return b.buildEnum(n)
	case *solast.ErrorDef:
		return b.buildErrorDef(n)
	case *solast.EventDef:
		return b.buildEvent(n)
	case *solast.TypeDef:
		return b.buildTypeDef(n)
	}
	return b.verbatimRange(b.f.NodeRange(d))
}

func (b *builder) buildPragma(n *solast.PragmaDirective) Doc {
	if n.Value == solast.NoToken {
		return Text("pragma " + b.text(n.Name) + ";")
	}
	return Text("pragma " + b.text(n.Name) + " " + b.text(n.Value) + ";")
}

func (b *builder) buildImport(n *solast.ImportDirective) Doc {
	path := normalizeQuotes(b.text(n.Path), b.cfg.QuoteStyle)

	switch {
	case n.Star:
		return Text("import * as " + b.text(n.Alias) + " from " + path + ";")
	case len(n.Symbols) > 0:
		syms := make([]Doc, len(n.Symbols))
		for i, s := range n.Symbols {
			t := b.text(s.Name)
			if s.Alias != solast.NoToken {
				t += " as " + b.text(s.Alias)
			}
			syms[i] = Text(t)
		}
		return Concat(
			Text("import "),
			Group(
				Text("{"),
				Indent(b.bsLine(), Join(Concat(Text(","), Line), syms)),
				b.bsLine(),
				Text("}"),
			),
			Text(" from "+path+";"),
		)
	case n.Alias != solast.NoToken:
		return Text("import " + path + " as " + b.text(n.Alias) + ";")
	default:
		return Text("import " + path + ";")
	}
}

func (b *builder) buildContract(n *solast.ContractDef) Doc {
	var head strings.Builder
	if n.Abstract {
		head.WriteString("abstract ")
	}
	switch n.Kind {
	case solast.KindInterface:
		head.WriteString("interface ")
	case solast.KindLibrary:
		head.WriteString("library ")
	default:
		head.WriteString("contract ")
	}
	head.WriteString(b.text(n.Name))

	body := b.memberBody(n)

	if len(n.Bases) == 0 {
		return Concat(Text(head.String()+" "), body)
	}

	bases := make([]Doc, len(n.Bases))
	for i, base := range n.Bases {
		bases[i] = b.buildInheritance(base)
	}
	return Concat(
		Group(
			Text(head.String()+" is"),
			Indent(Line, Join(Concat(Text(","), Line), bases)),
			Line,
		),
		body,
	)
}

func (b *builder) buildInheritance(base *solast.InheritanceSpecifier) Doc {
	name := Text(b.identPath(base.Name))
	if !base.HasParens {
		return name
	}
	return Concat(name, b.callArgs(base.Args))
}

// memberBody lays out a contract's member list between braces. An empty
// contract collapses to {}.
func (b *builder) memberBody(n *solast.ContractDef) Doc {
	closeTok := n.LastTok()
	closing := b.leadingTrivia(closeTok, true)

	members := make([]solast.Node, len(n.Members))
	for i, m := range n.Members {
		members[i] = m
	}
	body := b.buildList(members, b.f.Tokens[closeTok].StartOffset, func(m solast.Node) Doc {
		return b.buildDecl(m.(solast.Decl))
	})

	if len(body) == 0 && len(closing) == 0 {
		return Text("{}")
	}

	inner := body
	if len(closing) > 0 {
		// The brace's own line break follows, so the last comment drops
		// its trailing break.
		closing = closing[:len(closing)-1]
		if len(inner) > 0 {
			inner = append(inner, HardLine)
		}
		inner = append(inner, closing...)
	}
	return Concat(
		Text("{"),
		Indent(append([]Doc{HardLine}, inner...)...),
		HardLine,
		Text("}"),
	)
}

func (b *builder) buildUsingFor(n *solast.UsingFor) Doc {
	parts := []Doc{Text("using ")}
	if n.Library != nil {
		parts = append(parts, Text(b.identPath(n.Library)))
	} else {
		fns := make([]Doc, len(n.Functions))
		for i, fn := range n.Functions {
			fns[i] = Text(b.identPath(fn))
		}
		parts = append(parts, Group(
			Text("{"),
			Indent(b.bsLine(), Join(Concat(Text(","), Line), fns)),
			b.bsLine(),
			Text("}"),
		))
	}
	parts = append(parts, Text(" for "))
	if n.Target != nil {
		parts = append(parts, b.typeDoc(n.Target))
	} else {
		parts = append(parts, Text("*"))
	}
	if n.Global {
		parts = append(parts, Text(" global"))
	}
	parts = append(parts, Text(";"))
	return Concat(parts...)
}

func (b *builder) buildStateVar(n *solast.StateVarDecl) Doc {
	parts := []Doc{b.typeDoc(n.Type)}
	for _, attr := range n.Attributes {
		parts = append(parts, Text(" "+b.varAttr(attr)))
	}
	parts = append(parts, Text(" "+b.text(n.Name)))
	if n.Value != nil {
		parts = append(parts, Text(" ="), Group(Indent(Line, b.buildExpr(n.Value))))
	}
	parts = append(parts, Text(";"))
	return Group(parts...)
}

func (b *builder) varAttr(attr solast.VarAttribute) string {
	s := b.text(attr.Keyword)
	if len(attr.Args) > 0 {
		paths := make([]string, len(attr.Args))
		for i, p := range attr.Args {
			paths[i] = b.identPath(p)
		}
		s += "(" + strings.Join(paths, ", ") + ")"
	}
	return s
}

func (b *builder) buildFunction(n *solast.FunctionDef) Doc {
	head := b.functionHead(n)

	var tail Doc
	bodyEmpty := n.Body != nil && b.blockIsEmpty(n.Body)
	switch {
	case n.Body == nil:
		tail = Text(";")
	case bodyEmpty:
		tail = Concat(Line, Text("{}"))
	default:
		tail = Concat(Line, Text("{"))
	}

	header := b.functionHeader(n, head, tail)
	if n.Body == nil || bodyEmpty {
		return header
	}
	return Concat(header, b.blockBody(n.Body))
}

func (b *builder) functionHead(n *solast.FunctionDef) string {
	switch n.Kind {
	case solast.KindConstructor:
		return "constructor"
	case solast.KindFallback:
		return "fallback"
	case solast.KindReceive:
		return "receive"
	case solast.KindModifier:
		return "modifier " + b.text(n.Name)
	default:
		return "function " + b.text(n.Name)
	}
}

// functionHeader lays out the signature. Under attributes_first the
// attribute run is the outer break point and the parameter list only breaks
// when it cannot fit on its own; params_first inverts that.
func (b *builder) functionHeader(n *solast.FunctionDef, head string, tail Doc) Doc {
	// Modifiers may be declared without a parameter list at all.
	bareModifier := n.Kind == solast.KindModifier && len(n.Params) == 0 &&
		!b.headerHasParens(n)

	var trailer []Doc
	for _, attr := range n.Attributes {
		trailer = append(trailer, Line, b.funcAttr(attr))
	}
	if len(n.Returns) > 0 {
		trailer = append(trailer, Line, Concat(Text("returns "), b.paramParens(n.Returns)))
	}

	var params Doc = Nil
	if !bareModifier {
		params = b.paramList(n.Params)
	}

	if b.cfg.MultilineFuncHeader == config.HeaderParamsFirst {
		inner := tail
		if len(trailer) > 0 {
			inner = Group(append([]Doc{Indent(trailer...)}, tail)...)
		}
		if bareModifier {
			return Group(Text(head), inner)
		}
		return Group(
			Text(head+"("),
			Indent(SoftLine, params),
			SoftLine,
			Text(")"),
			inner,
		)
	}

	parts := []Doc{Text(head)}
	if !bareModifier {
		parts = append(parts, Group(
			Text("("),
			Indent(SoftLine, params),
			SoftLine,
			Text(")"),
		))
	}
	if len(trailer) > 0 {
		parts = append(parts, Indent(trailer...))
	}
	parts = append(parts, tail)
	return Group(parts...)
}

// headerHasParens reports whether the declaration carried a parameter list,
// which for modifiers is optional syntax rather than an empty list.
func (b *builder) headerHasParens(n *solast.FunctionDef) bool {
	if n.Name == solast.NoToken {
		return true
	}
	next := n.Name + 1
	return next < len(b.f.Tokens) && b.f.TokenText(next) == "("
}

func (b *builder) funcAttr(attr *solast.FuncAttr) Doc {
	switch attr.Kind {
	case solast.AttrOverride:
		if len(attr.Paths) == 0 {
			return Text("override")
		}
		paths := make([]string, len(attr.Paths))
		for i, p := range attr.Paths {
			paths[i] = b.identPath(p)
		}
		return Text("override(" + strings.Join(paths, ", ") + ")")
	case solast.AttrModifier:
		name := Text(b.identPath(attr.Name))
		if !attr.Called {
			return name
		}
		return Concat(name, b.callArgs(attr.Args))
	default:
		return Text(b.text(attr.Keyword))
	}
}

func (b *builder) buildStruct(n *solast.StructDef) Doc {
	closeTok := n.LastTok()
	closing := b.leadingTrivia(closeTok, true)
	if len(n.Fields) == 0 && len(closing) == 0 {
		return Text("struct " + b.text(n.Name) + " {}")
	}

	var inner []Doc
	for i, fld := range n.Fields {
		if i > 0 {
			inner = append(inner, HardLine)
		}
		inner = append(inner, b.leadingTrivia(fld.FirstTok(), i > 0)...)
		inner = append(inner, b.reattachedComments(fld)...)
		inner = append(inner, Concat(b.typeDoc(fld.Type), Text(" "+b.text(fld.Name)+";")))
		inner = append(inner, b.trailingTrivia(fld.LastTok())...)
	}
	if len(closing) > 0 {
		closing = closing[:len(closing)-1]
		if len(inner) > 0 {
			inner = append(inner, HardLine)
		}
		inner = append(inner, closing...)
	}
	return Concat(
		Text("struct "+b.text(n.Name)+" {"),
		Indent(append([]Doc{HardLine}, inner...)...),
		HardLine,
		Text("}"),
	)
}

func (b *builder) buildEnum(n *solast.EnumDef) Doc {
	closeTok := n.LastTok()
	closing := b.leadingTrivia(closeTok, true)
	if len(n.Members) == 0 && len(closing) == 0 {
		return Text("enum " + b.text(n.Name) + " {}")
	}

	// A bare list may fold onto one line; comments pin every member to a
	// line of its own.
	if len(closing) == 0 && !b.enumHasComments(n) {
		members := make([]Doc, len(n.Members))
		for i, m := range n.Members {
			members[i] = Text(b.text(m))
		}
		return Group(
			Text("enum "+b.text(n.Name)+" {"),
			Indent(Line, Join(Concat(Text(","), Line), members)),
			Line,
			Text("}"),
		)
	}

	var inner []Doc
	for i, m := range n.Members {
		if i > 0 {
			inner = append(inner, HardLine)
		}
		inner = append(inner, b.leadingTrivia(m, i > 0)...)
		text := b.text(m)
		if i < len(n.Members)-1 {
			text += ","
		}
		inner = append(inner, Text(text))
		inner = append(inner, b.trailingTrivia(m)...)
		if end := b.enumMemberEnd(m); end != m {
			inner = append(inner, b.trailingTrivia(end)...)
		}
	}
	if len(closing) > 0 {
		closing = closing[:len(closing)-1]
		if len(inner) > 0 {
			inner = append(inner, HardLine)
		}
		inner = append(inner, closing...)
	}
	return Concat(
		Text("enum "+b.text(n.Name)+" {"),
		Indent(append([]Doc{HardLine}, inner...)...),
		HardLine,
		Text("}"),
	)
}

func (b *builder) enumHasComments(n *solast.EnumDef) bool {
	for _, m := range n.Members {
		if b.hasLeadingComments(m) || len(b.f.Tokens[m].Trailing) > 0 {
			return true
		}
		if end := b.enumMemberEnd(m); end != m && len(b.f.Tokens[end].Trailing) > 0 {
			return true
		}
	}
	return false
}

func (b *builder) buildErrorDef(n *solast.ErrorDef) Doc {
	return Concat(Text("error "+b.text(n.Name)), b.paramParens(n.Params), Text(";"))
}

func (b *builder) buildEvent(n *solast.EventDef) Doc {
	parts := []Doc{Text("event " + b.text(n.Name)), b.paramParens(n.Params)}
	if n.Anonymous {
		parts = append(parts, Text(" anonymous"))
	}
	parts = append(parts, Text(";"))
	return Concat(parts...)
}

func (b *builder) buildTypeDef(n *solast.TypeDef) Doc {
	return Concat(Text("type "+b.text(n.Name)+" is "), b.typeDoc(n.Underlying), Text(";"))
}

// paramParens is a complete self-breaking parameter list with parentheses.
func (b *builder) paramParens(params []*solast.Param) Doc {
	if len(params) == 0 {
		return Text("()")
	}
	return Group(
		Text("("),
		Indent(SoftLine, b.paramList(params)),
		SoftLine,
		Text(")"),
	)
}

// paramList is the comma-joined parameter run without parentheses, for
// callers that place the parens in an enclosing group.
func (b *builder) paramList(params []*solast.Param) Doc {
	docs := make([]Doc, len(params))
	for i, p := range params {
		docs[i] = b.paramDoc(p)
	}
	return Join(Concat(Text(","), Line), docs)
}

func (b *builder) paramDoc(p *solast.Param) Doc {
	parts := []Doc{b.typeDoc(p.Type)}
	if p.Indexed {
		parts = append(parts, Text(" indexed"))
	}
	if p.Location != solast.NoToken {
		parts = append(parts, Text(" "+b.text(p.Location)))
	}
	if p.Name != solast.NoToken {
		parts = append(parts, Text(" "+b.text(p.Name)))
	}
	return Concat(parts...)
}

func (b *builder) typeDoc(t solast.TypeName) Doc {
	switch n := t.(type) {
	case *solast.ElementaryType:
		s := normalizeIntType(b.text(n.Tok), b.cfg.IntTypes)
		if n.Payable {
			s += " payable"
		}
		return Text(s)
	case *solast.UserType:
		return Text(b.identPath(n.Path))
	case *solast.MappingType:
		parts := []Doc{Text("mapping("), b.typeDoc(n.Key)}
		if n.KeyName != solast.NoToken {
			parts = append(parts, Text(" "+b.text(n.KeyName)))
		}
		parts = append(parts, Text(" => "), b.typeDoc(n.Value))
		if n.ValueName != solast.NoToken {
			parts = append(parts, Text(" "+b.text(n.ValueName)))
		}
		parts = append(parts, Text(")"))
		return Concat(parts...)
	case *solast.ArrayType:
		parts := []Doc{b.typeDoc(n.Base), Text("[")}
		if n.Len != nil {
			parts = append(parts, b.buildExpr(n.Len))
		}
		parts = append(parts, Text("]"))
		return Concat(parts...)
	case *solast.FunctionType:
		parts := []Doc{Text("function"), b.paramParens(n.Params)}
		for _, attr := range n.Attributes {
			parts = append(parts, Text(" "), b.funcAttr(attr))
		}
		if len(n.Returns) > 0 {
			parts = append(parts, Text(" returns "), b.paramParens(n.Returns))
		}
		return Concat(parts...)
	}
	return Nil
}

func (b *builder) identPath(p *solast.IdentPath) string {
	names := make([]string, len(p.Toks))
	for i, tok := range p.Toks {
		names[i] = b.text(tok)
	}
	return strings.Join(names, ".")
}
