package parser

import (
	"fmt"

	"github.com/yaklabco/solfmt/pkg/solast"
)

// parser is a recursive-descent parser over the token stream. Parse errors
// unwind through a bailout panic that Parse converts back into an error;
// there is no recovery, the whole file is skipped on failure.
type parser struct {
	file *solast.FileSnapshot
	toks []solast.Token
	pos  int
}

type bailout struct {
	err *ParseError
}

// Parse lexes and parses content into a full-fidelity snapshot.
// On failure the returned error is a *LexError or *ParseError.
func Parse(path string, content []byte) (snap *solast.FileSnapshot, err error) {
	snap = solast.NewFileSnapshot(path, content)

	tokens, lexErr := Tokenize(content)
	if lexErr != nil {
		return nil, lexErr
	}
	snap.Tokens = tokens

	p := &parser{file: snap, toks: tokens}

	defer func() {
		if r := recover(); r != nil {
			b, isBail := r.(bailout)
			if !isBail {
				panic(r)
			}
			snap = nil
			err = b.err
		}
	}()

	snap.Root = p.parseSourceUnit()
	return snap, nil
}

// ---------------------------------------------------------------------------
// Token helpers
// ---------------------------------------------------------------------------

func (p *parser) cur() solast.Token {
	if p.pos >= len(p.toks) {
		return solast.Token{Kind: solast.TokEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) text() string {
	return p.file.TokenText(p.pos)
}

func (p *parser) textAt(idx int) string {
	return p.file.TokenText(idx)
}

func (p *parser) atEOF() bool {
	return p.cur().Kind == solast.TokEOF
}

func (p *parser) atPunct(s string) bool {
	return p.cur().Kind == solast.TokPunct && p.text() == s
}

func (p *parser) atKeyword(s string) bool {
	return p.cur().Kind == solast.TokKeyword && p.text() == s
}

// take consumes the current token and returns its index.
func (p *parser) take() int {
	idx := p.pos
	p.pos++
	return idx
}

func (p *parser) fail(expected string) {
	tok := p.cur()
	found := "end of file"
	if tok.Kind != solast.TokEOF {
		found = fmt.Sprintf("%q", p.text())
	}
	panic(bailout{err: &ParseError{
		Offset:   tok.StartOffset,
		Expected: expected,
		Found:    found,
	}})
}

func (p *parser) expectPunct(s string) int {
	if !p.atPunct(s) {
		p.fail(fmt.Sprintf("%q", s))
	}
	return p.take()
}

func (p *parser) expectKeyword(s string) int {
	if !p.atKeyword(s) {
		p.fail(fmt.Sprintf("%q", s))
	}
	return p.take()
}

func (p *parser) expectIdent() int {
	if p.cur().Kind != solast.TokIdent {
		p.fail("identifier")
	}
	return p.take()
}

// eatPunct consumes the punct if present and reports whether it did.
func (p *parser) eatPunct(s string) bool {
	if p.atPunct(s) {
		p.take()
		return true
	}
	return false
}

func (p *parser) eatKeyword(s string) bool {
	if p.atKeyword(s) {
		p.take()
		return true
	}
	return false
}

// atWord matches contextual words like `from` and `global`, which lex as
// identifiers but are meaningful to the grammar in specific positions.
func (p *parser) atWord(s string) bool {
	k := p.cur().Kind
	return (k == solast.TokIdent || k == solast.TokKeyword) && p.text() == s
}

func (p *parser) expectWord(s string) int {
	if !p.atWord(s) {
		p.fail(fmt.Sprintf("%q", s))
	}
	return p.take()
}

func (p *parser) eatWord(s string) bool {
	if p.atWord(s) {
		p.take()
		return true
	}
	return false
}

// span closes a node span opened at token index start.
func (p *parser) span(start int) solast.Span {
	last := p.pos - 1
	if last < start {
		last = start
	}
	return solast.Span{First: start, Last: last}
}

// speculate runs fn and reports whether it parsed without error. On failure
// the position is restored and no tokens are consumed.
func (p *parser) speculate(fn func()) (ok bool) {
	save := p.pos
	defer func() {
		if r := recover(); r != nil {
			if _, isBail := r.(bailout); isBail {
				p.pos = save
				return
			}
			panic(r)
		}
		ok = true
	}()
	fn()
	return ok
}

// ---------------------------------------------------------------------------
// Source unit and declarations
// ---------------------------------------------------------------------------

func (p *parser) parseSourceUnit() *solast.SourceUnit {
	start := p.pos
	unit := &solast.SourceUnit{}
	for !p.atEOF() {
		unit.Items = append(unit.Items, p.parseDecl(true))
	}
	unit.Span = p.span(start)
	return unit
}

// parseDecl parses one declaration. topLevel admits pragma and import; the
// remaining forms are shared with contract bodies.
func (p *parser) parseDecl(topLevel bool) solast.Decl {
	if p.cur().Kind == solast.TokKeyword {
		switch p.text() {
		case "pragma":
			if topLevel {
				return p.parsePragma()
			}
		case "import":
			if topLevel {
				return p.parseImport()
			}
		case "abstract", "contract", "interface", "library":
			return p.parseContract()
		case "using":
			return p.parseUsingFor()
		case "function":
			// `function (` opens a function-typed state variable, not a
			// definition. Try the variable form first and back off to a
			// definition if it does not parse through the semicolon.
			if p.peekKind(1) == solast.TokPunct && p.textAt(p.pos+1) == "(" {
				var sv *solast.StateVarDecl
				if p.speculate(func() { sv = p.parseStateVar() }) {
					return sv
				}
			}
			return p.parseFunction()
		case "modifier", "constructor", "fallback", "receive":
			return p.parseFunction()
		case "struct":
			return p.parseStruct()
		case "enum":
			return p.parseEnum()
		case "event":
			return p.parseEvent()
		case "error":
			return p.parseErrorDef()
		case "type":
			return p.parseTypeDef()
		}
	}
	return p.parseStateVar()
}

func (p *parser) parsePragma() *solast.PragmaDirective {
	start := p.pos
	p.expectKeyword("pragma")
	name := p.expectIdent()
	value := solast.NoToken
	if p.cur().Kind == solast.TokPragmaText {
		value = p.take()
	}
	p.expectPunct(";")
	return &solast.PragmaDirective{Span: p.span(start), Name: name, Value: value}
}

func (p *parser) parseImport() *solast.ImportDirective {
	start := p.pos
	p.expectKeyword("import")
	imp := &solast.ImportDirective{Path: solast.NoToken, Alias: solast.NoToken}

	switch {
	case p.cur().Kind == solast.TokString:
		imp.Path = p.take()
		if p.eatKeyword("as") {
			imp.Alias = p.expectIdent()
		}
	case p.atPunct("*"):
		p.take()
		imp.Star = true
		p.expectKeyword("as")
		imp.Alias = p.expectIdent()
		p.expectWord("from")
		imp.HasFrom = true
		imp.Path = p.expectString()
	case p.atPunct("{"):
		p.take()
		for !p.atPunct("}") {
			sym := solast.ImportSymbol{Name: p.expectIdent(), Alias: solast.NoToken}
			if p.eatKeyword("as") {
				sym.Alias = p.expectIdent()
			}
			imp.Symbols = append(imp.Symbols, sym)
			if !p.eatPunct(",") {
				break
			}
		}
		p.expectPunct("}")
		p.expectWord("from")
		imp.HasFrom = true
		imp.Path = p.expectString()
	default:
		p.fail("import path")
	}

	p.expectPunct(";")
	imp.Span = p.span(start)
	return imp
}

func (p *parser) expectString() int {
	if p.cur().Kind != solast.TokString {
		p.fail("string literal")
	}
	return p.take()
}

func (p *parser) parseContract() *solast.ContractDef {
	start := p.pos
	def := &solast.ContractDef{}
	if p.eatKeyword("abstract") {
		def.Abstract = true
	}
	switch p.text() {
	case "contract":
		def.Kind = solast.KindContract
	case "interface":
		def.Kind = solast.KindInterface
	case "library":
		def.Kind = solast.KindLibrary
	default:
		p.fail(`"contract", "interface", or "library"`)
	}
	p.take()
	def.Name = p.expectIdent()

	if p.eatKeyword("is") {
		for {
			def.Bases = append(def.Bases, p.parseInheritance())
			if !p.eatPunct(",") {
				break
			}
		}
	}

	p.expectPunct("{")
	for !p.atPunct("}") {
		if p.atEOF() {
			p.fail(`"}"`)
		}
		def.Members = append(def.Members, p.parseDecl(false))
	}
	p.expectPunct("}")
	def.Span = p.span(start)
	return def
}

func (p *parser) parseInheritance() *solast.InheritanceSpecifier {
	start := p.pos
	base := &solast.InheritanceSpecifier{Name: p.parseIdentPath()}
	if p.atPunct("(") {
		base.HasParens = true
		p.take()
		for !p.atPunct(")") {
			base.Args = append(base.Args, p.parseExpr())
			if !p.eatPunct(",") {
				break
			}
		}
		p.expectPunct(")")
	}
	base.Span = p.span(start)
	return base
}

func (p *parser) parseUsingFor() *solast.UsingFor {
	start := p.pos
	p.expectKeyword("using")
	uf := &solast.UsingFor{}

	if p.atPunct("{") {
		p.take()
		for !p.atPunct("}") {
			uf.Functions = append(uf.Functions, p.parseIdentPath())
			if !p.eatPunct(",") {
				break
			}
		}
		p.expectPunct("}")
	} else {
		uf.Library = p.parseIdentPath()
	}

	p.expectKeyword("for")
	if !p.eatPunct("*") {
		uf.Target = p.parseType()
	}
	if p.eatWord("global") {
		uf.Global = true
	}
	p.expectPunct(";")
	uf.Span = p.span(start)
	return uf
}

func (p *parser) parseStruct() *solast.StructDef {
	start := p.pos
	p.expectKeyword("struct")
	def := &solast.StructDef{Name: p.expectIdent()}
	p.expectPunct("{")
	for !p.atPunct("}") {
		fieldStart := p.pos
		field := &solast.StructField{Type: p.parseType(), Name: p.expectIdent()}
		p.expectPunct(";")
		field.Span = p.span(fieldStart)
		def.Fields = append(def.Fields, field)
	}
	p.expectPunct("}")
	def.Span = p.span(start)
	return def
}

func (p *parser) parseEnum() *solast.EnumDef {
	start := p.pos
	p.expectKeyword("enum")
	def := &solast.EnumDef{Name: p.expectIdent()}
	p.expectPunct("{")
	for !p.atPunct("}") {
		def.Members = append(def.Members, p.expectIdent())
		if !p.eatPunct(",") {
			break
		}
	}
	p.expectPunct("}")
	def.Span = p.span(start)
	return def
}

func (p *parser) parseEvent() *solast.EventDef {
	start := p.pos
	p.expectKeyword("event")
	def := &solast.EventDef{Name: p.expectIdent()}
	def.Params = p.parseParamList(true)
	if p.eatKeyword("anonymous") {
		def.Anonymous = true
	}
	p.expectPunct(";")
	def.Span = p.span(start)
	return def
}

func (p *parser) parseErrorDef() *solast.ErrorDef {
	start := p.pos
	p.expectKeyword("error")
	def := &solast.ErrorDef{Name: p.expectIdent()}
	def.Params = p.parseParamList(false)
	p.expectPunct(";")
	def.Span = p.span(start)
	return def
}

func (p *parser) parseTypeDef() *solast.TypeDef {
	start := p.pos
	p.expectKeyword("type")
	def := &solast.TypeDef{Name: p.expectIdent()}
	p.expectKeyword("is")
	def.Underlying = p.parseType()
	p.expectPunct(";")
	def.Span = p.span(start)
	return def
}

// stateVarAttrs are the bare keywords allowed on state variables.
var stateVarAttrs = map[string]bool{
	"public": true, "private": true, "internal": true,
	"constant": true, "immutable": true, "payable": true,
}

func (p *parser) parseStateVar() *solast.StateVarDecl {
	start := p.pos
	decl := &solast.StateVarDecl{Type: p.parseType(), Name: solast.NoToken}

	for p.cur().Kind == solast.TokKeyword {
		attrStart := p.pos
		switch {
		case stateVarAttrs[p.text()]:
			attr := solast.VarAttribute{Keyword: p.take()}
			attr.Span = p.span(attrStart)
			decl.Attributes = append(decl.Attributes, attr)
		case p.text() == "override":
			attr := solast.VarAttribute{Keyword: p.take()}
			if p.eatPunct("(") {
				for !p.atPunct(")") {
					attr.Args = append(attr.Args, p.parseIdentPath())
					if !p.eatPunct(",") {
						break
					}
				}
				p.expectPunct(")")
			}
			attr.Span = p.span(attrStart)
			decl.Attributes = append(decl.Attributes, attr)
		default:
			p.fail("state variable attribute or name")
		}
	}

	decl.Name = p.expectIdent()
	if p.eatPunct("=") {
		decl.Value = p.parseExpr()
	}
	p.expectPunct(";")
	decl.Span = p.span(start)
	return decl
}

// ---------------------------------------------------------------------------
// Functions
// ---------------------------------------------------------------------------

func (p *parser) parseFunction() *solast.FunctionDef {
	start := p.pos
	def := &solast.FunctionDef{Name: solast.NoToken}

	switch p.text() {
	case "function":
		def.Kind = solast.KindFunction
	case "constructor":
		def.Kind = solast.KindConstructor
	case "fallback":
		def.Kind = solast.KindFallback
	case "receive":
		def.Kind = solast.KindReceive
	case "modifier":
		def.Kind = solast.KindModifier
	default:
		p.fail("function-like keyword")
	}
	p.take()

	if def.Kind == solast.KindFunction || def.Kind == solast.KindModifier {
		def.Name = p.expectIdent()
	}

	// Modifiers may omit the parameter list entirely.
	if p.atPunct("(") {
		def.Params = p.parseParamList(false)
	} else if def.Kind != solast.KindModifier {
		p.fail(`"("`)
	}

	def.Attributes = p.parseFuncAttrs()

	if p.eatKeyword("returns") {
		def.Returns = p.parseParamList(false)
	}

	// Attributes may legally follow the returns clause in older sources;
	// the formatter reorders nothing, so reject only what cannot parse.
	if p.atPunct("{") {
		def.Body = p.parseBlock(false)
	} else {
		p.expectPunct(";")
	}
	def.Span = p.span(start)
	return def
}

// funcAttrKeywords are the bare keywords valid in a function header.
var funcAttrKeywords = map[string]bool{
	"public": true, "private": true, "internal": true, "external": true,
	"pure": true, "view": true, "payable": true, "constant": true,
	"virtual": true,
}

func (p *parser) parseFuncAttrs() []*solast.FuncAttr {
	var attrs []*solast.FuncAttr
	for {
		start := p.pos
		switch {
		case p.cur().Kind == solast.TokKeyword && funcAttrKeywords[p.text()]:
			attr := &solast.FuncAttr{Kind: solast.AttrKeyword, Keyword: p.take()}
			attr.Span = p.span(start)
			attrs = append(attrs, attr)
		case p.atKeyword("override"):
			attr := &solast.FuncAttr{Kind: solast.AttrOverride, Keyword: p.take()}
			if p.eatPunct("(") {
				for !p.atPunct(")") {
					attr.Paths = append(attr.Paths, p.parseIdentPath())
					if !p.eatPunct(",") {
						break
					}
				}
				p.expectPunct(")")
			}
			attr.Span = p.span(start)
			attrs = append(attrs, attr)
		case p.cur().Kind == solast.TokIdent:
			attr := &solast.FuncAttr{Kind: solast.AttrModifier, Keyword: solast.NoToken, Name: p.parseIdentPath()}
			if p.eatPunct("(") {
				attr.Called = true
				for !p.atPunct(")") {
					attr.Args = append(attr.Args, p.parseExpr())
					if !p.eatPunct(",") {
						break
					}
				}
				p.expectPunct(")")
			}
			attr.Span = p.span(start)
			attrs = append(attrs, attr)
		default:
			return attrs
		}
	}
}

// parseParamList parses a parenthesized, comma-separated parameter list.
// eventCtx admits the `indexed` keyword.
func (p *parser) parseParamList(eventCtx bool) []*solast.Param {
	p.expectPunct("(")
	var params []*solast.Param
	for !p.atPunct(")") {
		params = append(params, p.parseParam(eventCtx))
		if !p.eatPunct(",") {
			break
		}
	}
	p.expectPunct(")")
	return params
}

func (p *parser) parseParam(eventCtx bool) *solast.Param {
	start := p.pos
	param := &solast.Param{
		Type:     p.parseType(),
		Location: solast.NoToken,
		Name:     solast.NoToken,
	}
	for p.cur().Kind == solast.TokKeyword {
		switch p.text() {
		case "memory", "storage", "calldata":
			param.Location = p.take()
			continue
		case "indexed":
			if eventCtx {
				param.Indexed = true
				p.take()
				continue
			}
		}
		break
	}
	if p.cur().Kind == solast.TokIdent {
		param.Name = p.take()
	}
	param.Span = p.span(start)
	return param
}

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

func (p *parser) parseType() solast.TypeName {
	base := p.parseBaseType()
	// Array suffixes bind left to right: uint[2][] is an array of uint[2].
	for p.atPunct("[") {
		start := base.FirstTok()
		p.take()
		arr := &solast.ArrayType{Base: base}
		if !p.atPunct("]") {
			arr.Len = p.parseExpr()
		}
		p.expectPunct("]")
		arr.Span = solast.Span{First: start, Last: p.pos - 1}
		base = arr
	}
	return base
}

func (p *parser) parseBaseType() solast.TypeName {
	start := p.pos
	switch {
	case p.atKeyword("mapping"):
		p.take()
		p.expectPunct("(")
		m := &solast.MappingType{KeyName: solast.NoToken, ValueName: solast.NoToken}
		m.Key = p.parseType()
		if p.cur().Kind == solast.TokIdent {
			m.KeyName = p.take()
		}
		p.expectPunct("=>")
		m.Value = p.parseType()
		if p.cur().Kind == solast.TokIdent {
			m.ValueName = p.take()
		}
		p.expectPunct(")")
		m.Span = p.span(start)
		return m

	case p.atKeyword("function"):
		p.take()
		ft := &solast.FunctionType{Params: p.parseParamList(false)}
		// Only bare keywords attribute a function type; an identifier here
		// is the declared name, never a modifier invocation.
		for p.cur().Kind == solast.TokKeyword && funcAttrKeywords[p.text()] {
			attrStart := p.pos
			attr := &solast.FuncAttr{Kind: solast.AttrKeyword, Keyword: p.take()}
			attr.Span = p.span(attrStart)
			ft.Attributes = append(ft.Attributes, attr)
		}
		if p.eatKeyword("returns") {
			ft.Returns = p.parseParamList(false)
		}
		ft.Span = p.span(start)
		return ft

	case p.cur().Kind == solast.TokKeyword && isElementaryType(p.text()):
		el := &solast.ElementaryType{Tok: p.take()}
		if p.textAt(el.Tok) == "address" && p.atKeyword("payable") {
			el.Payable = true
			p.take()
		}
		el.Span = p.span(start)
		return el

	case p.cur().Kind == solast.TokIdent:
		path := p.parseIdentPath()
		return &solast.UserType{Span: path.Span, Path: path}
	}

	p.fail("type name")
	return nil
}

func (p *parser) parseIdentPath() *solast.IdentPath {
	start := p.pos
	path := &solast.IdentPath{Toks: []int{p.expectIdent()}}
	for p.atPunct(".") && p.peekKind(1) == solast.TokIdent {
		p.take()
		path.Toks = append(path.Toks, p.take())
	}
	path.Span = p.span(start)
	return path
}

func (p *parser) peekKind(n int) solast.TokenKind {
	if p.pos+n >= len(p.toks) {
		return solast.TokEOF
	}
	return p.toks[p.pos+n].Kind
}
