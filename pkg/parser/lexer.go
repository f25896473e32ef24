package parser

import (
	"strings"

	"github.com/yaklabco/solfmt/pkg/solast"
)

// lexer performs a single pass over the source, producing a token stream with
// every comment and blank-line run attached as trivia. No input byte that
// matters to reconstruction is dropped.
type lexer struct {
	content []byte
	pos     int
	tokens  []solast.Token

	// pending holds leading trivia collected since the last token.
	pending []solast.Trivia

	// nlSinceTok counts newlines seen since the last token or comment.
	nlSinceTok int

	// pragmaState sequences the special lexing of pragma values:
	// 0 = off, 1 = after `pragma`, 2 = after the pragma name.
	pragmaState int
}

// Tokenize lexes content into a token stream ending with a TokEOF token.
// Comments and blank-line runs are attached to tokens as trivia: trailing on
// the last token of their line, leading on the next token otherwise.
func Tokenize(content []byte) ([]solast.Token, error) {
	lx := &lexer{
		content: content,
		tokens:  make([]solast.Token, 0, len(content)/8),
	}
	if err := lx.run(); err != nil {
		return nil, err
	}
	return lx.tokens, nil
}

func (lx *lexer) run() error {
	for lx.pos < len(lx.content) {
		ch := lx.content[lx.pos]

		switch {
		case ch == '\n':
			lx.nlSinceTok++
			lx.pos++
		case ch == ' ' || ch == '\t' || ch == '\r':
			lx.pos++
		case ch == '/' && lx.peekAt(1) == '/':
			lx.lexLineComment()
		case ch == '/' && lx.peekAt(1) == '*':
			if err := lx.lexBlockComment(); err != nil {
				return err
			}
		default:
			if lx.pragmaState == 2 {
				lx.lexPragmaValue()
				continue
			}
			if err := lx.lexToken(ch); err != nil {
				return err
			}
		}
	}

	// EOF token carries any trailing file comments as leading trivia.
	lx.flushBlank()
	lx.tokens = append(lx.tokens, solast.Token{
		Kind:        solast.TokEOF,
		StartOffset: len(lx.content),
		EndOffset:   len(lx.content),
		Leading:     lx.pending,
	})
	lx.pending = nil
	return nil
}

func (lx *lexer) peekAt(n int) byte {
	if lx.pos+n >= len(lx.content) {
		return 0
	}
	return lx.content[lx.pos+n]
}

// flushBlank records a blank-line run in pending trivia when two or more
// newlines were seen since the last content.
func (lx *lexer) flushBlank() {
	if lx.nlSinceTok >= 2 {
		lx.pending = append(lx.pending, solast.Trivia{
			Kind:       solast.TriviaBlank,
			BlankLines: lx.nlSinceTok - 1,
		})
	}
	lx.nlSinceTok = 0
}

// attachComment routes a finished comment to trailing trivia of the previous
// token when it sits on the same line, otherwise to pending leading trivia.
// Doc comments always lead: they belong to the next declaration.
func (lx *lexer) attachComment(tr solast.Trivia) {
	sameLine := lx.nlSinceTok == 0 && len(lx.pending) == 0 && len(lx.tokens) > 0
	if sameLine && !tr.IsDoc() {
		last := &lx.tokens[len(lx.tokens)-1]
		last.Trailing = append(last.Trailing, tr)
		return
	}
	lx.flushBlank()
	lx.pending = append(lx.pending, tr)
}

func (lx *lexer) lexLineComment() {
	start := lx.pos
	kind := solast.TriviaLineComment
	if lx.peekAt(2) == '/' && lx.peekAt(3) != '/' {
		kind = solast.TriviaDocLine
	}
	for lx.pos < len(lx.content) && lx.content[lx.pos] != '\n' {
		lx.pos++
	}
	lx.attachComment(solast.Trivia{Kind: kind, StartOffset: start, EndOffset: lx.pos})
}

func (lx *lexer) lexBlockComment() error {
	start := lx.pos
	kind := solast.TriviaBlockComment
	if lx.peekAt(2) == '*' && lx.peekAt(3) != '*' && lx.peekAt(3) != '/' {
		kind = solast.TriviaDocBlock
	}
	lx.pos += 2
	for {
		if lx.pos+1 >= len(lx.content) {
			return &LexError{Offset: start, Message: "unterminated block comment"}
		}
		if lx.content[lx.pos] == '*' && lx.content[lx.pos+1] == '/' {
			lx.pos += 2
			break
		}
		lx.pos++
	}
	lx.attachComment(solast.Trivia{Kind: kind, StartOffset: start, EndOffset: lx.pos})
	return nil
}

// lexPragmaValue captures everything from the current position up to the next
// semicolon as a single raw token, spelled exactly as written.
func (lx *lexer) lexPragmaValue() {
	lx.pragmaState = 0
	if lx.content[lx.pos] == ';' {
		return
	}
	start := lx.pos
	end := start
	for lx.pos < len(lx.content) && lx.content[lx.pos] != ';' {
		if !isSpaceByte(lx.content[lx.pos]) {
			end = lx.pos + 1
		}
		lx.pos++
	}
	lx.emit(solast.TokPragmaText, start, end)
	lx.pos = end
}

func (lx *lexer) emit(kind solast.TokenKind, start, end int) {
	lx.flushBlank()
	lx.tokens = append(lx.tokens, solast.Token{
		Kind:        kind,
		StartOffset: start,
		EndOffset:   end,
		Leading:     lx.pending,
	})
	lx.pending = nil
	lx.nlSinceTok = 0
}

func (lx *lexer) lexToken(ch byte) error {
	switch {
	case isIdentStart(ch):
		return lx.lexIdentOrKeyword()
	case isDigit(ch) || (ch == '.' && isDigit(lx.peekAt(1))):
		lx.lexNumber()
		return nil
	case ch == '"' || ch == '\'':
		return lx.lexString(lx.pos, solast.TokString)
	default:
		lx.lexPunct()
		return nil
	}
}

func (lx *lexer) lexIdentOrKeyword() error {
	start := lx.pos
	for lx.pos < len(lx.content) && isIdentPart(lx.content[lx.pos]) {
		lx.pos++
	}
	text := string(lx.content[start:lx.pos])

	// hex"..." and unicode"..." literals include their prefix.
	if next := lx.peekAt(0); next == '"' || next == '\'' {
		switch text {
		case "hex":
			return lx.lexString(start, solast.TokHexString)
		case "unicode":
			return lx.lexString(start, solast.TokUniString)
		}
	}

	kind := solast.TokIdent
	if isKeyword(text) {
		kind = solast.TokKeyword
	}
	lx.emit(kind, start, lx.pos)

	switch lx.pragmaState {
	case 0:
		if text == "pragma" {
			lx.pragmaState = 1
		}
	case 1:
		lx.pragmaState = 2
	}
	return nil
}

// lexNumber handles decimal, hex, and scientific literals. Underscore digit
// separators are part of the token and preserved exactly.
func (lx *lexer) lexNumber() {
	start := lx.pos
	if lx.content[lx.pos] == '0' && (lx.peekAt(1) == 'x' || lx.peekAt(1) == 'X') {
		lx.pos += 2
		for lx.pos < len(lx.content) && (isHexDigit(lx.content[lx.pos]) || lx.content[lx.pos] == '_') {
			lx.pos++
		}
		lx.emit(solast.TokNumber, start, lx.pos)
		return
	}

	lx.consumeDigits()
	if lx.peekAt(0) == '.' && isDigit(lx.peekAt(1)) {
		lx.pos++
		lx.consumeDigits()
	}
	if e := lx.peekAt(0); e == 'e' || e == 'E' {
		after := lx.peekAt(1)
		if isDigit(after) || ((after == '+' || after == '-') && isDigit(lx.peekAt(2))) {
			lx.pos++
			if lx.peekAt(0) == '+' || lx.peekAt(0) == '-' {
				lx.pos++
			}
			lx.consumeDigits()
		}
	}
	lx.emit(solast.TokNumber, start, lx.pos)
}

func (lx *lexer) consumeDigits() {
	for lx.pos < len(lx.content) && (isDigit(lx.content[lx.pos]) || lx.content[lx.pos] == '_') {
		lx.pos++
	}
}

func (lx *lexer) lexString(start int, kind solast.TokenKind) error {
	quote := lx.content[lx.pos]
	lx.pos++
	for {
		if lx.pos >= len(lx.content) || lx.content[lx.pos] == '\n' {
			return &LexError{Offset: start, Message: "unterminated string literal"}
		}
		ch := lx.content[lx.pos]
		if ch == '\\' {
			lx.pos += 2
			continue
		}
		lx.pos++
		if ch == quote {
			break
		}
	}
	lx.emit(kind, start, lx.pos)
	return nil
}

// multiCharPuncts lists compound operators, longest first, so that maximal
// munch resolves e.g. ">>=" before ">>".
var multiCharPuncts = []string{
	">>>=", "<<=", ">>=", ">>>", "**", "++", "--", "&&", "||",
	"==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=",
	"&=", "|=", "^=", "=>", "->", "<<", ">>",
}

func (lx *lexer) lexPunct() {
	rest := lx.content[lx.pos:]
	for _, op := range multiCharPuncts {
		if len(rest) >= len(op) && string(rest[:len(op)]) == op {
			lx.emit(solast.TokPunct, lx.pos, lx.pos+len(op))
			lx.pos += len(op)
			return
		}
	}
	lx.emit(solast.TokPunct, lx.pos, lx.pos+1)
	lx.pos++
}

func isSpaceByte(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// keywords are the reserved words the parser dispatches on. Elementary type
// names are classified separately by isElementaryType. Contextual words
// such as `from` and `global` are not here: they lex as identifiers and the
// parser matches them by text where the grammar calls for them.
var keywords = map[string]bool{
	"pragma": true, "import": true, "as": true, "is": true,
	"contract": true, "interface": true, "library": true, "abstract": true,
	"function": true, "modifier": true, "constructor": true, "fallback": true,
	"receive": true, "struct": true, "enum": true, "event": true, "error": true,
	"using": true, "for": true,
	"if": true, "else": true, "while": true, "do": true, "continue": true,
	"break": true, "return": true, "returns": true, "emit": true, "revert": true,
	"try": true, "catch": true, "assembly": true, "unchecked": true,
	"new": true, "delete": true, "mapping": true, "type": true,
	"public": true, "private": true, "internal": true, "external": true,
	"pure": true, "view": true, "payable": true, "constant": true,
	"immutable": true, "virtual": true, "override": true,
	"indexed": true, "anonymous": true,
	"memory": true, "storage": true, "calldata": true,
	"true": true, "false": true,
	"wei": true, "gwei": true, "ether": true,
	"seconds": true, "minutes": true, "hours": true, "days": true, "weeks": true,
}

// unitSuffixes are the denomination keywords that may follow a number literal.
var unitSuffixes = map[string]bool{
	"wei": true, "gwei": true, "ether": true,
	"seconds": true, "minutes": true, "hours": true, "days": true, "weeks": true,
}

func isKeyword(text string) bool {
	return keywords[text] || isElementaryType(text)
}

// isElementaryType reports whether text names a builtin value type:
// address, bool, string, bytes, byte, bytesN, intN, uintN, fixed, ufixed.
func isElementaryType(text string) bool {
	switch text {
	case "address", "bool", "string", "bytes", "byte", "int", "uint", "fixed", "ufixed":
		return true
	}
	for _, prefix := range []string{"bytes", "int", "uint"} {
		if rest, ok := strings.CutPrefix(text, prefix); ok && rest != "" && allDigits(rest) {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
