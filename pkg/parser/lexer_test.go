package parser_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/solfmt/pkg/parser"
	"github.com/yaklabco/solfmt/pkg/solast"
)

func tokenize(t *testing.T, src string) []solast.Token {
	t.Helper()
	tokens, err := parser.Tokenize([]byte(src))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	return tokens
}

func tokenText(src string, tok solast.Token) string {
	return src[tok.StartOffset:tok.EndOffset]
}

func TestTokenize_KindsAndSpelling(t *testing.T) {
	t.Parallel()

	src := "contract A { uint256 x; }"
	tokens := tokenize(t, src)

	want := []struct {
		kind solast.TokenKind
		text string
	}{
		{solast.TokKeyword, "contract"},
		{solast.TokIdent, "A"},
		{solast.TokPunct, "{"},
		{solast.TokKeyword, "uint256"},
		{solast.TokIdent, "x"},
		{solast.TokPunct, ";"},
		{solast.TokPunct, "}"},
		{solast.TokEOF, ""},
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind {
			t.Errorf("token %d: kind = %v, want %v", i, tokens[i].Kind, w.kind)
		}
		if got := tokenText(src, tokens[i]); got != w.text {
			t.Errorf("token %d: text = %q, want %q", i, got, w.text)
		}
	}
}

func TestTokenize_OffsetsAreOrdered(t *testing.T) {
	t.Parallel()

	src := "pragma solidity ^0.8.0;\ncontract A { function f() public {} }\n"
	tokens := tokenize(t, src)

	prev := 0
	for i, tok := range tokens {
		if tok.StartOffset < prev || tok.EndOffset < tok.StartOffset {
			t.Errorf("token %d has bad span %d..%d after %d", i, tok.StartOffset, tok.EndOffset, prev)
		}
		prev = tok.EndOffset
	}
	if tokens[len(tokens)-1].Kind != solast.TokEOF {
		t.Error("stream does not end with EOF token")
	}
}

func TestTokenize_TrailingCommentAttachment(t *testing.T) {
	t.Parallel()

	src := "uint256 x; // note\n// lead\nuint256 y;\n"
	tokens := tokenize(t, src)

	// Token stream: uint256 x ; uint256 y ; EOF
	semi := tokens[2]
	if len(semi.Trailing) != 1 || string(semi.Trailing[0].Text([]byte(src))) != "// note" {
		t.Errorf("same-line comment not trailing the semicolon: %+v", semi.Trailing)
	}

	next := tokens[3]
	if len(next.Leading) != 1 || string(next.Leading[0].Text([]byte(src))) != "// lead" {
		t.Errorf("own-line comment not leading the next token: %+v", next.Leading)
	}
}

func TestTokenize_DocCommentsAlwaysLead(t *testing.T) {
	t.Parallel()

	src := "uint256 x; /// doc\nuint256 y;\n"
	tokens := tokenize(t, src)

	if len(tokens[2].Trailing) != 0 {
		t.Errorf("doc comment attached trailing: %+v", tokens[2].Trailing)
	}
	next := tokens[3]
	if len(next.Leading) != 1 || next.Leading[0].Kind != solast.TriviaDocLine {
		t.Errorf("doc comment not leading the next token: %+v", next.Leading)
	}
}

func TestTokenize_BlankLineRuns(t *testing.T) {
	t.Parallel()

	src := "uint256 x;\n\n\n\nuint256 y;\n"
	tokens := tokenize(t, src)

	next := tokens[3]
	if len(next.Leading) != 1 {
		t.Fatalf("got %d leading trivia, want 1 blank run: %+v", len(next.Leading), next.Leading)
	}
	blank := next.Leading[0]
	if blank.Kind != solast.TriviaBlank || blank.BlankLines != 3 {
		t.Errorf("blank run = %+v, want 3 blank lines", blank)
	}
}

func TestTokenize_PragmaValueIsRaw(t *testing.T) {
	t.Parallel()

	src := "pragma solidity >=0.8.0 <0.9.0;\n"
	tokens := tokenize(t, src)

	// pragma solidity <value> ; EOF
	val := tokens[2]
	if val.Kind != solast.TokPragmaText {
		t.Fatalf("token kind = %v, want TokPragmaText", val.Kind)
	}
	if got := tokenText(src, val); got != ">=0.8.0 <0.9.0" {
		t.Errorf("pragma value = %q", got)
	}
}

func TestTokenize_Numbers(t *testing.T) {
	t.Parallel()

	tests := []string{"1_000", "0xFF_a0", "1.5", "2.5e-3", "1e18", ".5", "0"}
	for _, lit := range tests {
		src := "uint256 x = " + lit + ";"
		tokens := tokenize(t, src)
		num := tokens[3]
		if num.Kind != solast.TokNumber {
			t.Errorf("%q: kind = %v, want TokNumber", lit, num.Kind)
			continue
		}
		if got := tokenText(src, num); got != lit {
			t.Errorf("%q lexed as %q", lit, got)
		}
	}
}

func TestTokenize_Strings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lit  string
		kind solast.TokenKind
	}{
		{`"plain"`, solast.TokString},
		{`'single'`, solast.TokString},
		{`"esc\"aped"`, solast.TokString},
		{`hex"00ff"`, solast.TokHexString},
		{`hex'00ff'`, solast.TokHexString},
		{`unicode"café"`, solast.TokUniString},
	}
	for _, tt := range tests {
		src := "string constant S = " + tt.lit + ";"
		tokens := tokenize(t, src)
		lit := tokens[4]
		if lit.Kind != tt.kind {
			t.Errorf("%q: kind = %v, want %v", tt.lit, lit.Kind, tt.kind)
			continue
		}
		if got := tokenText(src, lit); got != tt.lit {
			t.Errorf("%q lexed as %q", tt.lit, got)
		}
	}
}

func TestTokenize_MaximalMunchPuncts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want string
	}{
		{"x >>>= y", ">>>="},
		{"x >>= y", ">>="},
		{"x >> y", ">>"},
		{"x ** y", "**"},
		{"x => y", "=>"},
		{"x != y", "!="},
		{"x ++", "++"},
	}
	for _, tt := range tests {
		tokens := tokenize(t, tt.src)
		op := tokens[1]
		if op.Kind != solast.TokPunct || tokenText(tt.src, op) != tt.want {
			t.Errorf("%q: operator lexed as %q", tt.src, tokenText(tt.src, op))
		}
	}
}

func TestTokenize_UnterminatedString(t *testing.T) {
	t.Parallel()

	_, err := parser.Tokenize([]byte("string constant S = \"open;\n"))
	var lexErr *parser.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("error = %v, want *LexError", err)
	}
	if lexErr.Offset != 20 {
		t.Errorf("Offset = %d, want 20", lexErr.Offset)
	}
}

func TestTokenize_UnterminatedBlockComment(t *testing.T) {
	t.Parallel()

	_, err := parser.Tokenize([]byte("/* never closed"))
	var lexErr *parser.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("error = %v, want *LexError", err)
	}
}

func TestTokenize_FileTrailingCommentsOnEOF(t *testing.T) {
	t.Parallel()

	src := "contract A {}\n// sign-off\n"
	tokens := tokenize(t, src)

	eof := tokens[len(tokens)-1]
	if eof.Kind != solast.TokEOF {
		t.Fatal("last token is not EOF")
	}
	if len(eof.Leading) != 1 || string(eof.Leading[0].Text([]byte(src))) != "// sign-off" {
		t.Errorf("file-final comment not attached to EOF: %+v", eof.Leading)
	}
}

func TestTokenize_ElementaryTypesAreKeywords(t *testing.T) {
	t.Parallel()

	for _, word := range []string{"address", "bool", "bytes32", "uint8", "int128", "string"} {
		tokens := tokenize(t, word+" x;")
		if tokens[0].Kind != solast.TokKeyword {
			t.Errorf("%q lexed as %v, want keyword", word, tokens[0].Kind)
		}
	}

	// Lookalikes with a non-numeric suffix are plain identifiers.
	for _, word := range []string{"uint256x", "bytesN", "mycontract"} {
		tokens := tokenize(t, word+" ;")
		if tokens[0].Kind != solast.TokIdent {
			t.Errorf("%q lexed as %v, want identifier", word, tokens[0].Kind)
		}
	}
}
