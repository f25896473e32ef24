package solast

//go:generate stringer -type=TokenKind -trimprefix=Tok

// TokenKind classifies the type of a token in Solidity source.
type TokenKind uint16

// Token kinds. Together with trivia, tokens account for every byte of the
// source, so the original text can always be reconstructed.
const (
	TokEOF TokenKind = iota

	TokIdent
	TokKeyword
	TokNumber     // decimal, hex, or scientific numeric literal
	TokString     // "..." or '...'
	TokHexString  // hex"..." or hex'...'
	TokUniString  // unicode"..." or unicode'...'
	TokPragmaText // raw pragma value up to (not including) the semicolon
	TokPunct      // operators, delimiters, and other punctuation

	TokOther
)

// Token represents a classified span of bytes in the Solidity source.
// Tokens appear in source order; the gaps between them are covered by the
// trivia attached to each token. Leading trivia precedes the token, trailing
// trivia follows it on the same line.
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int

	// Leading holds comments and blank-line records that precede the token.
	Leading []Trivia

	// Trailing holds comments on the same line after the token, up to but
	// not including the newline.
	Trailing []Trivia
}

// Text returns the source text of this token from the given content.
func (t Token) Text(content []byte) []byte {
	if t.StartOffset < 0 || t.EndOffset > len(content) || t.StartOffset > t.EndOffset {
		return nil
	}
	return content[t.StartOffset:t.EndOffset]
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsEmpty returns true if this token has zero length.
func (t Token) IsEmpty() bool {
	return t.StartOffset == t.EndOffset
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(content []byte, kind TokenKind, text string) bool {
	return t.Kind == kind && string(t.Text(content)) == text
}

// ValidateTokens checks that a token slice is ordered and non-overlapping.
// Unlike a gap-free stream, Solidity tokens may have whitespace between them;
// that whitespace is represented by trivia, so only ordering is checked here.
func ValidateTokens(tokens []Token, contentLen int) bool {
	prevEnd := 0
	for _, tok := range tokens {
		if tok.Kind == TokEOF {
			continue
		}
		if tok.StartOffset < prevEnd || tok.EndOffset > contentLen || tok.StartOffset > tok.EndOffset {
			return false
		}
		prevEnd = tok.EndOffset
	}
	return true
}
