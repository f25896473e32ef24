package solast

//go:generate stringer -type=TriviaKind -trimprefix=Trivia

// TriviaKind classifies non-code source elements attached to tokens.
type TriviaKind uint8

const (
	// TriviaLineComment represents a // comment.
	TriviaLineComment TriviaKind = iota
	// TriviaBlockComment represents a /* */ comment.
	TriviaBlockComment
	// TriviaDocLine represents a /// doc comment.
	TriviaDocLine
	// TriviaDocBlock represents a /** */ doc comment.
	TriviaDocBlock
	// TriviaBlank records a run of blank lines between tokens.
	TriviaBlank
)

// Trivia represents a comment or blank-line run attached to a token.
// Nothing the lexer sees is discarded: every comment byte is reachable
// through exactly one Trivia record.
type Trivia struct {
	// Kind classifies this trivia.
	Kind TriviaKind

	// StartOffset is the byte index where the trivia begins (inclusive).
	// Zero for TriviaBlank records.
	StartOffset int

	// EndOffset is the byte index where the trivia ends (exclusive).
	EndOffset int

	// BlankLines is the number of consecutive blank lines for TriviaBlank.
	BlankLines int
}

// IsComment returns true for all comment trivia kinds.
func (tr Trivia) IsComment() bool {
	return tr.Kind != TriviaBlank
}

// IsDoc returns true for doc comment trivia (///, /** */).
// Doc comments attach to the next declaration rather than trailing a line.
func (tr Trivia) IsDoc() bool {
	return tr.Kind == TriviaDocLine || tr.Kind == TriviaDocBlock
}

// IsBlockStyle returns true for /* */ and /** */ comments.
func (tr Trivia) IsBlockStyle() bool {
	return tr.Kind == TriviaBlockComment || tr.Kind == TriviaDocBlock
}

// Text returns the full comment text, delimiters included.
func (tr Trivia) Text(content []byte) []byte {
	if tr.StartOffset < 0 || tr.EndOffset > len(content) || tr.StartOffset > tr.EndOffset {
		return nil
	}
	return content[tr.StartOffset:tr.EndOffset]
}

// CountComments returns the number of comment trivia records attached to the
// given tokens, leading and trailing included. Used by conservation checks.
func CountComments(tokens []Token) int {
	count := 0
	for _, tok := range tokens {
		for _, tr := range tok.Leading {
			if tr.IsComment() {
				count++
			}
		}
		for _, tr := range tok.Trailing {
			if tr.IsComment() {
				count++
			}
		}
	}
	return count
}
