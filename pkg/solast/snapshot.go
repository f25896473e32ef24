// Package solast provides the lossless syntax tree representation for solfmt.
// It defines:
//   - FileSnapshot: the complete, immutable view of one source file
//   - Token stream: every code byte classified, with comments and blank lines
//     carried as trivia so no input byte is lost
//   - Node types: the full Solidity surface grammar, referencing tokens by
//     index into the snapshot rather than by owning pointers
package solast

// FileSnapshot is an immutable, lossless view of a Solidity file.
// It holds the raw content, line metadata, token stream, and parse tree root.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Tokens is the full token stream in source order, ending with TokEOF.
	Tokens []Token

	// Root is the parse tree root (SourceUnit). Nil until parsed.
	Root *SourceUnit
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a snapshot from content and builds the line index.
// Tokenizing and parsing are the parser package's job.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// TokenText returns the text of the token at the given index.
func (f *FileSnapshot) TokenText(idx int) string {
	if idx < 0 || idx >= len(f.Tokens) {
		return ""
	}
	return string(f.Tokens[idx].Text(f.Content))
}
