package solast

// SourceRange represents a half-open byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Overlaps returns true if the two ranges share at least one byte.
func (r SourceRange) Overlaps(other SourceRange) bool {
	return r.StartOffset < other.EndOffset && other.StartOffset < r.EndOffset
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// NodeRange returns the byte range covered by a node's tokens, trivia
// excluded. Returns an empty range for nil or degenerate nodes.
func (f *FileSnapshot) NodeRange(n Node) SourceRange {
	if n == nil {
		return SourceRange{}
	}
	first, last := n.FirstTok(), n.LastTok()
	if first < 0 || last < 0 || first >= len(f.Tokens) || last >= len(f.Tokens) {
		return SourceRange{}
	}
	return SourceRange{
		StartOffset: f.Tokens[first].StartOffset,
		EndOffset:   f.Tokens[last].EndOffset,
	}
}

// NodeText returns the source text for a node, trivia excluded.
func (f *FileSnapshot) NodeText(n Node) []byte {
	r := f.NodeRange(n)
	if r.StartOffset < 0 || r.EndOffset > len(f.Content) {
		return nil
	}
	return f.Content[r.StartOffset:r.EndOffset]
}

// PositionOf converts a byte offset into a Position.
func (f *FileSnapshot) PositionOf(offset int) Position {
	line, col := f.LineAt(offset)
	return Position{Line: line, Column: col}
}
