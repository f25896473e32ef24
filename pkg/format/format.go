package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/solfmt/pkg/config"
	"github.com/yaklabco/solfmt/pkg/parser"
	"github.com/yaklabco/solfmt/pkg/solast"
)

// FormatError is a user-facing formatting failure: the input could not be
// tokenized or parsed. Line and Col are 1-based.
type FormatError struct {
	Path    string
	Offset  int
	Line    int
	Col     int
	Message string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Source formats a complete Solidity source file and returns the formatted
// text, always ending in exactly one newline. The input is not modified;
// formatting is a pure function of content and cfg.
func Source(path string, content []byte, cfg *config.Config) (string, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	snap, err := parser.Parse(path, content)
	if err != nil {
		return "", userError(path, content, err)
	}

	directives := ScanDirectives(snap)
	res := Resolve(snap, directives)
	if err := checkSegments(snap, res.Segments); err != nil {
		return "", err
	}

	b := newBuilder(snap, cfg, res)
	doc := b.buildFile()

	r := newDocRenderer(cfg.LineLength, cfg.TabWidth)
	r.render(doc, 0)

	out := strings.TrimRight(r.String(), "\n")
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

// userError maps lexer and parser failures onto source positions.
func userError(path string, content []byte, err error) error {
	offset := -1
	var lexErr *parser.LexError
	var parseErr *parser.ParseError
	switch {
	case errors.As(err, &lexErr):
		offset = lexErr.Offset
	case errors.As(err, &parseErr):
		offset = parseErr.Offset
	default:
		return err
	}

	fe := &FormatError{Path: path, Offset: offset, Message: err.Error()}
	snap := solast.NewFileSnapshot(path, content)
	if pos := snap.PositionOf(offset); pos.IsValid() {
		fe.Line = pos.Line
		fe.Col = pos.Column
	}
	return fe
}

// checkSegments asserts the resolver invariant that verbatim segments are
// ordered and non-overlapping. A violation is a bug, not bad input.
func checkSegments(f *solast.FileSnapshot, segs []Segment) error {
	pos := 0
	for _, s := range segs {
		if s.Span.StartOffset < pos && s.Kind == SegmentVerbatim {
			return &RenderError{
				Message: fmt.Sprintf("segment %d..%d overlaps previous output at %d",
					s.Span.StartOffset, s.Span.EndOffset, pos),
			}
		}
		if s.Span.EndOffset > len(f.Content) {
			return &RenderError{
				Message: fmt.Sprintf("segment %d..%d extends past end of file %d",
					s.Span.StartOffset, s.Span.EndOffset, len(f.Content)),
			}
		}
		if s.Span.EndOffset > pos {
			pos = s.Span.EndOffset
		}
	}
	return nil
}
