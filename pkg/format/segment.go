package format

import (
	"sort"

	"github.com/yaklabco/solfmt/pkg/solast"
)

// SegmentKind distinguishes formatted output from raw passthrough.
type SegmentKind uint8

const (
	// SegmentFormat marks a span the pretty-printer owns.
	SegmentFormat SegmentKind = iota
	// SegmentVerbatim marks a span reproduced from the input bytes.
	SegmentVerbatim
)

// Segment is one top-level slice of the output plan. Format segments carry
// the declaration they cover; verbatim segments carry the first declaration
// the disabled range touched, or nil for spans of bare trivia. Together the
// segments of a Resolution cover every declaration in source order with no
// gaps and no overlaps.
type Segment struct {
	Kind SegmentKind
	Span solast.SourceRange
	Node solast.Node
}

// Resolution is the output of Resolve: the merged disabled byte ranges and
// the top-level segment plan derived from them.
type Resolution struct {
	Segments []Segment
	Disabled []solast.SourceRange
}

// Resolve combines the scanned directives with the parse tree into disabled
// byte ranges and a top-level segment plan. Range directives use a flat
// enabled/disabled state machine with idempotent transitions: a second
// disable-start inside a disabled region is a no-op, and an unterminated
// disable-start runs to end of file.
func Resolve(f *solast.FileSnapshot, directives []Directive) Resolution {
	var ranges []solast.SourceRange

	openStart := -1
	for _, d := range directives {
		switch d.Kind {
		case DirectiveStart:
			if openStart < 0 {
				openStart = d.Span.StartOffset
			}
		case DirectiveEnd:
			if openStart >= 0 {
				ranges = append(ranges, solast.SourceRange{
					StartOffset: openStart,
					EndOffset:   d.Span.EndOffset,
				})
				openStart = -1
			}
		case DirectiveNextLine:
			if r, ok := lineSpan(f, f.LineContaining(d.Span.StartOffset)+1); ok {
				ranges = append(ranges, r)
			}
		case DirectiveLine:
			if r, ok := lineSpan(f, f.LineContaining(d.Span.StartOffset)); ok {
				ranges = append(ranges, r)
			}
		case DirectiveNextItem:
			if r, ok := nextItemSpan(f, d.Span.EndOffset); ok {
				ranges = append(ranges, r)
			}
		}
	}
	if openStart >= 0 {
		ranges = append(ranges, solast.SourceRange{
			StartOffset: openStart,
			EndOffset:   len(f.Content),
		})
	}

	disabled := mergeRanges(ranges)
	return Resolution{
		Segments: planSegments(f, disabled),
		Disabled: disabled,
	}
}

// lineSpan returns the content span of the given 0-based line, without its
// newline bytes.
func lineSpan(f *solast.FileSnapshot, line int) (solast.SourceRange, bool) {
	if line < 0 || line >= len(f.Lines) {
		return solast.SourceRange{}, false
	}
	info := f.Lines[line]
	return solast.SourceRange{StartOffset: info.StartOffset, EndOffset: info.NewlineStart}, true
}

// nextItemSpan finds the smallest item whose first token starts at or after
// anchor. Items sharing a start offset resolve to the innermost one.
func nextItemSpan(f *solast.FileSnapshot, anchor int) (solast.SourceRange, bool) {
	best := solast.SourceRange{StartOffset: -1}
	solast.WalkItems(f.Root, func(n solast.Node) bool {
		r := f.NodeRange(n)
		if r.StartOffset < anchor {
			return true
		}
		switch {
		case best.StartOffset < 0,
			r.StartOffset < best.StartOffset,
			r.StartOffset == best.StartOffset && r.Len() < best.Len():
			best = r
		}
		return true
	})
	if best.StartOffset < 0 {
		return solast.SourceRange{}, false
	}
	return best, true
}

// mergeRanges sorts and coalesces overlapping or touching ranges.
func mergeRanges(ranges []solast.SourceRange) []solast.SourceRange {
	if len(ranges) == 0 {
		return nil
	}
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].StartOffset < ranges[j].StartOffset
	})
	out := ranges[:1]
	for _, r := range ranges[1:] {
		last := &out[len(out)-1]
		if r.StartOffset <= last.EndOffset {
			if r.EndOffset > last.EndOffset {
				last.EndOffset = r.EndOffset
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// planSegments lays out the top-level declarations against the disabled
// ranges. A declaration whose span a disabled range reaches into becomes
// part of a verbatim segment covering the union of the range and every
// declaration it touches; a range nested inside a brace body the nested
// builders walk is left for them.
func planSegments(f *solast.FileSnapshot, disabled []solast.SourceRange) []Segment {
	var segs []Segment
	items := f.Root.Items
	tracker := newRegionTracker(disabled)

	i := 0
	for i < len(items) {
		r := f.NodeRange(items[i])

		for {
			pre, ok := tracker.takeEndingBefore(r.StartOffset)
			if !ok {
				break
			}
			segs = append(segs, Segment{Kind: SegmentVerbatim, Span: pre})
		}

		dis, overlaps := tracker.overlapping(r)
		if !overlaps || descendsInto(f, items[i], dis) {
			segs = append(segs, Segment{Kind: SegmentFormat, Span: r, Node: items[i]})
			// Ranges nested inside this declaration are handled by the
			// nested builders, not as top-level verbatim segments.
			tracker.consumeThrough(r.EndOffset)
			i++
			continue
		}

		// The range and the declarations it touches collapse into one
		// verbatim span.
		first := items[i]
		span := unionSpan(dis, r)
		for i+1 < len(items) {
			next := f.NodeRange(items[i+1])
			if next.StartOffset >= span.EndOffset {
				break
			}
			span = unionSpan(span, next)
			i++
		}
		tracker.consumeThrough(span.EndOffset)
		segs = append(segs, Segment{Kind: SegmentVerbatim, Span: span, Node: first})
		i++
	}

	for {
		post, ok := tracker.takeEndingBefore(len(f.Content) + 1)
		if !ok {
			break
		}
		segs = append(segs, Segment{Kind: SegmentVerbatim, Span: post})
	}
	return segs
}

func unionSpan(a, b solast.SourceRange) solast.SourceRange {
	if b.StartOffset < a.StartOffset {
		a.StartOffset = b.StartOffset
	}
	if b.EndOffset > a.EndOffset {
		a.EndOffset = b.EndOffset
	}
	return a
}

// descendsInto reports whether a disabled range lies inside a brace body
// whose item list the nested builders walk, so it will surface there as a
// verbatim span. A range that reaches a header, a condition, or a braceless
// branch has no nested list to land in; the whole node goes verbatim
// instead.
func descendsInto(f *solast.FileSnapshot, n solast.Node, dis solast.SourceRange) bool {
	switch d := n.(type) {
	case *solast.ContractDef:
		return insideBraces(f, contractOpenBrace(d), d.LastTok(), dis)
	case *solast.FunctionDef:
		return d.Body != nil && descendsInto(f, d.Body, dis)
	case *solast.Block:
		open := d.FirstTok()
		if d.Unchecked {
			open++
		}
		return insideBraces(f, open, d.LastTok(), dis)
	case *solast.IfStmt:
		if descendsInto(f, d.Then, dis) {
			return true
		}
		return d.Else != nil && descendsInto(f, d.Else, dis)
	case *solast.WhileStmt:
		return descendsInto(f, d.Body, dis)
	case *solast.DoWhileStmt:
		return descendsInto(f, d.Body, dis)
	case *solast.ForStmt:
		return descendsInto(f, d.Body, dis)
	case *solast.TryStmt:
		if descendsInto(f, d.Body, dis) {
			return true
		}
		for _, c := range d.Catches {
			if descendsInto(f, c.Body, dis) {
				return true
			}
		}
	}
	return false
}

// insideBraces reports whether dis sits fully between the open token's end
// and the close token's start.
func insideBraces(f *solast.FileSnapshot, open, close int, dis solast.SourceRange) bool {
	return dis.StartOffset >= f.Tokens[open].EndOffset &&
		dis.EndOffset <= f.Tokens[close].StartOffset
}

// contractOpenBrace locates the `{` after the name or inheritance list.
func contractOpenBrace(d *solast.ContractDef) int {
	if len(d.Bases) > 0 {
		return d.Bases[len(d.Bases)-1].LastTok() + 1
	}
	return d.Name + 1
}

// regionTracker walks the merged disabled ranges in step with the builder's
// source-order traversal. One tracker is shared across nesting levels.
type regionTracker struct {
	ranges []solast.SourceRange
	next   int
}

func newRegionTracker(ranges []solast.SourceRange) *regionTracker {
	return &regionTracker{ranges: ranges}
}

// takeEndingBefore consumes and returns the next range that ends at or
// before offset, if any. These are ranges covering only trivia between
// items.
func (t *regionTracker) takeEndingBefore(offset int) (solast.SourceRange, bool) {
	if t.next >= len(t.ranges) {
		return solast.SourceRange{}, false
	}
	r := t.ranges[t.next]
	if r.EndOffset > offset {
		return solast.SourceRange{}, false
	}
	t.next++
	return r, true
}

// overlapping returns the next unconsumed range if it overlaps span.
func (t *regionTracker) overlapping(span solast.SourceRange) (solast.SourceRange, bool) {
	if t.next >= len(t.ranges) {
		return solast.SourceRange{}, false
	}
	r := t.ranges[t.next]
	if !r.Overlaps(span) {
		return solast.SourceRange{}, false
	}
	return r, true
}

// consumeThrough drops every range that ends at or before offset.
func (t *regionTracker) consumeThrough(offset int) {
	for t.next < len(t.ranges) && t.ranges[t.next].EndOffset <= offset {
		t.next++
	}
}

// overlapsAny reports whether any range overlaps span. Unlike the tracker
// methods this does not consume state; trivia emission uses it to avoid
// duplicating comments that live inside verbatim spans.
func overlapsAny(ranges []solast.SourceRange, span solast.SourceRange) bool {
	idx := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].EndOffset > span.StartOffset
	})
	return idx < len(ranges) && ranges[idx].Overlaps(span)
}
