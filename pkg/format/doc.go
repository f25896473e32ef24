// Package format implements the width-aware Solidity pretty-printer:
// directive scanning, disable-region resolution, a Wadler-style document
// algebra, per-node doc builders, and the renderer. The entry point is
// Source. Everything here is pure computation over a parsed snapshot;
// no I/O happens in this package.
package format

import "strings"

// Doc is the abstract layout document. A Doc is built once per formatting
// unit, is immutable, and is consumed exactly once by the renderer. Width
// decisions are deferred entirely to render time: the same Doc renders
// differently under different line lengths.
type Doc interface {
	docNode()
}

type textDoc struct {
	text string
}

type concatDoc struct {
	parts []Doc
}

type indentDoc struct {
	doc Doc
}

type groupDoc struct {
	doc Doc
}

// lineDoc renders as a space when flat and a newline when broken.
type lineDoc struct{}

// softLineDoc renders as nothing when flat and a newline when broken.
type softLineDoc struct{}

// hardLineDoc always renders as a newline. A group containing one never
// renders flat.
type hardLineDoc struct{}

// ifBreakDoc renders Broken when the enclosing group broke, Flat otherwise.
type ifBreakDoc struct {
	Broken Doc
	Flat   Doc
}

// verbatimDoc carries raw source lines that bypass layout. The first line is
// emitted at the current position (the caller re-anchors its indentation);
// subsequent lines keep their original spelling exactly.
type verbatimDoc struct {
	lines []string
}

func (textDoc) docNode()     {}
func (concatDoc) docNode()   {}
func (indentDoc) docNode()   {}
func (groupDoc) docNode()    {}
func (lineDoc) docNode()     {}
func (softLineDoc) docNode() {}
func (hardLineDoc) docNode() {}
func (ifBreakDoc) docNode()  {}
func (verbatimDoc) docNode() {}

// Text creates a literal text doc. The text must not contain newlines;
// multi-line raw content goes through Verbatim.
func Text(s string) Doc { return textDoc{text: s} }

// Concat joins docs in sequence.
func Concat(parts ...Doc) Doc { return concatDoc{parts: parts} }

// Indent raises the indent level for the wrapped docs. The indent takes
// effect at the next line break inside.
func Indent(parts ...Doc) Doc { return indentDoc{doc: concatDoc{parts: parts}} }

// Group marks a flat-if-it-fits region.
func Group(parts ...Doc) Doc { return groupDoc{doc: concatDoc{parts: parts}} }

// Line is a space when flat, a newline when broken.
var Line Doc = lineDoc{}

// SoftLine is nothing when flat, a newline when broken.
var SoftLine Doc = softLineDoc{}

// HardLine is always a newline.
var HardLine Doc = hardLineDoc{}

// IfBreak selects between two renderings based on the enclosing group mode.
func IfBreak(broken, flat Doc) Doc { return ifBreakDoc{Broken: broken, Flat: flat} }

// Nil is an empty doc.
var Nil Doc = textDoc{}

// Verbatim wraps raw source text. Line splitting happens here so the
// renderer can re-anchor the first line only.
func Verbatim(text string) Doc {
	return verbatimDoc{lines: strings.Split(text, "\n")}
}

// Join intersperses sep between docs.
func Join(sep Doc, docs []Doc) Doc {
	if len(docs) == 0 {
		return Nil
	}
	parts := make([]Doc, 0, len(docs)*2-1)
	for i, d := range docs {
		if i > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, d)
	}
	return concatDoc{parts: parts}
}
