package format

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RenderError reports an internal invariant violation (segments not covering
// the file, malformed doc structure). It indicates a bug in the formatter,
// not a problem with the input.
type RenderError struct {
	Message string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error: %s", e.Message)
}

type renderMode uint8

const (
	modeBreak renderMode = iota
	modeFlat
)

type renderFrame struct {
	doc    Doc
	indent int
	mode   renderMode
}

// docRenderer runs the group-fits-on-line-else-break algorithm: a Group
// renders flat when its flattened width plus the current column fits within
// the line length, otherwise every Line inside it becomes a hard break at
// the current indent. One pass, no backtracking.
type docRenderer struct {
	lines    []string
	cur      strings.Builder
	col      int
	width    int
	tabWidth int
}

func newDocRenderer(width, tabWidth int) *docRenderer {
	return &docRenderer{width: width, tabWidth: tabWidth}
}

func (r *docRenderer) String() string {
	out := strings.Join(r.lines, "\n")
	last := strings.TrimRight(r.cur.String(), " \t")
	if len(r.lines) > 0 {
		return out + "\n" + last
	}
	return last
}

func (r *docRenderer) write(s string) {
	r.cur.WriteString(s)
	r.col += utf8.RuneCountInString(s)
}

func (r *docRenderer) newline(indent int) {
	// Trailing whitespace never survives a break.
	r.lines = append(r.lines, strings.TrimRight(r.cur.String(), " \t"))
	r.cur.Reset()
	for range indent {
		r.cur.WriteByte(' ')
	}
	r.col = indent
}

func (r *docRenderer) render(doc Doc, indent int) {
	stack := []renderFrame{{doc: doc, indent: indent, mode: modeBreak}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch d := frame.doc.(type) {
		case textDoc:
			r.write(d.text)

		case concatDoc:
			for i := len(d.parts) - 1; i >= 0; i-- {
				stack = append(stack, renderFrame{doc: d.parts[i], indent: frame.indent, mode: frame.mode})
			}

		case indentDoc:
			stack = append(stack, renderFrame{doc: d.doc, indent: frame.indent + r.tabWidth, mode: frame.mode})

		case groupDoc:
			mode := modeBreak
			if r.fits(d.doc, stack) {
				mode = modeFlat
			}
			stack = append(stack, renderFrame{doc: d.doc, indent: frame.indent, mode: mode})

		case lineDoc:
			if frame.mode == modeFlat {
				r.write(" ")
			} else {
				r.newline(frame.indent)
			}

		case softLineDoc:
			if frame.mode != modeFlat {
				r.newline(frame.indent)
			}

		case hardLineDoc:
			r.newline(frame.indent)

		case ifBreakDoc:
			pick := d.Broken
			if frame.mode == modeFlat {
				pick = d.Flat
			}
			stack = append(stack, renderFrame{doc: pick, indent: frame.indent, mode: frame.mode})

		case verbatimDoc:
			// First line continues at the current position, the rest keep
			// their original spelling untouched.
			for i, line := range d.lines {
				if i > 0 {
					r.lines = append(r.lines, strings.TrimRight(r.cur.String(), " \t"))
					r.cur.Reset()
					r.col = 0
				}
				r.write(line)
			}
		}
	}
}

// fits reports whether doc plus everything after it on the current line
// renders flat within the remaining width.
func (r *docRenderer) fits(doc Doc, rest []renderFrame) bool {
	remaining := r.width - r.col

	type fitFrame struct {
		doc  Doc
		mode renderMode
	}
	stack := []fitFrame{{doc: doc, mode: modeFlat}}
	restIdx := len(rest) - 1

	for remaining >= 0 {
		if len(stack) == 0 {
			// Keep measuring the enclosing content up to the next line
			// break so trailing text like " {" is accounted for.
			if restIdx < 0 {
				return true
			}
			next := rest[restIdx]
			restIdx--
			stack = append(stack, fitFrame{doc: next.doc, mode: next.mode})
			continue
		}

		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch d := frame.doc.(type) {
		case textDoc:
			remaining -= utf8.RuneCountInString(d.text)
		case concatDoc:
			for i := len(d.parts) - 1; i >= 0; i-- {
				stack = append(stack, fitFrame{doc: d.parts[i], mode: frame.mode})
			}
		case indentDoc:
			stack = append(stack, fitFrame{doc: d.doc, mode: frame.mode})
		case groupDoc:
			stack = append(stack, fitFrame{doc: d.doc, mode: modeFlat})
		case lineDoc:
			if frame.mode == modeFlat {
				remaining--
			} else {
				return true
			}
		case softLineDoc:
			if frame.mode != modeFlat {
				return true
			}
		case hardLineDoc:
			if frame.mode == modeFlat {
				// A hard break can never render flat.
				return false
			}
			return true
		case ifBreakDoc:
			pick := d.Broken
			if frame.mode == modeFlat {
				pick = d.Flat
			}
			stack = append(stack, fitFrame{doc: pick, mode: frame.mode})
		case verbatimDoc:
			if len(d.lines) > 1 {
				return false
			}
			remaining -= utf8.RuneCountInString(d.lines[0])
		}
	}
	return false
}
