package format

import (
	"strings"

	"github.com/yaklabco/solfmt/pkg/solast"
)

// DirectiveKind identifies a forgefmt control comment.
type DirectiveKind uint8

const (
	DirectiveNextLine DirectiveKind = iota
	DirectiveLine
	DirectiveStart
	DirectiveEnd
	DirectiveNextItem
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveNextLine:
		return "disable-next-line"
	case DirectiveLine:
		return "disable-line"
	case DirectiveStart:
		return "disable-start"
	case DirectiveEnd:
		return "disable-end"
	case DirectiveNextItem:
		return "disable-next-item"
	}
	return "unknown"
}

// Directive is one recognized forgefmt comment, positioned by the span of
// the comment that carried it.
type Directive struct {
	Kind    DirectiveKind
	Span    solast.SourceRange
	IsBlock bool

	// Trailing is true when the comment sits after code on its own line,
	// which is what disable-line keys off.
	Trailing bool
}

// directiveKeywords maps the exact keyword spelling to its kind. Matching is
// case-sensitive; disable-stop is an alias of disable-end.
var directiveKeywords = map[string]DirectiveKind{
	"disable-next-line": DirectiveNextLine,
	"disable-line":      DirectiveLine,
	"disable-start":     DirectiveStart,
	"disable-end":       DirectiveEnd,
	"disable-stop":      DirectiveEnd,
	"disable-next-item": DirectiveNextItem,
}

// ScanDirectives walks every comment trivium in the token stream and
// collects forgefmt directives in source order. Comments that merely
// resemble a directive (wrong keyword, wrong casing) are left alone and
// formatted as ordinary comments.
func ScanDirectives(f *solast.FileSnapshot) []Directive {
	var out []Directive
	for _, tok := range f.Tokens {
		for _, tr := range tok.Leading {
			if d, ok := directiveFromTrivia(f.Content, tr, false); ok {
				out = append(out, d)
			}
		}
		for _, tr := range tok.Trailing {
			if d, ok := directiveFromTrivia(f.Content, tr, true); ok {
				out = append(out, d)
			}
		}
	}
	return out
}

func directiveFromTrivia(content []byte, tr solast.Trivia, trailing bool) (Directive, bool) {
	if !tr.IsComment() {
		return Directive{}, false
	}
	body := commentBody(string(tr.Text(content)), tr.Kind)
	kind, ok := parseDirectiveBody(body)
	if !ok {
		return Directive{}, false
	}
	return Directive{
		Kind:     kind,
		Span:     solast.SourceRange{StartOffset: tr.StartOffset, EndOffset: tr.EndOffset},
		IsBlock:  tr.IsBlockStyle(),
		Trailing: trailing,
	}, true
}

// commentBody strips the comment delimiters, leaving the inner text.
func commentBody(text string, kind solast.TriviaKind) string {
	switch kind {
	case solast.TriviaLineComment:
		return strings.TrimPrefix(text, "//")
	case solast.TriviaBlockComment:
		text = strings.TrimPrefix(text, "/*")
		return strings.TrimSuffix(text, "*/")
	}
	return text
}

// parseDirectiveBody recognizes `forgefmt: <keyword>` with arbitrary
// whitespace around the marker, the colon, and the keyword. Anything else,
// including a trailing remark after the keyword, is not a directive.
func parseDirectiveBody(body string) (DirectiveKind, bool) {
	body = strings.TrimSpace(body)
	rest, ok := strings.CutPrefix(body, "forgefmt")
	if !ok {
		return 0, false
	}
	rest = strings.TrimLeft(rest, " \t")
	rest, ok = strings.CutPrefix(rest, ":")
	if !ok {
		return 0, false
	}
	keyword := strings.TrimSpace(rest)
	kind, ok := directiveKeywords[keyword]
	return kind, ok
}
