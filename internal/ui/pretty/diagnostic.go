package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/solfmt/pkg/format"
)

// FormatFileError renders a per-file failure with its source location when
// the error carries one.
func (s *Styles) FormatFileError(path string, err error) string {
	var fe *format.FormatError
	if errors.As(err, &fe) && fe.Line > 0 {
		return fmt.Sprintf("%s%s %s\n",
			s.FilePath.Render(fe.Path),
			s.Location.Render(fmt.Sprintf(":%d:%d:", fe.Line, fe.Col)),
			s.Error.Render(fe.Message),
		)
	}
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(path),
		s.Error.Render(err.Error()),
	)
}

// FormatSourceContext renders a source line with a caret under the column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder
	builder.WriteString("    " + s.SourceLine.Render(line) + "\n")
	if column > 0 && column <= len(line)+1 {
		builder.WriteString("    " + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// FormatChangedFile renders one line for a file whose formatting differs.
func (s *Styles) FormatChangedFile(path string) string {
	return s.Warning.Render("would reformat") + " " + s.FilePath.Render(path) + "\n"
}

// FormatWrittenFile renders one line for a file rewritten in place.
func (s *Styles) FormatWrittenFile(path string) string {
	return s.Dim.Render("formatted") + " " + s.FilePath.Render(path) + "\n"
}
