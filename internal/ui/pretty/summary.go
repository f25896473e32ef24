package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/solfmt/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files reformatted, 12 unchanged".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	unchanged := stats.FilesProcessed - stats.FilesChanged

	if stats.FilesChanged == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("All files formatted") +
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed)) + "\n"
	}

	var parts []string

	fileWord := wordFiles
	if stats.FilesChanged == 1 {
		fileWord = wordFile
	}
	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s reformatted", stats.FilesWritten, fileWord)))
	} else if stats.FilesChanged > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s would change", stats.FilesChanged, fileWord)))
	}

	if unchanged > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", unchanged)))
	}

	if stats.FilesErrored > 0 {
		errorWord := wordFiles
		if stats.FilesErrored == 1 {
			errorWord = wordFile
		}
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s failed", stats.FilesErrored, errorWord)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files formatted:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files changed:     " +
			s.Warning.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString("  " + s.Failure.Render("FAILED") + "\n")
	case stats.FilesChanged > 0 && stats.FilesWritten == 0:
		builder.WriteString("  " + s.Warning.Render("CHANGES PENDING") + "\n")
	default:
		builder.WriteString("  " + s.Success.Render("OK") + "\n")
	}

	return builder.String()
}
