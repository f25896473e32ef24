package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/solfmt/internal/ui/pretty"
	"github.com/yaklabco/solfmt/pkg/runner"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// TextReporter writes human-readable results.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	if result == nil {
		return 0, nil
	}

	out := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := out.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("flush output: %w", flushErr)
		}
	}()

	changed := 0
	for _, file := range result.Files {
		path := r.displayPath(file.Path)
		if file.Error != nil {
			fmt.Fprint(out, r.styles.FormatFileError(path, file.Error))
			continue
		}
		if !file.Changed {
			continue
		}
		changed++
		if file.Written {
			fmt.Fprint(out, r.styles.FormatWrittenFile(path))
		} else if r.opts.ListChanged {
			fmt.Fprint(out, r.styles.FormatChangedFile(path))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(out, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return changed, nil
}

func (r *TextReporter) displayPath(path string) string {
	return displayPath(path, r.opts.WorkingDir)
}

// displayPath makes a path relative to the working directory when that
// produces a shorter, non-escaping spelling.
func displayPath(path, workingDir string) string {
	if workingDir == "" {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil || len(rel) >= len(path) || rel == ".." || filepath.IsAbs(rel) {
		return path
	}
	return rel
}

