package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/solfmt/internal/ui/pretty"
	"github.com/yaklabco/solfmt/pkg/runner"
	"github.com/yaklabco/solfmt/pkg/textdiff"
)

// DiffReporter writes unified diffs for files whose formatting changed.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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
	additions, deletions := 0, 0
	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprint(out, r.styles.FormatFileError(path, file.Error))
			continue
		}
		if !file.Changed {
			continue
		}
		changed++

		diff := textdiff.GenerateDiff(path, file.Original, []byte(file.Formatted))
		if !diff.HasChanges() {
			continue
		}
		additions += diff.Additions
		deletions += diff.Deletions
		r.writeDiff(out, diff)
	}

	if r.opts.ShowSummary && changed > 0 {
		fmt.Fprintf(out, "\n%s\n", r.styles.Warning.Render(fmt.Sprintf(
			"%d file(s) would change, +%d -%d", changed, additions, deletions)))
	}
	return changed, nil
}

// writeDiff renders a single file diff with per-line styling.
func (r *DiffReporter) writeDiff(out *bufio.Writer, diff *textdiff.Diff) {
	header := r.styles.DiffHeader
	fmt.Fprintln(out, header.Render(diff.GitHeader()))
	fmt.Fprintln(out, header.Render(fmt.Sprintf("--- a/%s", diffPath(diff))))
	fmt.Fprintln(out, header.Render(fmt.Sprintf("+++ b/%s", diffPath(diff))))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(out, r.styles.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)))

		for _, line := range hunk.Lines {
			switch line.Kind {
			case textdiff.DiffLineAdd:
				fmt.Fprintln(out, r.styles.DiffAdd.Render("+"+line.Content))
			case textdiff.DiffLineRemove:
				fmt.Fprintln(out, r.styles.DiffRemove.Render("-"+line.Content))
			case textdiff.DiffLineContext:
				fmt.Fprintln(out, r.styles.DiffContext.Render(" "+line.Content))
			}
		}
	}
}

func diffPath(diff *textdiff.Diff) string {
	path := diff.Path
	if len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	return path
}
