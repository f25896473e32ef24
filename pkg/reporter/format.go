package reporter

import "fmt"

// Format specifies the output format for run results.
type Format string

const (
	// FormatText is the human-readable default.
	FormatText Format = "text"

	// FormatJSON emits a machine-readable summary.
	FormatJSON Format = "json"

	// FormatDiff emits unified diffs for changed files.
	FormatDiff Format = "diff"
)

// ParseFormat validates a format name from the CLI.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatDiff:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, json, diff)", s)
	}
}
