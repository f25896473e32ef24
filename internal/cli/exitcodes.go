package cli

import "github.com/yaklabco/solfmt/pkg/runner"

// Exit codes for solfmt.
const (
	// ExitSuccess indicates successful execution with nothing to change.
	ExitSuccess = 0

	// ExitChanges indicates --check or --diff found files that would change,
	// or that one or more files failed to format.
	ExitChanges = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for a run in the given mode.
func ExitCodeFromResult(result *runner.Result, mode runner.Mode) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitChanges
	}

	if mode != runner.ModeWrite && result.HasChanges() {
		return ExitChanges
	}

	return ExitSuccess
}
