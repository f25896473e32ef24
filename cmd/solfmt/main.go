// Package main is the entry point for the solfmt CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/solfmt/internal/cli"
	"github.com/yaklabco/solfmt/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Build and execute the root command.
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrCheckFailed is just a signal for the exit code, not a failure
		// worth logging.
		if !errors.Is(err, cli.ErrCheckFailed) && !errors.Is(err, cli.ErrFormatFailed) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitChanges
	}

	return cli.ExitSuccess
}
