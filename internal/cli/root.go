// Package cli provides the Cobra command structure for solfmt.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/solfmt/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root solfmt command with all subcommands.
// Running the root with paths is equivalent to running `solfmt fmt`.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	flags := &fmtFlags{}

	rootCmd := &cobra.Command{
		Use:   "solfmt [paths...]",
		Short: "A source-preserving Solidity formatter",
		Long: `solfmt is a source-preserving Solidity formatter written in Go.

It reformats Solidity source to a canonical style within a configured line
width while keeping every comment and honoring forgefmt: directive comments
that protect regions from reformatting. Files are rewritten in place by
default; use --check or --diff for CI-friendly dry runs.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, flags)
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	addFmtFlags(rootCmd, flags)

	// Add subcommands.
	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
