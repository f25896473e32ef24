package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/solfmt/internal/configloader"
	"github.com/yaklabco/solfmt/internal/logging"
	"github.com/yaklabco/solfmt/pkg/config"
	"github.com/yaklabco/solfmt/pkg/format"
	"github.com/yaklabco/solfmt/pkg/reporter"
	"github.com/yaklabco/solfmt/pkg/runner"
	"github.com/yaklabco/solfmt/pkg/textdiff"
)

// ErrCheckFailed is returned when --check finds files that would change.
var ErrCheckFailed = errors.New("formatting differences found")

// ErrFormatFailed is returned when one or more files could not be formatted.
var ErrFormatFailed = errors.New("formatting failed")

type fmtFlags struct {
	check      bool
	diff       bool
	write      bool
	stdin      bool
	format     string
	jobs       int
	ignore     []string
	lineLength int
	noBackups  bool
}

func newFmtCommand() *cobra.Command {
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Format Solidity files",
		Long:  fmtLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, flags)
		},
	}

	addFmtFlags(cmd, flags)

	return cmd
}

const fmtLongDescription = `Format Solidity source files.

By default, formats all .sol files under the given paths (or the current
directory) and rewrites the ones whose formatting changes. Comments are
preserved, and regions guarded by forgefmt: directive comments are emitted
byte-for-byte.

Examples:
  solfmt fmt                    # Format current directory in place
  solfmt fmt src/ test/         # Format specific directories
  solfmt fmt Token.sol          # Format a single file
  solfmt fmt --check            # Exit 1 if any file would change
  solfmt fmt --diff             # Print unified diffs without writing
  solfmt fmt --stdin < a.sol    # Format stdin to stdout
  solfmt fmt --format json      # Machine-readable results for CI`

func runFmt(cmd *cobra.Command, args []string, flags *fmtFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	// Map CLI flags onto a sparse config overlay.
	cliCfg := &config.Config{
		LineLength: flags.lineLength,
		Jobs:       flags.jobs,
		Ignore:     flags.ignore,
		Check:      flags.check,
		Diff:       flags.diff,
		Write:      flags.write,
		NoBackups:  flags.noBackups,
	}

	loadOpts := configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	}

	loadResult, err := configloader.Load(ctx, loadOpts)
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration resolved",
		logging.FieldLineLength, finalCfg.LineLength,
		logging.FieldCheck, finalCfg.Check,
		logging.FieldDiff, finalCfg.Diff,
		logging.FieldJobs, finalCfg.Jobs,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	if flags.stdin {
		return runFmtStdin(cmd, finalCfg, colorMode)
	}

	mode := runner.ModeWrite
	switch {
	case finalCfg.Diff:
		mode = runner.ModeDiff
	case finalCfg.Check:
		mode = runner.ModeCheck
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: finalCfg.Ignore,
		Jobs:         finalCfg.Jobs,
		Mode:         mode,
		Backups:      !finalCfg.NoBackups,
		Config:       finalCfg,
	}

	logger.Debug("starting format run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	fmtRunner := runner.New()
	result, err := fmtRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("format run failed"), err)
	}

	outFormat, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if mode == runner.ModeDiff && outFormat == reporter.FormatText {
		outFormat = reporter.FormatDiff
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      outFormat,
		Color:       colorMode,
		ShowSummary: true,
		ListChanged: mode != runner.ModeWrite,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasErrors() {
		return ErrFormatFailed
	}
	if mode != runner.ModeWrite && result.HasChanges() {
		return ErrCheckFailed
	}

	return nil
}

// runFmtStdin formats a single source read from standard input and prints the
// result to standard output.
func runFmtStdin(cmd *cobra.Command, cfg *config.Config, colorMode string) error {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		logging.Default().Warn("reading Solidity source from terminal; press Ctrl-D to finish")
	}

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	formatted, err := format.Source("<stdin>", content, cfg)
	if err != nil {
		return err
	}

	changed := formatted != string(content)

	switch {
	case cfg.Diff:
		if !changed {
			return nil
		}
		diff := textdiff.GenerateDiff("<stdin>", content, []byte(formatted))
		if _, err := fmt.Fprint(cmd.OutOrStdout(), diff.FullString()); err != nil {
			return fmt.Errorf("write diff: %w", err)
		}
		return ErrCheckFailed
	case cfg.Check:
		if changed {
			return ErrCheckFailed
		}
		return nil
	default:
		if _, err := fmt.Fprint(cmd.OutOrStdout(), formatted); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
}

func addFmtFlags(cmd *cobra.Command, flags *fmtFlags) {
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit non-zero if any file would change, without writing")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print unified diffs instead of rewriting files")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite changed files in place (the default for file paths)")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "format source from standard input to standard output")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().IntVar(&flags.lineLength, "line-length", 0, "maximum line width (overrides config)")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable .solfmt.bak backups when writing")
}
