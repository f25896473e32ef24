package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/solfmt/internal/configloader"
	"github.com/yaklabco/solfmt/internal/logging"
	"github.com/yaklabco/solfmt/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new solfmt configuration file",
		Long: `Create a new .solfmt.yml configuration file in the current directory
with the default style written out and documented. Edit it to change the
line width, quote style, and the other formatting knobs.

Examples:
  solfmt init                     Create .solfmt.yml
  solfmt init --output custom.yml Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .solfmt.yml)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".solfmt.yml"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
		if err := os.WriteFile(absPath, config.Template(), configFilePermissions); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
	} else {
		if err := configloader.WriteDefaultConfig(absPath); err != nil {
			return err
		}
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("customize the style by editing the file")

	return nil
}
