package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/solfmt/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/solfmt/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.solfmt.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string

	// Foundry is a detected foundry.toml path whose [fmt] table can be
	// imported.
	Foundry string
}

// solfmtConfigFiles are the config file names we search for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var solfmtConfigFiles = []string{
	".solfmt.yml",
	".solfmt.yaml",
	"solfmt.yml",
	"solfmt.yaml",
}

// foundryConfigFile is the Foundry project file carrying an optional [fmt] table.
const foundryConfigFile = "foundry.toml"

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in standard locations.
// It searches for:
//   - System config at /etc/solfmt/config.{yaml,yml}
//   - User config at $XDG_CONFIG_HOME/solfmt/config.{yaml,yml}
//   - Project config by searching upward from workDir for .solfmt.{yaml,yml}
//   - foundry.toml by searching upward from workDir
//
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	paths := &ConfigPaths{}

	paths.System = findSystemConfig()
	paths.User = findUserConfig()

	projectConfig, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = projectConfig

	foundry, err := findUpward(ctx, workDir, func(dir string) string {
		path := filepath.Join(dir, foundryConfigFile)
		if fileExists(path) {
			return path
		}
		return ""
	})
	if err != nil {
		return nil, err
	}
	paths.Foundry = foundry

	return paths, nil
}

// findSystemConfig returns the path to the system-wide config file, if it exists.
func findSystemConfig() string {
	if runtime.GOOS == "windows" {
		// On Windows, use ProgramData
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return findConfigInDir(filepath.Join(programData, "solfmt"))
	}

	// On Unix-like systems, use /etc
	return findConfigInDir("/etc/solfmt")
}

// findUserConfig returns the path to the user-level config file, if it exists.
func findUserConfig() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	return findConfigInDir(filepath.Join(configHome, "solfmt"))
}

// findConfigInDir looks for config files in the given directory.
// Returns the path to the first found file, or empty string if none.
func findConfigInDir(dir string) string {
	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file.
// Returns the path to the first config file found, or empty string if none.
// Stops at filesystem boundaries, VCS roots, or when reaching root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	return findUpward(ctx, startDir, func(dir string) string {
		for _, name := range solfmtConfigFiles {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path
			}
		}
		return ""
	})
}

// findUpward walks from startDir toward the filesystem root and returns the
// first non-empty result from probe. The walk stops at VCS roots and at the
// user's home directory.
func findUpward(ctx context.Context, startDir string, probe func(dir string) string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		// If we can't get home dir, we'll just skip the home boundary check.
		homeDir = ""
	}

	currentDir := absDir
	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if path := probe(currentDir); path != "" {
			return path, nil
		}

		// Stop at VCS roots so configs outside the repository never apply.
		if isVCSRoot(currentDir) {
			return "", nil
		}

		if homeDir != "" && currentDir == homeDir {
			return "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached filesystem root
			return "", nil
		}
		currentDir = parentDir
	}
}

// isVCSRoot returns true if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		path := filepath.Join(dir, marker)
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
