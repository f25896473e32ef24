// Package runner provides multi-file formatting orchestration.
package runner

import "github.com/yaklabco/solfmt/pkg/config"

// Mode selects what the runner does with formatted output.
type Mode uint8

const (
	// ModeWrite rewrites files in place when formatting changes them.
	ModeWrite Mode = iota
	// ModeCheck reports which files would change without writing.
	ModeCheck
	// ModeDiff prints a unified diff per changed file without writing.
	ModeDiff
)

// Options controls multi-file formatting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Solidity. Defaults to [".sol"] via DefaultExtensions().
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Mode selects write, check, or diff behavior.
	Mode Mode

	// Backups controls whether in-place writes leave a .bak copy behind.
	Backups bool

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the default set of Solidity file extensions.
func DefaultExtensions() []string {
	return []string{".sol"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
