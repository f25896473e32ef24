package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/solfmt/pkg/runner"
)

const uglyContract = "pragma   solidity ^0.8.0;\ncontract Token { uint internal x;\n    function set( uint v ) public { x = v ; } }\n"

func writeSolFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestRunner_CheckModeReportsChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSolFile(t, dir, "Token.sol", uglyContract)

	result, err := runner.New().Run(context.Background(), runner.Options{
		Paths:      []string{path},
		WorkingDir: dir,
		Mode:       runner.ModeCheck,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.HasChanges() {
		t.Error("expected changes for unformatted input")
	}
	if result.Stats.FilesDiscovered != 1 || result.Stats.FilesProcessed != 1 {
		t.Errorf("stats = %+v, want 1 discovered and processed", result.Stats)
	}
	if result.Stats.FilesWritten != 0 {
		t.Errorf("check mode wrote %d files", result.Stats.FilesWritten)
	}

	// Check mode leaves the file untouched.
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(after) != uglyContract {
		t.Error("check mode modified the file")
	}
}

func TestRunner_WriteModeRewritesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSolFile(t, dir, "Token.sol", uglyContract)

	opts := runner.Options{
		Paths:      []string{path},
		WorkingDir: dir,
		Mode:       runner.ModeWrite,
	}

	result, err := runner.New().Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesWritten != 1 {
		t.Fatalf("expected 1 file written, got %d", result.Stats.FilesWritten)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(after) == uglyContract {
		t.Fatal("file content unchanged after write")
	}

	// A second run over the rewritten file finds nothing to do.
	again, err := runner.New().Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if again.HasChanges() {
		t.Error("formatter output is not idempotent")
	}
	if again.Stats.FilesWritten != 0 {
		t.Errorf("second run wrote %d files", again.Stats.FilesWritten)
	}
}

func TestRunner_WriteModeCreatesBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSolFile(t, dir, "Token.sol", uglyContract)

	result, err := runner.New().Run(context.Background(), runner.Options{
		Paths:      []string{path},
		WorkingDir: dir,
		Mode:       runner.ModeWrite,
		Backups:    true,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesWritten != 1 {
		t.Fatalf("expected 1 file written, got %d", result.Stats.FilesWritten)
	}

	backup, err := os.ReadFile(path + ".solfmt.bak")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != uglyContract {
		t.Error("backup does not hold the original content")
	}
}

func TestRunner_UnchangedFileNotWritten(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSolFile(t, dir, "Ugly.sol", uglyContract)

	// First pass settles the formatting.
	if _, err := runner.New().Run(context.Background(), runner.Options{
		Paths: []string{path}, WorkingDir: dir, Mode: runner.ModeWrite,
	}); err != nil {
		t.Fatalf("settle Run() error = %v", err)
	}

	settled, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read settled: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	modBefore := info.ModTime()

	result, err := runner.New().Run(context.Background(), runner.Options{
		Paths: []string{path}, WorkingDir: dir, Mode: runner.ModeWrite,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.HasChanges() || result.Stats.FilesWritten != 0 {
		t.Errorf("clean file reported changes: %+v", result.Stats)
	}

	info, err = os.Stat(path)
	if err != nil {
		t.Fatalf("stat after: %v", err)
	}
	if !info.ModTime().Equal(modBefore) {
		t.Error("clean file was rewritten on disk")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read after: %v", err)
	}
	if string(after) != string(settled) {
		t.Error("clean file content changed")
	}
}

func TestRunner_ParseErrorRecordedPerFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSolFile(t, dir, "Good.sol", uglyContract)
	writeSolFile(t, dir, "Bad.sol", "contract {\n")

	result, err := runner.New().Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Mode:       runner.ModeCheck,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.HasErrors() {
		t.Fatal("expected an error outcome for the unparsable file")
	}
	if result.Stats.FilesErrored != 1 {
		t.Errorf("FilesErrored = %d, want 1", result.Stats.FilesErrored)
	}
	if result.Stats.FilesProcessed != 1 {
		t.Errorf("FilesProcessed = %d, want 1", result.Stats.FilesProcessed)
	}

	for _, file := range result.Files {
		switch filepath.Base(file.Path) {
		case "Bad.sol":
			if file.Error == nil {
				t.Error("Bad.sol has no error")
			}
		case "Good.sol":
			if file.Error != nil {
				t.Errorf("Good.sol errored: %v", file.Error)
			}
		}
	}
}

func TestRunner_DeterministicOutcomeOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	names := []string{"Alpha.sol", "Beta.sol", "Gamma.sol", "Delta.sol", "Epsilon.sol"}
	for _, name := range names {
		writeSolFile(t, dir, name, uglyContract)
	}

	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Mode:       runner.ModeCheck,
		Jobs:       4,
	}

	first, err := runner.New().Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(first.Files) != len(names) {
		t.Fatalf("expected %d outcomes, got %d", len(names), len(first.Files))
	}

	for range 3 {
		again, err := runner.New().Run(context.Background(), opts)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		for idx := range first.Files {
			if again.Files[idx].Path != first.Files[idx].Path {
				t.Errorf("outcome order differs at %d: %s vs %s",
					idx, again.Files[idx].Path, first.Files[idx].Path)
			}
		}
	}
}

func TestRunner_EmptyDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	result, err := runner.New().Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Mode:       runner.ModeCheck,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 0 || len(result.Files) != 0 {
		t.Errorf("expected empty result, got %+v", result.Stats)
	}
	if result.HasChanges() || result.HasErrors() {
		t.Error("empty run reported changes or errors")
	}
}

func TestRunner_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for idx := range 20 {
		writeSolFile(t, dir, "File"+string(rune('A'+idx))+".sol", uglyContract)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New().Run(ctx, runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Mode:       runner.ModeCheck,
	})
	if err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestProcessFile_CheckModeKeepsOriginal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSolFile(t, dir, "Token.sol", uglyContract)

	outcome := runner.ProcessFile(context.Background(), path, runner.Options{Mode: runner.ModeCheck})
	if outcome.Error != nil {
		t.Fatalf("ProcessFile() error = %v", outcome.Error)
	}
	if !outcome.Changed {
		t.Error("expected Changed for unformatted input")
	}
	if outcome.Written {
		t.Error("check mode reported a write")
	}
	if string(outcome.Original) != uglyContract {
		t.Error("Original does not hold the input bytes")
	}
	if outcome.Formatted == "" {
		t.Error("Formatted is empty")
	}
}

func TestProcessFile_MissingFile(t *testing.T) {
	t.Parallel()

	outcome := runner.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "gone.sol"), runner.Options{})
	if outcome.Error == nil {
		t.Error("expected error for missing file")
	}
}
