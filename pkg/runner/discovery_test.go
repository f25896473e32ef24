package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/solfmt/pkg/runner"
)

const discoveryStub = "pragma solidity ^0.8.0;\ncontract C {}\n"

// writeTree creates each relative path under dir with stub content.
func writeTree(t *testing.T, dir string, paths []string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(dir, p)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(discoveryStub), 0644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	solFile := filepath.Join(dir, "Token.sol")
	if err := os.WriteFile(solFile, []byte(discoveryStub), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{solFile},
		WorkingDir: dir,
	}

	files, err := runner.Discover(ctx, opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}

	if files[0] != solFile {
		t.Errorf("expected %s, got %s", solFile, files[0])
	}
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, []string{
		"Token.sol",
		"src/Vault.sol",
		"test/Vault.t.sol",
		"script/deploy.js",
		"README.md",
	})

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	}

	discovered, err := runner.Discover(ctx, opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(discovered) != 3 {
		t.Fatalf("expected 3 Solidity files, got %d: %v", len(discovered), discovered)
	}

	for _, f := range discovered {
		if filepath.Ext(f) != ".sol" {
			t.Errorf("non-Solidity file discovered: %s", f)
		}
	}
}

func TestDiscover_DefaultsToCurrentDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, []string{"A.sol", "B.sol"})

	ctx := context.Background()
	opts := runner.Options{
		WorkingDir: dir,
	}

	discovered, err := runner.Discover(ctx, opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(discovered) != 2 {
		t.Errorf("expected 2 files, got %d: %v", len(discovered), discovered)
	}
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, []string{"Interface.sol", "Legacy.solidity", "notes.txt"})

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Extensions: []string{".sol", ".solidity"},
	}

	discovered, err := runner.Discover(ctx, opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(discovered) != 2 {
		t.Errorf("expected 2 files, got %d: %v", len(discovered), discovered)
	}
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, []string{
		"src/Token.sol",
		"lib/forge-std/src/Test.sol",
		"node_modules/@openzeppelin/ERC20.sol",
	})

	ctx := context.Background()
	opts := runner.Options{
		Paths:        []string{"."},
		WorkingDir:   dir,
		ExcludeGlobs: []string{"lib/**", "node_modules/**"},
	}

	discovered, err := runner.Discover(ctx, opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(discovered) != 1 {
		t.Fatalf("expected 1 file, got %d: %v", len(discovered), discovered)
	}
	if filepath.Base(discovered[0]) != "Token.sol" {
		t.Errorf("expected Token.sol, got %s", discovered[0])
	}
}

func TestDiscover_IncludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, []string{
		"src/Token.sol",
		"src/Vault.sol",
		"test/Token.t.sol",
	})

	ctx := context.Background()
	opts := runner.Options{
		Paths:        []string{"."},
		WorkingDir:   dir,
		IncludeGlobs: []string{"src/**"},
	}

	discovered, err := runner.Discover(ctx, opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(discovered) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(discovered), discovered)
	}
	for _, f := range discovered {
		rel, _ := filepath.Rel(dir, f)
		if filepath.Dir(rel) != "src" {
			t.Errorf("file outside src/ discovered: %s", rel)
		}
	}
}

func TestDiscover_HiddenFilesAndDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, []string{
		"Token.sol",
		".hidden.sol",
		".git/objects/Fake.sol",
	})

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	}

	discovered, err := runner.Discover(ctx, opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(discovered) != 1 {
		t.Fatalf("expected 1 file, got %d: %v", len(discovered), discovered)
	}
	if filepath.Base(discovered[0]) != "Token.sol" {
		t.Errorf("expected Token.sol, got %s", discovered[0])
	}
}

func TestDiscover_DeterministicOrdering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, []string{"Zeta.sol", "Alpha.sol", "mid/Gamma.sol"})

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	}

	first, err := runner.Discover(ctx, opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	for range 5 {
		again, err := runner.Discover(ctx, opts)
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("inconsistent count: %d vs %d", len(again), len(first))
		}
		for idx := range first {
			if again[idx] != first[idx] {
				t.Errorf("ordering differs at %d: %s vs %s", idx, again[idx], first[idx])
			}
		}
	}
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	solFile := filepath.Join(dir, "Token.sol")
	if err := os.WriteFile(solFile, []byte(discoveryStub), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{solFile, ".", "Token.sol"},
		WorkingDir: dir,
	}

	discovered, err := runner.Discover(ctx, opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(discovered) != 1 {
		t.Errorf("expected 1 deduplicated file, got %d: %v", len(discovered), discovered)
	}
}

func TestDiscover_MultiplePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, []string{
		"src/Token.sol",
		"test/Token.t.sol",
		"script/Deploy.sol",
	})

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"src", "test"},
		WorkingDir: dir,
	}

	discovered, err := runner.Discover(ctx, opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(discovered) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(discovered), discovered)
	}
	for _, f := range discovered {
		rel, _ := filepath.Rel(dir, f)
		if filepath.Dir(rel) == "script" {
			t.Errorf("unrequested path discovered: %s", rel)
		}
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"no-such-dir"},
		WorkingDir: dir,
	}

	_, err := runner.Discover(ctx, opts)
	if err == nil {
		t.Fatal("expected error for non-existent path")
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for idx := range 10 {
		path := filepath.Join(dir, "File"+string(rune('A'+idx))+".sol")
		if err := os.WriteFile(path, []byte(discoveryStub), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately.

	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	}

	_, err := runner.Discover(ctx, opts)
	if err == nil {
		t.Log("no error returned, cancellation may not have been caught early")
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	realFile := filepath.Join(dir, "Real.sol")
	if err := os.WriteFile(realFile, []byte(discoveryStub), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	linkFile := filepath.Join(dir, "Link.sol")
	if err := os.Symlink(realFile, linkFile); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	ctx := context.Background()
	opts := runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	}

	discovered, err := runner.Discover(ctx, opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	// Both the real file and the file symlink are discovered.
	if len(discovered) != 2 {
		t.Errorf("expected 2 files, got %d: %v", len(discovered), discovered)
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	realDir := filepath.Join(dir, "real")
	if err := os.MkdirAll(realDir, 0755); err != nil {
		t.Fatalf("setup mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(realDir, "Inner.sol"), []byte(discoveryStub), 0644); err != nil {
		t.Fatalf("setup write: %v", err)
	}

	linkDir := filepath.Join(dir, "linked")
	if err := os.Symlink(realDir, linkDir); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	ctx := context.Background()

	// Directory symlinks are skipped by default.
	skipped, err := runner.Discover(ctx, runner.Options{
		Paths:      []string{"linked"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(skipped) != 1 {
		// "linked" resolves as an explicit path; only the symlinked walk
		// during directory traversal is skipped.
		t.Logf("explicit symlinked path discovered %d files", len(skipped))
	}

	followed, err := runner.Discover(ctx, runner.Options{
		Paths:          []string{"."},
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(followed) < 1 {
		t.Errorf("expected at least the real file, got %d: %v", len(followed), followed)
	}

	unfollowed, err := runner.Discover(ctx, runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(unfollowed) != 1 {
		t.Errorf("expected 1 file without FollowSymlinks, got %d: %v", len(unfollowed), unfollowed)
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	exts := runner.DefaultExtensions()
	if len(exts) != 1 || exts[0] != ".sol" {
		t.Errorf("DefaultExtensions() = %v, want [.sol]", exts)
	}
}
