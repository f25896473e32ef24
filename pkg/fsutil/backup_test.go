package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/solfmt/pkg/fsutil"
)

func TestBackupFor(t *testing.T) {
	t.Parallel()

	got := fsutil.BackupFor("src/Token.sol")
	want := "src/Token.sol" + fsutil.BackupSuffix
	if got != want {
		t.Errorf("BackupFor() = %q, want %q", got, want)
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "Token.sol")
	original := []byte("contract  Token {}\n")
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	created, err := fsutil.CreateBackup(ctx, path)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if !created {
		t.Fatal("backup not created")
	}

	got, err := os.ReadFile(fsutil.BackupFor(path))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(got) != string(original) {
		t.Errorf("backup content = %q, want %q", got, original)
	}
}

func TestCreateBackup_Idempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "Token.sol")
	original := []byte("contract  Token {}\n")
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, err := fsutil.CreateBackup(ctx, path); err != nil {
		t.Fatalf("first CreateBackup() error = %v", err)
	}

	// Simulate a formatting pass then a second run. The backup must keep
	// the pre-formatting bytes.
	if err := os.WriteFile(path, []byte("contract Token {}\n"), 0644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	created, err := fsutil.CreateBackup(ctx, path)
	if err != nil {
		t.Fatalf("second CreateBackup() error = %v", err)
	}
	if created {
		t.Error("existing backup was overwritten")
	}

	got, err := os.ReadFile(fsutil.BackupFor(path))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(got) != string(original) {
		t.Errorf("backup content = %q, want original %q", got, original)
	}
}

func TestCreateBackup_MissingOriginal(t *testing.T) {
	t.Parallel()

	created, err := fsutil.CreateBackup(context.Background(), filepath.Join(t.TempDir(), "gone.sol"))
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if created {
		t.Error("backup reported for missing original")
	}
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "Token.sol")
	original := []byte("contract  Token {}\n")
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, err := fsutil.CreateBackup(ctx, path); err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if err := os.WriteFile(path, []byte("contract Token {}\n"), 0644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	restored, err := fsutil.RestoreBackup(ctx, path)
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if !restored {
		t.Fatal("backup not restored")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read restored: %v", err)
	}
	if string(got) != string(original) {
		t.Errorf("restored content = %q, want %q", got, original)
	}
}

func TestRestoreBackup_NoBackup(t *testing.T) {
	t.Parallel()

	restored, err := fsutil.RestoreBackup(context.Background(), filepath.Join(t.TempDir(), "Token.sol"))
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if restored {
		t.Error("restore reported without a backup")
	}
}

func TestRemoveBackup(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Token.sol")
	if err := os.WriteFile(fsutil.BackupFor(path), []byte("x"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	removed, err := fsutil.RemoveBackup(path)
	if err != nil {
		t.Fatalf("RemoveBackup() error = %v", err)
	}
	if !removed {
		t.Error("backup not removed")
	}
	if fsutil.BackupExists(path) {
		t.Error("backup still exists after removal")
	}

	removed, err = fsutil.RemoveBackup(path)
	if err != nil {
		t.Fatalf("second RemoveBackup() error = %v", err)
	}
	if removed {
		t.Error("removal reported without a backup")
	}
}

func TestBackupExists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Token.sol")
	if fsutil.BackupExists(path) {
		t.Error("BackupExists() true before backup created")
	}
	if err := os.WriteFile(fsutil.BackupFor(path), []byte("x"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if !fsutil.BackupExists(path) {
		t.Error("BackupExists() false after backup created")
	}
}
