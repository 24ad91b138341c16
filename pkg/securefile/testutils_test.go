package securefile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// File and Directory Operations

// fixtureRoot creates a temporary directory tree root with automatic cleanup
// and scopes the ancestor walk to it, so the tests control the ownership and
// mode of every directory the validator inspects. The returned path is fully
// resolved, since the temp location may itself sit behind a symlink.
func fixtureRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "securefile_test_")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	if err := os.Chmod(resolved, 0o700); err != nil {
		t.Fatalf("failed to chmod temp dir: %v", err)
	}

	prev := chainStop
	chainStop = resolved
	t.Cleanup(func() {
		chainStop = prev
	})
	return resolved
}

// createTestDirMode creates a directory with an explicit mode, bypassing the
// process umask.
func createTestDirMode(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.Mkdir(path, mode); err != nil {
		t.Fatalf("Failed to create test directory %s: %v", path, err)
	}
	if err := os.Chmod(path, mode); err != nil {
		t.Fatalf("Failed to chmod test directory %s: %v", path, err)
	}
	return path
}

// createTestFile creates a test file with specified content
func createTestFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
	return path
}

// isWindows returns true if running on Windows
func isWindows() bool {
	return runtime.GOOS == "windows"
}

// createTestSymlink creates a symbolic link with platform-aware error handling
func createTestSymlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		if isWindows() {
			t.Skipf("symlink creation failed on Windows: %v", err)
		}
		t.Fatalf("failed to create symlink: %v", err)
	}
}
