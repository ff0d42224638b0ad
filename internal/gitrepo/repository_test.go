package gitrepo_test

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"

	"github.com/tvaleev/gitstructure/internal/gitrepo"
)

const nestedDirectoryName = "nested"

// TestResolvePathMissing verifies a nonexistent path is rejected.
func TestResolvePathMissing(testingHandle *testing.T) {
	missingPath := filepath.Join(testingHandle.TempDir(), "absent")
	if _, resolveError := gitrepo.ResolvePath(missingPath); resolveError == nil {
		testingHandle.Fatalf("expected error for missing path")
	}
}

// TestResolvePathExisting verifies an existing path resolves to absolute form.
func TestResolvePathExisting(testingHandle *testing.T) {
	existingDirectory := testingHandle.TempDir()
	resolvedPath, resolveError := gitrepo.ResolvePath(existingDirectory)
	if resolveError != nil {
		testingHandle.Fatalf("ResolvePath error: %v", resolveError)
	}
	if !filepath.IsAbs(resolvedPath) {
		testingHandle.Fatalf("expected absolute path, got %s", resolvedPath)
	}
}

// TestDiscoverFindsRootFromSubdirectory verifies parent-directory search.
func TestDiscoverFindsRootFromSubdirectory(testingHandle *testing.T) {
	repositoryDirectory := testingHandle.TempDir()
	if _, initError := git.PlainInit(repositoryDirectory, false); initError != nil {
		testingHandle.Fatalf("initializing repository: %v", initError)
	}
	nestedDirectory := filepath.Join(repositoryDirectory, nestedDirectoryName)
	if makeError := os.MkdirAll(nestedDirectory, 0o755); makeError != nil {
		testingHandle.Fatalf("creating nested directory: %v", makeError)
	}

	discoveredRoot, discoverError := gitrepo.Discover(nestedDirectory)
	if discoverError != nil {
		testingHandle.Fatalf("Discover error: %v", discoverError)
	}
	expectedRoot, expectedError := filepath.EvalSymlinks(repositoryDirectory)
	if expectedError != nil {
		testingHandle.Fatalf("resolving expected root: %v", expectedError)
	}
	actualRoot, actualError := filepath.EvalSymlinks(discoveredRoot)
	if actualError != nil {
		testingHandle.Fatalf("resolving discovered root: %v", actualError)
	}
	if actualRoot != expectedRoot {
		testingHandle.Fatalf("expected root %s, got %s", expectedRoot, actualRoot)
	}
}

// TestDiscoverRejectsPlainDirectory verifies non-repositories are fatal.
func TestDiscoverRejectsPlainDirectory(testingHandle *testing.T) {
	plainDirectory := testingHandle.TempDir()
	if _, discoverError := gitrepo.Discover(plainDirectory); discoverError == nil {
		testingHandle.Fatalf("expected error for a directory without a repository")
	}
}

// TestRelativize verifies both the relative result and the lenient fallback.
func TestRelativize(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	insidePath := filepath.Join(rootDirectory, nestedDirectoryName)

	relativePath, relativized := gitrepo.Relativize(insidePath, rootDirectory)
	if !relativized || relativePath != nestedDirectoryName {
		testingHandle.Fatalf("expected %s with ok=true, got %s ok=%v", nestedDirectoryName, relativePath, relativized)
	}

	fallbackPath, fallbackOk := gitrepo.Relativize("relative/path", rootDirectory)
	if fallbackOk {
		testingHandle.Fatalf("expected relativization failure for mixed path forms")
	}
	if fallbackPath != "relative/path" {
		testingHandle.Fatalf("expected original path on fallback, got %s", fallbackPath)
	}
}

// TestValidateDirectories verifies directory validation failures.
func TestValidateDirectories(testingHandle *testing.T) {
	validDirectory := testingHandle.TempDir()
	filePath := filepath.Join(validDirectory, "plain.txt")
	if writeError := os.WriteFile(filePath, []byte("content"), 0o644); writeError != nil {
		testingHandle.Fatalf("writing file: %v", writeError)
	}

	if validationError := gitrepo.ValidateDirectories([]string{validDirectory}); validationError != nil {
		testingHandle.Fatalf("unexpected error for valid directory: %v", validationError)
	}
	if validationError := gitrepo.ValidateDirectories([]string{filePath}); validationError == nil {
		testingHandle.Fatalf("expected error for a file path")
	}
	if validationError := gitrepo.ValidateDirectories([]string{filepath.Join(validDirectory, "absent")}); validationError == nil {
		testingHandle.Fatalf("expected error for a missing path")
	}
}
