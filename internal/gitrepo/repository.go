// Package gitrepo resolves and validates repository paths. Discovery uses
// go-git rather than shelling out, mirroring the rest of the tool's
// fail-fast validation: a path must exist, scan paths must be directories,
// and the resolved root must lie inside a Git worktree.
package gitrepo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

const (
	errorPathMissingFormat   = "path '%s' does not exist"
	errorNotRepositoryFormat = "path '%s' is not a valid Git repository"
	errorNotDirectoryFormat  = "path '%s' is not a directory"
	errorAbsolutePathFormat  = "resolving absolute path for '%s': %w"
)

// ResolvePath returns the absolute form of path after verifying it exists.
func ResolvePath(path string) (string, error) {
	absolutePath, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, path, absoluteError)
	}
	if _, statError := os.Stat(absolutePath); statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(errorPathMissingFormat, path)
		}
		return "", statError
	}
	return absolutePath, nil
}

// Discover locates the worktree root of the repository enclosing path,
// searching parent directories for the .git directory. The returned root is
// absolute.
func Discover(path string) (string, error) {
	repository, openError := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		if errors.Is(openError, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf(errorNotRepositoryFormat, path)
		}
		return "", fmt.Errorf(errorNotRepositoryFormat+": %w", path, openError)
	}
	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return "", fmt.Errorf(errorNotRepositoryFormat+": %w", path, worktreeError)
	}
	return worktree.Filesystem.Root(), nil
}

// Relativize expresses path relative to root. When the path cannot be made
// relative the original path is returned with ok set to false so the caller
// can surface a warning instead of aborting.
func Relativize(path string, root string) (relativePath string, ok bool) {
	computedRelative, relativeError := filepath.Rel(root, path)
	if relativeError != nil {
		return path, false
	}
	return computedRelative, true
}

// ValidateDirectories verifies every provided path is an existing directory.
func ValidateDirectories(paths []string) error {
	for _, candidatePath := range paths {
		pathInformation, statError := os.Stat(candidatePath)
		if statError != nil {
			if os.IsNotExist(statError) {
				return fmt.Errorf(errorPathMissingFormat, candidatePath)
			}
			return statError
		}
		if !pathInformation.IsDir() {
			return fmt.Errorf(errorNotDirectoryFormat, candidatePath)
		}
	}
	return nil
}
