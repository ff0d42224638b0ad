// Package gitfiles enumerates repository files by invoking git ls-files.
// The enumerator is the tool's only data source: it turns a scan directory
// and a set of Git file-state options into an ordered list of paths relative
// to the repository root.
package gitfiles

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	gitExecutableName  = "git"
	lsFilesSubcommand  = "ls-files"
	changeDirectoryArg = "-C"

	othersArgument          = "--others"
	stageArgument           = "--stage"
	cachedArgument          = "--cached"
	excludeStandardArgument = "--exclude-standard"
	excludeArgumentFormat   = "--exclude=%s"
	recurseSubmodulesArg    = "--recurse-submodules"

	errorRunFormat = "git ls-files failed for %s: %w"
)

// Options selects which Git file states the enumerator reports.
type Options struct {
	// Others includes untracked files.
	Others bool
	// Stage includes staged index entries.
	Stage bool
	// Cached includes tracked files.
	Cached bool
	// ExcludeStandard applies the repository's standard ignore rules.
	ExcludeStandard bool
	// Exclude holds additional exclusion glob patterns.
	Exclude []string
}

// Arguments builds the git ls-files argument vector for the given scan
// directory. Submodule recursion is requested only when untracked files are
// off; git rejects combining --others with --recurse-submodules.
func Arguments(directory string, options Options) []string {
	arguments := []string{lsFilesSubcommand}
	if options.Others {
		arguments = append(arguments, othersArgument)
	}
	if options.Stage {
		arguments = append(arguments, stageArgument)
	}
	if options.Cached {
		arguments = append(arguments, cachedArgument)
	}
	if options.ExcludeStandard {
		arguments = append(arguments, excludeStandardArgument)
	}
	for _, excludePattern := range options.Exclude {
		arguments = append(arguments, fmt.Sprintf(excludeArgumentFormat, excludePattern))
	}
	if !options.Others {
		arguments = append(arguments, recurseSubmodulesArg)
	}
	return append(arguments, directory)
}

// OptionsSet returns the active boolean flags formatted for the empty-result
// message, for example "{--others, --stage}". Flags appear in a stable order.
func OptionsSet(options Options) string {
	var activeFlags []string
	if options.Others {
		activeFlags = append(activeFlags, othersArgument)
	}
	if options.Stage {
		activeFlags = append(activeFlags, stageArgument)
	}
	if options.Cached {
		activeFlags = append(activeFlags, cachedArgument)
	}
	if options.ExcludeStandard {
		activeFlags = append(activeFlags, excludeStandardArgument)
	}
	sort.Strings(activeFlags)
	return "{" + strings.Join(activeFlags, ", ") + "}"
}

// ParseLine extracts the path from one line of git ls-files output. With
// --stage the line carries "<mode> <object> <stage>\t<path>" columns; only
// the text after the last tab is the path. Lines without metadata pass
// through unchanged.
func ParseLine(line string) string {
	if tabIndex := strings.LastIndex(line, "\t"); tabIndex >= 0 {
		return line[tabIndex+1:]
	}
	return line
}

// List runs git ls-files inside repositoryRoot for the given scan directory
// and returns repository-root-relative paths in output order, deduplicated.
// Standard output is consumed line by line while standard error is captured
// concurrently; a failed invocation returns an error carrying the captured
// stderr. The caller treats any error as fatal for the whole run.
func List(ctx context.Context, repositoryRoot string, directory string, options Options) ([]string, error) {
	commandArguments := append([]string{changeDirectoryArg, repositoryRoot}, Arguments(directory, options)...)
	// #nosec G204
	command := exec.CommandContext(ctx, gitExecutableName, commandArguments...)

	stdoutPipe, stdoutPipeError := command.StdoutPipe()
	if stdoutPipeError != nil {
		return nil, fmt.Errorf(errorRunFormat, directory, stdoutPipeError)
	}
	var stderrBuffer bytes.Buffer
	command.Stderr = &stderrBuffer

	if startError := command.Start(); startError != nil {
		return nil, fmt.Errorf(errorRunFormat, directory, startError)
	}

	var relativePaths []string
	seenPaths := make(map[string]struct{})

	pumpGroup, _ := errgroup.WithContext(ctx)
	pumpGroup.Go(func() error {
		lineScanner := bufio.NewScanner(stdoutPipe)
		for lineScanner.Scan() {
			relativePath := strings.TrimSpace(ParseLine(lineScanner.Text()))
			if relativePath == "" {
				continue
			}
			if _, alreadySeen := seenPaths[relativePath]; alreadySeen {
				continue
			}
			seenPaths[relativePath] = struct{}{}
			relativePaths = append(relativePaths, relativePath)
		}
		return lineScanner.Err()
	})

	scanError := pumpGroup.Wait()
	waitError := command.Wait()
	if waitError != nil {
		trimmedStderr := strings.TrimSpace(stderrBuffer.String())
		if trimmedStderr != "" {
			return nil, fmt.Errorf(errorRunFormat, directory, fmt.Errorf("%s: %w", trimmedStderr, waitError))
		}
		return nil, fmt.Errorf(errorRunFormat, directory, waitError)
	}
	if scanError != nil {
		return nil, fmt.Errorf(errorRunFormat, directory, scanError)
	}

	return relativePaths, nil
}
