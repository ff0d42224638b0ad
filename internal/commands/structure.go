package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tvaleev/gitstructure/internal/gitfiles"
	"github.com/tvaleev/gitstructure/internal/gitrepo"
	"github.com/tvaleev/gitstructure/internal/pathtree"
)

const (
	forestTitleFormat            = "# Directory Tree for %s"
	relativizationFallbackNotice = "could not make path relative to repository root, using it unmodified"
)

// StructureRequest describes one invocation of the structure command.
type StructureRequest struct {
	// RepositoryRoot is the absolute worktree root discovered for the run.
	RepositoryRoot string
	// TreeRoot is the directory used as the top-level node when RepoAsRoot
	// is set; it equals RepositoryRoot under the default configuration.
	TreeRoot string
	// Directories holds the absolute scan directories.
	Directories []string
	// RepoAsRoot nests every scanned directory under one tree root instead
	// of giving each directory its own top-level node.
	RepoAsRoot bool
	// Options selects the Git file states reported by the enumerator.
	Options gitfiles.Options
}

// GetStructureData runs the enumerator once per scan directory and builds
// the path forest. Enumerator invocations are sequential; any enumerator
// failure aborts the run.
func GetStructureData(ctx context.Context, logger *zap.Logger, request StructureRequest) (*pathtree.Forest, error) {
	title := fmt.Sprintf(forestTitleFormat, filepath.Base(request.TreeRoot))

	var scanJobs []ScanJob
	for _, scanDirectory := range request.Directories {
		relativeDirectory, relativized := gitrepo.Relativize(scanDirectory, request.RepositoryRoot)
		if !relativized && logger != nil {
			logger.Warn(relativizationFallbackNotice, zap.String("path", scanDirectory))
		}

		enumeratedPaths, enumerationError := gitfiles.List(ctx, request.RepositoryRoot, relativeDirectory, request.Options)
		if enumerationError != nil {
			return nil, enumerationError
		}
		if logger != nil {
			logger.Debug("enumerated files", zap.String("directory", scanDirectory), zap.Int("count", len(enumeratedPaths)))
		}

		fullPaths := make([]string, 0, len(enumeratedPaths))
		for _, relativePath := range enumeratedPaths {
			fullPaths = append(fullPaths, filepath.Join(request.RepositoryRoot, relativePath))
		}

		scanRoot := scanDirectory
		if request.RepoAsRoot {
			scanRoot = request.TreeRoot
		}
		scanJobs = append(scanJobs, ScanJob{ScanRoot: scanRoot, Files: fullPaths})
	}

	treeBuilder := &TreeBuilder{Logger: logger}
	return treeBuilder.Build(title, scanJobs), nil
}
