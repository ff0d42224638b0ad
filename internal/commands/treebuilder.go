// Package commands contains the core data collection logic: it turns
// enumerated repository files into a populated path forest.
package commands

import (
	"go.uber.org/zap"

	"github.com/tvaleev/gitstructure/internal/pathtree"
)

// ScanJob pairs a scan root with the files enumerated beneath it. File paths
// are absolute; every file is expected to lie under the scan root.
type ScanJob struct {
	ScanRoot string
	Files    []string
}

// TreeBuilder populates a path forest from scan jobs.
type TreeBuilder struct {
	Logger *zap.Logger
}

// Build creates a forest and inserts every job into it. Each job contributes
// a top-level node for its scan root even when no files were enumerated, so
// an empty directory still gets a visible node. Jobs with identical scan
// roots converge onto the same top-level node. Child order follows first
// insertion, which in turn follows enumerator output order.
func (treeBuilder *TreeBuilder) Build(title string, scanJobs []ScanJob) *pathtree.Forest {
	forest := pathtree.NewForest(title)
	for _, scanJob := range scanJobs {
		forest.AddRoot(scanJob.ScanRoot, pathtree.KindDirectory)
		for _, filePath := range scanJob.Files {
			if treeBuilder.Logger != nil {
				treeBuilder.Logger.Debug("inserting path", zap.String("path", filePath), zap.String("scan_root", scanJob.ScanRoot))
			}
			forest.InsertPath(filePath, scanJob.ScanRoot, pathtree.KindFile)
		}
	}
	return forest
}
