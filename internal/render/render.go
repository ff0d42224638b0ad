// Package render formats a pathtree.Forest as either a YAML-style indented
// list or a box-drawing tree diagram. Both renderers traverse the forest in
// pre-order, emit one line per node, and never mutate the tree. An empty
// forest (no top-level nodes, or a sole childless top-level node) renders to
// the empty string in both formats; substituting an informational message is
// the caller's responsibility.
package render

import (
	"path/filepath"

	"github.com/tvaleev/gitstructure/internal/pathtree"
)

const (
	directoryMarker = "/"
	directorySuffix = ":"
)

// DisplayName returns the final path component of the node, with a trailing
// slash marker when the node is classified as a directory. When the final
// component is empty, such as for a filesystem root, the absolute form's
// final component is used instead.
func DisplayName(forest *pathtree.Forest, nodeHandle pathtree.Handle) string {
	nodePath := forest.Path(nodeHandle)
	baseName := filepath.Base(nodePath)
	if baseName == "." || baseName == string(filepath.Separator) {
		if absolutePath, absoluteError := filepath.Abs(nodePath); absoluteError == nil {
			baseName = filepath.Base(absolutePath)
		}
	}
	if forest.NodeKind(nodeHandle) == pathtree.KindDirectory {
		return baseName + directoryMarker
	}
	return baseName
}
