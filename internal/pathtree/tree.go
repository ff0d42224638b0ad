// Package pathtree implements a deduplicated hierarchical container for
// filesystem paths. Nodes are stored in an arena owned by the Forest and are
// addressed by integer handles; each node records its parent handle and an
// ordered list of child handles. Children keep first-insertion order.
package pathtree

import (
	"path/filepath"
	"strings"
)

// Kind classifies a node as a file or a directory. The classification is
// assigned at insertion time by the caller; renderers never consult the
// filesystem.
type Kind int

const (
	// KindUnknown marks a node whose classification was not supplied.
	KindUnknown Kind = iota
	// KindFile marks a node that represents a regular file.
	KindFile
	// KindDirectory marks a node that represents a directory.
	KindDirectory
)

// Handle identifies a node within a Forest.
type Handle int

// InvalidHandle is returned by lookups that find no node. It is also the
// parent handle of every top-level node.
const InvalidHandle Handle = -1

type node struct {
	path     string
	kind     Kind
	parent   Handle
	children []Handle
}

// Forest owns a set of top-level nodes and all of their descendants. The
// title is informational only and is never emitted by a renderer.
type Forest struct {
	title string
	nodes []node
	roots []Handle
}

// NewForest returns an empty forest carrying the provided display title.
func NewForest(title string) *Forest {
	return &Forest{title: title}
}

// Title returns the informational display title of the forest.
func (forest *Forest) Title() string {
	return forest.title
}

// Len returns the total number of nodes in the forest.
func (forest *Forest) Len() int {
	return len(forest.nodes)
}

// Roots returns the top-level node handles in insertion order.
func (forest *Forest) Roots() []Handle {
	return forest.roots
}

// Path returns the stored path of the node.
func (forest *Forest) Path(nodeHandle Handle) string {
	return forest.nodes[nodeHandle].path
}

// NodeKind returns the stored classification of the node.
func (forest *Forest) NodeKind(nodeHandle Handle) Kind {
	return forest.nodes[nodeHandle].kind
}

// Parent returns the parent handle of the node, or InvalidHandle for a
// top-level node.
func (forest *Forest) Parent(nodeHandle Handle) Handle {
	return forest.nodes[nodeHandle].parent
}

// Children returns the child handles of the node in insertion order.
func (forest *Forest) Children(nodeHandle Handle) []Handle {
	return forest.nodes[nodeHandle].children
}

// IsEmpty reports whether the forest has no top-level nodes, or a single
// top-level node with no children.
func (forest *Forest) IsEmpty() bool {
	if len(forest.roots) == 0 {
		return true
	}
	if len(forest.roots) == 1 && len(forest.nodes[forest.roots[0]].children) == 0 {
		return true
	}
	return false
}

// AddRoot returns the existing top-level node matching path, creating and
// appending one when absent. Repeated calls with the same path return the
// same handle and never create duplicates. Paths are compared in cleaned
// form.
func (forest *Forest) AddRoot(path string, kind Kind) Handle {
	cleanedPath := filepath.Clean(path)
	for _, rootHandle := range forest.roots {
		if forest.nodes[rootHandle].path == cleanedPath {
			return rootHandle
		}
	}
	createdHandle := forest.appendNode(cleanedPath, kind, InvalidHandle)
	forest.roots = append(forest.roots, createdHandle)
	return createdHandle
}

// FindChild performs a linear search among the node's children for one whose
// stored path equals the query path in cleaned form. The second return value
// reports whether a match was found.
func (forest *Forest) FindChild(parentHandle Handle, path string) (Handle, bool) {
	cleanedPath := filepath.Clean(path)
	for _, childHandle := range forest.nodes[parentHandle].children {
		if forest.nodes[childHandle].path == cleanedPath {
			return childHandle, true
		}
	}
	return InvalidHandle, false
}

// Depth returns the number of parent hops from the node to the nearest
// top-level node. A top-level node has depth 0.
func (forest *Forest) Depth(nodeHandle Handle) int {
	depth := 0
	currentParent := forest.nodes[nodeHandle].parent
	for currentParent != InvalidHandle {
		currentParent = forest.nodes[currentParent].parent
		depth++
	}
	return depth
}

// InsertPath adds fullPath to the forest beneath the top-level node for
// scanRoot, creating every intermediate directory level so the tree stays
// path-complete. Each intermediate node stores the accumulated path down to
// its level, not just the final component. Insertion is idempotent: existing
// nodes are reused, never duplicated. The leaf node takes leafKind;
// intermediate nodes are directories. A node previously recorded as a file
// is upgraded to a directory when a descendant path is inserted beneath it.
//
// fullPath is expected to lie under scanRoot; paths that do not are not
// validated here and the resulting shape is unspecified. Inserting the scan
// root itself returns its top-level node.
func (forest *Forest) InsertPath(fullPath, scanRoot string, leafKind Kind) Handle {
	rootHandle := forest.AddRoot(scanRoot, KindDirectory)

	cleanedRoot := filepath.Clean(scanRoot)
	cleanedFull := filepath.Clean(fullPath)
	relativePath, relativeError := filepath.Rel(cleanedRoot, cleanedFull)
	if relativeError != nil || relativePath == "." {
		return rootHandle
	}

	components := strings.Split(filepath.ToSlash(relativePath), "/")
	cursorHandle := rootHandle
	cursorPath := cleanedRoot
	for componentIndex, component := range components {
		cursorPath = filepath.Join(cursorPath, component)
		componentKind := KindDirectory
		if componentIndex == len(components)-1 {
			componentKind = leafKind
		}

		childHandle, childExists := forest.FindChild(cursorHandle, cursorPath)
		if !childExists {
			childHandle = forest.appendNode(cursorPath, componentKind, cursorHandle)
			forest.nodes[cursorHandle].children = append(forest.nodes[cursorHandle].children, childHandle)
		} else if componentIndex < len(components)-1 && forest.nodes[childHandle].kind != KindDirectory {
			forest.nodes[childHandle].kind = KindDirectory
		} else if componentIndex == len(components)-1 && forest.nodes[childHandle].kind == KindUnknown {
			forest.nodes[childHandle].kind = leafKind
		}
		cursorHandle = childHandle
	}
	return cursorHandle
}

// Walk visits every node in pre-order: top-level nodes in stored order, then
// each node's children in stored order, recursively.
func (forest *Forest) Walk(visit func(Handle)) {
	for _, rootHandle := range forest.roots {
		forest.walkFrom(rootHandle, visit)
	}
}

func (forest *Forest) walkFrom(nodeHandle Handle, visit func(Handle)) {
	visit(nodeHandle)
	for _, childHandle := range forest.nodes[nodeHandle].children {
		forest.walkFrom(childHandle, visit)
	}
}

func (forest *Forest) appendNode(path string, kind Kind, parent Handle) Handle {
	forest.nodes = append(forest.nodes, node{path: path, kind: kind, parent: parent})
	return Handle(len(forest.nodes) - 1)
}
