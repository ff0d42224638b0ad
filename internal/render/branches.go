package render

import (
	"fmt"
	"strings"

	"github.com/tvaleev/gitstructure/internal/pathtree"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	tokenCountFormat = " (%d tokens)"
)

// BranchOptions configures the box-drawing tree renderer.
type BranchOptions struct {
	// Tokens optionally maps node paths to token counts; file lines with an
	// entry are annotated with the count.
	Tokens map[string]int
}

// Branches renders the forest in the manner of the Unix tree command, using
// box-drawing connector glyphs that reflect each node's position at every
// ancestor level. Top-level nodes are emitted without a connector. The
// forest title is never emitted. An empty forest renders to the empty
// string, matching the list renderer's policy.
func Branches(forest *pathtree.Forest, options BranchOptions) string {
	if forest.IsEmpty() {
		return ""
	}

	var builder strings.Builder
	for _, rootHandle := range forest.Roots() {
		renderBranchNode(&builder, forest, rootHandle, "", true, true, options)
	}
	return builder.String()
}

func branchLinePrefix(prefix string, isRoot bool, isLast bool) (string, string) {
	if isRoot {
		return "", ""
	}
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return prefix + connector, childPrefix
}

func renderBranchNode(builder *strings.Builder, forest *pathtree.Forest, nodeHandle pathtree.Handle, prefix string, isRoot bool, isLast bool, options BranchOptions) {
	linePrefix, childPrefix := branchLinePrefix(prefix, isRoot, isLast)
	builder.WriteString(linePrefix)
	builder.WriteString(DisplayName(forest, nodeHandle))
	if forest.NodeKind(nodeHandle) == pathtree.KindFile {
		if tokenCount, counted := options.Tokens[forest.Path(nodeHandle)]; counted {
			builder.WriteString(fmt.Sprintf(tokenCountFormat, tokenCount))
		}
	}
	builder.WriteString("\n")

	childHandles := forest.Children(nodeHandle)
	for childIndex, childHandle := range childHandles {
		renderBranchNode(builder, forest, childHandle, childPrefix, false, childIndex == len(childHandles)-1, options)
	}
}
