package render

import (
	"strings"

	"github.com/tvaleev/gitstructure/internal/pathtree"
	"github.com/tvaleev/gitstructure/internal/types"
)

const (
	listItemPrefix = "- "
	tabIndentUnit  = "\t"
	spaceCharacter = " "
)

// ListOptions configures the indentation of the YAML-style renderer.
type ListOptions struct {
	// IndentType selects spaces or tabs; defaults to spaces.
	IndentType string
	// IndentWidth is the number of spaces per level; defaults to two.
	// Ignored when indenting with tabs.
	IndentWidth int
}

func (options ListOptions) indentUnit() string {
	if options.IndentType == types.IndentTabs {
		return tabIndentUnit
	}
	width := options.IndentWidth
	if width <= 0 {
		width = types.DefaultIndentWidth
	}
	return strings.Repeat(spaceCharacter, width)
}

// List renders the forest as a YAML-style indented list. Directory lines end
// with a colon and carry a trailing slash in the name; nesting is expressed
// by one indent unit per depth level. Top-level nodes are emitted without
// the list-item dash so a standard YAML loader parses the document as a
// mapping keyed by the root name. The forest title is never emitted. An
// empty forest renders to the empty string.
func List(forest *pathtree.Forest, options ListOptions) string {
	if forest.IsEmpty() {
		return ""
	}

	indentUnit := options.indentUnit()
	var builder strings.Builder
	forest.Walk(func(nodeHandle pathtree.Handle) {
		nodeDepth := forest.Depth(nodeHandle)
		if nodeDepth > 0 {
			builder.WriteString(strings.Repeat(indentUnit, nodeDepth))
			builder.WriteString(listItemPrefix)
		}
		builder.WriteString(DisplayName(forest, nodeHandle))
		if forest.NodeKind(nodeHandle) == pathtree.KindDirectory {
			builder.WriteString(directorySuffix)
		}
		builder.WriteString("\n")
	})
	return builder.String()
}
