// Package types defines constants shared across the gitstructure tool.
package types

// Output format identifiers accepted by the --format flag.
const (
	// FormatYAML renders the structure as an indented YAML-style list.
	FormatYAML = "yaml"
	// FormatTree renders the structure with box-drawing connector glyphs.
	FormatTree = "tree"
)

// Indentation style identifiers for the YAML renderer.
const (
	// IndentSpaces indents with repeated spaces.
	IndentSpaces = "spaces"
	// IndentTabs indents with tab characters.
	IndentTabs = "tabs"
)

// DefaultIndentWidth is the number of spaces per indentation level.
const DefaultIndentWidth = 2
