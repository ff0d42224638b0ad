package render_test

import (
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/tvaleev/gitstructure/internal/pathtree"
	"github.com/tvaleev/gitstructure/internal/render"
	"github.com/tvaleev/gitstructure/internal/types"
)

const (
	scanRootPath   = "root"
	firstFileName  = "file1.txt"
	secondFileName = "file2.md"
	nestedDirName  = "dir1"
	firstNested    = "nested1.txt"
	secondNested   = "nested2.txt"
	forestTitle    = "# Directory Tree for root"
)

const flatListExpected = "root/:\n" +
	"  - file1.txt\n" +
	"  - file2.md\n"

const nestedListExpected = "root/:\n" +
	"  - dir1/:\n" +
	"    - nested1.txt\n" +
	"    - nested2.txt\n"

const nestedListTabsExpected = "root/:\n" +
	"\t- dir1/:\n" +
	"\t\t- nested1.txt\n" +
	"\t\t- nested2.txt\n"

const branchesExpected = "root/\n" +
	"├── dir1/\n" +
	"│   ├── nested1.txt\n" +
	"│   └── nested2.txt\n" +
	"└── file1.txt\n"

func buildFlatForest() *pathtree.Forest {
	forest := pathtree.NewForest(forestTitle)
	forest.InsertPath(filepath.Join(scanRootPath, firstFileName), scanRootPath, pathtree.KindFile)
	forest.InsertPath(filepath.Join(scanRootPath, secondFileName), scanRootPath, pathtree.KindFile)
	return forest
}

func buildNestedForest() *pathtree.Forest {
	forest := pathtree.NewForest(forestTitle)
	forest.InsertPath(filepath.Join(scanRootPath, nestedDirName, firstNested), scanRootPath, pathtree.KindFile)
	forest.InsertPath(filepath.Join(scanRootPath, nestedDirName, secondNested), scanRootPath, pathtree.KindFile)
	return forest
}

// TestListFlatForest verifies the YAML rendering of one directory with two files.
func TestListFlatForest(testingHandle *testing.T) {
	rendered := render.List(buildFlatForest(), render.ListOptions{})
	if rendered != flatListExpected {
		testingHandle.Fatalf("unexpected list output:\n%q\nwant:\n%q", rendered, flatListExpected)
	}
}

// TestListNestedForest verifies strictly increasing indentation per depth level.
func TestListNestedForest(testingHandle *testing.T) {
	rendered := render.List(buildNestedForest(), render.ListOptions{})
	if rendered != nestedListExpected {
		testingHandle.Fatalf("unexpected list output:\n%q\nwant:\n%q", rendered, nestedListExpected)
	}
}

// TestListTabIndentation verifies the tab indent unit.
func TestListTabIndentation(testingHandle *testing.T) {
	rendered := render.List(buildNestedForest(), render.ListOptions{IndentType: types.IndentTabs})
	if rendered != nestedListTabsExpected {
		testingHandle.Fatalf("unexpected tab-indented output:\n%q\nwant:\n%q", rendered, nestedListTabsExpected)
	}
}

// TestListOutputParsesAsYAML verifies the rendered document loads as a mapping
// keyed by the root directory name.
func TestListOutputParsesAsYAML(testingHandle *testing.T) {
	rendered := render.List(buildNestedForest(), render.ListOptions{})
	var parsedDocument map[string]interface{}
	if unmarshalError := yaml.Unmarshal([]byte(rendered), &parsedDocument); unmarshalError != nil {
		testingHandle.Fatalf("rendered output is not valid YAML: %v", unmarshalError)
	}
	if len(parsedDocument) != 1 {
		testingHandle.Fatalf("expected a single root key, got %d", len(parsedDocument))
	}
	rootValue, rootPresent := parsedDocument[scanRootPath+"/"]
	if !rootPresent {
		testingHandle.Fatalf("expected root key %q in parsed document %v", scanRootPath+"/", parsedDocument)
	}
	serializedValue, serializeError := yaml.Marshal(rootValue)
	if serializeError != nil {
		testingHandle.Fatalf("re-serializing parsed value: %v", serializeError)
	}
	for _, expectedEntry := range []string{nestedDirName, firstNested, secondNested} {
		if !strings.Contains(string(serializedValue), expectedEntry) {
			testingHandle.Fatalf("expected %s in parsed structure, got %s", expectedEntry, serializedValue)
		}
	}
}

// TestRenderLineCountMatchesNodeCount verifies one emitted line per node in both formats.
func TestRenderLineCountMatchesNodeCount(testingHandle *testing.T) {
	forest := buildNestedForest()
	forest.InsertPath(filepath.Join(scanRootPath, firstFileName), scanRootPath, pathtree.KindFile)

	listLines := strings.Count(render.List(forest, render.ListOptions{}), "\n")
	if listLines != forest.Len() {
		testingHandle.Fatalf("expected %d list lines, got %d", forest.Len(), listLines)
	}
	branchLines := strings.Count(render.Branches(forest, render.BranchOptions{}), "\n")
	if branchLines != forest.Len() {
		testingHandle.Fatalf("expected %d branch lines, got %d", forest.Len(), branchLines)
	}
}

// TestDirectorySuffixCorrectness verifies markers in both formats.
func TestDirectorySuffixCorrectness(testingHandle *testing.T) {
	forest := buildNestedForest()

	for _, renderedLine := range strings.Split(strings.TrimRight(render.List(forest, render.ListOptions{}), "\n"), "\n") {
		isDirectoryLine := strings.Contains(renderedLine, scanRootPath+"/") || strings.Contains(renderedLine, nestedDirName+"/")
		if isDirectoryLine && !strings.HasSuffix(renderedLine, ":") {
			testingHandle.Fatalf("directory line missing colon suffix: %q", renderedLine)
		}
		if !isDirectoryLine && strings.HasSuffix(renderedLine, ":") {
			testingHandle.Fatalf("file line carries colon suffix: %q", renderedLine)
		}
	}

	branchOutput := render.Branches(forest, render.BranchOptions{})
	if !strings.Contains(branchOutput, nestedDirName+"/\n") {
		testingHandle.Fatalf("expected directory marker in branch output:\n%s", branchOutput)
	}
	if strings.Contains(branchOutput, firstNested+"/") {
		testingHandle.Fatalf("unexpected directory marker on file line:\n%s", branchOutput)
	}
}

// TestBranchesGlyphs verifies connector glyph placement against a pinned diagram.
func TestBranchesGlyphs(testingHandle *testing.T) {
	forest := buildNestedForest()
	forest.InsertPath(filepath.Join(scanRootPath, firstFileName), scanRootPath, pathtree.KindFile)
	rendered := render.Branches(forest, render.BranchOptions{})
	if rendered != branchesExpected {
		testingHandle.Fatalf("unexpected branch output:\n%q\nwant:\n%q", rendered, branchesExpected)
	}
}

// TestBranchesTokenAnnotations verifies file lines gain token counts when supplied.
func TestBranchesTokenAnnotations(testingHandle *testing.T) {
	forest := buildFlatForest()
	tokenCounts := map[string]int{
		filepath.Join(scanRootPath, firstFileName): 7,
	}
	rendered := render.Branches(forest, render.BranchOptions{Tokens: tokenCounts})
	if !strings.Contains(rendered, firstFileName+" (7 tokens)") {
		testingHandle.Fatalf("expected token annotation in output:\n%s", rendered)
	}
	if strings.Contains(rendered, secondFileName+" (") {
		testingHandle.Fatalf("unexpected annotation on unannotated file:\n%s", rendered)
	}
}

// TestEmptyForestPolicy verifies both renderers return the empty string for
// an empty forest and for a sole childless top-level node.
func TestEmptyForestPolicy(testingHandle *testing.T) {
	emptyForest := pathtree.NewForest(forestTitle)
	if rendered := render.List(emptyForest, render.ListOptions{}); rendered != "" {
		testingHandle.Fatalf("expected empty string from list renderer, got %q", rendered)
	}
	if rendered := render.Branches(emptyForest, render.BranchOptions{}); rendered != "" {
		testingHandle.Fatalf("expected empty string from branch renderer, got %q", rendered)
	}

	childlessForest := pathtree.NewForest(forestTitle)
	childlessForest.AddRoot(scanRootPath, pathtree.KindDirectory)
	if rendered := render.List(childlessForest, render.ListOptions{}); rendered != "" {
		testingHandle.Fatalf("expected empty string for childless root, got %q", rendered)
	}
	if rendered := render.Branches(childlessForest, render.BranchOptions{}); rendered != "" {
		testingHandle.Fatalf("expected empty string for childless root, got %q", rendered)
	}
}

// TestMultipleRootsRenderInStoredOrder verifies two scan roots emit two
// column-zero lines in insertion order.
func TestMultipleRootsRenderInStoredOrder(testingHandle *testing.T) {
	forest := pathtree.NewForest(forestTitle)
	forest.InsertPath(filepath.Join("beta", firstFileName), "beta", pathtree.KindFile)
	forest.InsertPath(filepath.Join("alpha", secondFileName), "alpha", pathtree.KindFile)

	rendered := render.Branches(forest, render.BranchOptions{})
	betaIndex := strings.Index(rendered, "beta/")
	alphaIndex := strings.Index(rendered, "alpha/")
	if betaIndex < 0 || alphaIndex < 0 || betaIndex > alphaIndex {
		testingHandle.Fatalf("expected beta before alpha in output:\n%s", rendered)
	}
}
