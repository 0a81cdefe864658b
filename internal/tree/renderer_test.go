package tree_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/pathstamp/internal/config"
	"github.com/temirov/pathstamp/internal/tree"
	"github.com/temirov/pathstamp/internal/types"
	"github.com/temirov/pathstamp/internal/walker"
)

// writeTestFile creates parent directories and a file with the specified content.
func writeTestFile(testingHandle *testing.T, filePath string) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(filepath.Dir(filePath), 0o755); makeDirError != nil {
		testingHandle.Fatalf("mkdir %s: %v", filepath.Dir(filePath), makeDirError)
	}
	if writeError := os.WriteFile(filePath, []byte("x"), 0o644); writeError != nil {
		testingHandle.Fatalf("write %s: %v", filePath, writeError)
	}
}

// newDefaultRenderer builds a renderer over root using the compiled-in tree tables.
func newDefaultRenderer(testingHandle *testing.T, root string) *tree.Renderer {
	testingHandle.Helper()
	treeConfiguration := config.DefaultTreeConfiguration()
	nameMatcher, matcherError := treeConfiguration.NameMatcher()
	if matcherError != nil {
		testingHandle.Fatalf("building matcher: %v", matcherError)
	}
	return tree.NewRenderer(walker.NewFilter(root, nameMatcher, nil), treeConfiguration.Remarks)
}

// TestRenderSortOrder verifies directories first, then files, each in byte order.
func TestRenderSortOrder(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(root, "b.txt"))
	writeTestFile(testingHandle, filepath.Join(root, "a.txt"))
	if makeDirError := os.MkdirAll(filepath.Join(root, "B_dir"), 0o755); makeDirError != nil {
		testingHandle.Fatalf("mkdir: %v", makeDirError)
	}
	if makeDirError := os.MkdirAll(filepath.Join(root, "A_dir"), 0o755); makeDirError != nil {
		testingHandle.Fatalf("mkdir: %v", makeDirError)
	}

	expected := "├── A_dir\n" +
		"├── B_dir\n" +
		"├── a.txt\n" +
		"└── b.txt\n"
	if actual := newDefaultRenderer(testingHandle, root).Render(root, ""); actual != expected {
		testingHandle.Fatalf("unexpected tree:\n%s\nwant:\n%s", actual, expected)
	}
}

// TestRenderGolden verifies glyphs, continuation prefixes, remarks and default filtering.
func TestRenderGolden(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	for _, relativePath := range []string{
		"main.go",
		"go.mod",
		"go.sum",
		"README.md",
		".env",
		".env.example",
		".gitignore",
		".git/HEAD",
		"node_modules/pkg/index.js",
		"controllers/poi_controller.go",
		"controllers/region_controller.go",
		"tcb/client.go",
		"tcb/node_modules/x.js",
		"logs/app.log",
		"tests/poi_test.go",
	} {
		writeTestFile(testingHandle, filepath.Join(root, filepath.FromSlash(relativePath)))
	}

	expected := "/\n" +
		"├── controllers\n" +
		"│   ├── poi_controller.go\n" +
		"│   └── region_controller.go\n" +
		"├── logs\n" +
		"├── tcb\n" +
		"│   └── client.go  # [core] TCB SDK\n" +
		"├── .env.example\n" +
		"├── .gitignore\n" +
		"├── go.mod\n" +
		"└── main.go  # [entry]\n"
	if actual := newDefaultRenderer(testingHandle, root).RenderRoot(root); actual != expected {
		testingHandle.Fatalf("unexpected tree:\n%s\nwant:\n%s", actual, expected)
	}
}

// TestRenderNestedLastBranchUsesBlankPrefix verifies the continuation prefix below a terminal entry.
func TestRenderNestedLastBranchUsesBlankPrefix(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(root, "models", "sub", "poi.go"))
	writeTestFile(testingHandle, filepath.Join(root, "models", "theme.go"))

	expected := "└── models\n" +
		"    ├── sub\n" +
		"    │   └── poi.go\n" +
		"    └── theme.go\n"
	if actual := newDefaultRenderer(testingHandle, root).Render(root, ""); actual != expected {
		testingHandle.Fatalf("unexpected tree:\n%s\nwant:\n%s", actual, expected)
	}
}

// TestRenderWithPrefix verifies that the caller-supplied prefix starts every line.
func TestRenderWithPrefix(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(root, "a.go"))
	writeTestFile(testingHandle, filepath.Join(root, "b.go"))
	expected := "│   ├── a.go\n│   └── b.go\n"
	if actual := newDefaultRenderer(testingHandle, root).Render(root, "│   "); actual != expected {
		testingHandle.Fatalf("unexpected tree:\n%s\nwant:\n%s", actual, expected)
	}
}

// TestRenderMissingDirectory verifies that unreadable directories render as empty.
func TestRenderMissingDirectory(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	missing := filepath.Join(root, "vanished")
	if actual := newDefaultRenderer(testingHandle, root).Render(missing, ""); actual != "" {
		testingHandle.Fatalf("expected empty output, got %q", actual)
	}
}

// TestBuildMatchesRender verifies that structured output uses the same filtering and order.
func TestBuildMatchesRender(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(root, "main.go"))
	writeTestFile(testingHandle, filepath.Join(root, "routes", "router.go"))
	writeTestFile(testingHandle, filepath.Join(root, "node_modules", "x.js"))

	rootNode := newDefaultRenderer(testingHandle, root).Build(root)
	if rootNode.Type != types.NodeTypeDirectory || rootNode.Name != filepath.Base(root) {
		testingHandle.Fatalf("unexpected root node %+v", rootNode)
	}
	if len(rootNode.Children) != 2 {
		testingHandle.Fatalf("expected 2 children, got %d", len(rootNode.Children))
	}
	routesNode := rootNode.Children[0]
	if routesNode.Name != "routes" || routesNode.Type != types.NodeTypeDirectory || len(routesNode.Children) != 1 || routesNode.Children[0].Name != "router.go" {
		testingHandle.Fatalf("unexpected routes node %+v", routesNode)
	}
	mainNode := rootNode.Children[1]
	if mainNode.Name != "main.go" || mainNode.Type != types.NodeTypeFile || mainNode.Remark != "[entry]" {
		testingHandle.Fatalf("unexpected main node %+v", mainNode)
	}
}

// TestRenderListsSymlinksWithoutFollowing verifies that symlinks appear as leaves, even when they point at directories.
func TestRenderListsSymlinksWithoutFollowing(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	targetPath := filepath.Join(root, "a.go")
	writeTestFile(testingHandle, targetPath)
	if linkError := os.Symlink(targetPath, filepath.Join(root, "link.go")); linkError != nil {
		testingHandle.Skipf("symlinks unsupported: %v", linkError)
	}
	fileOnly := "├── a.go\n└── link.go\n"
	if actual := newDefaultRenderer(testingHandle, root).Render(root, ""); actual != fileOnly {
		testingHandle.Fatalf("expected %q, got %q", fileOnly, actual)
	}

	writeTestFile(testingHandle, filepath.Join(root, "models", "poi.go"))
	if linkError := os.Symlink(filepath.Join(root, "models"), filepath.Join(root, "shared")); linkError != nil {
		testingHandle.Fatalf("symlink: %v", linkError)
	}
	expected := "├── models\n" +
		"│   └── poi.go\n" +
		"├── a.go\n" +
		"├── link.go\n" +
		"└── shared\n"
	if actual := newDefaultRenderer(testingHandle, root).Render(root, ""); actual != expected {
		testingHandle.Fatalf("expected %q, got %q", expected, actual)
	}
	node := newDefaultRenderer(testingHandle, root).Build(root)
	if last := node.Children[len(node.Children)-1]; last.Name != "shared" || last.Type != types.NodeTypeFile || len(last.Children) != 0 {
		testingHandle.Fatalf("unexpected symlink node %+v", last)
	}
}
