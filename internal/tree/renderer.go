// Package tree renders a filtered, sorted directory tree with box-drawing glyphs.
package tree

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/pathstamp/internal/types"
	"github.com/temirov/pathstamp/internal/walker"
)

const (
	// RootLabel heads raw tree output.
	RootLabel = "/"

	teeMarker          = "├── "
	terminalMarker     = "└── "
	continuationPrefix = "│   "
	blankPrefix        = "    "
	remarkSeparator    = "  # "
	lineBreak          = "\n"
)

// Renderer turns a directory into tree text or tree nodes.
type Renderer struct {
	filter  walker.Filter
	remarks map[string]string
}

// NewRenderer builds a Renderer. Remarks map exact file or directory names to inline notes.
func NewRenderer(filter walker.Filter, remarks map[string]string) *Renderer {
	copiedRemarks := make(map[string]string, len(remarks))
	for name, remark := range remarks {
		copiedRemarks[name] = remark
	}
	return &Renderer{filter: filter, remarks: copiedRemarks}
}

// Render returns the subtree of directory, each line starting with prefix.
// An unreadable directory renders as an empty string.
func (renderer *Renderer) Render(directory, prefix string) string {
	var builder strings.Builder
	renderer.renderInto(&builder, directory, prefix)
	return builder.String()
}

// RenderRoot returns the full raw output for root: the root label followed by its subtree.
func (renderer *Renderer) RenderRoot(root string) string {
	return RootLabel + lineBreak + renderer.Render(root, "")
}

func (renderer *Renderer) renderInto(builder *strings.Builder, directory, prefix string) {
	entries := renderer.sortedEntries(directory)
	for index, entry := range entries {
		marker := teeMarker
		childPrefix := prefix + continuationPrefix
		if index == len(entries)-1 {
			marker = terminalMarker
			childPrefix = prefix + blankPrefix
		}
		builder.WriteString(prefix)
		builder.WriteString(marker)
		builder.WriteString(entry.Name)
		if remark, found := renderer.remarks[entry.Name]; found {
			builder.WriteString(remarkSeparator)
			builder.WriteString(remark)
		}
		builder.WriteString(lineBreak)
		if entry.IsDirectory {
			renderer.renderInto(builder, entry.FullPath, childPrefix)
		}
	}
}

// Build returns the structured tree rooted at directory using the same filtering and order as Render.
func (renderer *Renderer) Build(directory string) *types.TreeNode {
	rootNode := &types.TreeNode{
		Name: filepath.Base(directory),
		Type: types.NodeTypeDirectory,
	}
	rootNode.Children = renderer.buildChildren(directory)
	return rootNode
}

func (renderer *Renderer) buildChildren(directory string) []*types.TreeNode {
	entries := renderer.sortedEntries(directory)
	nodes := make([]*types.TreeNode, 0, len(entries))
	for _, entry := range entries {
		node := &types.TreeNode{
			Name:   entry.Name,
			Type:   types.NodeTypeFile,
			Remark: renderer.remarks[entry.Name],
		}
		if entry.IsDirectory {
			node.Type = types.NodeTypeDirectory
			node.Children = renderer.buildChildren(entry.FullPath)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// sortedEntries lists directory with directories first, then files, each group by ascending name.
func (renderer *Renderer) sortedEntries(directory string) []walker.DirEntry {
	entries := walker.ListEntries(directory, renderer.filter)
	sort.SliceStable(entries, func(left, right int) bool {
		if entries[left].IsDirectory != entries[right].IsDirectory {
			return entries[left].IsDirectory
		}
		return entries[left].Name < entries[right].Name
	})
	return entries
}
