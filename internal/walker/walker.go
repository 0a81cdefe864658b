// Package walker lists and traverses directory trees through ignore filters.
package walker

import (
	"os"
	"path/filepath"

	"github.com/temirov/pathstamp/internal/matcher"
	"github.com/temirov/pathstamp/internal/utils"
)

// DirEntry is a single filtered result of a directory listing.
type DirEntry struct {
	Name string
	// IsDirectory comes from the entry type, so a symlink to a directory is not a directory.
	IsDirectory bool
	IsRegular   bool
	FullPath    string
}

// NameMatcher tests bare entry names.
type NameMatcher interface {
	ShouldIgnore(name string) bool
}

// PathMatcher tests root-relative forward-slash paths.
type PathMatcher interface {
	ShouldIgnore(relativePath string, isDirectory bool) bool
}

// Filter decides which entries a traversal keeps.
// Names is consulted first; Paths, when set, can only exclude further.
type Filter struct {
	Root  string
	Names NameMatcher
	Paths PathMatcher
	// OnReadError, when set, observes directories that could not be listed.
	OnReadError func(directory string, readError error)
}

// NewFilter combines a name matcher and an optional path filter rooted at root.
func NewFilter(root string, names *matcher.Matcher, paths *matcher.PathFilter) Filter {
	filter := Filter{Root: root, Names: names}
	if paths != nil {
		filter.Paths = paths
	}
	return filter
}

// Excludes reports whether entry is filtered out.
func (filter Filter) Excludes(entry DirEntry) bool {
	if filter.Names != nil && filter.Names.ShouldIgnore(entry.Name) {
		return true
	}
	if filter.Paths == nil {
		return false
	}
	relativePath, relativeError := utils.RelativePath(filter.Root, entry.FullPath)
	if relativeError != nil {
		return false
	}
	return filter.Paths.ShouldIgnore(relativePath, entry.IsDirectory)
}

// ListEntries lists directory and returns every entry the filter keeps, in the order the filesystem
// listing returned them. Symlinks, sockets, and other special files are included but never marked
// as directories. A directory that cannot be read yields no entries.
func ListEntries(directory string, filter Filter) []DirEntry {
	directoryEntries, readError := os.ReadDir(directory)
	if readError != nil {
		if filter.OnReadError != nil {
			filter.OnReadError(directory, readError)
		}
		return nil
	}
	entries := make([]DirEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entry := DirEntry{
			Name:        directoryEntry.Name(),
			IsDirectory: directoryEntry.IsDir(),
			IsRegular:   directoryEntry.Type().IsRegular(),
			FullPath:    filepath.Join(directory, directoryEntry.Name()),
		}
		if filter.Excludes(entry) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// ReadEntries is ListEntries restricted to directories and regular files.
func ReadEntries(directory string, filter Filter) []DirEntry {
	listed := ListEntries(directory, filter)
	entries := listed[:0]
	for _, entry := range listed {
		if entry.IsDirectory || entry.IsRegular {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Walk visits every kept entry beneath root depth-first, each directory before its contents.
// Traversal uses an explicit work-list, so tree depth does not grow the call stack.
func Walk(root string, filter Filter, visit func(entry DirEntry)) {
	pending := pushReversed(nil, ReadEntries(root, filter))
	for len(pending) > 0 {
		entry := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		visit(entry)
		if entry.IsDirectory {
			pending = pushReversed(pending, ReadEntries(entry.FullPath, filter))
		}
	}
}

// pushReversed appends entries in reverse so that popping yields listing order.
func pushReversed(stack []DirEntry, entries []DirEntry) []DirEntry {
	for index := len(entries) - 1; index >= 0; index-- {
		stack = append(stack, entries[index])
	}
	return stack
}
