// Package comments maps file extensions to single-line comment prefixes.
package comments

import "path/filepath"

// Table is an immutable extension to comment-prefix lookup.
// Extensions include the leading dot and are matched case-sensitively, so ".GO" is unsupported.
type Table struct {
	prefixes map[string]string
}

// NewTable copies mappings into a new Table.
func NewTable(mappings map[string]string) Table {
	prefixes := make(map[string]string, len(mappings))
	for extension, prefix := range mappings {
		prefixes[extension] = prefix
	}
	return Table{prefixes: prefixes}
}

// Lookup returns the comment prefix for extension.
// A false result means the file type is not annotatable.
func (table Table) Lookup(extension string) (string, bool) {
	prefix, found := table.prefixes[extension]
	if !found || prefix == "" {
		return "", false
	}
	return prefix, true
}

// LookupPath resolves the prefix for a file path by its extension.
// filepath.Ext treats a leading-dot name such as ".gitignore" as the extension itself.
func (table Table) LookupPath(path string) (string, bool) {
	return table.Lookup(filepath.Ext(path))
}

// Len reports the number of supported extensions.
func (table Table) Len() int {
	return len(table.prefixes)
}
