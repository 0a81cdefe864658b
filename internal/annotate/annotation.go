// Package annotate keeps a "File: <relative-path>" comment on the first line of every supported source file.
package annotate

import (
	"strings"

	"github.com/temirov/pathstamp/internal/types"
)

const (
	// MarkerToken identifies an annotation line.
	MarkerToken = "File:"

	lineSeparator = "\n"
)

// ExpectedLine builds the annotation line for relativePath.
func ExpectedLine(prefix, relativePath string) string {
	return prefix + " " + MarkerToken + " " + relativePath
}

// HasAnnotation reports whether firstLine is treated as an annotation for prefix.
// An ordinary comment that happens to contain the marker is indistinguishable and will be overwritten.
func HasAnnotation(firstLine, prefix string) bool {
	return firstLine != "" && strings.HasPrefix(firstLine, prefix) && strings.Contains(firstLine, MarkerToken)
}

// Annotate returns the content that should be on disk and the action that produces it.
// Content is treated verbatim: no re-encoding and no trailing newline normalization.
func Annotate(content, prefix, relativePath string) (string, types.Action) {
	expectedLine := ExpectedLine(prefix, relativePath)
	lines := strings.Split(content, lineSeparator)
	if !HasAnnotation(lines[0], prefix) {
		return expectedLine + lineSeparator + content, types.ActionInsert
	}
	if lines[0] == expectedLine {
		return content, types.ActionUnchanged
	}
	lines[0] = expectedLine
	return strings.Join(lines, lineSeparator), types.ActionUpdate
}
