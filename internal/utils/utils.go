// Package utils contains general helper functions used across the pathstamp tool.
package utils

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts every native directory separator in path to a forward slash.
func NormalizePath(path string) string {
	return NormalizeSeparator(path, filepath.Separator)
}

// NormalizeSeparator converts every occurrence of separator in path to a forward slash.
// A path annotated on a host using separator reads identically on any other host.
func NormalizeSeparator(path string, separator rune) string {
	if separator == '/' {
		return path
	}
	return strings.ReplaceAll(path, string(separator), ForwardSlash)
}

// RelativePath returns fullPath relative to root in forward-slash form.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePath(root, fullPath string) (string, error) {
	relativePath, relativeError := filepath.Rel(filepath.Clean(root), filepath.Clean(fullPath))
	if relativeError != nil {
		return "", relativeError
	}
	return NormalizePath(relativePath), nil
}

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// Blank patterns are dropped.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if _, exists := encounteredPatterns[trimmedPattern]; !exists {
			encounteredPatterns[trimmedPattern] = struct{}{}
			result = append(result, trimmedPattern)
		}
	}
	return result
}
