package matcher

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"

	"github.com/temirov/pathstamp/internal/utils"
)

const (
	errorInvalidGlobFormat = "invalid exclude pattern %q"
	errorOpenGitignore     = "opening %s: %w"

	gitIgnoreFileName = ".gitignore"
)

// PathFilterOptions configures the optional exclusions evaluated against root-relative paths.
type PathFilterOptions struct {
	RootDirectory   string
	ExcludePatterns []string
	UseGitignore    bool
}

// PathFilter excludes entries by their forward-slash path relative to the scan root.
// It only narrows a scan; it cannot re-include what a Matcher ignored.
type PathFilter struct {
	globs     []string
	gitIgnore gitignore.GitIgnore
}

// NewPathFilter validates the exclude globs and loads the root .gitignore when requested.
// A missing .gitignore is not an error.
func NewPathFilter(options PathFilterOptions) (*PathFilter, error) {
	filter := &PathFilter{}
	for _, pattern := range utils.DeduplicatePatterns(options.ExcludePatterns) {
		normalizedPattern := utils.NormalizePath(pattern)
		if !doublestar.ValidatePattern(normalizedPattern) {
			return nil, fmt.Errorf(errorInvalidGlobFormat, pattern)
		}
		filter.globs = append(filter.globs, normalizedPattern)
	}
	if options.UseGitignore {
		gitIgnoreMatcher, loadError := loadGitignore(options.RootDirectory)
		if loadError != nil {
			return nil, loadError
		}
		filter.gitIgnore = gitIgnoreMatcher
	}
	return filter, nil
}

// ShouldIgnore reports whether relativePath is excluded by a glob or by .gitignore.
func (filter *PathFilter) ShouldIgnore(relativePath string, isDirectory bool) bool {
	if filter == nil {
		return false
	}
	baseName := path.Base(relativePath)
	for _, glob := range filter.globs {
		if matched, _ := doublestar.Match(glob, relativePath); matched {
			return true
		}
		if matched, _ := doublestar.Match(glob, baseName); matched {
			return true
		}
	}
	if filter.gitIgnore != nil {
		match := filter.gitIgnore.Relative(relativePath, isDirectory)
		if match != nil && match.Ignore() {
			return true
		}
	}
	return false
}

// loadGitignore reads the .gitignore at the root through a reader so the handle is closed promptly.
func loadGitignore(rootDirectory string) (gitignore.GitIgnore, error) {
	gitIgnorePath := filepath.Join(rootDirectory, gitIgnoreFileName)
	fileHandle, openError := os.Open(gitIgnorePath)
	if openError != nil {
		if os.IsNotExist(openError) {
			return nil, nil
		}
		return nil, fmt.Errorf(errorOpenGitignore, gitIgnorePath, openError)
	}
	defer fileHandle.Close()
	return gitignore.New(fileHandle, rootDirectory, nil), nil
}
