package matcher_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/pathstamp/internal/matcher"
)

const gitIgnoreContent = "*.log\nbuild/\n"

// TestPathFilterGlobs verifies doublestar exclusions against relative paths and bare names.
func TestPathFilterGlobs(testingInstance *testing.T) {
	pathFilter, constructionError := matcher.NewPathFilter(matcher.PathFilterOptions{
		RootDirectory:   testingInstance.TempDir(),
		ExcludePatterns: []string{"generated/**", "*_mock.go"},
	})
	if constructionError != nil {
		testingInstance.Fatalf("constructing path filter: %v", constructionError)
	}
	testCases := []struct {
		testName       string
		relativePath   string
		isDirectory    bool
		expectedIgnore bool
	}{
		{testName: "nested under excluded tree", relativePath: "generated/api/client.go", expectedIgnore: true},
		{testName: "base name glob at depth", relativePath: "services/poi_mock.go", expectedIgnore: true},
		{testName: "unrelated file", relativePath: "services/poi_service.go", expectedIgnore: false},
	}
	for index, testCase := range testCases {
		actual := pathFilter.ShouldIgnore(testCase.relativePath, testCase.isDirectory)
		if actual != testCase.expectedIgnore {
			testingInstance.Errorf("case %d (%s): expected %t, got %t", index, testCase.testName, testCase.expectedIgnore, actual)
		}
	}
}

// TestPathFilterRejectsInvalidGlob verifies that malformed globs fail construction.
func TestPathFilterRejectsInvalidGlob(testingInstance *testing.T) {
	_, constructionError := matcher.NewPathFilter(matcher.PathFilterOptions{ExcludePatterns: []string{"[unterminated"}})
	if constructionError == nil {
		testingInstance.Fatalf("expected error for invalid glob")
	}
}

// TestPathFilterGitignore verifies that root .gitignore rules are honoured when enabled.
func TestPathFilterGitignore(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	writeError := os.WriteFile(filepath.Join(rootDirectory, ".gitignore"), []byte(gitIgnoreContent), 0o644)
	if writeError != nil {
		testingInstance.Fatalf("writing .gitignore: %v", writeError)
	}
	pathFilter, constructionError := matcher.NewPathFilter(matcher.PathFilterOptions{RootDirectory: rootDirectory, UseGitignore: true})
	if constructionError != nil {
		testingInstance.Fatalf("constructing path filter: %v", constructionError)
	}
	if !pathFilter.ShouldIgnore("server.log", false) {
		testingInstance.Errorf("expected server.log to be ignored")
	}
	if !pathFilter.ShouldIgnore("build", true) {
		testingInstance.Errorf("expected build directory to be ignored")
	}
	if pathFilter.ShouldIgnore("main.go", false) {
		testingInstance.Errorf("expected main.go to be kept")
	}
}

// TestPathFilterMissingGitignore verifies that an absent .gitignore excludes nothing.
func TestPathFilterMissingGitignore(testingInstance *testing.T) {
	pathFilter, constructionError := matcher.NewPathFilter(matcher.PathFilterOptions{RootDirectory: testingInstance.TempDir(), UseGitignore: true})
	if constructionError != nil {
		testingInstance.Fatalf("constructing path filter: %v", constructionError)
	}
	if pathFilter.ShouldIgnore("server.log", false) {
		testingInstance.Errorf("expected nothing to be ignored")
	}
}
