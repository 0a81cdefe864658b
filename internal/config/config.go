// Package config holds the compiled-in scan tables and resolves runtime options.
package config

import (
	"fmt"
	"regexp"

	"github.com/temirov/pathstamp/internal/comments"
	"github.com/temirov/pathstamp/internal/matcher"
	"github.com/temirov/pathstamp/internal/utils"
)

const (
	errorAnnotateMatcherFormat = "building annotate ignore rules: %w"
	errorTreeMatcherFormat     = "building tree ignore rules: %w"

	entryPointFileName = "main.go"
	coreClientFileName = "client.go"
	entryPointRemark   = "[entry]"
	coreClientRemark   = "[core] TCB SDK"
)

// AnnotateConfiguration is the fixed table set used by the annotate command.
type AnnotateConfiguration struct {
	CommentPrefixes map[string]string `yaml:"comment_prefixes"`
	IgnorePatterns  []string          `yaml:"ignore"`
	Whitelist       []string          `yaml:"whitelist"`
}

// TreeConfiguration is the fixed table set used by the tree command.
type TreeConfiguration struct {
	IgnorePatterns []string          `yaml:"ignore"`
	Whitelist      []string          `yaml:"whitelist"`
	Remarks        map[string]string `yaml:"remarks"`
}

// Defaults groups both table sets.
type Defaults struct {
	Annotate AnnotateConfiguration `yaml:"annotate"`
	Tree     TreeConfiguration     `yaml:"tree"`
}

// selfPattern excludes the tool's own binary and directory from every scan.
var selfPattern = "^" + regexp.QuoteMeta(utils.ApplicationName) + "$"

// DefaultAnnotateConfiguration returns a fresh copy of the annotate tables.
func DefaultAnnotateConfiguration() AnnotateConfiguration {
	return AnnotateConfiguration{
		CommentPrefixes: map[string]string{
			".go":        "//",
			".js":        "//",
			".ts":        "//",
			".java":      "//",
			".c":         "//",
			".cpp":       "//",
			".php":       "//",
			".sh":        "#",
			".py":        "#",
			".yml":       "#",
			".yaml":      "#",
			".env":       "#",
			".gitignore": "#",
		},
		IgnorePatterns: []string{
			`^\.`,
			`^node_modules$`,
			`^tmp$`,
			`^docs$`,
			`^vendor$`,
			`^tests$`,
			`\.exe$`,
			`^go\.sum$`,
			`^go\.mod$`,
			selfPattern,
		},
	}
}

// DefaultTreeConfiguration returns a fresh copy of the tree tables.
func DefaultTreeConfiguration() TreeConfiguration {
	return TreeConfiguration{
		IgnorePatterns: []string{
			`^\.`,
			`^node_modules$`,
			`^tmp$`,
			`^docs$`,
			`^tests$`,
			`\.exe$`,
			`\.log$`,
			`^go\.sum$`,
			`^LICENSE$`,
			`^README\.md$`,
			selfPattern,
		},
		Whitelist: []string{".env.example", ".gitignore"},
		Remarks: map[string]string{
			entryPointFileName: entryPointRemark,
			coreClientFileName: coreClientRemark,
		},
	}
}

// DefaultConfiguration returns both default table sets.
func DefaultConfiguration() Defaults {
	return Defaults{
		Annotate: DefaultAnnotateConfiguration(),
		Tree:     DefaultTreeConfiguration(),
	}
}

// CommentTable builds the immutable comment syntax lookup.
func (configuration AnnotateConfiguration) CommentTable() comments.Table {
	return comments.NewTable(configuration.CommentPrefixes)
}

// NameMatcher compiles the annotate ignore rules.
func (configuration AnnotateConfiguration) NameMatcher() (*matcher.Matcher, error) {
	nameMatcher, buildError := matcher.New(configuration.IgnorePatterns, configuration.Whitelist)
	if buildError != nil {
		return nil, fmt.Errorf(errorAnnotateMatcherFormat, buildError)
	}
	return nameMatcher, nil
}

// NameMatcher compiles the tree ignore rules.
func (configuration TreeConfiguration) NameMatcher() (*matcher.Matcher, error) {
	nameMatcher, buildError := matcher.New(configuration.IgnorePatterns, configuration.Whitelist)
	if buildError != nil {
		return nil, fmt.Errorf(errorTreeMatcherFormat, buildError)
	}
	return nameMatcher, nil
}
