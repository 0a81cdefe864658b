// Package matcher decides which directory entries a scan skips.
package matcher

import (
	"fmt"
	"regexp"
)

const errorCompilePatternFormat = "compiling ignore pattern %q: %w"

// Matcher tests bare entry names against ignore rules with a whitelist override.
// A Matcher is immutable once constructed and safe to share.
type Matcher struct {
	rules     []*regexp.Regexp
	whitelist map[string]struct{}
}

// New compiles patterns into ignore rules. Whitelisted names are never ignored.
func New(patterns []string, whitelist []string) (*Matcher, error) {
	matcher := &Matcher{
		rules:     make([]*regexp.Regexp, 0, len(patterns)),
		whitelist: make(map[string]struct{}, len(whitelist)),
	}
	for _, pattern := range patterns {
		rule, compileError := regexp.Compile(pattern)
		if compileError != nil {
			return nil, fmt.Errorf(errorCompilePatternFormat, pattern, compileError)
		}
		matcher.rules = append(matcher.rules, rule)
	}
	for _, name := range whitelist {
		matcher.whitelist[name] = struct{}{}
	}
	return matcher, nil
}

// ShouldIgnore reports whether name matches any rule and is not whitelisted.
// Only the bare name is examined, so a rule excludes matching entries at any depth.
func (matcher *Matcher) ShouldIgnore(name string) bool {
	if matcher == nil {
		return false
	}
	if _, whitelisted := matcher.whitelist[name]; whitelisted {
		return false
	}
	for _, rule := range matcher.rules {
		if rule.MatchString(name) {
			return true
		}
	}
	return false
}
