// Package filter provides path filtering based on glob and regex rules.
package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// Reason types recorded in IgnoreReason.Type.
const (
	ReasonInclude = "include"
	ReasonExclude = "exclude"
	ReasonRegex   = "regex"
)

// IgnoreReason describes why a path was dropped.
type IgnoreReason struct {
	Type string // "include", "exclude", or "regex"
	Rule string // The rule that matched (empty for include misses)
	Path string // Relative path that was dropped
}

// Filter decides which collected paths are kept.
// Paths are matched in slash form relative to the scan root,
// so rules behave the same on every platform.
type Filter struct {
	// include patterns; when non-empty a path must match one of them.
	include []compiledGlob

	// exclude patterns drop any path they match.
	exclude []compiledGlob

	// regexPatterns drop any path they match.
	regexPatterns []compiledRegex

	// Track dropped paths for reporting
	ignored []IgnoreReason
}

// compiledGlob holds a glob pattern and its original string for error reporting.
type compiledGlob struct {
	pattern  glob.Glob
	original string
}

// compiledRegex holds a regex pattern and its original string for error reporting.
type compiledRegex struct {
	pattern  *regexp.Regexp
	original string
}

// Config holds filter configuration.
type Config struct {
	Include       []string // Glob patterns to keep (e.g., "ui/**")
	Exclude       []string // Glob patterns to drop (e.g., "**/tests/**")
	RegexPatterns []string // Regex patterns to drop (e.g., "_test\\.vala$")
}

// New creates a new Filter from the given configuration.
// Returns an error if any pattern fails to compile.
func New(cfg Config) (*Filter, error) {
	f := &Filter{
		ignored: []IgnoreReason{},
	}

	var err error
	if f.include, err = compileGlobs(cfg.Include); err != nil {
		return nil, err
	}
	if f.exclude, err = compileGlobs(cfg.Exclude); err != nil {
		return nil, err
	}

	for _, p := range cfg.RegexPatterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", p, err)
		}
		f.regexPatterns = append(f.regexPatterns, compiledRegex{
			pattern:  r,
			original: p,
		})
	}

	return f, nil
}

// compileGlobs compiles glob patterns with '/' as the separator,
// so "*" stays inside one path segment and "**" crosses segments.
func compileGlobs(patterns []string) ([]compiledGlob, error) {
	var out []compiledGlob
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", p, err)
		}
		out = append(out, compiledGlob{pattern: g, original: p})
	}
	return out, nil
}

// ShouldIgnore checks if a relative path should be dropped.
// If it should, the reason is recorded and true is returned.
// Check order: include → exclude → regex.
func (f *Filter) ShouldIgnore(relPath string) bool {
	if f == nil {
		return false
	}

	slashPath := filepath.ToSlash(relPath)

	if len(f.include) > 0 {
		if _, ok := matchGlobs(f.include, slashPath); !ok {
			f.record(ReasonInclude, "", relPath)
			return true
		}
	}

	if rule, ok := matchGlobs(f.exclude, slashPath); ok {
		f.record(ReasonExclude, rule, relPath)
		return true
	}

	for _, r := range f.regexPatterns {
		if r.pattern.MatchString(slashPath) {
			f.record(ReasonRegex, r.original, relPath)
			return true
		}
	}

	return false
}

// Apply returns the paths that are not ignored, preserving order.
func (f *Filter) Apply(relPaths []string) []string {
	if !f.HasRules() {
		return relPaths
	}
	kept := make([]string, 0, len(relPaths))
	for _, p := range relPaths {
		if !f.ShouldIgnore(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

func (f *Filter) record(kind, rule, path string) {
	f.ignored = append(f.ignored, IgnoreReason{
		Type: kind,
		Rule: rule,
		Path: path,
	})
}

// matchGlobs returns the first pattern matching path.
func matchGlobs(patterns []compiledGlob, path string) (string, bool) {
	for _, g := range patterns {
		if g.pattern.Match(path) {
			return g.original, true
		}
	}
	return "", false
}

// IgnoredCount returns the number of paths that were dropped.
func (f *Filter) IgnoredCount() int {
	if f == nil {
		return 0
	}
	return len(f.ignored)
}

// IgnoredPaths returns all dropped paths with their reasons.
func (f *Filter) IgnoredPaths() []IgnoreReason {
	if f == nil {
		return nil
	}
	return f.ignored
}

// Reset clears the list of dropped paths.
func (f *Filter) Reset() {
	if f != nil {
		f.ignored = f.ignored[:0]
	}
}

// HasRules returns true if the filter has any rules defined.
func (f *Filter) HasRules() bool {
	if f == nil {
		return false
	}
	return len(f.include) > 0 || len(f.exclude) > 0 || len(f.regexPatterns) > 0
}

// Stats returns a summary of the filter's rules.
func (f *Filter) Stats() (includes, excludes, regexes int) {
	if f == nil {
		return 0, 0, 0
	}
	return len(f.include), len(f.exclude), len(f.regexPatterns)
}
