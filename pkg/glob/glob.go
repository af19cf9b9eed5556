// Package glob matches slash-separated relative paths against glob
// patterns. A segment supports the usual *, ? and character classes; a
// bare ** segment matches any number of path segments, including none.
// Patterns never cross segment boundaries except through **.
package glob

import (
	"path"
	"strings"
)

// Pattern is a compiled glob pattern.
type Pattern struct {
	raw      string
	segments []string
}

// Compile validates and compiles a pattern. Leading "./" is stripped, as
// template authors commonly write excludes that way.
func Compile(pattern string) (Pattern, error) {
	raw := pattern
	pattern = strings.TrimPrefix(pattern, "./")
	pattern = strings.Trim(pattern, "/")
	segments := strings.Split(pattern, "/")
	for _, seg := range segments {
		if seg == "**" {
			continue
		}
		if _, err := path.Match(seg, ""); err != nil {
			return Pattern{}, err
		}
	}
	return Pattern{raw: raw, segments: segments}, nil
}

// String returns the pattern as written.
func (p Pattern) String() string { return p.raw }

// Match reports whether the slash-separated relative path matches.
func (p Pattern) Match(rel string) bool {
	rel = strings.Trim(rel, "/")
	if rel == "" {
		return false
	}
	return matchSegments(p.segments, strings.Split(rel, "/"))
}

func matchSegments(pat, parts []string) bool {
	if len(pat) == 0 {
		return len(parts) == 0
	}
	if pat[0] == "**" {
		// ** swallows zero or more leading segments
		for i := 0; i <= len(parts); i++ {
			if matchSegments(pat[1:], parts[i:]) {
				return true
			}
		}
		return false
	}
	if len(parts) == 0 {
		return false
	}
	ok, err := path.Match(pat[0], parts[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(pat[1:], parts[1:])
}

// Set is an ordered collection of compiled patterns.
type Set []Pattern

// CompileAll compiles each pattern, failing on the first invalid one. The
// returned string names the offending pattern when err is non-nil.
func CompileAll(patterns []string) (Set, string, error) {
	set := make(Set, 0, len(patterns))
	for _, raw := range patterns {
		p, err := Compile(raw)
		if err != nil {
			return nil, raw, err
		}
		set = append(set, p)
	}
	return set, "", nil
}

// Match reports whether any pattern in the set matches rel.
func (s Set) Match(rel string) bool {
	for _, p := range s {
		if p.Match(rel) {
			return true
		}
	}
	return false
}
