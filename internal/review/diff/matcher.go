package diff

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher tests repository paths against a set of glob patterns.
//
// Patterns are matched against the whole slash-separated path:
//   - `*` matches any run of characters inside a single path segment
//   - `**` matches any run of characters across segments
//   - a leading `**/` or an inner `/**/` may also match zero segments, so
//     `**/*.json` matches both `a.json` and `x/y/a.json`
//
// The usual `?`, `[...]` and `{a,b}` forms are supported as well.
type Matcher struct {
	globs []glob.Glob
}

// NewMatcher compiles patterns. Blank patterns are ignored.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, raw := range patterns {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		for _, variant := range expandZeroSegments(pattern) {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
			}
			m.globs = append(m.globs, g)
		}
	}
	return m, nil
}

// MustMatcher is NewMatcher for patterns known at compile time.
func MustMatcher(patterns ...string) *Matcher {
	m, err := NewMatcher(patterns)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether path matches any pattern. A nil Matcher matches
// nothing.
func (m *Matcher) Match(path string) bool {
	if m == nil {
		return false
	}
	path = strings.TrimPrefix(path, "./")
	for _, g := range m.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// expandZeroSegments returns pattern plus the variants in which `**/`
// prefixes and `/**/` infixes collapse to nothing.
func expandZeroSegments(pattern string) []string {
	variants := []string{pattern}
	seen := map[string]bool{pattern: true}
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}
	for i := 0; i < len(variants); i++ {
		v := variants[i]
		if strings.HasPrefix(v, "**/") {
			add(strings.TrimPrefix(v, "**/"))
		}
		if idx := strings.Index(v, "/**/"); idx >= 0 {
			add(v[:idx] + "/" + v[idx+len("/**/"):])
		}
	}
	return variants
}
