package diff

import (
	"strings"

	"github.com/Saieiei/hpe-project-cty/internal/scm"
)

const (
	ReasonSuffix = "excluded-suffix"
	ReasonGlob   = "excluded-glob"
	// ReasonBadHeader marks a raw diff section whose header could not be
	// parsed. Such sections are never passed on.
	ReasonBadHeader = "unparsed-header"
)

// Skipped is a path left out of the review and the reason it was.
type Skipped struct {
	Path   string
	Reason string
}

// DefaultExcludedSuffixes are never sent for review.
var DefaultExcludedSuffixes = []string{".json", ".md"}

// Filter decides which paths are reviewable.
type Filter struct {
	suffixes []string
	matcher  *Matcher
}

// NewFilter combines suffix and glob exclusions. The default suffixes are
// always part of the suffix list.
func NewFilter(suffixes []string, matcher *Matcher) Filter {
	merged := append([]string(nil), DefaultExcludedSuffixes...)
	for _, s := range suffixes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !containsString(merged, s) {
			merged = append(merged, s)
		}
	}
	return Filter{suffixes: merged, matcher: matcher}
}

// Excluded reports whether path must be left out, and why.
func (f Filter) Excluded(path string) (bool, string) {
	if HasExcludedSuffix(path, f.suffixes) {
		return true, ReasonSuffix
	}
	if f.matcher.Match(path) {
		return true, ReasonGlob
	}
	return false, ""
}

// HasExcludedSuffix reports whether name ends with one of suffixes.
func HasExcludedSuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// FilterFiles splits files into reviewable and skipped ones, keeping the
// original order in both.
func (f Filter) FilterFiles(files []scm.ChangedFile) (included []scm.ChangedFile, skipped []Skipped) {
	for _, file := range files {
		if ex, reason := f.Excluded(file.Filename); ex {
			skipped = append(skipped, Skipped{Path: file.Filename, Reason: reason})
			continue
		}
		included = append(included, file)
	}
	return included, skipped
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
