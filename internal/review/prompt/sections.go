package prompt

import (
	"fmt"
	"strings"
)

// Section is an optional block of the review prompt.
type Section string

const (
	SectionIssueComments  Section = "issue_comments"
	SectionReviewComments Section = "review_comments"
	SectionHistory        Section = "history"
)

var knownSections = []Section{SectionIssueComments, SectionReviewComments, SectionHistory}

// Sections is the set of optional blocks a run includes.
type Sections []Section

// ParseSections validates names and drops duplicates. Order is irrelevant:
// the prompt layout is fixed.
func ParseSections(names []string) (Sections, error) {
	var out Sections
	for _, raw := range names {
		name := Section(strings.ToLower(strings.TrimSpace(raw)))
		if name == "" {
			continue
		}
		if !isKnown(name) {
			return nil, fmt.Errorf("unknown section %q (valid: %s)", raw, joinSections(knownSections))
		}
		if !out.Has(name) {
			out = append(out, name)
		}
	}
	return out, nil
}

// Has reports whether s is enabled.
func (ss Sections) Has(s Section) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func (ss Sections) String() string {
	return joinSections(ss)
}

func isKnown(s Section) bool {
	for _, k := range knownSections {
		if k == s {
			return true
		}
	}
	return false
}

func joinSections(ss []Section) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}
