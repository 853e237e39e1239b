package prompt

import (
	"fmt"
	"strings"

	"github.com/Saieiei/hpe-project-cty/internal/scm"
)

const (
	NoIssueComments   = "No public PR comments."
	NoReviewComments  = "No inline review comments."
	NoHistoricalMatch = "No similar historical changes found."
)

// FormatComments renders conversation comments in retrieval order.
func FormatComments(comments []scm.Comment) string {
	if len(comments) == 0 {
		return NoIssueComments
	}
	parts := make([]string, 0, len(comments))
	for _, c := range comments {
		parts = append(parts, fmt.Sprintf("**%s**: %s", c.Author, c.Body))
	}
	return strings.Join(parts, "\n\n")
}

// FormatReviewComments renders inline comments in retrieval order, naming
// the file each one is anchored to.
func FormatReviewComments(comments []scm.Comment) string {
	if len(comments) == 0 {
		return NoReviewComments
	}
	parts := make([]string, 0, len(comments))
	for _, c := range comments {
		if c.Path == "" {
			parts = append(parts, fmt.Sprintf("**%s**: %s", c.Author, c.Body))
			continue
		}
		parts = append(parts, fmt.Sprintf("**%s** on `%s`: %s", c.Author, c.Path, c.Body))
	}
	return strings.Join(parts, "\n\n")
}

// FormatHistory renders historical patches in discovery order.
func FormatHistory(matches []scm.HistoricalMatch) string {
	if len(matches) == 0 {
		return NoHistoricalMatch
	}
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, fmt.Sprintf("From PR #%d by @%s:\n%s", m.PullNumber, m.Author, fenced(m.Patch)))
	}
	return strings.Join(parts, "\n\n")
}

func fenced(patch string) string {
	return "```diff\n" + strings.TrimRight(patch, "\n") + "\n```"
}
