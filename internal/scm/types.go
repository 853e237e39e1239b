package scm

import "time"

// PullRequest is the subset of pull request metadata the review job reads.
type PullRequest struct {
	Number   int
	Author   string
	Title    string
	DiffURL  string
	MergedAt *time.Time
}

// Merged reports whether the pull request carries a merge timestamp.
func (p PullRequest) Merged() bool {
	return p.MergedAt != nil
}

// ChangedFile is one entry of a pull request's file list. Patch is empty for
// binary files and pure renames.
type ChangedFile struct {
	Filename string
	Patch    string
}

// HasPatch reports whether the file carries diff text.
func (f ChangedFile) HasPatch() bool {
	return f.Patch != ""
}

// Comment is either a conversation comment or an inline review comment; Path
// is only set for the latter.
type Comment struct {
	Author string
	Body   string
	Path   string
}

// HistoricalMatch is a patch to the same file taken from an earlier merged
// pull request.
type HistoricalMatch struct {
	PullNumber int
	Author     string
	Patch      string
}
