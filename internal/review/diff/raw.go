package diff

import (
	"regexp"
	"strconv"
	"strings"
)

const diffHeaderPrefix = "diff --git "

var diffHeaderRegexp = regexp.MustCompile(`^a/(?P<old>.*?) b/(?P<new>.*?)$`)

// RawResult is the outcome of filtering a raw diff.
type RawResult struct {
	Text     string
	Kept     []string
	Excluded []Skipped
}

// Empty reports whether no reviewable diff text is left.
func (r RawResult) Empty() bool {
	return strings.TrimSpace(r.Text) == "" || len(r.Kept) == 0
}

// headerPaths parses the part of a `diff --git` line after the prefix. Git
// quotes a path in C style when it holds non-ASCII bytes, quotes,
// backslashes or control characters; either side may be quoted.
func headerPaths(rest string) (oldPath, newPath string, ok bool) {
	var oldRaw, newRaw string
	switch {
	case strings.HasPrefix(rest, `"`):
		q, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return "", "", false
		}
		oldRaw, newRaw = q, strings.TrimPrefix(rest[len(q):], " ")
	case strings.Contains(rest, ` "b/`):
		i := strings.LastIndex(rest, ` "b/`)
		oldRaw, newRaw = rest[:i], rest[i+1:]
	default:
		m := diffHeaderRegexp.FindStringSubmatch(rest)
		if m == nil {
			return "", "", false
		}
		return m[diffHeaderRegexp.SubexpIndex("old")], m[diffHeaderRegexp.SubexpIndex("new")], true
	}

	oldPath, okOld := unquotePath(oldRaw, "a/")
	newPath, okNew := unquotePath(newRaw, "b/")
	return oldPath, newPath, okOld && okNew
}

func unquotePath(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, `"`) {
		u, err := strconv.Unquote(s)
		if err != nil {
			return "", false
		}
		s = u
	}
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	return strings.TrimPrefix(s, prefix), true
}

// FilterRaw drops every line of the file sections whose path the filter
// excludes. All other lines, including any preamble before the first header,
// are kept byte for byte and in order. Every `diff --git` line starts a new
// section; one that cannot be parsed is dropped with its section.
func (f Filter) FilterRaw(diffText string) RawResult {
	var (
		out      strings.Builder
		result   RawResult
		dropping bool
	)
	out.Grow(len(diffText))

	for _, line := range strings.SplitAfter(diffText, "\n") {
		if line == "" {
			continue
		}
		if rest, isHeader := strings.CutPrefix(strings.TrimRight(line, "\r\n"), diffHeaderPrefix); isHeader {
			skip, ok := f.section(rest)
			dropping = !ok
			if dropping {
				result.Excluded = append(result.Excluded, skip)
			} else {
				result.Kept = append(result.Kept, skip.Path)
			}
		}
		if !dropping {
			out.WriteString(line)
		}
	}

	result.Text = out.String()
	return result
}

// section decides on one diff section from its header. ok is false when the
// section must be dropped; the returned path is the new-side path.
func (f Filter) section(header string) (Skipped, bool) {
	oldPath, newPath, parsed := headerPaths(header)
	if !parsed {
		return Skipped{Path: header, Reason: ReasonBadHeader}, false
	}
	for _, p := range []string{newPath, oldPath} {
		if ex, reason := f.Excluded(p); ex {
			return Skipped{Path: newPath, Reason: reason}, false
		}
	}
	return Skipped{Path: newPath}, true
}
