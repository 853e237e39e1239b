package diff

import (
	"strings"
	"testing"
)

const pyHunk = `diff --git a/x.py b/x.py
index 123..456 100644
--- a/x.py
+++ b/x.py
@@ -1,2 +1,2 @@
 import os
-print("a")
+print("b")
`

const jsonHunk = `diff --git a/y.json b/y.json
index 789..abc 100644
--- a/y.json
+++ b/y.json
@@ -1 +1 @@
-{"a": 1}
+{"a": 2}
`

const mdHunk = `diff --git a/docs/z.md b/docs/z.md
--- a/docs/z.md
+++ b/docs/z.md
@@ -1 +1 @@
-old
+new
`

func TestFilterRawDropsExcludedSections(t *testing.T) {
	f := NewFilter(nil, MustMatcher("**/*.json", "**/*.md"))
	res := f.FilterRaw(pyHunk + jsonHunk)

	if res.Text != pyHunk {
		t.Fatalf("expected python hunk verbatim, got:\n%s", res.Text)
	}
	if strings.Contains(res.Text, "y.json") || strings.Contains(res.Text, `{"a": 2}`) {
		t.Fatalf("json hunk leaked into output")
	}
	if len(res.Kept) != 1 || res.Kept[0] != "x.py" {
		t.Fatalf("unexpected kept %v", res.Kept)
	}
	if len(res.Excluded) != 1 || res.Excluded[0] != (Skipped{Path: "y.json", Reason: ReasonSuffix}) {
		t.Fatalf("unexpected excluded %v", res.Excluded)
	}
	if res.Empty() {
		t.Fatalf("result must not be empty")
	}
}

func TestFilterRawPreservesOrderAroundExcludedSection(t *testing.T) {
	f := NewFilter(nil, nil)
	second := strings.ReplaceAll(pyHunk, "x.py", "w.py")
	res := f.FilterRaw(pyHunk + mdHunk + second)
	if res.Text != pyHunk+second {
		t.Fatalf("unexpected output:\n%s", res.Text)
	}
}

func TestFilterRawKeepsPreamble(t *testing.T) {
	f := NewFilter(nil, nil)
	preamble := "From abc Mon Sep 17 00:00:00 2001\nSubject: test\n\n"
	res := f.FilterRaw(preamble + jsonHunk)
	if res.Text != preamble {
		t.Fatalf("expected preamble only, got %q", res.Text)
	}
	if !res.Empty() {
		t.Fatalf("preamble alone is not reviewable")
	}
}

func TestFilterRawEmptyInput(t *testing.T) {
	res := NewFilter(nil, nil).FilterRaw("")
	if !res.Empty() {
		t.Fatalf("expected empty result")
	}
}

const quotedMdHunk = `diff --git "a/docs/caf\303\251.md" "b/docs/caf\303\251.md"
index 111..222 100644
--- "a/docs/caf\303\251.md"
+++ "b/docs/caf\303\251.md"
@@ -1 +1 @@
-old
+SECRET_MD_CONTENT
`

func TestFilterRawQuotedHeader(t *testing.T) {
	res := NewFilter(nil, nil).FilterRaw(pyHunk + quotedMdHunk)

	if res.Text != pyHunk {
		t.Fatalf("quoted markdown section leaked:\n%s", res.Text)
	}
	if len(res.Kept) != 1 || res.Kept[0] != "x.py" {
		t.Fatalf("unexpected kept %v", res.Kept)
	}
	want := Skipped{Path: "docs/caf\u00e9.md", Reason: ReasonSuffix}
	if len(res.Excluded) != 1 || res.Excluded[0] != want {
		t.Fatalf("unexpected excluded %+v", res.Excluded)
	}
}

func TestFilterRawKeepsQuotedReviewablePath(t *testing.T) {
	hunk := "diff --git \"a/src/tab\\there.c\" \"b/src/tab\\there.c\"\n+int x;\n"
	res := NewFilter(nil, nil).FilterRaw(hunk)
	if res.Text != hunk {
		t.Fatalf("unexpected output %q", res.Text)
	}
	if len(res.Kept) != 1 || res.Kept[0] != "src/tab\there.c" {
		t.Fatalf("unexpected kept %q", res.Kept)
	}
}

func TestFilterRawUnparsedHeaderStartsNewSection(t *testing.T) {
	broken := "diff --git garbage\n+leaked\n"
	second := strings.ReplaceAll(pyHunk, "x.py", "w.py")
	res := NewFilter(nil, nil).FilterRaw(pyHunk + broken + second)

	if res.Text != pyHunk+second {
		t.Fatalf("unexpected output:\n%s", res.Text)
	}
	if len(res.Excluded) != 1 || res.Excluded[0] != (Skipped{Path: "garbage", Reason: ReasonBadHeader}) {
		t.Fatalf("unexpected excluded %+v", res.Excluded)
	}
}

func TestHeaderPaths(t *testing.T) {
	tests := []struct {
		rest     string
		old, new string
		ok       bool
	}{
		{rest: "a/x.py b/x.py", old: "x.py", new: "x.py", ok: true},
		{rest: "a/old name.c b/new name.c", old: "old name.c", new: "new name.c", ok: true},
		{rest: `"a/caf\303\251.md" "b/caf\303\251.md"`, old: "caf\u00e9.md", new: "caf\u00e9.md", ok: true},
		{rest: `a/plain.c "b/caf\303\251.c"`, old: "plain.c", new: "caf\u00e9.c", ok: true},
		{rest: `"a/unterminated`, ok: false},
		{rest: "nonsense", ok: false},
	}
	for _, tt := range tests {
		oldPath, newPath, ok := headerPaths(tt.rest)
		if ok != tt.ok || oldPath != tt.old || newPath != tt.new {
			t.Fatalf("headerPaths(%q) = %q, %q, %v", tt.rest, oldPath, newPath, ok)
		}
	}
}
