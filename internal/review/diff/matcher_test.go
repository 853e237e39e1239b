package diff

import "testing"

func TestMatcher(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"**/*.json", "package.json", true},
		{"**/*.json", "clang/test/data/x.json", true},
		{"**/*.json", "src/json.cpp", false},
		{"*.md", "README.md", true},
		{"*.md", "docs/README.md", false},
		{"docs/*", "docs/index.rst", true},
		{"docs/*", "docs/api/index.rst", false},
		{"docs/**", "docs/api/index.rst", true},
		{"llvm/**/CMakeLists.txt", "llvm/CMakeLists.txt", true},
		{"llvm/**/CMakeLists.txt", "llvm/lib/IR/CMakeLists.txt", true},
		{"llvm/**/CMakeLists.txt", "clang/CMakeLists.txt", false},
		{"**/test/**", "clang/test/Sema/a.cpp", true},
		{"**/*.{yml,yaml}", ".github/workflows/ci.yml", true},
		{"**/*.json", "./a/b.json", true},
	}
	for _, tt := range tests {
		m := MustMatcher(tt.pattern)
		if got := m.Match(tt.path); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestMatcherNilAndBlank(t *testing.T) {
	var m *Matcher
	if m.Match("a.json") {
		t.Fatalf("nil matcher must not match")
	}
	m, err := NewMatcher([]string{"", "  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Match("a.json") || len(m.globs) != 0 {
		t.Fatalf("blank patterns must be ignored")
	}
}

func TestMatcherInvalidPattern(t *testing.T) {
	if _, err := NewMatcher([]string{"[a-"}); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestExpandZeroSegments(t *testing.T) {
	got := expandZeroSegments("**/a/**/b")
	want := map[string]bool{"**/a/**/b": true, "a/**/b": true, "**/a/b": true, "a/b": true}
	if len(got) != len(want) {
		t.Fatalf("unexpected variants %v", got)
	}
	for _, v := range got {
		if !want[v] {
			t.Fatalf("unexpected variant %q", v)
		}
	}
}
