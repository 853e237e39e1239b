package review

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saieiei/hpe-project-cty/internal/config"
	"github.com/Saieiei/hpe-project-cty/internal/logging"
	"github.com/Saieiei/hpe-project-cty/internal/review/llm"
	"github.com/Saieiei/hpe-project-cty/internal/review/prompt"
)

func resetViper(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.KeyRepository, config.KeyRef, config.KeyPullNumber, config.KeyProfileFile, config.KeyDiffMode, config.KeySections} {
		t.Setenv(strings.ToUpper(key), "")
	}
	viper.Reset()
	config.Init(nil)
	t.Cleanup(viper.Reset)
}

func TestParsePullNumber(t *testing.T) {
	tests := []struct {
		ref     string
		want    int
		wantErr bool
	}{
		{"refs/pull/123/merge", 123, false},
		{"refs/pull/7/head", 7, false},
		{"refs/heads/main", 0, true},
		{"refs/pull/abc/merge", 0, true},
		{"refs/pull/0/merge", 0, true},
		{"refs/pull/12/merge/extra", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePullNumber(tt.ref)
		if tt.wantErr {
			assert.Error(t, err, tt.ref)
			continue
		}
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.want, got, tt.ref)
	}
}

func TestParseRepository(t *testing.T) {
	owner, repo, err := ParseRepository("llvm/llvm-project")
	require.NoError(t, err)
	assert.Equal(t, "llvm", owner)
	assert.Equal(t, "llvm-project", repo)

	owner, repo, err = ParseRepository("https://github.com/llvm/llvm-project.git")
	require.NoError(t, err)
	assert.Equal(t, "llvm", owner)
	assert.Equal(t, "llvm-project", repo)

	for _, bad := range []string{"", "llvm", "a/b/c", "/repo", "owner/"} {
		_, _, err := ParseRepository(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	resetViper(t)
	viper.Set(config.KeyRepository, "llvm/llvm-project")
	viper.Set(config.KeyRef, "refs/pull/99/merge")
	viper.Set(config.KeyGeminiAPIKey, "k")

	cfg, err := LoadConfig(logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, "llvm", cfg.Owner)
	assert.Equal(t, 99, cfg.PullNumber)
	assert.Equal(t, DiffModeFiles, cfg.DiffMode)
	assert.Equal(t, prompt.Sections{prompt.SectionIssueComments, prompt.SectionHistory}, cfg.Sections)
	assert.Equal(t, []string{".json", ".md"}, cfg.ExcludeSuffixes)
	assert.Equal(t, []string{"**/*.json", "**/*.md"}, cfg.ExcludeGlobs)
	assert.Equal(t, 10, cfg.History.ScanLimit)
	assert.Equal(t, 3, cfg.History.MaxMatches)
	assert.Equal(t, config.DefaultBanner, cfg.Banner)
	assert.Equal(t, config.DefaultFallbackText, cfg.FallbackText)
	assert.Equal(t, config.DefaultGeminiEndpoint, cfg.LLM.GeminiEndpoint)
	assert.Equal(t, 2*time.Minute, cfg.LLM.CallTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestLoadConfigExplicitPullNumberWins(t *testing.T) {
	resetViper(t)
	viper.Set(config.KeyRepository, "o/r")
	viper.Set(config.KeyPullNumber, 5)
	viper.Set(config.KeyRef, "refs/heads/main")

	cfg, err := LoadConfig(logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.PullNumber)
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]map[string]any{
		"missing repo":    {config.KeyRef: "refs/pull/1/merge"},
		"bad ref":         {config.KeyRepository: "o/r", config.KeyRef: "main"},
		"bad mode":        {config.KeyRepository: "o/r", config.KeyRef: "refs/pull/1/merge", config.KeyDiffMode: "patch"},
		"bad section":     {config.KeyRepository: "o/r", config.KeyRef: "refs/pull/1/merge", config.KeySections: "reactions"},
		"bad timeout":     {config.KeyRepository: "o/r", config.KeyRef: "refs/pull/1/merge", config.KeyLLMCallTimeout: "soon"},
		"missing profile": {config.KeyRepository: "o/r", config.KeyRef: "refs/pull/1/merge", config.KeyProfileFile: "/nonexistent/profile.yaml"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			resetViper(t)
			for k, v := range values {
				viper.Set(k, v)
			}
			_, err := LoadConfig(logging.Discard())
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigAppliesProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`diff_mode: raw
sections:
  - review_comments
  - issue_comments
exclude_globs:
  - "third-party/**"
intro: You review changes to the LLVM compiler infrastructure.
banner: "### Review bot"
`), 0o600))

	resetViper(t)
	viper.Set(config.KeyRepository, "o/r")
	viper.Set(config.KeyRef, "refs/pull/1/merge")
	viper.Set(config.KeyProfileFile, path)

	cfg, err := LoadConfig(logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, DiffModeRaw, cfg.DiffMode)
	assert.Equal(t, prompt.Sections{prompt.SectionReviewComments, prompt.SectionIssueComments}, cfg.Sections)
	assert.Equal(t, []string{"third-party/**"}, cfg.ExcludeGlobs)
	assert.Equal(t, []string{".json", ".md"}, cfg.ExcludeSuffixes)
	assert.Equal(t, "You review changes to the LLVM compiler infrastructure.", cfg.Intro)
	assert.Equal(t, "### Review bot", cfg.Banner)
	assert.Equal(t, config.DefaultFallbackText, cfg.FallbackText)
}

func TestLoadProfileRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sectons: [history]\n"), 0o600))
	_, err := LoadProfile(path)
	require.Error(t, err)
}

func TestGenerationOutlastsGitHubHTTPTimeout(t *testing.T) {
	resetViper(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"slow but fine"}]}}]}`)
	}))
	t.Cleanup(server.Close)

	t.Setenv("GITHUB_REPOSITORY", "llvm/llvm-project")
	t.Setenv("HTTP_TIMEOUT", "100ms")
	t.Setenv("LLM_CALL_TIMEOUT", "5s")
	t.Setenv("GEMINI_ENDPOINT", server.URL+"/generate")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("GENERATOR", "gemini")

	cfg, err := LoadRepositoryConfig(logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Second, cfg.LLM.CallTimeout)

	g, err := llm.New(cfg.LLM)
	require.NoError(t, err)
	text, err := g.Generate(context.Background(), "review this")
	require.NoError(t, err)
	assert.Equal(t, "slow but fine", text)
}
