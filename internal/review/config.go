package review

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	vcsurl "github.com/gitsight/go-vcsurl"

	"github.com/Saieiei/hpe-project-cty/internal/config"
	"github.com/Saieiei/hpe-project-cty/internal/logging"
	"github.com/Saieiei/hpe-project-cty/internal/review/history"
	"github.com/Saieiei/hpe-project-cty/internal/review/llm"
	"github.com/Saieiei/hpe-project-cty/internal/review/prompt"
)

// DiffMode selects how the changed code is collected.
type DiffMode string

const (
	DiffModeFiles DiffMode = "files" // per-file patches from the files endpoint
	DiffModeRaw   DiffMode = "raw"   // one unified diff downloaded from the diff URL
)

func parseDiffMode(s string) (DiffMode, error) {
	switch DiffMode(strings.ToLower(strings.TrimSpace(s))) {
	case DiffModeFiles, "":
		return DiffModeFiles, nil
	case DiffModeRaw:
		return DiffModeRaw, nil
	default:
		return "", fmt.Errorf("invalid diff mode %q (must be %s or %s)", s, DiffModeFiles, DiffModeRaw)
	}
}

// Config is built once per process and handed to every component.
type Config struct {
	Owner           string
	Repo            string
	PullNumber      int
	GitHubToken     string
	DiffMode        DiffMode
	Sections        prompt.Sections
	ExcludeSuffixes []string
	ExcludeGlobs    []string
	History         history.Options
	MaxPatchTokens  int
	Banner          string
	FallbackText    string
	Intro           string
	HTTPTimeout     time.Duration
	LLM             llm.Config
}

// LoadConfig reads viper-backed settings, applies the optional review
// profile and resolves the pull request number from pr_number or the ref.
func LoadConfig(log logging.Logger) (Config, error) {
	cfg, err := LoadRepositoryConfig(log)
	if err != nil {
		return Config{}, err
	}
	cfg.PullNumber = config.PullNumber()
	if cfg.PullNumber <= 0 {
		if cfg.PullNumber, err = ParsePullNumber(config.Ref()); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// LoadRepositoryConfig is LoadConfig without a pull request; long-running
// callers set PullNumber per request.
func LoadRepositoryConfig(log logging.Logger) (Config, error) {
	owner, repo, err := ParseRepository(config.Repository())
	if err != nil {
		return Config{}, err
	}

	callTimeout, err := parseDuration(config.LLMCallTimeout(), 2*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", config.KeyLLMCallTimeout, err)
	}
	httpTimeout, err := parseDuration(config.HTTPTimeout(), 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", config.KeyHTTPTimeout, err)
	}

	cfg := Config{
		Owner:           owner,
		Repo:            repo,
		GitHubToken:     config.GitHubToken(),
		ExcludeSuffixes: config.ExcludeSuffixes(),
		ExcludeGlobs:    config.ExcludeGlobs(),
		History: history.Options{
			ScanLimit:  config.HistoryScanLimit(),
			MaxMatches: config.HistoryMaxMatches(),
		},
		MaxPatchTokens: config.MaxPatchTokens(),
		Banner:         config.ReviewBanner(),
		FallbackText:   config.FallbackText(),
		HTTPTimeout:    httpTimeout,
		LLM: llm.Config{
			Backend:        config.Generator(),
			GeminiEndpoint: config.GeminiEndpoint(),
			GeminiAPIKey:   config.GeminiAPIKey(),
			OllamaURL:      config.OllamaURL(),
			OllamaModel:    config.OllamaModel(),
			CallTimeout:    callTimeout,
			Logger:         log,
		},
	}

	mode := config.DiffMode()
	sections := config.Sections()
	if path := strings.TrimSpace(config.ProfileFile()); path != "" {
		profile, err := LoadProfile(path)
		if err != nil {
			return Config{}, err
		}
		mode, sections = profile.apply(&cfg, mode, sections)
		log.Info("review profile applied", "path", path)
	}

	if cfg.DiffMode, err = parseDiffMode(mode); err != nil {
		return Config{}, err
	}
	if cfg.Sections, err = prompt.ParseSections(sections); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseRepository accepts `owner/repo` or any URL form go-vcsurl understands.
func ParseRepository(s string) (owner, repo string, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", fmt.Errorf("repository is required (set %s)", strings.ToUpper(config.KeyRepository))
	}
	if strings.Contains(s, "://") || strings.HasPrefix(s, "git@") {
		info, err := vcsurl.Parse(s)
		if err != nil {
			return "", "", fmt.Errorf("parse repository %q: %w", s, err)
		}
		if info.Username == "" || info.Name == "" {
			return "", "", fmt.Errorf("repository %q has no owner/name", s)
		}
		return info.Username, info.Name, nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository %q must have the form owner/repo", s)
	}
	return parts[0], parts[1], nil
}

// ParsePullNumber extracts N from a ref of the form refs/pull/N/merge (or
// refs/pull/N/head).
func ParsePullNumber(ref string) (int, error) {
	parts := strings.Split(strings.TrimSpace(ref), "/")
	if len(parts) != 4 || parts[0] != "refs" || parts[1] != "pull" || (parts[3] != "merge" && parts[3] != "head") {
		return 0, fmt.Errorf("ref %q is not a pull request ref (want refs/pull/<N>/merge)", ref)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("ref %q carries no valid pull request number", ref)
	}
	return n, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, err
	}
	return d, nil
}
