package review

import (
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

// Profile is a YAML file that fixes which sections a review contains and how
// the prompt and the posted comment are worded. Unset fields keep the
// configured values.
type Profile struct {
	DiffMode        string   `json:"diff_mode,omitempty"`
	Sections        []string `json:"sections,omitempty"`
	ExcludeSuffixes []string `json:"exclude_suffixes,omitempty"`
	ExcludeGlobs    []string `json:"exclude_globs,omitempty"`
	Intro           string   `json:"intro,omitempty"`
	Banner          string   `json:"banner,omitempty"`
	FallbackText    string   `json:"fallback_text,omitempty"`
}

func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read review profile: %w", err)
	}
	var p Profile
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse review profile %s: %w", path, err)
	}
	return p, nil
}

func (p Profile) apply(cfg *Config, mode string, sections []string) (string, []string) {
	if strings.TrimSpace(p.DiffMode) != "" {
		mode = p.DiffMode
	}
	if p.Sections != nil {
		sections = p.Sections
	}
	if p.ExcludeSuffixes != nil {
		cfg.ExcludeSuffixes = p.ExcludeSuffixes
	}
	if p.ExcludeGlobs != nil {
		cfg.ExcludeGlobs = p.ExcludeGlobs
	}
	if p.Intro != "" {
		cfg.Intro = p.Intro
	}
	if p.Banner != "" {
		cfg.Banner = p.Banner
	}
	if p.FallbackText != "" {
		cfg.FallbackText = p.FallbackText
	}
	return mode, sections
}
