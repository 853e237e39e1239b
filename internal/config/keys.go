package config

const (
	KeyRepository        = "github_repository"
	KeyRef               = "github_ref"
	KeyPullNumber        = "pr_number"
	KeyGitHubToken       = "github_token"
	KeyGeminiAPIKey      = "gemini_api_key"
	KeyGeminiEndpoint    = "gemini_endpoint"
	KeyGenerator         = "generator"
	KeyOllamaURL         = "ollama_url"
	KeyOllamaModel       = "ollama_model"
	KeyDiffMode          = "diff_mode"
	KeySections          = "sections"
	KeyExcludeSuffixes   = "exclude_suffixes"
	KeyExcludeGlobs      = "exclude_globs"
	KeyHistoryScanLimit  = "history_scan_limit"
	KeyHistoryMaxMatches = "history_max_matches"
	KeyMaxPatchTokens    = "max_patch_tokens"
	KeyReviewBanner      = "review_banner"
	KeyFallbackText      = "fallback_text"
	KeyProfileFile       = "profile_file"
	KeyLogLevel          = "log_level"
	KeyLLMCallTimeout    = "llm_call_timeout"
	KeyHTTPTimeout       = "http_timeout"
	KeyEnvFile           = "env_file"
)
