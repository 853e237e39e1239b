package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"
	DefaultBanner         = "### **LLVM KNOWLEDGE MINER - Review**"
	DefaultFallbackText   = "No review content generated."
)

// Init wires environment variables, an optional dotenv file and the root
// command's persistent flags into viper. Flags use dashes, keys use
// underscores, so both spellings resolve to the same key.
func Init(root *cobra.Command) {
	envFile := os.Getenv(strings.ToUpper(KeyEnvFile))
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if root != nil {
		root.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			_ = viper.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
		})
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyGeminiEndpoint, DefaultGeminiEndpoint)
	viper.SetDefault(KeyGenerator, "gemini")
	viper.SetDefault(KeyOllamaURL, "http://localhost:11434")
	viper.SetDefault(KeyOllamaModel, "llama3")
	viper.SetDefault(KeyDiffMode, "files")
	viper.SetDefault(KeySections, "issue_comments,history")
	viper.SetDefault(KeyExcludeSuffixes, ".json,.md")
	viper.SetDefault(KeyExcludeGlobs, "**/*.json,**/*.md")
	viper.SetDefault(KeyHistoryScanLimit, 10)
	viper.SetDefault(KeyHistoryMaxMatches, 3)
	viper.SetDefault(KeyMaxPatchTokens, 0)
	viper.SetDefault(KeyReviewBanner, DefaultBanner)
	viper.SetDefault(KeyFallbackText, DefaultFallbackText)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLLMCallTimeout, "2m")
	viper.SetDefault(KeyHTTPTimeout, "30s")
}

func Repository() string        { return viper.GetString(KeyRepository) }
func Ref() string               { return viper.GetString(KeyRef) }
func PullNumber() int           { return viper.GetInt(KeyPullNumber) }
func GitHubToken() string       { return viper.GetString(KeyGitHubToken) }
func GeminiAPIKey() string      { return viper.GetString(KeyGeminiAPIKey) }
func GeminiEndpoint() string    { return viper.GetString(KeyGeminiEndpoint) }
func Generator() string         { return viper.GetString(KeyGenerator) }
func OllamaURL() string         { return viper.GetString(KeyOllamaURL) }
func OllamaModel() string       { return viper.GetString(KeyOllamaModel) }
func DiffMode() string          { return viper.GetString(KeyDiffMode) }
func Sections() []string        { return splitList(viper.GetString(KeySections)) }
func ExcludeSuffixes() []string { return splitList(viper.GetString(KeyExcludeSuffixes)) }
func ExcludeGlobs() []string    { return splitList(viper.GetString(KeyExcludeGlobs)) }
func HistoryScanLimit() int     { return viper.GetInt(KeyHistoryScanLimit) }
func HistoryMaxMatches() int    { return viper.GetInt(KeyHistoryMaxMatches) }
func MaxPatchTokens() int       { return viper.GetInt(KeyMaxPatchTokens) }
func ReviewBanner() string      { return viper.GetString(KeyReviewBanner) }
func FallbackText() string      { return viper.GetString(KeyFallbackText) }
func ProfileFile() string       { return viper.GetString(KeyProfileFile) }
func LogLevel() string          { return viper.GetString(KeyLogLevel) }
func LLMCallTimeout() string    { return viper.GetString(KeyLLMCallTimeout) }
func HTTPTimeout() string       { return viper.GetString(KeyHTTPTimeout) }

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
