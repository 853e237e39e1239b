package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Saieiei/hpe-project-cty/internal/config"
	"github.com/Saieiei/hpe-project-cty/internal/logging"
	"github.com/Saieiei/hpe-project-cty/internal/review"
	"github.com/Saieiei/hpe-project-cty/internal/review/history"
	"github.com/Saieiei/hpe-project-cty/internal/review/llm"
	"github.com/Saieiei/hpe-project-cty/internal/scm"
)

var rootCmd = &cobra.Command{
	Use:           "review",
	Short:         "Review a pull request with a generative model and post the result",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReview,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect the pull request, generate a review and post it as a comment",
	RunE:  runReview,
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the assembled prompt without calling the model or posting",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		cfg, err := review.LoadConfig(log)
		if err != nil {
			return err
		}
		runner, err := newRunner(cfg, log, false)
		if err != nil {
			return err
		}
		prepared, err := runner.Prepare(cmd.Context())
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), prepared.Prompt)
		return err
	},
}

func newLogger() logging.Logger {
	return logging.New(logging.LoggerForLevel(config.LogLevel())).WithName("review")
}

func runReview(cmd *cobra.Command, args []string) error {
	log := newLogger()
	cfg, err := review.LoadConfig(log)
	if err != nil {
		return err
	}
	runner, err := newRunner(cfg, log, true)
	if err != nil {
		return err
	}

	res, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	switch res.Outcome {
	case review.OutcomeNothingToReview:
		log.Info("nothing to review", "pr", cfg.PullNumber)
	case review.OutcomePosted:
		log.Info("review posted successfully", "pr", cfg.PullNumber, "comment_id", res.CommentID)
	}
	return nil
}

// newRunner wires GitHub and history lookups, plus the model and the
// comment poster when generate is set.
func newRunner(cfg review.Config, log logging.Logger, generate bool) (*review.Runner, error) {
	client := scm.NewClient(cfg.GitHubToken, cfg.HTTPTimeout)
	fetcher := scm.NewFetcher(client, cfg.Owner, cfg.Repo)
	searcher := history.NewSearcher(fetcher, cfg.History, log.WithName("history"))

	var (
		generator llm.Generator
		poster    review.CommentPoster
	)
	if generate {
		g, err := llm.New(cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("init generator: %w", err)
		}
		generator = g
		poster = scm.NewPoster(client, cfg.Owner, cfg.Repo)
	}
	return review.NewRunner(cfg, fetcher, searcher, generator, poster, log)
}

func main() {
	flags := rootCmd.PersistentFlags()
	flags.String("github-repository", "", "Repository as owner/repo or URL (env GITHUB_REPOSITORY)")
	flags.String("github-ref", "", "Pull request ref refs/pull/<N>/merge (env GITHUB_REF)")
	flags.Int("pr-number", 0, "Pull request number; overrides --github-ref")
	flags.String("generator", "", "Generation backend: gemini or ollama")
	flags.String("diff-mode", "", "Diff collection mode: files or raw")
	flags.String("sections", "", "Optional prompt sections: issue_comments,review_comments,history")
	flags.String("profile-file", "", "YAML review profile")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")

	config.Init(rootCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(promptCmd)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		newLogger().Error(err, "review failed")
		cancel()
		os.Exit(1)
	}
}
