package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Saieiei/hpe-project-cty/internal/logging"
	"github.com/Saieiei/hpe-project-cty/internal/review/diff"
	"github.com/Saieiei/hpe-project-cty/internal/review/llm"
	"github.com/Saieiei/hpe-project-cty/internal/review/prompt"
	"github.com/Saieiei/hpe-project-cty/internal/scm"
)

// ErrNoReviewableContent means nothing was left after filtering. It ends a
// run successfully without any generation call or post.
var ErrNoReviewableContent = errors.New("no reviewable content after filtering")

// Source is the read-only GitHub surface the collector uses.
type Source interface {
	PullRequest(ctx context.Context, number int) (scm.PullRequest, error)
	IssueComments(ctx context.Context, number int) ([]scm.Comment, error)
	ReviewComments(ctx context.Context, number int) ([]scm.Comment, error)
	ChangedFiles(ctx context.Context, number int) ([]scm.ChangedFile, error)
	RawDiff(ctx context.Context, number int, diffURL string) (string, error)
}

type HistorySearcher interface {
	Search(ctx context.Context, filename string, currentPR int) ([]scm.HistoricalMatch, error)
}

type CommentPoster interface {
	CreateComment(ctx context.Context, number int, body string) (int64, error)
}

type Outcome string

const (
	OutcomePosted          Outcome = "posted"
	OutcomeNothingToReview Outcome = "nothing_to_review"
)

// Prepared is the collected and assembled state of a run, before any
// generation call.
type Prepared struct {
	PullRequest   scm.PullRequest
	FilesReviewed []string
	FilesSkipped  []string
	Prompt        string
}

type Result struct {
	Outcome     Outcome
	Prepared    Prepared
	Review      string
	CommentBody string
	CommentID   int64
}

type Runner struct {
	cfg       Config
	filter    diff.Filter
	source    Source
	history   HistorySearcher
	generator llm.Generator
	poster    CommentPoster
	log       logging.Logger
}

// NewRunner wires the pipeline. history may be nil when the history section
// is disabled; generator and poster may be nil for Prepare-only use.
func NewRunner(cfg Config, source Source, history HistorySearcher, generator llm.Generator, poster CommentPoster, log logging.Logger) (*Runner, error) {
	matcher, err := diff.NewMatcher(cfg.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude globs: %w", err)
	}
	return &Runner{
		cfg:       cfg,
		filter:    diff.NewFilter(cfg.ExcludeSuffixes, matcher),
		source:    source,
		history:   history,
		generator: generator,
		poster:    poster,
		log:       log.WithValues("repo", cfg.Owner+"/"+cfg.Repo, "pr", cfg.PullNumber),
	}, nil
}

// Run executes one review: collect, assemble, generate, post. Each external
// call is made once; the first fatal error aborts the run.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.generator == nil || r.poster == nil {
		return Result{}, fmt.Errorf("runner has no generator or poster")
	}

	prepared, err := r.Prepare(ctx)
	if errors.Is(err, ErrNoReviewableContent) {
		r.log.Info("no reviewable code after filtering", "skipped", len(prepared.FilesSkipped))
		return Result{Outcome: OutcomeNothingToReview, Prepared: prepared}, nil
	}
	if err != nil {
		return Result{}, err
	}

	r.log.Info("requesting review", "files", len(prepared.FilesReviewed), "prompt_bytes", len(prepared.Prompt))
	text, err := r.generator.Generate(ctx, prepared.Prompt)
	if err != nil {
		return Result{}, fmt.Errorf("generate review: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		r.log.Info("generator returned no text, using fallback")
		text = r.cfg.FallbackText
	}

	body := CommentBody(r.cfg.Banner, text)
	id, err := r.poster.CreateComment(ctx, r.cfg.PullNumber, body)
	if err != nil {
		return Result{}, fmt.Errorf("post review: %w", err)
	}
	r.log.Info("review posted", "comment_id", id)

	return Result{
		Outcome:     OutcomePosted,
		Prepared:    prepared,
		Review:      text,
		CommentBody: body,
		CommentID:   id,
	}, nil
}

// CommentBody prefixes the review with the banner.
func CommentBody(banner, review string) string {
	if strings.TrimSpace(banner) == "" {
		return review
	}
	return banner + "\n\n" + review
}

// Prepare collects the pull request data and assembles the prompt. It
// returns ErrNoReviewableContent when filtering leaves nothing.
func (r *Runner) Prepare(ctx context.Context) (Prepared, error) {
	number := r.cfg.PullNumber
	pr, err := r.source.PullRequest(ctx, number)
	if err != nil {
		return Prepared{}, fmt.Errorf("fetch pull request: %w", err)
	}
	prepared := Prepared{PullRequest: pr}

	in := prompt.Input{
		Intro:    r.cfg.Intro,
		Title:    pr.Title,
		Author:   pr.Author,
		Sections: r.cfg.Sections,
	}

	if r.cfg.Sections.Has(prompt.SectionIssueComments) {
		comments, err := r.source.IssueComments(ctx, number)
		if err != nil {
			return Prepared{}, fmt.Errorf("fetch comments: %w", err)
		}
		in.IssueComments = comments
	}

	switch r.cfg.DiffMode {
	case DiffModeRaw:
		err = r.collectRaw(ctx, pr, &in, &prepared)
	default:
		err = r.collectFiles(ctx, &in, &prepared)
	}
	if err != nil {
		return prepared, err
	}
	in.FilesChanged = len(prepared.FilesReviewed)

	if r.cfg.Sections.Has(prompt.SectionReviewComments) {
		comments, err := r.source.ReviewComments(ctx, number)
		if err != nil {
			r.log.Error(err, "review comments unavailable, continuing without them")
			comments = nil
		}
		in.ReviewComments = comments
	}

	prepared.Prompt = prompt.Assemble(in)
	return prepared, nil
}

func (r *Runner) collectFiles(ctx context.Context, in *prompt.Input, prepared *Prepared) error {
	files, err := r.source.ChangedFiles(ctx, r.cfg.PullNumber)
	if err != nil {
		return fmt.Errorf("fetch changed files: %w", err)
	}

	included, skipped := r.filter.FilterFiles(files)
	r.recordSkipped(prepared, skipped)
	r.log.Info("changed files", "total", len(files), "included", len(included), "skipped", len(skipped))
	if len(included) == 0 {
		return ErrNoReviewableContent
	}

	for _, f := range included {
		patch, truncated := diff.TruncatePatch(f.Patch, r.cfg.MaxPatchTokens)
		if truncated {
			r.log.Info("patch truncated", "file", f.Filename, "max_tokens", r.cfg.MaxPatchTokens)
		}
		in.Files = append(in.Files, prompt.File{
			Filename: f.Filename,
			Patch:    patch,
			History:  r.lookupHistory(ctx, f.Filename),
		})
		prepared.FilesReviewed = append(prepared.FilesReviewed, f.Filename)
	}
	return nil
}

func (r *Runner) collectRaw(ctx context.Context, pr scm.PullRequest, in *prompt.Input, prepared *Prepared) error {
	raw, err := r.source.RawDiff(ctx, r.cfg.PullNumber, pr.DiffURL)
	if err != nil {
		return fmt.Errorf("fetch diff: %w", err)
	}

	res := r.filter.FilterRaw(raw)
	r.recordSkipped(prepared, res.Excluded)
	r.log.Info("raw diff filtered", "kept", len(res.Kept), "excluded", len(res.Excluded), "bytes", len(res.Text))
	if res.Empty() {
		return ErrNoReviewableContent
	}

	in.RawDiff = res.Text
	seen := make(map[string]bool, len(res.Kept))
	for _, path := range res.Kept {
		if seen[path] {
			continue
		}
		seen[path] = true
		in.Files = append(in.Files, prompt.File{Filename: path, History: r.lookupHistory(ctx, path)})
		prepared.FilesReviewed = append(prepared.FilesReviewed, path)
	}
	return nil
}

func (r *Runner) recordSkipped(prepared *Prepared, skipped []diff.Skipped) {
	for _, s := range skipped {
		r.log.Debug("file skipped", "file", s.Path, "reason", s.Reason)
		prepared.FilesSkipped = append(prepared.FilesSkipped, s.Path)
	}
}

// lookupHistory never fails the run: a failed lookup yields no matches.
func (r *Runner) lookupHistory(ctx context.Context, filename string) []scm.HistoricalMatch {
	if r.history == nil || !r.cfg.Sections.Has(prompt.SectionHistory) {
		return nil
	}
	matches, err := r.history.Search(ctx, filename, r.cfg.PullNumber)
	if err != nil {
		r.log.Error(err, "historical lookup failed", "file", filename)
		return nil
	}
	r.log.Debug("historical matches", "file", filename, "count", len(matches))
	return matches
}
