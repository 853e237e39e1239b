package history

import (
	"context"
	"fmt"

	"github.com/Saieiei/hpe-project-cty/internal/logging"
	"github.com/Saieiei/hpe-project-cty/internal/scm"
)

const (
	DefaultScanLimit  = 10
	DefaultMaxMatches = 3
)

// Source is the read-only slice of the GitHub API the search needs.
type Source interface {
	ClosedPullRequests(ctx context.Context, limit int) ([]scm.PullRequest, error)
	ChangedFiles(ctx context.Context, number int) ([]scm.ChangedFile, error)
}

type Options struct {
	ScanLimit  int // closed pull requests listed per lookup
	MaxMatches int // matches kept per filename
}

func (o Options) withDefaults() Options {
	if o.ScanLimit <= 0 {
		o.ScanLimit = DefaultScanLimit
	}
	if o.MaxMatches <= 0 {
		o.MaxMatches = DefaultMaxMatches
	}
	return o
}

// Searcher finds earlier merged pull requests that changed the same file.
type Searcher struct {
	source Source
	opts   Options
	log    logging.Logger
}

func NewSearcher(source Source, opts Options, log logging.Logger) *Searcher {
	return &Searcher{source: source, opts: opts.withDefaults(), log: log}
}

// Search returns at most MaxMatches patches of filename from recently merged
// pull requests other than currentPR, newest first. Candidates are inspected
// one at a time and the scan stops as soon as the cap is reached.
func (s *Searcher) Search(ctx context.Context, filename string, currentPR int) ([]scm.HistoricalMatch, error) {
	closed, err := s.source.ClosedPullRequests(ctx, s.opts.ScanLimit)
	if err != nil {
		return nil, fmt.Errorf("list closed pull requests: %w", err)
	}

	candidates := mergedCandidates(closed, currentPR)
	s.log.Debug("history candidates", "file", filename, "listed", len(closed), "merged", len(candidates))

	matches := make([]scm.HistoricalMatch, 0, s.opts.MaxMatches)
	for _, pr := range candidates {
		if len(matches) >= s.opts.MaxMatches {
			break
		}
		files, err := s.source.ChangedFiles(ctx, pr.Number)
		if err != nil {
			return nil, fmt.Errorf("list files of #%d: %w", pr.Number, err)
		}
		if patch, ok := findPatch(files, filename); ok {
			matches = append(matches, scm.HistoricalMatch{
				PullNumber: pr.Number,
				Author:     pr.Author,
				Patch:      patch,
			})
		}
	}
	return matches, nil
}

func mergedCandidates(prs []scm.PullRequest, currentPR int) []scm.PullRequest {
	out := make([]scm.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if !pr.Merged() || pr.Number == currentPR {
			continue
		}
		out = append(out, pr)
	}
	return out
}

// findPatch looks for an exact filename match that carries a patch.
func findPatch(files []scm.ChangedFile, filename string) (string, bool) {
	for _, f := range files {
		if f.Filename == filename {
			return f.Patch, f.HasPatch()
		}
	}
	return "", false
}
