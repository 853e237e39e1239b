package scm

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"
)

const (
	perPage        = 100
	diffMediaType  = "application/vnd.github.v3.diff"
	maxClosedLimit = 100
)

// Fetcher performs the read-only calls against one repository.
type Fetcher struct {
	client *github.Client
	owner  string
	repo   string
}

func NewFetcher(client *github.Client, owner, repo string) *Fetcher {
	return &Fetcher{client: client, owner: owner, repo: repo}
}

func buildPullRequest(pr *github.PullRequest) PullRequest {
	out := PullRequest{
		Number:  pr.GetNumber(),
		Author:  pr.GetUser().GetLogin(),
		Title:   pr.GetTitle(),
		DiffURL: pr.GetDiffURL(),
	}
	if pr.MergedAt != nil {
		mergedAt := pr.GetMergedAt().Time
		out.MergedAt = &mergedAt
	}
	return out
}

func (f *Fetcher) PullRequest(ctx context.Context, number int) (PullRequest, error) {
	pr, _, err := f.client.PullRequests.Get(ctx, f.owner, f.repo, number)
	if err != nil {
		return PullRequest{}, fmt.Errorf("get pull request #%d: %w", number, err)
	}
	return buildPullRequest(pr), nil
}

// IssueComments lists the conversation comments of a pull request in the
// order GitHub returns them.
func (f *Fetcher) IssueComments(ctx context.Context, number int) ([]Comment, error) {
	var all []Comment
	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	for {
		comments, resp, err := f.client.Issues.ListComments(ctx, f.owner, f.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("list issue comments for #%d: %w", number, err)
		}
		for _, c := range comments {
			all = append(all, Comment{Author: c.GetUser().GetLogin(), Body: c.GetBody()})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// ReviewComments lists inline review comments, each anchored to a file path.
func (f *Fetcher) ReviewComments(ctx context.Context, number int) ([]Comment, error) {
	var all []Comment
	opts := &github.PullRequestListCommentsOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	for {
		comments, resp, err := f.client.PullRequests.ListComments(ctx, f.owner, f.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("list review comments for #%d: %w", number, err)
		}
		for _, c := range comments {
			all = append(all, Comment{Author: c.GetUser().GetLogin(), Body: c.GetBody(), Path: c.GetPath()})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func (f *Fetcher) ChangedFiles(ctx context.Context, number int) ([]ChangedFile, error) {
	var all []ChangedFile
	opts := &github.ListOptions{PerPage: perPage}
	for {
		files, resp, err := f.client.PullRequests.ListFiles(ctx, f.owner, f.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("list files for #%d: %w", number, err)
		}
		for _, file := range files {
			all = append(all, ChangedFile{
				Filename: file.GetFilename(),
				Patch:    file.GetPatch(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// ClosedPullRequests returns up to limit closed pull requests, newest first.
// Only the first page is read.
func (f *Fetcher) ClosedPullRequests(ctx context.Context, limit int) ([]PullRequest, error) {
	if limit <= 0 {
		return nil, nil
	}
	if limit > maxClosedLimit {
		limit = maxClosedLimit
	}
	opts := &github.PullRequestListOptions{
		State:       "closed",
		Sort:        "created",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: limit, Page: 1},
	}
	prs, _, err := f.client.PullRequests.List(ctx, f.owner, f.repo, opts)
	if err != nil {
		return nil, fmt.Errorf("list closed pull requests: %w", err)
	}
	results := make([]PullRequest, 0, len(prs))
	for _, pr := range prs {
		results = append(results, buildPullRequest(pr))
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// RawDiff downloads the unified diff of a pull request. When diffURL is
// empty the pulls endpoint is asked for the diff media type instead.
func (f *Fetcher) RawDiff(ctx context.Context, number int, diffURL string) (string, error) {
	if strings.TrimSpace(diffURL) == "" {
		raw, _, err := f.client.PullRequests.GetRaw(ctx, f.owner, f.repo, number, github.RawOptions{Type: github.Diff})
		if err != nil {
			return "", fmt.Errorf("get raw diff for #%d: %w", number, err)
		}
		return raw, nil
	}

	req, err := f.client.NewRequest(http.MethodGet, diffURL, nil)
	if err != nil {
		return "", fmt.Errorf("build diff request: %w", err)
	}
	req.Header.Set("Accept", diffMediaType)

	var buf bytes.Buffer
	if _, err := f.client.Do(ctx, req, &buf); err != nil {
		return "", fmt.Errorf("download diff %s: %w", diffURL, err)
	}
	return buf.String(), nil
}
