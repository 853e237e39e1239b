package scm

import (
	"context"
	"fmt"

	"github.com/google/go-github/v66/github"
)

// Poster creates pull request comments. It is the only component that writes
// to GitHub.
type Poster struct {
	client *github.Client
	owner  string
	repo   string
}

func NewPoster(client *github.Client, owner, repo string) *Poster {
	return &Poster{client: client, owner: owner, repo: repo}
}

// CreateComment posts body as a new conversation comment and returns its ID.
func (p *Poster) CreateComment(ctx context.Context, number int, body string) (int64, error) {
	c, _, err := p.client.Issues.CreateComment(ctx, p.owner, p.repo, number, &github.IssueComment{Body: &body})
	if err != nil {
		return 0, fmt.Errorf("create comment on #%d: %w", number, err)
	}
	return c.GetID(), nil
}
