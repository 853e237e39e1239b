package scm

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

const defaultHTTPTimeout = 30 * time.Second

// NewClient returns a GitHub client authenticated with token. An empty token
// yields an anonymous client.
func NewClient(token string, timeout time.Duration) *github.Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	if token == "" {
		return github.NewClient(&http.Client{Timeout: timeout})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = timeout
	return github.NewClient(tc)
}
