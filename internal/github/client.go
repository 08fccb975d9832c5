// Package github resolves GitHub credentials and probes API access. The
// publish workflow itself never calls the API; this backs the doctor
// diagnostics.
package github

import (
	"context"
	"fmt"
	"os"
	"strings"

	gogithub "github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/Konoa-1025/Cresta-Open-Data/internal/git"
)

// ResolveToken returns a GitHub token from the GITHUB_TOKEN environment
// variable, falling back to the gh CLI.
func ResolveToken(ctx context.Context) (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	output, err := git.RunGHCommandWithContext(ctx, "auth", "token")
	if err != nil {
		return "", fmt.Errorf("failed to get GitHub token: %w", err)
	}

	token := strings.TrimSpace(output)
	if token == "" {
		return "", fmt.Errorf("empty GitHub token")
	}

	return token, nil
}

// Client wraps an authenticated API client together with the owner and
// repository name parsed from the push remote.
type Client struct {
	api   *gogithub.Client
	owner string
	repo  string
}

// NewClient builds an authenticated client for the repository behind the
// given remote. Callers treat a failure here as missing credentials, not a
// fatal condition.
func NewClient(ctx context.Context, remote string) (*Client, error) {
	token, err := ResolveToken(ctx)
	if err != nil {
		return nil, err
	}

	url, err := git.RemoteURL(ctx, remote)
	if err != nil {
		return nil, err
	}
	owner, repo, err := ParseRepoURL(url)
	if err != nil {
		return nil, err
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		api:   gogithub.NewClient(tc),
		owner: owner,
		repo:  repo,
	}, nil
}

// OwnerRepo returns the repository owner and name.
func (c *Client) OwnerRepo() (string, string) {
	return c.owner, c.repo
}

// Viewer returns the login of the authenticated user, proving the token is
// accepted by the API.
func (c *Client) Viewer(ctx context.Context) (string, error) {
	user, _, err := c.api.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to query the authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

// ParseRepoURL extracts owner and repository name from a remote URL.
// Handles both https and ssh formats:
//
//	https://github.com/owner/repo.git
//	git@github.com:owner/repo.git
func ParseRepoURL(url string) (string, string, error) {
	url = strings.TrimSuffix(strings.TrimSpace(url), ".git")
	if url == "" {
		return "", "", fmt.Errorf("empty remote URL")
	}

	if at := strings.Index(url, "@"); at >= 0 {
		colon := strings.Index(url[at:], ":")
		if colon < 0 {
			return "", "", fmt.Errorf("invalid SSH remote URL: %s", url)
		}
		path := url[at+colon+1:]
		parts := strings.Split(path, "/")
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return "", "", fmt.Errorf("invalid SSH remote URL: %s", url)
		}
		return parts[0], parts[len(parts)-1], nil
	}

	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("invalid remote URL: %s", url)
	}
	owner := parts[len(parts)-2]
	repo := parts[len(parts)-1]
	if owner == "" || repo == "" || strings.Contains(owner, ":") {
		return "", "", fmt.Errorf("invalid remote URL: %s", url)
	}
	return owner, repo, nil
}
