package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrGitHubRequestFailed = errors.New("github request failed")

// GitHubUser is the authenticated account identity.
type GitHubUser struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// GitHubRepo is a repository owned by or visible to the account.
type GitHubRepo struct {
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	Private     bool      `json:"private"`
	PushedAt    time.Time `json:"pushed_at"`
	HTMLURL     string    `json:"html_url"`
}

// GitHubEvent is an entry from the account's public activity feed.
type GitHubEvent struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Repo      struct {
		Name string `json:"name"`
	} `json:"repo"`
}

// GitHubCommit is a single commit from a repository's history.
type GitHubCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// GitHubClient talks to the GitHub REST API with a user's OAuth token.
// Requests are not retried; transient failures surface to the caller.
type GitHubClient struct {
	baseURL string
	http    *http.Client
}

func NewGitHubClient(baseURL string) *GitHubClient {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &GitHubClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *GitHubClient) get(ctx context.Context, token, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGitHubRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrNeedsReconnect
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrGitHubRequestFailed, resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// GetUser fetches the authenticated account identity.
func (c *GitHubClient) GetUser(ctx context.Context, token string) (*GitHubUser, error) {
	var user GitHubUser
	if err := c.get(ctx, token, "/user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetEvents fetches the account's recent activity feed.
func (c *GitHubClient) GetEvents(ctx context.Context, token, login string) ([]GitHubEvent, error) {
	var events []GitHubEvent
	path := fmt.Sprintf("/users/%s/events?per_page=100", login)
	if err := c.get(ctx, token, path, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetRepositories fetches the account's repositories, most recently pushed first.
func (c *GitHubClient) GetRepositories(ctx context.Context, token string) ([]GitHubRepo, error) {
	var repos []GitHubRepo
	if err := c.get(ctx, token, "/user/repos?sort=pushed&per_page=100", &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// GetCommits fetches recent commits for a repository authored by the account.
func (c *GitHubClient) GetCommits(ctx context.Context, token, repoFullName, author string, since time.Time) ([]GitHubCommit, error) {
	var commits []GitHubCommit
	path := fmt.Sprintf("/repos/%s/commits?author=%s&since=%s&per_page=100",
		repoFullName, author, since.UTC().Format(time.RFC3339))
	if err := c.get(ctx, token, path, &commits); err != nil {
		return nil, err
	}
	return commits, nil
}
