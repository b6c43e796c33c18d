// Package githubmeta fetches public repository metadata for a GitHub profile
// and summarizes it as text for the resume composer.
package githubmeta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrProfileNotFound is returned when the profile has no visible repositories
// or does not exist.
var ErrProfileNotFound = errors.New("github profile not found")

// repo is the slice of the GitHub repository payload we care about.
type repo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Language    string `json:"language"`
	UpdatedAt   string `json:"updated_at"`
}

// Client fetches repository metadata from the GitHub REST API.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	token      string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host, used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithToken authenticates requests to raise the API rate limit.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a GitHub metadata client.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		baseURL:    "https://api.github.com",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchProfile resolves a profile URL like https://github.com/octocat to its
// public repositories and returns a plain-text summary suitable for prompt
// composition.
func (c *Client) FetchProfile(ctx context.Context, profileURL string) (string, error) {
	username, err := usernameFromURL(profileURL)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=updated", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.DebugContext(ctx, "fetching github repositories", "username", username)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("github request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("failed to close github response body", "error", err)
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrProfileNotFound, username)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github API returned status %d", resp.StatusCode)
	}

	var repos []repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return "", fmt.Errorf("failed to decode github response: %w", err)
	}
	if len(repos) == 0 {
		return "", fmt.Errorf("%w: %s has no public repositories", ErrProfileNotFound, username)
	}

	return summarize(username, repos), nil
}

// usernameFromURL extracts the account name from a profile URL or accepts a
// bare username.
func usernameFromURL(profileURL string) (string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(profileURL), "/")
	if trimmed == "" {
		return "", errors.New("github profile URL cannot be empty")
	}
	parts := strings.Split(trimmed, "/")
	username := parts[len(parts)-1]
	if username == "" {
		return "", fmt.Errorf("cannot extract username from %q", profileURL)
	}
	return username, nil
}

// summarize renders the repository list as indented plain text.
func summarize(username string, repos []repo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "GitHub profile %s: %d public repositories\n", username, len(repos))
	for _, r := range repos {
		fmt.Fprintf(&b, "- %s", r.Name)
		if r.Language != "" {
			fmt.Fprintf(&b, " (%s)", r.Language)
		}
		fmt.Fprintf(&b, ": stars %d, forks %d", r.Stars, r.Forks)
		if r.Description != "" {
			fmt.Fprintf(&b, ": %s", r.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}
