package scm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGitHubAPIURL = "https://api.github.com"

// GitHubConfig holds GitHub API client configuration.
type GitHubConfig struct {
	// Token is a personal access token with repo scope.
	Token string
	// APIURL overrides the GitHub API base URL, for GitHub Enterprise.
	APIURL string
	// Timeout for API requests (default: 30s)
	Timeout time.Duration
}

// GitHubProvider creates repositories through the GitHub REST API.
type GitHubProvider struct {
	httpClient *http.Client
	apiURL     string
	token      string
}

// NewGitHubProvider creates a GitHub provider from config.
func NewGitHubProvider(cfg GitHubConfig) (*GitHubProvider, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("github token is required")
	}
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultGitHubAPIURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &GitHubProvider{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     strings.TrimRight(apiURL, "/"),
		token:      cfg.Token,
	}, nil
}

type createRepoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
}

type createRepoResponse struct {
	CloneURL string `json:"clone_url"`
}

// CreateRepository creates a public repository under the authenticated user
// and returns its clone URL.
func (p *GitHubProvider) CreateRepository(ctx context.Context, name, description string) (string, error) {
	body, err := json.Marshal(createRepoRequest{Name: name, Description: description})
	if err != nil {
		return "", fmt.Errorf("encoding repository request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+"/user/repos", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating repository request: %w", err)
	}
	req.Header.Set("Authorization", "token "+p.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling github: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading github response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("github repository creation failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var created createRepoResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", fmt.Errorf("decoding github response: %w", err)
	}
	if created.CloneURL == "" {
		return "", fmt.Errorf("github response missing clone_url")
	}
	return created.CloneURL, nil
}
