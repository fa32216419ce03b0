package scm

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	"github.com/davidc-dev/device-workflow/pkg/log"
)

const (
	commitAuthorName  = "Device Workflow Bot"
	commitAuthorEmail = "auto@example.com"
)

// GitPusher publishes a directory with the git CLI, authenticating over
// HTTPS with the configured username and token.
type GitPusher struct {
	username string
	token    string
}

// NewGitPusher creates a pusher with the given credentials.
func NewGitPusher(username, token string) *GitPusher {
	return &GitPusher{username: username, token: token}
}

// authedRemoteURL embeds the credentials into the clone URL.
func (g *GitPusher) authedRemoteURL(cloneURL string) (string, error) {
	parsed, err := url.Parse(cloneURL)
	if err != nil {
		return "", fmt.Errorf("parsing clone URL: %w", err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("clone URL %q has no host", cloneURL)
	}
	parsed.User = url.UserPassword(g.username, g.token)
	return parsed.String(), nil
}

// Push initializes a repository in dir, commits its contents and pushes the
// main branch to the remote.
func (g *GitPusher) Push(ctx context.Context, dir, cloneURL string) error {
	remote, err := g.authedRemoteURL(cloneURL)
	if err != nil {
		return err
	}

	steps := [][]string{
		{"init"},
		{"config", "user.email", commitAuthorEmail},
		{"config", "user.name", commitAuthorName},
		{"remote", "add", "origin", remote},
		{"add", "."},
		{"commit", "-m", "Initial commit"},
		{"branch", "-M", "main"},
		{"push", "-u", "origin", "main"},
	}

	for _, args := range steps {
		if err := runGit(ctx, dir, args...); err != nil {
			return err
		}
	}

	logger := log.WithComponent("scm")
	logger.Info().
		Str("remote", cloneURL).
		Msg("pushed repository contents")
	return nil
}

func runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s failed: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return nil
}
