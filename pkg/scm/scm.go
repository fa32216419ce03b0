package scm

import "context"

// Provider creates remote repositories on a source-code host.
type Provider interface {
	// CreateRepository creates a repository and returns its clone URL.
	CreateRepository(ctx context.Context, name, description string) (string, error)
}

// Pusher publishes the contents of a local directory to a remote repository.
type Pusher interface {
	Push(ctx context.Context, dir, cloneURL string) error
}
