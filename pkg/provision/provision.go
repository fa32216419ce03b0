package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davidc-dev/device-workflow/pkg/chart"
	"github.com/davidc-dev/device-workflow/pkg/identity"
	"github.com/davidc-dev/device-workflow/pkg/log"
	"github.com/davidc-dev/device-workflow/pkg/metrics"
	"github.com/davidc-dev/device-workflow/pkg/scaffold"
	"github.com/davidc-dev/device-workflow/pkg/scm"
	"github.com/davidc-dev/device-workflow/pkg/types"
)

// Request describes a device repository to provision.
type Request struct {
	Identity    types.DeviceIdentity
	ClusterFQDN string
	// Chart identifies the helm chart whose contents seed the repository.
	Chart chart.Request
	// ValuesYAML optionally replaces the generated values.yaml verbatim.
	ValuesYAML string
}

// Provisioner creates and populates a git repository for a device: it pulls
// the base chart, writes the identity-derived values.yaml and devfile.yaml,
// creates the remote repository and pushes the initial commit.
type Provisioner struct {
	fetcher  chart.Fetcher
	provider scm.Provider
	pusher   scm.Pusher
}

// NewProvisioner creates a provisioner from its collaborators.
func NewProvisioner(fetcher chart.Fetcher, provider scm.Provider, pusher scm.Pusher) *Provisioner {
	return &Provisioner{fetcher: fetcher, provider: provider, pusher: pusher}
}

// Provision runs the full repository creation flow. The working directory is
// always removed, also on failure.
func (p *Provisioner) Provision(ctx context.Context, req Request) (*types.ProvisionResult, error) {
	result, err := p.provision(ctx, req)
	if err != nil {
		metrics.ProvisionsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ProvisionsTotal.WithLabelValues("success").Inc()
	return result, nil
}

func (p *Provisioner) provision(ctx context.Context, req Request) (*types.ProvisionResult, error) {
	repoName, err := identity.Encode(req.Identity)
	if err != nil {
		return nil, err
	}

	logger := log.WithDevice(req.Identity.Name, req.Identity.ID)

	workDir, err := os.MkdirTemp("", "device-")
	if err != nil {
		return nil, fmt.Errorf("creating working directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	repoDir := filepath.Join(workDir, "repo")
	if err := p.fetcher.Fetch(ctx, req.Chart, repoDir); err != nil {
		return nil, err
	}
	if err := scaffold.WriteValues(repoDir, req.ValuesYAML, req.Identity, req.ClusterFQDN); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Auto-generated for %s (%s)", req.Identity.Name, req.Identity.ID)
	cloneURL, err := p.provider.CreateRepository(ctx, repoName, description)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("repo_url", cloneURL).Msg("created device repository")

	if err := scaffold.WriteDevfile(repoDir, repoName, cloneURL); err != nil {
		return nil, err
	}
	if err := p.pusher.Push(ctx, repoDir, cloneURL); err != nil {
		return nil, err
	}

	return &types.ProvisionResult{RepoName: repoName, RepoURL: cloneURL}, nil
}
