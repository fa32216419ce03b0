package chart

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/davidc-dev/device-workflow/pkg/log"
)

// Request identifies a helm chart to fetch. RepoURL may be an OCI reference
// (oci://...) or a classic chart repository URL; classic repositories also
// require Name. Version is optional and defaults to the latest release.
type Request struct {
	RepoURL string
	Name    string
	Version string
}

// Fetcher retrieves the contents of a chart into destDir.
type Fetcher interface {
	Fetch(ctx context.Context, req Request, destDir string) error
}

// CLIFetcher shells out to the helm binary on PATH.
type CLIFetcher struct {
	binary string
}

// NewCLIFetcher returns a fetcher backed by the helm CLI.
func NewCLIFetcher() *CLIFetcher {
	return &CLIFetcher{binary: "helm"}
}

// pullArgs builds the helm pull argument list for a request.
func pullArgs(req Request, untarDir string) ([]string, error) {
	repoURL := strings.TrimSpace(req.RepoURL)
	if repoURL == "" {
		return nil, fmt.Errorf("chart repository URL is required")
	}

	var args []string
	if strings.HasPrefix(repoURL, "oci://") {
		ref := strings.TrimRight(repoURL, "/")
		if req.Name != "" {
			ref = ref + "/" + strings.TrimLeft(req.Name, "/")
		}
		args = []string{"pull", ref, "--untar", "--untardir", untarDir}
	} else {
		if req.Name == "" {
			return nil, fmt.Errorf("chart name is required for non-OCI repositories")
		}
		args = []string{"pull", req.Name, "--repo", repoURL, "--untar", "--untardir", untarDir}
	}
	if req.Version != "" {
		args = append(args, "--version", req.Version)
	}
	return args, nil
}

// Fetch pulls and unpacks the chart, then moves its contents into destDir.
func (f *CLIFetcher) Fetch(ctx context.Context, req Request, destDir string) error {
	unpackDir, err := os.MkdirTemp(filepath.Dir(destDir), "helm-chart-")
	if err != nil {
		return fmt.Errorf("creating unpack directory: %w", err)
	}
	defer os.RemoveAll(unpackDir)

	args, err := pullArgs(req, unpackDir)
	if err != nil {
		return err
	}

	logger := log.WithComponent("chart")
	logger.Debug().
		Str("repo_url", req.RepoURL).
		Str("chart", req.Name).
		Str("version", req.Version).
		Msg("pulling helm chart")

	cmd := exec.CommandContext(ctx, f.binary, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("helm CLI not found on PATH: %w", err)
		}
		return fmt.Errorf("helm pull failed: %s: %w", strings.TrimSpace(string(out)), err)
	}

	chartRoot, err := locateChartRoot(unpackDir, req.Name)
	if err != nil {
		return err
	}
	if err := moveContents(chartRoot, destDir); err != nil {
		return fmt.Errorf("moving chart contents: %w", err)
	}
	return nil
}

// locateChartRoot finds the unpacked chart directory. When a chart name is
// known it must match a directory exactly; otherwise the first directory wins.
func locateChartRoot(unpackDir, chartName string) (string, error) {
	entries, err := os.ReadDir(unpackDir)
	if err != nil {
		return "", fmt.Errorf("reading unpack directory: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	if len(dirs) == 0 {
		return "", fmt.Errorf("helm pull completed but no chart directory was created")
	}

	if chartName != "" {
		for _, d := range dirs {
			if d == chartName {
				return filepath.Join(unpackDir, d), nil
			}
		}
		return "", fmt.Errorf("chart %q not found in archive, found %v", chartName, dirs)
	}
	return filepath.Join(unpackDir, dirs[0]), nil
}

func moveContents(srcDir, destDir string) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.Rename(filepath.Join(srcDir, e.Name()), filepath.Join(destDir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
