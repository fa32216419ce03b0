package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/davidc-dev/device-workflow/pkg/chart"
	"github.com/davidc-dev/device-workflow/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	err     error
	fetched chart.Request
	destDir string
}

func (m *mockFetcher) Fetch(ctx context.Context, req chart.Request, destDir string) error {
	m.fetched = req
	m.destDir = destDir
	if m.err != nil {
		return m.err
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(destDir, "Chart.yaml"), []byte("name: device-base"), 0644)
}

type mockProvider struct {
	err         error
	cloneURL    string
	createdName string
	createdDesc string
}

func (m *mockProvider) CreateRepository(ctx context.Context, name, description string) (string, error) {
	m.createdName = name
	m.createdDesc = description
	if m.err != nil {
		return "", m.err
	}
	return m.cloneURL, nil
}

type mockPusher struct {
	err        error
	pushedDir  string
	pushedURL  string
	seenValues bool
	seenDev    bool
}

func (m *mockPusher) Push(ctx context.Context, dir, cloneURL string) error {
	m.pushedDir = dir
	m.pushedURL = cloneURL
	_, verr := os.Stat(filepath.Join(dir, "values.yaml"))
	m.seenValues = verr == nil
	_, derr := os.Stat(filepath.Join(dir, "devfile.yaml"))
	m.seenDev = derr == nil
	return m.err
}

func newTestProvisioner(fetcher *mockFetcher, provider *mockProvider, pusher *mockPusher) *Provisioner {
	if fetcher == nil {
		fetcher = &mockFetcher{}
	}
	if provider == nil {
		provider = &mockProvider{cloneURL: "https://github.com/acme/device-lab-sensor-42.git"}
	}
	if pusher == nil {
		pusher = &mockPusher{}
	}
	return NewProvisioner(fetcher, provider, pusher)
}

func testRequest() Request {
	return Request{
		Identity:    types.DeviceIdentity{Name: "lab sensor", ID: "42"},
		ClusterFQDN: "apps.cluster.example.com",
		Chart:       chart.Request{RepoURL: "oci://registry.example.com/charts/device-base"},
	}
}

func TestProvision(t *testing.T) {
	fetcher := &mockFetcher{}
	provider := &mockProvider{cloneURL: "https://github.com/acme/device-lab-sensor-42.git"}
	pusher := &mockPusher{}

	result, err := newTestProvisioner(fetcher, provider, pusher).Provision(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "device-lab-sensor-42", result.RepoName)
	assert.Equal(t, "https://github.com/acme/device-lab-sensor-42.git", result.RepoURL)

	assert.Equal(t, "device-lab-sensor-42", provider.createdName)
	assert.Contains(t, provider.createdDesc, "lab sensor")
	assert.Contains(t, provider.createdDesc, "42")

	assert.Equal(t, "oci://registry.example.com/charts/device-base", fetcher.fetched.RepoURL)
	assert.Equal(t, fetcher.destDir, pusher.pushedDir)
	assert.True(t, pusher.seenValues, "values.yaml written before push")
	assert.True(t, pusher.seenDev, "devfile.yaml written before push")
	assert.Equal(t, result.RepoURL, pusher.pushedURL)
}

func TestProvisionCleansWorkDir(t *testing.T) {
	pusher := &mockPusher{}

	_, err := newTestProvisioner(nil, nil, pusher).Provision(context.Background(), testRequest())
	require.NoError(t, err)

	_, err = os.Stat(pusher.pushedDir)
	assert.True(t, os.IsNotExist(err))
}

func TestProvisionInvalidIdentity(t *testing.T) {
	provider := &mockProvider{cloneURL: "https://git.example.com/r.git"}
	req := testRequest()
	req.Identity.ID = ""

	_, err := newTestProvisioner(nil, provider, nil).Provision(context.Background(), req)
	require.Error(t, err)

	var verr *types.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, provider.createdName, "no remote call on invalid identity")
}

func TestProvisionFetchFailureStopsFlow(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("helm pull failed")}
	provider := &mockProvider{cloneURL: "https://git.example.com/r.git"}

	_, err := newTestProvisioner(fetcher, provider, nil).Provision(context.Background(), testRequest())
	require.Error(t, err)
	assert.Empty(t, provider.createdName)
}

func TestProvisionRepoCreationFailureStopsFlow(t *testing.T) {
	provider := &mockProvider{err: errors.New("name already exists")}
	pusher := &mockPusher{}

	_, err := newTestProvisioner(nil, provider, pusher).Provision(context.Background(), testRequest())
	require.Error(t, err)
	assert.Empty(t, pusher.pushedURL)
}

func TestProvisionPushFailureSurfaced(t *testing.T) {
	pusher := &mockPusher{err: errors.New("authentication failed")}

	_, err := newTestProvisioner(nil, nil, pusher).Provision(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}
