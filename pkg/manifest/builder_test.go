package manifest

import (
	"strings"
	"testing"

	"github.com/davidc-dev/device-workflow/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = types.DeviceIdentity{Name: "Lab Sensor", ID: "42"}

func TestBuild(t *testing.T) {
	app, err := Build(testIdentity, "https://github.com/acme/device-lab-sensor-42.git", "", "")
	require.NoError(t, err)

	assert.Equal(t, "device-lab-sensor-42", app.Metadata.Name)
	assert.Equal(t, ControllerNamespace, app.Metadata.Namespace)
	assert.Equal(t, DefaultProject, app.Spec.Project)
	assert.Equal(t, "https://github.com/acme/device-lab-sensor-42.git", app.Spec.Source.RepoURL)
	assert.Equal(t, TargetRevision, app.Spec.Source.TargetRevision)
	assert.Equal(t, SourcePath, app.Spec.Source.Path)
	assert.Equal(t, DefaultDestinationServer, app.Spec.Destination.Server)
	assert.Equal(t, DefaultDestinationNamespace, app.Spec.Destination.Namespace)

	require.NotNil(t, app.Spec.SyncPolicy)
	require.NotNil(t, app.Spec.SyncPolicy.Automated)
	assert.True(t, app.Spec.SyncPolicy.Automated.Prune)
	assert.True(t, app.Spec.SyncPolicy.Automated.SelfHeal)
	assert.Equal(t, []string{"CreateNamespace=true"}, app.Spec.SyncPolicy.SyncOptions)
}

func TestBuildExplicitDestination(t *testing.T) {
	app, err := Build(testIdentity, "https://git.example.com/r.git", "https://edge.example.com:6443", "factory-floor")
	require.NoError(t, err)

	assert.Equal(t, "https://edge.example.com:6443", app.Spec.Destination.Server)
	assert.Equal(t, "factory-floor", app.Spec.Destination.Namespace)
}

func TestBuildRejectsEmptyRepoURL(t *testing.T) {
	_, err := Build(testIdentity, "   ", "", "")
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "repo_url", verr.Field)
}

func TestBuildRejectsInvalidIdentity(t *testing.T) {
	_, err := Build(types.DeviceIdentity{Name: "sensor"}, "https://git.example.com/r.git", "", "")
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
}

// Build is pure: identical inputs must yield byte-identical manifests.
func TestBuildDeterministic(t *testing.T) {
	first, err := Build(testIdentity, "https://git.example.com/r.git", "", "")
	require.NoError(t, err)
	second, err := Build(testIdentity, "https://git.example.com/r.git", "", "")
	require.NoError(t, err)

	assert.Equal(t, first, second)

	firstYAML, err := RenderYAML(first)
	require.NoError(t, err)
	secondYAML, err := RenderYAML(second)
	require.NoError(t, err)
	assert.Equal(t, firstYAML, secondYAML)
}

func TestRenderYAML(t *testing.T) {
	app, err := Build(testIdentity, "https://git.example.com/r.git", "", "")
	require.NoError(t, err)

	out, err := RenderYAML(app)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "apiVersion: argoproj.io/v1alpha1\n"))
	assert.Contains(t, out, "kind: Application\n")
	assert.Contains(t, out, "name: device-lab-sensor-42\n")
	assert.Contains(t, out, "repoURL: https://git.example.com/r.git\n")
	assert.Contains(t, out, "targetRevision: main\n")
	assert.Contains(t, out, "selfHeal: true\n")
	assert.Contains(t, out, "- CreateNamespace=true\n")
	// status is live state, never part of a rendered manifest
	assert.NotContains(t, out, "status:")
}
