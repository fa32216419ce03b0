package manifest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/davidc-dev/device-workflow/pkg/identity"
	"github.com/davidc-dev/device-workflow/pkg/types"
	"gopkg.in/yaml.v3"
)

const (
	// APIVersion and Kind identify the controller's application resource
	// in rendered manifests.
	APIVersion = "argoproj.io/v1alpha1"
	Kind       = "Application"

	// ControllerNamespace is the namespace the CD controller watches for
	// application resources.
	ControllerNamespace = "openshift-gitops"

	// DefaultDestinationServer targets the cluster the controller runs in.
	DefaultDestinationServer = "https://kubernetes.default.svc"

	// DefaultDestinationNamespace receives device workloads when the caller
	// does not name one.
	DefaultDestinationNamespace = "device-apps"

	// DefaultProject is the controller project device applications join.
	DefaultProject = "default"

	// TargetRevision is the branch the provisioner pushes device repos to.
	TargetRevision = "main"

	// SourcePath deploys from the repository root.
	SourcePath = "."
)

// Build produces the complete declarative application descriptor for a
// device. The result is fully determined by its inputs: no clock, no
// randomness, no hidden state. Empty destination fields fall back to the
// platform defaults; an empty repo URL is rejected before any network use.
func Build(id types.DeviceIdentity, repoURL, destinationServer, destinationNamespace string) (*types.Application, error) {
	if strings.TrimSpace(repoURL) == "" {
		return nil, types.NewValidationError("repo_url", "required")
	}

	appName, err := identity.Encode(id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(destinationServer) == "" {
		destinationServer = DefaultDestinationServer
	}
	if strings.TrimSpace(destinationNamespace) == "" {
		destinationNamespace = DefaultDestinationNamespace
	}

	return &types.Application{
		Metadata: types.ApplicationMetadata{
			Name:      appName,
			Namespace: ControllerNamespace,
		},
		Spec: types.ApplicationSpec{
			Project: DefaultProject,
			Source: types.ApplicationSource{
				RepoURL:        strings.TrimSpace(repoURL),
				TargetRevision: TargetRevision,
				Path:           SourcePath,
			},
			Destination: types.ApplicationDestination{
				Server:    strings.TrimSpace(destinationServer),
				Namespace: strings.TrimSpace(destinationNamespace),
			},
			SyncPolicy: &types.SyncPolicy{
				Automated: &types.AutomatedSync{
					Prune:    true,
					SelfHeal: true,
				},
				SyncOptions: []string{"CreateNamespace=true"},
			},
		},
	}, nil
}

// envelope is the YAML rendering of an application resource, including the
// apiVersion/kind header that the REST payload omits.
type envelope struct {
	APIVersion string                    `yaml:"apiVersion"`
	Kind       string                    `yaml:"kind"`
	Metadata   types.ApplicationMetadata `yaml:"metadata"`
	Spec       types.ApplicationSpec     `yaml:"spec"`
}

// RenderYAML serializes an application descriptor as a standalone manifest.
// Rendering the same descriptor always yields byte-identical output.
func RenderYAML(app *types.Application) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(envelope{
		APIVersion: APIVersion,
		Kind:       Kind,
		Metadata:   app.Metadata,
		Spec:       app.Spec,
	}); err != nil {
		return "", fmt.Errorf("failed to render manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to render manifest: %w", err)
	}
	return buf.String(), nil
}
