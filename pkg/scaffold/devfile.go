package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

const maxDevfileName = 63

// devfile is the developer-workspace descriptor pushed alongside the chart
// so the repository opens directly in a cloud workspace.
type devfile struct {
	SchemaVersion string             `yaml:"schemaVersion"`
	Metadata      devfileMetadata    `yaml:"metadata"`
	Attributes    map[string]string  `yaml:"attributes"`
	Components    []devfileComponent `yaml:"components"`
	Commands      []devfileCommand   `yaml:"commands"`
	Events        devfileEvents      `yaml:"events"`
	Projects      []devfileProject   `yaml:"projects"`
}

type devfileMetadata struct {
	Name string `yaml:"name"`
}

type devfileComponent struct {
	Name      string           `yaml:"name"`
	Container devfileContainer `yaml:"container"`
}

type devfileContainer struct {
	Image        string `yaml:"image"`
	MemoryLimit  string `yaml:"memoryLimit"`
	MountSources bool   `yaml:"mountSources"`
}

type devfileCommand struct {
	ID   string      `yaml:"id"`
	Exec devfileExec `yaml:"exec"`
}

type devfileExec struct {
	Component   string `yaml:"component"`
	WorkingDir  string `yaml:"workingDir"`
	CommandLine string `yaml:"commandLine"`
	Label       string `yaml:"label"`
}

type devfileEvents struct {
	PostStart []string `yaml:"postStart"`
}

type devfileProject struct {
	Name string     `yaml:"name"`
	Git  devfileGit `yaml:"git"`
}

type devfileGit struct {
	Remotes map[string]string `yaml:"remotes"`
}

// RenderDevfile produces the devfile.yaml content for a device repository.
// The devfile name is capped at 63 characters to stay a valid k8s label.
func RenderDevfile(repoName, repoURL string) (string, error) {
	name := repoName
	if len(name) > maxDevfileName {
		name = name[:maxDevfileName]
	}

	doc := devfile{
		SchemaVersion: "2.2.0",
		Metadata:      devfileMetadata{Name: name},
		Attributes: map[string]string{
			"controller.devfile.io/editor": "che-code",
		},
		Components: []devfileComponent{
			{
				Name: "dev-tools",
				Container: devfileContainer{
					Image:        "quay.io/devspaces/udi-rhel8:latest",
					MemoryLimit:  "2Gi",
					MountSources: true,
				},
			},
		},
		Commands: []devfileCommand{
			{
				ID: "git-config",
				Exec: devfileExec{
					Component:  "dev-tools",
					WorkingDir: "/projects",
					CommandLine: `git config --global user.name "Device Workflow Bot" && ` +
						`git config --global user.email "auto@example.com"`,
					Label: "Configure Git",
				},
			},
		},
		Events: devfileEvents{PostStart: []string{"git-config"}},
		Projects: []devfileProject{
			{
				Name: name,
				Git:  devfileGit{Remotes: map[string]string{"origin": repoURL}},
			},
		},
	}

	return marshalYAML(doc)
}

// WriteDevfile renders and writes devfile.yaml into the repository directory.
func WriteDevfile(dir, repoName, repoURL string) error {
	content, err := RenderDevfile(repoName, repoURL)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "devfile.yaml"), []byte(content), 0644); err != nil {
		return fmt.Errorf("writing devfile.yaml: %w", err)
	}
	return nil
}
