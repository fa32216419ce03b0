package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davidc-dev/device-workflow/pkg/types"
)

// valuesDoc is the default helm values document for a device repository.
type valuesDoc struct {
	Device    deviceValues `yaml:"device"`
	RouteHost string       `yaml:"routeHost"`
}

type deviceValues struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

// RenderValues produces the values.yaml content for a device repository.
// Caller-supplied content takes precedence verbatim (normalized to end in a
// newline); otherwise a default document carrying the device identity and
// route host is generated. Output is deterministic for identical inputs.
func RenderValues(custom string, id types.DeviceIdentity, clusterFQDN string) (string, error) {
	if strings.TrimSpace(custom) != "" {
		content := strings.TrimRight(custom, "\n")
		return content + "\n", nil
	}

	routeHost := ""
	if clusterFQDN != "" {
		routeHost = fmt.Sprintf("%s-%s.%s", id.Name, id.ID, clusterFQDN)
	}

	body, err := marshalYAML(valuesDoc{
		Device:    deviceValues{Name: id.Name, ID: id.ID},
		RouteHost: routeHost,
	})
	if err != nil {
		return "", fmt.Errorf("rendering values: %w", err)
	}

	header := fmt.Sprintf("# Auto-generated values for %s (%s)\n", id.Name, id.ID)
	return header + body, nil
}

// WriteValues renders and writes values.yaml into the repository directory.
func WriteValues(dir, custom string, id types.DeviceIdentity, clusterFQDN string) error {
	content, err := RenderValues(custom, id, clusterFQDN)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "values.yaml"), []byte(content), 0644); err != nil {
		return fmt.Errorf("writing values.yaml: %w", err)
	}
	return nil
}
