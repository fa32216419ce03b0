package scaffold

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// marshalYAML renders a document with two-space indentation.
func marshalYAML(doc interface{}) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
