package design

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file that marks a directory as a design.
const ManifestName = "design.yaml"

// Manifest is the parsed design.yaml of one design.
type Manifest struct {
	Top string `yaml:"top"`
}

// Validate performs validation on the manifest
func (m *Manifest) Validate() error {
	if m.Top == "" {
		return fmt.Errorf("top is required")
	}
	return nil
}

// LoadManifest reads and validates a design manifest from the specified path
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	return &manifest, nil
}

// HasManifest reports whether dir directly contains a design manifest.
func HasManifest(dir string) bool {
	info, err := os.Stat(dirManifest(dir))
	return err == nil && info.Mode().IsRegular()
}
