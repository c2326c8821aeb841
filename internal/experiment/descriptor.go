// Package experiment parses experiment descriptors into the designs and flows
// of one run.
package experiment

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrMissingFlow is returned when a descriptor does not name a flow.
var ErrMissingFlow = errors.New("does not specify a flow")

// ConfigError reports an unusable descriptor or invocation.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("experiment %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Descriptor is a parsed experiment YAML file.
type Descriptor struct {
	// Path is the file the descriptor was read from.
	Path string `yaml:"-"`

	Flow       string   `yaml:"flow"`
	Designs    []string `yaml:"designs,omitempty"`
	DesignDirs []string `yaml:"design_dirs,omitempty"`
	// PostRun names a hook to run after the build. Only its presence is recorded.
	PostRun string `yaml:"post_run,omitempty"`
}

// Validate performs validation on the descriptor
func (d *Descriptor) Validate() error {
	if d.Flow == "" {
		return ErrMissingFlow
	}
	return nil
}

// Load reads and validates an experiment descriptor
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to read descriptor: %w", err)}
	}

	var descriptor Descriptor
	if err := yaml.Unmarshal(data, &descriptor); err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to parse YAML: %w", err)}
	}
	descriptor.Path = path

	if err := descriptor.Validate(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	return &descriptor, nil
}
