package experiment

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bfasst/bfasst/internal/design"
	"github.com/bfasst/bfasst/internal/flow"
)

// Result is what a run works on: the designs and one flow per design.
type Result struct {
	// Descriptor is nil for a single-design invocation.
	Descriptor *Descriptor
	Kind       string
	Designs    []design.Path
	Flows      []flow.Flow
}

// Locate returns path if it exists, otherwise path under the experiments
// directory if that exists. Absolute paths are returned unchanged.
func Locate(path, experimentsDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	candidate := filepath.Join(experimentsDir, path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
}

// Parse loads the descriptor at path, resolves its designs and builds one
// flow of the descriptor's kind for each design, in design order.
func Parse(path string, resolver *design.Resolver, env *flow.Env) (*Result, error) {
	descriptor, err := Load(path)
	if err != nil {
		return nil, err
	}
	if descriptor.PostRun != "" {
		log.Printf("[INFO] %s declares post_run hook %q", path, descriptor.PostRun)
	}

	// unknown kinds fail before any design is touched
	if _, err := flow.Lookup(descriptor.Flow); err != nil {
		return nil, err
	}

	if len(descriptor.Designs) == 0 && len(descriptor.DesignDirs) == 0 {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("no designs or design_dirs listed")}
	}

	designs, err := resolver.Resolve(descriptor.Designs, descriptor.DesignDirs)
	if err != nil {
		return nil, err
	}

	flows, err := build(env, descriptor.Flow, designs)
	if err != nil {
		return nil, err
	}

	return &Result{Descriptor: descriptor, Kind: descriptor.Flow, Designs: designs, Flows: flows}, nil
}

// Single builds a flow of kind for the one design named name.
func Single(name, kind string, resolver *design.Resolver, env *flow.Env) (*Result, error) {
	if _, err := flow.Lookup(kind); err != nil {
		return nil, err
	}

	designs := []design.Path{resolver.Single(name)}
	flows, err := build(env, kind, designs)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: kind, Designs: designs, Flows: flows}, nil
}

func build(env *flow.Env, kind string, designs []design.Path) ([]flow.Flow, error) {
	flows := make([]flow.Flow, 0, len(designs))
	for _, d := range designs {
		f, err := flow.New(env, kind, d)
		if err != nil {
			return nil, err
		}
		flows = append(flows, f)
	}
	return flows, nil
}
