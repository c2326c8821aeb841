// Package design resolves design selectors into concrete design directories
// and loads each design's manifest and HDL sources.
package design

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// Path identifies one design directory.
type Path struct {
	// Dir is the absolute design directory.
	Dir string
	// Name is Dir relative to the designs root, slash separated. Build
	// outputs are laid out by Name.
	Name string
}

func (p Path) String() string {
	return p.Name
}

// Sources are the HDL files found under a design, in lexical walk order.
type Sources struct {
	Verilog       []string
	SystemVerilog []string
}

// Design is a Path with its manifest and sources loaded.
type Design struct {
	Path
	Manifest *Manifest
	Sources  Sources
}

// Top is the top-level module name.
func (d *Design) Top() string {
	return d.Manifest.Top
}

// Load verifies p holds a manifest, parses it and scans the HDL sources.
func Load(p Path) (*Design, error) {
	if !HasManifest(p.Dir) {
		return nil, fmt.Errorf("%s: %w", dirManifest(p.Dir), ErrManifestMissing)
	}

	manifest, err := LoadManifest(dirManifest(p.Dir))
	if err != nil {
		return nil, err
	}

	sources, err := DiscoverSources(p.Dir)
	if err != nil {
		return nil, err
	}

	return &Design{Path: p, Manifest: manifest, Sources: sources}, nil
}

// DiscoverSources walks dir recursively and partitions .v and .sv files.
// Other extensions are ignored. Both slices are non-nil and sorted.
func DiscoverSources(dir string) (Sources, error) {
	sources := Sources{Verilog: []string{}, SystemVerilog: []string{}}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".v":
			sources.Verilog = append(sources.Verilog, path)
		case ".sv":
			sources.SystemVerilog = append(sources.SystemVerilog, path)
		}
		return nil
	})
	if err != nil {
		return Sources{}, fmt.Errorf("failed to scan sources in %s: %w", dir, err)
	}

	sort.Strings(sources.Verilog)
	sort.Strings(sources.SystemVerilog)
	return sources, nil
}

func dirManifest(dir string) string {
	return filepath.Join(dir, ManifestName)
}
