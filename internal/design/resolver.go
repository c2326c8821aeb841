package design

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Resolver expands design selectors relative to a designs root.
type Resolver struct {
	Root string
}

// NewResolver creates a resolver for the designs under root
func NewResolver(root string) *Resolver {
	return &Resolver{Root: filepath.Clean(root)}
}

// Single resolves a design name given directly on the command line. The
// manifest is checked later, when the design is loaded.
func (r *Resolver) Single(name string) Path {
	return r.pathOf(r.abs(name))
}

// Explicit resolves one entry of a descriptor's designs list. A directory
// holding a manifest is one design; otherwise every directory below it that
// holds a manifest is a design.
func (r *Resolver) Explicit(selector string) ([]Path, error) {
	dir := r.abs(selector)
	if err := requireDir(dir); err != nil {
		return nil, &ResolutionError{Selector: selector, Path: dir, Err: err}
	}

	if HasManifest(dir) {
		return []Path{r.pathOf(dir)}, nil
	}

	var found []Path
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && HasManifest(path) {
			found = append(found, r.pathOf(path))
		}
		return nil
	})
	if err != nil {
		return nil, &ResolutionError{Selector: selector, Path: dir, Err: err}
	}
	if len(found) == 0 {
		return nil, &ResolutionError{Selector: selector, Path: dir, Err: ErrNoDesigns}
	}
	return found, nil
}

// Group resolves one entry of a descriptor's design_dirs list. Every
// immediate child directory is taken as a design without looking for a
// manifest.
func (r *Resolver) Group(selector string) ([]Path, error) {
	dir := r.abs(selector)
	if err := requireDir(dir); err != nil {
		return nil, &ResolutionError{Selector: selector, Path: dir, Err: err}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ResolutionError{Selector: selector, Path: dir, Err: err}
	}

	var found []Path
	for _, entry := range entries {
		if entry.IsDir() {
			found = append(found, r.pathOf(filepath.Join(dir, entry.Name())))
		}
	}
	return found, nil
}

// Resolve expands both selector lists and returns the de-duplicated union
// ordered by directory.
func (r *Resolver) Resolve(designs, groups []string) ([]Path, error) {
	var all []Path
	for _, selector := range designs {
		found, err := r.Explicit(selector)
		if err != nil {
			return nil, err
		}
		all = append(all, found...)
	}
	for _, selector := range groups {
		found, err := r.Group(selector)
		if err != nil {
			return nil, err
		}
		all = append(all, found...)
	}
	return Unique(all), nil
}

// Unique drops repeated directories and sorts the rest lexicographically.
func Unique(paths []Path) []Path {
	seen := make(map[string]struct{}, len(paths))
	unique := make([]Path, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p.Dir]; ok {
			log.Printf("[DEBUG] design %s listed more than once", p.Name)
			continue
		}
		seen[p.Dir] = struct{}{}
		unique = append(unique, p)
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].Dir < unique[j].Dir
	})
	return unique
}

func (r *Resolver) abs(selector string) string {
	if filepath.IsAbs(selector) {
		return filepath.Clean(selector)
	}
	return filepath.Join(r.Root, selector)
}

// pathOf names dir relative to the designs root. Directories outside the
// root keep their last two path elements.
func (r *Resolver) pathOf(dir string) Path {
	rel, err := filepath.Rel(r.Root, dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		parts := strings.Split(filepath.ToSlash(dir), "/")
		if len(parts) > 2 {
			parts = parts[len(parts)-2:]
		}
		rel = strings.Join(parts, "/")
	}
	return Path{Dir: dir, Name: filepath.ToSlash(rel)}
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}
	return nil
}
