package design

import (
	"errors"
	"fmt"
)

var (
	// ErrManifestMissing is returned when a design directory has no design.yaml.
	ErrManifestMissing = errors.New("design manifest missing")
	// ErrNotDirectory is returned when a selector does not name a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrNoDesigns is returned when a selector exists but holds no design.
	ErrNoDesigns = errors.New("no designs found")
)

// ResolutionError reports a selector that could not be turned into designs.
type ResolutionError struct {
	Selector string
	Path     string
	Err      error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("design %q (%s): %v", e.Selector, e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
