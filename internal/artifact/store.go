package artifact

import (
	"bytes"
	"context"
	"log"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// Store reads and writes generated files.
type Store struct {
	fs afs.Service

	// Explain logs a unified diff for every artifact that gets rewritten.
	Explain bool
}

// NewStore creates a store backed by the local filesystem.
func NewStore() *Store {
	return &Store{fs: afs.New()}
}

// ShouldWrite reports whether candidate must be written to path: the file is
// missing, cannot be read or parsed, or is not structurally equal.
func (s *Store) ShouldWrite(ctx context.Context, path string, candidate []byte) bool {
	_, write := s.compare(ctx, path, candidate)
	return write
}

// Write stores content at path unless the existing file is equivalent.
// It reports whether the file was written.
func (s *Store) Write(ctx context.Context, path string, content []byte) (bool, error) {
	existing, write := s.compare(ctx, path, content)
	if !write {
		log.Printf("[DEBUG] %s unchanged, keeping existing file", path)
		return false, nil
	}

	if s.Explain && existing != nil {
		s.explain(path, existing, content)
	}

	if err := s.Put(ctx, path, content); err != nil {
		return false, err
	}
	return true, nil
}

// Put writes content to path unconditionally, replacing any existing file.
func (s *Store) Put(ctx context.Context, path string, content []byte) error {
	if err := s.fs.Upload(ctx, path, file.DefaultFileOsMode, bytes.NewReader(content)); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// EnsureDir creates dir and its parents if they do not exist.
func (s *Store) EnsureDir(ctx context.Context, dir string) error {
	exists, err := s.fs.Exists(ctx, dir)
	if err != nil {
		return &WriteError{Path: dir, Err: err}
	}
	if exists {
		return nil
	}
	if err := s.fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
		return &WriteError{Path: dir, Err: err}
	}
	return nil
}

// Exists reports whether path exists.
func (s *Store) Exists(ctx context.Context, path string) bool {
	exists, _ := s.fs.Exists(ctx, path)
	return exists
}

// compare returns the current content of path (nil when unavailable) and
// whether candidate differs from it.
func (s *Store) compare(ctx context.Context, path string, candidate []byte) ([]byte, bool) {
	if !s.Exists(ctx, path) {
		return nil, true
	}

	existing, err := s.fs.DownloadWithURL(ctx, path)
	if err != nil {
		log.Printf("[WARN] failed to read %s, overwriting: %v", path, err)
		return nil, true
	}

	same, err := EquivalentContent(existing, candidate)
	if err != nil {
		log.Printf("[WARN] cannot compare %s, overwriting: %v", path, err)
		return existing, true
	}
	return existing, !same
}

func (s *Store) explain(path string, before, after []byte) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path + " (stored)",
		ToFile:   path + " (generated)",
		Context:  2,
	})
	if err != nil {
		log.Printf("[WARN] failed to diff %s: %v", path, err)
		return
	}
	log.Printf("[INFO] rewriting %s:\n%s", path, diff)
}
