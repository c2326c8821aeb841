// Package testutil builds throwaway repository trees for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bfasst/bfasst/internal/design"
	"github.com/bfasst/bfasst/internal/paths"
	"github.com/bfasst/bfasst/internal/scaffold"
	"github.com/stretchr/testify/require"
)

// NewRepo creates a scaffolded repository in a temp directory: default
// templates, designs/example/add4 and experiments/example.yaml.
func NewRepo(t testing.TB) paths.Paths {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	_, err = scaffold.Initialize(root, false)
	require.NoError(t, err)
	return paths.New(root)
}

// WriteDesign creates designs/<name> with a manifest naming top and an empty
// file for each of files. It returns the design directory.
func WriteDesign(t testing.TB, p paths.Paths, name, top string, files ...string) string {
	t.Helper()
	dir := filepath.Join(p.Designs, filepath.FromSlash(name))
	WriteFile(t, filepath.Join(dir, design.ManifestName), "top: "+top+"\n")
	for _, f := range files {
		WriteFile(t, filepath.Join(dir, filepath.FromSlash(f)), "// "+f+"\n")
	}
	return dir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// ReadFile returns the content of path.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
