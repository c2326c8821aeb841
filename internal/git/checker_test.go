package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())
	real, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return real
}

func TestIsGitRepository(t *testing.T) {
	requireGit(t)

	tests := []struct {
		name      string
		dir       func() string
		wantIsGit bool
	}{
		{
			name:      "valid git repository",
			dir:       func() string { return initRepo(t) },
			wantIsGit: true,
		},
		{
			name:      "not a git repository",
			dir:       t.TempDir,
			wantIsGit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isGit, err := NewChecker(tt.dir()).IsGitRepository()
			require.NoError(t, err)
			assert.Equal(t, tt.wantIsGit, isGit)
		})
	}
}

func TestGetGitRoot(t *testing.T) {
	requireGit(t)

	t.Run("returns root from a subdirectory", func(t *testing.T) {
		root := initRepo(t)
		sub := filepath.Join(root, "designs", "add4")
		require.NoError(t, mkdirAll(sub))

		got, err := NewChecker(sub).GetGitRoot()
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("fails outside a repository", func(t *testing.T) {
		_, err := NewChecker(t.TempDir()).GetGitRoot()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get Git root")
	})
}

func mkdirAll(dir string) error {
	return os.MkdirAll(dir, 0755)
}
