package git

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Checker answers questions about the Git repository containing Dir.
// An empty Dir means the current working directory.
type Checker struct {
	Dir string
}

// NewChecker creates a new Git checker rooted at dir
func NewChecker(dir string) *Checker {
	return &Checker{Dir: dir}
}

func (c *Checker) command(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.Dir
	return cmd
}

// IsGitRepository checks if Dir is within a Git repository
func (c *Checker) IsGitRepository() (bool, error) {
	err := c.command("rev-parse", "--git-dir").Run()
	if err != nil {
		// Check if error is because git command not found
		if _, ok := err.(*exec.Error); ok {
			return false, fmt.Errorf("git not found in PATH")
		}
		// Not in a Git repository
		return false, nil
	}
	return true, nil
}

// GetGitRoot returns the absolute, symlink-free path to the Git repository root
func (c *Checker) GetGitRoot() (string, error) {
	output, err := c.command("rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get Git root: %w", err)
	}

	gitRoot := strings.TrimSpace(string(output))
	realPath, err := filepath.EvalSymlinks(gitRoot)
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlinks: %w", err)
	}
	return filepath.Clean(realPath), nil
}
