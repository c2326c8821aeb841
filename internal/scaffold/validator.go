package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckExisting checks if root already holds a master template or a tools/
// directory. Returns an error if it does, nil otherwise
func CheckExisting(root string) error {
	var existingFiles []string

	// Check for master.ninja.tmpl
	if _, err := os.Stat(filepath.Join(root, "master.ninja.tmpl")); err == nil {
		existingFiles = append(existingFiles, "master.ninja.tmpl")
	}

	// Check for tools/ directory
	if info, err := os.Stat(filepath.Join(root, "tools")); err == nil && info.IsDir() {
		existingFiles = append(existingFiles, "tools/")
	}

	if len(existingFiles) > 0 {
		errMsg := "project already initialized\n\nFound existing"
		if len(existingFiles) == 1 {
			errMsg += fmt.Sprintf(": %s", existingFiles[0])
		} else {
			errMsg += " files:\n"
			for _, file := range existingFiles {
				errMsg += fmt.Sprintf("  - %s\n", file)
			}
		}
		errMsg += "\nUse 'bfasst init --force' to reinitialize (this will overwrite existing templates)"

		return fmt.Errorf("%s", errMsg)
	}

	return nil
}
