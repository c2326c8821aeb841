package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates
var templatesFS embed.FS

const templatesRoot = "templates"

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	// Path is relative to the repository root, slash separated.
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize writes the default templates, an example design and an example
// experiment under root. If force is true, existing files are overwritten.
// It returns the files written.
func Initialize(root string, force bool) ([]FileInfo, error) {
	if !force {
		if err := CheckExisting(root); err != nil {
			return nil, err
		}
	}

	files, err := TemplateFiles()
	if err != nil {
		return nil, err
	}

	if err := writeFiles(root, files); err != nil {
		return nil, err
	}

	if err := validateCreatedFiles(root, files); err != nil {
		return nil, err
	}

	return files, nil
}

// TemplateFiles returns every embedded file with its repository path
func TemplateFiles() ([]FileInfo, error) {
	var files []FileInfo
	err := fs.WalkDir(templatesFS, templatesRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		content, err := templatesFS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s template: %w", p, err)
		}
		files = append(files, FileInfo{
			Path:        strings.TrimPrefix(p, templatesRoot+"/"),
			Content:     content,
			Permissions: 0644,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// writeFiles writes all template files to disk, creating parent directories
func writeFiles(root string, files []FileInfo) error {
	for _, file := range files {
		target := filepath.Join(root, filepath.FromSlash(file.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}

	return nil
}

// validateCreatedFiles checks that every YAML file written parses
func validateCreatedFiles(root string, files []FileInfo) error {
	for _, file := range files {
		if path.Ext(file.Path) != ".yaml" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(file.Path)))
		if err != nil {
			return fmt.Errorf("failed to read created %s: %w", file.Path, err)
		}

		var yamlData interface{}
		if err := yaml.Unmarshal(content, &yamlData); err != nil {
			return fmt.Errorf("created %s is not valid YAML: %w", file.Path, err)
		}
	}

	return nil
}
