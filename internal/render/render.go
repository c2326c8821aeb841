// Package render fills text templates with bindings. Ninja fragments and Tcl
// scripts are both produced here.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/bfasst/bfasst/internal/ninja"
)

// Bindings are the values a template may reference.
type Bindings map[string]any

var funcs = template.FuncMap{
	"esc":   ninja.EscapePath,
	"val":   ninja.EscapeValue,
	"sh":    ninja.QuoteValue,
	"paths": func(paths []string) string { return ninja.JoinPaths(paths) },
	"join":  strings.Join,
}

// File renders the template stored at path.
func File(path string, bindings Bindings) (string, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return String(filepath.Base(path), string(text), bindings)
}

// String renders text. Referencing a binding that is not set is an error.
func String(name, text string, bindings Bindings) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Funcs(funcs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(bindings)); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// Artifact renders the template at templatePath with the fields of the JSON
// config artifact at dataPath.
func Artifact(templatePath, dataPath string) (string, error) {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return "", fmt.Errorf("failed to read data: %w", err)
	}

	var bindings Bindings
	if err := json.Unmarshal(data, &bindings); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", dataPath, err)
	}
	return File(templatePath, bindings)
}
