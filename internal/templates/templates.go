// Package templates embeds the unit, policy, and hook files wslarc installs.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
)

//go:embed files
var embedded embed.FS

const root = "files"

// Read returns the raw template named by a path relative to the template root.
func Read(name string) ([]byte, error) {
	return embedded.ReadFile(path.Join(root, name))
}

// Walk visits templates under dir, reporting paths relative to the template root.
func Walk(dir string, fn fs.WalkDirFunc) error {
	return fs.WalkDir(embedded, path.Join(root, dir), func(p string, d fs.DirEntry, err error) error {
		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		if rel == "" {
			rel = "."
		}
		return fn(rel, d, err)
	})
}

// Render executes the named template with data. Missing keys are errors.
func Render(name string, data any) (string, error) {
	raw, err := Read(name)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}
