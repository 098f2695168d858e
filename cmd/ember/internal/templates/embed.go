// Package templates provides embedded template files for project creation.
package templates

import (
	"embed"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed init/*
var FS embed.FS

// TemplateData contains the data for template substitution.
type TemplateData struct {
	Name   string  // e.g., "kiosk"
	Width  float64 // default viewport width
	Height float64 // default viewport height
	Dark   bool    // scaffold a dark theme
}

// InitFile maps an embedded template to the file it produces.
type InitFile struct {
	Template string
	Dest     string
}

// InitFiles lists the files written by "ember init", in creation order.
func InitFiles() ([]InitFile, error) {
	paths, err := ListFiles("init")
	if err != nil {
		return nil, err
	}
	files := make([]InitFile, 0, len(paths))
	for _, p := range paths {
		name := p[strings.LastIndex(p, "/")+1:]
		files = append(files, InitFile{Template: p, Dest: strings.TrimSuffix(name, ".tmpl")})
	}
	return files, nil
}

// ProcessTemplate processes a template string with the given data.
func ProcessTemplate(content string, data *TemplateData) (string, error) {
	tmpl, err := template.New("").Option("missingkey=error").Parse(content)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render reads an embedded template and processes it.
func Render(path string, data *TemplateData) (string, error) {
	content, err := ReadFile(path)
	if err != nil {
		return "", err
	}
	return ProcessTemplate(string(content), data)
}

// ListFiles returns all files in the embedded filesystem under the given path.
func ListFiles(path string) ([]string, error) {
	var files []string

	err := fs.WalkDir(FS, path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})

	return files, err
}

// ReadFile reads a file from the embedded filesystem.
func ReadFile(path string) ([]byte, error) {
	return FS.ReadFile(path)
}
