package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-drift/ember/cmd/ember/internal/templates"
	"github.com/go-drift/ember/pkg/graphics"
)

func init() {
	RegisterCommand(&Command{
		Name:  "init",
		Short: "Create a new ember project",
		Long: `Create a new ember project in a new directory.

This command creates:
  - ember.yaml with the default viewport, style and output directory
  - screen.ember with a starter screen
  - theme.yaml with an editable style

The project name is derived from the directory basename.

Flags:
  --dark       Scaffold a dark style
  --size WxH   Default viewport (default: 320x240)

Examples:
  ember init kiosk
  ember init ./screens/kiosk --dark --size 480x272`,
		Usage: "ember init <directory> [--dark] [--size WxH]",
		Run:   runInit,
	})
}

// runInit creates a new ember project. The first positional argument is the
// directory path to create (which may be relative or absolute).
func runInit(args []string) error {
	data := templates.TemplateData{Width: 320, Height: 240}
	var raw string
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--dark":
			data.Dark = true
		case arg == "--size" || strings.HasPrefix(arg, "--size="):
			v, ok := strings.CutPrefix(arg, "--size=")
			if !ok {
				if i+1 >= len(args) {
					return fmt.Errorf("--size requires a value")
				}
				i++
				v = args[i]
			}
			size, err := parseSize(v)
			if err != nil {
				return err
			}
			data.Width, data.Height = size.Width, size.Height
		case strings.HasPrefix(arg, "--"):
			return fmt.Errorf("unknown flag %s", arg)
		default:
			if raw != "" {
				return fmt.Errorf("unexpected argument %q", arg)
			}
			raw = arg
		}
	}
	if raw == "" {
		return fmt.Errorf("directory is required\n\nUsage: ember init <directory> [--dark] [--size WxH]")
	}
	if strings.HasPrefix(raw, "~") {
		return fmt.Errorf("tilde (~) is not expanded by ember; use an absolute path or $HOME instead")
	}

	dir := filepath.Clean(raw)
	if err := validateDirectory(dir); err != nil {
		return err
	}
	data.Name = filepath.Base(dir)
	if err := validateProjectName(data.Name); err != nil {
		return fmt.Errorf("invalid project name %q (derived from directory basename): %w", data.Name, err)
	}

	if err := scaffoldProject(dir, &data); err != nil {
		return err
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "Project created successfully!\n\n")
	fmt.Fprintf(stdout, "Next steps:\n")
	fmt.Fprintf(stdout, "  cd %s\n", dir)
	fmt.Fprintf(stdout, "  ember render screen.ember          # Render to out/screen.png\n")
	fmt.Fprintf(stdout, "  ember render --watch screen.ember  # Re-render on save\n")
	return nil
}

// scaffoldProject creates the project directory and writes the template
// files. On failure the partially created directory is removed.
func scaffoldProject(dir string, data *templates.TemplateData) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}

	fmt.Fprintf(stdout, "Creating new ember project: %s (%s)\n", data.Name, graphics.Size{Width: data.Width, Height: data.Height})

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	files, err := templates.InitFiles()
	if err != nil {
		safeRemoveAll(dir)
		return err
	}
	for _, f := range files {
		content, err := templates.Render(f.Template, data)
		if err != nil {
			safeRemoveAll(dir)
			return fmt.Errorf("failed to render template %s: %w", f.Template, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.Dest), []byte(content), 0o644); err != nil {
			safeRemoveAll(dir)
			return fmt.Errorf("failed to write %s: %w", f.Dest, err)
		}
		fmt.Fprintf(stdout, "  Created %s\n", f.Dest)
	}
	return nil
}

// validateDirectory rejects directory paths that would be dangerous to create or
// clean up. This includes filesystem roots (/, C:\), the current/parent directory,
// and root-level absolute paths (e.g. /etc, C:\Users).
func validateDirectory(dir string) error {
	switch dir {
	case "", "/", ".", "..":
		return fmt.Errorf("directory %q is not a valid project location", dir)
	}
	if isVolumeRoot(dir) {
		return fmt.Errorf("directory %q is not a valid project location", dir)
	}
	if filepath.IsAbs(dir) && isVolumeRoot(filepath.Dir(dir)) {
		return fmt.Errorf("refusing to create project at root-level path %q", dir)
	}
	return nil
}

// isVolumeRoot reports whether dir is a filesystem root. On Unix this is "/",
// on Windows this covers drive roots like "C:\" and the bare root "\".
func isVolumeRoot(dir string) bool {
	return dir == filepath.VolumeName(dir)+string(filepath.Separator)
}

// safeRemoveAll removes a directory only if the path passes validateDirectory.
func safeRemoveAll(dir string) {
	if validateDirectory(dir) != nil {
		return
	}
	os.RemoveAll(dir)
}

var validProjectName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// validateProjectName checks that a project name (derived from the directory
// basename) starts with a letter and contains only letters, digits,
// underscores and hyphens.
func validateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("project name cannot start with a dot")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("project name cannot start with a hyphen")
	}
	if !validProjectName.MatchString(name) {
		return fmt.Errorf("project name must start with a letter and contain only letters, numbers, underscores, and hyphens")
	}
	return nil
}
