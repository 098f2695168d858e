package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
)

// FileName is the name of the optional project configuration file.
const FileName = "ember.yaml"

// Config represents the optional ember.yaml configuration.
type Config struct {
	Name     string         `yaml:"name,omitempty"`
	Theme    string         `yaml:"theme,omitempty"`
	Output   string         `yaml:"output,omitempty"`
	Debug    bool           `yaml:"debug,omitempty"`
	Viewport ViewportConfig `yaml:"viewport"`
	Queue    QueueConfig    `yaml:"queue"`
}

// ViewportConfig sets the default render size in pixels.
type ViewportConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// QueueConfig sizes the event queue of rendered contexts.
type QueueConfig struct {
	Capacity int    `yaml:"capacity,omitempty"`
	Policy   string `yaml:"policy,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root          string
	Name          string
	ThemePath     string
	OutputDir     string
	Debug         bool
	Viewport      graphics.Size
	QueueCapacity int
	Policy        event.OverflowPolicy
}

// LoadOptional reads ember.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Resolve loads ember.yaml (if present) and resolves defaults. Relative paths
// in the file are resolved against dir.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = defaultName(dir)
	}

	vp := graphics.Size{Width: 320, Height: 240}
	if cfg.Viewport.Width != 0 {
		vp.Width = cfg.Viewport.Width
	}
	if cfg.Viewport.Height != 0 {
		vp.Height = cfg.Viewport.Height
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return nil, fmt.Errorf("%s: viewport must be positive, got %gx%g", FileName, vp.Width, vp.Height)
	}

	capacity := cfg.Queue.Capacity
	if capacity < 0 {
		return nil, fmt.Errorf("%s: queue.capacity must not be negative", FileName)
	}
	if capacity == 0 {
		capacity = 64
	}
	policy, err := event.ParseOverflowPolicy(cfg.Queue.Policy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FileName, err)
	}

	output := strings.TrimSpace(cfg.Output)
	if output == "" {
		output = "."
	}

	return &Resolved{
		Root:          dir,
		Name:          name,
		ThemePath:     resolvePath(dir, strings.TrimSpace(cfg.Theme)),
		OutputDir:     resolvePath(dir, output),
		Debug:         cfg.Debug,
		Viewport:      vp,
		QueueCapacity: capacity,
		Policy:        policy,
	}, nil
}

// FindProjectRoot walks up from start to the nearest directory holding
// ember.yaml or go.mod.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in an ember project (no %s or go.mod found)", FileName)
		}
		dir = parent
	}
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// defaultName derives the project name from the go.mod module path, falling
// back to the directory name.
func defaultName(dir string) string {
	base := filepath.Base(dir)
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err == nil {
		if path := modfile.ModulePath(data); path != "" {
			prefix, _, ok := module.SplitPathVersion(path)
			if ok {
				parts := strings.Split(prefix, "/")
				base = parts[len(parts)-1]
			}
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "ember_app"
	}
	return base
}
