package theme

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/ember/pkg/errors"
)

// Format is a style file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// FormatForPath picks a format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return FormatYAML, fmt.Errorf("unsupported style file extension %q", filepath.Ext(path))
	}
}

// Load reads a style file. Fields absent from the file keep their values from
// Default.
func Load(path string) (*Style, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, errors.New("theme.Load", errors.KindConfig, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("theme.Load", errors.KindConfig, fmt.Errorf("read %s: %w", path, err))
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, errors.New("theme.Load", errors.KindConfig, fmt.Errorf("%s: %w", path, err))
	}
	return s, nil
}

// Parse decodes a style over the defaults and validates it.
func Parse(data []byte, format Format) (*Style, error) {
	s := Default()
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, s)
	default:
		err = yaml.Unmarshal(data, s)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode writes the style in the given format.
func (s *Style) Encode(format Format) ([]byte, error) {
	if format == FormatTOML {
		return toml.Marshal(s)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks the schema version and the spacing metrics.
//
// The version must be a semantic version with the same major version as
// CurrentVersion; a missing "v" prefix is accepted.
func (s *Style) Validate() error {
	v := s.Version
	if v == "" {
		v = CurrentVersion
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid style version %q", s.Version)
	}
	if semver.Major(v) != semver.Major(CurrentVersion) {
		return fmt.Errorf("style version %s: %w (want %s.x)", v, errors.ErrUnsupportedVersion, semver.Major(CurrentVersion))
	}
	s.Version = v
	for name, val := range map[string]float64{
		"padding":      s.Spacing.Padding,
		"gap":          s.Spacing.Gap,
		"border_width": s.Spacing.BorderWidth,
		"focus_width":  s.Spacing.FocusWidth,
	} {
		if val < 0 || math.IsNaN(val) {
			return fmt.Errorf("spacing.%s must be a non-negative number, got %v", name, val)
		}
	}
	switch s.Brightness {
	case "", BrightnessLight, BrightnessDark:
	default:
		return fmt.Errorf("unknown brightness %q", s.Brightness)
	}
	return nil
}
