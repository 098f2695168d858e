// Package theme holds the passive style data handed to widgets when they draw.
//
// A Style is never mutated by the core. Widgets read colors by semantic role
// from the Palette, the font name and the spacing metrics. Default always
// returns a usable style; files can override any subset of it.
package theme

import (
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/go-drift/ember/pkg/graphics"
)

// CurrentVersion is the style schema version written by this package.
const CurrentVersion = "v1.0.0"

// Brightness indicates whether a style is light or dark.
type Brightness string

const (
	BrightnessLight Brightness = "light"
	BrightnessDark  Brightness = "dark"
)

// Palette maps semantic roles to colors. Backgrounds and foregrounds come in
// three tiers, from the base surface to the most emphasised element.
type Palette struct {
	Background  graphics.Color `yaml:"background" toml:"background"`
	Background2 graphics.Color `yaml:"background2" toml:"background2"`
	Background3 graphics.Color `yaml:"background3" toml:"background3"`
	Foreground  graphics.Color `yaml:"foreground" toml:"foreground"`
	Foreground2 graphics.Color `yaml:"foreground2" toml:"foreground2"`
	Foreground3 graphics.Color `yaml:"foreground3" toml:"foreground3"`
	Accent      graphics.Color `yaml:"accent" toml:"accent"`
	Border      graphics.Color `yaml:"border" toml:"border"`
	Focus       graphics.Color `yaml:"focus" toml:"focus"`
	Disabled    graphics.Color `yaml:"disabled" toml:"disabled"`
	Debug       graphics.Color `yaml:"debug" toml:"debug"`
	// Success and Warning mark status indicators such as a charging battery
	// or an alert.
	Success graphics.Color `yaml:"success" toml:"success"`
	Warning graphics.Color `yaml:"warning" toml:"warning"`
}

// Spacing holds the metrics widgets use around their content.
type Spacing struct {
	Padding     float64 `yaml:"padding" toml:"padding"`
	Gap         float64 `yaml:"gap" toml:"gap"`
	BorderWidth float64 `yaml:"border_width" toml:"border_width"`
	FocusWidth  float64 `yaml:"focus_width" toml:"focus_width"`
}

// Style is the data bag passed to Widget.Draw.
type Style struct {
	Version    string     `yaml:"version" toml:"version"`
	Name       string     `yaml:"name" toml:"name"`
	Brightness Brightness `yaml:"brightness" toml:"brightness"`
	Palette    Palette    `yaml:"palette" toml:"palette"`
	Font       string     `yaml:"font" toml:"font"`
	FontBold   string     `yaml:"font_bold" toml:"font_bold"`
	Spacing    Spacing    `yaml:"spacing" toml:"spacing"`
}

// Default returns the default light style.
func Default() *Style {
	return &Style{
		Version:    CurrentVersion,
		Name:       "default",
		Brightness: BrightnessLight,
		Palette: Palette{
			Background:  graphics.RGB(0xF5, 0xF5, 0xF5),
			Background2: graphics.RGB(0xE0, 0xE0, 0xE0),
			Background3: graphics.RGB(0xC8, 0xC8, 0xC8),
			Foreground:  graphics.RGB(0x21, 0x21, 0x21),
			Foreground2: graphics.RGB(0x42, 0x42, 0x42),
			Foreground3: graphics.RGB(0x75, 0x75, 0x75),
			Accent:      graphics.RGB(0x19, 0x76, 0xD2),
			Border:      graphics.RGB(0x9E, 0x9E, 0x9E),
			Focus:       graphics.RGB(0xFF, 0x98, 0x00),
			Disabled:    graphics.RGB(0xBD, 0xBD, 0xBD),
			Debug:       graphics.RGB(0xFF, 0x00, 0xFF),
			Success:     graphics.RGB(0x38, 0x8E, 0x3C),
			Warning:     graphics.RGB(0xF9, 0xA8, 0x25),
		},
		Font:     graphics.FontBasic,
		FontBold: graphics.FontInconsolataBold,
		Spacing: Spacing{
			Padding:     4,
			Gap:         2,
			BorderWidth: 1,
			FocusWidth:  1,
		},
	}
}

// Dark returns the default dark style.
func Dark() *Style {
	s := Default()
	s.Name = "dark"
	s.Brightness = BrightnessDark
	s.Palette = Palette{
		Background:  graphics.RGB(0x12, 0x12, 0x12),
		Background2: graphics.RGB(0x21, 0x21, 0x21),
		Background3: graphics.RGB(0x30, 0x30, 0x30),
		Foreground:  graphics.RGB(0xFA, 0xFA, 0xFA),
		Foreground2: graphics.RGB(0xE0, 0xE0, 0xE0),
		Foreground3: graphics.RGB(0x9E, 0x9E, 0x9E),
		Accent:      graphics.RGB(0x64, 0xB5, 0xF6),
		Border:      graphics.RGB(0x61, 0x61, 0x61),
		Focus:       graphics.RGB(0xFF, 0xB7, 0x4D),
		Disabled:    graphics.RGB(0x55, 0x55, 0x55),
		Debug:       graphics.RGB(0x00, 0xFF, 0xFF),
		Success:     graphics.RGB(0x4F, 0x71, 0x4B),
		Warning:     graphics.RGB(0x80, 0x7E, 0x53),
	}
	return s
}

// Clone returns an independent copy of the style.
func (s *Style) Clone() *Style {
	if s == nil {
		return Default()
	}
	c := *s
	return &c
}

// Text returns a text style in the regular font.
func (s *Style) Text(c graphics.Color) graphics.TextStyle {
	return graphics.TextStyle{Color: c, Font: s.Font}
}

// BoldText returns a text style in the bold font, falling back to the regular one.
func (s *Style) BoldText(c graphics.Color) graphics.TextStyle {
	font := s.FontBold
	if font == "" {
		font = s.Font
	}
	return graphics.TextStyle{Color: c, Font: font}
}

// Fingerprint hashes every field that affects layout or drawing. Two styles
// with the same fingerprint render identically.
func (s *Style) Fingerprint() uint64 {
	if s == nil {
		return 0
	}
	h := xxhash.New()
	h.WriteString(s.Version)
	h.Write([]byte{0})
	h.WriteString(s.Name)
	h.Write([]byte{0})
	h.WriteString(string(s.Brightness))
	h.Write([]byte{0})
	h.WriteString(s.Font)
	h.Write([]byte{0})
	h.WriteString(s.FontBold)
	h.Write([]byte{0})

	p := s.Palette
	for _, c := range []graphics.Color{
		p.Background, p.Background2, p.Background3,
		p.Foreground, p.Foreground2, p.Foreground3,
		p.Accent, p.Border, p.Focus, p.Disabled, p.Debug,
		p.Success, p.Warning,
	} {
		h.Write(u64bytes(uint64(c)))
	}
	for _, v := range []float64{s.Spacing.Padding, s.Spacing.Gap, s.Spacing.BorderWidth, s.Spacing.FocusWidth} {
		h.Write(u64bytes(math.Float64bits(v)))
	}
	return h.Sum64()
}

func u64bytes(v uint64) []byte {
	return []byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
	}
}
