package graphics

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dboslee/lru"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
)

// Built-in bitmap font names. All of them are fixed-size faces suitable for
// small monochrome and low-resolution panels.
const (
	FontBasic           = "basic7x13"
	FontInconsolata     = "inconsolata8x16"
	FontInconsolataBold = "inconsolata-bold8x16"

	// DefaultFont is used when a TextStyle names no font.
	DefaultFont = FontBasic
)

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color Color
	Font  string
}

// TextMetrics describes a measured string.
type TextMetrics struct {
	Size       Size
	Ascent     float64
	LineHeight float64
	Lines      int
}

type measureKey struct {
	font string
	text string
}

var (
	fontMu sync.RWMutex
	fonts  = map[string]font.Face{
		FontBasic:           basicfont.Face7x13,
		FontInconsolata:     inconsolata.Regular8x16,
		FontInconsolataBold: inconsolata.Bold8x16,
	}

	measureMu    sync.Mutex
	measureCache = lru.New[measureKey, TextMetrics]()
)

// RegisterFont makes a face available under name. Faces must be safe for
// concurrent use; the bitmap faces from golang.org/x/image are.
func RegisterFont(name string, face font.Face) error {
	if name == "" {
		return fmt.Errorf("graphics: font name required")
	}
	if face == nil {
		return fmt.Errorf("graphics: nil face for font %q", name)
	}
	fontMu.Lock()
	fonts[name] = face
	fontMu.Unlock()

	// Cached metrics may belong to a face previously registered under name.
	measureMu.Lock()
	measureCache = lru.New[measureKey, TextMetrics]()
	measureMu.Unlock()
	return nil
}

// FontFace resolves a registered face. An empty name resolves DefaultFont.
func FontFace(name string) (font.Face, error) {
	if name == "" {
		name = DefaultFont
	}
	fontMu.RLock()
	face, ok := fonts[name]
	fontMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("graphics: unknown font %q", name)
	}
	return face, nil
}

// MeasureText measures text in the named font. Lines are separated by '\n'.
// Results are memoised in an LRU cache since widgets re-measure their labels
// on every layout pass.
func MeasureText(text, fontName string) (TextMetrics, error) {
	key := measureKey{font: fontName, text: text}
	measureMu.Lock()
	cached, ok := measureCache.Get(key)
	measureMu.Unlock()
	if ok {
		return cached, nil
	}

	face, err := FontFace(fontName)
	if err != nil {
		return TextMetrics{}, err
	}
	metrics := face.Metrics()
	lineHeight := float64(metrics.Height.Ceil())
	lines := strings.Split(text, "\n")
	width := 0.0
	for _, line := range lines {
		w := float64(font.MeasureString(face, line).Ceil())
		if w > width {
			width = w
		}
	}
	result := TextMetrics{
		Size:       Size{Width: width, Height: lineHeight * float64(len(lines))},
		Ascent:     float64(metrics.Ascent.Ceil()),
		LineHeight: lineHeight,
		Lines:      len(lines),
	}

	measureMu.Lock()
	measureCache.Set(key, result)
	measureMu.Unlock()
	return result, nil
}
