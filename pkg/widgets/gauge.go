package widgets

import (
	"fmt"
	"math"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

// Gauge shows a value in [0, 1] as a horizontal bar with an optional
// percentage label.
type Gauge struct {
	core.Node
	Value     float64
	ShowLabel bool
	Width     float64
	Height    float64
}

// NewGauge creates a gauge of the preferred size.
func NewGauge(value, width, height float64) *Gauge {
	g := &Gauge{Width: width, Height: height}
	g.SetSelf(g)
	g.SetValue(value)
	return g
}

// SetValue clamps v into [0, 1]. NaN reads as zero.
func (g *Gauge) SetValue(v float64) {
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Max(0, math.Min(1, v))
	if v == g.Value {
		return
	}
	g.Value = v
	g.MarkNeedsPaint()
}

// Label returns the percentage text.
func (g *Gauge) Label() string {
	return fmt.Sprintf("%d%%", int(math.Round(g.Value*100)))
}

// Measure implements core.Widget.
func (g *Gauge) Measure(c layout.Constraints) graphics.Size {
	size := graphics.Size{Width: g.Width, Height: g.Height}
	if g.ShowLabel {
		size.Height = max(size.Height, measureText(&g.Node, "100%", false).Height)
	}
	return c.Constrain(size)
}

// Draw implements core.Widget.
func (g *Gauge) Draw(s graphics.Surface, style *theme.Style) error {
	rect := g.Rect()
	if rect.IsEmpty() {
		return nil
	}
	if err := drawFrame(s, &g.Node, style, style.Palette.Background2); err != nil {
		return err
	}
	bar := rect
	bar.Right = rect.Left + rect.Width()*g.Value
	if !bar.IsEmpty() {
		if err := s.DrawRect(bar, graphics.FillPaint(style.Palette.Accent)); err != nil {
			return err
		}
	}
	if !g.ShowLabel {
		return nil
	}
	return drawCenteredText(s, g.Label(), rect, style.Text(style.Palette.Foreground))
}
