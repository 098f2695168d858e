package testbed

import (
	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

// LayoutBox is a fixed-size colored box for layout testing.
type LayoutBox struct {
	core.Node
	Width  float64
	Height float64
	Color  graphics.Color
}

// NewLayoutBox creates a box of the given size and fill color.
func NewLayoutBox(width, height float64, color graphics.Color) *LayoutBox {
	b := &LayoutBox{Width: width, Height: height, Color: color}
	b.SetSelf(b)
	return b
}

func (b *LayoutBox) Measure(c layout.Constraints) graphics.Size {
	return c.Constrain(graphics.Size{Width: b.Width, Height: b.Height})
}

func (b *LayoutBox) Draw(s graphics.Surface, _ *theme.Style) error {
	return s.DrawRect(b.Rect(), graphics.FillPaint(b.Color))
}
