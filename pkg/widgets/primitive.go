package widgets

import (
	"fmt"
	"math"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

// Shape selects what a Primitive draws.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
	// ShapeLine runs from the top-left to the bottom-right corner.
	ShapeLine
)

// String returns a human-readable representation of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	case ShapeLine:
		return "line"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Primitive draws a single shape of a fixed preferred size in a palette role.
// Outlines use the style border width, at least one pixel.
type Primitive struct {
	core.Node
	Shape  Shape
	Filled bool
	Role   ColorRole
	Width  float64
	Height float64
}

// NewPrimitive creates an outlined shape in the foreground color.
func NewPrimitive(shape Shape, width, height float64) *Primitive {
	p := &Primitive{Shape: shape, Width: max(width, 0), Height: max(height, 0)}
	p.SetSelf(p)
	return p
}

// Measure implements core.Widget.
func (p *Primitive) Measure(c layout.Constraints) graphics.Size {
	return c.Constrain(graphics.Size{Width: p.Width, Height: p.Height})
}

// Draw implements core.Widget.
func (p *Primitive) Draw(s graphics.Surface, style *theme.Style) error {
	rect := p.Rect()
	if rect.IsEmpty() {
		return nil
	}
	color := p.Role.Color(style)
	paint := graphics.StrokePaint(color, max(style.Spacing.BorderWidth, 1))
	if p.Filled {
		paint = graphics.FillPaint(color)
	}
	switch p.Shape {
	case ShapeCircle:
		return s.DrawCircle(rect.Center(), math.Min(rect.Width(), rect.Height())/2, paint)
	case ShapeLine:
		return s.DrawLine(
			graphics.Offset{X: rect.Left, Y: rect.Top},
			graphics.Offset{X: rect.Right, Y: rect.Bottom},
			graphics.StrokePaint(color, max(style.Spacing.BorderWidth, 1)),
		)
	default:
		return s.DrawRect(rect, paint)
	}
}
