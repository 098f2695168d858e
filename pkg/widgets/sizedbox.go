package widgets

import (
	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
)

// SizedBox has a fixed preferred size. A negative Width or Height leaves that
// axis to the child. Children are forced to the box's size.
type SizedBox struct {
	core.Node
	Width  float64
	Height float64
}

// NewSizedBox creates a box of the given size around an optional child.
func NewSizedBox(width, height float64, child core.Widget) *SizedBox {
	b := &SizedBox{Width: width, Height: height}
	b.SetSelf(b)
	mustAppend(&b.Node, []core.Widget{child})
	return b
}

// HSpace returns an empty box of the given width for spacing in a row.
func HSpace(width float64) *SizedBox {
	return NewSizedBox(width, 0, nil)
}

// VSpace returns an empty box of the given height for spacing in a column.
func VSpace(height float64) *SizedBox {
	return NewSizedBox(0, height, nil)
}

// Measure implements core.Widget.
func (b *SizedBox) Measure(c layout.Constraints) graphics.Size {
	inner := c
	if b.Width >= 0 {
		w := c.Constrain(graphics.Size{Width: b.Width}).Width
		inner.MinWidth, inner.MaxWidth = w, w
	}
	if b.Height >= 0 {
		h := c.Constrain(graphics.Size{Height: b.Height}).Height
		inner.MinHeight, inner.MaxHeight = h, h
	}
	size := b.Node.Measure(inner)
	return inner.Constrain(size)
}
