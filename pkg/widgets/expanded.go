package widgets

import (
	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
)

// Expanded makes its child fill the remaining space along the main axis of a
// [Flex].
//
// After the other children are measured, remaining space is distributed among
// Expanded children proportionally to their Flex factor. The default Flex is
// 1; set higher values to allocate more space to specific children.
//
//	NewRow(
//	    NewLabel("Name"),
//	    NewExpanded(2, panelA), // gets 2/3 of what is left
//	    NewExpanded(1, panelB), // gets 1/3
//	)
type Expanded struct {
	core.Node
	Flex int
}

// NewExpanded wraps child with the given flex factor.
func NewExpanded(flex int, child core.Widget) *Expanded {
	e := &Expanded{Flex: flex}
	e.SetSelf(e)
	mustAppend(&e.Node, []core.Widget{child})
	return e
}

// FlexFactor implements layout.FlexChild, defaulting to 1.
func (e *Expanded) FlexFactor() int {
	if e.Flex <= 0 {
		return 1
	}
	return e.Flex
}

// Measure fills the tight allocation given by the parent flex.
func (e *Expanded) Measure(c layout.Constraints) graphics.Size {
	size := e.Node.Measure(c)
	return c.Constrain(graphics.Size{Width: max(size.Width, c.MinWidth), Height: max(size.Height, c.MinHeight)})
}

// Filler consumes the available space along the selected axes. Inside a
// [Flex] it behaves like an empty [Expanded] with factor 1, pushing its
// siblings apart.
type Filler struct {
	core.Node
	Horizontal bool
	Vertical   bool
}

// NewFiller creates a filler expanding along both axes.
func NewFiller() *Filler {
	f := &Filler{Horizontal: true, Vertical: true}
	f.SetSelf(f)
	return f
}

// FlexFactor implements layout.FlexChild.
func (f *Filler) FlexFactor() int {
	return 1
}

// Measure returns the largest bounded extent on each selected axis.
func (f *Filler) Measure(c layout.Constraints) graphics.Size {
	f.Node.Measure(c)
	biggest := c.Biggest()
	size := c.Smallest()
	if f.Horizontal {
		size.Width = biggest.Width
	}
	if f.Vertical {
		size.Height = biggest.Height
	}
	return size
}
