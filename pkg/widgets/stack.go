package widgets

import (
	"fmt"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
)

// StackFit determines how children are sized within a Stack.
type StackFit int

const (
	// StackFitLoose allows children to size themselves.
	StackFitLoose StackFit = iota
	// StackFitExpand forces children to fill the stack.
	StackFitExpand
)

// String returns a human-readable representation of the stack fit.
func (f StackFit) String() string {
	switch f {
	case StackFitLoose:
		return "loose"
	case StackFitExpand:
		return "expand"
	default:
		return fmt.Sprintf("StackFit(%d)", int(f))
	}
}

// Stack overlays children on top of each other.
//
// Children are drawn in order, with the first child at the bottom and the
// last child on top, which is also the child hit first.
//
// With StackFitLoose (default) the Stack sizes itself to fit the largest
// child and positions each child by Alignment. With StackFitExpand every child
// fills the stack.
type Stack struct {
	core.Node
	Alignment layout.Alignment
	Fit       StackFit
}

// NewStack creates a top-left aligned stack.
func NewStack(children ...core.Widget) *Stack {
	s := &Stack{Alignment: layout.AlignTopLeft}
	s.SetSelf(s)
	mustAppend(&s.Node, children)
	return s
}

// WithAlignment sets the alignment of loose children.
func (s *Stack) WithAlignment(a layout.Alignment) *Stack {
	s.Alignment = a
	s.MarkNeedsLayout()
	return s
}

// WithFit sets the fit mode.
func (s *Stack) WithFit(fit StackFit) *Stack {
	s.Fit = fit
	s.MarkNeedsLayout()
	return s
}

// Measure implements core.Widget.
func (s *Stack) Measure(c layout.Constraints) graphics.Size {
	var size graphics.Size
	childConstraints := c.Loosen()
	if s.Fit == StackFitExpand {
		size = c.Biggest()
		childConstraints = layout.Tight(size)
	}
	for _, child := range s.Children() {
		cs := s.MeasureChild(child, childConstraints)
		size.Width = max(size.Width, cs.Width)
		size.Height = max(size.Height, cs.Height)
	}
	return c.Constrain(size)
}

// Arrange implements core.Widget.
func (s *Stack) Arrange(rect graphics.Rect) {
	s.SetRect(rect)
	for _, child := range s.Children() {
		if s.Fit == StackFitExpand {
			s.ArrangeChild(child, rect)
			continue
		}
		s.ArrangeChild(child, s.Alignment.Inscribe(child.Base().MeasuredSize(), rect))
	}
}
