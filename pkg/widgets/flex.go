package widgets

import (
	"fmt"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
)

// MainAxisSize controls how much space the flex container takes along its main axis.
type MainAxisSize int

const (
	// MainAxisSizeMin sizes the container to fit its children (shrink-wrap).
	MainAxisSizeMin MainAxisSize = iota
	// MainAxisSizeMax expands to fill all available space along the main axis.
	MainAxisSizeMax
)

// String returns a human-readable representation of the main axis size.
func (s MainAxisSize) String() string {
	switch s {
	case MainAxisSizeMin:
		return "min"
	case MainAxisSizeMax:
		return "max"
	default:
		return fmt.Sprintf("MainAxisSize(%d)", int(s))
	}
}

// Flex stacks its children along an axis without wrapping.
//
// # Sizing Behavior
//
// Children are measured in order with loose constraints. The main-axis space
// still available shrinks by each child's extent and by Gap, so a later child
// never gets more room than is left. Children that implement
// layout.FlexChild ([Expanded], [Filler]) are measured last and share the
// remaining space in proportion to their factors; their presence makes the
// container fill its main axis as if MainAxisSize were MainAxisSizeMax.
//
// # Alignment
//
// MainAxisAlignment places the run when there is free space (Start, End,
// Center, SpaceBetween). CrossAxisAlignment places each child across the axis;
// Stretch makes every child as thick as the container.
//
// Use [NewRow] or [NewColumn], or the RowOf/ColumnOf helpers.
type Flex struct {
	core.Node
	Axis               layout.Axis
	MainAxisAlignment  layout.MainAxisAlignment
	CrossAxisAlignment layout.CrossAxisAlignment
	MainAxisSize       MainAxisSize
	// Gap is added between adjacent children.
	Gap float64
}

// NewFlex creates a flex container along axis holding children.
func NewFlex(axis layout.Axis, children ...core.Widget) *Flex {
	f := &Flex{Axis: axis}
	f.SetSelf(f)
	mustAppend(&f.Node, children)
	return f
}

// NewRow creates a horizontal flex container.
func NewRow(children ...core.Widget) *Flex {
	return NewFlex(layout.AxisHorizontal, children...)
}

// NewColumn creates a vertical flex container.
func NewColumn(children ...core.Widget) *Flex {
	return NewFlex(layout.AxisVertical, children...)
}

// RowOf creates a horizontal layout with the specified alignments and sizing behavior.
func RowOf(alignment layout.MainAxisAlignment, crossAlignment layout.CrossAxisAlignment, size MainAxisSize, children ...core.Widget) *Flex {
	f := NewRow(children...)
	f.MainAxisAlignment, f.CrossAxisAlignment, f.MainAxisSize = alignment, crossAlignment, size
	return f
}

// ColumnOf creates a vertical layout with the specified alignments and sizing behavior.
func ColumnOf(alignment layout.MainAxisAlignment, crossAlignment layout.CrossAxisAlignment, size MainAxisSize, children ...core.Widget) *Flex {
	f := NewColumn(children...)
	f.MainAxisAlignment, f.CrossAxisAlignment, f.MainAxisSize = alignment, crossAlignment, size
	return f
}

// WithGap sets the gap between children.
func (f *Flex) WithGap(gap float64) *Flex {
	f.Gap = gap
	f.MarkNeedsLayout()
	return f
}

// WithAlignment sets both alignments.
func (f *Flex) WithAlignment(main layout.MainAxisAlignment, cross layout.CrossAxisAlignment) *Flex {
	f.MainAxisAlignment, f.CrossAxisAlignment = main, cross
	f.MarkNeedsLayout()
	return f
}

func (f *Flex) gaps() float64 {
	n := f.ChildCount()
	if n < 2 || f.Gap <= 0 {
		return 0
	}
	return f.Gap * float64(n-1)
}

func flexFactor(w core.Widget) int {
	if fc, ok := w.(layout.FlexChild); ok {
		return max(fc.FlexFactor(), 0)
	}
	return 0
}

// Measure implements core.Widget.
func (f *Flex) Measure(c layout.Constraints) graphics.Size {
	axis := f.Axis
	maxMain := axis.MaxMain(c)
	maxCross := axis.MaxCross(c)
	minCross := 0.0
	if f.CrossAxisAlignment == layout.CrossAxisAlignmentStretch && maxCross < layout.Unbounded {
		minCross = maxCross
	}

	remaining := maxMain
	if remaining < layout.Unbounded {
		remaining = max(remaining-f.gaps(), 0)
	}
	used, cross := 0.0, 0.0
	var weights []float64
	var flexChildren []core.Widget
	for _, child := range f.Children() {
		if factor := flexFactor(child); factor > 0 {
			flexChildren = append(flexChildren, child)
			weights = append(weights, float64(factor))
			continue
		}
		size := f.MeasureChild(child, axis.Constraints(0, remaining, minCross, maxCross))
		used += axis.Main(size)
		cross = max(cross, axis.Cross(size))
		if remaining < layout.Unbounded {
			remaining = max(remaining-axis.Main(size), 0)
		}
	}

	bounded := maxMain < layout.Unbounded
	var allocs []float64
	if bounded {
		allocs = layout.Distribute(remaining, weights)
	} else {
		allocs = make([]float64, len(flexChildren))
	}
	for i, child := range flexChildren {
		size := f.MeasureChild(child, axis.Constraints(allocs[i], allocs[i], minCross, maxCross))
		used += axis.Main(size)
		cross = max(cross, axis.Cross(size))
	}

	main := used + f.gaps()
	if bounded && (f.MainAxisSize == MainAxisSizeMax || len(flexChildren) > 0) {
		main = maxMain
	}
	return c.Constrain(axis.Size(main, cross))
}

// Arrange implements core.Widget.
func (f *Flex) Arrange(rect graphics.Rect) {
	f.SetRect(rect)
	children := f.Children()
	if len(children) == 0 {
		return
	}
	axis := f.Axis
	mainExtent := axis.Main(rect.Size())
	crossExtent := axis.Cross(rect.Size())

	extents := make([]float64, len(children))
	var weights []float64
	var flexIdx []int
	fixed := 0.0
	for i, child := range children {
		if factor := flexFactor(child); factor > 0 {
			flexIdx = append(flexIdx, i)
			weights = append(weights, float64(factor))
			continue
		}
		extents[i] = axis.Main(child.Base().MeasuredSize())
		fixed += extents[i]
	}
	gap := max(f.Gap, 0)
	if len(flexIdx) > 0 {
		allocs := layout.Distribute(max(mainExtent-fixed-f.gaps(), 0), weights)
		for j, i := range flexIdx {
			extents[i] = allocs[j]
		}
	}

	used := f.gaps()
	for _, e := range extents {
		used += e
	}
	spacing, offset := f.MainAxisAlignment.Spacing(mainExtent-used, len(children))

	origin := rect.TopLeft()
	cursor := offset
	for i, child := range children {
		childCross := axis.Cross(child.Base().MeasuredSize())
		if f.CrossAxisAlignment == layout.CrossAxisAlignmentStretch {
			childCross = crossExtent
		}
		crossOffset := f.CrossAxisAlignment.Offset(crossExtent, childCross)
		at := origin.Add(axis.Offset(cursor, crossOffset))
		f.ArrangeChild(child, graphics.RectFromOffsetSize(at, axis.Size(extents[i], childCross)))
		cursor += extents[i] + gap + spacing
	}
}
