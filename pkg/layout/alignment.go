package layout

import (
	"fmt"

	"github.com/go-drift/ember/pkg/graphics"
)

// Axis represents the layout direction.
// AxisHorizontal is the zero value.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Main returns the extent of size along the axis.
func (a Axis) Main(size graphics.Size) float64 {
	if a == AxisHorizontal {
		return size.Width
	}
	return size.Height
}

// Cross returns the extent of size across the axis.
func (a Axis) Cross(size graphics.Size) float64 {
	if a == AxisHorizontal {
		return size.Height
	}
	return size.Width
}

// Size builds a size from main and cross extents.
func (a Axis) Size(main, cross float64) graphics.Size {
	if a == AxisHorizontal {
		return graphics.Size{Width: main, Height: cross}
	}
	return graphics.Size{Width: cross, Height: main}
}

// Offset builds an offset from main and cross positions.
func (a Axis) Offset(main, cross float64) graphics.Offset {
	if a == AxisHorizontal {
		return graphics.Offset{X: main, Y: cross}
	}
	return graphics.Offset{X: cross, Y: main}
}

// Constraints builds constraints from main and cross bounds.
func (a Axis) Constraints(minMain, maxMain, minCross, maxCross float64) Constraints {
	if a == AxisHorizontal {
		return Constraints{MinWidth: minMain, MaxWidth: maxMain, MinHeight: minCross, MaxHeight: maxCross}
	}
	return Constraints{MinWidth: minCross, MaxWidth: maxCross, MinHeight: minMain, MaxHeight: maxMain}
}

// MaxMain returns the maximum main extent allowed by c.
func (a Axis) MaxMain(c Constraints) float64 {
	if a == AxisHorizontal {
		return c.MaxWidth
	}
	return c.MaxHeight
}

// MaxCross returns the maximum cross extent allowed by c.
func (a Axis) MaxCross(c Constraints) float64 {
	if a == AxisHorizontal {
		return c.MaxHeight
	}
	return c.MaxWidth
}

// MainAxisAlignment controls how children are positioned along the main axis.
type MainAxisAlignment int

const (
	// MainAxisAlignmentStart places children at the start (left for rows, top for columns).
	MainAxisAlignmentStart MainAxisAlignment = iota
	// MainAxisAlignmentEnd places children at the end.
	MainAxisAlignmentEnd
	// MainAxisAlignmentCenter centers children along the main axis.
	MainAxisAlignmentCenter
	// MainAxisAlignmentSpaceBetween distributes free space evenly between children.
	// No space before the first or after the last child.
	MainAxisAlignmentSpaceBetween
)

// String returns a human-readable representation of the main axis alignment.
func (a MainAxisAlignment) String() string {
	switch a {
	case MainAxisAlignmentStart:
		return "start"
	case MainAxisAlignmentEnd:
		return "end"
	case MainAxisAlignmentCenter:
		return "center"
	case MainAxisAlignmentSpaceBetween:
		return "space_between"
	default:
		return fmt.Sprintf("MainAxisAlignment(%d)", int(a))
	}
}

// Spacing returns the gap to add between n children and the offset of the
// first one when freeSpace is left over on the main axis.
func (a MainAxisAlignment) Spacing(freeSpace float64, n int) (spacing, offset float64) {
	if freeSpace <= 0 {
		return 0, 0
	}
	switch a {
	case MainAxisAlignmentEnd:
		offset = freeSpace
	case MainAxisAlignmentCenter:
		offset = freeSpace * 0.5
	case MainAxisAlignmentSpaceBetween:
		if n > 1 {
			spacing = freeSpace / float64(n-1)
		}
	}
	return spacing, offset
}

// CrossAxisAlignment controls how children are positioned along the cross axis.
type CrossAxisAlignment int

const (
	// CrossAxisAlignmentStart places children at the start of the cross axis.
	CrossAxisAlignmentStart CrossAxisAlignment = iota
	// CrossAxisAlignmentEnd places children at the end of the cross axis.
	CrossAxisAlignmentEnd
	// CrossAxisAlignmentCenter centers children along the cross axis.
	CrossAxisAlignmentCenter
	// CrossAxisAlignmentStretch stretches children to fill the cross axis.
	CrossAxisAlignmentStretch
)

// String returns a human-readable representation of the cross axis alignment.
func (a CrossAxisAlignment) String() string {
	switch a {
	case CrossAxisAlignmentStart:
		return "start"
	case CrossAxisAlignmentEnd:
		return "end"
	case CrossAxisAlignmentCenter:
		return "center"
	case CrossAxisAlignmentStretch:
		return "stretch"
	default:
		return fmt.Sprintf("CrossAxisAlignment(%d)", int(a))
	}
}

// Offset returns the cross-axis position of a child of extent child inside
// extent available.
func (a CrossAxisAlignment) Offset(available, child float64) float64 {
	free := available - child
	if free <= 0 {
		return 0
	}
	switch a {
	case CrossAxisAlignmentEnd:
		return free
	case CrossAxisAlignmentCenter:
		return free * 0.5
	default:
		return 0
	}
}

// Alignment positions a box inside a larger one. X and Y range from -1
// (left/top) to 1 (right/bottom); 0 is the center.
type Alignment struct {
	X float64
	Y float64
}

var (
	AlignTopLeft      = Alignment{X: -1, Y: -1}
	AlignTopCenter    = Alignment{X: 0, Y: -1}
	AlignTopRight     = Alignment{X: 1, Y: -1}
	AlignCenterLeft   = Alignment{X: -1, Y: 0}
	AlignCenter       = Alignment{X: 0, Y: 0}
	AlignCenterRight  = Alignment{X: 1, Y: 0}
	AlignBottomLeft   = Alignment{X: -1, Y: 1}
	AlignBottomCenter = Alignment{X: 0, Y: 1}
	AlignBottomRight  = Alignment{X: 1, Y: 1}
)

// Inscribe places a box of size inside rect according to the alignment.
// The size is clamped to the rect first.
func (a Alignment) Inscribe(size graphics.Size, rect graphics.Rect) graphics.Rect {
	size = size.NonNegative()
	w := min(size.Width, rect.Width())
	h := min(size.Height, rect.Height())
	x := rect.Left + (rect.Width()-w)*(a.X+1)/2
	y := rect.Top + (rect.Height()-h)*(a.Y+1)/2
	return graphics.RectFromLTWH(x, y, w, h)
}
