// Package layout holds the box-constraint model and the layout pipeline.
//
// Layout is two passes over the widget tree. Measure runs bottom-up: a parent
// offers each child Constraints and the child answers with its preferred size.
// Arrange runs top-down: each node receives its final rectangle and partitions
// it among its children. The Pipeline runs exactly one measure and one arrange
// per invalidation; widgets whose preferred size depends on the final geometry
// of their siblings are not supported.
package layout

import (
	"fmt"
	"math"

	"github.com/go-drift/ember/pkg/graphics"
)

// Unbounded is used as a maximum when a parent imposes no limit on an axis.
const Unbounded = math.MaxFloat64

// Constraints describe the sizes a parent allows a child to take.
type Constraints struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

// Tight returns constraints that allow exactly size.
func Tight(size graphics.Size) Constraints {
	size = size.NonNegative()
	return Constraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// Loose returns constraints that allow any size up to size.
func Loose(size graphics.Size) Constraints {
	size = size.NonNegative()
	return Constraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// Unconstrained returns constraints with no upper bound on either axis.
func Unconstrained() Constraints {
	return Constraints{MaxWidth: Unbounded, MaxHeight: Unbounded}
}

// Normalize returns the constraints with degenerate values resolved.
// Negative and NaN bounds become zero and a minimum larger than its maximum is
// lowered to the maximum.
func (c Constraints) Normalize() Constraints {
	c.MinWidth = sanitize(c.MinWidth)
	c.MaxWidth = sanitize(c.MaxWidth)
	c.MinHeight = sanitize(c.MinHeight)
	c.MaxHeight = sanitize(c.MaxHeight)
	if c.MinWidth > c.MaxWidth {
		c.MinWidth = c.MaxWidth
	}
	if c.MinHeight > c.MaxHeight {
		c.MinHeight = c.MaxHeight
	}
	return c
}

// Constrain clamps size into the constraints.
func (c Constraints) Constrain(size graphics.Size) graphics.Size {
	c = c.Normalize()
	return graphics.Size{
		Width:  clampAxis(size.Width, c.MinWidth, c.MaxWidth),
		Height: clampAxis(size.Height, c.MinHeight, c.MaxHeight),
	}
}

// Deflate shrinks both bounds by the insets, for a child inside padding.
func (c Constraints) Deflate(in graphics.EdgeInsets) Constraints {
	c = c.Normalize()
	h, v := in.Horizontal(), in.Vertical()
	return Constraints{
		MinWidth:  math.Max(0, c.MinWidth-h),
		MaxWidth:  shrink(c.MaxWidth, h),
		MinHeight: math.Max(0, c.MinHeight-v),
		MaxHeight: shrink(c.MaxHeight, v),
	}.Normalize()
}

// Loosen drops the minimums.
func (c Constraints) Loosen() Constraints {
	c = c.Normalize()
	c.MinWidth, c.MinHeight = 0, 0
	return c
}

// IsTight reports whether exactly one size satisfies the constraints.
func (c Constraints) IsTight() bool {
	c = c.Normalize()
	return c.MinWidth == c.MaxWidth && c.MinHeight == c.MaxHeight
}

// HasBoundedWidth reports whether MaxWidth is finite.
func (c Constraints) HasBoundedWidth() bool {
	return c.MaxWidth < Unbounded
}

// HasBoundedHeight reports whether MaxHeight is finite.
func (c Constraints) HasBoundedHeight() bool {
	return c.MaxHeight < Unbounded
}

// Biggest returns the largest size allowed. Unbounded axes fall back to the minimum.
func (c Constraints) Biggest() graphics.Size {
	c = c.Normalize()
	w, h := c.MaxWidth, c.MaxHeight
	if !c.HasBoundedWidth() {
		w = c.MinWidth
	}
	if !c.HasBoundedHeight() {
		h = c.MinHeight
	}
	return graphics.Size{Width: w, Height: h}
}

// Smallest returns the smallest size allowed.
func (c Constraints) Smallest() graphics.Size {
	c = c.Normalize()
	return graphics.Size{Width: c.MinWidth, Height: c.MinHeight}
}

func (c Constraints) String() string {
	return fmt.Sprintf("Constraints(w=%s, h=%s)", axisString(c.MinWidth, c.MaxWidth), axisString(c.MinHeight, c.MaxHeight))
}

func axisString(lo, hi float64) string {
	if hi >= Unbounded {
		return fmt.Sprintf("%g..inf", lo)
	}
	if lo == hi {
		return fmt.Sprintf("%g", lo)
	}
	return fmt.Sprintf("%g..%g", lo, hi)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if math.IsInf(v, 1) {
		return Unbounded
	}
	return v
}

func shrink(max, by float64) float64 {
	if max >= Unbounded {
		return Unbounded
	}
	return math.Max(0, max-by)
}

func clampAxis(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
