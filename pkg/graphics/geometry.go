package graphics

import (
	"fmt"
	"math"
)

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Add returns the sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the difference of two offsets.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

func (o Offset) String() string {
	return fmt.Sprintf("(%g,%g)", o.X, o.Y)
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// NonNegative returns the size with negative or NaN dimensions clamped to zero.
func (s Size) NonNegative() Size {
	return Size{Width: nonNegative(s.Width), Height: nonNegative(s.Height)}
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
//
// Containment is half-open: a rect covers [Left, Right) x [Top, Bottom), so two
// rects sharing an edge never both contain a point on that edge.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
// Negative dimensions collapse to zero.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + nonNegative(width),
		Bottom: top + nonNegative(height),
	}
}

// RectFromOffsetSize constructs a Rect at origin with the given size.
func RectFromOffsetSize(origin Offset, size Size) Rect {
	return RectFromLTWH(origin.X, origin.Y, size.Width, size.Height)
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// TopLeft returns the origin of the rectangle.
func (r Rect) TopLeft() Offset {
	return Offset{X: r.Left, Y: r.Top}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Offset {
	return Offset{
		X: (r.Left + r.Right) * 0.5,
		Y: (r.Top + r.Bottom) * 0.5,
	}
}

// IsEmpty reports whether the rect covers no area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains reports whether the point lies inside the half-open rect.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// ContainsRect reports whether other lies entirely within r.
// An empty rect positioned inside r's closed bounds is contained.
func (r Rect) ContainsRect(other Rect) bool {
	return other.Left >= r.Left && other.Top >= r.Top &&
		other.Right <= r.Right && other.Bottom <= r.Bottom
}

// Translate returns the rect moved by the given offset.
func (r Rect) Translate(d Offset) Rect {
	return Rect{Left: r.Left + d.X, Top: r.Top + d.Y, Right: r.Right + d.X, Bottom: r.Bottom + d.Y}
}

// Intersect returns the intersection of two rectangles.
// When they do not overlap the result is a zero-size rect clamped into r,
// so it still satisfies r.ContainsRect.
func (r Rect) Intersect(other Rect) Rect {
	left := clamp(math.Max(r.Left, other.Left), r.Left, r.Right)
	top := clamp(math.Max(r.Top, other.Top), r.Top, r.Bottom)
	right := clamp(math.Min(r.Right, other.Right), r.Left, r.Right)
	bottom := clamp(math.Min(r.Bottom, other.Bottom), r.Top, r.Bottom)
	if right < left {
		right = left
	}
	if bottom < top {
		bottom = top
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Deflate shrinks the rect by the given insets. Over-deflation yields a
// zero-size rect anchored inside the original.
func (r Rect) Deflate(in EdgeInsets) Rect {
	left := math.Min(r.Left+in.Left, r.Right)
	top := math.Min(r.Top+in.Top, r.Bottom)
	right := math.Max(r.Right-in.Right, left)
	bottom := math.Max(r.Bottom-in.Bottom, top)
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.Left, r.Top, r.Width(), r.Height())
}

// EdgeInsets represents padding or margin on four sides.
type EdgeInsets struct {
	Left, Top, Right, Bottom float64
}

// EdgeInsetsAll returns insets with the same value on every side.
func EdgeInsetsAll(v float64) EdgeInsets {
	return EdgeInsets{Left: v, Top: v, Right: v, Bottom: v}
}

// EdgeInsetsSymmetric returns insets with separate horizontal and vertical values.
func EdgeInsetsSymmetric(horizontal, vertical float64) EdgeInsets {
	return EdgeInsets{Left: horizontal, Top: vertical, Right: horizontal, Bottom: vertical}
}

// Horizontal returns the sum of left and right insets.
func (e EdgeInsets) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns the sum of top and bottom insets.
func (e EdgeInsets) Vertical() float64 {
	return e.Top + e.Bottom
}

func nonNegative(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
