package graphics

// PaintStyle selects whether a shape is filled or outlined.
type PaintStyle int

const (
	// PaintStyleFill fills the interior of the shape.
	PaintStyleFill PaintStyle = iota
	// PaintStyleStroke outlines the shape using StrokeWidth.
	PaintStyleStroke
)

func (s PaintStyle) String() string {
	if s == PaintStyleStroke {
		return "stroke"
	}
	return "fill"
}

// Paint describes how a primitive is drawn.
type Paint struct {
	Color       Color
	Style       PaintStyle
	StrokeWidth float64
}

// FillPaint returns a fill paint of the given color.
func FillPaint(c Color) Paint {
	return Paint{Color: c, Style: PaintStyleFill}
}

// StrokePaint returns a stroke paint of the given color and width.
func StrokePaint(c Color, width float64) Paint {
	return Paint{Color: c, Style: PaintStyleStroke, StrokeWidth: width}
}

// Surface is the drawable target consumed by the render pass.
//
// Coordinates are absolute. Any call may fail (for example on a bus error in a
// display driver); the render pass stops at the first failure and returns it.
type Surface interface {
	// DrawLine draws a line segment.
	DrawLine(from, to Offset, paint Paint) error

	// DrawRect fills or outlines a rectangle depending on paint.Style.
	DrawRect(rect Rect, paint Paint) error

	// DrawCircle fills or outlines a circle depending on paint.Style.
	DrawCircle(center Offset, radius float64, paint Paint) error

	// DrawText draws a single- or multi-line string with its top-left corner at origin.
	DrawText(text string, origin Offset, style TextStyle) error
}
