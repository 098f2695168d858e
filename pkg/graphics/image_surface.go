package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ErrNonFinite is returned for drawing calls with NaN or infinite coordinates.
var ErrNonFinite = errors.New("graphics: non-finite coordinates")

// pixelLimit bounds every coordinate converted to whole pixels.
const pixelLimit = 1 << 24

// ImageSurface rasterises drawing calls into an in-memory RGBA image.
// Coordinates are rounded to whole pixels; drawing outside the image is clipped.
type ImageSurface struct {
	img *image.RGBA
}

var _ Surface = (*ImageSurface)(nil)

// NewImageSurface allocates a transparent surface of the given pixel size.
func NewImageSurface(width, height int) *ImageSurface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Image returns the backing image.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Clear replaces every pixel with c.
func (s *ImageSurface) Clear(c Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *ImageSurface) DrawRect(rect Rect, paint Paint) error {
	if !finite(rect.Left, rect.Top, rect.Right, rect.Bottom, paint.StrokeWidth) {
		return fmt.Errorf("draw rect %v: %w", rect, ErrNonFinite)
	}
	if paint.Color.IsTransparent() {
		return nil
	}
	src := image.NewUniform(paint.Color)
	if paint.Style == PaintStyleFill {
		s.fill(pixelRect(rect), src)
		return nil
	}
	w := strokeWidth(paint)
	outer := pixelRect(rect)
	s.fill(image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, outer.Min.Y+w), src)
	s.fill(image.Rect(outer.Min.X, outer.Max.Y-w, outer.Max.X, outer.Max.Y), src)
	s.fill(image.Rect(outer.Min.X, outer.Min.Y+w, outer.Min.X+w, outer.Max.Y-w), src)
	s.fill(image.Rect(outer.Max.X-w, outer.Min.Y+w, outer.Max.X, outer.Max.Y-w), src)
	return nil
}

func (s *ImageSurface) DrawLine(from, to Offset, paint Paint) error {
	if !finite(from.X, from.Y, to.X, to.Y, paint.StrokeWidth) {
		return fmt.Errorf("draw line: %w", ErrNonFinite)
	}
	if paint.Color.IsTransparent() {
		return nil
	}
	src := image.NewUniform(paint.Color)
	b := s.img.Bounds()
	w := min(strokeWidth(paint), b.Dx()+b.Dy()+1)
	half := w / 2

	pad := float64(w + 1)
	from, to, ok := clipLine(from, to, Rect{
		Left: float64(b.Min.X) - pad, Top: float64(b.Min.Y) - pad,
		Right: float64(b.Max.X) + pad, Bottom: float64(b.Max.Y) + pad,
	})
	if !ok {
		return nil
	}

	x0, y0 := toPixel(from.X), toPixel(from.Y)
	x1, y1 := toPixel(to.X), toPixel(to.Y)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		s.fill(image.Rect(x0-half, y0-half, x0-half+w, y0-half+w), src)
		if x0 == x1 && y0 == y1 {
			return nil
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (s *ImageSurface) DrawCircle(center Offset, radius float64, paint Paint) error {
	if !finite(center.X, center.Y, radius, paint.StrokeWidth) {
		return fmt.Errorf("draw circle: %w", ErrNonFinite)
	}
	if paint.Color.IsTransparent() || radius <= 0 {
		return nil
	}
	src := image.NewUniform(paint.Color)
	inner := -1.0
	if paint.Style == PaintStyleStroke {
		inner = radius - float64(strokeWidth(paint))
	}
	bounds := pixelRect(Rect{
		Left: center.X - radius, Top: center.Y - radius,
		Right: center.X + radius, Bottom: center.Y + radius,
	}).Intersect(s.img.Bounds())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-center.X, float64(y)+0.5-center.Y)
			if d <= radius && d > inner {
				s.fill(image.Rect(x, y, x+1, y+1), src)
			}
		}
	}
	return nil
}

// DrawText draws text with origin at the top-left of the first line.
func (s *ImageSurface) DrawText(text string, origin Offset, style TextStyle) error {
	if !finite(origin.X, origin.Y) {
		return fmt.Errorf("draw text: %w", ErrNonFinite)
	}
	face, err := FontFace(style.Font)
	if err != nil {
		return fmt.Errorf("draw text: %w", err)
	}
	metrics := face.Metrics()
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(style.Color),
		Face: face,
	}
	y := fixed.I(toPixel(origin.Y)) + metrics.Ascent
	x := fixed.I(toPixel(origin.X))
	for _, line := range strings.Split(text, "\n") {
		d.Dot = fixed.Point26_6{X: x, Y: y}
		d.DrawString(line)
		y += metrics.Height
	}
	return nil
}

func (s *ImageSurface) fill(r image.Rectangle, src image.Image) {
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, src, image.Point{}, draw.Over)
}

func pixelRect(r Rect) image.Rectangle {
	return image.Rect(toPixel(r.Left), toPixel(r.Top), toPixel(r.Right), toPixel(r.Bottom))
}

// toPixel rounds v to a whole pixel clamped to ±pixelLimit.
func toPixel(v float64) int {
	return int(math.Max(-pixelLimit, math.Min(pixelLimit, math.Round(v))))
}

func strokeWidth(p Paint) int {
	w := toPixel(p.StrokeWidth)
	if w < 1 {
		return 1
	}
	return w
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// clipLine clips the segment from-to to r (Liang-Barsky). It reports false
// when no part of the segment lies inside r.
func clipLine(from, to Offset, r Rect) (Offset, Offset, bool) {
	dx, dy := to.X-from.X, to.Y-from.Y
	if !finite(dx, dy) {
		return from, to, false
	}
	t0, t1 := 0.0, 1.0
	for _, edge := range [4][2]float64{
		{-dx, from.X - r.Left},
		{dx, r.Right - from.X},
		{-dy, from.Y - r.Top},
		{dy, r.Bottom - from.Y},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return from, to, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return from, to, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return from, to, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return Offset{X: from.X + t0*dx, Y: from.Y + t0*dy},
		Offset{X: from.X + t1*dx, Y: from.Y + t1*dy}, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
