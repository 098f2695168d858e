// Package vector provides a graphics.Surface backed by github.com/tdewolff/canvas,
// used to export frames as PDF documents.
package vector

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-drift/ember/pkg/graphics"
)

// PixelMM is the default size of one surface pixel in millimetres (96 DPI).
const PixelMM = 25.4 / 96

const mmToPt = 72 / 25.4

var transparent = color.RGBA{}

// Surface records primitives onto a vector canvas. Coordinates are in device
// pixels with the origin at the top-left, as for every other surface.
type Surface struct {
	width, height float64
	pixel         float64

	canvas *canvas.Canvas
	ctx    *canvas.Context
	family *canvas.FontFamily
	faces  map[faceKey]*canvas.FontFace
}

type faceKey struct {
	size  float64
	color graphics.Color
}

// New returns a surface of width x height pixels, each PixelMM wide.
func New(width, height float64) (*Surface, error) {
	return NewWithPixelSize(width, height, PixelMM)
}

// NewWithPixelSize is like New with an explicit pixel size in millimetres.
func NewWithPixelSize(width, height, pixelMM float64) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("vector: invalid size %gx%g", width, height)
	}
	if pixelMM <= 0 {
		pixelMM = PixelMM
	}
	family := canvas.NewFontFamily("ember")
	if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("vector: load font: %w", err)
	}
	c := canvas.New(width*pixelMM, height*pixelMM)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	return &Surface{
		width:  width,
		height: height,
		pixel:  pixelMM,
		canvas: c,
		ctx:    ctx,
		family: family,
		faces:  map[faceKey]*canvas.FontFace{},
	}, nil
}

var _ graphics.Surface = (*Surface)(nil)

// Size returns the surface size in pixels.
func (s *Surface) Size() graphics.Size {
	return graphics.Size{Width: s.width, Height: s.height}
}

// DrawLine implements graphics.Surface.
func (s *Surface) DrawLine(from, to graphics.Offset, paint graphics.Paint) error {
	s.ctx.SetFillColor(transparent)
	s.ctx.SetStrokeColor(paint.Color)
	s.ctx.SetStrokeWidth(s.strokeWidth(paint))
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo((to.X-from.X)*s.pixel, (to.Y-from.Y)*s.pixel)
	s.ctx.DrawPath(from.X*s.pixel, from.Y*s.pixel, p)
	return nil
}

// DrawRect implements graphics.Surface.
func (s *Surface) DrawRect(rect graphics.Rect, paint graphics.Paint) error {
	if rect.IsEmpty() {
		return nil
	}
	s.setPaint(paint)
	s.ctx.DrawPath(rect.Left*s.pixel, rect.Top*s.pixel, canvas.Rectangle(rect.Width()*s.pixel, rect.Height()*s.pixel))
	return nil
}

// DrawCircle implements graphics.Surface.
func (s *Surface) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) error {
	if radius <= 0 {
		return nil
	}
	s.setPaint(paint)
	s.ctx.DrawPath(center.X*s.pixel, center.Y*s.pixel, canvas.Circle(radius*s.pixel))
	return nil
}

// DrawText implements graphics.Surface. The bitmap font named by style sets
// the line metrics; glyphs are drawn with an outline font scaled to match.
func (s *Surface) DrawText(text string, origin graphics.Offset, style graphics.TextStyle) error {
	name := style.Font
	if name == "" {
		name = graphics.DefaultFont
	}
	m, err := graphics.MeasureText("M", name)
	if err != nil {
		return err
	}
	face := s.face(m.LineHeight*0.8, style.Color)
	for i, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		baseline := origin.Y + m.Ascent + float64(i)*m.LineHeight
		s.ctx.DrawText(origin.X*s.pixel, baseline*s.pixel, canvas.NewTextLine(face, line, canvas.Left))
	}
	return nil
}

// WritePDF renders the recorded page as a single-page PDF document.
func (s *Surface) WritePDF(w io.Writer) error {
	writer := pdf.New(w, s.canvas.W, s.canvas.H, nil)
	writer.SetInfo("ember frame", "", "", "", "ember")
	s.canvas.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("vector: write pdf: %w", err)
	}
	return nil
}

func (s *Surface) setPaint(paint graphics.Paint) {
	if paint.Style == graphics.PaintStyleStroke {
		s.ctx.SetFillColor(transparent)
		s.ctx.SetStrokeColor(paint.Color)
		s.ctx.SetStrokeWidth(s.strokeWidth(paint))
		return
	}
	s.ctx.SetFillColor(paint.Color)
	s.ctx.SetStrokeColor(transparent)
	s.ctx.SetStrokeWidth(0)
}

func (s *Surface) strokeWidth(paint graphics.Paint) float64 {
	return max(paint.StrokeWidth, 1) * s.pixel
}

func (s *Surface) face(px float64, c graphics.Color) *canvas.FontFace {
	key := faceKey{size: px, color: c}
	if f, ok := s.faces[key]; ok {
		return f
	}
	f := s.family.Face(px*s.pixel*mmToPt, c, canvas.FontRegular, canvas.FontNormal)
	s.faces[key] = f
	return f
}
