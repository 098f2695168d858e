package widgets

import (
	"math"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

const (
	defaultPlotWidth  = 64
	defaultPlotHeight = 32
	minGridSpacing    = 4
)

// Plot draws a polyline through data points, scaled to fit its rect, over
// axes through the data origin and an optional grid.
//
// The data bounds always include the origin. Larger y values are drawn
// higher. YScale stretches the vertical mapping about the origin; points
// pushed past the rect are pinned to its edge.
type Plot struct {
	core.Node
	Points []graphics.Offset
	// YScale multiplies the vertical scale. Values below 0.1 read as 0.1.
	YScale float64
	// GridStep is the grid spacing in data units. Zero disables the grid.
	GridStep float64
	// Capacity bounds the number of points kept by Push. Zero is unbounded.
	Capacity int
	// Width and Height fix the preferred size when positive. Otherwise the
	// plot fills bounded constraints.
	Width  float64
	Height float64

	next float64
}

// NewPlot creates a plot from samples taken at x = 0, 1, 2 ...
func NewPlot(samples ...float64) *Plot {
	p := &Plot{YScale: 1, GridStep: 10}
	p.SetSelf(p)
	for _, y := range samples {
		p.Push(y)
	}
	return p
}

// Push appends a sample at the next x position, dropping the oldest point
// once Capacity is reached.
func (p *Plot) Push(y float64) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return
	}
	p.Points = append(p.Points, graphics.Offset{X: p.next, Y: y})
	p.next++
	if p.Capacity > 0 && len(p.Points) > p.Capacity {
		p.Points = p.Points[len(p.Points)-p.Capacity:]
	}
	p.MarkNeedsPaint()
}

// Measure implements core.Widget.
func (p *Plot) Measure(c layout.Constraints) graphics.Size {
	size := c.Biggest()
	switch {
	case p.Width > 0:
		size.Width = p.Width
	case !c.HasBoundedWidth():
		size.Width = defaultPlotWidth
	}
	switch {
	case p.Height > 0:
		size.Height = p.Height
	case !c.HasBoundedHeight():
		size.Height = defaultPlotHeight
	}
	return c.Constrain(size)
}

// bounds returns the data range, widened to include the origin.
func (p *Plot) bounds() (minX, maxX, minY, maxY float64) {
	for _, pt := range p.Points {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}
	return minX, maxX, minY, maxY
}

// project maps data coordinates to absolute positions inside rect.
func (p *Plot) project(rect graphics.Rect) func(graphics.Offset) graphics.Offset {
	minX, maxX, minY, maxY := p.bounds()
	sx := rect.Width() / (maxX - minX)
	sy := rect.Height() / (maxY - minY) * math.Max(p.YScale, 0.1)
	return func(pt graphics.Offset) graphics.Offset {
		y := rect.Bottom - (pt.Y-minY)*sy
		return graphics.Offset{
			X: rect.Left + (pt.X-minX)*sx,
			Y: math.Max(rect.Top, math.Min(rect.Bottom, y)),
		}
	}
}

// Draw implements core.Widget.
func (p *Plot) Draw(s graphics.Surface, style *theme.Style) error {
	rect := p.Rect()
	if rect.IsEmpty() {
		return nil
	}
	if err := drawFrame(s, &p.Node, style, style.Palette.Background); err != nil {
		return err
	}
	if len(p.Points) == 0 {
		return nil
	}
	at := p.project(rect)
	minX, maxX, minY, maxY := p.bounds()

	if step := p.GridStep; step > 0 {
		grid := graphics.StrokePaint(style.Palette.Background3, 1)
		if at(graphics.Offset{X: step}).X-at(graphics.Offset{}).X >= minGridSpacing {
			for x := math.Ceil(minX/step) * step; x <= maxX; x += step {
				px := at(graphics.Offset{X: x}).X
				if err := s.DrawLine(graphics.Offset{X: px, Y: rect.Top}, graphics.Offset{X: px, Y: rect.Bottom}, grid); err != nil {
					return err
				}
			}
		}
		if at(graphics.Offset{}).Y-at(graphics.Offset{Y: step}).Y >= minGridSpacing {
			for y := math.Ceil(minY/step) * step; y <= maxY; y += step {
				py := at(graphics.Offset{Y: y}).Y
				if err := s.DrawLine(graphics.Offset{X: rect.Left, Y: py}, graphics.Offset{X: rect.Right, Y: py}, grid); err != nil {
					return err
				}
			}
		}
	}

	origin := at(graphics.Offset{})
	axis := graphics.StrokePaint(style.Palette.Foreground3, 1)
	if err := s.DrawLine(graphics.Offset{X: rect.Left, Y: origin.Y}, graphics.Offset{X: rect.Right, Y: origin.Y}, axis); err != nil {
		return err
	}
	if err := s.DrawLine(graphics.Offset{X: origin.X, Y: rect.Top}, graphics.Offset{X: origin.X, Y: rect.Bottom}, axis); err != nil {
		return err
	}

	line := graphics.StrokePaint(style.Palette.Accent, 1)
	prev := at(p.Points[0])
	if len(p.Points) == 1 {
		return s.DrawCircle(prev, 1, graphics.FillPaint(style.Palette.Accent))
	}
	for _, pt := range p.Points[1:] {
		cur := at(pt)
		if err := s.DrawLine(prev, cur, line); err != nil {
			return err
		}
		prev = cur
	}
	return nil
}
