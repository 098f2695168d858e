package widgets

import (
	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
)

// Grid places children row-major into a fixed grid of cells.
//
// Rows and Columns hold relative weights: {1, 2} splits the available height
// into a third and two thirds. A nil or empty slice means a single track.
// Each child fills its cell; children beyond the last cell get an empty rect.
type Grid struct {
	core.Node
	Rows    []float64
	Columns []float64
}

// NewGrid creates a grid with equal-weight rows and columns.
func NewGrid(rows, cols int, children ...core.Widget) *Grid {
	g := &Grid{Rows: evenWeights(rows), Columns: evenWeights(cols)}
	g.SetSelf(g)
	mustAppend(&g.Node, children)
	return g
}

// GridOf creates a grid with explicit row and column weights.
func GridOf(rows, cols []float64, children ...core.Widget) *Grid {
	g := &Grid{Rows: rows, Columns: cols}
	g.SetSelf(g)
	mustAppend(&g.Node, children)
	return g
}

func evenWeights(n int) []float64 {
	w := make([]float64, max(n, 1))
	for i := range w {
		w[i] = 1
	}
	return w
}

func (g *Grid) tracks() (rows, cols []float64) {
	rows, cols = g.Rows, g.Columns
	if len(rows) == 0 {
		rows = []float64{1}
	}
	if len(cols) == 0 {
		cols = []float64{1}
	}
	return rows, cols
}

// Measure implements core.Widget. Bounded axes are filled; on an unbounded
// axis every track is as large as the largest child.
func (g *Grid) Measure(c layout.Constraints) graphics.Size {
	rows, cols := g.tracks()
	biggest := c.Biggest()
	var colW, rowH []float64
	if c.HasBoundedWidth() {
		colW = layout.Distribute(biggest.Width, cols)
	}
	if c.HasBoundedHeight() {
		rowH = layout.Distribute(biggest.Height, rows)
	}

	var largest graphics.Size
	for i, child := range g.Children() {
		if i >= len(rows)*len(cols) {
			g.MeasureChild(child, layout.Tight(graphics.Size{}))
			continue
		}
		cell := layout.Unconstrained()
		if colW != nil {
			cell.MaxWidth = colW[i%len(cols)]
		}
		if rowH != nil {
			cell.MaxHeight = rowH[i/len(cols)]
		}
		size := g.MeasureChild(child, cell)
		largest.Width = max(largest.Width, size.Width)
		largest.Height = max(largest.Height, size.Height)
	}

	size := biggest
	if !c.HasBoundedWidth() {
		size.Width = largest.Width * float64(len(cols))
	}
	if !c.HasBoundedHeight() {
		size.Height = largest.Height * float64(len(rows))
	}
	return c.Constrain(size)
}

// Arrange implements core.Widget.
func (g *Grid) Arrange(rect graphics.Rect) {
	g.SetRect(rect)
	rows, cols := g.tracks()
	colW := layout.Distribute(rect.Width(), cols)
	rowH := layout.Distribute(rect.Height(), rows)
	colX := layout.Offsets(rect.Left, colW)
	rowY := layout.Offsets(rect.Top, rowH)
	for i, child := range g.Children() {
		if i >= len(rows)*len(cols) {
			g.ArrangeChild(child, graphics.RectFromLTWH(rect.Left, rect.Top, 0, 0))
			continue
		}
		r, col := i/len(cols), i%len(cols)
		g.ArrangeChild(child, graphics.RectFromLTWH(colX[col], rowY[r], colW[col], rowH[r]))
	}
}
