// Package rendering draws a widget tree onto a graphics.Surface.
//
// A render pass is a pure traversal. Every visible node draws itself and then
// its children in insertion order, so later children paint over earlier ones,
// mirroring the hit-test rule that the last-inserted child is on top. The pass
// reads layout results and interaction flags but never changes them.
package rendering

import (
	"fmt"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/errors"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/theme"
)

// Renderer runs render passes.
type Renderer struct {
	// Debug draws an outline and an ID/size label over every visible node
	// after the tree has been drawn.
	Debug bool

	stats Stats
}

// Stats counts render work since the Renderer was created.
type Stats struct {
	Passes int
	Failed int
	Nodes  int
}

// Stats returns the accumulated counters.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Render draws the tree rooted at root onto s. Nodes without a style override
// draw with style, which falls back to theme.Default when nil.
//
// The first surface failure stops the pass and is returned as an
// *errors.Error of kind KindSurface naming the failing node. Primitives issued
// before the failure stay on the surface.
func (r *Renderer) Render(root core.Widget, s graphics.Surface, style *theme.Style) error {
	if style == nil {
		style = theme.Default()
	}
	r.stats.Passes++
	if root == nil {
		return nil
	}
	if err := r.draw(root, s, style); err != nil {
		r.stats.Failed++
		return err
	}
	if r.Debug {
		if err := drawDebug(root, s, style); err != nil {
			r.stats.Failed++
			return err
		}
	}
	return nil
}

func (r *Renderer) draw(w core.Widget, s graphics.Surface, inherited *theme.Style) error {
	n := w.Base()
	if !n.Visible() {
		return nil
	}
	style := inherited
	if own := n.Style(); own != nil {
		style = own
	}
	r.stats.Nodes++
	if err := w.Draw(s, style); err != nil {
		return surfaceError("rendering.Render", n.ID(), err)
	}
	for _, child := range n.Children() {
		if err := r.draw(child, s, style); err != nil {
			return err
		}
	}
	return nil
}

func drawDebug(w core.Widget, s graphics.Surface, style *theme.Style) error {
	n := w.Base()
	if !n.Visible() {
		return nil
	}
	rect := n.Rect()
	paint := graphics.StrokePaint(style.Palette.Debug, 1)
	if err := s.DrawRect(rect, paint); err != nil {
		return surfaceError("rendering.Debug", n.ID(), err)
	}
	label := fmt.Sprintf("#%d %gx%g", n.ID(), rect.Width(), rect.Height())
	if err := s.DrawText(label, rect.TopLeft(), style.Text(style.Palette.Debug)); err != nil {
		return surfaceError("rendering.Debug", n.ID(), err)
	}
	for _, child := range n.Children() {
		if err := drawDebug(child, s, style); err != nil {
			return err
		}
	}
	return nil
}

func surfaceError(op string, id core.ID, err error) error {
	var e *errors.Error
	if errors.As(err, &e) && e.Kind == errors.KindSurface {
		return err
	}
	return &errors.Error{Op: op, Kind: errors.KindSurface, Node: uint64(id), Err: err}
}
