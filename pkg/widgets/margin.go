package widgets

import (
	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

// Margin insets its children by Insets. Every child fills the inner rect.
//
// With Background set the full rect is filled with the style's secondary
// background; with Border set it is outlined in the border color.
type Margin struct {
	core.Node
	Insets     graphics.EdgeInsets
	Background bool
	Border     bool
}

// NewMargin wraps child with the given insets.
func NewMargin(insets graphics.EdgeInsets, child core.Widget) *Margin {
	m := &Margin{Insets: insets}
	m.SetSelf(m)
	mustAppend(&m.Node, []core.Widget{child})
	return m
}

// NewPanel creates a Margin with background and border using the style padding.
func NewPanel(children ...core.Widget) *Margin {
	m := &Margin{Background: true, Border: true, Insets: graphics.EdgeInsetsAll(-1)}
	m.SetSelf(m)
	mustAppend(&m.Node, children)
	return m
}

// insets returns the configured insets. Negative values fall back to the
// style padding plus border width.
func (m *Margin) insets() graphics.EdgeInsets {
	in := m.Insets
	if in.Left >= 0 && in.Top >= 0 && in.Right >= 0 && in.Bottom >= 0 {
		return in
	}
	sp := m.ResolvedStyle().Spacing
	pad := sp.Padding
	if m.Border {
		pad += sp.BorderWidth
	}
	fix := func(v float64) float64 {
		if v < 0 {
			return pad
		}
		return v
	}
	return graphics.EdgeInsets{Left: fix(in.Left), Top: fix(in.Top), Right: fix(in.Right), Bottom: fix(in.Bottom)}
}

// Measure implements core.Widget.
func (m *Margin) Measure(c layout.Constraints) graphics.Size {
	in := m.insets()
	inner := m.Node.Measure(c.Deflate(in))
	return c.Constrain(graphics.Size{
		Width:  inner.Width + in.Horizontal(),
		Height: inner.Height + in.Vertical(),
	})
}

// Arrange implements core.Widget.
func (m *Margin) Arrange(rect graphics.Rect) {
	m.SetRect(rect)
	inner := rect.Deflate(m.insets())
	for _, child := range m.Children() {
		m.ArrangeChild(child, inner)
	}
}

// Draw implements core.Widget.
func (m *Margin) Draw(s graphics.Surface, style *theme.Style) error {
	rect := m.Rect()
	if m.Background && !rect.IsEmpty() {
		if err := s.DrawRect(rect, graphics.FillPaint(style.Palette.Background2)); err != nil {
			return err
		}
	}
	if m.Border && style.Spacing.BorderWidth > 0 && !rect.IsEmpty() {
		return s.DrawRect(rect, graphics.StrokePaint(style.Palette.Border, style.Spacing.BorderWidth))
	}
	return nil
}
