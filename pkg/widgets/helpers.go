package widgets

import (
	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/theme"
)

// mustAppend attaches children to n in order.
func mustAppend(n *core.Node, children []core.Widget) {
	for _, child := range children {
		if child == nil {
			continue
		}
		if err := n.AppendChild(child); err != nil {
			panic(err)
		}
	}
}

// withinBounds reports whether a local position falls inside size.
func withinBounds(position graphics.Offset, size graphics.Size) bool {
	return position.X >= 0 && position.Y >= 0 &&
		position.X < size.Width && position.Y < size.Height
}

// measureText returns the size of text in the node's resolved font.
// Unknown fonts measure as empty.
func measureText(n *core.Node, text string, bold bool) graphics.Size {
	if text == "" {
		return graphics.Size{}
	}
	style := n.ResolvedStyle()
	name := style.Font
	if bold {
		name = style.FontBold
	}
	m, err := graphics.MeasureText(text, name)
	if err != nil {
		return graphics.Size{}
	}
	return m.Size
}

// drawFrame fills rect and outlines it. A focused node gets the focus color
// and focus width for its outline.
func drawFrame(s graphics.Surface, n *core.Node, style *theme.Style, fill graphics.Color) error {
	rect := n.Rect()
	if rect.IsEmpty() {
		return nil
	}
	if !fill.IsTransparent() {
		if err := s.DrawRect(rect, graphics.FillPaint(fill)); err != nil {
			return err
		}
	}
	border, width := style.Palette.Border, style.Spacing.BorderWidth
	if n.Focused() {
		border, width = style.Palette.Focus, max(style.Spacing.FocusWidth, width)
	}
	if width <= 0 {
		return nil
	}
	return s.DrawRect(rect, graphics.StrokePaint(border, width))
}

// drawCenteredText draws text centered in rect.
func drawCenteredText(s graphics.Surface, text string, rect graphics.Rect, ts graphics.TextStyle) error {
	if text == "" {
		return nil
	}
	m, err := graphics.MeasureText(text, ts.Font)
	if err != nil {
		return err
	}
	origin := graphics.Offset{
		X: rect.Left + (rect.Width()-m.Size.Width)/2,
		Y: rect.Top + (rect.Height()-m.Size.Height)/2,
	}
	return s.DrawText(text, origin, ts)
}
