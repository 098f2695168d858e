package widgets

import (
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

// Toggle is a button with an on/off state drawn as a check box next to its
// label. Activation flips On and calls OnChanged with the new value.
type Toggle struct {
	Button
	On        bool
	OnChanged func(bool)
}

// NewToggle creates a toggle.
func NewToggle(label string, on bool, onChanged func(bool)) *Toggle {
	t := &Toggle{On: on, OnChanged: onChanged}
	t.Label = label
	t.OnPress = t.flip
	t.SetSelf(t)
	return t
}

// SetOn sets the state without calling OnChanged.
func (t *Toggle) SetOn(on bool) {
	if t.On == on {
		return
	}
	t.On = on
	t.MarkNeedsPaint()
}

func (t *Toggle) flip() {
	t.SetOn(!t.On)
	if t.OnChanged != nil {
		t.OnChanged(t.On)
	}
}

func (t *Toggle) indicator() float64 {
	m, err := graphics.MeasureText("X", t.ResolvedStyle().Font)
	if err != nil {
		return 8
	}
	return m.LineHeight
}

// Measure implements core.Widget.
func (t *Toggle) Measure(c layout.Constraints) graphics.Size {
	box := t.indicator()
	text := measureText(&t.Node, t.Label, false)
	gap := t.ResolvedStyle().Spacing.Gap
	size := graphics.Size{Width: box, Height: max(box, text.Height)}
	if t.Label != "" {
		size.Width += gap + text.Width
	}
	if t.Width > 0 {
		size.Width = t.Width
	}
	if t.Height > 0 {
		size.Height = t.Height
	}
	return c.Constrain(size)
}

// Draw implements core.Widget.
func (t *Toggle) Draw(s graphics.Surface, style *theme.Style) error {
	rect := t.Rect()
	if rect.IsEmpty() {
		return nil
	}
	box := min(t.indicator(), rect.Height(), rect.Width())
	boxRect := graphics.RectFromLTWH(rect.Left, rect.Top+(rect.Height()-box)/2, box, box)

	border, text := style.Palette.Border, style.Palette.Foreground
	if t.Disabled {
		border, text = style.Palette.Disabled, style.Palette.Disabled
	}
	if t.Focused() {
		border = style.Palette.Focus
	}
	if err := s.DrawRect(boxRect, graphics.FillPaint(style.Palette.Background2)); err != nil {
		return err
	}
	if err := s.DrawRect(boxRect, graphics.StrokePaint(border, max(style.Spacing.BorderWidth, 1))); err != nil {
		return err
	}
	if t.On || t.Pressed() {
		mark := style.Palette.Accent
		if !t.On {
			mark = style.Palette.Background3
		}
		inner := boxRect.Deflate(graphics.EdgeInsetsAll(max(2, box/4)))
		if err := s.DrawRect(inner, graphics.FillPaint(mark)); err != nil {
			return err
		}
	}
	if t.Label == "" {
		return nil
	}
	ts := style.Text(text)
	m, err := graphics.MeasureText(t.Label, ts.Font)
	if err != nil {
		return err
	}
	origin := graphics.Offset{
		X: boxRect.Right + style.Spacing.Gap,
		Y: rect.Top + (rect.Height()-m.Size.Height)/2,
	}
	return s.DrawText(t.Label, origin, ts)
}
