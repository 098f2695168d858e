package widgets

import (
	"math"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

// Alert is a modal message box. It fills the space it is given, dims what
// is drawn beneath it and centers a dialog holding a warning sign, the
// message and an OK button.
//
// Place it as the last child of an expanding Stack. Every pointer event that
// reaches the alert is consumed, so nothing beneath it can be pressed. Keys
// bubbling up from the dialog are consumed too, except Tab and BackTab which
// stay available for focus traversal. Escape or the OK button dismisses the
// alert: it hides itself and then calls OnDismiss.
type Alert struct {
	core.Node
	OnDismiss func()

	dialog  *Margin
	message *Label
	ok      *Button
}

// NewAlert creates a visible alert.
func NewAlert(message string, onDismiss func()) *Alert {
	a := &Alert{OnDismiss: onDismiss}
	a.SetSelf(a)
	a.message = NewLabel(message)
	a.ok = NewButton("OK", a.Dismiss)

	body := NewRow(NewWarningTriangle(13, 12), a.message)
	body.Gap = 4
	body.CrossAxisAlignment = layout.CrossAxisAlignmentCenter
	content := NewColumn(body, a.ok)
	content.Gap = 4
	content.CrossAxisAlignment = layout.CrossAxisAlignmentCenter
	a.dialog = NewPanel(content)
	mustAppend(&a.Node, []core.Widget{a.dialog})
	return a
}

// Message returns the displayed message.
func (a *Alert) Message() string {
	return a.message.Text
}

// SetMessage replaces the displayed message.
func (a *Alert) SetMessage(message string) {
	a.message.SetText(message)
}

// OK returns the dismiss button, typically to give it focus.
func (a *Alert) OK() *Button {
	return a.ok
}

// Show makes a dismissed alert visible again.
func (a *Alert) Show() {
	a.SetVisible(true)
}

// Dismiss hides the alert and calls OnDismiss. Dismissing a hidden alert
// does nothing.
func (a *Alert) Dismiss() {
	if !a.Visible() {
		return
	}
	a.SetVisible(false)
	if a.OnDismiss != nil {
		a.OnDismiss()
	}
}

// Measure implements core.Widget.
func (a *Alert) Measure(c layout.Constraints) graphics.Size {
	dialog := a.MeasureChild(a.dialog, c.Loosen())
	size := c.Biggest()
	if !c.HasBoundedWidth() {
		size.Width = dialog.Width
	}
	if !c.HasBoundedHeight() {
		size.Height = dialog.Height
	}
	return c.Constrain(size)
}

// Arrange implements core.Widget.
func (a *Alert) Arrange(rect graphics.Rect) {
	a.SetRect(rect)
	a.ArrangeChild(a.dialog, layout.AlignCenter.Inscribe(a.dialog.MeasuredSize(), rect))
}

// HandleEvent implements core.Widget.
func (a *Alert) HandleEvent(ev event.Event, _ graphics.Offset) bool {
	switch e := ev.(type) {
	case event.Pointer:
		return true
	case event.KeyDown:
		switch e.Code {
		case event.KeyEscape:
			a.Dismiss()
			return true
		case event.KeyTab, event.KeyBackTab:
			return false
		}
		return true
	case event.KeyUp:
		return e.Code != event.KeyTab && e.Code != event.KeyBackTab
	}
	return false
}

// Draw implements core.Widget.
func (a *Alert) Draw(s graphics.Surface, style *theme.Style) error {
	rect := a.Rect()
	if rect.IsEmpty() {
		return nil
	}
	if err := s.DrawRect(rect, graphics.FillPaint(style.Palette.Background.WithAlpha(0.6))); err != nil {
		return err
	}
	w := max(style.Spacing.BorderWidth, 1)
	frame := a.dialog.Rect().Deflate(graphics.EdgeInsetsAll(-w))
	return s.DrawRect(frame, graphics.FillPaint(style.Palette.Warning))
}

// WarningTriangle is an upward triangle filled in the warning color with an
// exclamation mark inside when there is room for one.
type WarningTriangle struct {
	core.Node
	Width  float64
	Height float64
}

// NewWarningTriangle creates a triangle of the preferred size.
func NewWarningTriangle(width, height float64) *WarningTriangle {
	t := &WarningTriangle{Width: max(width, 0), Height: max(height, 0)}
	t.SetSelf(t)
	return t
}

// Measure implements core.Widget.
func (t *WarningTriangle) Measure(c layout.Constraints) graphics.Size {
	return c.Constrain(graphics.Size{Width: t.Width, Height: t.Height})
}

// Draw implements core.Widget.
func (t *WarningTriangle) Draw(s graphics.Surface, style *theme.Style) error {
	rect := t.Rect()
	if rect.IsEmpty() {
		return nil
	}
	fill := graphics.FillPaint(style.Palette.Warning)
	cx := rect.Left + rect.Width()/2
	rows := int(math.Ceil(rect.Height()))
	for i := range rows {
		top := rect.Top + float64(i)
		half := rect.Width() / 2 * (float64(i) + 1) / float64(rows)
		row := graphics.Rect{Left: cx - half, Top: top, Right: cx + half, Bottom: math.Min(top+1, rect.Bottom)}
		if err := s.DrawRect(row, fill); err != nil {
			return err
		}
	}
	mark := measureText(&t.Node, "!", true)
	if mark.Height > rect.Height() || mark.Width > rect.Width()/2 {
		return nil
	}
	lower := rect
	lower.Top = rect.Bottom - mark.Height
	return drawCenteredText(s, "!", lower, style.BoldText(style.Palette.Background))
}
