package widgets

import (
	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

// Button is a focusable push button.
//
// A pointer-down inside the button marks it pressed and captures the pointer,
// so the button keeps receiving moves and the release even when the pointer
// leaves it. OnPress fires when the pointer is released inside the button.
// Enter and Space activate a focused button the same way.
//
//	ok := NewButton("OK", submit).WithSize(50, 20)
type Button struct {
	core.Node
	// Label is the text displayed on the button.
	Label string
	// OnPress is called when the button is activated.
	OnPress func()
	// Disabled disables the button when true.
	Disabled bool
	// Width and Height fix the preferred size when positive. Otherwise the
	// button wraps its label plus the style padding.
	Width  float64
	Height float64

	tracking bool
	presses  int
}

// NewButton creates a button.
func NewButton(label string, onPress func()) *Button {
	b := &Button{Label: label, OnPress: onPress}
	b.SetSelf(b)
	return b
}

// WithSize fixes the preferred size.
func (b *Button) WithSize(width, height float64) *Button {
	b.Width, b.Height = width, height
	b.MarkNeedsLayout()
	return b
}

// WithDisabled enables or disables the button.
func (b *Button) WithDisabled(disabled bool) *Button {
	b.SetDisabled(disabled)
	return b
}

// SetDisabled enables or disables the button. Disabling releases a press.
func (b *Button) SetDisabled(disabled bool) {
	if b.Disabled == disabled {
		return
	}
	b.Disabled = disabled
	if disabled {
		b.tracking = false
		b.SetPressed(false)
	}
	b.MarkNeedsPaint()
}

// Presses returns how many times the button was activated.
func (b *Button) Presses() int {
	return b.presses
}

// CanFocus implements core.Focusable.
func (b *Button) CanFocus() bool {
	return !b.Disabled
}

// CapturesPointer implements core.PointerCapturer. A button holds the
// pointer from press to release.
func (b *Button) CapturesPointer() bool {
	return b.tracking
}

// Measure implements core.Widget.
func (b *Button) Measure(c layout.Constraints) graphics.Size {
	size := measureText(&b.Node, b.Label, false)
	pad := b.ResolvedStyle().Spacing
	inset := 2 * (pad.Padding + pad.BorderWidth)
	size.Width += inset
	size.Height += inset
	if b.Width > 0 {
		size.Width = b.Width
	}
	if b.Height > 0 {
		size.Height = b.Height
	}
	return c.Constrain(size)
}

// Draw implements core.Widget.
func (b *Button) Draw(s graphics.Surface, style *theme.Style) error {
	fill, text := style.Palette.Background2, style.Palette.Foreground
	switch {
	case b.Disabled:
		fill, text = style.Palette.Background3, style.Palette.Disabled
	case b.Pressed():
		fill, text = style.Palette.Accent, style.Palette.Background
	case b.Hovered():
		fill = style.Palette.Background3
	}
	if err := drawFrame(s, &b.Node, style, fill); err != nil {
		return err
	}
	return drawCenteredText(s, b.Label, b.Rect(), style.Text(text))
}

// HandleEvent implements core.Widget.
func (b *Button) HandleEvent(ev event.Event, local graphics.Offset) bool {
	if b.Disabled {
		return false
	}
	inside := withinBounds(local, b.Rect().Size())
	switch e := ev.(type) {
	case event.PointerDown:
		b.tracking = true
		b.SetPressed(true)
		return true
	case event.PointerMove:
		if !b.tracking {
			return false
		}
		b.SetPressed(inside)
		return true
	case event.PointerUp:
		if !b.tracking {
			return false
		}
		b.tracking = false
		b.SetPressed(false)
		if inside {
			b.activate()
		}
		return true
	case event.KeyDown:
		if !e.Code.IsActivation() {
			return false
		}
		b.SetPressed(true)
		return true
	case event.KeyUp:
		if !e.Code.IsActivation() || !b.Pressed() {
			return false
		}
		b.SetPressed(false)
		b.activate()
		return true
	}
	return false
}

func (b *Button) activate() {
	b.presses++
	if b.OnPress != nil {
		b.OnPress()
	}
}
