package widgets

import (
	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

// Menu is a focusable vertical list of entries with one selected entry.
//
// Up and Down move the selection while it can move. At either end the key is
// left unconsumed so focus navigation can take over. Enter and Space activate
// the selected entry. A press on an entry selects it and captures the
// pointer; releasing over the same entry activates it.
type Menu struct {
	core.Node
	Entries  []string
	Selected int
	Disabled bool
	// OnSelect is called with the new index when the selection changes.
	OnSelect func(int)
	// OnActivate is called with the selected index on activation.
	OnActivate func(int)

	tracking    int
	activations int
}

// NewMenu creates a menu with the first entry selected.
func NewMenu(entries ...string) *Menu {
	m := &Menu{Entries: entries, tracking: -1}
	m.SetSelf(m)
	return m
}

// WithSelected selects entry i without calling OnSelect.
func (m *Menu) WithSelected(i int) *Menu {
	if i >= 0 && i < len(m.Entries) && i != m.Selected {
		m.Selected = i
		m.MarkNeedsPaint()
	}
	return m
}

// SetSelected selects entry i and reports whether the selection changed.
// Out of range indexes are ignored.
func (m *Menu) SetSelected(i int) bool {
	if i < 0 || i >= len(m.Entries) || i == m.Selected {
		return false
	}
	m.Selected = i
	m.MarkNeedsPaint()
	if m.OnSelect != nil {
		m.OnSelect(i)
	}
	return true
}

// SelectedEntry returns the selected entry text, or "" for an empty menu.
func (m *Menu) SelectedEntry() string {
	if m.Selected < 0 || m.Selected >= len(m.Entries) {
		return ""
	}
	return m.Entries[m.Selected]
}

// Activations returns how many times an entry was activated.
func (m *Menu) Activations() int {
	return m.activations
}

// CanFocus implements core.Focusable.
func (m *Menu) CanFocus() bool {
	return !m.Disabled && len(m.Entries) > 0
}

// CapturesPointer implements core.PointerCapturer.
func (m *Menu) CapturesPointer() bool {
	return m.tracking >= 0
}

func (m *Menu) rowHeight() float64 {
	style := m.ResolvedStyle()
	return measureText(&m.Node, "X", false).Height + 2*style.Spacing.BorderWidth
}

// Measure implements core.Widget.
func (m *Menu) Measure(c layout.Constraints) graphics.Size {
	style := m.ResolvedStyle()
	var width float64
	for _, entry := range m.Entries {
		width = max(width, measureText(&m.Node, entry, false).Width)
	}
	inset := 2 * (style.Spacing.Padding + style.Spacing.BorderWidth)
	return c.Constrain(graphics.Size{
		Width:  width + inset,
		Height: m.rowHeight() * float64(len(m.Entries)),
	})
}

// entryAt returns the entry under a local position, or -1.
func (m *Menu) entryAt(local graphics.Offset) int {
	if !withinBounds(local, m.Rect().Size()) {
		return -1
	}
	h := m.rowHeight()
	if h <= 0 {
		return -1
	}
	i := int(local.Y / h)
	if i >= len(m.Entries) {
		return -1
	}
	return i
}

func (m *Menu) activate() {
	m.activations++
	if m.OnActivate != nil {
		m.OnActivate(m.Selected)
	}
}

// HandleEvent implements core.Widget.
func (m *Menu) HandleEvent(ev event.Event, local graphics.Offset) bool {
	if m.Disabled || len(m.Entries) == 0 {
		return false
	}
	switch e := ev.(type) {
	case event.PointerDown:
		i := m.entryAt(local)
		if i < 0 {
			return false
		}
		m.tracking = i
		m.SetPressed(true)
		m.SetSelected(i)
		return true
	case event.PointerMove:
		return m.tracking >= 0
	case event.PointerUp:
		if m.tracking < 0 {
			return false
		}
		if m.entryAt(local) == m.tracking {
			m.activate()
		}
		m.tracking = -1
		m.SetPressed(false)
		return true
	case event.KeyDown:
		switch {
		case e.Code == event.KeyArrowUp:
			return m.SetSelected(m.Selected - 1)
		case e.Code == event.KeyArrowDown:
			return m.SetSelected(m.Selected + 1)
		case e.Code == event.KeyHome:
			m.SetSelected(0)
			return true
		case e.Code == event.KeyEnd:
			m.SetSelected(len(m.Entries) - 1)
			return true
		case e.Code.IsActivation():
			m.activate()
			return true
		}
	}
	return false
}

// Draw implements core.Widget.
func (m *Menu) Draw(s graphics.Surface, style *theme.Style) error {
	rect := m.Rect()
	if rect.IsEmpty() {
		return nil
	}
	h := m.rowHeight()
	inset := style.Spacing.Padding + style.Spacing.BorderWidth
	for i, entry := range m.Entries {
		row := graphics.Rect{Left: rect.Left, Top: rect.Top + float64(i)*h, Right: rect.Right, Bottom: rect.Top + float64(i+1)*h}
		row = row.Intersect(rect)
		if row.IsEmpty() {
			break
		}
		fill, text := style.Palette.Background2, style.Palette.Foreground
		switch {
		case m.Disabled:
			text = style.Palette.Disabled
		case i == m.Selected:
			fill, text = style.Palette.Accent, style.Palette.Background
		}
		if err := s.DrawRect(row, graphics.FillPaint(fill)); err != nil {
			return err
		}
		if style.Spacing.BorderWidth > 0 {
			if err := s.DrawRect(row, graphics.StrokePaint(style.Palette.Border, style.Spacing.BorderWidth)); err != nil {
				return err
			}
		}
		origin := graphics.Offset{X: row.Left + inset, Y: row.Top + style.Spacing.BorderWidth}
		if err := s.DrawText(entry, origin, style.Text(text)); err != nil {
			return err
		}
	}
	if m.Focused() {
		return s.DrawRect(rect, graphics.StrokePaint(style.Palette.Focus, max(style.Spacing.FocusWidth, 1)))
	}
	return nil
}
