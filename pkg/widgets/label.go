package widgets

import (
	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

// ColorRole selects a palette entry for foreground drawing.
type ColorRole int

const (
	RoleForeground ColorRole = iota
	RoleForeground2
	RoleForeground3
	RoleAccent
	RoleDisabled
	RoleSuccess
	RoleWarning
)

// Color resolves the role against a style.
func (r ColorRole) Color(style *theme.Style) graphics.Color {
	p := style.Palette
	switch r {
	case RoleForeground2:
		return p.Foreground2
	case RoleForeground3:
		return p.Foreground3
	case RoleAccent:
		return p.Accent
	case RoleDisabled:
		return p.Disabled
	case RoleSuccess:
		return p.Success
	case RoleWarning:
		return p.Warning
	default:
		return p.Foreground
	}
}

// Label displays static text, one or more lines separated by '\n'.
type Label struct {
	core.Node
	Text      string
	Bold      bool
	Role      ColorRole
	Alignment layout.Alignment
}

// NewLabel creates a top-left aligned label.
func NewLabel(text string) *Label {
	l := &Label{Text: text, Alignment: layout.AlignTopLeft}
	l.SetSelf(l)
	return l
}

// SetText replaces the text and schedules a layout pass when it changed.
func (l *Label) SetText(text string) {
	if l.Text == text {
		return
	}
	l.Text = text
	l.MarkNeedsLayout()
}

// WithBold draws the label in the style's bold font.
func (l *Label) WithBold(bold bool) *Label {
	if l.Bold != bold {
		l.Bold = bold
		l.MarkNeedsLayout()
	}
	return l
}

// WithRole sets the palette role of the text color.
func (l *Label) WithRole(role ColorRole) *Label {
	if l.Role != role {
		l.Role = role
		l.MarkNeedsPaint()
	}
	return l
}

// WithAlignment sets where the text sits inside a larger rect.
func (l *Label) WithAlignment(a layout.Alignment) *Label {
	if l.Alignment != a {
		l.Alignment = a
		l.MarkNeedsPaint()
	}
	return l
}

// Measure implements core.Widget.
func (l *Label) Measure(c layout.Constraints) graphics.Size {
	return c.Constrain(measureText(&l.Node, l.Text, l.Bold))
}

// Draw implements core.Widget.
func (l *Label) Draw(s graphics.Surface, style *theme.Style) error {
	if l.Text == "" || l.Rect().IsEmpty() {
		return nil
	}
	ts := style.Text(l.Role.Color(style))
	if l.Bold {
		ts = style.BoldText(l.Role.Color(style))
	}
	m, err := graphics.MeasureText(l.Text, ts.Font)
	if err != nil {
		return err
	}
	at := l.Alignment.Inscribe(m.Size, l.Rect())
	return s.DrawText(l.Text, at.TopLeft(), ts)
}
