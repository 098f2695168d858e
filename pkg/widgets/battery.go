package widgets

import (
	"math"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

// LowCharge is the charge percentage at or below which a discharging
// battery is drawn in the warning color.
const LowCharge = 20

// Battery is a horizontal charge indicator: an outlined cell with a terminal
// nub on the right, filled in proportion to Charge.
type Battery struct {
	core.Node
	// Charge is the charge percentage in [0, 100].
	Charge   float64
	Charging bool
	Width    float64
	Height   float64
}

// NewBattery creates a battery of the preferred size. Sizes below 5x3 are
// raised to it.
func NewBattery(charge float64, charging bool, width, height float64) *Battery {
	b := &Battery{Charging: charging, Width: max(width, 5), Height: max(height, 3)}
	b.SetSelf(b)
	b.SetCharge(charge)
	return b
}

// SetCharge clamps v into [0, 100]. NaN reads as zero.
func (b *Battery) SetCharge(v float64) {
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Max(0, math.Min(100, v))
	if v == b.Charge {
		return
	}
	b.Charge = v
	b.MarkNeedsPaint()
}

// SetCharging sets the charging state.
func (b *Battery) SetCharging(charging bool) {
	if b.Charging == charging {
		return
	}
	b.Charging = charging
	b.MarkNeedsPaint()
}

// Measure implements core.Widget.
func (b *Battery) Measure(c layout.Constraints) graphics.Size {
	return c.Constrain(graphics.Size{Width: b.Width, Height: b.Height})
}

// fillColor picks the charge color for the current state.
func (b *Battery) fillColor(style *theme.Style) graphics.Color {
	switch {
	case b.Charging:
		return style.Palette.Success
	case b.Charge <= LowCharge:
		return style.Palette.Warning
	default:
		return style.Palette.Accent
	}
}

// Draw implements core.Widget.
func (b *Battery) Draw(s graphics.Surface, style *theme.Style) error {
	rect := b.Rect()
	if rect.IsEmpty() {
		return nil
	}
	stroke := max(style.Spacing.BorderWidth, 1)
	nub := math.Min(max(stroke, 2), rect.Width()/4)
	cell := rect
	cell.Right -= nub

	nubHeight := math.Ceil(rect.Height() / 2)
	terminal := graphics.Rect{
		Left:   cell.Right,
		Top:    rect.Top + (rect.Height()-nubHeight)/2,
		Right:  rect.Right,
		Bottom: rect.Top + (rect.Height()+nubHeight)/2,
	}
	if err := s.DrawRect(cell, graphics.FillPaint(style.Palette.Background2)); err != nil {
		return err
	}
	if err := s.DrawRect(cell, graphics.StrokePaint(style.Palette.Border, stroke)); err != nil {
		return err
	}
	if err := s.DrawRect(terminal, graphics.FillPaint(style.Palette.Border)); err != nil {
		return err
	}
	inner := cell.Deflate(graphics.EdgeInsetsAll(stroke))
	inner.Right = inner.Left + inner.Width()*b.Charge/100
	if inner.IsEmpty() {
		return nil
	}
	return s.DrawRect(inner, graphics.FillPaint(b.fillColor(style)))
}
