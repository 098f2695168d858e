package widgets

import (
	"math"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

// Slider selects a value in [Min, Max] along an axis.
//
// Pressing the track jumps to that position and captures the pointer, so
// dragging keeps adjusting the value anywhere on screen until release. When
// focused, arrow keys along the axis step the value by Step and Home/End jump
// to the bounds.
type Slider struct {
	core.Node
	Axis  layout.Axis
	Min   float64
	Max   float64
	Step  float64
	Value float64
	// Length is the preferred extent along the axis.
	Length float64
	// Thickness is the preferred extent across the axis.
	Thickness float64
	Disabled  bool
	OnChanged func(float64)

	dragging bool
}

// NewSlider creates a horizontal slider over [lo, hi]. Reversed bounds are
// swapped.
func NewSlider(lo, hi, value float64, onChanged func(float64)) *Slider {
	if hi < lo {
		lo, hi = hi, lo
	}
	s := &Slider{Min: lo, Max: hi, Step: (hi - lo) / 10, Length: 64, Thickness: 10, OnChanged: onChanged}
	s.SetSelf(s)
	s.Value = s.clamp(value)
	return s
}

// WithAxis sets the slider orientation.
func (s *Slider) WithAxis(axis layout.Axis) *Slider {
	s.Axis = axis
	s.MarkNeedsLayout()
	return s
}

// SetValue clamps and snaps v, stores it and reports whether it changed.
// OnChanged is called on change.
func (s *Slider) SetValue(v float64) bool {
	v = s.clamp(v)
	if v == s.Value {
		return false
	}
	s.Value = v
	s.MarkNeedsPaint()
	if s.OnChanged != nil {
		s.OnChanged(v)
	}
	return true
}

// Fraction returns the value's position in [0, 1].
func (s *Slider) Fraction() float64 {
	span := s.Max - s.Min
	if span <= 0 {
		return 0
	}
	return (s.Value - s.Min) / span
}

func (s *Slider) clamp(v float64) float64 {
	lo, hi := s.Min, s.Max
	if hi < lo {
		hi = lo
	}
	if math.IsNaN(v) {
		v = lo
	}
	if s.Step > 0 {
		v = lo + math.Round((v-lo)/s.Step)*s.Step
	}
	return math.Max(lo, math.Min(hi, v))
}

// CanFocus implements core.Focusable.
func (s *Slider) CanFocus() bool {
	return !s.Disabled
}

// CapturesPointer implements core.PointerCapturer.
func (s *Slider) CapturesPointer() bool {
	return s.dragging
}

// Measure implements core.Widget.
func (s *Slider) Measure(c layout.Constraints) graphics.Size {
	return c.Constrain(s.Axis.Size(s.Length, s.Thickness))
}

// valueAt maps a local position to a value. Vertical sliders grow upwards.
func (s *Slider) valueAt(local graphics.Offset) float64 {
	size := s.Rect().Size()
	extent := s.Axis.Main(size)
	if extent <= 0 {
		return s.Value
	}
	pos := local.X
	if s.Axis == layout.AxisVertical {
		pos = extent - local.Y
	}
	f := math.Max(0, math.Min(1, pos/extent))
	return s.Min + f*(s.Max-s.Min)
}

// HandleEvent implements core.Widget.
func (s *Slider) HandleEvent(ev event.Event, local graphics.Offset) bool {
	if s.Disabled {
		return false
	}
	switch e := ev.(type) {
	case event.PointerDown:
		s.dragging = true
		s.SetPressed(true)
		s.SetValue(s.valueAt(local))
		return true
	case event.PointerMove:
		if !s.dragging {
			return false
		}
		s.SetValue(s.valueAt(local))
		return true
	case event.PointerUp:
		if !s.dragging {
			return false
		}
		s.dragging = false
		s.SetPressed(false)
		return true
	case event.KeyDown:
		return s.handleKey(e.Code)
	}
	return false
}

func (s *Slider) handleKey(k event.Key) bool {
	step := s.Step
	if step <= 0 {
		step = math.Abs(s.Max-s.Min) / 10
	}
	inc, dec := event.KeyArrowRight, event.KeyArrowLeft
	if s.Axis == layout.AxisVertical {
		inc, dec = event.KeyArrowUp, event.KeyArrowDown
	}
	switch k {
	case inc:
		s.SetValue(s.Value + step)
	case dec:
		s.SetValue(s.Value - step)
	case event.KeyHome:
		s.SetValue(s.Min)
	case event.KeyEnd:
		s.SetValue(s.Max)
	default:
		return false
	}
	return true
}

// Draw implements core.Widget.
func (s *Slider) Draw(surface graphics.Surface, style *theme.Style) error {
	rect := s.Rect()
	if rect.IsEmpty() {
		return nil
	}
	if err := drawFrame(surface, &s.Node, style, style.Palette.Background2); err != nil {
		return err
	}
	fill := style.Palette.Accent
	if s.Disabled {
		fill = style.Palette.Disabled
	}
	f := s.Fraction()
	filled := rect
	if s.Axis == layout.AxisHorizontal {
		filled.Right = rect.Left + rect.Width()*f
	} else {
		filled.Top = rect.Bottom - rect.Height()*f
	}
	if filled.IsEmpty() {
		return nil
	}
	return surface.DrawRect(filled, graphics.FillPaint(fill))
}
