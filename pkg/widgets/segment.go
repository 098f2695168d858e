package widgets

import (
	"math"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

// Segment bits, a through g.
const (
	segTop = 1 << iota
	segTopRight
	segBottomRight
	segBottom
	segBottomLeft
	segTopLeft
	segMiddle
)

var segmentGlyphs = map[rune]uint8{
	'0': 0x3F, '1': 0x06, '2': 0x5B, '3': 0x4F, '4': 0x66,
	'5': 0x6D, '6': 0x7D, '7': 0x07, '8': 0x7F, '9': 0x6F,
	'A': 0x77, 'b': 0x7C, 'C': 0x39, 'd': 0x5E, 'E': 0x79, 'F': 0x71,
	'-': segMiddle,
}

// SegmentMask returns the lit segments for r. Runes without a glyph are
// blank.
func SegmentMask(r rune) uint8 {
	return segmentGlyphs[r]
}

// SevenSegment shows a string as seven-segment digits. Digits, A to F in the
// usual mixed case and '-' have glyphs; anything else is a blank cell.
type SevenSegment struct {
	core.Node
	Value       string
	DigitWidth  float64
	DigitHeight float64
	Role        ColorRole
}

// NewSevenSegment creates a display with digits of the given cell size.
func NewSevenSegment(value string, digitWidth, digitHeight float64) *SevenSegment {
	d := &SevenSegment{Value: value, DigitWidth: max(digitWidth, 3), DigitHeight: max(digitHeight, 5), Role: RoleAccent}
	d.SetSelf(d)
	return d
}

// SetValue replaces the shown string.
func (d *SevenSegment) SetValue(v string) {
	if d.Value == v {
		return
	}
	if len([]rune(v)) != len([]rune(d.Value)) {
		d.MarkNeedsLayout()
	}
	d.Value = v
	d.MarkNeedsPaint()
}

func (d *SevenSegment) thickness() float64 {
	return math.Max(1, math.Round(d.DigitHeight/8))
}

// Measure implements core.Widget.
func (d *SevenSegment) Measure(c layout.Constraints) graphics.Size {
	n := float64(len([]rune(d.Value)))
	if n == 0 {
		return c.Constrain(graphics.Size{})
	}
	return c.Constrain(graphics.Size{
		Width:  n*d.DigitWidth + (n-1)*d.thickness(),
		Height: d.DigitHeight,
	})
}

// segments returns the rects of the lit segments of one digit cell.
func segments(cell graphics.Rect, t float64, mask uint8) []graphics.Rect {
	l, tp, r, b := cell.Left, cell.Top, cell.Right, cell.Bottom
	mid := tp + (cell.Height()-t)/2
	all := [7]graphics.Rect{
		{Left: l + t, Top: tp, Right: r - t, Bottom: tp + t},
		{Left: r - t, Top: tp + t, Right: r, Bottom: mid},
		{Left: r - t, Top: mid + t, Right: r, Bottom: b - t},
		{Left: l + t, Top: b - t, Right: r - t, Bottom: b},
		{Left: l, Top: mid + t, Right: l + t, Bottom: b - t},
		{Left: l, Top: tp + t, Right: l + t, Bottom: mid},
		{Left: l + t, Top: mid, Right: r - t, Bottom: mid + t},
	}
	var lit []graphics.Rect
	for i, rect := range all {
		if mask&(1<<i) != 0 {
			lit = append(lit, rect)
		}
	}
	return lit
}

// Draw implements core.Widget.
func (d *SevenSegment) Draw(s graphics.Surface, style *theme.Style) error {
	rect := d.Rect()
	if rect.IsEmpty() {
		return nil
	}
	t := d.thickness()
	fill := graphics.FillPaint(d.Role.Color(style))
	x := rect.Left
	for _, r := range d.Value {
		cell := graphics.RectFromLTWH(x, rect.Top, d.DigitWidth, d.DigitHeight).Intersect(rect)
		if cell.IsEmpty() {
			break
		}
		for _, seg := range segments(cell, t, SegmentMask(r)) {
			if seg.IsEmpty() {
				continue
			}
			if err := s.DrawRect(seg, fill); err != nil {
				return err
			}
		}
		x += d.DigitWidth + t
	}
	return nil
}
