package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-drift/ember/pkg/graphics"
)

func TestConstraints_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Constraints
		want Constraints
	}{
		{"negative", Constraints{MinWidth: -5, MaxWidth: -1, MinHeight: -3, MaxHeight: 10}, Constraints{MaxHeight: 10}},
		{"nan", Constraints{MinWidth: math.NaN(), MaxWidth: math.NaN(), MaxHeight: 4}, Constraints{MaxHeight: 4}},
		{"min above max", Constraints{MinWidth: 20, MaxWidth: 10, MinHeight: 5, MaxHeight: 5}, Constraints{MinWidth: 10, MaxWidth: 10, MinHeight: 5, MaxHeight: 5}},
		{"infinite", Constraints{MaxWidth: math.Inf(1), MaxHeight: 1}, Constraints{MaxWidth: Unbounded, MaxHeight: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestConstraints_Constrain(t *testing.T) {
	c := Constraints{MinWidth: 10, MaxWidth: 100, MinHeight: 0, MaxHeight: 20}
	assert.Equal(t, graphics.Size{Width: 10, Height: 20}, c.Constrain(graphics.Size{Width: 2, Height: 50}))
	assert.Equal(t, graphics.Size{Width: 10, Height: 0}, c.Constrain(graphics.Size{Width: math.NaN(), Height: -4}))

	degenerate := Constraints{MinWidth: -1, MaxWidth: -1, MinHeight: -1, MaxHeight: -1}
	assert.Equal(t, graphics.Size{}, degenerate.Constrain(graphics.Size{Width: 30, Height: 30}))
}

func TestConstraints_Deflate(t *testing.T) {
	c := Tight(graphics.Size{Width: 100, Height: 40})
	got := c.Deflate(graphics.EdgeInsetsSymmetric(10, 5))
	assert.Equal(t, Tight(graphics.Size{Width: 80, Height: 30}), got)

	over := c.Deflate(graphics.EdgeInsetsAll(60))
	assert.Equal(t, Constraints{}, over)

	open := Unconstrained().Deflate(graphics.EdgeInsetsAll(4))
	assert.False(t, open.HasBoundedWidth())
}

func TestConstraints_TightLoose(t *testing.T) {
	size := graphics.Size{Width: 30, Height: 12}
	assert.True(t, Tight(size).IsTight())
	assert.False(t, Loose(size).IsTight())
	assert.Equal(t, size, Loose(size).Biggest())
	assert.Equal(t, graphics.Size{}, Loose(size).Smallest())
	assert.Equal(t, Loose(size), Tight(size).Loosen())
	assert.Equal(t, graphics.Size{}, Unconstrained().Biggest())
}

func TestMainAxisAlignment_Spacing(t *testing.T) {
	tests := []struct {
		align           MainAxisAlignment
		spacing, offset float64
	}{
		{MainAxisAlignmentStart, 0, 0},
		{MainAxisAlignmentEnd, 0, 30},
		{MainAxisAlignmentCenter, 0, 15},
		{MainAxisAlignmentSpaceBetween, 15, 0},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			s, o := tt.align.Spacing(30, 3)
			assert.Equal(t, tt.spacing, s)
			assert.Equal(t, tt.offset, o)
		})
	}
	s, o := MainAxisAlignmentCenter.Spacing(-5, 2)
	assert.Zero(t, s)
	assert.Zero(t, o)
}

func TestCrossAxisAlignment_Offset(t *testing.T) {
	assert.Equal(t, 0.0, CrossAxisAlignmentStart.Offset(20, 10))
	assert.Equal(t, 10.0, CrossAxisAlignmentEnd.Offset(20, 10))
	assert.Equal(t, 5.0, CrossAxisAlignmentCenter.Offset(20, 10))
	assert.Equal(t, 0.0, CrossAxisAlignmentCenter.Offset(5, 10))
}

func TestAxis_Helpers(t *testing.T) {
	size := graphics.Size{Width: 3, Height: 7}
	assert.Equal(t, 3.0, AxisHorizontal.Main(size))
	assert.Equal(t, 7.0, AxisVertical.Main(size))
	assert.Equal(t, 3.0, AxisVertical.Cross(size))
	assert.Equal(t, size, AxisVertical.Size(7, 3))
	assert.Equal(t, graphics.Offset{X: 2, Y: 1}, AxisVertical.Offset(1, 2))
	assert.Equal(t, Constraints{MinWidth: 1, MaxWidth: 2, MinHeight: 3, MaxHeight: 4}, AxisHorizontal.Constraints(1, 2, 3, 4))
}

func TestAlignment_Inscribe(t *testing.T) {
	rect := graphics.RectFromLTWH(10, 10, 100, 50)
	size := graphics.Size{Width: 20, Height: 10}
	assert.Equal(t, graphics.RectFromLTWH(10, 10, 20, 10), AlignTopLeft.Inscribe(size, rect))
	assert.Equal(t, graphics.RectFromLTWH(50, 30, 20, 10), AlignCenter.Inscribe(size, rect))
	assert.Equal(t, graphics.RectFromLTWH(90, 50, 20, 10), AlignBottomRight.Inscribe(size, rect))

	big := AlignCenter.Inscribe(graphics.Size{Width: 500, Height: 500}, rect)
	assert.Equal(t, rect, big)
}

func TestDistribute(t *testing.T) {
	assert.Equal(t, []float64{25, 75}, Distribute(100, []float64{1, 3}))
	assert.Equal(t, []float64{50, 50}, Distribute(100, []float64{0, 0}))
	assert.Equal(t, []float64{0, 100}, Distribute(100, []float64{-1, 2}))
	assert.Nil(t, Distribute(100, nil))

	parts := Distribute(100, []float64{1, 1, 1})
	sum := 0.0
	for _, p := range parts {
		sum += p
	}
	assert.Equal(t, 100.0, sum)
	assert.Equal(t, []float64{5, 30, 50}, Offsets(5, []float64{25, 20, 10}))
}

type countingBox struct {
	measured []Constraints
	arranged []graphics.Rect
	onLayout func()
}

func (b *countingBox) Measure(c Constraints) graphics.Size {
	b.measured = append(b.measured, c)
	if b.onLayout != nil {
		b.onLayout()
	}
	return c.Biggest()
}

func (b *countingBox) Arrange(rect graphics.Rect) {
	b.arranged = append(b.arranged, rect)
}

func TestPipeline_FlushRunsOnce(t *testing.T) {
	var p Pipeline
	box := &countingBox{}
	viewport := graphics.RectFromLTWH(0, 0, 320, 240)

	assert.False(t, p.Flush(box, viewport), "clean pipeline must not lay out")

	p.MarkNeedsLayout()
	assert.True(t, p.NeedsLayout())
	assert.True(t, p.Flush(box, viewport))
	assert.False(t, p.NeedsLayout())
	assert.True(t, p.NeedsPaint())
	assert.Equal(t, 1, p.Runs())
	assert.Len(t, box.measured, 1)
	assert.Equal(t, Tight(viewport.Size()), box.measured[0])
	assert.Equal(t, []graphics.Rect{viewport}, box.arranged)

	assert.False(t, p.Flush(box, viewport))
	assert.Equal(t, 1, p.Runs())
}

func TestPipeline_MarksDuringFlushAreAbsorbed(t *testing.T) {
	var p Pipeline
	box := &countingBox{}
	box.onLayout = p.MarkNeedsLayout

	p.MarkNeedsLayout()
	p.Flush(box, graphics.RectFromLTWH(0, 0, 10, 10))
	assert.False(t, p.NeedsLayout())
}

func TestPipeline_NilRoot(t *testing.T) {
	var p Pipeline
	p.MarkNeedsLayout()
	assert.False(t, p.Flush(nil, graphics.Rect{}))
	assert.True(t, p.NeedsLayout())
}

func TestPipeline_PaintFlag(t *testing.T) {
	var p Pipeline
	p.MarkNeedsPaint()
	assert.True(t, p.NeedsPaint())
	assert.False(t, p.NeedsLayout())
	p.ClearPaint()
	assert.False(t, p.NeedsPaint())
}
