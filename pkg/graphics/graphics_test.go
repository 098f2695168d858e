package graphics

import (
	"errors"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestRect_Contains_HalfOpen(t *testing.T) {
	a := RectFromLTWH(0, 0, 50, 20)
	b := RectFromLTWH(50, 0, 50, 20)

	edge := Offset{X: 50, Y: 5}
	assert.False(t, a.Contains(edge))
	assert.True(t, b.Contains(edge))
	assert.True(t, a.Contains(Offset{X: 0, Y: 0}))
	assert.False(t, a.Contains(Offset{X: 10, Y: 20}))
}

func TestRectFromLTWH_NegativeClamps(t *testing.T) {
	r := RectFromLTWH(10, 10, -5, math.NaN())
	assert.Equal(t, 0.0, r.Width())
	assert.Equal(t, 0.0, r.Height())
	assert.True(t, r.IsEmpty())
}

func TestRect_Intersect(t *testing.T) {
	outer := RectFromLTWH(0, 0, 100, 100)
	tests := []struct {
		name  string
		other Rect
		want  Rect
	}{
		{"inside", RectFromLTWH(10, 10, 20, 20), RectFromLTWH(10, 10, 20, 20)},
		{"overhang", RectFromLTWH(90, 90, 20, 20), RectFromLTWH(90, 90, 10, 10)},
		{"disjoint", RectFromLTWH(200, 200, 10, 10), Rect{Left: 100, Top: 100, Right: 100, Bottom: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outer.Intersect(tt.other)
			assert.Equal(t, tt.want, got)
			assert.True(t, outer.ContainsRect(got))
		})
	}
}

func TestRect_Deflate(t *testing.T) {
	r := RectFromLTWH(0, 0, 100, 40)
	assert.Equal(t, RectFromLTWH(4, 2, 92, 36), r.Deflate(EdgeInsetsSymmetric(4, 2)))

	over := r.Deflate(EdgeInsetsAll(80))
	assert.True(t, over.IsEmpty())
	assert.True(t, r.ContainsRect(over))
}

func TestColor_ParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", ColorWhite},
		{"#FF0000", ColorRed},
		{"00ff0080", RGBA8(0, 0xFF, 0, 0x80)},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseHex("#12345")
	assert.Error(t, err)
	_, err = ParseHex("#zzzzzz")
	assert.Error(t, err)
}

func TestColor_TextRoundTrip(t *testing.T) {
	c := RGBA8(0x12, 0x34, 0x56, 0x78)
	text, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#12345678", string(text))

	var back Color
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, c, back)
}

func TestColor_ImplementsImageColor(t *testing.T) {
	var c color.Color = RGBA8(0xFF, 0, 0, 0x80)
	r, g, b, a := c.RGBA()
	assert.Equal(t, uint32(0x8080), a)
	assert.Equal(t, a, r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}

func TestMeasureText_Basic(t *testing.T) {
	m, err := MeasureText("abc", FontBasic)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 21, Height: 13}, m.Size)
	assert.Equal(t, 1, m.Lines)

	multi, err := MeasureText("ab\nabcd", "")
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 28, Height: 26}, multi.Size)
	assert.Equal(t, 2, multi.Lines)
}

func TestMeasureText_UnknownFont(t *testing.T) {
	_, err := MeasureText("x", "no-such-font")
	assert.Error(t, err)
}

func TestRegisterFont(t *testing.T) {
	require.Error(t, RegisterFont("", basicfont.Face7x13))
	require.Error(t, RegisterFont("x", nil))
	require.NoError(t, RegisterFont("alias7x13", basicfont.Face7x13))

	m, err := MeasureText("ab", "alias7x13")
	require.NoError(t, err)
	assert.Equal(t, 14.0, m.Size.Width)
}

func TestRecorder_RecordsInOrder(t *testing.T) {
	var r Recorder
	require.NoError(t, r.DrawRect(RectFromLTWH(0, 0, 10, 10), FillPaint(ColorRed)))
	require.NoError(t, r.DrawText("hi", Offset{X: 1, Y: 2}, TextStyle{Color: ColorBlack}))
	require.NoError(t, r.DrawLine(Offset{}, Offset{X: 5}, StrokePaint(ColorBlue, 1)))

	ops := r.Ops()
	require.Len(t, ops, 3)
	assert.Equal(t, OpRect, ops[0].Kind)
	assert.Equal(t, OpText, ops[1].Kind)
	assert.Equal(t, OpLine, ops[2].Kind)
	assert.Equal(t, []string{"hi"}, r.Texts())
	assert.Equal(t, 1, r.Count(OpRect))
}

func TestRecorder_FailAt(t *testing.T) {
	boom := errors.New("bus error")
	r := Recorder{FailAt: 2, Err: boom}
	require.NoError(t, r.DrawCircle(Offset{}, 3, FillPaint(ColorRed)))
	assert.ErrorIs(t, r.DrawCircle(Offset{}, 3, FillPaint(ColorRed)), boom)
	require.NoError(t, r.DrawCircle(Offset{}, 3, FillPaint(ColorRed)))
	assert.Equal(t, 2, r.Count(OpCircle))

	r.Reset()
	r.Err = nil
	require.NoError(t, r.DrawCircle(Offset{}, 3, FillPaint(ColorRed)))
	assert.ErrorIs(t, r.DrawCircle(Offset{}, 3, FillPaint(ColorRed)), ErrInjected)
}

func TestRecorder_Replay(t *testing.T) {
	var src, dst Recorder
	require.NoError(t, src.DrawRect(RectFromLTWH(0, 0, 4, 4), FillPaint(ColorRed)))
	require.NoError(t, src.DrawText("x", Offset{}, TextStyle{}))
	require.NoError(t, src.Replay(&dst))
	assert.Equal(t, src.Ops(), dst.Ops())
}

func TestImageSurface_FillAndStroke(t *testing.T) {
	s := NewImageSurface(10, 10)
	s.Clear(ColorWhite)
	require.NoError(t, s.DrawRect(RectFromLTWH(2, 2, 4, 4), FillPaint(ColorRed)))
	assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, s.Image().RGBAAt(3, 3))
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, s.Image().RGBAAt(7, 7))

	require.NoError(t, s.DrawRect(RectFromLTWH(0, 0, 10, 10), StrokePaint(ColorBlue, 1)))
	assert.Equal(t, color.RGBA{B: 0xFF, A: 0xFF}, s.Image().RGBAAt(0, 5))
	assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, s.Image().RGBAAt(3, 3))
}

func TestImageSurface_LineAndCircle(t *testing.T) {
	s := NewImageSurface(20, 20)
	require.NoError(t, s.DrawLine(Offset{X: 0, Y: 0}, Offset{X: 9, Y: 9}, StrokePaint(ColorBlack, 1)))
	assert.Equal(t, uint8(0xFF), s.Image().RGBAAt(5, 5).A)
	assert.Equal(t, uint8(0), s.Image().RGBAAt(5, 6).A)

	require.NoError(t, s.DrawCircle(Offset{X: 15, Y: 15}, 3, FillPaint(ColorGreen)))
	assert.Equal(t, color.RGBA{G: 0xFF, A: 0xFF}, s.Image().RGBAAt(15, 15))
	assert.Equal(t, uint8(0), s.Image().RGBAAt(19, 19).A)
}

func TestImageSurface_ClipsOffscreenPrimitives(t *testing.T) {
	start := time.Now()
	s := NewImageSurface(16, 16)
	black := StrokePaint(ColorBlack, 1)

	require.NoError(t, s.DrawLine(Offset{X: 0, Y: 8}, Offset{X: 2e8, Y: 8}, black))
	assert.Equal(t, uint8(0xFF), s.Image().RGBAAt(15, 8).A)
	assert.Equal(t, uint8(0), s.Image().RGBAAt(15, 7).A)

	require.NoError(t, s.DrawLine(Offset{X: -10, Y: -10}, Offset{X: 30, Y: 30}, black))
	assert.Equal(t, uint8(0xFF), s.Image().RGBAAt(3, 3).A, "clipped diagonal keeps its slope")
	assert.Equal(t, uint8(0), s.Image().RGBAAt(3, 4).A)

	s = NewImageSurface(16, 16)
	require.NoError(t, s.DrawLine(Offset{X: -100, Y: -100}, Offset{X: -50, Y: -40}, black))
	require.NoError(t, s.DrawCircle(Offset{X: 8, Y: 8}, 2e4, StrokePaint(ColorBlack, 1)))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			require.Zero(t, s.Image().RGBAAt(x, y).A, "nothing inked at %d,%d", x, y)
		}
	}

	require.NoError(t, s.DrawCircle(Offset{X: 8, Y: 8}, 2e4, FillPaint(ColorGreen)))
	assert.Equal(t, color.RGBA{G: 0xFF, A: 0xFF}, s.Image().RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{G: 0xFF, A: 0xFF}, s.Image().RGBAAt(15, 15))

	require.NoError(t, s.DrawRect(RectFromLTWH(-1e300, -1e300, 2e300, 2e300), FillPaint(ColorRed)))
	assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, s.Image().RGBAAt(8, 8))

	assert.Less(t, time.Since(start), time.Second)
}

func TestImageSurface_RejectsNonFinite(t *testing.T) {
	s := NewImageSurface(8, 8)
	nan, inf := math.NaN(), math.Inf(1)
	paint := FillPaint(ColorBlack)

	assert.ErrorIs(t, s.DrawLine(Offset{X: nan}, Offset{X: 4, Y: 4}, paint), ErrNonFinite)
	assert.ErrorIs(t, s.DrawLine(Offset{}, Offset{X: inf}, paint), ErrNonFinite)
	assert.ErrorIs(t, s.DrawCircle(Offset{X: 4, Y: 4}, inf, paint), ErrNonFinite)
	assert.ErrorIs(t, s.DrawCircle(Offset{Y: nan}, 2, paint), ErrNonFinite)
	assert.ErrorIs(t, s.DrawRect(Rect{Left: nan, Right: 4, Bottom: 4}, paint), ErrNonFinite)
	assert.ErrorIs(t, s.DrawText("x", Offset{X: inf}, TextStyle{Color: ColorBlack}), ErrNonFinite)
	assert.ErrorIs(t, s.DrawLine(Offset{}, Offset{X: 4}, StrokePaint(ColorBlack, nan)), ErrNonFinite)
}

func TestImageSurface_Text(t *testing.T) {
	s := NewImageSurface(40, 20)
	require.NoError(t, s.DrawText("W", Offset{X: 2, Y: 2}, TextStyle{Color: ColorBlack}))
	inked := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if s.Image().RGBAAt(x, y).A != 0 {
				inked++
			}
		}
	}
	assert.Positive(t, inked)

	err := s.DrawText("W", Offset{}, TextStyle{Font: "missing"})
	assert.Error(t, err)
}
