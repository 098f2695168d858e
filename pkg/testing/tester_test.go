package testing

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/markup"
	"github.com/go-drift/ember/pkg/testing/internal/testbed"
	"github.com/go-drift/ember/pkg/theme"
	"github.com/go-drift/ember/pkg/widgets"
)

func TestNewWidgetTester_Defaults(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	if tester.size.Width != DefaultTestWidth || tester.size.Height != DefaultTestHeight {
		t.Errorf("expected default size %dx%d, got %vx%v", DefaultTestWidth, DefaultTestHeight, tester.size.Width, tester.size.Height)
	}
	if tester.Root() != nil {
		t.Error("expected no root before PumpWidget")
	}
	if err := tester.Pump(); !errors.Is(err, ErrNotMounted) {
		t.Errorf("expected ErrNotMounted, got %v", err)
	}
	if err := tester.Tap(ByText("x")); err == nil {
		t.Error("expected Tap to fail without a widget")
	}
}

func TestPumpWidget_MountsTree(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	if err := tester.PumpWidget(widgets.NewLabel("hello")); err != nil {
		t.Fatal(err)
	}
	if tester.Root() == nil {
		t.Fatal("expected root after PumpWidget")
	}
	if got := tester.Root().Base().Rect(); got != graphics.RectFromLTWH(0, 0, DefaultTestWidth, DefaultTestHeight) {
		t.Errorf("expected root to fill the viewport, got %v", got)
	}
	if tester.Frames() != 1 {
		t.Errorf("expected one frame, got %d", tester.Frames())
	}
	if texts := tester.Recorder().Texts(); len(texts) != 1 || texts[0] != "hello" {
		t.Errorf("expected [hello] drawn, got %v", texts)
	}
}

func TestPump_SkipsCleanFrames(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	if err := tester.PumpWidget(widgets.NewLabel("a")); err != nil {
		t.Fatal(err)
	}
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}
	if tester.Frames() != 1 {
		t.Errorf("expected clean pump to skip drawing, got %d frames", tester.Frames())
	}
	if len(tester.Recorder().Ops()) == 0 {
		t.Error("expected the last frame's operations to be kept")
	}
	if stats := tester.Context().Stats(); stats.Skipped != 1 {
		t.Errorf("expected one skipped draw, got %d", stats.Skipped)
	}
}

func TestTap_Counter(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	var taps []int
	counter := testbed.NewCounter(3, func(n int) { taps = append(taps, n) })
	if err := tester.PumpWidget(counter); err != nil {
		t.Fatal(err)
	}

	if err := tester.Tap(ByText("+")); err != nil {
		t.Fatal(err)
	}
	if err := tester.Tap(ByText("+")); err != nil {
		t.Fatal(err)
	}
	if counter.Count != 5 {
		t.Errorf("expected count 5, got %d", counter.Count)
	}
	if len(taps) != 2 || taps[1] != 5 {
		t.Errorf("expected taps [4 5], got %v", taps)
	}
	if !tester.Find(ByText("5")).Exists() {
		t.Error("expected label to show 5")
	}
	if tester.Frames() < 2 {
		t.Errorf("expected redraws after taps, got %d frames", tester.Frames())
	}
	if texts := tester.Recorder().Texts(); len(texts) == 0 || texts[0] != "5" {
		t.Errorf("expected the new count drawn first, got %v", texts)
	}
}

func TestTap_MissingWidget(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	if err := tester.PumpWidget(widgets.NewLabel("a")); err != nil {
		t.Fatal(err)
	}
	err := tester.Tap(ByText("nope"))
	if err == nil || !strings.Contains(err.Error(), `ByText("nope")`) {
		t.Errorf("expected finder description in error, got %v", err)
	}
}

func TestPumpMarkup_PressKeys(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	reg := markup.NewRegistry()
	var saved int
	reg.Handle("save", func() { saved++ })
	tester.SetRegistry(reg)

	err := tester.PumpMarkup(`column {
		button #cancel "Cancel"
		button #save "Save" action=save
	}`)
	if err != nil {
		t.Fatal(err)
	}

	if err := tester.Press(event.KeyTab, event.KeyTab); err != nil {
		t.Fatal(err)
	}
	if got := tester.Find(Focused()).FirstOrNil(); got == nil || got.Base().Name() != "save" {
		t.Fatalf("expected save focused, got %v", got)
	}
	if err := tester.PressNamed("enter"); err != nil {
		t.Fatal(err)
	}
	if saved != 1 {
		t.Errorf("expected save action once, got %d", saved)
	}
	if !tester.LastResult().Consumed {
		t.Error("expected the key-up to be consumed")
	}
	if err := tester.PressNamed("warp"); err == nil {
		t.Error("expected unknown key name to fail")
	}
}

func TestPumpMarkup_Error(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	if err := tester.PumpMarkup(`row { widget }`); err == nil {
		t.Fatal("expected build error")
	}
	if tester.Root() != nil {
		t.Error("expected nothing mounted after a failed build")
	}
}

func TestDrag_Slider(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Size{Width: 100, Height: 10})
	slider := widgets.NewSlider(0, 100, 0, nil)
	if err := tester.PumpWidget(slider); err != nil {
		t.Fatal(err)
	}

	if err := tester.Drag(ByType[*widgets.Slider](), graphics.Offset{X: 30}); err != nil {
		t.Fatal(err)
	}
	if slider.Value != 80 {
		t.Errorf("expected drag to end at 80, got %v", slider.Value)
	}
	if tester.Context().Captured() != 0 {
		t.Error("expected capture released after drag")
	}
}

func TestHover(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Size{Width: 100, Height: 20})
	a := widgets.NewButton("A", nil).WithSize(50, 0)
	b := widgets.NewButton("B", nil).WithSize(50, 0)
	if err := tester.PumpWidget(widgets.NewRow(a, b)); err != nil {
		t.Fatal(err)
	}

	if err := tester.Hover(ByText("B")); err != nil {
		t.Fatal(err)
	}
	if !b.Hovered() || a.Hovered() {
		t.Error("expected only B hovered")
	}
}

func TestQueue_Overflow(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	if err := tester.PumpWidget(widgets.NewLabel("a")); err != nil {
		t.Fatal(err)
	}
	evs := make([]event.Event, 70)
	for i := range evs {
		evs[i] = event.PointerMove{Pos: graphics.Offset{X: float64(i)}}
	}
	accepted, err := tester.Queue(evs...)
	if err != nil {
		t.Fatal(err)
	}
	if accepted != 64 {
		t.Errorf("expected drop-newest to reject pushes past capacity, got %d accepted", accepted)
	}
	if got := tester.Context().Stats().Dropped; got != 6 {
		t.Errorf("expected 6 dropped, got %d", got)
	}
}

func TestSetSizeAndStyle_Live(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	if err := tester.PumpWidget(widgets.NewLabel("a")); err != nil {
		t.Fatal(err)
	}
	tester.SetSize(graphics.Size{Width: 50, Height: 40})
	tester.SetStyle(theme.Dark())
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}
	if got := tester.Root().Base().Rect().Width(); got != 50 {
		t.Errorf("expected width 50 after resize, got %v", got)
	}
	if tester.Context().Style().Name != theme.Dark().Name {
		t.Errorf("expected dark style, got %q", tester.Context().Style().Name)
	}
	if tester.Frames() != 2 {
		t.Errorf("expected a redraw after resize, got %d frames", tester.Frames())
	}
}

func TestDebugOverlay(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Size{Width: 100, Height: 20})
	tester.SetDebug(true)
	if err := tester.PumpWidget(widgets.NewLabel("a")); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, s := range tester.Recorder().Texts() {
		if s == "#1 100x20" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected debug overlay label, got %v", tester.Recorder().Texts())
	}
}
