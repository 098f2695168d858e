package testing

import (
	"testing"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/testing/internal/testbed"
	"github.com/go-drift/ember/pkg/widgets"
)

const finderScreen = `column {
	row #top {
		label "Name"
		button #ok "OK"
		toggle "Wi-Fi"
	}
	panel #bottom {
		label "Name: Ada"
	}
}`

func pumpFinderScreen(t *testing.T) *WidgetTester {
	t.Helper()
	tester := NewWidgetTesterWithT(t)
	if err := tester.PumpMarkup(finderScreen); err != nil {
		t.Fatal(err)
	}
	return tester
}

func TestByType(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	if err := tester.PumpWidget(testbed.NewCounter(0, nil)); err != nil {
		t.Fatal(err)
	}

	result := tester.Find(ByType[*widgets.Label]())
	if !result.Exists() {
		t.Fatal("expected to find Label widget")
	}
	if text := result.First().(*widgets.Label).Text; text != "0" {
		t.Errorf("expected text '0', got %q", text)
	}
	if !tester.Find(ByType[*testbed.Counter]()).Exists() {
		t.Error("expected to find Counter widget")
	}
	if tester.Find(ByType[*widgets.Slider]()).Exists() {
		t.Error("should not find Slider widget")
	}
}

func TestByText(t *testing.T) {
	tester := pumpFinderScreen(t)

	if got := tester.Find(ByText("Name")).Count(); got != 1 {
		t.Errorf("expected exactly one 'Name', got %d", got)
	}
	if !tester.Find(ByText("OK")).Exists() {
		t.Error("expected to find button text 'OK'")
	}
	if _, ok := tester.Find(ByText("Wi-Fi")).First().(*widgets.Toggle); !ok {
		t.Error("expected toggle label to match")
	}
	if tester.Find(ByText("Ada")).Exists() {
		t.Error("should not match a partial text")
	}
}

func TestByTextContaining(t *testing.T) {
	tester := pumpFinderScreen(t)

	if got := tester.Find(ByTextContaining("Name")).Count(); got != 2 {
		t.Errorf("expected two labels containing 'Name', got %d", got)
	}
	if tester.Find(ByTextContaining("zzz")).Exists() {
		t.Error("should not find text containing 'zzz'")
	}
}

func TestByName_ByID(t *testing.T) {
	tester := pumpFinderScreen(t)

	ok := tester.Find(ByName("ok"))
	if _, isButton := ok.First().(*widgets.Button); !isButton {
		t.Fatalf("expected button, got %T", ok.First())
	}
	id := ok.ID()
	if id == 0 {
		t.Fatal("expected an attached widget")
	}
	if got := tester.Find(ByID(id)).First(); got != ok.First() {
		t.Error("expected ByID to find the same widget")
	}
	if tester.Find(ByID(0)).Exists() {
		t.Error("ByID(0) should match nothing")
	}
	if tester.Find(ByName("missing")).ID() != 0 {
		t.Error("expected zero ID for no match")
	}
}

func TestDescendant(t *testing.T) {
	tester := pumpFinderScreen(t)

	result := tester.Find(Descendant(ByName("bottom"), ByTextContaining("Name")))
	if result.Count() != 1 {
		t.Fatalf("expected one descendant, got %d", result.Count())
	}
	if text := result.First().(*widgets.Label).Text; text != "Name: Ada" {
		t.Errorf("expected 'Name: Ada', got %q", text)
	}
	if tester.Find(Descendant(ByName("ok"), ByType[*widgets.Label]())).Exists() {
		t.Error("a leaf has no descendants")
	}
}

func TestAncestor(t *testing.T) {
	tester := pumpFinderScreen(t)

	result := tester.Find(Ancestor(ByText("OK"), ByType[*widgets.Flex]()))
	if result.Count() != 2 {
		t.Fatalf("expected column and row, got %d", result.Count())
	}
	if result.At(1).Base().Name() != "top" {
		t.Errorf("expected row second in tree order, got %q", result.At(1).Base().Name())
	}
	if tester.Find(Ancestor(ByText("nope"), ByType[*widgets.Flex]())).Exists() {
		t.Error("expected no ancestors of nothing")
	}
}

func TestByPredicate(t *testing.T) {
	tester := pumpFinderScreen(t)

	focusable := tester.Find(ByPredicate(core.CanFocus))
	if focusable.Count() != 2 {
		t.Errorf("expected button and toggle, got %d", focusable.Count())
	}
}

func TestFinderResult_Panics(t *testing.T) {
	tester := pumpFinderScreen(t)
	result := tester.Find(ByText("nope"))

	if result.FirstOrNil() != nil {
		t.Error("expected nil")
	}
	assertPanics(t, func() { result.First() })
	assertPanics(t, func() { tester.Find(ByText("OK")).At(3) })
}

func assertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	fn()
}
