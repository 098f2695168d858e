package testing

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/dispatch"
	"github.com/go-drift/ember/pkg/engine"
	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/markup"
	"github.com/go-drift/ember/pkg/theme"
)

const (
	// DefaultTestWidth is the default logical width for the test surface.
	DefaultTestWidth = 320
	// DefaultTestHeight is the default logical height for the test surface.
	DefaultTestHeight = 240
)

// ErrNotMounted is returned when an operation needs a pumped widget.
var ErrNotMounted = errors.New("no widget mounted")

// WidgetTester drives an engine.Context against a recording surface.
// It runs the same dispatch, layout and render phases as a real frame loop;
// the recorder keeps the operations of the last drawn frame.
type WidgetTester struct {
	ctx      *engine.Context
	size     graphics.Size
	style    *theme.Style
	debug    bool
	registry *markup.Registry
	logs     bytes.Buffer
	recorder graphics.Recorder
	last     dispatch.Result
	frames   int
}

// NewWidgetTester creates a tester with default test environment.
func NewWidgetTester() *WidgetTester {
	return &WidgetTester{
		size:     graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
		style:    theme.Default(),
		registry: markup.Default(),
	}
}

// NewWidgetTesterWithT creates a tester whose captured log output is written
// to t when the test fails.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(func() {
		if t.Failed() && tester.logs.Len() > 0 {
			t.Logf("context log:\n%s", tester.logs.String())
		}
	})
	return tester
}

// SetSize sets the viewport. After PumpWidget it resizes the live context.
func (t *WidgetTester) SetSize(size graphics.Size) {
	t.size = size
	if t.ctx != nil {
		t.ctx.Resize(size)
	}
}

// SetStyle replaces the style. After PumpWidget it restyles the live context.
func (t *WidgetTester) SetStyle(s *theme.Style) {
	t.style = s
	if t.ctx != nil {
		t.ctx.SetStyle(s)
	}
}

// SetDebug toggles the debug overlay.
func (t *WidgetTester) SetDebug(on bool) {
	t.debug = on
	if t.ctx != nil {
		t.ctx.SetDebug(on)
	}
}

// SetRegistry sets the registry used by PumpMarkup.
func (t *WidgetTester) SetRegistry(r *markup.Registry) {
	t.registry = r
}

// PumpWidget mounts widget in a fresh context and runs one frame.
func (t *WidgetTester) PumpWidget(widget core.Widget) error {
	ctx, err := engine.New(widget,
		engine.WithViewport(t.size),
		engine.WithStyle(t.style),
		engine.WithDebug(t.debug),
		engine.WithLogger(slog.New(slog.NewTextHandler(&t.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)
	if err != nil {
		return err
	}
	t.ctx = ctx
	t.frames = 0
	t.last = dispatch.Result{}
	t.recorder.Reset()
	return t.Pump()
}

// PumpMarkup builds src with the tester's registry and mounts the result.
func (t *WidgetTester) PumpMarkup(src string) error {
	root, err := t.registry.BuildString(src)
	if err != nil {
		return err
	}
	return t.PumpWidget(root)
}

// Pump runs a single frame: queued events, layout and, when anything changed,
// a render pass into the recorder.
func (t *WidgetTester) Pump() error {
	if t.ctx == nil {
		return ErrNotMounted
	}
	t.ctx.Update()
	dirty := t.ctx.NeedsRedraw()
	if dirty {
		t.recorder.Reset()
	}
	if err := t.ctx.Draw(&t.recorder); err != nil {
		return err
	}
	if dirty {
		t.frames++
	}
	return nil
}

// Context returns the live context, or nil before PumpWidget.
func (t *WidgetTester) Context() *engine.Context {
	return t.ctx
}

// Root returns the mounted root widget.
func (t *WidgetTester) Root() core.Widget {
	if t.ctx == nil {
		return nil
	}
	return t.ctx.Root()
}

// Recorder returns the surface holding the last drawn frame.
func (t *WidgetTester) Recorder() *graphics.Recorder {
	return &t.recorder
}

// Frames returns how many frames were drawn since PumpWidget.
func (t *WidgetTester) Frames() int {
	return t.frames
}

// LastResult returns the dispatch result of the most recent event.
func (t *WidgetTester) LastResult() dispatch.Result {
	return t.last
}

// Logs returns the captured context log output.
func (t *WidgetTester) Logs() string {
	return t.logs.String()
}

// Find evaluates a finder against the current widget tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	root := t.Root()
	if root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		widgets: finder.Evaluate(root),
		finder:  finder,
	}
}

// Send dispatches ev immediately and pumps a frame.
func (t *WidgetTester) Send(ev event.Event) error {
	if t.ctx == nil {
		return ErrNotMounted
	}
	res, err := t.ctx.Dispatch(ev)
	t.last = res
	if err != nil {
		return fmt.Errorf("%s: %w", ev, err)
	}
	return t.Pump()
}
