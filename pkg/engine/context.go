// Package engine runs the per-frame cycle of an ember widget tree.
//
// A Context owns the tree, the bounded event queue and the interaction state
// (focus, pointer capture, hover). Each frame drains the queue, dispatches
// every event, re-runs layout if anything invalidated it and renders the tree
// onto a caller-supplied graphics.Surface:
//
//	ctx, err := engine.New(root, engine.WithViewport(graphics.Size{Width: 128, Height: 64}))
//	...
//	go input.Run(ctx.Queue())        // producer goroutine
//	for range ticker.C {
//	    if err := ctx.Frame(display); err != nil {
//	        log.Print(err)
//	    }
//	}
//
// The Context is not safe for concurrent use. Only the queue may be written
// from another goroutine.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/dispatch"
	"github.com/go-drift/ember/pkg/errors"
	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/rendering"
	"github.com/go-drift/ember/pkg/theme"
)

// Stats counts the work a Context has done since it was created.
type Stats struct {
	// Frames is the number of render passes that completed.
	Frames int
	// Skipped is the number of Draw calls skipped because nothing changed.
	Skipped int
	// DrawErrors is the number of render passes that failed.
	DrawErrors int
	// Layouts is the number of layout passes run.
	Layouts int
	// Events is the number of events dispatched.
	Events int
	// Dropped is the number of events discarded by the queue overflow policy.
	Dropped uint64
	// Panics is the number of recovered handler panics.
	Panics int
}

// Context owns a widget tree and drives it frame by frame.
type Context struct {
	pipeline   layout.Pipeline
	tree       *core.Tree
	queue      *event.Queue
	dispatcher *dispatch.Dispatcher
	renderer   rendering.Renderer

	viewport    graphics.Size
	style       *theme.Style
	fingerprint uint64

	logger  *slog.Logger
	handler errors.Handler
	trace   *FrameTraceBuffer
	stats   Stats
}

// New creates a Context with root as the tree root. Root may be nil and set
// later with SetRoot; it must not be attached to another tree.
func New(root core.Widget, opts ...Option) (*Context, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Context{
		queue:    event.NewQueue(cfg.capacity, cfg.policy),
		viewport: cfg.viewport,
		logger:   cfg.logger,
		handler:  cfg.handler,
	}
	c.tree = core.NewTree(&c.pipeline)
	c.dispatcher = dispatch.New(c.tree)
	c.dispatcher.SetLogger(c.logger)
	c.dispatcher.SetErrorHandler(c.handler)
	c.renderer.Debug = cfg.debug
	if cfg.traceCap > 0 {
		c.trace = NewFrameTraceBuffer(cfg.traceCap, cfg.traceLimit)
	}
	c.SetStyle(cfg.style)

	if err := c.tree.SetRoot(root); err != nil {
		return nil, err
	}
	c.logger.Debug("context created",
		"viewport", c.viewport.String(),
		"queue", c.queue.Cap(),
		"overflow", c.queue.Policy().String())
	return c, nil
}

// Queue returns the event queue. A single producer goroutine may push into it
// while the Context runs frames on another.
func (c *Context) Queue() *event.Queue {
	return c.queue
}

// PushEvent enqueues ev for the next Update. It reports false when the queue
// is full and the overflow policy discarded ev itself.
func (c *Context) PushEvent(ev event.Event) bool {
	if c.queue.Push(ev) {
		return true
	}
	if ev != nil {
		c.logger.Debug("event dropped: queue full", "event", ev.String(), "capacity", c.queue.Cap())
	}
	return false
}

// Update runs one dispatch cycle: it flushes pending layout so hit testing
// sees current geometry, dispatches the queued events in FIFO order and lays
// the tree out again if dispatch invalidated it. Events pushed by handlers
// while draining wait for the next Update. It returns the number of events
// dispatched.
func (c *Context) Update() int {
	c.flushLayout()
	n := c.drain()
	c.flushLayout()
	return n
}

func (c *Context) drain() int {
	return c.queue.Drain(0, func(ev event.Event) {
		c.dispatch(ev)
	})
}

// Dispatch runs ev through the tree immediately, bypassing the queue.
func (c *Context) Dispatch(ev event.Event) (dispatch.Result, error) {
	c.flushLayout()
	res, err := c.dispatch(ev)
	c.flushLayout()
	return res, err
}

func (c *Context) dispatch(ev event.Event) (dispatch.Result, error) {
	if ev == nil {
		return dispatch.Result{}, nil
	}
	res, err := c.dispatcher.Dispatch(ev)
	c.stats.Events++
	if errors.KindOf(err) == errors.KindPanic {
		c.stats.Panics++
	}
	// Handlers may have removed or hidden nodes.
	c.dispatcher.Prune()
	if c.logger.Enabled(context.Background(), slog.LevelDebug) {
		c.logger.Debug("event dispatched",
			"event", ev.String(),
			"target", res.Target,
			"consumer", res.Consumer,
			"focusMoved", res.FocusMoved)
	}
	return res, err
}

func (c *Context) flushLayout() bool {
	root := c.tree.Root()
	if root == nil {
		return false
	}
	if !c.pipeline.Flush(root, graphics.RectFromOffsetSize(graphics.Offset{}, c.viewport)) {
		return false
	}
	c.logger.Debug("layout", "run", c.pipeline.Runs(), "viewport", c.viewport.String())
	return true
}

// Draw renders the tree onto s. Pending layout runs first. When nothing has
// changed since the last successful Draw the pass is skipped. A surface failure
// is returned as an *errors.Error of kind KindSurface and leaves the tree
// marked for redraw, so the next Draw retries the whole pass.
func (c *Context) Draw(s graphics.Surface) error {
	c.flushLayout()
	if !c.pipeline.NeedsPaint() {
		c.stats.Skipped++
		return nil
	}
	if err := c.renderer.Render(c.tree.Root(), s, c.style); err != nil {
		c.stats.DrawErrors++
		c.logger.Debug("render failed", "err", err)
		return err
	}
	c.pipeline.ClearPaint()
	c.stats.Frames++
	return nil
}

// Frame runs Update followed by Draw. With WithFrameTrace it also records a
// FrameSample.
func (c *Context) Frame(s graphics.Surface) error {
	start := time.Now()
	runs := c.pipeline.Runs()

	c.flushLayout()
	layoutTime := time.Since(start)

	dispatchStart := time.Now()
	events := c.drain()
	dispatchTime := time.Since(dispatchStart)

	layoutStart := time.Now()
	c.flushLayout()
	layoutTime += time.Since(layoutStart)

	renderStart := time.Now()
	skipped := !c.pipeline.NeedsPaint()
	err := c.Draw(s)
	renderTime := time.Since(renderStart)

	if c.trace != nil {
		frameTime := time.Since(start)
		c.trace.Add(FrameSample{
			Timestamp: start.UnixMilli(),
			FrameMs:   durationToMillis(frameTime),
			Phases: FramePhaseTimings{
				DispatchMs: durationToMillis(dispatchTime),
				LayoutMs:   durationToMillis(layoutTime),
				RenderMs:   durationToMillis(renderTime),
			},
			Counts: FrameCounts{
				Events:    events,
				Layouts:   c.pipeline.Runs() - runs,
				NodeCount: c.tree.Len(),
			},
			Skipped: skipped,
		}, frameTime)
	}
	return err
}

// Trace returns the recorded frame samples. It is empty unless the Context
// was created with WithFrameTrace.
func (c *Context) Trace() FrameTimeline {
	if c.trace == nil {
		return FrameTimeline{}
	}
	return c.trace.Snapshot()
}

// Root returns the tree root, or nil.
func (c *Context) Root() core.Widget {
	return c.tree.Root()
}

// Tree returns the underlying tree.
func (c *Context) Tree() *core.Tree {
	return c.tree
}

// SetRoot replaces the whole tree. The old tree is destroyed and focus,
// capture and hover are reset.
func (c *Context) SetRoot(w core.Widget) error {
	if err := c.tree.SetRoot(w); err != nil {
		return err
	}
	c.dispatcher.Reset()
	return nil
}

// Append attaches w as the last child of parent and returns w's ID.
func (c *Context) Append(parent core.ID, w core.Widget) (core.ID, error) {
	return c.tree.Append(parent, w)
}

// Insert attaches w at index among parent's children and returns w's ID.
func (c *Context) Insert(parent core.ID, index int, w core.Widget) (core.ID, error) {
	return c.tree.Insert(parent, index, w)
}

// Remove destroys the node id and its subtree. Focus, capture or hover held
// inside the subtree is dropped.
func (c *Context) Remove(id core.ID) error {
	if err := c.tree.Remove(id); err != nil {
		return err
	}
	c.dispatcher.Prune()
	return nil
}

// Find resolves id, returning nil when it is not in the tree.
func (c *Context) Find(id core.ID) core.Widget {
	return c.tree.Find(id)
}

// FindByName returns the first node in tree order with the given name.
func (c *Context) FindByName(name string) core.Widget {
	return c.tree.FindByName(name)
}

// PathOf returns the IDs from the root down to id, or nil.
func (c *Context) PathOf(id core.ID) []core.ID {
	return core.IDs(c.tree.Path(id))
}

// Viewport returns the size the root is laid out to fill.
func (c *Context) Viewport() graphics.Size {
	return c.viewport
}

// Resize changes the viewport and schedules layout.
func (c *Context) Resize(size graphics.Size) {
	size = size.NonNegative()
	if size == c.viewport {
		return
	}
	c.viewport = size
	c.pipeline.MarkNeedsLayout()
}

// Style returns the context style.
func (c *Context) Style() *theme.Style {
	return c.style
}

// SetStyle replaces the context style; nil selects theme.Default. Layout and
// redraw are scheduled only when the style's fingerprint differs from the
// current one. It reports whether the style changed.
func (c *Context) SetStyle(s *theme.Style) bool {
	if s == nil {
		s = theme.Default()
	}
	fp := s.Fingerprint()
	if c.style != nil && fp == c.fingerprint {
		return false
	}
	c.style, c.fingerprint = s, fp
	c.tree.SetStyle(s)
	c.pipeline.MarkNeedsLayout()
	c.logger.Debug("style changed", "name", s.Name, "fingerprint", fp)
	return true
}

// SetDebug toggles the debug overlay.
func (c *Context) SetDebug(on bool) {
	if c.renderer.Debug == on {
		return
	}
	c.renderer.Debug = on
	c.pipeline.MarkNeedsPaint()
}

// RequestLayout schedules a layout pass for the next Update or Draw.
func (c *Context) RequestLayout() {
	c.pipeline.MarkNeedsLayout()
}

// RequestRedraw marks the tree dirty so the next Draw renders.
func (c *Context) RequestRedraw() {
	c.pipeline.MarkNeedsPaint()
}

// SetFocus focuses id if it is focusable.
func (c *Context) SetFocus(id core.ID) bool {
	return c.dispatcher.SetFocus(id)
}

// FocusNext moves focus to the next focusable node in tree order, wrapping.
func (c *Context) FocusNext() bool {
	return c.dispatcher.FocusNext()
}

// FocusPrev moves focus to the previous focusable node in tree order, wrapping.
func (c *Context) FocusPrev() bool {
	return c.dispatcher.FocusPrev()
}

// ClearFocus removes focus.
func (c *Context) ClearFocus() {
	c.dispatcher.ClearFocus()
}

// Focused returns the focused node's ID, or zero.
func (c *Context) Focused() core.ID {
	return c.dispatcher.Interaction().Focused
}

// Captured returns the pointer capture target's ID, or zero.
func (c *Context) Captured() core.ID {
	return c.dispatcher.Interaction().Captured
}

// Hovered returns the hovered path from the root down, or nil.
func (c *Context) Hovered() []core.ID {
	return c.dispatcher.Interaction().Hovered
}

// NeedsLayout reports whether a layout pass is pending.
func (c *Context) NeedsLayout() bool {
	return c.pipeline.NeedsLayout()
}

// NeedsRedraw reports whether the next Draw will render.
func (c *Context) NeedsRedraw() bool {
	return c.pipeline.NeedsPaint()
}

// Stats returns the work counters.
func (c *Context) Stats() Stats {
	s := c.stats
	s.Layouts = c.pipeline.Runs()
	s.Dropped = c.queue.Dropped()
	return s
}

// Report sends err to the context's error handler.
func (c *Context) Report(err *errors.Error) {
	errors.ReportTo(c.handler, err)
}
