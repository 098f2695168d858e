// Package dispatch routes input events to widgets and owns interaction state.
//
// The dispatcher resolves a target per event (capture target, hit test, or
// focused node), then offers the event to the target and its ancestors in turn
// until one consumes it. Focus, capture and hover are held as node IDs rather
// than widget references, so a node removed from the tree simply stops
// resolving and the stale reference is cleared on next use.
package dispatch

import (
	"log/slog"
	"slices"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/errors"
	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
)

// State is the dispatcher's position in its per-event state machine.
type State int

const (
	StateIdle State = iota
	StateHitTesting
	StateDispatching
)

func (s State) String() string {
	switch s {
	case StateHitTesting:
		return "hit-testing"
	case StateDispatching:
		return "dispatching"
	default:
		return "idle"
	}
}

// Interaction is a snapshot of the global interaction state.
type Interaction struct {
	Focused  core.ID
	Captured core.ID
	// Hovered is the hover path from the root down to the deepest hovered node.
	Hovered []core.ID
}

// Result describes how one event was routed.
type Result struct {
	// Target is the node the event was first offered to, or zero when the
	// event had no target and was dropped.
	Target core.ID
	// Consumer is the node that consumed the event, or zero.
	Consumer core.ID
	// Consumed reports whether any node consumed the event.
	Consumed bool
	// FocusMoved reports whether an unconsumed navigation key moved focus.
	FocusMoved bool
}

// Dispatcher delivers events to the nodes of a tree.
type Dispatcher struct {
	tree    *core.Tree
	state   State
	inter   Interaction
	logger  *slog.Logger
	handler errors.Handler
}

// New returns an idle dispatcher for tree.
func New(tree *core.Tree) *Dispatcher {
	return &Dispatcher{tree: tree, logger: slog.Default()}
}

// SetLogger sets the logger used for debug output.
func (d *Dispatcher) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	d.logger = l
}

// SetErrorHandler sets where recovered handler panics are reported. Nil means
// the global handler.
func (d *Dispatcher) SetErrorHandler(h errors.Handler) {
	d.handler = h
}

// State returns the current state. It is StateIdle outside Dispatch.
func (d *Dispatcher) State() State {
	return d.state
}

// Interaction returns a copy of the interaction state.
func (d *Dispatcher) Interaction() Interaction {
	in := d.inter
	in.Hovered = slices.Clone(d.inter.Hovered)
	return in
}

// Focused returns the focused node, or nil.
func (d *Dispatcher) Focused() core.Widget {
	return d.tree.Find(d.inter.Focused)
}

// Captured returns the pointer capture target, or nil.
func (d *Dispatcher) Captured() core.Widget {
	return d.tree.Find(d.inter.Captured)
}

// Reset drops all interaction state without notifying nodes. It is used when
// the whole tree is replaced.
func (d *Dispatcher) Reset() {
	d.inter = Interaction{}
}

// Prune clears references to nodes that no longer resolve or are hidden.
func (d *Dispatcher) Prune() {
	if f := d.tree.Find(d.inter.Focused); f == nil || !core.CanFocus(f) {
		if f != nil {
			f.Base().SetFocused(false)
		}
		d.inter.Focused = 0
	}
	if c := d.tree.Find(d.inter.Captured); c == nil || !core.VisibleInTree(c) {
		if d.inter.Captured != 0 {
			d.logger.Debug("capture released", "node", d.inter.Captured, "reason", "stale")
		}
		d.inter.Captured = 0
	}
	cut := len(d.inter.Hovered)
	for i, id := range d.inter.Hovered {
		if w := d.tree.Find(id); w == nil || !w.Base().Visible() {
			cut = i
			break
		}
	}
	for _, id := range d.inter.Hovered[cut:] {
		if w := d.tree.Find(id); w != nil {
			w.Base().SetHovered(false)
		}
	}
	d.inter.Hovered = d.inter.Hovered[:cut]
}

// Dispatch routes ev through the tree and returns how it was handled.
//
// Dispatch must not be called from inside a widget's HandleEvent; such calls
// fail with errors.ErrReentrant. A panic in a handler is recovered, reported
// to the error handler and returned as a KindPanic error.
func (d *Dispatcher) Dispatch(ev event.Event) (res Result, err error) {
	const op = "dispatch.Dispatch"
	if d.state != StateIdle {
		return Result{}, errors.New(op, errors.KindDispatch, errors.ErrReentrant)
	}
	if ev == nil {
		return Result{}, nil
	}
	defer func() { d.state = StateIdle }()
	defer errors.RecoverTo(d.handler, op, func(p *errors.PanicError) {
		err = errors.New(op, errors.KindPanic, p)
	})
	d.Prune()

	switch e := ev.(type) {
	case event.Pointer:
		res = d.dispatchPointer(ev, e)
	case event.Keyed:
		res = d.dispatchKey(ev, e)
	default:
		res = d.dispatchCustom(ev)
	}
	if res.Target == 0 {
		d.logger.Debug("event dropped: no target", "event", ev.String())
	}
	return res, nil
}

func (d *Dispatcher) dispatchPointer(ev event.Event, p event.Pointer) Result {
	pos := p.Position()
	kind := ev.Kind()

	target := d.Captured()
	captured := target != nil
	if !captured {
		d.state = StateHitTesting
		target = HitTest(d.tree.Root(), pos)
	}

	if kind == event.KindPointerMove && !captured {
		d.updateHover(target)
	}
	if target == nil {
		return Result{}
	}
	if kind == event.KindPointerDown {
		if f := focusTarget(target); f != nil {
			d.setFocus(f)
		}
	}

	d.state = StateDispatching
	var consumer core.Widget
	if captured {
		consumer = d.deliver(target, ev)
	} else {
		consumer = d.bubble(target, ev)
	}

	switch kind {
	case event.KindPointerDown:
		if pc, ok := consumer.(core.PointerCapturer); ok && pc.CapturesPointer() {
			d.inter.Captured = consumer.Base().ID()
			d.logger.Debug("capture set", "node", d.inter.Captured)
		}
	case event.KindPointerUp:
		if d.inter.Captured != 0 {
			d.logger.Debug("capture released", "node", d.inter.Captured)
			d.inter.Captured = 0
		}
	}
	return result(target, consumer)
}

func (d *Dispatcher) dispatchKey(ev event.Event, k event.Keyed) Result {
	target := d.Focused()
	if target == nil {
		d.inter.Focused = 0
	} else {
		d.state = StateDispatching
		if consumer := d.bubble(target, ev); consumer != nil {
			return result(target, consumer)
		}
	}

	res := result(target, nil)
	if ev.Kind() != event.KindKeyDown {
		return res
	}
	switch k.Key() {
	case event.KeyTab:
		res.FocusMoved = d.FocusNext()
	case event.KeyBackTab:
		res.FocusMoved = d.FocusPrev()
	case event.KeyArrowUp:
		res.FocusMoved = target != nil && d.FocusInDirection(DirectionUp)
	case event.KeyArrowDown:
		res.FocusMoved = target != nil && d.FocusInDirection(DirectionDown)
	case event.KeyArrowLeft:
		res.FocusMoved = target != nil && d.FocusInDirection(DirectionLeft)
	case event.KeyArrowRight:
		res.FocusMoved = target != nil && d.FocusInDirection(DirectionRight)
	}
	return res
}

func (d *Dispatcher) dispatchCustom(ev event.Event) Result {
	target := d.Focused()
	if target == nil {
		target = d.tree.Root()
	}
	if target == nil {
		return Result{}
	}
	d.state = StateDispatching
	return result(target, d.bubble(target, ev))
}

// bubble offers ev to target and then to each ancestor until one consumes it.
func (d *Dispatcher) bubble(target core.Widget, ev event.Event) core.Widget {
	for w := target; w != nil; w = w.Base().Parent() {
		if c := d.deliver(w, ev); c != nil {
			return c
		}
	}
	return nil
}

// deliver offers ev to w alone. Pointer events carry coordinates local to w's
// rectangle; other events get the zero offset.
func (d *Dispatcher) deliver(w core.Widget, ev event.Event) core.Widget {
	var local graphics.Offset
	if p, ok := ev.(event.Pointer); ok {
		local = p.Position().Sub(w.Base().Rect().TopLeft())
	}
	if w.HandleEvent(ev, local) {
		return w
	}
	return nil
}

// updateHover moves the hover path to the chain ending at target.
func (d *Dispatcher) updateHover(target core.Widget) {
	var path []core.Widget
	if target != nil {
		path = core.PathTo(target)
	}
	ids := core.IDs(path)
	for _, id := range d.inter.Hovered {
		if !slices.Contains(ids, id) {
			if w := d.tree.Find(id); w != nil {
				w.Base().SetHovered(false)
			}
		}
	}
	for _, w := range path {
		w.Base().SetHovered(true)
	}
	d.inter.Hovered = ids
}

func result(target, consumer core.Widget) Result {
	var r Result
	if target != nil {
		r.Target = target.Base().ID()
	}
	if consumer != nil {
		r.Consumer = consumer.Base().ID()
		r.Consumed = true
	}
	return r
}
