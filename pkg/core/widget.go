// Package core defines the widget contract and the owned widget tree.
//
// Every tree node implements Widget and embeds a Node, which carries the
// tree links, the stable ID, the arranged rectangle and the interaction flags.
// The core treats widgets uniformly through the Widget interface and a small
// set of optional capabilities; it never inspects concrete types.
//
// # Ownership
//
// Each node owns its children exclusively. Insertion order is significant: it
// is the layout order and the paint order, and its reverse is the hit-test
// order. Attaching a widget that already has a parent fails with
// errors.ErrAttached, and attaching an ancestor under its own descendant fails
// with errors.ErrCycle.
//
// # Identity
//
// A node receives an ID when it joins a Tree. Code outside the tree refers to
// nodes by ID and resolves them with Tree.Find at use time, so references to
// removed nodes resolve to nothing. IDs are never reused within a Tree.
//
// # Writing a widget
//
// Embed Node and override what differs from the defaults. Constructors must
// call SetSelf so the node can hand itself to its children:
//
//	type swatch struct {
//	    core.Node
//	    color graphics.Color
//	}
//
//	func newSwatch(c graphics.Color) *swatch {
//	    s := &swatch{color: c}
//	    s.SetSelf(s)
//	    return s
//	}
//
//	func (s *swatch) Draw(surface graphics.Surface, style *theme.Style) error {
//	    return surface.DrawRect(s.Rect(), graphics.FillPaint(s.color))
//	}
package core

import (
	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

// ID identifies an attached node. Zero means "none".
type ID uint64

// Widget is the contract every tree node implements.
type Widget interface {
	// Measure returns the preferred size within c. Containers measure their
	// children with Node.MeasureChild.
	Measure(c layout.Constraints) graphics.Size

	// Arrange stores the final rectangle with Node.SetRect and arranges the
	// children with Node.ArrangeChild.
	Arrange(rect graphics.Rect)

	// Draw issues primitives for this node only, in absolute coordinates.
	// Children are drawn by the render pass afterwards.
	Draw(s graphics.Surface, style *theme.Style) error

	// HandleEvent offers ev to the node. local is the event position relative
	// to the node's rectangle (zero for events without a position). It returns
	// whether the event was consumed.
	HandleEvent(ev event.Event, local graphics.Offset) bool

	// Base returns the embedded Node.
	Base() *Node
}

// Focusable is implemented by widgets that can take keyboard focus.
type Focusable interface {
	CanFocus() bool
}

// PointerCapturer is implemented by widgets that grab the pointer when they
// consume a pointer-down, so later moves reach them wherever they happen.
type PointerCapturer interface {
	CapturesPointer() bool
}

// FocusListener is notified when the node gains or loses focus.
type FocusListener interface {
	FocusChanged(focused bool)
}

// Disposer is called once when the node is removed from its tree.
type Disposer interface {
	Dispose()
}

// VisibleInTree reports whether w and all of its ancestors are visible.
func VisibleInTree(w Widget) bool {
	if w == nil {
		return false
	}
	for ; w != nil; w = w.Base().Parent() {
		if !w.Base().Visible() {
			return false
		}
	}
	return true
}

// CanFocus reports whether w is focusable right now. Nodes that are hidden, or
// sit inside a hidden subtree, never are.
func CanFocus(w Widget) bool {
	if !VisibleInTree(w) {
		return false
	}
	f, ok := w.(Focusable)
	return ok && f.CanFocus()
}

// Walk visits w and its descendants in pre-order (insertion order). Returning
// false from fn skips the node's children.
func Walk(w Widget, fn func(Widget) bool) {
	if w == nil {
		return
	}
	if !fn(w) {
		return
	}
	for _, c := range w.Base().children {
		Walk(c, fn)
	}
}
