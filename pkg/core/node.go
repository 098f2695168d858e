package core

import (
	"slices"

	"github.com/go-drift/ember/pkg/errors"
	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

var defaultStyle = theme.Default()

// Node provides the tree links and per-node state shared by all widgets.
//
// Its default methods make the embedding type a valid Widget: Measure sizes to
// the largest child, Arrange gives every child the full rectangle, Draw draws
// nothing and HandleEvent consumes nothing.
type Node struct {
	self     Widget
	parent   Widget
	children []Widget
	tree     *Tree
	id       ID
	name     string

	rect     graphics.Rect
	measured graphics.Size
	hidden   bool
	style    *theme.Style

	hovered bool
	pressed bool
	focused bool
}

// SetSelf records the widget embedding this node.
func (n *Node) SetSelf(self Widget) {
	n.self = self
}

// Self returns the widget embedding this node.
func (n *Node) Self() Widget {
	return n.self
}

// Base returns n.
func (n *Node) Base() *Node {
	return n
}

// ID returns the node's ID, or zero when it is not attached to a Tree.
func (n *Node) ID() ID {
	return n.id
}

// Name returns the optional name used for lookups and diagnostics.
func (n *Node) Name() string {
	return n.name
}

// SetName sets the node name.
func (n *Node) SetName(name string) {
	n.name = name
}

// Parent returns the parent widget, or nil for a root or detached node.
func (n *Node) Parent() Widget {
	return n.parent
}

// Children returns the children in insertion order. The slice must not be modified.
func (n *Node) Children() []Widget {
	return n.children
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th child.
func (n *Node) Child(i int) Widget {
	return n.children[i]
}

// Attached reports whether the node belongs to a Tree.
func (n *Node) Attached() bool {
	return n.tree != nil
}

// Tree returns the tree the node belongs to.
func (n *Node) Tree() *Tree {
	return n.tree
}

// Depth returns the number of ancestors.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.Base().parent {
		d++
	}
	return d
}

// Rect returns the rectangle assigned by the last layout pass.
func (n *Node) Rect() graphics.Rect {
	return n.rect
}

// MeasuredSize returns the size recorded when the parent last measured this node.
func (n *Node) MeasuredSize() graphics.Size {
	return n.measured
}

// SetRect stores the arranged rectangle. Widgets call it from Arrange.
func (n *Node) SetRect(r graphics.Rect) {
	if n.rect == r {
		return
	}
	n.rect = r
	n.MarkNeedsPaint()
}

// Visible reports whether the node is drawn and hit-tested.
func (n *Node) Visible() bool {
	return !n.hidden
}

// SetVisible shows or hides the node. Hidden nodes keep their layout space.
func (n *Node) SetVisible(v bool) {
	if n.hidden == !v {
		return
	}
	n.hidden = !v
	n.MarkNeedsPaint()
}

// Style returns the node's style override, or nil.
func (n *Node) Style() *theme.Style {
	return n.style
}

// SetStyle sets a borrowed style override for this node. Pass nil to use the
// context style.
func (n *Node) SetStyle(s *theme.Style) {
	if n.style == s {
		return
	}
	n.style = s
	n.MarkNeedsLayout()
}

// ResolvedStyle returns the style the node draws and measures with: its own
// override, else the nearest ancestor override, else the tree style, else
// the default style.
func (n *Node) ResolvedStyle() *theme.Style {
	if n.style != nil {
		return n.style
	}
	for p := n.parent; p != nil; p = p.Base().parent {
		if s := p.Base().style; s != nil {
			return s
		}
	}
	if n.tree != nil && n.tree.style != nil {
		return n.tree.style
	}
	return defaultStyle
}

// Hovered reports whether the pointer is over the node.
func (n *Node) Hovered() bool {
	return n.hovered
}

// Pressed reports whether the node is being pressed.
func (n *Node) Pressed() bool {
	return n.pressed
}

// Focused reports whether the node holds focus.
func (n *Node) Focused() bool {
	return n.focused
}

// SetHovered is called by the dispatcher when the hover path changes.
func (n *Node) SetHovered(v bool) {
	if n.hovered == v {
		return
	}
	n.hovered = v
	n.MarkNeedsPaint()
}

// SetPressed is called by widgets from HandleEvent.
func (n *Node) SetPressed(v bool) {
	if n.pressed == v {
		return
	}
	n.pressed = v
	n.MarkNeedsPaint()
}

// SetFocused is called by the dispatcher when focus moves. It notifies a
// FocusListener on change.
func (n *Node) SetFocused(v bool) {
	if n.focused == v {
		return
	}
	n.focused = v
	n.MarkNeedsPaint()
	if l, ok := n.self.(FocusListener); ok {
		l.FocusChanged(v)
	}
}

// MarkNeedsLayout schedules a layout pass on the owning tree.
func (n *Node) MarkNeedsLayout() {
	if n.tree != nil && n.tree.pipeline != nil {
		n.tree.pipeline.MarkNeedsLayout()
	}
}

// MarkNeedsPaint schedules a redraw on the owning tree.
func (n *Node) MarkNeedsPaint() {
	if n.tree != nil && n.tree.pipeline != nil {
		n.tree.pipeline.MarkNeedsPaint()
	}
}

// MeasureChild measures child with normalised constraints, clamps the answer
// into them and records it as the child's measured size.
func (n *Node) MeasureChild(child Widget, c layout.Constraints) graphics.Size {
	c = c.Normalize()
	size := c.Constrain(child.Measure(c))
	child.Base().measured = size
	return size
}

// ArrangeChild arranges child within rect clipped to this node's rectangle,
// so a child never extends outside its parent.
func (n *Node) ArrangeChild(child Widget, rect graphics.Rect) {
	child.Arrange(n.rect.Intersect(rect))
}

// Measure sizes to the largest child within c.
func (n *Node) Measure(c layout.Constraints) graphics.Size {
	var size graphics.Size
	for _, child := range n.children {
		s := n.MeasureChild(child, c)
		size.Width = max(size.Width, s.Width)
		size.Height = max(size.Height, s.Height)
	}
	return size
}

// Arrange stores rect and gives it to every child.
func (n *Node) Arrange(rect graphics.Rect) {
	n.SetRect(rect)
	for _, child := range n.children {
		n.ArrangeChild(child, rect)
	}
}

// Draw draws nothing.
func (n *Node) Draw(graphics.Surface, *theme.Style) error {
	return nil
}

// HandleEvent consumes nothing.
func (n *Node) HandleEvent(event.Event, graphics.Offset) bool {
	return false
}

// AppendChild adds child after the existing children.
func (n *Node) AppendChild(child Widget) error {
	return n.InsertChild(len(n.children), child)
}

// InsertChild adds child at index, clamped to [0, ChildCount()].
func (n *Node) InsertChild(index int, child Widget) error {
	const op = "core.InsertChild"
	if child == nil {
		return errors.New(op, errors.KindTree, errors.ErrNotFound)
	}
	if n.self == nil {
		return &errors.Error{Op: op, Kind: errors.KindTree, Node: uint64(n.id), Err: errMissingSelf}
	}
	cb := child.Base()
	if cb.self == nil {
		cb.self = child
	}
	for w := n.self; w != nil; w = w.Base().parent {
		if w == child {
			return &errors.Error{Op: op, Kind: errors.KindTree, Node: uint64(n.id), Err: errors.ErrCycle}
		}
	}
	if cb.parent != nil || cb.tree != nil {
		return &errors.Error{Op: op, Kind: errors.KindTree, Node: uint64(cb.id), Err: errors.ErrAttached}
	}

	index = max(0, min(index, len(n.children)))
	n.children = slices.Insert(n.children, index, child)
	cb.parent = n.self
	if n.tree != nil {
		n.tree.attach(child)
	}
	n.MarkNeedsLayout()
	return nil
}

// RemoveChild removes child and destroys its subtree.
func (n *Node) RemoveChild(child Widget) error {
	i := slices.Index(n.children, child)
	if i < 0 {
		return &errors.Error{Op: "core.RemoveChild", Kind: errors.KindTree, Node: uint64(n.id), Err: errors.ErrNotFound}
	}
	n.RemoveChildAt(i)
	return nil
}

// RemoveChildAt removes the i-th child and destroys its subtree.
func (n *Node) RemoveChildAt(i int) {
	child := n.children[i]
	n.children = slices.Delete(n.children, i, i+1)
	child.Base().parent = nil
	n.MarkNeedsLayout()
	destroy(child)
}

// ClearChildren removes and destroys every child.
func (n *Node) ClearChildren() {
	for len(n.children) > 0 {
		n.RemoveChildAt(len(n.children) - 1)
	}
}

// destroy detaches w's subtree from its tree, retires the IDs and disposes
// the nodes children-first.
func destroy(w Widget) {
	b := w.Base()
	for _, c := range b.children {
		destroy(c)
	}
	if b.tree != nil {
		b.tree.size--
	}
	b.tree = nil
	b.id = 0
	b.hovered, b.pressed, b.focused = false, false, false
	if d, ok := w.(Disposer); ok {
		d.Dispose()
	}
}
