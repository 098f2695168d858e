package core

import (
	stderrors "errors"

	"github.com/go-drift/ember/pkg/errors"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

var errMissingSelf = stderrors.New("parent widget did not call SetSelf")

// Tree owns a widget hierarchy and hands out node IDs.
type Tree struct {
	root     Widget
	pipeline *layout.Pipeline
	style    *theme.Style
	nextID   ID
	size     int
}

// NewTree returns an empty tree that reports invalidation to p.
// p may be nil.
func NewTree(p *layout.Pipeline) *Tree {
	return &Tree{pipeline: p}
}

// Root returns the root widget, or nil.
func (t *Tree) Root() Widget {
	return t.root
}

// Len returns the number of attached nodes.
func (t *Tree) Len() int {
	return t.size
}

// Style returns the tree-wide style, or nil.
func (t *Tree) Style() *theme.Style {
	return t.style
}

// SetStyle sets the borrowed style used by nodes without an override.
func (t *Tree) SetStyle(s *theme.Style) {
	if t.style == s {
		return
	}
	t.style = s
	t.markNeedsLayout()
}

// SetRoot replaces the root. The previous tree is destroyed. Passing nil
// empties the tree.
func (t *Tree) SetRoot(w Widget) error {
	if w != nil {
		b := w.Base()
		if b.self == nil {
			b.self = w
		}
		if b.parent != nil || b.tree != nil {
			return &errors.Error{Op: "core.SetRoot", Kind: errors.KindTree, Node: uint64(b.id), Err: errors.ErrAttached}
		}
	}
	if old := t.root; old != nil {
		t.root = nil
		destroy(old)
	}
	t.root = w
	if w != nil {
		t.attach(w)
	}
	t.markNeedsLayout()
	return nil
}

// Append adds w as the last child of the node with ID parent.
func (t *Tree) Append(parent ID, w Widget) (ID, error) {
	p := t.Find(parent)
	if p == nil {
		return 0, &errors.Error{Op: "core.Append", Kind: errors.KindTree, Node: uint64(parent), Err: errors.ErrNotFound}
	}
	if err := p.Base().AppendChild(w); err != nil {
		return 0, err
	}
	return w.Base().id, nil
}

// Insert adds w at index among the children of the node with ID parent.
func (t *Tree) Insert(parent ID, index int, w Widget) (ID, error) {
	p := t.Find(parent)
	if p == nil {
		return 0, &errors.Error{Op: "core.Insert", Kind: errors.KindTree, Node: uint64(parent), Err: errors.ErrNotFound}
	}
	if err := p.Base().InsertChild(index, w); err != nil {
		return 0, err
	}
	return w.Base().id, nil
}

// Remove destroys the node with the given ID and its subtree. Removing the
// root empties the tree.
func (t *Tree) Remove(id ID) error {
	w := t.Find(id)
	if w == nil {
		return &errors.Error{Op: "core.Remove", Kind: errors.KindTree, Node: uint64(id), Err: errors.ErrNotFound}
	}
	if w == t.root {
		return t.SetRoot(nil)
	}
	return w.Base().parent.Base().RemoveChild(w)
}

// Find resolves an ID by walking the tree. It returns nil for zero, unknown
// or removed IDs.
func (t *Tree) Find(id ID) Widget {
	if id == 0 {
		return nil
	}
	var found Widget
	Walk(t.root, func(w Widget) bool {
		if found != nil {
			return false
		}
		if w.Base().id == id {
			found = w
			return false
		}
		return true
	})
	return found
}

// FindByName returns the first node in pre-order with the given name.
func (t *Tree) FindByName(name string) Widget {
	var found Widget
	Walk(t.root, func(w Widget) bool {
		if found != nil {
			return false
		}
		if w.Base().name == name {
			found = w
			return false
		}
		return true
	})
	return found
}

// Path returns the chain from the root down to the node with the given ID,
// or nil when the ID does not resolve.
func (t *Tree) Path(id ID) []Widget {
	w := t.Find(id)
	if w == nil {
		return nil
	}
	return PathTo(w)
}

// PathTo returns the chain from w's root down to w.
func PathTo(w Widget) []Widget {
	var path []Widget
	for ; w != nil; w = w.Base().parent {
		path = append(path, w)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// IDs returns the IDs of the widgets in order.
func IDs(ws []Widget) []ID {
	ids := make([]ID, len(ws))
	for i, w := range ws {
		ids[i] = w.Base().id
	}
	return ids
}

// Focusables returns the focusable nodes in tree order.
func (t *Tree) Focusables() []Widget {
	var out []Widget
	Walk(t.root, func(w Widget) bool {
		if !w.Base().Visible() {
			return false
		}
		if CanFocus(w) {
			out = append(out, w)
		}
		return true
	})
	return out
}

func (t *Tree) attach(w Widget) {
	Walk(w, func(c Widget) bool {
		b := c.Base()
		if b.self == nil {
			b.self = c
		}
		t.nextID++
		b.id = t.nextID
		b.tree = t
		t.size++
		return true
	})
}

func (t *Tree) markNeedsLayout() {
	if t.pipeline != nil {
		t.pipeline.MarkNeedsLayout()
	}
}
