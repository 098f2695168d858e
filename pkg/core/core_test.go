package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/ember/pkg/errors"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/theme"
)

type testBox struct {
	Node
	size      graphics.Size
	focusable bool
	disposed  *[]string
	focusLog  []bool
}

func newBox(name string, w, h float64) *testBox {
	b := &testBox{size: graphics.Size{Width: w, Height: h}}
	b.SetSelf(b)
	b.SetName(name)
	return b
}

func (b *testBox) Measure(c layout.Constraints) graphics.Size {
	b.Node.Measure(c)
	return b.size
}

func (b *testBox) CanFocus() bool { return b.focusable }

func (b *testBox) FocusChanged(f bool) { b.focusLog = append(b.focusLog, f) }

func (b *testBox) Dispose() {
	if b.disposed != nil {
		*b.disposed = append(*b.disposed, b.Name())
	}
}

func TestTree_SetRootAssignsIDs(t *testing.T) {
	var p layout.Pipeline
	tree := NewTree(&p)
	root := newBox("root", 0, 0)
	a := newBox("a", 0, 0)
	b := newBox("b", 0, 0)
	require.NoError(t, root.AppendChild(a))
	require.NoError(t, a.AppendChild(b))
	assert.Zero(t, a.ID(), "detached nodes have no ID")

	require.NoError(t, tree.SetRoot(root))
	assert.Equal(t, []ID{1, 2, 3}, []ID{root.ID(), a.ID(), b.ID()})
	assert.Equal(t, 3, tree.Len())
	assert.True(t, p.NeedsLayout())
	assert.Same(t, b, tree.Find(b.ID()))
	assert.Same(t, a, tree.FindByName("a"))
	assert.Equal(t, 2, b.Depth())
	assert.Equal(t, []ID{1, 2, 3}, IDs(tree.Path(b.ID())))
}

func TestTree_AppendInsertRemove(t *testing.T) {
	tree := NewTree(nil)
	root := newBox("root", 0, 0)
	require.NoError(t, tree.SetRoot(root))

	x := newBox("x", 0, 0)
	y := newBox("y", 0, 0)
	xid, err := tree.Append(root.ID(), x)
	require.NoError(t, err)
	yid, err := tree.Insert(root.ID(), 0, y)
	require.NoError(t, err)
	assert.Equal(t, []Widget{y, x}, root.Children())
	assert.NotEqual(t, xid, yid)

	require.NoError(t, tree.Remove(yid))
	assert.Nil(t, tree.Find(yid), "removed IDs must not resolve")
	assert.Zero(t, y.ID())
	assert.Nil(t, y.Parent())
	assert.Equal(t, 2, tree.Len())

	_, err = tree.Append(999, newBox("z", 0, 0))
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.ErrorIs(t, tree.Remove(yid), errors.ErrNotFound)
}

func TestTree_IDsNotReused(t *testing.T) {
	tree := NewTree(nil)
	root := newBox("root", 0, 0)
	require.NoError(t, tree.SetRoot(root))
	a := newBox("a", 0, 0)
	aid, _ := tree.Append(root.ID(), a)
	require.NoError(t, tree.Remove(aid))

	b := newBox("b", 0, 0)
	bid, _ := tree.Append(root.ID(), b)
	assert.NotEqual(t, aid, bid)
}

func TestNode_AttachErrors(t *testing.T) {
	root := newBox("root", 0, 0)
	a := newBox("a", 0, 0)
	b := newBox("b", 0, 0)
	require.NoError(t, root.AppendChild(a))
	require.NoError(t, a.AppendChild(b))

	err := b.AppendChild(root)
	assert.ErrorIs(t, err, errors.ErrCycle)
	assert.Equal(t, errors.KindTree, errors.KindOf(err))

	assert.ErrorIs(t, a.AppendChild(a), errors.ErrCycle)
	assert.ErrorIs(t, root.AppendChild(b), errors.ErrAttached)
	assert.ErrorIs(t, root.AppendChild(nil), errors.ErrNotFound)

	tree := NewTree(nil)
	require.NoError(t, tree.SetRoot(root))
	assert.ErrorIs(t, NewTree(nil).SetRoot(root), errors.ErrAttached)

	orphan := &testBox{}
	assert.Error(t, orphan.AppendChild(newBox("c", 0, 0)), "parent without SetSelf")
}

func TestTree_RemoveDisposesChildrenFirst(t *testing.T) {
	var disposed []string
	tree := NewTree(nil)
	root := newBox("root", 0, 0)
	a := newBox("a", 0, 0)
	b := newBox("b", 0, 0)
	c := newBox("c", 0, 0)
	for _, w := range []*testBox{root, a, b, c} {
		w.disposed = &disposed
	}
	require.NoError(t, root.AppendChild(a))
	require.NoError(t, a.AppendChild(b))
	require.NoError(t, a.AppendChild(c))
	require.NoError(t, tree.SetRoot(root))

	require.NoError(t, tree.Remove(a.ID()))
	assert.Equal(t, []string{"b", "c", "a"}, disposed)
	assert.Zero(t, b.ID())
	assert.Equal(t, 1, tree.Len())

	disposed = nil
	require.NoError(t, tree.SetRoot(newBox("next", 0, 0)))
	assert.Equal(t, []string{"root"}, disposed)
	assert.Nil(t, tree.FindByName("root"))
}

func TestTree_RemoveRoot(t *testing.T) {
	tree := NewTree(nil)
	root := newBox("root", 0, 0)
	require.NoError(t, tree.SetRoot(root))
	require.NoError(t, tree.Remove(root.ID()))
	assert.Nil(t, tree.Root())
	assert.Zero(t, tree.Len())
}

func TestNode_MeasureAndArrangeChild(t *testing.T) {
	parent := newBox("p", 0, 0)
	child := newBox("c", 500, -3)
	require.NoError(t, parent.AppendChild(child))

	got := parent.MeasureChild(child, layout.Constraints{MinWidth: -1, MaxWidth: 100, MaxHeight: 50})
	assert.Equal(t, graphics.Size{Width: 100, Height: 0}, got)
	assert.Equal(t, got, child.MeasuredSize())

	parent.Arrange(graphics.RectFromLTWH(0, 0, 40, 40))
	parent.ArrangeChild(child, graphics.RectFromLTWH(30, 30, 20, 20))
	assert.Equal(t, graphics.RectFromLTWH(30, 30, 10, 10), child.Rect())
	assert.True(t, parent.Rect().ContainsRect(child.Rect()))
}

func TestNode_FlagsAndFocusListener(t *testing.T) {
	var p layout.Pipeline
	tree := NewTree(&p)
	b := newBox("b", 0, 0)
	b.focusable = true
	require.NoError(t, tree.SetRoot(b))
	p.ClearPaint()

	b.SetFocused(true)
	b.SetFocused(true)
	b.SetFocused(false)
	assert.Equal(t, []bool{true, false}, b.focusLog)
	assert.True(t, p.NeedsPaint())

	b.SetHovered(true)
	b.SetPressed(true)
	assert.True(t, b.Hovered())
	assert.True(t, b.Pressed())

	assert.True(t, CanFocus(b))
	b.SetVisible(false)
	assert.False(t, CanFocus(b))
	assert.Empty(t, tree.Focusables())
}

func TestTree_Focusables(t *testing.T) {
	tree := NewTree(nil)
	root := newBox("root", 0, 0)
	a := newBox("a", 0, 0)
	a.focusable = true
	hidden := newBox("hidden", 0, 0)
	hidden.SetVisible(false)
	inner := newBox("inner", 0, 0)
	inner.focusable = true
	b := newBox("b", 0, 0)
	b.focusable = true
	require.NoError(t, root.AppendChild(a))
	require.NoError(t, root.AppendChild(hidden))
	require.NoError(t, hidden.AppendChild(inner))
	require.NoError(t, root.AppendChild(b))
	require.NoError(t, tree.SetRoot(root))

	assert.Equal(t, []Widget{a, b}, tree.Focusables())

	assert.False(t, VisibleInTree(inner), "hidden ancestor")
	assert.False(t, CanFocus(inner))
	assert.True(t, VisibleInTree(a))
	assert.False(t, VisibleInTree(nil))

	hidden.SetVisible(true)
	assert.True(t, CanFocus(inner))
	root.SetVisible(false)
	assert.False(t, CanFocus(a))
	assert.Empty(t, tree.Focusables())
}

func TestNode_InsertClampsIndex(t *testing.T) {
	p := newBox("p", 0, 0)
	a, b := newBox("a", 0, 0), newBox("b", 0, 0)
	require.NoError(t, p.InsertChild(10, a))
	require.NoError(t, p.InsertChild(-4, b))
	assert.Equal(t, []Widget{b, a}, p.Children())

	p.ClearChildren()
	assert.Zero(t, p.ChildCount())
	assert.Nil(t, a.Parent())
}

func TestNode_ResolvedStyle(t *testing.T) {
	var p layout.Pipeline
	tree := NewTree(&p)
	root := newBox("root", 0, 0)
	mid := newBox("mid", 0, 0)
	leaf := newBox("leaf", 0, 0)
	require.NoError(t, root.AppendChild(mid))
	require.NoError(t, mid.AppendChild(leaf))
	assert.Equal(t, theme.Default().Name, leaf.ResolvedStyle().Name, "detached nodes use the default")

	require.NoError(t, tree.SetRoot(root))
	ctxStyle := theme.Dark()
	tree.SetStyle(ctxStyle)
	assert.Same(t, ctxStyle, tree.Style())
	assert.Same(t, ctxStyle, leaf.ResolvedStyle())

	override := theme.Default()
	mid.SetStyle(override)
	assert.Same(t, override, leaf.ResolvedStyle(), "nearest ancestor override wins")
	assert.Same(t, ctxStyle, root.ResolvedStyle())
	assert.True(t, p.NeedsLayout())
}
