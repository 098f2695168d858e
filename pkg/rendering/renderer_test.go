package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/errors"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/theme"
)

type painter struct {
	core.Node
	used *theme.Style
}

func newPainter(name string, r graphics.Rect) *painter {
	p := &painter{}
	p.SetSelf(p)
	p.SetName(name)
	p.SetRect(r)
	return p
}

func (p *painter) Draw(s graphics.Surface, style *theme.Style) error {
	p.used = style
	return s.DrawText(p.Name(), p.Rect().TopLeft(), style.Text(style.Palette.Foreground))
}

func buildTree(t *testing.T) (root, a, a1, b *painter) {
	t.Helper()
	root = newPainter("root", graphics.RectFromLTWH(0, 0, 100, 100))
	a = newPainter("a", graphics.RectFromLTWH(0, 0, 50, 50))
	a1 = newPainter("a1", graphics.RectFromLTWH(0, 0, 10, 10))
	b = newPainter("b", graphics.RectFromLTWH(25, 25, 50, 50))
	require.NoError(t, a.AppendChild(a1))
	require.NoError(t, root.AppendChild(a))
	require.NoError(t, root.AppendChild(b))
	require.NoError(t, core.NewTree(nil).SetRoot(root))
	return
}

func TestRender_ForwardOrder(t *testing.T) {
	root, _, _, _ := buildTree(t)
	var rec graphics.Recorder
	var r Renderer

	require.NoError(t, r.Render(root, &rec, nil))
	assert.Equal(t, []string{"root", "a", "a1", "b"}, rec.Texts(), "parents first, later siblings paint over earlier ones")
	assert.Equal(t, Stats{Passes: 1, Nodes: 4}, r.Stats())

	require.NoError(t, r.Render(nil, &rec, nil))
	assert.Equal(t, 2, r.Stats().Passes)
}

func TestRender_SkipsHiddenSubtrees(t *testing.T) {
	root, a, _, _ := buildTree(t)
	a.SetVisible(false)
	var rec graphics.Recorder
	var r Renderer

	require.NoError(t, r.Render(root, &rec, nil))
	assert.Equal(t, []string{"root", "b"}, rec.Texts())
}

func TestRender_StyleOverrideInherits(t *testing.T) {
	root, a, a1, b := buildTree(t)
	base := theme.Default()
	dark := theme.Dark()
	a.SetStyle(dark)
	var rec graphics.Recorder
	var r Renderer

	require.NoError(t, r.Render(root, &rec, base))
	assert.Same(t, base, root.used)
	assert.Same(t, dark, a.used)
	assert.Same(t, dark, a1.used, "descendants inherit an override")
	assert.Same(t, base, b.used)
	assert.Equal(t, dark.Palette.Foreground, rec.Ops()[1].TextStyle.Color)
}

func TestRender_SurfaceFailure(t *testing.T) {
	root, a, _, b := buildTree(t)
	a.SetHovered(true)
	rec := &graphics.Recorder{FailAt: 2}
	var r Renderer

	err := r.Render(root, rec, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, graphics.ErrInjected)
	assert.Equal(t, errors.KindSurface, errors.KindOf(err))
	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, uint64(a.ID()), e.Node)
	assert.Equal(t, []string{"root"}, rec.Texts(), "the pass stops at the first failure")
	assert.Nil(t, b.used)
	assert.True(t, a.Hovered(), "interaction state is untouched")
	assert.Equal(t, 1, r.Stats().Failed)

	rec.Reset()
	rec.FailAt = 0
	require.NoError(t, r.Render(root, rec, nil), "a retry after a transient failure succeeds")
	assert.Len(t, rec.Texts(), 4)
}

func TestRender_DebugOverlay(t *testing.T) {
	root, a, _, _ := buildTree(t)
	style := theme.Default()
	var rec graphics.Recorder
	r := Renderer{Debug: true}

	require.NoError(t, r.Render(root, &rec, style))
	assert.Equal(t, 4, rec.Count(graphics.OpRect))
	texts := rec.Texts()
	require.Len(t, texts, 8)
	assert.Equal(t, []string{"root", "a", "a1", "b"}, texts[:4])
	assert.Contains(t, texts, "#1 100x100")
	assert.Contains(t, texts, "#2 50x50")

	for _, op := range rec.Ops() {
		if op.Kind == graphics.OpRect {
			assert.Equal(t, graphics.PaintStyleStroke, op.Paint.Style)
			assert.Equal(t, style.Palette.Debug, op.Paint.Color)
		}
	}

	rec.Reset()
	rec.FailAt = 7
	err := r.Render(root, &rec, style)
	require.Error(t, err)
	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "rendering.Debug", e.Op)
	assert.Equal(t, uint64(a.ID()), e.Node)
}
