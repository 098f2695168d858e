package layout

import "github.com/go-drift/ember/pkg/graphics"

// Box is the part of a widget the pipeline drives.
type Box interface {
	Measure(c Constraints) graphics.Size
	Arrange(rect graphics.Rect)
}

// Pipeline tracks whether the tree needs layout or repaint and runs the
// layout pass.
//
// There is one layout flag for the whole tree. Nodes report invalidation
// through MarkNeedsLayout; the owning context flushes once per frame. Marks made
// while a flush is running are absorbed by that flush.
type Pipeline struct {
	needsLayout bool
	needsPaint  bool
	flushing    bool
	runs        int
}

// MarkNeedsLayout schedules a layout pass. It also implies a repaint.
func (p *Pipeline) MarkNeedsLayout() {
	if p.flushing {
		return
	}
	p.needsLayout = true
	p.needsPaint = true
}

// MarkNeedsPaint schedules a repaint without layout.
func (p *Pipeline) MarkNeedsPaint() {
	p.needsPaint = true
}

// NeedsLayout reports if a layout pass is pending.
func (p *Pipeline) NeedsLayout() bool {
	return p.needsLayout
}

// NeedsPaint reports if a repaint is pending.
func (p *Pipeline) NeedsPaint() bool {
	return p.needsPaint
}

// ClearPaint marks the last repaint as done.
func (p *Pipeline) ClearPaint() {
	p.needsPaint = false
}

// Runs returns the number of layout passes performed.
func (p *Pipeline) Runs() int {
	return p.runs
}

// Flush lays out root to fill viewport if layout is pending and reports
// whether it ran.
//
// The pass is exactly one root.Measure with tight viewport constraints followed
// by one root.Arrange(viewport). There is no relaxation pass.
func (p *Pipeline) Flush(root Box, viewport graphics.Rect) bool {
	if !p.needsLayout || root == nil {
		return false
	}
	p.Run(root, viewport)
	return true
}

// Run lays out root unconditionally.
func (p *Pipeline) Run(root Box, viewport graphics.Rect) {
	p.flushing = true
	defer func() { p.flushing = false }()

	root.Measure(Tight(viewport.Size()))
	root.Arrange(viewport)

	p.runs++
	p.needsLayout = false
	p.needsPaint = true
}
