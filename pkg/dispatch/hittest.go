package dispatch

import (
	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
)

// HitTest returns the deepest visible node under pos, or nil.
//
// The search is depth-first from root. Children are visited in reverse
// insertion order so the last-inserted (topmost) child wins where siblings
// overlap. A node whose rectangle does not contain pos is pruned together with
// its subtree, which is sound because layout keeps children inside their
// parent.
func HitTest(root core.Widget, pos graphics.Offset) core.Widget {
	if root == nil {
		return nil
	}
	n := root.Base()
	if !n.Visible() || !n.Rect().Contains(pos) {
		return nil
	}
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if hit := HitTest(children[i], pos); hit != nil {
			return hit
		}
	}
	return root
}

// HitTestPath returns the chain from root down to the hit node, or nil.
func HitTestPath(root core.Widget, pos graphics.Offset) []core.Widget {
	hit := HitTest(root, pos)
	if hit == nil {
		return nil
	}
	return core.PathTo(hit)
}
