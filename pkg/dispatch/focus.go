package dispatch

import (
	"math"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
)

// Direction is a spatial focus traversal direction.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	default:
		return "right"
	}
}

// SetFocus gives focus to the node with the given ID. It fails when the ID
// does not resolve or the node cannot take focus.
func (d *Dispatcher) SetFocus(id core.ID) bool {
	w := d.tree.Find(id)
	if !core.CanFocus(w) {
		return false
	}
	d.setFocus(w)
	return true
}

// ClearFocus removes focus from whichever node holds it.
func (d *Dispatcher) ClearFocus() {
	d.setFocus(nil)
}

// FocusNext moves focus to the next focusable node in tree order, wrapping.
func (d *Dispatcher) FocusNext() bool {
	return d.moveFocus(1)
}

// FocusPrev moves focus to the previous focusable node in tree order, wrapping.
func (d *Dispatcher) FocusPrev() bool {
	return d.moveFocus(-1)
}

func (d *Dispatcher) moveFocus(delta int) bool {
	candidates := d.tree.Focusables()
	count := len(candidates)
	if count == 0 {
		return false
	}
	current := -1
	for i, w := range candidates {
		if w.Base().ID() == d.inter.Focused {
			current = i
			break
		}
	}
	if current < 0 && delta < 0 {
		current = 0
	}
	next := wrapIndex(current+delta, count)
	d.setFocus(candidates[next])
	return true
}

// FocusInDirection moves focus to the closest focusable node in dir from the
// focused one, measured between rectangle centers with cross-axis distance
// weighted double. Without a focused node or a candidate it falls back to
// tree-order traversal.
func (d *Dispatcher) FocusInDirection(dir Direction) bool {
	current := d.tree.Find(d.inter.Focused)
	if current == nil || current.Base().Rect().IsEmpty() {
		if dir == DirectionUp || dir == DirectionLeft {
			return d.moveFocus(-1)
		}
		return d.moveFocus(1)
	}
	from := current.Base().Rect()

	var best core.Widget
	bestScore := math.MaxFloat64
	for _, w := range d.tree.Focusables() {
		if w == current {
			continue
		}
		to := w.Base().Rect()
		if to.IsEmpty() || !isInDirection(from, to, dir) {
			continue
		}
		if score := directionalScore(from, to, dir); score < bestScore {
			bestScore = score
			best = w
		}
	}
	if best == nil {
		return false
	}
	d.setFocus(best)
	return true
}

// setFocus moves focus to w (nil clears it), keeping at most one node focused.
func (d *Dispatcher) setFocus(w core.Widget) {
	old := d.tree.Find(d.inter.Focused)
	if old != nil && old == w {
		return
	}
	var id core.ID
	if w != nil {
		id = w.Base().ID()
	}
	d.inter.Focused = id
	if old != nil {
		old.Base().SetFocused(false)
	}
	if w != nil {
		w.Base().SetFocused(true)
	}
	d.logger.Debug("focus changed", "focused", id)
}

// focusTarget returns the nearest focusable node on the chain from w to the root.
func focusTarget(w core.Widget) core.Widget {
	for ; w != nil; w = w.Base().Parent() {
		if core.CanFocus(w) {
			return w
		}
	}
	return nil
}

func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}

func isInDirection(source, target graphics.Rect, dir Direction) bool {
	s, t := source.Center(), target.Center()
	switch dir {
	case DirectionUp:
		return t.Y < s.Y
	case DirectionDown:
		return t.Y > s.Y
	case DirectionLeft:
		return t.X < s.X
	case DirectionRight:
		return t.X > s.X
	}
	return false
}

func directionalScore(source, target graphics.Rect, dir Direction) float64 {
	s, t := source.Center(), target.Center()
	var primary, cross float64
	switch dir {
	case DirectionUp, DirectionDown:
		primary = math.Abs(t.Y - s.Y)
		cross = math.Abs(t.X - s.X)
	default:
		primary = math.Abs(t.X - s.X)
		cross = math.Abs(t.Y - s.Y)
	}
	return primary + cross*2
}
