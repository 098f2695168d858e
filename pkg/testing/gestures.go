package testing

import (
	"fmt"

	"github.com/go-drift/ember/pkg/event"
	"github.com/go-drift/ember/pkg/graphics"
)

// dragSteps is the number of intermediate moves emitted by Drag.
const dragSteps = 4

// centerOf returns the center of the first widget matched by finder.
func (t *WidgetTester) centerOf(op string, finder Finder) (graphics.Offset, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return graphics.Offset{}, fmt.Errorf("%s: finder matched no widgets: %s", op, finder.Description())
	}
	rect := result.Rect()
	if rect.IsEmpty() {
		return graphics.Offset{}, fmt.Errorf("%s: widget has an empty rect: %s", op, finder.Description())
	}
	return rect.Center(), nil
}

// Tap simulates a tap at the center of the first widget matched by finder.
func (t *WidgetTester) Tap(finder Finder) error {
	center, err := t.centerOf("Tap", finder)
	if err != nil {
		return err
	}
	return t.TapAt(center)
}

// TapAt simulates a tap at the given logical position.
func (t *WidgetTester) TapAt(pos graphics.Offset) error {
	if err := t.SendPointerDown(pos); err != nil {
		return err
	}
	return t.SendPointerUp(pos)
}

// Hover moves the pointer to the center of the first widget matched by finder.
func (t *WidgetTester) Hover(finder Finder) error {
	center, err := t.centerOf("Hover", finder)
	if err != nil {
		return err
	}
	return t.SendPointerMove(center)
}

// Drag simulates a drag gesture on the first widget matched by finder.
func (t *WidgetTester) Drag(finder Finder, delta graphics.Offset) error {
	start, err := t.centerOf("Drag", finder)
	if err != nil {
		return err
	}
	return t.DragFrom(start, delta)
}

// DragFrom simulates a drag from start by delta, with intermediate moves.
func (t *WidgetTester) DragFrom(start, delta graphics.Offset) error {
	if err := t.SendPointerDown(start); err != nil {
		return err
	}
	for i := 1; i <= dragSteps; i++ {
		frac := float64(i) / float64(dragSteps)
		pos := graphics.Offset{
			X: start.X + delta.X*frac,
			Y: start.Y + delta.Y*frac,
		}
		if err := t.SendPointerMove(pos); err != nil {
			return err
		}
	}
	return t.SendPointerUp(start.Add(delta))
}

// SendPointerDown sends a pointer-down event at pos.
func (t *WidgetTester) SendPointerDown(pos graphics.Offset) error {
	return t.Send(event.PointerDown{Pos: pos})
}

// SendPointerMove sends a pointer-move event at pos.
func (t *WidgetTester) SendPointerMove(pos graphics.Offset) error {
	return t.Send(event.PointerMove{Pos: pos})
}

// SendPointerUp sends a pointer-up event at pos.
func (t *WidgetTester) SendPointerUp(pos graphics.Offset) error {
	return t.Send(event.PointerUp{Pos: pos})
}

// Press sends a key-down and key-up for each key in order.
func (t *WidgetTester) Press(keys ...event.Key) error {
	for _, k := range keys {
		if err := t.Send(event.KeyDown{Code: k}); err != nil {
			return err
		}
		if err := t.Send(event.KeyUp{Code: k}); err != nil {
			return err
		}
	}
	return nil
}

// PressNamed resolves key names ("tab", "enter", "key1001") and presses them.
func (t *WidgetTester) PressNamed(names ...string) error {
	keys := make([]event.Key, 0, len(names))
	for _, name := range names {
		k, err := event.ParseKey(name)
		if err != nil {
			return fmt.Errorf("PressNamed: %w", err)
		}
		keys = append(keys, k)
	}
	return t.Press(keys...)
}

// Queue pushes events through the context queue and pumps one frame, the
// way a producer goroutine feeds a running frame loop. It reports how many
// events the queue accepted.
func (t *WidgetTester) Queue(events ...event.Event) (int, error) {
	if t.ctx == nil {
		return 0, ErrNotMounted
	}
	accepted := 0
	for _, ev := range events {
		if t.ctx.PushEvent(ev) {
			accepted++
		}
	}
	return accepted, t.Pump()
}
