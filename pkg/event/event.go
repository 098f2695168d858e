// Package event defines the input events accepted by the widget core and the
// bounded queue that carries them from an input producer to the frame loop.
//
// Event is a closed set: PointerDown, PointerUp, PointerMove, KeyDown, KeyUp
// and Custom. Events are immutable values; dispatch only reads them.
package event

import (
	"fmt"

	"github.com/go-drift/ember/pkg/graphics"
)

// Kind identifies an event variant.
type Kind int

const (
	KindPointerDown Kind = iota
	KindPointerUp
	KindPointerMove
	KindKeyDown
	KindKeyUp
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindPointerDown:
		return "pointer-down"
	case KindPointerUp:
		return "pointer-up"
	case KindPointerMove:
		return "pointer-move"
	case KindKeyDown:
		return "key-down"
	case KindKeyUp:
		return "key-up"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is one input event. The set of implementations is closed.
type Event interface {
	Kind() Kind
	String() string
	sealed()
}

// Pointer is implemented by the pointer variants.
type Pointer interface {
	Event
	Position() graphics.Offset
}

// Keyed is implemented by the key variants.
type Keyed interface {
	Event
	Key() Key
}

// PointerDown is a press at an absolute position.
type PointerDown struct {
	Pos graphics.Offset
}

// PointerUp is a release at an absolute position.
type PointerUp struct {
	Pos graphics.Offset
}

// PointerMove is a motion to an absolute position.
type PointerMove struct {
	Pos graphics.Offset
}

// KeyDown is a key press.
type KeyDown struct {
	Code Key
}

// KeyUp is a key release.
type KeyUp struct {
	Code Key
}

// Custom carries an application-defined payload.
type Custom struct {
	Payload any
}

func (PointerDown) Kind() Kind { return KindPointerDown }
func (PointerUp) Kind() Kind   { return KindPointerUp }
func (PointerMove) Kind() Kind { return KindPointerMove }
func (KeyDown) Kind() Kind     { return KindKeyDown }
func (KeyUp) Kind() Kind       { return KindKeyUp }
func (Custom) Kind() Kind      { return KindCustom }

func (PointerDown) sealed() {}
func (PointerUp) sealed()   {}
func (PointerMove) sealed() {}
func (KeyDown) sealed()     {}
func (KeyUp) sealed()       {}
func (Custom) sealed()      {}

func (e PointerDown) Position() graphics.Offset { return e.Pos }
func (e PointerUp) Position() graphics.Offset   { return e.Pos }
func (e PointerMove) Position() graphics.Offset { return e.Pos }

func (e KeyDown) Key() Key { return e.Code }
func (e KeyUp) Key() Key   { return e.Code }

func (e PointerDown) String() string { return "pointer-down" + e.Pos.String() }
func (e PointerUp) String() string   { return "pointer-up" + e.Pos.String() }
func (e PointerMove) String() string { return "pointer-move" + e.Pos.String() }
func (e KeyDown) String() string     { return "key-down(" + e.Code.String() + ")" }
func (e KeyUp) String() string       { return "key-up(" + e.Code.String() + ")" }
func (e Custom) String() string      { return fmt.Sprintf("custom(%v)", e.Payload) }

// WithPosition returns a copy of a pointer event moved to pos. Other events
// are returned unchanged.
func WithPosition(ev Event, pos graphics.Offset) Event {
	switch ev.(type) {
	case PointerDown:
		return PointerDown{Pos: pos}
	case PointerUp:
		return PointerUp{Pos: pos}
	case PointerMove:
		return PointerMove{Pos: pos}
	default:
		return ev
	}
}
