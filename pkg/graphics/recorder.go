package graphics

import "errors"

// ErrInjected is returned by a Recorder configured to fail.
var ErrInjected = errors.New("graphics: injected surface failure")

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpLine OpKind = iota
	OpRect
	OpCircle
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpLine:
		return "line"
	case OpRect:
		return "rect"
	case OpCircle:
		return "circle"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// Op is a single recorded drawing call.
type Op struct {
	Kind      OpKind
	From, To  Offset
	Rect      Rect
	Center    Offset
	Radius    float64
	Paint     Paint
	Text      string
	TextStyle TextStyle
}

// Recorder is a Surface that records drawing calls into a display list.
//
// It is the surface used by tests and by the frame tester. Setting FailAt to n
// makes the n-th call (1-based, counted since the last Reset) return Err, or
// ErrInjected when Err is nil.
type Recorder struct {
	FailAt int
	Err    error

	ops   []Op
	calls int
}

var _ Surface = (*Recorder)(nil)

// Ops returns the recorded operations in call order.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Reset clears recorded operations and the call counter.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
	r.calls = 0
}

// Count returns how many operations of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns the strings drawn, in call order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Replay draws the recorded operations onto another surface.
func (r *Recorder) Replay(dst Surface) error {
	for _, op := range r.ops {
		var err error
		switch op.Kind {
		case OpLine:
			err = dst.DrawLine(op.From, op.To, op.Paint)
		case OpRect:
			err = dst.DrawRect(op.Rect, op.Paint)
		case OpCircle:
			err = dst.DrawCircle(op.Center, op.Radius, op.Paint)
		case OpText:
			err = dst.DrawText(op.Text, op.From, op.TextStyle)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) record(op Op) error {
	r.calls++
	if r.FailAt > 0 && r.calls == r.FailAt {
		if r.Err != nil {
			return r.Err
		}
		return ErrInjected
	}
	r.ops = append(r.ops, op)
	return nil
}

func (r *Recorder) DrawLine(from, to Offset, paint Paint) error {
	return r.record(Op{Kind: OpLine, From: from, To: to, Paint: paint})
}

func (r *Recorder) DrawRect(rect Rect, paint Paint) error {
	return r.record(Op{Kind: OpRect, Rect: rect, Paint: paint})
}

func (r *Recorder) DrawCircle(center Offset, radius float64, paint Paint) error {
	return r.record(Op{Kind: OpCircle, Center: center, Radius: radius, Paint: paint})
}

func (r *Recorder) DrawText(text string, origin Offset, style TextStyle) error {
	return r.record(Op{Kind: OpText, Text: text, From: origin, TextStyle: style})
}
