package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestErrorString(t *testing.T) {
	err := &Error{
		Op:   "rendering.Render",
		Kind: KindSurface,
		Err:  fmt.Errorf("bus error"),
	}
	want := "rendering.Render [surface]: bus error"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorStringWithNode(t *testing.T) {
	err := &Error{Op: "core.Append", Kind: KindTree, Node: 7, Err: ErrAttached}
	got := err.Error()
	if !strings.Contains(got, "node=7") {
		t.Errorf("error string %q should contain node id", got)
	}
	if !Is(err, ErrAttached) {
		t.Error("expected error to wrap ErrAttached")
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("frame: %w", New("rendering.Render", KindSurface, ErrNotFound))
	if got := KindOf(wrapped); got != KindSurface {
		t.Errorf("KindOf = %v, want surface", got)
	}
	if got := KindOf(fmt.Errorf("plain")); got != KindUnknown {
		t.Errorf("KindOf(plain) = %v, want unknown", got)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindSurface, "surface"},
		{KindLayout, "layout"},
		{KindDispatch, "dispatch"},
		{KindTree, "tree"},
		{KindConfig, "config"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "dispatch.Dispatch"
	if got, want := err.Error(), "panic in dispatch.Dispatch: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorUnwrap(t *testing.T) {
	err := &PanicError{Value: ErrCycle}
	if !Is(err, ErrCycle) {
		t.Error("expected panic value error to unwrap")
	}
}

func TestReport(t *testing.T) {
	var captured *Error
	handler := &testHandler{onError: func(err *Error) { captured = err }}

	old := DefaultHandler
	SetHandler(handler)
	defer SetHandler(old)

	Report(&Error{Op: "test.op", Kind: KindConfig, Err: ErrUnsupportedVersion})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportToPrefersExplicitHandler(t *testing.T) {
	var global, local int
	old := DefaultHandler
	SetHandler(&testHandler{onError: func(*Error) { global++ }})
	defer SetHandler(old)

	ReportTo(&testHandler{onError: func(*Error) { local++ }}, &Error{Op: "x"})
	ReportTo(nil, &Error{Op: "y"})
	ReportTo(nil, nil)

	if local != 1 || global != 1 {
		t.Errorf("local=%d global=%d, want 1 and 1", local, global)
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	old := DefaultHandler
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(old)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestRecoverTo(t *testing.T) {
	var reported, called *PanicError
	h := &testHandler{onPanic: func(err *PanicError) { reported = err }}

	func() {
		defer RecoverTo(h, "widget.HandleEvent", func(p *PanicError) { called = p })
		panic("boom")
	}()

	if reported == nil || called == nil {
		t.Fatal("expected panic to be reported and callback invoked")
	}
	if reported != called {
		t.Error("callback should receive the reported panic")
	}
	if reported.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Fatal("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	old := DefaultHandler
	defer SetHandler(old)

	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil)), Verbose: true}

	h.HandleError(&Error{Op: "rendering.Render", Kind: KindSurface, Node: 3, Err: ErrNotFound, StackTrace: "frames"})
	h.HandlePanic(&PanicError{Op: "dispatch.Dispatch", Value: "boom"})
	h.HandleError(nil)

	out := buf.String()
	for _, want := range []string{"op=rendering.Render", "kind=surface", "node=3", "stack=frames", "value=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testHandler struct {
	onError func(*Error)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *Error) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
