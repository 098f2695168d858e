package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the widget tree structure and display operations.
type Snapshot struct {
	Tree       *WidgetNode `json:"tree"`
	DisplayOps []DisplayOp `json:"displayOps,omitempty"`
}

// WidgetNode represents a node in the serialized widget tree.
type WidgetNode struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Name       string         `json:"name,omitempty"`
	Rect       [4]float64     `json:"rect"`
	Hidden     bool           `json:"hidden,omitempty"`
	Properties map[string]any `json:"props,omitempty"`
	Children   []*WidgetNode  `json:"children,omitempty"`
}

// DisplayOp represents a serialized drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// propertyWhitelist defines which fields to serialize per widget type.
// Types not listed here are serialized with rect only.
var propertyWhitelist = map[string][]string{
	"Flex":      {"Axis", "MainAxisAlignment", "CrossAxisAlignment", "MainAxisSize", "Gap"},
	"Grid":      {"Rows", "Columns"},
	"Stack":     {"Alignment", "Fit"},
	"Margin":    {"Insets", "Background", "Border"},
	"SizedBox":  {"Width", "Height"},
	"Expanded":  {"Flex"},
	"Label":     {"Text", "Bold", "Role"},
	"Button":    {"Label", "Disabled"},
	"Toggle":    {"Label", "On", "Disabled"},
	"Slider":    {"Axis", "Min", "Max", "Value"},
	"Gauge":     {"Value", "ShowLabel"},
	"Counter":   {"Count"},
	"LayoutBox": {"Color"},
}

// CaptureSnapshot captures the current widget tree and the operations of the
// last drawn frame.
func (t *WidgetTester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	if root := t.Root(); root != nil {
		snap.Tree = captureWidgetNode(root, &typeCounter{})
	}
	for _, op := range t.recorder.Ops() {
		snap.DisplayOps = append(snap.DisplayOps, serializeOp(op))
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When EMBER_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("EMBER_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: EMBER_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: EMBER_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// --- Internal ---

// typeCounter assigns stable IDs like "Button#0", "Button#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

func captureWidgetNode(w core.Widget, counter *typeCounter) *WidgetNode {
	typeName := widgetTypeName(w)
	n := w.Base()
	r := n.Rect()

	node := &WidgetNode{
		ID:     counter.next(typeName),
		Type:   typeName,
		Name:   n.Name(),
		Rect:   [4]float64{round2(r.Left), round2(r.Top), round2(r.Width()), round2(r.Height())},
		Hidden: !n.Visible(),
	}
	if props := captureProperties(w, typeName); len(props) > 0 {
		node.Properties = props
	}
	for _, child := range n.Children() {
		node.Children = append(node.Children, captureWidgetNode(child, counter))
	}
	return node
}

func widgetTypeName(w core.Widget) string {
	t := reflect.TypeOf(w)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func captureProperties(w core.Widget, typeName string) map[string]any {
	whitelist, ok := propertyWhitelist[typeName]
	if !ok {
		return nil
	}

	props := make(map[string]any)
	v := reflect.ValueOf(w)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for _, fieldName := range whitelist {
		field := v.FieldByName(fieldName)
		if !field.IsValid() {
			continue
		}
		if val := serializeFieldValue(field); val != nil {
			props[lowerFirst(fieldName)] = val
		}
	}
	if len(props) == 0 {
		return nil
	}
	return props
}

var (
	colorType    = reflect.TypeOf(graphics.Color(0))
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

func serializeFieldValue(v reflect.Value) any {
	if v.Type() == colorType {
		return serializeColor(graphics.Color(v.Uint()))
	}
	// Enums serialize by name.
	if v.Kind() == reflect.Int && v.Type().Implements(stringerType) && v.CanInterface() {
		return v.Interface().(fmt.Stringer).String()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return round2(v.Float())
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return v.Bool()
	case reflect.Slice:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = serializeFieldValue(v.Index(i))
		}
		return out
	case reflect.Struct:
		return serializeStruct(v)
	default:
		return nil
	}
}

// serializeStruct collects exported fields of a value struct such as
// EdgeInsets or Alignment into a map.
func serializeStruct(v reflect.Value) any {
	t := v.Type()
	m := make(map[string]any)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if val := serializeFieldValue(v.Field(i)); val != nil {
			m[lowerFirst(f.Name)] = val
		}
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

func serializeOp(op graphics.Op) DisplayOp {
	d := DisplayOp{Op: op.Kind.String()}
	switch op.Kind {
	case graphics.OpLine:
		d.Params = sortedMap(
			"from", serializeOffset(op.From),
			"to", serializeOffset(op.To),
			"paint", serializePaint(op.Paint),
		)
	case graphics.OpRect:
		d.Params = sortedMap("rect", serializeRect(op.Rect), "paint", serializePaint(op.Paint))
	case graphics.OpCircle:
		d.Params = sortedMap(
			"center", serializeOffset(op.Center),
			"radius", round2(op.Radius),
			"paint", serializePaint(op.Paint),
		)
	case graphics.OpText:
		d.Params = sortedMap(
			"text", op.Text,
			"origin", serializeOffset(op.From),
			"color", serializeColor(op.TextStyle.Color),
			"font", op.TextStyle.Font,
		)
	}
	return d
}

func serializeOffset(o graphics.Offset) [2]float64 {
	return [2]float64{round2(o.X), round2(o.Y)}
}

func serializeRect(r graphics.Rect) map[string]any {
	return sortedMap(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializePaint(p graphics.Paint) map[string]any {
	m := sortedMap("color", serializeColor(p.Color), "style", p.Style.String())
	if p.Style == graphics.PaintStyleStroke {
		m["width"] = round2(p.StrokeWidth)
	}
	return m
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// sortedMap creates a map from alternating key-value pairs. The JSON encoder
// writes map keys in sorted order.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := max(len(expectedLines), len(actualLines))
	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}
	return buf.String()
}
