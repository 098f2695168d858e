package markup

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/go-drift/ember/pkg/core"
)

// Element is a parsed node handed to a Factory. Its accessors record the
// first conversion problem instead of returning errors, so factories read
// straight through and the builder reports the failure afterwards.
type Element struct {
	Kind     string
	Name     string
	Pos      lexer.Position
	Children []core.Widget

	args  []*Value
	props map[string]*Value
	used  map[string]bool
	err   error
}

func newElement(n *Node) (*Element, error) {
	e := &Element{
		Kind:  n.Kind,
		Name:  string(n.Name),
		Pos:   n.Pos,
		props: make(map[string]*Value),
		used:  make(map[string]bool),
	}
	for _, arg := range n.Args {
		if arg.Value != nil {
			e.args = append(e.args, arg.Value)
			continue
		}
		if _, dup := e.props[arg.Prop.Key]; dup {
			return nil, fmt.Errorf("%s: duplicate property %q", arg.Pos, arg.Prop.Key)
		}
		e.props[arg.Prop.Key] = arg.Prop.Value
	}
	return e, nil
}

func (e *Element) fail(format string, args ...any) {
	if e.err == nil {
		e.err = fmt.Errorf("%s: %s: %s", e.Pos, e.Kind, fmt.Sprintf(format, args...))
	}
}

// Err returns the first conversion error.
func (e *Element) Err() error {
	return e.err
}

// NumArgs returns the number of positional arguments.
func (e *Element) NumArgs() int {
	return len(e.args)
}

// Text returns positional argument i as a string, or def when absent.
func (e *Element) Text(i int, def string) string {
	if i >= len(e.args) {
		return def
	}
	return e.args[i].String()
}

// Number returns positional argument i as a number, or def when absent.
func (e *Element) Number(i int, def float64) float64 {
	if i >= len(e.args) {
		return def
	}
	v := e.args[i]
	if v.Num == nil {
		e.fail("argument %d: expected number, got %q", i+1, v.String())
		return def
	}
	return float64(*v.Num)
}

// Has reports whether the property is present and marks it used.
func (e *Element) Has(key string) bool {
	_, ok := e.props[key]
	e.used[key] = true
	return ok
}

// Flag returns a boolean property. A bare key is true; explicit values
// accept the strconv.ParseBool spellings.
func (e *Element) Flag(key string) bool {
	v, ok := e.props[key]
	e.used[key] = true
	if !ok {
		return false
	}
	if v == nil {
		return true
	}
	b, err := strconv.ParseBool(v.String())
	if err != nil {
		e.fail("property %s: expected boolean, got %q", key, v.String())
		return false
	}
	return b
}

// Float returns a numeric property, or def when absent.
func (e *Element) Float(key string, def float64) float64 {
	v, ok := e.props[key]
	e.used[key] = true
	if !ok {
		return def
	}
	if v == nil || v.Num == nil {
		e.fail("property %s: expected number", key)
		return def
	}
	return float64(*v.Num)
}

// Int returns an integer property, or def when absent.
func (e *Element) Int(key string, def int) int {
	f := e.Float(key, float64(def))
	if f != float64(int(f)) {
		e.fail("property %s: expected integer, got %v", key, f)
		return def
	}
	return int(f)
}

// String returns a property as text, or def when absent.
func (e *Element) String(key, def string) string {
	v, ok := e.props[key]
	e.used[key] = true
	if !ok {
		return def
	}
	if v == nil {
		e.fail("property %s: expected value", key)
		return def
	}
	return v.String()
}

// Weights returns a property holding either a track count or a list of
// space-separated weights ("1 2 1"). Absent properties yield nil.
func (e *Element) Weights(key string) []float64 {
	v, ok := e.props[key]
	e.used[key] = true
	if !ok {
		return nil
	}
	switch {
	case v == nil:
		e.fail("property %s: expected value", key)
		return nil
	case v.Num != nil:
		n := int(*v.Num)
		if n < 1 {
			e.fail("property %s: expected at least one track", key)
			return nil
		}
		w := make([]float64, n)
		for i := range w {
			w[i] = 1
		}
		return w
	}
	fields := strings.Fields(v.String())
	w := make([]float64, 0, len(fields))
	for _, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil || x < 0 {
			e.fail("property %s: invalid weight %q", key, f)
			return nil
		}
		w = append(w, x)
	}
	return w
}

// Enum maps a property through choices, or returns def when absent.
func Enum[T any](e *Element, key string, choices map[string]T, def T) T {
	v, ok := e.props[key]
	e.used[key] = true
	if !ok {
		return def
	}
	s := v.String()
	if c, ok := choices[s]; ok {
		return c
	}
	names := make([]string, 0, len(choices))
	for k := range choices {
		names = append(names, k)
	}
	sort.Strings(names)
	e.fail("property %s: %q is not one of %s", key, s, strings.Join(names, ", "))
	return def
}

// NoChildren fails when the element has a child block.
func (e *Element) NoChildren() {
	if len(e.Children) > 0 {
		e.fail("does not take children")
	}
}

// Child returns the single child, or nil. More than one child fails.
func (e *Element) Child() core.Widget {
	switch len(e.Children) {
	case 0:
		return nil
	case 1:
		return e.Children[0]
	default:
		e.fail("takes at most one child, got %d", len(e.Children))
		return nil
	}
}

// unused returns property keys no accessor asked for, sorted.
func (e *Element) unused() []string {
	var keys []string
	for k := range e.props {
		if !e.used[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
