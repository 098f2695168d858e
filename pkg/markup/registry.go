package markup

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/errors"
)

// Factory creates a widget from an element. Children are already built.
type Factory func(e *Element) (core.Widget, error)

// Registry maps widget kinds to factories and action names to callbacks.
//
// The zero value is empty; NewRegistry returns one with the built-in kinds.
// Registration and Build are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	actions   map[string]func()
	changes   map[string]func(float64)
}

// NewRegistry returns a registry holding the built-in widget kinds.
func NewRegistry() *Registry {
	r := &Registry{}
	registerBuiltins(r)
	return r
}

// Register adds or replaces the factory for kind.
func (r *Registry) Register(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[kind] = f
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Handle binds an action name used by action= on buttons and toggles.
func (r *Registry) Handle(action string, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.actions == nil {
		r.actions = make(map[string]func())
	}
	r.actions[action] = fn
}

// HandleChange binds a value callback used by change= on sliders and toggles.
// Toggles report 1 for on and 0 for off.
func (r *Registry) HandleChange(name string, fn func(float64)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.changes == nil {
		r.changes = make(map[string]func(float64))
	}
	r.changes[name] = fn
}

func (r *Registry) factory(kind string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[kind]
	return f, ok
}

// action resolves the action= property of e. Unknown names fail the element.
func (r *Registry) action(e *Element) func() {
	name := e.String("action", "")
	if name == "" {
		return nil
	}
	r.mu.RLock()
	fn, ok := r.actions[name]
	r.mu.RUnlock()
	if !ok {
		e.fail("unknown action %q", name)
	}
	return fn
}

// change resolves the change= property of e.
func (r *Registry) change(e *Element) func(float64) {
	name := e.String("change", "")
	if name == "" {
		return nil
	}
	r.mu.RLock()
	fn, ok := r.changes[name]
	r.mu.RUnlock()
	if !ok {
		e.fail("unknown change handler %q", name)
	}
	return fn
}

// Build turns a parsed document into a detached widget tree.
//
// Names given with #name are applied with SetName and must be unique within
// the document. The common property hidden=true makes a widget invisible.
// Errors are *errors.Error of KindConfig carrying the source position.
func (r *Registry) Build(doc *Document) (core.Widget, error) {
	if doc == nil || doc.Root == nil {
		return nil, errors.New("markup.Build", errors.KindConfig, fmt.Errorf("empty document"))
	}
	names := make(map[string]bool)
	w, err := r.build(doc.Root, names)
	if err != nil {
		return nil, errors.New("markup.Build", errors.KindConfig, err)
	}
	return w, nil
}

func (r *Registry) build(n *Node, names map[string]bool) (core.Widget, error) {
	f, ok := r.factory(n.Kind)
	if !ok {
		return nil, fmt.Errorf("%s: unknown widget kind %q", n.Pos, n.Kind)
	}
	e, err := newElement(n)
	if err != nil {
		return nil, err
	}
	if e.Name != "" {
		if names[e.Name] {
			return nil, fmt.Errorf("%s: duplicate name %q", n.Pos, e.Name)
		}
		names[e.Name] = true
	}
	for _, child := range n.Children {
		cw, err := r.build(child, names)
		if err != nil {
			return nil, err
		}
		e.Children = append(e.Children, cw)
	}

	hidden := e.Flag("hidden")
	w, err := f(e)
	if err == nil {
		err = e.Err()
	}
	if err == nil {
		if keys := e.unused(); len(keys) > 0 {
			err = fmt.Errorf("%s: %s: unknown property %q", n.Pos, n.Kind, keys[0])
		}
	}
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%s: %s: factory returned no widget", n.Pos, n.Kind)
	}
	if e.Name != "" {
		w.Base().SetName(e.Name)
	}
	if hidden {
		w.Base().SetVisible(false)
	}
	return w, nil
}

// BuildString parses and builds src.
func (r *Registry) BuildString(src string) (core.Widget, error) {
	doc, err := ParseString(src)
	if err != nil {
		return nil, errors.New("markup.Parse", errors.KindConfig, err)
	}
	return r.Build(doc)
}

// BuildReader parses and builds a document read from rd. The name is used in
// error positions.
func (r *Registry) BuildReader(name string, rd io.Reader) (core.Widget, error) {
	doc, err := Parse(name, rd)
	if err != nil {
		return nil, errors.New("markup.Parse", errors.KindConfig, err)
	}
	return r.Build(doc)
}

// Load reads and builds the markup file at path.
func (r *Registry) Load(path string) (core.Widget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("markup.Load", errors.KindConfig, err)
	}
	return r.BuildReader(path, bytes.NewReader(data))
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry with the built-in kinds.
func Default() *Registry {
	return defaultRegistry
}

// Build parses src with the default registry.
func Build(src string) (core.Widget, error) {
	return defaultRegistry.BuildString(src)
}
