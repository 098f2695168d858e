package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/widgets"
)

// Finder locates widgets in the tree.
type Finder interface {
	// Evaluate returns all matching widgets under root (depth-first pre-order).
	Evaluate(root core.Widget) []core.Widget
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	widgets []core.Widget
	finder  Finder
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() core.Widget {
	if len(r.widgets) == 0 {
		panic(fmt.Sprintf("Finder found no widgets: %s", r.describe()))
	}
	return r.widgets[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() core.Widget {
	if len(r.widgets) == 0 {
		return nil
	}
	return r.widgets[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) core.Widget {
	if index < 0 || index >= len(r.widgets) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.widgets), r.describe()))
	}
	return r.widgets[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []core.Widget {
	return r.widgets
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.widgets)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.widgets) > 0
}

// Rect returns the laid-out rectangle of the first match. Panics if no matches.
func (r FinderResult) Rect() graphics.Rect {
	return r.First().Base().Rect()
}

// ID returns the node ID of the first match, or zero if none.
func (r FinderResult) ID() core.ID {
	if w := r.FirstOrNil(); w != nil {
		return w.Base().ID()
	}
	return 0
}

// --- Concrete finders ---

// typeFinder matches widgets of the specified type.
type typeFinder struct {
	widgetType reflect.Type
	typeName   string
}

func (f *typeFinder) Evaluate(root core.Widget) []core.Widget {
	return collectMatches(root, func(w core.Widget) bool {
		return reflect.TypeOf(w) == f.widgetType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.typeName)
}

// ByType returns a finder that matches widgets whose dynamic type is T,
// usually a pointer type such as *widgets.Button.
func ByType[T core.Widget]() Finder {
	t := reflect.TypeFor[T]()
	return &typeFinder{widgetType: t, typeName: t.String()}
}

// nameFinder matches widgets by node name.
type nameFinder struct {
	name string
}

func (f *nameFinder) Evaluate(root core.Widget) []core.Widget {
	return collectMatches(root, func(w core.Widget) bool {
		return w.Base().Name() == f.name
	})
}

func (f *nameFinder) Description() string {
	return fmt.Sprintf("ByName(%q)", f.name)
}

// ByName returns a finder that matches widgets named with SetName or #name
// in markup.
func ByName(name string) Finder {
	return &nameFinder{name: name}
}

// idFinder matches the widget with the given node ID.
type idFinder struct {
	id core.ID
}

func (f *idFinder) Evaluate(root core.Widget) []core.Widget {
	return collectMatches(root, func(w core.Widget) bool {
		return f.id != 0 && w.Base().ID() == f.id
	})
}

func (f *idFinder) Description() string {
	return fmt.Sprintf("ByID(%d)", f.id)
}

// ByID returns a finder that matches the widget with node ID id.
func ByID(id core.ID) Finder {
	return &idFinder{id: id}
}

// textOf returns the visible text of labels, buttons and toggles.
func textOf(w core.Widget) (string, bool) {
	switch v := w.(type) {
	case *widgets.Label:
		return v.Text, true
	case *widgets.Toggle:
		return v.Label, true
	case *widgets.Button:
		return v.Label, true
	default:
		return "", false
	}
}

// textFinder matches text-bearing widgets by exact content.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root core.Widget) []core.Widget {
	return collectMatches(root, func(w core.Widget) bool {
		s, ok := textOf(w)
		return ok && s == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches [widgets.Label], [widgets.Button] or
// [widgets.Toggle] with exact text.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

// textContainingFinder matches text-bearing widgets containing substring.
type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root core.Widget) []core.Widget {
	return collectMatches(root, func(w core.Widget) bool {
		s, ok := textOf(w)
		return ok && strings.Contains(s, f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches text-bearing widgets
// containing the given substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

// predicateFinder matches widgets satisfying a predicate.
type predicateFinder struct {
	fn   func(core.Widget) bool
	desc string
}

func (f *predicateFinder) Evaluate(root core.Widget) []core.Widget {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches widgets satisfying fn.
func ByPredicate(fn func(core.Widget) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// Focused returns a finder that matches the widget holding keyboard focus.
func Focused() Finder {
	return &predicateFinder{
		fn:   func(w core.Widget) bool { return w.Base().Focused() },
		desc: "Focused()",
	}
}

// descendantFinder finds widgets matching 'matching' that are descendants
// of widgets matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root core.Widget) []core.Widget {
	ancestors := f.of.Evaluate(root)
	if len(ancestors) == 0 {
		return nil
	}
	var results []core.Widget
	seen := make(map[core.Widget]bool)
	for _, ancestor := range ancestors {
		// Search within each ancestor's subtree (skip the ancestor itself)
		for _, child := range ancestor.Base().Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches widgets satisfying 'matching'
// that are descendants of widgets matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// ancestorFinder finds widgets matching 'matching' that are ancestors
// of widgets matching 'of'.
type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root core.Widget) []core.Widget {
	descendants := f.of.Evaluate(root)
	if len(descendants) == 0 {
		return nil
	}
	candidates := make(map[core.Widget]bool)
	for _, w := range f.matching.Evaluate(root) {
		candidates[w] = true
	}
	// Walk up from each descendant; results keep pre-order of the tree.
	hit := make(map[core.Widget]bool)
	for _, d := range descendants {
		for p := d.Base().Parent(); p != nil; p = p.Base().Parent() {
			if candidates[p] {
				hit[p] = true
			}
		}
	}
	return collectMatches(root, func(w core.Widget) bool { return hit[w] })
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor returns a finder that matches widgets satisfying 'matching'
// that are ancestors of widgets matching 'of'.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

// collectMatches performs depth-first pre-order traversal, collecting
// widgets that satisfy the predicate.
func collectMatches(root core.Widget, predicate func(core.Widget) bool) []core.Widget {
	var results []core.Widget
	core.Walk(root, func(w core.Widget) bool {
		if predicate(w) {
			results = append(results, w)
		}
		return true
	})
	return results
}
