package markup

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/ember/pkg/core"
)

// Outline renders the subtree under root as indented text, one widget per
// line with its name and laid-out rect:
//
//	flex [0,0 100x20]
//	  button#ok [0,0 50x20]
//	  button [50,0 50x20] hidden
func Outline(root core.Widget) string {
	var b strings.Builder
	var walk func(w core.Widget, depth int)
	walk = func(w core.Widget, depth int) {
		n := w.Base()
		r := n.Rect()
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(kindOf(w))
		if n.Name() != "" {
			b.WriteString("#" + n.Name())
		}
		fmt.Fprintf(&b, " [%g,%g %gx%g]", r.Left, r.Top, r.Width(), r.Height())
		if !n.Visible() {
			b.WriteString(" hidden")
		}
		b.WriteByte('\n')
		for _, c := range n.Children() {
			walk(c, depth+1)
		}
	}
	if root != nil {
		walk(root, 0)
	}
	return b.String()
}

func kindOf(w core.Widget) string {
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}
