package markup

import (
	"github.com/go-drift/ember/pkg/core"
	"github.com/go-drift/ember/pkg/graphics"
	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/widgets"
)

var (
	mainAlignments = map[string]layout.MainAxisAlignment{
		"start":         layout.MainAxisAlignmentStart,
		"end":           layout.MainAxisAlignmentEnd,
		"center":        layout.MainAxisAlignmentCenter,
		"space-between": layout.MainAxisAlignmentSpaceBetween,
	}
	crossAlignments = map[string]layout.CrossAxisAlignment{
		"start":   layout.CrossAxisAlignmentStart,
		"end":     layout.CrossAxisAlignmentEnd,
		"center":  layout.CrossAxisAlignmentCenter,
		"stretch": layout.CrossAxisAlignmentStretch,
	}
	mainSizes = map[string]widgets.MainAxisSize{
		"min": widgets.MainAxisSizeMin,
		"max": widgets.MainAxisSizeMax,
	}
	alignments = map[string]layout.Alignment{
		"top-left":     layout.AlignTopLeft,
		"top":          layout.AlignTopCenter,
		"top-right":    layout.AlignTopRight,
		"left":         layout.AlignCenterLeft,
		"center":       layout.AlignCenter,
		"right":        layout.AlignCenterRight,
		"bottom-left":  layout.AlignBottomLeft,
		"bottom":       layout.AlignBottomCenter,
		"bottom-right": layout.AlignBottomRight,
	}
	stackFits = map[string]widgets.StackFit{
		"loose":  widgets.StackFitLoose,
		"expand": widgets.StackFitExpand,
	}
	axes = map[string]layout.Axis{
		"horizontal": layout.AxisHorizontal,
		"vertical":   layout.AxisVertical,
	}
	shapes = map[string]widgets.Shape{
		"rect":   widgets.ShapeRect,
		"circle": widgets.ShapeCircle,
		"line":   widgets.ShapeLine,
	}
	roles = map[string]widgets.ColorRole{
		"foreground":  widgets.RoleForeground,
		"foreground2": widgets.RoleForeground2,
		"foreground3": widgets.RoleForeground3,
		"accent":      widgets.RoleAccent,
		"disabled":    widgets.RoleDisabled,
		"success":     widgets.RoleSuccess,
		"warning":     widgets.RoleWarning,
	}
)

func registerBuiltins(r *Registry) {
	r.Register("row", flexFactory(layout.AxisHorizontal))
	r.Register("column", flexFactory(layout.AxisVertical))
	r.Register("grid", buildGrid)
	r.Register("stack", buildStack)
	r.Register("margin", buildMargin)
	r.Register("panel", buildPanel)
	r.Register("box", buildSizedBox)
	r.Register("expanded", buildExpanded)
	r.Register("filler", buildFiller)
	r.Register("label", buildLabel)
	r.Register("button", r.buildButton)
	r.Register("toggle", r.buildToggle)
	r.Register("slider", r.buildSlider)
	r.Register("gauge", buildGauge)
	r.Register("menu", r.buildMenu)
	r.Register("plot", buildPlot)
	r.Register("battery", buildBattery)
	r.Register("alert", r.buildAlert)
	r.Register("warning", buildWarning)
	r.Register("shape", buildShape)
	r.Register("segments", buildSegments)
}

// flexFactory builds rows and columns:
//
//	row gap=2 main=space-between cross=stretch size=max { ... }
func flexFactory(axis layout.Axis) Factory {
	return func(e *Element) (core.Widget, error) {
		f := widgets.NewFlex(axis, e.Children...)
		f.Gap = e.Float("gap", 0)
		f.MainAxisAlignment = Enum(e, "main", mainAlignments, layout.MainAxisAlignmentStart)
		f.CrossAxisAlignment = Enum(e, "cross", crossAlignments, layout.CrossAxisAlignmentStart)
		f.MainAxisSize = Enum(e, "size", mainSizes, widgets.MainAxisSizeMin)
		return f, nil
	}
}

// grid 2 3 { ... } or grid rows="1 2" cols=3 { ... }
func buildGrid(e *Element) (core.Widget, error) {
	rows := e.Weights("rows")
	cols := e.Weights("cols")
	if rows == nil {
		rows = evenTracks(e.Number(0, 1))
	}
	if cols == nil {
		cols = evenTracks(e.Number(1, 1))
	}
	return widgets.GridOf(rows, cols, e.Children...), nil
}

func evenTracks(n float64) []float64 {
	w := make([]float64, max(int(n), 1))
	for i := range w {
		w[i] = 1
	}
	return w
}

func buildStack(e *Element) (core.Widget, error) {
	s := widgets.NewStack(e.Children...)
	s.Alignment = Enum(e, "align", alignments, layout.AlignTopLeft)
	s.Fit = Enum(e, "fit", stackFits, widgets.StackFitLoose)
	return s, nil
}

// margin takes one, two or four insets in CSS order:
// all, vertical horizontal, or top right bottom left.
func buildMargin(e *Element) (core.Widget, error) {
	var in graphics.EdgeInsets
	switch e.NumArgs() {
	case 0:
		in = graphics.EdgeInsetsAll(-1)
	case 1:
		in = graphics.EdgeInsetsAll(e.Number(0, 0))
	case 2:
		in = graphics.EdgeInsetsSymmetric(e.Number(1, 0), e.Number(0, 0))
	case 4:
		in = graphics.EdgeInsets{Top: e.Number(0, 0), Right: e.Number(1, 0), Bottom: e.Number(2, 0), Left: e.Number(3, 0)}
	default:
		e.fail("expected 1, 2 or 4 insets, got %d", e.NumArgs())
	}
	m := widgets.NewMargin(in, nil)
	for _, child := range e.Children {
		if err := m.AppendChild(child); err != nil {
			return nil, err
		}
	}
	m.Background = e.Flag("background")
	m.Border = e.Flag("border")
	return m, nil
}

func buildPanel(e *Element) (core.Widget, error) {
	return widgets.NewPanel(e.Children...), nil
}

// box width=40 height=10 { child }. Omitted axes follow the child.
func buildSizedBox(e *Element) (core.Widget, error) {
	return widgets.NewSizedBox(e.Float("width", -1), e.Float("height", -1), e.Child()), nil
}

// expanded 2 { child }
func buildExpanded(e *Element) (core.Widget, error) {
	return widgets.NewExpanded(int(e.Number(0, 1)), e.Child()), nil
}

func buildFiller(e *Element) (core.Widget, error) {
	e.NoChildren()
	f := widgets.NewFiller()
	switch e.String("axis", "both") {
	case "both":
	case "horizontal":
		f.Vertical = false
	case "vertical":
		f.Horizontal = false
	default:
		e.fail("property axis: expected horizontal, vertical or both")
	}
	return f, nil
}

func buildLabel(e *Element) (core.Widget, error) {
	e.NoChildren()
	l := widgets.NewLabel(e.Text(0, "")).WithBold(e.Flag("bold"))
	l.Role = Enum(e, "role", roles, widgets.RoleForeground)
	l.Alignment = Enum(e, "align", alignments, layout.AlignTopLeft)
	return l, nil
}

// button "OK" action=save width=50 disabled
func (r *Registry) buildButton(e *Element) (core.Widget, error) {
	e.NoChildren()
	b := widgets.NewButton(e.Text(0, ""), r.action(e))
	b.WithSize(e.Float("width", 0), e.Float("height", 0))
	b.Disabled = e.Flag("disabled")
	return b, nil
}

// toggle "Wi-Fi" on action=refresh change=wifi
func (r *Registry) buildToggle(e *Element) (core.Widget, error) {
	e.NoChildren()
	action := r.action(e)
	change := r.change(e)
	var onChanged func(bool)
	if action != nil || change != nil {
		onChanged = func(on bool) {
			if change != nil {
				v := 0.0
				if on {
					v = 1
				}
				change(v)
			}
			if action != nil {
				action()
			}
		}
	}
	t := widgets.NewToggle(e.Text(0, ""), e.Flag("on"), onChanged)
	t.Disabled = e.Flag("disabled")
	return t, nil
}

// slider 0 100 40 step=5 axis=vertical change=volume
func (r *Registry) buildSlider(e *Element) (core.Widget, error) {
	e.NoChildren()
	s := widgets.NewSlider(e.Number(0, 0), e.Number(1, 1), e.Number(2, 0), r.change(e))
	s.WithAxis(Enum(e, "axis", axes, layout.AxisHorizontal))
	if e.Has("step") {
		s.Step = e.Float("step", s.Step)
	}
	s.Length = e.Float("length", s.Length)
	s.Thickness = e.Float("thickness", s.Thickness)
	s.Disabled = e.Flag("disabled")
	return s, nil
}

// gauge 0.4 width=60 height=8 label
func buildGauge(e *Element) (core.Widget, error) {
	e.NoChildren()
	g := widgets.NewGauge(e.Number(0, 0), e.Float("width", 64), e.Float("height", 10))
	g.ShowLabel = e.Flag("label")
	return g, nil
}

// menu "Open" "Save" "Quit" selected=1 change=pick action=run
//
// change receives the newly selected index, action fires on activation.
func (r *Registry) buildMenu(e *Element) (core.Widget, error) {
	e.NoChildren()
	entries := make([]string, e.NumArgs())
	for i := range entries {
		entries[i] = e.Text(i, "")
	}
	m := widgets.NewMenu(entries...).WithSelected(e.Int("selected", 0))
	if change := r.change(e); change != nil {
		m.OnSelect = func(i int) { change(float64(i)) }
	}
	if action := r.action(e); action != nil {
		m.OnActivate = func(int) { action() }
	}
	m.Disabled = e.Flag("disabled")
	return m, nil
}

// plot 1 4 9 16 scale=2 grid=5 capacity=50 width=80 height=40
func buildPlot(e *Element) (core.Widget, error) {
	e.NoChildren()
	p := widgets.NewPlot()
	p.Capacity = e.Int("capacity", 0)
	for i := range e.NumArgs() {
		p.Push(e.Number(i, 0))
	}
	p.YScale = e.Float("scale", p.YScale)
	p.GridStep = e.Float("grid", p.GridStep)
	p.Width = e.Float("width", 0)
	p.Height = e.Float("height", 0)
	return p, nil
}

// battery 80 charging width=24 height=12
func buildBattery(e *Element) (core.Widget, error) {
	e.NoChildren()
	return widgets.NewBattery(e.Number(0, 100), e.Flag("charging"), e.Float("width", 24), e.Float("height", 12)), nil
}

// alert "Low battery" action=dismissed
func (r *Registry) buildAlert(e *Element) (core.Widget, error) {
	e.NoChildren()
	return widgets.NewAlert(e.Text(0, ""), r.action(e)), nil
}

// warning width=13 height=12
func buildWarning(e *Element) (core.Widget, error) {
	e.NoChildren()
	return widgets.NewWarningTriangle(e.Float("width", 13), e.Float("height", 12)), nil
}

// shape 10 10 kind=circle filled role=warning
func buildShape(e *Element) (core.Widget, error) {
	e.NoChildren()
	p := widgets.NewPrimitive(Enum(e, "kind", shapes, widgets.ShapeRect), e.Number(0, 8), e.Number(1, 8))
	p.Filled = e.Flag("filled")
	p.Role = Enum(e, "role", roles, widgets.RoleForeground)
	return p, nil
}

// segments "12:34" digit-width=8 digit-height=14 role=accent
func buildSegments(e *Element) (core.Widget, error) {
	e.NoChildren()
	d := widgets.NewSevenSegment(e.Text(0, ""), e.Float("digit-width", 8), e.Float("digit-height", 14))
	d.Role = Enum(e, "role", roles, widgets.RoleAccent)
	return d, nil
}
