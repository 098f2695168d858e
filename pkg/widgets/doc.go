// Package widgets provides the built-in widget set.
//
// Every widget embeds core.Node and is a retained object: create it once,
// attach it to a tree, then mutate its fields and call MarkNeedsLayout or
// MarkNeedsPaint as appropriate. Layout containers (Row, Column, Grid,
// Margin, Stack, SizedBox, Expanded, Filler) only position children; display
// widgets (Label, Gauge) only draw; input widgets (Button, Toggle, Slider)
// take focus, react to pointer and key events and capture the pointer while
// pressed.
//
// # Widget Construction
//
// Widgets are built with a constructor and optional WithX chaining:
//
//	row := RowOf(layout.MainAxisAlignmentStart, layout.CrossAxisAlignmentCenter,
//	    MainAxisSizeMax,
//	    NewButton("OK", onOK).WithSize(50, 20),
//	    NewButton("Cancel", onCancel).WithSize(50, 20),
//	).WithGap(2)
//
// Constructors that take children panic if a child is already attached
// elsewhere, as that is a programming error. Use core.Node.AppendChild when
// the error should be handled.
//
// # Styling
//
// Widgets read colors, font and spacing from Node.ResolvedStyle, which walks
// up to the nearest style override and falls back to the tree style.
package widgets
