// Package testing provides a widget testing framework for ember.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestMyWidget(t *testing.T) {
//	    tester := embertest.NewWidgetTesterWithT(t)
//	    tester.PumpWidget(widgets.NewColumn(
//	        widgets.NewLabel("0"),
//	        widgets.NewButton("Submit", submit),
//	    ))
//
//	    // Simulate gestures
//	    tester.Tap(embertest.ByText("Submit"))
//
//	    // Find widgets
//	    if !tester.Find(embertest.ByText("Submitted")).Exists() {
//	        t.Error("expected 'Submitted' text")
//	    }
//	}
//
// Widgets can also be pumped from markup with PumpMarkup; nodes named with
// #name are found with ByName.
//
// # Snapshot Testing
//
// Capture and compare widget tree snapshots together with the drawing
// operations of the last frame:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/my_widget.snapshot.json")
//
// Update snapshots with:
//
//	EMBER_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import embertest "github.com/go-drift/ember/pkg/testing"
package testing
