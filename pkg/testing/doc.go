// Package testing provides a deterministic harness for animation tests.
//
// # Quick Start
//
// Create a tester, start an animation and pump frames:
//
//	func TestFade(t *testing.T) {
//	    tester := animtest.NewTesterWithT(t)
//	    el := tester.Document().CreateElement("div")
//	    a, _ := tester.Document().Animate(el, effect.Timing{Duration: 300, Iterations: 1},
//	        effect.NumberTrack("opacity", 0, 1, ""))
//	    a.SetID("fade")
//
//	    tester.Pump()
//	    tester.Advance(150 * time.Millisecond)
//
//	    if got := tester.Find(animtest.ByID("fade")).First().PlayState(); got != animations.Running {
//	        t.Errorf("PlayState() = %v, want running", got)
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare the state of every animation:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/fade.snapshot.json")
//
// Update snapshots with:
//
//	WEBANIM_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import animtest "github.com/go-drift/webanim/pkg/testing"
package testing
