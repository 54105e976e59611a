// Package testing drives scenes and renderers deterministically in tests.
//
// # Quick Start
//
// Mount a scene, mutate the container, pump frames and make assertions:
//
//	func TestPush(t *testing.T) {
//	    tester := viztest.NewSceneTesterWithT(t)
//	    s := structure.NewStack[string]()
//	    r, _ := render.NewStack[string](s, nil)
//	    tester.Mount(r.Node())
//
//	    s.Push("a")
//	    tester.PumpAndSettle(time.Second)
//
//	    if !tester.Find(ByText("a")).Exists() {
//	        t.Error("expected cell 'a'")
//	    }
//	}
//
// # Animation Testing
//
// The tester installs an [animation.ManualClock]. Time only moves when the
// test says so:
//
//	tester.PumpFor(100 * time.Millisecond)
//
// # Snapshot Testing
//
// Capture and compare scene tree snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/stack.snapshot.json")
//
// Update snapshots with:
//
//	VISUALDS_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import viztest "github.com/go-drift/visualds/pkg/testing"
package testing
