package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/visualds/pkg/animation"
	"github.com/go-drift/visualds/pkg/graphics"
	"github.com/go-drift/visualds/pkg/scene"
)

const (
	// DefaultTestWidth is the default width of the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default height of the test surface.
	DefaultTestHeight = 600
	// FrameDuration is how far Pump advances the clock per frame.
	FrameDuration = 16 * time.Millisecond
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: transitions did not settle")

// SceneTester steps transitions on a manual clock and inspects the
// mounted scene.
type SceneTester struct {
	root      *scene.Node
	clock     *animation.ManualClock
	prevClock animation.Clock
	size      graphics.Size
}

// NewSceneTester creates a tester and installs its manual clock.
// Call Cleanup() when done, or use NewSceneTesterWithT() instead.
func NewSceneTester() *SceneTester {
	clk := animation.NewManualClock()
	return &SceneTester{
		clock:     clk,
		prevClock: animation.SetClock(clk),
		size:      graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
	}
}

// NewSceneTesterWithT creates a tester that cleans up via t.Cleanup().
func NewSceneTesterWithT(t *testing.T) *SceneTester {
	tester := NewSceneTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup stops leftover transitions and restores the previous clock.
func (t *SceneTester) Cleanup() {
	animation.StopAllTickers()
	animation.SetClock(t.prevClock)
	t.root = nil
}

// SetSize sets the surface size used by snapshots.
func (t *SceneTester) SetSize(size graphics.Size) {
	t.size = size
}

// Clock returns the manual clock.
func (t *SceneTester) Clock() *animation.ManualClock {
	return t.clock
}

// Mount sets the scene root that finders and snapshots inspect.
func (t *SceneTester) Mount(root *scene.Node) {
	t.root = root
}

// Root returns the mounted scene root.
func (t *SceneTester) Root() *scene.Node {
	return t.root
}

// Pump advances the clock by one frame and steps every ticker.
func (t *SceneTester) Pump() {
	t.clock.Advance(FrameDuration)
	animation.StepTickers()
}

// PumpFor advances the clock by d in a single step.
func (t *SceneTester) PumpFor(d time.Duration) {
	t.clock.Advance(d)
	animation.StepTickers()
}

// PumpAndSettle pumps frames until no ticker is running or timeout of
// clock time has passed.
func (t *SceneTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for animation.ActiveTickers() > 0 {
		if elapsed >= timeout {
			return ErrSettleTimeout
		}
		t.Pump()
		elapsed += FrameDuration
	}
	return nil
}

// Find evaluates a finder against the mounted scene.
func (t *SceneTester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{nodes: finder.Evaluate(t.root), finder: finder}
}
