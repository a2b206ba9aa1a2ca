package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/webanim/pkg/animations"
	"github.com/go-drift/webanim/pkg/document"
	"github.com/go-drift/webanim/pkg/timing"
)

// DefaultFrameDuration is the clock step between frames in PumpAndSettle.
const DefaultFrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: animations did not settle")

// Tester drives a document frame by frame against a fake clock. It runs the
// same steps as a host's frame loop: update animations and send events,
// then run the queued tasks.
type Tester struct {
	doc       *document.Document
	clock     *FakeClock
	prevClock timing.Clock
	frames    int
}

// NewTester creates a tester with a fresh document whose time origin is the
// fake clock's current time. Call Cleanup when done, or use
// NewTesterWithT instead.
func NewTester(opts ...document.Option) *Tester {
	clk := NewFakeClock()
	t := &Tester{clock: clk}
	t.prevClock = timing.SetClock(clk)
	t.doc = document.New(opts...)
	return t
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T, opts ...document.Option) *Tester {
	tester := NewTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the timing clock.
func (t *Tester) Cleanup() {
	timing.SetClock(t.prevClock)
}

// Document returns the document under test.
func (t *Tester) Document() *document.Document { return t.doc }

// Clock returns the fake clock for advancing time in tests.
func (t *Tester) Clock() *FakeClock { return t.clock }

// Frames returns the number of frames pumped so far.
func (t *Tester) Frames() int { return t.frames }

// Pump runs a single frame at the current clock time.
func (t *Tester) Pump() {
	t.frames++
	t.doc.Tick()
	t.doc.EventLoop().Drain(8)
}

// Advance moves the clock forward by d and pumps one frame.
func (t *Tester) Advance(d time.Duration) {
	t.clock.Advance(d)
	t.Pump()
}

// PumpAndSettle runs frames until no animation is pending or running, or
// the timeout is reached. Each frame advances the fake clock by
// DefaultFrameDuration. Returns ErrSettleTimeout if the document does not
// settle within timeout.
func (t *Tester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for {
		t.Pump()
		if !t.needsWork() {
			return nil
		}
		if elapsed >= timeout {
			return ErrSettleTimeout
		}
		t.clock.Advance(DefaultFrameDuration)
		elapsed += DefaultFrameDuration
	}
}

func (t *Tester) needsWork() bool {
	loop := t.doc.EventLoop()
	if t.doc.PendingEvents() > 0 || loop.PendingMicrotasks() > 0 || loop.PendingTasks() > 0 {
		return true
	}
	for _, a := range t.doc.Animations() {
		if a.Pending() || a.PlayState() == animations.Running {
			return true
		}
	}
	return false
}

// Find evaluates finder against the document's animations.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{
		animations: finder.Evaluate(t.doc.Animations()),
		finder:     finder,
	}
}
