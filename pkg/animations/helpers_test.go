package animations

import (
	"math"
	"testing"

	"github.com/go-drift/webanim/pkg/dom"
	"github.com/go-drift/webanim/pkg/timing"
)

type queuedEvent struct {
	target    *dom.EventTarget
	event     *dom.Event
	scheduled timing.Time
}

type testRealm struct {
	loop     *dom.EventLoop
	timeline *testTimeline
	events   []queuedEvent
}

func newTestRealm() *testRealm {
	r := &testRealm{loop: dom.NewEventLoop()}
	r.timeline = &testTimeline{time: timing.Resolved(0), doc: r}
	return r
}

func (r *testRealm) QueueMicrotask(fn func()) dom.TaskID { return r.loop.QueueMicrotask(fn) }
func (r *testRealm) CancelMicrotask(id dom.TaskID) bool  { return r.loop.CancelMicrotask(id) }
func (r *testRealm) DefaultTimeline() Timeline           { return r.timeline }
func (r *testRealm) drain()                              { r.loop.PerformMicrotaskCheckpoint() }
func (r *testRealm) pendingMicrotasks() int              { return r.loop.PendingMicrotasks() }
func (r *testRealm) advance(ms float64)                  { r.timeline.set(timing.Resolved(ms)) }
func (r *testRealm) eventCount(typ string) (n int) {
	for _, e := range r.events {
		if e.event.Type == typ {
			n++
		}
	}
	return n
}

func (r *testRealm) EnqueueAnimationEvent(target *dom.EventTarget, ev *dom.Event, scheduled timing.Time) {
	r.events = append(r.events, queuedEvent{target: target, event: ev, scheduled: scheduled})
}

type testTimeline struct {
	time       timing.Time
	doc        Realm
	animations []*Animation
}

func (tl *testTimeline) CurrentTime() timing.Time { return tl.time }
func (tl *testTimeline) IsInactive() bool         { return !tl.time.IsResolved() }
func (tl *testTimeline) IsMonotonic() bool        { return true }
func (tl *testTimeline) Document() Realm          { return tl.doc }

func (tl *testTimeline) OriginRelativeTime(t timing.Time) timing.Time { return t }

func (tl *testTimeline) Associate(a *Animation) {
	tl.animations = append(tl.animations, a)
}

func (tl *testTimeline) Disassociate(a *Animation) {
	for i, other := range tl.animations {
		if other == a {
			tl.animations = append(tl.animations[:i], tl.animations[i+1:]...)
			return
		}
	}
}

func (tl *testTimeline) set(t timing.Time) {
	tl.time = t
	for _, a := range append([]*Animation(nil), tl.animations...) {
		a.NotifyTimelineTimeDidChange()
	}
}

type testEffect struct {
	end           float64
	animation     *Animation
	target        *dom.Element
	invalidations int
}

func (e *testEffect) EndTime() float64          { return e.end }
func (e *testEffect) Animation() *Animation     { return e.animation }
func (e *testEffect) SetAnimation(a *Animation) { e.animation = a }
func (e *testEffect) Invalidate()               { e.invalidations++ }
func (e *testEffect) Target() *dom.Element      { return e.target }
func (e *testEffect) Properties() []string      { return []string{"opacity"} }

func (e *testEffect) IsCurrent() bool {
	return e.animation != nil && e.animation.PlayState() != Finished && e.IsInEffect()
}

// IsInEffect treats the effect as filling forwards.
func (e *testEffect) IsInEffect() bool {
	if e.animation == nil {
		return false
	}
	ct, ok := e.animation.CurrentTime().Get()
	return ok && ct >= 0
}

// newTestAnimation creates an animation of a finite effect on the realm's
// timeline, currently at 0.
func newTestAnimation(t *testing.T, endMs float64) (*testRealm, *Animation, *testEffect) {
	t.Helper()
	realm := newTestRealm()
	eff := &testEffect{end: endMs}
	a := New(realm, eff)
	return realm, a, eff
}

func infinite() float64 { return math.Inf(1) }

func assertTime(t *testing.T, name string, got timing.Time, want float64) {
	t.Helper()
	v, ok := got.Get()
	if !ok {
		t.Errorf("%s = unresolved, want %v", name, want)
		return
	}
	if math.Abs(v-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, v, want)
	}
}

func assertUnresolved(t *testing.T, name string, got timing.Time) {
	t.Helper()
	if got.IsResolved() {
		t.Errorf("%s = %v, want unresolved", name, got)
	}
}

func assertPlayState(t *testing.T, a *Animation, want PlayState) {
	t.Helper()
	if got := a.PlayState(); got != want {
		t.Errorf("PlayState() = %v, want %v", got, want)
	}
}

func assertNoTwoPendingTasks(t *testing.T, a *Animation) {
	t.Helper()
	if a.pendingPlayTask == taskScheduled && a.pendingPauseTask == taskScheduled {
		t.Fatal("pending play and pause tasks are both scheduled")
	}
}
