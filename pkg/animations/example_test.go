package animations_test

import (
	"fmt"

	"github.com/go-drift/webanim/pkg/animations"
	"github.com/go-drift/webanim/pkg/dom"
	"github.com/go-drift/webanim/pkg/timing"
)

type exampleRealm struct {
	loop     *dom.EventLoop
	timeline *exampleTimeline
}

func (r *exampleRealm) QueueMicrotask(fn func()) dom.TaskID  { return r.loop.QueueMicrotask(fn) }
func (r *exampleRealm) CancelMicrotask(id dom.TaskID) bool   { return r.loop.CancelMicrotask(id) }
func (r *exampleRealm) DefaultTimeline() animations.Timeline { return r.timeline }

func (r *exampleRealm) EnqueueAnimationEvent(target *dom.EventTarget, ev *dom.Event, _ timing.Time) {
	r.loop.QueueTask(func() { target.DispatchEvent(ev) })
}

type exampleTimeline struct {
	now  timing.Time
	doc  animations.Realm
	anim []*animations.Animation
}

func (tl *exampleTimeline) CurrentTime() timing.Time                     { return tl.now }
func (tl *exampleTimeline) IsInactive() bool                             { return !tl.now.IsResolved() }
func (tl *exampleTimeline) IsMonotonic() bool                            { return true }
func (tl *exampleTimeline) OriginRelativeTime(t timing.Time) timing.Time { return t }
func (tl *exampleTimeline) Document() animations.Realm                   { return tl.doc }
func (tl *exampleTimeline) Associate(a *animations.Animation)            { tl.anim = append(tl.anim, a) }
func (tl *exampleTimeline) Disassociate(*animations.Animation)           {}

type exampleEffect struct {
	anim *animations.Animation
}

func (e *exampleEffect) EndTime() float64                     { return 1000 }
func (e *exampleEffect) Animation() *animations.Animation     { return e.anim }
func (e *exampleEffect) SetAnimation(a *animations.Animation) { e.anim = a }
func (e *exampleEffect) Invalidate()                          {}
func (e *exampleEffect) IsCurrent() bool                      { return false }
func (e *exampleEffect) IsInEffect() bool                     { return false }

func Example() {
	realm := &exampleRealm{loop: dom.NewEventLoop()}
	realm.timeline = &exampleTimeline{now: timing.Resolved(0), doc: realm}

	a := animations.New(realm, &exampleEffect{})
	a.SetOnFinish(func(ev *dom.Event) {
		fmt.Println("finish event at", ev.CurrentTime)
	})

	a.Play()
	fmt.Println(a.PlayState(), a.Pending())
	realm.loop.PerformMicrotaskCheckpoint()
	fmt.Println("start time", a.StartTime())

	realm.timeline.now = timing.Resolved(1200)
	a.NotifyTimelineTimeDidChange()
	realm.loop.Drain(10)
	fmt.Println(a.PlayState(), a.CurrentTime())

	// Output:
	// running true
	// start time 0ms
	// finish event at 1000ms
	// finished 1000ms
}
