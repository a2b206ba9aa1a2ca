package animations

import (
	"github.com/go-drift/webanim/pkg/dom"
	"github.com/go-drift/webanim/pkg/promise"
	"github.com/go-drift/webanim/pkg/timing"
)

// promiseSlot holds the current promise of one kind. The promise is created
// on first use; replacing it bumps the generation and leaves the old promise
// to whoever still holds it.
type promiseSlot struct {
	p          *promise.Promise
	generation uint64
	init       func() *promise.Promise
}

func (s *promiseSlot) current() *promise.Promise {
	if s.p == nil {
		s.p = s.init()
		s.generation++
	}
	return s.p
}

func (s *promiseSlot) peek() *promise.Promise { return s.p }

func (s *promiseSlot) replace(p *promise.Promise) {
	s.p = p
	s.generation++
}

// Ready returns the current ready promise. It resolves with the animation
// once a pending play or pause commits.
func (a *Animation) Ready() *promise.Promise { return a.ready.current() }

// Finished returns the current finished promise. It resolves with the
// animation when the animation reaches its end.
func (a *Animation) Finished() *promise.Promise { return a.finished.current() }

// ReadyGeneration counts how many ready promises the animation has had.
func (a *Animation) ReadyGeneration() uint64 { return a.ready.generation }

// FinishedGeneration counts how many finished promises the animation has had.
func (a *Animation) FinishedGeneration() uint64 { return a.finished.generation }

func (a *Animation) resolveReady() {
	a.ready.current().Resolve(a)
}

// updateFinishedState clamps the hold time at the boundaries, records the
// previous current time and settles or replaces the finished promise on
// entering or leaving the finished state.
func (a *Animation) updateFinishedState(seeked didSeek, notify syncNotify) {
	end := a.AssociatedEffectEnd()

	unconstrained := a.currentTimeIgnoringHold()
	if seeked {
		unconstrained = a.CurrentTime()
	}

	if u, ok := unconstrained.Get(); ok && a.startTime.IsResolved() && !a.Pending() {
		switch {
		case a.playbackRate > 0 && u >= end:
			if seeked {
				a.holdTime = unconstrained
			} else {
				a.holdTime = timing.Resolved(max(a.previousCurrentTime.Or(end), end))
			}
		case a.playbackRate < 0 && u <= 0:
			if seeked {
				a.holdTime = unconstrained
			} else {
				a.holdTime = timing.Resolved(min(a.previousCurrentTime.Or(0), 0))
			}
		case a.playbackRate != 0 && a.hasActiveTimeline():
			if hold, ok := a.holdTime.Get(); bool(seeked) && ok {
				a.startTime = timing.Resolved(a.timelineTime().Value() - hold/a.playbackRate)
			}
			a.holdTime = timing.Unresolved
		}
	}

	a.previousCurrentTime = a.CurrentTime()

	finishedNow := a.PlayState() == Finished
	if finishedNow && !a.isFinished {
		if notify {
			a.cancelFinishNotification()
			a.runFinishNotificationSteps()
		} else if !a.hasFinishMicrotask {
			a.finishMicrotask = a.realm.QueueMicrotask(func() {
				a.hasFinishMicrotask = false
				a.runFinishNotificationSteps()
			})
			a.hasFinishMicrotask = true
		}
	}

	if !finishedNow && a.isFinished {
		a.finished.replace(promise.New(a.realm))
		a.isFinished = false
	}
}

func (a *Animation) cancelFinishNotification() {
	if !a.hasFinishMicrotask {
		return
	}
	a.realm.CancelMicrotask(a.finishMicrotask)
	a.hasFinishMicrotask = false
}

func (a *Animation) runFinishNotificationSteps() {
	if a.PlayState() != Finished {
		return
	}

	a.finished.current().Resolve(a)
	a.isFinished = true

	ev := dom.NewPlaybackEvent(dom.EventFinish, a.CurrentTime(), a.timelineTime())
	boundary := a.AssociatedEffectEnd()
	if a.playbackRate < 0 {
		boundary = 0
	}
	scheduled := a.ConvertTimelineTimeToOriginRelativeTime(
		a.ConvertAnimationTimeToTimelineTime(timing.Resolved(boundary)))
	a.enqueueEvent(ev, scheduled)
}
