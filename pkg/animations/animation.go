package animations

import (
	"sync/atomic"

	"github.com/go-drift/webanim/pkg/dom"
	"github.com/go-drift/webanim/pkg/errors"
	"github.com/go-drift/webanim/pkg/promise"
	"github.com/go-drift/webanim/pkg/timing"
)

// globalOrder hands out positions in the global animation list.
var globalOrder atomic.Uint64

// Animation controls the playback of one effect against one timeline.
//
// An Animation is not safe for concurrent use. It must only be touched from
// the goroutine that drives its realm's event loop.
type Animation struct {
	dom.EventTarget

	id       string
	realm    Realm
	effect   Effect
	timeline Timeline

	startTime           timing.Time
	holdTime            timing.Time
	previousCurrentTime timing.Time

	playbackRate        float64
	pendingPlaybackRate float64
	hasPendingRate      bool

	replaceState ReplaceState

	ready      promiseSlot
	finished   promiseSlot
	isFinished bool

	pendingPlayTask  taskState
	pendingPauseTask taskState
	// taskGeneration identifies the most recently queued pending-task
	// microtask; older microtasks are void.
	taskGeneration uint64
	// awaitingTimeline is set when a pending task's microtask ran while the
	// timeline had no current time.
	awaitingTimeline bool

	finishMicrotask    dom.TaskID
	hasFinishMicrotask bool

	origin      Origin
	globalOrder uint64

	savedPlayTime   timing.Time
	savedPauseTime  timing.Time
	savedCancelTime timing.Time
}

// New creates an animation of effect on realm's default timeline.
func New(realm Realm, effect Effect) *Animation {
	return NewWithTimeline(realm, effect, realm.DefaultTimeline())
}

// NewWithTimeline creates an animation of effect on timeline. Either may be
// nil.
func NewWithTimeline(realm Realm, effect Effect, timeline Timeline) *Animation {
	a := &Animation{
		realm:        realm,
		playbackRate: 1,
		replaceState: Active,
		globalOrder:  globalOrder.Add(1),
	}
	a.Owner = a
	a.ready.init = func() *promise.Promise { return promise.NewResolved(realm, a) }
	a.finished.init = func() *promise.Promise { return promise.New(realm) }
	a.SetTimeline(timeline)
	a.SetEffect(effect)
	return a
}

// ID returns the animation's identifier.
func (a *Animation) ID() string { return a.id }

// SetID sets the animation's identifier. It has no effect on timing.
func (a *Animation) SetID(id string) { a.id = id }

// Realm returns the realm the animation was created in.
func (a *Animation) Realm() Realm { return a.realm }

// Effect returns the associated effect, or nil.
func (a *Animation) Effect() Effect { return a.effect }

// SetEffect replaces the associated effect. An effect already associated
// with another animation is detached from it first.
func (a *Animation) SetEffect(effect Effect) {
	old := a.effect
	if effect == old {
		return
	}

	a.reschedulePendingTask()

	if effect != nil {
		if prev := effect.Animation(); prev != nil && prev != a {
			prev.SetEffect(nil)
		}
	}
	if old != nil {
		old.SetAnimation(nil)
		old.Invalidate()
	}
	a.effect = effect
	if effect != nil {
		effect.SetAnimation(a)
	}

	a.updateFinishedState(false, false)
	a.invalidateEffect()
}

// Timeline returns the associated timeline, or nil.
func (a *Animation) Timeline() Timeline { return a.timeline }

// SetTimeline replaces the associated timeline.
func (a *Animation) SetTimeline(timeline Timeline) {
	old := a.timeline
	if timeline == old {
		return
	}
	if old != nil {
		old.Disassociate(a)
	}
	a.timeline = timeline
	if timeline != nil {
		timeline.Associate(a)
	}

	if a.startTime.IsResolved() {
		a.holdTime = timing.Unresolved
	}
	a.reschedulePendingTask()

	a.updateFinishedState(false, false)
	a.invalidateEffect()
}

// StartTime returns the timeline time at which the animation started.
func (a *Animation) StartTime() timing.Time { return a.startTime }

// SetStartTime sets the start time directly, committing any pending play or
// pause request.
func (a *Animation) SetStartTime(newStart timing.Time) {
	timelineTime := a.timelineTime()
	if !timelineTime.IsResolved() && newStart.IsResolved() {
		a.holdTime = timing.Unresolved
	}

	previous := a.CurrentTime()
	a.applyPendingPlaybackRate()
	a.startTime = newStart

	if newStart.IsResolved() {
		if a.playbackRate != 0 {
			a.holdTime = timing.Unresolved
		}
	} else {
		a.holdTime = previous
	}

	if a.Pending() {
		a.clearPendingTasks()
		a.resolveReady()
	}

	a.updateFinishedState(true, false)
	a.invalidateEffect()
}

// SetCurrentTime seeks the animation. Seeking to an unresolved time is a
// TypeError unless the current time is already unresolved.
func (a *Animation) SetCurrentTime(seek timing.Time) error {
	if !seek.IsResolved() {
		if a.CurrentTime().IsResolved() {
			return errors.TypeErr("Animation.setCurrentTime", "cannot seek to an unresolved time")
		}
		return nil
	}

	a.silentlySetCurrentTime(seek)

	if a.pendingPauseTask == taskScheduled {
		a.holdTime = seek
		a.applyPendingPlaybackRate()
		a.startTime = timing.Unresolved
		a.clearPendingTasks()
		a.resolveReady()
	}

	a.updateFinishedState(true, false)
	a.invalidateEffect()
	return nil
}

// PlaybackRate returns the committed playback rate.
func (a *Animation) PlaybackRate() float64 { return a.playbackRate }

// SetPlaybackRate changes the playback rate immediately, preserving the
// current time.
func (a *Animation) SetPlaybackRate(rate float64) error {
	a.hasPendingRate = false
	previous := a.CurrentTime()
	a.playbackRate = rate
	if previous.IsResolved() {
		return a.SetCurrentTime(previous)
	}
	return nil
}

// Pending reports whether a play or pause request awaits its commit.
func (a *Animation) Pending() bool {
	return a.pendingPlayTask == taskScheduled || a.pendingPauseTask == taskScheduled
}

// PlayState derives the current play state.
func (a *Animation) PlayState() PlayState {
	current := a.CurrentTime()

	if !current.IsResolved() && !a.startTime.IsResolved() && !a.Pending() {
		return Idle
	}

	if a.pendingPauseTask == taskScheduled ||
		(!a.startTime.IsResolved() && a.pendingPlayTask != taskScheduled) {
		return Paused
	}

	if ct, ok := current.Get(); ok {
		rate := a.effectivePlaybackRate()
		if (rate > 0 && ct >= a.AssociatedEffectEnd()) || (rate < 0 && ct <= 0) {
			return Finished
		}
	}

	return Running
}

// IsIdle reports whether the play state is idle.
func (a *Animation) IsIdle() bool { return a.PlayState() == Idle }

// IsFinished reports whether the current finished promise has resolved.
func (a *Animation) IsFinished() bool { return a.isFinished }

// ReplaceState returns the replace state.
func (a *Animation) ReplaceState() ReplaceState { return a.replaceState }

// GlobalAnimationListOrder returns the animation's position in the global
// animation list. Positions increase strictly with creation order.
func (a *Animation) GlobalAnimationListOrder() uint64 { return a.globalOrder }

// DocumentForTiming returns the realm of the associated timeline, or nil.
func (a *Animation) DocumentForTiming() Realm {
	if a.timeline == nil {
		return nil
	}
	return a.timeline.Document()
}

// NotifyTimelineTimeDidChange is called by the timeline after its current
// time changed.
func (a *Animation) NotifyTimelineTimeDidChange() {
	if a.awaitingTimeline && a.isReady() {
		a.awaitingTimeline = false
		a.commitPendingTask()
	}
	a.updateFinishedState(false, false)
	a.invalidateEffect()
}

// EffectTimingChanged is called by the effect after its timing inputs
// changed.
func (a *Animation) EffectTimingChanged() {
	a.updateFinishedState(false, false)
}

// OnFinish returns the onfinish handler.
func (a *Animation) OnFinish() dom.Listener { return a.EventHandler(dom.EventFinish) }

// SetOnFinish sets the onfinish handler.
func (a *Animation) SetOnFinish(fn dom.Listener) { a.SetEventHandler(dom.EventFinish, fn) }

// OnCancel returns the oncancel handler.
func (a *Animation) OnCancel() dom.Listener { return a.EventHandler(dom.EventCancel) }

// SetOnCancel sets the oncancel handler.
func (a *Animation) SetOnCancel(fn dom.Listener) { a.SetEventHandler(dom.EventCancel, fn) }

// OnRemove returns the onremove handler.
func (a *Animation) OnRemove() dom.Listener { return a.EventHandler(dom.EventRemove) }

// SetOnRemove sets the onremove handler.
func (a *Animation) SetOnRemove(fn dom.Listener) { a.SetEventHandler(dom.EventRemove, fn) }

// ReleaseSavedPlayTime returns and clears the current time saved by the
// last Play.
func (a *Animation) ReleaseSavedPlayTime() timing.Time {
	t := a.savedPlayTime
	a.savedPlayTime = timing.Unresolved
	return t
}

// ReleaseSavedPauseTime returns and clears the current time saved by the
// last Pause.
func (a *Animation) ReleaseSavedPauseTime() timing.Time {
	t := a.savedPauseTime
	a.savedPauseTime = timing.Unresolved
	return t
}

// ReleaseSavedCancelTime returns and clears the current time saved by the
// last Cancel.
func (a *Animation) ReleaseSavedCancelTime() timing.Time {
	t := a.savedCancelTime
	a.savedCancelTime = timing.Unresolved
	return t
}

// enqueueEvent appends ev to the pending animation event queue of the
// document for timing, falling back to the animation's own realm.
func (a *Animation) enqueueEvent(ev *dom.Event, scheduled timing.Time) {
	doc := a.DocumentForTiming()
	if doc == nil {
		doc = a.realm
	}
	doc.EnqueueAnimationEvent(&a.EventTarget, ev, scheduled)
}

func (a *Animation) invalidateEffect() {
	if a.effect != nil {
		a.effect.Invalidate()
	}
}
