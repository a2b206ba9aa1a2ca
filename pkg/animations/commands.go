package animations

import (
	"math"

	"github.com/go-drift/webanim/pkg/dom"
	"github.com/go-drift/webanim/pkg/errors"
	"github.com/go-drift/webanim/pkg/promise"
	"github.com/go-drift/webanim/pkg/timing"
)

// Play starts or resumes playback, rewinding first if the animation is
// outside its active range in the direction of playback.
func (a *Animation) Play() error {
	return a.PlayAnimation(AutoRewindYes)
}

// PlayAnimation starts or resumes playback. The commit happens when the
// queued pending play task runs.
func (a *Animation) PlayAnimation(autoRewind AutoRewind) error {
	abortedPause := a.pendingPauseTask == taskScheduled
	current := a.CurrentTime()
	seek := timing.Unresolved

	if autoRewind {
		rate := a.effectivePlaybackRate()
		end := a.AssociatedEffectEnd()
		ct, resolved := current.Get()
		switch {
		case rate >= 0 && (!resolved || ct < 0 || ct >= end):
			seek = timing.Resolved(0)
		case rate < 0 && (!resolved || ct <= 0 || ct > end):
			if math.IsInf(end, 1) {
				return errors.InvalidState("Animation.play", "cannot rewind to the end of an infinite effect")
			}
			seek = timing.Resolved(end)
		}
	}

	if !seek.IsResolved() && !a.startTime.IsResolved() && !current.IsResolved() {
		seek = timing.Resolved(0)
	}

	a.savedPlayTime = current

	if seek.IsResolved() {
		a.holdTime = seek
	}
	if a.holdTime.IsResolved() {
		a.startTime = timing.Unresolved
	}

	hasPendingReady := false
	if a.Pending() {
		a.clearPendingTasks()
		hasPendingReady = true
	}

	if !a.holdTime.IsResolved() && !seek.IsResolved() && !abortedPause && !a.hasPendingRate {
		return nil
	}

	if !hasPendingReady {
		a.ready.replace(promise.New(a.realm))
	}

	a.schedulePendingTask(playTask)
	a.updateFinishedState(false, false)
	return nil
}

// Pause suspends playback. The commit happens when the queued pending pause
// task runs.
func (a *Animation) Pause() error {
	if a.pendingPauseTask == taskScheduled {
		return nil
	}
	if a.PlayState() == Paused {
		return nil
	}

	current := a.CurrentTime()
	seek := timing.Unresolved
	if !current.IsResolved() {
		if a.playbackRate >= 0 {
			seek = timing.Resolved(0)
		} else {
			end := a.AssociatedEffectEnd()
			if math.IsInf(end, 1) {
				return errors.InvalidState("Animation.pause", "cannot seek to the end of an infinite effect")
			}
			seek = timing.Resolved(end)
		}
	}

	a.savedPauseTime = current

	if seek.IsResolved() {
		a.holdTime = seek
	}

	hasPendingReady := false
	if a.pendingPlayTask == taskScheduled {
		a.clearPendingTasks()
		hasPendingReady = true
	}
	if !hasPendingReady {
		a.ready.replace(promise.New(a.realm))
	}

	a.schedulePendingTask(pauseTask)
	a.updateFinishedState(false, false)
	return nil
}

// Reverse flips the direction of playback and plays.
func (a *Animation) Reverse() error {
	if !a.hasActiveTimeline() {
		return errors.InvalidState("Animation.reverse", "animation has no active timeline")
	}

	originalRate, hadPendingRate := a.pendingPlaybackRate, a.hasPendingRate
	a.setPendingPlaybackRate(-a.effectivePlaybackRate())

	if err := a.PlayAnimation(AutoRewindYes); err != nil {
		a.pendingPlaybackRate, a.hasPendingRate = originalRate, hadPendingRate
		return err
	}
	return nil
}

// Finish seeks to the end in the direction of playback and resolves the
// finished promise synchronously.
func (a *Animation) Finish() error {
	rate := a.effectivePlaybackRate()
	end := a.AssociatedEffectEnd()
	if rate == 0 {
		return errors.InvalidState("Animation.finish", "playback rate is zero")
	}
	if rate > 0 && math.IsInf(end, 1) {
		return errors.InvalidState("Animation.finish", "effect end is infinite")
	}

	a.applyPendingPlaybackRate()

	limit := 0.0
	if a.playbackRate > 0 {
		limit = end
	}
	a.silentlySetCurrentTime(timing.Resolved(limit))

	if !a.startTime.IsResolved() && a.hasActiveTimeline() {
		a.startTime = timing.Resolved(a.timelineTime().Value() - limit/a.playbackRate)
	}

	if a.pendingPauseTask == taskScheduled && a.startTime.IsResolved() {
		a.holdTime = timing.Unresolved
		a.clearPendingTasks()
		a.resolveReady()
	}
	if a.pendingPlayTask == taskScheduled && a.startTime.IsResolved() {
		a.clearPendingTasks()
		a.resolveReady()
	}

	a.updateFinishedState(true, true)
	a.invalidateEffect()
	return nil
}

// UpdatePlaybackRate changes the playback rate without a jump in the
// current time. The change is staged as a pending playback rate and applied
// at the next commit point.
func (a *Animation) UpdatePlaybackRate(rate float64) error {
	previous := a.PlayState()
	a.setPendingPlaybackRate(rate)

	if a.Pending() {
		return nil
	}

	switch previous {
	case Idle, Paused:
		a.applyPendingPlaybackRate()
	case Finished:
		timelineTime := a.timelineTime()
		unconstrained := a.currentTimeIgnoringHold()
		switch {
		case rate == 0:
			a.startTime = timelineTime
		case timelineTime.IsResolved() && unconstrained.IsResolved():
			a.startTime = timing.Resolved(timelineTime.Value() - unconstrained.Value()/rate)
		default:
			a.startTime = timing.Unresolved
		}
		a.applyPendingPlaybackRate()
		a.updateFinishedState(false, false)
		a.invalidateEffect()
	default:
		return a.PlayAnimation(AutoRewindNo)
	}
	return nil
}

// Cancel clears all timing state and aborts pending work. The ready promise
// of a pending animation and any unsettled finished promise are rejected
// with an AbortError.
func (a *Animation) Cancel(invalidate ShouldInvalidate) {
	current := a.CurrentTime()

	if a.PlayState() != Idle {
		a.resetPendingTasks()

		if p := a.finished.peek(); p != nil && p.State() == promise.Pending {
			p.MarkHandled()
			p.Reject(errors.Abort("Animation.cancel", "animation was cancelled"))
		}
		a.finished.replace(promise.New(a.realm))
		a.isFinished = false
		a.cancelFinishNotification()

		timelineTime := a.timelineTime()
		ev := dom.NewPlaybackEvent(dom.EventCancel, timing.Unresolved, timelineTime)
		a.enqueueEvent(ev, a.ConvertTimelineTimeToOriginRelativeTime(timelineTime))
	}

	a.savedCancelTime = current
	a.holdTime = timing.Unresolved
	a.startTime = timing.Unresolved

	if invalidate {
		a.invalidateEffect()
	}
}

// Persist protects the animation from automatic removal.
func (a *Animation) Persist() {
	a.SetReplaceState(Persisted)
}
