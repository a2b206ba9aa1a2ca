package animations

import (
	"math"

	"github.com/go-drift/webanim/pkg/timing"
)

// CurrentTime returns the animation's current time.
func (a *Animation) CurrentTime() timing.Time {
	if a.holdTime.IsResolved() {
		return a.holdTime
	}
	return a.currentTimeIgnoringHold()
}

func (a *Animation) currentTimeIgnoringHold() timing.Time {
	tl, ok := a.timelineTime().Get()
	if !ok || !a.startTime.IsResolved() {
		return timing.Unresolved
	}
	return timing.Resolved((tl - a.startTime.Value()) * a.playbackRate)
}

func (a *Animation) timelineTime() timing.Time {
	if a.timeline == nil {
		return timing.Unresolved
	}
	return a.timeline.CurrentTime()
}

func (a *Animation) hasActiveTimeline() bool {
	return a.timeline != nil && !a.timeline.IsInactive()
}

// silentlySetCurrentTime seeks without touching pending tasks or the
// finished state.
func (a *Animation) silentlySetCurrentTime(seek timing.Time) {
	if !seek.IsResolved() {
		a.holdTime = timing.Unresolved
		a.startTime = timing.Unresolved
		a.previousCurrentTime = timing.Unresolved
		return
	}

	if a.holdTime.IsResolved() || !a.startTime.IsResolved() || !a.hasActiveTimeline() || a.playbackRate == 0 {
		a.holdTime = seek
	} else {
		a.startTime = timing.Resolved(a.timelineTime().Value() - seek.Value()/a.playbackRate)
	}

	if !a.hasActiveTimeline() {
		a.startTime = timing.Unresolved
	}

	a.previousCurrentTime = timing.Unresolved
}

// AssociatedEffectEnd returns the end time of the effect, or 0 without one.
func (a *Animation) AssociatedEffectEnd() float64 {
	if a.effect == nil {
		return 0
	}
	return a.effect.EndTime()
}

// EffectivePlaybackRate returns the pending playback rate if one is staged,
// otherwise the playback rate.
func (a *Animation) EffectivePlaybackRate() float64 {
	return a.effectivePlaybackRate()
}

func (a *Animation) effectivePlaybackRate() float64 {
	if a.hasPendingRate {
		return a.pendingPlaybackRate
	}
	return a.playbackRate
}

func (a *Animation) setPendingPlaybackRate(rate float64) {
	a.pendingPlaybackRate = rate
	a.hasPendingRate = true
}

func (a *Animation) applyPendingPlaybackRate() {
	if !a.hasPendingRate {
		return
	}
	a.playbackRate = a.pendingPlaybackRate
	a.hasPendingRate = false
}

// ConvertAnimationTimeToTimelineTime maps a time in the animation's time
// space onto its timeline.
func (a *Animation) ConvertAnimationTimeToTimelineTime(t timing.Time) timing.Time {
	v, ok := t.Get()
	if !ok {
		return t
	}
	if math.IsInf(v, 0) || a.playbackRate == 0 || !a.startTime.IsResolved() {
		return timing.Unresolved
	}
	return timing.Resolved(v/a.playbackRate + a.startTime.Value())
}

// ConvertTimelineTimeToOriginRelativeTime maps a timeline time onto the
// document's time origin.
func (a *Animation) ConvertTimelineTimeToOriginRelativeTime(t timing.Time) timing.Time {
	if a.timeline == nil || !t.IsResolved() {
		return timing.Unresolved
	}
	return a.timeline.OriginRelativeTime(t)
}
