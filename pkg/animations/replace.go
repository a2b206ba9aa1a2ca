package animations

import (
	"github.com/go-drift/webanim/pkg/dom"
)

// IsRelevant reports whether the effect is current or in effect.
func (a *Animation) IsRelevant() bool {
	if a.effect == nil {
		return false
	}
	return a.effect.IsCurrent() || a.effect.IsInEffect()
}

// IsReplaceable reports whether a later animation may replace this one.
func (a *Animation) IsReplaceable() bool {
	if a.replaceState == Removed {
		return false
	}
	if a.Class() == ClassCSSAnimationWithOwningElement || a.Class() == ClassCSSTransition {
		return false
	}
	if a.PlayState() != Finished {
		return false
	}
	if a.timeline == nil || !a.timeline.IsMonotonic() {
		return false
	}
	if a.effect == nil || !a.effect.IsInEffect() {
		return false
	}
	if t, ok := a.effect.(Targeted); !ok || t.Target() == nil {
		return false
	}
	return true
}

// SetReplaceState moves the replace state forward. Only Active to Removed,
// and Active or Removed to Persisted, are accepted; other requests are
// ignored. Removal queues a remove event.
func (a *Animation) SetReplaceState(state ReplaceState) {
	switch {
	case state == a.replaceState:
		return
	case state == Removed && a.replaceState == Active:
	case state == Persisted:
	default:
		return
	}
	a.replaceState = state
	a.invalidateEffect()

	if state != Removed {
		return
	}
	timelineTime := a.timelineTime()
	ev := dom.NewPlaybackEvent(dom.EventRemove, a.CurrentTime(), timelineTime)
	a.enqueueEvent(ev, a.ConvertTimelineTimeToOriginRelativeTime(timelineTime))
}
