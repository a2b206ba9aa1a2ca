package animations

import (
	"github.com/go-drift/webanim/pkg/dom"
	"github.com/go-drift/webanim/pkg/timing"
)

// Effect is the animation effect an animation drives.
type Effect interface {
	// EndTime returns the effect's end time in milliseconds. It may be
	// positive infinity.
	EndTime() float64
	// Animation returns the animation the effect is associated with.
	Animation() *Animation
	// SetAnimation records the associated animation.
	SetAnimation(*Animation)
	// Invalidate requests that the effect's output be re-applied.
	Invalidate()
	// IsCurrent reports whether the effect is in play or will be.
	IsCurrent() bool
	// IsInEffect reports whether the effect currently produces output.
	IsInEffect() bool
}

// Targeted is implemented by effects that animate properties of an element.
type Targeted interface {
	Target() *dom.Element
	Properties() []string
}

// Timeline is the time source an animation samples.
type Timeline interface {
	// CurrentTime returns the timeline's current time.
	CurrentTime() timing.Time
	// IsInactive reports whether the current time is unresolved.
	IsInactive() bool
	// IsMonotonic reports whether the timeline only moves forward.
	IsMonotonic() bool
	// OriginRelativeTime converts a timeline time to a time relative to the
	// document's time origin.
	OriginRelativeTime(timing.Time) timing.Time
	// Document returns the realm events of animations on this timeline are
	// delivered through, or nil.
	Document() Realm
	// Associate registers a for time change notifications.
	Associate(a *Animation)
	// Disassociate removes a.
	Disassociate(a *Animation)
}

// Realm is the host an animation lives in. It supplies the microtask queue
// pending tasks and promise reactions run on, and the event queue playback
// events are dispatched from.
type Realm interface {
	QueueMicrotask(func()) dom.TaskID
	CancelMicrotask(dom.TaskID) bool
	// EnqueueAnimationEvent queues ev for dispatch at target during the next
	// animation update. Events dispatch in scheduled-time order, unresolved
	// times first.
	EnqueueAnimationEvent(target *dom.EventTarget, ev *dom.Event, scheduled timing.Time)
	// DefaultTimeline returns the document's default timeline.
	DefaultTimeline() Timeline
}
