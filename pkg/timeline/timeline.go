// Package timeline provides the document timeline that drives animations.
//
// A [DocumentTimeline] has no clock of its own. The document samples its
// clock once per frame and passes the result to [DocumentTimeline.Update],
// so every animation observes the same time during a frame.
package timeline

import (
	"cmp"
	"slices"

	"github.com/go-drift/webanim/pkg/animations"
	"github.com/go-drift/webanim/pkg/timing"
)

// DocumentTimeline is a monotonic timeline whose zero is offset from the
// document's time origin by originTime milliseconds.
type DocumentTimeline struct {
	doc        animations.Realm
	originTime float64
	current    timing.Time
	inactive   bool

	// animations is kept sorted by global animation list order.
	animations []*animations.Animation
}

// New creates an active timeline for doc. Its current time is unresolved
// until the first Update.
func New(doc animations.Realm, originTime float64) *DocumentTimeline {
	return &DocumentTimeline{doc: doc, originTime: originTime}
}

// CurrentTime returns the timeline time, or unresolved when inactive.
func (tl *DocumentTimeline) CurrentTime() timing.Time {
	if tl.inactive {
		return timing.Unresolved
	}
	return tl.current
}

// IsInactive reports whether the timeline has no current time.
func (tl *DocumentTimeline) IsInactive() bool { return !tl.CurrentTime().IsResolved() }

// IsMonotonic is always true for document timelines.
func (tl *DocumentTimeline) IsMonotonic() bool { return true }

// OriginTime returns the offset of the timeline's zero from the document
// time origin.
func (tl *DocumentTimeline) OriginTime() float64 { return tl.originTime }

// OriginRelativeTime converts a timeline time to a time relative to the
// document time origin.
func (tl *DocumentTimeline) OriginRelativeTime(t timing.Time) timing.Time {
	v, ok := t.Get()
	if !ok || tl.inactive {
		return timing.Unresolved
	}
	return timing.Resolved(v + tl.originTime)
}

// Document returns the realm the timeline belongs to.
func (tl *DocumentTimeline) Document() animations.Realm { return tl.doc }

// Associate records that a uses this timeline.
func (tl *DocumentTimeline) Associate(a *animations.Animation) {
	i, found := slices.BinarySearchFunc(tl.animations, a, compareGlobalOrder)
	if found {
		return
	}
	tl.animations = slices.Insert(tl.animations, i, a)
}

// Disassociate forgets a.
func (tl *DocumentTimeline) Disassociate(a *animations.Animation) {
	if i, found := slices.BinarySearchFunc(tl.animations, a, compareGlobalOrder); found {
		tl.animations = slices.Delete(tl.animations, i, i+1)
	}
}

// Animations returns the associated animations in global animation list
// order.
func (tl *DocumentTimeline) Animations() []*animations.Animation {
	return slices.Clone(tl.animations)
}

// Update sets the current time from now, measured from the document time
// origin, and notifies every associated animation. Times earlier than the
// current time are ignored.
func (tl *DocumentTimeline) Update(now float64) {
	t := now - tl.originTime
	if cur, ok := tl.current.Get(); ok && t < cur {
		return
	}
	tl.current = timing.Resolved(t)
	if !tl.inactive {
		tl.notify()
	}
}

// Deactivate makes the current time unresolved until Activate.
func (tl *DocumentTimeline) Deactivate() {
	if tl.inactive {
		return
	}
	tl.inactive = true
	tl.notify()
}

// Activate restores the last updated time.
func (tl *DocumentTimeline) Activate() {
	if !tl.inactive {
		return
	}
	tl.inactive = false
	tl.notify()
}

func (tl *DocumentTimeline) notify() {
	for _, a := range slices.Clone(tl.animations) {
		a.NotifyTimelineTimeDidChange()
	}
}

func compareGlobalOrder(a, b *animations.Animation) int {
	return cmp.Compare(a.GlobalAnimationListOrder(), b.GlobalAnimationListOrder())
}
