// Package document hosts animations: it owns the event loop, the default
// document timeline, the list of animations and the pending animation event
// queue, and runs the per-frame "update animations and send events" steps.
package document

import (
	"slices"
	"time"

	"github.com/go-drift/webanim/pkg/animations"
	"github.com/go-drift/webanim/pkg/dom"
	"github.com/go-drift/webanim/pkg/effect"
	"github.com/go-drift/webanim/pkg/promise"
	"github.com/go-drift/webanim/pkg/timeline"
	"github.com/go-drift/webanim/pkg/timing"
)

type pendingEvent struct {
	target    *dom.EventTarget
	event     *dom.Event
	scheduled timing.Time
}

// Option configures a Document.
type Option func(*Document)

// WithTimelineOrigin offsets the default timeline's zero from the document
// time origin.
func WithTimelineOrigin(ms float64) Option {
	return func(d *Document) { d.timelineOrigin = ms }
}

// WithEventLoop makes the document share loop instead of creating its own.
func WithEventLoop(loop *dom.EventLoop) Option {
	return func(d *Document) { d.loop = loop }
}

// Document is the realm animations are created in. It is not safe for
// concurrent use; use EventLoop.Submit to hand work to the goroutine that
// drives it.
type Document struct {
	loop           *dom.EventLoop
	tracker        *promise.Tracker
	timeline       *timeline.DocumentTimeline
	timelineOrigin float64
	origin         time.Time

	animations    []*animations.Animation
	events        []pendingEvent
	nextTreeOrder int
}

// New creates a document whose time origin is the current clock time.
func New(opts ...Option) *Document {
	d := &Document{origin: timing.Now()}
	for _, opt := range opts {
		opt(d)
	}
	if d.loop == nil {
		d.loop = dom.NewEventLoop()
	}
	d.tracker = promise.NewTracker(d.loop)
	d.timeline = timeline.New(d, d.timelineOrigin)
	return d
}

// EventLoop returns the loop that runs the document's microtasks and tasks.
func (d *Document) EventLoop() *dom.EventLoop { return d.loop }

// Timeline returns the default document timeline.
func (d *Document) Timeline() *timeline.DocumentTimeline { return d.timeline }

// DefaultTimeline implements animations.Realm.
func (d *Document) DefaultTimeline() animations.Timeline { return d.timeline }

// QueueMicrotask implements animations.Realm and promise.Realm.
func (d *Document) QueueMicrotask(fn func()) dom.TaskID { return d.loop.QueueMicrotask(fn) }

// CancelMicrotask implements animations.Realm.
func (d *Document) CancelMicrotask(id dom.TaskID) bool { return d.loop.CancelMicrotask(id) }

// TrackRejection implements promise.RejectionTracker.
func (d *Document) TrackRejection(p *promise.Promise) { d.tracker.TrackRejection(p) }

// EnqueueAnimationEvent appends ev to the pending animation event queue.
// It is dispatched by the next UpdateAnimationsAndSendEvents.
func (d *Document) EnqueueAnimationEvent(target *dom.EventTarget, ev *dom.Event, scheduled timing.Time) {
	d.events = append(d.events, pendingEvent{target: target, event: ev, scheduled: scheduled})
}

// PendingEvents returns the number of queued animation events.
func (d *Document) PendingEvents() int { return len(d.events) }

// Now returns the milliseconds elapsed since the document time origin.
func (d *Document) Now() float64 { return timing.Since(d.origin) }

// CreateElement creates an element placed after every element created
// before it.
func (d *Document) CreateElement(tag string) *dom.Element {
	d.nextTreeOrder++
	return dom.NewElement(tag, d.nextTreeOrder)
}

// NewAnimation creates an idle animation of eff on the default timeline and
// adds it to the document's animation list. eff may be nil.
func (d *Document) NewAnimation(eff animations.Effect) *animations.Animation {
	a := animations.New(d, eff)
	d.animations = append(d.animations, a)
	return a
}

// Animate creates a keyframe effect on target, wraps it in an animation and
// plays it.
func (d *Document) Animate(target *dom.Element, t effect.Timing, tracks ...effect.Track) (*animations.Animation, error) {
	eff, err := effect.New(target, t, tracks...)
	if err != nil {
		return nil, err
	}
	a := d.NewAnimation(eff)
	if err := a.Play(); err != nil {
		return nil, err
	}
	return a, nil
}

// Animations returns every animation created through the document, in
// creation order.
func (d *Document) Animations() []*animations.Animation {
	return slices.Clone(d.animations)
}

// GetAnimations returns the relevant animations in composite order. When
// target is non-nil only animations whose effect targets it are returned.
func (d *Document) GetAnimations(target *dom.Element) []*animations.Animation {
	var out []*animations.Animation
	for _, a := range d.animations {
		if !a.IsRelevant() || a.ReplaceState() == animations.Removed {
			continue
		}
		if target != nil && targetOf(a) != target {
			continue
		}
		out = append(out, a)
	}
	slices.SortStableFunc(out, animations.CompareCompositeOrder)
	return out
}

// Tick runs UpdateAnimationsAndSendEvents at the current clock time.
func (d *Document) Tick() {
	d.UpdateAnimationsAndSendEvents(d.Now())
}

// UpdateAnimationsAndSendEvents advances the default timeline to now,
// settles the resulting microtasks, removes replaced animations and
// dispatches the pending animation events in scheduled order.
func (d *Document) UpdateAnimationsAndSendEvents(now float64) {
	d.timeline.Update(now)
	d.loop.PerformMicrotaskCheckpoint()

	d.removeReplacedAnimations()

	events := d.events
	d.events = nil
	slices.SortStableFunc(events, func(a, b pendingEvent) int {
		return timing.Compare(a.scheduled, b.scheduled)
	})
	for _, e := range events {
		e.target.DispatchEvent(e.event)
		d.loop.PerformMicrotaskCheckpoint()
	}
}

func targetOf(a *animations.Animation) *dom.Element {
	if t, ok := a.Effect().(animations.Targeted); ok {
		return t.Target()
	}
	return nil
}
