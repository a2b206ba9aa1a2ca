// Package promise implements the settle-once promises an animation exposes as
// its ready and finished promises.
//
// A Promise belongs to a [Realm], which supplies the microtask queue its
// reactions run on. Reactions never run synchronously from Resolve or Reject:
// they are queued as microtasks, so a holder observes settlement at the next
// microtask checkpoint.
package promise

import (
	"fmt"

	"github.com/go-drift/webanim/pkg/dom"
	"github.com/go-drift/webanim/pkg/errors"
)

// State is the settlement state of a promise.
type State int

const (
	// Pending means the promise has not settled.
	Pending State = iota
	// Fulfilled means the promise resolved with a value.
	Fulfilled
	// Rejected means the promise rejected with a reason.
	Rejected
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Realm schedules promise reactions.
type Realm interface {
	QueueMicrotask(func()) dom.TaskID
}

// RejectionTracker is implemented by realms that report rejections nobody
// handled.
type RejectionTracker interface {
	TrackRejection(*Promise)
}

type reaction struct {
	onFulfilled func(any)
	onRejected  func(error)
}

// Promise is a settle-once container for a value or an error.
type Promise struct {
	realm     Realm
	state     State
	value     any
	reason    error
	handled   bool
	reactions []reaction
}

// New creates a pending promise in realm.
func New(realm Realm) *Promise {
	return &Promise{realm: realm}
}

// NewResolved creates a promise already fulfilled with v.
func NewResolved(realm Realm, v any) *Promise {
	p := New(realm)
	p.Resolve(v)
	return p
}

// State returns the current settlement state.
func (p *Promise) State() State { return p.state }

// Value returns the fulfilment value, or nil.
func (p *Promise) Value() any { return p.value }

// Reason returns the rejection reason, or nil.
func (p *Promise) Reason() error { return p.reason }

// IsHandled reports whether a rejection handler is attached or the promise
// was marked handled.
func (p *Promise) IsHandled() bool { return p.handled }

// MarkHandled suppresses unhandled-rejection reporting for p.
func (p *Promise) MarkHandled() { p.handled = true }

// Resolve fulfils p with v. It reports false if p had already settled.
func (p *Promise) Resolve(v any) bool {
	if p.state != Pending {
		return false
	}
	p.state = Fulfilled
	p.value = v
	p.flush()
	return true
}

// Reject rejects p with err. It reports false if p had already settled.
func (p *Promise) Reject(err error) bool {
	if p.state != Pending {
		return false
	}
	p.state = Rejected
	p.reason = err
	if !p.handled {
		if tracker, ok := p.realm.(RejectionTracker); ok {
			tracker.TrackRejection(p)
		}
	}
	p.flush()
	return true
}

// Then registers reactions. Either callback may be nil. Registering an
// onRejected callback marks the promise handled.
func (p *Promise) Then(onFulfilled func(any), onRejected func(error)) {
	if onRejected != nil {
		p.handled = true
	}
	r := reaction{onFulfilled: onFulfilled, onRejected: onRejected}
	if p.state == Pending {
		p.reactions = append(p.reactions, r)
		return
	}
	p.schedule(r)
}

func (p *Promise) flush() {
	reactions := p.reactions
	p.reactions = nil
	for _, r := range reactions {
		p.schedule(r)
	}
}

func (p *Promise) schedule(r reaction) {
	state, value, reason := p.state, p.value, p.reason
	p.realm.QueueMicrotask(func() {
		switch state {
		case Fulfilled:
			if r.onFulfilled != nil {
				r.onFulfilled(value)
			}
		case Rejected:
			if r.onRejected != nil {
				r.onRejected(reason)
			}
		}
	})
}

// Tracker reports rejected promises that are still unhandled at the end of a
// microtask checkpoint.
type Tracker struct {
	pending []*Promise
}

// NewTracker creates a tracker that checks rejections after every checkpoint
// of loop.
func NewTracker(loop *dom.EventLoop) *Tracker {
	t := &Tracker{}
	loop.OnCheckpoint(t.flush)
	return t
}

// TrackRejection records p for the next checkpoint.
func (t *Tracker) TrackRejection(p *Promise) {
	t.pending = append(t.pending, p)
}

func (t *Tracker) flush() {
	pending := t.pending
	t.pending = nil
	for _, p := range pending {
		if p.handled {
			continue
		}
		errors.Report(&errors.Error{
			Op:   "promise.Tracker",
			Kind: errors.KindUnhandledRejection,
			Err:  p.reason,
		})
	}
}
