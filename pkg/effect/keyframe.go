package effect

import (
	"math"

	"github.com/go-drift/webanim/pkg/animations"
	"github.com/go-drift/webanim/pkg/dom"
	"github.com/go-drift/webanim/pkg/timing"
)

// KeyframeEffect animates properties of a target element over the timing
// model of one animation.
type KeyframeEffect struct {
	target    *dom.Element
	timing    Timing
	easing    func(float64) float64
	tracks    []Track
	animation *animations.Animation
}

// New creates an effect on target. target may be nil.
func New(target *dom.Element, t Timing, tracks ...Track) (*KeyframeEffect, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	easing, _ := Curve(t.Easing)
	return &KeyframeEffect{target: target, timing: t, easing: easing, tracks: tracks}, nil
}

// Target returns the animated element, or nil.
func (e *KeyframeEffect) Target() *dom.Element { return e.target }

// SetTarget retargets the effect. Both the old and the new target are
// invalidated.
func (e *KeyframeEffect) SetTarget(el *dom.Element) {
	e.Invalidate()
	e.target = el
	e.Invalidate()
}

// Properties lists the animated properties in track order.
func (e *KeyframeEffect) Properties() []string {
	props := make([]string, len(e.tracks))
	for i, tr := range e.tracks {
		props[i] = tr.Property()
	}
	return props
}

// Timing returns the current timing inputs.
func (e *KeyframeEffect) Timing() Timing { return e.timing }

// UpdateTiming replaces the timing inputs and lets the animation re-evaluate
// its finished state.
func (e *KeyframeEffect) UpdateTiming(t Timing) error {
	if err := t.Validate(); err != nil {
		return err
	}
	e.timing = t
	e.easing, _ = Curve(t.Easing)
	if e.animation != nil {
		e.animation.EffectTimingChanged()
	}
	e.Invalidate()
	return nil
}

// Animation returns the animation driving the effect, or nil.
func (e *KeyframeEffect) Animation() *animations.Animation { return e.animation }

// SetAnimation is called by the animation when the association changes.
func (e *KeyframeEffect) SetAnimation(a *animations.Animation) { e.animation = a }

// Invalidate marks the target's style as dirty.
func (e *KeyframeEffect) Invalidate() {
	if e.target != nil {
		e.target.InvalidateStyle()
	}
}

// EndTime implements animations.Effect.
func (e *KeyframeEffect) EndTime() float64 { return e.timing.EndTime() }

// ActiveDuration is the length of the active interval.
func (e *KeyframeEffect) ActiveDuration() float64 { return e.timing.ActiveDuration() }

// LocalTime is the animation's current time, or unresolved without one.
func (e *KeyframeEffect) LocalTime() timing.Time {
	if e.animation == nil {
		return timing.Unresolved
	}
	return e.animation.CurrentTime()
}

func (e *KeyframeEffect) backwards() bool {
	return e.animation != nil && e.animation.PlaybackRate() < 0
}

// Phase classifies the local time against the active interval.
func (e *KeyframeEffect) Phase() Phase {
	local, ok := e.LocalTime().Get()
	if !ok {
		return PhaseIdle
	}
	end := e.EndTime()
	beforeActive := max(min(e.timing.Delay, end), 0)
	activeAfter := max(min(e.timing.Delay+e.ActiveDuration(), end), 0)
	backwards := e.backwards()

	switch {
	case local < beforeActive || (backwards && local == beforeActive):
		return PhaseBefore
	case local > activeAfter || (!backwards && local == activeAfter):
		return PhaseAfter
	default:
		return PhaseActive
	}
}

// ActiveTime is the time within the active interval, honouring fill.
func (e *KeyframeEffect) ActiveTime() timing.Time {
	local, _ := e.LocalTime().Get()
	switch e.Phase() {
	case PhaseBefore:
		if e.timing.Fill.fillsBackwards() {
			return timing.Resolved(max(local-e.timing.Delay, 0))
		}
	case PhaseActive:
		return timing.Resolved(local - e.timing.Delay)
	case PhaseAfter:
		if e.timing.Fill.fillsForwards() {
			return timing.Resolved(max(min(local-e.timing.Delay, e.ActiveDuration()), 0))
		}
	}
	return timing.Unresolved
}

func (e *KeyframeEffect) overallProgress() (float64, bool) {
	active, ok := e.ActiveTime().Get()
	if !ok {
		return 0, false
	}
	var overall float64
	if e.timing.Duration == 0 {
		if e.Phase() != PhaseBefore {
			overall = e.timing.Iterations
		}
	} else {
		overall = active / e.timing.Duration
	}
	return overall + e.timing.IterationStart, true
}

// IterationProgress is the progress through the current iteration in
// [0, 1], or unresolved outside the fill range.
func (e *KeyframeEffect) IterationProgress() timing.Time {
	overall, ok := e.overallProgress()
	if !ok {
		return timing.Unresolved
	}
	var simple float64
	if math.IsInf(overall, 1) {
		simple = math.Mod(e.timing.IterationStart, 1)
	} else {
		simple = math.Mod(overall, 1)
	}
	active := e.ActiveTime().Value()
	phase := e.Phase()
	if simple == 0 && (phase == PhaseActive || phase == PhaseAfter) &&
		active == e.ActiveDuration() && e.timing.Iterations != 0 {
		simple = 1
	}
	return timing.Resolved(simple)
}

// CurrentIteration is the zero-based index of the current iteration, or
// unresolved outside the fill range.
func (e *KeyframeEffect) CurrentIteration() timing.Time {
	overall, ok := e.overallProgress()
	if !ok {
		return timing.Unresolved
	}
	if e.Phase() == PhaseAfter && math.IsInf(e.timing.Iterations, 1) {
		return timing.Resolved(math.Inf(1))
	}
	if e.IterationProgress().Value() == 1 {
		return timing.Resolved(math.Floor(overall) - 1)
	}
	return timing.Resolved(math.Floor(overall))
}

// TransformedProgress applies direction and easing to the iteration
// progress.
func (e *KeyframeEffect) TransformedProgress() timing.Time {
	simple, ok := e.IterationProgress().Get()
	if !ok {
		return timing.Unresolved
	}
	forwards := true
	switch e.timing.Direction {
	case DirectionReverse:
		forwards = false
	case DirectionAlternate, DirectionAlternateReverse:
		iteration := e.CurrentIteration().Value()
		even := math.IsInf(iteration, 1) || math.Mod(iteration, 2) == 0
		forwards = even == (e.timing.Direction == DirectionAlternate)
	}
	directed := simple
	if !forwards {
		directed = 1 - simple
	}
	return timing.Resolved(e.easing(directed))
}

// IsInEffect reports whether the effect contributes output.
func (e *KeyframeEffect) IsInEffect() bool {
	return e.ActiveTime().IsResolved()
}

// IsCurrent reports whether the effect is in play or will become so.
func (e *KeyframeEffect) IsCurrent() bool {
	if e.animation == nil {
		return false
	}
	switch e.Phase() {
	case PhaseActive:
		return true
	case PhaseBefore:
		return e.animation.PlaybackRate() > 0
	case PhaseAfter:
		return e.animation.PlaybackRate() < 0
	}
	return false
}

// Sample returns the computed value of every animated property, or nil
// when the effect is not in effect.
func (e *KeyframeEffect) Sample() map[string]string {
	p, ok := e.TransformedProgress().Get()
	if !ok {
		return nil
	}
	out := make(map[string]string, len(e.tracks))
	for _, tr := range e.tracks {
		out[tr.Property()] = tr.Sample(p)
	}
	return out
}
