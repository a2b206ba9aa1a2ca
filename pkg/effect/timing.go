package effect

import (
	"fmt"
	"math"

	"github.com/go-drift/webanim/pkg/errors"
)

// FillMode controls whether an effect applies outside its active interval.
type FillMode int

const (
	// FillAuto behaves as FillNone for keyframe effects.
	FillAuto FillMode = iota
	FillNone
	FillForwards
	FillBackwards
	FillBoth
)

func (f FillMode) String() string {
	switch f {
	case FillAuto:
		return "auto"
	case FillNone:
		return "none"
	case FillForwards:
		return "forwards"
	case FillBackwards:
		return "backwards"
	case FillBoth:
		return "both"
	default:
		return fmt.Sprintf("FillMode(%d)", int(f))
	}
}

func (f FillMode) fillsForwards() bool  { return f == FillForwards || f == FillBoth }
func (f FillMode) fillsBackwards() bool { return f == FillBackwards || f == FillBoth }

// ParseFillMode parses a CSS fill keyword.
func ParseFillMode(s string) (FillMode, error) {
	for f := FillAuto; f <= FillBoth; f++ {
		if f.String() == s {
			return f, nil
		}
	}
	return FillAuto, errors.TypeErr("effect.ParseFillMode", fmt.Sprintf("unknown fill %q", s))
}

// Direction is the playback direction of successive iterations.
type Direction int

const (
	DirectionNormal Direction = iota
	DirectionReverse
	DirectionAlternate
	DirectionAlternateReverse
)

func (d Direction) String() string {
	switch d {
	case DirectionNormal:
		return "normal"
	case DirectionReverse:
		return "reverse"
	case DirectionAlternate:
		return "alternate"
	case DirectionAlternateReverse:
		return "alternate-reverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses a CSS playback direction keyword.
func ParseDirection(s string) (Direction, error) {
	for d := DirectionNormal; d <= DirectionAlternateReverse; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return DirectionNormal, errors.TypeErr("effect.ParseDirection", fmt.Sprintf("unknown direction %q", s))
}

// Phase is the position of the local time relative to the active interval.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseBefore
	PhaseActive
	PhaseAfter
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBefore:
		return "before"
	case PhaseActive:
		return "active"
	case PhaseAfter:
		return "after"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Timing holds the timing inputs of an effect. Times are milliseconds.
type Timing struct {
	Delay    float64
	EndDelay float64
	// Duration of one iteration. May be +Inf.
	Duration float64
	// Iterations may be +Inf.
	Iterations     float64
	IterationStart float64
	Direction      Direction
	Fill           FillMode
	// Easing names a curve known to Curve.
	Easing string
}

// DefaultTiming returns a single zero-length iteration with linear easing.
func DefaultTiming() Timing {
	return Timing{Iterations: 1}
}

// Validate reports a TypeError for out-of-range values.
func (t Timing) Validate() error {
	const op = "effect.Timing"
	switch {
	case math.IsNaN(t.Duration) || t.Duration < 0:
		return errors.TypeErr(op, "duration must be a non-negative number")
	case math.IsNaN(t.Iterations) || t.Iterations < 0:
		return errors.TypeErr(op, "iterations must be a non-negative number")
	case math.IsNaN(t.IterationStart) || math.IsInf(t.IterationStart, 0) || t.IterationStart < 0:
		return errors.TypeErr(op, "iterationStart must be a finite non-negative number")
	case math.IsNaN(t.Delay) || math.IsInf(t.Delay, 0):
		return errors.TypeErr(op, "delay must be finite")
	case math.IsNaN(t.EndDelay) || math.IsInf(t.EndDelay, 0):
		return errors.TypeErr(op, "endDelay must be finite")
	}
	if _, err := Curve(t.Easing); err != nil {
		return err
	}
	return nil
}

// ActiveDuration is the length of all iterations together.
func (t Timing) ActiveDuration() float64 {
	if t.Duration == 0 || t.Iterations == 0 {
		return 0
	}
	return t.Duration * t.Iterations
}

// EndTime is the end of the effect including delays, never negative.
func (t Timing) EndTime() float64 {
	return max(t.Delay+t.ActiveDuration()+t.EndDelay, 0)
}
