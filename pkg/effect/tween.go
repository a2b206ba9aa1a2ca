package effect

import (
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/go-drift/webanim/pkg/errors"
)

// Tween interpolates between Begin and End values based on progress.
type Tween[T any] struct {
	// Begin is the value at progress 0.
	Begin T
	// End is the value at progress 1.
	End T
	// Lerp interpolates between a and b. Progress may leave [0, 1] for
	// overshooting curves.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpColor interpolates two colours in CIE L*a*b* space.
func LerpColor(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendLab(b, t).Clamped()
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenColor creates a tween for colours.
func TweenColor(begin, end colorful.Color) *Tween[colorful.Color] {
	return &Tween[colorful.Color]{Begin: begin, End: end, Lerp: LerpColor}
}

// Track animates one property of the target.
type Track interface {
	Property() string
	// Sample returns the computed value at transformed progress p.
	Sample(p float64) string
}

type tweenTrack[T any] struct {
	property string
	tween    *Tween[T]
	format   func(T) string
}

func (tr *tweenTrack[T]) Property() string { return tr.property }

func (tr *tweenTrack[T]) Sample(p float64) string {
	return tr.format(tr.tween.Evaluate(p))
}

// NumberTrack animates property between two numbers, formatted with unit.
func NumberTrack(property string, from, to float64, unit string) Track {
	return &tweenTrack[float64]{
		property: property,
		tween:    TweenFloat64(from, to),
		format: func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64) + unit
		},
	}
}

// ColorTrack animates property between two hex colours such as "#ff0000".
func ColorTrack(property, from, to string) (Track, error) {
	begin, err := colorful.Hex(from)
	if err != nil {
		return nil, errors.TypeErr("effect.ColorTrack", "invalid colour "+strconv.Quote(from))
	}
	end, err := colorful.Hex(to)
	if err != nil {
		return nil, errors.TypeErr("effect.ColorTrack", "invalid colour "+strconv.Quote(to))
	}
	return &tweenTrack[colorful.Color]{
		property: property,
		tween:    TweenColor(begin, end),
		format:   colorful.Color.Hex,
	}, nil
}
