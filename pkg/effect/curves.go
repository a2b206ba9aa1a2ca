package effect

import (
	"fmt"
	"math"

	"github.com/fogleman/ease"

	"github.com/go-drift/webanim/pkg/errors"
)

// Easing curves map directed iteration progress onto transformed progress.
//
// Each curve takes a value t in [0, 1] and returns the eased value. The CSS
// keywords are cubic Béziers; the other named curves come from
// github.com/fogleman/ease.

// Linear returns its input unchanged.
func Linear(t float64) float64 {
	return t
}

// Ease is the CSS ease curve, the default for CSS transitions.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn is the CSS ease-in curve.
var EaseIn = CubicBezier(0.42, 0.0, 1.0, 1.0)

// EaseOut is the CSS ease-out curve.
var EaseOut = CubicBezier(0.0, 0.0, 0.58, 1.0)

// EaseInOut is the CSS ease-in-out curve.
var EaseInOut = CubicBezier(0.42, 0.0, 0.58, 1.0)

var curves = map[string]func(float64) float64{
	"":            Linear,
	"linear":      Linear,
	"ease":        Ease,
	"ease-in":     EaseIn,
	"ease-out":    EaseOut,
	"ease-in-out": EaseInOut,

	"in-quad":       ease.InQuad,
	"out-quad":      ease.OutQuad,
	"in-out-quad":   ease.InOutQuad,
	"in-cubic":      ease.InCubic,
	"out-cubic":     ease.OutCubic,
	"in-out-cubic":  ease.InOutCubic,
	"in-sine":       ease.InSine,
	"out-sine":      ease.OutSine,
	"in-out-sine":   ease.InOutSine,
	"in-back":       ease.InBack,
	"out-back":      ease.OutBack,
	"in-out-back":   ease.InOutBack,
	"in-bounce":     ease.InBounce,
	"out-bounce":    ease.OutBounce,
	"in-out-bounce": ease.InOutBounce,
}

// Curve returns the easing function registered under name. The empty name
// is linear.
func Curve(name string) (func(float64) float64, error) {
	fn, ok := curves[name]
	if !ok {
		return nil, errors.TypeErr("effect.Curve", fmt.Sprintf("unknown easing %q", name))
	}
	return fn, nil
}

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 12 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	return min(max(value, 0), 1)
}
