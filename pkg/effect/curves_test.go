package effect

import (
	"math"
	"testing"

	"github.com/go-drift/webanim/pkg/errors"
)

func TestCurveEndpoints(t *testing.T) {
	for name := range curves {
		fn, err := Curve(name)
		if err != nil {
			t.Fatalf("Curve(%q) = %v", name, err)
		}
		if got := fn(0); math.Abs(got) > 1e-6 {
			t.Errorf("%q(0) = %v, want 0", name, got)
		}
		if got := fn(1); math.Abs(got-1) > 1e-6 {
			t.Errorf("%q(1) = %v, want 1", name, got)
		}
	}
}

func TestCubicBezierMatchesCSS(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
		in   float64
		want float64
	}{
		{"ease", Ease, 0.5, 0.8024},
		{"ease-in", EaseIn, 0.5, 0.3153},
		{"ease-out", EaseOut, 0.5, 0.6847},
		{"ease-in-out", EaseInOut, 0.5, 0.5},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.in); math.Abs(got-tt.want) > 1e-3 {
			t.Errorf("%s(%v) = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestUnknownCurve(t *testing.T) {
	_, err := Curve("steps(4)")
	if errors.KindOf(err) != errors.KindType {
		t.Errorf("Curve(steps) error kind = %v, want %v", errors.KindOf(err), errors.KindType)
	}
}

func TestParseKeywords(t *testing.T) {
	if f, err := ParseFillMode("both"); err != nil || f != FillBoth {
		t.Errorf("ParseFillMode(both) = %v, %v", f, err)
	}
	if _, err := ParseFillMode("sideways"); err == nil {
		t.Error("ParseFillMode should reject unknown keywords")
	}
	if d, err := ParseDirection("alternate-reverse"); err != nil || d != DirectionAlternateReverse {
		t.Errorf("ParseDirection(alternate-reverse) = %v, %v", d, err)
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("ParseDirection should reject unknown keywords")
	}
}

func TestLerpFloat64Overshoots(t *testing.T) {
	tw := TweenFloat64(10, 20)
	if got := tw.Evaluate(1.5); got != 25 {
		t.Errorf("Evaluate(1.5) = %v, want 25", got)
	}
	empty := &Tween[float64]{End: 3}
	if got := empty.Evaluate(0.1); got != 3 {
		t.Errorf("Evaluate without Lerp = %v, want End", got)
	}
}
