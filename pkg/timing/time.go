// Package timing provides the time values shared by animations, effects and
// timelines.
//
// All times are fractional milliseconds. A time value may be unresolved, which
// is distinct from zero: an idle animation has an unresolved current time, a
// timeline that is not attached to an active document has an unresolved
// current time.
package timing

import (
	"math"
	"strconv"
)

// Time is a possibly unresolved time value in milliseconds.
//
// The zero value is unresolved.
type Time struct {
	ms       float64
	resolved bool
}

// Unresolved is the absence of a time value.
var Unresolved = Time{}

// Resolved returns a resolved time of ms milliseconds.
func Resolved(ms float64) Time {
	return Time{ms: ms, resolved: true}
}

// IsResolved reports whether t holds a value.
func (t Time) IsResolved() bool { return t.resolved }

// Value returns the milliseconds held by t, or 0 when unresolved.
func (t Time) Value() float64 {
	if !t.resolved {
		return 0
	}
	return t.ms
}

// Get returns the value and whether it is resolved.
func (t Time) Get() (float64, bool) { return t.ms, t.resolved }

// Or returns the value of t, or fallback when t is unresolved.
func (t Time) Or(fallback float64) float64 {
	if !t.resolved {
		return fallback
	}
	return t.ms
}

// Equal reports whether t and other are both unresolved or hold the same value.
func (t Time) Equal(other Time) bool {
	if t.resolved != other.resolved {
		return false
	}
	return !t.resolved || t.ms == other.ms
}

// String returns the value formatted in milliseconds, or "unresolved".
func (t Time) String() string {
	if !t.resolved {
		return "unresolved"
	}
	return strconv.FormatFloat(t.ms, 'f', -1, 64) + "ms"
}

// Compare orders time values with unresolved values sorted first.
func Compare(a, b Time) int {
	switch {
	case !a.resolved && !b.resolved:
		return 0
	case !a.resolved:
		return -1
	case !b.resolved:
		return 1
	case a.ms < b.ms:
		return -1
	case a.ms > b.ms:
		return 1
	default:
		return 0
	}
}

// IsInfinite reports whether ms is positive or negative infinity.
func IsInfinite(ms float64) bool {
	return math.IsInf(ms, 0)
}
