package animations

import "fmt"

// PlayState is the derived playback state of an animation.
type PlayState int

const (
	// Idle means the animation has no current time and nothing pending.
	Idle PlayState = iota
	// Running means the current time is advancing with the timeline.
	Running
	// Paused means the current time is pinned by the hold time.
	Paused
	// Finished means the current time has reached the end in the direction
	// of playback.
	Finished
)

// String returns the play state as script observes it.
func (s PlayState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("PlayState(%d)", int(s))
	}
}

// ReplaceState records whether a finished animation may be removed
// automatically.
type ReplaceState int

const (
	// Active animations may be removed once replaced.
	Active ReplaceState = iota
	// Removed animations were replaced and no longer contribute output.
	Removed
	// Persisted animations are never removed automatically.
	Persisted
)

// String returns the replace state as script observes it.
func (s ReplaceState) String() string {
	switch s {
	case Active:
		return "active"
	case Removed:
		return "removed"
	case Persisted:
		return "persisted"
	default:
		return fmt.Sprintf("ReplaceState(%d)", int(s))
	}
}

// AutoRewind controls whether playing an animation outside its active range
// seeks back to the start (or end, when reversed).
type AutoRewind bool

const (
	AutoRewindYes AutoRewind = true
	AutoRewindNo  AutoRewind = false
)

// ShouldInvalidate controls whether Cancel asks the effect to re-apply.
type ShouldInvalidate bool

const (
	InvalidateYes ShouldInvalidate = true
	InvalidateNo  ShouldInvalidate = false
)

type taskState int

const (
	taskNone taskState = iota
	taskScheduled
)

type taskKind int

const (
	playTask taskKind = iota
	pauseTask
)

func (k taskKind) String() string {
	if k == pauseTask {
		return "pause"
	}
	return "play"
}

type didSeek bool
type syncNotify bool
