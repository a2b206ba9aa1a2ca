package dom

import "github.com/go-drift/webanim/pkg/timing"

// Event types dispatched at animations.
const (
	EventFinish = "finish"
	EventCancel = "cancel"
	EventRemove = "remove"
)

// Event is an animation playback event.
type Event struct {
	// Type is the event name, e.g. "finish".
	Type string
	// Target is the object the event was dispatched at.
	Target *EventTarget
	// CurrentTime is the animation's current time when the event was created.
	CurrentTime timing.Time
	// TimelineTime is the timeline's current time when the event was created.
	TimelineTime timing.Time
}

// NewPlaybackEvent creates an event of the given type.
func NewPlaybackEvent(typ string, currentTime, timelineTime timing.Time) *Event {
	return &Event{Type: typ, CurrentTime: currentTime, TimelineTime: timelineTime}
}
