package timeline_test

import (
	"testing"

	"github.com/go-drift/webanim/pkg/animations"
	"github.com/go-drift/webanim/pkg/document"
	"github.com/go-drift/webanim/pkg/timeline"
	"github.com/go-drift/webanim/pkg/timing"
)

func TestUpdateIsMonotonic(t *testing.T) {
	tl := timeline.New(nil, 0)
	if !tl.IsInactive() {
		t.Error("timeline without an update should be inactive")
	}
	tl.Update(100)
	tl.Update(50)
	if got := tl.CurrentTime(); !got.Equal(timing.Resolved(100)) {
		t.Errorf("CurrentTime() = %v, want 100ms", got)
	}
	if !tl.IsMonotonic() {
		t.Error("document timelines are monotonic")
	}
}

func TestOriginRelativeTime(t *testing.T) {
	tl := timeline.New(nil, 250)
	tl.Update(1000)
	if got := tl.CurrentTime(); !got.Equal(timing.Resolved(750)) {
		t.Errorf("CurrentTime() = %v, want 750ms", got)
	}
	if got := tl.OriginRelativeTime(timing.Resolved(10)); !got.Equal(timing.Resolved(260)) {
		t.Errorf("OriginRelativeTime(10) = %v, want 260ms", got)
	}
	if tl.OriginRelativeTime(timing.Unresolved).IsResolved() {
		t.Error("an unresolved time stays unresolved")
	}
}

func TestDeactivateAndActivate(t *testing.T) {
	tl := timeline.New(nil, 0)
	tl.Update(500)
	tl.Deactivate()
	if !tl.IsInactive() || tl.CurrentTime().IsResolved() {
		t.Fatal("deactivated timeline should have no current time")
	}
	if tl.OriginRelativeTime(timing.Resolved(1)).IsResolved() {
		t.Error("inactive timelines cannot convert times")
	}

	tl.Update(700)
	tl.Activate()
	if got := tl.CurrentTime(); !got.Equal(timing.Resolved(700)) {
		t.Errorf("CurrentTime() = %v after Activate, want 700ms", got)
	}
}

func TestAnimationsKeptInGlobalOrder(t *testing.T) {
	d := document.New()
	tl := d.Timeline()
	first := d.NewAnimation(nil)
	second := d.NewAnimation(nil)
	third := d.NewAnimation(nil)

	second.SetTimeline(nil)
	second.SetTimeline(tl)

	got := tl.Animations()
	want := []*animations.Animation{first, second, third}
	if len(got) != len(want) {
		t.Fatalf("Animations() has %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Animations()[%d] out of global order", i)
		}
	}

	tl.Associate(first)
	if len(tl.Animations()) != 3 {
		t.Error("Associate must not duplicate")
	}
	tl.Disassociate(third)
	if len(tl.Animations()) != 2 {
		t.Error("Disassociate should remove the animation")
	}
}

func TestUpdateNotifiesAnimations(t *testing.T) {
	d := document.New()
	tl := d.Timeline()
	a := d.NewAnimation(nil)
	a.Play()
	d.EventLoop().PerformMicrotaskCheckpoint()
	if !a.Pending() {
		t.Fatal("play should wait for a resolved timeline time")
	}

	tl.Update(40)
	if a.Pending() {
		t.Error("Update should let the pending play commit")
	}
	if got := a.StartTime(); !got.Equal(timing.Resolved(40)) {
		t.Errorf("StartTime() = %v, want 40ms", got)
	}
}
