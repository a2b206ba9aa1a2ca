package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCaptureSnapshot_States(t *testing.T) {
	tester := NewTesterWithT(t)
	fade(t, tester, "fade", 200)
	tester.Document().NewAnimation(nil)
	tester.Pump()
	tester.Advance(50 * time.Millisecond)

	snap := tester.CaptureSnapshot()
	if len(snap.Animations) != 2 {
		t.Fatalf("expected 2 animations, got %d", len(snap.Animations))
	}

	running := snap.Animations[0]
	if running.ID != "fade" || running.PlayState != "running" {
		t.Errorf("first node = %s/%s, want fade/running", running.ID, running.PlayState)
	}
	if running.CurrentTime == nil || *running.CurrentTime != 50 {
		t.Errorf("current time = %v, want 50", running.CurrentTime)
	}
	if running.Output["opacity"] != "0.25" {
		t.Errorf("opacity = %q, want 0.25", running.Output["opacity"])
	}

	second := snap.Animations[1]
	if second.ID != "#1" || second.PlayState != "idle" || second.CurrentTime != nil {
		t.Errorf("second node = %+v, want an unnamed idle animation", second)
	}
	if snap.TimelineTime == nil || *snap.TimelineTime != 50 {
		t.Errorf("timeline time = %v, want 50", snap.TimelineTime)
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	tester := NewTesterWithT(t)
	fade(t, tester, "fade", 200)
	tester.Pump()

	a := tester.CaptureSnapshot()
	b := tester.CaptureSnapshot()

	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Changed(t *testing.T) {
	tester := NewTesterWithT(t)
	fade(t, tester, "fade", 200)
	tester.Pump()
	before := tester.CaptureSnapshot()

	tester.Advance(100 * time.Millisecond)
	after := tester.CaptureSnapshot()

	diff := after.Diff(before)
	if !strings.Contains(diff, `-      "currentTime": 0,`) || !strings.Contains(diff, `+      "currentTime": 100,`) {
		t.Errorf("diff does not show the current time change:\n%s", diff)
	}
}

type fakeT struct {
	errors []string
	fatal  string
}

func (f *fakeT) Helper()      {}
func (f *fakeT) Name() string { return "TestFake" }
func (f *fakeT) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}
func (f *fakeT) Fatalf(format string, args ...any) {
	f.fatal = fmt.Sprintf(format, args...)
}

func TestSnapshot_MatchesFile(t *testing.T) {
	t.Setenv("WEBANIM_UPDATE_SNAPSHOTS", "")
	tester := NewTesterWithT(t)
	fade(t, tester, "fade", 200)
	tester.Pump()
	path := filepath.Join(t.TempDir(), "nested", "fade.snapshot.json")

	snap := tester.CaptureSnapshot()
	if err := snap.UpdateFile(path); err != nil {
		t.Fatal(err)
	}
	ft := &fakeT{}
	snap.MatchesFile(ft, path)
	if ft.fatal != "" || len(ft.errors) != 0 {
		t.Fatalf("unexpected failure: %s %v", ft.fatal, ft.errors)
	}

	tester.Advance(10 * time.Millisecond)
	tester.CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.errors) != 1 || !strings.Contains(ft.errors[0], "snapshot mismatch") {
		t.Errorf("expected a mismatch, got %v", ft.errors)
	}
}

func TestSnapshot_MissingFile(t *testing.T) {
	t.Setenv("WEBANIM_UPDATE_SNAPSHOTS", "")
	tester := NewTesterWithT(t)
	ft := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(ft, filepath.Join(t.TempDir(), "missing.json"))
	if !strings.Contains(ft.fatal, "snapshot file missing") {
		t.Errorf("fatal = %q, want missing-file message", ft.fatal)
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	t.Setenv("WEBANIM_UPDATE_SNAPSHOTS", "1")
	tester := NewTesterWithT(t)
	path := filepath.Join(t.TempDir(), "update.json")

	tester.CaptureSnapshot().MatchesFile(t, path)

	if _, err := os.Stat(path); err != nil {
		t.Errorf("update mode should write the file: %v", err)
	}
}
