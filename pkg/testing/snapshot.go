package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/webanim/pkg/animations"
	"github.com/go-drift/webanim/pkg/timing"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the observable state of every animation in a document.
type Snapshot struct {
	TimelineTime *float64        `json:"timelineTime"`
	Animations   []*AnimationNode `json:"animations"`
}

// AnimationNode is the serialized state of one animation. Unresolved times
// are null.
type AnimationNode struct {
	ID           string            `json:"id"`
	PlayState    string            `json:"playState"`
	Pending      bool              `json:"pending,omitempty"`
	ReplaceState string            `json:"replaceState"`
	StartTime    *float64          `json:"startTime"`
	CurrentTime  *float64          `json:"currentTime"`
	PlaybackRate float64           `json:"playbackRate"`
	Output       map[string]string `json:"output,omitempty"`
}

// sampler is implemented by effects that can report their computed output.
type sampler interface {
	Sample() map[string]string
}

// CaptureSnapshot captures the current state of the document's animations
// in creation order. Animations without an id get "#<index>".
func (t *Tester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{TimelineTime: timeValue(t.doc.Timeline().CurrentTime())}
	for i, a := range t.doc.Animations() {
		snap.Animations = append(snap.Animations, captureAnimation(a, i))
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// WEBANIM_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("WEBANIM_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: WEBANIM_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: WEBANIM_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns the
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

func captureAnimation(a *animations.Animation, index int) *AnimationNode {
	id := a.ID()
	if id == "" {
		id = fmt.Sprintf("#%d", index)
	}
	node := &AnimationNode{
		ID:           id,
		PlayState:    a.PlayState().String(),
		Pending:      a.Pending(),
		ReplaceState: a.ReplaceState().String(),
		StartTime:    timeValue(a.StartTime()),
		CurrentTime:  timeValue(a.CurrentTime()),
		PlaybackRate: a.PlaybackRate(),
	}
	if s, ok := a.Effect().(sampler); ok {
		node.Output = s.Sample()
	}
	return node
}

func timeValue(t timing.Time) *float64 {
	v, ok := t.Get()
	if !ok {
		return nil
	}
	v = round2(v)
	return &v
}

func round2(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := range max(len(expectedLines), len(actualLines)) {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
