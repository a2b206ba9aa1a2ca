package scenario_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/webanim/pkg/scenario"
)

const reverseScenario = `
version: v1.0.0
name: reverse halfway
animations:
  - id: fade
    target: box
    timing: {duration: 1000, fill: forwards}
    tracks:
      - {property: opacity, from: "0", to: "1"}
      - {property: color, kind: color, from: "#000000", to: "#ffffff"}
steps:
  - {op: expect, animation: fade, expect: {playState: running, pending: true, currentTime: 0, startTime: unresolved}}
  - {op: advance, time: 0}
  - {op: advance, time: 500}
  - op: expect
    animation: fade
    expect:
      pending: false
      currentTime: 500
      startTime: 0
      output: {opacity: "0.5"}
  - {op: reverse, animation: fade}
  - {op: expect, animation: fade, expect: {pending: true, playbackRate: 1, currentTime: 500}}
  - {op: advance, time: 100}
  - {op: expect, animation: fade, expect: {pending: false, playbackRate: -1, currentTime: 600, startTime: 1200}}
  - {op: advance, time: 600}
  - {op: expect, animation: fade, expect: {playState: finished, finished: true, currentTime: 0, events: [finish]}}
`

func TestRunReverseScenario(t *testing.T) {
	s, err := scenario.Parse([]byte(reverseScenario))
	if err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	res, err := s.Run(context.Background(), nil, &out)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Passed() {
		t.Fatalf("failures: %v\n%s", res.Failures, out.String())
	}
	if res.Steps != 10 {
		t.Errorf("Steps = %d, want 10", res.Steps)
	}
	for _, want := range []string{"scenario reverse halfway", "[1200ms] event fade finish", "ok 10 steps"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("transcript missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunExpectedErrors(t *testing.T) {
	s, err := scenario.Parse([]byte(`
version: v1.0.0
animations:
  - id: spin
    timing: {duration: 1000, iterations: .inf}
steps:
  - {op: finish, animation: spin, error: InvalidStateError}
  - {op: seek, animation: spin, time: unresolved, error: TypeError}
  - {op: pause, animation: spin}
  - {op: advance, time: 16}
  - {op: expect, animation: spin, expect: {playState: paused, currentTime: 0}}
`))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Run(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Passed() {
		t.Errorf("failures: %v", res.Failures)
	}
}

func TestRunReportsFailures(t *testing.T) {
	s, err := scenario.Parse([]byte(`
version: v1.0.0
animations:
  - id: spin
    timing: {duration: 1000, iterations: .inf}
steps:
  - {op: finish, animation: spin}
  - {op: pause, animation: spin, error: InvalidStateError}
  - {op: expect, animation: spin, expect: {playState: running, pending: false}}
`))
	if err != nil {
		t.Fatal(err)
	}
	var out strings.Builder
	res, err := s.Run(context.Background(), nil, &out)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Failures) != 3 {
		t.Fatalf("got %d failures, want 3: %v", len(res.Failures), res.Failures)
	}
	want := []string{
		"step 1 (finish): finish spin: unexpected",
		`step 2 (pause): pause spin: error = "", want "InvalidStateError"`,
		"step 3 (expect): spin: playState = paused, want running; pending = true, want false",
	}
	for i, w := range want {
		if got := res.Failures[i].String(); !strings.HasPrefix(got, w) {
			t.Errorf("failure %d = %q, want prefix %q", i, got, w)
		}
	}
	if !strings.Contains(out.String(), "FAIL 3 of 3 steps") {
		t.Errorf("transcript missing summary:\n%s", out.String())
	}
}

func TestRunRemovesReplacedAnimations(t *testing.T) {
	s, err := scenario.Parse([]byte(`
version: v1.0.0
animations:
  - id: first
    target: box
    timing: {duration: 100, fill: forwards}
    tracks: [{property: opacity, from: "0", to: "1"}]
  - id: second
    target: box
    timing: {duration: 100, fill: forwards}
    tracks: [{property: opacity, from: "1", to: "0"}]
  - id: kept
    target: box
    autoplay: false
    timing: {duration: 100}
    tracks: [{property: opacity, from: "0", to: "1"}]
steps:
  - {op: advance, time: 0}
  - {op: advance, time: 100}
  - {op: expect, animation: first, expect: {replaceState: removed, events: [finish, remove]}}
  - {op: expect, animation: second, expect: {replaceState: active, events: [finish], output: {opacity: "0"}}}
  - {op: expect, animation: kept, expect: {playState: idle, currentTime: unresolved, events: []}}
`))
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Run(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Passed() {
		t.Errorf("failures: %v", res.Failures)
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	s, err := scenario.Parse([]byte(reverseScenario))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.Run(ctx, nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if res.Steps != 0 {
		t.Errorf("Steps = %d, want 0", res.Steps)
	}
}

func TestRunRejectsBadAnimation(t *testing.T) {
	s, err := scenario.Parse([]byte(`
version: v1.0.0
animations:
  - id: bad
    timing: {duration: 100}
    tracks: [{property: color, kind: color, from: "red", to: "#fff"}]
`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(context.Background(), nil, nil); err == nil || !strings.Contains(err.Error(), `animation "bad"`) {
		t.Errorf("err = %v, want a setup error for bad", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing version", "animations: []", "missing version"},
		{"invalid version", "version: one", "invalid version"},
		{"newer minor", "version: v1.1.0", "unsupported version v1.1.0"},
		{"newer major", "version: v2.0.0", "unsupported version"},
		{"unknown field", "version: v1.0.0\nloop: true", "field loop not found"},
		{"duplicate id", "version: v1.0.0\nanimations: [{id: a}, {id: a}]", "duplicate id"},
		{"unknown origin", "version: v1.0.0\nanimations: [{id: a, origin: svg}]", "unknown origin"},
		{"css without target", "version: v1.0.0\nanimations: [{id: a, origin: css-animation}]", "needs a target"},
		{"unknown op", "version: v1.0.0\nsteps: [{op: jump}]", "unknown op"},
		{"unknown animation", "version: v1.0.0\nsteps: [{op: play, animation: x}]", `unknown animation "x"`},
		{"advance without time", "version: v1.0.0\nsteps: [{op: advance}]", "non-negative time"},
		{"advance backwards", "version: v1.0.0\nsteps: [{op: advance, time: -5}]", "non-negative time"},
		{"rate missing", "version: v1.0.0\nanimations: [{id: a}]\nsteps: [{op: updatePlaybackRate, animation: a}]", "needs a rate"},
		{"expect missing", "version: v1.0.0\nanimations: [{id: a}]\nsteps: [{op: expect, animation: a}]", "needs an expect block"},
		{"bad time", "version: v1.0.0\nanimations: [{id: a}]\nsteps: [{op: seek, animation: a, time: soon}]", "time must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestParseAcceptsVersionWithoutPrefix(t *testing.T) {
	if _, err := scenario.Parse([]byte("version: 1.0.0")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fade.yaml")
	if err := os.WriteFile(path, []byte(reverseScenario), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := scenario.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "reverse halfway" || len(s.Steps) != 10 {
		t.Errorf("loaded %q with %d steps", s.Name, len(s.Steps))
	}

	if _, err := scenario.Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}
