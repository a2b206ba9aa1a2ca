// Package scenario loads YAML scenario files and replays them against a
// document. A scenario declares animations and a list of steps; each step
// is a command, a clock advance or an expectation about an animation's
// state.
//
//	version: v1.0.0
//	name: reverse halfway
//	animations:
//	  - id: fade
//	    target: box
//	    timing: {duration: 1000, fill: forwards}
//	    tracks:
//	      - {property: opacity, from: "0", to: "1"}
//	steps:
//	  - {op: advance, time: 0}
//	  - {op: advance, time: 500}
//	  - {op: reverse, animation: fade}
//	  - {op: expect, animation: fade, expect: {playState: running, pending: true}}
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/webanim/pkg/timing"
)

// SupportedVersion is the newest scenario format this package reads.
// Files with the same major version and an older or equal version are
// accepted.
const SupportedVersion = "v1.0.0"

// Scenario is a parsed scenario file.
type Scenario struct {
	Version        string          `yaml:"version"`
	Name           string          `yaml:"name,omitempty"`
	TimelineOrigin float64         `yaml:"timelineOrigin,omitempty"`
	Animations     []AnimationSpec `yaml:"animations"`
	Steps          []Step          `yaml:"steps"`
}

// AnimationSpec declares one animation.
type AnimationSpec struct {
	ID string `yaml:"id"`
	// Target names an element; animations naming the same target share it.
	Target string      `yaml:"target,omitempty"`
	Timing TimingSpec  `yaml:"timing"`
	Tracks []TrackSpec `yaml:"tracks,omitempty"`
	// Origin is "script" (default), "css-animation" or "css-transition".
	Origin   string `yaml:"origin,omitempty"`
	Autoplay *bool  `yaml:"autoplay,omitempty"`
}

// TimingSpec mirrors effect.Timing. Iterations defaults to 1; use .inf for
// an infinite count.
type TimingSpec struct {
	Delay          float64  `yaml:"delay,omitempty"`
	EndDelay       float64  `yaml:"endDelay,omitempty"`
	Duration       float64  `yaml:"duration,omitempty"`
	Iterations     *float64 `yaml:"iterations,omitempty"`
	IterationStart float64  `yaml:"iterationStart,omitempty"`
	Direction      string   `yaml:"direction,omitempty"`
	Fill           string   `yaml:"fill,omitempty"`
	Easing         string   `yaml:"easing,omitempty"`
}

// TrackSpec declares one animated property. Kind is "number" (default) or
// "color".
type TrackSpec struct {
	Property string `yaml:"property"`
	Kind     string `yaml:"kind,omitempty"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Unit     string `yaml:"unit,omitempty"`
}

// Step is one entry of the step list.
type Step struct {
	Op        string   `yaml:"op"`
	Animation string   `yaml:"animation,omitempty"`
	Rate      *float64 `yaml:"rate,omitempty"`
	// Time is the seek target for seek and the clock step for advance.
	// Seeks accept "unresolved".
	Time *TimeValue `yaml:"time,omitempty"`
	// Error is the expected error name of a command, e.g.
	// "InvalidStateError". Empty means the command must succeed.
	Error  string       `yaml:"error,omitempty"`
	Expect *Expectation `yaml:"expect,omitempty"`
}

// Expectation lists the state an expect step checks. Unset fields are not
// checked.
type Expectation struct {
	PlayState    string     `yaml:"playState,omitempty"`
	Pending      *bool      `yaml:"pending,omitempty"`
	CurrentTime  *TimeValue `yaml:"currentTime,omitempty"`
	StartTime    *TimeValue `yaml:"startTime,omitempty"`
	PlaybackRate *float64   `yaml:"playbackRate,omitempty"`
	ReplaceState string     `yaml:"replaceState,omitempty"`
	Finished     *bool      `yaml:"finished,omitempty"`
	// Events lists every event type dispatched to the animation so far,
	// in order.
	Events []string `yaml:"events,omitempty"`
	// Output maps property names to their sampled values.
	Output map[string]string `yaml:"output,omitempty"`
}

// TimeValue is a time in a scenario file: a number of milliseconds or the
// string "unresolved".
type TimeValue struct {
	timing.Time
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *TimeValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Value == "unresolved" {
		v.Time = timing.Unresolved
		return nil
	}
	var ms float64
	if err := node.Decode(&ms); err != nil {
		return fmt.Errorf("line %d: time must be a number or \"unresolved\"", node.Line)
	}
	v.Time = timing.Resolved(ms)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v TimeValue) MarshalYAML() (any, error) {
	if ms, ok := v.Get(); ok {
		return ms, nil
	}
	return "unresolved", nil
}

var ops = map[string]bool{
	"play": true, "pause": true, "reverse": true, "finish": true,
	"cancel": true, "persist": true, "updatePlaybackRate": true,
	"setPlaybackRate": true, "seek": true, "advance": true, "expect": true,
}

// Load reads and parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario. Unknown fields are errors.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the version and the references between steps and
// animations.
func (s *Scenario) Validate() error {
	if err := checkVersion(s.Version); err != nil {
		return err
	}

	ids := make(map[string]bool, len(s.Animations))
	var errs []error
	for i, a := range s.Animations {
		switch {
		case a.ID == "":
			errs = append(errs, fmt.Errorf("animation %d: missing id", i))
		case ids[a.ID]:
			errs = append(errs, fmt.Errorf("animation %q: duplicate id", a.ID))
		}
		ids[a.ID] = true
		switch a.Origin {
		case "", "script", "css-animation", "css-transition":
		default:
			errs = append(errs, fmt.Errorf("animation %q: unknown origin %q", a.ID, a.Origin))
		}
		if a.Origin != "" && a.Origin != "script" && a.Target == "" {
			errs = append(errs, fmt.Errorf("animation %q: %s needs a target", a.ID, a.Origin))
		}
	}

	for i, st := range s.Steps {
		where := fmt.Sprintf("step %d (%s)", i+1, st.Op)
		if !ops[st.Op] {
			errs = append(errs, fmt.Errorf("step %d: unknown op %q", i+1, st.Op))
			continue
		}
		if st.Op == "advance" {
			if ms, ok := timeOf(st.Time); !ok || ms < 0 || math.IsInf(ms, 0) {
				errs = append(errs, fmt.Errorf("%s: needs a non-negative time", where))
			}
			continue
		}
		if !ids[st.Animation] {
			errs = append(errs, fmt.Errorf("%s: unknown animation %q", where, st.Animation))
		}
		switch st.Op {
		case "updatePlaybackRate", "setPlaybackRate":
			if st.Rate == nil {
				errs = append(errs, fmt.Errorf("%s: needs a rate", where))
			}
		case "seek":
			if st.Time == nil {
				errs = append(errs, fmt.Errorf("%s: needs a time", where))
			}
		case "expect":
			if st.Expect == nil {
				errs = append(errs, fmt.Errorf("%s: needs an expect block", where))
			}
		}
	}
	return errors.Join(errs...)
}

func timeOf(v *TimeValue) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return v.Get()
}

func checkVersion(v string) error {
	if v == "" {
		return fmt.Errorf("missing version (supported: %s)", SupportedVersion)
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid version %q", v)
	}
	if semver.Major(v) != semver.Major(SupportedVersion) || semver.Compare(v, SupportedVersion) > 0 {
		return fmt.Errorf("unsupported version %s (supported: %s)", v, SupportedVersion)
	}
	return nil
}
