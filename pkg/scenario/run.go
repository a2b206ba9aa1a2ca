package scenario

import (
	"context"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/go-drift/webanim/pkg/animations"
	"github.com/go-drift/webanim/pkg/document"
	"github.com/go-drift/webanim/pkg/dom"
	"github.com/go-drift/webanim/pkg/effect"
	"github.com/go-drift/webanim/pkg/errors"
	"github.com/go-drift/webanim/pkg/timing"
)

// Result summarizes a run.
type Result struct {
	// Steps is the number of steps executed.
	Steps    int
	Failures []Failure
}

// Passed reports whether every step met its expectations.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// Failure is an unmet expectation.
type Failure struct {
	Step    int
	Op      string
	Message string
}

func (f Failure) String() string {
	return fmt.Sprintf("step %d (%s): %s", f.Step, f.Op, f.Message)
}

// sampler is implemented by effects that report computed output.
type sampler interface {
	Sample() map[string]string
}

// Option configures Run.
type Option func(*runner)

// WithFrameHook calls fn after every frame with the clock and the
// document's animations.
func WithFrameHook(fn func(now float64, anims []*animations.Animation)) Option {
	return func(r *runner) { r.frameHooks = append(r.frameHooks, fn) }
}

type runner struct {
	doc *document.Document
	w   io.Writer
	now float64

	frameHooks []func(float64, []*animations.Animation)

	elements    map[string]*dom.Element
	anims       map[string]*animations.Animation
	events      map[string][]string
	transitions uint64

	result *Result
}

// Run replays the scenario against doc and writes a transcript to w. When
// doc is nil a new document with the scenario's timeline origin is used.
//
// The clock starts at zero and moves only on advance steps; each advance
// runs one animation frame. Unmet expectations are collected in the
// result. The returned error reports setup problems and cancellation.
func (s *Scenario) Run(ctx context.Context, doc *document.Document, w io.Writer, opts ...Option) (*Result, error) {
	if err := s.Validate(); err != nil {
		return &Result{}, err
	}
	if doc == nil {
		doc = document.New(document.WithTimelineOrigin(s.TimelineOrigin))
	}
	if w == nil {
		w = io.Discard
	}
	r := &runner{
		doc:      doc,
		w:        w,
		elements: make(map[string]*dom.Element),
		anims:    make(map[string]*animations.Animation),
		events:   make(map[string][]string),
		result:   &Result{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if s.Name != "" {
		fmt.Fprintf(w, "scenario %s\n", s.Name)
	}
	for i := range s.Animations {
		if err := r.create(&s.Animations[i]); err != nil {
			return r.result, err
		}
	}
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return r.result, err
		}
		r.result.Steps++
		r.step(i+1, st)
	}
	if r.result.Passed() {
		fmt.Fprintf(w, "ok %d steps\n", r.result.Steps)
	} else {
		fmt.Fprintf(w, "FAIL %d of %d steps\n", len(r.result.Failures), r.result.Steps)
	}
	return r.result, nil
}

func (r *runner) element(name string) *dom.Element {
	if name == "" {
		return nil
	}
	el, ok := r.elements[name]
	if !ok {
		el = r.doc.CreateElement(name)
		r.elements[name] = el
	}
	return el
}

func (r *runner) create(spec *AnimationSpec) error {
	t, err := spec.Timing.build()
	if err != nil {
		return fmt.Errorf("animation %q: %w", spec.ID, err)
	}
	tracks := make([]effect.Track, 0, len(spec.Tracks))
	for _, ts := range spec.Tracks {
		tr, err := ts.build()
		if err != nil {
			return fmt.Errorf("animation %q: %w", spec.ID, err)
		}
		tracks = append(tracks, tr)
	}
	target := r.element(spec.Target)
	eff, err := effect.New(target, t, tracks...)
	if err != nil {
		return fmt.Errorf("animation %q: %w", spec.ID, err)
	}

	a := r.doc.NewAnimation(eff)
	a.SetID(spec.ID)
	switch spec.Origin {
	case "css-animation":
		index := 0
		for _, other := range r.anims {
			if other.Origin().IsCSSAnimation() && other.OwningElement() == target {
				index++
			}
		}
		a.SetOrigin(animations.CSSAnimationOrigin(target, index))
	case "css-transition":
		r.transitions++
		property := ""
		if len(spec.Tracks) > 0 {
			property = spec.Tracks[0].Property
		}
		a.SetOrigin(animations.CSSTransitionOrigin(target, r.transitions, property))
	}
	for _, typ := range []string{dom.EventFinish, dom.EventCancel, dom.EventRemove} {
		a.AddEventListener(typ, func(ev *dom.Event) {
			r.events[spec.ID] = append(r.events[spec.ID], ev.Type)
			fmt.Fprintf(r.w, "[%s] event %s %s\n", r.clock(), spec.ID, ev.Type)
		})
	}
	r.anims[spec.ID] = a

	if spec.Autoplay == nil || *spec.Autoplay {
		if err := a.Play(); err != nil {
			return fmt.Errorf("animation %q: %w", spec.ID, err)
		}
	}
	return nil
}

func (t TimingSpec) build() (effect.Timing, error) {
	out := effect.DefaultTiming()
	out.Delay = t.Delay
	out.EndDelay = t.EndDelay
	out.Duration = t.Duration
	out.IterationStart = t.IterationStart
	out.Easing = t.Easing
	if t.Iterations != nil {
		out.Iterations = *t.Iterations
	}
	if t.Direction != "" {
		d, err := effect.ParseDirection(t.Direction)
		if err != nil {
			return out, err
		}
		out.Direction = d
	}
	if t.Fill != "" {
		f, err := effect.ParseFillMode(t.Fill)
		if err != nil {
			return out, err
		}
		out.Fill = f
	}
	return out, out.Validate()
}

func (t TrackSpec) build() (effect.Track, error) {
	switch t.Kind {
	case "color":
		return effect.ColorTrack(t.Property, t.From, t.To)
	case "", "number":
		from, err := strconv.ParseFloat(t.From, 64)
		if err != nil {
			return nil, fmt.Errorf("track %q: from: %w", t.Property, err)
		}
		to, err := strconv.ParseFloat(t.To, 64)
		if err != nil {
			return nil, fmt.Errorf("track %q: to: %w", t.Property, err)
		}
		return effect.NumberTrack(t.Property, from, to, t.Unit), nil
	default:
		return nil, fmt.Errorf("track %q: unknown kind %q", t.Property, t.Kind)
	}
}

func (r *runner) clock() string {
	return timing.Resolved(r.now).String()
}

func (r *runner) fail(step int, op, format string, args ...any) {
	f := Failure{Step: step, Op: op, Message: fmt.Sprintf(format, args...)}
	r.result.Failures = append(r.result.Failures, f)
	fmt.Fprintf(r.w, "[%s] FAIL %s\n", r.clock(), f)
}

func (r *runner) step(n int, st Step) {
	if st.Op == "advance" {
		r.now += st.Time.Value()
		r.doc.UpdateAnimationsAndSendEvents(r.now)
		r.doc.EventLoop().Drain(8)
		fmt.Fprintf(r.w, "[%s] frame\n", r.clock())
		if len(r.frameHooks) > 0 {
			anims := r.doc.Animations()
			for _, fn := range r.frameHooks {
				fn(r.now, anims)
			}
		}
		return
	}

	a := r.anims[st.Animation]
	if st.Op == "expect" {
		r.expect(n, st, a)
		return
	}

	var err error
	switch st.Op {
	case "play":
		err = a.Play()
	case "pause":
		err = a.Pause()
	case "reverse":
		err = a.Reverse()
	case "finish":
		err = a.Finish()
	case "cancel":
		a.Cancel(animations.InvalidateYes)
	case "persist":
		a.Persist()
	case "updatePlaybackRate":
		err = a.UpdatePlaybackRate(*st.Rate)
	case "setPlaybackRate":
		err = a.SetPlaybackRate(*st.Rate)
	case "seek":
		err = a.SetCurrentTime(st.Time.Time)
	}

	got := ""
	if err != nil {
		got = errors.KindOf(err).String()
	}
	switch {
	case got != st.Error && st.Error == "":
		r.fail(n, st.Op, "%s %s: unexpected %v", st.Op, st.Animation, err)
	case got != st.Error:
		r.fail(n, st.Op, "%s %s: error = %q, want %q", st.Op, st.Animation, got, st.Error)
	default:
		fmt.Fprintf(r.w, "[%s] %s %s -> %s\n", r.clock(), st.Op, st.Animation, describe(a))
	}
}

func describe(a *animations.Animation) string {
	var b strings.Builder
	b.WriteString(a.PlayState().String())
	if a.Pending() {
		b.WriteString(" (pending)")
	}
	fmt.Fprintf(&b, " current=%s rate=%s", a.CurrentTime(), strconv.FormatFloat(a.PlaybackRate(), 'f', -1, 64))
	return b.String()
}

func (r *runner) expect(n int, st Step, a *animations.Animation) {
	e := st.Expect
	var problems []string
	check := func(field, got, want string) {
		if got != want {
			problems = append(problems, fmt.Sprintf("%s = %s, want %s", field, got, want))
		}
	}

	if e.PlayState != "" {
		check("playState", a.PlayState().String(), e.PlayState)
	}
	if e.Pending != nil {
		check("pending", strconv.FormatBool(a.Pending()), strconv.FormatBool(*e.Pending))
	}
	if e.CurrentTime != nil {
		checkTime(check, "currentTime", a.CurrentTime(), e.CurrentTime.Time)
	}
	if e.StartTime != nil {
		checkTime(check, "startTime", a.StartTime(), e.StartTime.Time)
	}
	if e.PlaybackRate != nil {
		check("playbackRate", strconv.FormatFloat(a.PlaybackRate(), 'f', -1, 64), strconv.FormatFloat(*e.PlaybackRate, 'f', -1, 64))
	}
	if e.ReplaceState != "" {
		check("replaceState", a.ReplaceState().String(), e.ReplaceState)
	}
	if e.Finished != nil {
		check("finished", strconv.FormatBool(a.IsFinished()), strconv.FormatBool(*e.Finished))
	}
	if e.Events != nil {
		check("events", "["+strings.Join(r.events[st.Animation], " ")+"]", "["+strings.Join(e.Events, " ")+"]")
	}
	if e.Output != nil {
		var out map[string]string
		if s, ok := a.Effect().(sampler); ok {
			out = s.Sample()
		}
		for _, prop := range slices.Sorted(maps.Keys(e.Output)) {
			got, ok := out[prop]
			if !ok {
				got = "<none>"
			}
			check("output."+prop, got, e.Output[prop])
		}
	}

	if len(problems) > 0 {
		r.fail(n, st.Op, "%s: %s", st.Animation, strings.Join(problems, "; "))
		return
	}
	fmt.Fprintf(r.w, "[%s] expect %s ok\n", r.clock(), st.Animation)
}

// checkTime compares times rounded to hundredths of a millisecond.
func checkTime(check func(field, got, want string), field string, got, want timing.Time) {
	check(field, round(got).String(), round(want).String())
}

func round(t timing.Time) timing.Time {
	v, ok := t.Get()
	if !ok || math.IsInf(v, 0) {
		return t
	}
	return timing.Resolved(math.Round(v*100) / 100)
}
