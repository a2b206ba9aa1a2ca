package testing

import (
	"fmt"

	"github.com/go-drift/webanim/pkg/animations"
	"github.com/go-drift/webanim/pkg/dom"
)

// Finder locates animations in a document.
type Finder interface {
	// Evaluate returns the matching animations, preserving input order.
	Evaluate(all []*animations.Animation) []*animations.Animation
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	animations []*animations.Animation
	finder     Finder
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *animations.Animation {
	if len(r.animations) == 0 {
		panic(fmt.Sprintf("Finder found no animations: %s", r.description()))
	}
	return r.animations[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *animations.Animation {
	if len(r.animations) == 0 {
		return nil
	}
	return r.animations[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *animations.Animation {
	if index < 0 || index >= len(r.animations) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.animations), r.description()))
	}
	return r.animations[index]
}

// All returns all matches in document order.
func (r FinderResult) All() []*animations.Animation {
	return r.animations
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.animations)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.animations) > 0
}

// predicateFinder matches animations satisfying a predicate.
type predicateFinder struct {
	fn   func(*animations.Animation) bool
	desc string
}

func (f *predicateFinder) Evaluate(all []*animations.Animation) []*animations.Animation {
	var out []*animations.Animation
	for _, a := range all {
		if f.fn(a) {
			out = append(out, a)
		}
	}
	return out
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches animations for which fn returns
// true.
func ByPredicate(fn func(*animations.Animation) bool, desc string) Finder {
	return &predicateFinder{fn: fn, desc: desc}
}

// ByID returns a finder that matches animations with the given id.
func ByID(id string) Finder {
	return ByPredicate(func(a *animations.Animation) bool {
		return a.ID() == id
	}, fmt.Sprintf("ByID(%q)", id))
}

// ByPlayState returns a finder that matches animations in state s.
func ByPlayState(s animations.PlayState) Finder {
	return ByPredicate(func(a *animations.Animation) bool {
		return a.PlayState() == s
	}, fmt.Sprintf("ByPlayState(%s)", s))
}

// ByReplaceState returns a finder that matches animations in replace
// state s.
func ByReplaceState(s animations.ReplaceState) Finder {
	return ByPredicate(func(a *animations.Animation) bool {
		return a.ReplaceState() == s
	}, fmt.Sprintf("ByReplaceState(%s)", s))
}

// ByTarget returns a finder that matches animations whose effect targets el.
func ByTarget(el *dom.Element) Finder {
	return ByPredicate(func(a *animations.Animation) bool {
		t, ok := a.Effect().(animations.Targeted)
		return ok && t.Target() == el
	}, fmt.Sprintf("ByTarget(<%s>#%d)", el.Tag(), el.ID()))
}

// Pending returns a finder that matches animations with an uncommitted play
// or pause.
func Pending() Finder {
	return ByPredicate((*animations.Animation).Pending, "Pending()")
}
