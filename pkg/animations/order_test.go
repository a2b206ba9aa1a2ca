package animations

import (
	"runtime"
	"slices"
	"testing"

	"github.com/go-drift/webanim/pkg/dom"
)

func TestCompositeOrderSortsByClass(t *testing.T) {
	realm := newTestRealm()
	first := dom.NewElement("div", 1)
	second := dom.NewElement("div", 2)

	script := New(realm, nil)
	transition := New(realm, nil)
	transition.SetOrigin(CSSTransitionOrigin(first, 1, "opacity"))
	animB := New(realm, nil)
	animB.SetOrigin(CSSAnimationOrigin(second, 0))
	animA1 := New(realm, nil)
	animA1.SetOrigin(CSSAnimationOrigin(first, 1))
	animA0 := New(realm, nil)
	animA0.SetOrigin(CSSAnimationOrigin(first, 0))
	unowned := New(realm, nil)
	unowned.SetOrigin(CSSAnimationOrigin(nil, 0))

	got := []*Animation{script, unowned, transition, animB, animA1, animA0}
	slices.SortStableFunc(got, CompareCompositeOrder)

	want := []*Animation{animA0, animA1, animB, transition, unowned, script}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got class %v, want class %v", i, got[i].Class(), want[i].Class())
		}
	}
	runtime.KeepAlive(first)
	runtime.KeepAlive(second)
}

func TestTransitionOrder(t *testing.T) {
	realm := newTestRealm()
	el := dom.NewElement("div", 1)

	later := New(realm, nil)
	later.SetOrigin(CSSTransitionOrigin(el, 2, "color"))
	width := New(realm, nil)
	width.SetOrigin(CSSTransitionOrigin(el, 1, "width"))
	color := New(realm, nil)
	color.SetOrigin(CSSTransitionOrigin(el, 1, "color"))

	if c, ok := color.ClassSpecificCompositeOrder(width); !ok || c >= 0 {
		t.Errorf("color vs width = %d, %v; want negative, true", c, ok)
	}
	if c := CompareCompositeOrder(later, color); c <= 0 {
		t.Errorf("later generation should composite above, got %d", c)
	}
	runtime.KeepAlive(el)
}

func TestScriptAnimationsUseGlobalOrder(t *testing.T) {
	realm := newTestRealm()
	a := New(realm, nil)
	b := New(realm, nil)
	if CompareCompositeOrder(a, b) >= 0 || CompareCompositeOrder(b, a) <= 0 {
		t.Error("script animations should sort by creation order")
	}
	if CompareCompositeOrder(a, a) != 0 {
		t.Error("an animation compares equal to itself")
	}
	if _, ok := a.ClassSpecificCompositeOrder(b); ok {
		t.Error("script animations have no class-specific order")
	}
}

func TestSetOwningElement(t *testing.T) {
	realm := newTestRealm()
	el := dom.NewElement("div", 1)
	a := New(realm, nil)
	a.SetOrigin(CSSAnimationOrigin(nil, 0))
	if a.Class() != ClassCSSAnimationWithoutOwningElement {
		t.Fatalf("Class() = %v, want %v", a.Class(), ClassCSSAnimationWithoutOwningElement)
	}

	a.SetOwningElement(el)
	if a.OwningElement() != el || a.Class() != ClassCSSAnimationWithOwningElement {
		t.Errorf("Class() = %v after SetOwningElement", a.Class())
	}

	a.SetOwningElement(nil)
	if a.OwningElement() != nil {
		t.Error("OwningElement() should be nil after clearing")
	}
	if !a.Origin().IsCSSAnimation() {
		t.Error("clearing the owner keeps the origin kind")
	}
	runtime.KeepAlive(el)
}

func TestOwningElementIsHeldWeakly(t *testing.T) {
	realm := newTestRealm()
	a := New(realm, nil)
	a.SetOrigin(CSSTransitionOrigin(dom.NewElement("span", 3), 1, "opacity"))

	for range 10 {
		runtime.GC()
		if a.OwningElement() == nil {
			break
		}
	}
	if a.OwningElement() != nil {
		t.Skip("element not collected")
	}
	if a.Class() != ClassNone {
		t.Errorf("Class() = %v after owner release, want %v", a.Class(), ClassNone)
	}
}

func TestCompositeOrderAfterOwnerCleared(t *testing.T) {
	realm := newTestRealm()
	el := dom.NewElement("div", 1)

	owned := New(realm, nil)
	owned.SetOrigin(CSSTransitionOrigin(el, 1, "opacity"))
	cleared := New(realm, nil)
	cleared.SetOrigin(CSSTransitionOrigin(el, 2, "color"))
	cleared.SetOwningElement(nil)

	if c, ok := owned.ClassSpecificCompositeOrder(cleared); ok {
		t.Errorf("ClassSpecificCompositeOrder = %d, true; want false for differing classes", c)
	}
	if _, ok := cleared.ClassSpecificCompositeOrder(cleared); ok {
		t.Error("an ownerless transition has no class-specific order")
	}

	got := []*Animation{cleared, owned}
	slices.SortStableFunc(got, CompareCompositeOrder)
	if got[0] != owned || got[1] != cleared {
		t.Errorf("sorted classes = [%v %v], want [%v %v]", got[0].Class(), got[1].Class(), ClassCSSTransition, ClassNone)
	}
	runtime.KeepAlive(el)
}

func TestOriginClassMatchesOwner(t *testing.T) {
	el := dom.NewElement("div", 1)
	tests := []struct {
		name   string
		origin Origin
		class  Class
		owned  bool
	}{
		{"script", ScriptOrigin(), ClassNone, false},
		{"animation owned", CSSAnimationOrigin(el, 0), ClassCSSAnimationWithOwningElement, true},
		{"animation unowned", CSSAnimationOrigin(nil, 0), ClassCSSAnimationWithoutOwningElement, false},
		{"transition owned", CSSTransitionOrigin(el, 1, "opacity"), ClassCSSTransition, true},
		{"transition unowned", CSSTransitionOrigin(nil, 1, "opacity"), ClassNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, owner := tt.origin.resolve()
			if class != tt.class {
				t.Errorf("class = %v, want %v", class, tt.class)
			}
			if (owner != nil) != tt.owned {
				t.Errorf("owner = %v, want owned %v", owner, tt.owned)
			}
		})
	}
	runtime.KeepAlive(el)
}
