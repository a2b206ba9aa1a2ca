package animations

import (
	"cmp"
	"strings"
	"weak"

	"github.com/go-drift/webanim/pkg/dom"
)

// Class is the composite-order class of an animation. Classes sort in
// declaration order.
type Class int

const (
	ClassCSSAnimationWithOwningElement Class = iota
	ClassCSSTransition
	ClassCSSAnimationWithoutOwningElement
	ClassNone
)

func (c Class) String() string {
	switch c {
	case ClassCSSAnimationWithOwningElement:
		return "css-animation"
	case ClassCSSTransition:
		return "css-transition"
	case ClassCSSAnimationWithoutOwningElement:
		return "css-animation-without-owner"
	default:
		return "none"
	}
}

type originKind int

const (
	originScript originKind = iota
	originCSSAnimation
	originCSSTransition
)

// Origin records how an animation was created. The zero value is a script
// animation.
//
// The owning element is held weakly: the element owns its generated
// animations, not the other way round.
type Origin struct {
	kind  originKind
	owner weak.Pointer[dom.Element]

	// nameIndex is the position in the owner's animation-name list.
	nameIndex int
	// generation and property order transitions on the same element.
	generation uint64
	property   string
}

// ScriptOrigin returns the origin of an animation created by script.
func ScriptOrigin() Origin { return Origin{} }

// CSSAnimationOrigin returns the origin of a CSS animation at position
// nameIndex of owner's animation-name list. owner may be nil.
func CSSAnimationOrigin(owner *dom.Element, nameIndex int) Origin {
	o := Origin{kind: originCSSAnimation, nameIndex: nameIndex}
	if owner != nil {
		o.owner = weak.Make(owner)
	}
	return o
}

// CSSTransitionOrigin returns the origin of a CSS transition of property
// started in transition generation on owner. owner may be nil.
func CSSTransitionOrigin(owner *dom.Element, generation uint64, property string) Origin {
	o := Origin{kind: originCSSTransition, generation: generation, property: property}
	if owner != nil {
		o.owner = weak.Make(owner)
	}
	return o
}

// Owner returns the owning element, or nil once it was released.
func (o Origin) Owner() *dom.Element { return o.owner.Value() }

// IsCSSAnimation reports whether the origin is a CSS animation.
func (o Origin) IsCSSAnimation() bool { return o.kind == originCSSAnimation }

// IsCSSTransition reports whether the origin is a CSS transition.
func (o Origin) IsCSSTransition() bool { return o.kind == originCSSTransition }

// Class returns the composite-order class for o.
func (o Origin) Class() Class {
	class, _ := o.resolve()
	return class
}

// resolve loads the owner once and derives the class from that pointer.
func (o Origin) resolve() (Class, *dom.Element) {
	owner := o.Owner()
	switch o.kind {
	case originCSSAnimation:
		if owner != nil {
			return ClassCSSAnimationWithOwningElement, owner
		}
		return ClassCSSAnimationWithoutOwningElement, nil
	case originCSSTransition:
		if owner != nil {
			return ClassCSSTransition, owner
		}
	}
	return ClassNone, nil
}

// Origin returns how the animation was created.
func (a *Animation) Origin() Origin { return a.origin }

// SetOrigin records how the animation was created.
func (a *Animation) SetOrigin(o Origin) { a.origin = o }

// OwningElement returns the element that generated the animation, or nil.
func (a *Animation) OwningElement() *dom.Element { return a.origin.Owner() }

// SetOwningElement replaces the owning element, keeping the rest of the
// origin. Passing nil severs the relation.
func (a *Animation) SetOwningElement(el *dom.Element) {
	if el == nil {
		a.origin.owner = weak.Pointer[dom.Element]{}
		return
	}
	a.origin.owner = weak.Make(el)
}

// Class returns the animation's composite-order class.
func (a *Animation) Class() Class { return a.origin.Class() }

// ClassSpecificCompositeOrder orders a against other within their shared
// class. It reports false when the class has no specific order or the two
// classes differ.
func (a *Animation) ClassSpecificCompositeOrder(other *Animation) (int, bool) {
	class, ao := a.origin.resolve()
	otherClass, bo := other.origin.resolve()
	if class != otherClass {
		return 0, false
	}
	switch class {
	case ClassCSSAnimationWithOwningElement:
		if ao != bo {
			return dom.CompareTreeOrder(ao, bo), true
		}
		return cmp.Compare(a.origin.nameIndex, other.origin.nameIndex), true
	case ClassCSSTransition:
		if ao != bo {
			return dom.CompareTreeOrder(ao, bo), true
		}
		if c := cmp.Compare(a.origin.generation, other.origin.generation); c != 0 {
			return c, true
		}
		return strings.Compare(a.origin.property, other.origin.property), true
	}
	return 0, false
}

// CompareCompositeOrder returns a negative number when a composites below b,
// a positive number when above, and 0 only when a and b are the same
// animation.
func CompareCompositeOrder(a, b *Animation) int {
	if c := cmp.Compare(a.Class(), b.Class()); c != 0 {
		return c
	}
	if c, ok := a.ClassSpecificCompositeOrder(b); ok && c != 0 {
		return c
	}
	return cmp.Compare(a.globalOrder, b.globalOrder)
}
