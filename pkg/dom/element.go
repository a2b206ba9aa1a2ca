package dom

import "sync/atomic"

var nextElementID atomic.Uint64

// Element is an animation target. Style resolution is outside this module;
// an element only records that its animated style needs recomputing.
type Element struct {
	EventTarget

	id                 uint64
	tag                string
	treeOrder          int
	styleInvalidations int
}

// NewElement creates an element positioned at treeOrder in its document.
func NewElement(tag string, treeOrder int) *Element {
	e := &Element{
		id:        nextElementID.Add(1),
		tag:       tag,
		treeOrder: treeOrder,
	}
	e.Owner = e
	return e
}

// ID returns the element's process-unique identifier.
func (e *Element) ID() uint64 { return e.id }

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// TreeOrder returns the element's position in tree order.
func (e *Element) TreeOrder() int { return e.treeOrder }

// InvalidateStyle marks the element's animated style as stale.
func (e *Element) InvalidateStyle() { e.styleInvalidations++ }

// StyleInvalidations returns how many times the style was invalidated.
func (e *Element) StyleInvalidations() int { return e.styleInvalidations }

// CompareTreeOrder returns -1, 0 or 1 as a precedes, equals or follows b.
// A nil element precedes every element.
func CompareTreeOrder(a, b *Element) int {
	switch {
	case a == nil || b == nil:
		switch {
		case a == b:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	case a.treeOrder < b.treeOrder:
		return -1
	case a.treeOrder > b.treeOrder:
		return 1
	default:
		return 0
	}
}
