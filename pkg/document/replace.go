package document

import (
	"slices"

	"github.com/go-drift/webanim/pkg/animations"
	"github.com/go-drift/webanim/pkg/dom"
)

type targetProperty struct {
	target   *dom.Element
	property string
}

// removeReplacedAnimations marks removed every active replaceable animation
// whose target properties are all animated by a replaceable animation later
// in composite order.
func (d *Document) removeReplacedAnimations() {
	var replaceable []*animations.Animation
	for _, a := range d.animations {
		if a.ReplaceState() == animations.Active && a.IsReplaceable() {
			replaceable = append(replaceable, a)
		}
	}
	if len(replaceable) < 2 {
		return
	}
	slices.SortStableFunc(replaceable, animations.CompareCompositeOrder)

	covered := make(map[targetProperty]bool)
	for i := len(replaceable) - 1; i >= 0; i-- {
		a := replaceable[i]
		t, ok := a.Effect().(animations.Targeted)
		if !ok {
			continue
		}
		props := t.Properties()
		replaced := len(props) > 0
		for _, p := range props {
			if !covered[targetProperty{t.Target(), p}] {
				replaced = false
			}
		}
		for _, p := range props {
			covered[targetProperty{t.Target(), p}] = true
		}
		if replaced {
			a.SetReplaceState(animations.Removed)
		}
	}
}
