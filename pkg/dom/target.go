package dom

// Listener handles a dispatched event.
type Listener func(*Event)

type listenerEntry struct {
	id      int
	typ     string
	fn      Listener
	handler bool
}

// EventTarget is the dispatch side of an object that receives events.
//
// Event handler attributes ("onfinish") occupy the position of the first
// time they were set, matching ordinary listeners registered at that point.
type EventTarget struct {
	// Owner is the object this target belongs to, e.g. an *animations.Animation.
	Owner any

	listeners []listenerEntry
	handlers  map[string]Listener
	nextID    int
}

// AddEventListener registers fn for events of type typ.
// Returns an unsubscribe function.
func (t *EventTarget) AddEventListener(typ string, fn Listener) func() {
	id := t.nextID
	t.nextID++
	t.listeners = append(t.listeners, listenerEntry{id: id, typ: typ, fn: fn})
	return func() {
		for i, l := range t.listeners {
			if l.id == id {
				t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetEventHandler sets the handler attribute for typ. Passing nil clears it.
func (t *EventTarget) SetEventHandler(typ string, fn Listener) {
	if t.handlers == nil {
		t.handlers = make(map[string]Listener)
	}
	if fn == nil {
		delete(t.handlers, typ)
		for i, l := range t.listeners {
			if l.handler && l.typ == typ {
				t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
				break
			}
		}
		return
	}
	if _, ok := t.handlers[typ]; !ok {
		t.listeners = append(t.listeners, listenerEntry{id: t.nextID, typ: typ, handler: true})
		t.nextID++
	}
	t.handlers[typ] = fn
}

// EventHandler returns the handler attribute for typ, or nil.
func (t *EventTarget) EventHandler(typ string) Listener {
	return t.handlers[typ]
}

// DispatchEvent invokes every listener registered for ev.Type in order.
func (t *EventTarget) DispatchEvent(ev *Event) {
	ev.Target = t
	snapshot := make([]listenerEntry, 0, len(t.listeners))
	for _, l := range t.listeners {
		if l.typ == ev.Type {
			snapshot = append(snapshot, l)
		}
	}
	for _, l := range snapshot {
		if l.handler {
			if fn := t.handlers[l.typ]; fn != nil {
				fn(ev)
			}
			continue
		}
		l.fn(ev)
	}
}
