// Package input is the shared pointer surface the wheel listens on.
//
// A Dispatcher plays the role a document plays for DOM listeners: handlers are
// registered either globally or for a single named target, and every
// registration returns a Handle that removes it again. The Tracker turns
// per-frame mouse and touch samples into discrete events.
package input

// Kind identifies a pointer event type.
type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	PointerEnter
	PointerLeave
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerEnter:
		return "enter"
	case PointerLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// Event is a single pointer event in surface coordinates.
type Event struct {
	Kind   Kind
	X, Y   float64
	Touch  bool   // true for touch input, false for the mouse
	Target string // layer under the pointer, empty if none

	defaultPrevented bool
}

// PreventDefault marks the event as consumed so the host skips its own
// gesture handling (scrolling, selection).
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Handler receives dispatched events.
type Handler func(*Event)

type entry struct {
	id     uint32
	target string
	fn     Handler
}

// Dispatcher routes events to registered handlers in registration order.
// It is not safe for concurrent use; everything runs on the UI goroutine.
type Dispatcher struct {
	handlers map[Kind][]entry
	nextID   uint32
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Kind][]entry)}
}

// Handle removes a registered handler.
type Handle struct {
	id   uint32
	kind Kind
	d    *Dispatcher
}

// Remove unregisters the handler. Calling it more than once is a no-op.
func (h Handle) Remove() {
	if h.d == nil {
		return
	}
	s := h.d.handlers[h.kind]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = entry{}
			h.d.handlers[h.kind] = s[:len(s)-1]
			return
		}
	}
}

// On registers fn for events of kind. An empty target listens globally;
// otherwise fn only sees events whose Target matches.
func (d *Dispatcher) On(kind Kind, target string, fn Handler) Handle {
	d.nextID++
	id := d.nextID
	d.handlers[kind] = append(d.handlers[kind], entry{id: id, target: target, fn: fn})
	return Handle{id: id, kind: kind, d: d}
}

// Dispatch delivers ev to every matching handler.
func (d *Dispatcher) Dispatch(ev *Event) {
	// Copy so handlers may register or remove listeners while dispatching.
	s := append([]entry(nil), d.handlers[ev.Kind]...)
	for _, e := range s {
		if e.target == "" || e.target == ev.Target {
			e.fn(ev)
		}
	}
}

// DispatchAll delivers evs in order and reports whether any handler called
// PreventDefault on one of them.
func (d *Dispatcher) DispatchAll(evs []*Event) (claimed bool) {
	for _, ev := range evs {
		d.Dispatch(ev)
		claimed = claimed || ev.DefaultPrevented()
	}
	return claimed
}

// Len returns the number of registered handlers.
func (d *Dispatcher) Len() int {
	n := 0
	for _, s := range d.handlers {
		n += len(s)
	}
	return n
}
