package input

// Sample is the pointer state observed in one frame.
type Sample struct {
	X, Y    float64
	Pressed bool
	Touch   bool
}

// HitTester reports the name of the target under a surface point, or "".
type HitTester func(x, y float64) string

// Tracker is the single-pointer state machine that converts frame samples into
// events. Only one pointer is tracked; a touch takes precedence over the mouse.
type Tracker struct {
	down    bool
	touch   bool
	havePos bool
	lastX   float64
	lastY   float64
	hover   string
}

// Step consumes one sample and returns the events it produces, in order.
func (t *Tracker) Step(s Sample, hit HitTester) []*Event {
	var out []*Event

	// The pointer source changed mid-press (touch lifted, mouse took over):
	// end the press where it was last seen instead of jumping.
	if t.down && s.Touch != t.touch {
		out = append(out, &Event{Kind: PointerUp, X: t.lastX, Y: t.lastY, Touch: t.touch})
		t.down = false
		t.havePos = false
	}

	target := ""
	if hit != nil {
		target = hit(s.X, s.Y)
	}

	hover := target
	if s.Touch {
		hover = ""
	}
	if hover != t.hover {
		if t.hover != "" {
			out = append(out, &Event{Kind: PointerLeave, X: s.X, Y: s.Y, Touch: s.Touch, Target: t.hover})
		}
		if hover != "" {
			out = append(out, &Event{Kind: PointerEnter, X: s.X, Y: s.Y, Touch: s.Touch, Target: hover})
		}
		t.hover = hover
	}

	moved := !t.havePos || s.X != t.lastX || s.Y != t.lastY
	switch {
	case s.Pressed && !t.down:
		out = append(out, &Event{Kind: PointerDown, X: s.X, Y: s.Y, Touch: s.Touch, Target: target})
		t.down = true
	case moved:
		out = append(out, &Event{Kind: PointerMove, X: s.X, Y: s.Y, Touch: s.Touch, Target: target})
	}
	if !s.Pressed && t.down {
		out = append(out, &Event{Kind: PointerUp, X: s.X, Y: s.Y, Touch: s.Touch, Target: target})
		t.down = false
	}

	t.touch = s.Touch
	t.havePos = true
	t.lastX, t.lastY = s.X, s.Y
	return out
}

// Down reports whether the tracked pointer is currently pressed.
func (t *Tracker) Down() bool { return t.down }
