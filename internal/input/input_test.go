package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(evs []*Event) []Kind {
	out := make([]Kind, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Kind)
	}
	return out
}

func TestDispatcher_TargetFiltering(t *testing.T) {
	d := NewDispatcher()
	var global, onA, onB int
	d.On(PointerDown, "", func(*Event) { global++ })
	d.On(PointerDown, "a", func(*Event) { onA++ })
	d.On(PointerDown, "b", func(*Event) { onB++ })

	d.Dispatch(&Event{Kind: PointerDown, Target: "a"})
	d.Dispatch(&Event{Kind: PointerDown})
	d.Dispatch(&Event{Kind: PointerMove, Target: "a"})

	assert.Equal(t, 2, global)
	assert.Equal(t, 1, onA)
	assert.Equal(t, 0, onB)
}

func TestDispatcher_Remove(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	h := d.On(PointerUp, "", func(*Event) { calls++ })
	other := d.On(PointerUp, "", func(*Event) {})
	require.Equal(t, 2, d.Len())

	h.Remove()
	h.Remove()
	d.Dispatch(&Event{Kind: PointerUp})

	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, d.Len())

	other.Remove()
	assert.Equal(t, 0, d.Len())

	// Zero handle is inert.
	Handle{}.Remove()
}

func TestDispatcher_RemoveDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	var h Handle
	calls := 0
	h = d.On(PointerMove, "", func(*Event) {
		calls++
		h.Remove()
	})
	d.On(PointerMove, "", func(*Event) { calls++ })

	d.Dispatch(&Event{Kind: PointerMove})
	d.Dispatch(&Event{Kind: PointerMove})
	assert.Equal(t, 3, calls)
}

func TestEvent_PreventDefault(t *testing.T) {
	ev := &Event{Kind: PointerDown}
	assert.False(t, ev.DefaultPrevented())
	ev.PreventDefault()
	assert.True(t, ev.DefaultPrevented())
}

func TestDispatcher_DispatchAllReportsClaim(t *testing.T) {
	d := NewDispatcher()
	d.On(PointerDown, "layer", func(ev *Event) { ev.PreventDefault() })

	assert.False(t, d.DispatchAll(nil))
	assert.False(t, d.DispatchAll([]*Event{
		{Kind: PointerDown},
		{Kind: PointerMove, Target: "layer"},
	}))

	evs := []*Event{
		{Kind: PointerLeave},
		{Kind: PointerDown, Target: "layer"},
	}
	assert.True(t, d.DispatchAll(evs))
	assert.False(t, evs[0].DefaultPrevented())
	assert.True(t, evs[1].DefaultPrevented())
}

func TestTracker_MouseDrag(t *testing.T) {
	var tr Tracker
	hit := func(x, y float64) string {
		if x < 10 {
			return "inner"
		}
		return ""
	}

	evs := tr.Step(Sample{X: 5, Y: 5}, hit)
	assert.Equal(t, []Kind{PointerEnter, PointerMove}, kinds(evs))
	assert.Equal(t, "inner", evs[0].Target)

	evs = tr.Step(Sample{X: 5, Y: 5, Pressed: true}, hit)
	require.Equal(t, []Kind{PointerDown}, kinds(evs))
	assert.Equal(t, "inner", evs[0].Target)
	assert.True(t, tr.Down())

	evs = tr.Step(Sample{X: 5, Y: 5, Pressed: true}, hit)
	assert.Empty(t, evs)

	evs = tr.Step(Sample{X: 20, Y: 5, Pressed: true}, hit)
	assert.Equal(t, []Kind{PointerLeave, PointerMove}, kinds(evs))
	assert.Equal(t, "inner", evs[0].Target)

	evs = tr.Step(Sample{X: 20, Y: 5}, hit)
	assert.Equal(t, []Kind{PointerUp}, kinds(evs))
	assert.False(t, tr.Down())
}

func TestTracker_TouchHandoff(t *testing.T) {
	var tr Tracker
	hit := func(x, y float64) string { return "layer" }

	evs := tr.Step(Sample{X: 1, Y: 1, Pressed: true, Touch: true}, hit)
	assert.Equal(t, []Kind{PointerDown}, kinds(evs))
	assert.True(t, evs[0].Touch)

	evs = tr.Step(Sample{X: 3, Y: 1, Pressed: true, Touch: true}, hit)
	assert.Equal(t, []Kind{PointerMove}, kinds(evs))

	// Finger lifted; the mouse sample elsewhere must not be reported as a
	// drag move before the release.
	evs = tr.Step(Sample{X: 500, Y: 500}, hit)
	require.NotEmpty(t, evs)
	assert.Equal(t, PointerUp, evs[0].Kind)
	assert.Equal(t, 3.0, evs[0].X)
	assert.False(t, tr.Down())
	for _, ev := range evs[1:] {
		assert.NotEqual(t, PointerUp, ev.Kind)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "down", PointerDown.String())
	assert.Equal(t, "leave", PointerLeave.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
