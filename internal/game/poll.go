package game

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/layered-wheel/internal/input"
)

// poller reads mouse and touch state from ebiten once per frame and feeds it
// through the single-pointer tracker.
type poller struct {
	tracker input.Tracker

	touchIDs []ebiten.TouchID
	primary  ebiten.TouchID
	touching bool
}

// sample returns the current pointer sample. The first touch to land stays
// primary until lifted; without touches the mouse is used.
func (p *poller) sample() input.Sample {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		if !p.touching || !slices.Contains(p.touchIDs, p.primary) {
			p.primary = p.touchIDs[0]
			p.touching = true
		}
		x, y := ebiten.TouchPosition(p.primary)
		return input.Sample{X: float64(x), Y: float64(y), Pressed: true, Touch: true}
	}
	p.touching = false

	x, y := ebiten.CursorPosition()
	return input.Sample{
		X:       float64(x),
		Y:       float64(y),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}

// poll dispatches this frame's pointer events to d and reports whether the
// wheel claimed any of them.
func (p *poller) poll(d *input.Dispatcher, hit input.HitTester) bool {
	return d.DispatchAll(p.tracker.Step(p.sample(), hit))
}
