package console

import (
	"image"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/layered-wheel/internal/wheel"
)

// fakeWheel records calls made through the console.
type fakeWheel struct {
	reset     int
	rotations map[string]float64
	sizes     map[string]float64
	allSizes  any
}

func newFakeWheel() *fakeWheel {
	return &fakeWheel{
		rotations: map[string]float64{"inner": 12.5, "outer": -90},
		sizes:     map[string]float64{},
	}
}

func (w *fakeWheel) Reset()                               { w.reset++ }
func (w *fakeWheel) Rotations() map[string]float64        { return w.rotations }
func (w *fakeWheel) SetRotation(name string, deg float64) { w.rotations[name] = deg }
func (w *fakeWheel) SetSize(name string, size float64)    { w.sizes[name] = size }
func (w *fakeWheel) SetAllSizes(sizes any)                { w.allSizes = sizes }

func (w *fakeWheel) Configs() []wheel.LayerConfig {
	return []wheel.LayerConfig{
		{Name: "inner", Size: 120, Rotation: 12.5, Rank: 2},
		{Name: "outer", Size: 225, Rotation: -90, Rank: 1},
	}
}

func newConsole() (*Console, *fakeWheel) {
	w := newFakeWheel()
	return New(w, log.New(io.Discard)), w
}

func TestExec_Commands(t *testing.T) {
	c, w := newConsole()

	out, err := c.Exec("reset")
	require.NoError(t, err)
	assert.Equal(t, "all layers reset", out)
	assert.Equal(t, 1, w.reset)

	out, err = c.Exec("rotations")
	require.NoError(t, err)
	assert.Equal(t, "inner: 12.50\nouter: -90.00", out)

	out, err = c.Exec("configs")
	require.NoError(t, err)
	assert.Equal(t, "inner size=120 rotation=12.50 rank=2\nouter size=225 rotation=-90.00 rank=1", out)

	_, err = c.Exec("ROTATE inner 45")
	require.NoError(t, err)
	assert.Equal(t, 45.0, w.rotations["inner"])

	_, err = c.Exec("size outer 300")
	require.NoError(t, err)
	assert.Equal(t, 300.0, w.sizes["outer"])

	out, err = c.Exec("")
	require.NoError(t, err)
	assert.Contains(t, out, "commands:")
}

func TestExec_Sizes(t *testing.T) {
	c, w := newConsole()

	_, err := c.Exec("sizes 100,200.5")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200.5}, w.allSizes)

	_, err = c.Exec("sizes inner=10,outer=20")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"inner": 10, "outer": 20}, w.allSizes)
}

func TestExec_SizesWrongCount(t *testing.T) {
	c, w := newConsole()

	out, err := c.Exec("sizes 1,2,3")
	require.NoError(t, err)
	assert.Equal(t, "ignored: need 2 sizes, got 3", out)
	assert.Nil(t, w.allSizes)

	// Named sizes have no count requirement.
	out, err = c.Exec("sizes inner=5")
	require.NoError(t, err)
	assert.Equal(t, "sizes applied", out)
	assert.Equal(t, map[string]float64{"inner": 5}, w.allSizes)
}

func TestExec_Errors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"spin", ErrUnknownCommand},
		{"rotate inner", ErrUsage},
		{"rotate inner lots", ErrUsage},
		{"size outer", ErrUsage},
		{"size outer big", ErrUsage},
		{"sizes", ErrUsage},
		{"sizes 1,x", ErrUsage},
		{"sizes inner=1,=2", ErrUsage},
		{"sizes inner=1,outer", ErrUsage},
		{"sizes inner=z", ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c, w := newConsole()
			_, err := c.Exec(tt.line)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, w.allSizes)
		})
	}
}

func TestBind(t *testing.T) {
	c, first := newConsole()
	second := newFakeWheel()
	c.Bind(second)

	_, err := c.Exec("reset")
	require.NoError(t, err)
	assert.Equal(t, 0, first.reset)
	assert.Equal(t, 1, second.reset)
}

func TestConsoleAgainstController(t *testing.T) {
	specs := []wheel.LayerSpec{
		{Name: "A", Rank: 2, Size: 100},
		{Name: "B", Rank: 1, Size: 200},
	}
	w := wheel.New(specs, nopTree{}, nopSurface{}, nil, nil, wheel.Options{Logger: log.New(io.Discard)})
	c := New(w, log.New(io.Discard))

	out, err := c.Exec("sizes 10,20,30")
	require.NoError(t, err)
	assert.Equal(t, "ignored: need 2 sizes, got 3", out)
	assert.Equal(t, 100.0, w.Configs()[0].Size)

	_, err = c.Exec("sizes 10,20")
	require.NoError(t, err)
	assert.Equal(t, 20.0, w.Configs()[1].Size)

	_, err = c.Exec("rotate ghost 10")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"A": 0, "B": 0}, w.Rotations())
}

type nopElement struct{}

func (nopElement) SetImage(image.Image)   {}
func (nopElement) ShowPlaceholder()       {}
func (nopElement) SetSize(float64)        {}
func (nopElement) SetRotation(float64)    {}
func (nopElement) SetVisual(wheel.Visual) {}
func (nopElement) SetCursor(wheel.Cursor) {}

type nopTree struct{}

func (nopTree) Clear()                               {}
func (nopTree) Append(wheel.LayerSpec) wheel.Element { return nopElement{} }

type nopSurface struct{}

func (nopSurface) Bounds() wheel.Rect { return wheel.Rect{W: 400, H: 400} }
