// Package wheel implements the layered wheel controller: a stack of
// concentric image layers, each rotated independently by dragging around the
// wheel's center.
//
// The controller owns layer configuration, rotation state and the single
// drag session. Rendering is delegated to a Tree of Elements and pointer input
// arrives through an input.Dispatcher, so the controller itself has no
// dependency on a particular UI toolkit.
package wheel

import (
	"image"

	"github.com/charmbracelet/log"

	"github.com/iburimskiy/layered-wheel/internal/input"
)

// LayerSpec describes one layer. Name, Image and Rank never change after
// construction; Size is the initial display size.
type LayerSpec struct {
	Name  string
	Image string
	Rank  int     // higher is drawn in front
	Size  float64 // edge length of the square bounding box
}

// LayerConfig is a read-only snapshot of one layer.
type LayerConfig struct {
	Name     string
	Size     float64
	Rotation float64
	Rank     int
}

// Visual is the highlight state applied to an element.
type Visual int

const (
	VisualIdle Visual = iota
	VisualHover
	VisualDragging
)

// Cursor is the pointer cursor an element asks for.
type Cursor int

const (
	CursorGrab Cursor = iota
	CursorGrabbing
)

// Element is the rendered view of one layer. All layers share one center.
type Element interface {
	SetImage(img image.Image)
	ShowPlaceholder()
	SetSize(size float64)
	SetRotation(deg float64)
	SetVisual(v Visual)
	SetCursor(c Cursor)
}

// Tree builds and discards layer elements.
type Tree interface {
	Clear()
	Append(spec LayerSpec) Element
}

// Surface is the host area the wheel is drawn in. Bounds is queried on every
// use and never cached.
type Surface interface {
	Bounds() Rect
}

// Loader fetches a layer's image.
type Loader interface {
	Load(ref string) (image.Image, error)
}

// Options tune controller behavior. The zero value is usable.
type Options struct {
	Logger *log.Logger

	// NormalizeDeltas folds each per-move angular delta into [-180, 180).
	// When false the raw atan2 difference is accumulated, so crossing the
	// branch cut at ±180° adds a full turn to the stored rotation.
	NormalizeDeltas bool

	// OnDragStart, if set, is called when a drag begins with the layer's
	// rotation at that moment.
	OnDragStart func(name string, rotation float64)

	// OnDrag, if set, is called after every applied drag move.
	OnDrag func(name string, rotation float64)
}

type layer struct {
	spec LayerSpec
	size float64
	el   Element
}

type session struct {
	name string
	last float64 // degrees
}

// Controller is the wheel. It is not safe for concurrent use; all methods
// are expected to run on the UI goroutine.
type Controller struct {
	layers    []*layer
	index     map[string]*layer
	hitOrder  []*layer // front-most first
	rotations map[string]float64
	drag      *session

	tree    Tree
	surface Surface
	handles []input.Handle
	opts    Options
	log     *log.Logger
}

// New builds one element per spec, loads its image and registers pointer
// handlers on d. Image failures are logged and replaced by the element's
// placeholder; they never abort construction. Specs with a duplicate name are
// skipped.
func New(specs []LayerSpec, tree Tree, surface Surface, d *input.Dispatcher, loader Loader, opts Options) *Controller {
	c := &Controller{
		index:     make(map[string]*layer, len(specs)),
		rotations: make(map[string]float64, len(specs)),
		tree:      tree,
		surface:   surface,
		opts:      opts,
		log:       opts.Logger,
	}
	if c.log == nil {
		c.log = log.Default()
	}

	tree.Clear()
	for _, spec := range specs {
		if _, dup := c.index[spec.Name]; dup {
			c.log.Warn("duplicate layer ignored", "layer", spec.Name)
			continue
		}
		l := &layer{spec: spec, size: spec.Size}
		l.el = tree.Append(spec)
		l.el.SetSize(l.size)
		l.el.SetRotation(0)
		l.el.SetVisual(VisualIdle)
		l.el.SetCursor(CursorGrab)
		c.load(l, loader)

		c.layers = append(c.layers, l)
		c.index[spec.Name] = l
		c.rotations[spec.Name] = 0
	}

	kept := make([]LayerSpec, len(c.layers))
	for i, l := range c.layers {
		kept[i] = l.spec
	}
	order := BackToFront(kept)
	c.hitOrder = make([]*layer, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		c.hitOrder = append(c.hitOrder, c.layers[order[i]])
	}

	if d != nil {
		c.listen(d)
	}
	return c
}

func (c *Controller) load(l *layer, loader Loader) {
	if loader == nil {
		l.el.ShowPlaceholder()
		return
	}
	img, err := loader.Load(l.spec.Image)
	if err != nil {
		c.log.Error("failed to load layer", "layer", l.spec.Name, "err", err)
		l.el.ShowPlaceholder()
		return
	}
	c.log.Info("layer loaded", "layer", l.spec.Name)
	l.el.SetImage(img)
}

func (c *Controller) listen(d *input.Dispatcher) {
	for _, l := range c.layers {
		name := l.spec.Name
		c.handles = append(c.handles,
			d.On(input.PointerDown, name, func(ev *input.Event) { c.startDrag(ev, name) }),
			d.On(input.PointerEnter, name, func(*input.Event) { c.hover(name, true) }),
			d.On(input.PointerLeave, name, func(*input.Event) { c.hover(name, false) }),
		)
	}
	c.handles = append(c.handles,
		d.On(input.PointerMove, "", c.dragMove),
		d.On(input.PointerUp, "", func(*input.Event) { c.endDrag() }),
	)
}

// Dispose deregisters every handler and clears the tree. The controller keeps
// answering accessor calls but no longer reacts to input.
func (c *Controller) Dispose() {
	for _, h := range c.handles {
		h.Remove()
	}
	c.handles = nil
	c.drag = nil
	c.tree.Clear()
}

// Center returns the wheel's center in surface-local coordinates.
func (c *Controller) Center() Point {
	return c.surface.Bounds().Center()
}

// local converts an event position to surface-local coordinates.
func (c *Controller) local(x, y float64) Point {
	b := c.surface.Bounds()
	return Point{X: x - b.X, Y: y - b.Y}
}

// HitTest returns the front-most layer whose rotated box contains the point
// (x, y), given in the same coordinates as input events, or "" if none does.
func (c *Controller) HitTest(x, y float64) string {
	b := c.surface.Bounds()
	center := b.Center()
	p := Point{X: x - b.X, Y: y - b.Y}
	for _, l := range c.hitOrder {
		if insideRotatedSquare(center, p, l.size, c.rotations[l.spec.Name]) {
			return l.spec.Name
		}
	}
	return ""
}

func (c *Controller) hover(name string, on bool) {
	if c.drag != nil && c.drag.name == name {
		return
	}
	l := c.index[name]
	if on {
		l.el.SetVisual(VisualHover)
	} else {
		l.el.SetVisual(VisualIdle)
	}
}

func (c *Controller) startDrag(ev *input.Event, name string) {
	l, ok := c.index[name]
	if !ok {
		return
	}
	ev.PreventDefault()

	if c.drag != nil && c.drag.name != name {
		prev := c.index[c.drag.name]
		prev.el.SetVisual(VisualIdle)
		prev.el.SetCursor(CursorGrab)
	}

	l.el.SetVisual(VisualDragging)
	l.el.SetCursor(CursorGrabbing)
	c.drag = &session{name: name, last: angleDeg(c.Center(), c.local(ev.X, ev.Y))}

	if c.opts.OnDragStart != nil {
		c.opts.OnDragStart(name, c.rotations[name])
	}
}

func (c *Controller) dragMove(ev *input.Event) {
	if c.drag == nil {
		return
	}
	ev.PreventDefault()

	angle := angleDeg(c.Center(), c.local(ev.X, ev.Y))
	delta := angle - c.drag.last
	if c.opts.NormalizeDeltas {
		delta = normalizeDelta(delta)
	}
	name := c.drag.name
	c.rotations[name] += delta
	c.index[name].el.SetRotation(c.rotations[name])
	c.drag.last = angle

	if c.opts.OnDrag != nil {
		c.opts.OnDrag(name, c.rotations[name])
	}
}

func (c *Controller) endDrag() {
	if c.drag == nil {
		return
	}
	l := c.index[c.drag.name]
	l.el.SetVisual(VisualIdle)
	l.el.SetCursor(CursorGrab)
	c.drag = nil
}

// Active returns the layer being dragged, if any.
func (c *Controller) Active() (string, bool) {
	if c.drag == nil {
		return "", false
	}
	return c.drag.name, true
}

// Reset sets every layer's rotation to zero.
func (c *Controller) Reset() {
	for _, l := range c.layers {
		c.rotations[l.spec.Name] = 0
		l.el.SetRotation(0)
	}
}

// Rotations returns a copy of the rotation of every layer, in degrees.
func (c *Controller) Rotations() map[string]float64 {
	out := make(map[string]float64, len(c.rotations))
	for k, v := range c.rotations {
		out[k] = v
	}
	return out
}

// SetRotation sets one layer's rotation. Unknown names are ignored.
func (c *Controller) SetRotation(name string, deg float64) {
	l, ok := c.index[name]
	if !ok {
		return
	}
	c.rotations[name] = deg
	l.el.SetRotation(deg)
}

// SetSize sets one layer's display size. Unknown names are ignored.
func (c *Controller) SetSize(name string, size float64) {
	l, ok := c.index[name]
	if !ok {
		return
	}
	l.size = size
	l.el.SetSize(size)
	c.log.Debugf("%s size set to %vpx", name, size)
}

// Configs returns every layer in configured order.
func (c *Controller) Configs() []LayerConfig {
	out := make([]LayerConfig, 0, len(c.layers))
	for _, l := range c.layers {
		out = append(out, LayerConfig{
			Name:     l.spec.Name,
			Size:     l.size,
			Rotation: c.rotations[l.spec.Name],
			Rank:     l.spec.Rank,
		})
	}
	return out
}

// SetSizes applies sizes positionally in configured order. A list whose
// length differs from the layer count is ignored entirely.
func (c *Controller) SetSizes(sizes []float64) {
	if len(sizes) != len(c.layers) {
		return
	}
	for i, l := range c.layers {
		c.SetSize(l.spec.Name, sizes[i])
	}
}

// SetSizesByName applies each entry independently; unknown names are ignored.
func (c *Controller) SetSizesByName(sizes map[string]float64) {
	for name, size := range sizes {
		c.SetSize(name, size)
	}
}

// SetAllSizes accepts either a positional []float64 or a map[string]float64
// and forwards to SetSizes or SetSizesByName. Any other value is ignored.
func (c *Controller) SetAllSizes(sizes any) {
	switch v := sizes.(type) {
	case []float64:
		c.SetSizes(v)
	case map[string]float64:
		c.SetSizesByName(v)
	}
}
