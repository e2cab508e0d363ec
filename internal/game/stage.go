package game

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"

	"github.com/iburimskiy/layered-wheel/internal/assets"
	"github.com/iburimskiy/layered-wheel/internal/config"
	"github.com/iburimskiy/layered-wheel/internal/wheel"
)

// element is the on-screen layer. Every element is centered on the stage.
type element struct {
	spec wheel.LayerSpec

	src         image.Image
	img         *ebiten.Image
	placeholder bool

	size     float64
	rotation float64
	visual   wheel.Visual
	cursor   wheel.Cursor
}

func (e *element) SetImage(img image.Image) {
	e.release()
	e.src = img
	e.placeholder = false
}

func (e *element) ShowPlaceholder() {
	e.release()
	e.src = assets.Placeholder(e.spec.Name, int(math.Round(e.size)))
	e.placeholder = true
}

func (e *element) SetSize(size float64)     { e.size = size }
func (e *element) SetRotation(deg float64)  { e.rotation = deg }
func (e *element) SetVisual(v wheel.Visual) { e.visual = v }
func (e *element) SetCursor(c wheel.Cursor) { e.cursor = c }

func (e *element) release() {
	if e.img != nil {
		e.img.Deallocate()
		e.img = nil
	}
}

// texture uploads the source image on first use.
func (e *element) texture() *ebiten.Image {
	if e.img == nil && e.src != nil {
		e.img = ebiten.NewImageFromImage(e.src)
	}
	return e.img
}

// geoM places the texture so it fits the element's square box, rotated
// around the stage center. grow enlarges the box by that many pixels per side.
func (e *element) geoM(tex *ebiten.Image, cx, cy, grow float64) ebiten.GeoM {
	b := tex.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	s := (e.size + 2*grow) / math.Max(w, h)

	var m ebiten.GeoM
	m.Translate(-w/2, -h/2)
	m.Scale(s, s)
	m.Rotate(e.rotation * math.Pi / 180)
	m.Translate(cx, cy)
	return m
}

func (e *element) draw(screen *ebiten.Image, cx, cy float64) {
	tex := e.texture()
	if tex == nil || e.size <= 0 {
		return
	}

	brightness := 1.0
	switch e.visual {
	case wheel.VisualHover:
		brightness = config.HoverBrightness
		e.drawGlow(screen, tex, cx, cy, config.HoverGlowRadius, config.HoverGlowAlpha)
	case wheel.VisualDragging:
		brightness = config.DragBrightness
		e.drawGlow(screen, tex, cx, cy, config.DragGlowRadius, config.DragGlowAlpha)
	}

	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM = e.geoM(tex, cx, cy, 0)
	op.ColorScale.Scale(float32(brightness), float32(brightness), float32(brightness), 1)
	screen.DrawImage(tex, op)
}

// drawGlow paints a few enlarged, flat-tinted silhouettes of the layer
// behind it, fading outward.
func (e *element) drawGlow(screen, tex *ebiten.Image, cx, cy, radius, alpha float64) {
	const passes = 3
	for i := passes; i >= 1; i-- {
		grow := radius * float64(i) / passes
		a := clamp01(alpha * (1 - float64(i-1)/passes) / passes)

		var cm colorm.ColorM
		cm.Scale(0, 0, 0, a)
		cm.Translate(config.GlowR/255.0, config.GlowG/255.0, config.GlowB/255.0, 0)

		op := &colorm.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM = e.geoM(tex, cx, cy, grow)
		colorm.DrawImage(screen, tex, cm, op)
	}
}

// stage is the wheel's host surface and element tree. Its bounds follow the
// window's layout size.
type stage struct {
	elements []*element
	painted  []*element // back to front, rebuilt after Append or Clear
	width    int
	height   int
}

func newStage(width, height int) *stage {
	return &stage{width: width, height: height}
}

func (s *stage) Clear() {
	for _, e := range s.elements {
		e.release()
	}
	s.elements = nil
	s.painted = nil
}

func (s *stage) Append(spec wheel.LayerSpec) wheel.Element {
	e := &element{spec: spec}
	s.elements = append(s.elements, e)
	s.painted = nil
	return e
}

func (s *stage) Bounds() wheel.Rect {
	return wheel.Rect{W: float64(s.width), H: float64(s.height)}
}

func (s *stage) resize(width, height int) {
	s.width, s.height = width, height
}

// paintOrder returns the elements in the order wheel.BackToFront gives, the
// same order the controller hit-tests in reverse.
func (s *stage) paintOrder() []*element {
	if s.painted == nil {
		specs := make([]wheel.LayerSpec, len(s.elements))
		for i, e := range s.elements {
			specs[i] = e.spec
		}
		s.painted = make([]*element, 0, len(s.elements))
		for _, i := range wheel.BackToFront(specs) {
			s.painted = append(s.painted, s.elements[i])
		}
	}
	return s.painted
}

func (s *stage) draw(screen *ebiten.Image) {
	cx, cy := float64(s.width)/2, float64(s.height)/2
	for _, e := range s.paintOrder() {
		e.draw(screen, cx, cy)
	}
}

// cursorShape picks the window cursor: grabbing wins over hover.
func (s *stage) cursorShape() ebiten.CursorShapeType {
	hovered := false
	for _, e := range s.elements {
		if e.cursor == wheel.CursorGrabbing {
			return ebiten.CursorShapeMove
		}
		if e.visual == wheel.VisualHover {
			hovered = true
		}
	}
	if hovered {
		return ebiten.CursorShapePointer
	}
	return ebiten.CursorShapeDefault
}

func (s *stage) placeholders() int {
	n := 0
	for _, e := range s.elements {
		if e.placeholder {
			n++
		}
	}
	return n
}
