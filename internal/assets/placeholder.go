package assets

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	placeholderMin    = 32
	placeholderBorder = 2
	placeholderDash   = 8
)

var (
	placeholderBorderColor = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	placeholderTextColor   = color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
)

// Placeholder draws the stand-in shown for a layer whose image failed to
// load: a dashed square border with the layer name and a failure note
// centered inside.
func Placeholder(name string, size int) *image.RGBA {
	if size < placeholderMin {
		size = placeholderMin
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	dashedBorder(img, placeholderBorderColor)

	face := basicfont.Face7x13
	lines := []string{name, "failed to load"}
	lineHeight := face.Metrics().Height.Ceil()
	top := (size-lineHeight*len(lines))/2 + face.Metrics().Ascent.Ceil()

	d := &font.Drawer{Dst: img, Src: image.NewUniform(placeholderTextColor), Face: face}
	for i, line := range lines {
		w := d.MeasureString(line).Ceil()
		d.Dot = fixed.P((size-w)/2, top+i*lineHeight)
		d.DrawString(line)
	}
	return img
}

func dashedBorder(img *image.RGBA, c color.Color) {
	size := img.Bounds().Dx()
	on := func(i int) bool { return (i/placeholderDash)%2 == 0 }
	for i := 0; i < size; i++ {
		if !on(i) {
			continue
		}
		for w := 0; w < placeholderBorder; w++ {
			img.Set(i, w, c)
			img.Set(i, size-1-w, c)
			img.Set(w, i, c)
			img.Set(size-1-w, i, c)
		}
	}
}
