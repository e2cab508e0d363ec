package assets

import (
	"errors"
	"image"
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// RasterizeSVG renders an SVG document into an RGBA image whose longer side
// is size pixels, preserving the viewBox aspect ratio.
func RasterizeSVG(r io.Reader, size int) (*image.RGBA, error) {
	if size <= 0 {
		size = DefaultRasterSize
	}
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, err
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, errors.New("svg has no usable viewBox")
	}
	scale := float64(size) / math.Max(vw, vh)
	w := int(math.Round(vw * scale))
	h := int(math.Round(vh * scale))

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return rgba, nil
}
