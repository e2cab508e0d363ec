// Package assets loads layer artwork.
//
// Raster formats are decoded through the image package registry (PNG, JPEG,
// GIF, BMP, TIFF, WebP). SVG files are rasterized with oksvg. A Loader caches
// results per reference, including failures, so a broken file is only tried
// once.
package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// DefaultRasterSize is the edge length SVG layers are rasterized at.
const DefaultRasterSize = 1024

type result struct {
	img image.Image
	err error
}

// Loader resolves references to files and decodes them. It is safe for
// concurrent use.
type Loader struct {
	// Resolve maps a reference to a file path. Nil means identity.
	Resolve func(ref string) string
	// RasterSize is the target edge length for vector images.
	RasterSize int

	mu    sync.Mutex
	cache map[string]result
}

// NewLoader returns a Loader that resolves references with resolve.
func NewLoader(resolve func(string) string) *Loader {
	return &Loader{
		Resolve:    resolve,
		RasterSize: DefaultRasterSize,
		cache:      make(map[string]result),
	}
}

// Preload decodes refs concurrently and caches the outcome of each. Decode
// failures are cached rather than returned; the only error is ctx's.
func (l *Loader) Preload(ctx context.Context, refs []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, ref := range refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			l.Load(ref)
			return nil
		})
	}
	return g.Wait()
}

// Load returns the decoded image for ref, decoding it on first use.
func (l *Loader) Load(ref string) (image.Image, error) {
	l.mu.Lock()
	if r, ok := l.cache[ref]; ok {
		l.mu.Unlock()
		return r.img, r.err
	}
	l.mu.Unlock()

	path := ref
	if l.Resolve != nil {
		path = l.Resolve(ref)
	}
	img, err := Decode(path, l.RasterSize)

	l.mu.Lock()
	if l.cache == nil {
		l.cache = make(map[string]result)
	}
	l.cache[ref] = result{img: img, err: err}
	l.mu.Unlock()
	return img, err
}

// Decode reads the image at path. SVG files are rasterized so their longer
// side is rasterSize pixels.
func Decode(path string, rasterSize int) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("no image configured")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		img, err := RasterizeSVG(f, rasterSize)
		if err != nil {
			return nil, fmt.Errorf("failed to rasterize %s: %w", filepath.Base(path), err)
		}
		return img, nil
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
