// Package game runs the layered wheel in an ebiten window.
package game

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/layered-wheel/internal/assets"
	"github.com/iburimskiy/layered-wheel/internal/audio"
	"github.com/iburimskiy/layered-wheel/internal/config"
	"github.com/iburimskiy/layered-wheel/internal/console"
	"github.com/iburimskiy/layered-wheel/internal/input"
	"github.com/iburimskiy/layered-wheel/internal/wheel"
)

const instructions = `How to use:
  Click and drag any visible part of a layer to rotate it
  Upper layers cover lower layers; each rotates independently
  R: reset   ` + "`" + `: console   O: open layer config   Esc/Q: quit`

// Game is the ebiten.Game hosting one wheel.
type Game struct {
	logger *log.Logger

	cfg        *config.Config
	stage      *stage
	dispatcher *input.Dispatcher
	poller     poller
	wheel      *wheel.Controller
	console    *console.Console
	ticker     *audio.Ticker
	clicks     clickPlayer

	// state
	lastErr error
}

// New builds the wheel described by cfg inside a width x height stage. Layer
// images are decoded up front; ctx bounds that work.
func New(ctx context.Context, cfg *config.Config, width, height int, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		logger:     logger,
		stage:      newStage(width, height),
		dispatcher: input.NewDispatcher(),
	}
	g.console = console.New(nil, logger)
	if err := g.build(ctx, cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// Wheel returns the current controller, the handle for programmatic control.
func (g *Game) Wheel() *wheel.Controller { return g.wheel }

// build replaces the current wheel, if any, with one built from cfg.
func (g *Game) build(ctx context.Context, cfg *config.Config) error {
	loader := assets.NewLoader(cfg.Resolve)
	specs := make([]wheel.LayerSpec, 0, len(cfg.Layers))
	refs := make([]string, 0, len(cfg.Layers))
	for _, l := range cfg.Layers {
		specs = append(specs, wheel.LayerSpec{
			Name:  l.Name,
			Image: l.Image,
			Rank:  l.Rank,
			Size:  cfg.ScaledSize(l),
		})
		refs = append(refs, l.Image)
	}
	if err := loader.Preload(ctx, refs); err != nil {
		return fmt.Errorf("preload layers: %w", err)
	}

	g.clicks.stop()
	g.ticker = nil
	if cfg.Audio.TickSound != "" {
		if err := g.clicks.load(cfg.Resolve(cfg.Audio.TickSound)); err != nil {
			// Ticks are cosmetic; run silent.
			g.logger.Warn("tick sound disabled", "path", cfg.Audio.TickSound, "err", err)
		} else {
			g.ticker = audio.NewTicker(cfg.Audio.TickDegrees, g.clicks.play)
		}
	}

	if g.wheel != nil {
		g.wheel.Dispose()
	}
	opts := wheel.Options{
		Logger:          g.logger,
		NormalizeDeltas: cfg.NormalizeDeltas,
	}
	if g.ticker != nil {
		opts.OnDragStart = g.ticker.Sync
		opts.OnDrag = g.ticker.Rotated
	}
	g.wheel = wheel.New(specs, g.stage, g.stage, g.dispatcher, loader, opts)
	g.console.Bind(g.wheel)
	g.cfg = cfg

	if n := g.stage.placeholders(); n > 0 {
		g.logger.Warn("some layers use placeholders", "count", n)
	}
	return nil
}

func (g *Game) Update() error {
	claimed := g.poller.poll(g.dispatcher, g.wheel.HitTest)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.wheel.Reset()
	}

	// Dialogs block the loop; opening one on a frame the wheel claimed would
	// swallow the pointer release.
	if !claimed {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyBackquote):
			if err := g.console.Prompt(); err != nil {
				g.setErr(err)
			}
		case inpututil.IsKeyJustPressed(ebiten.KeyO):
			if err := g.openConfigDialog(); err != nil {
				g.setErr(err)
			}
		}
	}

	ebiten.SetCursorShape(g.stage.cursorShape())
	return nil
}

func (g *Game) setErr(err error) {
	g.lastErr = err
	g.logger.Error("action failed", "err", err)
}

func (g *Game) openConfigDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Layer Configuration"),
		zenity.FileFilters{{
			Name:     "Wheel config",
			Patterns: []string{"*.toml"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(filename)
	if err != nil {
		return err
	}
	if err := g.build(context.Background(), cfg); err != nil {
		return err
	}
	g.lastErr = nil
	g.logger.Info("configuration loaded", "path", filename, "layers", len(cfg.Layers))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.stage.draw(screen)

	status := "Drag a layer to rotate it"
	if name, ok := g.wheel.Active(); ok {
		status = fmt.Sprintf("Rotating %s: %s", name, formatRotation(g.wheel.Rotations()[name]))
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
	ebitenutil.DebugPrintAt(screen, instructions, 12, g.stage.height-60)
}

// drawBackground paints a soft vertical gradient.
func (g *Game) drawBackground(screen *ebiten.Image) {
	h := g.stage.height
	w := float32(g.stage.width)
	for y := 0; y < h; y += 2 {
		ratio := float64(y) / float64(h)
		r, gv, b := hsvToRgb(210+ratio*40, 0.35, 0.12+0.1*ratio)
		vector.DrawFilledRect(screen, 0, float32(y), w, 2, color.RGBA{R: r, G: gv, B: b, A: 255}, false)
	}
}

// Layout tracks the window size so the wheel stays centered when resized.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.stage.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close releases the wheel and audio.
func (g *Game) Close() {
	g.wheel.Dispose()
	g.clicks.stop()
}
