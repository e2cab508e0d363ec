package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768

	// Default multiplier applied to every configured layer size
	DefaultScale = 0.6

	// Highlight parameters
	HoverBrightness = 1.1
	DragBrightness  = 1.3
	HoverGlowRadius = 15
	DragGlowRadius  = 20
	HoverGlowAlpha  = 0.6
	DragGlowAlpha   = 0.8
	GlowR           = 76
	GlowG           = 175
	GlowB           = 80

	DefaultTickDegrees = 15.0
)

// ErrInvalid is wrapped by every validation failure returned from Load and Validate.
var ErrInvalid = errors.New("invalid configuration")

// Layer is one [[layer]] entry of the configuration file.
type Layer struct {
	Name  string  `toml:"name"`
	Image string  `toml:"image"`
	Rank  int     `toml:"rank"`
	Size  float64 `toml:"size"`
}

// Audio configures the optional detent tick played while dragging.
type Audio struct {
	TickSound   string  `toml:"tick_sound"`
	TickDegrees float64 `toml:"tick_degrees"`
}

// Config is the static configuration surface consumed once at startup.
type Config struct {
	Scale           float64 `toml:"scale"`
	NormalizeDeltas bool    `toml:"normalize_deltas"`
	Audio           Audio   `toml:"audio"`
	Layers          []Layer `toml:"layer"`

	// Dir is the directory relative image paths are resolved against.
	Dir string `toml:"-"`
}

// defaultSizes are the unscaled edge lengths of the built-in seven-ring wheel,
// innermost first.
var defaultSizes = []float64{200, 375, 535, 715, 895, 1065, 1235}

// Default returns the built-in seven layer wheel. layer1 is the smallest and
// sits on top.
func Default() *Config {
	cfg := &Config{
		Scale:           DefaultScale,
		NormalizeDeltas: true,
		Audio:           Audio{TickDegrees: DefaultTickDegrees},
		Dir:             ".",
	}
	for i, size := range defaultSizes {
		name := fmt.Sprintf("layer%d", i+1)
		cfg.Layers = append(cfg.Layers, Layer{
			Name:  name,
			Image: filepath.Join("layers", name+".svg"),
			Rank:  len(defaultSizes) - i,
			Size:  size,
		})
	}
	return cfg
}

// Load reads a TOML configuration file. Keys missing from the file keep
// their Default values, except the layer list which is replaced wholesale
// when the file declares any layer.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes TOML data. dir is recorded for image path resolution.
func Parse(data []byte, dir string) (*Config, error) {
	cfg := Default()
	defaults := cfg.Layers
	cfg.Layers = nil
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Layers) == 0 {
		cfg.Layers = defaults
	}
	cfg.Dir = dir
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the controller relies on.
func (c *Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalid, c.Scale)
	}
	if len(c.Layers) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Layers))
	for i, l := range c.Layers {
		if l.Name == "" {
			return fmt.Errorf("%w: layer %d has no name", ErrInvalid, i)
		}
		if seen[l.Name] {
			return fmt.Errorf("%w: duplicate layer %q", ErrInvalid, l.Name)
		}
		seen[l.Name] = true
		if l.Size <= 0 {
			return fmt.Errorf("%w: layer %q size must be positive, got %v", ErrInvalid, l.Name, l.Size)
		}
	}
	if c.Audio.TickSound != "" && c.Audio.TickDegrees <= 0 {
		return fmt.Errorf("%w: tick_degrees must be positive, got %v", ErrInvalid, c.Audio.TickDegrees)
	}
	return nil
}

// Resolve returns path relative to the configuration directory unless it is
// already absolute.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// ScaledSize returns a layer's display size after applying Scale.
func (c *Config) ScaledSize(l Layer) float64 {
	return l.Size * c.Scale
}
