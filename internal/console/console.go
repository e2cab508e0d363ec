// Package console exposes the wheel's programmatic API as one-line text
// commands, for poking at a running wheel by hand.
package console

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/layered-wheel/internal/wheel"
)

var (
	// ErrUnknownCommand is returned for a command word the console does not know.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a known command gets malformed arguments.
	ErrUsage = errors.New("usage")
)

// Wheel is the subset of the controller the console drives.
type Wheel interface {
	Reset()
	Rotations() map[string]float64
	SetRotation(name string, deg float64)
	SetSize(name string, size float64)
	Configs() []wheel.LayerConfig
	SetAllSizes(sizes any)
}

const help = `commands:
  reset                    rotate every layer back to 0
  rotations                list current rotations
  configs                  list name, size, rotation and rank of every layer
  rotate <name> <deg>      set one layer's rotation
  size <name> <px>         set one layer's size
  sizes <px>,<px>,...      set every size in configured order
  sizes <name>=<px>,...    set sizes by name`

// Console parses and runs commands against a Wheel.
type Console struct {
	wheel  Wheel
	logger *log.Logger
}

// New returns a console bound to w. A nil logger uses log.Default().
func New(w Wheel, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.Default()
	}
	return &Console{wheel: w, logger: logger}
}

// Bind points the console at a different wheel, e.g. after a reload.
func (c *Console) Bind(w Wheel) { c.wheel = w }

// Exec runs one command line and returns its printable output.
func (c *Console) Exec(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return help, nil
	}
	c.logger.Debug("console", "cmd", line)

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "help", "?":
		return help, nil

	case "reset":
		c.wheel.Reset()
		return "all layers reset", nil

	case "rotations":
		return formatRotations(c.wheel.Rotations()), nil

	case "configs":
		return formatConfigs(c.wheel.Configs()), nil

	case "rotate":
		if len(args) != 2 {
			return "", fmt.Errorf("%w: rotate <name> <deg>", ErrUsage)
		}
		deg, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return "", fmt.Errorf("%w: rotate <name> <deg>: %v", ErrUsage, err)
		}
		c.wheel.SetRotation(args[0], deg)
		return fmt.Sprintf("%s rotation set to %g", args[0], deg), nil

	case "size":
		if len(args) != 2 {
			return "", fmt.Errorf("%w: size <name> <px>", ErrUsage)
		}
		px, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return "", fmt.Errorf("%w: size <name> <px>: %v", ErrUsage, err)
		}
		c.wheel.SetSize(args[0], px)
		return fmt.Sprintf("%s size set to %gpx", args[0], px), nil

	case "sizes":
		if len(args) != 1 {
			return "", fmt.Errorf("%w: sizes <px>,... | <name>=<px>,...", ErrUsage)
		}
		sizes, err := parseSizes(args[0])
		if err != nil {
			return "", err
		}
		// The wheel drops a positional list of the wrong length without a word.
		if list, ok := sizes.([]float64); ok {
			if n := len(c.wheel.Configs()); len(list) != n {
				return fmt.Sprintf("ignored: need %d sizes, got %d", n, len(list)), nil
			}
		}
		c.wheel.SetAllSizes(sizes)
		return "sizes applied", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

// parseSizes returns []float64 for a positional list and map[string]float64
// for name=value pairs. Mixing the two forms is a usage error.
func parseSizes(arg string) (any, error) {
	parts := strings.Split(arg, ",")
	if strings.Contains(arg, "=") {
		out := make(map[string]float64, len(parts))
		for _, p := range parts {
			name, val, ok := strings.Cut(p, "=")
			if !ok || name == "" {
				return nil, fmt.Errorf("%w: bad pair %q", ErrUsage, p)
			}
			px, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad size %q", ErrUsage, val)
			}
			out[name] = px
		}
		return out, nil
	}

	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		px, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad size %q", ErrUsage, p)
		}
		out = append(out, px)
	}
	return out, nil
}

func formatRotations(rot map[string]float64) string {
	names := make([]string, 0, len(rot))
	for name := range rot {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %.2f\n", name, rot[name])
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatConfigs(cfgs []wheel.LayerConfig) string {
	var b strings.Builder
	for _, cfg := range cfgs {
		fmt.Fprintf(&b, "%s size=%g rotation=%.2f rank=%d\n", cfg.Name, cfg.Size, cfg.Rotation, cfg.Rank)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Prompt asks for a command in a native dialog, runs it and shows the result.
// Cancelling the dialog is not an error.
func (c *Console) Prompt() error {
	line, err := zenity.Entry("Command (help for a list):", zenity.Title("Wheel console"))
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}

	out, err := c.Exec(line)
	if err != nil {
		c.logger.Warn("console command failed", "cmd", line, "err", err)
		return zenity.Error(err.Error(), zenity.Title("Wheel console"))
	}
	c.logger.Info("console", "cmd", line)
	return zenity.Info(out, zenity.Title("Wheel console"))
}
