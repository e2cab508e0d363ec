package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/layered-wheel/internal/config"
	"github.com/iburimskiy/layered-wheel/internal/game"
)

// newLogger creates a logger with timestamp formatting ("HH:MM:SS.ms").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
		width      int
		height     int
	)

	cmd := &cobra.Command{
		Use:          "layered-wheel",
		Short:        "Interactive stack of independently rotatable wheel layers",
		Long:         `layered-wheel shows concentric image layers that rotate independently when dragged with the mouse or a finger.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(os.Stderr, level)

			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
				logger.Debug("configuration loaded", "path", configPath)
			}

			g, err := game.New(cmd.Context(), cfg, width, height, logger)
			if err != nil {
				return err
			}
			defer g.Close()

			ebiten.SetWindowSize(width, height)
			ebiten.SetWindowTitle("Layered Wheel - drag a layer to rotate it, R: reset, Esc/Q: quit")
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

			if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "layer configuration file (TOML)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	cmd.Flags().IntVar(&width, "width", config.WindowWidth, "initial window width")
	cmd.Flags().IntVar(&height, "height", config.WindowHeight, "initial window height")
	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
