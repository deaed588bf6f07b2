package ebitenview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run opens a resizable window and runs v until the window closes or the
// script (with WithExitOnScriptDone) finishes.
func Run(v *View, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: window size %dx%d must be positive", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	v.SetShowHUD(cfg.ShowFPS)

	v.engine.Resize(float64(cfg.Width), float64(cfg.Height))
	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
