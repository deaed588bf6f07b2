package ebitenview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/canopy"
)

// hud is the stats overlay: FPS, TPS, zoom and the primitive count of the
// current frame. The timing line refreshes every ~0.5 seconds.
type hud struct {
	img        *ebiten.Image
	lastUpdate float64
	timing     string
}

func (h *hud) update(dt float64) {
	h.lastUpdate += dt
	if h.lastUpdate < 0.5 && h.timing != "" {
		return
	}
	h.lastUpdate = 0
	h.timing = fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (h *hud) draw(screen *ebiten.Image, f canopy.Frame) {
	// 240x64 is enough for four DebugPrint lines.
	if h.img == nil {
		h.img = ebiten.NewImage(240, 64)
	}
	h.img.Clear()
	// Semi-transparent background for readability
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, hudText(h.timing, f))

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(8, 8)
	screen.DrawImage(h.img, &op)
}

func hudText(timing string, f canopy.Frame) string {
	zoom := fmt.Sprintf("zoom %.2fx", f.Camera.Scale)
	switch {
	case f.Camera.AtMaxZoom:
		zoom += " (max)"
	case f.Camera.AtMinZoom:
		zoom += " (min)"
	}
	return fmt.Sprintf("%s\n%s\nnodes %d  edges %d\nprimitives %d",
		timing, zoom, len(f.Nodes), len(f.Edges), f.Primitives())
}
