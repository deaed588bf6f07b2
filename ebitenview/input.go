package ebitenview

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/canopy"
)

const defaultDragDeadZone = 4.0 // pixels

// pointerEventKind is the outcome of one pointer update.
type pointerEventKind uint8

const (
	pointerNone  pointerEventKind = iota
	pointerClick                  // press and release without leaving the dead zone
	pointerDrag                   // movement while dragging; dx, dy are the step
)

type pointerEvent struct {
	kind   pointerEventKind
	x, y   float64 // screen position
	dx, dy float64
}

// pointerState tracks one pointer between press and release. A press that
// moves more than deadZone pixels becomes a drag and never a click.
type pointerState struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	deadZone float64
}

func (ps *pointerState) update(x, y float64, pressed bool) pointerEvent {
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.dragging = false
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y

	case !pressed && ps.down:
		wasDrag := ps.dragging
		ps.down = false
		ps.dragging = false
		if !wasDrag {
			return pointerEvent{kind: pointerClick, x: ps.startX, y: ps.startY}
		}

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return pointerEvent{}
		}
		if !ps.dragging {
			dx := x - ps.startX
			dy := y - ps.startY
			if math.Sqrt(dx*dx+dy*dy) > ps.deadZone {
				ps.dragging = true
				// The first drag step covers the movement inside the dead zone.
				ps.lastX, ps.lastY = ps.startX, ps.startY
			}
		}
		ev := pointerEvent{}
		if ps.dragging {
			ev = pointerEvent{kind: pointerDrag, x: x, y: y, dx: x - ps.lastX, dy: y - ps.lastY}
		}
		ps.lastX, ps.lastY = x, y
		return ev
	}
	return pointerEvent{}
}

// hitTest returns the visible node whose disc contains the screen point, or
// false. Later nodes win, matching draw order.
func hitTest(f canopy.Frame, cfg canopy.Config, sx, sy float64) (canopy.VisibleNode, bool) {
	v := canopy.Viewport{PanX: f.Camera.PanX, PanY: f.Camera.PanY, Scale: f.Camera.Scale}
	wx, wy := v.ScreenToWorld(sx, sy)
	r := nodeRadius(cfg)
	for i := len(f.Nodes) - 1; i >= 0; i-- {
		n := f.Nodes[i]
		cx, cy := nodeCenter(n, cfg)
		dx, dy := wx-cx, wy-cy
		if dx*dx+dy*dy <= r*r {
			return n, true
		}
	}
	return canopy.VisibleNode{}, false
}

func nodeRadius(cfg canopy.Config) float64 {
	return min(cfg.NodeWidth, cfg.NodeHeight) / 2
}

// nodeCenter returns the world center of a node's box.
func nodeCenter(n canopy.VisibleNode, cfg canopy.Config) (float64, float64) {
	return n.X + cfg.NodeWidth/2, n.Y + cfg.NodeHeight/2
}

// processInput reads mouse, wheel and keyboard state for this tick and
// forwards it to the engine.
func (v *View) processInput() {
	cam := v.engine.Camera()

	mx, my := ebiten.CursorPosition()
	ev := v.pointer.update(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	switch ev.kind {
	case pointerClick:
		if n, ok := hitTest(v.engine.Frame(), v.engine.Config(), ev.x, ev.y); ok {
			v.engine.Activate(n.ID, n.Level)
		}
	case pointerDrag:
		cam.Drag(ev.dx, ev.dy)
	}

	// Ebitengine reports positive y for scrolling up; the camera follows the
	// DOM convention where positive deltas scroll content up.
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta) {
			dir := 1
			if wy < 0 {
				dir = -1
			}
			cam.ZoomAt(float64(mx), float64(my), dir)
		} else {
			cam.Wheel(-wx, -wy, canopy.WheelLine)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		cam.ZoomIn()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		cam.ZoomOut()
	case inpututil.IsKeyJustPressed(ebiten.KeyHome), inpututil.IsKeyJustPressed(ebiten.KeyDigit0):
		cam.Recenter()
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		v.showHUD = !v.showHUD
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		v.Screenshot("manual")
	}

	const keyPan = 12.0
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx += keyPan
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx -= keyPan
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy += keyPan
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy -= keyPan
	}
	cam.Drag(dx, dy)
}
