package canopy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// WheelMode is the unit of a wheel delta, matching the DOM deltaMode values.
type WheelMode uint8

const (
	WheelPixel WheelMode = iota // deltas are pixels
	WheelLine                   // deltas are lines (Config.LineDeltaPixels each)
	WheelPage                   // deltas are pages (one viewport height each)
)

// CameraState is a snapshot of the camera for host-drawn controls.
type CameraState struct {
	PanX, PanY    float64
	Scale         float64
	Width, Height float64
	AtMinZoom     bool
	AtMaxZoom     bool
	Animating     bool
}

// recenterAnim eases the pan from one position to another. The tween runs a
// progress value from 0 to 1 so the pan itself keeps float64 precision.
type recenterAnim struct {
	progress     *gween.Tween
	fromX, fromY float64
	toX, toY     float64
}

// Camera owns the viewport and turns host input into pan and zoom changes.
//
// Drag and zoom steps apply immediately. Wheel deltas accumulate until the
// next Update, which applies them as a single pan change. At most one
// recenter animation is active at a time.
type Camera struct {
	view Viewport
	cfg  Config

	// Target of Recenter in world space (the root node's position).
	homeX, homeY float64

	wheelX, wheelY float64
	wheelPending   bool

	anim *recenterAnim

	// version increases on every change that can affect culling.
	version uint64
}

// newCamera creates a camera at cfg.InitialScale with the world origin
// centered in the viewport.
func newCamera(cfg Config) *Camera {
	c := &Camera{
		cfg: cfg,
		view: Viewport{
			Scale:  cfg.InitialScale,
			Width:  cfg.ViewportWidth,
			Height: cfg.ViewportHeight,
		},
	}
	c.view.PanX, c.view.PanY = c.homePan()
	return c
}

// Viewport returns the current viewport transform.
func (c *Camera) Viewport() Viewport {
	return c.view
}

// State returns the camera snapshot.
func (c *Camera) State() CameraState {
	return CameraState{
		PanX:      c.view.PanX,
		PanY:      c.view.PanY,
		Scale:     c.view.Scale,
		Width:     c.view.Width,
		Height:    c.view.Height,
		AtMinZoom: c.view.Scale <= c.cfg.MinScale,
		AtMaxZoom: c.view.Scale >= c.cfg.MaxScale,
		Animating: c.anim != nil,
	}
}

// Animating reports whether a recenter animation is in flight.
func (c *Camera) Animating() bool {
	return c.anim != nil
}

// Resize sets the viewport size in pixels. Non-positive sizes are ignored.
func (c *Camera) Resize(width, height float64) {
	if !positive(width) || !positive(height) {
		return
	}
	if width == c.view.Width && height == c.view.Height {
		return
	}
	c.view.Width, c.view.Height = width, height
	c.version++
}

// ZoomIn multiplies the scale by the zoom step, up to MaxScale.
func (c *Camera) ZoomIn() bool {
	return c.Zoom(1)
}

// ZoomOut divides the scale by the zoom step, down to MinScale.
func (c *Camera) ZoomOut() bool {
	return c.Zoom(-1)
}

// Zoom applies one zoom step: in for dir > 0, out for dir < 0. The scale is
// clamped to [MinScale, MaxScale]; at the bound the call is a no-op. It
// reports whether the scale changed.
func (c *Camera) Zoom(dir int) bool {
	s, ok := c.steppedScale(dir)
	if !ok {
		return false
	}
	c.view.Scale = s
	c.version++
	return true
}

// ZoomAt applies one zoom step while keeping the world point under screen
// position (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy float64, dir int) bool {
	s, ok := c.steppedScale(dir)
	if !ok {
		return false
	}
	wx, wy := c.view.ScreenToWorld(sx, sy)
	c.view.Scale = s
	c.view.PanX = sx - wx*s
	c.view.PanY = sy - wy*s
	c.version++
	return true
}

func (c *Camera) steppedScale(dir int) (float64, bool) {
	if c.cfg.DisableZoom || dir == 0 {
		return c.view.Scale, false
	}
	s := c.view.Scale
	if dir > 0 {
		s = min(s*c.cfg.ZoomStep, c.cfg.MaxScale)
	} else {
		s = max(s/c.cfg.ZoomStep, c.cfg.MinScale)
	}
	if s == c.view.Scale {
		return s, false
	}
	return s, true
}

// Drag moves the pan by (dx, dy) screen pixels immediately. A drag cancels
// any recenter animation.
func (c *Camera) Drag(dx, dy float64) {
	if c.cfg.DisablePan || (dx == 0 && dy == 0) {
		return
	}
	c.anim = nil
	c.view.PanX += dx
	c.view.PanY += dy
	c.version++
}

// SetPan places the world origin at screen (x, y). Hosts whose surface
// tracks its own drag position report it here. Like Drag it is ignored
// when panning is disabled and it stops a running recenter.
func (c *Camera) SetPan(x, y float64) {
	if c.cfg.DisablePan || (x == c.view.PanX && y == c.view.PanY) {
		return
	}
	c.anim = nil
	c.view.PanX, c.view.PanY = x, y
	c.version++
}

// Wheel accumulates a wheel delta. The pan moves once per Update by the
// accumulated delta times WheelDamping, however many wheel events arrived.
func (c *Camera) Wheel(dx, dy float64, mode WheelMode) {
	if c.cfg.DisablePan {
		return
	}
	switch mode {
	case WheelLine:
		dx *= c.cfg.LineDeltaPixels
		dy *= c.cfg.LineDeltaPixels
	case WheelPage:
		dx *= c.view.Height
		dy *= c.view.Height
	}
	c.wheelX += dx
	c.wheelY += dy
	c.wheelPending = true
}

// WheelPending reports whether wheel input is waiting for the next Update.
func (c *Camera) WheelPending() bool {
	return c.wheelPending
}

// SetHome sets the world point that Recenter brings to the middle of the
// viewport.
func (c *Camera) SetHome(wx, wy float64) {
	c.homeX, c.homeY = wx, wy
}

// homePan returns the pan that centers the home point at the current scale.
func (c *Camera) homePan() (float64, float64) {
	x, y := c.view.CenterOn(c.homeX, c.homeY)
	return x - c.cfg.CenterOffsetX, y - c.cfg.CenterOffsetY
}

// Recenter starts an eased animation that brings the home point (the root)
// to the middle of the viewport at the current scale. It is ignored while a
// recenter is already in flight and reports whether an animation started.
func (c *Camera) Recenter() bool {
	if c.anim != nil {
		return false
	}
	x, y := c.homePan()
	c.animateTo(x, y)
	return true
}

// RecenterOn animates the pan so world point (wx, wy) ends up in the middle
// of the viewport, replacing any animation in flight.
func (c *Camera) RecenterOn(wx, wy float64) {
	x, y := c.view.CenterOn(wx, wy)
	c.animateTo(x-c.cfg.CenterOffsetX, y-c.cfg.CenterOffsetY)
}

// CancelRecenter stops the animation in flight, leaving the pan where it is.
func (c *Camera) CancelRecenter() {
	c.anim = nil
}

func (c *Camera) animateTo(x, y float64) {
	c.anim = &recenterAnim{
		progress: gween.New(0, 1, c.cfg.RecenterDuration, ease.OutQuad),
		fromX:    c.view.PanX,
		fromY:    c.view.PanY,
		toX:      x,
		toY:      y,
	}
}

// update flushes pending wheel input and advances the recenter animation by
// dt seconds.
func (c *Camera) update(dt float32) {
	if c.wheelPending {
		if c.wheelX != 0 || c.wheelY != 0 {
			c.anim = nil
			c.view.PanX -= c.wheelX * c.cfg.WheelDamping
			c.view.PanY -= c.wheelY * c.cfg.WheelDamping
			c.version++
		}
		c.wheelX, c.wheelY = 0, 0
		c.wheelPending = false
	}

	if a := c.anim; a != nil {
		p, done := a.progress.Update(dt)
		if done {
			// Land exactly on the target rather than on the eased float32.
			c.view.PanX, c.view.PanY = a.toX, a.toY
			c.anim = nil
		} else {
			t := float64(p)
			c.view.PanX = a.fromX + (a.toX-a.fromX)*t
			c.view.PanY = a.fromY + (a.toY-a.fromY)*t
		}
		c.version++
	}
}
