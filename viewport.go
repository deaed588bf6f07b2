package canopy

// Viewport is the pan/zoom transform between world space and the host's
// screen. A world point (wx, wy) appears at screen (wx*Scale+PanX,
// wy*Scale+PanY).
type Viewport struct {
	// PanX and PanY are the screen position of the world origin, in pixels.
	PanX, PanY float64
	// Scale is the zoom factor (1 = one world unit per pixel).
	Scale float64
	// Width and Height are the screen size in pixels.
	Width, Height float64
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx*v.Scale + v.PanX, wy*v.Scale + v.PanY
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	if v.Scale == 0 {
		return sx - v.PanX, sy - v.PanY
	}
	return (sx - v.PanX) / v.Scale, (sy - v.PanY) / v.Scale
}

// VisibleRect returns the world-space rectangle currently on screen, grown
// by margin world units on every side.
func (v Viewport) VisibleRect(margin float64) Rect {
	scale := v.Scale
	if scale == 0 {
		scale = 1
	}
	left := -v.PanX/scale - margin
	top := -v.PanY/scale - margin
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + v.Width/scale + 2*margin,
		Bottom: top + v.Height/scale + 2*margin,
	}
}

// CenterOn returns the pan that puts world point (wx, wy) at the middle of
// the screen at the current scale.
func (v Viewport) CenterOn(wx, wy float64) (panX, panY float64) {
	return v.Width/2 - wx*v.Scale, v.Height/2 - wy*v.Scale
}
