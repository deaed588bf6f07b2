package ebitenview

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when vertices are built.
type Color struct {
	R, G, B, A float64
}

// toRGBA returns the color as a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// premul returns the premultiplied components as float32 for vertex colors.
func (c Color) premul() (r, g, b, a float32) {
	a64 := clamp01(c.A)
	return float32(clamp01(c.R) * a64), float32(clamp01(c.G) * a64), float32(clamp01(c.B) * a64), float32(a64)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Style controls how the view draws nodes and edges. Sizes are in world
// units and scale with the camera.
type Style struct {
	Background Color
	Edge       Color
	Branch     Color // node with children, collapsed
	Open       Color // the open node of its level
	Leaf       Color
	Label      Color

	EdgeWidth float64
	// DiscSegments is the number of triangles used per node disc.
	DiscSegments int
	// LabelMinScale hides labels when zoomed out past this scale.
	LabelMinScale float64
}

// DefaultStyle returns the dark theme used by the canopy viewer.
func DefaultStyle() Style {
	return Style{
		Background:    Color{R: 0.11, G: 0.12, B: 0.15, A: 1},
		Edge:          Color{R: 0.55, G: 0.58, B: 0.65, A: 1},
		Branch:        Color{R: 0.31, G: 0.71, B: 1, A: 1},
		Open:          Color{R: 1, G: 0.66, B: 0.2, A: 1},
		Leaf:          Color{R: 0.39, G: 0.71, B: 0.24, A: 1},
		Label:         Color{R: 0.92, G: 0.92, B: 0.92, A: 1},
		EdgeWidth:     2,
		DiscSegments:  24,
		LabelMinScale: 0.6,
	}
}
