package ebitenview

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// triBatch accumulates untextured triangles for a single DrawTriangles32
// call. Vertices sample the center of the white pixel.
type triBatch struct {
	verts []ebiten.Vertex
	inds  []uint32
}

func (b *triBatch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

func (b *triBatch) vertex(x, y float64, c Color) {
	r, g, bl, a := c.premul()
	b.verts = append(b.verts, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: r, ColorG: g, ColorB: bl, ColorA: a,
	})
}

// segment appends one quad covering the segment from (ax, ay) to (bx, by)
// with the given width. Zero-length segments are skipped.
func (b *triBatch) segment(ax, ay, bx, by, width float64, c Color) {
	nx, ny, ok := perpendicular(ax, ay, bx, by)
	if !ok {
		return
	}
	hw := width / 2
	base := uint32(len(b.verts))
	b.vertex(ax+nx*hw, ay+ny*hw, c)
	b.vertex(ax-nx*hw, ay-ny*hw, c)
	b.vertex(bx+nx*hw, by+ny*hw, c)
	b.vertex(bx-nx*hw, by-ny*hw, c)
	b.inds = append(b.inds,
		base, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// stroke appends one quad per segment of pts. Connector polylines double
// back on themselves, so segments are drawn without joins; a miter at a
// reversal would collapse to zero width.
func (b *triBatch) stroke(pts []screenPoint, width float64, c Color) {
	for i := 1; i < len(pts); i++ {
		b.segment(pts[i-1].x, pts[i-1].y, pts[i].x, pts[i].y, width, c)
	}
}

// disc appends a triangle fan approximating a filled circle.
func (b *triBatch) disc(cx, cy, radius float64, segments int, c Color) {
	if radius <= 0 {
		return
	}
	if segments < 3 {
		segments = 3
	}
	hub := uint32(len(b.verts))
	b.vertex(cx, cy, c)
	step := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		s, co := math.Sincos(float64(i) * step)
		b.vertex(cx+co*radius, cy+s*radius, c)
	}
	for i := 0; i < segments; i++ {
		next := (i+1)%segments + 1
		b.inds = append(b.inds, hub, hub+uint32(i)+1, hub+uint32(next))
	}
}

// perpendicular returns the unit left-perpendicular of the segment from a
// to b, or false when the segment is degenerate.
func perpendicular(ax, ay, bx, by float64) (float64, float64, bool) {
	dx := bx - ax
	dy := by - ay
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, 0, false
	}
	return -dy / ln, dx / ln, true
}

type screenPoint struct {
	x, y float64
}
