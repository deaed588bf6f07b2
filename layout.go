package canopy

import "math"

// Layout positions the levels of an Expansion in world space. Each level's
// siblings are spaced HorizontalSpacing apart and centered on the x of the
// node that opened the level; levels are VerticalSpacing apart.
//
// Positions are computed on demand per (level, index), so a caller only pays
// for the slots it asks about.
type Layout struct {
	cfg Config
	exp Expansion
}

// NewLayout returns the layout of exp under cfg.
func NewLayout(cfg Config, exp Expansion) Layout {
	return Layout{cfg: cfg, exp: exp}
}

// levelMid returns the centering pivot for a level of n siblings: (n-1)/2.
// Even counts give a half-integer pivot between the two middle slots.
func levelMid(n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n-1) / 2
}

// NodeX returns the world x of slot index at depth level.
func (l Layout) NodeX(level, index int) float64 {
	mid := levelMid(len(l.exp.Level(level)))
	return l.cfg.HorizontalSpacing*(float64(index)-mid) + l.exp.ParentOffset(level)
}

// NodeY returns the world y of depth level.
func (l Layout) NodeY(level int) float64 {
	return float64(level) * l.cfg.VerticalSpacing
}

// Position returns the world position of id at depth level.
func (l Layout) Position(level int, id int64) (Vec2, bool) {
	i := l.exp.indexOf(level, id)
	if i < 0 {
		return Vec2{}, false
	}
	return Vec2{X: l.NodeX(level, i), Y: l.NodeY(level)}, true
}

// RowRange returns the half-open range of levels whose y lies in
// [r.Top, r.Bottom), clamped to the visible levels.
func (l Layout) RowRange(r Rect) (start, end int) {
	v := l.cfg.VerticalSpacing
	start = clampIndex(math.Floor(r.Top/v)-1, 0, l.exp.Depth())
	end = clampIndex(math.Ceil(r.Bottom/v)+1, start, l.exp.Depth())

	// The candidate window is one slot wider on each side than floor/ceil
	// gives; trimming against the computed positions makes membership exact
	// regardless of rounding in the division.
	for start < end && l.NodeY(start) < r.Top {
		start++
	}
	for end > start && l.NodeY(end-1) >= r.Bottom {
		end--
	}
	return start, end
}

// ColumnRange returns the half-open range of sibling indexes at depth level
// whose x lies in [r.Left, r.Right), clamped to the level's sibling count.
func (l Layout) ColumnRange(level int, r Rect) (start, end int) {
	n := len(l.exp.Level(level))
	if n == 0 {
		return 0, 0
	}
	h := l.cfg.HorizontalSpacing
	mid := levelMid(n)
	offset := l.exp.ParentOffset(level)

	start = clampIndex(math.Floor((r.Left-offset)/h+mid)-1, 0, n)
	end = clampIndex(math.Ceil((r.Right-offset)/h+mid)+1, start, n)

	for start < end && l.NodeX(level, start) < r.Left {
		start++
	}
	for end > start && l.NodeX(level, end-1) >= r.Right {
		end--
	}
	return start, end
}

// clampIndex converts v to an int within [lo, hi]. Clamping happens before
// the conversion so values far outside the int range, and NaN, stay safe.
func clampIndex(v float64, lo, hi int) int {
	if math.IsNaN(v) || v <= float64(lo) {
		return lo
	}
	if v >= float64(hi) {
		return hi
	}
	return int(v)
}
